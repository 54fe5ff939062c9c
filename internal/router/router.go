package router

import (
	"warungpos/internal/config"
	"warungpos/internal/handler"
	"warungpos/internal/infra"
	"warungpos/internal/middleware"
	"warungpos/internal/repository"
	"warungpos/internal/service"
	"warungpos/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	swaggerfiles "github.com/swaggo/files"
	ginswagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// Permission ids gating the route groups. These match the seeded permission
// catalog.
const (
	permViewProducts    = "view_products"
	permManageProducts  = "manage_products"
	permManageMaster    = "manage_master_data"
	permSell            = "sell"
	permPurchase        = "purchase"
	permViewReports     = "view_reports"
	permManageUsers     = "manage_users"
	permViewLogs        = "view_logs"
	permManagePendings  = "manage_pending_transactions"
	permViewTransaction = "view_transactions"
)

// Deps carries everything New needs to assemble the API.
type Deps struct {
	Cfg    *config.Config
	DB     *gorm.DB
	Redis  *redis.Client
	Mailer *infra.Mailer
	Log    zerolog.Logger
}

// New builds the gin engine with every repository, service, handler and
// middleware wired up. The worker dispatcher is returned alongside so main
// can hand the same queues to the pool.
func New(d Deps) (*gin.Engine, *worker.Dispatcher) {
	if d.Cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Repositories
	productRepo := repository.NewProductRepository(d.DB)
	unitRepo := repository.NewUnitRepository(d.DB)
	categoryRepo := repository.NewCategoryRepository(d.DB)
	supplierRepo := repository.NewSupplierRepository(d.DB)
	customerRepo := repository.NewCustomerRepository(d.DB)
	roleRepo := repository.NewRoleRepository(d.DB)
	userRepo := repository.NewUserRepository(d.DB)
	logRepo := repository.NewLogRepository(d.DB)
	purchasingRepo := repository.NewPurchasingRepository(d.DB)
	transactionRepo := repository.NewTransactionRepository(d.DB)

	// Background jobs
	dispatcher := worker.NewDispatcher(d.Redis, d.Log)

	// Services
	authSvc := service.NewAuthService(userRepo, roleRepo, d.Cfg.JWTSecret, d.Cfg.JWTExpirationHours, d.Cfg.JWTRefreshHours, d.Log)
	priceSvc := service.NewPriceCheckService(productRepo, d.Redis, d.Log)
	productSvc := service.NewProductService(productRepo, unitRepo, priceSvc, dispatcher, d.Log)
	categorySvc := service.NewCategoryService(categoryRepo, productRepo, dispatcher, d.Log)
	supplierSvc := service.NewSupplierService(supplierRepo, dispatcher, d.Log)
	customerSvc := service.NewCustomerService(customerRepo, dispatcher, d.Log)
	roleSvc := service.NewRoleService(roleRepo, dispatcher, d.Log)
	logSvc := service.NewLogService(logRepo)
	cartSvc := service.NewCartService(productRepo, unitRepo, d.Log)
	purchasingSvc := service.NewPurchasingService(purchasingRepo, productRepo, unitRepo, supplierRepo, dispatcher, d.Log)
	transactionSvc := service.NewTransactionService(transactionRepo, productRepo, customerRepo, cartSvc, dispatcher, dispatcher, d.Log)
	reportSvc := service.NewReportService(transactionRepo, d.Log)

	// Handlers
	authH := handler.NewAuthHandler(authSvc)
	productH := handler.NewProductHandler(productSvc)
	categoryH := handler.NewCategoryHandler(categorySvc)
	supplierH := handler.NewSupplierHandler(supplierSvc)
	customerH := handler.NewCustomerHandler(customerSvc)
	roleH := handler.NewRoleHandler(roleSvc)
	cartH := handler.NewCartHandler(cartSvc)
	purchasingH := handler.NewPurchasingHandler(purchasingSvc)
	transactionH := handler.NewTransactionHandler(transactionSvc)
	reportH := handler.NewReportHandler(reportSvc, logSvc)
	priceH := handler.NewPriceCheckHandler(priceSvc)
	healthH := handler.NewHealthHandler(d.DB, d.Redis, d.Mailer)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(d.Log),
		middleware.Recovery(d.Log),
		middleware.CORS(),
		middleware.RateLimiter(),
	)

	r.GET("/health", healthH.Check)
	if d.Cfg.Env != "production" {
		r.GET("/swagger/*any", ginswagger.WrapHandler(swaggerfiles.Handler))
	}

	v1 := r.Group("/v1")

	// Public endpoints
	v1.POST("/auth/login", middleware.LoginRateLimiter(), authH.Login)
	v1.GET("/price/:barcode", priceH.Lookup)

	// Everything else needs a token.
	auth := v1.Group("", middleware.JWTAuth(authSvc))

	auth.GET("/auth/me", authH.Me)
	auth.POST("/auth/refresh", authH.Refresh)

	users := auth.Group("/users", middleware.RequirePermission(permManageUsers))
	{
		users.GET("", authH.ListUsers)
		users.POST("", authH.CreateUser)
		users.PUT("/:id", authH.UpdateUser)
		users.DELETE("/:id", authH.DeleteUser)
	}

	roles := auth.Group("/roles", middleware.RequirePermission(permManageUsers))
	{
		roles.GET("", roleH.List)
		roles.GET("/:id", roleH.Get)
		roles.POST("", roleH.Create)
		roles.PUT("/:id", roleH.Update)
		roles.DELETE("/:id", roleH.Delete)
	}
	auth.GET("/permissions", middleware.RequirePermission(permManageUsers), roleH.ListPermissions)

	products := auth.Group("/products")
	{
		products.GET("", middleware.RequirePermission(permViewProducts), productH.List)
		products.GET("/:sku", middleware.RequirePermission(permViewProducts), productH.Get)
		products.GET("/:sku/units", middleware.RequirePermission(permViewProducts), productH.ListUnits)
		products.GET("/:sku/purchase-history", middleware.RequirePermission(permPurchase), purchasingH.HistoryBySKU)

		manage := products.Group("", middleware.RequirePermission(permManageProducts))
		{
			manage.POST("", productH.Create)
			manage.PUT("/:sku", productH.Update)
			manage.DELETE("/:sku", productH.Delete)
			manage.POST("/:sku/units", productH.AddUnit)
			manage.PUT("/:sku/units/:unit", productH.UpdateUnit)
			manage.DELETE("/:sku/units/:unit", productH.DeleteUnit)
		}
	}

	master := auth.Group("", middleware.RequirePermission(permManageMaster))
	{
		master.GET("/categories", categoryH.List)
		master.GET("/categories/:id", categoryH.Get)
		master.POST("/categories", categoryH.Create)
		master.PUT("/categories/:id", categoryH.Update)
		master.DELETE("/categories/:id", categoryH.Delete)

		master.GET("/suppliers", supplierH.List)
		master.GET("/suppliers/:id", supplierH.Get)
		master.POST("/suppliers", supplierH.Create)
		master.PUT("/suppliers/:id", supplierH.Update)
		master.DELETE("/suppliers/:id", supplierH.Delete)

		master.GET("/customers", customerH.List)
		master.GET("/customers/:id", customerH.Get)
		master.POST("/customers", customerH.Create)
		master.PUT("/customers/:id", customerH.Update)
		master.DELETE("/customers/:id", customerH.Delete)
	}

	carts := auth.Group("/carts", middleware.RequirePermission(permSell))
	{
		carts.POST("", cartH.Create)
		carts.GET("/:id", cartH.Get)
		carts.DELETE("/:id", cartH.Close)
		carts.POST("/:id/items", cartH.AddItem)
		carts.PUT("/:id/items/:sku/:unit", cartH.UpdateItem)
		carts.DELETE("/:id/items/:sku/:unit", cartH.RemoveItem)
		carts.POST("/:id/clear", cartH.Clear)
		carts.POST("/:id/stock-check", cartH.StockCheck)
		carts.POST("/:id/checkout", transactionH.Checkout)
		carts.POST("/:id/suspend", transactionH.Suspend)
	}

	pending := auth.Group("/pending-transactions", middleware.RequirePermission(permManagePendings))
	{
		pending.GET("", transactionH.ListPending)
		pending.POST("/:id/resume", transactionH.Resume)
	}

	transactions := auth.Group("/transactions", middleware.RequirePermission(permViewTransaction))
	{
		transactions.GET("", transactionH.List)
		transactions.GET("/:id", transactionH.Get)
	}

	purchasing := auth.Group("/purchasing", middleware.RequirePermission(permPurchase))
	{
		purchasing.POST("", purchasingH.Submit)
		purchasing.GET("", purchasingH.List)
		purchasing.GET("/:id", purchasingH.Get)
	}

	reports := auth.Group("/reports", middleware.RequirePermission(permViewReports))
	{
		reports.GET("/sales-summary", reportH.SalesSummary)
		reports.GET("/transactions.xlsx", reportH.ExportTransactions)
	}

	auth.GET("/logs", middleware.RequirePermission(permViewLogs), reportH.Logs)

	return r, dispatcher
}
