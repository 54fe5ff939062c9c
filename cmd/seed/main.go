// Command seed drops and recreates the database with a starter dataset:
// permission catalog, admin/cashier roles, demo users, and a handful of
// products with wholesale units. Destructive — development use only.
package main

import (
	"fmt"
	"os"
	"time"

	"warungpos/internal/config"
	"warungpos/internal/infra"
	"warungpos/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	db, err := infra.NewDatabase(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}

	if err := drop(db); err != nil {
		log.Fatal().Err(err).Msg("drop failed")
	}
	if err := infra.RunMigrations(db); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}
	if err := seed(db); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
	log.Info().Str("path", cfg.DatabasePath).Msg("database seeded")
}

func drop(db *gorm.DB) error {
	tables := []interface{}{
		&model.PendingTransactionDetail{}, &model.PendingTransaction{},
		&model.TransactionDetail{}, &model.Transaction{},
		&model.PurchasingDetail{}, &model.Purchasing{},
		&model.Log{}, &model.User{},
		&model.RolePermission{}, &model.Permission{}, &model.Role{},
		&model.ProductCategory{}, &model.Category{},
		&model.ProductUnit{}, &model.Product{},
		&model.Customer{}, &model.Supplier{},
	}
	return db.Migrator().DropTable(tables...)
}

func seed(db *gorm.DB) error {
	permissions := []model.Permission{
		{PermissionID: "view_products", PermissionName: "View products"},
		{PermissionID: "manage_products", PermissionName: "Manage products"},
		{PermissionID: "manage_master_data", PermissionName: "Manage master data"},
		{PermissionID: "sell", PermissionName: "Sell at the register"},
		{PermissionID: "purchase", PermissionName: "Book goods receipts"},
		{PermissionID: "view_reports", PermissionName: "View reports"},
		{PermissionID: "manage_users", PermissionName: "Manage users and roles"},
		{PermissionID: "view_logs", PermissionName: "View activity logs"},
		{PermissionID: "manage_pending_transactions", PermissionName: "Manage pending transactions"},
		{PermissionID: "view_transactions", PermissionName: "View transaction history"},
	}
	if err := db.Create(&permissions).Error; err != nil {
		return err
	}

	admin := model.Role{RoleName: "admin", RoleDescription: "full access"}
	cashier := model.Role{RoleName: "cashier", RoleDescription: "register operations"}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	if err := db.Create(&cashier).Error; err != nil {
		return err
	}

	for _, p := range permissions {
		if err := db.Create(&model.RolePermission{RoleID: admin.RoleID, PermissionID: p.PermissionID}).Error; err != nil {
			return err
		}
	}
	for _, pid := range []string{"view_products", "sell", "manage_pending_transactions", "view_transactions"} {
		if err := db.Create(&model.RolePermission{RoleID: cashier.RoleID, PermissionID: pid}).Error; err != nil {
			return err
		}
	}

	for _, u := range []struct {
		name, password string
		roleID         int64
	}{
		{"admin", "admin123", admin.RoleID},
		{"kasir", "kasir123", cashier.RoleID},
	} {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		if err := db.Create(&model.User{
			UserName:     u.name,
			PasswordHash: string(hash),
			RoleID:       u.roleID,
			IsActive:     true,
		}).Error; err != nil {
			return err
		}
	}

	supplier := model.Supplier{
		SupplierName:    "PT Sumber Rejeki",
		SupplierAddress: "Jl. Raya Bogor KM 21",
		SupplierCity:    "Jakarta",
		SupplierPhone:   "021-5550101",
	}
	if err := db.Create(&supplier).Error; err != nil {
		return err
	}

	customer := model.Customer{CustomerName: "Budi Santoso", CustomerPhone: "081234567890"}
	if err := db.Create(&customer).Error; err != nil {
		return err
	}

	snacks := model.Category{CategoryName: "Snacks"}
	drinks := model.Category{CategoryName: "Drinks"}
	if err := db.Create(&snacks).Error; err != nil {
		return err
	}
	if err := db.Create(&drinks).Error; err != nil {
		return err
	}

	barcode1 := "8991002101"
	barcode2 := "8991002102"
	barcode3 := "8991002103"
	products := []model.Product{
		{
			SKU: "SKU001", ProductName: "Indomie Goreng", Barcode: &barcode1,
			SupplierID: &supplier.SupplierID,
			CostPrice:  decimal.NewFromInt(1000), Price: decimal.NewFromInt(1500),
			Stock: 50, Unit: "PCS",
			LastPrice: decimal.NewFromInt(1000), AveragePrice: decimal.NewFromInt(1000),
		},
		{
			SKU: "SKU002", ProductName: "Teh Botol Sosro 350ml", Barcode: &barcode2,
			SupplierID: &supplier.SupplierID,
			CostPrice:  decimal.NewFromInt(3000), Price: decimal.NewFromInt(4000),
			Stock: 24, Unit: "BTL",
			LastPrice: decimal.NewFromInt(3000), AveragePrice: decimal.NewFromInt(3000),
		},
		{
			SKU: "SKU003", ProductName: "Chitato Sapi Panggang 68g", Barcode: &barcode3,
			SupplierID: &supplier.SupplierID,
			CostPrice:  decimal.NewFromInt(8000), Price: decimal.NewFromInt(10500),
			Stock: 12, Unit: "PCS",
			LastPrice: decimal.NewFromInt(8000), AveragePrice: decimal.NewFromInt(8000),
		},
	}
	if err := db.Create(&products).Error; err != nil {
		return err
	}

	memberships := []model.ProductCategory{
		{SKU: "SKU001", CategoryID: snacks.CategoryID},
		{SKU: "SKU003", CategoryID: snacks.CategoryID},
		{SKU: "SKU002", CategoryID: drinks.CategoryID},
	}
	if err := db.Create(&memberships).Error; err != nil {
		return err
	}

	dusBarcode := "8991002101D"
	units := []model.ProductUnit{
		{SKU: "SKU001", Unit: "DUS", UnitValue: 40, Price: decimal.NewFromInt(52000), Barcode: &dusBarcode},
		{SKU: "SKU002", Unit: "KRAT", UnitValue: 24, Price: decimal.NewFromInt(84000)},
	}
	if err := db.Create(&units).Error; err != nil {
		return err
	}

	fmt.Println("seeded: 2 users (admin/admin123, kasir/kasir123), 3 products, 2 wholesale units")
	return nil
}
