package infra

import (
	"fmt"
	"os"
	"path/filepath"

	"warungpos/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens the local SQLite file behind GORM and runs AutoMigrate for
// every table. WAL mode keeps readers from blocking the single writer and
// busy_timeout makes concurrent request handlers queue instead of failing
// with SQLITE_BUSY.
func NewDatabase(path string) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	dsn := path + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	// One writer at a time — SQLite serializes writes anyway, and a single
	// connection avoids database-locked races between pooled handles.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// RunMigrations creates or updates every table. Also used by the seeder after
// dropping the schema.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Product{},
		&model.ProductUnit{},
		&model.Category{},
		&model.ProductCategory{},
		&model.Supplier{},
		&model.Customer{},
		&model.Role{},
		&model.Permission{},
		&model.RolePermission{},
		&model.User{},
		&model.Log{},
		&model.Purchasing{},
		&model.PurchasingDetail{},
		&model.Transaction{},
		&model.TransactionDetail{},
		&model.PendingTransaction{},
		&model.PendingTransactionDetail{},
	)
}
