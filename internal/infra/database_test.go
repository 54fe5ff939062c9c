package infra

import (
	"path/filepath"
	"testing"
	"time"

	"warungpos/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The DSN enforces foreign keys, so a wrongly inferred association direction
// would make the parent tables uninsertable on a fresh file. Walk the two
// belongs-to chains (role→user, supplier→receipt) end to end.
func TestMigratedSchemaAcceptsParentRowsFirst(t *testing.T) {
	db, err := NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	role := &model.Role{RoleName: "admin"}
	require.NoError(t, db.Create(role).Error, "roles must be insertable on an empty database")
	user := &model.User{UserName: "admin", PasswordHash: "x", RoleID: role.RoleID, IsActive: true}
	require.NoError(t, db.Create(user).Error)

	var loaded model.User
	require.NoError(t, db.Preload("Role").First(&loaded, user.UserID).Error)
	require.NotNil(t, loaded.Role)
	assert.Equal(t, "admin", loaded.Role.RoleName)

	supplier := &model.Supplier{SupplierName: "Toko Grosir"}
	require.NoError(t, db.Create(supplier).Error, "suppliers must be insertable on an empty database")
	receipt := &model.Purchasing{
		PurchasingID:       "PO202608310001",
		SupplierID:         supplier.SupplierID,
		InvoiceDate:        time.Now(),
		InvoiceNumber:      "INV-1",
		InvoiceExpiredDate: time.Now(),
		TotalAmount:        decimal.NewFromInt(1000),
		CreatedAt:          time.Now(),
	}
	require.NoError(t, db.Omit("Details", "Supplier").Create(receipt).Error)

	var got model.Purchasing
	require.NoError(t, db.Preload("Supplier").Where("purchasing_id = ?", receipt.PurchasingID).First(&got).Error)
	require.NotNil(t, got.Supplier)
	assert.Equal(t, supplier.SupplierID, got.Supplier.SupplierID)
}
