package model

type Supplier struct {
	SupplierID      int64  `gorm:"primaryKey;autoIncrement"`
	SupplierName    string `gorm:"size:50;not null"`
	SupplierAddress string `gorm:"size:100;default:''"`
	SupplierCity    string `gorm:"size:100;default:''"`
	SupplierPhone   string `gorm:"size:100;default:''"`
	SupplierRemarks string `gorm:"type:text;default:''"`
}

func (Supplier) TableName() string { return "suppliers" }
