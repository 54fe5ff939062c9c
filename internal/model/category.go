package model

// Category classifies products. Membership lives in the
// product_categories_detail join table, not on the product row.
type Category struct {
	CategoryID   int64  `gorm:"primaryKey;autoIncrement"`
	CategoryName string `gorm:"size:100;not null"`
}

func (Category) TableName() string { return "categories" }

type ProductCategory struct {
	SKU        string `gorm:"column:sku;size:20;not null;index"`
	CategoryID int64  `gorm:"not null;index"`
}

func (ProductCategory) TableName() string { return "product_categories_detail" }
