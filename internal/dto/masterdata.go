package dto

import (
	"warungpos/internal/model"

	"github.com/shopspring/decimal"
)

type CategoryRequest struct {
	CategoryName string   `json:"category_name" binding:"required,max=100"`
	SKUs         []string `json:"skus"`
}

type CategoryResponse struct {
	CategoryID   int64    `json:"category_id"`
	CategoryName string   `json:"category_name"`
	SKUs         []string `json:"skus,omitempty"`
}

type SupplierRequest struct {
	SupplierName    string `json:"supplier_name" binding:"required,max=50"`
	SupplierAddress string `json:"supplier_address" binding:"max=100"`
	SupplierCity    string `json:"supplier_city" binding:"max=100"`
	SupplierPhone   string `json:"supplier_phone" binding:"max=100"`
	SupplierRemarks string `json:"supplier_remarks"`
}

type SupplierResponse struct {
	SupplierID      int64  `json:"supplier_id"`
	SupplierName    string `json:"supplier_name"`
	SupplierAddress string `json:"supplier_address,omitempty"`
	SupplierCity    string `json:"supplier_city,omitempty"`
	SupplierPhone   string `json:"supplier_phone,omitempty"`
	SupplierRemarks string `json:"supplier_remarks,omitempty"`
}

func FromSupplier(s *model.Supplier) SupplierResponse {
	return SupplierResponse{
		SupplierID:      s.SupplierID,
		SupplierName:    s.SupplierName,
		SupplierAddress: s.SupplierAddress,
		SupplierCity:    s.SupplierCity,
		SupplierPhone:   s.SupplierPhone,
		SupplierRemarks: s.SupplierRemarks,
	}
}

type CustomerRequest struct {
	CustomerName  string `json:"customer_name" binding:"required,max=50"`
	CustomerPhone string `json:"customer_phone" binding:"required,max=20"`
}

type CustomerResponse struct {
	CustomerID           int64           `json:"customer_id"`
	CustomerName         string          `json:"customer_name"`
	CustomerPhone        string          `json:"customer_phone"`
	CustomerPoints       int             `json:"customer_points"`
	NumberOfTransactions int             `json:"number_of_transactions"`
	TransactionValue     decimal.Decimal `json:"transaction_value"`
}

func FromCustomer(c *model.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID:           c.CustomerID,
		CustomerName:         c.CustomerName,
		CustomerPhone:        c.CustomerPhone,
		CustomerPoints:       c.CustomerPoints,
		NumberOfTransactions: c.NumberOfTransactions,
		TransactionValue:     c.TransactionValue,
	}
}

type RoleRequest struct {
	RoleName        string   `json:"role_name" binding:"required,max=20"`
	RoleDescription string   `json:"role_description"`
	PermissionIDs   []string `json:"permission_ids"`
}

type RoleResponse struct {
	RoleID          int64    `json:"role_id"`
	RoleName        string   `json:"role_name"`
	RoleDescription string   `json:"role_description,omitempty"`
	PermissionIDs   []string `json:"permission_ids,omitempty"`
}

type PermissionResponse struct {
	PermissionID   string `json:"permission_id"`
	PermissionName string `json:"permission_name"`
}
