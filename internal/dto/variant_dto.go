package dto

type CreateVariantRequest struct {
	VariantName      string  `json:"variant_name"      validate:"required,min=1,max=100"`
	Size             *string `json:"size"              validate:"omitempty,max=10"`
	Color            string  `json:"color"             validate:"required,min=1,max=20"`
	StockQuantity    int     `json:"stock_quantity"    validate:"min=0"`
	ReorderThreshold *int    `json:"reorder_threshold" validate:"omitempty,min=0"`
}

// UpdateVariantRequest deliberately has no SKU and no stock field: the SKU is
// immutable after first assignment and stock changes go through the
// stock-adjustment endpoint so every change hits the audit ledger.
type UpdateVariantRequest struct {
	VariantName      *string `json:"variant_name"      validate:"omitempty,min=1,max=100"`
	Size             *string `json:"size"              validate:"omitempty,max=10"`
	Color            *string `json:"color"             validate:"omitempty,min=1,max=20"`
	ReorderThreshold *int    `json:"reorder_threshold" validate:"omitempty,min=0"`
}

type VariantResponse struct {
	ID               string  `json:"id"`
	ProductID        string  `json:"product_id"`
	ProductName      string  `json:"product_name"`
	VariantName      string  `json:"variant_name"`
	Size             *string `json:"size"`
	Color            string  `json:"color"`
	StockQuantity    int     `json:"stock_quantity"`
	ReorderThreshold int     `json:"reorder_threshold"`
	SKU              string  `json:"sku"`
	IsLowStock       bool    `json:"is_low_stock"`
	LastUpdatedByID  *string `json:"last_updated_by"`
}
