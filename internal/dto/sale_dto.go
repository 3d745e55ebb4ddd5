package dto

import "github.com/shopspring/decimal"

type RecordSaleRequest struct {
	VariantID    string `json:"variant_id"    validate:"required,uuid"`
	QuantitySold int    `json:"quantity_sold" validate:"required,gt=0"`
}

type SaleFilter struct {
	VariantID string `form:"variant_id" validate:"omitempty,uuid"`
	Date      string `form:"date"       validate:"omitempty,datetime=2006-01-02"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type SaleResponse struct {
	ID           string          `json:"id"`
	VariantID    string          `json:"variant_id"`
	VariantSKU   string          `json:"variant_sku"`
	ProductName  string          `json:"product_name"`
	QuantitySold int             `json:"quantity_sold"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	SoldByID     string          `json:"sold_by"`
	SaleDate     string          `json:"sale_date"`
	// StockRemaining reflects the variant's quantity right after this sale's
	// decrement, recomputed from the transaction result.
	StockRemaining int  `json:"stock_remaining"`
	LowStock       bool `json:"low_stock"`
}

type SaleListResponse struct {
	Data  []SaleResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
