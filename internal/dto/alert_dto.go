package dto

type AlertFilter struct {
	Resolved string `form:"resolved"` // "true" | "false" | "" (all)
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type AlertResponse struct {
	ID         string `json:"id"`
	VariantID  string `json:"variant_id"`
	VariantSKU string `json:"variant_sku"`
	Message    string `json:"message"`
	IsResolved bool   `json:"is_resolved"`
	CreatedAt  string `json:"created_at"`
}

// PriceLookupResponse is returned by the public SKU price check endpoint.
type PriceLookupResponse struct {
	SKU         string `json:"sku"`
	ProductName string `json:"product_name"`
	VariantName string `json:"variant_name"`
	Price       string `json:"price"`
	InStock     bool   `json:"in_stock"`
}
