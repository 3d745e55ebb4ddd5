package dto

// AdjustStockRequest mutates a variant's stock through the ledger. Exactly one
// of Quantity (absolute) or Delta (signed) must be set. Source is explicit;
// the ledger never infers why stock changed.
type AdjustStockRequest struct {
	Quantity *int   `json:"quantity" validate:"omitempty,min=0"`
	Delta    *int   `json:"delta"`
	Source   string `json:"source"   validate:"omitempty,oneof=manual_adjustment correction"`
	Reason   string `json:"reason"   validate:"omitempty,max=255"`
}

type AuditFilter struct {
	VariantID string `form:"variant_id" validate:"omitempty,uuid"`
	Source    string `form:"source"     validate:"omitempty,oneof=sale manual_adjustment correction"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type AuditResponse struct {
	ID           string  `json:"id"`
	VariantID    string  `json:"variant_id"`
	VariantSKU   string  `json:"variant_sku"`
	ActingUserID *string `json:"acting_user"`
	OldQuantity  int     `json:"old_quantity"`
	NewQuantity  int     `json:"new_quantity"`
	Source       string  `json:"source"`
	Reason       string  `json:"reason"`
	SaleID       *string `json:"sale_id"`
	Timestamp    string  `json:"timestamp"`
}

type AuditListResponse struct {
	Data  []AuditResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
