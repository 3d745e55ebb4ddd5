package dto

type CreateOrderRequest struct {
	ProductID    string `json:"product_id"    validate:"required,uuid"`
	CustomerName string `json:"customer_name" validate:"required,min=2,max=100"`
	DesignSpecs  string `json:"design_specs"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type OrderFilter struct {
	Status string `form:"status"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=20" validate:"min=1,max=100"`
}

type OrderResponse struct {
	ID           string `json:"id"`
	ProductID    string `json:"product_id"`
	ProductName  string `json:"product_name"`
	CustomerName string `json:"customer_name"`
	DesignSpecs  string `json:"design_specs"`
	Status       string `json:"status"`
	CreatedByID  string `json:"created_by"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

type OrderListResponse struct {
	Data  []OrderResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
