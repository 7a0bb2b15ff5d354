package dto

// CreateOrderRequest is the accepted payload for POST /orders/. OrderDate is a YYYY-MM-DD
// calendar date.
type CreateOrderRequest struct {
	UserID    *int64  `json:"user_id" validate:"required"`
	ProductID *int64  `json:"product_id" validate:"required"`
	OrderDate *string `json:"order_date" validate:"required"`
	Status    *string `json:"status" validate:"required"`
}

// OrderResponse represents an order as exposed via transport layers.
type OrderResponse struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	ProductID int64  `json:"product_id"`
	OrderDate string `json:"order_date"`
	Status    string `json:"status"`
}
