package handler

// AccountRequest represents the request body for creating or updating an account
type AccountRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// AccountResponse represents the response for account endpoints
type AccountResponse struct {
	ID        uint64          `json:"id"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Email     string          `json:"email"`
	Orders    []OrderResponse `json:"orders,omitempty"`
}

// OrderRequest represents the request body for creating or updating an order
type OrderRequest struct {
	AccountID uint64  `json:"account_id"`
	Product   string  `json:"product"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// OrderResponse represents the response for order endpoints
type OrderResponse struct {
	ID        uint64  `json:"id"`
	AccountID uint64  `json:"account_id"`
	Product   string  `json:"product"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error       string `json:"error"`
	Status      int    `json:"status"`
	Description string `json:"description"`
	RequestID   string `json:"request_id"`
}
