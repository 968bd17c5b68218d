package models

// ErrorResponse is the JSON body for every error status. Stack is only
// filled by the recovery middleware outside production.
type ErrorResponse struct {
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

type ProductListResponse struct {
	Products []Product `json:"products"`
	Page     int       `json:"page"`
	Pages    int       `json:"pages"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
	Token   string `json:"token"`
}

type UploadResponse struct {
	Images []ImageRef `json:"images"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
