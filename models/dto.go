package models

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"omitempty,min=6"`
}

type UpdateUserRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email" binding:"omitempty,email"`
	IsAdmin bool   `json:"isAdmin"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// UpdateProductRequest mirrors the admin edit form. Scalar fields are
// written as provided. Images is a pointer so "omitted" and "replace with
// this list" can be told apart: nil keeps the stored list.
type UpdateProductRequest struct {
	Name         string      `json:"name"`
	Price        float64     `json:"price"`
	Description  string      `json:"description"`
	Image        string      `json:"image"`
	Brand        string      `json:"brand"`
	Category     string      `json:"category"`
	CountInStock int         `json:"countInStock"`
	Images       *[]ImageRef `json:"images"`
}

type CreateReviewRequest struct {
	Rating  float64 `json:"rating" binding:"required,min=1,max=5"`
	Comment string  `json:"comment" binding:"required"`
}
