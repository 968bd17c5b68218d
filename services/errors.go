package services

import "errors"

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrReviewNotFound     = errors.New("review not found")
	ErrImageNotFound      = errors.New("image not found")
	ErrTooManyImages      = errors.New("a product can have at most 4 images")
	ErrAlreadyReviewed    = errors.New("product already reviewed")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidOTP         = errors.New("invalid or expired OTP")
	ErrCannotDeleteAdmin  = errors.New("cannot delete admin user")
	ErrOTPUnavailable     = errors.New("password reset service unavailable")
)
