package services

import "errors"

// Sentinel errors returned by the service layer. Controllers map these
// onto HTTP status codes.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrDuplicate          = errors.New("resource already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidOTP         = errors.New("invalid or expired otp")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrProductNotFound    = errors.New("product not found")
	ErrVariantNotFound    = errors.New("product variant not found")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrAlreadyCancelled   = errors.New("order is already cancelled")
	ErrHasChildren        = errors.New("category has child categories")
	ErrCategoryCycle      = errors.New("category cannot be its own ancestor")
	ErrTooManyAddresses   = errors.New("address limit exceeded")
)
