package model

import "errors"

// Error codes returned by the cart HTTP API
const (
	ErrCodeInvalidProductID = "INVALID_PRODUCT_ID"
	ErrCodeProductNotFound  = "PRODUCT_NOT_FOUND"
	ErrCodeOutOfStock       = "OUT_OF_STOCK"
	ErrCodeNoSession        = "NO_SESSION"
)

var (
	ErrInvalidProductID = errors.New("product id must be a positive integer")
	ErrOutOfStock       = errors.New("product is out of stock")
	ErrMalformedCart    = errors.New("persisted cart is not a JSON array")
)
