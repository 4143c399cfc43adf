package model

import "errors"

const (
	ErrCodeCartEmpty     = "ORD001"
	ErrCodeOrderNotSaved = "ORD002"
	ErrCodeInvalidOrder  = "ORD003"
)

var (
	ErrCartEmpty     = errors.New("cart is empty")
	ErrOrderNotSaved = errors.New("order could not be saved")
	ErrOrdersCorrupt = errors.New("stored orders are unreadable")
)
