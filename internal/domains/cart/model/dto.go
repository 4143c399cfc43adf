package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// AddItemRequest - POST /me/cart/items
type AddItemRequest struct {
	ProductID int64 `json:"product_id"`
}

func (r AddItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProductID, validation.Required, validation.Min(int64(1))),
	)
}

// DiscountRequest - PUT /me/cart/discount
type DiscountRequest struct {
	Active *bool `json:"active"`
}

func (r DiscountRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Active, validation.NotNil),
	)
}
