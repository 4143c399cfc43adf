package model

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// Product is the catalog entity as served by the catalog service.
// The cart keeps a copy of it as a snapshot taken when the line was added.
type Product struct {
	ID            int64           `json:"id"`
	Name          string          `json:"nombre"`
	Description   string          `json:"descripcion,omitempty"`
	Category      string          `json:"categoria,omitempty"`
	Price         decimal.Decimal `json:"precio"`
	StockQuantity int             `json:"stock"`
	Image         string          `json:"imagen,omitempty"`
}

// InStock reports whether at least one unit can be sold
func (p Product) InStock() bool {
	return p.StockQuantity > 0
}

func (p Product) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ID, validation.Required, validation.Min(int64(1))),
		validation.Field(&p.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.Price, validation.By(nonNegativeDecimal)),
		validation.Field(&p.StockQuantity, validation.Min(0)),
	)
}

func nonNegativeDecimal(value interface{}) error {
	d, ok := value.(decimal.Decimal)
	if !ok {
		return errors.New("must be a decimal")
	}
	if d.IsNegative() {
		return errors.New("must be no less than 0")
	}
	return nil
}

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidProduct  = errors.New("invalid product")
)
