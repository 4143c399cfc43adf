package model

import (
	"time"

	cart "storefront-backend/internal/domains/cart/model"
	identity "storefront-backend/internal/domains/identity/model"

	"github.com/shopspring/decimal"
)

// OrdersKey is the storage key holding every placed order
const OrdersKey = "ordenes"

// DateLayout renders order dates the way Chilean locales do
const DateLayout = "02-01-2006, 15:04:05"

type PaymentMethod string

const (
	PaymentDebit  PaymentMethod = "debito"
	PaymentCredit PaymentMethod = "credito"
)

type Shipping struct {
	Name     string `json:"nombre"`
	LastName string `json:"apellidos"`
	Address  string `json:"direccion"`
	Region   string `json:"region"`
	Commune  string `json:"comuna"`
}

// Order is a completed purchase. ID is the placement time in unix
// milliseconds, bumped when two orders land on the same millisecond.
type Order struct {
	ID             int64             `json:"id"`
	Date           string            `json:"fecha"`
	PlacedAt       time.Time         `json:"creado_en"`
	Customer       identity.Identity `json:"cliente"`
	Items          []cart.CartLine   `json:"items"`
	SubTotal       decimal.Decimal   `json:"subtotal"`
	DiscountAmount decimal.Decimal   `json:"descuento"`
	Total          decimal.Decimal   `json:"total"`
	Shipping       Shipping          `json:"envio"`
	PaymentMethod  PaymentMethod     `json:"metodo_pago"`
}

// Units is the number of items bought
func (o Order) Units() int {
	return cart.CountUnits(o.Items)
}

// OrderConfirmationPayload is the asynq payload of the confirmation task
type OrderConfirmationPayload struct {
	OrderID       int64  `json:"order_id"`
	Email         string `json:"email"`
	CustomerName  string `json:"customer_name"`
	Date          string `json:"date"`
	Units         int    `json:"units"`
	Total         string `json:"total"`
	PaymentMethod string `json:"payment_method"`
	Address       string `json:"address"`
}

// SalesSummary aggregates placed orders
type SalesSummary struct {
	Orders  int             `json:"orders"`
	Units   int             `json:"units"`
	Revenue decimal.Decimal `json:"revenue"`
}

func Summarize(orders []Order) SalesSummary {
	s := SalesSummary{Revenue: decimal.Zero}
	for _, o := range orders {
		s.Orders++
		s.Units += o.Units()
		s.Revenue = s.Revenue.Add(o.Total)
	}
	return s
}
