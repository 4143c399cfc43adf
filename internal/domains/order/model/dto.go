package model

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Regions maps every region served to its communes
var Regions = map[string][]string{
	"Región Metropolitana": {"Santiago", "Providencia", "Las Condes"},
	"Valparaíso":           {"Valparaíso", "Viña del Mar", "Quilpué"},
	"Biobío":               {"Concepción", "Talcahuano", "San Pedro de la Paz"},
}

type CheckoutRequest struct {
	Name          string        `json:"nombre"`
	LastName      string        `json:"apellidos"`
	Address       string        `json:"direccion"`
	Region        string        `json:"region"`
	Commune       string        `json:"comuna"`
	PaymentMethod PaymentMethod `json:"metodo_pago"`
}

func (r *CheckoutRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Address = strings.TrimSpace(r.Address)
	r.Region = strings.TrimSpace(r.Region)
	r.Commune = strings.TrimSpace(r.Commune)
	if r.PaymentMethod == "" {
		r.PaymentMethod = PaymentDebit
	}
}

func (r CheckoutRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.LastName, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Address, validation.Required, validation.Length(1, 300)),
		validation.Field(&r.Region, validation.Required, validation.By(knownRegion)),
		validation.Field(&r.Commune, validation.Required, validation.By(r.communeInRegion)),
		validation.Field(&r.PaymentMethod, validation.Required, validation.In(PaymentDebit, PaymentCredit)),
	)
}

func (r CheckoutRequest) Shipping() Shipping {
	return Shipping{
		Name:     r.Name,
		LastName: r.LastName,
		Address:  r.Address,
		Region:   r.Region,
		Commune:  r.Commune,
	}
}

func knownRegion(value interface{}) error {
	region, _ := value.(string)
	if _, ok := Regions[region]; !ok {
		return errors.New("unknown region")
	}
	return nil
}

func (r CheckoutRequest) communeInRegion(value interface{}) error {
	commune, _ := value.(string)
	for _, c := range Regions[r.Region] {
		if c == commune {
			return nil
		}
	}
	return errors.New("commune does not belong to the region")
}

// CheckoutResponse is returned after a successful checkout
type CheckoutResponse struct {
	Order          *Order `json:"order"`
	FormattedTotal string `json:"total_formateado"`
}
