package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	catalog "storefront-backend/internal/domains/catalog/model"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// Persisted layout: JSON array of {"producto": {...}, "cantidad": n}.
// Values may have been edited by hand, so every field is decoded leniently.
type wireLine struct {
	Producto *wireProduct `json:"producto"`
	Cantidad interface{}  `json:"cantidad"`
}

type wireProduct struct {
	ID          interface{} `json:"id"`
	Nombre      interface{} `json:"nombre"`
	Descripcion interface{} `json:"descripcion,omitempty"`
	Categoria   interface{} `json:"categoria,omitempty"`
	Precio      interface{} `json:"precio"`
	Stock       interface{} `json:"stock"`
	Imagen      interface{} `json:"imagen,omitempty"`
}

// EncodeLines serializes lines in the persisted layout
func EncodeLines(lines []CartLine) (string, error) {
	out := make([]wireLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, wireLine{
			Producto: &wireProduct{
				ID:          l.Product.ID,
				Nombre:      l.Product.Name,
				Descripcion: l.Product.Description,
				Categoria:   l.Product.Category,
				Precio:      json.Number(l.Product.Price.String()),
				Stock:       l.Product.StockQuantity,
				Imagen:      l.Product.Image,
			},
			Cantidad: l.Quantity,
		})
	}

	data, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("encode cart: %w", err)
	}
	return string(data), nil
}

// DecodeLines parses a persisted cart. Only a value that is not a JSON array
// is an error; individual lines that cannot be read are skipped.
// The result is not sanitized.
func DecodeLines(raw string) ([]CartLine, error) {
	var items []json.RawMessage
	if err := decodeStrict(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCart, err)
	}

	lines := make([]CartLine, 0, len(items))
	for _, item := range items {
		var w wireLine
		if err := decodeStrict(string(item), &w); err != nil || w.Producto == nil {
			continue
		}

		id, ok := coerceInt(w.Producto.ID)
		if !ok || id <= 0 {
			continue
		}

		qty, ok := coerceInt(w.Cantidad)
		if !ok {
			qty = 1
		}
		stock, _ := coerceInt(w.Producto.Stock)

		lines = append(lines, CartLine{
			Product: catalog.Product{
				ID:            id,
				Name:          cast.ToString(w.Producto.Nombre),
				Description:   cast.ToString(w.Producto.Descripcion),
				Category:      cast.ToString(w.Producto.Categoria),
				Price:         coercePrice(w.Producto.Precio),
				StockQuantity: clampInt(stock),
				Image:         cast.ToString(w.Producto.Imagen),
			},
			Quantity: clampInt(qty),
		})
	}
	return lines, nil
}

func decodeStrict(raw string, v interface{}) error {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("trailing data after JSON value")
	}
	return nil
}

// coerceInt accepts numbers, numeric strings and json.Number, truncating
// fractions. Missing, NaN, infinite and non-numeric values report ok=false.
func coerceInt(v interface{}) (int64, bool) {
	if v == nil {
		return 0, false
	}
	if s, isString := v.(string); isString && strings.TrimSpace(s) == "" {
		return 0, false
	}
	if _, isBool := v.(bool); isBool {
		return 0, false
	}

	var f float64
	var err error
	if n, isNumber := v.(json.Number); isNumber {
		f, err = n.Float64()
	} else {
		f, err = cast.ToFloat64E(v)
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	const maxExact = 1 << 53
	if f > maxExact {
		f = maxExact
	}
	if f < -maxExact {
		f = -maxExact
	}
	return int64(f), true
}

// coercePrice returns the price as a decimal; anything unreadable or
// negative becomes 0
func coercePrice(v interface{}) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	if _, isBool := v.(bool); isBool {
		return decimal.Zero
	}
	var s string
	if n, isNumber := v.(json.Number); isNumber {
		s = n.String()
	} else {
		var err error
		if s, err = cast.ToStringE(v); err != nil {
			return decimal.Zero
		}
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func clampInt(v int64) int {
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	if v < math.MinInt32 {
		return math.MinInt32
	}
	return int(v)
}

// IsBlank reports whether raw holds no meaningful JSON (absent or whitespace)
func IsBlank(raw string) bool {
	return strings.TrimSpace(raw) == ""
}
