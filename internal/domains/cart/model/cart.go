package model

import (
	catalog "storefront-backend/internal/domains/catalog/model"

	"github.com/shopspring/decimal"
)

// ProductLookupFunc resolves the live catalog entry of a product
type ProductLookupFunc func(productID int64) (catalog.Product, bool)

// MaxQuantity returns min(product.StockQuantity, GlobalMax), never negative
func MaxQuantity(p catalog.Product) int {
	limit := p.StockQuantity
	if limit > GlobalMax {
		limit = GlobalMax
	}
	if limit < 0 {
		limit = 0
	}
	return limit
}

// ClampQuantity clamps quantity into [1, MaxQuantity(p)].
// The lower bound wins when the product has no stock left.
func ClampQuantity(quantity int, p catalog.Product) int {
	if limit := MaxQuantity(p); quantity > limit {
		quantity = limit
	}
	if quantity < 1 {
		quantity = 1
	}
	return quantity
}

// SanitizeLine restores the quantity invariant of line against product,
// the authoritative entry for the line (live catalog or its own snapshot).
// The product's stock replaces the snapshot's so later clamps use it too.
func SanitizeLine(line CartLine, product catalog.Product) CartLine {
	line.Product.StockQuantity = product.StockQuantity
	if line.Product.Price.IsNegative() {
		line.Product.Price = decimal.Zero
	}
	line.Quantity = ClampQuantity(line.Quantity, line.Product)
	return line
}

// SanitizeLines sanitizes every line, drops lines without a usable product
// id, and folds duplicate product ids into the first occurrence.
// With a non-nil lookup, lines whose product left the catalog are dropped and
// stock is taken from the live entry.
func SanitizeLines(lines []CartLine, lookup ProductLookupFunc) []CartLine {
	out := make([]CartLine, 0, len(lines))
	index := make(map[int64]int, len(lines))

	for _, line := range lines {
		if line.Product.ID <= 0 {
			continue
		}

		authoritative := line.Product
		if lookup != nil {
			live, ok := lookup(line.Product.ID)
			if !ok {
				continue
			}
			authoritative = live
		}

		if i, dup := index[line.Product.ID]; dup {
			out[i].Quantity += line.Quantity
			out[i] = SanitizeLine(out[i], authoritative)
			continue
		}

		index[line.Product.ID] = len(out)
		out = append(out, SanitizeLine(line, authoritative))
	}
	return out
}

// FindLine returns the index of the line for productID, or -1
func FindLine(lines []CartLine, productID int64) int {
	for i := range lines {
		if lines[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

// Subtotal is price x quantity, treating a negative price as 0 and a
// non-positive quantity as 1
func (l CartLine) Subtotal() decimal.Decimal {
	price := l.Product.Price
	if price.IsNegative() {
		price = decimal.Zero
	}
	qty := l.Quantity
	if qty < 1 {
		qty = 1
	}
	return price.Mul(decimal.NewFromInt(int64(qty)))
}

// CountUnits sums the quantities of all lines
func CountUnits(lines []CartLine) int {
	total := 0
	for _, l := range lines {
		total += l.Quantity
	}
	return total
}

// CloneLines returns a copy that callers may keep or modify
func CloneLines(lines []CartLine) []CartLine {
	out := make([]CartLine, len(lines))
	copy(out, lines)
	return out
}
