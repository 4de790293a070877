package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Identity is the numeric id; the name is stored
// case-folded so that uniqueness checks are case-insensitive.
type Product struct {
	ID          uint64          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int64           `json:"quantity"`
}

// NormalizeName folds a product name to its canonical form used for
// equality comparisons and storage.
func NormalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

func NewProduct(id uint64, name, description string, price decimal.Decimal, quantity int64) Product {
	return Product{
		ID:          id,
		Name:        NormalizeName(name),
		Description: strings.TrimSpace(description),
		Price:       price,
		Quantity:    quantity,
	}
}
