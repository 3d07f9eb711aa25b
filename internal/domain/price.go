package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Price is a rupee amount. It decodes from JSON numbers, numeric strings or
// null, and encodes as a bare JSON number because the backend declares its
// price fields as floats.
type Price struct {
	decimal.Decimal
}

// NewPrice parses a decimal string such as "2150.50".
func NewPrice(s string) (Price, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Price{}, fmt.Errorf("invalid price %q: %w", s, err)
	}
	return Price{Decimal: d}, nil
}

// PriceFromFloat is for seeding fixtures; wire values go through JSON.
func PriceFromFloat(f float64) Price {
	return Price{Decimal: decimal.NewFromFloat(f)}
}

func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(p.Decimal.String()), nil
}

func (p *Price) UnmarshalJSON(data []byte) error {
	return p.Decimal.UnmarshalJSON(data)
}
