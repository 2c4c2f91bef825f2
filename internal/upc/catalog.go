package upc

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CatalogItem mirrors the product record returned by the UPC lookup service.
// UPC stays a string so leading zeros survive.
type CatalogItem struct {
	UPC          string `json:"upc"`
	Name         string `json:"name,omitempty"`
	Quantity     string `json:"quantity,omitempty"`
	QuantityUnit string `json:"quantity_unit,omitempty"`
}

// String renders the item in a compact single-line form.
func (c CatalogItem) String() string {
	return fmt.Sprintf("<Item upc=%s name='%s' size: %s%s>", c.UPC, c.Name, c.Quantity, c.QuantityUnit)
}

// Size returns the quantity and unit joined for display, or "" when unknown.
func (c CatalogItem) Size() string {
	qty := strings.TrimSpace(c.Quantity)
	unit := strings.TrimSpace(c.QuantityUnit)
	if qty == "" {
		return unit
	}
	if unit == "" {
		return qty
	}
	return qty + " " + unit
}

// QuantityValue parses Quantity as a decimal number.
func (c CatalogItem) QuantityValue() (decimal.Decimal, error) {
	qty := strings.TrimSpace(c.Quantity)
	if qty == "" {
		return decimal.Zero, fmt.Errorf("quantity is empty")
	}
	value, err := decimal.NewFromString(qty)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse quantity %q: %w", c.Quantity, err)
	}
	return value, nil
}
