package domain

import "github.com/shopspring/decimal"

// CartLine is one product row in the shopping cart. ID is the product id and
// is unique within a cart: re-adding an existing product increments Quantity
// instead of inserting a duplicate line. A line with Quantity 0 never exists,
// it is removed instead.
type CartLine struct {
	ID                 int64           `json:"id"`
	Name               string          `json:"name"`
	UnitPrice          decimal.Decimal `json:"unitPrice"`
	Quantity           int             `json:"quantity"`
	IncludedInCheckout bool            `json:"includedInCheckout"`
	SourceBadge        string          `json:"sourceBadge,omitempty"`
	SourceCompany      string          `json:"sourceCompany"`
}

// Subtotal is UnitPrice * Quantity.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
