package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseHistoryEntry is the frozen record of one completed checkout:
// quantities and prices are snapshotted at purchase time and never change.
type PurchaseHistoryEntry struct {
	InvoiceID string          `json:"invoiceId"`
	Lines     []CartLine      `json:"lineItemsSnapshot"`
	Total     decimal.Decimal `json:"total"`
	PlacedAt  time.Time       `json:"date"`
}
