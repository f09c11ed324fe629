package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TxKind string

const (
	TxKindCredit TxKind = "credit"
	TxKindDebit  TxKind = "debit"
)

// Transaction is a single entry in the wallet ledger. Transactions are
// immutable once created; the log is insertion-ordered, newest first.
type Transaction struct {
	ID          string          `json:"id"`
	Kind        TxKind          `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Timestamp   time.Time       `json:"timestamp"`
}
