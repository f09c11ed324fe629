package wallet

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("amount must be positive")

// InsufficientFundsError reports a refused debit and carries the shortfall,
// the gap between the requested amount and the current balance.
type InsufficientFundsError struct {
	Shortfall decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: short by %s", e.Shortfall.String())
}
