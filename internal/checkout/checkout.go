package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/Vishal0325/agri-dost-store-sub000/internal/cart"
	"github.com/Vishal0325/agri-dost-store-sub000/internal/domain"
	"github.com/Vishal0325/agri-dost-store-sub000/internal/history"
	"github.com/Vishal0325/agri-dost-store-sub000/internal/wallet"
)

var ErrNoItemsSelected = errors.New("no items selected for checkout")

// Coordinator runs the one compound operation in the system: reconcile the
// selected cart lines against wallet funds. Either the debit and the
// cart-clear both happen, or neither happens.
type Coordinator struct {
	cart    *cart.Store
	wallet  *wallet.Store
	history *history.Log
	sfg     singleflight.Group // collapses duplicate "pay" events while a checkout is in flight
}

func NewCoordinator(cart *cart.Store, wallet *wallet.Store, history *history.Log) *Coordinator {
	return &Coordinator{
		cart:    cart,
		wallet:  wallet,
		history: history,
	}
}

// Checkout debits selectedTotal + deliveryFee from the wallet, snapshots the
// selected lines into a purchase history entry, and removes them from the
// cart. On InsufficientFundsError (shortfall attached) or ErrNoItemsSelected
// nothing is mutated. Concurrent invocations share the first call's result
// instead of performing a second debit.
func (c *Coordinator) Checkout(ctx context.Context, deliveryFee decimal.Decimal) (*domain.PurchaseHistoryEntry, error) {
	v, err, _ := c.sfg.Do("checkout", func() (interface{}, error) {
		return c.checkout(ctx, deliveryFee)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.PurchaseHistoryEntry), nil
}

func (c *Coordinator) checkout(ctx context.Context, deliveryFee decimal.Decimal) (*domain.PurchaseHistoryEntry, error) {
	selected := c.cart.SelectedLines()
	if len(selected) == 0 {
		return nil, ErrNoItemsSelected
	}

	total := c.cart.SelectedTotal().Add(deliveryFee)

	// The wallet refuses the whole debit on insufficient funds, so the cart
	// is untouched on failure.
	_, err := c.wallet.Debit(ctx, total, fmt.Sprintf("Order of %d items", len(selected)))
	if err != nil {
		return nil, err
	}

	entry := domain.PurchaseHistoryEntry{
		InvoiceID: uuid.New().String(),
		Lines:     selected,
		Total:     total,
		PlacedAt:  time.Now(),
	}
	c.history.Append(ctx, entry)
	c.cart.RemovePurchasedLines()

	return &entry, nil
}
