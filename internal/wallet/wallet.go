package wallet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Vishal0325/agri-dost-store-sub000/internal/domain"
	"github.com/Vishal0325/agri-dost-store-sub000/internal/store"
)

const (
	balanceKey      = "walletBalance"
	transactionsKey = "walletTransactions"
)

var seedBalance = decimal.NewFromInt(5000)

// Store holds the wallet ledger: an append-only transaction log plus the
// derived balance. The log is the source of truth; balance always equals the
// seed plus credits minus debits over the full log. Every successful mutation
// is written through to the persistence port; a failed write is logged and
// the wallet keeps serving from memory.
type Store struct {
	mu           sync.Mutex
	port         store.Store
	balance      decimal.Decimal
	transactions []domain.Transaction // newest first
}

// NewStore hydrates the wallet from the persistence port. When no state is
// saved (or the saved state cannot be read) it seeds a fresh wallet with the
// welcome credit.
func NewStore(ctx context.Context, port store.Store) *Store {
	s := &Store{port: port}

	raw, err := port.Load(ctx, balanceKey)
	if err == nil {
		hydrateErr := s.hydrate(ctx, raw)
		if hydrateErr == nil {
			return s
		}
		log.Printf("wallet hydration failed, reseeding: %v", hydrateErr)
	} else if !errors.Is(err, store.ErrKeyNotFound) {
		log.Printf("wallet load failed, starting fresh: %v", err)
	}

	s.seed(ctx)
	return s
}

func (s *Store) hydrate(ctx context.Context, rawBalance string) error {
	balance, err := decimal.NewFromString(rawBalance)
	if err != nil {
		return fmt.Errorf("parse saved balance: %w", err)
	}

	var transactions []domain.Transaction
	rawTxs, err := s.port.Load(ctx, transactionsKey)
	if err != nil && !errors.Is(err, store.ErrKeyNotFound) {
		return fmt.Errorf("load transactions: %w", err)
	}
	if err == nil {
		if err := json.Unmarshal([]byte(rawTxs), &transactions); err != nil {
			return fmt.Errorf("unmarshal transactions: %w", err)
		}
	}

	s.balance = balance
	s.transactions = transactions
	return nil
}

func (s *Store) seed(ctx context.Context) {
	s.balance = seedBalance
	s.transactions = []domain.Transaction{{
		ID:          newTxID(),
		Kind:        domain.TxKindCredit,
		Amount:      seedBalance,
		Description: "Welcome bonus",
		Timestamp:   time.Now(),
	}}
	s.persistLocked(ctx)
}

// Credit appends a credit transaction and increases the balance.
// Fails only with ErrInvalidAmount for non-positive amounts.
func (s *Store) Credit(ctx context.Context, amount decimal.Decimal, description string) (domain.Transaction, error) {
	if !amount.IsPositive() {
		return domain.Transaction{}, ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := domain.Transaction{
		ID:          newTxID(),
		Kind:        domain.TxKindCredit,
		Amount:      amount,
		Description: description,
		Timestamp:   time.Now(),
	}
	s.transactions = append([]domain.Transaction{tx}, s.transactions...)
	s.balance = s.balance.Add(amount)
	s.persistLocked(ctx)
	return tx, nil
}

// Debit appends a debit transaction and decreases the balance. There is no
// partial debit: when amount exceeds the balance it fails with
// InsufficientFundsError carrying the shortfall and the wallet is unchanged.
func (s *Store) Debit(ctx context.Context, amount decimal.Decimal, description string) (domain.Transaction, error) {
	if !amount.IsPositive() {
		return domain.Transaction{}, ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if amount.GreaterThan(s.balance) {
		return domain.Transaction{}, &InsufficientFundsError{Shortfall: amount.Sub(s.balance)}
	}

	tx := domain.Transaction{
		ID:          newTxID(),
		Kind:        domain.TxKindDebit,
		Amount:      amount,
		Description: description,
		Timestamp:   time.Now(),
	}
	s.transactions = append([]domain.Transaction{tx}, s.transactions...)
	s.balance = s.balance.Sub(amount)
	s.persistLocked(ctx)
	return tx, nil
}

// Balance returns the current balance.
func (s *Store) Balance() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balance
}

// Transactions returns a copy of the log, newest first.
func (s *Store) Transactions() []domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// persistLocked writes the full (balance, transactions) state through to the
// port. Best effort: storage being unavailable must not fail the mutation.
func (s *Store) persistLocked(ctx context.Context) {
	if err := s.port.Save(ctx, balanceKey, s.balance.String()); err != nil {
		log.Printf("failed to persist wallet balance: %v", err)
		return
	}

	raw, err := json.Marshal(s.transactions)
	if err != nil {
		log.Printf("failed to marshal wallet transactions: %v", err)
		return
	}
	if err := s.port.Save(ctx, transactionsKey, string(raw)); err != nil {
		log.Printf("failed to persist wallet transactions: %v", err)
	}
}

func newTxID() string {
	return fmt.Sprintf("TXN-%d", time.Now().UnixNano())
}
