package history

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/Vishal0325/agri-dost-store-sub000/internal/domain"
	"github.com/Vishal0325/agri-dost-store-sub000/internal/store"
)

const storageKey = "purchaseHistory"

// Log is the append-only record of completed orders. Entries are never
// updated or deleted. The log persists through the port independently from
// the wallet, under its own key.
type Log struct {
	mu      sync.RWMutex
	port    store.Store
	entries []domain.PurchaseHistoryEntry // oldest first
}

// NewLog hydrates the purchase history from the persistence port; a missing
// or unreadable value starts an empty log.
func NewLog(ctx context.Context, port store.Store) *Log {
	l := &Log{port: port}

	raw, err := port.Load(ctx, storageKey)
	if err != nil {
		if !errors.Is(err, store.ErrKeyNotFound) {
			log.Printf("purchase history load failed, starting empty: %v", err)
		}
		return l
	}

	if err := json.Unmarshal([]byte(raw), &l.entries); err != nil {
		log.Printf("purchase history unmarshal failed, starting empty: %v", err)
		l.entries = nil
	}
	return l
}

// Append records a completed order and writes the log through to the port.
// Persistence is best effort; the in-memory log is always appended.
func (l *Log) Append(ctx context.Context, entry domain.PurchaseHistoryEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, entry)

	raw, err := json.Marshal(l.entries)
	if err != nil {
		log.Printf("failed to marshal purchase history: %v", err)
		return
	}
	if err := l.port.Save(ctx, storageKey, string(raw)); err != nil {
		log.Printf("failed to persist purchase history: %v", err)
	}
}

// Recent returns the n most recently placed entries, newest first.
func (l *Log) Recent(n int) []domain.PurchaseHistoryEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if n > len(l.entries) {
		n = len(l.entries)
	}
	out := make([]domain.PurchaseHistoryEntry, 0, n)
	for i := len(l.entries) - 1; i >= len(l.entries)-n; i-- {
		out = append(out, l.entries[i])
	}
	return out
}

// Len reports the number of recorded orders.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
