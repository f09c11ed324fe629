package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/Vishal0325/agri-dost-store-sub000/internal/domain"
)

// Store holds the shopping cart for one session: line items, quantities and
// the per-line "included in next checkout" flag. Cart state is memory-only
// and does not survive a restart; only the wallet and the purchase history
// persist. Lines keep insertion order.
type Store struct {
	mu    sync.RWMutex
	lines []domain.CartLine
}

func NewStore() *Store {
	return &Store{}
}

// AddItem inserts a new line with quantity 1, or increments the quantity of
// an existing line with the same product id. Either way the line is marked
// for checkout.
func (s *Store) AddItem(item domain.CartLine) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ID == item.ID {
			s.lines[i].Quantity++
			s.lines[i].IncludedInCheckout = true
			return
		}
	}

	item.Quantity = 1
	item.IncludedInCheckout = true
	s.lines = append(s.lines, item)
}

// RemoveItem deletes the line unconditionally. No-op if absent.
func (s *Store) RemoveItem(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeLocked(id)
}

func (s *Store) removeLocked(id int64) {
	for i, line := range s.lines {
		if line.ID == id {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return
		}
	}
}

// SetQuantity sets the line's quantity to n. A quantity of zero or less
// removes the line; a line with quantity 0 never exists.
func (s *Store) SetQuantity(id int64, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n <= 0 {
		s.removeLocked(id)
		return
	}
	for i := range s.lines {
		if s.lines[i].ID == id {
			s.lines[i].Quantity = n
			return
		}
	}
}

// ToggleSelection flips IncludedInCheckout for that line only.
func (s *Store) ToggleSelection(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ID == id {
			s.lines[i].IncludedInCheckout = !s.lines[i].IncludedInCheckout
			return
		}
	}
}

// SelectAll sets IncludedInCheckout on every line.
func (s *Store) SelectAll(flag bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		s.lines[i].IncludedInCheckout = flag
	}
}

// SelectedTotal is the sum of UnitPrice*Quantity over selected lines.
func (s *Store) SelectedTotal() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for _, line := range s.lines {
		if line.IncludedInCheckout {
			total = total.Add(line.Subtotal())
		}
	}
	return total
}

// SelectedCount is the sum of quantities over selected lines.
func (s *Store) SelectedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, line := range s.lines {
		if line.IncludedInCheckout {
			count += line.Quantity
		}
	}
	return count
}

// Lines returns a copy of all cart lines.
func (s *Store) Lines() []domain.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// SelectedLines returns a copy of the lines marked for checkout.
func (s *Store) SelectedLines() []domain.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.CartLine
	for _, line := range s.lines {
		if line.IncludedInCheckout {
			out = append(out, line)
		}
	}
	return out
}

// RemovePurchasedLines deletes every selected line. Called by the checkout
// coordinator after a confirmed debit; unselected lines stay in the cart.
func (s *Store) RemovePurchasedLines() {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.lines[:0]
	for _, line := range s.lines {
		if !line.IncludedInCheckout {
			kept = append(kept, line)
		}
	}
	s.lines = kept
}
