package history

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vishal0325/agri-dost-store-sub000/internal/domain"
	"github.com/Vishal0325/agri-dost-store-sub000/internal/store"
)

func entry(total int64) domain.PurchaseHistoryEntry {
	return domain.PurchaseHistoryEntry{
		InvoiceID: uuid.New().String(),
		Lines: []domain.CartLine{
			{ID: 1, Name: "Wheat Seeds", UnitPrice: decimal.NewFromInt(total), Quantity: 1, IncludedInCheckout: true, SourceCompany: "Green Valley Agro"},
		},
		Total:    decimal.NewFromInt(total),
		PlacedAt: time.Now(),
	}
}

func TestAppendAndRecent(t *testing.T) {
	ctx := context.Background()
	l := NewLog(ctx, store.NewMemoryStore())

	first := entry(100)
	second := entry(200)
	third := entry(300)
	l.Append(ctx, first)
	l.Append(ctx, second)
	l.Append(ctx, third)

	recent := l.Recent(2)
	require.Len(t, recent, 2)
	assert.Equal(t, third.InvoiceID, recent[0].InvoiceID, "recent must be newest first")
	assert.Equal(t, second.InvoiceID, recent[1].InvoiceID)
	assert.Equal(t, 3, l.Len())
}

func TestRecent_MoreThanStored(t *testing.T) {
	ctx := context.Background()
	l := NewLog(ctx, store.NewMemoryStore())
	l.Append(ctx, entry(100))

	assert.Len(t, l.Recent(10), 1)
	assert.Empty(t, l.Recent(0))
}

func TestPersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	port := store.NewMemoryStore()

	first := NewLog(ctx, port)
	for i := 0; i < 3; i++ {
		first.Append(ctx, entry(int64(100*(i+1))))
	}

	second := NewLog(ctx, port)
	require.Equal(t, 3, second.Len())

	want := first.Recent(3)
	got := second.Recent(3)
	for i := range want {
		assert.Equal(t, want[i].InvoiceID, got[i].InvoiceID)
		assert.True(t, got[i].Total.Equal(want[i].Total))
		require.Len(t, got[i].Lines, len(want[i].Lines))
	}
}

func TestNewLog_CorruptStateStartsEmpty(t *testing.T) {
	ctx := context.Background()
	port := store.NewMemoryStore()
	require.NoError(t, port.Save(ctx, "purchaseHistory", "{not json"))

	l := NewLog(ctx, port)
	assert.Equal(t, 0, l.Len())
}

func TestPersistedShape(t *testing.T) {
	ctx := context.Background()
	port := store.NewMemoryStore()

	l := NewLog(ctx, port)
	e := entry(450)
	l.Append(ctx, e)

	raw, err := port.Load(ctx, "purchaseHistory")
	require.NoError(t, err)
	assert.Contains(t, raw, fmt.Sprintf("%q", e.InvoiceID))
	assert.Contains(t, raw, `"invoiceId"`)
	assert.Contains(t, raw, `"lineItemsSnapshot"`)
	assert.Contains(t, raw, `"total"`)
	assert.Contains(t, raw, `"date"`)
}
