package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Vishal0325/agri-dost-store-sub000/internal/cart"
	"github.com/Vishal0325/agri-dost-store-sub000/internal/checkout"
	"github.com/Vishal0325/agri-dost-store-sub000/internal/domain"
	"github.com/Vishal0325/agri-dost-store-sub000/internal/history"
	"github.com/Vishal0325/agri-dost-store-sub000/internal/store"
	"github.com/Vishal0325/agri-dost-store-sub000/internal/wallet"
)

func setupCheckout(t *testing.T) (*cart.Store, *wallet.Store, *CheckoutHandler) {
	t.Helper()
	ctx := context.Background()
	port := store.NewMemoryStore()
	cartStore := cart.NewStore()
	walletStore := wallet.NewStore(ctx, port)
	historyLog := history.NewLog(ctx, port)
	coordinator := checkout.NewCoordinator(cartStore, walletStore, historyLog)
	return cartStore, walletStore, NewCheckoutHandler(coordinator)
}

func cartLine(id int64, price int64, qty int) domain.CartLine {
	return domain.CartLine{
		ID:            id,
		Name:          "Wheat Seeds",
		UnitPrice:     decimal.NewFromInt(price),
		Quantity:      qty,
		SourceCompany: "Green Valley Agro",
	}
}

func TestCheckout_Created(t *testing.T) {
	cartStore, walletStore, handler := setupCheckout(t)
	cartStore.AddItem(cartLine(1, 450, 1))
	cartStore.AddItem(cartLine(2, 320, 1))
	cartStore.AddItem(cartLine(2, 320, 1))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/checkout", strings.NewReader(`{"delivery_fee":50}`))
	handler.Checkout(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}

	var resp OrderResponseDTO
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.InvoiceID == "" {
		t.Error("expected a non-empty invoice_id")
	}
	if !resp.Total.Equal(decimal.NewFromInt(1140)) {
		t.Errorf("expected total 1140, got %s", resp.Total)
	}
	if len(resp.Items) != 2 {
		t.Errorf("expected 2 items, got %d", len(resp.Items))
	}
	if !walletStore.Balance().Equal(decimal.NewFromInt(3860)) {
		t.Errorf("expected balance 3860, got %s", walletStore.Balance())
	}
}

func TestCheckout_InsufficientFunds(t *testing.T) {
	cartStore, walletStore, handler := setupCheckout(t)
	if _, err := walletStore.Debit(context.Background(), decimal.NewFromInt(4900), "drain"); err != nil {
		t.Fatalf("drain failed: %v", err)
	}
	cartStore.AddItem(cartLine(1, 450, 1))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/checkout", strings.NewReader(`{"delivery_fee":0}`))
	handler.Checkout(rec, req)

	if rec.Code != http.StatusPaymentRequired {
		t.Fatalf("expected %d, got %d", http.StatusPaymentRequired, rec.Code)
	}

	var resp InsufficientFundsResponseDTO
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Code != "insufficient_funds" {
		t.Errorf("expected code insufficient_funds, got %q", resp.Code)
	}
	if !resp.Shortfall.Equal(decimal.NewFromInt(350)) {
		t.Errorf("expected shortfall 350, got %s", resp.Shortfall)
	}
	if !walletStore.Balance().Equal(decimal.NewFromInt(100)) {
		t.Errorf("balance must be unchanged, got %s", walletStore.Balance())
	}
	if len(cartStore.Lines()) != 1 {
		t.Error("cart must be unchanged after a failed checkout")
	}
}

func TestCheckout_NoItemsSelected(t *testing.T) {
	cartStore, _, handler := setupCheckout(t)
	cartStore.AddItem(cartLine(1, 450, 1))
	cartStore.SelectAll(false)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/checkout", strings.NewReader(`{"delivery_fee":0}`))
	handler.Checkout(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected %d, got %d", http.StatusUnprocessableEntity, rec.Code)
	}

	var resp ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Code != "no_items_selected" {
		t.Errorf("expected code no_items_selected, got %q", resp.Code)
	}
}

func TestCheckout_NegativeDeliveryFee(t *testing.T) {
	_, _, handler := setupCheckout(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/checkout", strings.NewReader(`{"delivery_fee":-10}`))
	handler.Checkout(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestCheckout_InvalidBody(t *testing.T) {
	_, _, handler := setupCheckout(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/checkout", strings.NewReader("{not json"))
	handler.Checkout(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected %d, got %d", http.StatusBadRequest, rec.Code)
	}
}
