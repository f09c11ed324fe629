package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Vishal0325/agri-dost-store-sub000/internal/store"
	"github.com/Vishal0325/agri-dost-store-sub000/internal/wallet"
)

func setupWallet(t *testing.T) (*wallet.Store, *WalletHandler) {
	t.Helper()
	walletStore := wallet.NewStore(context.Background(), store.NewMemoryStore())
	return walletStore, NewWalletHandler(walletStore)
}

func TestGetWallet(t *testing.T) {
	_, handler := setupWallet(t)

	rec := httptest.NewRecorder()
	handler.GetWallet(rec, httptest.NewRequest("GET", "/api/v1/wallet", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}

	var resp WalletResponseDTO
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Balance.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("expected balance 5000, got %s", resp.Balance)
	}
	if len(resp.Transactions) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(resp.Transactions))
	}
	if resp.Transactions[0].Kind != "credit" {
		t.Errorf("expected welcome credit, got %q", resp.Transactions[0].Kind)
	}
}

func TestTopUp_Success(t *testing.T) {
	walletStore, handler := setupWallet(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/wallet/topup", strings.NewReader(`{"amount":500}`))
	handler.TopUp(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}

	var resp TopUpResponseDTO
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Balance.Equal(decimal.NewFromInt(5500)) {
		t.Errorf("expected balance 5500, got %s", resp.Balance)
	}
	if resp.Transaction.Description != "Wallet top-up" {
		t.Errorf("unexpected description %q", resp.Transaction.Description)
	}
	if !walletStore.Balance().Equal(decimal.NewFromInt(5500)) {
		t.Errorf("store balance mismatch: %s", walletStore.Balance())
	}
}

func TestTopUp_Bounds(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero", `{"amount":0}`},
		{"negative", `{"amount":-50}`},
		{"below minimum", `{"amount":0.5}`},
		{"above maximum", `{"amount":10001}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			walletStore, handler := setupWallet(t)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/api/v1/wallet/topup", strings.NewReader(tt.body))
			handler.TopUp(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected %d, got %d", http.StatusBadRequest, rec.Code)
			}
			if !walletStore.Balance().Equal(decimal.NewFromInt(5000)) {
				t.Errorf("balance must be unchanged, got %s", walletStore.Balance())
			}
		})
	}
}

func TestTopUp_InvalidBody(t *testing.T) {
	_, handler := setupWallet(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/wallet/topup", strings.NewReader("{not json"))
	handler.TopUp(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected %d, got %d", http.StatusBadRequest, rec.Code)
	}
}
