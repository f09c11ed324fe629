package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Vishal0325/agri-dost-store-sub000/internal/domain"
	"github.com/Vishal0325/agri-dost-store-sub000/internal/wallet"
)

// Top-up bounds are a UI-layer rule, not a wallet invariant; the wallet
// itself only refuses non-positive amounts.
var (
	minTopUp = decimal.NewFromInt(1)
	maxTopUp = decimal.NewFromInt(10000)
)

type WalletHandler struct {
	wallet *wallet.Store
}

func NewWalletHandler(wallet *wallet.Store) *WalletHandler {
	return &WalletHandler{wallet: wallet}
}

type TopUpRequestDTO struct {
	Amount decimal.Decimal `json:"amount"`
}

type WalletResponseDTO struct {
	Balance      decimal.Decimal  `json:"balance"`
	Transactions []TransactionDTO `json:"transactions"`
}

type TransactionDTO struct {
	ID          string          `json:"id"`
	Kind        string          `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Timestamp   time.Time       `json:"timestamp"`
}

type TopUpResponseDTO struct {
	Balance     decimal.Decimal `json:"balance"`
	Transaction TransactionDTO  `json:"transaction"`
}

// GET /api/v1/wallet
func (h *WalletHandler) GetWallet(w http.ResponseWriter, r *http.Request) {
	txs := h.wallet.Transactions()
	dto := WalletResponseDTO{
		Balance:      h.wallet.Balance(),
		Transactions: make([]TransactionDTO, 0, len(txs)),
	}
	for _, tx := range txs {
		dto.Transactions = append(dto.Transactions, transactionDTO(tx))
	}
	respondJSON(w, http.StatusOK, dto)
}

// POST /api/v1/wallet/topup
func (h *WalletHandler) TopUp(w http.ResponseWriter, r *http.Request) {
	var req TopUpRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.Amount.LessThan(minTopUp) || req.Amount.GreaterThan(maxTopUp) {
		respondError(w, http.StatusBadRequest, "invalid_amount",
			"top-up amount must be between "+minTopUp.String()+" and "+maxTopUp.String())
		return
	}

	tx, err := h.wallet.Credit(r.Context(), req.Amount, "Wallet top-up")
	if err != nil {
		if errors.Is(err, wallet.ErrInvalidAmount) {
			respondError(w, http.StatusBadRequest, "invalid_amount", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, TopUpResponseDTO{
		Balance:     h.wallet.Balance(),
		Transaction: transactionDTO(tx),
	})
}

func transactionDTO(tx domain.Transaction) TransactionDTO {
	return TransactionDTO{
		ID:          tx.ID,
		Kind:        string(tx.Kind),
		Amount:      tx.Amount,
		Description: tx.Description,
		Timestamp:   tx.Timestamp,
	}
}
