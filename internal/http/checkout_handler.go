package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Vishal0325/agri-dost-store-sub000/internal/checkout"
	"github.com/Vishal0325/agri-dost-store-sub000/internal/domain"
	"github.com/Vishal0325/agri-dost-store-sub000/internal/wallet"
)

type CheckoutHandler struct {
	coordinator *checkout.Coordinator
}

func NewCheckoutHandler(coordinator *checkout.Coordinator) *CheckoutHandler {
	return &CheckoutHandler{coordinator: coordinator}
}

type CheckoutRequestDTO struct {
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
}

type OrderResponseDTO struct {
	InvoiceID string          `json:"invoice_id"`
	Items     []OrderItemDTO  `json:"items"`
	Total     decimal.Decimal `json:"total"`
	PlacedAt  time.Time       `json:"placed_at"`
}

type OrderItemDTO struct {
	ProductID     int64           `json:"product_id"`
	Name          string          `json:"name"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Quantity      int             `json:"quantity"`
	SourceCompany string          `json:"source_company"`
	SourceBadge   string          `json:"source_badge,omitempty"`
}

type InsufficientFundsResponseDTO struct {
	Error     string          `json:"error"`
	Code      string          `json:"code"`
	Shortfall decimal.Decimal `json:"shortfall"`
}

// POST /api/v1/checkout
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.DeliveryFee.IsNegative() {
		respondError(w, http.StatusBadRequest, "invalid_delivery_fee", "delivery_fee must not be negative")
		return
	}

	entry, err := h.coordinator.Checkout(r.Context(), req.DeliveryFee)
	if err != nil {
		var insufficient *wallet.InsufficientFundsError
		switch {
		case errors.Is(err, checkout.ErrNoItemsSelected):
			respondError(w, http.StatusUnprocessableEntity, "no_items_selected",
				"no cart lines are marked for checkout")
		case errors.As(err, &insufficient):
			respondJSON(w, http.StatusPaymentRequired, InsufficientFundsResponseDTO{
				Error:     http.StatusText(http.StatusPaymentRequired),
				Code:      "insufficient_funds",
				Shortfall: insufficient.Shortfall,
			})
		default:
			respondError(w, http.StatusInternalServerError, "internal_error", err.Error())
		}
		return
	}

	log.Printf("checkout completed invoice = %v total = %v request_id = %v",
		entry.InvoiceID, entry.Total, getRequestID(r.Context()))
	respondJSON(w, http.StatusCreated, orderDTO(*entry))
}

func orderDTO(entry domain.PurchaseHistoryEntry) OrderResponseDTO {
	dto := OrderResponseDTO{
		InvoiceID: entry.InvoiceID,
		Items:     make([]OrderItemDTO, 0, len(entry.Lines)),
		Total:     entry.Total,
		PlacedAt:  entry.PlacedAt,
	}
	for _, line := range entry.Lines {
		dto.Items = append(dto.Items, OrderItemDTO{
			ProductID:     line.ID,
			Name:          line.Name,
			UnitPrice:     line.UnitPrice,
			Quantity:      line.Quantity,
			SourceCompany: line.SourceCompany,
			SourceBadge:   line.SourceBadge,
		})
	}
	return dto
}
