package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/Vishal0325/agri-dost-store-sub000/internal/cart"
	"github.com/Vishal0325/agri-dost-store-sub000/internal/domain"
)

type CartHandler struct {
	cart *cart.Store
}

func NewCartHandler(cart *cart.Store) *CartHandler {
	return &CartHandler{cart: cart}
}

type AddItemRequestDTO struct {
	ProductID     int64           `json:"product_id"`
	Name          string          `json:"name"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	SourceCompany string          `json:"source_company"`
	SourceBadge   string          `json:"source_badge"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type SelectAllRequestDTO struct {
	Selected bool `json:"selected"`
}

type CartResponseDTO struct {
	Lines         []CartLineDTO   `json:"lines"`
	SelectedTotal decimal.Decimal `json:"selected_total"`
	SelectedCount int             `json:"selected_count"`
}

type CartLineDTO struct {
	ProductID          int64           `json:"product_id"`
	Name               string          `json:"name"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	Quantity           int             `json:"quantity"`
	IncludedInCheckout bool            `json:"included_in_checkout"`
	SourceCompany      string          `json:"source_company"`
	SourceBadge        string          `json:"source_badge,omitempty"`
}

// GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.cartResponse())
}

// POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "invalid_name", "name is required")
		return
	}
	if !req.UnitPrice.IsPositive() {
		respondError(w, http.StatusBadRequest, "invalid_unit_price", "unit_price must be positive")
		return
	}

	h.cart.AddItem(domain.CartLine{
		ID:            req.ProductID,
		Name:          req.Name,
		UnitPrice:     req.UnitPrice,
		SourceCompany: req.SourceCompany,
		SourceBadge:   req.SourceBadge,
	})

	respondJSON(w, http.StatusCreated, h.cartResponse())
}

// PUT /api/v1/cart/items/{product_id}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must not exceed 99")
		return
	}

	// quantity <= 0 removes the line
	h.cart.SetQuantity(productID, req.Quantity)
	respondJSON(w, http.StatusOK, h.cartResponse())
}

// DELETE /api/v1/cart/items/{product_id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	h.cart.RemoveItem(productID)
	respondJSON(w, http.StatusOK, h.cartResponse())
}

// POST /api/v1/cart/items/{product_id}/toggle
func (h *CartHandler) ToggleSelection(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	h.cart.ToggleSelection(productID)
	respondJSON(w, http.StatusOK, h.cartResponse())
}

// POST /api/v1/cart/selection
func (h *CartHandler) SelectAll(w http.ResponseWriter, r *http.Request) {
	var req SelectAllRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	h.cart.SelectAll(req.Selected)
	respondJSON(w, http.StatusOK, h.cartResponse())
}

func (h *CartHandler) cartResponse() CartResponseDTO {
	lines := h.cart.Lines()
	dto := CartResponseDTO{
		Lines:         make([]CartLineDTO, 0, len(lines)),
		SelectedTotal: h.cart.SelectedTotal(),
		SelectedCount: h.cart.SelectedCount(),
	}
	for _, line := range lines {
		dto.Lines = append(dto.Lines, CartLineDTO{
			ProductID:          line.ID,
			Name:               line.Name,
			UnitPrice:          line.UnitPrice,
			Quantity:           line.Quantity,
			IncludedInCheckout: line.IncludedInCheckout,
			SourceCompany:      line.SourceCompany,
			SourceBadge:        line.SourceBadge,
		})
	}
	return dto
}

func productIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "product_id")
	productID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return 0, false
	}
	return productID, true
}
