package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sahabulislamsifat/PlantStore/internal/domain"
	"github.com/sahabulislamsifat/PlantStore/internal/service"
)

type OrderHandler struct {
	orders  *service.OrderService
	timeout time.Duration
}

func NewOrderHandler(orders *service.OrderService, timeout time.Duration) *OrderHandler {
	return &OrderHandler{
		orders:  orders,
		timeout: timeout,
	}
}

type updateStatusRequest struct {
	Status domain.OrderStatus `json:"status"`
}

// Place reserves stock and records the order. The customer identity is
// taken from the session, never from the request body.
func (h *OrderHandler) Place(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var input service.PlaceOrderInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_input", "invalid JSON body")
		return
	}

	caller := sessionUser(r.Context())
	order, err := h.orders.PlaceOrder(ctx, caller, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, order)
}

// Cancel deletes an order and restores its quantity to stock
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	caller := sessionUser(r.Context())
	if err := h.orders.CancelOrder(ctx, chi.URLParam(r, "id"), caller); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, successResponse{Success: true})
}

// UpdateStatus sets the fulfillment status of an order. Seller only.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_input", "invalid JSON body")
		return
	}

	caller := sessionUser(r.Context())
	order, err := h.orders.UpdateOrderStatus(ctx, chi.URLParam(r, "id"), req.Status, caller)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) CustomerOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	caller := sessionUser(r.Context())
	orders, err := h.orders.ListCustomerOrders(ctx, chi.URLParam(r, "email"), caller)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) SellerOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	caller := sessionUser(r.Context())
	orders, err := h.orders.ListSellerOrders(ctx, chi.URLParam(r, "email"), caller)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, orders)
}
