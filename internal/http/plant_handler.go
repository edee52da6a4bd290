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

type PlantHandler struct {
	catalog *service.CatalogService
	timeout time.Duration
}

func NewPlantHandler(catalog *service.CatalogService, timeout time.Duration) *PlantHandler {
	return &PlantHandler{
		catalog: catalog,
		timeout: timeout,
	}
}

type adjustQuantityRequest struct {
	QuantityToUpdate int                    `json:"quantityToUpdate"`
	Status           service.StockDirection `json:"status"`
}

func (h *PlantHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	plants, err := h.catalog.ListPlants(ctx)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, plants)
}

func (h *PlantHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	plant, err := h.catalog.GetPlant(ctx, chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, plant)
}

// SellerPlants lists the caller's own inventory
func (h *PlantHandler) SellerPlants(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	caller := sessionUser(r.Context())
	plants, err := h.catalog.ListSellerPlants(ctx, caller.Email)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, plants)
}

func (h *PlantHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var input service.PlantInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_input", "invalid JSON body")
		return
	}

	caller := sessionUser(r.Context())
	plant, err := h.catalog.AddPlant(ctx, caller, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, plant)
}

func (h *PlantHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var update domain.PlantUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_input", "invalid JSON body")
		return
	}

	caller := sessionUser(r.Context())
	plant, err := h.catalog.UpdatePlant(ctx, chi.URLParam(r, "id"), update, caller)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, plant)
}

func (h *PlantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	caller := sessionUser(r.Context())
	if err := h.catalog.DeletePlant(ctx, chi.URLParam(r, "id"), caller); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, successResponse{Success: true})
}

// AdjustQuantity applies a direct stock change. Decreases use the same
// guarded decrement as purchases.
func (h *PlantHandler) AdjustQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req adjustQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_input", "invalid JSON body")
		return
	}

	err := h.catalog.AdjustStock(ctx, chi.URLParam(r, "id"), req.QuantityToUpdate, req.Status)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, successResponse{Success: true})
}
