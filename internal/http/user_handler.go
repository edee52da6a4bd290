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

type UserHandler struct {
	users   *service.UserService
	timeout time.Duration
}

func NewUserHandler(users *service.UserService, timeout time.Duration) *UserHandler {
	return &UserHandler{
		users:   users,
		timeout: timeout,
	}
}

type upsertUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	PhotoURL string `json:"photoURL"`
}

type roleResponse struct {
	Role domain.Role `json:"role"`
}

type setRoleRequest struct {
	Role domain.Role `json:"role"`
}

// Upsert records a login: creates the account with role customer if it
// does not exist yet, returns the stored account either way.
func (h *UserHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	email := chi.URLParam(r, "email")

	var req upsertUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_input", "invalid JSON body")
		return
	}

	user, err := h.users.UpsertUser(ctx, req.Name, email, req.PhotoURL)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// GetRole is public: the client uses it to render role-specific menus
func (h *UserHandler) GetRole(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	role, err := h.users.GetRole(ctx, chi.URLParam(r, "email"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, roleResponse{Role: role})
}

// ListAll returns every account except the caller's own. Admin only.
func (h *UserHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	caller := sessionUser(r.Context())
	users, err := h.users.ListUsers(ctx, caller.Email)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, users)
}

// SetRole grants a role and marks the account verified. Admin only.
func (h *UserHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req setRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_input", "invalid JSON body")
		return
	}

	if err := h.users.SetUserRole(ctx, chi.URLParam(r, "email"), req.Role); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, successResponse{Success: true})
}

// RequestSeller flags the caller's own account as wanting the seller role
func (h *UserHandler) RequestSeller(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	caller := sessionUser(r.Context())
	email := chi.URLParam(r, "email")
	if caller.Email != email && caller.Role != domain.RoleAdmin {
		respondError(w, http.StatusForbidden, "forbidden", "cannot request a role for another account")
		return
	}

	if err := h.users.RequestSellerRole(ctx, email); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, successResponse{Success: true})
}
