package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sahabulislamsifat/PlantStore/internal/auth"
)

type AuthHandler struct {
	tokens        *auth.TokenMaker
	cookieTTL     time.Duration
	secureCookies bool
}

func NewAuthHandler(tokens *auth.TokenMaker, cookieTTL time.Duration, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		tokens:        tokens,
		cookieTTL:     cookieTTL,
		secureCookies: secureCookies,
	}
}

type issueTokenRequest struct {
	Email string `json:"email"`
}

type successResponse struct {
	Success bool `json:"success"`
}

// IssueToken signs a session token for the given email and sets it as
// an HTTP-only cookie.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req issueTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_input", "invalid JSON body")
		return
	}
	if req.Email == "" {
		respondError(w, http.StatusBadRequest, "invalid_input", "email is required")
		return
	}

	token, err := h.tokens.CreateToken(req.Email)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to issue token")
		return
	}

	http.SetCookie(w, h.sessionCookie(token, h.cookieTTL))
	respondJSON(w, http.StatusOK, successResponse{Success: true})
}

// Logout clears the session cookie
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.sessionCookie("", -time.Hour))
	respondJSON(w, http.StatusOK, successResponse{Success: true})
}

func (h *AuthHandler) sessionCookie(value string, ttl time.Duration) *http.Cookie {
	sameSite := http.SameSiteStrictMode
	if h.secureCookies {
		sameSite = http.SameSiteNoneMode
	}
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: sameSite,
	}
}
