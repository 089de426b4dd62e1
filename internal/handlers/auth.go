package handlers

import (
	"log/slog"
	"net/http"

	"github.com/crucial707/account-service/internal/account"
	"github.com/crucial707/account-service/internal/respond"
)

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	Accounts *account.Service
	Log      *slog.Logger
}

type loginResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// ==========================
// Signup
// ==========================
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var input account.SignupInput
	if !decodeJSON(w, r, &input) {
		return
	}

	user, err := h.Accounts.Signup(r.Context(), input)
	if err != nil {
		writeAccountError(w, r, h.Log, "signup", err)
		return
	}

	respond.OK(w, http.StatusCreated, user.Profile())
}

// ==========================
// Login
// ==========================
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input account.LoginInput
	if !decodeJSON(w, r, &input) {
		return
	}

	tok, err := h.Accounts.Login(r.Context(), input)
	if err != nil {
		writeAccountError(w, r, h.Log, "login", err)
		return
	}

	respond.OK(w, http.StatusOK, loginResponse{
		AccessToken: tok.AccessToken,
		TokenType:   tok.TokenType,
		ExpiresIn:   tok.ExpiresIn,
	})
}
