package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/crucial707/account-service/internal/account"
	"github.com/crucial707/account-service/internal/auth"
	"github.com/crucial707/account-service/internal/respond"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// decodeJSON reads the request body into v and answers 400/413 itself on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(w, http.StatusRequestEntityTooLarge, respond.CodeBodyTooLarge, "request body too large")
			return false
		}
		respond.Error(w, http.StatusBadRequest, respond.CodeInvalidJSON, "invalid json")
		return false
	}
	return true
}

// writeAccountError maps the account error taxonomy onto the HTTP envelope.
// Anything unrecognised is logged and reported as a bare 500.
func writeAccountError(w http.ResponseWriter, r *http.Request, log *slog.Logger, op string, err error) {
	var verr *account.ValidationError
	switch {
	case errors.As(err, &verr):
		respond.ValidationError(w, verr.Error(), verr.Fields)
	case errors.Is(err, account.ErrDuplicateEmail):
		respond.Error(w, http.StatusBadRequest, respond.CodeDuplicateEmail, "Email is already registered")
	case errors.Is(err, account.ErrInvalidCredentials):
		respond.Error(w, http.StatusBadRequest, respond.CodeInvalidCredentials, "invalid credentials")
	case errors.Is(err, auth.ErrInvalidToken):
		respond.Error(w, http.StatusUnauthorized, respond.CodeInvalidToken, "invalid token")
	default:
		log.Error(op+" failed",
			"request_id", chimw.GetReqID(r.Context()),
			"error", err)
		respond.Internal(w)
	}
}
