package handlers

import (
	"log/slog"
	"net/http"

	"github.com/crucial707/account-service/internal/account"
	"github.com/crucial707/account-service/internal/middleware"
	"github.com/crucial707/account-service/internal/respond"
)

// ==========================
// UserHandler
// ==========================
type UserHandler struct {
	Accounts *account.Service
	Log      *slog.Logger
}

// ==========================
// Me (requires middleware.Authenticate)
// ==========================
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, respond.CodeInvalidToken, "missing token")
		return
	}

	user, err := h.Accounts.Profile(r.Context(), userID)
	if err != nil {
		writeAccountError(w, r, h.Log, "profile", err)
		return
	}

	respond.OK(w, http.StatusOK, user.Profile())
}
