package handlers

import (
	"net/http"

	"github.com/crucial707/account-service/internal/respond"
)

// Health reports liveness only; it does not touch the store.
func Health(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
