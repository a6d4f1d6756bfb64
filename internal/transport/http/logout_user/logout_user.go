package logoutuser

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http/httperr"
)

// service is an interface for the service layer.
type service interface {
	Logout(ctx context.Context, token string) error
}

// Logout revokes the bearer session carried by the request.
func Logout(w http.ResponseWriter, r *http.Request, service service) {
	token, _ := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if token == "" {
		http.Error(w, "missing bearer token", http.StatusUnauthorized)

		return
	}

	if err := service.Logout(r.Context(), token); err != nil {
		httperr.Write(w, err)
		slog.Error("Error logging out", "error", err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
