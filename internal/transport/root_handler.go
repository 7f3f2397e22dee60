package transport

import (
	"context"
	"net/http"
	"time"

	"catalog-orders/internal/database"
	"catalog-orders/internal/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const healthTimeout = 2 * time.Second

// RootHandler serves liveness and readiness
type RootHandler struct {
	gw     database.Gateway
	logger *zap.Logger
}

func NewRootHandler(gw database.Gateway, logger *zap.Logger) *RootHandler {
	return &RootHandler{gw: gw, logger: logger}
}

func (h *RootHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Root)
	r.Get("/health", h.Health)
}

// Root reports that the process is up
func (h *RootHandler) Root(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, MessageResponse{Message: "Catalog & Orders API is running!"})
}

// Health reports whether the document store answers a ping
func (h *RootHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := h.gw.Ping(ctx); err != nil {
		h.logger.Warn("Health check failed", zap.Error(err))
		middleware.RespondWithJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
			"detail": err.Error(),
		})
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
