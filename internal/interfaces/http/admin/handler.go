package admin

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	adminapp "github.com/sngm3741/doner-finder/api/internal/admin/application"
	admindomain "github.com/sngm3741/doner-finder/api/internal/admin/domain"
	"github.com/sngm3741/doner-finder/api/internal/interfaces/http/common"
)

// Handler wires admin HTTP endpoints to application services.
type Handler struct {
	logger     *log.Logger
	shops      adminapp.ShopService
	moderation adminapp.ReviewModerationService
	timeout    time.Duration
}

// Config provides dependencies for Handler.
type Config struct {
	Logger     *log.Logger
	Shops      adminapp.ShopService
	Moderation adminapp.ReviewModerationService
	Timeout    time.Duration
}

// NewHandler constructs an admin HTTP handler set.
func NewHandler(cfg Config) *Handler {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Handler{
		logger:     cfg.Logger,
		shops:      cfg.Shops,
		moderation: cfg.Moderation,
		timeout:    timeout,
	}
}

// Register mounts admin routes onto router. Authentication and role checks are applied by the caller.
func (h *Handler) Register(r chi.Router) {
	r.Get("/shops", h.shopListHandler())
	r.Post("/shops", h.shopCreateHandler())
	r.Get("/shops/{id}", h.shopDetailHandler())
	r.Patch("/shops/{id}", h.shopUpdateHandler())
	r.Delete("/shops/{id}", h.shopDeleteHandler())
	r.Patch("/shops/{id}/publish", h.shopPublishHandler())
	r.Put("/shops/{id}/hours", h.shopHoursHandler())
	r.Post("/shops/{id}/photos", h.photoAddHandler())
	r.Delete("/shops/{id}/photos/{photoId}", h.photoRemoveHandler())
	r.Get("/shops/{id}/reviews", h.reviewListHandler())
	r.Delete("/reviews/{id}", h.reviewDeleteHandler())
}

// writeError extends the shared mapping with admin command failures.
func (h *Handler) writeError(w http.ResponseWriter, err error, fallback, logContext string) {
	switch {
	case errors.Is(err, adminapp.ErrInvalidInput):
		common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, admindomain.ErrSlugTaken):
		common.WriteJSON(h.logger, w, http.StatusConflict, map[string]string{"error": "Slug ist bereits vergeben"})
	default:
		common.WriteError(h.logger, w, err, fallback, logContext)
	}
}
