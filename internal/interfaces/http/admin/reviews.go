package admin

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sngm3741/doner-finder/api/internal/interfaces/http/common"
)

func (h *Handler) reviewListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shopID := strings.TrimSpace(chi.URLParam(r, "id"))

		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		reviews, err := h.moderation.ListForShop(ctx, shopID)
		if err != nil {
			h.writeError(w, err, "Bewertungen konnten nicht geladen werden", "admin review list failed shop="+shopID)
			return
		}

		items := make([]reviewResponse, 0, len(reviews))
		for _, review := range reviews {
			items = append(items, buildReviewResponse(review))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{"items": items})
	}
}

func (h *Handler) reviewDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))

		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		if err := h.moderation.Delete(ctx, id); err != nil {
			h.writeError(w, err, "Bewertung konnte nicht gelöscht werden", "admin review delete failed id="+id)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
