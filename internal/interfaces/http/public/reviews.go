package public

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sngm3741/doner-finder/api/internal/interfaces/http/common"
	publicapp "github.com/sngm3741/doner-finder/api/internal/public/application"
	"github.com/sngm3741/doner-finder/api/internal/public/domain"
)

func (h *Handler) reviewCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		// ログイン済みならユーザー ID、未ログインなら IP と UA のハッシュで投稿者を識別する。
		var author domain.Author
		var limiterKey string
		if user, ok := common.UserFromContext(r.Context()); ok {
			author = domain.AuthenticatedAuthor(user.ID)
			limiterKey = "user:" + user.ID
		} else {
			if h.fingerprinter == nil {
				if h.logger != nil {
					h.logger.Printf("fingerprinter is not configured")
				}
				common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "Bewertung konnte nicht gespeichert werden"})
				return
			}
			hash := h.fingerprinter.FromRequest(r)
			author = domain.AnonymousAuthor(hash)
			limiterKey = "fp:" + hash
		}

		if h.reviewLimiter != nil && !h.reviewLimiter.Allow(limiterKey) {
			common.WriteJSON(h.logger, w, http.StatusTooManyRequests, map[string]string{"error": "Zu viele Bewertungen, bitte später erneut versuchen"})
			return
		}

		var req createReviewRequest
		if err := common.DecodeJSON(r, &req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		shopID := chi.URLParam(r, "id")
		review, err := h.reviews.Create(ctx, publicapp.CreateReviewCommand{
			ShopID: shopID,
			Rating: req.Rating,
			Text:   req.Text,
			Author: author,
		})
		if err != nil {
			h.writeError(w, err, "Bewertung konnte nicht gespeichert werden", "review create failed shop="+shopID)
			return
		}

		h.notifier.ReviewCreated(*review)
		common.WriteJSON(h.logger, w, http.StatusCreated, buildReviewResponse(*review))
	}
}

func (h *Handler) reviewMineHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, map[string]string{"error": "Anmeldung erforderlich"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		shopID := chi.URLParam(r, "id")
		review, err := h.reviews.UserReviewForShop(ctx, user.ID, shopID)
		if err != nil {
			h.writeError(w, err, "Bewertung konnte nicht geladen werden", "own review fetch failed shop="+shopID)
			return
		}

		var payload *reviewResponse
		if review != nil {
			resp := buildReviewResponse(*review)
			payload = &resp
		}
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]*reviewResponse{"review": payload})
	}
}

func (h *Handler) reviewUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, map[string]string{"error": "Anmeldung erforderlich"})
			return
		}

		var req updateReviewRequest
		if err := common.DecodeJSON(r, &req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		reviewID := strings.TrimSpace(chi.URLParam(r, "id"))
		review, err := h.reviews.Update(ctx, reviewID, user.ID, domain.ReviewPatch{Rating: req.Rating, Text: req.Text})
		if err != nil {
			h.writeError(w, err, "Bewertung konnte nicht aktualisiert werden", "review update failed id="+reviewID)
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, buildReviewResponse(*review))
	}
}

func (h *Handler) reviewDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, map[string]string{"error": "Anmeldung erforderlich"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		reviewID := strings.TrimSpace(chi.URLParam(r, "id"))
		if err := h.reviews.Delete(ctx, reviewID, user.ID); err != nil {
			h.writeError(w, err, "Bewertung konnte nicht gelöscht werden", "review delete failed id="+reviewID)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
