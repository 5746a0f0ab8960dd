package public

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sngm3741/doner-finder/api/internal/interfaces/http/common"
	publicapp "github.com/sngm3741/doner-finder/api/internal/public/application"
)

func (h *Handler) favoriteListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, map[string]string{"error": "Anmeldung erforderlich"})
			return
		}

		query := r.URL.Query()
		offset := common.ParseNonNegativeInt(query.Get("offset"), 0)
		limit, _ := common.ParsePositiveInt(query.Get("limit"), publicapp.DefaultLimit)
		if limit > publicapp.MaxLimit {
			limit = publicapp.MaxLimit
		}

		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		entries, err := h.favorites.List(ctx, user.ID, offset, limit)
		if err != nil {
			h.writeError(w, err, "Favoriten konnten nicht geladen werden", "favorite list failed user="+user.ID)
			return
		}

		items := make([]favoriteListItemResponse, 0, len(entries))
		for _, entry := range entries {
			shop := buildShopListItem(entry.Shop, nil)
			shop.IsFavorited = entry.IsFavorited
			items = append(items, favoriteListItemResponse{
				Favorite: buildFavoriteResponse(entry.Favorite),
				Shop:     shop,
			})
		}
		common.WriteJSON(h.logger, w, http.StatusOK, favoriteListResponse{Items: items, Offset: offset, Limit: limit})
	}
}

func (h *Handler) favoriteAddHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, map[string]string{"error": "Anmeldung erforderlich"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		shopID := chi.URLParam(r, "shopId")
		favorite, err := h.favorites.Add(ctx, user.ID, shopID)
		if err != nil {
			h.writeError(w, err, "Favorit konnte nicht gespeichert werden", "favorite add failed shop="+shopID)
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, map[string]favoriteResponse{"favorite": buildFavoriteResponse(*favorite)})
	}
}

func (h *Handler) favoriteRemoveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, map[string]string{"error": "Anmeldung erforderlich"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		shopID := chi.URLParam(r, "shopId")
		if err := h.favorites.Remove(ctx, user.ID, shopID); err != nil {
			h.writeError(w, err, "Favorit konnte nicht entfernt werden", "favorite remove failed shop="+shopID)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
