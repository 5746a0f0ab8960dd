package public

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sngm3741/doner-finder/api/internal/interfaces/http/common"
	publicapp "github.com/sngm3741/doner-finder/api/internal/public/application"
)

func (h *Handler) shopListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := common.ParseShopFilter(r.URL.Query())
		if err != nil {
			h.writeError(w, err, "", "")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		shops, err := h.shops.Query(ctx, filter)
		if err != nil {
			h.writeError(w, err, "Läden konnten nicht geladen werden", "shop list fetch failed")
			return
		}

		var favorited map[string]bool
		if user, ok := common.UserFromContext(r.Context()); ok && h.favorites != nil && len(shops) > 0 {
			favorited, err = h.favorites.FavoritedShopIDs(ctx, user.ID)
			if err != nil {
				// お気に入り判定に失敗しても一覧は返す
				if h.logger != nil {
					h.logger.Printf("favorite lookup failed user=%s: %v", user.ID, err)
				}
				favorited = nil
			}
		}

		items := make([]shopListItemResponse, 0, len(shops))
		for _, shop := range shops {
			item := buildShopListItem(shop, filter.Origin)
			item.IsFavorited = favorited[shop.ID]
			items = append(items, item)
		}

		offset, limit := filter.Offset, filter.Limit
		if limit <= 0 {
			limit = publicapp.DefaultLimit
		}
		if limit > publicapp.MaxLimit {
			limit = publicapp.MaxLimit
		}
		common.WriteJSON(h.logger, w, http.StatusOK, shopListResponse{
			Items:  items,
			Offset: offset,
			Limit:  limit,
		})
	}
}

func (h *Handler) shopDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		detail, err := h.shops.DetailBySlug(ctx, slug)
		if err != nil {
			h.writeError(w, err, "Laden konnte nicht geladen werden", "shop detail fetch failed slug="+slug)
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, buildShopDetailResponse(*detail))
	}
}
