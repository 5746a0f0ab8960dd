package admin

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	adminapp "github.com/sngm3741/doner-finder/api/internal/admin/application"
	"github.com/sngm3741/doner-finder/api/internal/interfaces/http/common"
)

func (h *Handler) shopListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		limit, _ := common.ParsePositiveInt(query.Get("limit"), 50)
		filter := adminapp.ShopFilter{
			City:    strings.TrimSpace(query.Get("city")),
			Keyword: strings.TrimSpace(query.Get("keyword")),
			Limit:   limit,
			Offset:  common.ParseNonNegativeInt(query.Get("offset"), 0),
		}
		switch strings.ToLower(strings.TrimSpace(query.Get("published"))) {
		case "true", "1":
			published := true
			filter.Published = &published
		case "false", "0":
			published := false
			filter.Published = &published
		}

		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		shops, err := h.shops.List(ctx, filter)
		if err != nil {
			h.writeError(w, err, "Läden konnten nicht geladen werden", "admin shop list failed")
			return
		}

		items := make([]shopResponse, 0, len(shops))
		for _, shop := range shops {
			items = append(items, buildShopResponse(shop))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{"items": items})
	}
}

func (h *Handler) shopDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))

		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		shop, err := h.shops.Detail(ctx, id)
		if err != nil {
			h.writeError(w, err, "Laden konnte nicht geladen werden", "admin shop detail failed id="+id)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildShopResponse(*shop))
	}
}

func (h *Handler) shopCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		var req shopRequest
		if err := common.DecodeJSON(r, &req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		shop, err := h.shops.Create(ctx, req.command())
		if err != nil {
			h.writeError(w, err, "Laden konnte nicht angelegt werden", "admin shop create failed")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusCreated, buildShopResponse(*shop))
	}
}

func (h *Handler) shopUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		id := strings.TrimSpace(chi.URLParam(r, "id"))

		var req shopRequest
		if err := common.DecodeJSON(r, &req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		shop, err := h.shops.Update(ctx, id, req.command())
		if err != nil {
			h.writeError(w, err, "Laden konnte nicht aktualisiert werden", "admin shop update failed id="+id)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildShopResponse(*shop))
	}
}

func (h *Handler) shopDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))

		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		if err := h.shops.Delete(ctx, id); err != nil {
			h.writeError(w, err, "Laden konnte nicht gelöscht werden", "admin shop delete failed id="+id)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *Handler) shopPublishHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		id := strings.TrimSpace(chi.URLParam(r, "id"))

		var req publishRequest
		if err := common.DecodeJSON(r, &req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		shop, err := h.shops.SetPublished(ctx, id, *req.Published)
		if err != nil {
			h.writeError(w, err, "Veröffentlichung fehlgeschlagen", "admin shop publish failed id="+id)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildShopResponse(*shop))
	}
}

func (h *Handler) shopHoursHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		id := strings.TrimSpace(chi.URLParam(r, "id"))

		var req hoursRequest
		if err := common.DecodeJSON(r, &req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		cmds := make([]adminapp.OpeningHoursCommand, 0, len(req.Hours))
		for _, item := range req.Hours {
			cmds = append(cmds, adminapp.OpeningHoursCommand{Weekday: item.Weekday, Open: item.Open, Close: item.Close})
		}

		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		shop, err := h.shops.ReplaceOpeningHours(ctx, id, cmds)
		if err != nil {
			h.writeError(w, err, "Öffnungszeiten konnten nicht gespeichert werden", "admin hours update failed id="+id)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildShopResponse(*shop))
	}
}

func (h *Handler) photoAddHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		id := strings.TrimSpace(chi.URLParam(r, "id"))

		var req photoRequest
		if err := common.DecodeJSON(r, &req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		photo, err := h.shops.AddPhoto(ctx, id, adminapp.PhotoCommand{URL: req.URL, Caption: req.Caption, SortOrder: req.SortOrder})
		if err != nil {
			h.writeError(w, err, "Foto konnte nicht gespeichert werden", "admin photo add failed id="+id)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusCreated, buildPhotoResponse(*photo))
	}
}

func (h *Handler) photoRemoveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))
		photoID := strings.TrimSpace(chi.URLParam(r, "photoId"))

		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		if err := h.shops.RemovePhoto(ctx, id, photoID); err != nil {
			h.writeError(w, err, "Foto konnte nicht entfernt werden", "admin photo remove failed id="+id)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
