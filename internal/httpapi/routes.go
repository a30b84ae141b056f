package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"songdex/internal/constants"
	"songdex/internal/domain"
)

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.Health)
	r.Get("/videos", h.ListVideos)
	r.Get("/videos/{id}", h.GetVideo)
	r.Get("/singers", h.ListSingers)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListVideos(w http.ResponseWriter, r *http.Request) {
	q := domain.VideoQuery{
		Q:      r.URL.Query().Get("q"),
		Singer: r.URL.Query().Get("singer"),
		Tag:    r.URL.Query().Get("tag"),
		Limit:  parseLimit(r.URL.Query().Get("limit")),
	}

	videos, err := h.Repo.ListVideos(q)
	if err != nil {
		h.writeRepoError(w, err)
		return
	}
	if videos == nil {
		videos = []*domain.Video{}
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"videos": videos, "count": len(videos)})
}

func (h *Handler) GetVideo(w http.ResponseWriter, r *http.Request) {
	video, err := h.Repo.GetVideo(chi.URLParam(r, "id"))
	if err != nil {
		h.writeRepoError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, video)
}

func (h *Handler) ListSingers(w http.ResponseWriter, r *http.Request) {
	singers, err := h.Repo.ListSingers()
	if err != nil {
		h.writeRepoError(w, err)
		return
	}
	if singers == nil {
		singers = []*domain.SingerSummary{}
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"singers": singers, "count": len(singers)})
}

// parseLimit clamps the limit parameter into the allowed window. Anything
// unparseable falls back to the default.
func parseLimit(raw string) int {
	if raw == "" {
		return constants.DefaultListLimit
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return constants.DefaultListLimit
	}
	if limit < 1 {
		return 1
	}
	if limit > constants.MaxListLimit {
		return constants.MaxListLimit
	}
	return limit
}
