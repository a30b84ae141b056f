package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"songdex/internal/domain"
	"songdex/internal/logger"
	"songdex/internal/store"
)

type Handler struct {
	Repo   store.VideoRepository
	Logger *logger.Logger
}

func NewHandler(repo store.VideoRepository, log *logger.Logger) *Handler {
	return &Handler{
		Repo:   repo,
		Logger: log.WithComponent("http"),
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.Logger.Error("response encoding failed", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

// writeRepoError maps repository errors onto HTTP statuses.
func (h *Handler) writeRepoError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		h.writeError(w, http.StatusNotFound, "not found")
		return
	}
	h.Logger.Error("repository error", "error", err)
	h.writeError(w, http.StatusInternalServerError, "internal error")
}
