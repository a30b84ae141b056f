package store

import (
	"fmt"

	"songdex/internal/constants"
	"songdex/internal/domain"
)

// VideoRepository is the caller-facing read model served by the API.
type VideoRepository interface {
	ListVideos(q domain.VideoQuery) ([]*domain.Video, error)
	GetVideo(videoID string) (*domain.Video, error)
	ListSingers() ([]*domain.SingerSummary, error)
}

// NewVideoRepository constructs the repository variant selected by the
// configured backend. The returned closer is a no-op for the memory
// backend.
func NewVideoRepository(backend, dsn string) (VideoRepository, func() error, error) {
	switch backend {
	case constants.BackendSQLite:
		db, err := NewSQLiteDB(dsn)
		if err != nil {
			return nil, nil, err
		}
		return NewReadModel(db), db.Close, nil
	case constants.BackendMemory:
		return NewMemoryRepository(SeedVideos()), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend: %s", backend)
	}
}
