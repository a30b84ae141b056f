package store

import (
	"sort"
	"strings"

	"songdex/internal/constants"
	"songdex/internal/domain"
)

// MemoryRepository is the seeded in-memory read model used for local
// frontend work without a database. Filters are case-insensitive here,
// unlike the store-backed read model.
type MemoryRepository struct {
	videos []*domain.Video
	byID   map[string]*domain.Video
}

func NewMemoryRepository(videos []*domain.Video) *MemoryRepository {
	byID := make(map[string]*domain.Video, len(videos))
	for _, v := range videos {
		byID[v.VideoID] = v
	}
	return &MemoryRepository{videos: videos, byID: byID}
}

// SeedVideos returns the fixture set the memory backend starts with.
func SeedVideos() []*domain.Video {
	return []*domain.Video{
		{
			VideoID:   "a51VH9BYzZA",
			Title:     "Stellar Stellar / Hoshimachi Suisei (cover)",
			ChannelID: "channel_suisei",
			VideoType: domain.VideoTypeSong,
			SongTitle: "Stellar Stellar",
			Singers:   domain.StringSlice{"Hoshimachi Suisei"},
			Tags:      domain.StringSlice{"cover", "vsinger"},
		},
		{
			VideoID:   "Qp3b-RXtz4w",
			Title:     "Usseewa / Ado (original)",
			ChannelID: "channel_ado",
			VideoType: domain.VideoTypeSong,
			SongTitle: "Usseewa",
			Singers:   domain.StringSlice{"Ado"},
			Tags:      domain.StringSlice{"original", "vsinger"},
		},
		{
			VideoID:   "mock_kaf_phony",
			Title:     "Phony / Kaf (cover)",
			ChannelID: "channel_kaf",
			VideoType: domain.VideoTypeSong,
			SongTitle: "Phony",
			Singers:   domain.StringSlice{"Kaf"},
			Tags:      domain.StringSlice{"cover", "vsinger"},
		},
	}
}

func (m *MemoryRepository) ListVideos(q domain.VideoQuery) ([]*domain.Video, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = constants.DefaultListLimit
	}

	out := make([]*domain.Video, 0, limit)
	for _, v := range m.videos {
		if q.Q != "" {
			needle := strings.ToLower(q.Q)
			if !strings.Contains(strings.ToLower(v.Title), needle) &&
				!strings.Contains(strings.ToLower(v.SongTitle), needle) {
				continue
			}
		}
		if q.Singer != "" && !containsFold(v.Singers, q.Singer) {
			continue
		}
		if q.Tag != "" && !containsFold(v.Tags, q.Tag) {
			continue
		}
		out = append(out, v)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *MemoryRepository) GetVideo(videoID string) (*domain.Video, error) {
	v, ok := m.byID[videoID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return v, nil
}

func (m *MemoryRepository) ListSingers() ([]*domain.SingerSummary, error) {
	counts := make(map[string]int)
	latest := make(map[string]string)
	names := make([]string, 0)

	for _, v := range m.videos {
		for _, name := range v.Singers {
			if _, ok := counts[name]; !ok {
				names = append(names, name)
				latest[name] = v.VideoID
			}
			counts[name]++
		}
	}

	summaries := make([]*domain.SingerSummary, 0, len(names))
	for _, name := range names {
		summaries = append(summaries, &domain.SingerSummary{
			Name:          name,
			VideoCount:    counts[name],
			LatestVideoID: latest[name],
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return strings.ToLower(summaries[i].Name) < strings.ToLower(summaries[j].Name)
	})
	return summaries, nil
}

func containsFold(items []string, target string) bool {
	for _, item := range items {
		if strings.EqualFold(item, target) {
			return true
		}
	}
	return false
}
