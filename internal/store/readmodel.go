package store

import (
	"errors"
	"sort"
	"strings"

	"songdex/internal/constants"
	"songdex/internal/domain"
)

const scanPageSize = 500

// ReadModel serves list/get/summary queries from the singer index, falling
// back to the primary table for singer-less listings.
type ReadModel struct {
	videos  *VideoStore
	singers *SingerIndexStore
}

func NewReadModel(db *DB) *ReadModel {
	return &ReadModel{
		videos:  NewVideoStore(db),
		singers: NewSingerIndexStore(db),
	}
}

func (m *ReadModel) ListVideos(q domain.VideoQuery) ([]*domain.Video, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = constants.DefaultListLimit
	}

	if q.Singer != "" {
		return m.listBySinger(q, limit)
	}

	videos, err := m.videos.ScanVideos()
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Video, 0, limit)
	for _, v := range videos {
		if q.Q != "" && !strings.Contains(v.Title, q.Q) && !strings.Contains(v.Description, q.Q) {
			continue
		}
		if q.Tag != "" && !containsString(v.Tags, q.Tag) {
			continue
		}
		out = append(out, v)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// listBySinger queries the index newest-first. It over-fetches to absorb
// the per-singer duplication of collab videos, merges rows of the same
// video by unioning singer names, then truncates in fetch order.
func (m *ReadModel) listBySinger(q domain.VideoQuery, limit int) ([]*domain.Video, error) {
	rows, err := m.singers.QueryBySinger(domain.NormalizeKey(q.Singer), 2*limit)
	if err != nil {
		return nil, err
	}

	order := make([]string, 0, len(rows))
	byID := make(map[string]*domain.Video, len(rows))
	for _, row := range rows {
		if v, ok := byID[row.VideoID]; ok {
			v.Singers = unionSingers(v.Singers, row.SingerName)
			continue
		}
		v := videoFromIndexRow(row)
		v.Singers = unionSingers(nil, row.SingerName)
		byID[row.VideoID] = v
		order = append(order, row.VideoID)
	}

	out := make([]*domain.Video, 0, limit)
	for _, id := range order {
		v := byID[id]
		if q.Q != "" && !strings.Contains(v.Title, q.Q) && !strings.Contains(v.SongTitle, q.Q) {
			continue
		}
		out = append(out, v)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// GetVideo merges every index row of the video into one record. A video
// with no index rows is reported as not found, even when an unenriched
// primary row exists.
func (m *ReadModel) GetVideo(videoID string) (*domain.Video, error) {
	rows, err := m.singers.QueryByVideoID(videoID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrNotFound
	}

	video := videoFromIndexRow(rows[0])
	video.Singers = nil
	for _, row := range rows {
		video.Singers = unionSingers(video.Singers, row.SingerName)
	}
	return video, nil
}

func (m *ReadModel) ListSingers() ([]*domain.SingerSummary, error) {
	type acc struct {
		videoIDs      map[string]struct{}
		latestVideoID string
		lastChannelID string
	}

	names := make([]string, 0)
	byName := make(map[string]*acc)

	var token *ScanToken
	for {
		rows, next, err := m.singers.ScanPage(token, scanPageSize)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			a, ok := byName[row.SingerName]
			if !ok {
				a = &acc{videoIDs: make(map[string]struct{}), latestVideoID: row.VideoID}
				byName[row.SingerName] = a
				names = append(names, row.SingerName)
			}
			a.videoIDs[row.VideoID] = struct{}{}
			a.lastChannelID = row.ChannelID
		}
		if next == nil {
			break
		}
		token = next
	}

	summaries := make([]*domain.SingerSummary, 0, len(names))
	for _, name := range names {
		a := byName[name]
		summary := &domain.SingerSummary{
			Name:          name,
			VideoCount:    len(a.videoIDs),
			LatestVideoID: a.latestVideoID,
		}
		if a.lastChannelID != "" {
			info, err := m.videos.GetChannelInfo(a.lastChannelID)
			if err != nil && !errors.Is(err, domain.ErrNotFound) {
				return nil, err
			}
			if info != nil {
				summary.AvatarURL = info.ChannelIconURL
			}
		}
		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return strings.ToLower(summaries[i].Name) < strings.ToLower(summaries[j].Name)
	})
	return summaries, nil
}

func videoFromIndexRow(row *domain.SingerVideo) *domain.Video {
	return &domain.Video{
		ChannelID:       row.ChannelID,
		VideoID:         row.VideoID,
		Title:           row.VideoTitle,
		PublishedAt:     row.PublishedAt,
		ThumbnailURL:    row.ThumbnailURL,
		ViewCount:       row.ViewCount,
		LikeCount:       row.LikeCount,
		CommentCount:    row.CommentCount,
		ChannelTitle:    row.ChannelTitle,
		VideoType:       domain.VideoTypeSong,
		SongTitle:       row.SongTitle,
		IsCover:         row.IsCover,
		Link:            row.Link,
		AIStats:         row.AIStats,
		CommentCloud:    row.CommentCloud,
		ChorusStartTime: row.ChorusStartTime,
		ChorusEndTime:   row.ChorusEndTime,
	}
}

func unionSingers(singers domain.StringSlice, name string) domain.StringSlice {
	if containsString(singers, name) {
		return singers
	}
	return append(singers, name)
}

func containsString(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}
