package store

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"songdex/internal/domain"
)

// SingerIndexStore is the denormalized singer index: one row per
// (singer, video) pair. Rows only ever change as a whole set per video,
// via DeleteByVideoID followed by InsertRows.
type SingerIndexStore struct {
	db *DB
}

func NewSingerIndexStore(db *DB) *SingerIndexStore {
	return &SingerIndexStore{db: db}
}

// DeleteByVideoID removes every index row of one video, found through the
// video_id secondary index.
func (s *SingerIndexStore) DeleteByVideoID(videoID string) error {
	if _, err := s.db.Exec(`DELETE FROM singer_videos WHERE video_id = ?`, videoID); err != nil {
		return fmt.Errorf("failed to delete singer index rows: %w", err)
	}
	return nil
}

// InsertRows writes one row per singer. Keys are computed here so every
// caller produces the same layout.
func (s *SingerIndexStore) InsertRows(rows []*domain.SingerVideo) error {
	query := `INSERT INTO singer_videos (
		singer_key, sort_key, singer_name, song_key, video_id, song_title,
		video_title, channel_id, published_at, is_cover, link, thumbnail_url,
		original_song_title, original_artist_name, ai_stats, comment_cloud,
		chorus_start_time, chorus_end_time, view_count, like_count,
		comment_count, channel_title, subscriber_count
	) VALUES (
		:singer_key, :sort_key, :singer_name, :song_key, :video_id, :song_title,
		:video_title, :channel_id, :published_at, :is_cover, :link, :thumbnail_url,
		:original_song_title, :original_artist_name, :ai_stats, :comment_cloud,
		:chorus_start_time, :chorus_end_time, :view_count, :like_count,
		:comment_count, :channel_title, :subscriber_count
	)
	ON CONFLICT(singer_key, sort_key) DO UPDATE SET
		singer_name = excluded.singer_name,
		song_key = excluded.song_key,
		video_id = excluded.video_id,
		song_title = excluded.song_title,
		video_title = excluded.video_title,
		channel_id = excluded.channel_id,
		published_at = excluded.published_at,
		is_cover = excluded.is_cover,
		link = excluded.link,
		thumbnail_url = excluded.thumbnail_url,
		original_song_title = excluded.original_song_title,
		original_artist_name = excluded.original_artist_name,
		ai_stats = excluded.ai_stats,
		comment_cloud = excluded.comment_cloud,
		chorus_start_time = excluded.chorus_start_time,
		chorus_end_time = excluded.chorus_end_time,
		view_count = excluded.view_count,
		like_count = excluded.like_count,
		comment_count = excluded.comment_count,
		channel_title = excluded.channel_title,
		subscriber_count = excluded.subscriber_count`

	for _, row := range rows {
		row.SingerKey = domain.NormalizeKey(row.SingerName)
		row.SortKey = domain.SortKey(row.PublishedAt, row.VideoID)
		if _, err := s.db.NamedExec(query, row); err != nil {
			return fmt.Errorf("failed to insert singer index row for %q: %w", row.SingerName, err)
		}
	}
	return nil
}

// QueryBySinger returns a singer's rows newest-first (sort_key descending).
func (s *SingerIndexStore) QueryBySinger(singerKey string, limit int) ([]*domain.SingerVideo, error) {
	query := `SELECT * FROM singer_videos WHERE singer_key = ? ORDER BY sort_key DESC LIMIT ?`
	return selectSingerVideos(s.db, query, singerKey, limit)
}

// QueryByVideoID returns every index row of one video.
func (s *SingerIndexStore) QueryByVideoID(videoID string) ([]*domain.SingerVideo, error) {
	query := `SELECT * FROM singer_videos WHERE video_id = ? ORDER BY singer_key ASC`
	return selectSingerVideos(s.db, query, videoID)
}

// QueryBySongKey returns all covers of one original song across singers.
func (s *SingerIndexStore) QueryBySongKey(songKey string) ([]*domain.SingerVideo, error) {
	query := `SELECT * FROM singer_videos WHERE song_key = ? ORDER BY sort_key DESC`
	return selectSingerVideos(s.db, query, songKey)
}

// ScanToken is the continuation position of a full-index scan. It carries
// the key tuple separately; joining the parts into one string would break
// the ordering whenever one singer_key is a prefix of another.
type ScanToken struct {
	SingerKey string
	SortKey   string
}

// ScanPage reads one page of the full index in key order. The returned
// token is the continuation position for the next page; nil means done.
func (s *SingerIndexStore) ScanPage(after *ScanToken, pageSize int) ([]*domain.SingerVideo, *ScanToken, error) {
	query := `SELECT * FROM singer_videos WHERE (singer_key, sort_key) > (?, ?)
	ORDER BY singer_key ASC, sort_key ASC LIMIT ?`

	afterKey, afterSort := "", ""
	if after != nil {
		afterKey, afterSort = after.SingerKey, after.SortKey
	}

	rows, err := selectSingerVideos(s.db, query, afterKey, afterSort, pageSize)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) < pageSize {
		return rows, nil, nil
	}
	last := rows[len(rows)-1]
	return rows, &ScanToken{SingerKey: last.SingerKey, SortKey: last.SortKey}, nil
}

func selectSingerVideos(db *DB, query string, args ...interface{}) ([]*domain.SingerVideo, error) {
	var rows []*domain.SingerVideo
	if err := sqlx.Select(db, &rows, query, args...); err != nil {
		return nil, err
	}
	for _, r := range rows {
		if r.AIStats != nil && *r.AIStats == (domain.AIStats{}) {
			r.AIStats = nil
		}
	}
	return rows, nil
}
