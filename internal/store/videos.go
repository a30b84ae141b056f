package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"songdex/internal/domain"
)

// VideoStore is the primary table: one row per (channel_id, video_id) plus
// one CHANNEL_INFO sentinel row per channel.
type VideoStore struct {
	db *DB
}

func NewVideoStore(db *DB) *VideoStore {
	return &VideoStore{db: db}
}

// UpsertVideo inserts or replaces a raw video record. Livestreams
// (duration == 0) are never stored.
func (s *VideoStore) UpsertVideo(video *domain.Video) error {
	if video.Duration != nil && *video.Duration == 0 {
		return nil
	}

	query := `INSERT INTO videos (
		channel_id, video_id, video_title, description, duration, published_at,
		thumbnail_url, view_count, like_count, comment_count, channel_title
	) VALUES (
		:channel_id, :video_id, :video_title, :description, :duration, :published_at,
		:thumbnail_url, :view_count, :like_count, :comment_count, :channel_title
	)
	ON CONFLICT(channel_id, video_id) DO UPDATE SET
		video_title = excluded.video_title,
		description = excluded.description,
		duration = excluded.duration,
		published_at = excluded.published_at,
		thumbnail_url = excluded.thumbnail_url,
		view_count = excluded.view_count,
		like_count = excluded.like_count,
		comment_count = excluded.comment_count,
		channel_title = excluded.channel_title`

	if _, err := s.db.NamedExec(query, video); err != nil {
		return fmt.Errorf("failed to upsert video: %w", err)
	}
	return nil
}

// UpsertChannelInfo refreshes the channel metadata sentinel row.
func (s *VideoStore) UpsertChannelInfo(info *domain.ChannelInfo) error {
	query := `INSERT INTO videos (channel_id, video_id, channel_name, channel_icon_url, subscriber_count)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(channel_id, video_id) DO UPDATE SET
		channel_name = excluded.channel_name,
		channel_icon_url = excluded.channel_icon_url,
		subscriber_count = excluded.subscriber_count`

	_, err := s.db.Exec(query, info.ChannelID, domain.ChannelInfoVideoID,
		info.ChannelName, info.ChannelIconURL, info.SubscriberCount)
	if err != nil {
		return fmt.Errorf("failed to upsert channel info: %w", err)
	}
	return nil
}

// GetChannelInfo returns the sentinel row for a channel, or ErrNotFound.
func (s *VideoStore) GetChannelInfo(channelID string) (*domain.ChannelInfo, error) {
	query := `SELECT channel_id, channel_name, channel_icon_url, subscriber_count
	FROM videos WHERE channel_id = ? AND video_id = ?`

	var info domain.ChannelInfo
	err := s.db.Get(&info, query, channelID, domain.ChannelInfoVideoID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// GetVideo returns one video, or ErrNotFound.
func (s *VideoStore) GetVideo(channelID, videoID string) (*domain.Video, error) {
	var video domain.Video
	err := s.db.Get(&video, `SELECT * FROM videos WHERE channel_id = ? AND video_id = ?`, channelID, videoID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	normalizeVideo(&video)
	return &video, nil
}

// ListVideoIDs returns the set of stored video ids for a channel,
// excluding the sentinel.
func (s *VideoStore) ListVideoIDs(channelID string) (map[string]struct{}, error) {
	var ids []string
	err := s.db.Select(&ids, `SELECT video_id FROM videos WHERE channel_id = ? AND video_id <> ?`,
		channelID, domain.ChannelInfoVideoID)
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

// ListByChannel returns all videos of a channel, excluding the sentinel.
func (s *VideoStore) ListByChannel(channelID string) ([]*domain.Video, error) {
	query := `SELECT * FROM videos WHERE channel_id = ? AND video_id <> ? ORDER BY published_at DESC`
	return selectVideos(s.db, query, channelID, domain.ChannelInfoVideoID)
}

// ListUnenriched returns the channel's videos that have no classification yet.
func (s *VideoStore) ListUnenriched(channelID string) ([]*domain.Video, error) {
	query := `SELECT * FROM videos WHERE channel_id = ? AND video_id <> ? AND video_type = '' ORDER BY published_at DESC`
	return selectVideos(s.db, query, channelID, domain.ChannelInfoVideoID)
}

// UpdateVideoType updates only the classification of a video.
func (s *VideoStore) UpdateVideoType(channelID, videoID string, videoType domain.VideoType) error {
	result, err := s.db.Exec(`UPDATE videos SET video_type = ? WHERE channel_id = ? AND video_id = ?`,
		videoType, channelID, videoID)
	if err != nil {
		return fmt.Errorf("failed to update video type: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SongUpdate carries the enrichment output written onto a video. All fields
// are overwritten, not merged, so re-enrichment is idempotent.
type SongUpdate struct {
	SongTitle       string
	Singers         []string
	IsCover         bool
	Link            string
	AIStats         *domain.AIStats
	CommentCloud    domain.CommentCloud
	ChorusStartTime *int64
	ChorusEndTime   *int64
}

// UpdateSongInfo marks the video as SONG and overwrites its song fields.
func (s *VideoStore) UpdateSongInfo(channelID, videoID string, upd SongUpdate) error {
	query := `UPDATE videos SET
		video_type = ?, song_title = ?, singers = ?, is_cover = ?, link = ?,
		ai_stats = ?, comment_cloud = ?, chorus_start_time = ?, chorus_end_time = ?
	WHERE channel_id = ? AND video_id = ?`

	result, err := s.db.Exec(query,
		domain.VideoTypeSong, upd.SongTitle, domain.StringSlice(upd.Singers), upd.IsCover, upd.Link,
		upd.AIStats, upd.CommentCloud, upd.ChorusStartTime, upd.ChorusEndTime,
		channelID, videoID)
	if err != nil {
		return fmt.Errorf("failed to update song info: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ScanVideos returns all non-sentinel videos across channels.
func (s *VideoStore) ScanVideos() ([]*domain.Video, error) {
	query := `SELECT * FROM videos WHERE video_id <> ? ORDER BY published_at DESC`
	return selectVideos(s.db, query, domain.ChannelInfoVideoID)
}

func selectVideos(db *DB, query string, args ...interface{}) ([]*domain.Video, error) {
	var videos []*domain.Video
	if err := sqlx.Select(db, &videos, query, args...); err != nil {
		return nil, err
	}
	for _, v := range videos {
		normalizeVideo(v)
	}
	return videos, nil
}

// normalizeVideo drops zero-valued optional JSON columns that sqlx
// allocates while scanning NULLs.
func normalizeVideo(v *domain.Video) {
	if v.AIStats != nil && *v.AIStats == (domain.AIStats{}) {
		v.AIStats = nil
	}
}
