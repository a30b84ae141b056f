package domain

import "strings"

// ChannelInfoVideoID is the reserved video_id of the per-channel metadata
// row in the videos table. It is never a playable video.
const ChannelInfoVideoID = "CHANNEL_INFO"

type VideoType string

const (
	VideoTypeSong    VideoType = "SONG"
	VideoTypeGame    VideoType = "GAME"
	VideoTypeUnknown VideoType = "UNKNOWN"
)

// Video is the canonical unit, keyed by (channel_id, video_id) in the
// primary table. Derived fields are empty until enrichment runs.
type Video struct {
	ChannelID   string `json:"channel_id" db:"channel_id"`
	VideoID     string `json:"video_id" db:"video_id"`
	Title       string `json:"video_title" db:"video_title"`
	Description string `json:"description,omitempty" db:"description"`
	// Duration is in seconds; nil means the directory reported none.
	Duration     *int64 `json:"duration,omitempty" db:"duration"`
	PublishedAt  string `json:"published_at,omitempty" db:"published_at"`
	ThumbnailURL string `json:"thumbnail_url,omitempty" db:"thumbnail_url"`
	ViewCount    int64  `json:"view_count" db:"view_count"`
	LikeCount    int64  `json:"like_count" db:"like_count"`
	CommentCount int64  `json:"comment_count" db:"comment_count"`
	ChannelTitle string `json:"channel_title,omitempty" db:"channel_title"`

	// Enrichment output
	VideoType       VideoType    `json:"video_type,omitempty" db:"video_type"`
	SongTitle       string       `json:"song_title,omitempty" db:"song_title"`
	Singers         StringSlice  `json:"singers" db:"singers"`
	Tags            StringSlice  `json:"tags,omitempty" db:"tags"`
	IsCover         bool         `json:"is_cover" db:"is_cover"`
	Link            string       `json:"link,omitempty" db:"link"`
	AIStats         *AIStats     `json:"ai_stats,omitempty" db:"ai_stats"`
	CommentCloud    CommentCloud `json:"comment_cloud,omitempty" db:"comment_cloud"`
	ChorusStartTime *int64       `json:"chorus_start_time,omitempty" db:"chorus_start_time"`
	ChorusEndTime   *int64       `json:"chorus_end_time,omitempty" db:"chorus_end_time"`

	// Sentinel-row columns; absorbed so SELECT * scans cleanly.
	ChannelName     string `json:"-" db:"channel_name"`
	ChannelIconURL  string `json:"-" db:"channel_icon_url"`
	SubscriberCount int64  `json:"-" db:"subscriber_count"`
}

// IsChannelInfo reports whether the record is the channel metadata sentinel.
func (v *Video) IsChannelInfo() bool {
	return v.VideoID == ChannelInfoVideoID
}

// ChannelInfo is the channel-level metadata stored in the sentinel row.
type ChannelInfo struct {
	ChannelID       string `json:"channel_id" db:"channel_id"`
	ChannelName     string `json:"channel_name" db:"channel_name"`
	ChannelIconURL  string `json:"channel_icon_url" db:"channel_icon_url"`
	SubscriberCount int64  `json:"subscriber_count" db:"subscriber_count"`
}

// AIStats holds the five AI characteristic scores, each 0-100.
type AIStats struct {
	Cool       int `json:"cool"`
	Cute       int `json:"cute"`
	Energetic  int `json:"energetic"`
	Surprising int `json:"surprising"`
	Emotional  int `json:"emotional"`
}

// CommentWord is one entry of the comment-derived keyword cloud.
type CommentWord struct {
	Word       string `json:"word"`
	Importance int    `json:"importance"`
}

// SingerVideo is one denormalized row of the singer index: one row per
// (singer, video) pair, keyed by (singer_key, sort_key).
type SingerVideo struct {
	SingerKey          string       `json:"-" db:"singer_key"`
	SortKey            string       `json:"-" db:"sort_key"`
	SingerName         string       `json:"singer_name" db:"singer_name"`
	SongKey            string       `json:"-" db:"song_key"`
	VideoID            string       `json:"video_id" db:"video_id"`
	SongTitle          string       `json:"song_title" db:"song_title"`
	VideoTitle         string       `json:"video_title" db:"video_title"`
	ChannelID          string       `json:"channel_id" db:"channel_id"`
	PublishedAt        string       `json:"published_at" db:"published_at"`
	IsCover            bool         `json:"is_cover" db:"is_cover"`
	Link               string       `json:"link,omitempty" db:"link"`
	ThumbnailURL       string       `json:"thumbnail_url,omitempty" db:"thumbnail_url"`
	OriginalSongTitle  string       `json:"original_song_title,omitempty" db:"original_song_title"`
	OriginalArtistName string       `json:"original_artist_name,omitempty" db:"original_artist_name"`
	AIStats            *AIStats     `json:"ai_stats,omitempty" db:"ai_stats"`
	CommentCloud       CommentCloud `json:"comment_cloud,omitempty" db:"comment_cloud"`
	ChorusStartTime    *int64       `json:"chorus_start_time,omitempty" db:"chorus_start_time"`
	ChorusEndTime      *int64       `json:"chorus_end_time,omitempty" db:"chorus_end_time"`
	ViewCount          int64        `json:"view_count" db:"view_count"`
	LikeCount          int64        `json:"like_count" db:"like_count"`
	CommentCount       int64        `json:"comment_count" db:"comment_count"`
	ChannelTitle       string       `json:"channel_title,omitempty" db:"channel_title"`
	SubscriberCount    int64        `json:"subscriber_count" db:"subscriber_count"`
}

// SingerSummary is derived at read time, never stored.
type SingerSummary struct {
	Name          string `json:"name"`
	VideoCount    int    `json:"video_count"`
	LatestVideoID string `json:"latest_video_id,omitempty"`
	AvatarURL     string `json:"avatar_url,omitempty"`
}

// VideoQuery describes a list request against the read model.
type VideoQuery struct {
	Q      string
	Singer string
	Tag    string
	Limit  int
}

// NormalizeKey lowercases and trims text for use as an index key.
func NormalizeKey(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// SortKey builds the time-ordered range key of a singer index row.
func SortKey(publishedAt, videoID string) string {
	return publishedAt + "#" + videoID
}

// SongKey groups covers of the same original song. When the original title
// or artist is unknown the song title stands in for both.
func SongKey(originalTitle, originalArtist, songTitle string) string {
	if originalTitle != "" && originalArtist != "" {
		return NormalizeKey(originalTitle) + "\t" + NormalizeKey(originalArtist)
	}
	return NormalizeKey(songTitle) + "\t" + NormalizeKey(songTitle)
}
