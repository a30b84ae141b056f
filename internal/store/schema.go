package store

const Schema = `
CREATE TABLE IF NOT EXISTS videos (
	channel_id TEXT NOT NULL,
	video_id TEXT NOT NULL,

	-- Raw collection fields
	video_title TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	duration INTEGER,
	published_at TEXT NOT NULL DEFAULT '',
	thumbnail_url TEXT NOT NULL DEFAULT '',
	view_count INTEGER NOT NULL DEFAULT 0,
	like_count INTEGER NOT NULL DEFAULT 0,
	comment_count INTEGER NOT NULL DEFAULT 0,
	channel_title TEXT NOT NULL DEFAULT '',

	-- Enrichment fields
	video_type TEXT NOT NULL DEFAULT '',
	song_title TEXT NOT NULL DEFAULT '',
	singers TEXT NOT NULL DEFAULT '[]',
	tags TEXT NOT NULL DEFAULT '[]',
	is_cover BOOLEAN NOT NULL DEFAULT 0,
	link TEXT NOT NULL DEFAULT '',
	ai_stats TEXT,
	comment_cloud TEXT,
	chorus_start_time INTEGER,
	chorus_end_time INTEGER,

	-- Channel sentinel fields (video_id = 'CHANNEL_INFO')
	channel_name TEXT NOT NULL DEFAULT '',
	channel_icon_url TEXT NOT NULL DEFAULT '',
	subscriber_count INTEGER NOT NULL DEFAULT 0,

	PRIMARY KEY (channel_id, video_id)
);

CREATE INDEX IF NOT EXISTS idx_videos_video_type ON videos(video_type);

CREATE TABLE IF NOT EXISTS singer_videos (
	singer_key TEXT NOT NULL,
	sort_key TEXT NOT NULL,

	singer_name TEXT NOT NULL,
	song_key TEXT NOT NULL,
	video_id TEXT NOT NULL,
	song_title TEXT NOT NULL DEFAULT '',
	video_title TEXT NOT NULL DEFAULT '',
	channel_id TEXT NOT NULL DEFAULT '',
	published_at TEXT NOT NULL DEFAULT '',
	is_cover BOOLEAN NOT NULL DEFAULT 0,
	link TEXT NOT NULL DEFAULT '',
	thumbnail_url TEXT NOT NULL DEFAULT '',
	original_song_title TEXT NOT NULL DEFAULT '',
	original_artist_name TEXT NOT NULL DEFAULT '',
	ai_stats TEXT,
	comment_cloud TEXT,
	chorus_start_time INTEGER,
	chorus_end_time INTEGER,
	view_count INTEGER NOT NULL DEFAULT 0,
	like_count INTEGER NOT NULL DEFAULT 0,
	comment_count INTEGER NOT NULL DEFAULT 0,
	channel_title TEXT NOT NULL DEFAULT '',
	subscriber_count INTEGER NOT NULL DEFAULT 0,

	PRIMARY KEY (singer_key, sort_key)
);

-- Secondary lookups: all rows of one video (resync delete path) and all
-- covers of one original song.
CREATE INDEX IF NOT EXISTS idx_singer_videos_video_id ON singer_videos(video_id);
CREATE INDEX IF NOT EXISTS idx_singer_videos_song_key ON singer_videos(song_key);

CREATE TABLE IF NOT EXISTS cache (
	key TEXT PRIMARY KEY,
	data BLOB,
	expires_at DATETIME
);
`
