package store

import (
	"errors"
	"testing"

	"songdex/internal/domain"
)

func newVideo(channelID, videoID, title string, duration int64) *domain.Video {
	return &domain.Video{
		ChannelID:   channelID,
		VideoID:     videoID,
		Title:       title,
		Description: "description",
		Duration:    &duration,
		PublishedAt: "2024-01-15T12:00:00Z",
		ViewCount:   1000,
	}
}

func TestVideoStoreUpsert(t *testing.T) {
	db := setupTestDB(t)
	videos := NewVideoStore(db)

	v := newVideo("UCtest", "vid1", "First Title", 240)
	if err := videos.UpsertVideo(v); err != nil {
		t.Fatalf("UpsertVideo failed: %v", err)
	}

	got, err := videos.GetVideo("UCtest", "vid1")
	if err != nil {
		t.Fatalf("GetVideo failed: %v", err)
	}
	if got.Title != "First Title" || got.Duration == nil || *got.Duration != 240 {
		t.Errorf("got = %+v", got)
	}
	if got.VideoType != "" {
		t.Errorf("fresh video should be unclassified, got %q", got.VideoType)
	}

	// Upsert refreshes raw fields without touching enrichment output.
	if err := videos.UpdateVideoType("UCtest", "vid1", domain.VideoTypeSong); err != nil {
		t.Fatalf("UpdateVideoType failed: %v", err)
	}
	v.Title = "Updated Title"
	v.ViewCount = 2000
	if err := videos.UpsertVideo(v); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	got, _ = videos.GetVideo("UCtest", "vid1")
	if got.Title != "Updated Title" || got.ViewCount != 2000 {
		t.Errorf("raw fields not refreshed: %+v", got)
	}
	if got.VideoType != domain.VideoTypeSong {
		t.Errorf("upsert clobbered enrichment output: %q", got.VideoType)
	}
}

func TestVideoStoreSkipsLivestreams(t *testing.T) {
	db := setupTestDB(t)
	videos := NewVideoStore(db)

	if err := videos.UpsertVideo(newVideo("UCtest", "live1", "livestream", 0)); err != nil {
		t.Fatalf("UpsertVideo failed: %v", err)
	}
	if _, err := videos.GetVideo("UCtest", "live1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("livestream should not be stored, err = %v", err)
	}
}

func TestVideoStoreGetVideoNotFound(t *testing.T) {
	db := setupTestDB(t)
	videos := NewVideoStore(db)

	if _, err := videos.GetVideo("UCtest", "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestChannelInfoSentinel(t *testing.T) {
	db := setupTestDB(t)
	videos := NewVideoStore(db)

	info := &domain.ChannelInfo{
		ChannelID:       "UCtest",
		ChannelName:     "Suisei Ch.",
		ChannelIconURL:  "https://example.com/icon.jpg",
		SubscriberCount: 2000000,
	}
	if err := videos.UpsertChannelInfo(info); err != nil {
		t.Fatalf("UpsertChannelInfo failed: %v", err)
	}

	got, err := videos.GetChannelInfo("UCtest")
	if err != nil {
		t.Fatalf("GetChannelInfo failed: %v", err)
	}
	if got.ChannelName != "Suisei Ch." || got.SubscriberCount != 2000000 {
		t.Errorf("got = %+v", got)
	}

	// Refresh overwrites.
	info.SubscriberCount = 2100000
	if err := videos.UpsertChannelInfo(info); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	got, _ = videos.GetChannelInfo("UCtest")
	if got.SubscriberCount != 2100000 {
		t.Errorf("subscriber count = %d", got.SubscriberCount)
	}

	if _, err := videos.GetChannelInfo("UCother"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSentinelExcludedFromListings(t *testing.T) {
	db := setupTestDB(t)
	videos := NewVideoStore(db)

	videos.UpsertChannelInfo(&domain.ChannelInfo{ChannelID: "UCtest", ChannelName: "Ch"})
	videos.UpsertVideo(newVideo("UCtest", "vid1", "a video", 240))

	ids, err := videos.ListVideoIDs("UCtest")
	if err != nil {
		t.Fatalf("ListVideoIDs failed: %v", err)
	}
	if len(ids) != 1 {
		t.Errorf("ids = %v", ids)
	}
	if _, ok := ids[domain.ChannelInfoVideoID]; ok {
		t.Error("sentinel leaked into id listing")
	}

	list, err := videos.ListByChannel("UCtest")
	if err != nil {
		t.Fatalf("ListByChannel failed: %v", err)
	}
	if len(list) != 1 || list[0].VideoID != "vid1" {
		t.Errorf("list = %+v", list)
	}

	all, err := videos.ScanVideos()
	if err != nil {
		t.Fatalf("ScanVideos failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("scan = %d rows", len(all))
	}
}

func TestListUnenriched(t *testing.T) {
	db := setupTestDB(t)
	videos := NewVideoStore(db)

	videos.UpsertVideo(newVideo("UCtest", "vid1", "pending", 240))
	videos.UpsertVideo(newVideo("UCtest", "vid2", "done", 240))
	if err := videos.UpdateVideoType("UCtest", "vid2", domain.VideoTypeGame); err != nil {
		t.Fatalf("UpdateVideoType failed: %v", err)
	}

	pending, err := videos.ListUnenriched("UCtest")
	if err != nil {
		t.Fatalf("ListUnenriched failed: %v", err)
	}
	if len(pending) != 1 || pending[0].VideoID != "vid1" {
		t.Errorf("pending = %+v", pending)
	}
}

func TestUpdateSongInfo(t *testing.T) {
	db := setupTestDB(t)
	videos := NewVideoStore(db)

	videos.UpsertVideo(newVideo("UCtest", "vid1", "a song", 240))

	start, end := int64(62), int64(95)
	upd := SongUpdate{
		SongTitle:       "Stellar Stellar",
		Singers:         []string{"Hoshimachi Suisei"},
		IsCover:         true,
		Link:            "https://www.youtube.com/watch?v=vid1",
		AIStats:         &domain.AIStats{Cool: 90, Cute: 10, Energetic: 85, Surprising: 20, Emotional: 70},
		CommentCloud:    domain.CommentCloud{{Word: "kami", Importance: 95}},
		ChorusStartTime: &start,
		ChorusEndTime:   &end,
	}
	if err := videos.UpdateSongInfo("UCtest", "vid1", upd); err != nil {
		t.Fatalf("UpdateSongInfo failed: %v", err)
	}

	got, err := videos.GetVideo("UCtest", "vid1")
	if err != nil {
		t.Fatalf("GetVideo failed: %v", err)
	}
	if got.VideoType != domain.VideoTypeSong || got.SongTitle != "Stellar Stellar" || !got.IsCover {
		t.Errorf("got = %+v", got)
	}
	if len(got.Singers) != 1 || got.Singers[0] != "Hoshimachi Suisei" {
		t.Errorf("singers = %v", got.Singers)
	}
	if got.AIStats == nil || got.AIStats.Energetic != 85 {
		t.Errorf("ai stats = %+v", got.AIStats)
	}
	if len(got.CommentCloud) != 1 || got.CommentCloud[0].Word != "kami" {
		t.Errorf("comment cloud = %+v", got.CommentCloud)
	}
	if got.ChorusStartTime == nil || *got.ChorusStartTime != 62 {
		t.Errorf("chorus start = %v", got.ChorusStartTime)
	}

	// Re-enrichment overwrites, never merges.
	if err := videos.UpdateSongInfo("UCtest", "vid1", SongUpdate{SongTitle: "Other Song"}); err != nil {
		t.Fatalf("second update failed: %v", err)
	}
	got, _ = videos.GetVideo("UCtest", "vid1")
	if got.SongTitle != "Other Song" {
		t.Errorf("song title = %q", got.SongTitle)
	}
	if got.AIStats != nil || got.ChorusStartTime != nil {
		t.Errorf("stale optional fields survived overwrite: %+v", got)
	}
	if len(got.Singers) != 0 {
		t.Errorf("stale singers survived overwrite: %v", got.Singers)
	}
}

func TestUpdateSongInfoNotFound(t *testing.T) {
	db := setupTestDB(t)
	videos := NewVideoStore(db)

	err := videos.UpdateSongInfo("UCtest", "nope", SongUpdate{SongTitle: "x"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if err := videos.UpdateVideoType("UCtest", "nope", domain.VideoTypeGame); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
