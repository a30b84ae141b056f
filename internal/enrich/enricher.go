package enrich

import (
	"context"
	"fmt"
	"time"

	"songdex/internal/ai"
	"songdex/internal/constants"
	"songdex/internal/domain"
	"songdex/internal/logger"
	"songdex/internal/store"
	"songdex/internal/youtube"
)

// AIClient is the model surface the enricher needs.
type AIClient interface {
	ClassifyVideoType(ctx context.Context, title, description string) (domain.VideoType, error)
	ExtractSongInfo(ctx context.Context, title, description, channelName string) (*ai.SongInfo, error)
	AnalyzeCharacteristics(ctx context.Context, title string, comments []youtube.Comment) (*domain.AIStats, error)
	ExtractKeywords(ctx context.Context, comments []youtube.Comment) (domain.CommentCloud, error)
	ExtractChorusTime(ctx context.Context, title, description string, comments []youtube.Comment) (*ai.ChorusTime, error)
}

// CommentSource fetches viewer comments for the optional AI pass.
type CommentSource interface {
	Comments(ctx context.Context, videoID string, max int64) ([]youtube.Comment, error)
}

// IndexSyncStatus reports what happened to the singer index for a video.
// A failed sync never fails the enrichment itself; the primary row is
// already written and the next run repairs the index.
type IndexSyncStatus string

const (
	IndexSynced IndexSyncStatus = "synced"
	IndexFailed IndexSyncStatus = "failed"
)

// Result summarizes one enriched video.
type Result struct {
	VideoID   string
	VideoType domain.VideoType
	SongTitle string
	// Partial means the video is a SONG but the song title could not be
	// extracted, so no song fields or index rows were written.
	Partial   bool
	IndexSync IndexSyncStatus
}

// Enricher classifies stored videos and extracts song metadata, then
// resyncs the singer index. Videos are processed one at a time with a
// pause between AI calls.
type Enricher struct {
	videos   *store.VideoStore
	singers  *store.SingerIndexStore
	ai       AIClient
	comments CommentSource
	delay    time.Duration
	log      *logger.Logger
}

func New(videos *store.VideoStore, singers *store.SingerIndexStore, aiClient AIClient, comments CommentSource, delay time.Duration, log *logger.Logger) *Enricher {
	return &Enricher{
		videos:   videos,
		singers:  singers,
		ai:       aiClient,
		comments: comments,
		delay:    delay,
		log:      log.WithComponent("enricher"),
	}
}

// EnrichChannel enriches every unclassified video of a channel. A failure
// on one video is logged and skipped; the rest of the channel proceeds.
func (e *Enricher) EnrichChannel(ctx context.Context, channelID string) ([]*Result, error) {
	videos, err := e.videos.ListUnenriched(channelID)
	if err != nil {
		return nil, fmt.Errorf("list unenriched videos: %w", err)
	}

	log := e.log.WithChannel(channelID)
	log.Info("starting enrichment", "pending", len(videos))

	results := make([]*Result, 0, len(videos))
	for i, video := range videos {
		if i > 0 {
			if err := e.pause(ctx); err != nil {
				return results, err
			}
		}

		result, err := e.EnrichVideo(ctx, channelID, video.VideoID)
		if err != nil {
			if ctx.Err() != nil {
				return results, err
			}
			log.Error("enrichment failed, skipping video", "video_id", video.VideoID, "error", err)
			continue
		}
		results = append(results, result)
	}

	log.Info("enrichment finished", "enriched", len(results), "failed", len(videos)-len(results))
	return results, nil
}

// EnrichVideo runs the full pipeline for one video: duration gate,
// classification, song extraction, the optional AI pass, then the index
// resync. It is idempotent; re-running overwrites all derived fields.
func (e *Enricher) EnrichVideo(ctx context.Context, channelID, videoID string) (*Result, error) {
	video, err := e.videos.GetVideo(channelID, videoID)
	if err != nil {
		return nil, fmt.Errorf("load video %s: %w", videoID, err)
	}

	log := e.log.WithVideo(video.VideoID, video.Title)

	if video.Duration == nil {
		return nil, fmt.Errorf("video %s has no duration", videoID)
	}
	if *video.Duration < constants.DurationMin || *video.Duration > constants.DurationMax {
		log.Info("duration outside song range, marking unknown", "duration", *video.Duration)
		return e.finishNonSong(video, domain.VideoTypeUnknown)
	}

	videoType, err := e.ai.ClassifyVideoType(ctx, video.Title, video.Description)
	if err != nil {
		return nil, fmt.Errorf("classify video %s: %w", videoID, err)
	}
	if videoType != domain.VideoTypeSong {
		log.Info("classified as non-song", "video_type", videoType)
		return e.finishNonSong(video, videoType)
	}

	if err := e.pause(ctx); err != nil {
		return nil, err
	}

	info, err := e.ai.ExtractSongInfo(ctx, video.Title, video.Description, video.ChannelTitle)
	if err != nil {
		return nil, fmt.Errorf("extract song info for %s: %w", videoID, err)
	}
	if info.SongTitle == "" {
		log.Warn("song title not extractable, keeping bare classification")
		if err := e.videos.UpdateVideoType(video.ChannelID, video.VideoID, domain.VideoTypeSong); err != nil {
			return nil, err
		}
		result := &Result{VideoID: video.VideoID, VideoType: domain.VideoTypeSong, Partial: true}
		result.IndexSync = e.resyncIndex(video, nil, nil)
		return result, nil
	}

	upd := store.SongUpdate{
		SongTitle: info.SongTitle,
		Singers:   info.Singers,
		IsCover:   info.IsCover,
		Link:      "https://www.youtube.com/watch?v=" + video.VideoID,
	}
	e.runOptionalPass(ctx, video, &upd, log)

	if err := e.videos.UpdateSongInfo(video.ChannelID, video.VideoID, upd); err != nil {
		return nil, fmt.Errorf("store song info for %s: %w", videoID, err)
	}

	result := &Result{
		VideoID:   video.VideoID,
		VideoType: domain.VideoTypeSong,
		SongTitle: info.SongTitle,
	}
	result.IndexSync = e.resyncIndex(video, info, &upd)
	log.Info("enriched", "song_title", info.SongTitle, "singers", len(info.Singers), "index_sync", result.IndexSync)
	return result, nil
}

// finishNonSong records a GAME or UNKNOWN classification and clears any
// index rows left over from an earlier SONG classification.
func (e *Enricher) finishNonSong(video *domain.Video, videoType domain.VideoType) (*Result, error) {
	if err := e.videos.UpdateVideoType(video.ChannelID, video.VideoID, videoType); err != nil {
		return nil, err
	}
	result := &Result{VideoID: video.VideoID, VideoType: videoType}
	result.IndexSync = e.resyncIndex(video, nil, nil)
	return result, nil
}

// runOptionalPass adds comment-derived characteristics, keywords and the
// chorus segment. Every step is best-effort: an error drops that field
// and logs, it never fails the enrichment.
func (e *Enricher) runOptionalPass(ctx context.Context, video *domain.Video, upd *store.SongUpdate, log *logger.Logger) {
	comments, err := e.comments.Comments(ctx, video.VideoID, constants.MaxCommentsPerVideo)
	if err != nil {
		log.Warn("comment fetch failed", "error", err)
		comments = nil
	}

	if len(comments) > 0 {
		if err := e.pause(ctx); err != nil {
			return
		}
		stats, err := e.ai.AnalyzeCharacteristics(ctx, video.Title, comments)
		if err != nil {
			log.Warn("characteristics analysis failed", "error", err)
		} else {
			upd.AIStats = stats
		}

		if err := e.pause(ctx); err != nil {
			return
		}
		cloud, err := e.ai.ExtractKeywords(ctx, comments)
		if err != nil {
			log.Warn("keyword extraction failed", "error", err)
		} else {
			upd.CommentCloud = cloud
		}
	}

	if err := e.pause(ctx); err != nil {
		return
	}
	chorus, err := e.ai.ExtractChorusTime(ctx, video.Title, video.Description, comments)
	switch {
	case err != nil:
		log.Warn("chorus extraction failed", "error", err)
	case chorus.Confidence > constants.ChorusMinConfidence:
		upd.ChorusStartTime = &chorus.StartTime
		upd.ChorusEndTime = &chorus.EndTime
	default:
		log.Info("chorus guess below confidence bar, dropping", "confidence", chorus.Confidence)
	}
}

// resyncIndex rebuilds the singer index for one video: delete everything,
// then insert one row per singer. For non-songs and partial results the
// insert set is empty, leaving the video out of the index.
func (e *Enricher) resyncIndex(video *domain.Video, info *ai.SongInfo, upd *store.SongUpdate) IndexSyncStatus {
	log := e.log.WithVideo(video.VideoID, video.Title)

	if err := e.singers.DeleteByVideoID(video.VideoID); err != nil {
		log.Warn("singer index delete failed, index may be stale", "error", err)
		return IndexFailed
	}

	if info == nil || len(info.Singers) == 0 {
		return IndexSynced
	}

	rows := make([]*domain.SingerVideo, 0, len(info.Singers))
	for _, singer := range info.Singers {
		rows = append(rows, &domain.SingerVideo{
			SingerName:         singer,
			SongKey:            domain.SongKey(info.OriginalSongTitle, info.OriginalArtistName, info.SongTitle),
			VideoID:            video.VideoID,
			SongTitle:          info.SongTitle,
			VideoTitle:         video.Title,
			ChannelID:          video.ChannelID,
			PublishedAt:        video.PublishedAt,
			IsCover:            info.IsCover,
			Link:               upd.Link,
			ThumbnailURL:       video.ThumbnailURL,
			OriginalSongTitle:  info.OriginalSongTitle,
			OriginalArtistName: info.OriginalArtistName,
			AIStats:            upd.AIStats,
			CommentCloud:       upd.CommentCloud,
			ChorusStartTime:    upd.ChorusStartTime,
			ChorusEndTime:      upd.ChorusEndTime,
			ViewCount:          video.ViewCount,
			LikeCount:          video.LikeCount,
			CommentCount:       video.CommentCount,
			ChannelTitle:       video.ChannelTitle,
		})
	}

	if err := e.singers.InsertRows(rows); err != nil {
		log.Warn("singer index insert failed, index may be stale", "error", err)
		return IndexFailed
	}
	return IndexSynced
}

// pause spaces out AI calls. Zero delay skips the timer entirely so tests
// run instantly.
func (e *Enricher) pause(ctx context.Context) error {
	if e.delay <= 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(e.delay):
		return nil
	}
}
