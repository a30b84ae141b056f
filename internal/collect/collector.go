package collect

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"songdex/internal/constants"
	"songdex/internal/domain"
	"songdex/internal/logger"
	"songdex/internal/store"
)

// Directory is the channel listing surface the collector needs.
type Directory interface {
	ChannelInfo(ctx context.Context, channelID string) (*domain.ChannelInfo, error)
	ListVideoIDs(ctx context.Context, channelID string, maxVideos int) ([]string, error)
	VideoDetails(ctx context.Context, videoIDs []string) ([]*domain.Video, error)
}

// Resolver turns a channel reference into a channel id.
type Resolver interface {
	ResolveChannelID(ctx context.Context, ref string) (string, error)
}

// Summary reports one channel's collection pass.
type Summary struct {
	ChannelID   string
	ChannelName string
	Listed      int
	New         int
	Stored      int
	SkippedLive int
}

// Collector ingests raw video metadata for channels. It only stores what
// the directory reports; classification is the enricher's job.
type Collector struct {
	videos   *store.VideoStore
	dir      Directory
	resolver Resolver
	log      *logger.Logger
}

func New(videos *store.VideoStore, dir Directory, resolver Resolver, log *logger.Logger) *Collector {
	return &Collector{
		videos:   videos,
		dir:      dir,
		resolver: resolver,
		log:      log.WithComponent("collector"),
	}
}

// Run collects every referenced channel under one run id. A failing
// channel is logged and skipped so the rest of the run proceeds; the
// error of the last failed channel is returned alongside the summaries.
func (c *Collector) Run(ctx context.Context, refs []string, maxVideos int) ([]*Summary, error) {
	runID := uuid.NewString()
	log := c.log.With("run_id", runID)
	log.Info("collection run starting", "channels", len(refs))

	var lastErr error
	summaries := make([]*Summary, 0, len(refs))
	for _, ref := range refs {
		summary, err := c.CollectChannel(ctx, ref, maxVideos)
		if err != nil {
			if ctx.Err() != nil {
				return summaries, err
			}
			log.Error("channel collection failed, skipping", "ref", ref, "error", err)
			lastErr = err
			continue
		}
		summaries = append(summaries, summary)
		log.Info("channel collected",
			"channel_id", summary.ChannelID,
			"channel_name", summary.ChannelName,
			"listed", summary.Listed,
			"new", summary.New,
			"stored", summary.Stored,
			"skipped_live", summary.SkippedLive)
	}

	log.Info("collection run finished", "succeeded", len(summaries), "failed", len(refs)-len(summaries))
	return summaries, lastErr
}

// CollectChannel resolves a reference, refreshes the channel's metadata
// sentinel, then stores details for videos not seen before. maxVideos <= 0
// means the whole uploads playlist.
func (c *Collector) CollectChannel(ctx context.Context, ref string, maxVideos int) (*Summary, error) {
	channelID, err := c.resolver.ResolveChannelID(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", ref, err)
	}

	log := c.log.WithChannel(channelID)

	info, err := c.dir.ChannelInfo(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("fetch channel info: %w", err)
	}
	if err := c.videos.UpsertChannelInfo(info); err != nil {
		return nil, err
	}

	ids, err := c.dir.ListVideoIDs(ctx, channelID, maxVideos)
	if err != nil {
		return nil, fmt.Errorf("list channel videos: %w", err)
	}

	known, err := c.videos.ListVideoIDs(channelID)
	if err != nil {
		return nil, err
	}

	newIDs := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			newIDs = append(newIDs, id)
		}
	}

	summary := &Summary{
		ChannelID:   channelID,
		ChannelName: info.ChannelName,
		Listed:      len(ids),
		New:         len(newIDs),
	}
	log.Info("listing diffed", "listed", len(ids), "known", len(known), "new", len(newIDs))

	for start := 0; start < len(newIDs); start += constants.VideoDetailsBatchSize {
		end := start + constants.VideoDetailsBatchSize
		if end > len(newIDs) {
			end = len(newIDs)
		}

		videos, err := c.dir.VideoDetails(ctx, newIDs[start:end])
		if err != nil {
			return nil, fmt.Errorf("fetch video details: %w", err)
		}

		for _, video := range videos {
			if video.Duration != nil && *video.Duration == 0 {
				summary.SkippedLive++
				continue
			}
			if err := c.videos.UpsertVideo(video); err != nil {
				return nil, err
			}
			summary.Stored++
		}
	}

	return summary, nil
}
