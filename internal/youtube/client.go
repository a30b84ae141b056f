package youtube

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"songdex/internal/constants"
	"songdex/internal/domain"
	"songdex/internal/logger"
)

// Comment is one top-level comment fetched for the AI pass.
type Comment struct {
	Text      string `json:"text"`
	LikeCount int64  `json:"like_count"`
}

// Client wraps the YouTube Data API v3 service.
type Client struct {
	svc *youtube.Service
	log *logger.Logger
}

func NewClient(ctx context.Context, apiKey string, log *logger.Logger) (*Client, error) {
	svc, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	return &Client{svc: svc, log: log.WithComponent("youtube")}, nil
}

func (c *Client) ChannelIDByUsername(ctx context.Context, username string) (string, error) {
	resp, err := c.svc.Channels.List([]string{"id"}).ForUsername(username).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("lookup username %q: %w", username, err)
	}
	if len(resp.Items) == 0 {
		return "", fmt.Errorf("username %q: %w", username, domain.ErrNotFound)
	}
	return resp.Items[0].Id, nil
}

func (c *Client) ChannelIDByHandle(ctx context.Context, handle string) (string, error) {
	resp, err := c.svc.Channels.List([]string{"id"}).ForHandle(handle).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("lookup handle @%s: %w", handle, err)
	}
	if len(resp.Items) == 0 {
		return "", fmt.Errorf("handle @%s: %w", handle, domain.ErrNotFound)
	}
	return resp.Items[0].Id, nil
}

func (c *Client) ChannelByVideoID(ctx context.Context, videoID string) (string, string, error) {
	resp, err := c.svc.Videos.List([]string{"snippet"}).Id(videoID).Context(ctx).Do()
	if err != nil {
		return "", "", fmt.Errorf("lookup video %q: %w", videoID, err)
	}
	if len(resp.Items) == 0 {
		return "", "", fmt.Errorf("video %q: %w", videoID, domain.ErrNotFound)
	}
	snippet := resp.Items[0].Snippet
	return snippet.ChannelId, snippet.ChannelTitle, nil
}

// ChannelInfo fetches the channel metadata stored in the sentinel row.
func (c *Client) ChannelInfo(ctx context.Context, channelID string) (*domain.ChannelInfo, error) {
	resp, err := c.svc.Channels.List([]string{"snippet", "statistics"}).Id(channelID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("fetch channel %q: %w", channelID, err)
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("channel %q: %w", channelID, domain.ErrNotFound)
	}

	item := resp.Items[0]
	info := &domain.ChannelInfo{
		ChannelID:   channelID,
		ChannelName: item.Snippet.Title,
	}
	if item.Snippet.Thumbnails != nil {
		info.ChannelIconURL = bestThumbnail(item.Snippet.Thumbnails)
	}
	if item.Statistics != nil {
		info.SubscriberCount = int64(item.Statistics.SubscriberCount)
	}
	return info, nil
}

// ListVideoIDs walks the channel's uploads playlist newest-first and
// returns video ids. maxVideos <= 0 means no limit.
func (c *Client) ListVideoIDs(ctx context.Context, channelID string, maxVideos int) ([]string, error) {
	playlistID, err := c.uploadsPlaylistID(ctx, channelID)
	if err != nil {
		return nil, err
	}

	var ids []string
	pageToken := ""
	for {
		resp, err := c.svc.PlaylistItems.List([]string{"contentDetails"}).
			PlaylistId(playlistID).
			MaxResults(50).
			PageToken(pageToken).
			Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("list playlist %q: %w", playlistID, err)
		}

		for _, item := range resp.Items {
			ids = append(ids, item.ContentDetails.VideoId)
			if maxVideos > 0 && len(ids) >= maxVideos {
				return ids, nil
			}
		}

		if resp.NextPageToken == "" {
			return ids, nil
		}
		pageToken = resp.NextPageToken
	}
}

func (c *Client) uploadsPlaylistID(ctx context.Context, channelID string) (string, error) {
	resp, err := c.svc.Channels.List([]string{"contentDetails"}).Id(channelID).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("fetch channel %q: %w", channelID, err)
	}
	if len(resp.Items) == 0 {
		return "", fmt.Errorf("channel %q: %w", channelID, domain.ErrNotFound)
	}
	return resp.Items[0].ContentDetails.RelatedPlaylists.Uploads, nil
}

// VideoDetails fetches full metadata for up to 50 video ids in one call.
// Larger batches are truncated; callers chunk.
func (c *Client) VideoDetails(ctx context.Context, videoIDs []string) ([]*domain.Video, error) {
	if len(videoIDs) == 0 {
		return nil, nil
	}
	if len(videoIDs) > constants.VideoDetailsBatchSize {
		videoIDs = videoIDs[:constants.VideoDetailsBatchSize]
	}

	resp, err := c.svc.Videos.List([]string{"snippet", "contentDetails", "statistics"}).
		Id(strings.Join(videoIDs, ",")).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("fetch video details: %w", err)
	}

	videos := make([]*domain.Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		duration := ParseDuration(item.ContentDetails.Duration)
		v := &domain.Video{
			ChannelID:    item.Snippet.ChannelId,
			VideoID:      item.Id,
			Title:        item.Snippet.Title,
			Description:  item.Snippet.Description,
			Duration:     &duration,
			PublishedAt:  item.Snippet.PublishedAt,
			ChannelTitle: item.Snippet.ChannelTitle,
		}
		if item.Snippet.Thumbnails != nil {
			v.ThumbnailURL = bestThumbnail(item.Snippet.Thumbnails)
		}
		if item.Statistics != nil {
			v.ViewCount = int64(item.Statistics.ViewCount)
			v.LikeCount = int64(item.Statistics.LikeCount)
			v.CommentCount = int64(item.Statistics.CommentCount)
		}
		videos = append(videos, v)
	}
	return videos, nil
}

// Comments fetches up to max top-level comments by relevance. Comments can
// be disabled per video; that surfaces as an API error and maps to an
// empty list rather than a failure.
func (c *Client) Comments(ctx context.Context, videoID string, max int64) ([]Comment, error) {
	resp, err := c.svc.CommentThreads.List([]string{"snippet"}).
		VideoId(videoID).
		MaxResults(max).
		Order("relevance").
		TextFormat("plainText").
		Context(ctx).Do()
	if err != nil {
		c.log.Warn("comment fetch failed, continuing without comments", "video_id", videoID, "error", err)
		return nil, nil
	}

	comments := make([]Comment, 0, len(resp.Items))
	for _, item := range resp.Items {
		snippet := item.Snippet.TopLevelComment.Snippet
		comments = append(comments, Comment{
			Text:      snippet.TextDisplay,
			LikeCount: snippet.LikeCount,
		})
	}
	return comments, nil
}

func bestThumbnail(t *youtube.ThumbnailDetails) string {
	switch {
	case t.High != nil:
		return t.High.Url
	case t.Medium != nil:
		return t.Medium.Url
	case t.Default != nil:
		return t.Default.Url
	}
	return ""
}
