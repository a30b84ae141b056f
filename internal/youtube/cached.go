package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"songdex/internal/domain"
)

type Cache interface {
	GetCache(key string) ([]byte, error)
	SetCache(key string, data []byte, ttl time.Duration) error
}

// API is the full directory surface of the client: resolution lookups,
// channel metadata, and video listings.
type API interface {
	Directory
	ChannelInfo(ctx context.Context, channelID string) (*domain.ChannelInfo, error)
	ListVideoIDs(ctx context.Context, channelID string, maxVideos int) ([]string, error)
	VideoDetails(ctx context.Context, videoIDs []string) ([]*domain.Video, error)
}

// CachedDirectory caches the lookups that are stable across runs:
// reference resolution and channel metadata. Video listings and details
// always go to the API.
type CachedDirectory struct {
	api      API
	cache    Cache
	cacheTTL time.Duration
}

func NewCachedDirectory(api API, cache Cache, cacheTTL time.Duration) *CachedDirectory {
	return &CachedDirectory{
		api:      api,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

func (c *CachedDirectory) ChannelIDByUsername(ctx context.Context, username string) (string, error) {
	return c.cachedString(fmt.Sprintf("yt:username:%s", username), func() (string, error) {
		return c.api.ChannelIDByUsername(ctx, username)
	})
}

func (c *CachedDirectory) ChannelIDByHandle(ctx context.Context, handle string) (string, error) {
	return c.cachedString(fmt.Sprintf("yt:handle:%s", handle), func() (string, error) {
		return c.api.ChannelIDByHandle(ctx, handle)
	})
}

func (c *CachedDirectory) ChannelByVideoID(ctx context.Context, videoID string) (string, string, error) {
	cacheKey := fmt.Sprintf("yt:video-channel:%s", videoID)

	data, err := c.cache.GetCache(cacheKey)
	if err != nil {
		return "", "", err
	}
	if data != nil {
		var cached struct {
			ChannelID   string `json:"channel_id"`
			ChannelName string `json:"channel_name"`
		}
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached.ChannelID, cached.ChannelName, nil
		}
	}

	channelID, channelName, err := c.api.ChannelByVideoID(ctx, videoID)
	if err != nil {
		return "", "", err
	}

	payload := struct {
		ChannelID   string `json:"channel_id"`
		ChannelName string `json:"channel_name"`
	}{channelID, channelName}
	if data, err := json.Marshal(payload); err == nil {
		c.cache.SetCache(cacheKey, data, c.cacheTTL)
	}

	return channelID, channelName, nil
}

func (c *CachedDirectory) ChannelInfo(ctx context.Context, channelID string) (*domain.ChannelInfo, error) {
	cacheKey := fmt.Sprintf("yt:channel-info:%s", channelID)

	data, err := c.cache.GetCache(cacheKey)
	if err != nil {
		return nil, err
	}
	if data != nil {
		var info domain.ChannelInfo
		if err := json.Unmarshal(data, &info); err == nil {
			return &info, nil
		}
	}

	info, err := c.api.ChannelInfo(ctx, channelID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(info); err == nil {
		c.cache.SetCache(cacheKey, data, c.cacheTTL)
	}

	return info, nil
}

func (c *CachedDirectory) ListVideoIDs(ctx context.Context, channelID string, maxVideos int) ([]string, error) {
	return c.api.ListVideoIDs(ctx, channelID, maxVideos)
}

func (c *CachedDirectory) VideoDetails(ctx context.Context, videoIDs []string) ([]*domain.Video, error) {
	return c.api.VideoDetails(ctx, videoIDs)
}

func (c *CachedDirectory) cachedString(cacheKey string, fetch func() (string, error)) (string, error) {
	data, err := c.cache.GetCache(cacheKey)
	if err != nil {
		return "", err
	}
	if data != nil {
		return string(data), nil
	}

	value, err := fetch()
	if err != nil {
		return "", err
	}

	c.cache.SetCache(cacheKey, []byte(value), c.cacheTTL)
	return value, nil
}

var _ API = (*CachedDirectory)(nil)
var _ API = (*Client)(nil)
