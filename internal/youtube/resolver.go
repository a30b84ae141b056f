package youtube

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"songdex/internal/domain"
	"songdex/internal/logger"
)

// RefType classifies a channel reference. Every input maps to exactly one
// type; first matching pattern wins.
type RefType string

const (
	RefChannelID RefType = "channel_id"
	RefUsername  RefType = "username"
	RefHandle    RefType = "handle"
	RefVideoID   RefType = "video_id" // resolves to the owning channel
	RefCustomURL RefType = "custom_url"
)

var (
	watchPattern     = regexp.MustCompile(`youtube\.com/watch\?v=([A-Za-z0-9_-]+)`)
	shortPattern     = regexp.MustCompile(`youtu\.be/([A-Za-z0-9_-]+)`)
	channelPattern   = regexp.MustCompile(`youtube\.com/channel/([A-Za-z0-9_-]+)`)
	userPattern      = regexp.MustCompile(`youtube\.com/user/([A-Za-z0-9_-]+)`)
	handleURLPattern = regexp.MustCompile(`youtube\.com/@([A-Za-z0-9_-]+)`)
	customPattern    = regexp.MustCompile(`youtube\.com/c/([A-Za-z0-9_-]+)`)
	channelIDPattern = regexp.MustCompile(`^UC[A-Za-z0-9_-]{22}$`)
	handlePattern    = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

const supportedFormats = `supported formats:
  - https://www.youtube.com/watch?v=VIDEO_ID (video URL)
  - https://youtu.be/VIDEO_ID (short video URL)
  - https://www.youtube.com/channel/UCxxxx (channel URL)
  - https://www.youtube.com/user/username (username)
  - https://www.youtube.com/@handle (handle)
  - Direct channel ID: UCxxxx
  - Direct handle: @handle
Note: /c/customname URLs are not directly supported by the API. Please visit the channel in a browser to get the channel ID from the URL.`

// ParseChannelRef classifies a channel reference string. Video URL
// patterns are checked before channel path patterns so a watch URL never
// falls through to the generic matchers.
func ParseChannelRef(ref string) (RefType, string, error) {
	ref = strings.TrimSpace(ref)

	if m := watchPattern.FindStringSubmatch(ref); m != nil {
		return RefVideoID, m[1], nil
	}
	if m := shortPattern.FindStringSubmatch(ref); m != nil {
		return RefVideoID, m[1], nil
	}
	if m := channelPattern.FindStringSubmatch(ref); m != nil {
		return RefChannelID, m[1], nil
	}
	if m := userPattern.FindStringSubmatch(ref); m != nil {
		return RefUsername, m[1], nil
	}
	if m := handleURLPattern.FindStringSubmatch(ref); m != nil {
		return RefHandle, m[1], nil
	}
	if m := customPattern.FindStringSubmatch(ref); m != nil {
		return RefCustomURL, m[1], nil
	}
	if channelIDPattern.MatchString(ref) {
		return RefChannelID, ref, nil
	}
	if strings.HasPrefix(ref, "@") {
		if handle := ref[1:]; handlePattern.MatchString(handle) {
			return RefHandle, handle, nil
		}
	}

	return "", "", &domain.ValidationError{Input: ref, Detail: "unrecognized YouTube URL or identifier format\n" + supportedFormats}
}

// Directory is the external lookup surface the resolver needs.
type Directory interface {
	ChannelIDByUsername(ctx context.Context, username string) (string, error)
	ChannelIDByHandle(ctx context.Context, handle string) (string, error)
	ChannelByVideoID(ctx context.Context, videoID string) (channelID, channelName string, err error)
}

// Resolver turns a channel reference into a canonical channel id, calling
// the directory only for the reference types that need it.
type Resolver struct {
	dir Directory
	log *logger.Logger
}

func NewResolver(dir Directory, log *logger.Logger) *Resolver {
	return &Resolver{dir: dir, log: log.WithComponent("resolver")}
}

// ResolveChannelID resolves any supported reference to a channel id.
// Channel ids pass through without a network call. Custom /c/ URLs are
// terminal: the directory has no lookup for them.
func (r *Resolver) ResolveChannelID(ctx context.Context, ref string) (string, error) {
	refType, value, err := ParseChannelRef(ref)
	if err != nil {
		return "", err
	}

	switch refType {
	case RefChannelID:
		return value, nil
	case RefUsername:
		return r.dir.ChannelIDByUsername(ctx, value)
	case RefHandle:
		return r.dir.ChannelIDByHandle(ctx, value)
	case RefVideoID:
		channelID, channelName, err := r.dir.ChannelByVideoID(ctx, value)
		if err != nil {
			return "", err
		}
		r.log.Info("resolved video to channel", "video_id", value, "channel_name", channelName)
		return channelID, nil
	case RefCustomURL:
		return "", fmt.Errorf("custom URL (/c/%s) cannot be resolved via the YouTube API: "+
			"visit https://www.youtube.com/c/%s in a browser and copy the channel ID from the redirect URL", value, value)
	default:
		return "", fmt.Errorf("unsupported identifier type: %s", refType)
	}
}
