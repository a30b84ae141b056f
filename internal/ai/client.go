package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	openai "github.com/sashabaranov/go-openai"

	"songdex/internal/constants"
	"songdex/internal/domain"
	"songdex/internal/logger"
	"songdex/internal/youtube"
)

// SongInfo is the structured extraction result for a SONG video.
type SongInfo struct {
	SongTitle          string   `json:"song_title"`
	Singers            []string `json:"singers"`
	IsCover            bool     `json:"is_cover"`
	OriginalSongTitle  string   `json:"original_song_title"`
	OriginalArtistName string   `json:"original_artist_name"`
}

// ChorusTime is a chorus segment guess with the model's own confidence.
type ChorusTime struct {
	StartTime  int64   `json:"start_time"`
	EndTime    int64   `json:"end_time"`
	Confidence float64 `json:"confidence"`
}

// Client talks to an OpenAI-compatible chat completion endpoint and asks
// for JSON-only answers.
type Client struct {
	client *openai.Client
	model  string
	log    *logger.Logger
}

func NewClient(apiKey, baseURL, model string, log *logger.Logger) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		log:    log.WithComponent("ai"),
	}
}

// ClassifyVideoType sorts a video into SONG, GAME or UNKNOWN from its
// title and description. Anything the model invents beyond those three
// labels is treated as UNKNOWN.
func (c *Client) ClassifyVideoType(ctx context.Context, title, description string) (domain.VideoType, error) {
	prompt := fmt.Sprintf(`Classify this YouTube video into exactly one category.

Title: %s
Description: %s

Categories:
- SONG: a music performance, song cover, original song or music video
- GAME: gameplay, game commentary or a gaming stream
- UNKNOWN: anything else (chatting, vlogs, announcements, shorts)

Respond with JSON: {"video_type": "SONG" | "GAME" | "UNKNOWN"}`, title, truncate(description, 2000))

	var result struct {
		VideoType string `json:"video_type"`
	}
	if err := c.completeJSON(ctx, prompt, &result); err != nil {
		return "", err
	}

	switch domain.VideoType(strings.ToUpper(strings.TrimSpace(result.VideoType))) {
	case domain.VideoTypeSong:
		return domain.VideoTypeSong, nil
	case domain.VideoTypeGame:
		return domain.VideoTypeGame, nil
	default:
		return domain.VideoTypeUnknown, nil
	}
}

// ExtractSongInfo pulls song metadata out of a SONG video's title and
// description. The channel name disambiguates self-covers from originals.
// An empty song_title in the response means the model could not tell;
// callers treat that as a partial result.
func (c *Client) ExtractSongInfo(ctx context.Context, title, description, channelName string) (*SongInfo, error) {
	prompt := fmt.Sprintf(`Extract song information from this YouTube video.

Title: %s
Channel: %s
Description: %s

Respond with JSON:
{
  "song_title": "name of the song, or empty string if unclear",
  "singers": ["performer names"],
  "is_cover": true or false,
  "original_song_title": "title of the original song if this is a cover, else empty",
  "original_artist_name": "original artist if this is a cover, else empty"
}`, title, channelName, truncate(description, 2000))

	var info SongInfo
	if err := c.completeJSON(ctx, prompt, &info); err != nil {
		return nil, err
	}

	cleaned := info.Singers[:0]
	for _, s := range info.Singers {
		if s = strings.TrimSpace(s); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	info.Singers = cleaned
	info.SongTitle = strings.TrimSpace(info.SongTitle)
	return &info, nil
}

// AnalyzeCharacteristics scores the video on five 0-100 axes from its
// metadata and top comments.
func (c *Client) AnalyzeCharacteristics(ctx context.Context, title string, comments []youtube.Comment) (*domain.AIStats, error) {
	prompt := fmt.Sprintf(`Rate this music video on five characteristics, each 0-100, based on the title and viewer comments.

Title: %s
Comments:
%s

Respond with JSON: {"cool": 0-100, "cute": 0-100, "energetic": 0-100, "surprising": 0-100, "emotional": 0-100}`,
		title, formatComments(comments))

	var stats domain.AIStats
	if err := c.completeJSON(ctx, prompt, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ExtractKeywords builds a weighted keyword cloud from viewer comments.
// Empty words are dropped and the cloud is capped.
func (c *Client) ExtractKeywords(ctx context.Context, comments []youtube.Comment) (domain.CommentCloud, error) {
	prompt := fmt.Sprintf(`Extract the most representative keywords from these YouTube comments, with an importance score 1-100 for each.

Comments:
%s

Respond with JSON: {"keywords": [{"word": "...", "importance": 1-100}]}`, formatComments(comments))

	var result struct {
		Keywords []domain.CommentWord `json:"keywords"`
	}
	if err := c.completeJSON(ctx, prompt, &result); err != nil {
		return nil, err
	}

	cloud := make(domain.CommentCloud, 0, len(result.Keywords))
	for _, kw := range result.Keywords {
		if strings.TrimSpace(kw.Word) == "" {
			continue
		}
		cloud = append(cloud, kw)
		if len(cloud) == constants.MaxCommentKeywords {
			break
		}
	}
	return cloud, nil
}

// ExtractChorusTime guesses the chorus segment from timestamps mentioned
// in the description and comments. The caller decides whether the
// confidence clears the acceptance bar.
func (c *Client) ExtractChorusTime(ctx context.Context, title, description string, comments []youtube.Comment) (*ChorusTime, error) {
	prompt := fmt.Sprintf(`Find the chorus (most exciting) segment of this music video using timestamps mentioned in the description or comments.

Title: %s
Description: %s
Comments:
%s

Respond with JSON: {"start_time": seconds, "end_time": seconds, "confidence": 0.0-1.0}
Use confidence 0.0 if no timestamp evidence exists.`,
		title, truncate(description, 2000), formatComments(comments))

	var chorus ChorusTime
	if err := c.completeJSON(ctx, prompt, &chorus); err != nil {
		return nil, err
	}
	return &chorus, nil
}

func (c *Client) completeJSON(ctx context.Context, prompt string, dest any) error {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a precise metadata extraction assistant. Respond with a single JSON object and nothing else.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return fmt.Errorf("chat completion: empty response")
	}

	content := stripFence(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), dest); err != nil {
		return fmt.Errorf("parse model response: %w", err)
	}
	return nil
}

// stripFence removes a markdown code fence some models wrap JSON in even
// when asked not to.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}

func formatComments(comments []youtube.Comment) string {
	if len(comments) == 0 {
		return "(no comments)"
	}
	var b strings.Builder
	for _, comment := range comments {
		fmt.Fprintf(&b, "- %s\n", truncate(comment.Text, 200))
	}
	return b.String()
}

// truncate cuts s to at most max bytes, backing up to a rune boundary so
// multibyte text is never split mid-rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
