package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"unicode/utf8"

	"songdex/internal/domain"
	"songdex/internal/logger"
	"songdex/internal/youtube"
)

// newTestClient points the client at a stub chat completion endpoint that
// always answers with the given message content.
func newTestClient(t *testing.T, content string) *Client {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"model":   "test-model",
			"choices": []map[string]any{
				{
					"index":         0,
					"finish_reason": "stop",
					"message": map[string]any{
						"role":    "assistant",
						"content": content,
					},
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)

	return NewClient("test-key", srv.URL+"/v1", "test-model", logger.Default())
}

func TestClassifyVideoType(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     domain.VideoType
	}{
		{"song", `{"video_type": "SONG"}`, domain.VideoTypeSong},
		{"game", `{"video_type": "GAME"}`, domain.VideoTypeGame},
		{"unknown", `{"video_type": "UNKNOWN"}`, domain.VideoTypeUnknown},
		{"lowercase normalized", `{"video_type": "song"}`, domain.VideoTypeSong},
		{"invented label maps to unknown", `{"video_type": "MUSIC"}`, domain.VideoTypeUnknown},
		{"fenced json", "```json\n{\"video_type\": \"SONG\"}\n```", domain.VideoTypeSong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.response)
			got, err := c.ClassifyVideoType(context.Background(), "some title", "some description")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("video type = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestClassifyVideoTypeBadJSON(t *testing.T) {
	c := newTestClient(t, "I think this is a song!")
	if _, err := c.ClassifyVideoType(context.Background(), "title", "desc"); err == nil {
		t.Fatal("expected error for non-JSON response")
	}
}

func TestExtractSongInfo(t *testing.T) {
	c := newTestClient(t, `{
		"song_title": "Stellar Stellar",
		"singers": [" Hoshimachi Suisei ", "", "Ado"],
		"is_cover": true,
		"original_song_title": "Stellar Stellar",
		"original_artist_name": "Hoshimachi Suisei"
	}`)

	info, err := c.ExtractSongInfo(context.Background(), "title", "desc", "Suisei Channel")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.SongTitle != "Stellar Stellar" {
		t.Errorf("song title = %q", info.SongTitle)
	}
	if len(info.Singers) != 2 || info.Singers[0] != "Hoshimachi Suisei" || info.Singers[1] != "Ado" {
		t.Errorf("singers = %v, want trimmed non-empty names", info.Singers)
	}
	if !info.IsCover {
		t.Error("is_cover should be true")
	}
}

func TestExtractSongInfoEmptyTitle(t *testing.T) {
	c := newTestClient(t, `{"song_title": "  ", "singers": [], "is_cover": false}`)

	info, err := c.ExtractSongInfo(context.Background(), "title", "desc", "Suisei Channel")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.SongTitle != "" {
		t.Errorf("song title = %q, want empty", info.SongTitle)
	}
}

func TestAnalyzeCharacteristics(t *testing.T) {
	c := newTestClient(t, `{"cool": 80, "cute": 20, "energetic": 90, "surprising": 10, "emotional": 55}`)

	stats, err := c.AnalyzeCharacteristics(context.Background(), "title", []youtube.Comment{{Text: "great"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Cool != 80 || stats.Energetic != 90 || stats.Emotional != 55 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestExtractKeywords(t *testing.T) {
	words := make([]map[string]any, 0, 25)
	for i := 0; i < 25; i++ {
		words = append(words, map[string]any{"word": fmt.Sprintf("word%d", i), "importance": 100 - i})
	}
	words[3]["word"] = "  "
	payload, _ := json.Marshal(map[string]any{"keywords": words})

	c := newTestClient(t, string(payload))
	cloud, err := c.ExtractKeywords(context.Background(), []youtube.Comment{{Text: "kawaii"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cloud) != 20 {
		t.Errorf("cloud size = %d, want capped at 20", len(cloud))
	}
	for _, kw := range cloud {
		if kw.Word == "" || kw.Word == "  " {
			t.Errorf("empty word survived filtering: %+v", kw)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"shorter than max", "hello", 10, "hello"},
		{"exact max", "hello", 5, "hello"},
		{"ascii cut", "hello world", 5, "hello"},
		{"multibyte kept whole", "歌ってみた", 7, "歌っ"},
		{"cut inside rune backs up", "歌ってみた", 8, "歌っ"},
		{"max smaller than first rune", "歌", 2, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.in, tt.max)
			if got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("truncate produced invalid UTF-8: %q", got)
			}
		})
	}
}

func TestExtractChorusTime(t *testing.T) {
	c := newTestClient(t, `{"start_time": 62, "end_time": 95, "confidence": 0.8}`)

	chorus, err := c.ExtractChorusTime(context.Background(), "title", "desc", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if chorus.StartTime != 62 || chorus.EndTime != 95 || chorus.Confidence != 0.8 {
		t.Errorf("chorus = %+v", chorus)
	}
}
