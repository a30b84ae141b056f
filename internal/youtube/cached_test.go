package youtube

import (
	"context"
	"testing"
	"time"
)

type mockCache struct {
	data map[string][]byte
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string][]byte)}
}

func (m *mockCache) GetCache(key string) ([]byte, error) {
	return m.data[key], nil
}

func (m *mockCache) SetCache(key string, data []byte, ttl time.Duration) error {
	m.data[key] = data
	return nil
}

func TestCachedDirectoryHandleLookup(t *testing.T) {
	dir := &fakeDirectory{handles: map[string]string{"pekora": "UChhhhhhhhhhhhhhhhhhhhhh"}}
	cached := NewCachedDirectory(dir, newMockCache(), time.Hour)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		id, err := cached.ChannelIDByHandle(ctx, "pekora")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id != "UChhhhhhhhhhhhhhhhhhhhhh" {
			t.Errorf("channel id = %s", id)
		}
	}
	if dir.calls != 1 {
		t.Errorf("directory calls = %d, want 1", dir.calls)
	}
}

func TestCachedDirectoryVideoLookup(t *testing.T) {
	dir := &fakeDirectory{videos: map[string]string{"abc": "UCvvvvvvvvvvvvvvvvvvvvvv"}}
	cached := NewCachedDirectory(dir, newMockCache(), time.Hour)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		channelID, channelName, err := cached.ChannelByVideoID(ctx, "abc")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if channelID != "UCvvvvvvvvvvvvvvvvvvvvvv" || channelName != "Some Channel" {
			t.Errorf("got (%s, %s)", channelID, channelName)
		}
	}
	if dir.calls != 1 {
		t.Errorf("directory calls = %d, want 1", dir.calls)
	}
}

func TestCachedDirectoryChannelInfo(t *testing.T) {
	dir := &fakeDirectory{}
	cached := NewCachedDirectory(dir, newMockCache(), time.Hour)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		info, err := cached.ChannelInfo(ctx, "UCtest")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if info.ChannelID != "UCtest" || info.ChannelName != "Some Channel" {
			t.Errorf("info = %+v", info)
		}
	}
	if dir.calls != 1 {
		t.Errorf("directory calls = %d, want 1", dir.calls)
	}
}

func TestCachedDirectoryErrorNotCached(t *testing.T) {
	dir := &fakeDirectory{}
	cached := NewCachedDirectory(dir, newMockCache(), time.Hour)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := cached.ChannelIDByHandle(ctx, "missing"); err == nil {
			t.Fatal("expected error")
		}
	}
	if dir.calls != 2 {
		t.Errorf("directory calls = %d, want 2", dir.calls)
	}
}
