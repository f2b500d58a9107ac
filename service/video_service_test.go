package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"cosmossdk.io/log"
	"github.com/stretchr/testify/require"

	"finlear/repository"
)

const youtubeBody = `{
  "items": [
    {"id": {"videoId": "abc123"}, "snippet": {"title": "EMI explained", "description": "d",
      "publishedAt": "2024-01-01T00:00:00Z", "thumbnails": {"high": {"url": "https://img/abc.jpg"}}}},
    {"id": {"channelId": "skip-me"}, "snippet": {"title": "A channel"}}
  ]
}`

func TestVideoSearch(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		q := r.URL.Query()
		apiKey := q.Get("key")
		if apiKey == "" {
			apiKey = r.Header.Get("X-Goog-Api-Key")
		}
		if !strings.HasSuffix(r.URL.Path, "/youtube/v3/search") || apiKey != "yt-key" ||
			q.Get("q") != "what is emi" || q.Get("maxResults") != "5" || q.Get("type") != "video" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(youtubeBody))
	}))
	defer srv.Close()

	svc := NewVideoService(log.NewNopLogger(), "yt-key", srv.URL, repository.NewMemoryCache())

	for i := 0; i < 2; i++ {
		videos, err := svc.Search(context.Background(), " what is emi ", 0)
		require.NoError(t, err)
		require.Len(t, videos, 1)
		require.Equal(t, "abc123", videos[0].ID)
		require.Equal(t, "https://www.youtube.com/embed/abc123", videos[0].EmbedURL)
		require.Equal(t, "https://www.youtube.com/watch?v=abc123", videos[0].WatchURL)
		require.Equal(t, "https://img/abc.jpg", videos[0].Thumbnail)
	}
	require.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestVideoSearchErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"quota exceeded"}}`))
	}))
	defer srv.Close()

	svc := NewVideoService(log.NewNopLogger(), "yt-key", srv.URL, repository.NewMemoryCache())
	_, err := svc.Search(context.Background(), "budget", 3)
	require.ErrorIs(t, err, ErrVideoAPI)
	require.Contains(t, err.Error(), "403")

	_, err = svc.Search(context.Background(), "  ", 3)
	require.ErrorIs(t, err, ErrValidation)

	unconfigured := NewVideoService(log.NewNopLogger(), "", srv.URL, repository.NewMemoryCache())
	_, err = unconfigured.Search(context.Background(), "budget", 3)
	require.ErrorIs(t, err, ErrNotConfigured)
}
