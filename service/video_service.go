package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"cosmossdk.io/log"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"finlear/domain"
	"finlear/repository"
)

const (
	videoCacheTTL = 6 * time.Hour
	videoTimeout  = 15 * time.Second
)

type VideoService struct {
	logger  log.Logger
	youtube *youtube.Service
	initErr error
	cache   repository.CacheRepository
}

// NewVideoService builds a YouTube Data API client. An empty apiKey leaves
// the service unconfigured; an empty endpoint selects the public API.
func NewVideoService(logger log.Logger, apiKey, endpoint string, cache repository.CacheRepository) *VideoService {
	s := &VideoService{
		logger: logger.With("module", "video"),
		cache:  cache,
	}
	if apiKey == "" {
		s.initErr = fmt.Errorf("YouTube API key is %w", ErrNotConfigured)
		return s
	}

	opts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(strings.TrimSuffix(endpoint, "/")+"/"))
	}
	yt, err := youtube.NewService(context.Background(), opts...)
	if err != nil {
		s.initErr = fmt.Errorf("%w: %v", ErrVideoAPI, err)
		return s
	}
	s.youtube = yt
	return s
}

// Search returns up to maxResults videos for query. Zero maxResults selects
// DefaultVideoCount.
func (s *VideoService) Search(ctx context.Context, query string, maxResults int) ([]domain.Video, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, invalid("search query is required")
	}
	if maxResults <= 0 {
		maxResults = DefaultVideoCount
	}
	if maxResults > MaxVideoCount {
		maxResults = MaxVideoCount
	}
	if s.initErr != nil {
		return nil, s.initErr
	}

	key := cacheKey("videos:"+strconv.Itoa(maxResults), query)
	if raw, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		var videos []domain.Video
		if json.Unmarshal([]byte(raw), &videos) == nil {
			return videos, nil
		}
	}

	s.logger.Info("fetching videos", "query", query)

	ctx, cancel := context.WithTimeout(ctx, videoTimeout)
	defer cancel()

	resp, err := s.youtube.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		MaxResults(int64(maxResults)).
		Context(ctx).
		Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			s.logger.Error("YouTube API error", "status", apiErr.Code, "body", apiErr.Body)
			return nil, fmt.Errorf("%w: %d", ErrVideoAPI, apiErr.Code)
		}
		return nil, fmt.Errorf("%w: %v", ErrVideoAPI, err)
	}

	videos := make([]domain.Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" {
			continue
		}
		id := item.Id.VideoId
		video := domain.Video{
			ID:       id,
			EmbedURL: "https://www.youtube.com/embed/" + id,
			WatchURL: "https://www.youtube.com/watch?v=" + id,
		}
		if sn := item.Snippet; sn != nil {
			video.Title = sn.Title
			video.Description = sn.Description
			video.PublishedAt = sn.PublishedAt
			if sn.Thumbnails != nil && sn.Thumbnails.High != nil {
				video.Thumbnail = sn.Thumbnails.High.Url
			}
		}
		videos = append(videos, video)
	}
	s.logger.Info("found videos", "query", query, "count", len(videos))

	if encoded, err := json.Marshal(videos); err == nil {
		if err := s.cache.Set(ctx, key, string(encoded), videoCacheTTL); err != nil {
			s.logger.Warn("failed to cache videos", "error", err)
		}
	}
	return videos, nil
}
