package youtube

import (
	"context"
	"errors"
	"time"

	"github.com/cesargomez89/praiseteam/internal/constants"
	"github.com/cesargomez89/praiseteam/internal/domain"
	"github.com/cesargomez89/praiseteam/internal/logger"
)

// Enricher turns a video URL into display metadata. Only an unusable URL is
// an error; every upstream failure degrades to fallback metadata, which is
// never cached.
type Enricher struct {
	client ClientInterface
	cache  Cache
	logger *logger.Logger
	now    func() time.Time
}

func NewEnricher(client ClientInterface, cache Cache, log *logger.Logger) *Enricher {
	if log == nil {
		log = logger.Default()
	}
	if cache == nil {
		cache = NewMemoryCache(constants.MetadataCacheTTL)
	}
	return &Enricher{
		client: client,
		cache:  cache,
		logger: log.WithComponent("youtube"),
		now:    time.Now,
	}
}

func (e *Enricher) Enrich(ctx context.Context, rawURL string) (*domain.VideoMetadata, error) {
	videoID, err := ExtractVideoID(rawURL)
	if err != nil {
		return nil, err
	}
	return e.EnrichID(ctx, videoID), nil
}

// EnrichID resolves metadata for an already extracted id.
func (e *Enricher) EnrichID(ctx context.Context, videoID string) *domain.VideoMetadata {
	if meta, ok := e.cache.Get(videoID); ok {
		return meta
	}

	log := e.logger.WithVideo(videoID)
	meta, err := e.client.GetVideo(ctx, videoID)
	if err != nil {
		if errors.Is(err, ErrNoAPIKey) {
			log.Warn("YouTube API key not configured, using basic metadata")
		} else {
			log.Error("Failed to fetch video metadata", "error", err)
		}
		return Fallback(videoID, e.now())
	}

	e.cache.Set(videoID, meta)
	return meta
}

// ClearCache drops every cached entry.
func (e *Enricher) ClearCache() {
	e.cache.Clear()
}

// Fallback is the metadata served when the API cannot be used.
func Fallback(videoID string, now time.Time) *domain.VideoMetadata {
	thumbs := ThumbnailURLs(videoID)
	return &domain.VideoMetadata{
		ID:                videoID,
		Title:             constants.FallbackTitle,
		Thumbnail:         thumbs.High,
		Thumbnails:        thumbs,
		Duration:          "PT0S",
		DurationFormatted: "0:00",
		ViewCount:         0,
		ChannelTitle:      constants.FallbackChannel,
		PublishedAt:       now.UTC().Format(constants.TimestampLayout),
		EmbedURL:          EmbedURL(videoID),
	}
}
