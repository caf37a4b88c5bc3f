package app

import (
	"context"

	"github.com/cesargomez89/praiseteam/internal/domain"
)

// MetadataResolver resolves metadata for an extracted video id.
type MetadataResolver interface {
	EnrichID(ctx context.Context, videoID string) *domain.VideoMetadata
}

// SongEnricher fills display fields on songs from video metadata.
type SongEnricher struct {
	resolver MetadataResolver
}

func NewSongEnricher(resolver MetadataResolver) *SongEnricher {
	return &SongEnricher{resolver: resolver}
}

// EnrichSong only fills fields that are still empty.
func (e *SongEnricher) EnrichSong(ctx context.Context, song *domain.Song) {
	if e == nil || e.resolver == nil || song.YouTubeID == "" {
		return
	}

	meta := e.resolver.EnrichID(ctx, song.YouTubeID)
	if meta == nil {
		return
	}

	if song.Thumbnail == "" && meta.Thumbnail != "" {
		song.Thumbnail = meta.Thumbnail
	}
	if song.Duration == "" && meta.DurationFormatted != "" {
		song.Duration = meta.DurationFormatted
	}
	if song.ViewCount == 0 && meta.ViewCount > 0 {
		song.ViewCount = meta.ViewCount
	}
	if song.EmbedURL == "" && meta.EmbedURL != "" {
		song.EmbedURL = meta.EmbedURL
	}
}

func (e *SongEnricher) EnrichWeek(ctx context.Context, week *domain.Week) {
	if week == nil {
		return
	}
	for i := range week.Songs {
		e.EnrichSong(ctx, &week.Songs[i])
	}
}
