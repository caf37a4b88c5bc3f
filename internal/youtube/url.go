// Package youtube resolves video links into display metadata.
package youtube

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/cesargomez89/praiseteam/internal/constants"
	"github.com/cesargomez89/praiseteam/internal/domain"
)

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

var watchHosts = map[string]bool{
	"youtube.com":       true,
	"www.youtube.com":   true,
	"m.youtube.com":     true,
	"music.youtube.com": true,
}

// ExtractVideoID returns the 11 character video id referenced by raw.
// Accepted forms are youtube.com/watch?v=<id> and youtu.be/<id>.
func ExtractVideoID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return "", fmt.Errorf("%w: not a YouTube URL: %q", domain.ErrInvalidInput, raw)
	}

	host := strings.ToLower(u.Hostname())
	var id string
	switch {
	case host == "youtu.be" || host == "www.youtu.be":
		id = strings.SplitN(strings.TrimPrefix(u.Path, "/"), "/", 2)[0]
	case watchHosts[host] && u.Path == "/watch":
		id = u.Query().Get("v")
	default:
		return "", fmt.Errorf("%w: not a YouTube URL: %q", domain.ErrInvalidInput, raw)
	}

	if !videoIDPattern.MatchString(id) {
		return "", fmt.Errorf("%w: invalid YouTube video id in %q", domain.ErrInvalidInput, raw)
	}
	return id, nil
}

// ValidateURL reports whether raw references a YouTube video.
func ValidateURL(raw string) bool {
	_, err := ExtractVideoID(raw)
	return err == nil
}

func EmbedURL(videoID string) string {
	return constants.EmbedBaseURL + videoID
}

// ThumbnailURLs derives the static thumbnail set for a video id.
func ThumbnailURLs(videoID string) domain.Thumbnails {
	base := constants.ThumbnailBaseURL + videoID + "/"
	return domain.Thumbnails{
		Default:  base + "default.jpg",
		Medium:   base + "mqdefault.jpg",
		High:     base + "hqdefault.jpg",
		Standard: base + "sddefault.jpg",
		MaxRes:   base + "maxresdefault.jpg",
	}
}
