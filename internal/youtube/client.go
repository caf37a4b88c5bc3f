package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/cesargomez89/praiseteam/internal/constants"
	"github.com/cesargomez89/praiseteam/internal/domain"
	"github.com/cesargomez89/praiseteam/internal/httpclient"
)

// ErrVideoNotFound is returned when the API knows no video with the id.
var ErrVideoNotFound = errors.New("video not found")

// ErrNoAPIKey is returned when the client has no key to call the API with.
var ErrNoAPIKey = errors.New("youtube api key not configured")

type ClientInterface interface {
	GetVideo(ctx context.Context, videoID string) (*domain.VideoMetadata, error)
}

var _ ClientInterface = (*Client)(nil)

// Client talks to the YouTube Data API v3 videos endpoint.
type Client struct {
	httpClient *httpclient.Client
	baseURL    string
	apiKey     string
}

func NewClient(baseURL, apiKey string, httpClient *httpclient.Client) *Client {
	if httpClient == nil {
		httpClient = httpclient.NewClient(nil, constants.YouTubeRequestInterval, httpclient.WithAttempts(1))
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
	}
}

func (c *Client) HasAPIKey() bool {
	return c.apiKey != ""
}

type videoListResponse struct {
	Items []videoItem `json:"items"`
}

type videoItem struct {
	ID      string `json:"id"`
	Snippet struct {
		Title        string                `json:"title"`
		ChannelTitle string                `json:"channelTitle"`
		PublishedAt  string                `json:"publishedAt"`
		Thumbnails   map[string]*thumbnail `json:"thumbnails"`
	} `json:"snippet"`
	ContentDetails struct {
		Duration string `json:"duration"`
	} `json:"contentDetails"`
	Statistics struct {
		ViewCount string `json:"viewCount"`
	} `json:"statistics"`
}

type thumbnail struct {
	URL string `json:"url"`
}

// GetVideo fetches and normalizes metadata for one video id.
func (c *Client) GetVideo(ctx context.Context, videoID string) (*domain.VideoMetadata, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	q := url.Values{}
	q.Set("id", videoID)
	q.Set("part", "snippet,contentDetails,statistics")
	q.Set("key", c.apiKey)
	u := c.baseURL + "/videos?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("youtube api returned status %d", resp.StatusCode)
	}

	var body videoListResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(body.Items) == 0 {
		return nil, fmt.Errorf("%s: %w", videoID, ErrVideoNotFound)
	}

	return normalize(videoID, &body.Items[0])
}

func normalize(videoID string, item *videoItem) (*domain.VideoMetadata, error) {
	thumbs := item.Snippet.Thumbnails
	high := thumbURL(thumbs, "high")
	if item.Snippet.Title == "" || high == "" {
		return nil, fmt.Errorf("incomplete metadata for %s", videoID)
	}

	var views int64
	if item.Statistics.ViewCount != "" {
		n, err := strconv.ParseInt(item.Statistics.ViewCount, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid view count %q: %w", item.Statistics.ViewCount, err)
		}
		views = n
	}

	return &domain.VideoMetadata{
		ID:        videoID,
		Title:     item.Snippet.Title,
		Thumbnail: high,
		Thumbnails: domain.Thumbnails{
			Default:  thumbURL(thumbs, "default"),
			Medium:   thumbURL(thumbs, "medium"),
			High:     high,
			Standard: thumbURL(thumbs, "standard"),
			MaxRes:   thumbURL(thumbs, "maxres"),
		},
		Duration:          item.ContentDetails.Duration,
		DurationFormatted: FormatDuration(item.ContentDetails.Duration),
		ViewCount:         views,
		ChannelTitle:      item.Snippet.ChannelTitle,
		PublishedAt:       item.Snippet.PublishedAt,
		EmbedURL:          EmbedURL(videoID),
	}, nil
}

func thumbURL(thumbs map[string]*thumbnail, key string) string {
	if t, ok := thumbs[key]; ok && t != nil {
		return t.URL
	}
	return ""
}
