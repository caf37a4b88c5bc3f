package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/cesargomez89/praiseteam/internal/domain"
	"github.com/cesargomez89/praiseteam/internal/schedule"
	"github.com/cesargomez89/praiseteam/internal/youtube"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ToResponse joins validation errors into a single readable message.
func ToResponse(errs []ValidationError) string {
	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

func validateRequired(field, value string) []ValidationError {
	if strings.TrimSpace(value) == "" {
		return []ValidationError{{Field: field, Message: "is required"}}
	}
	return nil
}

func validateMinLength(field, value string, min int) []ValidationError {
	if len(strings.TrimSpace(value)) < min {
		return []ValidationError{{Field: field, Message: fmt.Sprintf("must be at least %d characters", min)}}
	}
	return nil
}

// parseDate accepts YYYY-MM-DD or a full RFC 3339 timestamp.
func parseDate(field, value string) (*time.Time, []ValidationError) {
	t, err := schedule.ParseTime(value)
	if err != nil {
		return nil, []ValidationError{{Field: field, Message: "invalid date format (expected: YYYY-MM-DD or RFC 3339)"}}
	}
	return &t, nil
}

func validateYouTubeURL(field, value string) []ValidationError {
	if strings.TrimSpace(value) == "" {
		return []ValidationError{{Field: field, Message: "is required"}}
	}
	if !youtube.ValidateURL(value) {
		return []ValidationError{{Field: field, Message: "must be a valid YouTube URL"}}
	}
	return nil
}

func validateSongType(field string, value string) []ValidationError {
	if !domain.SongType(value).Valid() {
		names := make([]string, len(domain.SongTypes))
		for i, t := range domain.SongTypes {
			names[i] = string(t)
		}
		return []ValidationError{{Field: field, Message: "must be one of: " + strings.Join(names, ", ")}}
	}
	return nil
}

func validateOrder(field string, order int) []ValidationError {
	if order < 0 {
		return []ValidationError{{Field: field, Message: "must be zero or greater"}}
	}
	return nil
}
