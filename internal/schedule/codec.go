// Package schedule maps worship weeks onto fixed-width spreadsheet rows and
// keeps them in sync with a tabular store.
package schedule

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cesargomez89/praiseteam/internal/constants"
	"github.com/cesargomez89/praiseteam/internal/domain"
)

// Row layout. Every field is addressed by its column position.
const (
	colID = iota
	colDate
	colMonth
	colRehearsalDate
	colAttire
	colWorshipLeader
	colServingMembers
	colFirstSong
)

const (
	// MaxSongs is the number of song slots a row can hold.
	MaxSongs = 6
	// SongFields is the number of cells in one song slot.
	SongFields = 6

	colCreatedAt = colFirstSong + MaxSongs*SongFields
	colUpdatedAt = colCreatedAt + 1

	// RowWidth is the number of cells in a fully written row.
	RowWidth = colUpdatedAt + 1
)

// Offsets inside a song slot.
const (
	songTitle = iota
	songYouTubeURL
	songYouTubeID
	songLeadSinger
	songType
	songNotes
)

const (
	dateOnlyLayout = "2006-01-02"

	servingSeparator = ", "
)

// DecodeRow converts one stored row into a Week. Rows that are too short,
// lack an id or carry unparseable dates fail with domain.ErrMalformedRecord.
// Timestamps are only read from a full-width row; shorter rows get now.
func DecodeRow(row []string, now time.Time) (*domain.Week, error) {
	if len(row) < 2 {
		return nil, fmt.Errorf("%w: row has %d cells", domain.ErrMalformedRecord, len(row))
	}

	id := strings.TrimSpace(row[colID])
	if id == "" {
		return nil, fmt.Errorf("%w: missing id", domain.ErrMalformedRecord)
	}

	date, err := ParseTime(cell(row, colDate))
	if err != nil {
		return nil, fmt.Errorf("%w: week %s: date: %w", domain.ErrMalformedRecord, id, err)
	}

	week := &domain.Week{
		ID:             id,
		Date:           date,
		Month:          cell(row, colMonth),
		Attire:         cell(row, colAttire),
		WorshipLeader:  cell(row, colWorshipLeader),
		ServingMembers: splitMembers(cell(row, colServingMembers)),
		Songs:          []domain.Song{},
		CreatedAt:      now.UTC(),
		UpdatedAt:      now.UTC(),
	}

	if raw := cell(row, colRehearsalDate); raw != "" {
		rehearsal, err := ParseTime(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: week %s: rehearsal date: %w", domain.ErrMalformedRecord, id, err)
		}
		week.RehearsalDate = &rehearsal
	}

	songEnd := len(row)
	if songEnd > colCreatedAt {
		songEnd = colCreatedAt
	}
	for g := 0; g < MaxSongs; g++ {
		base := colFirstSong + g*SongFields
		if base >= songEnd {
			break
		}
		title := cell(row, base+songTitle)
		if title == "" {
			continue
		}
		week.Songs = append(week.Songs, domain.Song{
			ID:         SongID(g),
			Title:      title,
			YouTubeURL: cell(row, base+songYouTubeURL),
			YouTubeID:  cell(row, base+songYouTubeID),
			LeadSinger: cell(row, base+songLeadSinger),
			Type:       domain.SongType(cell(row, base+songType)),
			Notes:      cell(row, base+songNotes),
			Order:      g,
		})
	}

	if len(row) >= RowWidth {
		if raw := cell(row, colCreatedAt); raw != "" {
			if week.CreatedAt, err = ParseTime(raw); err != nil {
				return nil, fmt.Errorf("%w: week %s: created_at: %w", domain.ErrMalformedRecord, id, err)
			}
		}
		if raw := cell(row, colUpdatedAt); raw != "" {
			if week.UpdatedAt, err = ParseTime(raw); err != nil {
				return nil, fmt.Errorf("%w: week %s: updated_at: %w", domain.ErrMalformedRecord, id, err)
			}
		}
	}

	return week, nil
}

// EncodeRow converts a Week into a full-width row. Songs fill slots in
// ascending order; anything past MaxSongs is dropped, so callers must guard
// capacity before encoding.
func EncodeRow(week *domain.Week) []string {
	row := make([]string, RowWidth)
	row[colID] = week.ID
	row[colDate] = FormatTime(week.Date)
	row[colMonth] = week.Month
	if week.RehearsalDate != nil {
		row[colRehearsalDate] = FormatTime(*week.RehearsalDate)
	}
	row[colAttire] = week.Attire
	row[colWorshipLeader] = week.WorshipLeader
	row[colServingMembers] = strings.Join(week.ServingMembers, servingSeparator)

	songs := make([]domain.Song, len(week.Songs))
	copy(songs, week.Songs)
	sort.SliceStable(songs, func(i, j int) bool { return songs[i].Order < songs[j].Order })
	if len(songs) > MaxSongs {
		songs = songs[:MaxSongs]
	}
	for g, song := range songs {
		base := colFirstSong + g*SongFields
		row[base+songTitle] = song.Title
		row[base+songYouTubeURL] = song.YouTubeURL
		row[base+songYouTubeID] = song.YouTubeID
		row[base+songLeadSinger] = song.LeadSinger
		row[base+songType] = string(song.Type)
		row[base+songNotes] = song.Notes
	}

	row[colCreatedAt] = FormatTime(week.CreatedAt)
	row[colUpdatedAt] = FormatTime(week.UpdatedAt)
	return row
}

// SongID is the positional identifier of the song in slot g.
func SongID(g int) string {
	return fmt.Sprintf("song-%d", g)
}

// FormatTime renders t in the stored timestamp form.
func FormatTime(t time.Time) string {
	return t.UTC().Format(constants.TimestampLayout)
}

// ParseTime accepts RFC 3339 timestamps and bare calendar dates.
func ParseTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range []string{time.RFC3339Nano, dateOnlyLayout, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func splitMembers(raw string) []string {
	members := []string{}
	for _, part := range strings.Split(raw, ",") {
		if name := strings.TrimSpace(part); name != "" {
			members = append(members, name)
		}
	}
	return members
}
