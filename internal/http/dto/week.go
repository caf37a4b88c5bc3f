package dto

import (
	"fmt"

	"github.com/cesargomez89/praiseteam/internal/constants"
	"github.com/cesargomez89/praiseteam/internal/domain"
	"github.com/cesargomez89/praiseteam/internal/schedule"
)

type SongRequest struct {
	Title      string `json:"title"`
	YouTubeURL string `json:"youtube_url"`
	LeadSinger string `json:"lead_singer"`
	Type       string `json:"type"`
	Notes      string `json:"notes,omitempty"`
	Order      int    `json:"order"`
}

func (s SongRequest) validate(prefix string) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateRequired(prefix+".title", s.Title)...)
	errs = append(errs, validateYouTubeURL(prefix+".youtube_url", s.YouTubeURL)...)
	errs = append(errs, validateRequired(prefix+".lead_singer", s.LeadSinger)...)
	errs = append(errs, validateSongType(prefix+".type", s.Type)...)
	errs = append(errs, validateOrder(prefix+".order", s.Order)...)
	return errs
}

func (s SongRequest) toSong() domain.Song {
	return domain.Song{
		Title:      s.Title,
		YouTubeURL: s.YouTubeURL,
		LeadSinger: s.LeadSinger,
		Type:       domain.SongType(s.Type),
		Notes:      s.Notes,
		Order:      s.Order,
	}
}

func validateSongs(songs []SongRequest) []ValidationError {
	var errs []ValidationError
	if len(songs) > schedule.MaxSongs {
		errs = append(errs, ValidationError{Field: "songs", Message: fmt.Sprintf("at most %d songs per week", schedule.MaxSongs)})
	}
	for i, s := range songs {
		errs = append(errs, s.validate(fmt.Sprintf("songs[%d]", i))...)
	}
	return errs
}

func toSongs(songs []SongRequest) []domain.Song {
	out := make([]domain.Song, len(songs))
	for i, s := range songs {
		out[i] = s.toSong()
	}
	return out
}

// CreateWeekRequest is the body of POST /api/songs.
type CreateWeekRequest struct {
	Date           string        `json:"date"`
	RehearsalDate  string        `json:"rehearsal_date,omitempty"`
	Attire         string        `json:"attire,omitempty"`
	WorshipLeader  string        `json:"worship_leader,omitempty"`
	ServingMembers []string      `json:"serving_members,omitempty"`
	Songs          []SongRequest `json:"songs"`
}

// Validate checks the request and converts it into store fields.
func (r *CreateWeekRequest) Validate() (domain.WeekFields, []ValidationError) {
	var errs []ValidationError
	fields := domain.WeekFields{
		Attire:         &r.Attire,
		WorshipLeader:  &r.WorshipLeader,
		ServingMembers: r.ServingMembers,
	}

	if r.Date == "" {
		errs = append(errs, ValidationError{Field: "date", Message: "is required"})
	} else {
		d, dErrs := parseDate("date", r.Date)
		errs = append(errs, dErrs...)
		fields.Date = d
	}
	if r.RehearsalDate != "" {
		d, dErrs := parseDate("rehearsal_date", r.RehearsalDate)
		errs = append(errs, dErrs...)
		fields.RehearsalDate = d
	}

	if len(r.Songs) == 0 {
		errs = append(errs, ValidationError{Field: "songs", Message: "at least one song is required"})
	}
	errs = append(errs, validateSongs(r.Songs)...)
	fields.Songs = toSongs(r.Songs)

	return fields, errs
}

// UpdateWeekRequest is the body of PUT /api/songs/{id}. Omitted fields keep
// their stored value.
type UpdateWeekRequest struct {
	Date           *string        `json:"date,omitempty"`
	RehearsalDate  *string        `json:"rehearsal_date,omitempty"`
	Attire         *string        `json:"attire,omitempty"`
	WorshipLeader  *string        `json:"worship_leader,omitempty"`
	ServingMembers *[]string      `json:"serving_members,omitempty"`
	Songs          *[]SongRequest `json:"songs,omitempty"`
}

func (r *UpdateWeekRequest) Validate() (domain.WeekFields, []ValidationError) {
	var errs []ValidationError
	fields := domain.WeekFields{
		Attire:        r.Attire,
		WorshipLeader: r.WorshipLeader,
	}

	if r.Date != nil && *r.Date != "" {
		d, dErrs := parseDate("date", *r.Date)
		errs = append(errs, dErrs...)
		fields.Date = d
	}
	if r.RehearsalDate != nil && *r.RehearsalDate != "" {
		d, dErrs := parseDate("rehearsal_date", *r.RehearsalDate)
		errs = append(errs, dErrs...)
		fields.RehearsalDate = d
	}
	if r.ServingMembers != nil {
		fields.ServingMembers = append([]string{}, (*r.ServingMembers)...)
	}
	if r.Songs != nil {
		errs = append(errs, validateSongs(*r.Songs)...)
		fields.Songs = toSongs(*r.Songs)
	}

	return fields, errs
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateMinLength("username", r.Username, constants.MinUsernameLength)...)
	errs = append(errs, validateMinLength("password", r.Password, constants.MinPasswordLength)...)
	return errs
}

type MetadataRequest struct {
	YouTubeURL string `json:"youtube_url"`
}

func (r *MetadataRequest) Validate() []ValidationError {
	return validateRequired("youtube_url", r.YouTubeURL)
}
