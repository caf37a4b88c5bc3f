package domain

import (
	"time"
)

type SongType string

const (
	SongTypeOpening   SongType = "Opening"
	SongTypeOffering  SongType = "Offering"
	SongTypeSermonic  SongType = "Sermonic"
	SongTypeCommunion SongType = "Communion"
	SongTypeClosing   SongType = "Closing"
	SongTypeOther     SongType = "Other"
)

// SongTypes lists every accepted song category in display order.
var SongTypes = []SongType{
	SongTypeOpening,
	SongTypeOffering,
	SongTypeSermonic,
	SongTypeCommunion,
	SongTypeClosing,
	SongTypeOther,
}

// Valid reports whether t is one of the closed set of categories.
func (t SongType) Valid() bool {
	for _, known := range SongTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Song is one musical selection within a Week. It has no identity outside
// its Week: ID and Order are positional.
type Song struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	YouTubeURL string   `json:"youtube_url"`
	YouTubeID  string   `json:"youtube_id"`
	LeadSinger string   `json:"lead_singer"`
	Type       SongType `json:"type"`
	Notes      string   `json:"notes,omitempty"`
	Order      int      `json:"order"`

	// Populated by enrichment only, never persisted.
	Thumbnail string `json:"thumbnail,omitempty"`
	Duration  string `json:"duration,omitempty"`
	ViewCount int64  `json:"view_count,omitempty"`
	EmbedURL  string `json:"embed_url,omitempty"`
}

// Week is one scheduled worship service
type Week struct {
	ID             string     `json:"id"`
	Date           time.Time  `json:"date"`
	Month          string     `json:"month"`
	RehearsalDate  *time.Time `json:"rehearsal_date,omitempty"`
	Attire         string     `json:"attire,omitempty"`
	WorshipLeader  string     `json:"worship_leader,omitempty"`
	ServingMembers []string   `json:"serving_members"`
	Songs          []Song     `json:"songs"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// WeekFields carries a partial Week for create and update. A nil pointer or
// nil slice means the field was omitted; anything else replaces the stored
// value wholesale, nested lists included.
type WeekFields struct {
	Date           *time.Time
	RehearsalDate  *time.Time
	Attire         *string
	WorshipLeader  *string
	ServingMembers []string
	Songs          []Song
}

// Thumbnails holds the image variants the video platform publishes.
type Thumbnails struct {
	Default  string `json:"default"`
	Medium   string `json:"medium"`
	High     string `json:"high"`
	Standard string `json:"standard,omitempty"`
	MaxRes   string `json:"maxres,omitempty"`
}

// VideoMetadata is the canonical description of a video used for display.
type VideoMetadata struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Thumbnail         string     `json:"thumbnail"`
	Thumbnails        Thumbnails `json:"thumbnails"`
	Duration          string     `json:"duration"`
	DurationFormatted string     `json:"duration_formatted"`
	ViewCount         int64      `json:"view_count"`
	ChannelTitle      string     `json:"channel_title"`
	PublishedAt       string     `json:"published_at"`
	EmbedURL          string     `json:"embed_url"`
}

// MonthLabel renders the display month of a service date, e.g. "January 2025".
func MonthLabel(date time.Time) string {
	return date.UTC().Format("January 2006")
}

// SameDay reports whether a and b fall on the same calendar day in UTC.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
