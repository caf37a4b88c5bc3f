package app

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cesargomez89/praiseteam/internal/constants"
	"github.com/cesargomez89/praiseteam/internal/domain"
	"github.com/cesargomez89/praiseteam/internal/logger"
	"github.com/cesargomez89/praiseteam/internal/youtube"
)

// WeekStore is the persistence the service needs. schedule.Store implements it.
type WeekStore interface {
	ListAll(ctx context.Context) ([]domain.Week, error)
	GetByID(ctx context.Context, id string) (*domain.Week, error)
	GetByDate(ctx context.Context, date time.Time) (*domain.Week, error)
	Create(ctx context.Context, fields domain.WeekFields) (*domain.Week, error)
	Update(ctx context.Context, id string, fields domain.WeekFields) (*domain.Week, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// WeekFilter narrows List results. Empty fields match everything.
type WeekFilter struct {
	Month         string
	WorshipLeader string
	Search        string
}

type WeekService struct {
	Store    WeekStore
	Enricher *SongEnricher
	Logger   *logger.Logger
	now      func() time.Time
}

func NewWeekService(store WeekStore, enricher *SongEnricher, log *logger.Logger) *WeekService {
	if log == nil {
		log = logger.Default()
	}
	return &WeekService{
		Store:    store,
		Enricher: enricher,
		Logger:   log.WithComponent("weeks"),
		now:      time.Now,
	}
}

// List returns matching weeks, newest service date first.
func (s *WeekService) List(ctx context.Context, filter WeekFilter) ([]domain.Week, error) {
	weeks, err := s.Store.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]domain.Week, 0, len(weeks))
	for _, w := range weeks {
		if filter.Month != "" && w.Month != filter.Month {
			continue
		}
		if filter.WorshipLeader != "" && w.WorshipLeader != filter.WorshipLeader {
			continue
		}
		if search != "" && !matchesSearch(w, search) {
			continue
		}
		out = append(out, w)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func matchesSearch(w domain.Week, search string) bool {
	if strings.Contains(strings.ToLower(w.WorshipLeader), search) {
		return true
	}
	for _, song := range w.Songs {
		if strings.Contains(strings.ToLower(song.Title), search) ||
			strings.Contains(strings.ToLower(song.LeadSinger), search) {
			return true
		}
	}
	return false
}

// Get returns one week with its songs enriched.
func (s *WeekService) Get(ctx context.Context, id string) (*domain.Week, error) {
	week, err := s.Store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Enricher.EnrichWeek(ctx, week)
	return week, nil
}

func (s *WeekService) GetByDate(ctx context.Context, date time.Time) (*domain.Week, error) {
	return s.Store.GetByDate(ctx, date)
}

// Current returns the week scheduled for this Sunday, or the next one.
func (s *WeekService) Current(ctx context.Context) (*domain.Week, error) {
	week, err := s.Store.GetByDate(ctx, ServiceDate(s.now()))
	if err != nil {
		return nil, err
	}
	s.Enricher.EnrichWeek(ctx, week)
	return week, nil
}

// Upcoming returns up to count weeks dated today or later, soonest first.
func (s *WeekService) Upcoming(ctx context.Context, count int) ([]domain.Week, error) {
	if count <= 0 {
		count = constants.DefaultUpcomingWeeks
	}
	if count > constants.MaxUpcomingWeeks {
		count = constants.MaxUpcomingWeeks
	}

	weeks, err := s.Store.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	today := StartOfDay(s.now())
	out := make([]domain.Week, 0, count)
	for _, w := range weeks {
		if !w.Date.Before(today) {
			out = append(out, w)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	if len(out) > count {
		out = out[:count]
	}
	return out, nil
}

func (s *WeekService) Create(ctx context.Context, fields domain.WeekFields) (*domain.Week, error) {
	if err := deriveVideoIDs(fields.Songs); err != nil {
		return nil, err
	}
	if fields.Date != nil && fields.RehearsalDate == nil {
		r := DefaultRehearsalDate(*fields.Date)
		fields.RehearsalDate = &r
	}

	week, err := s.Store.Create(ctx, fields)
	if err != nil {
		return nil, err
	}
	s.Enricher.EnrichWeek(ctx, week)
	return week, nil
}

func (s *WeekService) Update(ctx context.Context, id string, fields domain.WeekFields) (*domain.Week, error) {
	if err := deriveVideoIDs(fields.Songs); err != nil {
		return nil, err
	}

	week, err := s.Store.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	s.Enricher.EnrichWeek(ctx, week)
	return week, nil
}

// Delete removes a week, reporting domain.ErrNotFound when it does not exist.
func (s *WeekService) Delete(ctx context.Context, id string) error {
	ok, err := s.Store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("week %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// deriveVideoIDs overwrites each song's youtube_id from its URL.
func deriveVideoIDs(songs []domain.Song) error {
	for i := range songs {
		if strings.TrimSpace(songs[i].YouTubeURL) == "" {
			songs[i].YouTubeID = ""
			continue
		}
		id, err := youtube.ExtractVideoID(songs[i].YouTubeURL)
		if err != nil {
			return fmt.Errorf("song %d: %w", i+1, err)
		}
		songs[i].YouTubeID = id
	}
	return nil
}
