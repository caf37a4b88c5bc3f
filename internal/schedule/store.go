package schedule

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cesargomez89/praiseteam/internal/domain"
	"github.com/cesargomez89/praiseteam/internal/logger"
)

// Table is a row-addressed tabular store. Index is the 0-based position of a
// data row; the header row is never visible through this interface.
type Table interface {
	Rows(ctx context.Context) ([][]string, error)
	Append(ctx context.Context, row []string) error
	Update(ctx context.Context, index int, row []string) error
	Delete(ctx context.Context, index int) error
}

// Store reads and writes Weeks through a Table. Every operation re-scans the
// table; writes within the process are serialized.
type Store struct {
	table  Table
	logger *logger.Logger
	now    func() time.Time
	newID  func() string

	mu sync.Mutex
}

func NewStore(table Table, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Default()
	}
	return &Store{
		table:  table,
		logger: log.WithComponent("schedule"),
		now:    time.Now,
		newID:  func() string { return "week-" + uuid.New().String() },
	}
}

type located struct {
	index int
	week  *domain.Week
}

// scan decodes every row, keeping the raw row index for writes.
func (s *Store) scan(ctx context.Context) ([]located, error) {
	rows, err := s.table.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w: %w", domain.ErrUpstreamUnavailable, err)
	}

	now := s.now()
	weeks := make([]located, 0, len(rows))
	for i, row := range rows {
		week, err := DecodeRow(row, now)
		if err != nil {
			s.logger.Warn("Skipping malformed row", "row", i, "error", err)
			continue
		}
		weeks = append(weeks, located{index: i, week: week})
	}
	return weeks, nil
}

// ListAll returns every decodable week in table order.
func (s *Store) ListAll(ctx context.Context) ([]domain.Week, error) {
	found, err := s.scan(ctx)
	if err != nil {
		return nil, err
	}
	weeks := make([]domain.Week, 0, len(found))
	for _, l := range found {
		weeks = append(weeks, *l.week)
	}
	return weeks, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (*domain.Week, error) {
	found, err := s.scan(ctx)
	if err != nil {
		return nil, err
	}
	l, ok := findID(found, id)
	if !ok {
		return nil, fmt.Errorf("week %s: %w", id, domain.ErrNotFound)
	}
	return l.week, nil
}

// GetByDate returns the first week whose service date falls on the same
// calendar day as date.
func (s *Store) GetByDate(ctx context.Context, date time.Time) (*domain.Week, error) {
	found, err := s.scan(ctx)
	if err != nil {
		return nil, err
	}
	for _, l := range found {
		if domain.SameDay(l.week.Date, date) {
			return l.week, nil
		}
	}
	return nil, fmt.Errorf("week on %s: %w", date.UTC().Format(dateOnlyLayout), domain.ErrNotFound)
}

// Create appends a new week. The service date is required and must not be
// held by another week.
func (s *Store) Create(ctx context.Context, fields domain.WeekFields) (*domain.Week, error) {
	if fields.Date == nil {
		return nil, fmt.Errorf("%w: date is required", domain.ErrInvalidInput)
	}
	if len(fields.Songs) > MaxSongs {
		return nil, fmt.Errorf("%w: at most %d songs per week, got %d", domain.ErrInvalidInput, MaxSongs, len(fields.Songs))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	found, err := s.scan(ctx)
	if err != nil {
		return nil, err
	}
	if clash, ok := findDate(found, *fields.Date, ""); ok {
		return nil, fmt.Errorf("%w: week %s already scheduled on %s", domain.ErrConflict, clash.week.ID, fields.Date.UTC().Format(dateOnlyLayout))
	}

	now := s.now().UTC().Truncate(time.Millisecond)
	week := &domain.Week{
		ID:             s.newID(),
		ServingMembers: []string{},
		Songs:          []domain.Song{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	applyFields(week, fields)

	if err := s.table.Append(ctx, EncodeRow(week)); err != nil {
		return nil, fmt.Errorf("append week: %w: %w", domain.ErrUpstreamUnavailable, err)
	}

	s.logger.WithWeek(week.ID).Info("Week created", "date", FormatTime(week.Date), "songs", len(week.Songs))
	return week, nil
}

// Update merges the provided fields into the stored week and rewrites its
// row in place. updated_at always moves forward.
func (s *Store) Update(ctx context.Context, id string, fields domain.WeekFields) (*domain.Week, error) {
	if len(fields.Songs) > MaxSongs {
		return nil, fmt.Errorf("%w: at most %d songs per week, got %d", domain.ErrInvalidInput, MaxSongs, len(fields.Songs))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	found, err := s.scan(ctx)
	if err != nil {
		return nil, err
	}
	l, ok := findID(found, id)
	if !ok {
		return nil, fmt.Errorf("week %s: %w", id, domain.ErrNotFound)
	}
	if fields.Date != nil {
		if clash, ok := findDate(found, *fields.Date, id); ok {
			return nil, fmt.Errorf("%w: week %s already scheduled on %s", domain.ErrConflict, clash.week.ID, fields.Date.UTC().Format(dateOnlyLayout))
		}
	}

	week := l.week
	applyFields(week, fields)

	now := s.now().UTC().Truncate(time.Millisecond)
	if !now.After(week.UpdatedAt) {
		now = week.UpdatedAt.Add(time.Millisecond)
	}
	week.UpdatedAt = now

	if err := s.table.Update(ctx, l.index, EncodeRow(week)); err != nil {
		return nil, fmt.Errorf("update week %s: %w: %w", id, domain.ErrUpstreamUnavailable, err)
	}

	s.logger.WithWeek(id).Info("Week updated", "row", l.index)
	return week, nil
}

// Delete removes the week's row. It reports false when no week has the id.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found, err := s.scan(ctx)
	if err != nil {
		return false, err
	}
	l, ok := findID(found, id)
	if !ok {
		return false, nil
	}

	if err := s.table.Delete(ctx, l.index); err != nil {
		return false, fmt.Errorf("delete week %s: %w: %w", id, domain.ErrUpstreamUnavailable, err)
	}

	s.logger.WithWeek(id).Info("Week deleted", "row", l.index)
	return true, nil
}

func applyFields(week *domain.Week, fields domain.WeekFields) {
	if fields.Date != nil {
		week.Date = fields.Date.UTC().Truncate(time.Millisecond)
		week.Month = domain.MonthLabel(week.Date)
	}
	if fields.RehearsalDate != nil {
		r := fields.RehearsalDate.UTC().Truncate(time.Millisecond)
		week.RehearsalDate = &r
	}
	if fields.Attire != nil {
		week.Attire = *fields.Attire
	}
	if fields.WorshipLeader != nil {
		week.WorshipLeader = *fields.WorshipLeader
	}
	if fields.ServingMembers != nil {
		week.ServingMembers = append([]string{}, fields.ServingMembers...)
	}
	if fields.Songs != nil {
		week.Songs = normalizeSongs(fields.Songs)
	}
}

// normalizeSongs orders songs and reassigns positional order and ids so the
// stored row and the returned week agree.
func normalizeSongs(in []domain.Song) []domain.Song {
	songs := make([]domain.Song, len(in))
	copy(songs, in)
	sort.SliceStable(songs, func(i, j int) bool { return songs[i].Order < songs[j].Order })
	for i := range songs {
		songs[i].Order = i
		songs[i].ID = SongID(i)
	}
	return songs
}

func findID(found []located, id string) (located, bool) {
	for _, l := range found {
		if l.week.ID == id {
			return l, true
		}
	}
	return located{}, false
}

func findDate(found []located, date time.Time, exceptID string) (located, bool) {
	for _, l := range found {
		if l.week.ID != exceptID && domain.SameDay(l.week.Date, date) {
			return l, true
		}
	}
	return located{}, false
}
