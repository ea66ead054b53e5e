package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/clockwork/internal/domain"
	"github.com/google/uuid"
)

// DefaultStart is the start time fixtures use unless WithStart overrides it.
var DefaultStart = time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

type SessionOption func(*domain.Session)

func WithCategory(category string) SessionOption {
	return func(s *domain.Session) { s.Category = category }
}

func WithActivity(activity string) SessionOption {
	return func(s *domain.Session) { s.Activity = activity }
}

func WithTask(task string) SessionOption {
	return func(s *domain.Session) { s.Task = task }
}

func WithStart(t time.Time) SessionOption {
	return func(s *domain.Session) {
		if s.EndTime != nil {
			d := s.EndTime.Sub(s.StartTime)
			end := t.Add(d)
			s.EndTime = &end
		}
		s.StartTime = t
	}
}

// WithDuration closes the session d after its start.
func WithDuration(d time.Duration) SessionOption {
	return func(s *domain.Session) {
		end := s.StartTime.Add(d)
		s.EndTime = &end
	}
}

// Open leaves the session without an end time.
func Open() SessionOption {
	return func(s *domain.Session) {
		s.EndTime = nil
	}
}

func WithNotes(in, out string) SessionOption {
	return func(s *domain.Session) {
		s.NotesIn = in
		s.NotesOut = out
	}
}

// NewTestSession builds a closed one-hour session at DefaultStart.
func NewTestSession(category, activity, task string, opts ...SessionOption) *domain.Session {
	end := DefaultStart.Add(time.Hour)
	s := &domain.Session{
		ID:        uuid.New().String(),
		Category:  category,
		Activity:  activity,
		Task:      task,
		StartTime: DefaultStart,
		EndTime:   &end,
		CreatedAt: DefaultStart,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SessionWriter is the subset of the record store fixtures need.
type SessionWriter interface {
	InsertOpen(ctx context.Context, s *domain.Session) error
	Close(ctx context.Context, activity string, end time.Time, notes string) (*domain.Session, error)
}

// Seed stores each session through the real insert/close path so fixtures
// obey the same invariants as production writes.
func Seed(t testing.TB, w SessionWriter, sessions ...*domain.Session) {
	t.Helper()
	ctx := context.Background()
	for _, s := range sessions {
		end := s.EndTime
		notesOut := s.NotesOut
		s.EndTime = nil
		s.NotesOut = ""
		if err := w.InsertOpen(ctx, s); err != nil {
			t.Fatalf("seeding session %s/%s: %v", s.Category, s.Activity, err)
		}
		if end == nil {
			continue
		}
		closed, err := w.Close(ctx, s.Activity, *end, notesOut)
		if err != nil {
			t.Fatalf("closing seeded session %s/%s: %v", s.Category, s.Activity, err)
		}
		*s = *closed
	}
}

// FixedClock is a manually advanced clock for services that take a now func.
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{now: t}
}

func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *FixedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
