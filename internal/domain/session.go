package domain

import (
	"fmt"
	"strconv"
	"time"
)

// Session is one timed interval of work. A session with a nil EndTime is open.
type Session struct {
	ID        string
	Seq       int64
	Category  string
	Activity  string
	Task      string
	StartTime time.Time
	EndTime   *time.Time
	NotesIn   string
	NotesOut  string
	CreatedAt time.Time
}

func (s *Session) IsOpen() bool {
	return s.EndTime == nil
}

// Duration returns EndTime - StartTime for a closed session and zero for an
// open one. Callers that aggregate must skip open sessions rather than rely
// on the zero.
func (s *Session) Duration() time.Duration {
	if s.EndTime == nil {
		return 0
	}
	return s.EndTime.Sub(s.StartTime)
}

// Close transitions an open session to closed at the given time. An end time
// before the start is clamped to the start so durations are never negative.
func (s *Session) Close(at time.Time, notes string) error {
	if !s.IsOpen() {
		return fmt.Errorf("session %s for %q is already closed", s.DisplayID(), s.Activity)
	}
	if at.Before(s.StartTime) {
		at = s.StartTime
	}
	s.EndTime = &at
	s.NotesOut = notes
	return nil
}

// Notes joins clock-in and clock-out notes the way the log shows them.
func (s *Session) Notes() string {
	switch {
	case s.NotesIn == "":
		return s.NotesOut
	case s.NotesOut == "":
		return s.NotesIn
	default:
		return s.NotesIn + " " + s.NotesOut
	}
}

// DisplayID returns the store sequence when assigned, else a truncated ID.
func (s *Session) DisplayID() string {
	if s.Seq > 0 {
		return strconv.FormatInt(s.Seq, 10)
	}
	if len(s.ID) >= 8 {
		return s.ID[:8]
	}
	return s.ID
}
