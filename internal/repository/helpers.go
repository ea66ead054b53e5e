package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/clockwork/internal/db"
)

// formatTime converts t to the fixed-width UTC form stored in timelog.
func formatTime(t time.Time) string {
	return t.UTC().Format(db.TimeLayout)
}

// nullableTimeToString returns nil (SQL NULL) for a nil pointer.
func nullableTimeToString(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func parseTime(column, s string) (time.Time, error) {
	t, err := time.Parse(db.TimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", column, err)
	}
	return t, nil
}

func parseNullableTime(column string, s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := parseTime(column, s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// isOpenActivityConflict reports whether err came from the partial unique
// index that allows one open session per activity.
func isOpenActivityConflict(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: timelog.activity")
}
