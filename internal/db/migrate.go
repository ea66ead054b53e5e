package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TimeLayout is the fixed-width UTC layout every timestamp column uses.
// Fixed width keeps lexical order equal to chronological order, which the
// range queries rely on.
const TimeLayout = "2006-01-02T15:04:05.000000000Z"

// Migrate runs all schema migrations. Every statement is idempotent so the
// full list is re-run on each open.
func Migrate(db *sql.DB) error {
	if err := migrateLegacyTimelog(db); err != nil {
		return fmt.Errorf("upgrading legacy timelog: %w", err)
	}
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS timelog (
		seq        INTEGER PRIMARY KEY AUTOINCREMENT,
		id         TEXT NOT NULL UNIQUE,
		category   TEXT NOT NULL CHECK(category != ''),
		activity   TEXT NOT NULL CHECK(activity != ''),
		task       TEXT NOT NULL CHECK(task != ''),
		start_time TEXT NOT NULL,
		end_time   TEXT CHECK(end_time IS NULL OR end_time >= start_time),
		notes_in   TEXT NOT NULL DEFAULT '',
		notes_out  TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_timelog_dates ON timelog(start_time, end_time)`,
	`CREATE INDEX IF NOT EXISTS idx_timelog_category ON timelog(category)`,

	// At most one open session per activity.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_timelog_open_activity ON timelog(activity) WHERE end_time IS NULL`,

	// Closed sessions are immutable.
	`CREATE TRIGGER IF NOT EXISTS trg_timelog_closed_immutable
		BEFORE UPDATE ON timelog
		WHEN OLD.end_time IS NOT NULL
		BEGIN
			SELECT RAISE(ABORT, 'closed session is immutable');
		END`,
}

// legacyLayouts are the timestamp formats the previous tool wrote: naive
// local wall-clock times.
var legacyLayouts = []string{
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

type legacyRow struct {
	category, activity, task string
	start                    time.Time
	end                      *time.Time
	notes                    string
}

// migrateLegacyTimelog upgrades a timelog table written by the previous
// tool (integer ids, naive local timestamps, a stored duration column and a
// single notes column). The old table is kept as timelog_legacy.
func migrateLegacyTimelog(db *sql.DB) error {
	ctx := context.Background()
	legacy, err := hasColumn(ctx, db, "timelog", "duration")
	if err != nil || !legacy {
		return err
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquiring db connection: %w", err)
	}
	defer conn.Close()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting migration transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	for _, stmt := range []string{
		`ALTER TABLE timelog RENAME TO timelog_legacy`,
		`DROP INDEX IF EXISTS idx_timelog_dates`,
		`DROP INDEX IF EXISTS idx_timelog_category`,
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("moving legacy table aside: %w", err)
		}
	}
	for i, stmt := range migrations {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}

	rows, err := loadLegacyRows(ctx, tx)
	if err != nil {
		return err
	}

	// Keep only the newest open session per activity; older ones were
	// abandoned and are closed at their own start.
	newestOpen := make(map[string]int)
	for i, r := range rows {
		if r.end == nil {
			newestOpen[r.activity] = i
		}
	}

	now := time.Now().UTC().Format(TimeLayout)
	for i, r := range rows {
		end := r.end
		notesOut := ""
		if end == nil && newestOpen[r.activity] != i {
			start := r.start
			end = &start
			notesOut = "closed during upgrade"
		}
		var endVal any
		if end != nil {
			if end.Before(r.start) {
				end = &r.start
			}
			endVal = end.UTC().Format(TimeLayout)
		}
		_, err := tx.ExecContext(ctx, `INSERT INTO timelog
			(id, category, activity, task, start_time, end_time, notes_in, notes_out, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.New().String(), r.category, r.activity, r.task,
			r.start.UTC().Format(TimeLayout), endVal, r.notes, notesOut, now)
		if err != nil {
			return fmt.Errorf("copying legacy row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing timelog upgrade: %w", err)
	}
	committed = true
	return nil
}

func loadLegacyRows(ctx context.Context, tx *sql.Tx) ([]legacyRow, error) {
	rs, err := tx.QueryContext(ctx, `SELECT COALESCE(category, ''), COALESCE(activity, ''), COALESCE(task, ''),
		CAST(start_time AS TEXT), CAST(end_time AS TEXT), COALESCE(notes, '')
		FROM timelog_legacy
		WHERE start_time IS NOT NULL
		ORDER BY start_time, id`)
	if err != nil {
		return nil, fmt.Errorf("reading legacy rows: %w", err)
	}
	defer rs.Close()

	var out []legacyRow
	for rs.Next() {
		var r legacyRow
		var startStr string
		var endStr sql.NullString
		if err := rs.Scan(&r.category, &r.activity, &r.task, &startStr, &endStr, &r.notes); err != nil {
			return nil, fmt.Errorf("scanning legacy row: %w", err)
		}
		// Rows the new schema cannot hold are skipped rather than invented.
		if r.category == "" || r.activity == "" || r.task == "" {
			continue
		}
		start, err := parseLegacyTime(startStr)
		if err != nil {
			return nil, err
		}
		r.start = start
		if endStr.Valid && endStr.String != "" {
			end, err := parseLegacyTime(endStr.String)
			if err != nil {
				return nil, err
			}
			r.end = &end
		}
		out = append(out, r)
	}
	if err := rs.Err(); err != nil {
		return nil, fmt.Errorf("iterating legacy rows: %w", err)
	}
	return out, nil
}

func parseLegacyTime(s string) (time.Time, error) {
	for _, layout := range legacyLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parsing legacy timestamp %q", s)
}

func hasColumn(ctx context.Context, db *sql.DB, table, column string) (bool, error) {
	rows, err := db.QueryContext(ctx, `SELECT name FROM pragma_table_info(?)`, table)
	if err != nil {
		return false, fmt.Errorf("reading %s schema: %w", table, err)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return false, fmt.Errorf("scanning %s column: %w", table, err)
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}
