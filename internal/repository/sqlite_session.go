package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/clockwork/internal/db"
	"github.com/alexanderramin/clockwork/internal/domain"
)

// sessionColumns is the canonical SELECT column list for timelog.
const sessionColumns = `seq, id, category, activity, task, start_time, end_time, notes_in, notes_out, created_at`

// SQLiteSessionRepo implements SessionRepo using a SQLite database.
type SQLiteSessionRepo struct {
	db db.DBTX
}

// NewSQLiteSessionRepo creates a repo over a *sql.DB or a *sql.Tx.
func NewSQLiteSessionRepo(conn db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: conn}
}

// InsertOpen stores s as a new open session and assigns s.Seq. It fails with
// *domain.ConflictError if s.Activity already has an open session.
func (r *SQLiteSessionRepo) InsertOpen(ctx context.Context, s *domain.Session) error {
	if !s.IsOpen() {
		return fmt.Errorf("inserting session %s: session is already closed", s.ID)
	}

	existing, err := r.FindOpen(ctx, s.Activity)
	switch {
	case err == nil:
		return &domain.ConflictError{Activity: s.Activity, OpenSince: existing.StartTime}
	case !errors.Is(err, domain.ErrNotFound):
		return err
	}

	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	query := `INSERT INTO timelog (id, category, activity, task, start_time, end_time, notes_in, notes_out, created_at)
		VALUES (?, ?, ?, ?, ?, NULL, ?, '', ?)`
	res, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.Category,
		s.Activity,
		s.Task,
		formatTime(s.StartTime),
		s.NotesIn,
		formatTime(s.CreatedAt),
	)
	if err != nil {
		if isOpenActivityConflict(err) {
			return &domain.ConflictError{Activity: s.Activity}
		}
		return fmt.Errorf("inserting session: %w", err)
	}

	seq, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading session seq: %w", err)
	}
	s.Seq = seq
	return nil
}

// Close stamps end on the open session for activity and returns it.
// It fails with *domain.NotFoundError if nothing is open for activity.
func (r *SQLiteSessionRepo) Close(ctx context.Context, activity string, end time.Time, notes string) (*domain.Session, error) {
	s, err := r.FindOpen(ctx, activity)
	if err != nil {
		return nil, err
	}
	if err := s.Close(end, notes); err != nil {
		return nil, err
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE timelog SET end_time = ?, notes_out = ? WHERE seq = ? AND end_time IS NULL`,
		nullableTimeToString(s.EndTime), s.NotesOut, s.Seq)
	if err != nil {
		return nil, fmt.Errorf("closing session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("closing session: %w", err)
	}
	if n != 1 {
		return nil, &domain.NotFoundError{Activity: activity}
	}
	return s, nil
}

// Query returns closed sessions starting inside f.Range, ordered by start
// time and then by insertion order.
func (r *SQLiteSessionRepo) Query(ctx context.Context, f QueryFilter) ([]*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM timelog
		WHERE end_time IS NOT NULL
		  AND start_time >= ? AND start_time < ?`
	args := []any{formatTime(f.Range.Start), formatTime(f.Range.End)}
	if f.Category != "" {
		query += ` AND category = ?`
		args = append(args, f.Category)
	}
	query += ` ORDER BY start_time, seq`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()
	return r.scanSessions(rows)
}

func (r *SQLiteSessionRepo) FindOpen(ctx context.Context, activity string) (*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM timelog
		WHERE activity = ? AND end_time IS NULL
		ORDER BY start_time DESC, seq DESC LIMIT 1`
	s, err := r.scanSession(r.db.QueryRowContext(ctx, query, activity))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Activity: activity}
	}
	return s, err
}

func (r *SQLiteSessionRepo) ListOpen(ctx context.Context) ([]*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM timelog
		WHERE end_time IS NULL ORDER BY start_time, seq`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing open sessions: %w", err)
	}
	defer rows.Close()
	return r.scanSessions(rows)
}

func (r *SQLiteSessionRepo) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM timelog WHERE id = ?`
	s, err := r.scanSession(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{ID: id}
	}
	return s, err
}

func (r *SQLiteSessionRepo) Stats(ctx context.Context) (*StoreStats, error) {
	var st StoreStats
	var first sql.NullString
	err := r.db.QueryRowContext(ctx, `SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN end_time IS NULL THEN 1 ELSE 0 END), 0),
			COUNT(DISTINCT category),
			COUNT(DISTINCT activity),
			MIN(start_time)
		FROM timelog`).Scan(&st.Records, &st.Open, &st.Categories, &st.Activities, &first)
	if err != nil {
		return nil, fmt.Errorf("counting sessions: %w", err)
	}
	if st.First, err = parseNullableTime("start_time", first); err != nil {
		return nil, err
	}

	latest, err := r.scanSession(r.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM timelog ORDER BY start_time DESC, seq DESC LIMIT 1`))
	switch {
	case err == nil:
		st.Latest = latest
	case !errors.Is(err, sql.ErrNoRows):
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'index' AND tbl_name = 'timelog' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing indexes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning index name: %w", err)
		}
		st.Indexes = append(st.Indexes, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating indexes: %w", err)
	}
	return &st, nil
}

// scanSession scans a single session. sql.ErrNoRows is returned unwrapped
// so callers can map it to the right NotFoundError.
func (r *SQLiteSessionRepo) scanSession(row *sql.Row) (*domain.Session, error) {
	var s domain.Session
	var startStr, createdStr string
	var endStr sql.NullString

	err := row.Scan(
		&s.Seq, &s.ID, &s.Category, &s.Activity, &s.Task,
		&startStr, &endStr, &s.NotesIn, &s.NotesOut, &createdStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}
	return r.populateSession(&s, startStr, endStr, createdStr)
}

func (r *SQLiteSessionRepo) scanSessions(rows *sql.Rows) ([]*domain.Session, error) {
	var sessions []*domain.Session
	for rows.Next() {
		var s domain.Session
		var startStr, createdStr string
		var endStr sql.NullString

		err := rows.Scan(
			&s.Seq, &s.ID, &s.Category, &s.Activity, &s.Task,
			&startStr, &endStr, &s.NotesIn, &s.NotesOut, &createdStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}

		session, parseErr := r.populateSession(&s, startStr, endStr, createdStr)
		if parseErr != nil {
			return nil, parseErr
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return sessions, nil
}

// populateSession fills the parsed time fields after scanning raw strings.
func (r *SQLiteSessionRepo) populateSession(s *domain.Session, startStr string, endStr sql.NullString, createdStr string) (*domain.Session, error) {
	var err error
	if s.StartTime, err = parseTime("start_time", startStr); err != nil {
		return nil, err
	}
	if s.EndTime, err = parseNullableTime("end_time", endStr); err != nil {
		return nil, err
	}
	if s.CreatedAt, err = parseTime("created_at", createdStr); err != nil {
		return nil, err
	}
	return s, nil
}
