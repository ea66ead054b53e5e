package service

import (
	"context"
	"time"

	"github.com/alexanderramin/clockwork/internal/db"
	"github.com/alexanderramin/clockwork/internal/domain"
	"github.com/alexanderramin/clockwork/internal/repository"
	"github.com/google/uuid"
)

type clockService struct {
	sessions repository.SessionRepo
	uow      db.UnitOfWork
	now      func() time.Time
	observer UseCaseObserver
}

// NewClockService builds the clock-in/clock-out state machine. now defaults
// to time.Now when nil.
func NewClockService(
	sessions repository.SessionRepo,
	uow db.UnitOfWork,
	now func() time.Time,
	observers ...UseCaseObserver,
) ClockService {
	if now == nil {
		now = time.Now
	}
	return &clockService{
		sessions: sessions,
		uow:      uow,
		now:      now,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *clockService) ClockIn(ctx context.Context, req ClockInRequest) (session *domain.Session, err error) {
	startedAt := time.Now()
	fields := map[string]any{"activity": req.Activity}
	defer func() {
		s.observe(ctx, "clock-in", startedAt, fields, err)
	}()

	session = &domain.Session{ID: uuid.New().String()}
	if session.Category, err = domain.NormalizeName("category", req.Category); err != nil {
		return nil, err
	}
	if session.Activity, err = domain.NormalizeName("activity", req.Activity); err != nil {
		return nil, err
	}
	if session.Task, err = domain.NormalizeName("task", req.Task); err != nil {
		return nil, err
	}
	if session.NotesIn, err = domain.NormalizeNotes(req.Notes); err != nil {
		return nil, err
	}
	fields["activity"] = session.Activity
	fields["category"] = session.Category

	now := s.now()
	session.StartTime = now
	session.CreatedAt = now.UTC()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteSessionRepo(tx).InsertOpen(ctx, session)
	})
	if err != nil {
		return nil, err
	}
	fields["seq"] = session.Seq
	return session, nil
}

func (s *clockService) ClockOut(ctx context.Context, req ClockOutRequest) (session *domain.Session, err error) {
	startedAt := time.Now()
	fields := map[string]any{"activity": req.Activity}
	defer func() {
		s.observe(ctx, "clock-out", startedAt, fields, err)
	}()

	activity, err := domain.NormalizeName("activity", req.Activity)
	if err != nil {
		return nil, err
	}
	notes, err := domain.NormalizeNotes(req.Notes)
	if err != nil {
		return nil, err
	}
	fields["activity"] = activity

	end := s.now()
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var txErr error
		session, txErr = repository.NewSQLiteSessionRepo(tx).Close(ctx, activity, end, notes)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	fields["duration_sec"] = int64(session.Duration().Seconds())
	return session, nil
}

func (s *clockService) Open(ctx context.Context) ([]*domain.Session, error) {
	return s.sessions.ListOpen(ctx)
}

func (s *clockService) observe(ctx context.Context, name string, startedAt time.Time, fields map[string]any, err error) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}
