package service

import (
	"context"
	"time"

	"github.com/alexanderramin/clockwork/internal/aggregate"
	"github.com/alexanderramin/clockwork/internal/domain"
	"github.com/alexanderramin/clockwork/internal/repository"
)

type reportService struct {
	sessions repository.SessionRepo
	observer UseCaseObserver
}

// NewReportService builds the read-only reporting service. Reports never
// open a transaction; each is a single snapshot read.
func NewReportService(sessions repository.SessionRepo, observers ...UseCaseObserver) ReportService {
	return &reportService{
		sessions: sessions,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *reportService) Sessions(ctx context.Context, req ReportRequest) (sessions []*domain.Session, err error) {
	startedAt := time.Now()
	defer func() {
		s.observe(ctx, "report-sessions", startedAt, req, len(sessions), err)
	}()
	return s.query(ctx, req)
}

func (s *reportService) Summarize(ctx context.Context, req ReportRequest) (rows []domain.SummaryRow, err error) {
	startedAt := time.Now()
	defer func() {
		s.observe(ctx, "report-summary", startedAt, req, len(rows), err)
	}()

	by := req.GroupBy
	if by == "" {
		by = domain.GroupByCategory
	}
	if !domain.ValidGroupBy[string(by)] {
		return nil, &domain.ValidationError{Field: "group by", Reason: "must be category, activity or task"}
	}

	sessions, err := s.query(ctx, req)
	if err != nil {
		return nil, err
	}
	return aggregate.Summarize(sessions, by), nil
}

func (s *reportService) Daily(ctx context.Context, req ReportRequest) (days []aggregate.DayTotal, err error) {
	startedAt := time.Now()
	defer func() {
		s.observe(ctx, "report-daily", startedAt, req, len(days), err)
	}()

	sessions, err := s.query(ctx, req)
	if err != nil {
		return nil, err
	}
	return aggregate.Daily(sessions, req.Range.Start.Location()), nil
}

func (s *reportService) Insights(ctx context.Context, req ReportRequest) (in *aggregate.Insights, err error) {
	startedAt := time.Now()
	defer func() {
		n := 0
		if in != nil {
			n = in.Sessions
		}
		s.observe(ctx, "report-insights", startedAt, req, n, err)
	}()

	sessions, err := s.query(ctx, req)
	if err != nil {
		return nil, err
	}
	computed := aggregate.ComputeInsights(sessions, req.Range.Start.Location())
	return &computed, nil
}

func (s *reportService) Stats(ctx context.Context) (*repository.StoreStats, error) {
	return s.sessions.Stats(ctx)
}

func (s *reportService) query(ctx context.Context, req ReportRequest) ([]*domain.Session, error) {
	if !req.Range.Start.Before(req.Range.End) {
		return nil, &domain.InvalidRangeError{Reason: "range start must be before its end"}
	}
	category := ""
	if req.Category != "" {
		var err error
		if category, err = domain.NormalizeName("category", req.Category); err != nil {
			return nil, err
		}
	}
	return s.sessions.Query(ctx, repository.QueryFilter{Range: req.Range, Category: category})
}

func (s *reportService) observe(ctx context.Context, name string, startedAt time.Time, req ReportRequest, results int, err error) {
	fields := map[string]any{
		"range_start": req.Range.Start.Format(time.RFC3339),
		"range_end":   req.Range.End.Format(time.RFC3339),
		"results":     results,
	}
	if req.Category != "" {
		fields["category"] = req.Category
	}
	if req.GroupBy != "" {
		fields["group_by"] = string(req.GroupBy)
	}
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}
