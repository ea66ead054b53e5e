package service

import (
	"context"

	"github.com/alexanderramin/clockwork/internal/aggregate"
	"github.com/alexanderramin/clockwork/internal/domain"
	"github.com/alexanderramin/clockwork/internal/repository"
)

// ClockInRequest names the session to open. Notes are optional.
type ClockInRequest struct {
	Category string
	Activity string
	Task     string
	Notes    string
}

type ClockOutRequest struct {
	Activity string
	Notes    string
}

// ReportRequest selects closed sessions for a report. An empty Category
// matches every category; an empty GroupBy means GroupByCategory.
type ReportRequest struct {
	Range    domain.TimeRange
	Category string
	GroupBy  domain.GroupBy
}

type ClockService interface {
	ClockIn(ctx context.Context, req ClockInRequest) (*domain.Session, error)
	ClockOut(ctx context.Context, req ClockOutRequest) (*domain.Session, error)
	Open(ctx context.Context) ([]*domain.Session, error)
}

type ReportService interface {
	Sessions(ctx context.Context, req ReportRequest) ([]*domain.Session, error)
	Summarize(ctx context.Context, req ReportRequest) ([]domain.SummaryRow, error)
	Daily(ctx context.Context, req ReportRequest) ([]aggregate.DayTotal, error)
	Insights(ctx context.Context, req ReportRequest) (*aggregate.Insights, error)
	Stats(ctx context.Context) (*repository.StoreStats, error)
}
