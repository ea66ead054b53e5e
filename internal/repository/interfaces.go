package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/clockwork/internal/domain"
)

// QueryFilter selects closed sessions whose start time falls in Range.
// An empty Category matches every category.
type QueryFilter struct {
	Range    domain.TimeRange
	Category string
}

// StoreStats is a health snapshot of the record store.
type StoreStats struct {
	Records    int
	Open       int
	Categories int
	Activities int
	First      *time.Time
	Latest     *domain.Session
	Indexes    []string
}

// SessionRepo is the record store. Mutating calls that read before they
// write (InsertOpen, Close) must run inside a db.UnitOfWork to be atomic.
type SessionRepo interface {
	InsertOpen(ctx context.Context, s *domain.Session) error
	Close(ctx context.Context, activity string, end time.Time, notes string) (*domain.Session, error)
	Query(ctx context.Context, f QueryFilter) ([]*domain.Session, error)
	FindOpen(ctx context.Context, activity string) (*domain.Session, error)
	ListOpen(ctx context.Context) ([]*domain.Session, error)
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	Stats(ctx context.Context) (*StoreStats, error)
}
