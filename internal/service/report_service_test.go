package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/clockwork/internal/db"
	"github.com/alexanderramin/clockwork/internal/domain"
	"github.com/alexanderramin/clockwork/internal/repository"
	"github.com/alexanderramin/clockwork/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var january = domain.TimeRange{
	Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	End:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
}

func jan(day, hour int) time.Time {
	return time.Date(2024, 1, day, hour, 0, 0, 0, time.UTC)
}

func newReportFixture(t *testing.T, sessions ...*domain.Session) (ReportService, *repository.SQLiteSessionRepo) {
	t.Helper()
	repo := repository.NewSQLiteSessionRepo(testutil.NewTestDB(t))
	testutil.Seed(t, repo, sessions...)
	return NewReportService(repo), repo
}

func TestReportService_CodingInJanuary(t *testing.T) {
	svc, _ := newReportFixture(t,
		testutil.NewTestSession("Work", "coding", "api", testutil.WithStart(jan(3, 9)), testutil.WithDuration(2*time.Hour)),
		testutil.NewTestSession("Work", "coding", "ui", testutil.WithStart(jan(20, 9)), testutil.WithDuration(3*time.Hour)),
		testutil.NewTestSession("Work", "coding", "api", testutil.WithStart(time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)), testutil.WithDuration(time.Hour)),
	)

	rows, err := svc.Summarize(context.Background(), ReportRequest{Range: january, GroupBy: domain.GroupByActivity})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, domain.SummaryRow{Category: "Work", Activity: "coding", Total: 5 * time.Hour, Sessions: 2}, rows[0])
}

func TestReportService_InvertedRange(t *testing.T) {
	svc, _ := newReportFixture(t)

	_, err := svc.Summarize(context.Background(), ReportRequest{
		Range: domain.TimeRange{Start: january.End, End: january.Start},
	})
	require.ErrorIs(t, err, domain.ErrInvalidRange)
}

func TestReportService_EmptyRangeIsNotAnError(t *testing.T) {
	svc, _ := newReportFixture(t,
		testutil.NewTestSession("Work", "coding", "api", testutil.WithStart(jan(3, 9))),
	)
	ctx := context.Background()
	feb := domain.TimeRange{Start: january.End, End: january.End.AddDate(0, 1, 0)}

	rows, err := svc.Summarize(ctx, ReportRequest{Range: feb})
	require.NoError(t, err)
	assert.Empty(t, rows)

	sessions, err := svc.Sessions(ctx, ReportRequest{Range: feb})
	require.NoError(t, err)
	assert.Empty(t, sessions)

	in, err := svc.Insights(ctx, ReportRequest{Range: feb})
	require.NoError(t, err)
	assert.Zero(t, in.Total)
}

func TestReportService_CategoryFilter(t *testing.T) {
	svc, _ := newReportFixture(t,
		testutil.NewTestSession("Work", "coding", "api", testutil.WithStart(jan(3, 9))),
		testutil.NewTestSession("Home", "reading", "novel", testutil.WithStart(jan(3, 20))),
	)

	sessions, err := svc.Sessions(context.Background(), ReportRequest{Range: january, Category: " Home"})
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "reading", sessions[0].Activity)
}

func TestReportService_DefaultsAndRejectsGroupBy(t *testing.T) {
	svc, _ := newReportFixture(t,
		testutil.NewTestSession("Work", "coding", "api", testutil.WithStart(jan(3, 9))),
	)
	ctx := context.Background()

	rows, err := svc.Summarize(ctx, ReportRequest{Range: january})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Empty(t, rows[0].Activity)

	_, err = svc.Summarize(ctx, ReportRequest{Range: january, GroupBy: "project"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestReportService_SkipsOpenSessions(t *testing.T) {
	svc, repo := newReportFixture(t,
		testutil.NewTestSession("Work", "coding", "api", testutil.WithStart(jan(3, 9))),
	)
	require.NoError(t, repo.InsertOpen(context.Background(),
		testutil.NewTestSession("Work", "review", "pr", testutil.WithStart(jan(3, 11)), testutil.Open())))

	rows, err := svc.Summarize(context.Background(), ReportRequest{Range: january, GroupBy: domain.GroupByActivity})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "coding", rows[0].Activity)
}

func TestReportService_DailyUsesRangeLocation(t *testing.T) {
	svc, _ := newReportFixture(t,
		testutil.NewTestSession("Work", "coding", "api", testutil.WithStart(jan(16, 2))),
	)
	loc := time.FixedZone("UTC-5", -5*60*60)
	r := domain.TimeRange{
		Start: time.Date(2024, 1, 15, 0, 0, 0, 0, loc),
		End:   time.Date(2024, 1, 17, 0, 0, 0, 0, loc),
	}

	days, err := svc.Daily(context.Background(), ReportRequest{Range: r})
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, 15, days[0].Day.Day())
	assert.Equal(t, time.Hour, days[0].Total)
}

func TestReportService_InsightsAndStats(t *testing.T) {
	svc, _ := newReportFixture(t,
		testutil.NewTestSession("Work", "coding", "api", testutil.WithStart(jan(15, 9)), testutil.WithDuration(2*time.Hour)),
		testutil.NewTestSession("Work", "coding", "api", testutil.WithStart(jan(16, 9)), testutil.WithDuration(4*time.Hour)),
	)
	ctx := context.Background()

	in, err := svc.Insights(ctx, ReportRequest{Range: january})
	require.NoError(t, err)
	assert.Equal(t, 6*time.Hour, in.Total)
	assert.Equal(t, 3*time.Hour, in.AvgPerActiveDay)
	assert.Equal(t, "api", in.TopTask)

	st, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, st.Records)
	assert.Equal(t, 0, st.Open)
}

func TestReportService_ObservesUseCases(t *testing.T) {
	repo := repository.NewSQLiteSessionRepo(testutil.NewTestDB(t))
	obs := &recordingObserver{}
	svc := NewReportService(repo, obs)

	_, err := svc.Summarize(context.Background(), ReportRequest{Range: january, Category: "Work", GroupBy: domain.GroupByTask})
	require.NoError(t, err)

	require.Len(t, obs.events, 1)
	e := obs.events[0]
	assert.Equal(t, "report-summary", e.Name)
	assert.True(t, e.Success)
	assert.Equal(t, "Work", e.Fields["category"])
	assert.Equal(t, "task", e.Fields["group_by"])
	assert.Equal(t, 0, e.Fields["results"])
}

// Summaries computed from the store add up to the durations of the sessions
// the store returns for the same range.
func TestReportService_SummaryMatchesSessionSums(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		database, err := db.OpenDB(":memory:")
		if err != nil {
			t.Fatalf("open db: %v", err)
		}
		defer database.Close()
		repo := repository.NewSQLiteSessionRepo(database)
		ctx := context.Background()

		n := rapid.IntRange(0, 25).Draw(t, "n")
		for i := 0; i < n; i++ {
			start := january.Start.Add(time.Duration(rapid.IntRange(-48, 31*24+48).Draw(t, "start_hour")) * time.Hour)
			s := testutil.NewTestSession(
				rapid.SampledFrom([]string{"Work", "Home"}).Draw(t, "category"),
				rapid.SampledFrom([]string{"coding", "reading", "review"}).Draw(t, "activity"),
				"t",
				testutil.WithStart(start),
				testutil.Open(),
			)
			if err := repo.InsertOpen(ctx, s); err != nil {
				t.Fatalf("insert: %v", err)
			}
			end := start.Add(time.Duration(rapid.IntRange(0, 7200).Draw(t, "secs")) * time.Second)
			if _, err := repo.Close(ctx, s.Activity, end, ""); err != nil {
				t.Fatalf("close: %v", err)
			}
		}

		svc := NewReportService(repo)
		by := rapid.SampledFrom([]domain.GroupBy{domain.GroupByCategory, domain.GroupByActivity}).Draw(t, "by")

		sessions, err := svc.Sessions(ctx, ReportRequest{Range: january})
		if err != nil {
			t.Fatal(err)
		}
		want := make(map[domain.GroupKey]time.Duration)
		for _, s := range sessions {
			if !january.Contains(s.StartTime) {
				t.Fatalf("session starting %v outside range", s.StartTime)
			}
			key := domain.GroupKey{Category: s.Category}
			if by == domain.GroupByActivity {
				key.Activity = s.Activity
			}
			want[key] += s.Duration()
		}

		rows, err := svc.Summarize(ctx, ReportRequest{Range: january, GroupBy: by})
		if err != nil {
			t.Fatal(err)
		}
		if len(rows) != len(want) {
			t.Fatalf("got %d rows, want %d", len(rows), len(want))
		}
		for _, r := range rows {
			if r.Total != want[r.Key(by)] {
				t.Fatalf("%s: total %v, want %v", r.Key(by), r.Total, want[r.Key(by)])
			}
		}
	})
}
