package daterange

import (
	"testing"
	"time"

	"github.com/alexanderramin/clockwork/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func mustResolve(t *testing.T, args []string, now time.Time) domain.TimeRange {
	t.Helper()
	spec, err := Parse(args, Week)
	require.NoError(t, err)
	r, err := spec.Resolve(now)
	require.NoError(t, err)
	return r
}

func TestResolve_Codes(t *testing.T) {
	// Wednesday.
	now := time.Date(2024, 1, 17, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		code      string
		wantStart time.Time
		wantEnd   time.Time
	}{
		{"d", time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 18, 0, 0, 0, 0, time.UTC)},
		{"w", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 22, 0, 0, 0, 0, time.UTC)},
		{"m", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		{"y", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"W", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 22, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range tests {
		t.Run(tc.code, func(t *testing.T) {
			r := mustResolve(t, []string{tc.code}, now)
			assert.True(t, tc.wantStart.Equal(r.Start), "start = %v", r.Start)
			assert.True(t, tc.wantEnd.Equal(r.End), "end = %v", r.End)
		})
	}
}

func TestResolve_WeekOnSundayStartsPreviousMonday(t *testing.T) {
	sunday := time.Date(2024, 1, 21, 23, 59, 0, 0, time.UTC)
	r := mustResolve(t, []string{"w"}, sunday)
	assert.Equal(t, time.Monday, r.Start.Weekday())
	assert.True(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC).Equal(r.Start))
	assert.True(t, r.Contains(sunday))
}

func TestResolve_WeekAcrossYearBoundary(t *testing.T) {
	// 2025-01-01 is a Wednesday; its week starts in December.
	r := mustResolve(t, []string{"w"}, time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC))
	assert.True(t, time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC).Equal(r.Start))
	assert.True(t, time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC).Equal(r.End))
}

func TestResolve_DST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	spring := mustResolve(t, []string{"d"}, time.Date(2024, 3, 10, 12, 0, 0, 0, ny))
	assert.Equal(t, 23*time.Hour, spring.Duration())

	fall := mustResolve(t, []string{"d"}, time.Date(2024, 11, 3, 12, 0, 0, 0, ny))
	assert.Equal(t, 25*time.Hour, fall.Duration())

	week := mustResolve(t, []string{"w"}, time.Date(2024, 3, 10, 12, 0, 0, 0, ny))
	assert.Equal(t, 7*24*time.Hour-time.Hour, week.Duration())
	assert.Equal(t, 0, week.Start.Hour())
	assert.Equal(t, 0, week.End.Hour())
}

func TestResolve_LeapYear(t *testing.T) {
	feb := mustResolve(t, []string{"m"}, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 29*24*time.Hour, feb.Duration())

	febCommon := mustResolve(t, []string{"m"}, time.Date(2023, 2, 10, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 28*24*time.Hour, febCommon.Duration())

	leap := mustResolve(t, []string{"y"}, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 366*24*time.Hour, leap.Duration())

	century := mustResolve(t, []string{"y"}, time.Date(2100, 7, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 365*24*time.Hour, century.Duration())
}

func TestResolve_ExplicitDates(t *testing.T) {
	now := time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)

	r := mustResolve(t, []string{"2024-01-01", "2024-01-31"}, now)
	assert.True(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Equal(r.Start))
	assert.True(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC).Equal(r.End))
	assert.True(t, r.Contains(time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)))
	assert.False(t, r.Contains(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))

	same := mustResolve(t, []string{"2024-01-05", "2024-01-05"}, now)
	assert.Equal(t, 24*time.Hour, same.Duration())

	single := mustResolve(t, []string{"2024-01-05"}, now)
	assert.Equal(t, same, single)
}

func TestResolve_ExplicitDatesUseNowLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	r := mustResolve(t, []string{"2024-01-01", "2024-01-01"}, time.Date(2024, 5, 1, 0, 0, 0, 0, loc))
	assert.Equal(t, loc, r.Start.Location())
	assert.True(t, time.Date(2023, 12, 31, 22, 0, 0, 0, time.UTC).Equal(r.Start))
}

func TestParse_Default(t *testing.T) {
	now := time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC)

	spec, err := Parse(nil, Month)
	require.NoError(t, err)
	assert.Equal(t, "monthly", spec.Label())
	r, err := spec.Resolve(now)
	require.NoError(t, err)
	assert.True(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Equal(r.Start))

	_, err = Parse(nil, Code("q"))
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"inverted", []string{"2024-02-01", "2024-01-01"}},
		{"bad start", []string{"2024-13-01", "2024-12-31"}},
		{"bad end", []string{"2024-01-01", "2024-02-30"}},
		{"unknown code", []string{"q"}},
		{"not a date", []string{"yesterday"}},
		{"too many", []string{"2024-01-01", "2024-01-02", "2024-01-03"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.args, Week)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidRange)

			var rangeErr *domain.InvalidRangeError
			assert.ErrorAs(t, err, &rangeErr)
		})
	}
}

func TestSpec_Label(t *testing.T) {
	pair, err := Between("2024-01-01", "2024-01-31")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01 to 2024-01-31", pair.Label())

	single, err := Parse([]string{"2024-01-05"}, Week)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-05", single.Label())
	assert.False(t, single.IsCode())

	assert.Equal(t, "weekly", FromCode(Week).Label())
	assert.True(t, FromCode(Week).IsCode())
}

func TestSpec_ZeroValueDoesNotResolve(t *testing.T) {
	_, err := Spec{}.Resolve(time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}

func genNow(t *rapid.T) time.Time {
	sec := rapid.Int64Range(0, 4_000_000_000).Draw(t, "unix_sec")
	return time.Unix(sec, 0).UTC()
}

func TestResolve_CodesProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		now := genNow(t)

		for _, c := range []Code{Day, Week, Month, Year} {
			r, err := FromCode(c).Resolve(now)
			if err != nil {
				t.Fatalf("%s: %v", c, err)
			}
			if !r.Contains(now) {
				t.Fatalf("%s range %v-%v does not contain %v", c, r.Start, r.End, now)
			}
			if !r.Start.Before(r.End) {
				t.Fatalf("%s range is empty", c)
			}
		}

		d, _ := FromCode(Day).Resolve(now)
		if d.Duration() != 24*time.Hour {
			t.Fatalf("d spans %v", d.Duration())
		}

		w, _ := FromCode(Week).Resolve(now)
		if w.Duration() != 7*24*time.Hour || w.Start.Weekday() != time.Monday {
			t.Fatalf("w spans %v from %v", w.Duration(), w.Start.Weekday())
		}

		m, _ := FromCode(Month).Resolve(now)
		daysInMonth := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
		if m.Duration() != time.Duration(daysInMonth)*24*time.Hour {
			t.Fatalf("m spans %v, want %d days", m.Duration(), daysInMonth)
		}

		y, _ := FromCode(Year).Resolve(now)
		days := 365
		if yr := now.Year(); yr%4 == 0 && (yr%100 != 0 || yr%400 == 0) {
			days = 366
		}
		if y.Duration() != time.Duration(days)*24*time.Hour {
			t.Fatalf("y spans %v, want %d days", y.Duration(), days)
		}
	})
}

func TestBetween_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := genNow(t)
		b := genNow(t)
		start, end := a.Format(DateLayout), b.Format(DateLayout)

		spec, err := Between(start, end)
		if b.Format(DateLayout) < a.Format(DateLayout) {
			if err == nil {
				t.Fatalf("inverted pair %s %s accepted", start, end)
			}
			return
		}
		if err != nil {
			t.Fatalf("Between(%s, %s): %v", start, end, err)
		}
		r, err := spec.Resolve(time.Unix(0, 0).UTC())
		if err != nil {
			t.Fatal(err)
		}
		if r.Start.Format(DateLayout) != start || r.LastDay().Format(DateLayout) != end {
			t.Fatalf("resolved %v-%v for %s..%s", r.Start, r.End, start, end)
		}
	})
}
