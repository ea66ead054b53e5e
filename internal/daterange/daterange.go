// Package daterange turns the report range a user types (a period code or
// explicit dates) into a half-open interval of instants.
package daterange

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/clockwork/internal/domain"
)

// DateLayout is the format explicit dates are typed in.
const DateLayout = "2006-01-02"

// Code is a relative period anchored on the reference clock.
type Code string

const (
	Day   Code = "d"
	Week  Code = "w"
	Month Code = "m"
	Year  Code = "y"
)

var codeLabels = map[Code]string{
	Day:   "daily",
	Week:  "weekly",
	Month: "monthly",
	Year:  "yearly",
}

func (c Code) Valid() bool {
	_, ok := codeLabels[c]
	return ok
}

// ParseCode accepts d, w, m, y in any case.
func ParseCode(s string) (Code, error) {
	c := Code(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", &domain.InvalidRangeError{Input: s, Reason: "unknown period code (use d, w, m or y)"}
	}
	return c, nil
}

type kind int

const (
	kindCode kind = iota + 1
	kindDates
)

// date is a calendar date with no location attached.
type date struct {
	year  int
	month time.Month
	day   int
}

func (d date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

func (d date) before(o date) bool {
	if d.year != o.year {
		return d.year < o.year
	}
	if d.month != o.month {
		return d.month < o.month
	}
	return d.day < o.day
}

func parseDate(s string) (date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return date{}, &domain.InvalidRangeError{Input: s, Reason: "expected a date as YYYY-MM-DD"}
	}
	y, m, d := t.Date()
	return date{year: y, month: m, day: d}, nil
}

// Spec is a parsed but unresolved range: either a period code or an
// inclusive pair of calendar dates.
type Spec struct {
	kind kind
	code Code
	from date
	to   date
}

// Parse builds a Spec from positional arguments. No arguments selects def;
// one argument is a code or a single date; two arguments are inclusive start
// and end dates.
func Parse(args []string, def Code) (Spec, error) {
	switch len(args) {
	case 0:
		c, err := ParseCode(string(def))
		if err != nil {
			return Spec{}, err
		}
		return FromCode(c), nil
	case 1:
		if c, err := ParseCode(args[0]); err == nil {
			return FromCode(c), nil
		}
		d, err := parseDate(args[0])
		if err != nil {
			return Spec{}, &domain.InvalidRangeError{Input: args[0], Reason: "expected d, w, m, y or a date as YYYY-MM-DD"}
		}
		return Spec{kind: kindDates, from: d, to: d}, nil
	case 2:
		return Between(args[0], args[1])
	default:
		return Spec{}, &domain.InvalidRangeError{
			Input:  strings.Join(args, " "),
			Reason: "expected at most a start and an end date",
		}
	}
}

func FromCode(c Code) Spec {
	return Spec{kind: kindCode, code: c}
}

// Between parses an inclusive pair of dates. The end may equal the start but
// not precede it.
func Between(start, end string) (Spec, error) {
	from, err := parseDate(start)
	if err != nil {
		return Spec{}, err
	}
	to, err := parseDate(end)
	if err != nil {
		return Spec{}, err
	}
	if to.before(from) {
		return Spec{}, &domain.InvalidRangeError{
			Input:  start + " " + end,
			Reason: "end date is before start date",
		}
	}
	return Spec{kind: kindDates, from: from, to: to}, nil
}

// Resolve anchors s on now. Boundaries are local midnights in now's
// location, so a range containing a DST change is 23 or 25 hours longer or
// shorter than a naive multiple of 24h.
func (s Spec) Resolve(now time.Time) (domain.TimeRange, error) {
	loc := now.Location()
	y, m, d := now.Date()

	var start, end time.Time
	switch s.kind {
	case kindCode:
		switch s.code {
		case Day:
			start = time.Date(y, m, d, 0, 0, 0, 0, loc)
			end = time.Date(y, m, d+1, 0, 0, 0, 0, loc)
		case Week:
			back := (int(now.Weekday()) + 6) % 7
			start = time.Date(y, m, d-back, 0, 0, 0, 0, loc)
			end = time.Date(y, m, d-back+7, 0, 0, 0, 0, loc)
		case Month:
			start = time.Date(y, m, 1, 0, 0, 0, 0, loc)
			end = time.Date(y, m+1, 1, 0, 0, 0, 0, loc)
		case Year:
			start = time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
			end = time.Date(y+1, time.January, 1, 0, 0, 0, 0, loc)
		default:
			return domain.TimeRange{}, &domain.InvalidRangeError{Input: string(s.code), Reason: "unknown period code"}
		}
	case kindDates:
		start = time.Date(s.from.year, s.from.month, s.from.day, 0, 0, 0, 0, loc)
		end = time.Date(s.to.year, s.to.month, s.to.day+1, 0, 0, 0, 0, loc)
	default:
		return domain.TimeRange{}, &domain.InvalidRangeError{Reason: "empty range"}
	}
	return domain.TimeRange{Start: start, End: end}, nil
}

// Label names the range for report headings.
func (s Spec) Label() string {
	switch s.kind {
	case kindCode:
		return codeLabels[s.code]
	case kindDates:
		if s.from == s.to {
			return s.from.String()
		}
		return s.from.String() + " to " + s.to.String()
	default:
		return ""
	}
}

// IsCode reports whether s is a relative period.
func (s Spec) IsCode() bool {
	return s.kind == kindCode
}
