// Package schedule parses the erosion-accounting calendar.
//
// Each period is a half-open interval [Start, End) with Start strictly before
// End. Periods may overlap and need not be sorted; both are accepted as
// given and only reported.
package schedule

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/sedstack/sedinit/internal/alloc"
	"github.com/sedstack/sedinit/internal/config"
	sederr "github.com/sedstack/sedinit/internal/errors"
)

const (
	// Section holds the schedule keys.
	Section = "SEDTIME"
	// KeyTimeSteps is the number of periods.
	KeyTimeSteps = "TIME STEPS"
	// Routine names the parser in allocation failures.
	Routine = "InitSurfaceSed"
)

// Bound selects the start or end key of a period.
type Bound string

const (
	Start Bound = "EROSION START"
	End   Bound = "EROSION END"
)

// Key returns the input key for bound of the 1-based period.
func Key(b Bound, period int) string {
	return fmt.Sprintf("%s %d", b, period)
}

// Period is one accounting interval.
type Period struct {
	Start time.Time `yaml:"start"`
	End   time.Time `yaml:"end"`
}

// Contains reports whether t falls in [Start, End).
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// Schedule is the parsed calendar. It is immutable once parsed.
type Schedule struct {
	start []time.Time
	end   []time.Time
}

// Len returns the number of periods.
func (s *Schedule) Len() int {
	if s == nil {
		return 0
	}
	return len(s.start)
}

// Period returns the i-th period, 0-based.
func (s *Schedule) Period(i int) Period {
	return Period{Start: s.start[i], End: s.end[i]}
}

// Periods returns a copy of all periods in input order.
func (s *Schedule) Periods() []Period {
	out := make([]Period, s.Len())
	for i := range out {
		out[i] = s.Period(i)
	}
	return out
}

// Active returns the index of the first period, in input order, containing t.
func (s *Schedule) Active(t time.Time) (int, bool) {
	for i := 0; i < s.Len(); i++ {
		if s.Period(i).Contains(t) {
			return i, true
		}
	}
	return -1, false
}

// Overlapping returns the index pairs of periods that share any instant.
func (s *Schedule) Overlapping() [][2]int {
	var pairs [][2]int
	for i := 0; i < s.Len(); i++ {
		for j := i + 1; j < s.Len(); j++ {
			if s.start[i].Before(s.end[j]) && s.start[j].Before(s.end[i]) {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}
	return pairs
}

// Parser reads the SEDTIME section.
type Parser struct {
	Guard  alloc.Guard
	Logger *slog.Logger
}

// Parse reads the period count and every period. It stops at the first bad
// period.
func (p *Parser) Parse(store config.Store) (*Schedule, error) {
	n, err := config.Int(store, Section, KeyTimeSteps)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, sederr.MalformedValue(Section, KeyTimeSteps, fmt.Sprint(n), "a non-negative integer")
	}

	start, err := alloc.Make[time.Time](p.Guard, Routine, n)
	if err != nil {
		return nil, err
	}
	end, err := alloc.Make[time.Time](p.Guard, Routine, n)
	if err != nil {
		return nil, err
	}

	for i := 0; i < n; i++ {
		if start[i], err = readDate(store, Key(Start, i+1)); err != nil {
			return nil, err
		}
		if end[i], err = readDate(store, Key(End, i+1)); err != nil {
			return nil, err
		}
		if !start[i].Before(end[i]) {
			return nil, sederr.TemporalOrdering(Section, i+1).
				WithDetail("start", start[i].Format(time.RFC3339)).
				WithDetail("end", end[i].Format(time.RFC3339))
		}
	}

	s := &Schedule{start: start, end: end}
	if p.Logger != nil {
		p.Logger.Debug("erosion schedule parsed", "periods", n, "overlapping", len(s.Overlapping()))
	}
	return s, nil
}

func readDate(store config.Store, key string) (time.Time, error) {
	raw, err := store.GetString(Section, key, "")
	if err != nil {
		return time.Time{}, err
	}
	t, err := ParseDate(raw)
	if err != nil {
		return time.Time{}, sederr.MalformedValue(Section, key, raw, "a date").WithCause(err)
	}
	return t, nil
}
