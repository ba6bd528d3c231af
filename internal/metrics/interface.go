package metrics

import (
	"sort"
	"strings"

	"codeberg.org/mutker/bodymind/internal/errors"
)

// Name identifies one of the tracked series.
type Name string

const (
	Sleep Name = "sleep"
	Focus Name = "focus"
	Load  Name = "load"
)

// Names lists the series in display order.
var Names = []Name{Sleep, Focus, Load}

// ParseName accepts a series name case-insensitively.
func ParseName(s string) (Name, error) {
	n := Name(strings.ToLower(strings.TrimSpace(s)))
	switch n {
	case Sleep, Focus, Load:
		return n, nil
	default:
		return "", errors.New().WithData(ErrInvalidMetric, s)
	}
}

// Entry is one recorded value for a calendar day (YYYY-MM-DD).
type Entry struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// ProfileMetrics holds the three series of one profile, each sorted by date.
type ProfileMetrics struct {
	Sleep []Entry `json:"sleep"`
	Focus []Entry `json:"focus"`
	Load  []Entry `json:"load"`
}

// ByProfile is the persisted unit, keyed by profile id.
type ByProfile map[string]ProfileMetrics

// EmptyProfileMetrics returns a bundle whose three series are empty.
func EmptyProfileMetrics() ProfileMetrics {
	return ProfileMetrics{
		Sleep: []Entry{},
		Focus: []Entry{},
		Load:  []Entry{},
	}
}

// Series returns the named series. Unknown names yield nil.
func (p ProfileMetrics) Series(name Name) []Entry {
	switch name {
	case Sleep:
		return p.Sleep
	case Focus:
		return p.Focus
	case Load:
		return p.Load
	default:
		return nil
	}
}

// WithSeries returns a copy of p with the named series replaced.
func (p ProfileMetrics) WithSeries(name Name, series []Entry) ProfileMetrics {
	switch name {
	case Sleep:
		p.Sleep = series
	case Focus:
		p.Focus = series
	case Load:
		p.Load = series
	}
	return p
}

func (p ProfileMetrics) clone() ProfileMetrics {
	return ProfileMetrics{
		Sleep: cloneSeries(p.Sleep),
		Focus: cloneSeries(p.Focus),
		Load:  cloneSeries(p.Load),
	}
}

func cloneSeries(s []Entry) []Entry {
	out := make([]Entry, len(s))
	copy(out, s)
	return out
}

// UpsertEntry returns a new series where the entry for date is replaced by
// value, or appended when absent, sorted ascending by date. series itself
// is left untouched.
func UpsertEntry(series []Entry, date string, value float64) []Entry {
	out := make([]Entry, 0, len(series)+1)
	out = append(out, series...)

	replaced := false
	for i := range out {
		if out[i].Date == date {
			out[i] = Entry{Date: date, Value: value}
			replaced = true
			break
		}
	}
	if !replaced {
		out = append(out, Entry{Date: date, Value: value})
	}

	// ISO dates order lexicographically
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out
}
