package metrics

import (
	"context"
	"math"
	"time"

	"codeberg.org/mutker/bodymind/internal/errors"
	"codeberg.org/mutker/bodymind/internal/logger"
	"codeberg.org/mutker/bodymind/internal/storage"
)

const (
	DateLayout    = "2006-01-02"
	DefaultWindow = 7
)

// Store owns the in-memory metrics of every profile and mirrors them to
// storage after each mutation. It is not safe for concurrent mutation;
// one owner (the dashboard or a single command) drives it.
type Store struct {
	storage storage.Storage
	logger  logger.Logger
	now     func() time.Time
	loc     *time.Location
	data    ByProfile
}

type Option func(*Store)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithLocation sets the zone whose calendar defines "today".
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// NewStore loads the persisted metrics once. Missing or malformed content
// starts an empty store.
func NewStore(ctx context.Context, st storage.Storage, log logger.Logger, opts ...Option) *Store {
	s := &Store{
		storage: st,
		logger:  log,
		now:     time.Now,
		loc:     time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.data = storage.Load(ctx, st, storage.KeyMetrics, ByProfile{})
	if s.data == nil {
		s.data = ByProfile{}
	}

	log.Debug().Int("profiles", len(s.data)).Msg("Metrics loaded")
	return s
}

// EnsureProfileMetrics returns the stored bundle for profileID or a fresh
// all-empty bundle. It never writes.
func (s *Store) EnsureProfileMetrics(profileID string) ProfileMetrics {
	existing, ok := s.data[profileID]
	if !ok {
		return EmptyProfileMetrics()
	}
	return existing.clone()
}

// SaveMetric records value for today in the named series of profileID and
// persists the whole mapping. The in-memory update stands even when the
// write fails; the write error is returned.
func (s *Store) SaveMetric(ctx context.Context, profileID string, name Name, value float64) error {
	errFactory := errors.New()

	if profileID == "" {
		return errFactory.New(ErrInvalidProfile)
	}
	if _, err := ParseName(string(name)); err != nil {
		return err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return errFactory.WithData(ErrInvalidValue, value)
	}

	cur := s.EnsureProfileMetrics(profileID)
	today := s.Today()
	s.data[profileID] = cur.WithSeries(name, UpsertEntry(cur.Series(name), today, value))

	s.logger.Debug().
		Str("profile", profileID).
		Str("metric", string(name)).
		Str("date", today).
		Float64("value", value).
		Msg("Metric recorded")

	return s.persist(ctx, "save_metric")
}

// ResetMetrics empties the three series of profileID, keeping the profile
// entry, and persists.
func (s *Store) ResetMetrics(ctx context.Context, profileID string) error {
	if profileID == "" {
		return errors.New().New(ErrInvalidProfile)
	}

	s.data[profileID] = EmptyProfileMetrics()
	s.logger.Debug().Str("profile", profileID).Msg("Metrics reset")

	return s.persist(ctx, "reset_metrics")
}

// SeriesFor returns exactly windowSize values for the last windowSize days
// ending today, oldest first. Days without an entry are NaN.
func (s *Store) SeriesFor(profileID string, name Name, windowSize int) []float64 {
	dates := s.WindowDates(windowSize)
	series := s.EnsureProfileMetrics(profileID).Series(name)

	byDate := make(map[string]float64, len(series))
	for _, e := range series {
		byDate[e.Date] = e.Value
	}

	values := make([]float64, len(dates))
	for i, d := range dates {
		if v, ok := byDate[d]; ok {
			values[i] = v
		} else {
			values[i] = math.NaN()
		}
	}
	return values
}

// Latest returns the value of the most recent entry of a series.
func (s *Store) Latest(profileID string, name Name) (float64, bool) {
	series := s.EnsureProfileMetrics(profileID).Series(name)
	if len(series) == 0 {
		return 0, false
	}
	return series[len(series)-1].Value, true
}

// Today is the current calendar date in the store's zone.
func (s *Store) Today() string {
	return s.now().In(s.loc).Format(DateLayout)
}

// WindowDates lists the ISO dates of the window, oldest first.
func (s *Store) WindowDates(windowSize int) []string {
	days := s.windowDays(windowSize)
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = d.Format(DateLayout)
	}
	return out
}

// WindowLabels lists short weekday names for the window, oldest first.
func (s *Store) WindowLabels(windowSize int) []string {
	days := s.windowDays(windowSize)
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = d.Format("Mon")
	}
	return out
}

// Snapshot returns a deep copy of everything held in memory.
func (s *Store) Snapshot() ByProfile {
	out := make(ByProfile, len(s.data))
	for id, pm := range s.data {
		out[id] = pm.clone()
	}
	return out
}

func (s *Store) windowDays(windowSize int) []time.Time {
	if windowSize <= 0 {
		windowSize = DefaultWindow
	}

	now := s.now().In(s.loc)
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)

	days := make([]time.Time, windowSize)
	for i := 0; i < windowSize; i++ {
		days[i] = midnight.AddDate(0, 0, i-(windowSize-1))
	}
	return days
}

func (s *Store) persist(ctx context.Context, operation string) error {
	if err := ctx.Err(); err != nil {
		return errors.New().Wrap(ErrOperationTimeout, err)
	}
	if err := storage.Save(ctx, s.storage, storage.KeyMetrics, s.data); err != nil {
		s.logger.WarnWithContext(err, "metrics", operation).Msg("Metrics not persisted")
		return err
	}
	return nil
}
