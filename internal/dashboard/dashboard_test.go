package dashboard_test

import (
	"context"
	"math"
	"testing"
	"time"

	"codeberg.org/mutker/bodymind/internal/dashboard"
	"codeberg.org/mutker/bodymind/internal/logger"
	"codeberg.org/mutker/bodymind/internal/metrics"
	"codeberg.org/mutker/bodymind/internal/profile"
	"codeberg.org/mutker/bodymind/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *metrics.Store {
	t.Helper()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return metrics.NewStore(context.Background(), storage.NewMemory(), logger.Nop(),
		metrics.WithClock(func() time.Time { return now }),
		metrics.WithLocation(time.UTC))
}

func TestBuildEmptyStoreUsesFallbacks(t *testing.T) {
	v := dashboard.Build(newStore(t), profile.DefaultRegistry(), "sri", dashboard.Options{Placeholders: true})

	assert.Equal(t, "Body & mind for Sri", v.Title)
	assert.Len(t, v.Profiles, 3)
	require.Len(t, v.Cards, 3)

	assert.Equal(t, "Sleep quality", v.Cards[0].Title)
	assert.Equal(t, "82", v.Cards[0].Display)
	assert.False(t, v.Cards[0].Recorded)
	assert.Equal(t, "7.3", v.Cards[1].Display)
	assert.Equal(t, "0.84", v.Cards[2].Display)

	assert.Equal(t, []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}, v.Labels)
	assert.Equal(t, "2024-06-01", v.Dates[6])

	require.Len(t, v.Datasets, 2)
	assert.Equal(t, "Sleep score", v.Datasets[0].Name)
	assert.Equal(t, []float64{72, 78, 81, 75, 82, 88, 90}, v.Datasets[0].Values)
	assert.Equal(t, "Focus", v.Datasets[1].Name)
	assert.Equal(t, []float64{5, 6, 7, 6, 7, 8, 7}, v.Datasets[1].Values)
	assert.True(t, v.Datasets[1].Dashed)
}

func TestBuildRecordedValuesOverrideFallbacks(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.SaveMetric(ctx, "focus", metrics.Sleep, 91))
	require.NoError(t, s.SaveMetric(ctx, "focus", metrics.Load, 1.25))

	v := dashboard.Build(s, profile.DefaultRegistry(), "focus", dashboard.Options{Window: 7, Placeholders: true})

	assert.Equal(t, "Body & mind for Deep Focus", v.Title)
	assert.Equal(t, "91", v.Cards[0].Display)
	assert.True(t, v.Cards[0].Recorded)
	assert.Equal(t, "7.3", v.Cards[1].Display)
	assert.Equal(t, "1.25", v.Cards[2].Display)

	assert.Equal(t, []float64{72, 78, 81, 75, 82, 88, 91}, v.Datasets[0].Values)
}

func TestBuildWithoutPlaceholdersKeepsGaps(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.SaveMetric(context.Background(), "sri", metrics.Focus, 9))

	v := dashboard.Build(s, profile.DefaultRegistry(), "sri", dashboard.Options{Placeholders: false})

	focus := v.Datasets[1].Values
	require.Len(t, focus, 7)
	assert.Equal(t, 9.0, focus[6])
	for _, x := range focus[:6] {
		assert.True(t, math.IsNaN(x))
	}
}

func TestBuildUnknownProfileResolvesToFirst(t *testing.T) {
	v := dashboard.Build(newStore(t), profile.DefaultRegistry(), "ghost", dashboard.Options{})
	assert.Equal(t, "sri", v.Active.ID)
}

func TestBuildLongWindowPastPlaceholders(t *testing.T) {
	v := dashboard.Build(newStore(t), profile.DefaultRegistry(), "sri", dashboard.Options{Window: 10, Placeholders: true})

	sleep := v.Datasets[0].Values
	require.Len(t, sleep, 10)
	assert.Equal(t, 72.0, sleep[0])
	assert.True(t, math.IsNaN(sleep[9]))
}

func TestWithPlaceholders(t *testing.T) {
	nan := math.NaN()
	got := dashboard.WithPlaceholders([]float64{nan, 2, nan}, []float64{10, 20})

	assert.Equal(t, 10.0, got[0])
	assert.Equal(t, 2.0, got[1])
	assert.True(t, math.IsNaN(got[2]))
}

func TestInfoFor(t *testing.T) {
	info, ok := dashboard.InfoFor(metrics.Load)
	assert.True(t, ok)
	assert.Equal(t, "ratio", info.Placeholder)

	_, ok = dashboard.InfoFor(metrics.Name("mood"))
	assert.False(t, ok)
}
