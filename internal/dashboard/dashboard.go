// Package dashboard builds the view model shown by every front end: the
// profile header, the three metric cards, the trend chart and the static
// interpretation text.
package dashboard

import (
	"math"

	"codeberg.org/mutker/bodymind/internal/chart"
	"codeberg.org/mutker/bodymind/internal/metrics"
	"codeberg.org/mutker/bodymind/internal/profile"
)

const (
	Brand     = "BODYMIND"
	BrandChip = "ALPHA"

	ChartTitle = "Sleep vs days of week"
	ChartChip  = "Mock data"

	QuickNoteTitle = "Quick note"
	QuickNoteChip  = "Today"
	QuickNote      = "This is a minimal BodyMind shell. Metrics, multi-profile states, and richer charts will layer on top."

	InterpretationTitle = "Interpretation"
	InterpretationChip  = "Static"
	Interpretation      = "You're currently in a reasonably healthy band: sleep trending up, load balanced, focus high. " +
		"The next step is wiring real inputs (sleep, energy, training, focus) into this shell."
	InterpretationNote = "This build is intentionally opinionated about layout and information density, but all metrics and " +
		"visuals are mock values for now."
)

// HeaderChips are shown next to the overview title.
var HeaderChips = []string{"Prototype", "Local only"}

// CardInfo is the static part of a metric card.
type CardInfo struct {
	Metric      metrics.Name
	Title       string
	Chip        string
	Caption     string
	Placeholder string
	Fallback    float64
	Hint        string
	HintNote    string
	HintTone    Tone
}

// Tone colours a card hint.
type Tone int

const (
	TonePositive Tone = iota
	ToneWarning
)

// Cards lists the cards in display order.
var Cards = []CardInfo{
	{
		Metric:      metrics.Sleep,
		Title:       "Sleep quality",
		Chip:        "Last 7 days",
		Caption:     "Composite sleep score",
		Placeholder: "score",
		Fallback:    82,
		Hint:        "+6 vs baseline",
		HintNote:    "Consistent wind-down helps",
		HintTone:    TonePositive,
	},
	{
		Metric:      metrics.Focus,
		Title:       "Cognitive load",
		Chip:        "Today",
		Caption:     "Self-reported focus",
		Placeholder: "0-10",
		Fallback:    7.3,
		Hint:        "High band",
		HintNote:    "Schedule recovery block tonight",
		HintTone:    ToneWarning,
	},
	{
		Metric:      metrics.Load,
		Title:       "Training load",
		Chip:        "Rolling",
		Caption:     "Load:recovery ratio",
		Placeholder: "ratio",
		Fallback:    0.84,
		Hint:        "Balanced",
		HintNote:    "Safe to add a small push",
		HintTone:    TonePositive,
	},
}

// InfoFor returns the card info of a metric.
func InfoFor(name metrics.Name) (CardInfo, bool) {
	for _, c := range Cards {
		if c.Metric == name {
			return c, true
		}
	}
	return CardInfo{}, false
}

// placeholderSeries fill chart days that have no entry. Load has none.
var placeholderSeries = map[metrics.Name][]float64{
	metrics.Sleep: {72, 78, 81, 75, 82, 88, 90},
	metrics.Focus: {5, 6, 7, 6, 7, 8, 7},
}

// chartLines are the series drawn on the trend chart.
var chartLines = []struct {
	metric metrics.Name
	label  string
	color  chart.Color
	dashed bool
	fill   bool
}{
	{metrics.Sleep, "Sleep score", chart.Color{R: 96, G: 165, B: 250}, false, true},
	{metrics.Focus, "Focus", chart.Color{R: 249, G: 115, B: 115}, true, false},
}

type Options struct {
	Window       int
	Placeholders bool
}

// Card is a rendered metric card.
type Card struct {
	CardInfo
	Value    float64
	Recorded bool
	Display  string
}

type View struct {
	Profiles []profile.Profile
	Active   profile.Profile
	Title    string
	Cards    []Card
	Labels   []string
	Dates    []string
	Datasets []chart.Dataset
}

// Build assembles the view for profileID. Unknown ids resolve to the first
// registered profile.
func Build(store *metrics.Store, registry *profile.Registry, profileID string, opts Options) View {
	if opts.Window <= 0 {
		opts.Window = metrics.DefaultWindow
	}
	active := registry.Resolve(profileID)

	v := View{
		Profiles: registry.All(),
		Active:   active,
		Title:    "Body & mind for " + active.Name,
		Labels:   store.WindowLabels(opts.Window),
		Dates:    store.WindowDates(opts.Window),
	}

	for _, info := range Cards {
		c := Card{CardInfo: info, Value: info.Fallback}
		if latest, ok := store.Latest(active.ID, info.Metric); ok {
			c.Value = latest
			c.Recorded = true
		}
		c.Display = metrics.FormatValue(c.Value)
		v.Cards = append(v.Cards, c)
	}

	for _, line := range chartLines {
		values := store.SeriesFor(active.ID, line.metric, opts.Window)
		if opts.Placeholders {
			values = WithPlaceholders(values, placeholderSeries[line.metric])
		}
		v.Datasets = append(v.Datasets, chart.Dataset{
			Name:   line.label,
			Values: values,
			Color:  line.color,
			Dashed: line.dashed,
			Fill:   line.fill,
		})
	}

	return v
}

// WithPlaceholders replaces missing values by the placeholder at the same
// day offset. Offsets past the end of placeholders stay missing.
func WithPlaceholders(values, placeholders []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		switch {
		case !math.IsNaN(v):
			out[i] = v
		case i < len(placeholders):
			out[i] = placeholders[i]
		default:
			out[i] = math.NaN()
		}
	}
	return out
}
