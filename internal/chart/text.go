package chart

import (
	"fmt"
	"io"
	"math"
	"strings"
)

var ticks = []rune("▁▂▃▄▅▆▇█")

// Sparkline draws values as block characters, each cell runes wide, scaled
// between the finite min and max. NaN is drawn as blank space.
func Sparkline(values []float64, cell int) string {
	if cell < 1 {
		cell = 1
	}
	lo, hi, ok := bounds([]Dataset{{Values: values}})

	var b strings.Builder
	b.Grow(len(values) * cell * 3)
	for _, v := range values {
		r := ' '
		switch {
		case !ok || math.IsNaN(v) || math.IsInf(v, 0):
		case hi == lo:
			r = ticks[len(ticks)/2]
		default:
			idx := int(math.Round((v - lo) / (hi - lo) * float64(len(ticks)-1)))
			r = ticks[idx]
		}
		b.WriteString(strings.Repeat(string(r), cell))
	}
	return b.String()
}

// RenderText writes a small table: one header row of labels, then one row
// per dataset with its values and sparkline.
func RenderText(w io.Writer, labels []string, datasets []Dataset) error {
	if err := Validate(labels, datasets); err != nil {
		return err
	}

	nameWidth := 0
	for _, d := range datasets {
		nameWidth = max(nameWidth, len(d.Name))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-*s", nameWidth, "")
	for _, l := range labels {
		fmt.Fprintf(&b, " %6s", l)
	}
	b.WriteString("\n")

	for _, d := range datasets {
		fmt.Fprintf(&b, "%-*s", nameWidth, d.Name)
		for _, v := range d.Values {
			if math.IsNaN(v) {
				fmt.Fprintf(&b, " %6s", "–")
				continue
			}
			fmt.Fprintf(&b, " %6.4g", v)
		}
		fmt.Fprintf(&b, "  %s\n", Sparkline(d.Values, 1))
	}

	_, err := io.WriteString(w, b.String())
	return err
}
