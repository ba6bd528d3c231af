// Package chart turns a label sequence and named value series into a line
// chart, either as terminal text or as a PNG image.
package chart

import (
	"math"

	"codeberg.org/mutker/bodymind/internal/errors"
)

const (
	ErrLengthMismatch = errors.ErrorCode("chart_length_mismatch")
	ErrNoData         = errors.ErrorCode("chart_no_data")
	ErrRender         = errors.ErrRenderApp
)

type Color struct {
	R, G, B uint8
}

// Dataset is one named line. NaN values are gaps.
type Dataset struct {
	Name   string
	Values []float64
	Color  Color
	Dashed bool
	Fill   bool
}

// Validate requires every dataset to have one value per label.
func Validate(labels []string, datasets []Dataset) error {
	for _, d := range datasets {
		if len(d.Values) != len(labels) {
			return errors.New().WithData(ErrLengthMismatch, struct {
				Dataset string
				Labels  int
				Values  int
			}{
				Dataset: d.Name,
				Labels:  len(labels),
				Values:  len(d.Values),
			})
		}
	}
	return nil
}

// bounds returns the finite min and max across datasets.
func bounds(datasets []Dataset) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, d := range datasets {
		for _, v := range d.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
			ok = true
		}
	}
	return lo, hi, ok
}
