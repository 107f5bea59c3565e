package correlation

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/2beens/fitinsights/internal/records"
	"github.com/2beens/fitinsights/internal/series"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Alignment decides how the points of two series are paired.
type Alignment string

const (
	// AlignTimestamp pairs points with equal timestamps. Repeated timestamps
	// pair in order of occurrence.
	AlignTimestamp Alignment = "timestamp"
	// AlignPosition pairs the i-th point of x with the i-th point of y and
	// drops the tail of the longer series.
	AlignPosition Alignment = "position"
)

func ParseAlignment(s string) (Alignment, error) {
	switch Alignment(strings.ToLower(strings.TrimSpace(s))) {
	case "", AlignTimestamp:
		return AlignTimestamp, nil
	case AlignPosition:
		return AlignPosition, nil
	default:
		return "", &records.InvalidSelectionError{
			Field:  "alignment",
			Value:  s,
			Reason: "expected timestamp or position",
		}
	}
}

type Outcome string

const (
	// OutcomeEmpty means no pairs could be formed.
	OutcomeEmpty Outcome = "empty"
	// OutcomeDegenerate means every x value is the same, so there is no regression.
	OutcomeDegenerate Outcome = "degenerate"
	// OutcomeIdentical means x and y are the same values; r is 1 by definition
	// and no regression is run.
	OutcomeIdentical Outcome = "identical"
	OutcomeFitted    Outcome = "fitted"
)

// XY is a point on the scatter plane.
type XY struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Result struct {
	Outcome   Outcome `json:"outcome"`
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	R         float64 `json:"r"`
	// FitLine spans min(x) to max(x). Nil unless the outcome is fitted.
	FitLine     []XY      `json:"fitLine,omitempty"`
	SampleCount int       `json:"sampleCount"`
	X           []float64 `json:"x"`
	Y           []float64 `json:"y"`
}

// HasLine reports whether the result carries a regression line.
func (r Result) HasLine() bool {
	return r.Outcome == OutcomeFitted
}

// HasR reports whether R is meaningful.
func (r Result) HasR() bool {
	return r.Outcome == OutcomeFitted || r.Outcome == OutcomeIdentical
}

// Correlate pairs x and y, then fits y = Intercept + Slope*x by ordinary
// least squares and computes Pearson r.
func Correlate(x, y series.Series, alignment Alignment) Result {
	xs, ys := align(x.Points, y.Points, alignment)
	res := Result{
		SampleCount: len(xs),
		X:           xs,
		Y:           ys,
	}

	if len(xs) == 0 {
		res.Outcome = OutcomeEmpty
		return res
	}

	minX, maxX := floats.Min(xs), floats.Max(xs)
	if minX == maxX {
		res.Outcome = OutcomeDegenerate
		return res
	}

	if floats.Equal(xs, ys) {
		res.Outcome = OutcomeIdentical
		res.R = 1
		return res
	}

	res.Outcome = OutcomeFitted
	res.Intercept, res.Slope = stat.LinearRegression(xs, ys, nil, false)
	res.R = pearson(xs, ys)
	res.FitLine = []XY{
		{X: minX, Y: res.Intercept + res.Slope*minX},
		{X: maxX, Y: res.Intercept + res.Slope*maxX},
	}
	return res
}

// pearson expects x to vary. A constant y has no defined r; it is reported as 0.
func pearson(xs, ys []float64) float64 {
	if floats.Min(ys) == floats.Max(ys) {
		return 0
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) {
		return 0
	}
	return math.Max(-1, math.Min(1, r))
}

func align(x, y []series.Point, alignment Alignment) ([]float64, []float64) {
	if alignment == AlignPosition {
		n := min(len(x), len(y))
		return series.Values(x[:n]), series.Values(y[:n])
	}

	pending := make(map[time.Time][]float64, len(y))
	for _, p := range y {
		key := p.Timestamp.UTC()
		pending[key] = append(pending[key], p.Value)
	}

	xs := make([]float64, 0, min(len(x), len(y)))
	ys := make([]float64, 0, min(len(x), len(y)))
	for _, p := range x {
		key := p.Timestamp.UTC()
		queue := pending[key]
		if len(queue) == 0 {
			continue
		}
		xs = append(xs, p.Value)
		ys = append(ys, queue[0])
		pending[key] = queue[1:]
	}
	return xs, ys
}

// Strength is the verbal reading of |r|.
type Strength string

const (
	VeryStrong     Strength = "very strong"
	Strong         Strength = "strong"
	Moderate       Strength = "moderate"
	Weak           Strength = "weak"
	VeryWeakOrNone Strength = "very weak or none"
)

func Interpret(r float64) Strength {
	abs := math.Abs(r)
	switch {
	case abs >= 0.9:
		return VeryStrong
	case abs >= 0.7:
		return Strong
	case abs >= 0.5:
		return Moderate
	case abs >= 0.3:
		return Weak
	default:
		return VeryWeakOrNone
	}
}

// Describe renders the text shown under the scatter plot.
func Describe(res Result) string {
	switch res.Outcome {
	case OutcomeEmpty:
		return "No paired values to correlate"
	case OutcomeDegenerate:
		return "Cannot calculate a linear regression if all x values are identical"
	default:
		return fmt.Sprintf("R Score Interpretation: %s (r = %.2f)", Interpret(res.R), res.R)
	}
}
