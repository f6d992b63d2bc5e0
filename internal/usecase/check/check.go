package check

import (
	"fmt"
	"math"

	"github.com/gcrlab/xsecs/internal/domain"
)

// Finite fails when any value is NaN or ±Inf.
func Finite(column string, xs, values []float64) domain.CheckResult {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return domain.CheckResult{
				Name:    "finite",
				Column:  column,
				Passed:  false,
				Message: fmt.Sprintf("value %v at x=%g is not finite", v, at(xs, i)),
			}
		}
	}
	return domain.CheckResult{
		Name:    "finite",
		Column:  column,
		Passed:  true,
		Message: fmt.Sprintf("%d values finite", len(values)),
	}
}

func NonNegative(column string, xs, values []float64) domain.CheckResult {
	for i, v := range values {
		if v < 0 {
			return domain.CheckResult{
				Name:    "non_negative",
				Column:  column,
				Passed:  false,
				Message: fmt.Sprintf("expected >= 0, got %g at x=%g", v, at(xs, i)),
			}
		}
	}
	return domain.CheckResult{
		Name:    "non_negative",
		Column:  column,
		Passed:  true,
		Message: fmt.Sprintf("%d values >= 0", len(values)),
	}
}

func Max(column string, xs, values []float64, limit float64) domain.CheckResult {
	for i, v := range values {
		if v > limit {
			return domain.CheckResult{
				Name:    "max",
				Column:  column,
				Passed:  false,
				Message: fmt.Sprintf("expected <= %g, got %g at x=%g", limit, v, at(xs, i)),
			}
		}
	}
	return domain.CheckResult{
		Name:    "max",
		Column:  column,
		Passed:  true,
		Message: fmt.Sprintf("all values <= %g", limit),
	}
}

func Min(column string, xs, values []float64, limit float64) domain.CheckResult {
	for i, v := range values {
		if v < limit {
			return domain.CheckResult{
				Name:    "min",
				Column:  column,
				Passed:  false,
				Message: fmt.Sprintf("expected >= %g, got %g at x=%g", limit, v, at(xs, i)),
			}
		}
	}
	return domain.CheckResult{
		Name:    "min",
		Column:  column,
		Passed:  true,
		Message: fmt.Sprintf("all values >= %g", limit),
	}
}

// Evaluate applies spec to every column of t, in column order.
func Evaluate(spec domain.ChecksSpec, t domain.Table) []domain.CheckResult {
	if spec.Empty() {
		return nil
	}

	xs := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		xs[i] = r.X
	}

	var out []domain.CheckResult
	for i, c := range t.Columns {
		label := c.Label()
		values := t.Column(i)

		if spec.Finite {
			out = append(out, Finite(label, xs, values))
		}
		if spec.NonNegative {
			out = append(out, NonNegative(label, xs, values))
		}
		if spec.Max != nil {
			out = append(out, Max(label, xs, values, *spec.Max))
		}
		if spec.Min != nil {
			out = append(out, Min(label, xs, values, *spec.Min))
		}
	}
	return out
}

func at(xs []float64, i int) float64 {
	if i < len(xs) {
		return xs[i]
	}
	return math.NaN()
}
