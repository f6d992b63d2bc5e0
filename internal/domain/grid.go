package domain

import (
	"fmt"
	"math"
)

// EnergyGrid is a geometric sequence Min, Min·Factor, Min·Factor², … bounded above by Max
// (exclusive). Energies are in GeV.
type EnergyGrid struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Factor float64 `json:"factor"`
}

// DefaultGrid is 1 GeV up to 100 GeV in 10% steps.
func DefaultGrid() EnergyGrid {
	return EnergyGrid{Min: 1, Max: 100, Factor: 1.1}
}

// MaxGridPoints bounds the size of any grid accepted by Validate.
const MaxGridPoints = 1_000_000

func (g EnergyGrid) Validate() error {
	var msg string
	switch {
	case !isFinite(g.Min) || !isFinite(g.Max) || !isFinite(g.Factor):
		msg = "grid bounds must be finite"
	case g.Min <= 0:
		msg = fmt.Sprintf("grid min must be > 0, got %g", g.Min)
	case g.Max <= g.Min:
		msg = fmt.Sprintf("grid max (%g) must be greater than min (%g)", g.Max, g.Min)
	case g.Factor <= 1:
		msg = fmt.Sprintf("grid factor must be > 1, got %g", g.Factor)
	case g.Min*g.Factor == g.Min:
		msg = fmt.Sprintf("grid factor %g does not advance from min %g", g.Factor, g.Min)
	case g.estimate() > MaxGridPoints:
		msg = fmt.Sprintf("grid exceeds %d points (min=%g max=%g factor=%g)", MaxGridPoints, g.Min, g.Max, g.Factor)
	default:
		return nil
	}
	return &OpError{
		Op:   "domain.grid",
		Kind: KindInvalidConfig,
		Err:  fmt.Errorf("%s: %w", msg, ErrInvalidConfig),
	}
}

// At returns the i-th grid energy, Min·Factor^i.
func (g EnergyGrid) At(i int) float64 {
	return g.Min * math.Pow(g.Factor, float64(i))
}

// estimate is ceil(log(Max/Min)/log(Factor)), taken as a difference of logs so a tiny Min
// does not overflow the ratio.
func (g EnergyGrid) estimate() float64 {
	return math.Ceil((math.Log(g.Max) - math.Log(g.Min)) / math.Log(g.Factor))
}

// Points returns the grid energies. An invalid grid yields nil.
func (g EnergyGrid) Points() []float64 {
	n := g.Len()
	if n == 0 {
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = g.At(i)
	}
	return out
}

// Len returns the number of points Points yields.
func (g EnergyGrid) Len() int {
	if g.Validate() != nil {
		return 0
	}
	// The log estimate can be off by one where Min·Factor^n lands next to Max.
	n := int(g.estimate())
	for n > 0 && g.At(n-1) >= g.Max {
		n--
	}
	for g.At(n) < g.Max {
		n++
	}
	return n
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
