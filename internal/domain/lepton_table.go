package domain

import (
	"fmt"
	"math"
)

// Reaction is a projectile hitting an ISM target.
type Reaction struct {
	Projectile PID
	Target     Target
}

func (r Reaction) String() string {
	return r.Projectile.String() + "+" + string(r.Target)
}

// LeptonTable holds dσ/dT (mbarn/GeV) for lepton production on a rectangular
// (projectile energy per nucleon, lepton kinetic energy) grid.
type LeptonTable struct {
	Lepton             PID
	ProjectileEnergies []float64 // GeV/n, strictly increasing
	LeptonEnergies     []float64 // GeV, strictly increasing

	// Sigma[r][i][j] is the value at ProjectileEnergies[i], LeptonEnergies[j].
	Sigma map[Reaction][][]float64
}

func (t LeptonTable) Validate() error {
	if !t.Lepton.IsLepton() {
		return invalidTable("lepton %s is not a lepton", t.Lepton)
	}
	if err := checkAxis("projectile energies", t.ProjectileEnergies); err != nil {
		return err
	}
	if err := checkAxis("lepton energies", t.LeptonEnergies); err != nil {
		return err
	}
	if len(t.Sigma) == 0 {
		return invalidTable("no reactions tabulated")
	}
	for r, rows := range t.Sigma {
		if len(rows) != len(t.ProjectileEnergies) {
			return invalidTable("%s: %d rows, want %d", r, len(rows), len(t.ProjectileEnergies))
		}
		for i, row := range rows {
			if len(row) != len(t.LeptonEnergies) {
				return invalidTable("%s: row %d has %d values, want %d", r, i, len(row), len(t.LeptonEnergies))
			}
			for _, v := range row {
				if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
					return invalidTable("%s: row %d has invalid value %g", r, i, v)
				}
			}
		}
	}
	return nil
}

func checkAxis(name string, xs []float64) error {
	if len(xs) < 2 {
		return invalidTable("%s: need at least 2 points, got %d", name, len(xs))
	}
	for i, x := range xs {
		if !(x > 0) || math.IsInf(x, 0) {
			return invalidTable("%s: point %d (%g) must be positive", name, i, x)
		}
		if i > 0 && x <= xs[i-1] {
			return invalidTable("%s: not strictly increasing at %d", name, i)
		}
	}
	return nil
}

func invalidTable(format string, args ...any) error {
	return &OpError{
		Op:   "domain.lepton_table",
		Kind: KindInvalidConfig,
		Err:  fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidConfig),
	}
}
