// Package huangpohl implements table-driven secondary e± production in the style of
// Huang & Pohl (2007): dσ/dT is read from a precomputed grid and interpolated.
package huangpohl

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/interp"

	"github.com/gcrlab/xsecs/internal/domain"
	"github.com/gcrlab/xsecs/internal/ports"
)

// Leptons interpolates a LeptonTable. It is immutable after New.
type Leptons struct {
	product domain.PID

	logTp   []float64
	tlMin   float64
	tlMax   float64
	spectra map[domain.Reaction][]interp.PiecewiseLinear
}

var _ ports.SecondaryLeptons = (*Leptons)(nil)

// New prepares per-row interpolants in log10(T_lepton) for every tabulated reaction.
func New(table domain.LeptonTable) (*Leptons, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}

	logTl := log10All(table.LeptonEnergies)
	l := &Leptons{
		product: table.Lepton,
		logTp:   log10All(table.ProjectileEnergies),
		tlMin:   table.LeptonEnergies[0],
		tlMax:   table.LeptonEnergies[len(table.LeptonEnergies)-1],
		spectra: make(map[domain.Reaction][]interp.PiecewiseLinear, len(table.Sigma)),
	}

	for r, rows := range table.Sigma {
		fits := make([]interp.PiecewiseLinear, len(rows))
		for i, row := range rows {
			if err := fits[i].Fit(logTl, row); err != nil {
				return nil, &domain.OpError{
					Op:   "huangpohl.new",
					Kind: domain.KindInvalidConfig,
					Err:  err,
				}
			}
		}
		l.spectra[r] = fits
	}
	return l, nil
}

func (l *Leptons) Product() domain.PID { return l.product }

// Get returns dσ/dT in mbarn/GeV. Lepton energies outside the table give 0; projectile
// energies outside the table are an error.
func (l *Leptons) Get(projectile domain.PID, target domain.Target, tProj, tLepton float64) (float64, error) {
	fits, ok := l.spectra[domain.Reaction{Projectile: projectile, Target: target}]
	if !ok {
		return 0, &domain.OpError{
			Op:   "huangpohl.get",
			Kind: domain.KindUnsupported,
			Err:  unsupported(projectile, target),
		}
	}
	if !(tProj > 0) || math.IsInf(tProj, 0) {
		return 0, domain.OutOfRange("huangpohl.get", "projectile energy %g GeV/n", tProj)
	}
	if !(tLepton > 0) || math.IsInf(tLepton, 0) {
		return 0, domain.OutOfRange("huangpohl.get", "lepton energy %g GeV", tLepton)
	}

	lt := math.Log10(tProj)
	first, last := l.logTp[0], l.logTp[len(l.logTp)-1]
	if lt < first || lt > last {
		return 0, domain.OutOfRange("huangpohl.get", "projectile energy %g GeV/n outside [%g, %g]",
			tProj, math.Pow(10, first), math.Pow(10, last))
	}
	if tLepton < l.tlMin || tLepton > l.tlMax {
		return 0, nil
	}

	hi := sort.SearchFloat64s(l.logTp, lt)
	if hi == 0 {
		hi = 1
	}
	lo := hi - 1

	x := math.Log10(tLepton)
	s0 := fits[lo].Predict(x)
	s1 := fits[hi].Predict(x)
	f := (lt - l.logTp[lo]) / (l.logTp[hi] - l.logTp[lo])

	return math.Max(s0+f*(s1-s0), 0), nil
}

func log10All(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = math.Log10(x)
	}
	return out
}
