// Package kamae implements secondary e± production in the functional form of
// Kamae et al. (2006), ApJ 647, 692.
//
// E·dσ/dE in p–p collisions is the sum of a non-diffractive double Gaussian in
// x = log10(E/GeV), a diffractive component above 5.52 GeV and, for positrons, a Δ(1232)
// resonance term. Coefficients are polynomials in y = log10(T_p/TeV). Nuclear projectiles
// and targets scale the p–p value at equal kinetic energy per nucleon.
package kamae

import (
	"math"

	"github.com/gcrlab/xsecs/internal/domain"
	"github.com/gcrlab/xsecs/internal/ports"
)

const (
	// PionThreshold is the kinetic energy (GeV) below which p–p collisions produce no pions.
	PionThreshold = 0.2797

	// MaxProjectileEnergy is the upper validity bound of the fit, 512 TeV.
	MaxProjectileEnergy = 5.12e5

	diffractiveThreshold = 5.52

	// lower edge of the non-diffractive window, log10(E/GeV)
	ndLogEnergyMin = -2.6
)

// poly is a polynomial in y, lowest order first.
type poly []float64

func (p poly) at(y float64) float64 {
	v := 0.0
	for i := len(p) - 1; i >= 0; i-- {
		v = v*y + p[i]
	}
	return v
}

type nondiffractive struct {
	lnA0, a1, a2, a3       poly
	lnA4, a5, a6, a7, a8   poly
	wLow, wHigh, highScale float64
}

func (nd nondiffractive) eval(x, y, tp float64) float64 {
	a0 := math.Exp(nd.lnA0.at(y))
	a4 := math.Exp(nd.lnA4.at(y))

	u := x - nd.a3.at(y)
	v := x - nd.a8.at(y)
	s1 := u + nd.a2.at(y)*u*u
	s2 := v + nd.a6.at(y)*v*v + nd.a7.at(y)*v*v*v

	f := a0*math.Exp(-nd.a1.at(y)*s1*s1) + a4*math.Exp(-nd.a5.at(y)*s2*s2)

	lmax := nd.highScale * math.Log10(tp)
	return f * logistic(nd.wLow*(x-ndLogEnergyMin)) * logistic(nd.wHigh*(lmax-x))
}

type diffractive struct {
	lnB0, b1, b2, b3 poly
	w                float64
}

func (d diffractive) eval(x, y, tp float64) float64 {
	b0 := math.Exp(d.lnB0.at(y))
	dx := x - d.b2.at(y)
	den := 1 + d.b3.at(y)*dx
	if den <= 0 {
		return 0
	}
	u := dx / den
	return b0 * math.Exp(-d.b1.at(y)*u*u) * logistic(d.w*(math.Log10(tp)-x))
}

type resonance struct {
	amplitude   float64 // mbarn at the peak projectile energy
	logTpCenter float64 // log10 of the peak projectile energy (GeV)
	logTpWidth  float64
	width       float64 // Gaussian coefficient in x
	center      float64 // peak position in x
	w           float64
}

func (r resonance) eval(x, tp float64) float64 {
	lt := math.Log10(tp)
	d := (lt - r.logTpCenter) / r.logTpWidth
	amp := r.amplitude * math.Exp(-d*d)
	dx := x - r.center
	return amp * math.Exp(-r.width*dx*dx) * logistic(r.w*(lt-x))
}

type params struct {
	nd    nondiffractive
	diff  diffractive
	delta *resonance
}

// edsde returns E·dσ/dE in mbarn for p–p.
func (p params) edsde(x, y, tp float64) float64 {
	sum := p.nd.eval(x, y, tp)
	if tp > diffractiveThreshold {
		sum += p.diff.eval(x, y, tp)
	}
	if p.delta != nil {
		sum += p.delta.eval(x, tp)
	}
	return math.Max(sum, 0)
}

var positronParams = params{
	nd: nondiffractive{
		lnA0: poly{3.3, 0.35, -0.04},
		a1:   poly{0.75, 0.03},
		a2:   poly{0.08},
		a3:   poly{-0.3, 0.25},
		lnA4: poly{1.6, 0.5, -0.03},
		a5:   poly{0.4},
		a6:   poly{0.1},
		a7:   poly{0.02},
		a8:   poly{0.4, 0.6},

		wLow:      15,
		wHigh:     44,
		highScale: 0.96,
	},
	diff: diffractive{
		lnB0: poly{0.9, 0.1},
		b1:   poly{0.6},
		b2:   poly{0.6, 0.9},
		b3:   poly{0.1},
		w:    20,
	},
	delta: &resonance{
		amplitude:   1.5,
		logTpCenter: -0.22,
		logTpWidth:  0.3,
		width:       2,
		center:      -1.6,
		w:           20,
	},
}

// Electrons share the positron shapes with smaller amplitudes: π⁺ dominate over π⁻ in p–p.
var electronParams = params{
	nd: nondiffractive{
		lnA0: poly{3.3 + math.Log(0.6), 0.35, -0.04},
		a1:   positronParams.nd.a1,
		a2:   positronParams.nd.a2,
		a3:   positronParams.nd.a3,
		lnA4: poly{1.6 + math.Log(0.55), 0.5, -0.03},
		a5:   positronParams.nd.a5,
		a6:   positronParams.nd.a6,
		a7:   positronParams.nd.a7,
		a8:   positronParams.nd.a8,

		wLow:      15,
		wHigh:     44,
		highScale: 0.96,
	},
	diff: diffractive{
		lnB0: poly{0.9 + math.Log(0.5), 0.1},
		b1:   positronParams.diff.b1,
		b2:   positronParams.diff.b2,
		b3:   positronParams.diff.b3,
		w:    20,
	},
}

// Leptons is the Kamae2006 secondary-lepton provider for one product species.
type Leptons struct {
	product domain.PID
	p       params
}

var _ ports.SecondaryLeptons = (*Leptons)(nil)

// New returns the provider for product, which must be e+ or e-.
func New(product domain.PID) (*Leptons, error) {
	switch product {
	case domain.Positron:
		return &Leptons{product: product, p: positronParams}, nil
	case domain.Electron:
		return &Leptons{product: product, p: electronParams}, nil
	default:
		return nil, domain.InvalidParticle("kamae.new", "product %s is not a lepton", product)
	}
}

func (l *Leptons) Product() domain.PID { return l.product }

// Get returns dσ/dT in mbarn/GeV.
func (l *Leptons) Get(projectile domain.PID, target domain.Target, tProj, tLepton float64) (float64, error) {
	if !projectile.IsNucleus() {
		return 0, domain.InvalidParticle("kamae.get", "projectile %s is not a nucleus", projectile)
	}
	if !target.Valid() {
		return 0, domain.InvalidParticle("kamae.get", "unknown target %q", target)
	}
	if !positiveFinite(tProj) {
		return 0, domain.OutOfRange("kamae.get", "projectile energy %g GeV/n", tProj)
	}
	if !positiveFinite(tLepton) {
		return 0, domain.OutOfRange("kamae.get", "lepton energy %g GeV", tLepton)
	}
	if tProj > MaxProjectileEnergy {
		return 0, domain.OutOfRange("kamae.get", "projectile energy %g GeV/n above %g", tProj, MaxProjectileEnergy)
	}
	if tProj < PionThreshold || tLepton >= tProj {
		return 0, nil
	}

	e := tLepton + domain.ElectronMass
	x := math.Log10(e)
	y := math.Log10(tProj) - 3

	return NuclearFactor(projectile.A, target.PID().A) * l.p.edsde(x, y, tProj) / e, nil
}

// NuclearFactor scales p–p production to nucleus–nucleus at equal energy per nucleon:
// (A_p^{3/8} + A_t^{3/8} − 1)².
func NuclearFactor(aProj, aTarget int) float64 {
	v := math.Pow(float64(aProj), 0.375) + math.Pow(float64(aTarget), 0.375) - 1
	return v * v
}

func logistic(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
