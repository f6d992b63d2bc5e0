// Package letaw implements the Letaw, Silberberg & Tsao (1983) total inelastic cross sections
// of nuclei on interstellar hydrogen, with a helium-target correction.
package letaw

import (
	"math"

	"github.com/gcrlab/xsecs/internal/domain"
	"github.com/gcrlab/xsecs/internal/ports"
)

// highEnergy is the energy per nucleon (GeV/n) above which the cross section is flat.
const highEnergy = 2.0

// Inelastic is the Letaw1983 total inelastic provider.
type Inelastic struct{}

var _ ports.TotalInelastic = Inelastic{}

func New() Inelastic { return Inelastic{} }

// Get returns σ_inel in mbarn for projectile on target at tn GeV/n.
func (Inelastic) Get(projectile domain.PID, target domain.Target, tn float64) (float64, error) {
	if !projectile.IsNucleus() {
		return 0, domain.InvalidParticle("letaw.get", "projectile %s is not a nucleus", projectile)
	}
	if !target.Valid() {
		return 0, domain.InvalidParticle("letaw.get", "unknown target %q", target)
	}
	if !(tn > 0) || math.IsInf(tn, 0) {
		return 0, domain.OutOfRange("letaw.get", "energy %g GeV/n", tn)
	}

	sigma := HighEnergy(projectile.A) * EnergyFactor(tn)
	if target == domain.TargetHe {
		sigma *= HeliumFactor(projectile.A)
	}
	return sigma, nil
}

// HighEnergy is the asymptotic cross section on hydrogen, mbarn.
func HighEnergy(a int) float64 {
	fa := float64(a)
	return 45 * math.Pow(fa, 0.7) * (1 + 0.016*math.Sin(5.3-2.63*math.Log(fa)))
}

// EnergyFactor is the low-energy correction, 1 above 2 GeV/n.
func EnergyFactor(tn float64) float64 {
	if tn >= highEnergy {
		return 1
	}
	e := tn * 1e3 // MeV/n
	return 1 - 0.62*math.Exp(-e/200)*math.Sin(10.9*math.Pow(e, -0.28))
}

// HeliumFactor is σ(He target)/σ(H target).
func HeliumFactor(a int) float64 {
	return 2.1 * math.Pow(float64(a), 0.055)
}
