package ports

import "github.com/gcrlab/xsecs/internal/domain"

// SecondaryLeptons returns the differential production cross section dσ/dT (mbarn/GeV) of a
// lepton with kinetic energy tLepton (GeV) from a projectile with kinetic energy per nucleon
// tProj (GeV/n) hitting target. Implementations are safe for concurrent use.
type SecondaryLeptons interface {
	Get(projectile domain.PID, target domain.Target, tProj, tLepton float64) (float64, error)
}

// TotalInelastic returns the total inelastic cross section (mbarn) of projectile on target at
// kinetic energy per nucleon tn (GeV/n).
type TotalInelastic interface {
	Get(projectile domain.PID, target domain.Target, tn float64) (float64, error)
}

// XsecFactory builds providers for the currently selected models.
type XsecFactory interface {
	CreateSecondaryLeptons(product domain.PID) (SecondaryLeptons, error)
	CreateTotalInelastic() (TotalInelastic, error)
}

// ModelSelector switches the model a factory builds providers for.
type ModelSelector interface {
	SetSecondaryLeptons(name string) error
	SetTotalInelastic(name string) error
}

// LeptonTableSource loads tabulated lepton production data (e.g., from data files).
type LeptonTableSource interface {
	LoadLeptonTable(product domain.PID) (domain.LeptonTable, error)
}

// Xsecs is a factory whose models can be switched.
type Xsecs interface {
	XsecFactory
	ModelSelector
}
