// Package xsecs is the entry point for cross-section computations.
//
// An XSECS value holds the selected model per channel and builds providers for them:
//
//	x := xsecs.New()
//	if err := x.SetSecondaryLeptons("Kamae2006"); err != nil { ... }
//	leptons, err := x.CreateSecondaryLeptons(domain.Positron)
//	sigma, err := leptons.Get(domain.He, domain.TargetH, 100, 10) // mbarn/GeV
//
// Providers are immutable and safe for concurrent use; changing the selection afterwards
// does not affect providers already created.
package xsecs
