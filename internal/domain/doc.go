// Package domain contains the core domain model for xsecs.
//
// The domain is transport- and persistence-agnostic: it does not depend on YAML parsing,
// the filesystem, or any particular cross-section model. Infra/adapters map into/from these types.
//
// Units are a convention rather than a type: kinetic energies are in GeV (projectile energies
// are per nucleon), differential cross sections in mbarn/GeV and total cross sections in mbarn.
package domain
