package ports

import "github.com/gcrlab/xsecs/internal/domain"

// ArtifactStore persists computed tables for reproducibility.
type ArtifactStore interface {
	SaveTable(a domain.TableArtifact) (id string, err error)
	ListTables() ([]domain.ArtifactRef, error)
	LoadTable(id string) (domain.TableArtifact, []byte, error)
}
