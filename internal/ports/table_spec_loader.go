package ports

import "github.com/gcrlab/xsecs/internal/domain"

// TableSpecLoader loads table specs from a source (e.g., filesystem).
type TableSpecLoader interface {
	LoadTableSpec(path string) (domain.TableSpec, error)
	ListTableSpecs(root string) ([]domain.TableSpecRef, error)
}
