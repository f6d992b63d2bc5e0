package ports

import "github.com/gcrlab/xsecs/internal/domain"

// WorkspaceLocator finds the root of the xsecs workspace enclosing startDir.
type WorkspaceLocator interface {
	FindRoot(startDir string) (string, error)
}

// WorkspaceInitializer lays out a workspace at spec.Root; existing files survive unless force.
type WorkspaceInitializer interface {
	Init(spec domain.WorkspaceSpec, force bool) error
}
