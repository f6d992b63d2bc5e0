package tui

import (
	"io"
	"log/slog"

	"github.com/gcrlab/xsecs/internal/ports"
)

// Deps are the collaborators the TUI needs before a workspace is known. Everything
// workspace-bound (specs, store, providers) is built per command from the workspace config.
type Deps struct {
	WorkspaceLocator     ports.WorkspaceLocator
	WorkspaceInitializer ports.WorkspaceInitializer

	Logger *slog.Logger
	Debug  bool
}

func (d Deps) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return d.Logger
}
