package tui

import "github.com/gcrlab/xsecs/internal/domain"

type workspaceRefreshedMsg struct {
	cwd   string
	found bool
	root  string
	err   error
}

type initWorkspaceDoneMsg struct {
	root string
	err  error
}

type tablesLoadedMsg struct {
	root string
	refs []domain.TableSpecRef
	err  error
}

type runsLoadedMsg struct {
	root string
	refs []domain.ArtifactRef
	err  error
}

type runLoadedMsg struct {
	id       string
	artifact domain.TableArtifact
	err      error
}

type modelsLoadedMsg struct {
	root   string
	models domain.ModelsConfig
	err    error
}

type runnerDoneMsg struct {
	artifact domain.TableArtifact
	id       string
	err      error
}
