package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gcrlab/xsecs/internal/domain"
	"github.com/gcrlab/xsecs/internal/infra/leptontable"
	"github.com/gcrlab/xsecs/internal/infra/tablespec"
	"github.com/gcrlab/xsecs/internal/infra/tablestore"
	"github.com/gcrlab/xsecs/internal/infra/workspacefinder"
	"github.com/gcrlab/xsecs/internal/usecase"
	"github.com/gcrlab/xsecs/internal/xsecs"
)

func cmdRefreshWorkspace(deps Deps) tea.Cmd {
	return func() tea.Msg {
		wd, err := os.Getwd()
		if err != nil {
			return workspaceRefreshedMsg{cwd: "", found: false, err: fmt.Errorf("getwd: %w", err)}
		}
		if deps.WorkspaceLocator == nil {
			return workspaceRefreshedMsg{cwd: wd, found: false, err: errors.New("WorkspaceLocator is nil")}
		}

		root, findErr := deps.WorkspaceLocator.FindRoot(wd)
		if findErr != nil {
			return workspaceRefreshedMsg{cwd: wd, found: false, err: findErr}
		}

		return workspaceRefreshedMsg{cwd: wd, found: true, root: root, err: nil}
	}
}

func cmdInitWorkspaceHere(deps Deps, root string) tea.Cmd {
	return func() tea.Msg {
		if deps.WorkspaceInitializer == nil {
			return initWorkspaceDoneMsg{root: root, err: errors.New("WorkspaceInitializer is nil")}
		}

		err := usecase.NewInitWorkspace(deps.WorkspaceInitializer).Execute(root, false)
		return initWorkspaceDoneMsg{root: root, err: err}
	}
}

func newSpecLoader(cfg domain.Config) *tablespec.Loader {
	return tablespec.NewLoader(
		tablespec.WithTablesDir(cfg.Paths.TablesDir),
		tablespec.WithDefaults(cfg.Defaults),
	)
}

func cmdLoadTables(root string) tea.Cmd {
	return func() tea.Msg {
		cfg, err := workspacefinder.LoadConfig(root)
		if err != nil {
			return tablesLoadedMsg{root: root, err: err}
		}

		refs, err := newSpecLoader(cfg).ListTableSpecs(root)
		return tablesLoadedMsg{root: root, refs: refs, err: err}
	}
}

func cmdLoadRuns(root string) tea.Cmd {
	return func() tea.Msg {
		cfg, err := workspacefinder.LoadConfig(root)
		if err != nil {
			return runsLoadedMsg{root: root, err: err}
		}

		refs, err := tablestore.NewJSONStore(root, cfg).ListTables()
		return runsLoadedMsg{root: root, refs: refs, err: err}
	}
}

func cmdLoadRun(root, id string) tea.Cmd {
	return func() tea.Msg {
		cfg, err := workspacefinder.LoadConfig(root)
		if err != nil {
			return runLoadedMsg{id: id, err: err}
		}

		a, _, err := tablestore.NewJSONStore(root, cfg).LoadTable(id)
		return runLoadedMsg{id: id, artifact: a, err: err}
	}
}

func cmdLoadModels(root string) tea.Cmd {
	return func() tea.Msg {
		cfg, err := workspacefinder.LoadConfig(root)
		return modelsLoadedMsg{root: root, models: cfg.Models, err: err}
	}
}

func listenRunner(ch <-chan runnerDoneMsg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return runnerDoneMsg{err: errors.New("runner channel closed")}
		}
		return msg
	}
}

// startRunAsync computes the table spec at specPath in the background and saves it.
func startRunAsync(
	workspaceRoot, specPath string,
	log *slog.Logger,
	debug bool,
) (chan runnerDoneMsg, tea.Cmd) {
	ch := make(chan runnerDoneMsg, 1)

	if log == nil {
		log = slog.Default()
	}

	go func() {
		defer close(ch)

		log.Info("tui.run.start",
			"workspace", workspaceRoot,
			"spec_path", specPath,
			"debug", debug,
		)

		cfg, err := workspacefinder.LoadConfig(workspaceRoot)
		if err != nil {
			log.Error("tui.run.load_config.failed", "err", err)
			ch <- runnerDoneMsg{err: err}
			return
		}

		x := xsecs.New(
			xsecs.WithLeptonTables(leptontable.NewSource(workspaceRoot, cfg.Data)),
			xsecs.WithLogger(log),
		)
		store := tablestore.NewJSONStore(workspaceRoot, cfg, tablestore.WithIndex(true), tablestore.WithLogger(log))

		uc := usecase.NewRunTable(newSpecLoader(cfg), x,
			usecase.WithModels(cfg.Models),
			usecase.WithStore(store),
			usecase.WithRunLogger(log),
		)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		a, id, execErr := uc.Execute(ctx, specPath)

		if execErr != nil {
			log.Error("tui.run.failed", "err", execErr, "saved_id", id)
		} else {
			log.Info("tui.run.ok", "saved_id", id, "failed_checks", a.FailedChecks())
		}

		if debug {
			for _, c := range a.Checks {
				log.Debug("tui.run.check",
					"name", c.Name,
					"column", c.Column,
					"passed", c.Passed,
					"message", c.Message,
				)
			}
		}

		ch <- runnerDoneMsg{artifact: a, id: id, err: execErr}
	}()

	return ch, listenRunner(ch)
}
