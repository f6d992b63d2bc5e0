package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gcrlab/xsecs/internal/infra/fsworkspace"
	"github.com/gcrlab/xsecs/internal/infra/logger"
	"github.com/gcrlab/xsecs/internal/infra/workspacefinder"
	"github.com/gcrlab/xsecs/internal/ui/tui"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool
	var cleanup func() error

	cmd := &cobra.Command{
		Use:          "xsecs",
		Short:        "xsecs: cosmic-ray production cross sections",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			cleanup = setupLogging(debug)
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if cleanup != nil {
				return cleanup()
			}
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			deps := tui.Deps{
				WorkspaceLocator:     workspacefinder.NewFinder(),
				WorkspaceInitializer: fsworkspace.NewInitializer(),
				Logger:               logger.L(),
				Debug:                debug,
			}

			return tui.Run(deps)
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable verbose logging to .xsecs/logs/xsecs.log (XSECS_LOG_LEVEL overrides the level)")

	cmd.AddCommand(
		leptonsCmd(),
		inelasticCmd(),
		runCmd(),
		validateCmd(),
		tablesCmd(),
		runsCmd(),
		modelsCmd(),
		initCmd(),
		versionCmd(),
	)
	return cmd
}

// setupLogging logs into the enclosing workspace, or the working directory when there is none.
func setupLogging(debug bool) func() error {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	wd, _ = filepath.Abs(wd)

	root, ferr := workspacefinder.NewFinder().FindRoot(wd)
	if ferr != nil || root == "" {
		if !debug {
			// Outside a workspace only --debug creates a log directory.
			return nil
		}
		root = wd
	}

	cleanup, err := logger.Setup(logger.Config{
		Root:  root,
		Debug: debug,
		Level: os.Getenv("XSECS_LOG_LEVEL"),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "xsecs: logging disabled: %v\n", err)
	}
	return cleanup
}
