package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gcrlab/xsecs/internal/infra/logger"
	"github.com/gcrlab/xsecs/internal/usecase"
)

func runCmd() *cobra.Command {
	var workspace string
	var tableArg string
	var noSave bool
	var format string

	c := &cobra.Command{
		Use:   "run",
		Short: "Compute a table spec from an xsecs workspace and run its checks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}

			specPath, err := resolveTablePath(ws, tableArg)
			if err != nil {
				return err
			}

			opts := []usecase.RunOption{
				usecase.WithModels(ws.cfg.Models),
				usecase.WithRunLogger(logger.Component("cli")),
			}
			if !noSave {
				opts = append(opts, usecase.WithStore(ws.store))
			}

			uc := usecase.NewRunTable(ws.specs, ws.xsecs, opts...)

			art, runID, err := uc.Execute(cmd.Context(), specPath)
			if err != nil {
				// A failed save still leaves a computed table worth printing.
				if len(art.Table.Rows) > 0 {
					_ = printArtifact(cmd.OutOrStdout(), art, runID, format)
				}
				return err
			}

			if err := printArtifact(cmd.OutOrStdout(), art, runID, format); err != nil {
				return err
			}

			if fails := art.FailedChecks(); fails > 0 {
				return fmt.Errorf("table %q failed (%d failed check(s))", art.Name, fails)
			}
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVarP(&tableArg, "table", "t", "", "Table spec name or path (required)")
	c.Flags().BoolVar(&noSave, "no-save", false, "Do not save the table under runs/")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: plain|pretty|json")

	_ = c.MarkFlagRequired("table")
	return c
}
