package cli

import (
	"fmt"

	"github.com/gcrlab/xsecs/internal/usecase"
	"github.com/spf13/cobra"
)

func validateCmd() *cobra.Command {
	var workspace string
	var tableArg string

	c := &cobra.Command{
		Use:   "validate",
		Short: "Validate a table spec and resolve its model (no evaluation)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}

			specPath, err := resolveTablePath(ws, tableArg)
			if err != nil {
				return err
			}

			uc := usecase.NewValidateTable(ws.specs, ws.xsecs, ws.cfg.Models)
			spec, err := uc.Execute(cmd.Context(), specPath)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "OK %s (%s, %s, %d column(s), %d point(s))\n",
				spec.Name, spec.Channel, spec.Model, len(spec.Columns), spec.Grid.Len())
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVarP(&tableArg, "table", "t", "", "Table spec name or path (required)")

	_ = c.MarkFlagRequired("table")
	return c
}
