package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gcrlab/xsecs/internal/domain"
)

func modelsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "models",
		Short: "Show the available cross-section models",
	}

	c.AddCommand(modelsListCmd())
	return c
}

func modelsListCmd() *cobra.Command {
	var workspace string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List models per channel; * marks the configured one",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspaceOrDefaults(workspace)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, ch := range []domain.Channel{domain.ChannelSecondaryLeptons, domain.ChannelTotalInelastic} {
				configured := ws.cfg.Models.Model(ch)
				if configured == "" {
					configured = domain.DefaultModel(ch)
				}

				fmt.Fprintf(out, "%s:\n", ch)
				for _, m := range domain.KnownModels(ch) {
					mark := " "
					if m == configured {
						mark = "*"
					}
					fmt.Fprintf(out, "  %s %s\n", mark, m)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; built-in defaults when none is found)")
	return cmd
}
