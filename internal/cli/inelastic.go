package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/gcrlab/xsecs/internal/domain"
)

func inelasticCmd() *cobra.Command {
	var workspace string
	var model string
	var projectiles string
	var target string
	var format string
	var save bool
	var grid gridFlags

	def := domain.EnergyGrid{Min: 0.1, Max: 1000, Factor: 1.5}

	c := &cobra.Command{
		Use:   "inelastic",
		Short: "Tabulate total inelastic cross sections (mbarn) vs kinetic energy per nucleon",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspaceOrDefaults(workspace)
			if err != nil {
				return err
			}

			spec := domain.TableSpec{
				Name:    "inelastic",
				Channel: domain.ChannelTotalInelastic,
				Grid:    grid.resolve(cmd, def),
				Checks:  domain.ChecksSpec{Finite: true, NonNegative: true},
			}
			if strings.TrimSpace(model) != "" {
				m, err := domain.ParseModel(domain.ChannelTotalInelastic, model)
				if err != nil {
					return err
				}
				spec.Model = m
			}

			spec.Columns, err = parseColumns(projectiles, target)
			if err != nil {
				return err
			}

			return tabulateAndPrint(cmd, ws, spec, format, save)
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; built-in defaults when none is found)")
	c.Flags().StringVarP(&model, "model", "m", "", "Total inelastic model: Letaw1983 (default from xsecs.yaml)")
	c.Flags().StringVarP(&projectiles, "projectiles", "p", "p,He,C,O", "Comma-separated projectiles")
	c.Flags().StringVar(&target, "target", string(domain.TargetH), "ISM target: H_ISM|He_ISM")
	c.Flags().StringVar(&format, "format", "plain", "Output format: plain|pretty|json")
	c.Flags().BoolVar(&save, "save", false, "Save the table under the workspace runs/ directory")
	grid.register(c, def, "GeV/n")
	return c
}
