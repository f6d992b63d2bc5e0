package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gcrlab/xsecs/internal/domain"
	"github.com/gcrlab/xsecs/internal/infra/logger"
	"github.com/gcrlab/xsecs/internal/usecase"
)

// gridFlags are shared by the ad-hoc tabulation commands.
type gridFlags struct {
	min, max, factor float64
}

func (g *gridFlags) register(c *cobra.Command, def domain.EnergyGrid, unit string) {
	c.Flags().Float64Var(&g.min, "min", def.Min, "First grid energy ("+unit+")")
	c.Flags().Float64Var(&g.max, "max", def.Max, "Grid upper bound, exclusive ("+unit+")")
	c.Flags().Float64Var(&g.factor, "factor", def.Factor, "Multiplicative grid step (> 1)")
}

// resolve applies explicitly set flags on top of base.
func (g *gridFlags) resolve(c *cobra.Command, base domain.EnergyGrid) domain.EnergyGrid {
	if c.Flags().Changed("min") {
		base.Min = g.min
	}
	if c.Flags().Changed("max") {
		base.Max = g.max
	}
	if c.Flags().Changed("factor") {
		base.Factor = g.factor
	}
	return base
}

func leptonsCmd() *cobra.Command {
	var workspace string
	var model string
	var lepton string
	var tProj float64
	var projectiles string
	var target string
	var format string
	var save bool
	var grid gridFlags

	defaults := domain.DefaultConfig().Defaults

	c := &cobra.Command{
		Use:   "leptons",
		Short: "Tabulate secondary e± production dσ/dT for projectiles on the ISM",
		Long: "Tabulate dσ/dT (mbarn/GeV) of secondary positrons or electrons produced by\n" +
			"cosmic-ray projectiles at a fixed kinetic energy per nucleon on an ISM target.\n" +
			"Without flags this prints T, p+H_ISM and He+H_ISM for positrons at 100 GeV/n.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspaceOrDefaults(workspace)
			if err != nil {
				return err
			}

			spec := domain.TableSpec{
				Name:             "leptons",
				Channel:          domain.ChannelSecondaryLeptons,
				Product:          ws.cfg.Defaults.Lepton,
				ProjectileEnergy: ws.cfg.Defaults.ProjectileEnergy,
				Grid:             grid.resolve(cmd, ws.cfg.Defaults.Grid),
				Checks:           domain.ChecksSpec{Finite: true, NonNegative: true},
			}
			if cmd.Flags().Changed("lepton") {
				p, err := domain.ParsePID(lepton)
				if err != nil {
					return err
				}
				spec.Product = p
			}
			if cmd.Flags().Changed("tproj") {
				spec.ProjectileEnergy = tProj
			}
			if strings.TrimSpace(model) != "" {
				m, err := domain.ParseModel(domain.ChannelSecondaryLeptons, model)
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
	c.Flags().StringVarP(&model, "model", "m", "", "Production model: Kamae2006|HuangPohl2007 (default from xsecs.yaml)")
	c.Flags().StringVarP(&lepton, "lepton", "l", defaults.Lepton.String(), "Product lepton: e+|e-")
	c.Flags().Float64Var(&tProj, "tproj", defaults.ProjectileEnergy, "Projectile kinetic energy per nucleon (GeV/n)")
	c.Flags().StringVarP(&projectiles, "projectiles", "p", "p,He", "Comma-separated projectiles (p, He, C, or Z,A in brackets: [6,12])")
	c.Flags().StringVar(&target, "target", string(domain.TargetH), "ISM target: H_ISM|He_ISM")
	c.Flags().StringVar(&format, "format", "plain", "Output format: plain|pretty|json")
	c.Flags().BoolVar(&save, "save", false, "Save the table under the workspace runs/ directory")
	grid.register(c, defaults.Grid, "GeV")
	return c
}

// tabulateAndPrint computes spec, prints it and, with save, stores it in the workspace.
func tabulateAndPrint(cmd *cobra.Command, ws *workspaceCtx, spec domain.TableSpec, format string, save bool) error {
	opts := []usecase.RunOption{
		usecase.WithModels(ws.cfg.Models),
		usecase.WithRunLogger(logger.Component("cli")),
	}
	if save {
		if ws.store == nil {
			return fmt.Errorf("--save needs a workspace (tip: run `xsecs init`)")
		}
		opts = append(opts, usecase.WithStore(ws.store))
	}

	uc := usecase.NewRunTable(ws.specs, ws.xsecs, opts...)
	art, id, err := uc.ExecuteSpec(cmd.Context(), spec, "")
	if err != nil {
		if len(art.Table.Rows) > 0 {
			_ = printArtifact(cmd.OutOrStdout(), art, id, format)
		}
		return err
	}

	if err := printArtifact(cmd.OutOrStdout(), art, id, format); err != nil {
		return err
	}
	if id != "" && format == "plain" {
		fmt.Fprintf(cmd.ErrOrStderr(), "saved as %s\n", id)
	}
	return nil
}

// parseColumns builds one column per projectile, all on target. Projectiles are separated by
// commas; a Z,A pair is written in brackets: "p,He,[6,12]".
func parseColumns(projectiles, target string) ([]domain.Column, error) {
	tgt, err := domain.ParseTarget(target)
	if err != nil {
		return nil, err
	}

	var cols []domain.Column
	for _, tok := range splitProjectiles(projectiles) {
		p, err := domain.ParsePID(tok)
		if err != nil {
			return nil, err
		}
		if !p.IsNucleus() {
			return nil, domain.InvalidParticle("cli.columns", "projectile %s is not a nucleus", p)
		}
		cols = append(cols, domain.Column{Projectile: p, Target: tgt})
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("at least one projectile is required")
	}
	return cols, nil
}

func splitProjectiles(s string) []string {
	var out []string
	var cur strings.Builder
	depth := 0
	flush := func() {
		if t := strings.TrimSpace(cur.String()); t != "" {
			out = append(out, t)
		}
		cur.Reset()
	}
	for _, r := range s {
		switch {
		case r == '[':
			depth++
		case r == ']':
			if depth > 0 {
				depth--
			}
		case r == ',' && depth == 0:
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return out
}
