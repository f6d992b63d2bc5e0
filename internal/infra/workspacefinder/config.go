package workspacefinder

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gcrlab/xsecs/internal/domain"
	"gopkg.in/yaml.v3"
)

// LoadConfig loads xsecs.yaml from the workspace root and applies defaults.
func LoadConfig(root string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	path := filepath.Join(root, ConfigFileName)
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	if err := apply(&cfg, y); err != nil {
		return domain.DefaultConfig(), &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}
	return cfg, nil
}

// apply overlays parsed values on top of defaults.
func apply(cfg *domain.Config, y yamlConfig) error {
	x := y.Xsecs

	if s := strings.TrimSpace(x.Models.SecondaryLeptons); s != "" {
		m, err := domain.ParseModel(domain.ChannelSecondaryLeptons, s)
		if err != nil {
			return fmt.Errorf("field models.secondary_leptons: %w", err)
		}
		cfg.Models.SecondaryLeptons = m
	}
	if s := strings.TrimSpace(x.Models.TotalInelastic); s != "" {
		m, err := domain.ParseModel(domain.ChannelTotalInelastic, s)
		if err != nil {
			return fmt.Errorf("field models.total_inelastic: %w", err)
		}
		cfg.Models.TotalInelastic = m
	}

	if x.Data.Dir != "" {
		cfg.Data.Dir = x.Data.Dir
	}
	if x.Data.HuangPohl2007.Positrons != "" {
		cfg.Data.HuangPohlPositrons = x.Data.HuangPohl2007.Positrons
	}
	if x.Data.HuangPohl2007.Electrons != "" {
		cfg.Data.HuangPohlElectrons = x.Data.HuangPohl2007.Electrons
	}

	if x.Paths.TablesDir != "" {
		cfg.Paths.TablesDir = x.Paths.TablesDir
	}
	if x.Paths.RunsDir != "" {
		cfg.Paths.RunsDir = x.Paths.RunsDir
	}

	if s := strings.TrimSpace(x.Defaults.Lepton); s != "" {
		p, err := domain.ParsePID(s)
		if err != nil {
			return fmt.Errorf("field defaults.lepton: %w", err)
		}
		if !p.IsLepton() {
			return fmt.Errorf("field defaults.lepton: %s is not a lepton: %w", p, domain.ErrInvalidConfig)
		}
		cfg.Defaults.Lepton = p
	}
	if x.Defaults.ProjectileEnergy != nil {
		cfg.Defaults.ProjectileEnergy = *x.Defaults.ProjectileEnergy
	}

	g := &cfg.Defaults.Grid
	if x.Defaults.Grid.Min != nil {
		g.Min = *x.Defaults.Grid.Min
	}
	if x.Defaults.Grid.Max != nil {
		g.Max = *x.Defaults.Grid.Max
	}
	if x.Defaults.Grid.Factor != nil {
		g.Factor = *x.Defaults.Grid.Factor
	}
	if err := g.Validate(); err != nil {
		return fmt.Errorf("field defaults.grid: %w", err)
	}
	if !(cfg.Defaults.ProjectileEnergy > 0) {
		return fmt.Errorf("field defaults.projectile_energy: must be > 0: %w", domain.ErrInvalidConfig)
	}

	return nil
}

type yamlConfig struct {
	Xsecs struct {
		Models struct {
			SecondaryLeptons string `yaml:"secondary_leptons"`
			TotalInelastic   string `yaml:"total_inelastic"`
		} `yaml:"models"`

		Data struct {
			Dir           string `yaml:"dir"`
			HuangPohl2007 struct {
				Positrons string `yaml:"positrons"`
				Electrons string `yaml:"electrons"`
			} `yaml:"huangpohl2007"`
		} `yaml:"data"`

		Paths struct {
			TablesDir string `yaml:"tables_dir"`
			RunsDir   string `yaml:"runs_dir"`
		} `yaml:"paths"`

		Defaults struct {
			Lepton           string   `yaml:"lepton"`
			ProjectileEnergy *float64 `yaml:"projectile_energy"`
			Grid             struct {
				Min    *float64 `yaml:"min"`
				Max    *float64 `yaml:"max"`
				Factor *float64 `yaml:"factor"`
			} `yaml:"grid"`
		} `yaml:"defaults"`
	} `yaml:"xsecs"`
}
