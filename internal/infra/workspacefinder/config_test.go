package workspacefinder

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gcrlab/xsecs/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "ws")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "xsecs.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return root
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	// Partial config (no paths/defaults)
	root := writeConfig(t, "xsecs:\n  models:\n    secondary_leptons: huangpohl2007\n")

	cfg, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	if cfg.Models.SecondaryLeptons != domain.ModelHuangPohl2007 {
		t.Fatalf("expected HuangPohl2007, got=%s", cfg.Models.SecondaryLeptons)
	}
	if cfg.Models.TotalInelastic != domain.ModelLetaw1983 {
		t.Fatalf("expected default inelastic model, got=%s", cfg.Models.TotalInelastic)
	}
	if cfg.Paths.TablesDir != "tables" {
		t.Fatalf("expected tables dir=tables, got=%s", cfg.Paths.TablesDir)
	}
	if cfg.Paths.RunsDir != "runs" {
		t.Fatalf("expected runs dir=runs, got=%s", cfg.Paths.RunsDir)
	}
	if cfg.Defaults.Lepton != domain.Positron {
		t.Fatalf("expected default lepton e+, got=%s", cfg.Defaults.Lepton)
	}
	if cfg.Defaults.Grid != domain.DefaultGrid() {
		t.Fatalf("expected default grid, got=%+v", cfg.Defaults.Grid)
	}
}

func TestLoadConfig_FullOverride(t *testing.T) {
	root := writeConfig(t, `xsecs:
  data:
    dir: tables-data
    huangpohl2007:
      positrons: hp_pos.txt.gz
  paths:
    tables_dir: specs
    runs_dir: out
  defaults:
    lepton: electron
    projectile_energy: 20
    grid:
      min: 0.1
      factor: 1.5
`)

	cfg, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Data.Dir != "tables-data" || cfg.Data.HuangPohlPositrons != "hp_pos.txt.gz" {
		t.Fatalf("unexpected data config: %+v", cfg.Data)
	}
	if cfg.Data.HuangPohlElectrons != "huangpohl2007_electrons.txt" {
		t.Fatalf("expected default electrons file, got %q", cfg.Data.HuangPohlElectrons)
	}
	if cfg.Paths.TablesDir != "specs" || cfg.Paths.RunsDir != "out" {
		t.Fatalf("unexpected paths: %+v", cfg.Paths)
	}
	if cfg.Defaults.Lepton != domain.Electron || cfg.Defaults.ProjectileEnergy != 20 {
		t.Fatalf("unexpected defaults: %+v", cfg.Defaults)
	}
	want := domain.EnergyGrid{Min: 0.1, Max: 100, Factor: 1.5}
	if cfg.Defaults.Grid != want {
		t.Fatalf("expected grid %+v, got %+v", want, cfg.Defaults.Grid)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	cases := map[string]string{
		"unknown model": "xsecs:\n  models:\n    secondary_leptons: Galprop\n",
		"bad lepton":    "xsecs:\n  defaults:\n    lepton: He\n",
		"bad grid":      "xsecs:\n  defaults:\n    grid:\n      factor: 1\n",
		"bad energy":    "xsecs:\n  defaults:\n    projectile_energy: -3\n",
		"bad yaml":      "xsecs: [\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			root := writeConfig(t, content)
			_, err := LoadConfig(root)
			if !domain.IsKind(err, domain.KindInvalidConfig) {
				t.Fatalf("expected KindInvalidConfig, got %v", err)
			}
			if !strings.Contains(err.Error(), "xsecs.yaml") {
				t.Fatalf("expected path in error, got %v", err)
			}
		})
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(t.TempDir())
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound, got %v", err)
	}
}
