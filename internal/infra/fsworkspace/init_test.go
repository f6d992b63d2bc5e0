package fsworkspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gcrlab/xsecs/internal/domain"
	"github.com/gcrlab/xsecs/internal/infra/tablespec"
	"github.com/gcrlab/xsecs/internal/infra/workspacefinder"
)

func TestInitializer_Init_CreatesWorkspaceFiles(t *testing.T) {
	tmp := t.TempDir()

	i := NewInitializer()
	if err := i.Init(domain.WorkspaceSpec{Root: tmp}, false); err != nil {
		t.Fatalf("Init error: %v", err)
	}

	assertFileExists(t, filepath.Join(tmp, "xsecs.yaml"))
	assertFileExists(t, filepath.Join(tmp, "tables", "positrons.yaml"))
	assertFileExists(t, filepath.Join(tmp, "tables", "electrons.yaml"))
	assertFileExists(t, filepath.Join(tmp, "tables", "inelastic.yaml"))
	assertFileExists(t, filepath.Join(tmp, ".gitignore"))

	for _, d := range []string{"data", "runs", filepath.Join(".xsecs", "logs")} {
		info, err := os.Stat(filepath.Join(tmp, d))
		if err != nil || !info.IsDir() {
			t.Fatalf("expected dir %s, err=%v", d, err)
		}
	}
}

func TestInitializer_Init_TemplatesLoad(t *testing.T) {
	tmp := t.TempDir()
	if err := NewInitializer().Init(domain.WorkspaceSpec{Root: tmp}, false); err != nil {
		t.Fatalf("Init error: %v", err)
	}

	cfg, err := workspacefinder.LoadConfig(tmp)
	if err != nil {
		t.Fatalf("LoadConfig on template: %v", err)
	}
	if cfg != domain.DefaultConfig() {
		t.Fatalf("expected template config to equal defaults, got %+v", cfg)
	}

	loader := tablespec.NewLoader(tablespec.WithDefaults(cfg.Defaults))
	refs, err := loader.ListTableSpecs(tmp)
	if err != nil {
		t.Fatalf("ListTableSpecs: %v", err)
	}
	if len(refs) != 3 {
		t.Fatalf("expected 3 template tables, got %d", len(refs))
	}
	for _, r := range refs {
		if _, err := loader.LoadTableSpec(r.Path); err != nil {
			t.Fatalf("template %s does not load: %v", r.Name, err)
		}
	}

	spec, err := loader.LoadTableSpec(filepath.Join(tmp, "tables", "positrons.yaml"))
	if err != nil {
		t.Fatalf("load positrons: %v", err)
	}
	want := domain.DefaultLeptonSpec()
	if spec.Grid != want.Grid || spec.Product != want.Product || len(spec.Columns) != len(want.Columns) {
		t.Fatalf("expected positrons template to match the default table, got %+v", spec)
	}
}

func TestInitializer_Init_SkipsExistingFilesUnlessForce(t *testing.T) {
	tmp := t.TempDir()

	cfgPath := filepath.Join(tmp, "xsecs.yaml")
	if err := os.WriteFile(cfgPath, []byte("custom\n"), 0o644); err != nil {
		t.Fatalf("write existing xsecs.yaml: %v", err)
	}

	i := NewInitializer()

	if err := i.Init(domain.WorkspaceSpec{Root: tmp}, false); err != nil {
		t.Fatalf("Init (force=false) error: %v", err)
	}

	b, err := os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("read xsecs.yaml: %v", err)
	}
	if string(b) != "custom\n" {
		t.Fatalf("expected xsecs.yaml preserved, got %q", string(b))
	}

	if err := i.Init(domain.WorkspaceSpec{Root: tmp}, true); err != nil {
		t.Fatalf("Init (force=true) error: %v", err)
	}

	b, err = os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("read xsecs.yaml after force: %v", err)
	}
	if !strings.Contains(string(b), "xsecs:") {
		t.Fatalf("expected xsecs.yaml overwritten with template, got %q", string(b))
	}
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file %s, stat err=%v", path, err)
	}
}
