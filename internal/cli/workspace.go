package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gcrlab/xsecs/internal/domain"
	"github.com/gcrlab/xsecs/internal/infra/leptontable"
	"github.com/gcrlab/xsecs/internal/infra/logger"
	"github.com/gcrlab/xsecs/internal/infra/tablespec"
	"github.com/gcrlab/xsecs/internal/infra/tablestore"
	"github.com/gcrlab/xsecs/internal/infra/workspacefinder"
	"github.com/gcrlab/xsecs/internal/ports"
	"github.com/gcrlab/xsecs/internal/xsecs"
)

type workspaceCtx struct {
	root string
	cfg  domain.Config

	specs ports.TableSpecLoader
	store ports.ArtifactStore
	xsecs *xsecs.XSECS
}

func loadWorkspace(workspaceFlag string) (*workspaceCtx, error) {
	root, err := resolveWorkspaceRoot(workspaceFlag)
	if err != nil {
		return nil, err
	}

	cfg, err := workspacefinder.LoadConfig(root)
	if err != nil {
		return nil, err
	}

	return newWorkspaceCtx(root, cfg), nil
}

// loadWorkspaceOrDefaults behaves like loadWorkspace but falls back to built-in defaults
// (no store, no data directory) when no workspace is found and none was requested.
func loadWorkspaceOrDefaults(workspaceFlag string) (*workspaceCtx, error) {
	ws, err := loadWorkspace(workspaceFlag)
	if err == nil {
		return ws, nil
	}
	if strings.TrimSpace(workspaceFlag) != "" || !domain.IsKind(err, domain.KindNotFound) {
		return nil, err
	}

	wd, _ := os.Getwd()
	ws = newWorkspaceCtx(wd, domain.DefaultConfig())
	ws.store = nil
	return ws, nil
}

func newWorkspaceCtx(root string, cfg domain.Config) *workspaceCtx {
	return &workspaceCtx{
		root: root,
		cfg:  cfg,
		specs: tablespec.NewLoader(
			tablespec.WithTablesDir(cfg.Paths.TablesDir),
			tablespec.WithDefaults(cfg.Defaults),
		),
		store: tablestore.NewJSONStore(root, cfg, tablestore.WithIndex(true)),
		xsecs: newXsecs(root, cfg),
	}
}

func newXsecs(root string, cfg domain.Config) *xsecs.XSECS {
	return xsecs.New(
		xsecs.WithLeptonTables(leptontable.NewSource(root, cfg.Data)),
		xsecs.WithLogger(logger.Component("xsecs")),
	)
}

func resolveWorkspaceRoot(workspaceFlag string) (string, error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	locator := workspacefinder.NewFinder()
	root, err := locator.FindRoot(wd)
	if err != nil {
		return "", fmt.Errorf("workspace not found from %q (tip: run `xsecs init`): %w", wd, err)
	}
	return root, nil
}

func resolveTablePath(ws *workspaceCtx, arg string) (string, error) {
	in := strings.TrimSpace(arg)
	if in == "" {
		return "", fmt.Errorf("table is required (use --table or -t)")
	}

	// If arg looks like a path (contains separators), resolve relative to workspace root.
	if looksLikePath(in) {
		p := in
		if !filepath.IsAbs(p) {
			p = filepath.Join(ws.root, p)
		}
		return filepath.Clean(p), nil
	}

	tablesDir := filepath.Join(ws.root, ws.cfg.Paths.TablesDir)

	if hasYAMLExt(in) {
		p := filepath.Join(tablesDir, in)
		if fileExists(p) {
			return p, nil
		}
	}

	p1 := filepath.Join(tablesDir, in+".yaml")
	if fileExists(p1) {
		return p1, nil
	}
	p2 := filepath.Join(tablesDir, in+".yml")
	if fileExists(p2) {
		return p2, nil
	}

	// As a last resort: match by the table spec's "name" field.
	refs, err := ws.specs.ListTableSpecs(ws.root)
	if err == nil {
		for _, r := range refs {
			if strings.EqualFold(r.Name, in) {
				return r.Path, nil
			}
		}
	}

	return "", fmt.Errorf("table %q not found in %q", in, tablesDir)
}

func looksLikePath(s string) bool {
	return strings.Contains(s, "/") || strings.Contains(s, string(filepath.Separator))
}

func hasYAMLExt(s string) bool {
	ext := strings.ToLower(filepath.Ext(s))
	return ext == ".yaml" || ext == ".yml"
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
