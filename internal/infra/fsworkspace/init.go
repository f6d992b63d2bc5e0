package fsworkspace

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gcrlab/xsecs/internal/domain"
	"github.com/gcrlab/xsecs/internal/infra/logger"
	"github.com/gcrlab/xsecs/internal/ports"
)

const gitignoreHeader = "# xsecs"

// Initializer lays out a new xsecs workspace on disk: the directories named by the default
// configuration, the embedded xsecs.yaml and table specs, and .gitignore entries.
type Initializer struct {
	cfg domain.Config
}

func NewInitializer() *Initializer {
	return &Initializer{cfg: domain.DefaultConfig()}
}

var _ ports.WorkspaceInitializer = (*Initializer)(nil)

func (i *Initializer) Init(spec domain.WorkspaceSpec, force bool) error {
	root := filepath.Clean(spec.Root)

	for _, d := range i.dirs() {
		p := filepath.Join(root, filepath.FromSlash(d))
		if err := os.MkdirAll(p, 0o755); err != nil {
			return initErr(p, err)
		}
	}

	if err := ensureGitignore(root); err != nil {
		return initErr(filepath.Join(root, ".gitignore"), err)
	}

	return copyTemplates(root, force)
}

func (i *Initializer) dirs() []string {
	return []string{
		i.cfg.Paths.TablesDir,
		i.cfg.Data.Dir,
		i.cfg.Paths.RunsDir,
		logger.DirName,
	}
}

// copyTemplates writes every embedded template under root. Existing files are kept unless force.
func copyTemplates(root string, force bool) error {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		return initErr("templates", err)
	}

	return fs.WalkDir(sub, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		dst := filepath.Join(root, filepath.FromSlash(p))
		if !force && exists(dst) {
			return nil
		}

		b, err := fs.ReadFile(sub, p)
		if err != nil {
			return initErr(path.Join("templates", p), err)
		}
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return initErr(dst, err)
		}
		if err := os.WriteFile(dst, b, 0o644); err != nil {
			return initErr(dst, err)
		}
		return nil
	})
}

func exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

func initErr(path string, err error) error {
	return &domain.OpError{
		Op:   "fsworkspace.init",
		Kind: domain.KindExecution,
		Path: path,
		Err:  err,
	}
}

// gitignoreEntries keeps computed tables, logs and compressed data files out of version control.
func gitignoreEntries() []string {
	cfg := domain.DefaultConfig()
	return []string{
		cfg.Paths.RunsDir + "/",
		strings.SplitN(logger.DirName, "/", 2)[0] + "/",
		cfg.Data.Dir + "/*.gz",
	}
}

// ensureGitignore creates root/.gitignore or appends the entries it lacks under a header.
func ensureGitignore(root string) error {
	p := filepath.Join(root, ".gitignore")

	b, err := os.ReadFile(p)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	existing := string(b)

	present := map[string]bool{}
	for _, line := range strings.Split(existing, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			present[t] = true
		}
	}

	var add []string
	if !present[gitignoreHeader] {
		add = append(add, gitignoreHeader)
	}
	missing := 0
	for _, e := range gitignoreEntries() {
		if !present[e] {
			add = append(add, e)
			missing++
		}
	}
	if missing == 0 {
		return nil
	}

	var out strings.Builder
	out.WriteString(existing)
	if existing != "" {
		if !strings.HasSuffix(existing, "\n") {
			out.WriteByte('\n')
		}
		out.WriteByte('\n')
	}
	out.WriteString(strings.Join(add, "\n"))
	out.WriteByte('\n')

	return os.WriteFile(p, []byte(out.String()), 0o644)
}
