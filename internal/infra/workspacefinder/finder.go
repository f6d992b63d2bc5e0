package workspacefinder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gcrlab/xsecs/internal/domain"
	"github.com/gcrlab/xsecs/internal/ports"
)

const (
	// ConfigFileName marks the root of an xsecs workspace.
	ConfigFileName = "xsecs.yaml"

	// EnvWorkspace, when set, names the workspace root and disables the upward search.
	EnvWorkspace = "XSECS_WORKSPACE"
)

// Finder locates the nearest directory holding ConfigFile, starting at a directory and walking
// towards the filesystem root.
type Finder struct {
	ConfigFile string // defaults to "xsecs.yaml"

	getenv func(string) string
}

func NewFinder() *Finder {
	return &Finder{ConfigFile: ConfigFileName, getenv: os.Getenv}
}

var _ ports.WorkspaceLocator = (*Finder)(nil)

func (f *Finder) configFile() string {
	if strings.TrimSpace(f.ConfigFile) == "" {
		return ConfigFileName
	}
	return f.ConfigFile
}

func (f *Finder) FindRoot(startDir string) (string, error) {
	if f.getenv != nil {
		if env := strings.TrimSpace(f.getenv(EnvWorkspace)); env != "" {
			return f.fromEnv(env)
		}
	}

	if startDir == "" {
		return "", findErr(domain.KindInvalidConfig, "", errors.New("start directory is empty"))
	}

	dir, err := startingDir(startDir)
	if err != nil {
		return "", findErr(domain.KindExecution, startDir, err)
	}

	root, ok := walkUp(dir, func(d string) bool {
		return isFile(filepath.Join(d, f.configFile()))
	})
	if !ok {
		return "", findErr(domain.KindNotFound, dir, domain.ErrNotFound)
	}
	return root, nil
}

func (f *Finder) fromEnv(env string) (string, error) {
	abs, err := filepath.Abs(env)
	if err != nil {
		return "", findErr(domain.KindExecution, env, err)
	}
	if !isFile(filepath.Join(abs, f.configFile())) {
		return "", findErr(domain.KindNotFound, abs,
			fmt.Errorf("%s=%s has no %s: %w", EnvWorkspace, env, f.configFile(), domain.ErrNotFound))
	}
	return abs, nil
}

// startingDir makes p absolute; a file path is replaced by its directory.
func startingDir(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	if info, statErr := os.Stat(abs); statErr == nil && !info.IsDir() {
		abs = filepath.Dir(abs)
	}
	return filepath.Clean(abs), nil
}

// walkUp returns the first of dir and its ancestors for which match is true.
func walkUp(dir string, match func(string) bool) (string, bool) {
	for {
		if match(dir) {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}

func findErr(kind domain.ErrorKind, path string, err error) error {
	return &domain.OpError{
		Op:   "workspacefinder.findroot",
		Kind: kind,
		Path: path,
		Err:  err,
	}
}
