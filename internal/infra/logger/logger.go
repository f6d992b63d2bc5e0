// Package logger owns the process-wide slog logger. Until Setup succeeds every call is discarded,
// so library code can log unconditionally.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const (
	// DirName is the log directory, relative to the workspace root.
	DirName  = ".xsecs/logs"
	FileName = "xsecs.log"

	// Files above maxSize are moved to <file>.1 when the logger is set up.
	maxSize = 5 << 20
)

type Config struct {
	Root  string
	Debug bool

	// Level overrides the level chosen by Debug ("debug", "info", "warn", "error").
	Level string
}

// Status describes the installed file logger.
type Status struct {
	Path  string
	Since time.Time
	Level slog.Level
}

type state struct {
	log    *slog.Logger
	file   *os.File
	status Status
}

var (
	mu  sync.RWMutex
	cur = state{log: discard()}
)

// Setup opens <root>/.xsecs/logs/xsecs.log and installs a JSON logger writing to it.
// The returned cleanup closes the file and restores the discard logger.
func Setup(cfg Config) (func() error, error) {
	level, err := resolveLevel(cfg)
	if err != nil {
		reset()
		return nil, err
	}

	root := filepath.Clean(cfg.Root)
	if strings.TrimSpace(cfg.Root) == "" {
		root = "."
	}

	dir := filepath.Join(root, filepath.FromSlash(DirName))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		reset()
		return nil, err
	}

	path := filepath.Join(dir, FileName)
	rotate(path)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		reset()
		return nil, err
	}

	h := slog.NewJSONHandler(f, &slog.HandlerOptions{
		Level:       level,
		AddSource:   level <= slog.LevelDebug,
		ReplaceAttr: utcTime,
	})
	l := slog.New(h).With("pid", os.Getpid())

	mu.Lock()
	cur = state{
		log:  l,
		file: f,
		status: Status{
			Path:  path,
			Since: time.Now().UTC(),
			Level: level,
		},
	}
	mu.Unlock()

	l.Info("logger.initialized", "path", path, "level", level.String())

	cleanup := func() error {
		mu.Lock()
		defer mu.Unlock()

		var cerr error
		if cur.file != nil {
			cerr = cur.file.Close()
		}
		cur = state{log: discard()}
		return cerr
	}
	return cleanup, nil
}

func resolveLevel(cfg Config) (slog.Level, error) {
	if s := strings.TrimSpace(cfg.Level); s != "" {
		var lv slog.Level
		if err := lv.UnmarshalText([]byte(s)); err != nil {
			return 0, fmt.Errorf("log level %q: %w", s, err)
		}
		return lv, nil
	}
	if cfg.Debug {
		return slog.LevelDebug, nil
	}
	return slog.LevelInfo, nil
}

func utcTime(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
		a.Value = slog.StringValue(a.Value.Time().UTC().Format(time.RFC3339Nano))
	}
	return a
}

// rotate keeps a single previous generation.
func rotate(path string) {
	info, err := os.Stat(path)
	if err != nil || info.Size() < maxSize {
		return
	}
	_ = os.Rename(path, path+".1")
}

func L() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return cur.log
}

// Component returns L() tagged with a component attribute.
func Component(name string) *slog.Logger {
	return L().With("component", name)
}

// Current reports the installed file logger; ok is false while logging is discarded.
func Current() (Status, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return cur.status, cur.file != nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func reset() {
	mu.Lock()
	defer mu.Unlock()
	cur = state{log: discard()}
}
