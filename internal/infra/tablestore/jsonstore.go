package tablestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gcrlab/xsecs/internal/domain"
	"github.com/gcrlab/xsecs/internal/infra/logger"
	"github.com/gcrlab/xsecs/internal/ports"
	"github.com/google/uuid"
)

const (
	defaultRunsDir = "runs"
	indexFile      = "index.jsonl"
)

// JSONStore keeps one JSON document per computed table under <root>/<runs_dir>.
// Store IDs are file stems (<UTC timestamp>_<slug>); the document carries a UUID as well.
type JSONStore struct {
	rootDir     string
	runsDirName string
	writeIndex  bool
	now         func() time.Time
	newID       func() string
	log         *slog.Logger
}

type Option func(*JSONStore)

// WithIndex enables a simple JSONL index: runs/index.jsonl
func WithIndex(enabled bool) Option {
	return func(s *JSONStore) { s.writeIndex = enabled }
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *JSONStore) { s.now = now }
}

// WithLogger overrides the component logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *JSONStore) {
		if l != nil {
			s.log = l
		}
	}
}

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *JSONStore) { s.newID = gen }
}

func NewJSONStore(root string, cfg domain.Config, opts ...Option) *JSONStore {
	runsDir := cfg.Paths.RunsDir
	if strings.TrimSpace(runsDir) == "" {
		runsDir = defaultRunsDir
	}

	s := &JSONStore{
		rootDir:     root,
		runsDirName: runsDir,
		now:         time.Now,
		newID:       uuid.NewString,
		log:         logger.Component("tablestore"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.ArtifactStore = (*JSONStore)(nil)

func (s *JSONStore) dir() string {
	return filepath.Join(s.rootDir, s.runsDirName)
}

func (s *JSONStore) SaveTable(a domain.TableArtifact) (string, error) {
	dir := s.dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &domain.OpError{
			Op:   "tablestore.mkdir",
			Kind: domain.KindExecution,
			Path: dir,
			Err:  err,
		}
	}

	ts := a.StartedAt
	if ts.IsZero() {
		ts = s.now()
	}
	ts = ts.UTC()

	toSave := a
	if toSave.StartedAt.IsZero() {
		toSave.StartedAt = ts
	}
	if strings.TrimSpace(toSave.ID) == "" {
		toSave.ID = s.newID()
	}

	namePart := a.Name
	if strings.TrimSpace(namePart) == "" {
		namePart = strings.TrimSuffix(filepath.Base(a.SpecPath), filepath.Ext(a.SpecPath))
	}
	slug := slugify(namePart)
	if slug == "" {
		slug = "table"
	}

	id, path := uniquePath(dir, fmt.Sprintf("%s_%s", ts.Format("20060102T150405Z"), slug))

	b, err := json.MarshalIndent(toSave, "", "  ")
	if err != nil {
		return "", &domain.OpError{
			Op:   "tablestore.marshal",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	// Atomic-ish write: tmp then rename.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return "", &domain.OpError{
			Op:   "tablestore.write",
			Kind: domain.KindExecution,
			Path: tmp,
			Err:  err,
		}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", &domain.OpError{
			Op:   "tablestore.rename",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	// The artifact is saved; index errors are logged, not returned.
	if s.writeIndex {
		if err := s.appendIndex(dir, id, filepath.Base(path), toSave); err != nil {
			s.log.Warn("tablestore.index.failed", "id", id, "dir", dir, "err", err)
		}
	}

	return id, nil
}

// uniquePath returns the first free <stem>.json, <stem>_2.json, ... in dir.
func uniquePath(dir, stem string) (string, string) {
	id := stem
	for n := 2; ; n++ {
		p := filepath.Join(dir, id+".json")
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			return id, p
		}
		id = fmt.Sprintf("%s_%d", stem, n)
	}
}

type indexEntry struct {
	ID        string           `json:"id"`
	UUID      string           `json:"uuid"`
	File      string           `json:"file"`
	Name      string           `json:"name"`
	Model     domain.ModelName `json:"model"`
	StartedAt time.Time        `json:"started_at"`
}

func (s *JSONStore) appendIndex(dir, id, filename string, a domain.TableArtifact) error {
	line, err := json.Marshal(indexEntry{
		ID:        id,
		UUID:      a.ID,
		File:      filename,
		Name:      a.Name,
		Model:     a.Table.Model,
		StartedAt: a.StartedAt,
	})
	if err != nil {
		return err
	}

	indexPath := filepath.Join(dir, indexFile)
	f, err := os.OpenFile(indexPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	if _, err := f.Write(append(line, '\n')); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// ListTables returns stored artifacts, newest first. Unreadable files are skipped.
func (s *JSONStore) ListTables() ([]domain.ArtifactRef, error) {
	dir := s.dir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, &domain.OpError{
			Op:   "tablestore.list",
			Kind: domain.KindExecution,
			Path: dir,
			Err:  err,
		}
	}

	var refs []domain.ArtifactRef
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		a, _, err := readArtifact(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		refs = append(refs, domain.ArtifactRef{
			ID:        strings.TrimSuffix(e.Name(), ".json"),
			File:      e.Name(),
			Name:      a.Name,
			Model:     a.Table.Model,
			StartedAt: a.StartedAt,
		})
	}

	sort.SliceStable(refs, func(i, j int) bool {
		if !refs[i].StartedAt.Equal(refs[j].StartedAt) {
			return refs[i].StartedAt.After(refs[j].StartedAt)
		}
		return refs[i].ID > refs[j].ID
	})
	return refs, nil
}

// LoadTable loads an artifact by store ID or by the UUID inside the document.
// The raw JSON document is returned alongside the decoded artifact.
func (s *JSONStore) LoadTable(id string) (domain.TableArtifact, []byte, error) {
	id = strings.TrimSuffix(strings.TrimSpace(id), ".json")
	if id == "" || strings.ContainsAny(id, `/\`) {
		return domain.TableArtifact{}, nil, &domain.OpError{
			Op:   "tablestore.load",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("invalid artifact id %q: %w", id, domain.ErrInvalidConfig),
		}
	}

	dir := s.dir()
	path := filepath.Join(dir, id+".json")
	if _, err := os.Stat(path); err == nil {
		return readArtifact(path)
	}

	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		a, raw, err := readArtifact(filepath.Join(dir, e.Name()))
		if err == nil && a.ID == id {
			return a, raw, nil
		}
	}

	return domain.TableArtifact{}, nil, &domain.OpError{
		Op:   "tablestore.load",
		Kind: domain.KindNotFound,
		Path: path,
		Err:  domain.ErrNotFound,
	}
}

func readArtifact(path string) (domain.TableArtifact, []byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.TableArtifact{}, nil, &domain.OpError{
			Op:   "tablestore.read",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}
	var a domain.TableArtifact
	if err := json.Unmarshal(b, &a); err != nil {
		return domain.TableArtifact{}, nil, &domain.OpError{
			Op:   "tablestore.decode",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}
	return a, b, nil
}

// slugify produces a safe filename component.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))

	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			// '+', spaces and anything else collapse into one dash
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}
