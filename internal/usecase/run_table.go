package usecase

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/gcrlab/xsecs/internal/domain"
	"github.com/gcrlab/xsecs/internal/ports"
	"github.com/gcrlab/xsecs/internal/usecase/check"
	"github.com/google/uuid"
)

// RunTable loads a table spec, computes it, checks it and optionally stores the artifact.
type RunTable struct {
	specs  ports.TableSpecLoader
	xsecs  ports.Xsecs
	models domain.ModelsConfig
	store  ports.ArtifactStore
	log    *slog.Logger
	now    func() time.Time
	newID  func() string
}

type RunOption func(*RunTable)

// WithStore persists every successful run. A nil store disables persistence.
func WithStore(s ports.ArtifactStore) RunOption {
	return func(uc *RunTable) { uc.store = s }
}

// WithModels sets the configured model per channel, used when a spec has no override.
func WithModels(m domain.ModelsConfig) RunOption {
	return func(uc *RunTable) { uc.models = m }
}

func WithRunLogger(l *slog.Logger) RunOption {
	return func(uc *RunTable) {
		if l != nil {
			uc.log = l
		}
	}
}

// WithClock is useful for tests.
func WithClock(now func() time.Time) RunOption {
	return func(uc *RunTable) { uc.now = now }
}

func NewRunTable(specs ports.TableSpecLoader, x ports.Xsecs, opts ...RunOption) *RunTable {
	uc := &RunTable{
		specs:  specs,
		xsecs:  x,
		models: domain.DefaultConfig().Models,
		log:    slog.New(slog.NewJSONHandler(io.Discard, nil)),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute runs the table spec at specPath. The returned id is empty when no store is configured.
func (uc *RunTable) Execute(ctx context.Context, specPath string) (domain.TableArtifact, string, error) {
	spec, err := uc.specs.LoadTableSpec(specPath)
	if err != nil {
		return domain.TableArtifact{}, "", err
	}
	return uc.ExecuteSpec(ctx, spec, specPath)
}

// ExecuteSpec runs an already loaded spec. specPath is recorded in the artifact only.
// When saving fails the computed artifact is still returned with the error.
func (uc *RunTable) ExecuteSpec(ctx context.Context, spec domain.TableSpec, specPath string) (domain.TableArtifact, string, error) {
	art := domain.TableArtifact{
		ID:        uc.newID(),
		Name:      spec.Name,
		SpecPath:  specPath,
		StartedAt: uc.now(),
	}

	if err := ctx.Err(); err != nil {
		art.EndedAt = uc.now()
		return art, "", err
	}

	spec, err := selectModel(uc.xsecs, uc.models, spec)
	if err != nil {
		art.EndedAt = uc.now()
		uc.log.Warn("table.run.failed", "table", spec.Name, "err", err)
		return art, "", err
	}

	uc.log.Info("table.run.start",
		"table", spec.Name,
		"channel", spec.Channel,
		"model", spec.Model,
		"points", spec.Grid.Len(),
	)

	table, err := NewTabulate(uc.xsecs, WithTabulateLogger(uc.log)).Execute(ctx, spec)
	art.EndedAt = uc.now()
	if err != nil {
		uc.log.Warn("table.run.failed", "table", spec.Name, "model", spec.Model, "err", err)
		return art, "", err
	}

	art.Table = table
	art.Checks = check.Evaluate(spec.Checks, table)

	uc.log.Info("table.run.finished",
		"table", spec.Name,
		"rows", len(table.Rows),
		"failed_checks", art.FailedChecks(),
		"duration_ms", art.EndedAt.Sub(art.StartedAt).Milliseconds(),
	)

	if uc.store == nil {
		return art, "", nil
	}

	id, err := uc.store.SaveTable(art)
	if err != nil {
		uc.log.Error("table.run.save_failed", "table", spec.Name, "err", err)
		return art, "", err
	}
	uc.log.Info("table.run.saved", "table", spec.Name, "id", id)
	return art, id, nil
}
