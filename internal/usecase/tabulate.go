package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/gcrlab/xsecs/internal/domain"
	"github.com/gcrlab/xsecs/internal/ports"
	"golang.org/x/sync/errgroup"
)

// Tabulate evaluates a TableSpec over its grid with providers from the factory's current models.
type Tabulate struct {
	factory ports.XsecFactory
	log     *slog.Logger
}

type TabulateOption func(*Tabulate)

func WithTabulateLogger(l *slog.Logger) TabulateOption {
	return func(uc *Tabulate) {
		if l != nil {
			uc.log = l
		}
	}
}

func NewTabulate(f ports.XsecFactory, opts ...TabulateOption) *Tabulate {
	uc := &Tabulate{
		factory: f,
		log:     slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// pointFunc evaluates one column at grid energy x.
type pointFunc func(c domain.Column, x float64) (float64, error)

// Execute returns one row per grid point and one value per column. Columns run concurrently;
// the first failure cancels the others.
func (uc *Tabulate) Execute(ctx context.Context, spec domain.TableSpec) (domain.Table, error) {
	if err := spec.Validate(); err != nil {
		return domain.Table{}, err
	}

	table, eval, err := uc.prepare(spec)
	if err != nil {
		return domain.Table{}, err
	}

	xs := spec.Grid.Points()
	uc.log.Debug("table.tabulate.start",
		"channel", spec.Channel,
		"model", spec.Model,
		"columns", len(spec.Columns),
		"points", len(xs),
	)

	values := make([][]float64, len(spec.Columns))
	g, gctx := errgroup.WithContext(ctx)
	for i, c := range spec.Columns {
		i, c := i, c
		g.Go(func() error {
			out := make([]float64, len(xs))
			for j, x := range xs {
				if err := gctx.Err(); err != nil {
					return err
				}
				v, err := eval(c, x)
				if err != nil {
					return pointErr(c, x, err)
				}
				out[j] = v
			}
			values[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.Table{}, &domain.OpError{
				Op:   "usecase.tabulate",
				Kind: domain.KindExecution,
				Err:  ctxErr,
			}
		}
		return domain.Table{}, err
	}

	table.Rows = make([]domain.Row, len(xs))
	for j, x := range xs {
		row := domain.Row{X: x, Values: make([]float64, len(values))}
		for i := range values {
			row.Values[i] = values[i][j]
		}
		table.Rows[j] = row
	}
	return table, nil
}

// prepare builds the provider for the table spec's channel and the table header.
func (uc *Tabulate) prepare(spec domain.TableSpec) (domain.Table, pointFunc, error) {
	table := domain.Table{
		Channel: spec.Channel,
		Model:   spec.Model,
		Columns: append([]domain.Column(nil), spec.Columns...),
	}

	switch spec.Channel {
	case domain.ChannelSecondaryLeptons:
		p, err := uc.factory.CreateSecondaryLeptons(spec.Product)
		if err != nil {
			return domain.Table{}, nil, err
		}
		table.Product = spec.Product
		table.ProjectileEnergy = spec.ProjectileEnergy
		table.XLabel = "T_lepton [GeV]"
		table.YUnit = "mbarn/GeV"
		tProj := spec.ProjectileEnergy
		return table, func(c domain.Column, x float64) (float64, error) {
			return p.Get(c.Projectile, c.Target, tProj, x)
		}, nil

	case domain.ChannelTotalInelastic:
		p, err := uc.factory.CreateTotalInelastic()
		if err != nil {
			return domain.Table{}, nil, err
		}
		table.XLabel = "T_n [GeV/n]"
		table.YUnit = "mbarn"
		return table, func(c domain.Column, x float64) (float64, error) {
			return p.Get(c.Projectile, c.Target, x)
		}, nil
	}

	return domain.Table{}, nil, &domain.OpError{
		Op:   "usecase.tabulate",
		Kind: domain.KindUnsupported,
		Err:  fmt.Errorf("channel %q: %w", spec.Channel, domain.ErrUnsupported),
	}
}

func pointErr(c domain.Column, x float64, err error) error {
	kind := domain.KindOf(err)
	if kind == "" {
		kind = domain.KindExecution
	}
	return &domain.OpError{
		Op:   "usecase.tabulate",
		Kind: kind,
		Err:  fmt.Errorf("column %s at x=%g: %w", c.Label(), x, err),
	}
}
