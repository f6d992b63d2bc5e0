package xsecs

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/gcrlab/xsecs/internal/domain"
	"github.com/gcrlab/xsecs/internal/ports"
	"github.com/gcrlab/xsecs/internal/xsecs/huangpohl"
	"github.com/gcrlab/xsecs/internal/xsecs/kamae"
	"github.com/gcrlab/xsecs/internal/xsecs/letaw"
)

// XSECS selects models and builds cross-section providers. Safe for concurrent use.
type XSECS struct {
	mu        sync.RWMutex
	leptons   domain.ModelName
	inelastic domain.ModelName

	tables ports.LeptonTableSource
	log    *slog.Logger
}

type Option func(*XSECS)

// WithLeptonTables sets the data source used by table-driven lepton models.
func WithLeptonTables(src ports.LeptonTableSource) Option {
	return func(x *XSECS) { x.tables = src }
}

func WithLogger(l *slog.Logger) Option {
	return func(x *XSECS) {
		if l != nil {
			x.log = l
		}
	}
}

var (
	_ ports.XsecFactory   = (*XSECS)(nil)
	_ ports.ModelSelector = (*XSECS)(nil)
	_ ports.Xsecs         = (*XSECS)(nil)
)

// New returns a facade with the default model of every channel selected.
func New(opts ...Option) *XSECS {
	x := &XSECS{
		leptons:   domain.DefaultModel(domain.ChannelSecondaryLeptons),
		inelastic: domain.DefaultModel(domain.ChannelTotalInelastic),
		log:       slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// SetSecondaryLeptons selects the secondary-lepton model. On error the selection is unchanged.
func (x *XSECS) SetSecondaryLeptons(name string) error {
	m, err := domain.ParseModel(domain.ChannelSecondaryLeptons, name)
	if err != nil {
		return err
	}
	x.mu.Lock()
	x.leptons = m
	x.mu.Unlock()
	x.log.Debug("xsecs.model.selected", "channel", domain.ChannelSecondaryLeptons, "model", m)
	return nil
}

// SetTotalInelastic selects the total inelastic model. On error the selection is unchanged.
func (x *XSECS) SetTotalInelastic(name string) error {
	m, err := domain.ParseModel(domain.ChannelTotalInelastic, name)
	if err != nil {
		return err
	}
	x.mu.Lock()
	x.inelastic = m
	x.mu.Unlock()
	x.log.Debug("xsecs.model.selected", "channel", domain.ChannelTotalInelastic, "model", m)
	return nil
}

// Selected returns the model currently selected for ch.
func (x *XSECS) Selected(ch domain.Channel) domain.ModelName {
	x.mu.RLock()
	defer x.mu.RUnlock()
	switch ch {
	case domain.ChannelSecondaryLeptons:
		return x.leptons
	case domain.ChannelTotalInelastic:
		return x.inelastic
	}
	return ""
}

// CreateSecondaryLeptons builds a provider for product (e+ or e-) with the selected model.
func (x *XSECS) CreateSecondaryLeptons(product domain.PID) (ports.SecondaryLeptons, error) {
	if !product.IsLepton() {
		return nil, domain.InvalidParticle("xsecs.create_secondary_leptons", "product %s is not a lepton", product)
	}

	model := x.Selected(domain.ChannelSecondaryLeptons)
	switch model {
	case domain.ModelKamae2006:
		return kamae.New(product)

	case domain.ModelHuangPohl2007:
		if x.tables == nil {
			return nil, &domain.OpError{
				Op:   "xsecs.create_secondary_leptons",
				Kind: domain.KindUnsupported,
				Err:  fmt.Errorf("%s needs a lepton table source: %w", model, domain.ErrUnsupported),
			}
		}
		table, err := x.tables.LoadLeptonTable(product)
		if err != nil {
			return nil, err
		}
		x.log.Debug("xsecs.table.loaded",
			"model", model,
			"product", product.String(),
			"projectile_points", len(table.ProjectileEnergies),
			"lepton_points", len(table.LeptonEnergies),
		)
		return huangpohl.New(table)
	}

	return nil, unknownModel(domain.ChannelSecondaryLeptons, model)
}

// CreateTotalInelastic builds a provider with the selected total inelastic model.
func (x *XSECS) CreateTotalInelastic() (ports.TotalInelastic, error) {
	model := x.Selected(domain.ChannelTotalInelastic)
	if model == domain.ModelLetaw1983 {
		return letaw.New(), nil
	}
	return nil, unknownModel(domain.ChannelTotalInelastic, model)
}

func unknownModel(ch domain.Channel, m domain.ModelName) error {
	return &domain.OpError{
		Op:   "xsecs.create",
		Kind: domain.KindUnknownModel,
		Err:  fmt.Errorf("%s model %q: %w", ch, m, domain.ErrUnknownModel),
	}
}
