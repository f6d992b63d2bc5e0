package usecase

import (
	"context"

	"github.com/gcrlab/xsecs/internal/domain"
	"github.com/gcrlab/xsecs/internal/ports"
)

type ValidateTable struct {
	specs  ports.TableSpecLoader
	xsecs  ports.Xsecs
	models domain.ModelsConfig
}

func NewValidateTable(specs ports.TableSpecLoader, x ports.Xsecs, models domain.ModelsConfig) *ValidateTable {
	return &ValidateTable{specs: specs, xsecs: x, models: models}
}

// Execute loads the table spec, resolves its model and builds the provider without evaluating it.
// It returns the table spec with Model filled in.
func (uc *ValidateTable) Execute(ctx context.Context, specPath string) (domain.TableSpec, error) {
	spec, err := uc.specs.LoadTableSpec(specPath)
	if err != nil {
		return domain.TableSpec{}, err
	}
	if err := ctx.Err(); err != nil {
		return spec, err
	}

	spec, err = selectModel(uc.xsecs, uc.models, spec)
	if err != nil {
		return spec, err
	}

	switch spec.Channel {
	case domain.ChannelSecondaryLeptons:
		_, err = uc.xsecs.CreateSecondaryLeptons(spec.Product)
	case domain.ChannelTotalInelastic:
		_, err = uc.xsecs.CreateTotalInelastic()
	}
	return spec, err
}
