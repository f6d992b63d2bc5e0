package usecase

import (
	"github.com/gcrlab/xsecs/internal/domain"
	"github.com/gcrlab/xsecs/internal/ports"
)

// selectModel resolves the model for spec (its own override, else the configured one),
// selects it on x and returns spec with Model filled in.
func selectModel(x ports.ModelSelector, models domain.ModelsConfig, spec domain.TableSpec) (domain.TableSpec, error) {
	model := spec.Model
	if model == "" {
		model = models.Model(spec.Channel)
	}
	if model == "" {
		model = domain.DefaultModel(spec.Channel)
	}

	var err error
	switch spec.Channel {
	case domain.ChannelSecondaryLeptons:
		err = x.SetSecondaryLeptons(string(model))
	case domain.ChannelTotalInelastic:
		err = x.SetTotalInelastic(string(model))
	default:
		return spec, spec.Validate()
	}
	if err != nil {
		return spec, err
	}

	spec.Model = model
	return spec, nil
}
