package domain

import (
	"fmt"
	"strings"
)

// Channel names a family of cross sections a model can be selected for.
type Channel string

const (
	ChannelSecondaryLeptons Channel = "secondary_leptons"
	ChannelTotalInelastic   Channel = "total_inelastic"
)

func (c Channel) Valid() bool {
	return c == ChannelSecondaryLeptons || c == ChannelTotalInelastic
}

// ModelName selects a physical model within a channel.
type ModelName string

const (
	ModelKamae2006     ModelName = "Kamae2006"
	ModelHuangPohl2007 ModelName = "HuangPohl2007"
	ModelLetaw1983     ModelName = "Letaw1983"
)

var knownModels = map[Channel][]ModelName{
	ChannelSecondaryLeptons: {ModelKamae2006, ModelHuangPohl2007},
	ChannelTotalInelastic:   {ModelLetaw1983},
}

// KnownModels returns the models available for ch, in preference order.
func KnownModels(ch Channel) []ModelName {
	in := knownModels[ch]
	out := make([]ModelName, len(in))
	copy(out, in)
	return out
}

// DefaultModel returns the first known model for ch.
func DefaultModel(ch Channel) ModelName {
	if ms := knownModels[ch]; len(ms) > 0 {
		return ms[0]
	}
	return ""
}

// ParseModel resolves s (case-insensitive) against the models known for ch.
func ParseModel(ch Channel, s string) (ModelName, error) {
	ms, ok := knownModels[ch]
	if !ok {
		return "", &OpError{
			Op:   "domain.parse_model",
			Kind: KindInvalidConfig,
			Err:  fmt.Errorf("unknown channel %q: %w", ch, ErrInvalidConfig),
		}
	}

	in := strings.TrimSpace(s)
	for _, m := range ms {
		if strings.EqualFold(string(m), in) {
			return m, nil
		}
	}

	names := make([]string, 0, len(ms))
	for _, m := range ms {
		names = append(names, string(m))
	}
	return "", &OpError{
		Op:   "domain.parse_model",
		Kind: KindUnknownModel,
		Err:  fmt.Errorf("%s model %q (options: %s): %w", ch, s, strings.Join(names, ", "), ErrUnknownModel),
	}
}
