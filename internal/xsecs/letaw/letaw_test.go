package letaw

import (
	"math"
	"testing"

	"github.com/gcrlab/xsecs/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHighEnergyCarbon(t *testing.T) {
	want := 45 * math.Pow(12, 0.7) * (1 + 0.016*math.Sin(5.3-2.63*math.Log(12)))
	got, err := New().Get(domain.NewPID(6, 12), domain.TargetH, 10)
	require.NoError(t, err)
	assert.InDelta(t, want, got, 1e-9)
	// ~255 mb for carbon on hydrogen.
	assert.InDelta(t, 255, got, 10)
}

func TestEnergyFactor(t *testing.T) {
	assert.Equal(t, 1.0, EnergyFactor(2))
	assert.Equal(t, 1.0, EnergyFactor(100))

	e := 100.0 // MeV/n
	want := 1 - 0.62*math.Exp(-e/200)*math.Sin(10.9*math.Pow(e, -0.28))
	assert.InDelta(t, want, EnergyFactor(0.1), 1e-12)
}

func TestHeliumTarget(t *testing.T) {
	in := New()
	h, err := in.Get(domain.He, domain.TargetH, 5)
	require.NoError(t, err)
	he, err := in.Get(domain.He, domain.TargetHe, 5)
	require.NoError(t, err)
	assert.InDelta(t, HeliumFactor(4), he/h, 1e-12)
}

func TestGetErrors(t *testing.T) {
	in := New()

	_, err := in.Get(domain.Positron, domain.TargetH, 1)
	assert.True(t, domain.IsKind(err, domain.KindInvalidParticle))

	_, err = in.Get(domain.H, domain.Target("X"), 1)
	assert.True(t, domain.IsKind(err, domain.KindInvalidParticle))

	_, err = in.Get(domain.H, domain.TargetH, 0)
	assert.True(t, domain.IsKind(err, domain.KindOutOfRange))

	_, err = in.Get(domain.H, domain.TargetH, math.Inf(1))
	assert.True(t, domain.IsKind(err, domain.KindOutOfRange))
}
