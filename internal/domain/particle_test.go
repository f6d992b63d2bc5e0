package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePID(t *testing.T) {
	cases := []struct {
		input string
		want  PID
	}{
		{"e+", Positron},
		{"positron", Positron},
		{"E-", Electron},
		{"electron", Electron},
		{"p", H},
		{"proton", H},
		{"H", H},
		{"he", He},
		{"C", PID{Z: 6, A: 12}},
		{"8, 16", PID{Z: 8, A: 16}},
		{"26,56", PID{Z: 26, A: 56}},
	}
	for _, c := range cases {
		got, err := ParsePID(c.input)
		require.NoError(t, err, "ParsePID(%q)", c.input)
		assert.Equal(t, c.want, got, "ParsePID(%q)", c.input)
	}
}

func TestParsePID_Invalid(t *testing.T) {
	for _, in := range []string{"", "xx", "3,1", "a,b", "0,0"} {
		_, err := ParsePID(in)
		require.Error(t, err, "ParsePID(%q)", in)
		assert.True(t, IsKind(err, KindInvalidParticle), "ParsePID(%q) kind: %v", in, err)
	}
}

func TestPIDString(t *testing.T) {
	assert.Equal(t, "e+", Positron.String())
	assert.Equal(t, "e-", Electron.String())
	assert.Equal(t, "H", H.String())
	assert.Equal(t, "He", He.String())
	assert.Equal(t, "Z26A56", NewPID(26, 56).String())
}

func TestPIDClassification(t *testing.T) {
	assert.True(t, Positron.IsLepton())
	assert.False(t, Positron.IsNucleus())
	assert.True(t, He.IsNucleus())
	assert.False(t, He.IsLepton())
	assert.False(t, NewPID(3, 1).IsNucleus())
}

func TestParseTarget(t *testing.T) {
	got, err := ParseTarget("He_ISM")
	require.NoError(t, err)
	assert.Equal(t, TargetHe, got)
	assert.Equal(t, He, got.PID())

	got, err = ParseTarget("")
	require.NoError(t, err)
	assert.Equal(t, TargetH, got)
	assert.Equal(t, H, got.PID())

	_, err = ParseTarget("C_ISM")
	assert.True(t, IsKind(err, KindInvalidParticle))
}
