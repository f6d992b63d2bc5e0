package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultGridPoints(t *testing.T) {
	g := DefaultGrid()
	require.NoError(t, g.Validate())

	pts := g.Points()
	require.NotEmpty(t, pts)
	assert.Equal(t, g.Len(), len(pts))
	assert.Equal(t, 1.0, pts[0])

	// ceil(ln(100)/ln(1.1)) = 49 points in [1, 100).
	assert.Equal(t, 49, len(pts))

	for i := 1; i < len(pts); i++ {
		assert.Greater(t, pts[i], pts[i-1], "points must increase")
		assert.InDelta(t, 1.1, pts[i]/pts[i-1], 1e-12)
	}
	assert.Less(t, pts[len(pts)-1], 100.0)
}

func TestGridValidate(t *testing.T) {
	bad := []EnergyGrid{
		{Min: 0, Max: 10, Factor: 2},
		{Min: -1, Max: 10, Factor: 2},
		{Min: 10, Max: 10, Factor: 2},
		{Min: 1, Max: 10, Factor: 1},
		{Min: 1, Max: 10, Factor: 0.5},
		{Min: 1, Max: math.Inf(1), Factor: 2},
		{Min: math.NaN(), Max: 10, Factor: 2},
	}
	for _, g := range bad {
		err := g.Validate()
		require.Error(t, err, "grid %+v", g)
		assert.True(t, IsKind(err, KindInvalidConfig))
		assert.Nil(t, g.Points())
		assert.Zero(t, g.Len())
	}
}

func TestGridSinglePoint(t *testing.T) {
	g := EnergyGrid{Min: 1, Max: 1.5, Factor: 2}
	assert.Equal(t, []float64{1}, g.Points())
}

func TestGridValidate_RejectsNonAdvancingAndHugeGrids(t *testing.T) {
	cases := map[string]EnergyGrid{
		"subnormal min": {Min: 5e-324, Max: 1, Factor: 1.1},
		"factor 1+ulp":  {Min: 1, Max: 100, Factor: math.Nextafter(1, 2)},
		"over the cap":  {Min: 1, Max: 1e6, Factor: 1.00001},
	}
	for name, g := range cases {
		t.Run(name, func(t *testing.T) {
			err := g.Validate()
			require.Error(t, err)
			assert.True(t, IsKind(err, KindInvalidConfig), "got %v", err)
			assert.Zero(t, g.Len())
			assert.Nil(t, g.Points())
		})
	}
}

func TestGridLen_MatchesPoints(t *testing.T) {
	grids := []EnergyGrid{
		DefaultGrid(),
		{Min: 0.1, Max: 1000, Factor: 1.5},
		{Min: 1, Max: 8, Factor: 2},
		{Min: 1, Max: 1e6, Factor: 1.0001},
		{Min: 1e-320, Max: 1e-300, Factor: 10},
	}
	for _, g := range grids {
		require.NoError(t, g.Validate(), "grid %+v", g)
		pts := g.Points()
		require.Len(t, pts, g.Len(), "grid %+v", g)
		assert.LessOrEqual(t, len(pts), MaxGridPoints)
		assert.Equal(t, g.Min, pts[0])
		assert.Less(t, pts[len(pts)-1], g.Max)
		assert.GreaterOrEqual(t, g.At(len(pts)), g.Max)
		for i := 1; i < len(pts); i++ {
			require.Greater(t, pts[i], pts[i-1], "grid %+v at %d", g, i)
		}
	}
}

func TestGridLen_ExclusiveMax(t *testing.T) {
	// 1, 2, 4; 8 is the bound itself.
	g := EnergyGrid{Min: 1, Max: 8, Factor: 2}
	assert.Equal(t, []float64{1, 2, 4}, g.Points())
}
