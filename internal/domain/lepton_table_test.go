package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validLeptonTable() LeptonTable {
	return LeptonTable{
		Lepton:             Positron,
		ProjectileEnergies: []float64{10, 100},
		LeptonEnergies:     []float64{1, 2, 4},
		Sigma: map[Reaction][][]float64{
			{Projectile: H, Target: TargetH}: {{3, 2, 1}, {6, 4, 2}},
		},
	}
}

func TestLeptonTableValidate(t *testing.T) {
	require.NoError(t, validLeptonTable().Validate())
}

func TestLeptonTableValidate_Rejects(t *testing.T) {
	cases := map[string]func(*LeptonTable){
		"not lepton":     func(lt *LeptonTable) { lt.Lepton = He },
		"short axis":     func(lt *LeptonTable) { lt.ProjectileEnergies = []float64{10} },
		"unordered axis": func(lt *LeptonTable) { lt.LeptonEnergies = []float64{1, 4, 2} },
		"negative axis":  func(lt *LeptonTable) { lt.LeptonEnergies = []float64{-1, 2, 4} },
		"no reactions":   func(lt *LeptonTable) { lt.Sigma = nil },
		"ragged row": func(lt *LeptonTable) {
			lt.Sigma = map[Reaction][][]float64{{Projectile: H, Target: TargetH}: {{3, 2}, {6, 4, 2}}}
		},
		"negative value": func(lt *LeptonTable) {
			lt.Sigma = map[Reaction][][]float64{{Projectile: H, Target: TargetH}: {{3, 2, -1}, {6, 4, 2}}}
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			lt := validLeptonTable()
			mutate(&lt)
			err := lt.Validate()
			require.Error(t, err)
			assert.True(t, IsKind(err, KindInvalidConfig))
		})
	}
}

func TestReactionString(t *testing.T) {
	assert.Equal(t, "He+H_ISM", Reaction{Projectile: He, Target: TargetH}.String())
}
