package leptontable

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gcrlab/xsecs/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFile_Testdata(t *testing.T) {
	tab, err := ReadFile(filepath.Join("testdata", "positrons.txt"), domain.Positron)
	require.NoError(t, err)

	assert.Equal(t, domain.Positron, tab.Lepton)
	assert.Equal(t, []float64{1, 10, 100}, tab.ProjectileEnergies)
	assert.Equal(t, []float64{0.01, 0.1, 1}, tab.LeptonEnergies)
	require.Len(t, tab.Sigma, 4)

	pp := tab.Sigma[domain.Reaction{Projectile: domain.H, Target: domain.TargetH}]
	assert.Equal(t, [][]float64{{2, 1, 0.01}, {4, 3, 0.5}, {5, 4, 2}}, pp)

	heHe := tab.Sigma[domain.Reaction{Projectile: domain.He, Target: domain.TargetHe}]
	assert.Equal(t, 12.0, heHe[2][2])
}

func TestReadFile_Gzip(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("testdata", "positrons.txt"))
	require.NoError(t, err)

	p := filepath.Join(t.TempDir(), "positrons.txt.gz")
	f, err := os.Create(p)
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write(raw)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	tab, err := ReadFile(p, domain.Positron)
	require.NoError(t, err)
	assert.Len(t, tab.ProjectileEnergies, 3)
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.txt"), domain.Positron)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindNotFound), "got %v", err)
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"too few columns": "1 0.1 1 2 3\n",
		"not a number":    "1 0.1 1 2 x 4\n",
		"ragged block":    "1 0.1 1 1 1 1\n1 1 1 1 1 1\n10 0.1 1 1 1 1\n",
		"mismatched axis": "1 0.1 1 1 1 1\n1 1 1 1 1 1\n10 0.1 1 1 1 1\n10 2 1 1 1 1\n",
		"long block":      "1 0.1 1 1 1 1\n1 1 1 1 1 1\n10 0.1 1 1 1 1\n10 1 1 1 1 1\n10 2 1 1 1 1\n",
		"single block":    "1 0.1 1 1 1 1\n1 1 1 1 1 1\n",
		"decreasing":      "10 0.1 1 1 1 1\n10 1 1 1 1 1\n1 0.1 1 1 1 1\n1 1 1 1 1 1\n",
		"negative value":  "1 0.1 1 1 1 1\n1 1 -1 1 1 1\n10 0.1 1 1 1 1\n10 1 1 1 1 1\n",
		"empty":           "# nothing here\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(content), domain.Electron)
			require.Error(t, err)
			assert.True(t, domain.IsKind(err, domain.KindInvalidConfig), "got %v", err)
		})
	}
}

func TestSource_LoadLeptonTable(t *testing.T) {
	root := t.TempDir()
	dataDir := filepath.Join(root, "data")
	require.NoError(t, os.MkdirAll(dataDir, 0o755))

	raw, err := os.ReadFile(filepath.Join("testdata", "positrons.txt"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "pos.txt"), raw, 0o644))

	src := NewSource(root, domain.DataConfig{Dir: "data", HuangPohlPositrons: "pos.txt", HuangPohlElectrons: "ele.txt"})

	tab, err := src.LoadLeptonTable(domain.Positron)
	require.NoError(t, err)
	assert.Equal(t, domain.Positron, tab.Lepton)

	_, err = src.LoadLeptonTable(domain.Electron)
	assert.True(t, domain.IsKind(err, domain.KindNotFound), "got %v", err)

	_, err = src.LoadLeptonTable(domain.He)
	assert.True(t, domain.IsKind(err, domain.KindInvalidParticle), "got %v", err)
}

func TestSource_NoFileConfigured(t *testing.T) {
	src := NewSource(t.TempDir(), domain.DataConfig{Dir: "data"})
	_, err := src.LoadLeptonTable(domain.Positron)
	assert.True(t, domain.IsKind(err, domain.KindInvalidConfig), "got %v", err)
}
