package tablestore

import (
	"bufio"
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gcrlab/xsecs/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleArtifact(start time.Time) domain.TableArtifact {
	return domain.TableArtifact{
		Name:      "Positrons p+He",
		SpecPath:  "tables/positrons.yaml",
		StartedAt: start,
		EndedAt:   start.Add(time.Second),
		Table: domain.Table{
			Channel:          domain.ChannelSecondaryLeptons,
			Model:            domain.ModelKamae2006,
			Product:          domain.Positron,
			ProjectileEnergy: 100,
			XLabel:           "T_lepton [GeV]",
			YUnit:            "mbarn/GeV",
			Columns: []domain.Column{
				{Projectile: domain.H, Target: domain.TargetH},
				{Projectile: domain.He, Target: domain.TargetH},
			},
			Rows: []domain.Row{
				{X: 1, Values: []float64{12.5, 35.1}},
				{X: 1.1, Values: []float64{11.2, 31.4}},
			},
		},
		Checks: []domain.CheckResult{
			{Name: "finite", Column: "H+H_ISM", Passed: true, Message: "ok"},
		},
	}
}

func fixedID(id string) func() string {
	return func() string { return id }
}

func TestSaveTable_CreatesJSONFile(t *testing.T) {
	tmp := t.TempDir()
	store := NewJSONStore(tmp, domain.DefaultConfig(), WithIDGenerator(fixedID("uuid-1")))

	start := time.Date(2026, 2, 3, 10, 11, 12, 0, time.UTC)
	id, err := store.SaveTable(sampleArtifact(start))
	require.NoError(t, err)
	assert.Equal(t, "20260203T101112Z_positrons-p-he", id)

	b, err := os.ReadFile(filepath.Join(tmp, "runs", id+".json"))
	require.NoError(t, err)

	var decoded domain.TableArtifact
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, "uuid-1", decoded.ID)
	assert.Equal(t, "Positrons p+He", decoded.Name)
	assert.Equal(t, domain.He, decoded.Table.Columns[1].Projectile)
	assert.Equal(t, []float64{11.2, 31.4}, decoded.Table.Rows[1].Values)
	assert.True(t, decoded.StartedAt.Equal(start))
}

func TestSaveTable_KeepsExistingIDAndFallsBackToSpecPath(t *testing.T) {
	tmp := t.TempDir()
	start := time.Date(2026, 2, 3, 10, 11, 12, 0, time.UTC)
	store := NewJSONStore(tmp, domain.DefaultConfig(), WithIDGenerator(fixedID("unused")))

	a := sampleArtifact(start)
	a.ID = "given"
	a.Name = ""
	id, err := store.SaveTable(a)
	require.NoError(t, err)
	assert.Equal(t, "20260203T101112Z_positrons", id)

	got, _, err := store.LoadTable(id)
	require.NoError(t, err)
	assert.Equal(t, "given", got.ID)
}

func TestSaveTable_UsesNowWhenStartMissing(t *testing.T) {
	tmp := t.TempDir()
	now := time.Date(2026, 5, 6, 7, 8, 9, 0, time.FixedZone("CET", 3600))
	store := NewJSONStore(tmp, domain.DefaultConfig(), WithNow(func() time.Time { return now }))

	a := sampleArtifact(time.Time{})
	a.Name = ""
	a.SpecPath = ""
	id, err := store.SaveTable(a)
	require.NoError(t, err)
	assert.Equal(t, "20260506T060809Z_table", id)
}

func TestSaveTable_UsesUniqueFilenameOnCollision(t *testing.T) {
	tmp := t.TempDir()
	store := NewJSONStore(tmp, domain.DefaultConfig())

	start := time.Date(2026, 2, 3, 10, 11, 12, 0, time.UTC)
	a := sampleArtifact(start)

	id1, err := store.SaveTable(a)
	require.NoError(t, err)
	id2, err := store.SaveTable(a)
	require.NoError(t, err)
	id3, err := store.SaveTable(a)
	require.NoError(t, err)

	assert.Equal(t, id1+"_2", id2)
	assert.Equal(t, id1+"_3", id3)
	for _, id := range []string{id1, id2, id3} {
		_, err := os.Stat(filepath.Join(tmp, "runs", id+".json"))
		assert.NoError(t, err, id)
	}
}

func TestSaveTable_WritesIndex(t *testing.T) {
	tmp := t.TempDir()
	cfg := domain.DefaultConfig()
	cfg.Paths.RunsDir = "out"
	store := NewJSONStore(tmp, cfg, WithIndex(true), WithIDGenerator(fixedID("uuid-7")))

	start := time.Date(2026, 2, 3, 10, 11, 12, 0, time.UTC)
	_, err := store.SaveTable(sampleArtifact(start))
	require.NoError(t, err)
	_, err = store.SaveTable(sampleArtifact(start))
	require.NoError(t, err)

	f, err := os.Open(filepath.Join(tmp, "out", "index.jsonl"))
	require.NoError(t, err)
	defer f.Close()

	var entries []indexEntry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e indexEntry
		require.NoError(t, json.Unmarshal(sc.Bytes(), &e))
		entries = append(entries, e)
	}
	require.Len(t, entries, 2)
	assert.Equal(t, "uuid-7", entries[0].UUID)
	assert.Equal(t, domain.ModelKamae2006, entries[0].Model)
	assert.Equal(t, entries[0].ID+"_2", entries[1].ID)
	assert.Equal(t, entries[1].ID+".json", entries[1].File)
}

func TestSaveTable_LogsIndexFailure(t *testing.T) {
	tmp := t.TempDir()
	// A directory where the index file belongs makes every append fail.
	require.NoError(t, os.MkdirAll(filepath.Join(tmp, "runs", indexFile), 0o755))

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))
	store := NewJSONStore(tmp, domain.DefaultConfig(), WithIndex(true), WithLogger(log))

	id, err := store.SaveTable(sampleArtifact(time.Date(2026, 2, 3, 10, 11, 12, 0, time.UTC)))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(tmp, "runs", id+".json"))
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "tablestore.index.failed", entry["msg"])
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, id, entry["id"])
	assert.NotEmpty(t, entry["err"])
}

func TestListTables_NewestFirst(t *testing.T) {
	tmp := t.TempDir()
	store := NewJSONStore(tmp, domain.DefaultConfig(), WithIndex(true))

	early := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	late := early.Add(time.Hour)

	a := sampleArtifact(early)
	a.Name = "early"
	_, err := store.SaveTable(a)
	require.NoError(t, err)

	b := sampleArtifact(late)
	b.Name = "late"
	_, err = store.SaveTable(b)
	require.NoError(t, err)

	// Garbage is skipped, as is the index file.
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "runs", "broken.json"), []byte("{"), 0o600))

	refs, err := store.ListTables()
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, "late", refs[0].Name)
	assert.Equal(t, "early", refs[1].Name)
	assert.Equal(t, refs[0].ID+".json", refs[0].File)
	assert.Equal(t, domain.ModelKamae2006, refs[0].Model)
}

func TestListTables_NoRunsDir(t *testing.T) {
	refs, err := NewJSONStore(t.TempDir(), domain.DefaultConfig()).ListTables()
	require.NoError(t, err)
	assert.Empty(t, refs)
}

func TestLoadTable_ByStoreIDAndUUID(t *testing.T) {
	tmp := t.TempDir()
	store := NewJSONStore(tmp, domain.DefaultConfig(), WithIDGenerator(fixedID("3f1c-uuid")))

	id, err := store.SaveTable(sampleArtifact(time.Date(2026, 2, 3, 10, 11, 12, 0, time.UTC)))
	require.NoError(t, err)

	a, raw, err := store.LoadTable(id)
	require.NoError(t, err)
	assert.Equal(t, "3f1c-uuid", a.ID)
	assert.Contains(t, string(raw), `"model": "Kamae2006"`)

	b, _, err := store.LoadTable("3f1c-uuid")
	require.NoError(t, err)
	assert.Equal(t, a.Name, b.Name)

	_, _, err = store.LoadTable(id + ".json")
	require.NoError(t, err)
}

func TestLoadTable_Errors(t *testing.T) {
	store := NewJSONStore(t.TempDir(), domain.DefaultConfig())

	_, _, err := store.LoadTable("missing")
	assert.True(t, domain.IsKind(err, domain.KindNotFound), "got %v", err)

	_, _, err = store.LoadTable("../etc/passwd")
	assert.True(t, domain.IsKind(err, domain.KindInvalidConfig), "got %v", err)

	_, _, err = store.LoadTable("  ")
	assert.True(t, domain.IsKind(err, domain.KindInvalidConfig), "got %v", err)
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Positrons p+He":   "positrons-p-he",
		"  --Demo__API-- ": "demo-api",
		"e+":               "e",
		"":                 "",
		"+++":              "",
	}
	for in, want := range cases {
		assert.Equal(t, want, slugify(in), in)
	}
}
