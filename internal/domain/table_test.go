package domain

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultLeptonSpecIsValid(t *testing.T) {
	s := DefaultLeptonSpec()
	if err := s.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Columns[0].Label() != "H+H_ISM" {
		t.Fatalf("unexpected label %q", s.Columns[0].Label())
	}
	if s.Columns[1].Label() != "He+H_ISM" {
		t.Fatalf("unexpected label %q", s.Columns[1].Label())
	}
}

func TestTableSpecValidate_Fields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*TableSpec)
		field  string
	}{
		{"channel", func(s *TableSpec) { s.Channel = "nuclei" }, "channel"},
		{"no columns", func(s *TableSpec) { s.Columns = nil }, "columns"},
		{"lepton projectile", func(s *TableSpec) { s.Columns[0].Projectile = Positron }, "columns[0].projectile"},
		{"bad target", func(s *TableSpec) { s.Columns[1].Target = "C_ISM" }, "columns[1].target"},
		{"nucleus product", func(s *TableSpec) { s.Product = He }, "product"},
		{"zero energy", func(s *TableSpec) { s.ProjectileEnergy = 0 }, "projectile_energy"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := DefaultLeptonSpec()
			s.Columns = append([]Column(nil), s.Columns...)
			c.mutate(&s)
			err := s.Validate()
			if !IsKind(err, KindInvalidConfig) {
				t.Fatalf("expected KindInvalidConfig, got %v", err)
			}
			if !strings.Contains(err.Error(), c.field) {
				t.Fatalf("expected field %q in %v", c.field, err)
			}
		})
	}
}

func TestTableSpecValidate_InelasticIgnoresProduct(t *testing.T) {
	s := TableSpec{
		Channel: ChannelTotalInelastic,
		Grid:    DefaultGrid(),
		Columns: []Column{{Projectile: He, Target: TargetH}},
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTableColumn(t *testing.T) {
	tb := Table{
		Columns: []Column{{Projectile: H}, {Projectile: He}},
		Rows: []Row{
			{X: 1, Values: []float64{1, 2}},
			{X: 2, Values: []float64{3, 4}},
		},
	}
	if diff := cmp.Diff([]float64{2, 4}, tb.Column(1)); diff != "" {
		t.Fatalf("column mismatch (-want +got):\n%s", diff)
	}
	if tb.Column(2) != nil {
		t.Fatalf("expected nil for out-of-range column")
	}
}

func TestArtifactFailed(t *testing.T) {
	a := TableArtifact{Checks: []CheckResult{{Passed: true}, {Passed: false}, {Passed: false}}}
	if a.FailedChecks() != 2 {
		t.Fatalf("expected 2 failures, got %d", a.FailedChecks())
	}
}
