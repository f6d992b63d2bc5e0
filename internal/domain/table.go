package domain

import (
	"fmt"
	"strings"
	"time"
)

// Column is one projectile/target pair evaluated over the grid.
type Column struct {
	Name       string `json:"name"`
	Projectile PID    `json:"projectile"`
	Target     Target `json:"target"`
}

// Label returns Name, or "<projectile>+<target>" when Name is empty.
func (c Column) Label() string {
	if strings.TrimSpace(c.Name) != "" {
		return c.Name
	}
	return c.Projectile.String() + "+" + string(c.Target)
}

// ChecksSpec holds the sanity checks applied to every column of a computed table.
type ChecksSpec struct {
	Finite      bool     `json:"finite,omitempty"`
	NonNegative bool     `json:"non_negative,omitempty"`
	Max         *float64 `json:"max,omitempty"`
	Min         *float64 `json:"min,omitempty"`
}

func (c ChecksSpec) Empty() bool {
	return !c.Finite && !c.NonNegative && c.Max == nil && c.Min == nil
}

// TableSpec describes a tabulation.
type TableSpec struct {
	Name    string    `json:"name"`
	Channel Channel   `json:"channel"`
	Model   ModelName `json:"model,omitempty"` // empty: use the configured model

	// Product and ProjectileEnergy (GeV/n) apply to secondary_leptons only; the grid then runs
	// over the product kinetic energy. For total_inelastic the grid runs over T_n.
	Product          PID     `json:"product"`
	ProjectileEnergy float64 `json:"projectile_energy,omitempty"`

	Grid    EnergyGrid `json:"grid"`
	Columns []Column   `json:"columns"`
	Checks  ChecksSpec `json:"checks"`
}

// Validate checks the table spec is self-consistent. It does not resolve models.
func (s TableSpec) Validate() error {
	if !s.Channel.Valid() {
		return invalidSpec("channel", fmt.Sprintf("unknown channel %q", s.Channel))
	}
	if err := s.Grid.Validate(); err != nil {
		return err
	}
	if len(s.Columns) == 0 {
		return invalidSpec("columns", "at least one column is required")
	}
	for i, c := range s.Columns {
		if !c.Projectile.IsNucleus() {
			return invalidSpec(fmt.Sprintf("columns[%d].projectile", i), fmt.Sprintf("%s is not a nucleus", c.Projectile))
		}
		if !c.Target.Valid() {
			return invalidSpec(fmt.Sprintf("columns[%d].target", i), fmt.Sprintf("unknown target %q", c.Target))
		}
	}
	if s.Channel == ChannelSecondaryLeptons {
		if !s.Product.IsLepton() {
			return invalidSpec("product", fmt.Sprintf("%s is not a lepton", s.Product))
		}
		if !(s.ProjectileEnergy > 0) || !isFinite(s.ProjectileEnergy) {
			return invalidSpec("projectile_energy", fmt.Sprintf("must be > 0, got %g", s.ProjectileEnergy))
		}
	}
	return nil
}

func invalidSpec(field, msg string) error {
	return &OpError{
		Op:   "domain.table_spec",
		Kind: KindInvalidConfig,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, ErrInvalidConfig),
	}
}

// DefaultLeptonSpec reproduces the classic positron table: p and He on H_ISM at 100 GeV/n.
func DefaultLeptonSpec() TableSpec {
	return TableSpec{
		Name:             "positrons",
		Channel:          ChannelSecondaryLeptons,
		Product:          Positron,
		ProjectileEnergy: 100,
		Grid:             DefaultGrid(),
		Columns: []Column{
			{Projectile: H, Target: TargetH},
			{Projectile: He, Target: TargetH},
		},
	}
}

// Row is one grid point: X is the grid energy, Values holds one entry per column.
type Row struct {
	X      float64   `json:"x"`
	Values []float64 `json:"values"`
}

// Table is a computed tabulation.
type Table struct {
	Channel          Channel   `json:"channel"`
	Model            ModelName `json:"model"`
	Product          PID       `json:"product"`
	ProjectileEnergy float64   `json:"projectile_energy,omitempty"`
	XLabel           string    `json:"x_label"`
	YUnit            string    `json:"y_unit"`
	Columns          []Column  `json:"columns"`
	Rows             []Row     `json:"rows"`
}

// Column returns the values of column i in row order.
func (t Table) Column(i int) []float64 {
	if i < 0 || i >= len(t.Columns) {
		return nil
	}
	out := make([]float64, 0, len(t.Rows))
	for _, r := range t.Rows {
		if i < len(r.Values) {
			out = append(out, r.Values[i])
		}
	}
	return out
}

// CheckResult is the output of a single table check.
type CheckResult struct {
	Name    string `json:"name"`
	Column  string `json:"column"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

// TableArtifact is a persisted tabulation.
type TableArtifact struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	SpecPath  string        `json:"spec_path,omitempty"`
	StartedAt time.Time     `json:"started_at"`
	EndedAt   time.Time     `json:"ended_at"`
	Table     Table         `json:"table"`
	Checks    []CheckResult `json:"checks"`
}

// FailedChecks counts failed checks.
func (a TableArtifact) FailedChecks() int {
	n := 0
	for _, c := range a.Checks {
		if !c.Passed {
			n++
		}
	}
	return n
}

// TableSpecRef points at a table spec file in a workspace.
type TableSpecRef struct {
	Name string
	Path string
}

// ArtifactRef points at a stored artifact.
type ArtifactRef struct {
	ID        string    `json:"id"`
	File      string    `json:"file"`
	Name      string    `json:"name"`
	Model     ModelName `json:"model"`
	StartedAt time.Time `json:"started_at"`
}

// QueryResult is the outcome of one JSONPath query against a stored artifact.
type QueryResult struct {
	Name    string `json:"name"`
	Success bool   `json:"success"`
	Message string `json:"message"`
}
