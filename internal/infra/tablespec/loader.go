package tablespec

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gcrlab/xsecs/internal/domain"
	"github.com/gcrlab/xsecs/internal/ports"
	"gopkg.in/yaml.v3"
)

// Loader reads YAML table specs from a workspace.
type Loader struct {
	tablesDir string
	defaults  domain.DefaultsConfig
}

func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		tablesDir: "tables",
		defaults:  domain.DefaultConfig().Defaults,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

type Option func(*Loader)

func WithTablesDir(dir string) Option {
	return func(l *Loader) { l.tablesDir = dir }
}

// WithDefaults sets the values used for omitted product, projectile_energy and grid fields.
func WithDefaults(d domain.DefaultsConfig) Option {
	return func(l *Loader) { l.defaults = d }
}

var _ ports.TableSpecLoader = (*Loader)(nil)

func (l *Loader) LoadTableSpec(path string) (domain.TableSpec, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.TableSpec{}, &domain.OpError{
			Op:   "tablespec.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var ys yamlSpec
	if err := yaml.Unmarshal(b, &ys); err != nil {
		return domain.TableSpec{}, &domain.OpError{
			Op:   "tablespec.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	spec, err := l.mapAndValidate(path, ys)
	if err != nil {
		return domain.TableSpec{}, err
	}
	if strings.TrimSpace(spec.Name) == "" {
		spec.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return spec, nil
}

func (l *Loader) ListTableSpecs(root string) ([]domain.TableSpecRef, error) {
	dir := filepath.Join(root, l.tablesDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "tablespec.list",
			Kind: domain.KindNotFound,
			Path: dir,
			Err:  err,
		}
	}

	var refs []domain.TableSpecRef
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}

		p := filepath.Join(dir, name)
		n, _ := readSpecName(p)
		if strings.TrimSpace(n) == "" {
			n = strings.TrimSuffix(name, filepath.Ext(name))
		}

		refs = append(refs, domain.TableSpecRef{Name: n, Path: p})
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

func readSpecName(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var v struct {
		Name string `yaml:"name"`
	}
	if err := yaml.Unmarshal(b, &v); err != nil {
		return "", err
	}
	return v.Name, nil
}

type yamlSpec struct {
	Name             string       `yaml:"name"`
	Channel          string       `yaml:"channel"`
	Model            string       `yaml:"model"`
	Product          string       `yaml:"product"`
	ProjectileEnergy *float64     `yaml:"projectile_energy"`
	Grid             yamlGrid     `yaml:"grid"`
	Columns          []yamlColumn `yaml:"columns"`
	Checks           yamlChecks   `yaml:"checks"`
}

type yamlGrid struct {
	Min    *float64 `yaml:"min"`
	Max    *float64 `yaml:"max"`
	Factor *float64 `yaml:"factor"`
}

type yamlColumn struct {
	Name       string `yaml:"name"`
	Projectile string `yaml:"projectile"`
	Target     string `yaml:"target"`
}

type yamlChecks struct {
	Finite      bool     `yaml:"finite"`
	NonNegative bool     `yaml:"non_negative"`
	Max         *float64 `yaml:"max"`
	Min         *float64 `yaml:"min"`
}

func (l *Loader) mapAndValidate(path string, ys yamlSpec) (domain.TableSpec, error) {
	spec := domain.TableSpec{
		Name:    strings.TrimSpace(ys.Name),
		Channel: domain.ChannelSecondaryLeptons,
		Grid:    l.defaults.Grid,
		Checks: domain.ChecksSpec{
			Finite:      ys.Checks.Finite,
			NonNegative: ys.Checks.NonNegative,
			Max:         ys.Checks.Max,
			Min:         ys.Checks.Min,
		},
	}

	if s := strings.TrimSpace(ys.Channel); s != "" {
		spec.Channel = domain.Channel(strings.ToLower(s))
		if !spec.Channel.Valid() {
			return domain.TableSpec{}, invalidField(path, "channel", fmt.Sprintf("unknown channel %q", ys.Channel))
		}
	}

	if s := strings.TrimSpace(ys.Model); s != "" {
		m, err := domain.ParseModel(spec.Channel, s)
		if err != nil {
			return domain.TableSpec{}, &domain.OpError{
				Op:   "tablespec.validate",
				Kind: domain.KindOf(err),
				Path: path,
				Err:  fmt.Errorf("field model: %w", err),
			}
		}
		spec.Model = m
	}

	if spec.Channel == domain.ChannelSecondaryLeptons {
		spec.Product = l.defaults.Lepton
		if s := strings.TrimSpace(ys.Product); s != "" {
			p, err := domain.ParsePID(s)
			if err != nil {
				return domain.TableSpec{}, invalidField(path, "product", err.Error())
			}
			spec.Product = p
		}
		spec.ProjectileEnergy = l.defaults.ProjectileEnergy
		if ys.ProjectileEnergy != nil {
			spec.ProjectileEnergy = *ys.ProjectileEnergy
		}
	}

	if ys.Grid.Min != nil {
		spec.Grid.Min = *ys.Grid.Min
	}
	if ys.Grid.Max != nil {
		spec.Grid.Max = *ys.Grid.Max
	}
	if ys.Grid.Factor != nil {
		spec.Grid.Factor = *ys.Grid.Factor
	}

	spec.Columns = make([]domain.Column, 0, len(ys.Columns))
	for i, c := range ys.Columns {
		fieldPrefix := fmt.Sprintf("columns[%d]", i)

		if strings.TrimSpace(c.Projectile) == "" {
			return domain.TableSpec{}, invalidField(path, fieldPrefix+".projectile", "projectile is required")
		}
		proj, err := domain.ParsePID(c.Projectile)
		if err != nil {
			return domain.TableSpec{}, invalidField(path, fieldPrefix+".projectile", err.Error())
		}
		target, err := domain.ParseTarget(c.Target)
		if err != nil {
			return domain.TableSpec{}, invalidField(path, fieldPrefix+".target", err.Error())
		}

		spec.Columns = append(spec.Columns, domain.Column{
			Name:       strings.TrimSpace(c.Name),
			Projectile: proj,
			Target:     target,
		})
	}

	if err := spec.Validate(); err != nil {
		return domain.TableSpec{}, &domain.OpError{
			Op:   "tablespec.validate",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}
	return spec, nil
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "tablespec.validate",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s", field, msg),
	}
}
