// Package leptontable reads tabulated secondary-lepton cross sections from data files.
//
// A data file holds one line per (T_proj, T_lepton) node:
//
//	# T_proj[GeV/n] T_lepton[GeV] p+H_ISM p+He_ISM He+H_ISM He+He_ISM
//	1.0 0.01 1.2e-1 3.4e-1 4.5e-1 1.3
//
// Lines are grouped by T_proj (increasing); every group lists the same T_lepton nodes.
// Blank lines and lines starting with '#' are ignored. Files ending in .gz are gunzipped.
package leptontable

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gcrlab/xsecs/internal/domain"
	"github.com/gcrlab/xsecs/internal/ports"
)

// reactions is the column order of a data file after the two energy columns.
var reactions = []domain.Reaction{
	{Projectile: domain.H, Target: domain.TargetH},
	{Projectile: domain.H, Target: domain.TargetHe},
	{Projectile: domain.He, Target: domain.TargetH},
	{Projectile: domain.He, Target: domain.TargetHe},
}

// Source loads lepton tables from a data directory.
type Source struct {
	dir       string
	positrons string
	electrons string
}

// NewSource builds a Source from the data section of xsecs.yaml, resolving
// relative paths against root.
func NewSource(root string, cfg domain.DataConfig) *Source {
	dir := cfg.Dir
	if dir != "" && !filepath.IsAbs(dir) {
		dir = filepath.Join(root, dir)
	}
	return &Source{
		dir:       dir,
		positrons: cfg.HuangPohlPositrons,
		electrons: cfg.HuangPohlElectrons,
	}
}

var _ ports.LeptonTableSource = (*Source)(nil)

func (s *Source) LoadLeptonTable(product domain.PID) (domain.LeptonTable, error) {
	var name string
	switch product {
	case domain.Positron:
		name = s.positrons
	case domain.Electron:
		name = s.electrons
	default:
		return domain.LeptonTable{}, domain.InvalidParticle("leptontable.load", "%s is not a lepton", product)
	}
	if strings.TrimSpace(name) == "" {
		return domain.LeptonTable{}, &domain.OpError{
			Op:   "leptontable.load",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("no data file configured for %s: %w", product, domain.ErrInvalidConfig),
		}
	}

	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.dir, name)
	}
	return ReadFile(path, product)
}

// ReadFile reads a single data file for lepton.
func ReadFile(path string, lepton domain.PID) (domain.LeptonTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.LeptonTable{}, &domain.OpError{
			Op:   "leptontable.read",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return domain.LeptonTable{}, &domain.OpError{
				Op:   "leptontable.read",
				Kind: domain.KindInvalidConfig,
				Path: path,
				Err:  err,
			}
		}
		defer zr.Close()
		r = zr
	}

	t, err := Parse(r, lepton)
	if err != nil {
		return domain.LeptonTable{}, &domain.OpError{
			Op:   "leptontable.read",
			Kind: domain.KindOf(err),
			Path: path,
			Err:  err,
		}
	}
	return t, nil
}

// Parse decodes a data file from r.
func Parse(r io.Reader, lepton domain.PID) (domain.LeptonTable, error) {
	t := domain.LeptonTable{
		Lepton: lepton,
		Sigma:  make(map[domain.Reaction][][]float64, len(reactions)),
	}

	var (
		tl     []float64 // lepton axis of the current block
		col    int       // position inside the current block
		lineNo int
	)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2+len(reactions) {
			return domain.LeptonTable{}, parseErr(lineNo, "expected %d columns, got %d", 2+len(reactions), len(fields))
		}
		vals := make([]float64, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return domain.LeptonTable{}, parseErr(lineNo, "column %d: %v", i+1, err)
			}
			vals[i] = v
		}
		tp, tlep := vals[0], vals[1]

		n := len(t.ProjectileEnergies)
		if n == 0 || tp != t.ProjectileEnergies[n-1] {
			if n > 0 && col != len(t.LeptonEnergies) {
				return domain.LeptonTable{}, parseErr(lineNo, "block T_proj=%g has %d lepton nodes, want %d", t.ProjectileEnergies[n-1], col, len(t.LeptonEnergies))
			}
			t.ProjectileEnergies = append(t.ProjectileEnergies, tp)
			for _, rc := range reactions {
				t.Sigma[rc] = append(t.Sigma[rc], make([]float64, 0, len(t.LeptonEnergies)))
			}
			col = 0
		}

		if len(t.ProjectileEnergies) == 1 {
			tl = append(tl, tlep)
			t.LeptonEnergies = tl
		} else {
			if col >= len(t.LeptonEnergies) || t.LeptonEnergies[col] != tlep {
				return domain.LeptonTable{}, parseErr(lineNo, "T_lepton=%g does not match the first block", tlep)
			}
		}

		row := len(t.ProjectileEnergies) - 1
		for i, rc := range reactions {
			t.Sigma[rc][row] = append(t.Sigma[rc][row], vals[2+i])
		}
		col++
	}
	if err := sc.Err(); err != nil {
		return domain.LeptonTable{}, &domain.OpError{
			Op:   "leptontable.parse",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}

	if n := len(t.ProjectileEnergies); n > 0 && col != len(t.LeptonEnergies) {
		return domain.LeptonTable{}, parseErr(lineNo, "block T_proj=%g has %d lepton nodes, want %d", t.ProjectileEnergies[n-1], col, len(t.LeptonEnergies))
	}

	if err := t.Validate(); err != nil {
		return domain.LeptonTable{}, err
	}
	return t, nil
}

func parseErr(line int, format string, args ...any) error {
	return &domain.OpError{
		Op:   "leptontable.parse",
		Kind: domain.KindInvalidConfig,
		Err:  fmt.Errorf("line %d: %s: %w", line, fmt.Sprintf(format, args...), domain.ErrInvalidConfig),
	}
}
