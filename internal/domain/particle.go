package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ElectronMass is the electron rest energy in GeV.
const ElectronMass = 0.51099895e-3

// PID identifies a particle by charge number Z and mass number A.
// Leptons carry A == 0.
type PID struct {
	Z int `json:"z"`
	A int `json:"a"`
}

var (
	Electron = PID{Z: -1, A: 0}
	Positron = PID{Z: 1, A: 0}
	H        = PID{Z: 1, A: 1}
	He       = PID{Z: 2, A: 4}
)

// symbols maps light nuclei to their most abundant isotope.
var symbols = []struct {
	sym string
	pid PID
}{
	{"H", H},
	{"He", He},
	{"Li", PID{Z: 3, A: 7}},
	{"Be", PID{Z: 4, A: 9}},
	{"B", PID{Z: 5, A: 11}},
	{"C", PID{Z: 6, A: 12}},
	{"N", PID{Z: 7, A: 14}},
	{"O", PID{Z: 8, A: 16}},
}

func NewPID(z, a int) PID {
	return PID{Z: z, A: a}
}

func (p PID) IsLepton() bool {
	return p == Electron || p == Positron
}

func (p PID) IsNucleus() bool {
	return p.A > 0 && p.Z >= 1 && p.Z <= p.A
}

func (p PID) String() string {
	switch p {
	case Electron:
		return "e-"
	case Positron:
		return "e+"
	}
	for _, s := range symbols {
		if s.pid == p {
			return s.sym
		}
	}
	return fmt.Sprintf("Z%dA%d", p.Z, p.A)
}

// ParsePID accepts lepton names (e-, electron, e+, positron), p/proton, element symbols of
// light nuclei (case-insensitive) and "Z,A" pairs.
func ParsePID(s string) (PID, error) {
	in := strings.TrimSpace(s)
	switch strings.ToLower(in) {
	case "":
		return PID{}, InvalidParticle("domain.parse_pid", "empty particle")
	case "e-", "electron":
		return Electron, nil
	case "e+", "positron":
		return Positron, nil
	case "p", "proton":
		return H, nil
	}

	for _, sym := range symbols {
		if strings.EqualFold(sym.sym, in) {
			return sym.pid, nil
		}
	}

	if z, a, ok := strings.Cut(in, ","); ok {
		zi, zerr := strconv.Atoi(strings.TrimSpace(z))
		ai, aerr := strconv.Atoi(strings.TrimSpace(a))
		if zerr == nil && aerr == nil {
			p := PID{Z: zi, A: ai}
			if p.IsNucleus() || p.IsLepton() {
				return p, nil
			}
		}
	}

	return PID{}, InvalidParticle("domain.parse_pid", "unrecognized particle %q", s)
}

// Target is an ambient interstellar-medium species.
type Target string

const (
	TargetH  Target = "H_ISM"
	TargetHe Target = "He_ISM"
)

// PID returns the nucleus the target is made of.
func (t Target) PID() PID {
	if t == TargetHe {
		return He
	}
	return H
}

func (t Target) Valid() bool {
	return t == TargetH || t == TargetHe
}

// ParseTarget accepts H_ISM/He_ISM as well as the bare element symbols.
func ParseTarget(s string) (Target, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "h_ism", "h", "hism", "":
		return TargetH, nil
	case "he_ism", "he", "heism":
		return TargetHe, nil
	default:
		return "", InvalidParticle("domain.parse_target", "unknown target %q (expected H_ISM|He_ISM)", s)
	}
}
