package tui

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gcrlab/xsecs/internal/domain"
)

var reLine = regexp.MustCompile(`(?i)\bline\s+(\d+)\b`)

// userMessage turns an error into a one-line status for the footer.
func userMessage(err error) string {
	if err == nil {
		return ""
	}

	var oe *domain.OpError
	if errors.As(err, &oe) {
		switch oe.Kind {

		case domain.KindNotFound:
			switch {
			case strings.HasPrefix(oe.Op, "tablespec"):
				return "Table spec not found"
			case strings.HasPrefix(oe.Op, "tablestore"):
				return "Saved table not found"
			case strings.HasPrefix(oe.Op, "leptontable"):
				return "Data file not found" + pathSuffix(oe.Path)
			case strings.HasPrefix(oe.Op, "workspacefinder"):
				return "Workspace not found"
			}
			return "Not found"

		case domain.KindInvalidConfig:
			base := "config"
			if strings.TrimSpace(oe.Path) != "" {
				base = filepath.Base(oe.Path)
			}

			line := extractLine(err.Error())
			if line != "" {
				return "Invalid YAML at " + base + " line " + line
			}

			if looksLikeYAMLProblem(err.Error()) {
				return "Invalid YAML at " + base
			}
			if f := extractField(err.Error()); f != "" {
				return "Invalid " + f + " in " + base
			}
			return "Invalid config"

		case domain.KindUnknownModel:
			return "Unknown model"

		case domain.KindInvalidParticle:
			return "Invalid particle"

		case domain.KindOutOfRange:
			return "Energy out of range for the model"

		case domain.KindUnsupported:
			return "Not supported by the selected model"

		default:
			return "Unexpected error (see logs)"
		}
	}

	if looksLikeYAMLProblem(err.Error()) {
		line := extractLine(err.Error())
		if line != "" {
			return "Invalid YAML line " + line
		}
		return "Invalid YAML"
	}

	return "Unexpected error (see logs)"
}

func pathSuffix(p string) string {
	if strings.TrimSpace(p) == "" {
		return ""
	}
	return ": " + filepath.Base(p)
}

func looksLikeYAMLProblem(s string) bool {
	ls := strings.ToLower(s)
	return strings.Contains(ls, "yaml:") || strings.Contains(ls, "did not find expected") || strings.Contains(ls, "cannot unmarshal")
}

func extractLine(s string) string {
	m := reLine.FindStringSubmatch(s)
	if len(m) == 2 {
		return m[1]
	}
	return ""
}

// extractField returns the name in "field <name>: ..." messages.
func extractField(s string) string {
	i := strings.Index(s, "field ")
	if i < 0 {
		return ""
	}
	rest := s[i+len("field "):]
	name, _, ok := strings.Cut(rest, ":")
	if !ok {
		return ""
	}
	return strings.TrimSpace(name)
}
