package query

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/gcrlab/xsecs/internal/domain"
)

// Rule shorthands resolved against the artifact's own table:
//
//	x               the grid energies
//	col:<label>     every value of the column labelled <label>, or of the <projectile>+<target> pair
//	col:<label>[i]  the value of that column at grid point i
//
// Anything starting with "$" is a JSONPath expression over the artifact document.
const (
	shorthandX      = "x"
	shorthandColumn = "col:"
)

// Apply evaluates rules (name -> expression) against a stored table artifact. Results come back
// sorted by name and a failed rule does not stop the rest. Numbers are formatted the way tables
// print them.
func Apply(raw []byte, rules map[string]string) []domain.QueryResult {
	names := make([]string, 0, len(rules))
	for k := range rules {
		names = append(names, k)
	}
	sort.Strings(names)

	results := make([]domain.QueryResult, 0, len(names))
	if len(names) == 0 {
		return results
	}

	var doc any
	var artifact domain.TableArtifact
	if err := json.Unmarshal(raw, &doc); err != nil {
		for _, name := range names {
			results = append(results, failed(name, rules[name], "artifact is not valid JSON"))
		}
		return results
	}
	// A document that is JSON but not an artifact still answers plain JSONPath rules.
	_ = json.Unmarshal(raw, &artifact)

	for _, name := range names {
		expr := strings.TrimSpace(rules[name])
		path, err := resolve(expr, artifact.Table)
		if err != nil {
			results = append(results, failed(name, expr, err.Error()))
			continue
		}

		val, err := jsonpath.Get(path, doc)
		if err != nil {
			results = append(results, failed(name, expr, "jsonpath: "+err.Error()))
			continue
		}
		if isEmpty(val) {
			results = append(results, failed(name, expr, "no value found"))
			continue
		}

		results = append(results, domain.QueryResult{Name: name, Success: true, Message: format(val)})
	}
	return results
}

func failed(name, expr, msg string) domain.QueryResult {
	return domain.QueryResult{
		Name:    name,
		Message: fmt.Sprintf("%s: %s", strings.TrimSpace(expr), msg),
	}
}

// resolve expands shorthands into JSONPath over the artifact document.
func resolve(expr string, t domain.Table) (string, error) {
	switch {
	case expr == "":
		return "", fmt.Errorf("empty expression")
	case strings.HasPrefix(expr, "$"):
		return expr, nil
	case expr == shorthandX:
		return "$.table.rows[*].x", nil
	case strings.HasPrefix(expr, shorthandColumn):
		return resolveColumn(strings.TrimPrefix(expr, shorthandColumn), t)
	}
	return "", fmt.Errorf("want a JSONPath ($...), %q or %s<label>", shorthandX, shorthandColumn)
}

func resolveColumn(ref string, t domain.Table) (string, error) {
	label, row := ref, "*"
	if open := strings.LastIndex(ref, "["); open > 0 && strings.HasSuffix(ref, "]") {
		idx, err := strconv.Atoi(ref[open+1 : len(ref)-1])
		if err != nil || idx < 0 {
			return "", fmt.Errorf("bad row index in %q", ref)
		}
		label, row = ref[:open], strconv.Itoa(idx)
	}

	labels := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		labels[i] = c.Label()
		if strings.EqualFold(labels[i], label) || samePair(c, label) {
			return fmt.Sprintf("$.table.rows[%s].values[%d]", row, i), nil
		}
	}
	if len(labels) == 0 {
		return "", fmt.Errorf("artifact has no columns")
	}
	return "", fmt.Errorf("unknown column %q (have %s)", label, strings.Join(labels, ", "))
}

// samePair matches "<projectile>+<target>" spelled any way ParsePID accepts, so p+H_ISM finds
// the H+H_ISM column.
func samePair(c domain.Column, label string) bool {
	proj, target, ok := strings.Cut(label, "+")
	if !ok {
		return false
	}
	pid, err := domain.ParsePID(proj)
	if err != nil {
		return false
	}
	tg, err := domain.ParseTarget(target)
	return err == nil && pid == c.Projectile && tg == c.Target
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	}
	return false
}

// format renders a match: numbers as in printed tables, a single-element match unwrapped,
// lists space-separated in brackets and objects as compact JSON.
func format(v any) string {
	switch t := v.(type) {
	case float64:
		return strconv.FormatFloat(t, 'g', 6, 64)
	case string:
		return t
	case []any:
		if len(t) == 1 {
			return format(t[0])
		}
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = format(e)
		}
		return "[" + strings.Join(parts, " ") + "]"
	case map[string]any:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
	return fmt.Sprint(v)
}

// ParseRules turns "name=<expr>" arguments into a rule map.
func ParseRules(args []string) (map[string]string, error) {
	rules := make(map[string]string, len(args))
	for _, a := range args {
		name, expr, ok := strings.Cut(a, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" || strings.TrimSpace(expr) == "" {
			return nil, &domain.OpError{
				Op:   "query.parse",
				Kind: domain.KindInvalidConfig,
				Err:  fmt.Errorf("rule %q: want name=<jsonpath|x|col:label>: %w", a, domain.ErrInvalidConfig),
			}
		}
		rules[name] = strings.TrimSpace(expr)
	}
	return rules, nil
}
