package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/gcrlab/xsecs/internal/domain"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func printArtifact(w io.Writer, a domain.TableArtifact, id string, format string) error {
	switch format {
	case "plain":
		printPlain(w, a.Table)
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		payload := map[string]any{
			"run_id":   id,
			"artifact": a,
		}
		return enc.Encode(payload)
	case "pretty", "":
		printPretty(w, a, id)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected plain|pretty|json)", format)
	}
}

// printPlain writes one line per grid point: x followed by one value per column.
func printPlain(w io.Writer, t domain.Table) {
	for _, r := range t.Rows {
		fields := make([]string, 0, 1+len(r.Values))
		fields = append(fields, formatFloat(r.X))
		for _, v := range r.Values {
			fields = append(fields, formatFloat(v))
		}
		fmt.Fprintln(w, strings.Join(fields, "\t"))
	}
}

func printPretty(w io.Writer, a domain.TableArtifact, id string) {
	t := a.Table

	fmt.Fprintf(w, "Table:    %s\n", a.Name)
	fmt.Fprintf(w, "Channel:  %s\n", t.Channel)
	fmt.Fprintf(w, "Model:    %s\n", t.Model)
	if t.Channel == domain.ChannelSecondaryLeptons {
		fmt.Fprintf(w, "Product:  %s at T_n = %g GeV/n\n", t.Product, t.ProjectileEnergy)
	}
	if !a.StartedAt.IsZero() && !a.EndedAt.IsZero() {
		fmt.Fprintf(w, "Duration: %s\n", a.EndedAt.Sub(a.StartedAt).Round(time.Microsecond))
	}
	if id != "" {
		fmt.Fprintf(w, "Run ID:   %s\n", id)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, renderGrid(t))

	if len(a.Checks) > 0 {
		fmt.Fprintln(w)
		pass, fail := countCheckPassFail(a.Checks)
		fmt.Fprintf(w, "checks: %d pass / %d fail\n", pass, fail)
		for _, c := range a.Checks {
			mark := passStyle.Render("✓")
			if !c.Passed {
				mark = failStyle.Render("✗")
			}
			fmt.Fprintf(w, "  %s %s [%s] %s\n", mark, c.Name, c.Column, c.Message)
		}
	}
}

func renderGrid(t domain.Table) string {
	headers := make([]string, 0, 1+len(t.Columns))
	headers = append(headers, t.XLabel)
	for _, c := range t.Columns {
		headers = append(headers, c.Label()+" ["+t.YUnit+"]")
	}

	rows := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		row := make([]string, 0, 1+len(r.Values))
		row = append(row, formatFloat(r.X))
		for _, v := range r.Values {
			row = append(row, formatFloat(v))
		}
		rows = append(rows, row)
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...).
		Render()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func countCheckPassFail(in []domain.CheckResult) (pass int, fail int) {
	for _, c := range in {
		if c.Passed {
			pass++
		} else {
			fail++
		}
	}
	return pass, fail
}
