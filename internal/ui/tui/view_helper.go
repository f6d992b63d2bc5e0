package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/table"

	"github.com/gcrlab/xsecs/internal/domain"
)

const minCellWidth = 12

func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func gridColumns(t domain.Table) []table.Column {
	cols := make([]table.Column, 0, 1+len(t.Columns))
	cols = append(cols, table.Column{Title: t.XLabel, Width: max(utf8.RuneCountInString(t.XLabel), minCellWidth)})
	for _, c := range t.Columns {
		title := c.Label()
		cols = append(cols, table.Column{Title: title, Width: max(utf8.RuneCountInString(title), minCellWidth)})
	}
	return cols
}

// gridRows pads short rows so every row has one cell per column.
func gridRows(t domain.Table) []table.Row {
	rows := make([]table.Row, 0, len(t.Rows))
	for _, r := range t.Rows {
		row := make(table.Row, 1+len(t.Columns))
		row[0] = formatFloat(r.X)
		for i := range t.Columns {
			if i < len(r.Values) {
				row[i+1] = formatFloat(r.Values[i])
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func newGrid(t domain.Table, height int, styles table.Styles) table.Model {
	return table.New(
		table.WithColumns(gridColumns(t)),
		table.WithRows(gridRows(t)),
		table.WithFocused(true),
		table.WithHeight(height),
		table.WithStyles(styles),
	)
}

func renderRunSummary(a domain.TableArtifact, id string) string {
	var b strings.Builder
	t := a.Table

	fmt.Fprintf(&b, "%s  (%s, %s)\n", a.Name, t.Channel, t.Model)
	if t.Channel == domain.ChannelSecondaryLeptons {
		fmt.Fprintf(&b, "Product %s at T_n = %g GeV/n\n", t.Product, t.ProjectileEnergy)
	}
	fmt.Fprintf(&b, "Values in %s\n", t.YUnit)
	if !a.StartedAt.IsZero() {
		fmt.Fprintf(&b, "Started %s", a.StartedAt.Local().Format(time.DateTime))
		if !a.EndedAt.IsZero() {
			fmt.Fprintf(&b, " (%s)", a.EndedAt.Sub(a.StartedAt).Round(time.Microsecond))
		}
		b.WriteString("\n")
	}
	if id != "" {
		fmt.Fprintf(&b, "Run ID %s\n", id)
	}
	return b.String()
}

func renderChecks(checks []domain.CheckResult) string {
	if len(checks) == 0 {
		return "Checks: (none)\n"
	}

	pass := 0
	for _, c := range checks {
		if c.Passed {
			pass++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Checks: %d pass / %d fail\n", pass, len(checks)-pass)
	for _, c := range checks {
		status := "FAIL"
		if c.Passed {
			status = "PASS"
		}
		b.WriteString("  - ")
		b.WriteString(c.Name)
		b.WriteString(" [")
		b.WriteString(c.Column)
		b.WriteString("] ")
		b.WriteString(status)
		if !c.Passed {
			b.WriteString(" ")
			b.WriteString(c.Message)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderModels(cfg domain.ModelsConfig) string {
	var b strings.Builder
	for _, ch := range []domain.Channel{domain.ChannelSecondaryLeptons, domain.ChannelTotalInelastic} {
		selected := cfg.Model(ch)
		if selected == "" {
			selected = domain.DefaultModel(ch)
		}

		b.WriteString(string(ch))
		b.WriteString(":\n")
		for _, name := range domain.KnownModels(ch) {
			mark := "  "
			if name == selected {
				mark = "● "
			}
			b.WriteString("  ")
			b.WriteString(mark)
			b.WriteString(string(name))
			b.WriteString("\n")
		}
	}
	return b.String()
}
