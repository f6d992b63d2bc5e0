package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gcrlab/xsecs/internal/domain"
)

type screen int

const (
	screenHome screen = iota
	screenTables
	screenRuns
	screenDetail
	screenModels
)

const (
	menuTables = "Tables"
	menuRuns   = "Runs"
	menuModels = "Models"
	menuInit   = "Init Workspace"
	menuQuit   = "Quit"
)

type menuItem struct {
	title string
	desc  string
}

func (m menuItem) Title() string       { return m.title }
func (m menuItem) Description() string { return m.desc }
func (m menuItem) FilterValue() string { return m.title }

type specItem struct {
	ref domain.TableSpecRef
	rel string
}

func (s specItem) Title() string       { return s.ref.Name }
func (s specItem) Description() string { return s.rel }
func (s specItem) FilterValue() string { return s.ref.Name }

type runItem struct {
	ref domain.ArtifactRef
}

func (r runItem) Title() string { return r.ref.Name }
func (r runItem) Description() string {
	return clampString(fmt.Sprintf("%s  %s  %s", r.ref.Model, r.ref.StartedAt.Local().Format(time.DateTime), r.ref.ID), 80)
}
func (r runItem) FilterValue() string { return r.ref.Name + " " + r.ref.ID }

type model struct {
	theme Theme
	deps  Deps

	scr    screen
	menu   list.Model
	tables list.Model
	runs   list.Model
	grid   table.Model

	width  int
	height int

	workspaceFound bool
	workspaceRoot  string

	running bool
	runCh   chan runnerDoneMsg

	// detail is the table shown on screenDetail; back returns to detailFrom.
	detail     domain.TableArtifact
	detailID   string
	detailFrom screen

	models domain.ModelsConfig

	toast    string
	toastErr bool
}

func Run(deps Deps) error {
	m := wrapSafe(newModel(deps), deps.Logger)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newList(title string, items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	return l
}

func newModel(deps Deps) model {
	t := DefaultTheme()

	items := []list.Item{
		menuItem{menuTables, "Compute a table spec from the workspace and save it"},
		menuItem{menuRuns, "Browse saved tables under runs/"},
		menuItem{menuModels, "Models per channel and the configured selection"},
		menuItem{menuInit, "Create xsecs.yaml, tables/, data/ and runs/ here"},
		menuItem{menuQuit, "Exit xsecs"},
	}

	m := model{
		theme:  t,
		deps:   deps,
		scr:    screenHome,
		menu:   newList("xsecs", items),
		tables: newList("Table specs", nil),
		runs:   newList("Saved tables", nil),
		grid:   newGrid(domain.Table{}, 10, t.GridStyles()),
		models: domain.DefaultConfig().Models,
	}

	wd, err := os.Getwd()
	if err == nil && deps.WorkspaceLocator != nil {
		root, findErr := deps.WorkspaceLocator.FindRoot(wd)
		if findErr == nil {
			m.workspaceFound = true
			m.workspaceRoot = root
		}
	}

	return m
}

func (m model) Init() tea.Cmd { return nil }

func (m *model) setToast(msg string, isErr bool) {
	m.toast = msg
	m.toastErr = isErr
}

func (m *model) setError(err error) {
	if err == nil {
		return
	}
	m.deps.logger().Warn("tui.error", "err", err, "kind", string(domain.KindOf(err)))
	m.setToast(userMessage(err), true)
}

func (m *model) showDetail(a domain.TableArtifact, id string, from screen) {
	m.detail = a
	m.detailID = id
	m.detailFrom = from
	m.grid = newGrid(a.Table, m.gridHeight(), m.theme.GridStyles())
	if m.width > 0 {
		m.grid.SetWidth(m.width - 8)
	}
	m.scr = screenDetail
}

func (m model) gridHeight() int {
	if m.height <= 0 {
		return 15
	}
	return max(m.height-18, 5)
}

// filtering reports whether the active list is consuming keystrokes for its filter.
func (m model) filtering() bool {
	switch m.scr {
	case screenHome:
		return m.menu.FilterState() == list.Filtering
	case screenTables:
		return m.tables.FilterState() == list.Filtering
	case screenRuns:
		return m.runs.FilterState() == list.Filtering
	}
	return false
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.menu.SetSize(msg.Width-4, msg.Height-10)
		m.tables.SetSize(msg.Width-4, msg.Height-10)
		m.runs.SetSize(msg.Width-4, msg.Height-10)
		m.grid.SetWidth(msg.Width - 8)
		m.grid.SetHeight(m.gridHeight())
		return m, nil

	case workspaceRefreshedMsg:
		m.workspaceFound = msg.found
		m.workspaceRoot = msg.root
		if msg.err != nil && !domain.IsKind(msg.err, domain.KindNotFound) {
			m.setError(msg.err)
		}
		return m, nil

	case initWorkspaceDoneMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.setToast("Workspace ready at "+msg.root, false)
		return m, cmdRefreshWorkspace(m.deps)

	case tablesLoadedMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		items := make([]list.Item, 0, len(msg.refs))
		for _, r := range msg.refs {
			rel, err := filepath.Rel(msg.root, r.Path)
			if err != nil {
				rel = r.Path
			}
			items = append(items, specItem{ref: r, rel: rel})
		}
		return m, m.tables.SetItems(items)

	case runsLoadedMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		items := make([]list.Item, 0, len(msg.refs))
		for _, r := range msg.refs {
			items = append(items, runItem{ref: r})
		}
		return m, m.runs.SetItems(items)

	case runLoadedMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.showDetail(msg.artifact, msg.id, screenRuns)
		return m, nil

	case modelsLoadedMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.models = msg.models
		return m, nil

	case runnerDoneMsg:
		m.running = false
		m.runCh = nil
		if len(msg.artifact.Table.Rows) > 0 {
			m.showDetail(msg.artifact, msg.id, screenTables)
		}
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		if n := msg.artifact.FailedChecks(); n > 0 {
			m.setToast(fmt.Sprintf("%d check(s) failed; saved as %s", n, msg.id), true)
		} else {
			m.setToast("Saved as "+msg.id, false)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.filtering() {
			break
		}

		switch msg.String() {
		case "q":
			if m.scr == screenHome {
				return m, tea.Quit
			}
			m.scr = screenHome
			return m, nil

		case "esc", "b":
			switch m.scr {
			case screenHome:
			case screenDetail:
				m.scr = m.detailFrom
				return m, nil
			default:
				m.scr = screenHome
				return m, nil
			}

		case "r":
			switch m.scr {
			case screenTables:
				return m, cmdLoadTables(m.workspaceRoot)
			case screenRuns:
				return m, cmdLoadRuns(m.workspaceRoot)
			}

		case "enter":
			switch m.scr {
			case screenHome:
				return m.openMenuItem()
			case screenTables:
				return m.runSelectedSpec()
			case screenRuns:
				it, ok := m.runs.SelectedItem().(runItem)
				if !ok {
					return m, nil
				}
				return m, cmdLoadRun(m.workspaceRoot, it.ref.ID)
			}
		}
	}

	var cmd tea.Cmd
	switch m.scr {
	case screenHome:
		m.menu, cmd = m.menu.Update(msg)
	case screenTables:
		m.tables, cmd = m.tables.Update(msg)
	case screenRuns:
		m.runs, cmd = m.runs.Update(msg)
	case screenDetail:
		m.grid, cmd = m.grid.Update(msg)
	}
	return m, cmd
}

func (m model) openMenuItem() (tea.Model, tea.Cmd) {
	it, ok := m.menu.SelectedItem().(menuItem)
	if !ok {
		return m, nil
	}
	m.toast = ""

	switch it.title {
	case menuQuit:
		return m, tea.Quit

	case menuInit:
		wd, err := os.Getwd()
		if err != nil {
			m.setError(err)
			return m, nil
		}
		return m, cmdInitWorkspaceHere(m.deps, wd)

	case menuModels:
		m.scr = screenModels
		if !m.workspaceFound {
			return m, nil
		}
		return m, cmdLoadModels(m.workspaceRoot)
	}

	if !m.workspaceFound {
		m.setToast("No workspace found: use "+menuInit+" first", true)
		return m, nil
	}

	switch it.title {
	case menuTables:
		m.scr = screenTables
		return m, cmdLoadTables(m.workspaceRoot)
	case menuRuns:
		m.scr = screenRuns
		return m, cmdLoadRuns(m.workspaceRoot)
	}
	return m, nil
}

func (m model) runSelectedSpec() (tea.Model, tea.Cmd) {
	if m.running {
		return m, nil
	}
	it, ok := m.tables.SelectedItem().(specItem)
	if !ok {
		return m, nil
	}

	ch, cmd := startRunAsync(m.workspaceRoot, it.ref.Path, m.deps.logger(), m.deps.Debug)
	m.running = true
	m.runCh = ch
	m.setToast("Computing "+it.ref.Name+"…", false)
	return m, cmd
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)
	header := m.theme.Title.Render("xsecs") + "\n" +
		m.theme.Subtitle.Render("Cosmic-ray production cross sections: secondary e± and total inelastic") + "\n"

	var workspaceBanner string
	if m.workspaceFound {
		workspaceBanner = m.theme.Help.Render(fmt.Sprintf("Workspace: %s", m.workspaceRoot))
	} else {
		workspaceBanner = m.theme.Card.Render(
			"⚠ No workspace found.\n\nCreate one with " + menuInit + ".",
		)
	}

	var body, help string
	switch m.scr {
	case screenHome:
		body = m.theme.Card.Render(m.menu.View())
		help = "↑/↓ navigate • enter open • / search • q quit"

	case screenTables:
		body = m.theme.Card.Render(m.tables.View())
		help = "enter compute • r reload • / search • esc back"

	case screenRuns:
		body = m.theme.Card.Render(m.runs.View())
		help = "enter open • r reload • / search • esc back"

	case screenDetail:
		body = m.theme.Card.Render(
			renderRunSummary(m.detail, m.detailID) + "\n" +
				m.grid.View() + "\n\n" +
				renderChecks(m.detail.Checks),
		)
		help = "↑/↓ scroll • esc back • q home"

	case screenModels:
		body = m.theme.Card.Render(m.theme.Title.Render("Models") + "\n\n" + renderModels(m.models))
		help = "esc back • q home"

	default:
		return wrap.Render(header + "\n" + "unknown state")
	}

	out := header + "\n" + workspaceBanner + "\n\n" + body + "\n" + m.theme.Help.Render(help)
	if m.toast != "" {
		style := m.theme.Toast
		if m.toastErr {
			style = m.theme.Error
		}
		out += "\n" + style.Render(m.toast)
	}
	return wrap.Render(out)
}
