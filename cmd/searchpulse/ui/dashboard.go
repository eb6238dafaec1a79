package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"searchpulse/internal/config"
	"searchpulse/internal/dataset"
	"searchpulse/internal/logging"
	"searchpulse/internal/metrics"
	"searchpulse/internal/types"
)

// Page identifies one dashboard tab.
type Page int

const (
	PageOverview Page = iota
	PageOpportunities
	PageSimulator
	pageCount
)

var pageTitles = [pageCount]string{"Overview", "Opportunities", "Simulator"}

// DatasetChangedMsg is sent from outside the program (the fsnotify watcher)
// when the dataset file changed on disk.
type DatasetChangedMsg struct{}

// datasetLoadedMsg carries the result of an asynchronous dataset load.
type datasetLoadedMsg struct {
	events []types.SearchEvent
	err    error
}

// Model is the root dashboard model. It owns the loaded dataset; pages
// recompute from it synchronously on every committed parameter change.
type Model struct {
	styles   Styles
	width    int
	height   int
	dataPath string
	cfg      config.DashboardConfig

	page     Page
	overview OverviewPageModel
	opps     OpportunityPageModel
	sim      SimulatorPageModel

	loaded  bool
	loadErr string // blocking dataset error; replaces all pages until resolved
	status  string
}

// NewModel creates the dashboard for the dataset at dataPath.
func NewModel(dataPath string, cfg config.DashboardConfig, styles Styles) Model {
	return Model{
		styles:   styles,
		dataPath: dataPath,
		cfg:      cfg,
		page:     PageOverview,
		overview: NewOverviewPageModel(styles, cfg.TopQueries),
		opps:     NewOpportunityPageModel(styles, cfg.MinImpressions, cfg.TargetCTR),
		sim:      NewSimulatorPageModel(styles, cfg.Lift, cfg.ConversionRate, cfg.AvgOrderValue),
	}
}

// Init loads the dataset.
func (m Model) Init() tea.Cmd {
	return loadDatasetCmd(m.dataPath)
}

func loadDatasetCmd(path string) tea.Cmd {
	return func() tea.Msg {
		events, err := dataset.Load(path)
		return datasetLoadedMsg{events: events, err: err}
	}
}

// Update handles all messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		contentH := m.height - 4
		if contentH < 4 {
			contentH = 4
		}
		m.overview.SetSize(m.width, contentH)
		m.opps.SetSize(m.width, contentH)
		m.sim.SetSize(m.width, contentH)
		return m, nil

	case DatasetChangedMsg:
		m.status = "dataset changed, reloading..."
		return m, loadDatasetCmd(m.dataPath)

	case datasetLoadedMsg:
		return m.applyLoad(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) applyLoad(msg datasetLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		logging.Get(logging.CategoryDashboard).Error("dataset load failed: %v", msg.err)
		m.loadErr = msg.err.Error()
		m.status = ""
		return m, nil
	}

	m.loadErr = ""
	m.loaded = true
	m.status = fmt.Sprintf("loaded %d events from %s", len(msg.events), m.dataPath)
	logging.Dashboard("loaded %d events", len(msg.events))

	report := metrics.Compute(msg.events)
	m.overview.UpdateContent(report)
	m.opps.UpdateContent(report.Queries)
	if o, ok := m.opps.Selected(); ok {
		m.sim.Prefill(o)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Ctrl+C always quits, even mid-edit.
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if !m.editing() {
		switch key {
		case "q":
			return m, tea.Quit
		case "1":
			return m.switchPage(PageOverview)
		case "2":
			return m.switchPage(PageOpportunities)
		case "3":
			return m.switchPage(PageSimulator)
		case "right", "l":
			return m.switchPage((m.page + 1) % pageCount)
		case "left", "h":
			return m.switchPage((m.page + pageCount - 1) % pageCount)
		case "r":
			m.status = "reloading..."
			return m, loadDatasetCmd(m.dataPath)
		}
	}

	var cmd tea.Cmd
	switch m.page {
	case PageOverview:
		m.overview, cmd = m.overview.Update(msg)
	case PageOpportunities:
		m.opps, cmd = m.opps.Update(msg)
	case PageSimulator:
		m.sim, cmd = m.sim.Update(msg)
	}
	return m, cmd
}

func (m Model) editing() bool {
	switch m.page {
	case PageOpportunities:
		return m.opps.focus != oppFocusBrowse
	case PageSimulator:
		return m.sim.focus >= 0
	}
	return false
}

func (m Model) switchPage(p Page) (tea.Model, tea.Cmd) {
	m.page = p
	// Entering the simulator seeds the baseline from the selected
	// opportunity, unless it already came from that query.
	if p == PageSimulator {
		if o, ok := m.opps.Selected(); ok && m.sim.baselineQuery != o.Query {
			m.sim.Prefill(o)
		}
	}
	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	var sb strings.Builder

	title := m.styles.Header.Render("searchpulse")
	tabs := make([]string, 0, pageCount)
	for p := Page(0); p < pageCount; p++ {
		style := m.styles.Tab
		if p == m.page {
			style = m.styles.TabOn
		}
		tabs = append(tabs, style.Render(fmt.Sprintf("%d %s", p+1, pageTitles[p])))
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, title, strings.Join(tabs, "")))
	sb.WriteString("\n")
	sb.WriteString(m.styles.RenderDivider(m.width))
	sb.WriteString("\n")

	if m.loadErr != "" {
		sb.WriteString(m.styles.Error.Render("Dataset error"))
		sb.WriteString("\n\n")
		sb.WriteString(m.styles.Body.Render(m.loadErr))
		sb.WriteString("\n\n")
		sb.WriteString(m.styles.Muted.Render("Fix the file (or rerun `searchpulse generate`) and press r to retry."))
		sb.WriteString("\n")
		return sb.String()
	}

	switch m.page {
	case PageOverview:
		sb.WriteString(m.overview.View())
	case PageOpportunities:
		sb.WriteString(m.opps.View())
	case PageSimulator:
		sb.WriteString(m.sim.View())
	}
	sb.WriteString("\n")

	footer := "1/2/3: pages · r: reload · q: quit"
	if m.status != "" {
		footer = m.status + "  ·  " + footer
	}
	sb.WriteString(m.styles.Footer.Render(footer))

	return sb.String()
}
