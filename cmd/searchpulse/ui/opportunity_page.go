package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"searchpulse/internal/opportunity"
	"searchpulse/internal/types"
)

// Focus slots on the opportunities page. Browse means keys move the table
// selection instead of editing an input.
const (
	oppFocusBrowse = iota - 1
	oppFocusFloor
	oppFocusTarget
)

// OpportunityPageModel renders the opportunity ranking with the two
// adjustable thresholds: the impression floor and the target CTR benchmark.
// Every committed change recomputes synchronously from the loaded metrics.
type OpportunityPageModel struct {
	styles Styles
	width  int
	height int

	floorInput  textinput.Model
	targetInput textinput.Model
	focus       int

	queries  []types.QueryMetrics
	opps     []types.Opportunity
	selected int
	errMsg   string
}

// NewOpportunityPageModel creates the page with initial threshold values.
func NewOpportunityPageModel(styles Styles, floor int, targetCTR float64) OpportunityPageModel {
	fi := textinput.New()
	fi.Placeholder = "20"
	fi.SetValue(strconv.Itoa(floor))
	fi.CharLimit = 10
	fi.Width = 8
	fi.Prompt = ""

	ti := textinput.New()
	ti.Placeholder = "0.30"
	ti.SetValue(strconv.FormatFloat(targetCTR, 'g', -1, 64))
	ti.CharLimit = 10
	ti.Width = 8
	ti.Prompt = ""

	return OpportunityPageModel{
		styles:      styles,
		floorInput:  fi,
		targetInput: ti,
		focus:       oppFocusBrowse,
		selected:    -1,
	}
}

// SetSize updates the page dimensions.
func (m *OpportunityPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// UpdateContent replaces the metrics the ranking is computed from and
// recomputes with the current thresholds.
func (m *OpportunityPageModel) UpdateContent(queries []types.QueryMetrics) {
	m.queries = queries
	m.recompute()
}

// Opportunities returns the current ranking.
func (m *OpportunityPageModel) Opportunities() []types.Opportunity {
	return m.opps
}

// Selected returns the highlighted opportunity, if any.
func (m *OpportunityPageModel) Selected() (types.Opportunity, bool) {
	if m.selected < 0 || m.selected >= len(m.opps) {
		return types.Opportunity{}, false
	}
	return m.opps[m.selected], true
}

// recompute re-runs the finder with the values currently committed in the
// inputs. An invalid parameter clears the ranking; the previous view is not
// preserved.
func (m *OpportunityPageModel) recompute() {
	m.errMsg = ""

	floor, err := strconv.Atoi(strings.TrimSpace(m.floorInput.Value()))
	if err != nil {
		m.errMsg = types.NewInvalidParameter("min_impressions", m.floorInput.Value(), "not an integer").Error()
		m.opps = nil
		m.selected = -1
		return
	}
	target, err := strconv.ParseFloat(strings.TrimSpace(m.targetInput.Value()), 64)
	if err != nil {
		m.errMsg = types.NewInvalidParameter("target_ctr", m.targetInput.Value(), "not a number").Error()
		m.opps = nil
		m.selected = -1
		return
	}

	opps, err := opportunity.Find(m.queries, floor, target)
	if err != nil {
		m.errMsg = err.Error()
		m.opps = nil
		m.selected = -1
		return
	}

	m.opps = opps
	if len(m.opps) == 0 {
		m.selected = -1
	} else if m.selected < 0 || m.selected >= len(m.opps) {
		m.selected = 0
	}
}

// Update handles key messages for this page.
func (m OpportunityPageModel) Update(msg tea.Msg) (OpportunityPageModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "tab":
		m.cycleFocus()
		return m, nil

	case "enter":
		m.recompute()
		m.blur()
		return m, nil

	case "esc":
		m.blur()
		return m, nil

	case "up", "k":
		if m.focus == oppFocusBrowse && m.selected > 0 {
			m.selected--
			return m, nil
		}

	case "down", "j":
		if m.focus == oppFocusBrowse && m.selected < len(m.opps)-1 {
			m.selected++
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case oppFocusFloor:
		m.floorInput, cmd = m.floorInput.Update(msg)
	case oppFocusTarget:
		m.targetInput, cmd = m.targetInput.Update(msg)
	}
	return m, cmd
}

func (m *OpportunityPageModel) cycleFocus() {
	switch m.focus {
	case oppFocusBrowse:
		m.focus = oppFocusFloor
		m.floorInput.Focus()
		m.targetInput.Blur()
	case oppFocusFloor:
		m.focus = oppFocusTarget
		m.floorInput.Blur()
		m.targetInput.Focus()
	default:
		m.blur()
	}
}

func (m *OpportunityPageModel) blur() {
	m.focus = oppFocusBrowse
	m.floorInput.Blur()
	m.targetInput.Blur()
}

// View renders the page.
func (m OpportunityPageModel) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Title.Render("Opportunities"))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("%s %s   %s %s\n",
		m.styles.Label.Render("Impression floor:"), m.floorInput.View(),
		m.styles.Label.Render("Target CTR:"), m.targetInput.View()))
	sb.WriteString(m.styles.Muted.Render("tab: edit thresholds · enter: apply · ↑/↓: select query") + "\n\n")

	if m.errMsg != "" {
		sb.WriteString(m.styles.Error.Render(m.errMsg) + "\n")
		return sb.String()
	}

	if len(m.opps) == 0 {
		sb.WriteString(m.styles.Muted.Render("No queries below the target CTR at this volume floor."))
		sb.WriteString("\n")
		return sb.String()
	}

	table := NewSimpleTable("", "#", "Query", "Impressions", "CTR", "Gap", "Score")
	table.RightAlign = []bool{true, false, true, true, true, true}
	table.Selected = m.selected
	for i, o := range m.opps {
		table.AddRow(
			strconv.Itoa(i+1),
			o.Query,
			strconv.Itoa(o.Impressions),
			fmt.Sprintf("%.1f%%", o.CTR*100),
			fmt.Sprintf("%.1f pp", o.Gap*100),
			fmt.Sprintf("%.1f", o.Score),
		)
	}
	sb.WriteString(table.View(m.styles))

	return sb.String()
}
