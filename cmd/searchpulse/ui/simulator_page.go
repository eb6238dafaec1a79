package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"searchpulse/internal/simulate"
	"searchpulse/internal/types"
)

// simField identifies one input on the simulator page.
type simField int

const (
	simFieldImpressions simField = iota
	simFieldCTR
	simFieldLift
	simFieldConvRate
	simFieldAOV
	simFieldCount
)

var simFieldLabels = [simFieldCount]string{
	"Impressions",
	"Current CTR",
	"Lift %",
	"Conv. rate",
	"Avg order value",
}

// SimulatorPageModel is the toy A/B simulator: given a baseline and an
// assumed relative lift it projects incremental clicks, conversions and
// revenue. A deterministic point estimate, recomputed on every committed
// parameter change.
type SimulatorPageModel struct {
	styles Styles
	width  int
	height int

	inputs [simFieldCount]textinput.Model
	focus  int // index into inputs, or -1 when browsing

	baselineQuery string // query the baseline was prefilled from, if any
	result        *types.SimulationResult
	errMsg        string
}

// NewSimulatorPageModel creates the page with the configured assumption
// defaults. The baseline (impressions, CTR) stays empty until a query is
// selected on the opportunities page or values are typed in.
func NewSimulatorPageModel(styles Styles, lift, convRate, aov float64) SimulatorPageModel {
	m := SimulatorPageModel{styles: styles, focus: -1}

	placeholders := [simFieldCount]string{"1000", "0.05", "15", "0.1", "50"}
	for i := range m.inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.CharLimit = 12
		in.Width = 10
		in.Prompt = ""
		m.inputs[i] = in
	}
	m.inputs[simFieldLift].SetValue(trimFloat(lift * 100))
	m.inputs[simFieldConvRate].SetValue(trimFloat(convRate))
	m.inputs[simFieldAOV].SetValue(trimFloat(aov))

	return m
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// SetSize updates the page dimensions.
func (m *SimulatorPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Prefill seeds the baseline from an opportunity and recomputes.
func (m *SimulatorPageModel) Prefill(o types.Opportunity) {
	m.baselineQuery = o.Query
	m.inputs[simFieldImpressions].SetValue(strconv.Itoa(o.Impressions))
	m.inputs[simFieldCTR].SetValue(strconv.FormatFloat(o.CTR, 'f', 4, 64))
	m.recompute()
}

// Result returns the current projection, if the inputs are valid.
func (m *SimulatorPageModel) Result() (types.SimulationResult, bool) {
	if m.result == nil {
		return types.SimulationResult{}, false
	}
	return *m.result, true
}

// recompute re-runs the projection from the committed inputs. Any invalid
// parameter clears the result and surfaces inline.
func (m *SimulatorPageModel) recompute() {
	m.errMsg = ""
	m.result = nil

	impressions, err := strconv.Atoi(strings.TrimSpace(m.inputs[simFieldImpressions].Value()))
	if err != nil {
		m.errMsg = types.NewInvalidParameter("impressions", m.inputs[simFieldImpressions].Value(), "not an integer").Error()
		return
	}
	ctr, err := m.floatField(simFieldCTR, "ctr")
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	liftPct, err := m.floatField(simFieldLift, "lift")
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	convRate, err := m.floatField(simFieldConvRate, "conversion_rate")
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	aov, err := m.floatField(simFieldAOV, "avg_order_value")
	if err != nil {
		m.errMsg = err.Error()
		return
	}

	result, err := simulate.Run(simulate.Params{
		Impressions:    impressions,
		CTR:            ctr,
		Lift:           liftPct / 100,
		ConversionRate: convRate,
		AvgOrderValue:  aov,
	})
	if err != nil {
		m.errMsg = err.Error()
		return
	}

	m.result = &result
}

func (m *SimulatorPageModel) floatField(f simField, param string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(m.inputs[f].Value()), 64)
	if err != nil {
		return 0, types.NewInvalidParameter(param, m.inputs[f].Value(), "not a number")
	}
	return v, nil
}

// Update handles key messages for this page.
func (m SimulatorPageModel) Update(msg tea.Msg) (SimulatorPageModel, tea.Cmd) {
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
		return m, nil

	case "esc":
		m.blur()
		return m, nil
	}

	if m.focus >= 0 && m.focus < int(simFieldCount) {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *SimulatorPageModel) cycleFocus() {
	next := m.focus + 1
	if next >= int(simFieldCount) {
		m.blur()
		return
	}
	m.focus = next
	for i := range m.inputs {
		if i == next {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m *SimulatorPageModel) blur() {
	m.focus = -1
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

// View renders the page.
func (m SimulatorPageModel) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Title.Render("A/B Lift Simulator"))
	sb.WriteString("\n")

	if m.baselineQuery != "" {
		sb.WriteString(m.styles.Subtitle.Render(fmt.Sprintf("Baseline from query %q", m.baselineQuery)))
		sb.WriteString("\n")
	}

	for i := range m.inputs {
		sb.WriteString(fmt.Sprintf("%s %s\n",
			m.styles.Label.Render(fmt.Sprintf("%-16s", simFieldLabels[i])),
			m.inputs[i].View()))
	}
	sb.WriteString(m.styles.Muted.Render("tab: next field · enter: project") + "\n\n")

	if m.errMsg != "" {
		sb.WriteString(m.styles.Error.Render(m.errMsg) + "\n")
		return sb.String()
	}

	if m.result == nil {
		sb.WriteString(m.styles.Muted.Render("Select a query on the Opportunities page or fill in a baseline."))
		sb.WriteString("\n")
		return sb.String()
	}

	r := m.result
	var card strings.Builder
	card.WriteString(fmt.Sprintf("Projected CTR          %.2f%%  (from %.2f%%)\n", r.ProjectedCTR*100, r.CurrentCTR*100))
	card.WriteString(fmt.Sprintf("Incremental clicks     %.1f\n", r.IncrementalClicks))
	card.WriteString(fmt.Sprintf("Incremental conv.      %.1f\n", r.IncrementalConversions))
	card.WriteString(fmt.Sprintf("Incremental revenue    $%.2f", r.IncrementalRevenue))
	sb.WriteString(m.styles.Card.Render(card.String()))
	sb.WriteString("\n")

	return sb.String()
}
