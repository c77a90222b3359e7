package models

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/thcheetah777/engine/cmd/debug/components"
	"github.com/thcheetah777/engine/internal/table"
)

var simulationSizes = []int{100, 1000, 10000, 100000}

// RollSimulatorModel rolls a table locally, without touching the roll log,
// and compares the outcome with each bucket's expected share.
type RollSimulatorModel struct {
	tables *table.Manager

	width  int
	height int

	list     []table.Table
	tableIdx int
	sizeIdx  int
	result   *table.Simulation
	elapsed  time.Duration
	errorMsg string
}

// NewRollSimulatorModel creates a new roll simulator model
func NewRollSimulatorModel(tables *table.Manager) RollSimulatorModel {
	return RollSimulatorModel{
		tables:  tables,
		sizeIdx: 1,
	}
}

// Init loads the tables to simulate
func (m RollSimulatorModel) Init() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		tables, err := m.tables.ListTables(ctx)
		if err != nil {
			return loadErrorMsg(err.Error())
		}
		return simulatorTablesMsg{tables: tables}
	}
}

// Update handles simulator messages
func (m RollSimulatorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			if len(m.list) > 0 {
				m.tableIdx = (m.tableIdx - 1 + len(m.list)) % len(m.list)
				m.result = nil
			}
		case "right", "l":
			if len(m.list) > 0 {
				m.tableIdx = (m.tableIdx + 1) % len(m.list)
				m.result = nil
			}
		case "up", "k", "+":
			if m.sizeIdx < len(simulationSizes)-1 {
				m.sizeIdx++
			}
		case "down", "j", "-":
			if m.sizeIdx > 0 {
				m.sizeIdx--
			}
		case "enter", " ":
			return m, m.simulateCmd()
		case "r":
			return m, m.Init()
		}

	case simulatorTablesMsg:
		m.list = msg.tables
		m.result = nil
		m.errorMsg = ""
		if m.tableIdx >= len(m.list) {
			m.tableIdx = 0
		}

	case simulationMsg:
		// Drop results for a table that is no longer selected
		if t := m.selected(); t != nil && t.TableID == msg.tableID {
			m.result = &msg.sim
			m.elapsed = msg.elapsed
		}

	case loadErrorMsg:
		m.errorMsg = string(msg)
	}

	return m, nil
}

// View renders the simulator
func (m RollSimulatorModel) View() string {
	var s strings.Builder

	s.WriteString(components.TitleStyle.Render("Roll Simulator") + "\n\n")

	if m.errorMsg != "" {
		s.WriteString(components.ErrorStyle.Render("Error: "+m.errorMsg) + "\n\n")
	}

	if len(m.list) == 0 {
		s.WriteString(components.BorderStyle.Render("No tables to simulate.") + "\n\n")
	} else {
		t := m.list[m.tableIdx]
		header := fmt.Sprintf("Table: %s (%d/%d)   Rolls: %d", t.Name, m.tableIdx+1, len(m.list), simulationSizes[m.sizeIdx])
		s.WriteString(components.SubtitleStyle.Render(header) + "\n\n")
		s.WriteString(components.BorderStyle.Render(m.renderHistogram(t)) + "\n\n")
	}

	s.WriteString(components.StatusBarStyle.Width(m.width).Render(
		"←/→ table • ↑/↓ roll count • Enter simulate • r reload • q back",
	))

	return s.String()
}

func (m RollSimulatorModel) renderHistogram(t table.Table) string {
	if m.result == nil {
		return "Press Enter to simulate."
	}

	colors := components.BucketColors(len(t.Buckets))
	lines := []string{
		components.TableHeaderStyle.Render(fmt.Sprintf("%-14s %9s %9s %8s", "Bucket", "Expected", "Observed", "Count")),
	}
	for i, b := range t.Buckets {
		if i >= len(m.result.Expected) {
			break
		}
		expected := m.result.Expected[i]
		observed := m.result.Observed(i)
		lines = append(lines, fmt.Sprintf("%-14s %8.2f%% %8.2f%% %8d %s",
			truncate(b.Label, 14), expected*100, observed*100, m.result.Counts[i],
			components.Bar(observed, expected, barWidth, colors[i])))
	}

	missShare := 0.0
	if m.result.Rolls > 0 {
		missShare = float64(m.result.Misses) / float64(m.result.Rolls)
	}
	lines = append(lines, "",
		fmt.Sprintf("Misses: %d (%.2f%%) • took %s", m.result.Misses, missShare*100, m.elapsed.Round(time.Microsecond)))
	return strings.Join(lines, "\n")
}

// SetSize updates the simulator size
func (m *RollSimulatorModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m RollSimulatorModel) selected() *table.Table {
	if m.tableIdx < 0 || m.tableIdx >= len(m.list) {
		return nil
	}
	return &m.list[m.tableIdx]
}

func (m RollSimulatorModel) simulateCmd() tea.Cmd {
	sel := m.selected()
	if sel == nil {
		return nil
	}
	t := *sel
	n := simulationSizes[m.sizeIdx]
	r := m.tables.Rand()

	return func() tea.Msg {
		start := time.Now()
		sim := table.Simulate(r, &t, n)
		return simulationMsg{tableID: t.TableID, sim: sim, elapsed: time.Since(start)}
	}
}

// Messages
type simulatorTablesMsg struct {
	tables []table.Table
}

type simulationMsg struct {
	tableID string
	sim     table.Simulation
	elapsed time.Duration
}
