package models

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/thcheetah777/engine/cmd/debug/components"
	"github.com/thcheetah777/engine/internal/table"
)

const recentRollLimit = 10

// OverviewModel handles the system overview view
type OverviewModel struct {
	tables *table.Manager
	width  int
	height int

	tableCount  int64
	rollCount   int64
	recent      []table.RollLogEntry
	names       map[string]string
	lastUpdated time.Time
	errorMsg    string
}

// NewOverviewModel creates a new overview model
func NewOverviewModel(tables *table.Manager) OverviewModel {
	return OverviewModel{tables: tables}
}

// Init loads the overview and starts auto-refresh
func (m OverviewModel) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.tickCmd())
}

// Update handles overview messages
func (m OverviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return m, m.loadCmd()
		}

	case overviewLoadedMsg:
		m.tableCount = msg.tables
		m.rollCount = msg.rolls
		m.recent = msg.recent
		m.names = msg.names
		m.lastUpdated = time.Now()
		m.errorMsg = ""

	case loadErrorMsg:
		m.errorMsg = string(msg)

	case tickMsg:
		return m, tea.Batch(m.loadCmd(), m.tickCmd())
	}

	return m, nil
}

// View renders the overview
func (m OverviewModel) View() string {
	var s strings.Builder

	s.WriteString(components.TitleStyle.Render("Overview") + "\n\n")

	if m.errorMsg != "" {
		s.WriteString(components.ErrorStyle.Render("Error: "+m.errorMsg) + "\n\n")
	}

	counts := components.InfoPanelStyle.Render(fmt.Sprintf(
		"Tables: %d\nRolls:  %d", m.tableCount, m.rollCount,
	))

	var lines []string
	lines = append(lines, components.TableHeaderStyle.Render(
		fmt.Sprintf("%-8s %-16s %7s %s", "Time", "Table", "Sample", "Result")))
	if len(m.recent) == 0 {
		lines = append(lines, components.TableCellStyle.Render("No rolls yet"))
	}
	for _, roll := range m.recent {
		result := lipgloss.NewStyle().Foreground(components.MissColor).Render("miss")
		if roll.Hit {
			result = lipgloss.NewStyle().Foreground(components.HitColor).Render(roll.Label)
		}
		lines = append(lines, components.TableCellStyle.Render(fmt.Sprintf("%-8s %-16s %7.2f ",
			roll.RolledAt.Local().Format("15:04:05"), truncate(m.names[roll.TableID], 16), roll.Sample))+result)
	}
	recent := components.BorderStyle.Render(strings.Join(lines, "\n"))

	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, counts, " ", recent) + "\n\n")

	status := "Press 'r' to refresh • 'q' to go back"
	if !m.lastUpdated.IsZero() {
		status += " • updated " + m.lastUpdated.Format("15:04:05")
	}
	s.WriteString(components.StatusBarStyle.Width(m.width).Render(status))

	return s.String()
}

// SetSize updates the overview size
func (m *OverviewModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m OverviewModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		tables, rolls, err := m.tables.Counts(ctx)
		if err != nil {
			return loadErrorMsg(err.Error())
		}

		recent, err := m.tables.Recent(ctx, recentRollLimit)
		if err != nil {
			return loadErrorMsg(err.Error())
		}

		list, err := m.tables.ListTables(ctx)
		if err != nil {
			return loadErrorMsg(err.Error())
		}
		names := make(map[string]string, len(list))
		for _, t := range list {
			names[t.TableID] = t.Name
		}

		return overviewLoadedMsg{tables: tables, rolls: rolls, recent: recent, names: names}
	}
}

func (m OverviewModel) tickCmd() tea.Cmd {
	return tea.Tick(5*time.Second, func(t time.Time) tea.Msg {
		return tickMsg{}
	})
}

// Messages
type overviewLoadedMsg struct {
	tables int64
	rolls  int64
	recent []table.RollLogEntry
	names  map[string]string
}

type tickMsg struct{}
