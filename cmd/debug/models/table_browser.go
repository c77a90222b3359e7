package models

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/thcheetah777/engine/cmd/debug/components"
	"github.com/thcheetah777/engine/internal/ranges"
	"github.com/thcheetah777/engine/internal/table"
)

const barWidth = 30

// TableBrowserModel lists stored tables and shows the buckets and roll stats
// of the selected one.
type TableBrowserModel struct {
	tables *table.Manager

	cursor int
	width  int
	height int

	// Data
	list        []table.Table
	stats       *table.Stats
	isLoading   bool
	lastUpdated time.Time
	errorMsg    string
	rollMsg     string
}

// NewTableBrowserModel creates a new table browser model
func NewTableBrowserModel(tables *table.Manager) TableBrowserModel {
	return TableBrowserModel{tables: tables}
}

// Init loads the table list
func (m TableBrowserModel) Init() tea.Cmd {
	return m.loadTablesCmd()
}

// Update handles table browser messages
func (m TableBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				m.stats = nil
				return m, m.loadStatsCmd()
			}
		case "down", "j":
			if m.cursor < len(m.list)-1 {
				m.cursor++
				m.stats = nil
				return m, m.loadStatsCmd()
			}
		case "r":
			m.isLoading = true
			return m, m.loadTablesCmd()
		case "enter", " ":
			// Persisted roll, shows up in stats and history
			return m, m.rollCmd()
		}

	case tablesLoadedMsg:
		m.list = msg.tables
		m.isLoading = false
		m.lastUpdated = time.Now()
		m.errorMsg = ""
		if m.cursor >= len(m.list) {
			m.cursor = max(len(m.list)-1, 0)
		}
		return m, m.loadStatsCmd()

	case statsLoadedMsg:
		if t := m.selected(); t != nil && t.TableID == msg.stats.TableID {
			m.stats = msg.stats
		}

	case rolledMsg:
		if msg.result.Hit {
			m.rollMsg = fmt.Sprintf("Rolled %.2f → %s", msg.result.Sample, msg.result.Label)
		} else {
			m.rollMsg = fmt.Sprintf("Rolled %.2f → miss", msg.result.Sample)
		}
		return m, m.loadStatsCmd()

	case loadErrorMsg:
		m.isLoading = false
		m.errorMsg = string(msg)
	}

	return m, nil
}

// View renders the table browser
func (m TableBrowserModel) View() string {
	var s strings.Builder

	s.WriteString(components.TitleStyle.Render("Table Browser") + "\n\n")

	if m.errorMsg != "" {
		s.WriteString(components.ErrorStyle.Render("Error: "+m.errorMsg) + "\n\n")
	}

	if len(m.list) == 0 {
		if m.isLoading {
			s.WriteString(components.BorderStyle.Render("Loading tables...") + "\n\n")
		} else {
			s.WriteString(components.BorderStyle.Render("No tables stored yet.\n\nCreate one with POST /api/v1/tables\nor start the server with TABLES_PATH set.") + "\n\n")
		}
	} else {
		listPanel := components.FocusedBorderStyle.Render(m.renderList())
		detailPanel := components.BorderStyle.Render(m.renderDetail())
		s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, listPanel, " ", detailPanel) + "\n\n")
	}

	if m.rollMsg != "" {
		s.WriteString(components.SubtitleStyle.Render(m.rollMsg) + "\n")
	}

	status := "↑/↓ select • Enter roll once • r refresh • q back"
	if !m.lastUpdated.IsZero() {
		status += " • updated " + m.lastUpdated.Format("15:04:05")
	}
	s.WriteString(components.StatusBarStyle.Width(m.width).Render(status))

	return s.String()
}

func (m TableBrowserModel) renderList() string {
	var lines []string
	lines = append(lines, components.TableHeaderStyle.Render("Tables"))
	for i, t := range m.list {
		line := fmt.Sprintf("%-20s %2d buckets", truncate(t.Name, 20), len(t.Buckets))
		if i == m.cursor {
			lines = append(lines, components.TableSelectedCellStyle.Render(line))
		} else {
			lines = append(lines, components.TableCellStyle.Render(line))
		}
	}
	return strings.Join(lines, "\n")
}

func (m TableBrowserModel) renderDetail() string {
	t := m.selected()
	if t == nil {
		return ""
	}

	var lines []string
	lines = append(lines, components.SubtitleStyle.Render(t.Name))
	if t.Description != "" {
		lines = append(lines, components.TableCellStyle.Render(t.Description))
	}
	lines = append(lines, "")

	colors := components.BucketColors(len(t.Buckets))
	shares := ranges.Share(t.Intervals())
	for i, b := range t.Buckets {
		expected := shares[i]
		observed := -1.0
		if m.stats != nil && i < len(m.stats.Buckets) && m.stats.Total > 0 {
			observed = m.stats.Buckets[i].Observed
		}

		share := "    - "
		if observed >= 0 {
			share = fmt.Sprintf("%5.1f%%", observed*100)
		}
		lines = append(lines, fmt.Sprintf("%-14s [%6.2f, %6.2f) %5.1f%% %s %s",
			truncate(b.Label, 14), b.Low, b.High, expected*100,
			components.Bar(max(observed, 0), expected, barWidth, colors[i]), share))
	}

	if m.stats != nil {
		lines = append(lines, "",
			fmt.Sprintf("Rolls: %d • Misses: %d", m.stats.Total, m.stats.Misses))
	}
	return strings.Join(lines, "\n")
}

// SetSize updates the browser size
func (m *TableBrowserModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m TableBrowserModel) selected() *table.Table {
	if m.cursor < 0 || m.cursor >= len(m.list) {
		return nil
	}
	return &m.list[m.cursor]
}

func (m TableBrowserModel) loadTablesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		tables, err := m.tables.ListTables(ctx)
		if err != nil {
			return loadErrorMsg(err.Error())
		}
		return tablesLoadedMsg{tables: tables}
	}
}

func (m TableBrowserModel) loadStatsCmd() tea.Cmd {
	t := m.selected()
	if t == nil {
		return nil
	}
	tableID := t.TableID

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		stats, err := m.tables.Stats(ctx, tableID)
		if err != nil {
			return loadErrorMsg(err.Error())
		}
		return statsLoadedMsg{stats: stats}
	}
}

func (m TableBrowserModel) rollCmd() tea.Cmd {
	t := m.selected()
	if t == nil {
		return nil
	}
	tableID := t.TableID

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		resp, err := m.tables.Roll(ctx, tableID, 1)
		if err != nil {
			return loadErrorMsg(err.Error())
		}
		return rolledMsg{result: resp.Rolls[0]}
	}
}

func truncate(s string, n int) string {
	if len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n-1]) + "…"
}

// Messages
type tablesLoadedMsg struct {
	tables []table.Table
}

type statsLoadedMsg struct {
	stats *table.Stats
}

type rolledMsg struct {
	result table.RollResult
}

type loadErrorMsg string
