package models

import (
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/log"

	"github.com/thcheetah777/engine/internal/table"
)

// ViewType represents the different views in the debug tool
type ViewType int

const (
	MenuView ViewType = iota
	TableBrowserView
	RollSimulatorView
	OverviewView

	viewCount = 4
)

// ParseView maps a -view flag value onto a ViewType.
func ParseView(name string) ViewType {
	switch name {
	case "tables":
		return TableBrowserView
	case "simulator":
		return RollSimulatorView
	case "overview":
		return OverviewView
	default:
		return MenuView
	}
}

// App is the main application model
type App struct {
	tables *table.Manager

	// Current state
	currentView ViewType
	width       int
	height      int

	// View models
	menu      MenuModel
	browser   TableBrowserModel
	simulator RollSimulatorModel
	overview  OverviewModel

	// UI state
	showHelp bool
}

// NewApp creates a new application instance
func NewApp(tables *table.Manager, startView string) *App {
	return &App{
		tables:      tables,
		currentView: ParseView(startView),
		menu:        NewMenuModel(),
		browser:     NewTableBrowserModel(tables),
		simulator:   NewRollSimulatorModel(tables),
		overview:    NewOverviewModel(tables),
	}
}

// Init initializes the application
func (m *App) Init() tea.Cmd {
	log.Debug("Initializing debug tool", "view", m.currentView)
	return m.currentModel().Init()
}

// Update handles messages and updates the application state
func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		m.menu.SetSize(msg.Width, msg.Height)
		m.browser.SetSize(msg.Width, msg.Height)
		m.simulator.SetSize(msg.Width, msg.Height)
		m.overview.SetSize(msg.Width, msg.Height)

		return m, nil

	case tea.KeyMsg:
		// Global key bindings
		switch msg.String() {
		case "ctrl+c", "q":
			if m.currentView == MenuView {
				return m, tea.Quit
			}
			// If not in menu, go back to menu instead of quitting
			m.currentView = MenuView
			return m, m.menu.Init()

		case "?":
			m.showHelp = !m.showHelp
			return m, nil

		case "tab":
			m.currentView = ViewType((int(m.currentView) + 1) % viewCount)
			return m, m.currentModel().Init()
		}

	case SwitchViewMsg:
		m.currentView = msg.View
		return m, m.currentModel().Init()
	}

	if m.showHelp {
		return m, nil
	}

	// Route message to current view
	switch m.currentView {
	case MenuView:
		newModel, cmd := m.menu.Update(msg)
		m.menu = newModel.(MenuModel)
		return m, cmd
	case TableBrowserView:
		newModel, cmd := m.browser.Update(msg)
		m.browser = newModel.(TableBrowserModel)
		return m, cmd
	case RollSimulatorView:
		newModel, cmd := m.simulator.Update(msg)
		m.simulator = newModel.(RollSimulatorModel)
		return m, cmd
	case OverviewView:
		newModel, cmd := m.overview.Update(msg)
		m.overview = newModel.(OverviewModel)
		return m, cmd
	}

	return m, nil
}

// View renders the application
func (m *App) View() string {
	if m.showHelp {
		return m.renderHelp()
	}

	switch m.currentView {
	case MenuView:
		return m.menu.View()
	case TableBrowserView:
		return m.browser.View()
	case RollSimulatorView:
		return m.simulator.View()
	case OverviewView:
		return m.overview.View()
	}

	return "Unknown view"
}

func (m *App) currentModel() tea.Model {
	switch m.currentView {
	case TableBrowserView:
		return m.browser
	case RollSimulatorView:
		return m.simulator
	case OverviewView:
		return m.overview
	}
	return m.menu
}

func (m *App) renderHelp() string {
	help := `
┌─ Roll Table Debug Tool - Help ────────────────────────┐
│                                                       │
│ Global Keys:                                          │
│   q, Ctrl+C    Quit (from menu) / Back to menu        │
│   ?            Toggle this help                       │
│   Tab          Cycle through views                    │
│   1-3          Select view (from menu)                │
│                                                       │
│ Views:                                                │
│   1. Table Browser   - Tables, buckets and stats      │
│   2. Roll Simulator  - Local rolls vs expected share  │
│   3. Overview        - Counts and recent rolls        │
│                                                       │
│ Navigation:                                           │
│   ↑/↓ or j/k   Move selection                         │
│   ←/→ or h/l   Change simulator table                 │
│   Enter        Select / run                           │
│   r            Refresh current view                   │
│                                                       │
│ Press ? again to close this help                      │
└───────────────────────────────────────────────────────┘
`
	return help
}

// SwitchViewMsg is a message to switch views
type SwitchViewMsg struct {
	View ViewType
}

// NewSwitchViewMsg creates a new switch view message
func NewSwitchViewMsg(view ViewType) SwitchViewMsg {
	return SwitchViewMsg{View: view}
}
