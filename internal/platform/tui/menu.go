package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/term2048/internal/core"
	"github.com/vovakirdan/term2048/internal/engine"
)

// MenuChoice is what the user picked in the main menu.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoiceScores
	ChoiceQuit
)

// MenuItem represents a selectable entry in the menu.
type MenuItem struct {
	Title  string
	Choice MenuChoice
}

var menuItems = []MenuItem{
	{Title: "Play", Choice: ChoicePlay},
	{Title: "High Scores", Choice: ChoiceScores},
	{Title: "Quit", Choice: ChoiceQuit},
}

// menuKeyMap holds the menu bindings.
type menuKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Scoring key.Binding
	Scores  key.Binding
	Quit    key.Binding
}

func defaultMenuKeyMap() menuKeyMap {
	return menuKeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "w", "k")),
		Down:    key.NewBinding(key.WithKeys("down", "s", "j")),
		Select:  key.NewBinding(key.WithKeys("enter", " ")),
		Scoring: key.NewBinding(key.WithKeys("left", "right", "h", "l", "m")),
		Scores:  key.NewBinding(key.WithKeys("tab")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
	}
}

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	cursor  int
	scoring engine.Scoring
	config  core.RuntimeConfig
	keys    menuKeyMap
	choice  MenuChoice
}

// NewMenuModel creates a new menu model.
func NewMenuModel(cfg core.RuntimeConfig, scoring engine.Scoring) MenuModel {
	return MenuModel{
		scoring: scoring,
		config:  cfg,
		keys:    defaultMenuKeyMap(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.choice = ChoiceQuit
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(menuItems)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Scoring):
		if m.scoring == engine.ScoreMerge {
			m.scoring = engine.ScoreBoardSum
		} else {
			m.scoring = engine.ScoreMerge
		}

	case key.Matches(msg, m.keys.Scores):
		m.choice = ChoiceScores
		return m, tea.Quit

	case key.Matches(msg, m.keys.Select):
		m.choice = menuItems[m.cursor].Choice
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.choice != ChoiceNone {
		return ""
	}

	var b strings.Builder
	width := m.config.ScreenW

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("202")).Render("2 0 4 8")
	b.WriteString("\n")
	b.WriteString(centerText(title, width))
	b.WriteString("\n\n")

	for i, item := range menuItems {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(fmt.Sprintf("%-16s", cursor+item.Title), width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(fmt.Sprintf("Scoring: < %s >", m.scoring), width))
	b.WriteString("\n\n")

	controls := "Up/Down: Navigate  |  Left/Right: Scoring  |  Enter: Select  |  Q: Quit"
	b.WriteString(centerText(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(controls), width))
	b.WriteString("\n")

	return b.String()
}

// Choice returns what the user picked, or ChoiceNone.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}

// Cursor returns the highlighted item index.
func (m MenuModel) Cursor() int {
	return m.cursor
}

// Scoring returns the selected scoring rule.
func (m MenuModel) Scoring() engine.Scoring {
	return m.scoring
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Choice  MenuChoice
	Scoring engine.Scoring
	Config  core.RuntimeConfig
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(cfg core.RuntimeConfig, scoring engine.Scoring) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(cfg, scoring),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Choice: ChoiceQuit, Scoring: scoring, Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok || m.Choice() == ChoiceNone {
		return MenuResult{Choice: ChoiceQuit, Scoring: scoring, Config: cfg}, nil
	}

	return MenuResult{
		Choice:  m.Choice(),
		Scoring: m.Scoring(),
		Config:  m.Config(),
	}, nil
}
