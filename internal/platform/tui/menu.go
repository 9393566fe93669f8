package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// MenuChoice is an entry of the main menu.
type MenuChoice int

const (
	ChoiceStart MenuChoice = iota
	ChoiceBackgrounds
	ChoiceMusic
	ChoiceControls
	ChoiceScores
	ChoiceQuit
)

var menuLabels = []string{
	ChoiceStart:       "Start Game",
	ChoiceBackgrounds: "Backgrounds",
	ChoiceMusic:       "Music",
	ChoiceControls:    "Controls",
	ChoiceScores:      "High Scores",
	ChoiceQuit:        "Quit",
}

// String returns the menu label.
func (c MenuChoice) String() string {
	if c < 0 || int(c) >= len(menuLabels) {
		return "Unknown"
	}
	return menuLabels[c]
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff5fd7"))
	logoStyle     = titleStyle.Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("#5fd7ff")).Padding(0, 3)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel is the main menu.
type MenuModel struct {
	cursor    int
	width     int
	height    int
	highScore int
	keyMapper *KeyMapper
	chosen    *MenuChoice
	quitting  bool
}

// NewMenuModel creates the main menu. highScore is shown under the title.
func NewMenuModel(width, height, highScore int) MenuModel {
	return MenuModel{
		width:     width,
		height:    height,
		highScore: highScore,
		keyMapper: NewKeyMapper(),
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
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(menuLabels)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		choice := MenuChoice(m.cursor)
		if choice == ChoiceQuit {
			m.quitting = true
			return m, tea.Quit
		}
		m.chosen = &choice
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, line := range strings.Split(logoStyle.Render("L O F T W A H N O I D"), "\n") {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render(fmt.Sprintf("High score: %d", m.highScore)), m.width))
	b.WriteString("\n\n")

	for i, label := range menuLabels {
		line := "  " + label
		if i == m.cursor {
			line = selectedStyle.Render("> " + label)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render("Up/Down: Navigate  |  Enter: Select  |  Q: Quit"), m.width))
	b.WriteString("\n")
	return b.String()
}

// Chosen returns the selected entry, or nil while browsing.
func (m MenuModel) Chosen() *MenuChoice {
	return m.chosen
}

// IsQuitting returns true if the user asked to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// centerText centers text within the given width. ANSI styling is ignored
// when measuring.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
