package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/loftwahnoid/internal/assets"
	"github.com/vovakirdan/loftwahnoid/internal/music"
	"github.com/vovakirdan/loftwahnoid/internal/settings"
)

// backgroundChoices are the values offered by the background picker, in order.
var backgroundChoices = []string{"0", "1", "2", "3", "4", "5", settings.BackgroundRandom}

func backgroundLabel(choice string) string {
	switch choice {
	case settings.BackgroundBlack:
		return "Black"
	case settings.BackgroundRandom:
		return "Random"
	default:
		return "Background " + choice
	}
}

// BackgroundModel lets the user pick the playfield background.
type BackgroundModel struct {
	store     *settings.Settings
	sprites   *assets.Catalog
	cursor    int
	width     int
	keyMapper *KeyMapper
	err       error
	done      bool
}

// NewBackgroundModel starts with the stored choice selected.
func NewBackgroundModel(store *settings.Settings, sprites *assets.Catalog, width int) BackgroundModel {
	m := BackgroundModel{store: store, sprites: sprites, width: width, keyMapper: NewKeyMapper()}
	current := store.Background()
	for i, c := range backgroundChoices {
		if c == current {
			m.cursor = i
		}
	}
	return m
}

func (m BackgroundModel) Init() tea.Cmd { return nil }

func (m BackgroundModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionUp:
			if m.cursor > 0 {
				m.cursor--
			}
		case MenuActionDown:
			if m.cursor < len(backgroundChoices)-1 {
				m.cursor++
			}
		case MenuActionSelect:
			m.err = m.store.SetBackground(backgroundChoices[m.cursor])
			if m.err == nil {
				m.done = true
			}
		case MenuActionBack, MenuActionQuit:
			m.done = true
		}
	}
	return m, nil
}

// swatch draws a short strip of the background pattern.
func (m BackgroundModel) swatch(choice string) string {
	n, err := strconv.Atoi(choice)
	if err != nil {
		return dimStyle.Render("? ? ? ?")
	}
	if n == 0 {
		return strings.Repeat(" ", 7)
	}
	sprite := m.sprites.Sprite(fmt.Sprintf("background%d", n))
	cell := sprite.Cell()
	return cellStyle(cell).Render(strings.Repeat(string(sprite.Glyph)+" ", 3) + string(sprite.Glyph))
}

func (m BackgroundModel) View() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("BACKGROUND"), m.width))
	b.WriteString("\n\n")

	for i, c := range backgroundChoices {
		label := fmt.Sprintf("%-14s %s", backgroundLabel(c), m.swatch(c))
		line := "  " + label
		if i == m.cursor {
			line = selectedStyle.Render("> ") + label
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(centerText(lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render(m.err.Error()), m.width))
		b.WriteString("\n")
	}
	b.WriteString(centerText(dimStyle.Render("Enter: Save  |  Esc: Back"), m.width))
	return b.String()
}

// Done reports whether the picker should close.
func (m BackgroundModel) Done() bool { return m.done }

// musicRows are the actions offered by the music screen.
var musicRows = []string{"Play / Pause", "Previous", "Next", "Loop"}

// MusicModel controls the soundtrack.
type MusicModel struct {
	player    *music.Player
	cursor    int
	width     int
	keyMapper *KeyMapper
	done      bool
}

// NewMusicModel creates the music screen for player.
func NewMusicModel(player *music.Player, width int) MusicModel {
	return MusicModel{player: player, width: width, keyMapper: NewKeyMapper()}
}

func (m MusicModel) Init() tea.Cmd { return nil }

func (m MusicModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionUp:
			if m.cursor > 0 {
				m.cursor--
			}
		case MenuActionDown:
			if m.cursor < len(musicRows)-1 {
				m.cursor++
			}
		case MenuActionLeft:
			m.player.Previous()
		case MenuActionRight:
			m.player.Next()
		case MenuActionSelect:
			switch m.cursor {
			case 0:
				m.player.PlayPause()
			case 1:
				m.player.Previous()
			case 2:
				m.player.Next()
			case 3:
				m.player.ToggleLoop()
			}
		case MenuActionBack, MenuActionQuit:
			m.done = true
		}
	}
	return m, nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (m MusicModel) View() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("MUSIC"), m.width))
	b.WriteString("\n\n")

	state := "paused"
	if m.player.IsPlaying() {
		state = "playing"
	}
	b.WriteString(centerText(fmt.Sprintf("Track: %s", m.player.CurrentTrackName()), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render(fmt.Sprintf("%s  |  loop %s", state, onOff(m.player.IsLooping()))), m.width))
	b.WriteString("\n")
	if m.player.Silent() {
		b.WriteString(centerText(dimStyle.Render("(no audio device)"), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, row := range musicRows {
		line := "  " + row
		if i == m.cursor {
			line = selectedStyle.Render("> " + row)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render("Enter: Select  |  Left/Right: Track  |  Esc: Back"), m.width))
	return b.String()
}

// Done reports whether the screen should close.
func (m MusicModel) Done() bool { return m.done }

// ControlsModel lists the in-game key bindings.
type ControlsModel struct {
	keys  GameKeyMap
	help  help.Model
	width int
	done  bool
}

// NewControlsModel creates the controls screen.
func NewControlsModel(width int) ControlsModel {
	h := help.New()
	h.ShowAll = true
	h.Width = width
	return ControlsModel{keys: DefaultGameKeyMap(), help: h, width: width}
}

func (m ControlsModel) Init() tea.Cmd { return nil }

func (m ControlsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	case tea.KeyMsg:
		m.done = true
	}
	return m, nil
}

func (m ControlsModel) View() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("CONTROLS"), m.width))
	b.WriteString("\n\n")
	for _, line := range strings.Split(m.help.View(m.keys), "\n") {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render("Mouse movement also steers the paddle."), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(dimStyle.Render("Press any key to return"), m.width))
	return b.String()
}

// Done reports whether the screen should close.
func (m ControlsModel) Done() bool { return m.done }
