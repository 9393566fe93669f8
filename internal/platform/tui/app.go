package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/loftwahnoid/internal/core"
)

// view identifies the screen the app is showing.
type view int

const (
	viewMenu view = iota
	viewGame
	viewBackgrounds
	viewMusic
	viewControls
	viewScores
)

// AppModel is the top-level model: menu, option screens and the game.
// The local program and every SSH session run one AppModel each.
type AppModel struct {
	env      Env
	config   core.RuntimeConfig
	view     view
	menu     MenuModel
	game     *GameModel
	sub      tea.Model
	quitting bool
}

// NewAppModel creates an app that opens on the main menu.
func NewAppModel(env Env, cfg core.RuntimeConfig) AppModel {
	env = env.withDefaults()
	return AppModel{
		env:    env,
		config: cfg,
		menu:   NewMenuModel(cfg.ScreenW, cfg.ScreenH, env.Settings.HighScore()),
	}
}

// NewGameApp creates an app that starts straight into a game.
// Leaving the game returns to the main menu.
func NewGameApp(env Env, cfg core.RuntimeConfig) AppModel {
	m := NewAppModel(env, cfg)
	game := NewGameModel(m.env, cfg)
	m.game = &game
	m.view = viewGame
	return m
}

// Init initializes the current screen.
func (m AppModel) Init() tea.Cmd {
	if m.view == viewGame && m.game != nil {
		return m.game.Init()
	}
	return m.menu.Init()
}

// Update routes messages to the current screen.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.view {
	case viewGame:
		return m.updateGame(msg)
	case viewMenu:
		return m.updateMenu(msg)
	default:
		return m.updateSub(msg)
	}
}

// updateMenu handles the main menu and opens the chosen screen.
func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	chosen := m.menu.Chosen()
	if chosen == nil {
		return m, cmd
	}

	w, h := m.config.ScreenW, m.config.ScreenH
	switch *chosen {
	case ChoiceStart:
		game := NewGameModel(m.env, m.config)
		m.game = &game
		m.view = viewGame
		return m, m.game.Init()
	case ChoiceBackgrounds:
		m.sub, m.view = NewBackgroundModel(m.env.Settings, m.env.Sprites, w), viewBackgrounds
	case ChoiceMusic:
		m.sub, m.view = NewMusicModel(m.env.Music, w), viewMusic
	case ChoiceControls:
		m.sub, m.view = NewControlsModel(w), viewControls
	case ChoiceScores:
		var src ScoreSource
		if m.env.Store != nil {
			src = m.env.Store
		}
		m.sub, m.view = NewScoreboardModel(src, m.env.Mode, w, h), viewScores
	}
	return m, nil
}

// updateGame runs the game until the player leaves it.
func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if game, ok := next.(GameModel); ok {
		m.game = &game
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		m.game = nil
		return m.backToMenu()
	}
	return m, cmd
}

// updateSub runs an option screen until it reports done.
func (m AppModel) updateSub(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.sub.Update(msg)
	m.sub = next

	switch s := m.sub.(type) {
	case BackgroundModel:
		if s.Done() {
			return m.backToMenu()
		}
	case MusicModel:
		if s.Done() {
			return m.backToMenu()
		}
	case ControlsModel:
		if s.Done() {
			return m.backToMenu()
		}
	case ScoreboardModel:
		if s.IsQuitting() {
			m.quitting = true
			return m, tea.Quit
		}
		if s.IsGoingBack() {
			return m.backToMenu()
		}
	}
	return m, cmd
}

func (m AppModel) backToMenu() (tea.Model, tea.Cmd) {
	m.view = viewMenu
	m.sub = nil
	m.menu = NewMenuModel(m.config.ScreenW, m.config.ScreenH, m.env.Settings.HighScore())
	return m, m.menu.Init()
}

// View renders the current screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}
	switch {
	case m.view == viewGame && m.game != nil:
		return m.game.View()
	case m.view != viewMenu && m.sub != nil:
		return m.sub.View()
	}
	return m.menu.View()
}

// Env returns the environment the app runs with.
func (m AppModel) Env() Env { return m.env }

// Run starts the app in the local terminal. When playNow is set the game
// starts immediately.
func Run(env Env, cfg core.RuntimeConfig, playNow bool) error {
	model := NewAppModel(env, cfg)
	if playNow {
		model = NewGameApp(env, cfg)
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
