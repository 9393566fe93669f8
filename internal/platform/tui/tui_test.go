package tui

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/loftwahnoid/internal/config"
	"github.com/vovakirdan/loftwahnoid/internal/core"
	"github.com/vovakirdan/loftwahnoid/internal/settings"
	"github.com/vovakirdan/loftwahnoid/internal/storage"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
)

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func send(t *testing.T, m AppModel, msgs ...tea.Msg) AppModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		app, ok := next.(AppModel)
		if !ok {
			t.Fatalf("Update returned %T, want AppModel", next)
		}
		m = app
	}
	return m
}

func TestKeyMapperGameKeys(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{runes("a"), core.ActionLeft},
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{runes("d"), core.ActionRight},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionLaunch},
		{runes("f"), core.ActionFire},
		{runes("x"), core.ActionFire},
		{runes("p"), core.ActionPause},
		{runes("r"), core.ActionRestart},
		{keyEsc, core.ActionBack},
		{runes("z"), core.ActionNone},
	}
	for _, tc := range tests {
		got, quit := km.MapKey(tc.msg)
		if got != tc.want || quit {
			t.Errorf("MapKey(%q) = %v, %v; want %v, false", tc.msg.String(), got, quit, tc.want)
		}
	}

	if _, quit := km.MapKey(runes("q")); !quit {
		t.Error("q should quit")
	}
	if _, quit := km.MapKey(tea.KeyMsg{Type: tea.KeyCtrlC}); !quit {
		t.Error("ctrl+c should quit")
	}
	if got := km.MapMusicKey(runes("m")); got != MusicToggle {
		t.Errorf("m = %v, want MusicToggle", got)
	}
	if got := km.MapMusicKey(runes("n")); got != MusicNext {
		t.Errorf("n = %v, want MusicNext", got)
	}
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.SetTint(0, 0, '#', 0xff0000)
	s.SetTint(1, 0, '#', 0xff0000)
	s.SetTint(2, 0, 'H', 0x880000)
	s.SetColor(3, 0, 'o', core.ColorWhite)
	s.DrawText(0, 1, "ab")

	got := ansiPattern.ReplaceAllString(RenderScreen(s), "")
	want := "##Ho  \nab    "
	if got != want {
		t.Errorf("RenderScreen text = %q, want %q", got, want)
	}
}

func TestSameStyle(t *testing.T) {
	red := core.Cell{Rune: '#', Tint: 0xff0000, Tinted: true}
	if !sameStyle(red, core.Cell{Rune: 'x', Tint: 0xff0000, Tinted: true}) {
		t.Error("equal tints should share a run")
	}
	if sameStyle(red, core.Cell{Rune: '#', Tint: 0x880000, Tinted: true}) {
		t.Error("different tints must split runs")
	}
	if sameStyle(red, core.Cell{Rune: '#', Color: core.ColorRed}) {
		t.Error("tinted and palette cells must split runs")
	}
}

func TestMenuOpensMusicScreen(t *testing.T) {
	m := NewAppModel(Env{}, testConfig())
	m = send(t, m, keyDown, keyDown, keyEnter)

	if m.view != viewMusic {
		t.Fatalf("view = %v, want music", m.view)
	}
	if !strings.Contains(m.View(), "MUSIC") {
		t.Error("music screen not rendered")
	}

	m = send(t, m, keyEnter)
	if !m.Env().Music.IsPlaying() {
		t.Error("Play / Pause should start the soundtrack")
	}
	if !m.Env().Settings.MusicPlaying() {
		t.Error("play state should persist")
	}

	m = send(t, m, keyEsc)
	if m.view != viewMenu {
		t.Errorf("view = %v, want menu after esc", m.view)
	}
}

func TestBackgroundPickerSaves(t *testing.T) {
	st := settings.New(nil)
	m := NewAppModel(Env{Settings: st}, testConfig())
	m = send(t, m, keyDown, keyEnter)
	if m.view != viewBackgrounds {
		t.Fatalf("view = %v, want backgrounds", m.view)
	}

	// Cursor starts on the stored choice "1"
	m = send(t, m, keyDown, keyEnter)
	if got := st.Background(); got != "2" {
		t.Errorf("Background() = %q, want \"2\"", got)
	}
	if m.view != viewMenu {
		t.Errorf("view = %v, want menu after saving", m.view)
	}
}

func TestStartGameAndLeaveWhenPaused(t *testing.T) {
	m := NewAppModel(Env{}, testConfig())
	m = send(t, m, keyEnter)
	if m.view != viewGame || m.game == nil {
		t.Fatalf("view = %v, want game", m.view)
	}

	m = send(t, m, TickMsg(time.Now()))
	if got := m.game.Game().Tick(); got != 1 {
		t.Errorf("Tick() = %d after one frame, want 1", got)
	}

	m = send(t, m, keyEsc)
	if m.view != viewGame {
		t.Fatal("esc during play must not leave the game")
	}

	m = send(t, m, runes("p"), TickMsg(time.Now()))
	if !m.game.Game().State().Paused {
		t.Fatal("game should be paused")
	}
	m = send(t, m, keyEsc)
	if m.view != viewMenu {
		t.Errorf("view = %v, want menu", m.view)
	}
}

func TestResizeKeepsGameRunning(t *testing.T) {
	m := NewAppModel(Env{}, testConfig())
	m = send(t, m, keyEnter, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	for range 5 {
		m = send(t, m, TickMsg(time.Now()))
	}
	lives := m.game.Game().Lives()

	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	g := m.game.Game()
	if g.Tick() != 5 || g.Lives() != lives || g.Level() != 1 {
		t.Errorf("resize restarted the game: tick %d lives %d level %d", g.Tick(), g.Lives(), g.Level())
	}
	if lines := strings.Split(m.View(), "\n"); len(lines) != 30 {
		t.Errorf("view has %d rows after resize, want 30", len(lines))
	}
}

func TestQuitFromGame(t *testing.T) {
	m := NewGameApp(Env{}, testConfig())
	next, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if next.(AppModel).View() != "" {
		t.Error("quitting app renders nothing")
	}
}

func TestEnvSaveScore(t *testing.T) {
	store := openStore(t)
	env := Env{Store: store, Mode: "hard", Player: "ana"}.withDefaults()

	env.SaveScore(120, 3)
	env.SaveScore(0, 1)

	scores, err := store.TopScores("hard", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("got %d scores, want 1 (zero scores are skipped)", len(scores))
	}
	got := scores[0]
	if got.Score != 120 || got.Level != 3 || got.Player != "ana" {
		t.Errorf("saved %+v", got)
	}
	if len(got.RunID) != 36 {
		t.Errorf("RunID %q is not a UUID", got.RunID)
	}
}

func TestScoreboardModes(t *testing.T) {
	store := openStore(t)
	for i, mode := range []string{"hard", "hard", "custom"} {
		entry := storage.ScoreEntry{RunID: fmt.Sprintf("r%d", i), Player: "p", Mode: mode, Score: 10 * (i + 1), Level: 1}
		if _, err := store.SaveScore(entry); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	m := NewScoreboardModel(store, string(config.DifficultyHard), 100, 30)
	if m.Mode() != "hard" {
		t.Fatalf("Mode() = %q, want hard", m.Mode())
	}
	if len(m.Scores()) != 2 {
		t.Errorf("got %d hard scores, want 2", len(m.Scores()))
	}
	if m.Scores()[0].Score != 20 {
		t.Errorf("best score = %d, want 20", m.Scores()[0].Score)
	}

	next, _ := m.Update(keyTab)
	m = next.(ScoreboardModel)
	if m.Mode() != "fixed" {
		t.Errorf("Mode() = %q after tab, want fixed", m.Mode())
	}

	next, _ = m.Update(keyTab)
	m = next.(ScoreboardModel)
	if m.Mode() != "custom" || len(m.Scores()) != 1 {
		t.Errorf("recorded modes follow the presets: got %q with %d scores", m.Mode(), len(m.Scores()))
	}

	next, _ = m.Update(keyTab)
	m = next.(ScoreboardModel)
	if m.Mode() != "normal" {
		t.Errorf("tab wraps around: got %q", m.Mode())
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, "", 60, 20)
	if len(m.Scores()) != 0 {
		t.Error("no store means no scores")
	}
	if !strings.Contains(m.View(), "No scores recorded yet") {
		t.Error("empty message missing")
	}
	next, _ := m.Update(keyEsc)
	if !next.(ScoreboardModel).IsGoingBack() {
		t.Error("esc goes back")
	}
}
