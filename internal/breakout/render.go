package breakout

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/loftwahnoid/internal/core"
)

// Frame characters
const (
	BorderVert  = '│'
	BorderHoriz = '─'
	BorderTL    = '┌'
	BorderTR    = '┐'
)

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.screenTooSmall {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", MinScreenW, MinScreenH))
		return
	}

	g.renderBackground(dst)
	g.renderFrame(dst)
	g.renderHUD(dst)
	g.renderBricks(dst)
	g.renderPickups(dst)
	g.renderShots(dst)
	g.renderPaddle(dst)
	g.renderBalls(dst)
	g.renderOverlay(dst)
}

// renderBackground scatters the background glyph over the playfield.
func (g *Game) renderBackground(dst *core.Screen) {
	if g.background <= 0 {
		return
	}
	cell := g.deps.Sprites.Sprite(fmt.Sprintf("background%d", g.background)).Cell()
	for y := g.field.Top; y < g.field.Bottom; y++ {
		for x := g.field.Left; x < g.field.Right; x++ {
			if (x*7+y*13+g.background)%11 == 0 {
				dst.SetCell(x, y, cell)
			}
		}
	}
}

func (g *Game) renderFrame(dst *core.Screen) {
	top := g.field.Top - 1
	dst.DrawHLine(0, top, dst.Width(), BorderHoriz)
	dst.Set(0, top, BorderTL)
	dst.Set(dst.Width()-1, top, BorderTR)
	dst.DrawVLine(0, top+1, dst.Height()-top-1, BorderVert)
	dst.DrawVLine(dst.Width()-1, top+1, dst.Height()-top-1, BorderVert)
}

// renderHUD draws score, lives, level and high score on row 0 and the
// active power-ups over the top wall.
func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawTextColor(1, 0, fmt.Sprintf("Score: %d", g.score), core.ColorBrightWhite)

	livesText := fmt.Sprintf("Lives: %d   Level: %d", g.lives, g.level)
	dst.DrawTextCentered(0, livesText)

	highText := fmt.Sprintf("High: %d", g.HighScore())
	dst.DrawTextColor(dst.Width()-len(highText)-1, 0, highText, core.ColorYellow)

	if effects := g.effectsString(); effects != "" {
		dst.DrawTextColor(2, g.field.Top-1, " "+effects+" ", core.ColorBrightCyan)
	}
}

// effectsString lists active power-ups with whole seconds left.
func (g *Game) effectsString() string {
	var parts []string
	for _, t := range g.effects.Types() {
		remaining := g.effects.Remaining(t, g.tick)
		secs := (remaining + g.runtime.TickRate - 1) / g.runtime.TickRate
		parts = append(parts, fmt.Sprintf("%s %ds", t.Label(), secs))
	}
	return strings.Join(parts, "  ")
}

func (g *Game) renderBricks(dst *core.Screen) {
	for _, b := range g.wall.Bricks {
		if b.Destroyed() {
			continue
		}
		cell := g.deps.Sprites.Sprite(b.Type.SpriteKey()).Cell()
		if tint, ok := b.Tint(); ok {
			cell.Tint = tint
			cell.Tinted = true
		}
		for dy := range b.H {
			for dx := range b.W {
				dst.SetCell(b.X+dx, b.Y+dy, cell)
			}
		}
	}
}

func (g *Game) renderPickups(dst *core.Screen) {
	for _, p := range g.pickups {
		if !p.Active() {
			continue
		}
		dst.SetCell(p.CellX(), p.CellY(), g.deps.Sprites.Sprite(p.Type.IconKey()).Cell())
	}
}

func (g *Game) renderShots(dst *core.Screen) {
	cell := g.deps.Sprites.Sprite("projectile").Cell()
	for _, s := range g.shots {
		dst.SetCell(s.CellX(), s.CellY(), cell)
	}
}

func (g *Game) renderPaddle(dst *core.Screen) {
	cell := g.deps.Sprites.Sprite("paddle").Cell()
	x := g.paddle.CellX()
	for i := range g.paddle.Width() {
		dst.SetCell(x+i, g.paddle.Y, cell)
	}
}

func (g *Game) renderBalls(dst *core.Screen) {
	cell := g.deps.Sprites.Sprite("ball").Cell()
	for _, b := range g.balls {
		dst.SetCell(b.CellX(), b.CellY(), cell)
	}
}

// renderOverlay draws hints and state messages.
func (g *Game) renderOverlay(dst *core.Screen) {
	switch g.state {
	case StateActive:
		if g.mainDocked() {
			dst.DrawTextCenteredColor(dst.Height()-1, "Press SPACE to launch", core.ColorGray)
		}

	case StatePaused:
		g.drawCenteredBox(dst, "PAUSED", "P: resume  Esc: menu")

	case StateGameOver:
		g.drawCenteredBox(dst, "GAME OVER",
			fmt.Sprintf("Score: %d  High: %d", g.score, g.HighScore()),
			"R: restart  Esc: menu")
	}
}

func (g *Game) mainDocked() bool {
	for _, b := range g.balls {
		if b.Main && b.Docked {
			return true
		}
	}
	return false
}

// drawCenteredBox draws a centered message box: the title, a blank row and
// one row per line.
func (g *Game) drawCenteredBox(dst *core.Screen, title string, lines ...string) {
	w := dst.Width()
	h := dst.Height()

	boxW := len(title)
	for _, l := range lines {
		boxW = max(boxW, len(l))
	}
	boxW += 4
	boxH := 4 + len(lines)
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBoxColor(core.NewRect(boxX, boxY, boxW, boxH), core.ColorBrightWhite)

	dst.DrawTextColor(boxX+(boxW-len(title))/2, boxY+1, title, core.ColorBrightYellow)
	for i, l := range lines {
		dst.DrawText(boxX+(boxW-len(l))/2, boxY+3+i, l)
	}
}
