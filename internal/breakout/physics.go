package breakout

import (
	"math"

	"github.com/vovakirdan/loftwahnoid/internal/core"
)

// Ball represents one ball with fixed-point coordinates.
type Ball struct {
	X, Y   Fixed // Position (center)
	VX, VY Fixed // Velocity per tick
	Main   bool  // Losing the main ball costs a life
	Docked bool  // Resting on the paddle, waiting for launch
}

// CellX returns the ball's X position in cell coordinates.
func (b *Ball) CellX() int {
	return b.X.ToCell()
}

// CellY returns the ball's Y position in cell coordinates.
func (b *Ball) CellY() int {
	return b.Y.ToCell()
}

// Speed returns the velocity magnitude in units per tick.
func (b *Ball) Speed() Fixed {
	return Fixed(math.Round(math.Hypot(float64(b.VX), float64(b.VY))))
}

// SetSpeed rescales the velocity, keeping its direction.
// A ball at rest stays at rest.
func (b *Ball) SetSpeed(speed Fixed) {
	cur := math.Hypot(float64(b.VX), float64(b.VY))
	if cur == 0 {
		return
	}
	k := float64(speed) / cur
	b.VX = b.VX.Scaled(k)
	b.VY = b.VY.Scaled(k)
}

// SetAngle points the ball at angle degrees from straight up, positive to the right.
func (b *Ball) SetAngle(degrees float64, speed Fixed) {
	rad := degrees * math.Pi / 180
	b.VX = Fixed(math.Round(float64(speed) * math.Sin(rad)))
	b.VY = -Fixed(math.Round(float64(speed) * math.Cos(rad)))
}

// BounceX reverses horizontal velocity.
func (b *Ball) BounceX() {
	b.VX = -b.VX
}

// BounceY reverses vertical velocity.
func (b *Ball) BounceY() {
	b.VY = -b.VY
}

// substeps returns how many moves a tick is split into so that no single
// move exceeds half a cell.
func substeps(vx, vy Fixed) int {
	m := max(vx.Abs(), vy.Abs())
	return int(m/(Scale/2)) + 1
}

// Paddle represents the player's paddle.
type Paddle struct {
	X      Fixed // Center position (fixed-point)
	Y      int   // Cell Y position (fixed row at bottom)
	Stage  int   // Index into Stages
	Stages []int // Width in cells of each size stage
}

// Width returns the current width in cells.
func (p *Paddle) Width() int {
	if len(p.Stages) == 0 {
		return 1
	}
	return p.Stages[p.Stage]
}

// SetStage moves to a size stage, clamped to the available stages.
func (p *Paddle) SetStage(stage int) {
	p.Stage = max(0, min(len(p.Stages)-1, stage))
}

// Left returns left edge in fixed-point.
func (p *Paddle) Left() Fixed {
	return p.X - ToFixed(p.Width())/2
}

// Right returns right edge in fixed-point.
func (p *Paddle) Right() Fixed {
	return p.Left() + ToFixed(p.Width())
}

// Bounds returns the cells covered by the paddle.
func (p *Paddle) Bounds() core.Rect {
	return core.NewRect(p.CellX(), p.Y, p.Width(), 1)
}

// CellX returns paddle's left edge in cell coordinates.
func (p *Paddle) CellX() int {
	return p.Left().ToCell()
}

// Clamp keeps the whole paddle within [minX, maxX).
func (p *Paddle) Clamp(minX, maxX Fixed) {
	half := ToFixed(p.Width()) / 2
	lo := minX + half
	hi := maxX - (ToFixed(p.Width()) - half)
	if hi < lo {
		p.X = (minX + maxX) / 2
		return
	}
	p.X = ClampFixed(p.X, lo, hi)
}

// Catch reports whether a ball moving down from prevY crossed onto the paddle row.
func (p *Paddle) Catch(b *Ball, prevY Fixed) bool {
	if b.VY <= 0 {
		return false
	}
	top := ToFixed(p.Y)
	if prevY >= top || b.Y < top {
		return false
	}
	return b.X >= p.Left()-Scale/2 && b.X <= p.Right()+Scale/2
}

// Rebound sends the ball back up. The angle grows with the distance of the
// hit from the paddle centre, up to maxAngle degrees at the edges.
func (p *Paddle) Rebound(b *Ball, maxAngle float64) {
	speed := b.Speed()
	half := float64(ToFixed(p.Width())) / 2
	offset := 0.0
	if half > 0 {
		offset = float64(b.X-p.X) / half
	}
	offset = math.Max(-1, math.Min(1, offset))

	b.SetAngle(offset*maxAngle, speed)
	b.Y = ToFixed(p.Y) - 1
}

// Projectile is a shot fired from the paddle.
type Projectile struct {
	X, Y Fixed
	VY   Fixed // Negative, shots travel up
}

// CellX returns the shot's X position in cell coordinates.
func (s *Projectile) CellX() int {
	return s.X.ToCell()
}

// CellY returns the shot's Y position in cell coordinates.
func (s *Projectile) CellY() int {
	return s.Y.ToCell()
}

// Playfield is the area balls move in, in cells.
// Left and Top are the first playable column and row; Right is exclusive.
// Bottom is the row at which a ball counts as lost.
type Playfield struct {
	Left, Right int
	Top, Bottom int
}

// Width returns the playable width.
func (f Playfield) Width() int {
	return f.Right - f.Left
}

// Height returns the playable height.
func (f Playfield) Height() int {
	return f.Bottom - f.Top
}

// Bounce reflects the ball off the side and top walls.
// It reports whether the ball fell below the bottom.
func (f Playfield) Bounce(b *Ball) (lost bool) {
	if b.X < ToFixed(f.Left) {
		b.X = ToFixed(f.Left)
		b.VX = b.VX.Abs()
	} else if b.X >= ToFixed(f.Right) {
		b.X = ToFixed(f.Right) - 1
		b.VX = -b.VX.Abs()
	}

	if b.Y < ToFixed(f.Top) {
		b.Y = ToFixed(f.Top)
		b.VY = b.VY.Abs()
	}

	return b.Y >= ToFixed(f.Bottom)
}
