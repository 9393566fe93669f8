package breakout

import (
	"math"

	"github.com/vovakirdan/loftwahnoid/internal/core"
)

// BrickType represents different types of bricks.
type BrickType int

const (
	BrickStandard       BrickType = iota // One hit, 10 points
	BrickTough                           // Three hits, 20 points
	BrickIndestructible                  // Deflects forever, worth nothing
)

// String returns the name of the brick type.
func (t BrickType) String() string {
	switch t {
	case BrickStandard:
		return "standard"
	case BrickTough:
		return "tough"
	case BrickIndestructible:
		return "indestructible"
	default:
		return "unknown"
	}
}

// SpriteKey returns the asset key the brick is drawn with.
func (t BrickType) SpriteKey() string {
	switch t {
	case BrickTough:
		return "brick2"
	case BrickIndestructible:
		return "brick3"
	default:
		return "brick1"
	}
}

// Glyph returns the ASCII map character used by level previews.
func (t BrickType) Glyph() rune {
	switch t {
	case BrickTough:
		return 'H'
	case BrickIndestructible:
		return 'X'
	default:
		return '#'
	}
}

func (t BrickType) stats() (health float64, points int) {
	switch t {
	case BrickTough:
		return 3, 20
	case BrickIndestructible:
		return math.Inf(1), 0
	default:
		return 1, 10
	}
}

// Damage tint endpoints for tough bricks.
const (
	toughFresh core.RGB = 0xff0000
	toughWorn  core.RGB = 0x880000
)

// HitResult reports what a single hit did to a brick.
type HitResult struct {
	Points    int
	Cue       core.Cue
	Destroyed bool
	Drop      bool
	DropType  PowerUpType
}

// Brick is one brick on the board. Position and size are in cells.
type Brick struct {
	Type       BrickType
	Row, Col   int
	X, Y       int
	W, H       int
	MaxHealth  float64
	Health     float64
	ScoreValue int
	DropChance float64

	destroyed bool
	tint      core.RGB
	tinted    bool
}

// NewBrick creates a brick at full health.
func NewBrick(t BrickType, row, col, x, y, w, h int, dropChance float64) *Brick {
	health, points := t.stats()
	return &Brick{
		Type:       t,
		Row:        row,
		Col:        col,
		X:          x,
		Y:          y,
		W:          w,
		H:          h,
		MaxHealth:  health,
		Health:     health,
		ScoreValue: points,
		DropChance: dropChance,
	}
}

// IsIndestructible reports whether the brick can never be destroyed.
func (b *Brick) IsIndestructible() bool {
	return b.Type == BrickIndestructible
}

// Destroyed reports whether the brick has been broken.
func (b *Brick) Destroyed() bool {
	return b.destroyed
}

// Tint returns the damage tint, if the brick has one.
func (b *Brick) Tint() (core.RGB, bool) {
	return b.tint, b.tinted
}

// Bounds returns the cells covered by the brick.
func (b *Brick) Bounds() core.Rect {
	return core.NewRect(b.X, b.Y, b.W, b.H)
}

// Contains reports whether the cell (x, y) is covered by the brick.
func (b *Brick) Contains(x, y int) bool {
	return b.Bounds().Contains(x, y)
}

// Center returns the brick centre in fixed-point.
func (b *Brick) Center() (Fixed, Fixed) {
	return ToFixed(b.X) + ToFixed(b.W)/2, ToFixed(b.Y) + ToFixed(b.H)/2
}

// Hit applies one hit. Hitting a destroyed brick does nothing.
func (b *Brick) Hit(rng Rand) HitResult {
	if b.destroyed {
		return HitResult{}
	}
	if b.IsIndestructible() {
		return HitResult{Cue: core.CuePing}
	}

	b.Health--
	if b.Health > 0 {
		if b.Type == BrickTough {
			b.tint = core.LerpRGB(toughFresh, toughWorn, b.Health/b.MaxHealth)
			b.tinted = true
		}
		return HitResult{Cue: core.CuePing}
	}

	b.destroyed = true
	res := HitResult{
		Points:    b.ScoreValue,
		Cue:       core.CueCrunch,
		Destroyed: true,
	}
	if rng != nil && rng.Float64() < b.DropChance {
		res.Drop = true
		res.DropType = RandomPowerUpType(rng)
	}
	return res
}
