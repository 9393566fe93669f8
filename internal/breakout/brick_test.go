package breakout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/loftwahnoid/internal/core"
)

// fixedRand always returns the same draws.
type fixedRand struct {
	f float64
	n int
}

func (r fixedRand) Float64() float64 { return r.f }
func (r fixedRand) Intn(int) int     { return r.n }

var noDrop = fixedRand{f: 0.99}

func TestStandardBrickBreaksOnFirstHit(t *testing.T) {
	b := NewBrick(BrickStandard, 0, 0, 10, 5, 5, 1, 0.3)

	res := b.Hit(noDrop)
	assert.True(t, res.Destroyed)
	assert.Equal(t, 10, res.Points)
	assert.Equal(t, core.CueCrunch, res.Cue)
	assert.False(t, res.Drop)
	assert.True(t, b.Destroyed())

	again := b.Hit(noDrop)
	assert.Equal(t, HitResult{}, again, "hitting a destroyed brick does nothing")
	assert.Equal(t, 0.0, b.Health)
}

func TestToughBrickTakesThreeHits(t *testing.T) {
	b := NewBrick(BrickTough, 0, 0, 0, 0, 5, 1, 0)

	first := b.Hit(noDrop)
	assert.False(t, first.Destroyed)
	assert.Equal(t, 0, first.Points)
	assert.Equal(t, core.CuePing, first.Cue)

	tint, ok := b.Tint()
	require.True(t, ok)
	assert.Equal(t, core.LerpRGB(0xff0000, 0x880000, 2.0/3.0), tint)

	second := b.Hit(noDrop)
	assert.False(t, second.Destroyed)
	tint, _ = b.Tint()
	assert.Equal(t, core.LerpRGB(0xff0000, 0x880000, 1.0/3.0), tint)

	third := b.Hit(noDrop)
	assert.True(t, third.Destroyed)
	assert.Equal(t, 20, third.Points)
	assert.Equal(t, core.CueCrunch, third.Cue)
}

func TestIndestructibleBrickNeverBreaks(t *testing.T) {
	b := NewBrick(BrickIndestructible, 0, 0, 0, 0, 5, 1, 1)
	assert.True(t, b.IsIndestructible())

	for range 100 {
		res := b.Hit(fixedRand{f: 0})
		assert.False(t, res.Destroyed)
		assert.False(t, res.Drop)
		assert.Equal(t, 0, res.Points)
		assert.Equal(t, core.CuePing, res.Cue)
	}
	assert.False(t, b.Destroyed())
	assert.True(t, math.IsInf(b.Health, 1))
}

func TestDestroyedBrickDropRoll(t *testing.T) {
	b := NewBrick(BrickStandard, 0, 0, 0, 0, 5, 1, 0.3)
	res := b.Hit(fixedRand{f: 0.1, n: int(PowerUpMiniBall)})
	assert.True(t, res.Drop)
	assert.Equal(t, PowerUpMiniBall, res.DropType)

	b = NewBrick(BrickStandard, 0, 0, 0, 0, 5, 1, 0.3)
	res = b.Hit(fixedRand{f: 0.3})
	assert.False(t, res.Drop, "roll equal to the chance misses")
}

func TestBrickSpriteKeys(t *testing.T) {
	assert.Equal(t, "brick1", BrickStandard.SpriteKey())
	assert.Equal(t, "brick2", BrickTough.SpriteKey())
	assert.Equal(t, "brick3", BrickIndestructible.SpriteKey())
}

func TestBrickGeometry(t *testing.T) {
	b := NewBrick(BrickStandard, 1, 2, 10, 5, 5, 1, 0)
	assert.True(t, b.Contains(10, 5))
	assert.True(t, b.Contains(14, 5))
	assert.False(t, b.Contains(15, 5))
	assert.False(t, b.Contains(12, 6))
	assert.Equal(t, core.NewRect(10, 5, 5, 1), b.Bounds())

	x, y := b.Center()
	assert.Equal(t, Fixed(12500), x)
	assert.Equal(t, Fixed(5500), y)
}
