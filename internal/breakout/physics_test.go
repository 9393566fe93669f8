package breakout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/loftwahnoid/internal/core"
)

func testPaddle() *Paddle {
	return &Paddle{X: ToFixed(40), Y: 21, Stage: 2, Stages: []int{6, 8, 10, 12, 14}}
}

func TestFixedToCellFloors(t *testing.T) {
	assert.Equal(t, 0, Fixed(999).ToCell())
	assert.Equal(t, 1, Fixed(1000).ToCell())
	assert.Equal(t, -1, Fixed(-1).ToCell())
	assert.Equal(t, -1, Fixed(-1000).ToCell())
	assert.Equal(t, -2, Fixed(-1001).ToCell())
	assert.Equal(t, Fixed(400), PerTick(24, 60))
}

func TestPaddleReboundAngle(t *testing.T) {
	p := testPaddle()
	const speed = 400

	tests := []struct {
		name   string
		offset Fixed
		angle  float64
	}{
		{"centre goes straight up", 0, 0},
		{"right edge", 5000, 60},
		{"left edge", -5000, -60},
		{"halfway right", 2500, 30},
		{"beyond the edge clamps", 7000, 60},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := &Ball{X: p.X + tc.offset, Y: ToFixed(21), VX: 0, VY: speed}
			p.Rebound(b, 60)

			rad := tc.angle * math.Pi / 180
			assert.InDelta(t, speed*math.Sin(rad), float64(b.VX), 1)
			assert.InDelta(t, -speed*math.Cos(rad), float64(b.VY), 1)
			assert.InDelta(t, speed, float64(b.Speed()), 2, "speed magnitude is kept")
			assert.Less(t, b.Y, ToFixed(p.Y))
		})
	}
}

func TestPaddleCatch(t *testing.T) {
	p := testPaddle()

	b := &Ball{X: ToFixed(40), Y: ToFixed(21) + 100, VY: 300}
	assert.True(t, p.Catch(b, ToFixed(21)-200))

	up := &Ball{X: ToFixed(40), Y: ToFixed(21) + 100, VY: -300}
	assert.False(t, p.Catch(up, ToFixed(21)-200), "rising balls pass")

	wide := &Ball{X: ToFixed(50), Y: ToFixed(21) + 100, VY: 300}
	assert.False(t, p.Catch(wide, ToFixed(21)-200))

	below := &Ball{X: ToFixed(40), Y: ToFixed(22), VY: 300}
	assert.False(t, p.Catch(below, ToFixed(21)+500), "already past the paddle row")
}

func TestPaddleClampAndStages(t *testing.T) {
	p := testPaddle()
	assert.Equal(t, 10, p.Width())
	assert.Equal(t, ToFixed(35), p.Left())
	assert.Equal(t, ToFixed(45), p.Right())
	assert.Equal(t, core.NewRect(35, p.Y, 10, 1), p.Bounds())

	p.X = 0
	p.Clamp(ToFixed(1), ToFixed(79))
	assert.Equal(t, ToFixed(1), p.Left())

	p.X = ToFixed(200)
	p.Clamp(ToFixed(1), ToFixed(79))
	assert.Equal(t, ToFixed(79), p.Right())

	p.SetStage(9)
	assert.Equal(t, 4, p.Stage)
	p.SetStage(-3)
	assert.Equal(t, 0, p.Stage)
	assert.Equal(t, 6, p.Width())
}

func TestBallSetSpeedKeepsDirection(t *testing.T) {
	b := &Ball{VX: 300, VY: -400}
	b.SetSpeed(250)
	assert.Equal(t, Fixed(150), b.VX)
	assert.Equal(t, Fixed(-200), b.VY)

	still := &Ball{}
	still.SetSpeed(400)
	assert.Zero(t, still.VX)
	assert.Zero(t, still.VY)
}

func TestPlayfieldBounce(t *testing.T) {
	f := Playfield{Left: 1, Right: 79, Top: 2, Bottom: 24}

	left := &Ball{X: 500, Y: ToFixed(10), VX: -300, VY: -300}
	assert.False(t, f.Bounce(left))
	assert.Equal(t, ToFixed(1), left.X)
	assert.Equal(t, Fixed(300), left.VX)

	right := &Ball{X: ToFixed(79), Y: ToFixed(10), VX: 300}
	f.Bounce(right)
	assert.Less(t, right.X, ToFixed(79))
	assert.Equal(t, Fixed(-300), right.VX)

	top := &Ball{X: ToFixed(10), Y: ToFixed(1), VY: -300}
	f.Bounce(top)
	assert.Equal(t, ToFixed(2), top.Y)
	assert.Equal(t, Fixed(300), top.VY)

	lost := &Ball{X: ToFixed(10), Y: ToFixed(24), VY: 300}
	assert.True(t, f.Bounce(lost))
}

func TestDeflectUsesEntrySide(t *testing.T) {
	brick := NewBrick(BrickStandard, 0, 0, 10, 5, 5, 1, 0)

	fromBelow := &Ball{X: ToFixed(12), Y: ToFixed(5) + 800, VX: 100, VY: -300}
	deflect(fromBelow, brick, ToFixed(12), ToFixed(6)+100)
	assert.Equal(t, Fixed(100), fromBelow.VX)
	assert.Equal(t, Fixed(300), fromBelow.VY)
	assert.Equal(t, ToFixed(6)+100, fromBelow.Y, "moved back out")

	fromSide := &Ball{X: ToFixed(10) + 100, Y: ToFixed(5) + 500, VX: 300, VY: 100}
	deflect(fromSide, brick, ToFixed(9)+800, ToFixed(5)+400)
	assert.Equal(t, Fixed(-300), fromSide.VX)
	assert.Equal(t, Fixed(100), fromSide.VY)

	corner := &Ball{X: ToFixed(10) + 100, Y: ToFixed(5) + 100, VX: 300, VY: 300}
	deflect(corner, brick, ToFixed(9)+900, ToFixed(4)+900)
	assert.Equal(t, Fixed(-300), corner.VX)
	assert.Equal(t, Fixed(-300), corner.VY)
}

func TestSubsteps(t *testing.T) {
	assert.Equal(t, 1, substeps(400, -300))
	assert.Equal(t, 2, substeps(0, -533))
	assert.Equal(t, 3, substeps(-1000, 0))
}
