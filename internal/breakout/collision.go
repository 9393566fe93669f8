package breakout

import "github.com/vovakirdan/loftwahnoid/internal/core"

// CollisionKind tells what touched what during a tick.
type CollisionKind int

const (
	CollisionBrick      CollisionKind = iota // A ball hit a brick
	CollisionPowerUp                         // The paddle caught a pickup
	CollisionProjectile                      // A shot hit a brick
)

// String returns the name of the collision kind.
func (k CollisionKind) String() string {
	switch k {
	case CollisionBrick:
		return "brick"
	case CollisionPowerUp:
		return "powerup"
	case CollisionProjectile:
		return "projectile"
	default:
		return "unknown"
	}
}

// Collision is one contact found while moving objects. Only the fields of
// its kind are set.
type Collision struct {
	Kind       CollisionKind
	Ball       *Ball
	Brick      *Brick
	PowerUp    *PowerUp
	Projectile *Projectile
}

// Wall holds the bricks of the current level with a cell index for lookups.
type Wall struct {
	Geometry Geometry
	Bricks   []*Brick
	index    [][]*Brick // [row][col]
}

// NewWall creates bricks for every placement of a layout.
// originX and originY shift the layout onto the screen.
func NewWall(layout Layout, originX, originY int, dropChance float64) *Wall {
	geom := layout.Geometry
	geom.OffsetLeft += originX
	geom.OffsetTop += originY

	w := &Wall{
		Geometry: geom,
		Bricks:   make([]*Brick, 0, len(layout.Placements)),
		index:    make([][]*Brick, layout.Grid.Rows),
	}
	for r := range w.index {
		w.index[r] = make([]*Brick, layout.Grid.Cols)
	}

	for _, p := range layout.Placements {
		x, y := geom.CellPosition(p.Row, p.Col)
		b := NewBrick(p.Type, p.Row, p.Col, x, y, geom.BrickW, geom.BrickH, dropChance)
		w.Bricks = append(w.Bricks, b)
		w.index[p.Row][p.Col] = b
	}
	return w
}

// BrickAt returns the intact brick covering a fixed-point position, if any.
// Padding between two slots of a row is solid: it belongs to the brick on its
// left, or to the one on its right when the left one is gone.
func (w *Wall) BrickAt(x, y Fixed) *Brick {
	cx, cy := x.ToCell(), y.ToCell()
	if row, col, ok := w.Geometry.Locate(cx, cy); ok {
		return w.intact(row, col)
	}
	row, col, ok := w.Geometry.Gap(cx, cy)
	if !ok || row >= len(w.index) || col+1 >= len(w.index[row]) {
		return nil
	}
	if b := w.intact(row, col); b != nil {
		return b
	}
	return w.intact(row, col+1)
}

func (w *Wall) intact(row, col int) *Brick {
	if row < 0 || row >= len(w.index) || col < 0 || col >= len(w.index[row]) {
		return nil
	}
	b := w.index[row][col]
	if b == nil || b.Destroyed() {
		return nil
	}
	return b
}

// Bounds returns the rectangle covering every slot of the wall.
func (w *Wall) Bounds() core.Rect {
	rows, cols := len(w.index), 0
	if rows > 0 {
		cols = len(w.index[0])
	}
	return core.NewRect(w.Geometry.OffsetLeft, w.Geometry.OffsetTop,
		w.Geometry.GridWidth(cols), w.Geometry.GridHeight(rows))
}

// Shift moves the wall dx columns to the right.
func (w *Wall) Shift(dx int) {
	w.Geometry.OffsetLeft += dx
	for _, b := range w.Bricks {
		b.X += dx
	}
}

// Remaining counts destructible bricks that are still standing.
func (w *Wall) Remaining() int {
	n := 0
	for _, b := range w.Bricks {
		if !b.Destroyed() && !b.IsIndestructible() {
			n++
		}
	}
	return n
}

// deflect bounces a ball off a brick it entered from (prevX, prevY) and moves
// it back out.
func deflect(b *Ball, brick *Brick, prevX, prevY Fixed) {
	bounds := brick.Bounds()
	insideCols := bounds.SpansX(prevX.ToCell())
	insideRows := bounds.SpansY(prevY.ToCell())

	switch {
	case insideCols:
		b.BounceY()
	case insideRows:
		b.BounceX()
	default:
		// Corner
		b.BounceX()
		b.BounceY()
	}
	b.X, b.Y = prevX, prevY
}
