package breakout

import (
	"strings"

	"github.com/vovakirdan/loftwahnoid/internal/config"
)

// CellState is the decision made for one grid cell.
type CellState uint8

const (
	CellUndecided CellState = iota // Not decided yet
	CellEmpty                      // Kept free, no brick
	CellPresent                    // Holds a brick
)

// Grid is the brick layout decided by the generator, indexed [row][col].
type Grid struct {
	Rows, Cols int
	Cells      [][]CellState
}

// NewGrid creates a grid with every cell undecided.
func NewGrid(rows, cols int) Grid {
	cells := make([][]CellState, rows)
	for r := range cells {
		cells[r] = make([]CellState, cols)
	}
	return Grid{Rows: rows, Cols: cols, Cells: cells}
}

// At returns the state of a cell. Out-of-range cells read as empty.
func (g Grid) At(row, col int) CellState {
	if row < 0 || row >= g.Rows || col < 0 || col >= g.Cols {
		return CellEmpty
	}
	return g.Cells[row][col]
}

// Count returns how many cells hold the given state.
func (g Grid) Count(state CellState) int {
	n := 0
	for _, row := range g.Cells {
		for _, c := range row {
			if c == state {
				n++
			}
		}
	}
	return n
}

// Geometry places grid cells on the screen, in cells.
type Geometry struct {
	BrickW, BrickH int
	PadX, PadY     int
	OffsetLeft     int
	OffsetTop      int
}

// CellPosition returns the top-left corner of the brick at (row, col).
func (g Geometry) CellPosition(row, col int) (x, y int) {
	return g.OffsetLeft + col*(g.BrickW+g.PadX), g.OffsetTop + row*(g.BrickH+g.PadY)
}

// GridWidth returns the total width taken by cols bricks.
func (g Geometry) GridWidth(cols int) int {
	if cols <= 0 {
		return 0
	}
	return cols*g.BrickW + (cols-1)*g.PadX
}

// GridHeight returns the total height taken by rows bricks.
func (g Geometry) GridHeight(rows int) int {
	if rows <= 0 {
		return 0
	}
	return rows*g.BrickH + (rows-1)*g.PadY
}

// Locate maps a cell to the grid slot covering it, if any.
func (g Geometry) Locate(x, y int) (row, col int, ok bool) {
	dx := x - g.OffsetLeft
	dy := y - g.OffsetTop
	if dx < 0 || dy < 0 {
		return 0, 0, false
	}
	strideX := g.BrickW + g.PadX
	strideY := g.BrickH + g.PadY
	if strideX <= 0 || strideY <= 0 {
		return 0, 0, false
	}
	if dx%strideX >= g.BrickW || dy%strideY >= g.BrickH {
		return 0, 0, false // In the padding
	}
	return dy / strideY, dx / strideX, true
}

// Gap maps a cell in the horizontal padding of a brick row to the slot on its
// left. The slot on the right is col+1.
func (g Geometry) Gap(x, y int) (row, col int, ok bool) {
	dx := x - g.OffsetLeft
	dy := y - g.OffsetTop
	strideX := g.BrickW + g.PadX
	strideY := g.BrickH + g.PadY
	if dx < 0 || dy < 0 || g.PadX <= 0 || strideY <= 0 {
		return 0, 0, false
	}
	if dx%strideX < g.BrickW || dy%strideY >= g.BrickH {
		return 0, 0, false
	}
	return dy / strideY, dx / strideX, true
}

// Placement is one brick chosen by the generator.
type Placement struct {
	Row, Col int
	X, Y     int
	Type     BrickType
}

// Layout is the result of generating a level.
type Layout struct {
	Level      int
	Tuning     config.Tuning
	Geometry   Geometry
	Grid       Grid
	Placements []Placement
}

// Destructible counts the placements that can be destroyed.
func (l Layout) Destructible() int {
	n := 0
	for _, p := range l.Placements {
		if p.Type != BrickIndestructible {
			n++
		}
	}
	return n
}

// ASCII renders the layout as a brick map, one line per row.
func (l Layout) ASCII() string {
	types := make(map[[2]int]BrickType, len(l.Placements))
	for _, p := range l.Placements {
		types[[2]int{p.Row, p.Col}] = p.Type
	}

	var b strings.Builder
	for r := range l.Grid.Rows {
		for c := range l.Grid.Cols {
			if t, ok := types[[2]int{r, c}]; ok {
				b.WriteRune(t.Glyph())
			} else {
				b.WriteRune('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// CarvePath clears a zig-zag corridor from the top row to the bottom row.
// The walk starts in the middle column and steps one column left or right
// per row, staying within [1, cols-2]. It returns the walk column of each row.
func CarvePath(grid *Grid, rng Rand) []int {
	path := make([]int, 0, grid.Rows)
	if grid.Cols == 0 {
		return path
	}

	col := grid.Cols / 2
	for row := range grid.Rows {
		path = append(path, col)
		for c := col - 1; c <= col+1; c++ {
			if c >= 0 && c < grid.Cols {
				grid.Cells[row][c] = CellEmpty
			}
		}

		step := 1
		if rng.Float64() < 0.5 {
			step = -1
		}
		if grid.Cols < 3 {
			continue // No room to wander
		}
		col = max(1, min(grid.Cols-2, col+step))
	}
	return path
}

// GenerateWithTuning builds a layout from explicit tuning parameters.
func GenerateWithTuning(tuning config.Tuning, cols, rows int, geom Geometry, rng Rand) Layout {
	grid := NewGrid(rows, cols)
	CarvePath(&grid, rng)

	for r := range rows {
		for c := range cols {
			if grid.Cells[r][c] != CellUndecided {
				continue
			}
			if rng.Float64() < tuning.Density {
				grid.Cells[r][c] = CellPresent
			} else {
				grid.Cells[r][c] = CellEmpty
			}
		}
	}

	var placements []Placement
	for r := range rows {
		for c := range cols {
			if grid.Cells[r][c] != CellPresent {
				continue
			}
			x, y := geom.CellPosition(r, c)
			placements = append(placements, Placement{
				Row:  r,
				Col:  c,
				X:    x,
				Y:    y,
				Type: rollBrickType(tuning, rng),
			})
		}
	}

	return Layout{
		Tuning:     tuning,
		Geometry:   geom,
		Grid:       grid,
		Placements: placements,
	}
}

func rollBrickType(tuning config.Tuning, rng Rand) BrickType {
	roll := rng.Float64()
	switch {
	case roll < tuning.IndestructibleChance:
		return BrickIndestructible
	case roll < tuning.IndestructibleChance+tuning.ToughChance:
		return BrickTough
	default:
		return BrickStandard
	}
}

// Generator builds levels whose difficulty grows with the level number.
type Generator struct {
	difficulty *config.DifficultyManager
	layout     config.LayoutConfig
}

// NewGenerator creates a generator from the game configuration.
func NewGenerator(cfg config.GameConfig) *Generator {
	return NewGeneratorWith(config.NewDifficultyManager(cfg.Difficulty, cfg.Generator), cfg.Layout)
}

// NewGeneratorWith creates a generator around an existing difficulty manager.
func NewGeneratorWith(difficulty *config.DifficultyManager, layout config.LayoutConfig) *Generator {
	return &Generator{difficulty: difficulty, layout: layout}
}

// Difficulty returns the manager used to derive tuning.
func (g *Generator) Difficulty() *config.DifficultyManager {
	return g.difficulty
}

// Generate builds the layout for a level.
func (g *Generator) Generate(level, cols, rows int, geom Geometry, rng Rand) Layout {
	layout := GenerateWithTuning(g.difficulty.Tuning(level), cols, rows, geom, rng)
	layout.Level = level
	return layout
}

// DefaultLayout sizes a level to a playfield of playW x playH cells.
// Offsets are relative to the playfield origin.
func (g *Generator) DefaultLayout(level, playW, playH int) (cols, rows int, geom Geometry) {
	lc := g.layout
	geom = Geometry{
		BrickW:    lc.BrickWidth,
		BrickH:    lc.BrickHeight,
		PadX:      lc.PadX,
		PadY:      lc.PadY,
		OffsetTop: lc.OffsetTop,
	}

	cols = (playW - lc.SideMargin) / (lc.BrickWidth + lc.PadX)
	cols = max(cols, lc.MinColumns)

	// Keep the bricks in the upper two thirds, clear of the paddle
	rows = g.difficulty.Rows(level)
	maxRows := (playH*2/3 - lc.OffsetTop) / (lc.BrickHeight + lc.PadY)
	rows = max(1, min(rows, maxRows))

	geom.OffsetLeft = (playW - geom.GridWidth(cols)) / 2
	return cols, rows, geom
}
