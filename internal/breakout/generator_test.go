package breakout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/loftwahnoid/internal/config"
)

var testGeom = Geometry{BrickW: 5, BrickH: 1, PadX: 1, PadY: 0, OffsetLeft: 3, OffsetTop: 1}

func TestCarvePathCorridor(t *testing.T) {
	for _, cols := range []int{3, 4, 5, 12, 20} {
		for seed := int64(1); seed <= 50; seed++ {
			grid := NewGrid(10, cols)
			path := CarvePath(&grid, NewSimpleRNG(seed))
			require.Len(t, path, 10)

			assert.Equal(t, cols/2, path[0], "walk starts in the middle")
			for row, col := range path {
				for c := col - 1; c <= col+1; c++ {
					if c >= 0 && c < cols {
						assert.Equal(t, CellEmpty, grid.At(row, c), "cols=%d seed=%d row=%d", cols, seed, row)
					}
				}
				if row > 0 {
					assert.LessOrEqual(t, abs(col-path[row-1]), 1)
					assert.GreaterOrEqual(t, col, 1)
					assert.LessOrEqual(t, col, cols-2)
				}
			}
		}
	}
}

func TestCarvePathNarrowGrid(t *testing.T) {
	for _, cols := range []int{1, 2} {
		grid := NewGrid(6, cols)
		path := CarvePath(&grid, NewSimpleRNG(3))
		for _, col := range path {
			assert.Equal(t, cols/2, col)
		}
		assert.Equal(t, 6*cols, grid.Count(CellEmpty))
	}
}

func TestGenerateFullDensityFillsAllButPath(t *testing.T) {
	tuning := config.Tuning{Density: 1}
	layout := GenerateWithTuning(tuning, 12, 8, testGeom, NewSimpleRNG(99))

	assert.Zero(t, layout.Grid.Count(CellUndecided))
	assert.Equal(t, layout.Grid.Count(CellPresent), len(layout.Placements))
	assert.Equal(t, 12*8, layout.Grid.Count(CellPresent)+layout.Grid.Count(CellEmpty))

	// Every row keeps its corridor
	for r := range 8 {
		empty := 0
		for c := range 12 {
			if layout.Grid.At(r, c) == CellEmpty {
				empty++
			}
		}
		assert.GreaterOrEqual(t, empty, 3, "row %d", r)
	}

	for _, p := range layout.Placements {
		x, y := testGeom.CellPosition(p.Row, p.Col)
		assert.Equal(t, x, p.X)
		assert.Equal(t, y, p.Y)
		assert.Equal(t, BrickStandard, p.Type)
	}
}

func TestGenerateZeroDensityIsEmpty(t *testing.T) {
	layout := GenerateWithTuning(config.Tuning{}, 12, 8, testGeom, NewSimpleRNG(1))
	assert.Empty(t, layout.Placements)
	assert.Zero(t, layout.Destructible())
}

func TestGenerateTypeRoll(t *testing.T) {
	all := GenerateWithTuning(config.Tuning{Density: 1, IndestructibleChance: 1}, 6, 4, testGeom, NewSimpleRNG(5))
	for _, p := range all.Placements {
		assert.Equal(t, BrickIndestructible, p.Type)
	}
	assert.Zero(t, all.Destructible())

	tough := GenerateWithTuning(config.Tuning{Density: 1, ToughChance: 1}, 6, 4, testGeom, NewSimpleRNG(5))
	for _, p := range tough.Placements {
		assert.Equal(t, BrickTough, p.Type)
	}
	assert.Equal(t, len(tough.Placements), tough.Destructible())
}

func TestGenerateIsDeterministic(t *testing.T) {
	gen := NewGenerator(config.DefaultConfig())
	a := gen.Generate(4, 12, 6, testGeom, NewSimpleRNG(42))
	b := gen.Generate(4, 12, 6, testGeom, NewSimpleRNG(42))
	assert.Equal(t, a.ASCII(), b.ASCII())
	assert.Equal(t, 4, a.Level)
}

func TestGeneratorTuningFollowsLevel(t *testing.T) {
	gen := NewGenerator(config.DefaultConfig())

	first := gen.Generate(0, 12, 4, testGeom, NewSimpleRNG(1))
	assert.InDelta(t, 0.6, first.Tuning.Density, 1e-9)
	assert.InDelta(t, 0.1, first.Tuning.ToughChance, 1e-9)
	assert.InDelta(t, 0.05, first.Tuning.IndestructibleChance, 1e-9)

	capped := gen.Generate(25, 12, 4, testGeom, NewSimpleRNG(1))
	assert.InDelta(t, 1.0, capped.Tuning.Difficulty, 1e-9)
	assert.InDelta(t, 0.9, capped.Tuning.Density, 1e-9)
	assert.InDelta(t, 0.4, capped.Tuning.ToughChance, 1e-9)
	assert.InDelta(t, 0.2, capped.Tuning.IndestructibleChance, 1e-9)
}

func TestDefaultLayout(t *testing.T) {
	gen := NewGenerator(config.DefaultConfig())

	cols, rows, geom := gen.DefaultLayout(1, 78, 19)
	assert.Equal(t, 12, cols)
	assert.Equal(t, 4, rows)
	assert.Equal(t, 71, geom.GridWidth(cols))
	assert.Equal(t, 3, geom.OffsetLeft)
	assert.Equal(t, 1, geom.OffsetTop)

	_, rows, _ = gen.DefaultLayout(4, 78, 19)
	assert.Equal(t, 6, rows)

	_, rows, _ = gen.DefaultLayout(40, 78, 19)
	assert.Equal(t, 10, rows, "extra rows are capped")

	_, rows, _ = gen.DefaultLayout(40, 78, 9)
	assert.Equal(t, 5, rows, "short playfields keep bricks in the upper part")

	cols, _, _ = gen.DefaultLayout(1, 10, 19)
	assert.Equal(t, 3, cols, "never fewer than the minimum columns")
}

func TestGeometryLocate(t *testing.T) {
	row, col, ok := testGeom.Locate(3, 1)
	assert.True(t, ok)
	assert.Equal(t, 0, row)
	assert.Equal(t, 0, col)

	_, _, ok = testGeom.Locate(8, 1)
	assert.False(t, ok, "padding column")

	row, col, ok = testGeom.Locate(9, 3)
	assert.True(t, ok)
	assert.Equal(t, 2, row)
	assert.Equal(t, 1, col)

	_, _, ok = testGeom.Locate(2, 1)
	assert.False(t, ok)
}

func TestGeometryGap(t *testing.T) {
	row, col, ok := testGeom.Gap(8, 1)
	assert.True(t, ok)
	assert.Equal(t, 0, row)
	assert.Equal(t, 0, col, "slot on the left of the padding")

	row, col, ok = testGeom.Gap(14, 2)
	assert.True(t, ok)
	assert.Equal(t, 1, row)
	assert.Equal(t, 1, col)

	_, _, ok = testGeom.Gap(5, 1)
	assert.False(t, ok, "inside a brick")
	_, _, ok = testGeom.Gap(2, 1)
	assert.False(t, ok, "left of the grid")

	solid := testGeom
	solid.PadX = 0
	_, _, ok = solid.Gap(8, 1)
	assert.False(t, ok, "no padding, no gaps")
}

func TestLayoutASCII(t *testing.T) {
	layout := Layout{
		Grid: NewGrid(2, 3),
		Placements: []Placement{
			{Row: 0, Col: 0, Type: BrickStandard},
			{Row: 0, Col: 2, Type: BrickTough},
			{Row: 1, Col: 1, Type: BrickIndestructible},
		},
	}
	assert.Equal(t, "#.H\n.X.\n", layout.ASCII())
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
