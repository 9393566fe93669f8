package breakout

import "math"

// Fixed-point scale factor: 1 cell = 1000 units.
// This allows for sub-cell precision while keeping the simulation deterministic.
const Scale = 1000

// Fixed represents a fixed-point integer (scaled by Scale).
type Fixed int

// ToFixed converts a cell coordinate to fixed-point.
func ToFixed(cell int) Fixed {
	return Fixed(cell * Scale)
}

// FromFloat converts a cell coordinate with a fractional part to fixed-point.
func FromFloat(cells float64) Fixed {
	return Fixed(math.Round(cells * Scale))
}

// PerTick converts a rate in cells per second to fixed-point units per tick.
func PerTick(cellsPerSecond float64, tickRate int) Fixed {
	if tickRate <= 0 {
		tickRate = 60
	}
	return FromFloat(cellsPerSecond / float64(tickRate))
}

// ToCell converts fixed-point to cell coordinate (floored).
func (f Fixed) ToCell() int {
	if f < 0 {
		return -int((-f + Scale - 1) / Scale)
	}
	return int(f) / Scale
}

// Float returns the value in cells.
func (f Fixed) Float() float64 {
	return float64(f) / Scale
}

// Div divides fixed-point by an integer.
func (f Fixed) Div(n int) Fixed {
	if n == 0 {
		return 0
	}
	return Fixed(int(f) / n)
}

// Scaled multiplies by a float factor, rounding to the nearest unit.
func (f Fixed) Scaled(k float64) Fixed {
	return Fixed(math.Round(float64(f) * k))
}

// Abs returns absolute value.
func (f Fixed) Abs() Fixed {
	if f < 0 {
		return -f
	}
	return f
}

// Sign returns -1, 0, or 1.
func (f Fixed) Sign() int {
	if f < 0 {
		return -1
	}
	if f > 0 {
		return 1
	}
	return 0
}

// ClampFixed restricts a value to [minVal, maxVal].
func ClampFixed(val, minVal, maxVal Fixed) Fixed {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}
