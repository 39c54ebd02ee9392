package physics

import "math"

// SpatialGrid is a uniform bucket grid over a bounded play-field for
// broad-phase collision queries. Items are inserted by position and
// index, then nearby items can be found with a 3x3 neighborhood lookup.
//
// Cell size must be >= the maximum interaction distance between any two
// colliding objects so that every potential collision lies within the
// 3x3 neighborhood of the querying position.
//
// The grid is meant to be rebuilt (Clear + Insert) every tick rather than
// maintained incrementally: items may jump discontinuously between ticks.
type SpatialGrid struct {
	invCellSize float64 // 1 / cellSize (precomputed to avoid division)
	cols        int
	rows        int
	cells       []gridCell
}

// gridCell stores the indices of items that fall within a grid cell.
// The slice is reused between frames (reset to [:0]) to avoid allocations.
type gridCell struct {
	items []int
}

// NewSpatialGrid creates a spatial grid covering the given field dimensions.
// cellSize should be >= the maximum collision distance for the items being inserted.
func NewSpatialGrid(fieldW, fieldH, cellSize float64) *SpatialGrid {
	cols := int(math.Ceil(fieldW / cellSize))
	rows := int(math.Ceil(fieldH / cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	return &SpatialGrid{
		invCellSize: 1.0 / cellSize,
		cols:        cols,
		rows:        rows,
		cells:       make([]gridCell, cols*rows),
	}
}

// Dimensions returns the number of columns and rows.
func (g *SpatialGrid) Dimensions() (cols, rows int) {
	return g.cols, g.rows
}

// Clear removes all items from the grid without deallocating cell memory.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i].items = g.cells[i].items[:0]
	}
}

// Insert adds an item (identified by index) at the given field position.
// Positions outside the grid are dropped and Insert reports false.
func (g *SpatialGrid) Insert(x, y float64, index int) bool {
	col, row := g.cellOf(x, y)
	if col < 0 || col >= g.cols || row < 0 || row >= g.rows {
		return false
	}
	idx := row*g.cols + col
	g.cells[idx].items = append(g.cells[idx].items, index)
	return true
}

// Len returns the total number of indexed items.
func (g *SpatialGrid) Len() int {
	n := 0
	for i := range g.cells {
		n += len(g.cells[i].items)
	}
	return n
}

// QueryAround calls fn for each item index in the 3x3 cell neighborhood
// around the given position. The neighborhood is clamped to the grid, so
// cells beyond the edges contribute nothing.
// If fn returns true, iteration stops early.
func (g *SpatialGrid) QueryAround(x, y float64, fn func(index int) bool) {
	col, row := g.cellOf(x, y)

	minCol, maxCol := max(col-1, 0), min(col+1, g.cols-1)
	minRow, maxRow := max(row-1, 0), min(row+1, g.rows-1)

	for r := minRow; r <= maxRow; r++ {
		rowOffset := r * g.cols
		for c := minCol; c <= maxCol; c++ {
			for _, itemIdx := range g.cells[rowOffset+c].items {
				if fn(itemIdx) {
					return
				}
			}
		}
	}
}

// cellOf converts field coordinates to (unclamped) cell coordinates.
// Flooring keeps negative positions out of cell 0.
func (g *SpatialGrid) cellOf(x, y float64) (col, row int) {
	return int(math.Floor(x * g.invCellSize)), int(math.Floor(y * g.invCellSize))
}
