// Package draw renders logical shapes onto a terminal using half-block
// characters and ANSI escape sequences.
package draw

// Point is a position in logical coordinates.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Layout places a canvas inside a terminal.
type Layout struct {
	Cols, Rows           int // Canvas size in terminal cells
	OffsetCol, OffsetRow int // 0-based offset of the canvas' top-left cell
}

// Fit computes the largest canvas that shows a logicalW x logicalH field
// undistorted in a termW x termH terminal, keeping reserveRows free at the
// top and one cell around the canvas for a border. Terminal cells are
// treated as twice as tall as wide.
func Fit(termW, termH int, logicalW, logicalH float64, reserveRows int) Layout {
	availCols := termW - 2
	availRows := termH - 2 - reserveRows
	if availCols < 1 || availRows < 1 {
		return Layout{Cols: max(termW, 1), Rows: max(termH-reserveRows, 1), OffsetRow: max(reserveRows, 0)}
	}

	// Each cell holds two square sub-pixels stacked vertically.
	rows := availRows
	cols := int(float64(rows*2) * logicalW / logicalH)
	if cols > availCols {
		cols = availCols
		rows = max(int(float64(cols)*logicalH/logicalW/2), 1)
	}

	return Layout{
		Cols:      cols,
		Rows:      rows,
		OffsetCol: (termW - cols) / 2,
		OffsetRow: reserveRows + (termH-reserveRows-rows)/2,
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
