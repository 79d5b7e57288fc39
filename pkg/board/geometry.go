package board

import "fmt"

// Geometry of the board, Connect is the number of discs in a row needed to win
type Geometry struct {
	Rows    int `yaml:"rows" json:"rows"`
	Cols    int `yaml:"cols" json:"cols"`
	Connect int `yaml:"connect" json:"connect"`
}

// Standard 6x7 connect 4 board
func Standard() Geometry {
	return Geometry{Rows: 6, Cols: 7, Connect: 4}
}

// Validate the geometry, must be called before any search or calibration runs
func (g Geometry) Validate() error {
	if g.Rows <= 0 || g.Cols <= 0 {
		return fmt.Errorf("%w: dimensions must be positive, got %dx%d", ErrInvalidGeometry, g.Rows, g.Cols)
	}
	if g.Connect <= 0 {
		return fmt.Errorf("%w: connect length must be positive, got %d", ErrInvalidGeometry, g.Connect)
	}
	if g.Connect > max(g.Rows, g.Cols) {
		return fmt.Errorf("%w: connect length %d exceeds max(rows=%d, cols=%d)",
			ErrInvalidGeometry, g.Connect, g.Rows, g.Cols)
	}
	return nil
}

func (g Geometry) Cells() int {
	return g.Rows * g.Cols
}

// Number of K-windows that fit along given direction
func (g Geometry) windowStarts(dir Direction) (rowFrom, rowTo, colFrom, colTo int) {
	k := g.Connect - 1
	rowFrom, rowTo = 0, g.Rows-1-k*dir.DRow
	switch {
	case dir.DCol > 0:
		colFrom, colTo = 0, g.Cols-1-k
	case dir.DCol < 0:
		colFrom, colTo = k, g.Cols-1
	default:
		colFrom, colTo = 0, g.Cols-1
	}
	return
}

func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d connect %d", g.Rows, g.Cols, g.Connect)
}
