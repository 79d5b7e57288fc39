package board

import (
	"fmt"
	"strings"
)

// Position is the grid of discs, row 0 is the top row and Rows-1 the bottom one.
// Discs are only ever added with Drop, so a column is always filled from the bottom up
type Position struct {
	geometry Geometry
	cells    []Cell
	filled   int
}

// NewPosition creates an empty board of the given geometry
func NewPosition(geometry Geometry) (*Position, error) {
	if err := geometry.Validate(); err != nil {
		return nil, err
	}
	return &Position{
		geometry: geometry,
		cells:    make([]Cell, geometry.Cells()),
	}, nil
}

// MustPosition is like NewPosition, but panics on invalid geometry
func MustPosition(geometry Geometry) *Position {
	p, err := NewPosition(geometry)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Position) Geometry() Geometry {
	return p.geometry
}

func (p *Position) Rows() int    { return p.geometry.Rows }
func (p *Position) Cols() int    { return p.geometry.Cols }
func (p *Position) Connect() int { return p.geometry.Connect }

// Get the cell at given row, column
func (p *Position) At(row, col int) Cell {
	return p.cells[row*p.geometry.Cols+col]
}

func (p *Position) set(row, col int, c Cell) {
	p.cells[row*p.geometry.Cols+col] = c
}

// Clone returns a copy, that doesn't share any memory with this position
func (p *Position) Clone() *Position {
	cells := make([]Cell, len(p.cells))
	copy(cells, p.cells)
	return &Position{
		geometry: p.geometry,
		cells:    cells,
		filled:   p.filled,
	}
}

// Drop places the side's disc in the lowest empty row of the column.
// A full or out of range column, or a side other than PlayerA and PlayerB, is
// rejected and the position stays untouched
func (p *Position) Drop(col int, side Cell) (Move, error) {
	if side != PlayerA && side != PlayerB {
		return Move{}, fmt.Errorf("%w: %d", ErrInvalidSide, side)
	}
	if col < 0 || col >= p.geometry.Cols {
		return Move{}, fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidColumn, col, p.geometry.Cols)
	}
	row := p.NextRow(col)
	if row < 0 {
		return Move{}, fmt.Errorf("%w: column %d", ErrColumnFull, col)
	}
	p.set(row, col, side)
	p.filled++
	return Move{Col: col, Row: row}, nil
}

// Child returns a copy of this position, with the side's disc dropped in the column
func (p *Position) Child(col int, side Cell) (*Position, error) {
	child := p.Clone()
	if _, err := child.Drop(col, side); err != nil {
		return nil, err
	}
	return child, nil
}

// Number of discs on the board
func (p *Position) Filled() int {
	return p.filled
}

// Count the discs of given side
func (p *Position) Count(side Cell) int {
	n := 0
	for _, c := range p.cells {
		if c == side {
			n++
		}
	}
	return n
}

// No empty cell left
func (p *Position) IsFull() bool {
	return p.filled == len(p.cells)
}

func (p *Position) Equal(other *Position) bool {
	if p.geometry != other.geometry {
		return false
	}
	for i := range p.cells {
		if p.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// Plain text grid, top row first, '.' for empty cells
func (p *Position) String() string {
	builder := strings.Builder{}
	for row := 0; row < p.geometry.Rows; row++ {
		for col := 0; col < p.geometry.Cols; col++ {
			if col > 0 {
				builder.WriteByte(' ')
			}
			builder.WriteString(p.At(row, col).String())
		}
		builder.WriteByte('\n')
	}
	return builder.String()
}
