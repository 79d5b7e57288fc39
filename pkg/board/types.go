package board

import "errors"

// Cell is the content of a single board slot, the values match the ones
// the host stores in its own board matrix
type Cell uint8

const (
	Empty   Cell = 0
	PlayerA Cell = 1
	PlayerB Cell = 2
)

// Returned by search, when there is no column to play
const NoColumn = -1

var (
	ErrInvalidGeometry = errors.New("board: invalid geometry")
	ErrInvalidColumn   = errors.New("board: invalid column")
	ErrColumnFull      = errors.New("board: column is full")
	ErrInvalidNotation = errors.New("board: invalid notation")
	ErrInvalidSide     = errors.New("board: invalid side")
)

// Opponent of the given side, Empty stays Empty
func (c Cell) Opponent() Cell {
	switch c {
	case PlayerA:
		return PlayerB
	case PlayerB:
		return PlayerA
	}
	return Empty
}

func (c Cell) String() string {
	switch c {
	case PlayerA:
		return "a"
	case PlayerB:
		return "b"
	}
	return "."
}

// Move is a disc dropped into a column, Row is the slot it settled in
type Move struct {
	Col int
	Row int
}

// Direction of a line of cells, as (row step, column step)
type Direction struct {
	DRow int
	DCol int
}

var (
	Horizontal   = Direction{0, 1}
	Vertical     = Direction{1, 0}
	Diagonal     = Direction{1, 1}
	AntiDiagonal = Direction{1, -1}
)

// All 4 line directions, in the order windows are scanned
var Directions = [4]Direction{Horizontal, Vertical, Diagonal, AntiDiagonal}
