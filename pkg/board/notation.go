package board

import (
	"fmt"
	"strconv"
	"strings"
)

// Notation of the position, much like FEN for a chess board: rows from the top,
// separated by '/', 'a' and 'b' are the discs and a number is a run of empty cells.
//
// Examples:
//
//   - 7/7/7/7/7/7 is an empty standard board
//   - 7/7/7/7/3b3/2aab2 has 5 discs, on the 2 bottom rows
func (p *Position) Notation() string {
	builder := strings.Builder{}
	for row := 0; row < p.geometry.Rows; row++ {
		if row > 0 {
			builder.WriteByte('/')
		}
		counter := 0
		for col := 0; col < p.geometry.Cols; col++ {
			cell := p.At(row, col)
			if cell == Empty {
				counter++
				continue
			}
			if counter > 0 {
				builder.WriteString(strconv.Itoa(counter))
				counter = 0
			}
			builder.WriteString(cell.String())
		}
		if counter > 0 {
			builder.WriteString(strconv.Itoa(counter))
		}
	}
	return builder.String()
}

// Widest row ParsePosition accepts
const MaxNotationCols = 256

// ParsePosition reads the notation (see Notation), the board dimensions are taken
// from the notation itself. Floating discs (with an empty cell below) are rejected
func ParsePosition(notation string, connect int) (*Position, error) {
	rows := strings.Split(strings.TrimSpace(notation), "/")
	grid := make([][]Cell, 0, len(rows))

	for i, row := range rows {
		width := MaxNotationCols
		if i > 0 {
			width = len(grid[0])
		}
		cells := make([]Cell, 0, min(len(row), width))
		for j := 0; j < len(row); {
			switch ch := row[j]; {
			case (ch == 'a' || ch == 'b') && len(cells) >= width:
				return nil, fmt.Errorf("%w: row %d is wider than %d", ErrInvalidNotation, i, width)
			case ch == 'a':
				cells = append(cells, PlayerA)
				j++
			case ch == 'b':
				cells = append(cells, PlayerB)
				j++
			case ch >= '0' && ch <= '9':
				end := j
				for end < len(row) && row[end] >= '0' && row[end] <= '9' {
					end++
				}
				n, err := strconv.Atoi(row[j:end])
				if err != nil || len(cells)+n > width {
					return nil, fmt.Errorf("%w: run of %s empty cells in row %d is wider than %d",
						ErrInvalidNotation, row[j:end], i, width)
				}
				for range n {
					cells = append(cells, Empty)
				}
				j = end
			default:
				return nil, fmt.Errorf("%w: unexpected %q in row %d", ErrInvalidNotation, ch, i)
			}
		}
		if i > 0 && len(cells) != len(grid[0]) {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", ErrInvalidNotation, i, len(cells), len(grid[0]))
		}
		grid = append(grid, cells)
	}

	geometry := Geometry{Rows: len(grid), Cols: len(grid[0]), Connect: connect}
	p, err := NewPosition(geometry)
	if err != nil {
		return nil, err
	}

	for row := range grid {
		for col, cell := range grid[row] {
			if cell == Empty {
				continue
			}
			if row+1 < geometry.Rows && grid[row+1][col] == Empty {
				return nil, fmt.Errorf("%w: floating disc at row %d, column %d", ErrInvalidNotation, row, col)
			}
			p.set(row, col, cell)
			p.filled++
		}
	}
	return p, nil
}

// MustParse is like ParsePosition, but panics on error, useful in tests
func MustParse(notation string, connect int) *Position {
	p, err := ParsePosition(notation, connect)
	if err != nil {
		panic(err)
	}
	return p
}
