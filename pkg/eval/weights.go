package eval

import "github.com/IlikeChooros/go-catapult/pkg/board"

// PositionWeights scores every cell by how many windows pass through it,
// so central cells, which take part in more potential lines, are worth more
type PositionWeights struct {
	geometry board.Geometry
	weights  []int
}

// NewPositionWeights adds multiplier/2 to a cell for every window it belongs to
func NewPositionWeights(geometry board.Geometry, multiplier int) *PositionWeights {
	pw := &PositionWeights{
		geometry: geometry,
		weights:  make([]int, geometry.Cells()),
	}

	bonus := multiplier / 2
	geometry.EachWindow(func(line board.Line) bool {
		row, col := line.Start.Row, line.Start.Col
		for range geometry.Connect {
			pw.weights[row*geometry.Cols+col] += bonus
			row += line.Dir.DRow
			col += line.Dir.DCol
		}
		return true
	})
	return pw
}

func (pw *PositionWeights) At(row, col int) int {
	return pw.weights[row*pw.geometry.Cols+col]
}

// Sum of the weights of all cells occupied by the side
func (pw *PositionWeights) Score(pos *board.Position, side board.Cell) int {
	score := 0
	for row := 0; row < pw.geometry.Rows; row++ {
		for col := 0; col < pw.geometry.Cols; col++ {
			if pos.At(row, col) == side {
				score += pw.At(row, col)
			}
		}
	}
	return score
}
