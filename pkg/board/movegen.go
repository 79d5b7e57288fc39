package board

// NextRow returns the first empty row of the column, scanning from the bottom,
// or -1 if the column is full
func (p *Position) NextRow(col int) int {
	for row := p.geometry.Rows - 1; row >= 0; row-- {
		if p.At(row, col) == Empty {
			return row
		}
	}
	return -1
}

// Whether a disc can still be dropped in the column
func (p *Position) CanDrop(col int) bool {
	return col >= 0 && col < p.geometry.Cols && p.At(0, col) == Empty
}

// ValidColumns returns all non-full columns in ascending order
func (p *Position) ValidColumns() []int {
	columns := make([]int, 0, p.geometry.Cols)
	for col := 0; col < p.geometry.Cols; col++ {
		if p.At(0, col) == Empty {
			columns = append(columns, col)
		}
	}
	return columns
}
