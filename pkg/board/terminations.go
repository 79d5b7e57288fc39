package board

type Termination int

const (
	TerminationNone Termination = 0
	TerminationAWon Termination = 1
	TerminationBWon Termination = 2
	TerminationDraw Termination = 4
)

func (t Termination) String() string {
	switch t {
	case TerminationAWon:
		return "a won"
	case TerminationBWon:
		return "b won"
	case TerminationDraw:
		return "draw"
	}
	return "none"
}

// Line is a run of Connect cells, starting at Start and going in Dir
type Line struct {
	Start Move
	Dir   Direction
}

// EachWindow calls fn for every window of Connect cells, in all 4 directions:
// rows, columns, principal diagonals and anti-diagonals. Stops when fn returns false
func (g Geometry) EachWindow(fn func(line Line) bool) {
	for _, dir := range Directions {
		rowFrom, rowTo, colFrom, colTo := g.windowStarts(dir)
		for row := rowFrom; row <= rowTo; row++ {
			for col := colFrom; col <= colTo; col++ {
				if !fn(Line{Start: Move{Col: col, Row: row}, Dir: dir}) {
					return
				}
			}
		}
	}
}

// Number of windows on this geometry
func (g Geometry) WindowCount() int {
	n := 0
	g.EachWindow(func(Line) bool {
		n++
		return true
	})
	return n
}

// EachWindow calls fn with the cells of every window, the slice is reused
// between calls, so fn must not keep it
func (p *Position) EachWindow(fn func(line Line, cells []Cell) bool) {
	buffer := make([]Cell, p.geometry.Connect)
	p.geometry.EachWindow(func(line Line) bool {
		p.readLine(line, buffer)
		return fn(line, buffer)
	})
}

func (p *Position) readLine(line Line, buffer []Cell) {
	row, col := line.Start.Row, line.Start.Col
	for i := range buffer {
		buffer[i] = p.At(row, col)
		row += line.Dir.DRow
		col += line.Dir.DCol
	}
}

// WinningLine returns the first complete line of the side, if there is any
func (p *Position) WinningLine(side Cell) (Line, bool) {
	var found Line
	ok := false
	p.EachWindow(func(line Line, cells []Cell) bool {
		for _, c := range cells {
			if c != side {
				return true
			}
		}
		found, ok = line, true
		return false
	})
	return found, ok
}

// DetectWin reports whether the side has Connect discs in a row
func (p *Position) DetectWin(side Cell) bool {
	_, ok := p.WinningLine(side)
	return ok
}

// Termination of the game in this position, win is checked before the draw
func (p *Position) Termination() Termination {
	if p.DetectWin(PlayerA) {
		return TerminationAWon
	}
	if p.DetectWin(PlayerB) {
		return TerminationBWon
	}
	if p.IsFull() {
		return TerminationDraw
	}
	return TerminationNone
}

func (p *Position) IsTerminated() bool {
	return p.Termination() != TerminationNone
}
