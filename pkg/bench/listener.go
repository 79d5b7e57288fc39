package bench

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/muesli/termenv"

	"github.com/IlikeChooros/go-catapult/pkg/board"
)

// Line of the terminal, where the first worker's progress is printed
const statsRowStart = 3

type ListenerLike interface {
	// Every worker gets its own clone
	Clone() ListenerLike
	SetRow(row int)
	OnStart()
	OnGameStart()
	OnMoveMade(info VersusWorkerInfo)
	OnFinishedGame(info VersusWorkerInfo)
	OnFinishedWork(info VersusWorkerInfo)
	// Called once by the first worker, after all of them are done
	Summary(summary VersusSummaryInfo)
	OnEnd()
}

type DefaultListener struct {
	row int
}

func (d *DefaultListener) Clone() ListenerLike                  { return &DefaultListener{row: d.row} }
func (d *DefaultListener) SetRow(row int)                       { d.row = row }
func (d *DefaultListener) OnStart()                             {}
func (d *DefaultListener) OnGameStart()                         {}
func (d *DefaultListener) OnMoveMade(info VersusWorkerInfo)     {}
func (d *DefaultListener) OnFinishedGame(info VersusWorkerInfo) {}
func (d *DefaultListener) OnFinishedWork(info VersusWorkerInfo) {}
func (d *DefaultListener) Summary(summary VersusSummaryInfo)    {}
func (d *DefaultListener) OnEnd()                               {}

// TerminalListener prints the progress of every worker on its own line,
// the clones share the output
type TerminalListener struct {
	output *termenv.Output
	mu     *sync.Mutex
	row    int
}

func NewTerminalListener(w io.Writer, opts ...termenv.OutputOption) *TerminalListener {
	return &TerminalListener{
		output: termenv.NewOutput(w, opts...),
		mu:     &sync.Mutex{},
	}
}

func (l *TerminalListener) Clone() ListenerLike {
	return &TerminalListener{output: l.output, mu: l.mu, row: l.row}
}

func (l *TerminalListener) SetRow(row int) {
	l.row = row
}

func (l *TerminalListener) OnStart() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output.ClearScreen()
	l.output.HideCursor()
	l.output.MoveCursor(1, 1)
	fmt.Fprint(l.output, l.output.String("Catapult arena").Bold())
}

func (l *TerminalListener) OnGameStart() {}

func (l *TerminalListener) OnMoveMade(info VersusWorkerInfo) {
	l.print(info)
}

func (l *TerminalListener) OnFinishedGame(info VersusWorkerInfo) {
	l.print(info)
}

func (l *TerminalListener) OnFinishedWork(info VersusWorkerInfo) {
	l.print(info)
}

func (l *TerminalListener) print(info VersusWorkerInfo) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.output.MoveCursor(l.row, 1)
	l.output.ClearLine()
	fmt.Fprintf(l.output, "worker %d: game %d/%d %s %s | %s %d - %d %s, draws %d",
		info.WorkerID, info.FinishedGames, info.NGames,
		l.output.String(fmt.Sprintf("move %2d", info.GameMoveNum)).Faint(),
		l.moves(info.Moves),
		l.disc(board.PlayerA, info.P1Name), info.P1Wins, info.P2Wins,
		l.disc(board.PlayerB, info.P2Name), info.Draws,
	)
}

// Last few columns played, misses are shown as 'x'
func (l *TerminalListener) moves(moves []int) string {
	const shown = 8
	builder := strings.Builder{}
	for _, m := range moves[max(0, len(moves)-shown):] {
		if m == board.NoColumn {
			builder.WriteString(l.output.String("x").Foreground(termenv.ANSIBrightBlack).String())
			continue
		}
		builder.WriteString(fmt.Sprint(m))
	}
	return builder.String()
}

func (l *TerminalListener) disc(side board.Cell, name string) termenv.Style {
	return DiscStyle(l.output, side, name)
}

func (l *TerminalListener) Summary(summary VersusSummaryInfo) {
	l.mu.Lock()
	defer l.mu.Unlock()

	data, _ := json.MarshalIndent(summary, "", "  ")
	l.output.MoveCursor(statsRowStart+summary.Workers+1, 1)
	fmt.Fprintln(l.output, string(data))
}

func (l *TerminalListener) OnEnd() {
	l.output.ShowCursor()
}

// DiscStyle colours the text the way the side's discs are drawn: a is red, b is yellow
func DiscStyle(output *termenv.Output, side board.Cell, text string) termenv.Style {
	style := output.String(text)
	switch side {
	case board.PlayerA:
		return style.Foreground(termenv.ANSIRed).Bold()
	case board.PlayerB:
		return style.Foreground(termenv.ANSIYellow).Bold()
	}
	return style.Faint()
}

// RenderBoard draws the position with coloured discs, top row first
func RenderBoard(output *termenv.Output, pos *board.Position) string {
	builder := strings.Builder{}
	for row := 0; row < pos.Rows(); row++ {
		builder.WriteString("|")
		for col := 0; col < pos.Cols(); col++ {
			cell := pos.At(row, col)
			builder.WriteString(" ")
			builder.WriteString(DiscStyle(output, cell, cell.String()).String())
		}
		builder.WriteString(" |\n")
	}
	for col := 0; col < pos.Cols(); col++ {
		builder.WriteString(fmt.Sprintf("%2d", col))
	}
	builder.WriteString("\n")
	return builder.String()
}
