package search

import (
	"context"
	"math"
	"math/rand"

	"github.com/IlikeChooros/go-catapult/pkg/board"
	"github.com/IlikeChooros/go-catapult/pkg/eval"
)

// Engine is a depth-limited minimax search with alpha-beta pruning. Scores are
// always from the automated side's point of view: the maximizing player is the
// side the engine plays for, and the evaluator is never negated.
//
// Engine is not safe for concurrent use, every opponent owns its own engine.
type Engine struct {
	Limiter   LimiterLike
	evaluator *eval.Evaluator
	listener  *StatsListener
	rand      *rand.Rand

	side    board.Cell
	prune   bool
	limited bool
	aborted bool
	nodes   uint32
	leaves  uint32
	cutoffs uint32
}

func NewEngine(evaluator *eval.Evaluator) *Engine {
	return &Engine{
		Limiter:   LimiterLike(NewLimiter()),
		evaluator: evaluator,
		listener:  &StatsListener{},
		rand:      rand.New(rand.NewSource(SeedGeneratorFn())),
	}
}

func (e *Engine) Evaluator() *eval.Evaluator {
	return e.evaluator
}

// Replace the random number generator, used to pick the default column of each node
func (e *Engine) SetRand(r *rand.Rand) {
	if r != nil {
		e.rand = r
	}
}

func (e *Engine) StatsListener() *StatsListener {
	return e.listener
}

func (e *Engine) SetListener(listener StatsListener) {
	*e.listener = listener
}

func (e *Engine) SetLimits(limits *Limits) {
	e.Limiter.SetLimits(limits)
}

// Adds custom context to the limiter, enabling cancellation through it
func (e *Engine) SetContext(ctx context.Context) {
	e.Limiter.SetContext(ctx)
}

// Nodes visited by the last search
func (e *Engine) Nodes() uint32 {
	return e.nodes
}

// BestMove searches the position to the given depth for the side to move, returns
// the chosen column and its score. Terminal positions (and depth 0) return
// board.NoColumn with the static score. Calling it on a full board is a contract
// violation, answered with (board.NoColumn, DrawScore).
func (e *Engine) BestMove(pos *board.Position, depth int, side board.Cell) (int, int) {
	e.setup(side, true, false)
	return e.alphaBeta(pos, depth, math.MinInt, math.MaxInt, true)
}

// Minimax is BestMove without the pruning, the returned score is always the same,
// but the search visits every node of the tree
func (e *Engine) Minimax(pos *board.Position, depth int, side board.Cell) (int, int) {
	e.setup(side, false, false)
	return e.alphaBeta(pos, depth, math.MinInt, math.MaxInt, true)
}

// Search runs BestMove under the limiter: the context and stop signal are polled
// between the root columns and every few hundred nodes inside of the recursion.
// An interrupted search returns the best of the completely searched root columns,
// or board.NoColumn if none of them was finished.
func (e *Engine) Search(ctx context.Context, pos *board.Position, side board.Cell) Result {
	e.Limiter.SetContext(ctx)
	e.Limiter.Reset()
	e.setup(side, true, true)

	depth := max(e.Limiter.Limits().Depth, 1)
	result := Result{Column: board.NoColumn, Depth: depth}

	if score, ok := e.terminal(pos); ok {
		result.Score = score
		return e.finish(result, true)
	}

	value, alpha := math.MinInt, math.MinInt
	completed := true

	for _, col := range pos.ValidColumns() {
		if !e.Limiter.Ok(e.nodes) {
			completed = false
			break
		}

		child, _ := pos.Child(col, side)
		_, score := e.alphaBeta(child, depth-1, alpha, math.MaxInt, false)
		if e.aborted {
			completed = false
			break
		}

		if score > value {
			value = score
			result.Column = col
		}
		alpha = max(alpha, value)
		result.Score = value
		e.listener.invoke(e.listener.onRootMove, e.stats(result))
	}

	return e.finish(result, completed)
}

func (e *Engine) setup(side board.Cell, prune, limited bool) {
	e.side = side
	e.prune = prune
	e.limited = limited
	e.aborted = false
	e.nodes, e.leaves, e.cutoffs = 0, 0, 0
}

func (e *Engine) finish(result Result, completed bool) Result {
	e.Limiter.EvaluateStopReason(e.nodes, completed)
	result.Completed = completed
	result.StopReason = e.Limiter.StopReason()
	result = e.stats(result)
	e.listener.invoke(e.listener.onStop, result)
	return result
}

func (e *Engine) stats(result Result) Result {
	result.Nodes = e.nodes
	result.Leaves = e.leaves
	result.Cutoffs = e.cutoffs
	result.TimeMs = int(e.Limiter.Elapsed())
	result.Nps = uint32(uint64(e.nodes) * 1000 / uint64(max(result.TimeMs, 1)))
	return result
}

// Score of a terminal position, wins are checked before the draw
func (e *Engine) terminal(pos *board.Position) (int, bool) {
	switch {
	case pos.DetectWin(e.side):
		return WinScore, true
	case pos.DetectWin(e.side.Opponent()):
		return -WinScore, true
	case pos.IsFull():
		return DrawScore, true
	}
	return 0, false
}

func (e *Engine) alphaBeta(pos *board.Position, depth, alpha, beta int, maximizing bool) (int, int) {
	e.nodes++
	if e.limited && e.nodes%limiterCheckInterval == 0 && !e.Limiter.Ok(e.nodes) {
		e.aborted = true
	}
	if e.aborted {
		return board.NoColumn, 0
	}

	if score, ok := e.terminal(pos); ok {
		e.leaves++
		return board.NoColumn, score
	}
	if depth <= 0 {
		e.leaves++
		return board.NoColumn, e.evaluator.Score(pos, e.side)
	}

	valid := pos.ValidColumns()
	// Only strictly better children replace the column,
	// so among equal scores the first one searched is kept
	column := valid[e.rand.Intn(len(valid))]

	if maximizing {
		value := math.MinInt
		for _, col := range valid {
			child, _ := pos.Child(col, e.side)
			_, score := e.alphaBeta(child, depth-1, alpha, beta, false)
			if score > value {
				value = score
				column = col
			}
			alpha = max(alpha, value)
			if e.prune && alpha >= beta {
				e.cutoffs++
				break
			}
		}
		return column, value
	}

	value := math.MaxInt
	opponent := e.side.Opponent()
	for _, col := range valid {
		child, _ := pos.Child(col, opponent)
		_, score := e.alphaBeta(child, depth-1, alpha, beta, true)
		if score < value {
			value = score
			column = col
		}
		beta = min(beta, value)
		if e.prune && alpha >= beta {
			e.cutoffs++
			break
		}
	}
	return column, value
}
