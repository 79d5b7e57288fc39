package eval

import "github.com/IlikeChooros/go-catapult/pkg/board"

const DefaultMultiplier = 5

// Evaluator is the static evaluation used at the search leaves. It's immutable
// once created, so it can be shared between engines
type Evaluator struct {
	geometry   board.Geometry
	multiplier int
	weights    *PositionWeights
}

func NewEvaluator(geometry board.Geometry, multiplier int) *Evaluator {
	return &Evaluator{
		geometry:   geometry,
		multiplier: multiplier,
		weights:    NewPositionWeights(geometry, multiplier),
	}
}

// Evaluator with the default multiplier
func New(geometry board.Geometry) *Evaluator {
	return NewEvaluator(geometry, DefaultMultiplier)
}

func (e *Evaluator) Geometry() board.Geometry {
	return e.geometry
}

func (e *Evaluator) Multiplier() int {
	return e.multiplier
}

func (e *Evaluator) Weights() *PositionWeights {
	return e.weights
}

// Score the position from the side's point of view: positional weights of its
// discs plus the pattern score of every window
func (e *Evaluator) Score(pos *board.Position, side board.Cell) int {
	return e.weights.Score(pos, side) + e.Pattern(pos, side)
}

// Pattern sums ScoreWindow over all windows of the position
func (e *Evaluator) Pattern(pos *board.Position, side board.Cell) int {
	score := 0
	pos.EachWindow(func(_ board.Line, cells []board.Cell) bool {
		score += e.ScoreWindow(cells, side)
		return true
	})
	return score
}

// ScoreWindow scores a single window of Connect cells:
//
//   - n of side's discs and the rest empty (n >= 2) gives n^3 * multiplier
//   - Connect-1 of the opponent's discs and 1 empty cell (opponent is one move
//     from winning) takes away (Connect-1)^3 * multiplier
//
// Windows holding discs of both sides are blocked and score nothing.
func (e *Evaluator) ScoreWindow(cells []board.Cell, side board.Cell) int {
	k := len(cells)
	own, opp, empty := 0, 0, 0
	opponent := side.Opponent()
	for _, c := range cells {
		switch c {
		case side:
			own++
		case opponent:
			opp++
		default:
			empty++
		}
	}

	score := 0
	if own >= 2 && own+empty == k {
		score += own * own * own * e.multiplier
	}
	// Dropping this would leave the engine blind to the opponent's open threats
	if opp == k-1 && empty == 1 {
		score -= (k - 1) * (k - 1) * (k - 1) * e.multiplier
	}
	return score
}
