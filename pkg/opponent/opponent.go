package opponent

import (
	"context"
	"math"
	"math/rand"

	"go.uber.org/zap"

	"github.com/IlikeChooros/go-catapult/pkg/aim"
	"github.com/IlikeChooros/go-catapult/pkg/board"
	"github.com/IlikeChooros/go-catapult/pkg/eval"
	"github.com/IlikeChooros/go-catapult/pkg/search"
	"github.com/IlikeChooros/go-catapult/pkg/trajectory"
)

// Decision describes how the opponent picked its target
type Decision struct {
	Column int
	Score  int

	// Whether the search picked the column, otherwise it's random
	Searched bool

	// Horizontal offset added to the calibrated endpoint
	Noise float64

	// The column was not calibrated, target is the column's target point
	Fallback bool

	Target trajectory.Vec2
	Search search.Result
}

// Opponent is the automated player: it picks a column with the search engine
// (sometimes at random) and aims at it with the calibrated table, missing on
// purpose depending on the difficulty
type Opponent struct {
	side       board.Cell
	difficulty Difficulty
	table      *aim.Table
	engine     *search.Engine
	rand       *rand.Rand
	logger     *zap.Logger
}

type Option func(*Opponent)

func WithLogger(logger *zap.Logger) Option {
	return func(o *Opponent) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Random number generator used for the random columns and the noise
func WithRand(r *rand.Rand) Option {
	return func(o *Opponent) {
		if r != nil {
			o.rand = r
		}
	}
}

// Attach a listener to the underlying search engine
func WithListener(listener search.StatsListener) Option {
	return func(o *Opponent) {
		o.engine.SetListener(listener)
	}
}

func New(side board.Cell, difficulty Difficulty, table *aim.Table, evaluator *eval.Evaluator, opts ...Option) *Opponent {
	o := &Opponent{
		side:       side,
		difficulty: difficulty,
		table:      table,
		engine:     search.NewEngine(evaluator),
		rand:       rand.New(rand.NewSource(search.SeedGeneratorFn())),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Opponent) Side() board.Cell {
	return o.side
}

func (o *Opponent) Difficulty() Difficulty {
	return o.difficulty
}

func (o *Opponent) Table() *aim.Table {
	return o.table
}

// NextTarget is NextTargetContext without cancellation
func (o *Opponent) NextTarget(pos *board.Position) (trajectory.Vec2, Decision) {
	return o.NextTargetContext(context.Background(), pos)
}

// NextTargetContext returns the aim endpoint of the next launch. The position
// must have at least one valid column, otherwise the decision's column is
// board.NoColumn and the target is the launch origin
func (o *Opponent) NextTargetContext(ctx context.Context, pos *board.Position) (trajectory.Vec2, Decision) {
	valid := pos.ValidColumns()
	if len(valid) == 0 {
		return o.table.Origin(), Decision{Column: board.NoColumn, Target: o.table.Origin()}
	}

	decision := Decision{Column: board.NoColumn}
	roll := o.rand.Float64()
	if o.difficulty.AlwaysSearches() || roll < SearchProbability {
		o.engine.SetLimits(search.DefaultLimits().SetDepth(o.difficulty.Depth()))
		result := o.engine.Search(ctx, pos, o.side)
		decision.Search = result
		if result.HasMove() {
			decision.Column = result.Column
			decision.Score = result.Score
			decision.Searched = true
		}
	}
	if decision.Column == board.NoColumn {
		decision.Column = valid[o.rand.Intn(len(valid))]
	}

	target := o.table.Target(decision.Column)
	decision.Fallback = !o.table.Calibrated(decision.Column)
	if sigma := o.difficulty.NoiseScale(o.table.MeanColumnSpacing()); sigma > 0 {
		decision.Noise = o.rand.NormFloat64() * sigma
		target.X += decision.Noise
	}
	decision.Target = target

	o.logger.Debug("next target",
		zap.Stringer("difficulty", o.difficulty),
		zap.Int("column", decision.Column),
		zap.Bool("searched", decision.Searched),
		zap.Int("score", decision.Score),
		zap.Float64("noise", decision.Noise),
		zap.Bool("fallback", decision.Fallback),
	)
	if decision.Fallback {
		o.logger.Warn("aiming at an uncalibrated column", zap.Int("column", decision.Column))
	}
	return target, decision
}

// NextLaunch is NextTarget converted to the aim line's angle and power,
// the target is rounded to whole units first
func (o *Opponent) NextLaunch(pos *board.Position) (aim.Launch, Decision) {
	target, decision := o.NextTarget(pos)
	target = trajectory.NewVec2(math.RoundToEven(target.X), math.RoundToEven(target.Y))
	return aim.LaunchFor(o.table.Origin(), target, o.table.MaxAimDistance()), decision
}
