package aim

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/IlikeChooros/go-catapult/pkg/trajectory"
)

// bisection is the step size schedule of the search: every update makes the
// step smaller, it's updated on the first step in a direction and on every reversal
type bisection struct {
	n         int
	increment float64
	maxAim    float64
}

func newBisection(maxAim float64) *bisection {
	b := &bisection{maxAim: maxAim}
	b.update()
	return b
}

func (b *bisection) update() {
	b.n += 10
	b.increment = b.maxAim / float64(2*b.n)
}

// axis of a single bisection search
type axis struct {
	// landing of the first probe, before the endpoint moves
	initial trajectory.Vec2

	// predicted landing for given endpoint coordinate
	land func(endpoint float64) trajectory.Vec2

	done func(landing trajectory.Vec2) bool

	// landing coordinate is smaller than the target's
	below func(landing trajectory.Vec2) bool
}

type calibrator struct {
	params Params
	logger *zap.Logger
}

// Calibrate finds, for every column, the aim endpoint that makes the disc land
// on the column's target. First the vertical pull (shared by all columns) is
// searched against Targets[0].Y, then the horizontal pull of each column.
//
// The table is always returned, even on error. Columns that did not converge
// within MaxIterations are marked uncalibrated and ErrNotConverged is returned.
// Context cancellation is checked on every iteration, the partial table is
// returned together with the context's error.
func Calibrate(ctx context.Context, params Params) (*Table, error) {
	params = params.withDefaults()
	if err := params.Validate(); err != nil {
		return nil, err
	}

	c := &calibrator{params: params, logger: params.Logger}
	table := &Table{
		origin:         params.Origin,
		maxAimDistance: params.MaxAimDistance,
		launchFactor:   params.LaunchFactor,
		targets:        params.Targets,
		entries:        make([]Entry, len(params.Targets)),
	}
	for i := range table.entries {
		table.entries[i] = Entry{Column: i, Endpoint: params.Targets[i]}
	}

	start := time.Now()
	c.logger.Debug("calibration started",
		zap.Int("columns", len(params.Targets)),
		zap.Stringer("origin", params.Origin),
		zap.Float64("tolerance", params.Tolerance),
	)

	vertical, err := c.vertical(ctx)
	table.vertical = vertical
	if err != nil || !vertical.Ok() {
		table.spacing = meanColumnSpacing(table.entries, params.SlotSize)
		if err != nil {
			return table, fmt.Errorf("aim: vertical calibration interrupted: %w", err)
		}
		c.logger.Warn("vertical calibration exceeded the iteration limit",
			zap.Int("iterations", vertical.Iterations),
			zap.Float64("endpointY", vertical.Value),
		)
		return table, fmt.Errorf("%w: vertical pull, columns %v", ErrNotConverged, table.Uncalibrated())
	}

	velocityY := c.velocity(params.Origin.Y, vertical.Value)
	for col := range params.Targets {
		outcome, err := c.horizontal(ctx, col, velocityY)
		if err != nil {
			table.spacing = meanColumnSpacing(table.entries, params.SlotSize)
			return table, fmt.Errorf("aim: column %d calibration interrupted: %w", col, err)
		}

		endpoint := trajectory.NewVec2(outcome.Value, vertical.Value)
		velocity := trajectory.NewVec2(c.velocity(params.Origin.X, outcome.Value), velocityY)
		launch := LaunchFor(params.Origin, endpoint, params.MaxAimDistance)
		table.entries[col] = Entry{
			Column:     col,
			Endpoint:   endpoint,
			Velocity:   velocity,
			Landing:    params.Predictor.Landing(params.Origin, velocity),
			Power:      launch.Power,
			Angle:      launch.Angle,
			Iterations: outcome.Iterations,
			Converged:  outcome.Ok(),
		}

		if !outcome.Ok() {
			c.logger.Warn("column did not converge",
				zap.Int("column", col),
				zap.Int("iterations", outcome.Iterations),
				zap.Stringer("target", params.Targets[col]),
			)
		}
	}
	table.spacing = meanColumnSpacing(table.entries, params.SlotSize)

	c.logger.Info("calibration finished",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("verticalIterations", vertical.Iterations),
		zap.Float64("meanColumnSpacing", table.spacing),
		zap.Ints("uncalibrated", table.Uncalibrated()),
	)

	if missing := table.Uncalibrated(); len(missing) > 0 {
		return table, fmt.Errorf("%w: columns %v", ErrNotConverged, missing)
	}
	return table, nil
}

func (c *calibrator) velocity(origin, endpoint float64) float64 {
	return trajectory.AxisVelocity(origin, endpoint, c.params.MaxAimDistance, c.params.LaunchFactor)
}

func (c *calibrator) vertical(ctx context.Context) (Outcome, error) {
	p := c.params
	target := p.Targets[0]
	return c.bisect(ctx, p.Origin.Y, axis{
		initial: p.Predictor.Landing(p.Origin, trajectory.Vec2{}),
		land: func(endpoint float64) trajectory.Vec2 {
			return p.Predictor.Landing(p.Origin, trajectory.NewVec2(0, c.velocity(p.Origin.Y, endpoint)))
		},
		done: func(landing trajectory.Vec2) bool {
			return math.Abs(landing.Y-target.Y) <= p.Tolerance
		},
		below: func(landing trajectory.Vec2) bool {
			return landing.Y < target.Y
		},
	})
}

// Every column starts from a straight vertical launch, not from the final x
// velocity of the previous column. The endpoints stay within the tolerance of a
// search chained across columns but are not equal to it, e.g. 1035.50 against
// 1035.42 for column 4 of the standard layout launched from the right
func (c *calibrator) horizontal(ctx context.Context, col int, velocityY float64) (Outcome, error) {
	p := c.params
	target := p.Targets[col]
	return c.bisect(ctx, p.Origin.X, axis{
		initial: p.Predictor.Landing(p.Origin, trajectory.NewVec2(0, velocityY)),
		land: func(endpoint float64) trajectory.Vec2 {
			return p.Predictor.Landing(p.Origin, trajectory.NewVec2(c.velocity(p.Origin.X, endpoint), velocityY))
		},
		done: func(landing trajectory.Vec2) bool {
			return landing.Dist(target) <= p.Tolerance
		},
		below: func(landing trajectory.Vec2) bool {
			return landing.X < target.X
		},
	})
}

// bisect moves the endpoint coordinate, until the landing satisfies ax.done.
// A landing coordinate below the target's moves the endpoint down, otherwise up
func (c *calibrator) bisect(ctx context.Context, start float64, ax axis) (Outcome, error) {
	b := newBisection(c.params.MaxAimDistance)
	endpoint, landing := start, ax.initial
	wasBelow := false

	for i := 0; ; i++ {
		if ax.done(landing) {
			return Outcome{Kind: Converged, Value: endpoint, Iterations: i}, nil
		}
		if i >= c.params.MaxIterations {
			return Outcome{Kind: Exceeded, Value: endpoint, Iterations: i}, nil
		}
		if err := ctx.Err(); err != nil {
			return Outcome{Kind: Exceeded, Value: endpoint, Iterations: i}, err
		}

		if ax.below(landing) {
			if !wasBelow {
				b.update()
			}
			endpoint -= b.increment
			wasBelow = true
		} else {
			if wasBelow {
				b.update()
			}
			endpoint += b.increment
			wasBelow = false
		}
		landing = ax.land(endpoint)
	}
}
