package aim

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/IlikeChooros/go-catapult/pkg/trajectory"
)

// Params of the calibration. All coordinates are in the host's physics units,
// Targets[i] is the point a disc has to reach to sink into column i
type Params struct {
	Predictor      trajectory.Predictor
	Origin         trajectory.Vec2
	LaunchFactor   float64
	MaxAimDistance float64
	Targets        []trajectory.Vec2

	// Max distance between the landing and the target, defaults to DefaultTolerance
	Tolerance float64

	// Upper bound on the bisection steps per search, defaults to DefaultMaxIterations
	MaxIterations int

	// Size of a single board slot, used for the column spacing of a single column board
	SlotSize float64
	Logger   *zap.Logger
}

func (p Params) withDefaults() Params {
	if p.Tolerance <= 0 {
		p.Tolerance = DefaultTolerance
	}
	if p.MaxIterations <= 0 {
		p.MaxIterations = DefaultMaxIterations
	}
	if p.Predictor.StepSize <= 0 {
		p.Predictor.StepSize = trajectory.DefaultStepSize
	}
	if p.Predictor.Steps <= 0 {
		p.Predictor.Steps = trajectory.DefaultSteps
	}
	if p.Logger == nil {
		p.Logger = zap.NewNop()
	}
	return p
}

func (p Params) Validate() error {
	if len(p.Targets) == 0 {
		return fmt.Errorf("%w: no column targets", ErrInvalidParams)
	}
	if p.MaxAimDistance <= 0 {
		return fmt.Errorf("%w: max aim distance must be positive, got %v", ErrInvalidParams, p.MaxAimDistance)
	}
	if p.LaunchFactor <= 0 {
		return fmt.Errorf("%w: launch factor must be positive, got %v", ErrInvalidParams, p.LaunchFactor)
	}
	return nil
}
