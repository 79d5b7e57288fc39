package aim

import (
	"errors"
	"math"

	"github.com/IlikeChooros/go-catapult/pkg/trajectory"
)

const (
	DefaultTolerance     = 2.0
	DefaultMaxIterations = 10000

	// The aim line can't be pulled further than its maximum length
	MaxPower = 100.0
)

var (
	ErrInvalidParams = errors.New("aim: invalid calibration parameters")
	ErrNotConverged  = errors.New("aim: calibration did not converge")
)

type OutcomeKind int

const (
	Converged OutcomeKind = iota
	Exceeded
)

func (k OutcomeKind) String() string {
	if k == Converged {
		return "converged"
	}
	return "exceeded"
}

// Outcome of a single bisection. Value is the endpoint coordinate found, for an
// Exceeded outcome it's the last one tried
type Outcome struct {
	Kind       OutcomeKind
	Value      float64
	Iterations int
}

func (o Outcome) Ok() bool {
	return o.Kind == Converged
}

// Entry of the aim table, for a single column
type Entry struct {
	Column     int
	Endpoint   trajectory.Vec2
	Velocity   trajectory.Vec2
	Landing    trajectory.Vec2
	Power      float64
	Angle      float64
	Iterations int
	Converged  bool
}

// Launch is what the player sets on the aim line: the angle of the line (from
// the origin to the endpoint) and its length in percents of the max aim distance
type Launch struct {
	Angle float64 `json:"angle"`
	Power float64 `json:"power"`
}

// LaunchFor converts the aim endpoint to the aim line's angle and power,
// power is rounded to a single decimal place and clamped to MaxPower
func LaunchFor(origin, endpoint trajectory.Vec2, maxAimDistance float64) Launch {
	diff := endpoint.Minus(origin)
	power := trajectory.Round(diff.Magnitude()/(maxAimDistance/100), 1)
	return Launch{
		Angle: diff.Angle(),
		Power: min(power, MaxPower),
	}
}

// Velocity the disc is launched with, opposite to the aim line
func (l Launch) Velocity(launchFactor float64) trajectory.Vec2 {
	return trajectory.Vec2{
		X: -math.Cos(l.Angle) * l.Power * launchFactor,
		Y: -math.Sin(l.Angle) * l.Power * launchFactor,
	}
}
