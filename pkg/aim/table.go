package aim

import (
	"math"

	"github.com/IlikeChooros/go-catapult/pkg/trajectory"
)

// Table maps every column to the aim endpoint that sinks a disc into it.
// It's built once by Calibrate and read-only afterwards
type Table struct {
	origin         trajectory.Vec2
	maxAimDistance float64
	launchFactor   float64
	targets        []trajectory.Vec2
	entries        []Entry
	vertical       Outcome
	spacing        float64
}

func (t *Table) Origin() trajectory.Vec2 {
	return t.origin
}

func (t *Table) MaxAimDistance() float64 {
	return t.maxAimDistance
}

func (t *Table) LaunchFactor() float64 {
	return t.launchFactor
}

// Number of columns
func (t *Table) Len() int {
	return len(t.entries)
}

// Outcome of the vertical calibration, shared by all columns
func (t *Table) Vertical() Outcome {
	return t.vertical
}

func (t *Table) Entry(col int) (Entry, bool) {
	if col < 0 || col >= len(t.entries) {
		return Entry{}, false
	}
	return t.entries[col], true
}

func (t *Table) Calibrated(col int) bool {
	e, ok := t.Entry(col)
	return ok && e.Converged
}

// Columns that failed to calibrate
func (t *Table) Uncalibrated() []int {
	cols := make([]int, 0)
	for _, e := range t.entries {
		if !e.Converged {
			cols = append(cols, e.Column)
		}
	}
	return cols
}

// Target returns the calibrated aim endpoint of the column, or the fallback,
// if the column did not converge
func (t *Table) Target(col int) trajectory.Vec2 {
	if t.Calibrated(col) {
		return t.entries[col].Endpoint
	}
	return t.Fallback(col)
}

// Fallback aim endpoint of the column: the column target point itself
func (t *Table) Fallback(col int) trajectory.Vec2 {
	col = min(max(col, 0), len(t.targets)-1)
	return t.targets[col]
}

// Mean horizontal distance between aim endpoints of neighbouring columns,
// sets the scale of the aiming noise
func (t *Table) MeanColumnSpacing() float64 {
	return t.spacing
}

// Launch needed to reach the column's target
func (t *Table) Launch(col int) Launch {
	return LaunchFor(t.origin, t.Target(col), t.maxAimDistance)
}

// Sum of the distances between neighbouring calibrated endpoints divided by the
// number of calibrated columns. Boards with a single column get slotSize/8
func meanColumnSpacing(entries []Entry, slotSize float64) float64 {
	xs := make([]float64, 0, len(entries))
	for _, e := range entries {
		if e.Converged {
			xs = append(xs, e.Endpoint.X)
		}
	}
	if len(xs) < 2 {
		return math.Floor(slotSize / 8)
	}

	sum := 0.0
	for i := 0; i+1 < len(xs); i++ {
		sum += math.Abs(xs[i+1] - xs[i])
	}
	return sum / float64(len(xs))
}
