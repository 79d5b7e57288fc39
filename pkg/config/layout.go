package config

import (
	"math"

	"github.com/IlikeChooros/go-catapult/pkg/board"
	"github.com/IlikeChooros/go-catapult/pkg/trajectory"
)

// Layout derives the board's physical placement from the window size, the
// same way the game sizes its board. All values are whole units
type Layout struct {
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

func (l Layout) short() float64 {
	return math.Min(l.Width, l.Height)
}

func (l Layout) SlotSize() float64 {
	return math.Floor(l.short() / 11.5)
}

func (l Layout) SlotBorder() float64 {
	return math.Floor(l.SlotSize() / 10)
}

func (l Layout) DiscRadius() float64 {
	slot := l.SlotSize()
	return math.Floor((slot - math.Floor(slot/12)) / 2)
}

// Horizontal distance between neighbouring columns
func (l Layout) ColumnWidth() float64 {
	return l.SlotSize() + l.SlotBorder()
}

// BoardOrigin is the left edge of the board, at its vertical centre
func (l Layout) BoardOrigin(g board.Geometry) trajectory.Vec2 {
	frameWidth := l.ColumnWidth()*float64(g.Cols) + l.SlotBorder()
	frameHeight := l.SlotSize() * float64(g.Rows)
	return trajectory.NewVec2(
		math.Floor(l.Width/2)-math.Floor(frameWidth/2),
		l.Height-math.Floor(frameHeight/2)-math.Floor(l.Height/15),
	)
}

// Targets are the points above every column a disc must fly through to
// sink into it: centred on the column, the height of a full column above
// the bottom slot
func (l Layout) Targets(g board.Geometry) []trajectory.Vec2 {
	origin := l.BoardOrigin(g)
	radius := l.DiscRadius()
	bottom := origin.Y + math.Floor(l.SlotSize()*float64(g.Rows)/2) - radius
	y := bottom - 2*radius*float64(g.Rows)

	targets := make([]trajectory.Vec2, g.Cols)
	for i := range targets {
		targets[i] = trajectory.NewVec2(origin.X+(float64(i)+0.5)*l.ColumnWidth(), y)
	}
	return targets
}

// Column whose slot contains the x coordinate, or board.NoColumn
func (l Layout) ColumnAt(g board.Geometry, x float64) int {
	origin := l.BoardOrigin(g)
	col := int(math.Floor((x - origin.X) / l.ColumnWidth()))
	if x < origin.X || col >= g.Cols {
		return board.NoColumn
	}
	return col
}

// Spawn is the launch origin of the side: player A on the right, player B on the left
func (l Layout) Spawn(side board.Cell) trajectory.Vec2 {
	y := math.Floor(l.Height / 2)
	if side == board.PlayerB {
		return trajectory.NewVec2(math.Floor(l.Width/6), y)
	}
	return trajectory.NewVec2(math.Floor(5*l.Width/6), y)
}

// Physics constants the game derives from the window size
func (l Layout) Physics() Physics {
	return Physics{
		Gravity:        math.Floor(l.Height / 1.5),
		Damping:        0.75,
		LaunchFactor:   math.Floor(l.short() / 75),
		MaxAimDistance: math.Floor(l.short() / 3.75),
		StepSize:       trajectory.DefaultStepSize,
		Steps:          trajectory.DefaultSteps,
	}
}
