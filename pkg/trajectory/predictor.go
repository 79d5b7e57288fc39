package trajectory

const (
	// Number of steps the calibration predicts, on top of the starting point
	DefaultSteps = 55
	// Time between 2 predicted points
	DefaultStepSize = 0.05
)

// Simulate predicts the flight path of a disc under constant gravity and
// velocity damping. The returned slice has steps+1 points, starting with origin.
//
// With d = 1 - damping, every step first advances the velocity with the current
// acceleration, then recomputes the acceleration from the new velocity:
//
//	a = (-v.x*d, g - v.y*d)
//
// and finally moves the disc by v*dt + a*dt^2/2. Calibrated tables are only valid
// for this ordering.
func Simulate(gravity, damping float64, origin, velocity Vec2, dt float64, steps int) []Vec2 {
	d := 1 - damping
	steps = max(steps, 0)
	pos, v := origin, velocity
	a := acceleration(gravity, d, v)

	path := make([]Vec2, 1, steps+1)
	path[0] = pos
	for range steps {
		v = v.Plus(a.Times(dt))
		a = acceleration(gravity, d, v)
		pos.X += v.X*dt + 0.5*a.X*(dt*dt)
		pos.Y += v.Y*dt + 0.5*a.Y*(dt*dt)
		path = append(path, pos)
	}
	return path
}

func acceleration(gravity, d float64, v Vec2) Vec2 {
	return Vec2{X: -v.X * d, Y: gravity - v.Y*d}
}

// Predictor holds the physics constants of the host's simulation, together
// with the discretization used to approximate it
type Predictor struct {
	Gravity  float64 `yaml:"gravity" json:"gravity"`
	Damping  float64 `yaml:"damping" json:"damping"`
	StepSize float64 `yaml:"stepSize" json:"step_size"`
	Steps    int     `yaml:"steps" json:"steps"`
}

// NewPredictor with default step size and count
func NewPredictor(gravity, damping float64) Predictor {
	return Predictor{
		Gravity:  gravity,
		Damping:  damping,
		StepSize: DefaultStepSize,
		Steps:    DefaultSteps,
	}
}

// Full predicted path, also used as the flight preview
func (p Predictor) Path(origin, velocity Vec2) []Vec2 {
	return Simulate(p.Gravity, p.Damping, origin, velocity, p.StepSize, p.Steps)
}

// Landing returns the last predicted point, the one the calibration aims with
func (p Predictor) Landing(origin, velocity Vec2) Vec2 {
	path := p.Path(origin, velocity)
	return path[len(path)-1]
}

// Total predicted flight time
func (p Predictor) Duration() float64 {
	return p.StepSize * float64(p.Steps)
}
