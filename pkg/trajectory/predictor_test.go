package trajectory

import (
	"math"
	"testing"
)

func TestSimulateLength(t *testing.T) {
	origin := NewVec2(10, 20)
	path := Simulate(533, 0.75, origin, NewVec2(3, -4), DefaultStepSize, DefaultSteps)

	if len(path) != DefaultSteps+1 {
		t.Fatalf("len(path) = %d, want %d", len(path), DefaultSteps+1)
	}
	if path[0] != origin {
		t.Fatalf("path must start at the origin, got %v", path[0])
	}

	again := Simulate(533, 0.75, origin, NewVec2(3, -4), DefaultStepSize, DefaultSteps)
	for i := range path {
		if path[i] != again[i] {
			t.Fatalf("simulation is not deterministic at step %d: %v != %v", i, path[i], again[i])
		}
	}

	if got := Simulate(1, 0.5, origin, Vec2{}, 0.1, 0); len(got) != 1 {
		t.Errorf("zero steps should only return the origin, got %v", got)
	}
}

// The host's damping is the fraction of velocity kept, so a damping of 1 means no drag at all.
// Simulate drags with d = 1 - damping, damping 0 would be the strongest drag
func TestZeroDragZeroGravityIsLinear(t *testing.T) {
	origin := NewVec2(100, 50)
	velocity := NewVec2(-40, 25)
	const dt = 0.05

	path := Simulate(0, 1, origin, velocity, dt, 30)
	for step, got := range path {
		want := origin.Plus(velocity.Times(float64(step) * dt))
		if !got.Near(want, 1e-9) {
			t.Fatalf("step %d: got %v, want %v", step, got, want)
		}
	}
}

// Velocity is advanced before the displacement, so after n steps
// y = y0 + v0*n*dt + g*dt^2*(n^2 + 2n)/2
func TestStepOrdering(t *testing.T) {
	const (
		g  = 10.0
		dt = 0.1
		v0 = -3.0
	)
	path := Simulate(g, 1, Vec2{}, NewVec2(0, v0), dt, 20)
	for n, got := range path {
		fn := float64(n)
		want := v0*fn*dt + g*dt*dt*(fn*fn+2*fn)/2
		if math.Abs(got.Y-want) > 1e-9 {
			t.Fatalf("step %d: y = %.12f, want %.12f", n, got.Y, want)
		}
	}
}

// Values pinned from the reference predictor
func TestSimulateReference(t *testing.T) {
	path := Simulate(500, 0.75, NewVec2(1000, 400), NewVec2(-400, -600), 0.1, DefaultSteps)

	if want := NewVec2(961.4875, 349.66875); !path[1].Near(want, 1e-9) {
		t.Errorf("first step = %v, want %v", path[1], want)
	}
	if want := NewVec2(-157.74967681993053, 3874.6271006704515); !path[len(path)-1].Near(want, 1e-6) {
		t.Errorf("landing = %v, want %v", path[len(path)-1], want)
	}
}

func TestDragSlowsHorizontalFlight(t *testing.T) {
	path := Simulate(0, 0.75, Vec2{}, NewVec2(100, 0), DefaultStepSize, DefaultSteps)

	prevStep := math.Inf(1)
	for i := 1; i < len(path); i++ {
		step := path[i].X - path[i-1].X
		if step <= 0 || step >= prevStep {
			t.Fatalf("step %d: horizontal advance %.4f must be positive and shrinking (prev %.4f)", i, step, prevStep)
		}
		prevStep = step
	}

	// x stays well below the undamped distance
	if undamped := 100 * DefaultStepSize * DefaultSteps; path[len(path)-1].X >= undamped {
		t.Errorf("damped flight reached %.2f, undamped would be %.2f", path[len(path)-1].X, undamped)
	}
}

func TestPredictorLanding(t *testing.T) {
	p := NewPredictor(533, 0.75)
	if p.Steps != DefaultSteps || p.StepSize != DefaultStepSize {
		t.Fatalf("unexpected defaults %+v", p)
	}

	landing := p.Landing(NewVec2(1000, 400), NewVec2(0, -895))
	if want := NewVec2(1000, 329.85203131369286); !landing.Near(want, 1e-6) {
		t.Errorf("landing = %v, want %v", landing, want)
	}
	if d := p.Duration(); math.Abs(d-2.75) > 1e-12 {
		t.Errorf("duration = %v, want 2.75", d)
	}
}

func TestVelocity(t *testing.T) {
	origin := NewVec2(1000, 400)

	// pulling the aim line down launches the disc upwards
	v := Velocity(origin, NewVec2(1000, 590.635), 213, 10)
	if math.Abs(v.X) > 1e-12 || math.Abs(v.Y+895) > 1e-9 {
		t.Errorf("Velocity = %v, want (0, -895)", v)
	}

	v = Velocity(origin, NewVec2(1021.3, 378.7), 213, 10)
	if !v.Near(NewVec2(-100, 100), 1e-9) {
		t.Errorf("Velocity = %v, want (-100, 100)", v)
	}

	if got := Round(1.23456, 3); got != 1.235 {
		t.Errorf("Round(1.23456, 3) = %v", got)
	}
}
