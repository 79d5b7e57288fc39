package aim

import (
	"context"
	"math"
	"testing"

	"github.com/IlikeChooros/go-catapult/pkg/trajectory"
)

func TestLaunchFor(t *testing.T) {
	origin := trajectory.NewVec2(0, 0)

	launch := LaunchFor(origin, trajectory.NewVec2(106.5, 0), 213)
	if launch.Power != 50 || launch.Angle != 0 {
		t.Fatalf("LaunchFor = %+v, want power 50, angle 0", launch)
	}
	if v := launch.Velocity(10); !v.Near(trajectory.NewVec2(-500, 0), 1e-9) {
		t.Errorf("Velocity = %v, want (-500, 0)", v)
	}

	// pulled further than the aim line allows
	launch = LaunchFor(origin, trajectory.NewVec2(0, 1000), 213)
	if launch.Power != MaxPower || math.Abs(launch.Angle-math.Pi/2) > 1e-12 {
		t.Errorf("LaunchFor = %+v, want clamped power pointing down", launch)
	}
}

func TestTableLaunchMatchesVelocity(t *testing.T) {
	table, err := Calibrate(context.Background(), standardParams(t))
	if err != nil {
		t.Fatal(err)
	}
	for col := 0; col < table.Len(); col++ {
		entry, _ := table.Entry(col)
		launch := table.Launch(col)
		if launch.Power != entry.Power || launch.Angle != entry.Angle {
			t.Errorf("column %d: Launch = %+v, entry has (%v, %v)", col, launch, entry.Angle, entry.Power)
		}
		// power is rounded to a single decimal, so the velocity is off by at most 0.05*launchFactor
		if v := launch.Velocity(table.LaunchFactor()); !v.Near(entry.Velocity, 0.5+1e-9) {
			t.Errorf("column %d: launch velocity %v, calibrated %v", col, v, entry.Velocity)
		}
	}
}
