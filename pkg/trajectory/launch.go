package trajectory

import "math"

// Velocity converts an aim endpoint into the launch velocity: the aim line is
// pulled back from the origin, the disc flies the opposite way. The power on
// each axis is the pull in percents of maxAimDistance, rounded to 3 decimals.
func Velocity(origin, endpoint Vec2, maxAimDistance, launchFactor float64) Vec2 {
	return Vec2{
		X: AxisVelocity(origin.X, endpoint.X, maxAimDistance, launchFactor),
		Y: AxisVelocity(origin.Y, endpoint.Y, maxAimDistance, launchFactor),
	}
}

// AxisVelocity is Velocity along a single axis
func AxisVelocity(origin, endpoint, maxAimDistance, launchFactor float64) float64 {
	return Round((origin-endpoint)/(maxAimDistance/100), 3) * launchFactor
}

// Round to given number of decimal places, halves away from zero
func Round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
