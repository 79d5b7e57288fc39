package search

import "time"

const (
	// Score of a position won by the automated side, the opponent's win is -WinScore
	WinScore = 1000000
	// Full board
	DrawScore = 0
)

// How often (in nodes) the limiter is checked inside of the recursion
const limiterCheckInterval = 256

var SeedGeneratorFn SeedGeneratorFnType = func() int64 {
	return time.Now().UnixNano()
}

// Set custom seed generator function for the engine's random number generator
// (used for the default column of each node), by default uses current time in nanoseconds
func SetSeedGeneratorFn(f SeedGeneratorFnType) {
	if f != nil {
		SeedGeneratorFn = f
	}
}
