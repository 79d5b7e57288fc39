package config

import (
	"fmt"
	"sort"

	"github.com/IlikeChooros/go-catapult/pkg/board"
)

const (
	ModeStandard  = "standard"
	ModePrecision = "precision"
	ModePractise  = "practise"

	// Geometry is taken as configured
	ModeCustom = "custom"
)

// Game modes of the original catapult game, as (rows, cols, connect).
// Only the standard one passes the geometry validation, the others ask
// for more discs in a row than fit on the board
var modes = map[string]board.Geometry{
	ModeStandard:  {Rows: 6, Cols: 7, Connect: 4},
	ModePrecision: {Rows: 5, Cols: 1, Connect: 8},
	ModePractise:  {Rows: 6, Cols: 7, Connect: 8},
}

// ModeGeometry returns the geometry preset of the game mode
func ModeGeometry(mode string) (board.Geometry, error) {
	g, ok := modes[mode]
	if !ok {
		return board.Geometry{}, fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, mode)
	}
	return g, nil
}

// Names of all preset modes, sorted
func Modes() []string {
	names := make([]string, 0, len(modes))
	for name := range modes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
