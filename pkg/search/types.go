package search

import "github.com/IlikeChooros/go-catapult/pkg/board"

type SeedGeneratorFnType func() int64

// Result of a search, Column is board.NoColumn if the position was terminal
// (or had no valid column at all)
type Result struct {
	Column     int
	Score      int
	Depth      int
	Nodes      uint32
	Leaves     uint32
	Cutoffs    uint32
	TimeMs     int
	Nps        uint32
	StopReason StopReason

	// Whether every root child was searched to the full depth
	Completed bool
}

func (r Result) HasMove() bool {
	return r.Column != board.NoColumn
}
