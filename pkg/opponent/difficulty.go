package opponent

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownDifficulty = errors.New("opponent: unknown difficulty")

type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Extreme
)

// Below Extreme, the search runs with this probability, otherwise a random column is played
const SearchProbability = 0.75

func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "extreme":
		return Extreme, nil
	}
	return Easy, fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Extreme:
		return "extreme"
	}
	return fmt.Sprintf("Difficulty(%d)", int(d))
}

// Search depth, in plies
func (d Difficulty) Depth() int {
	switch d {
	case Medium:
		return 2
	case Extreme:
		return 4
	}
	return 1
}

// Whether the search runs on every move
func (d Difficulty) AlwaysSearches() bool {
	return d == Extreme
}

// Standard deviation of the horizontal aiming noise
func (d Difficulty) NoiseScale(meanColumnSpacing float64) float64 {
	switch d {
	case Easy:
		return meanColumnSpacing
	case Medium:
		return meanColumnSpacing / 3
	}
	return 0
}

func (d Difficulty) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Difficulty) UnmarshalText(text []byte) error {
	parsed, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
