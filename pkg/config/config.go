package config

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/IlikeChooros/go-catapult/pkg/aim"
	"github.com/IlikeChooros/go-catapult/pkg/board"
	"github.com/IlikeChooros/go-catapult/pkg/eval"
	"github.com/IlikeChooros/go-catapult/pkg/opponent"
	"github.com/IlikeChooros/go-catapult/pkg/trajectory"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config of a match against the automated opponent
type Config struct {
	// One of the preset modes, or ModeCustom to use Geometry as is
	Mode     string         `yaml:"mode"`
	Geometry board.Geometry `yaml:"geometry"`
	Layout   Layout         `yaml:"layout"`
	Physics  Physics        `yaml:"physics"`
	Aim      Aim            `yaml:"aim"`
	Opponent Opponent       `yaml:"opponent"`
}

type Physics struct {
	Gravity float64 `yaml:"gravity"`

	// Fraction of the velocity kept per unit of time, 1 means no drag
	Damping        float64 `yaml:"damping"`
	LaunchFactor   float64 `yaml:"launchFactor"`
	MaxAimDistance float64 `yaml:"maxAimDistance"`
	StepSize       float64 `yaml:"stepSize"`
	Steps          int     `yaml:"steps"`
}

type Aim struct {
	Tolerance     float64 `yaml:"tolerance"`
	MaxIterations int     `yaml:"maxIterations"`
}

type Opponent struct {
	Difficulty opponent.Difficulty `yaml:"difficulty"`

	// Side the opponent plays, "a" or "b"
	Side       string `yaml:"side"`
	Multiplier int    `yaml:"multiplier"`
}

// Default configuration: standard mode on an 1200x800 window, medium opponent playing b
func Default() *Config {
	layout := Layout{Width: 1200, Height: 800}
	return &Config{
		Mode:     ModeStandard,
		Geometry: board.Standard(),
		Layout:   layout,
		Physics:  layout.Physics(),
		Aim: Aim{
			Tolerance:     aim.DefaultTolerance,
			MaxIterations: aim.DefaultMaxIterations,
		},
		Opponent: Opponent{
			Difficulty: opponent.Medium,
			Side:       board.PlayerB.String(),
			Multiplier: eval.DefaultMultiplier,
		},
	}
}

// Load reads the YAML file on top of the defaults, applies the mode preset and validates the result
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse is Load, with the YAML document already read
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.ApplyMode(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyMode replaces the geometry with the mode's preset, custom mode keeps it
func (c *Config) ApplyMode() error {
	if c.Mode == ModeCustom {
		return nil
	}
	g, err := ModeGeometry(c.Mode)
	if err != nil {
		return err
	}
	c.Geometry = g
	return nil
}

func (c *Config) Validate() error {
	if err := c.Geometry.Validate(); err != nil {
		return fmt.Errorf("%w: mode %q: %w", ErrInvalidConfig, c.Mode, err)
	}
	if c.Layout.Width <= 0 || c.Layout.Height <= 0 {
		return fmt.Errorf("%w: layout must have positive size, got %vx%v", ErrInvalidConfig, c.Layout.Width, c.Layout.Height)
	}

	p := c.Physics
	switch {
	case p.Gravity < 0:
		return fmt.Errorf("%w: gravity must not be negative, got %v", ErrInvalidConfig, p.Gravity)
	case p.Damping < 0 || p.Damping > 1:
		return fmt.Errorf("%w: damping must be in [0, 1], got %v", ErrInvalidConfig, p.Damping)
	case p.LaunchFactor <= 0:
		return fmt.Errorf("%w: launch factor must be positive, got %v", ErrInvalidConfig, p.LaunchFactor)
	case p.MaxAimDistance <= 0:
		return fmt.Errorf("%w: max aim distance must be positive, got %v", ErrInvalidConfig, p.MaxAimDistance)
	case p.StepSize <= 0 || p.Steps <= 0:
		return fmt.Errorf("%w: step size and count must be positive, got %v x %d", ErrInvalidConfig, p.StepSize, p.Steps)
	}

	if c.Aim.Tolerance <= 0 || c.Aim.MaxIterations <= 0 {
		return fmt.Errorf("%w: aim tolerance and iterations must be positive, got %v, %d",
			ErrInvalidConfig, c.Aim.Tolerance, c.Aim.MaxIterations)
	}
	if _, err := c.OpponentSide(); err != nil {
		return err
	}
	if c.Opponent.Multiplier < 0 {
		return fmt.Errorf("%w: multiplier must not be negative, got %d", ErrInvalidConfig, c.Opponent.Multiplier)
	}
	return nil
}

func (c *Config) OpponentSide() (board.Cell, error) {
	switch c.Opponent.Side {
	case board.PlayerA.String():
		return board.PlayerA, nil
	case board.PlayerB.String():
		return board.PlayerB, nil
	}
	return board.Empty, fmt.Errorf("%w: opponent side must be %q or %q, got %q",
		ErrInvalidConfig, board.PlayerA, board.PlayerB, c.Opponent.Side)
}

func (c *Config) Predictor() trajectory.Predictor {
	return trajectory.Predictor{
		Gravity:  c.Physics.Gravity,
		Damping:  c.Physics.Damping,
		StepSize: c.Physics.StepSize,
		Steps:    c.Physics.Steps,
	}
}

func (c *Config) Evaluator() *eval.Evaluator {
	return eval.NewEvaluator(c.Geometry, c.Opponent.Multiplier)
}

// AimParams for calibrating the side's launches
func (c *Config) AimParams(side board.Cell, logger *zap.Logger) aim.Params {
	return aim.Params{
		Predictor:      c.Predictor(),
		Origin:         c.Layout.Spawn(side),
		LaunchFactor:   c.Physics.LaunchFactor,
		MaxAimDistance: c.Physics.MaxAimDistance,
		Targets:        c.Layout.Targets(c.Geometry),
		Tolerance:      c.Aim.Tolerance,
		MaxIterations:  c.Aim.MaxIterations,
		SlotSize:       c.Layout.SlotSize(),
		Logger:         logger,
	}
}

// Fly flies the launch from origin with the configured predictor, returns the
// landing point and the column it sinks into (board.NoColumn if it misses the board)
func (c *Config) Fly(origin trajectory.Vec2, launch aim.Launch) (trajectory.Vec2, int) {
	landing := c.Predictor().Landing(origin, launch.Velocity(c.Physics.LaunchFactor))
	return landing, c.Layout.ColumnAt(c.Geometry, landing.X)
}

func (c Config) String() string {
	data, _ := yaml.Marshal(c)
	return string(data)
}

// LoadWithEnv is the usual way to build the config of a program: the YAML file
// (defaults when path is empty), then the environment overlay, then the mode preset
func LoadWithEnv(path string, envFiles ...string) (*Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = Load(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(envFiles...); err != nil {
		return nil, err
	}
	if err := cfg.ApplyMode(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
