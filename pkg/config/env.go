package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/IlikeChooros/go-catapult/pkg/opponent"
)

// Environment variables read by ApplyEnv
const (
	EnvMode           = "CATAPULT_MODE"
	EnvRows           = "CATAPULT_ROWS"
	EnvCols           = "CATAPULT_COLS"
	EnvConnect        = "CATAPULT_CONNECT"
	EnvWindowWidth    = "CATAPULT_WINDOW_WIDTH"
	EnvWindowHeight   = "CATAPULT_WINDOW_HEIGHT"
	EnvGravity        = "CATAPULT_GRAVITY"
	EnvDamping        = "CATAPULT_DAMPING"
	EnvLaunchFactor   = "CATAPULT_LAUNCH_FACTOR"
	EnvMaxAimDistance = "CATAPULT_MAX_AIM_DISTANCE"
	EnvTolerance      = "CATAPULT_TOLERANCE"
	EnvMaxIterations  = "CATAPULT_MAX_ITERATIONS"
	EnvDifficulty     = "CATAPULT_DIFFICULTY"
	EnvSide           = "CATAPULT_SIDE"
	EnvMultiplier     = "CATAPULT_MULTIPLIER"
)

// ApplyEnv overlays CATAPULT_* environment variables on the config. The given
// .env files are loaded first (".env" by default, missing default file is fine),
// variables already set in the environment take precedence over the files.
// Malformed numbers are ignored, an unknown difficulty is an error.
// The result is not validated, call Validate afterwards
func (c *Config) ApplyEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil {
		if len(files) > 0 || !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	c.Mode = getEnv(EnvMode, c.Mode)
	c.Geometry.Rows = getEnvInt(EnvRows, c.Geometry.Rows)
	c.Geometry.Cols = getEnvInt(EnvCols, c.Geometry.Cols)
	c.Geometry.Connect = getEnvInt(EnvConnect, c.Geometry.Connect)

	c.Layout.Width = getEnvFloat(EnvWindowWidth, c.Layout.Width)
	c.Layout.Height = getEnvFloat(EnvWindowHeight, c.Layout.Height)

	c.Physics.Gravity = getEnvFloat(EnvGravity, c.Physics.Gravity)
	c.Physics.Damping = getEnvFloat(EnvDamping, c.Physics.Damping)
	c.Physics.LaunchFactor = getEnvFloat(EnvLaunchFactor, c.Physics.LaunchFactor)
	c.Physics.MaxAimDistance = getEnvFloat(EnvMaxAimDistance, c.Physics.MaxAimDistance)

	c.Aim.Tolerance = getEnvFloat(EnvTolerance, c.Aim.Tolerance)
	c.Aim.MaxIterations = getEnvInt(EnvMaxIterations, c.Aim.MaxIterations)

	c.Opponent.Side = getEnv(EnvSide, c.Opponent.Side)
	c.Opponent.Multiplier = getEnvInt(EnvMultiplier, c.Opponent.Multiplier)
	if value := os.Getenv(EnvDifficulty); value != "" {
		d, err := opponent.ParseDifficulty(value)
		if err != nil {
			return err
		}
		c.Opponent.Difficulty = d
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
