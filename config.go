package physac

import (
	"fmt"
	"math"
)

const (
	// DefaultIterations is the number of collision passes per step.
	DefaultIterations = 5
	// MaxIterations bounds Config.Iterations.
	MaxIterations = 100
)

// Config holds the simulation parameters of a World.
type Config struct {
	// Width and Height of the simulated viewport. Bodies leaving it to the left,
	// right or bottom are removed.
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`

	Gravity Vector2 `yaml:"gravity" toml:"gravity"`

	// Iterations of the collision solver per step. 4 to 10 gives stable stacking.
	Iterations int `yaml:"iterations" toml:"iterations"`

	// TimeStep is the fixed step used by World.Update, in seconds.
	TimeStep float64 `yaml:"time_step" toml:"time_step"`
}

// DefaultConfig returns a 1280x750 viewport with downward gravity.
func DefaultConfig() Config {
	return Config{
		Width:      1280,
		Height:     750,
		Gravity:    Vector2{X: 0, Y: 100},
		Iterations: DefaultIterations,
		TimeStep:   1.0 / 60,
	}
}

// Validate checks that every field is usable.
func (c Config) Validate() error {
	switch {
	case !(c.Width > 0) || math.IsInf(c.Width, 0):
		return fmt.Errorf("width %v: %w", c.Width, ErrInvalidConfig)
	case !(c.Height > 0) || math.IsInf(c.Height, 0):
		return fmt.Errorf("height %v: %w", c.Height, ErrInvalidConfig)
	case !isFiniteVec(c.Gravity):
		return fmt.Errorf("gravity %v: %w", c.Gravity, ErrInvalidConfig)
	case c.Iterations < 1 || c.Iterations > MaxIterations:
		return fmt.Errorf("iterations %d not in [1, %d]: %w", c.Iterations, MaxIterations, ErrInvalidConfig)
	case !(c.TimeStep > 0) || math.IsInf(c.TimeStep, 0):
		return fmt.Errorf("time step %v: %w", c.TimeStep, ErrInvalidConfig)
	}
	return nil
}
