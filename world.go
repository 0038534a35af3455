package physac

import (
	"fmt"
	"log/slog"
)

// maxUpdateSteps bounds the fixed steps run by one World.Update call.
const maxUpdateSteps = 10

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger used for removals and numeric warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(w *World) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithRemoveHook registers fn to be called for every body the simulation
// removes on its own (left the viewport or became non-finite).
func WithRemoveHook(fn func(*Body)) Option {
	return func(w *World) {
		w.onRemove = fn
	}
}

// World owns the active bodies and runs the simulation. It is not safe for
// concurrent use.
type World struct {
	cfg    Config
	bodies []*Body
	nextID uint

	accumulator float64
	steps       uint64

	logger   *slog.Logger
	onRemove func(*Body)
}

// NewWorld returns an empty world.
func NewWorld(cfg Config, opts ...Option) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w := &World{
		cfg:    cfg,
		logger: discardLogger(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Config returns the world configuration.
func (w *World) Config() Config { return w.cfg }

// Gravity returns the gravity acceleration.
func (w *World) Gravity() Vector2 { return w.cfg.Gravity }

// SetGravity changes the gravity acceleration.
func (w *World) SetGravity(g Vector2) { w.cfg.Gravity = g }

// AddBody adds b to the simulation and assigns its ID.
func (w *World) AddBody(b *Body) {
	w.nextID++
	b.ID = w.nextID
	w.bodies = append(w.bodies, b)
}

// CreateBody builds a body from def and adds it.
func (w *World) CreateBody(def BodyDef) (*Body, error) {
	b, err := NewBody(def)
	if err != nil {
		return nil, fmt.Errorf("create body %q: %w", def.Tag, err)
	}
	w.AddBody(b)
	return b, nil
}

// RemoveBody removes b and reports whether it was present.
func (w *World) RemoveBody(b *Body) bool {
	for i, other := range w.bodies {
		if other == b {
			copy(w.bodies[i:], w.bodies[i+1:])
			w.bodies[len(w.bodies)-1] = nil
			w.bodies = w.bodies[:len(w.bodies)-1]
			return true
		}
	}
	return false
}

// Body returns the body with the given ID, or nil.
func (w *World) Body(id uint) *Body {
	for _, b := range w.bodies {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// Bodies returns the active bodies in insertion order. The slice is owned by
// the world and is only valid until the next Step.
func (w *World) Bodies() []*Body { return w.bodies }

// BodyCount returns the number of active bodies.
func (w *World) BodyCount() int { return len(w.bodies) }

// Clear removes every body and resets the step clock.
func (w *World) Clear() {
	clear(w.bodies)
	w.bodies = w.bodies[:0]
	w.accumulator = 0
}

// Steps returns how many steps have run.
func (w *World) Steps() uint64 { return w.steps }

// Step advances the simulation by dt seconds.
func (w *World) Step(dt float64) {
	s := solver{
		gravity:    w.cfg.Gravity,
		width:      w.cfg.Width,
		height:     w.cfg.Height,
		iterations: w.cfg.Iterations,
		logger:     w.logger,
		onRemove:   w.onRemove,
	}
	w.bodies = s.advance(w.bodies, dt)
	w.steps++
}

// Update accumulates elapsed seconds and runs as many fixed Config.TimeStep
// steps as fit, returning the number run. Time beyond maxUpdateSteps steps is
// dropped so a long stall does not freeze the caller.
func (w *World) Update(elapsed float64) int {
	if elapsed <= 0 {
		return 0
	}
	w.accumulator += elapsed
	n := 0
	for w.accumulator >= w.cfg.TimeStep {
		if n == maxUpdateSteps {
			w.logger.Debug("dropping simulation time", "seconds", w.accumulator)
			w.accumulator = 0
			break
		}
		w.Step(w.cfg.TimeStep)
		w.accumulator -= w.cfg.TimeStep
		n++
	}
	return n
}
