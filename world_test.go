package physac

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorld(t *testing.T, opts ...Option) *World {
	t.Helper()
	w, err := NewWorld(DefaultConfig(), opts...)
	require.NoError(t, err)
	return w
}

func TestNewWorldRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Iterations = 0
	_, err := NewWorld(cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestWorldBodies(t *testing.T) {
	w := newTestWorld(t)

	a, err := w.CreateBody(BodyDef{Shape: mustCircle(t, 5), Tag: "a"})
	require.NoError(t, err)
	b, err := w.CreateBody(BodyDef{Shape: mustCircle(t, 5), Tag: "b"})
	require.NoError(t, err)
	c := mustBody(t, BodyDef{Shape: mustRect(t, 5, 5), Tag: "c"})
	w.AddBody(c)

	assert.Equal(t, []uint{1, 2, 3}, []uint{a.ID, b.ID, c.ID})
	assert.Equal(t, 3, w.BodyCount())
	assert.Same(t, b, w.Body(2))
	assert.Nil(t, w.Body(42))

	assert.True(t, w.RemoveBody(b))
	assert.False(t, w.RemoveBody(b))
	assert.Equal(t, []*Body{a, c}, w.Bodies())

	d, err := w.CreateBody(BodyDef{Shape: mustCircle(t, 5)})
	require.NoError(t, err)
	assert.Equal(t, uint(4), d.ID)

	w.Clear()
	assert.Zero(t, w.BodyCount())
}

func TestWorldCreateBodyError(t *testing.T) {
	w := newTestWorld(t)
	_, err := w.CreateBody(BodyDef{Shape: mustCircle(t, 5), Mass: -3, Tag: "heavy"})
	assert.ErrorIs(t, err, ErrInvalidMass)
	assert.Contains(t, err.Error(), "heavy")
	assert.Zero(t, w.BodyCount())
}

func TestWorldGravity(t *testing.T) {
	w := newTestWorld(t)
	assert.Equal(t, DefaultConfig().Gravity, w.Gravity())

	b, err := w.CreateBody(BodyDef{Shape: mustCircle(t, 5), Position: Vector2{X: 100, Y: 100}})
	require.NoError(t, err)

	w.SetGravity(Vector2{X: -60})
	w.Step(0.5)
	assert.InDelta(t, -30, b.Velocity.X, 1e-9)
	assert.InDelta(t, 0, b.Velocity.Y, 1e-9)
	assert.Equal(t, Vector2{X: -60}, w.Config().Gravity)
	assert.Equal(t, uint64(1), w.Steps())
}

func TestWorldUpdate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TimeStep = 0.25
	w, err := NewWorld(cfg)
	require.NoError(t, err)

	assert.Equal(t, 4, w.Update(1))
	assert.Equal(t, 0, w.Update(0.1))
	assert.Equal(t, 1, w.Update(0.2))
	assert.Equal(t, 0, w.Update(-1))
	assert.Equal(t, uint64(5), w.Steps())

	// A long stall runs at most maxUpdateSteps and drops the rest.
	assert.Equal(t, maxUpdateSteps, w.Update(100))
	assert.Equal(t, 0, w.Update(0.1))
	assert.Equal(t, uint64(5+maxUpdateSteps), w.Steps())
}

func TestWorldRemoveHook(t *testing.T) {
	var removed []*Body
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	w := newTestWorld(t, WithRemoveHook(func(b *Body) { removed = append(removed, b) }), WithLogger(logger))

	cfg := w.Config()
	falling, err := w.CreateBody(BodyDef{Shape: mustCircle(t, 5), Position: Vector2{X: 100, Y: cfg.Height + 4}, Tag: "falling"})
	require.NoError(t, err)
	broken, err := w.CreateBody(BodyDef{Shape: mustCircle(t, 5), Position: Vector2{X: 300, Y: 100}, Tag: "broken"})
	require.NoError(t, err)
	broken.AngularVelocity = math.NaN()
	stays, err := w.CreateBody(BodyDef{Shape: mustCircle(t, 5), Position: Vector2{X: 500, Y: 100}})
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		w.Step(cfg.TimeStep)
	}

	assert.Equal(t, []*Body{broken, falling}, removed)
	assert.Equal(t, []*Body{stays}, w.Bodies())
	assert.Contains(t, logs.String(), "body left the viewport")
	assert.Contains(t, logs.String(), "tag=falling")
	assert.Contains(t, logs.String(), "level=WARN")
}

func TestWithLoggerIgnoresNil(t *testing.T) {
	w := newTestWorld(t, WithLogger(nil))
	require.NotNil(t, w.logger)
	w.Step(1.0 / 60)
}
