// Command physac runs a scene in a window, or headless for a fixed number of
// steps.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/koteyur/physac"
)

func main() {
	var (
		scenePath  = flag.String("scene", "", "YAML or TOML scene file (default: built-in scene)")
		iterations = flag.Int("iterations", 0, "collision iterations per step (default: from scene)")
		headless   = flag.Bool("headless", false, "run without a window")
		frames     = flag.Int("frames", 600, "steps to run in headless mode")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	load := func() (*physac.World, error) {
		scene := physac.DefaultScene()
		if *scenePath != "" {
			var err error
			if scene, err = physac.LoadScene(*scenePath); err != nil {
				return nil, err
			}
		}
		if *iterations > 0 {
			scene.World.Iterations = *iterations
		}
		return scene.Build(
			physac.WithLogger(logger),
			physac.WithRemoveHook(func(b *physac.Body) {
				logger.Debug("body removed", "id", b.ID, "tag", b.Tag)
			}),
		)
	}

	var err error
	if *headless {
		err = runHeadless(load, *frames, logger)
	} else {
		err = runWindow(load, logger)
	}
	if err != nil {
		logger.Error("physac", "error", err)
		os.Exit(1)
	}
}

func runWindow(load func() (*physac.World, error), logger *slog.Logger) error {
	g, err := newGame(load, logger)
	if err != nil {
		return err
	}
	cfg := g.world.Config()
	ebiten.SetWindowSize(int(cfg.Width), int(cfg.Height))
	ebiten.SetWindowTitle("Physac golang demo")
	return ebiten.RunGame(g)
}

func runHeadless(load func() (*physac.World, error), frames int, logger *slog.Logger) error {
	if frames < 0 {
		return fmt.Errorf("frames %d must not be negative", frames)
	}
	w, err := load()
	if err != nil {
		return err
	}
	dt := w.Config().TimeStep
	for i := 0; i < frames; i++ {
		w.Step(dt)
	}
	logger.Info("simulation finished", "steps", w.Steps(), "bodies", w.BodyCount())
	for _, b := range w.Bodies() {
		logger.Info("body",
			"id", b.ID,
			"tag", b.Tag,
			"x", b.Position().X,
			"y", b.Position().Y,
			"rotation", b.Rotation(),
			"vx", b.Velocity.X,
			"vy", b.Velocity.Y,
			"grounded", b.IsGrounded)
	}
	return nil
}
