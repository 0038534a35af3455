package main

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/koteyur/physac"
)

const shatterForce = 20000

var (
	dynamicColor  = color.RGBA{0, 255, 0, 255}
	groundedColor = color.RGBA{255, 200, 0, 255}
	staticColor   = color.RGBA{160, 160, 160, 255}
)

// Game drives a physac world from ebiten's update loop.
type Game struct {
	load   func() (*physac.World, error)
	world  *physac.World
	logger *slog.Logger
	paused bool
}

func newGame(load func() (*physac.World, error), logger *slog.Logger) (*Game, error) {
	g := &Game{load: load, logger: logger}
	if err := g.reload(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) reload() error {
	w, err := g.load()
	if err != nil {
		return err
	}
	g.world = w
	g.logger.Info("scene loaded", "bodies", w.BodyCount())
	return nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.reload(); err != nil {
			g.logger.Error("reload failed, keeping current scene", "error", err)
		}
	}

	var (
		shape *physac.Shape
		err   error
	)
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		shape, err = physac.NewCircle(15)
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight):
		shape, err = physac.NewRectangle(30, 30)
	}
	x, y := ebiten.CursorPosition()
	cursor := physac.Vector2{X: float64(x), Y: float64(y)}
	if shape != nil || err != nil {
		g.spawn(shape, err, cursor)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle) || inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.shatter(cursor)
	}

	if !g.paused {
		g.world.Update(1 / float64(ebiten.MaxTPS()))
	}
	return nil
}

func (g *Game) spawn(shape *physac.Shape, err error, at physac.Vector2) {
	if err == nil {
		_, err = g.world.CreateBody(physac.BodyDef{Shape: shape, Position: at, Tag: "spawned"})
	}
	if err != nil {
		g.logger.Error("spawn failed", "error", err)
	}
}

func (g *Game) shatter(at physac.Vector2) {
	body := g.world.BodyAt(at)
	if body == nil {
		return
	}
	if _, err := g.world.Shatter(body, at, shatterForce); err != nil {
		g.logger.Error("shatter failed", "error", err)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	for _, body := range g.world.Bodies() {
		clr := dynamicColor
		switch {
		case !body.Enabled:
			clr = staticColor
		case body.IsGrounded:
			clr = groundedColor
		}

		shape := body.Shape()
		n := shape.VertexCount()
		for j := 0; j < n; j++ {
			a := shape.Vertex(j)
			b := shape.Vertex((j + 1) % n)
			ebitenutil.DrawLine(screen, a.X, a.Y, b.X, b.Y, clr)
		}
		if shape.Type == physac.ShapeCircle {
			c := shape.Center()
			rim := shape.Vertex(0)
			ebitenutil.DrawLine(screen, c.X, c.Y, rim.X, rim.Y, clr)
		}
	}

	status := "running"
	if g.paused {
		status = "paused"
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"Left click: circle, right click: box, S: shatter, <space>: pause, R: reload\nbodies: %d  steps: %d  %s  TPS: %0.1f",
		g.world.BodyCount(), g.world.Steps(), status, ebiten.CurrentTPS()))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	cfg := g.world.Config()
	return int(cfg.Width), int(cfg.Height)
}
