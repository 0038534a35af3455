package physac

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// SceneFormat names a scene file encoding.
type SceneFormat string

const (
	FormatYAML SceneFormat = "yaml"
	FormatTOML SceneFormat = "toml"
)

// Shape kinds accepted in a SceneBody.
const (
	KindCircle    = "circle"
	KindRectangle = "rectangle"
	KindPolygon   = "polygon"
	KindRegular   = "regular"
)

// Scene is a world configuration plus the bodies to start with.
type Scene struct {
	World  Config     `yaml:"world" toml:"world"`
	Bodies []SceneBody `yaml:"bodies" toml:"bodies"`
}

// SceneBody is the file form of a BodyDef.
type SceneBody struct {
	Tag string `yaml:"tag,omitempty" toml:"tag,omitempty"`

	// Shape is one of circle, rectangle, polygon or regular.
	Shape    string    `yaml:"shape" toml:"shape"`
	Radius   float64   `yaml:"radius,omitempty" toml:"radius,omitempty"`
	Width    float64   `yaml:"width,omitempty" toml:"width,omitempty"`
	Height   float64   `yaml:"height,omitempty" toml:"height,omitempty"`
	Sides    int       `yaml:"sides,omitempty" toml:"sides,omitempty"`
	Vertices []Vector2 `yaml:"vertices,omitempty" toml:"vertices,omitempty"`

	Position Vector2 `yaml:"position" toml:"position"`
	// Rotation in radians.
	Rotation float64 `yaml:"rotation,omitempty" toml:"rotation,omitempty"`

	Mass     float64   `yaml:"mass,omitempty" toml:"mass,omitempty"`
	Inertia  float64   `yaml:"inertia,omitempty" toml:"inertia,omitempty"`
	Material *Material `yaml:"material,omitempty" toml:"material,omitempty"`

	Static       bool `yaml:"static,omitempty" toml:"static,omitempty"`
	NoCollide    bool `yaml:"no_collide,omitempty" toml:"no_collide,omitempty"`
	NoGravity    bool `yaml:"no_gravity,omitempty" toml:"no_gravity,omitempty"`
	FreezeOrient bool `yaml:"freeze_orient,omitempty" toml:"freeze_orient,omitempty"`

	Velocity        Vector2 `yaml:"velocity,omitempty" toml:"velocity,omitempty"`
	AngularVelocity float64 `yaml:"angular_velocity,omitempty" toml:"angular_velocity,omitempty"`
}

// NewShape builds the described shape.
func (bs SceneBody) NewShape() (*Shape, error) {
	switch strings.ToLower(bs.Shape) {
	case KindCircle:
		return NewCircle(bs.Radius)
	case KindRectangle:
		return NewRectangle(bs.Width, bs.Height)
	case KindPolygon:
		return NewPolygon(bs.Vertices)
	case KindRegular:
		return NewRegularPolygon(bs.Radius, bs.Sides)
	default:
		return nil, fmt.Errorf("%q: %w", bs.Shape, ErrUnknownShape)
	}
}

// Def converts the entry to a BodyDef with a fresh shape.
func (bs SceneBody) Def() (BodyDef, error) {
	shape, err := bs.NewShape()
	if err != nil {
		return BodyDef{}, err
	}
	return BodyDef{
		Shape:           shape,
		Position:        bs.Position,
		Rotation:        bs.Rotation,
		Mass:            bs.Mass,
		Inertia:         bs.Inertia,
		Material:        bs.Material,
		Static:          bs.Static,
		NoCollide:       bs.NoCollide,
		NoGravity:       bs.NoGravity,
		FreezeOrient:    bs.FreezeOrient,
		Velocity:        bs.Velocity,
		AngularVelocity: bs.AngularVelocity,
		Tag:             bs.Tag,
	}, nil
}

// FormatFromPath picks the scene format from a file extension.
func FormatFromPath(path string) (SceneFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%s: %w", path, ErrUnknownSceneFormat)
	}
}

// LoadScene reads a YAML or TOML scene file.
func LoadScene(path string) (*Scene, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	scene, err := ParseScene(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return scene, nil
}

// ParseScene decodes a scene. World settings missing from the document keep
// their DefaultConfig values; unknown keys are rejected.
func ParseScene(data []byte, format SceneFormat) (*Scene, error) {
	scene := &Scene{World: DefaultConfig()}
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// An empty document is an empty scene.
		if err := dec.Decode(scene); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode yaml scene: %w", err)
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(scene); err != nil {
			return nil, fmt.Errorf("decode toml scene: %w", err)
		}
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnknownSceneFormat)
	}
	if err := scene.World.Validate(); err != nil {
		return nil, err
	}
	return scene, nil
}

// Build creates a world holding the scene's bodies.
func (s *Scene) Build(opts ...Option) (*World, error) {
	w, err := NewWorld(s.World, opts...)
	if err != nil {
		return nil, err
	}
	for i, entry := range s.Bodies {
		def, err := entry.Def()
		if err != nil {
			return nil, fmt.Errorf("body %d (%s): %w", i, entry.Tag, err)
		}
		if _, err := w.CreateBody(def); err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
	}
	return w, nil
}

// DefaultScene returns the demo scene: a static floor, a static ramp tilted by
// 30 degrees, a small box and two balls.
func DefaultScene() *Scene {
	return &Scene{
		World: DefaultConfig(),
		Bodies: []SceneBody{
			{Tag: "floor", Shape: KindRectangle, Width: 1000, Height: 40, Position: Vector2{X: 600, Y: 680}, Static: true},
			{Tag: "ramp", Shape: KindRectangle, Width: 400, Height: 20, Position: Vector2{X: 200, Y: 300}, Rotation: math.Pi / 6, Static: true},
			{Tag: "box", Shape: KindRectangle, Width: 20, Height: 20, Position: Vector2{X: 200, Y: 200}},
			{Tag: "ball", Shape: KindCircle, Radius: 20, Position: Vector2{X: 500, Y: 400}},
			{Tag: "ball", Shape: KindCircle, Radius: 20, Position: Vector2{X: 200, Y: 100}},
		},
	}
}
