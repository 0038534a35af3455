package physac

import "errors"

var (
	ErrInvalidMass        = errors.New("physac: mass must be positive and finite")
	ErrInvalidRadius      = errors.New("physac: radius must be positive and finite")
	ErrInvalidMaterial    = errors.New("physac: restitution and friction must be within [0, 1]")
	ErrDegeneratePolygon  = errors.New("physac: degenerate polygon")
	ErrConcavePolygon     = errors.New("physac: polygon is not convex")
	ErrTooManyVertices    = errors.New("physac: too many polygon vertices")
	ErrInvalidConfig      = errors.New("physac: invalid config")
	ErrUnknownShape       = errors.New("physac: unknown shape")
	ErrUnknownSceneFormat = errors.New("physac: unknown scene format")
	ErrUnknownBody        = errors.New("physac: body is not in the world")
)
