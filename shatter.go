package physac

import (
	"errors"
	"fmt"
)

// shatterScale shrinks each fragment around its centroid so neighbours do not
// start out overlapping.
const shatterScale = 0.95

// BodyAt returns the last added body whose shape contains p, or nil.
func (w *World) BodyAt(p Vector2) *Body {
	for i := len(w.bodies) - 1; i >= 0; i-- {
		if w.bodies[i].Shape().Contains(p) {
			return w.bodies[i]
		}
	}
	return nil
}

// Shatter breaks polygon body b into one triangle per edge, fanned around
// point, and pushes every fragment away from point with the given force.
// Fragments keep the material, flags and velocity of b and share its mass by
// area. Circles and points outside b are left alone and yield no fragments.
func (w *World) Shatter(b *Body, point Vector2, force float64) ([]*Body, error) {
	if !w.contains(b) {
		return nil, fmt.Errorf("shatter body %d: %w", b.ID, ErrUnknownBody)
	}
	shape := b.Shape()
	if shape.Type != ShapePolygon || !shape.Contains(point) {
		return nil, nil
	}

	material := Material{
		Restitution:     b.Restitution,
		StaticFriction:  b.StaticFriction,
		DynamicFriction: b.DynamicFriction,
	}
	vertices := shape.Vertices()
	fragments := make([]*Body, 0, len(vertices))
	for i, v := range vertices {
		next := vertices[(i+1)%len(vertices)]
		center := v.Add(next).Add(point).Mul(1.0 / 3)
		triangle := []Vector2{
			v.Sub(center).Mul(shatterScale),
			next.Sub(center).Mul(shatterScale),
			point.Sub(center).Mul(shatterScale),
		}
		fragmentShape, err := NewPolygon(triangle)
		if errors.Is(err, ErrDegeneratePolygon) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("shatter body %d: %w", b.ID, err)
		}
		fragment, err := NewBody(BodyDef{
			Shape:        fragmentShape,
			Position:     center,
			Mass:         b.Mass() * fragmentShape.Area() / (shape.Area() * shatterScale * shatterScale),
			Material:     &material,
			Static:       !b.Enabled,
			NoCollide:    !b.Collideable,
			NoGravity:    !b.UseGravity,
			FreezeOrient: b.FreezeOrient,
			Velocity:     b.Velocity,
			Tag:          b.Tag,
		})
		if err != nil {
			return nil, fmt.Errorf("shatter body %d: %w", b.ID, err)
		}
		mid := v.Add(next).Mul(0.5)
		fragment.ApplyForce(mid.Sub(point).Normalize().Mul(force))
		fragments = append(fragments, fragment)
	}

	w.RemoveBody(b)
	for _, f := range fragments {
		w.AddBody(f)
	}
	w.logger.Debug("body shattered", "id", b.ID, "tag", b.Tag, "fragments", len(fragments))
	return fragments, nil
}

func (w *World) contains(b *Body) bool {
	for _, other := range w.bodies {
		if other == b {
			return true
		}
	}
	return false
}
