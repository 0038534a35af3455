package physac

import "github.com/golang/geo/r2"

// AABB is an axis-aligned bounding box.
type AABB struct {
	r2.Rect
}

// NewAABB returns the smallest box holding all points.
func NewAABB(points ...Vector2) AABB {
	return AABB{r2.RectFromPoints(points...)}
}

// Min returns the top-left corner.
func (b AABB) Min() Vector2 { return b.Lo() }

// Max returns the bottom-right corner.
func (b AABB) Max() Vector2 { return b.Hi() }

// Overlaps reports whether a and b share interior area.
// Both axes must overlap; boxes that only touch along an edge do not count.
func Overlaps(a, b AABB) bool {
	return a.X.Lo < b.X.Hi && a.X.Hi > b.X.Lo &&
		a.Y.Lo < b.Y.Hi && a.Y.Hi > b.Y.Lo
}
