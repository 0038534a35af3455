package physac

import (
	"math"

	"github.com/golang/geo/r1"
)

// Narrow-phase tests. Every test reports a unit normal pointing from the first
// shape towards the second and a non-negative penetration depth. When the shapes
// do not overlap the normal is zero, the depth is zero and ok is false.

// CircleVsCircle tests two circles.
func CircleVsCircle(centerA Vector2, radiusA float64, centerB Vector2, radiusB float64) (normal Vector2, depth float64, ok bool) {
	radii := radiusA + radiusB
	delta := centerB.Sub(centerA)
	distance := delta.Norm()
	if distance >= radii {
		return Vector2{}, 0, false
	}
	if distance == 0 {
		return Vector2{X: 1}, radii, true
	}
	return delta.Mul(1 / distance), radii - distance, true
}

// PolygonVsPolygon tests two convex polygons given their world-space vertices
// with the separating axis theorem. The candidate axes are the edge normals of
// both polygons; the reported normal is the axis of least penetration.
func PolygonVsPolygon(verticesA, verticesB []Vector2) (normal Vector2, depth float64, ok bool) {
	depth = math.MaxFloat64
	for _, vertices := range [2][]Vector2{verticesA, verticesB} {
		for i := range vertices {
			axis, valid := edgeAxis(vertices, i)
			if !valid {
				continue
			}
			axisDepth, overlap := overlapDepth(projectVertices(verticesA, axis), projectVertices(verticesB, axis))
			if !overlap {
				return Vector2{}, 0, false
			}
			if axisDepth < depth {
				depth = axisDepth
				normal = axis
			}
		}
	}
	if normal == (Vector2{}) {
		return Vector2{}, 0, false
	}
	if vertexMean(verticesB).Sub(vertexMean(verticesA)).Dot(normal) < 0 {
		normal = normal.Mul(-1)
	}
	return normal, depth, true
}

// CircleVsPolygon tests a circle against a convex polygon. Besides the polygon
// edge normals it tries the axis from the circle centre to the nearest polygon
// vertex, which separates circles sitting off a corner. The normal points from
// the circle towards the polygon.
func CircleVsPolygon(center Vector2, radius float64, vertices []Vector2) (normal Vector2, depth float64, ok bool) {
	depth = math.MaxFloat64
	test := func(axis Vector2) bool {
		axisDepth, overlap := overlapDepth(projectCircle(center, radius, axis), projectVertices(vertices, axis))
		if !overlap {
			return false
		}
		if axisDepth < depth {
			depth = axisDepth
			normal = axis
		}
		return true
	}

	for i := range vertices {
		axis, valid := edgeAxis(vertices, i)
		if !valid {
			continue
		}
		if !test(axis) {
			return Vector2{}, 0, false
		}
	}
	if len(vertices) > 0 {
		closest := vertices[closestVertex(center, vertices)]
		if axis := closest.Sub(center); lenSqr(axis) > geometryEpsilon {
			if !test(axis.Normalize()) {
				return Vector2{}, 0, false
			}
		}
	}
	if normal == (Vector2{}) {
		return Vector2{}, 0, false
	}
	if vertexMean(vertices).Sub(center).Dot(normal) < 0 {
		normal = normal.Mul(-1)
	}
	return normal, depth, true
}

// edgeAxis returns the unit normal of the edge starting at vertex i.
// Zero-length edges yield no axis.
func edgeAxis(vertices []Vector2, i int) (Vector2, bool) {
	edge := vertices[(i+1)%len(vertices)].Sub(vertices[i])
	if lenSqr(edge) < geometryEpsilon {
		return Vector2{}, false
	}
	return Vector2{X: -edge.Y, Y: edge.X}.Normalize(), true
}

func projectVertices(vertices []Vector2, axis Vector2) r1.Interval {
	interval := r1.EmptyInterval()
	for _, v := range vertices {
		interval = interval.AddPoint(v.Dot(axis))
	}
	return interval
}

func projectCircle(center Vector2, radius float64, axis Vector2) r1.Interval {
	p := center.Dot(axis)
	return r1.Interval{Lo: p - radius, Hi: p + radius}
}

// overlapDepth returns how far two projections overlap. Touching projections
// do not overlap.
func overlapDepth(a, b r1.Interval) (float64, bool) {
	if a.Lo >= b.Hi || b.Lo >= a.Hi {
		return 0, false
	}
	return math.Min(a.Hi-b.Lo, b.Hi-a.Lo), true
}

func closestVertex(point Vector2, vertices []Vector2) int {
	best, bestDist := 0, math.MaxFloat64
	for i, v := range vertices {
		if d := distSqr(v, point); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func vertexMean(vertices []Vector2) Vector2 {
	var sum Vector2
	for _, v := range vertices {
		sum = sum.Add(v)
	}
	return sum.Mul(1 / float64(len(vertices)))
}
