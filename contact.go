package physac

import "math"

// contactEpsilon separates distinct contact points of one manifold.
const contactEpsilon = 5e-4

// Manifold describes one colliding pair for a single solver iteration.
// It is a plain value; nothing in it survives the step that produced it.
type Manifold struct {
	BodyA, BodyB *Body

	// Normal is the unit collision normal pointing from BodyA to BodyB.
	Normal      Vector2
	Penetration float64

	Contacts      [2]Vector2
	ContactsCount int

	Restitution     float64
	StaticFriction  float64
	DynamicFriction float64

	// Impulse magnitudes applied at each contact by the last resolve.
	NormalImpulses  [2]float64
	TangentImpulses [2]float64
}

// CircleContact returns the contact point of two overlapping circles.
func CircleContact(centerA Vector2, radiusA float64, centerB Vector2) Vector2 {
	dir := centerB.Sub(centerA).Normalize()
	if dir == (Vector2{}) {
		dir = Vector2{X: 1}
	}
	return centerA.Add(dir.Mul(radiusA))
}

// CirclePolygonContact returns the point of the polygon outline nearest to center.
func CirclePolygonContact(center Vector2, vertices []Vector2) Vector2 {
	var cp Vector2
	minDist := math.MaxFloat64
	for i, a := range vertices {
		b := vertices[(i+1)%len(vertices)]
		d, closest := pointSegmentDistance(center, a, b)
		if d < minDist {
			minDist = d
			cp = closest
		}
	}
	return cp
}

// PolygonContacts returns one or two contact points of two overlapping polygons.
// Each vertex of either polygon is matched against every edge of the other; the
// nearest pair gives the first point and a second pair at (nearly) the same
// distance but a distinct position gives the second.
func PolygonContacts(verticesA, verticesB []Vector2) (contacts [2]Vector2, count int) {
	minDist := math.MaxFloat64
	scan := func(points, edges []Vector2) {
		for _, p := range points {
			for j, a := range edges {
				b := edges[(j+1)%len(edges)]
				d, cp := pointSegmentDistance(p, a, b)
				switch {
				case nearlyEqual(d, minDist):
					if !nearlyEqualVec(cp, contacts[0]) {
						contacts[1] = cp
						count = 2
					}
				case d < minDist:
					minDist = d
					contacts[0] = cp
					count = 1
				}
			}
		}
	}
	scan(verticesA, verticesB)
	scan(verticesB, verticesA)
	return contacts, count
}

// pointSegmentDistance returns the squared distance from p to segment ab and
// the closest point on it.
func pointSegmentDistance(p, a, b Vector2) (float64, Vector2) {
	ab := b.Sub(a)
	denom := lenSqr(ab)
	if denom == 0 {
		return distSqr(p, a), a
	}
	t := p.Sub(a).Dot(ab) / denom
	t = math.Max(0, math.Min(1, t))
	closest := a.Add(ab.Mul(t))
	return distSqr(p, closest), closest
}
