package physac

import (
	"math"

	"github.com/golang/geo/r2"
)

// Vector2 is a point or direction in world space. Screen convention: +Y points down.
type Vector2 = r2.Point

// Mat2 is a 2x2 rotation matrix.
type Mat2 struct {
	M00, M01 float64
	M10, M11 float64
}

// Mat2Radians returns the matrix rotating by radians.
func Mat2Radians(radians float64) Mat2 {
	c, s := math.Cos(radians), math.Sin(radians)
	return Mat2{M00: c, M01: -s, M10: s, M11: c}
}

// Transpose returns the inverse rotation.
func (m Mat2) Transpose() Mat2 {
	return Mat2{M00: m.M00, M01: m.M10, M10: m.M01, M11: m.M11}
}

// MulVec rotates v by m.
func (m Mat2) MulVec(v Vector2) Vector2 {
	return Vector2{X: m.M00*v.X + m.M01*v.Y, Y: m.M10*v.X + m.M11*v.Y}
}

// crossScalar returns w × v for an angular velocity w.
func crossScalar(w float64, v Vector2) Vector2 {
	return v.Ortho().Mul(w)
}

func lenSqr(v Vector2) float64 {
	return v.Dot(v)
}

func distSqr(a, b Vector2) float64 {
	return lenSqr(a.Sub(b))
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func isFiniteVec(v Vector2) bool {
	return isFinite(v.X) && isFinite(v.Y)
}

// nearlyEqual is used for contact de-duplication.
func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) < contactEpsilon
}

func nearlyEqualVec(a, b Vector2) bool {
	return distSqr(a, b) < contactEpsilon*contactEpsilon
}
