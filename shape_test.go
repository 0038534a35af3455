package physac

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCircle(t *testing.T, radius float64) *Shape {
	t.Helper()
	s, err := NewCircle(radius)
	require.NoError(t, err)
	return s
}

func mustRect(t *testing.T, width, height float64) *Shape {
	t.Helper()
	s, err := NewRectangle(width, height)
	require.NoError(t, err)
	return s
}

func signedArea(vertices []Vector2) float64 {
	var sum float64
	for i, v := range vertices {
		sum += v.Cross(vertices[(i+1)%len(vertices)])
	}
	return sum / 2
}

func TestNewCircleRejectsBadRadius(t *testing.T) {
	for _, r := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := NewCircle(r)
		assert.ErrorIs(t, err, ErrInvalidRadius, "radius %v", r)
	}
}

func TestNewPolygonValidation(t *testing.T) {
	many := make([]Vector2, MaxVertices+1)
	for i := range many {
		a := 2 * math.Pi * float64(i) / float64(len(many))
		many[i] = Vector2{X: math.Cos(a), Y: math.Sin(a)}
	}

	tests := []struct {
		name     string
		vertices []Vector2
		err      error
	}{
		{"two vertices", []Vector2{{X: 0, Y: 0}, {X: 1, Y: 0}}, ErrDegeneratePolygon},
		{"too many", many, ErrTooManyVertices},
		{"repeated vertex", []Vector2{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 1}}, ErrDegeneratePolygon},
		{"collinear", []Vector2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}, ErrDegeneratePolygon},
		{"nan", []Vector2{{X: 0, Y: 0}, {X: math.NaN(), Y: 0}, {X: 1, Y: 1}}, ErrDegeneratePolygon},
		{"concave", []Vector2{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 4}}, ErrConcavePolygon},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPolygon(tt.vertices)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestNewRegularPolygonValidation(t *testing.T) {
	_, err := NewRegularPolygon(10, 2)
	assert.ErrorIs(t, err, ErrDegeneratePolygon)
	_, err = NewRegularPolygon(10, MaxVertices+1)
	assert.ErrorIs(t, err, ErrTooManyVertices)
	_, err = NewRegularPolygon(0, 5)
	assert.ErrorIs(t, err, ErrInvalidRadius)

	s, err := NewRegularPolygon(10, 6)
	require.NoError(t, err)
	assert.Equal(t, 6, s.VertexCount())
}

func TestNewPolygonWindsCounterClockwise(t *testing.T) {
	clockwise := []Vector2{{X: 0, Y: 0}, {X: 0, Y: 2}, {X: 2, Y: 2}, {X: 2, Y: 0}}
	require.Less(t, signedArea(clockwise), 0.0)

	s, err := NewPolygon(clockwise)
	require.NoError(t, err)
	assert.Greater(t, signedArea(s.LocalVertices()), 0.0)
	assert.InDelta(t, 4, s.Area(), 1e-9)
}

func TestNewPolygonRecentres(t *testing.T) {
	s, err := NewPolygon([]Vector2{{X: 10, Y: 10}, {X: 14, Y: 10}, {X: 14, Y: 14}, {X: 10, Y: 14}})
	require.NoError(t, err)

	for _, v := range s.LocalVertices() {
		assert.InDelta(t, 2, math.Abs(v.X), 1e-9)
		assert.InDelta(t, 2, math.Abs(v.Y), 1e-9)
	}
	assert.Equal(t, Vector2{}, s.Position())
}

func TestNewPolygonCopiesInput(t *testing.T) {
	in := []Vector2{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}}
	s, err := NewPolygon(in)
	require.NoError(t, err)
	in[0] = Vector2{X: 100, Y: 100}
	assert.NotContains(t, s.LocalVertices(), Vector2{X: 100, Y: 100})
}

func TestShapeInertia(t *testing.T) {
	assert.InDelta(t, 6, mustCircle(t, 2).Inertia(3), 1e-9)
	// m(w²+h²)/12
	assert.InDelta(t, 5, mustRect(t, 4, 2).Inertia(3), 1e-9)
	assert.InDelta(t, 10*(100+100)/12.0, mustRect(t, 10, 10).Inertia(10), 1e-9)
}

func TestShapeNormalsPointOutward(t *testing.T) {
	s, err := NewRegularPolygon(5, 7)
	require.NoError(t, err)
	s.SetTransform(Vector2{X: 3, Y: -4}, 0.7)

	vertices := s.Vertices()
	for i := range vertices {
		n := s.Normal(i)
		assert.InDelta(t, 1, n.Norm(), 1e-9)
		mid := vertices[i].Add(vertices[(i+1)%len(vertices)]).Mul(0.5)
		assert.Greater(t, n.Dot(mid.Sub(s.Center())), 0.0, "edge %d", i)
	}
}

func TestShapeSettersRecomputeVertices(t *testing.T) {
	s := mustRect(t, 4, 2)

	s.SetPosition(Vector2{X: 10, Y: 20})
	box := s.AABB()
	assert.InDelta(t, 8, box.Min().X, 1e-9)
	assert.InDelta(t, 19, box.Min().Y, 1e-9)
	assert.InDelta(t, 12, box.Max().X, 1e-9)
	assert.InDelta(t, 21, box.Max().Y, 1e-9)

	s.SetRotation(math.Pi / 2)
	half := s.HalfExtents()
	assert.InDelta(t, 1, half.X, 1e-9)
	assert.InDelta(t, 2, half.Y, 1e-9)
	assert.InDelta(t, math.Pi/2, s.Rotation(), 1e-12)

	s.SetTransform(Vector2{}, 0)
	for i := 0; i < s.VertexCount(); i++ {
		assert.Equal(t, s.Vertices()[i], s.Vertex(i))
	}
	assert.InDelta(t, 2, s.HalfExtents().X, 1e-9)
}

func TestCircleOutline(t *testing.T) {
	s := mustCircle(t, 5)
	s.SetPosition(Vector2{X: 1, Y: 1})

	assert.Equal(t, CircleVertices, s.VertexCount())
	assert.Empty(t, s.Vertices())
	v := s.Vertex(0)
	assert.InDelta(t, 6, v.X, 1e-9)
	assert.InDelta(t, 1, v.Y, 1e-9)

	s.SetRotation(math.Pi / 2)
	v = s.Vertex(0)
	assert.InDelta(t, 1, v.X, 1e-9)
	assert.InDelta(t, 6, v.Y, 1e-9)

	for i := 0; i < s.VertexCount(); i++ {
		assert.InDelta(t, 5, s.Vertex(i).Sub(s.Center()).Norm(), 1e-9)
	}
}

func TestShapeTypeString(t *testing.T) {
	assert.Equal(t, "circle", ShapeCircle.String())
	assert.Equal(t, "polygon", ShapePolygon.String())
	assert.Equal(t, "ShapeType(7)", ShapeType(7).String())
}
