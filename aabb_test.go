package physac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverlaps(t *testing.T) {
	box := func(x0, y0, x1, y1 float64) AABB {
		return NewAABB(Vector2{X: x0, Y: y0}, Vector2{X: x1, Y: y1})
	}
	tests := []struct {
		name string
		a, b AABB
		want bool
	}{
		{"same box", box(0, 0, 10, 10), box(0, 0, 10, 10), true},
		{"partial", box(0, 0, 10, 10), box(5, 5, 15, 15), true},
		{"contained", box(0, 0, 10, 10), box(2, 2, 4, 4), true},
		{"apart", box(0, 0, 10, 10), box(20, 20, 30, 30), false},
		{"touching edge", box(0, 0, 10, 10), box(10, 0, 20, 10), false},
		{"touching corner", box(0, 0, 10, 10), box(10, 10, 20, 20), false},
		// Overlap on x only: an OR of the axes would report a hit here.
		{"x only", box(0, 0, 10, 10), box(5, 50, 15, 60), false},
		{"y only", box(0, 0, 10, 10), box(50, 5, 60, 15), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.a, tt.b))
			assert.Equal(t, tt.want, Overlaps(tt.b, tt.a))
		})
	}
}

func TestOverlapsImpliesSharedAxes(t *testing.T) {
	a := NewAABB(Vector2{X: 0, Y: 0}, Vector2{X: 10, Y: 10})
	for x := -20.0; x <= 20; x += 2.5 {
		for y := -20.0; y <= 20; y += 2.5 {
			b := NewAABB(Vector2{X: x, Y: y}, Vector2{X: x + 10, Y: y + 10})
			xAxis := a.X.Lo < b.X.Hi && b.X.Lo < a.X.Hi
			yAxis := a.Y.Lo < b.Y.Hi && b.Y.Lo < a.Y.Hi
			assert.Equal(t, xAxis && yAxis, Overlaps(a, b), "offset (%v, %v)", x, y)
		}
	}
}

func TestNewAABB(t *testing.T) {
	b := NewAABB(Vector2{X: 3, Y: -1}, Vector2{X: -2, Y: 4}, Vector2{X: 1, Y: 1})
	assert.Equal(t, Vector2{X: -2, Y: -1}, b.Min())
	assert.Equal(t, Vector2{X: 3, Y: 4}, b.Max())
}
