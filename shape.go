package physac

import (
	"fmt"
	"math"
)

// ShapeType tags the variant held by a Shape.
type ShapeType int

const (
	ShapeCircle ShapeType = iota
	ShapePolygon
)

func (t ShapeType) String() string {
	switch t {
	case ShapeCircle:
		return "circle"
	case ShapePolygon:
		return "polygon"
	default:
		return fmt.Sprintf("ShapeType(%d)", int(t))
	}
}

const (
	// MaxVertices bounds polygon vertex count.
	MaxVertices = 24
	// CircleVertices is the default outline resolution of circles.
	CircleVertices = 24

	geometryEpsilon = 1e-9
)

// Shape is the collision geometry of a body: a circle or a convex polygon.
//
// World-space geometry is recomputed whenever the position or rotation changes,
// so Vertices and Center always reflect the last transform set.
type Shape struct {
	Type ShapeType

	// Radius of a circle; zero for polygons.
	Radius float64
	// Segments is the number of outline vertices reported for a circle.
	// It only affects rendering.
	Segments int

	local   []Vector2 // centred on the centroid, counter-clockwise
	normals []Vector2 // local outward edge normals
	world   []Vector2

	area        float64
	unitInertia float64 // second moment per unit mass

	position  Vector2
	rotation  float64
	transform Mat2
}

// NewCircle returns a circle shape centred on its position.
func NewCircle(radius float64) (*Shape, error) {
	if !(radius > 0) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("circle radius %v: %w", radius, ErrInvalidRadius)
	}
	s := &Shape{
		Type:        ShapeCircle,
		Radius:      radius,
		Segments:    CircleVertices,
		area:        math.Pi * radius * radius,
		unitInertia: radius * radius / 2,
		transform:   Mat2Radians(0),
	}
	return s, nil
}

// NewRectangle returns a width x height box centred on its position.
func NewRectangle(width, height float64) (*Shape, error) {
	if !(width > 0) || !(height > 0) {
		return nil, fmt.Errorf("rectangle %vx%v: %w", width, height, ErrDegeneratePolygon)
	}
	hw, hh := width/2, height/2
	return NewPolygon([]Vector2{
		{X: hw, Y: -hh},
		{X: hw, Y: hh},
		{X: -hw, Y: hh},
		{X: -hw, Y: -hh},
	})
}

// NewRegularPolygon returns a polygon with sides vertices on a circle of the given radius.
func NewRegularPolygon(radius float64, sides int) (*Shape, error) {
	if !(radius > 0) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("polygon radius %v: %w", radius, ErrInvalidRadius)
	}
	if sides < 3 {
		return nil, fmt.Errorf("%d sides: %w", sides, ErrDegeneratePolygon)
	}
	if sides > MaxVertices {
		return nil, fmt.Errorf("%d sides: %w", sides, ErrTooManyVertices)
	}
	vertices := make([]Vector2, sides)
	for i := range vertices {
		a := 2 * math.Pi * float64(i) / float64(sides)
		vertices[i] = Vector2{X: math.Cos(a) * radius, Y: math.Sin(a) * radius}
	}
	return NewPolygon(vertices)
}

// NewPolygon returns a convex polygon from local-space vertices.
// The vertices are copied, re-centred on their centroid and wound counter-clockwise.
// Fewer than 3 vertices, zero-length edges, zero area and concave outlines are rejected.
func NewPolygon(vertices []Vector2) (*Shape, error) {
	n := len(vertices)
	if n < 3 {
		return nil, fmt.Errorf("%d vertices: %w", n, ErrDegeneratePolygon)
	}
	if n > MaxVertices {
		return nil, fmt.Errorf("%d vertices: %w", n, ErrTooManyVertices)
	}

	local := make([]Vector2, n)
	copy(local, vertices)
	var doubleArea float64
	for i, v := range local {
		if !isFiniteVec(v) {
			return nil, fmt.Errorf("vertex %d is %v: %w", i, v, ErrDegeneratePolygon)
		}
		next := local[(i+1)%n]
		if distSqr(v, next) < geometryEpsilon {
			return nil, fmt.Errorf("edge %d has zero length: %w", i, ErrDegeneratePolygon)
		}
		doubleArea += v.Cross(next)
	}
	if math.Abs(doubleArea) < geometryEpsilon {
		return nil, fmt.Errorf("zero area: %w", ErrDegeneratePolygon)
	}
	if doubleArea < 0 {
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			local[i], local[j] = local[j], local[i]
		}
	}

	for i := range local {
		e1 := local[(i+1)%n].Sub(local[i])
		e2 := local[(i+2)%n].Sub(local[(i+1)%n])
		if e1.Cross(e2) < -geometryEpsilon {
			return nil, fmt.Errorf("turn at vertex %d: %w", (i+1)%n, ErrConcavePolygon)
		}
	}

	var (
		center Vector2
		area   float64
	)
	for i, p1 := range local {
		p2 := local[(i+1)%n]
		triangleArea := p1.Cross(p2) / 2
		area += triangleArea
		center = center.Add(p1.Add(p2).Mul(triangleArea / 3))
	}
	center = center.Mul(1 / area)

	var inertia float64
	for i := range local {
		local[i] = local[i].Sub(center)
	}
	for i, p1 := range local {
		p2 := local[(i+1)%n]
		d := p1.Cross(p2)
		intx2 := p1.X*p1.X + p2.X*p1.X + p2.X*p2.X
		inty2 := p1.Y*p1.Y + p2.Y*p1.Y + p2.Y*p2.Y
		inertia += d / 12 * (intx2 + inty2)
	}

	normals := make([]Vector2, n)
	for i := range local {
		face := local[(i+1)%n].Sub(local[i])
		normals[i] = Vector2{X: face.Y, Y: -face.X}.Normalize()
	}

	s := &Shape{
		Type:        ShapePolygon,
		local:       local,
		normals:     normals,
		world:       make([]Vector2, n),
		area:        area,
		unitInertia: inertia / area,
		transform:   Mat2Radians(0),
	}
	s.update()
	return s, nil
}

// Position returns the world-space origin of the shape.
func (s *Shape) Position() Vector2 { return s.position }

// Rotation returns the orientation in radians.
func (s *Shape) Rotation() float64 { return s.rotation }

// Transform returns the rotation matrix for the current orientation.
func (s *Shape) Transform() Mat2 { return s.transform }

// SetPosition moves the shape and recomputes its world geometry.
func (s *Shape) SetPosition(p Vector2) {
	s.position = p
	s.update()
}

// SetRotation rotates the shape and recomputes its world geometry.
func (s *Shape) SetRotation(radians float64) {
	s.rotation = radians
	s.transform = Mat2Radians(radians)
	s.update()
}

// SetTransform sets position and rotation with a single recomputation.
func (s *Shape) SetTransform(p Vector2, radians float64) {
	s.position = p
	s.rotation = radians
	s.transform = Mat2Radians(radians)
	s.update()
}

func (s *Shape) update() {
	if s.Type != ShapePolygon {
		return
	}
	for i, v := range s.local {
		s.world[i] = s.position.Add(s.transform.MulVec(v))
	}
}

// Center returns the world-space centre (the polygon centroid or circle centre).
func (s *Shape) Center() Vector2 { return s.position }

// Vertices returns the world-space polygon vertices in counter-clockwise order.
// The slice is owned by the shape and must not be modified. Circles have none.
func (s *Shape) Vertices() []Vector2 { return s.world }

// LocalVertices returns a copy of the centred local-space polygon vertices.
func (s *Shape) LocalVertices() []Vector2 {
	out := make([]Vector2, len(s.local))
	copy(out, s.local)
	return out
}

// Normal returns the world-space outward normal of polygon edge i.
func (s *Shape) Normal(i int) Vector2 {
	return s.transform.MulVec(s.normals[i])
}

// AABB returns the world-space bounding box.
func (s *Shape) AABB() AABB {
	if s.Type == ShapeCircle {
		r := Vector2{X: s.Radius, Y: s.Radius}
		return NewAABB(s.position.Sub(r), s.position.Add(r))
	}
	return NewAABB(s.world...)
}

// HalfExtents returns half the size of the current bounding box.
func (s *Shape) HalfExtents() Vector2 {
	return s.AABB().Size().Mul(0.5)
}

// Area returns the surface area.
func (s *Shape) Area() float64 { return s.area }

// Inertia returns the rotational inertia about the centre for the given mass:
// m·r²/2 for circles and the exact polygon moment, m·(w²+h²)/12 for rectangles.
func (s *Shape) Inertia(mass float64) float64 {
	return mass * s.unitInertia
}

// VertexCount returns how many outline vertices Vertex reports.
func (s *Shape) VertexCount() int {
	if s.Type == ShapeCircle {
		return s.Segments
	}
	return len(s.world)
}

// Vertex returns outline vertex i in world space. Circles are sampled along
// their rim starting at the current rotation so spinning is visible.
func (s *Shape) Vertex(i int) Vector2 {
	if s.Type == ShapeCircle {
		a := s.rotation + 2*math.Pi*float64(i)/float64(s.Segments)
		return s.position.Add(Vector2{X: math.Cos(a), Y: math.Sin(a)}.Mul(s.Radius))
	}
	return s.world[i]
}

// Contains reports whether p lies strictly inside the shape.
func (s *Shape) Contains(p Vector2) bool {
	if s.Type == ShapeCircle {
		return distSqr(p, s.position) < s.Radius*s.Radius
	}
	for i, v := range s.world {
		edge := s.world[(i+1)%len(s.world)].Sub(v)
		if edge.Cross(p.Sub(v)) <= 0 {
			return false
		}
	}
	return true
}
