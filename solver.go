package physac

import (
	"io"
	"log/slog"
	"math"
)

const (
	// restingEpsilon is added to the squared per-step gravity velocity; contacts
	// slower than that lose their restitution.
	restingEpsilon = 1e-6
	// frictionEpsilon is the tangential speed below which no friction is applied.
	frictionEpsilon = 1e-6
	// groundSlope is the minimum cosine between a contact normal and gravity
	// for the contact to ground a body.
	groundSlope = 0.5
)

// Advance runs one simulation step of dt seconds over bodies with the default
// iteration count: integration, removal of bodies that left the viewport and
// collision resolution. Bodies are filtered in place and the shortened slice is
// returned, like append.
func Advance(bodies []*Body, dt, width, height float64, gravity Vector2) []*Body {
	s := solver{
		gravity:    gravity,
		width:      width,
		height:     height,
		iterations: DefaultIterations,
		logger:     discardLogger(),
	}
	return s.advance(bodies, dt)
}

// Collide runs the narrow phase on a pair of bodies and fills a manifold with the
// normal, penetration and contact points. ok is false when they do not touch.
// The broad phase and the Collideable flags are not consulted.
func Collide(a, b *Body) (m Manifold, ok bool) {
	m = Manifold{BodyA: a, BodyB: b}
	sa, sb := a.Shape(), b.Shape()

	switch sa.Type {
	case ShapeCircle:
		switch sb.Type {
		case ShapeCircle:
			m.Normal, m.Penetration, ok = CircleVsCircle(sa.Center(), sa.Radius, sb.Center(), sb.Radius)
			if ok {
				m.Contacts[0] = CircleContact(sa.Center(), sa.Radius, sb.Center())
				m.ContactsCount = 1
			}
		case ShapePolygon:
			m.Normal, m.Penetration, ok = CircleVsPolygon(sa.Center(), sa.Radius, sb.Vertices())
			if ok {
				m.Contacts[0] = CirclePolygonContact(sa.Center(), sb.Vertices())
				m.ContactsCount = 1
			}
		}
	case ShapePolygon:
		switch sb.Type {
		case ShapeCircle:
			m.Normal, m.Penetration, ok = CircleVsPolygon(sb.Center(), sb.Radius, sa.Vertices())
			if ok {
				m.Normal = m.Normal.Mul(-1)
				m.Contacts[0] = CirclePolygonContact(sb.Center(), sa.Vertices())
				m.ContactsCount = 1
			}
		case ShapePolygon:
			m.Normal, m.Penetration, ok = PolygonVsPolygon(sa.Vertices(), sb.Vertices())
			if ok {
				m.Contacts, m.ContactsCount = PolygonContacts(sa.Vertices(), sb.Vertices())
			}
		}
	}
	return m, ok && m.ContactsCount > 0
}

// solver holds the parameters of one step. It keeps no state between steps.
type solver struct {
	gravity       Vector2
	width, height float64
	iterations    int
	logger        *slog.Logger
	onRemove      func(*Body)
}

func (s *solver) advance(bodies []*Body, dt float64) []*Body {
	for _, b := range bodies {
		b.IsGrounded = false
		b.integrate(dt, s.gravity)
	}

	bodies = s.filter(bodies, func(b *Body) bool {
		if !s.outside(b) {
			return true
		}
		s.logger.Debug("body left the viewport", "id", b.ID, "tag", b.Tag, "position", b.Position())
		return false
	})

	for i := 0; i < s.iterations; i++ {
		s.solveCollisions(bodies, dt)
	}

	return s.filter(bodies, s.checkFinite)
}

// outside reports whether b crossed the left, right or bottom edge of the
// viewport by more than its half extent. There is no top edge.
func (s *solver) outside(b *Body) bool {
	p := b.Position()
	half := b.Shape().HalfExtents()
	return p.X < -half.X || p.X > s.width+half.X || p.Y > s.height+half.Y
}

// checkFinite zeroes non-finite velocities and rejects bodies whose position
// became non-finite.
func (s *solver) checkFinite(b *Body) bool {
	if !isFiniteVec(b.Position()) || !isFinite(b.Rotation()) {
		s.logger.Warn("removing body with non-finite position", "id", b.ID, "tag", b.Tag)
		return false
	}
	if !isFiniteVec(b.Velocity) || !isFinite(b.AngularVelocity) {
		s.logger.Warn("resetting non-finite velocity", "id", b.ID, "tag", b.Tag)
		b.Velocity = Vector2{}
		b.AngularVelocity = 0
	}
	return true
}

// filter keeps the bodies accepted by keep, reusing the backing array.
func (s *solver) filter(bodies []*Body, keep func(*Body) bool) []*Body {
	kept := bodies[:0]
	for _, b := range bodies {
		if keep(b) {
			kept = append(kept, b)
			continue
		}
		if s.onRemove != nil {
			s.onRemove(b)
		}
	}
	clear(bodies[len(kept):])
	return kept
}

func (s *solver) solveCollisions(bodies []*Body, dt float64) {
	for i, a := range bodies {
		if !a.Collideable {
			continue
		}
		for _, b := range bodies[i+1:] {
			if !b.Collideable || a == b || (!a.Enabled && !b.Enabled) {
				continue
			}
			if !Overlaps(a.AABB(), b.AABB()) {
				continue
			}
			m, ok := Collide(a, b)
			if !ok {
				continue
			}
			m.prepare(s.gravity, dt)
			m.correctPositions()
			m.resolve()
			m.markGrounded(s.gravity)
		}
	}
}

// prepare composes the pair's material coefficients. Contacts closing slower
// than one step of gravity are treated as resting and do not bounce.
func (m *Manifold) prepare(gravity Vector2, dt float64) {
	a, b := m.BodyA, m.BodyB
	m.Restitution = math.Min(a.Restitution, b.Restitution)
	m.StaticFriction = math.Sqrt(a.StaticFriction * b.StaticFriction)
	m.DynamicFriction = math.Sqrt(a.DynamicFriction * b.DynamicFriction)

	resting := lenSqr(gravity.Mul(dt)) + restingEpsilon
	for i := 0; i < m.ContactsCount; i++ {
		ra := m.Contacts[i].Sub(a.Position())
		rb := m.Contacts[i].Sub(b.Position())
		if lenSqr(relativeVelocity(a, b, ra, rb)) < resting {
			m.Restitution = 0
		}
	}
}

// correctPositions pushes the bodies apart along the normal by the full
// penetration, split evenly when both can move.
func (m *Manifold) correctPositions() {
	a, b := m.BodyA, m.BodyB
	push := m.Normal.Mul(m.Penetration)
	switch {
	case a.Enabled && b.Enabled:
		a.Move(push.Mul(-0.5))
		b.Move(push.Mul(0.5))
	case a.Enabled:
		a.Move(push.Mul(-1))
	case b.Enabled:
		b.Move(push)
	}
}

// resolve applies the normal impulses of every contact, then friction.
func (m *Manifold) resolve() {
	a, b := m.BodyA, m.BodyB
	invMassSum := a.InverseMass() + b.InverseMass()
	if invMassSum == 0 {
		return
	}

	var (
		ra, rb   [2]Vector2
		impulses [2]Vector2
		n        = m.Normal
		count    = float64(m.ContactsCount)
	)
	m.NormalImpulses = [2]float64{}
	m.TangentImpulses = [2]float64{}

	for i := 0; i < m.ContactsCount; i++ {
		ra[i] = m.Contacts[i].Sub(a.Position())
		rb[i] = m.Contacts[i].Sub(b.Position())

		vn := relativeVelocity(a, b, ra[i], rb[i]).Dot(n)
		if vn > 0 {
			continue
		}
		raCrossN := ra[i].Cross(n)
		rbCrossN := rb[i].Cross(n)
		denom := invMassSum +
			raCrossN*raCrossN*a.InverseInertia() +
			rbCrossN*rbCrossN*b.InverseInertia()

		j := -(1 + m.Restitution) * vn / denom / count
		m.NormalImpulses[i] = j
		impulses[i] = n.Mul(j)
	}
	for i := 0; i < m.ContactsCount; i++ {
		a.ApplyImpulse(impulses[i].Mul(-1), ra[i])
		b.ApplyImpulse(impulses[i], rb[i])
	}

	impulses = [2]Vector2{}
	for i := 0; i < m.ContactsCount; i++ {
		rv := relativeVelocity(a, b, ra[i], rb[i])
		tangent := rv.Sub(n.Mul(rv.Dot(n)))
		if tangent.Norm() < frictionEpsilon {
			continue
		}
		t := tangent.Normalize()

		raCrossT := ra[i].Cross(t)
		rbCrossT := rb[i].Cross(t)
		denom := invMassSum +
			raCrossT*raCrossT*a.InverseInertia() +
			rbCrossT*rbCrossT*b.InverseInertia()

		jt := -rv.Dot(t) / denom / count
		limit := m.DynamicFriction * m.NormalImpulses[i]
		jt = math.Max(-limit, math.Min(limit, jt))
		m.TangentImpulses[i] = jt
		impulses[i] = t.Mul(jt)
	}
	for i := 0; i < m.ContactsCount; i++ {
		a.ApplyImpulse(impulses[i].Mul(-1), ra[i])
		b.ApplyImpulse(impulses[i], rb[i])
	}
}

// markGrounded flags the body resting on top of the other.
func (m *Manifold) markGrounded(gravity Vector2) {
	down := gravity.Normalize()
	if down == (Vector2{}) {
		return
	}
	switch c := m.Normal.Dot(down); {
	case c <= -groundSlope:
		m.BodyB.IsGrounded = true
	case c >= groundSlope:
		m.BodyA.IsGrounded = true
	}
}

// relativeVelocity returns the velocity of the contact point on b relative to a.
func relativeVelocity(a, b *Body, ra, rb Vector2) Vector2 {
	va := a.Velocity.Add(crossScalar(a.AngularVelocity, ra))
	vb := b.Velocity.Add(crossScalar(b.AngularVelocity, rb))
	return vb.Sub(va)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
