package physac

import (
	"fmt"
	"math"
)

// DefaultMass is used when a BodyDef leaves Mass at zero.
const DefaultMass = 1.0

// Material holds the surface coefficients of a body, each within [0, 1].
type Material struct {
	Restitution     float64 `yaml:"restitution" toml:"restitution"`
	StaticFriction  float64 `yaml:"static_friction" toml:"static_friction"`
	DynamicFriction float64 `yaml:"dynamic_friction" toml:"dynamic_friction"`
}

// DefaultMaterial returns the coefficients used when a BodyDef has no Material.
func DefaultMaterial() Material {
	return Material{
		Restitution:     0.5,
		StaticFriction:  0.4,
		DynamicFriction: 0.2,
	}
}

// Validate reports whether every coefficient is within [0, 1].
func (m Material) Validate() error {
	for _, c := range [...]float64{m.Restitution, m.StaticFriction, m.DynamicFriction} {
		if !(c >= 0 && c <= 1) {
			return fmt.Errorf("coefficient %v: %w", c, ErrInvalidMaterial)
		}
	}
	return nil
}

// BodyDef describes a body to create with NewBody. The zero value plus a Shape
// is a collideable dynamic body of mass 1 affected by gravity.
type BodyDef struct {
	Shape    *Shape
	Position Vector2
	Rotation float64

	// Mass must be positive; zero selects DefaultMass. Static bodies may use +Inf.
	Mass float64
	// Inertia overrides the inertia derived from the shape when positive.
	Inertia float64

	// Material defaults to DefaultMaterial when nil.
	Material *Material

	// Static bodies never move but still collide with dynamic ones.
	Static bool
	// NoCollide excludes the body from all collision tests.
	NoCollide bool
	// NoGravity exempts a dynamic body from gravity.
	NoGravity bool
	// FreezeOrient keeps the body from rotating.
	FreezeOrient bool

	Velocity        Vector2
	AngularVelocity float64

	// Tag is a free-form label for the host (e.g. "floor", "player").
	Tag string
}

// Body is a rigid body owning exactly one Shape.
type Body struct {
	ID  uint
	Tag string

	// Enabled bodies are moved by gravity and impulses. Disabled bodies are
	// immovable anchors that still collide.
	Enabled bool
	// Collideable bodies take part in the broad and narrow phase.
	Collideable  bool
	UseGravity   bool
	FreezeOrient bool
	// IsGrounded is set during a step when the body rests on something against gravity.
	IsGrounded bool

	Velocity        Vector2
	AngularVelocity float64
	Force           Vector2
	Torque          float64

	Restitution     float64
	StaticFriction  float64
	DynamicFriction float64

	mass    float64
	inertia float64
	shape   *Shape
}

// NewBody validates def and returns the body it describes.
func NewBody(def BodyDef) (*Body, error) {
	if def.Shape == nil {
		return nil, fmt.Errorf("body has no shape: %w", ErrUnknownShape)
	}

	mass := def.Mass
	if mass == 0 {
		mass = DefaultMass
	}
	if !(mass > 0) || (math.IsInf(mass, 1) && !def.Static) {
		return nil, fmt.Errorf("mass %v: %w", def.Mass, ErrInvalidMass)
	}

	b := &Body{
		Tag:             def.Tag,
		Enabled:         !def.Static,
		Collideable:     !def.NoCollide,
		UseGravity:      !def.NoGravity,
		FreezeOrient:    def.FreezeOrient,
		Velocity:        def.Velocity,
		AngularVelocity: def.AngularVelocity,
		mass:            mass,
		shape:           def.Shape,
	}
	material := DefaultMaterial()
	if def.Material != nil {
		if err := def.Material.Validate(); err != nil {
			return nil, err
		}
		material = *def.Material
	}
	b.Restitution = material.Restitution
	b.StaticFriction = material.StaticFriction
	b.DynamicFriction = material.DynamicFriction

	switch {
	case def.Inertia > 0 && !math.IsInf(def.Inertia, 0):
		b.inertia = def.Inertia
	case def.Inertia < 0 || math.IsNaN(def.Inertia):
		return nil, fmt.Errorf("inertia %v: %w", def.Inertia, ErrInvalidMass)
	default:
		b.inertia = def.Shape.Inertia(mass)
	}

	def.Shape.SetTransform(def.Position, def.Rotation)
	return b, nil
}

// Shape returns the body's collision shape.
func (b *Body) Shape() *Shape { return b.shape }

// Mass returns the body mass.
func (b *Body) Mass() float64 { return b.mass }

// Inertia returns the rotational inertia.
func (b *Body) Inertia() float64 { return b.inertia }

// InverseMass is zero for disabled bodies.
func (b *Body) InverseMass() float64 {
	if !b.Enabled || math.IsInf(b.mass, 1) {
		return 0
	}
	return 1 / b.mass
}

// InverseInertia is zero for disabled bodies and bodies with a frozen orientation.
func (b *Body) InverseInertia() float64 {
	if !b.Enabled || b.FreezeOrient || math.IsInf(b.inertia, 1) {
		return 0
	}
	return 1 / b.inertia
}

// Position returns the world-space position of the body centre.
func (b *Body) Position() Vector2 { return b.shape.Position() }

// SetPosition moves the body and its shape.
func (b *Body) SetPosition(p Vector2) { b.shape.SetPosition(p) }

// Rotation returns the orientation in radians.
func (b *Body) Rotation() float64 { return b.shape.Rotation() }

// SetRotation rotates the body and its shape.
func (b *Body) SetRotation(radians float64) { b.shape.SetRotation(radians) }

// Move translates the body by delta.
func (b *Body) Move(delta Vector2) { b.shape.SetPosition(b.shape.Position().Add(delta)) }

// AABB returns the current bounding box of the body's shape.
func (b *Body) AABB() AABB { return b.shape.AABB() }

// ApplyForce accumulates a force for the next integration.
func (b *Body) ApplyForce(force Vector2) {
	b.Force = b.Force.Add(force)
}

// ApplyTorque accumulates a torque for the next integration.
func (b *Body) ApplyTorque(amount float64) {
	b.Torque += amount
}

// ApplyImpulse changes velocity immediately. arm is the vector from the body
// centre to the point where the impulse acts. Disabled bodies ignore it.
func (b *Body) ApplyImpulse(impulse, arm Vector2) {
	if !b.Enabled {
		return
	}
	b.Velocity = b.Velocity.Add(impulse.Mul(b.InverseMass()))
	b.AngularVelocity += arm.Cross(impulse) * b.InverseInertia()
}

// integrate advances velocity from accumulated forces and position from velocity,
// then clears the accumulators.
func (b *Body) integrate(dt float64, gravity Vector2) {
	if !b.Enabled {
		return
	}
	if b.UseGravity {
		b.ApplyForce(gravity.Mul(b.mass))
	}
	b.Velocity = b.Velocity.Add(b.Force.Mul(b.InverseMass() * dt))
	b.AngularVelocity += b.Torque * b.InverseInertia() * dt

	rotation := b.Rotation()
	if !b.FreezeOrient {
		rotation += b.AngularVelocity * dt
	}
	b.shape.SetTransform(b.Position().Add(b.Velocity.Mul(dt)), rotation)

	b.Force = Vector2{}
	b.Torque = 0
}
