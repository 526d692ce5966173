package entity

import (
	"sync"
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/pathrecall/game"
	"github.com/oomph-ac/pathrecall/tracker"
)

// Body is a minimal rigid body moving at a constant velocity. It implements tracker.Body and stands in
// for a physics engine in simulations and tests.
type Body struct {
	// mu protects all the following fields.
	mu sync.Mutex
	// position is the current position of the body.
	position mgl32.Vec3
	// lastPosition is the position of the body before the last tick or placement.
	lastPosition mgl32.Vec3
	// rotation is the current rotation of the body.
	rotation mgl32.Quat
	// lastRotation is the rotation of the body before the last tick or placement.
	lastRotation mgl32.Quat
	// velocity is the linear velocity of the body in units per second.
	velocity mgl32.Vec3
	// kinematic is true if the body ignores its velocity and is only moved through Place.
	kinematic bool
	// faceVelocity makes the body turn to face the horizontal direction it moves in.
	faceVelocity bool
}

// Compile time check to make sure Body implements tracker.Body.
var _ tracker.Body = (*Body)(nil)

// NewBody creates a body at rest with the position and rotation passed. If faceVelocity is true, the body
// yaws towards the direction it moves in on every tick.
func NewBody(position mgl32.Vec3, rotation mgl32.Quat, faceVelocity bool) *Body {
	return &Body{
		position:     position,
		lastPosition: position,
		rotation:     rotation,
		lastRotation: rotation,
		faceVelocity: faceVelocity,
	}
}

// Position returns the position of the body.
func (b *Body) Position() mgl32.Vec3 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.position
}

// LastPosition returns the last position of the body.
func (b *Body) LastPosition() mgl32.Vec3 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastPosition
}

// Rotation returns the rotation of the body.
func (b *Body) Rotation() mgl32.Quat {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rotation
}

// LastRotation returns the rotation that the body was in right before rotation was updated.
func (b *Body) LastRotation() mgl32.Quat {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastRotation
}

// SetVelocity sets the linear velocity of the body.
func (b *Body) SetVelocity(vel mgl32.Vec3) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.velocity = vel
}

// Speed returns the magnitude of the velocity of the body.
func (b *Body) Speed() float32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.velocity.Len()
}

// Kinematic returns true if the body is not moved by its velocity.
func (b *Body) Kinematic() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.kinematic
}

// SetKinematic enables or disables the kinematic override of the body.
func (b *Body) SetKinematic(kinematic bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.kinematic = kinematic
}

// Place moves the body to the position and rotation passed, regardless of its velocity.
func (b *Body) Place(pos mgl32.Vec3, rot mgl32.Quat) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastPosition, b.lastRotation = b.position, b.rotation
	b.position, b.rotation = pos, rot
}

// Tick integrates the velocity of the body over dt. Kinematic bodies stay where they are.
func (b *Body) Tick(dt time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.lastPosition, b.lastRotation = b.position, b.rotation
	if b.kinematic || dt <= 0 {
		return
	}
	b.position = b.position.Add(b.velocity.Mul(float32(dt.Seconds())))

	if b.faceVelocity && (b.velocity.X() != 0 || b.velocity.Z() != 0) {
		yaw := mgl32.RadToDeg(math32.Atan2(b.velocity.X(), b.velocity.Z()))
		b.rotation = game.EulerToQuat(mgl32.Vec3{0, yaw, 0})
	}
}
