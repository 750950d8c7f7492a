package actor

import "github.com/go-gl/mathgl/mgl64"

var (
	Right   = mgl64.Vec3{1, 0, 0}
	Up      = mgl64.Vec3{0, 1, 0}
	Forward = mgl64.Vec3{0, 0, 1}
)

// Transform represents a position and orientation in 3D space.
// Local axes: +X right, +Y up, +Z forward.
type Transform struct {
	Position        mgl64.Vec3
	Rotation        mgl64.Quat
	InverseRotation mgl64.Quat
}

// NewTransform creates a transform at position with the given rotation
func NewTransform(position mgl64.Vec3, rotation mgl64.Quat) Transform {
	rotation = rotation.Normalize()

	return Transform{
		Position:        position,
		Rotation:        rotation,
		InverseRotation: rotation.Inverse(),
	}
}

// IdentityTransform creates a transform at the origin with no rotation
func IdentityTransform() Transform {
	return NewTransform(mgl64.Vec3{0, 0, 0}, mgl64.QuatIdent())
}

// TransformPoint maps a local point to world space
func (t Transform) TransformPoint(local mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Rotate(local).Add(t.Position)
}

// InverseTransformPoint maps a world point to local space
func (t Transform) InverseTransformPoint(world mgl64.Vec3) mgl64.Vec3 {
	return t.InverseRotation.Rotate(world.Sub(t.Position))
}

// TransformDirection rotates a local direction to world space, ignoring translation
func (t Transform) TransformDirection(local mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Rotate(local)
}

// InverseTransformDirection rotates a world direction to local space
func (t Transform) InverseTransformDirection(world mgl64.Vec3) mgl64.Vec3 {
	return t.InverseRotation.Rotate(world)
}

func (t Transform) Forward() mgl64.Vec3 {
	return t.Rotation.Rotate(Forward)
}

func (t Transform) Right() mgl64.Vec3 {
	return t.Rotation.Rotate(Right)
}

func (t Transform) Up() mgl64.Vec3 {
	return t.Rotation.Rotate(Up)
}
