package portal

import (
	"math"

	"github.com/akmonengine/hopper/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// SnapRight snaps the right axis of aim to the closest of world ±x or ±z,
// so a placed portal stays upright against the architecture.
func SnapRight(aim mgl64.Quat) mgl64.Vec3 {
	right := aim.Rotate(actor.Right)

	if math.Abs(right.X()) >= math.Abs(right.Z()) {
		if right.X() >= 0 {
			return mgl64.Vec3{1, 0, 0}
		}
		return mgl64.Vec3{-1, 0, 0}
	}

	if right.Z() >= 0 {
		return mgl64.Vec3{0, 0, 1}
	}
	return mgl64.Vec3{0, 0, -1}
}

// LookRotation builds the rotation whose forward axis is forward and whose up
// axis is as close to up as possible.
func LookRotation(forward, up mgl64.Vec3) mgl64.Quat {
	f := forward.Normalize()

	r := up.Cross(f)
	if r.Len() < 1e-9 {
		// up is parallel to forward: pick any perpendicular reference
		ref := actor.Up
		if math.Abs(f.Y()) > 0.999 {
			ref = actor.Forward
		}
		r = ref.Cross(f)
	}
	r = r.Normalize()
	u := f.Cross(r)

	return mgl64.Mat4ToQuat(mgl64.Mat3FromCols(r, u, f).Mat4()).Normalize()
}

// Orientation is the pose of a portal fired onto a surface with normal
// normal, while aiming with aim.
func Orientation(aim mgl64.Quat, normal mgl64.Vec3) mgl64.Quat {
	right := SnapRight(aim)
	forward := normal.Mul(-1)
	up := right.Cross(forward).Mul(-1)

	return LookRotation(forward, up)
}
