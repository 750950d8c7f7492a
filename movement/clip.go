package movement

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// degenerateLength is the magnitude below which a vector has no usable direction
const degenerateLength = 1e-9

// Clip slides velocity along the plane with the given unit normal.
// overbounce 1 removes exactly the inward component, more than 1 bounces.
func Clip(velocity, normal mgl64.Vec3, overbounce float64) mgl64.Vec3 {
	backoff := velocity.Dot(normal) * overbounce

	var out mgl64.Vec3
	for i := 0; i < 3; i++ {
		out[i] = velocity[i] - normal[i]*backoff
	}

	// iterate once to make sure we aren't still moving through the plane
	if adjust := out.Dot(normal); adjust < 0 {
		out = out.Sub(normal.Mul(adjust))
	}

	return out
}

// SafeNormalize returns the unit vector and the length, or zeros for a degenerate vector
func SafeNormalize(v mgl64.Vec3) (mgl64.Vec3, float64) {
	l := v.Len()
	if l < degenerateLength || math.IsNaN(l) || math.IsInf(l, 0) {
		return mgl64.Vec3{}, 0
	}
	return v.Mul(1 / l), l
}

// Project returns the component of v along onto
func Project(v, onto mgl64.Vec3) mgl64.Vec3 {
	lsq := onto.LenSqr()
	if lsq < degenerateLength*degenerateLength {
		return mgl64.Vec3{}
	}
	return onto.Mul(v.Dot(onto) / lsq)
}

// ClampMagnitude caps the length of v, keeping its direction
func ClampMagnitude(v mgl64.Vec3, max float64) mgl64.Vec3 {
	l := v.Len()
	if l <= max || l == 0 {
		return v
	}
	return v.Mul(max / l)
}

// ClampHorizontal caps the XZ speed, leaving the vertical component alone
func ClampHorizontal(v mgl64.Vec3, max float64) mgl64.Vec3 {
	h := math.Hypot(v.X(), v.Z())
	if h <= max || h == 0 {
		return v
	}
	scale := max / h
	return mgl64.Vec3{v.X() * scale, v.Y(), v.Z() * scale}
}
