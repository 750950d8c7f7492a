package movement

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Accelerate is the ground acceleration: speed along wishDir grows toward wishSpeed
func Accelerate(velocity, wishDir mgl64.Vec3, wishSpeed, accel, dt, surfaceFriction float64) mgl64.Vec3 {
	currentSpeed := velocity.Dot(wishDir)
	addSpeed := wishSpeed - currentSpeed
	if addSpeed <= 0 {
		return velocity
	}

	accelSpeed := math.Min(accel*dt*wishSpeed*surfaceFriction, addSpeed)
	return velocity.Add(wishDir.Mul(accelSpeed))
}

// AirAccelerate only lets the speed along wishDir reach airCap, which is what
// makes strafing in the air gain speed without direct control.
func AirAccelerate(velocity, wishDir mgl64.Vec3, wishSpeed, accel, airCap, dt float64) mgl64.Vec3 {
	wishSpd := math.Min(wishSpeed, airCap)
	currentSpeed := velocity.Dot(wishDir)
	addSpeed := wishSpd - currentSpeed
	if addSpeed <= 0 {
		return velocity
	}

	accelSpeed := math.Min(addSpeed, accel*wishSpeed*dt)
	return velocity.Add(wishDir.Mul(accelSpeed))
}

// ApplyFriction scales velocity down, using stopSpeed as the floor of the
// control speed so slow movement still comes to a halt.
func ApplyFriction(velocity mgl64.Vec3, stopSpeed, friction, dt float64) mgl64.Vec3 {
	speed := velocity.Len()
	if speed == 0 || math.IsNaN(speed) {
		return velocity
	}

	control := math.Max(speed, stopSpeed)
	drop := control * friction * dt
	newSpeed := math.Max(speed-drop, 0)

	if newSpeed == speed {
		return velocity
	}
	return velocity.Mul(newSpeed / speed)
}

// wish turns input axes into a world direction and a speed capped to moveSpeed
func wish(input Input, rotation mgl64.Quat, moveSpeed float64) (mgl64.Vec3, float64) {
	local := mgl64.Vec3{
		clampAxis(input.Right) * moveSpeed,
		0,
		clampAxis(input.Forward) * moveSpeed,
	}
	local = ClampMagnitude(local, moveSpeed)

	return SafeNormalize(rotation.Rotate(local))
}
