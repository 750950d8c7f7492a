package movement

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// State is the controller's simulated state. It is a value: Tick returns the
// next state and never keeps a reference to the previous one.
type State struct {
	Position mgl64.Vec3
	// Rotation is the facing used to turn input axes into a world wish direction
	Rotation mgl64.Quat
	Velocity mgl64.Vec3
	Grounded bool
	Surfing  bool
}

// NewState spawns a controller at position facing rotation
func NewState(position mgl64.Vec3, rotation mgl64.Quat) State {
	return State{Position: position, Rotation: rotation}
}

// Speed is the velocity magnitude
func (s State) Speed() float64 {
	return s.Velocity.Len()
}

// HorizontalSpeed ignores the vertical component
func (s State) HorizontalSpeed() float64 {
	return math.Hypot(s.Velocity.X(), s.Velocity.Z())
}

// Input is the per-tick intent. Axes are clamped to [-1, 1].
type Input struct {
	Forward float64
	Right   float64
	Jump    bool
}

func clampAxis(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return mgl64.Clamp(v, -1, 1)
}

// orientation falls back to identity for an unset or degenerate quaternion
func orientation(q mgl64.Quat) mgl64.Quat {
	if l := q.Len(); l < 1e-9 || math.IsNaN(l) {
		return mgl64.QuatIdent()
	}
	return q.Normalize()
}

func finite(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
