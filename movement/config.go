package movement

import (
	"math"

	"github.com/akmonengine/hopper/actor"
	"github.com/pkg/errors"
)

// Config holds the controller tunables. Speeds are in units/s, accelerations
// are the dimensionless Source-style factors.
type Config struct {
	MoveSpeed       float64 `ini:"move_speed"`
	MaxVelocity     float64 `ini:"max_velocity"`
	Gravity         float64 `ini:"gravity"`
	JumpPower       float64 `ini:"jump_power"`
	Acceleration    float64 `ini:"acceleration"`
	AirAcceleration float64 `ini:"air_acceleration"`
	StopSpeed       float64 `ini:"stop_speed"`
	Friction        float64 `ini:"friction"`
	AirCap          float64 `ini:"air_cap"`
	SurfaceFriction float64 `ini:"surface_friction"`

	// GroundCastDistance is how far below the volume the support cast looks
	GroundCastDistance float64 `ini:"ground_cast_distance"`
	// GroundNormalY separates ground (>=) from surf (<) surfaces
	GroundNormalY float64 `ini:"ground_normal_y"`
	// SurfNudge pushes the volume off a surf surface before clipping
	SurfNudge float64 `ini:"surf_nudge"`
	// NonJumpVelocity: rising faster than this ignores ground candidates
	NonJumpVelocity float64 `ini:"non_jump_velocity"`

	PlayerLayer   actor.Layer     `ini:"player_layer"`
	CollisionMask actor.LayerMask `ini:"collision_mask"`

	// LegacyGroundClamp clamps grounded speed to MaxVelocity instead of MoveSpeed
	LegacyGroundClamp bool `ini:"legacy_ground_clamp"`
}

func DefaultConfig() Config {
	return Config{
		MoveSpeed:           7,
		MaxVelocity:         35,
		Gravity:             8,
		JumpPower:           5,
		Acceleration:        1,
		AirAcceleration:     1.5,
		StopSpeed:           8,
		Friction:            0.4,
		AirCap:              3,
		SurfaceFriction:     1,
		GroundCastDistance: 0.05,
		GroundNormalY:       0.7,
		SurfNudge:           0.02,
		NonJumpVelocity:     2.5,
		PlayerLayer:         actor.LayerPlayer,
		CollisionMask:       actor.AllLayers.Without(actor.LayerPortal).Without(actor.LayerTrigger),
	}
}

// Validate rejects values that would break the finite-velocity invariant
func (c Config) Validate() error {
	fields := []struct {
		name  string
		value float64
		min   float64
	}{
		{"move_speed", c.MoveSpeed, 0},
		{"max_velocity", c.MaxVelocity, 0},
		{"gravity", c.Gravity, 0},
		{"jump_power", c.JumpPower, 0},
		{"acceleration", c.Acceleration, 0},
		{"air_acceleration", c.AirAcceleration, 0},
		{"stop_speed", c.StopSpeed, 0},
		{"friction", c.Friction, 0},
		{"air_cap", c.AirCap, 0},
		{"surface_friction", c.SurfaceFriction, 0},
		{"ground_cast_distance", c.GroundCastDistance, 0},
		{"surf_nudge", c.SurfNudge, 0},
		{"non_jump_velocity", c.NonJumpVelocity, 0},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return errors.Errorf("movement: %s must be finite, got %v", f.name, f.value)
		}
		if f.value < f.min {
			return errors.Errorf("movement: %s must be >= %v, got %v", f.name, f.min, f.value)
		}
	}

	if c.MaxVelocity == 0 {
		return errors.New("movement: max_velocity must be > 0")
	}
	if c.GroundCastDistance == 0 {
		return errors.New("movement: ground_cast_distance must be > 0")
	}
	if c.GroundNormalY <= 0 || c.GroundNormalY > 1 {
		return errors.Errorf("movement: ground_normal_y must be in (0, 1], got %v", c.GroundNormalY)
	}
	if c.PlayerLayer == 0 {
		return errors.New("movement: player_layer must name a layer")
	}

	return nil
}
