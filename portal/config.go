package portal

import (
	"math"

	"github.com/akmonengine/hopper/actor"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// Config holds the redirector tunables
type Config struct {
	// MaxHops bounds the number of redirections of a single shot
	MaxHops int `ini:"max_hops"`
	// ExitOffset moves the hit point along the ray before teleporting it, so
	// the new origin never starts on the entry surface
	ExitOffset float64 `ini:"exit_offset"`
	// DefaultDistance is used by shots which do not set a distance
	DefaultDistance float64 `ini:"default_distance"`

	SurfaceHalfExtents mgl64.Vec3      `ini:"-"`
	SurfaceLayer       actor.Layer     `ini:"surface_layer"`
	Mask               actor.LayerMask `ini:"mask"`
}

func DefaultConfig() Config {
	return Config{
		MaxHops:            16,
		ExitOffset:         0.1,
		DefaultDistance:    250,
		SurfaceHalfExtents: mgl64.Vec3{1, 1.5, 0.01},
		SurfaceLayer:       actor.LayerPortal,
		Mask:               actor.AllLayers.Without(actor.LayerPlayer).Without(actor.LayerTrigger),
	}
}

func (c Config) Validate() error {
	if c.MaxHops < 1 {
		return errors.Errorf("portal: max_hops must be >= 1, got %d", c.MaxHops)
	}
	if math.IsNaN(c.ExitOffset) || math.IsInf(c.ExitOffset, 0) || c.ExitOffset < 0 {
		return errors.Errorf("portal: exit_offset must be finite and >= 0, got %v", c.ExitOffset)
	}
	if !(c.DefaultDistance > 0) || math.IsInf(c.DefaultDistance, 0) {
		return errors.Errorf("portal: default_distance must be finite and > 0, got %v", c.DefaultDistance)
	}
	for i := 0; i < 3; i++ {
		if !(c.SurfaceHalfExtents[i] > 0) {
			return errors.Errorf("portal: surface half extents must be positive, got %v", c.SurfaceHalfExtents)
		}
	}
	if c.SurfaceLayer == 0 {
		return errors.New("portal: surface_layer must name a layer")
	}

	return nil
}
