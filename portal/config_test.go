package portal

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestConfig_Validate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no hops", func(c *Config) { c.MaxHops = 0 }},
		{"negative offset", func(c *Config) { c.ExitOffset = -0.1 }},
		{"NaN offset", func(c *Config) { c.ExitOffset = math.NaN() }},
		{"zero distance", func(c *Config) { c.DefaultDistance = 0 }},
		{"infinite distance", func(c *Config) { c.DefaultDistance = math.Inf(1) }},
		{"flat surface", func(c *Config) { c.SurfaceHalfExtents = mgl64.Vec3{1, 1.5, 0} }},
		{"no surface layer", func(c *Config) { c.SurfaceLayer = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("Validate() should fail")
			}
		})
	}
}

func TestStatus_String(t *testing.T) {
	if StatusMaxHopsExceeded.String() != "max hops exceeded" {
		t.Errorf("String() = %q", StatusMaxHopsExceeded.String())
	}
	if Status(200).String() != "unknown" {
		t.Errorf("out of range status should be unknown")
	}
}
