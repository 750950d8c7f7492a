// Package config reads the controller and portal tunables from INI files.
//
// Sections:
//
//	[simulation] tick_rate, portal_level
//	[movement]   keys of movement.Config
//	[portal]     keys of portal.Config, plus surface_half_extents = x, y, z
//
// Missing keys keep their default value, malformed values are errors.
package config

import (
	"io"
	"strconv"
	"strings"

	"github.com/akmonengine/hopper/movement"
	"github.com/akmonengine/hopper/portal"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"gopkg.in/ini.v1"
)

type Simulation struct {
	// TickRate is the number of fixed ticks per second
	TickRate float64 `ini:"tick_rate"`
	// PortalLevel allows portal shots on the current level
	PortalLevel bool `ini:"portal_level"`
}

type Settings struct {
	Simulation Simulation
	Movement   movement.Config
	Portal     portal.Config
}

func Default() Settings {
	return Settings{
		Simulation: Simulation{TickRate: 50},
		Movement:   movement.DefaultConfig(),
		Portal:     portal.DefaultConfig(),
	}
}

// Dt is the fixed tick duration
func (s Settings) Dt() float64 {
	return 1 / s.Simulation.TickRate
}

func (s Settings) Validate() error {
	if !(s.Simulation.TickRate > 0) {
		return errors.Errorf("config: tick_rate must be > 0, got %v", s.Simulation.TickRate)
	}
	if err := s.Movement.Validate(); err != nil {
		return errors.Wrap(err, "config: [movement]")
	}
	if err := s.Portal.Validate(); err != nil {
		return errors.Wrap(err, "config: [portal]")
	}
	return nil
}

var loadOptions = ini.LoadOptions{
	SkipUnrecognizableLines: true,
	IgnoreInlineComment:     false,
	AllowShadows:            false,
}

// Load reads an INI file over the defaults
func Load(path string) (Settings, error) {
	file, err := ini.LoadSources(loadOptions, path)
	if err != nil {
		return Settings{}, errors.Wrapf(err, "config: failed to read %s", path)
	}
	return fromFile(file)
}

// Parse reads INI data over the defaults
func Parse(data []byte) (Settings, error) {
	file, err := ini.LoadSources(loadOptions, data)
	if err != nil {
		return Settings{}, errors.Wrap(err, "config: failed to parse data")
	}
	return fromFile(file)
}

func fromFile(file *ini.File) (Settings, error) {
	s := Default()

	if err := file.Section("simulation").StrictMapTo(&s.Simulation); err != nil {
		return Settings{}, errors.Wrap(err, "config: [simulation]")
	}
	if err := file.Section("movement").StrictMapTo(&s.Movement); err != nil {
		return Settings{}, errors.Wrap(err, "config: [movement]")
	}

	section := file.Section("portal")
	if err := section.StrictMapTo(&s.Portal); err != nil {
		return Settings{}, errors.Wrap(err, "config: [portal]")
	}
	if section.HasKey("surface_half_extents") {
		values, err := section.Key("surface_half_extents").StrictFloat64s(",")
		if err != nil {
			return Settings{}, errors.Wrap(err, "config: [portal] surface_half_extents")
		}
		if len(values) != 3 {
			return Settings{}, errors.Errorf("config: [portal] surface_half_extents needs 3 values, got %d", len(values))
		}
		s.Portal.SurfaceHalfExtents = mgl64.Vec3{values[0], values[1], values[2]}
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}

	return s, nil
}

// WriteTo writes the settings as INI, in a form Parse reads back
func (s Settings) WriteTo(w io.Writer) (int64, error) {
	file := ini.Empty()

	sections := []struct {
		name  string
		value interface{}
	}{
		{"simulation", &s.Simulation},
		{"movement", &s.Movement},
		{"portal", &s.Portal},
	}
	for _, sec := range sections {
		if err := file.Section(sec.name).ReflectFrom(sec.value); err != nil {
			return 0, errors.Wrapf(err, "config: [%s]", sec.name)
		}
	}

	file.Section("portal").Key("surface_half_extents").SetValue(formatVec3(s.Portal.SurfaceHalfExtents))

	return file.WriteTo(w)
}

func formatVec3(v mgl64.Vec3) string {
	parts := make([]string, len(v))
	for i, c := range v {
		parts[i] = strconv.FormatFloat(c, 'g', -1, 64)
	}
	return strings.Join(parts, ", ")
}
