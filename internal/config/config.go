// Package config handles pipeline configuration loading and management.
package config

import (
	"github.com/emberfall/caster/internal/engine/shadow"
	"github.com/emberfall/caster/internal/logger"
	"github.com/emberfall/caster/pkg/color"
	"github.com/emberfall/caster/pkg/math"
)

// Config holds all pipeline settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Shadows  ShadowsConfig  `yaml:"shadows"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// ShadowsConfig holds startup values for the scene shadow record.
type ShadowsConfig struct {
	Enabled   bool       `yaml:"enabled"`
	Type      string     `yaml:"type"` // planar | shadow-map
	Distance  float32    `yaml:"distance"`
	Color     [4]uint8   `yaml:"color"`
	Normal    [3]float32 `yaml:"normal"`
	MapSize   int        `yaml:"map_size"`
	PCF       string     `yaml:"pcf"` // hard | x5 | x9 | x25
	Bias      float32    `yaml:"bias"`
	AutoAdapt bool       `yaml:"auto_adapt"`

	// Sun angles driving the light direction in the demo.
	SunLongitude float32 `yaml:"sun_longitude"`
	SunLatitude  float32 `yaml:"sun_latitude"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Shadows: ShadowsConfig{
			Enabled:      true,
			Type:         "planar",
			Distance:     0,
			Color:        [4]uint8{0, 0, 0, 76},
			Normal:       [3]float32{0, 1, 0},
			MapSize:      512,
			PCF:          "hard",
			Bias:         0.00005,
			AutoAdapt:    true,
			SunLongitude: 135,
			SunLatitude:  60,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Apply seeds a shadow record from the config. This is the boundary where
// enum names are validated; unknown names fall back to defaults with a
// warning. Type and enabled are applied last so activation sees the final
// values.
func (c ShadowsConfig) Apply(s *shadow.Settings) error {
	s.SetNormal(math.Vec3{X: c.Normal[0], Y: c.Normal[1], Z: c.Normal[2]})
	s.SetDistance(c.Distance)
	s.SetColor(color.RGBA(c.Color[0], c.Color[1], c.Color[2], c.Color[3]))
	s.SetSize(math.Vec2{X: float32(c.MapSize), Y: float32(c.MapSize)})
	s.SetPCF(c.pcfType())
	s.SetBias(c.Bias)
	s.SetAutoAdapt(c.AutoAdapt)

	if err := s.SetType(c.shadowType()); err != nil {
		return err
	}
	return s.SetEnabled(c.Enabled)
}

func (c ShadowsConfig) shadowType() shadow.Type {
	switch c.Type {
	case "planar", "":
		return shadow.TypePlanar
	case "shadow-map":
		return shadow.TypeShadowMap
	default:
		logger.Sugar.Warnf("unknown shadow type %q, using planar", c.Type)
		return shadow.TypePlanar
	}
}

func (c ShadowsConfig) pcfType() shadow.PCFType {
	switch c.PCF {
	case "hard", "":
		return shadow.PCFHard
	case "x5":
		return shadow.PCFFilterX5
	case "x9":
		return shadow.PCFFilterX9
	case "x25":
		return shadow.PCFFilterX25
	default:
		logger.Sugar.Warnf("unknown pcf kernel %q, using hard", c.PCF)
		return shadow.PCFHard
	}
}
