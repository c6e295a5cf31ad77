package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/emberfall/caster/internal/engine/material"
	"github.com/emberfall/caster/internal/engine/pool"
	"github.com/emberfall/caster/internal/engine/shadow"
	"github.com/emberfall/caster/pkg/color"
	"github.com/emberfall/caster/pkg/math"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	if !cfg.Shadows.Enabled {
		t.Error("expected shadows enabled by default")
	}
	if cfg.Shadows.Type != "planar" {
		t.Errorf("expected planar shadows, got %s", cfg.Shadows.Type)
	}
	if cfg.Shadows.MapSize != 512 {
		t.Errorf("expected map size 512, got %d", cfg.Shadows.MapSize)
	}
	if cfg.Shadows.Normal != [3]float32{0, 1, 0} {
		t.Errorf("expected +Y plane normal, got %v", cfg.Shadows.Normal)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "config_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	path := filepath.Join(tempDir, "caster.yaml")
	content := []byte(`
shadows:
  enabled: false
  type: shadow-map
  map_size: 1024
  pcf: x9
logging:
  level: debug
`)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}

	if cfg.Shadows.Enabled {
		t.Error("file should have disabled shadows")
	}
	if cfg.Shadows.Type != "shadow-map" {
		t.Errorf("type: got %s, want shadow-map", cfg.Shadows.Type)
	}
	if cfg.Shadows.MapSize != 1024 {
		t.Errorf("map size: got %d, want 1024", cfg.Shadows.MapSize)
	}
	if cfg.Shadows.PCF != "x9" {
		t.Errorf("pcf: got %s, want x9", cfg.Shadows.PCF)
	}
	// Unmentioned values keep their defaults.
	if cfg.Graphics.Width != 1280 {
		t.Errorf("width should keep default, got %d", cfg.Graphics.Width)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level: got %s, want debug", cfg.Logging.Level)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "config_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	cfg := Default()
	cfg.Shadows.MapSize = 2048
	path := filepath.Join(tempDir, "sub", "caster.yaml")
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}
	if loaded.Shadows.MapSize != 2048 {
		t.Errorf("map size after round trip: got %d, want 2048", loaded.Shadows.MapSize)
	}
}

// nopFactory satisfies shadow.MaterialFactory without a GL context.
type nopFactory struct {
	next pool.Handle
}

func (f *nopFactory) Compile(effect string, defines material.Defines) (*material.Material, error) {
	f.next++
	return material.New(effect, defines, []material.Pass{{Handle: f.next}}, nil), nil
}

// nopBridge satisfies shadow.PipelineBridge.
type nopBridge struct {
	flag bool
}

func (b *nopBridge) ReceiveShadowFlag() bool     { return b.flag }
func (b *nopBridge) SetReceiveShadowFlag(v bool) { b.flag = v }
func (b *nopBridge) NotifyGlobalStateChanged()   {}

func TestApply(t *testing.T) {
	records := pool.New(shadow.Schema)
	bridge := &nopBridge{}
	s := shadow.New(records, &nopFactory{}, bridge)

	cfg := Default().Shadows
	cfg.Enabled = true
	cfg.Type = "shadow-map"
	cfg.MapSize = 1024
	cfg.PCF = "x25"
	cfg.Color = [4]uint8{10, 10, 10, 128}

	if err := cfg.Apply(s); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if !s.Enabled() {
		t.Error("settings should be enabled")
	}
	if s.ShadowType() != shadow.TypeShadowMap {
		t.Errorf("type: got %d, want shadow-map", s.ShadowType())
	}
	if s.Size() != (math.Vec2{X: 1024, Y: 1024}) {
		t.Errorf("size: got %v, want 1024x1024", s.Size())
	}
	if s.PCF() != shadow.PCFFilterX25 {
		t.Errorf("pcf: got %d, want x25", s.PCF())
	}
	if s.Color() != color.RGBA(10, 10, 10, 128) {
		t.Errorf("color: got %v", s.Color())
	}
	if !bridge.flag {
		t.Error("enabled shadow-map shadows should raise the pipeline flag")
	}
}

func TestApplyUnknownNamesFallBack(t *testing.T) {
	records := pool.New(shadow.Schema)
	s := shadow.New(records, &nopFactory{}, &nopBridge{})

	cfg := Default().Shadows
	cfg.Type = "raytraced"
	cfg.PCF = "x999"

	if err := cfg.Apply(s); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if s.ShadowType() != shadow.TypePlanar {
		t.Errorf("unknown type should fall back to planar, got %d", s.ShadowType())
	}
	if s.PCF() != shadow.PCFHard {
		t.Errorf("unknown pcf should fall back to hard, got %d", s.PCF())
	}
}
