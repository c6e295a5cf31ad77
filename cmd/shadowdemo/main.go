// Package main is a minimal pipeline demo that drives the scene shadow
// record and renders the resulting configuration.
package main

import (
	"fmt"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/emberfall/caster/internal/config"
	"github.com/emberfall/caster/internal/engine/lighting"
	"github.com/emberfall/caster/internal/engine/material"
	"github.com/emberfall/caster/internal/engine/pipeline"
	"github.com/emberfall/caster/internal/engine/pool"
	"github.com/emberfall/caster/internal/engine/shadow"
	"github.com/emberfall/caster/internal/engine/window"
	"github.com/emberfall/caster/internal/logger"
	"github.com/emberfall/caster/pkg/math"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Caster shadow demo ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	win, err := window.New(window.Config{
		Title:      "Caster - shadow demo",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		logger.Error("failed to create window", zap.Error(err))
		os.Exit(1)
	}
	defer win.Destroy()

	// Shared state the renderer reads every frame.
	records := pool.New(shadow.Schema)
	passes := pool.New(material.PassSchema)
	factory := material.NewGLFactory(passes)

	state := pipeline.NewState()
	state.OnGlobalStateChanged(func() {
		logger.Debug("scheduling shader macro recompilation",
			zap.Bool("receive_shadow", state.ReceiveShadowFlag()))
	})

	settings := shadow.New(records, factory, state)
	defer settings.Destroy()

	if err := cfg.Shadows.Apply(settings); err != nil {
		logger.Error("failed to apply shadow config", zap.Error(err))
		os.Exit(1)
	}
	if err := settings.Activate(); err != nil {
		logger.Error("failed to activate shadows", zap.Error(err))
		os.Exit(1)
	}

	settings.ReceiveBounds.Set(math.Vec3{}, 50)
	sunDir := lighting.SunDirection(cfg.Shadows.SunLongitude, cfg.Shadows.SunLatitude)

	logger.Info("shadow record ready",
		zap.Int32("handle", int32(settings.Handle())),
		zap.Int32("planar_pass", int32(settings.PlanarPass())),
		zap.Int32("instanced_pass", int32(settings.InstancedPass())),
		zap.Bool("receive_shadow", state.ReceiveShadowFlag()),
	)

	h := settings.Handle()
	for !win.PollQuit() {
		settings.UpdateLightMatrix(sunDir)

		// The renderer path: read the record straight from the pool.
		w, hgt := win.Size()
		gl.Viewport(0, 0, w, hgt)

		tint := records.Vec4(h, shadow.FieldColor)
		enabled := records.Scalar(h, shadow.FieldEnable) != 0
		if !enabled {
			tint = math.Vec4{}
		}
		gl.ClearColor(0.2+tint.X*tint.W, 0.2+tint.Y*tint.W, 0.25+tint.Z*tint.W, 1)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		win.Swap()
	}

	logger.Info("demo closed normally")
}
