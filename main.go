package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"solarsystem/config"
	"solarsystem/rendering"
	"solarsystem/rendering/opengl"
	"solarsystem/server"
	"solarsystem/simulation"
)

func main() {
	runtime.LockOSThread()

	var (
		settingsPath = flag.String("config", config.DefaultPath, "Settings file")
		width        = flag.Int("width", 0, "Window width (overrides settings)")
		height       = flag.Int("height", 0, "Window height (overrides settings)")
		addr         = flag.String("addr", "", "Telemetry listen address; enables the server")
		projection   = flag.String("projection", "", "perspective or orthographic (overrides settings)")
	)
	flag.Parse()

	settings, err := config.Load(*settingsPath)
	// a bad level falls back to info here and is reported by Validate below
	level, _ := config.ParseLevel(settings.Log.Level)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	if err != nil {
		logger.Error("failed to load settings", "path", *settingsPath, "err", err)
		os.Exit(1)
	}

	if *width > 0 {
		settings.Window.Width = *width
	}
	if *height > 0 {
		settings.Window.Height = *height
	}
	if *addr != "" {
		settings.Server.Enabled = true
		settings.Server.Addr = *addr
	}
	if *projection != "" {
		settings.Projection = *projection
	}
	if err := settings.Validate(); err != nil {
		logger.Error("invalid settings", "err", err)
		os.Exit(1)
	}

	if err := run(settings, logger); err != nil {
		logger.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(settings config.Settings, logger *slog.Logger) error {
	fmt.Println("=== Solar System ===")
	fmt.Printf("Window: %dx%d, projection: %s\n", settings.Window.Width, settings.Window.Height, settings.ProjectionMode())
	fmt.Printf("Mesh vertices: %d across %d slots\n", settings.TotalVertices(), len(settings.Simulation.Slots))

	scene, err := simulation.NewSceneState(settings.SlotSpecs(), simulation.Options{
		Width:       settings.Window.Width,
		Height:      settings.Window.Height,
		Projection:  settings.ProjectionMode(),
		SystemScale: settings.Simulation.SystemScale,
	})
	if err != nil {
		return err
	}

	renderer, err := opengl.NewSolarRenderer(opengl.Options{
		Width:  settings.Window.Width,
		Height: settings.Window.Height,
		Title:  settings.Window.Title,
		VSync:  settings.Window.VSync,
	}, logger)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	defer renderer.Terminate()

	if err := renderer.UploadMeshes(scene.Meshes[:]); err != nil {
		return fmt.Errorf("upload meshes: %w", err)
	}
	// the framebuffer can differ from the window size on high-DPI displays
	scene.Resize(renderer.FramebufferSize())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics := server.NewMetrics()
	hub := server.NewHub(server.Options{
		BroadcastHz: settings.Server.BroadcastHz,
		Logger:      logger,
		Metrics:     metrics,
	})
	if settings.Server.Enabled {
		go hub.Run(ctx)
		go func() {
			logger.Info("telemetry server listening", "addr", settings.Server.Addr)
			if err := server.Start(ctx, settings.Server.Addr, hub.Handler()); err != nil {
				logger.Error("telemetry server stopped", "err", err)
			}
		}()
	}

	handle := func(cmd simulation.Command) {
		metrics.RecordCommand(cmd)
		logger.Debug("camera command", "command", cmd)
		if scene.Handle(cmd) {
			renderer.Close()
		}
	}
	renderer.SetCommandHandler(handle)
	renderer.SetResizeHandler(scene.Resize)
	renderer.SetPickHandler(func(x, y float64) {
		body, ok := scene.Pick(x, y)
		if !ok {
			return
		}
		center, radius := simulation.Bounds(scene.System.Transform(body))
		logger.Info("selected body", "body", body, "angle", scene.System.Angle(body), "center", center, "radius", radius)
		fmt.Printf("Selected %s at (%.1f, %.1f, %.1f)\n", body, center[0], center[1], center[2])
	})

	fmt.Println("\nControls:")
	for _, line := range opengl.ControlsHelp() {
		fmt.Println(line)
	}
	fmt.Println("\nStarting animation...")

	clock := simulation.NewClock(settings.Simulation.TickRate)
	last := time.Now()
	var dropped uint64
	var fps rendering.FPSCounter

	for !renderer.ShouldClose() {
		now := time.Now()
		ticks := clock.Advance(now.Sub(last))
		last = now
		for i := 0; i < ticks; i++ {
			scene.Tick()
		}
		metrics.RecordTicks(ticks)
		if clock.Dropped != dropped {
			metrics.RecordDroppedTicks(int(clock.Dropped - dropped))
			logger.Debug("animation fell behind", "dropped", clock.Dropped-dropped)
			dropped = clock.Dropped
		}

	drain:
		for {
			select {
			case cmd := <-hub.Commands():
				handle(cmd)
			default:
				break drain
			}
		}

		if settings.Server.Enabled && ticks > 0 {
			hub.Publish(scene.Snapshot())
		}

		if scene.NeedsRedraw() {
			start := time.Now()
			rendering.DrawFrame(renderer, scene)
			metrics.RecordFrame(time.Since(start))
			if fps.Frame(time.Now()) {
				renderer.SetStatus(rendering.StatusLine(fps.FPS, scene))
			}
		}

		renderer.WaitEvents(clock.Step.Seconds())
	}

	fmt.Println("\nShutting down...")
	logger.Info("stopped", "ticks", scene.Ticks())
	return nil
}
