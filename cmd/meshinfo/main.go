// Command meshinfo prints the icosphere slots a settings file would generate.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-gl/mathgl/mgl32"

	"solarsystem/config"
	"solarsystem/core"
	"solarsystem/simulation"
)

func main() {
	settingsPath := flag.String("config", config.DefaultPath, "Settings file")
	depth := flag.Int("depth", -1, "Describe a single mesh of this depth instead of the configured slots")
	flat := flag.Bool("flat", false, "Use flat normals with -depth")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if *depth >= 0 {
		mode := core.Smooth
		if *flat {
			mode = core.Flat
		}
		mesh, err := core.Generate(*depth, mode)
		if err != nil {
			logger.Error("generate", "depth", *depth, "err", err)
			os.Exit(1)
		}
		describe("mesh", mesh)
		return
	}

	settings, err := config.Load(*settingsPath)
	if err != nil {
		logger.Error("failed to load settings", "path", *settingsPath, "err", err)
		os.Exit(1)
	}
	meshes, err := core.GenerateSlots(settings.SlotSpecs())
	if err != nil {
		logger.Error("generate slots", "err", err)
		os.Exit(1)
	}

	fmt.Println("=== Mesh Slots ===")
	total := 0
	for i, mesh := range meshes {
		name := fmt.Sprintf("slot %d", i)
		if i < int(simulation.NumBodies) {
			name = simulation.Body(i).String()
		}
		describe(name, mesh)
		total += mesh.VertexCount()
	}
	fmt.Printf("\nTotal: %d vertices, %d bytes of vertex data\n", total, total*(4+3)*4)
}

func describe(name string, mesh *core.Mesh) {
	minLen, maxLen := float32(2), float32(0)
	var maxNormalErr float32
	for _, v := range mesh.Vertices {
		l := v.Position.Vec3().Len()
		minLen = min(minLen, l)
		maxLen = max(maxLen, l)
		if err := normalError(v); err > maxNormalErr {
			maxNormalErr = err
		}
	}

	fmt.Printf("%-12s depth=%d mode=%-6s vertices=%-7d triangles=%-7d radius=[%.6f, %.6f] unit-normal-err=%.2e\n",
		name, mesh.Depth, mesh.Mode, mesh.VertexCount(), mesh.TriangleCount(), minLen, maxLen, maxNormalErr)
}

func normalError(v core.Vertex) float32 {
	l := v.Normal.Len()
	if l == 0 {
		return 0
	}
	return mgl32.Abs(l - 1)
}
