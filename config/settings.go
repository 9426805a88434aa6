package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"solarsystem/core"
	"solarsystem/simulation"
)

// DefaultPath is where Load looks when no path is given
const DefaultPath = "settings.json"

// MaxDepth bounds slot tessellation; depth 8 is already ~800k vertices
const MaxDepth = 8

type Settings struct {
	Window     WindowSettings     `json:"window" yaml:"window"`
	Simulation SimulationSettings `json:"simulation" yaml:"simulation"`
	Projection string             `json:"projection" yaml:"projection"`
	Server     ServerSettings     `json:"server" yaml:"server"`
	Log        LogSettings        `json:"log" yaml:"log"`
}

type WindowSettings struct {
	Width  int    `json:"width" yaml:"width"`
	Height int    `json:"height" yaml:"height"`
	Title  string `json:"title" yaml:"title"`
	VSync  bool   `json:"vsync" yaml:"vsync"`
}

type SimulationSettings struct {
	TickRate    int            `json:"tickRate" yaml:"tickRate"`
	SystemScale float32        `json:"systemScale" yaml:"systemScale"`
	Slots       []SlotSettings `json:"slots" yaml:"slots"`
}

type SlotSettings struct {
	Depth int  `json:"depth" yaml:"depth"`
	Flat  bool `json:"flat" yaml:"flat"`
}

type ServerSettings struct {
	Enabled     bool    `json:"enabled" yaml:"enabled"`
	Addr        string  `json:"addr" yaml:"addr"`
	BroadcastHz float64 `json:"broadcastHz" yaml:"broadcastHz"`
}

type LogSettings struct {
	Level string `json:"level" yaml:"level"`
}

// Default returns the built-in settings
func Default() Settings {
	slots := make([]SlotSettings, len(simulation.DefaultSlots))
	for i, s := range simulation.DefaultSlots {
		slots[i] = SlotSettings{Depth: s.Depth, Flat: s.Mode == core.Flat}
	}
	return Settings{
		Window: WindowSettings{
			Width:  1200,
			Height: 800,
			Title:  "Solar System",
			VSync:  true,
		},
		Simulation: SimulationSettings{
			TickRate:    simulation.DefaultTickRate,
			SystemScale: 1,
			Slots:       slots,
		},
		Projection: simulation.Perspective.String(),
		Server: ServerSettings{
			Enabled:     false,
			Addr:        ":8080",
			BroadcastHz: 10,
		},
		Log: LogSettings{Level: "info"},
	}
}

// Load reads settings from path on top of the defaults. A missing file is not an error.
// Files ending in .yaml or .yml are decoded as YAML, anything else as JSON.
func Load(path string) (Settings, error) {
	settings := Default()
	if path == "" {
		path = DefaultPath
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	if isYAML(path) {
		decoder := yaml.NewDecoder(file)
		decoder.KnownFields(true)
		err = decoder.Decode(&settings)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	} else {
		decoder := json.NewDecoder(file)
		decoder.DisallowUnknownFields()
		err = decoder.Decode(&settings)
	}
	if err != nil {
		return Default(), fmt.Errorf("error parsing %s: %w", path, err)
	}

	if err := settings.Validate(); err != nil {
		return Default(), fmt.Errorf("invalid %s: %w", path, err)
	}
	return settings, nil
}

// Save writes settings in the format implied by the path's extension
func Save(path string, s Settings) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(s)
	} else {
		data, err = json.MarshalIndent(s, "", "\t")
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Validate checks every field that would otherwise fail later at start-up
func (s Settings) Validate() error {
	var errs []error
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window: size %dx%d must be positive", s.Window.Width, s.Window.Height))
	}
	if s.Simulation.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("simulation.tickRate: %d must be positive", s.Simulation.TickRate))
	}
	if s.Simulation.SystemScale < 0 {
		errs = append(errs, fmt.Errorf("simulation.systemScale: %v must not be negative", s.Simulation.SystemScale))
	}
	if len(s.Simulation.Slots) != int(simulation.NumBodies) {
		errs = append(errs, fmt.Errorf("simulation.slots: need %d entries, got %d", simulation.NumBodies, len(s.Simulation.Slots)))
	}
	for i, slot := range s.Simulation.Slots {
		if slot.Depth < 0 || slot.Depth > MaxDepth {
			errs = append(errs, fmt.Errorf("simulation.slots[%d].depth: %d outside [0, %d]", i, slot.Depth, MaxDepth))
		}
	}
	if _, err := simulation.ParseProjectionMode(s.Projection); err != nil {
		errs = append(errs, fmt.Errorf("projection: %w", err))
	}
	if s.Server.Enabled && s.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr: required when the server is enabled"))
	}
	if s.Server.BroadcastHz <= 0 {
		errs = append(errs, fmt.Errorf("server.broadcastHz: %v must be positive", s.Server.BroadcastHz))
	}
	if _, err := ParseLevel(s.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	return errors.Join(errs...)
}

// SlotSpecs converts the slot settings for the mesh generator
func (s Settings) SlotSpecs() []core.SlotSpec {
	specs := make([]core.SlotSpec, len(s.Simulation.Slots))
	for i, slot := range s.Simulation.Slots {
		mode := core.Smooth
		if slot.Flat {
			mode = core.Flat
		}
		specs[i] = core.SlotSpec{Depth: slot.Depth, Mode: mode}
	}
	return specs
}

// ProjectionMode returns the parsed projection, defaulting to perspective
func (s Settings) ProjectionMode() simulation.ProjectionMode {
	mode, _ := simulation.ParseProjectionMode(s.Projection)
	return mode
}

// ParseLevel maps debug|info|warn|error onto slog levels
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown level %q", name)
}

// VertexCount returns how many vertices a slot of the given depth uploads
func VertexCount(depth int) int {
	return core.VertexCount(depth)
}

// TotalVertices sums the vertex count over every slot
func (s Settings) TotalVertices() int {
	total := 0
	for _, slot := range s.Simulation.Slots {
		total += VertexCount(slot.Depth)
	}
	return total
}
