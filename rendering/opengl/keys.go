package opengl

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"solarsystem/simulation"
)

var keyCommands = map[glfw.Key]simulation.Command{
	glfw.KeyUp:     simulation.RotateUp,
	glfw.KeyDown:   simulation.RotateDown,
	glfw.KeyLeft:   simulation.RotateLeft,
	glfw.KeyRight:  simulation.RotateRight,
	glfw.KeyW:      simulation.TranslateForward,
	glfw.KeyS:      simulation.TranslateBack,
	glfw.KeyA:      simulation.TranslateLeft,
	glfw.KeyD:      simulation.TranslateRight,
	glfw.KeyO:      simulation.TranslateUp,
	glfw.KeyL:      simulation.TranslateDown,
	glfw.KeyR:      simulation.Reset,
	glfw.KeyQ:      simulation.Quit,
	glfw.KeyEscape: simulation.Quit,
}

// onKey turns presses and auto-repeats into navigation commands
func (r *SolarRenderer) onKey(key glfw.Key, action glfw.Action) {
	if action == glfw.Release {
		return
	}
	cmd, ok := keyCommands[key]
	if !ok {
		return
	}
	if cmd == simulation.Quit {
		r.Close()
	}
	if r.onCommand != nil {
		r.onCommand(cmd)
	}
}

// ControlsHelp describes the key map, one line per binding
func ControlsHelp() []string {
	return []string{
		"  Arrows: Rotate camera (up/down/left/right)",
		"  W/S: Move forward/back",
		"  A/D: Move left/right",
		"  O/L: Move up/down",
		"  R: Reset view",
		"  Left click: Identify a body",
		"  Q/ESC: Exit",
	}
}
