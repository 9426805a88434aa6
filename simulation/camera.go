package simulation

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Command is one discrete navigation input
type Command int

const (
	CommandNone Command = iota
	RotateUp
	RotateDown
	RotateLeft
	RotateRight
	TranslateForward
	TranslateBack
	TranslateLeft
	TranslateRight
	TranslateUp
	TranslateDown
	Reset
	Quit
	numCommands
)

var commandNames = [numCommands]string{
	"none",
	"rotate_up", "rotate_down", "rotate_left", "rotate_right",
	"translate_forward", "translate_back", "translate_left", "translate_right",
	"translate_up", "translate_down",
	"reset", "quit",
}

func (c Command) String() string {
	if c >= 0 && c < numCommands {
		return commandNames[c]
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// ParseCommand maps a command name such as "rotate_up" back to its value
func ParseCommand(name string) (Command, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range commandNames {
		if n == name && Command(i) != CommandNone {
			return Command(i), nil
		}
	}
	return CommandNone, fmt.Errorf("unknown camera command %q", name)
}

func (c Command) MarshalText() ([]byte, error) {
	if c <= CommandNone || c >= numCommands {
		return nil, fmt.Errorf("cannot marshal %v", c)
	}
	return []byte(c.String()), nil
}

func (c *Command) UnmarshalText(text []byte) error {
	cmd, err := ParseCommand(string(text))
	if err != nil {
		return err
	}
	*c = cmd
	return nil
}

const (
	// InitialTilt is the starting downward pitch of the camera in degrees
	InitialTilt   = float32(30)
	RotateStep    = float32(1)
	TranslateStep = float32(1.5)
)

// lightReference is transformed by the camera orientation to place the sun's light
var lightReference = mgl32.Vec4{1, 1, 1, 1}

// InitialView is the view matrix the camera starts from and resets to
func InitialView() mgl32.Mat4 {
	return RotateX(InitialTilt).Mul4(mgl32.Translate3D(0, -80, -160))
}

// Camera is the accumulated navigation state. Altitude and azimuth only feed the light direction.
type Camera struct {
	View     mgl32.Mat4
	Altitude float32
	Azimuth  float32
}

// NewCamera returns the camera in its reset state
func NewCamera() Camera {
	return Camera{View: InitialView(), Altitude: -InitialTilt, Azimuth: 0}
}

// ReduceAngle folds an angle that drifted past ±360 back by one turn
func ReduceAngle(angle float32) float32 {
	if angle > 360 {
		return angle - 360
	} else if angle < -360 {
		return angle + 360
	}
	return angle
}

// Apply returns the camera after cmd. Every increment is left-multiplied, so translations move in world space.
func (c Camera) Apply(cmd Command) Camera {
	switch cmd {
	case RotateUp:
		c.View = RotateX(-RotateStep).Mul4(c.View)
		c.Altitude = ReduceAngle(c.Altitude + RotateStep)
	case RotateDown:
		c.View = RotateX(RotateStep).Mul4(c.View)
		c.Altitude = ReduceAngle(c.Altitude - RotateStep)
	case RotateLeft:
		c.View = RotateY(-RotateStep).Mul4(c.View)
		c.Azimuth = ReduceAngle(c.Azimuth + RotateStep)
	case RotateRight:
		c.View = RotateY(RotateStep).Mul4(c.View)
		c.Azimuth = ReduceAngle(c.Azimuth - RotateStep)
	case TranslateForward:
		c.View = mgl32.Translate3D(0, 0, TranslateStep).Mul4(c.View)
	case TranslateBack:
		c.View = mgl32.Translate3D(0, 0, -TranslateStep).Mul4(c.View)
	case TranslateLeft:
		c.View = mgl32.Translate3D(TranslateStep, 0, 0).Mul4(c.View)
	case TranslateRight:
		c.View = mgl32.Translate3D(-TranslateStep, 0, 0).Mul4(c.View)
	case TranslateUp:
		c.View = mgl32.Translate3D(0, -TranslateStep, 0).Mul4(c.View)
	case TranslateDown:
		c.View = mgl32.Translate3D(0, TranslateStep, 0).Mul4(c.View)
	case Reset:
		c = NewCamera()
	}
	return c
}

// LightPosition derives the sun's directional light from the camera orientation.
// It follows the accumulated view, not the true world-space eye position.
func (c Camera) LightPosition() mgl32.Vec4 {
	d := RotateY(c.Azimuth).Mul4(RotateX(c.Altitude)).Mul4(c.View).Mul4x1(lightReference)
	return mgl32.Vec4{-d[0], -d[1], -d[2], 0}
}
