package simulation

import (
	"encoding/json"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestReduceAngle(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{0, 0},
		{360, 360},
		{361, 1},
		{-360, -360},
		{-361, -1},
		{-30, -30},
	}
	for _, tc := range tests {
		if got := ReduceAngle(tc.in); got != tc.want {
			t.Errorf("ReduceAngle(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestCameraApply(t *testing.T) {
	start := NewCamera()
	tests := []struct {
		cmd      Command
		delta    mgl32.Mat4
		altitude float32
		azimuth  float32
	}{
		{RotateUp, RotateX(-1), -29, 0},
		{RotateDown, RotateX(1), -31, 0},
		{RotateLeft, RotateY(-1), -30, 1},
		{RotateRight, RotateY(1), -30, -1},
		{TranslateForward, mgl32.Translate3D(0, 0, 1.5), -30, 0},
		{TranslateBack, mgl32.Translate3D(0, 0, -1.5), -30, 0},
		{TranslateLeft, mgl32.Translate3D(1.5, 0, 0), -30, 0},
		{TranslateRight, mgl32.Translate3D(-1.5, 0, 0), -30, 0},
		{TranslateUp, mgl32.Translate3D(0, -1.5, 0), -30, 0},
		{TranslateDown, mgl32.Translate3D(0, 1.5, 0), -30, 0},
		{Quit, mgl32.Ident4(), -30, 0},
	}
	for _, tc := range tests {
		t.Run(tc.cmd.String(), func(t *testing.T) {
			got := start.Apply(tc.cmd)
			want := tc.delta.Mul4(start.View)
			if !got.View.ApproxEqualThreshold(want, epsilon) {
				t.Errorf("view = %v, want %v", got.View, want)
			}
			if got.Altitude != tc.altitude || got.Azimuth != tc.azimuth {
				t.Errorf("angles = (%v, %v), want (%v, %v)", got.Altitude, got.Azimuth, tc.altitude, tc.azimuth)
			}
		})
	}
	if start != NewCamera() {
		t.Error("Apply mutated its receiver")
	}
}

func TestCameraAngleWrap(t *testing.T) {
	c := NewCamera()
	for i := 0; i < 400; i++ {
		c = c.Apply(RotateLeft)
	}
	// 361 wraps to 1 on the way up, then climbs to 40
	if c.Azimuth != 40 {
		t.Errorf("azimuth after 400 left turns = %v, want 40", c.Azimuth)
	}
	for i := 0; i < 400; i++ {
		c = c.Apply(RotateDown)
	}
	if c.Altitude < -360 || c.Altitude > 360 {
		t.Errorf("altitude %v escaped [-360, 360]", c.Altitude)
	}
}

func TestCameraResetIdempotent(t *testing.T) {
	c := NewCamera()
	for _, cmd := range []Command{RotateUp, RotateLeft, TranslateForward, TranslateUp, RotateRight} {
		c = c.Apply(cmd)
	}
	once := c.Apply(Reset)
	twice := once.Apply(Reset)
	if once != twice {
		t.Errorf("reset twice %v differs from once %v", twice, once)
	}
	if once.View != InitialView() || once.Azimuth != 0 || once.Altitude != -InitialTilt {
		t.Errorf("reset did not restore the initial camera: %+v", once)
	}
}

func TestLightPosition(t *testing.T) {
	c := NewCamera()
	d := RotateY(0).Mul4(RotateX(-30)).Mul4(InitialView()).Mul4x1(mgl32.Vec4{1, 1, 1, 1})
	want := mgl32.Vec4{-d[0], -d[1], -d[2], 0}
	got := c.LightPosition()
	if !got.ApproxEqualThreshold(want, epsilon) {
		t.Errorf("light = %v, want %v", got, want)
	}
	if got[3] != 0 {
		t.Errorf("light w = %v, want directional 0", got[3])
	}
	// rotating the tilt away cancels the initial RotateX(30)
	wantRest := mgl32.Vec4{-1, 79, 159, 0}
	if !got.ApproxEqualThreshold(wantRest, 1e-3) {
		t.Errorf("light at rest = %v, want %v", got, wantRest)
	}
}

func TestParseCommand(t *testing.T) {
	for c := RotateUp; c < numCommands; c++ {
		got, err := ParseCommand(c.String())
		if err != nil || got != c {
			t.Errorf("ParseCommand(%q) = %v, %v", c.String(), got, err)
		}
	}
	if _, err := ParseCommand("none"); err == nil {
		t.Error("none should not parse")
	}
	if _, err := ParseCommand("barrel_roll"); err == nil {
		t.Error("expected error for unknown command")
	}
}

func TestCommandJSON(t *testing.T) {
	var msg struct {
		Command Command `json:"command"`
	}
	if err := json.Unmarshal([]byte(`{"command":"translate_up"}`), &msg); err != nil {
		t.Fatal(err)
	}
	if msg.Command != TranslateUp {
		t.Errorf("got %v", msg.Command)
	}
	out, err := json.Marshal(msg)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"command":"translate_up"}` {
		t.Errorf("marshal = %s", out)
	}
	if err := json.Unmarshal([]byte(`{"command":"warp"}`), &msg); err == nil {
		t.Error("expected error for unknown command")
	}
}
