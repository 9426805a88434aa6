package rendering

import (
	"fmt"
	"time"

	"solarsystem/simulation"
)

// FPSCounter averages frame rate over one-second windows
type FPSCounter struct {
	frames int
	since  time.Time
	FPS    float64
}

// Frame counts one frame at now and reports whether FPS was refreshed
func (c *FPSCounter) Frame(now time.Time) bool {
	if c.since.IsZero() {
		c.since = now
	}
	c.frames++
	elapsed := now.Sub(c.since)
	if elapsed < time.Second {
		return false
	}
	c.FPS = float64(c.frames) / elapsed.Seconds()
	c.frames = 0
	c.since = now
	return true
}

// StatusLine summarises the scene for the window title
func StatusLine(fps float64, scene *simulation.SceneState) string {
	return fmt.Sprintf("FPS: %.1f | Tick: %d | Azimuth: %.0f° Altitude: %.0f°",
		fps, scene.Ticks(), scene.Camera.Azimuth, scene.Camera.Altitude)
}
