package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solarsystem/core"
	"solarsystem/simulation"
)

const sampleYAML = `
window:
  width: 1024
  height: 768
projection: orthographic
simulation:
  tickRate: 60
  systemScale: 0.5
  slots:
    - {depth: 4}
    - {depth: 2, flat: true}
    - {depth: 3}
    - {depth: 5}
    - {depth: 4}
    - {depth: 2}
server:
  enabled: true
  addr: "127.0.0.1:9000"
  broadcastHz: 5
log:
  level: debug
`

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0644))

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1024, s.Window.Width)
	assert.Equal(t, "Solar System", s.Window.Title, "unset fields keep defaults")
	assert.Equal(t, simulation.Orthographic, s.ProjectionMode())
	assert.Equal(t, 60, s.Simulation.TickRate)
	assert.Equal(t, float32(0.5), s.Simulation.SystemScale)
	assert.Equal(t, core.SlotSpec{Depth: 2, Mode: core.Flat}, s.SlotSpecs()[1])
	assert.True(t, s.Server.Enabled)
	assert.Equal(t, "127.0.0.1:9000", s.Server.Addr)
	assert.Equal(t, "debug", s.Log.Level)
}

func TestLoadYAMLRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yml")
	require.NoError(t, os.WriteFile(path, []byte("window:\n  colour: red\n"), 0644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "error parsing")
}

func TestLoadEmptyYAMLGivesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestSaveYAMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	want := Default()
	want.Simulation.Slots[3].Depth = 2
	want.Log.Level = "warn"

	require.NoError(t, Save(path, want))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
