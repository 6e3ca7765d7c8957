package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "Walking", cfg.Character.DefaultState)
	assert.Equal(t, 0.005, cfg.Orbit.Speed)
	assert.False(t, cfg.Orbit.TimeScaled)
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {

	path := writeFile(t, t.TempDir(), "stage.yaml", `
window:
  width: 800
orbit:
  speed: 0.5
  time_scaled: true
  moon_offset: [0, 1, 4]
character:
  states: [Idle, Walking]
  default_state: Idle
lights:
  point_color: 0xF28D00
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height, "keys left out keep their defaults")
	assert.Equal(t, 0.5, cfg.Orbit.Speed)
	assert.True(t, cfg.Orbit.TimeScaled)
	assert.Equal(t, Vec3{0, 1, 4}, cfg.Orbit.MoonOffset)
	assert.Equal(t, []string{"Idle", "Walking"}, cfg.Character.States)
	assert.Equal(t, uint32(0xF28D00), cfg.Lights.PointColor)
	assert.Equal(t, 20.0, cfg.Orbit.SemiMajorAxis)

}

func TestSampleFileMatchesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "examples", "robot", "stage.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeFile(t, t.TempDir(), "stage.yaml", "orbit:\n  sped: 1\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: unmarshal")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadEmptyFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "stage.yaml", "# nothing to see\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestEnvOverrides(t *testing.T) {

	t.Setenv("STAGE3D_WINDOW_WIDTH", "1920")
	t.Setenv("STAGE3D_WINDOW_HEIGHT", "1080")
	t.Setenv("STAGE3D_MODEL", "robot.gltf")
	t.Setenv("STAGE3D_ORBIT_SPEED", "0.3")
	t.Setenv("STAGE3D_ORBIT_TIME_SCALED", "true")

	path := writeFile(t, t.TempDir(), "stage.yaml", "window:\n  width: 800\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1920, cfg.Window.Width, "the environment wins over the file")
	assert.Equal(t, 1080, cfg.Window.Height)
	assert.Equal(t, "robot.gltf", cfg.Character.ModelPath)
	assert.Equal(t, 0.3, cfg.Orbit.Speed)
	assert.True(t, cfg.Orbit.TimeScaled)

}

func TestEnvOverrideInvalid(t *testing.T) {
	t.Setenv("STAGE3D_WINDOW_WIDTH", "wide")
	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: parse env")
}

func TestValidateRejects(t *testing.T) {

	tests := []struct {
		name   string
		modify func(cfg *Config)
	}{
		{"zero width", func(cfg *Config) { cfg.Window.Width = 0 }},
		{"flat fov", func(cfg *Config) { cfg.Camera.FieldOfView = 180 }},
		{"far before near", func(cfg *Config) { cfg.Camera.Far = 0.05 }},
		{"no damping", func(cfg *Config) { cfg.Controls.DampingFactor = 0 }},
		{"max distance below min", func(cfg *Config) { cfg.Controls.MinDistance = 10; cfg.Controls.MaxDistance = 5 }},
		{"negative fade", func(cfg *Config) { cfg.Character.StateFade = -1 }},
		{"unknown default state", func(cfg *Config) { cfg.Character.DefaultState = "Flying" }},
		{"emote as state", func(cfg *Config) { cfg.Character.Emotes = append(cfg.Character.Emotes, "Dance") }},
		{"empty model path", func(cfg *Config) { cfg.Character.ModelPath = "" }},
		{"flat orbit", func(cfg *Config) { cfg.Orbit.SemiMinorAxis = 0 }},
		{"no shadow map", func(cfg *Config) { cfg.Lights.ShadowMapSize = 0 }},
		{"no ground", func(cfg *Config) { cfg.Ground.Depth = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}

}

func TestWatcherReportsWrites(t *testing.T) {

	dir := t.TempDir()
	path := writeFile(t, dir, "stage.yaml", "window:\n  width: 800\n")

	watcher, err := NewWatcher(path)
	require.NoError(t, err)
	defer watcher.Close()

	writeFile(t, dir, "other.yaml", "ignored: true\n")
	writeFile(t, dir, "stage.yaml", "window:\n  width: 900\n")

	select {
	case changed := <-watcher.Events:
		abs, _ := filepath.Abs(path)
		assert.Equal(t, abs, changed)
	case err := <-watcher.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("no event for the config file")
	}

	require.NoError(t, watcher.Close())
	require.NoError(t, watcher.Close())

}
