package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/attractors/ecs/system"
	"github.com/milk9111/attractors/scene"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "attractors.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, scene.DefaultBodyCount, cfg.Scene.BodyCount)
	assert.Equal(t, "attractors", cfg.Window.Title)
	assert.Equal(t, system.DefaultStepMillis, cfg.Physics.StepMillis)
	assert.Equal(t, "console", cfg.Logger.Format)
	assert.False(t, cfg.Scene.Watch)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
window:
  width: 800
  height: 600
scene:
  body_count: 12
  seed: 42
  watch: true
logger:
  level: debug
  format: json
`)
	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, 12, cfg.Scene.BodyCount)
	assert.Equal(t, uint64(42), cfg.Scene.Seed)
	assert.True(t, cfg.Scene.Watch)
	assert.Equal(t, "json", cfg.Logger.Format)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ATTRACTORS_SCENE_BODY_COUNT", "7")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Scene.BodyCount)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Scene:   SceneConfig{BodyCount: 60},
			Physics: PhysicsConfig{StepMillis: 16},
		}
	}
	cases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"ok", func(c *Config) {}, ""},
		{"negative_bodies", func(c *Config) { c.Scene.BodyCount = -1 }, "scene.body_count"},
		{"zero_step", func(c *Config) { c.Physics.StepMillis = 0 }, "physics.step_millis"},
		{"half_window", func(c *Config) { c.Window.Width = 800 }, "both be set"},
		{"negative_window", func(c *Config) { c.Window.Width, c.Window.Height = -1, -1 }, "window size"},
		{"bad_format", func(c *Config) { c.Logger.Format = "xml" }, "logger.format"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := valid()
			cfg.Logger.Format = "console"
			c.mutate(&cfg)
			err := cfg.Validate()
			if c.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), c.wantErr)
		})
	}
}
