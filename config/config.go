// Package config loads process configuration from file, environment and
// flags through viper.
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/milk9111/attractors/ecs/system"
	"github.com/milk9111/attractors/logging"
	"github.com/milk9111/attractors/scene"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. ATTRACTORS_SCENE_BODY_COUNT.
const EnvPrefix = "ATTRACTORS"

type Config struct {
	Window  WindowConfig   `mapstructure:"window"`
	Scene   SceneConfig    `mapstructure:"scene"`
	Physics PhysicsConfig  `mapstructure:"physics"`
	Logger  logging.Config `mapstructure:"logger"`
}

type WindowConfig struct {
	// Width and Height of zero size the window to the monitor.
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
}

type SceneConfig struct {
	BodyCount int `mapstructure:"body_count"`
	// Seed of zero seeds from the clock.
	Seed  uint64 `mapstructure:"seed"`
	File  string `mapstructure:"file"`
	Watch bool   `mapstructure:"watch"`
}

type PhysicsConfig struct {
	StepMillis float64 `mapstructure:"step_millis"`
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("window.width", 0)
	v.SetDefault("window.height", 0)
	v.SetDefault("window.title", "attractors")
	v.SetDefault("scene.body_count", scene.DefaultBodyCount)
	v.SetDefault("scene.seed", 0)
	v.SetDefault("scene.file", "")
	v.SetDefault("scene.watch", false)
	v.SetDefault("physics.step_millis", system.DefaultStepMillis)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.service_name", "attractors")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)
}

// Load reads path, or ./attractors.yaml when path is empty and the file
// exists, applies environment overrides and validates the result.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("attractors")
		v.SetConfigType("yaml")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width < 0 || c.Window.Height < 0 {
		errs = append(errs, fmt.Errorf("window size must be >= 0, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if (c.Window.Width == 0) != (c.Window.Height == 0) {
		errs = append(errs, fmt.Errorf("window width and height must both be set or both be zero"))
	}
	if c.Scene.BodyCount < 0 {
		errs = append(errs, fmt.Errorf("scene.body_count must be >= 0, got %d", c.Scene.BodyCount))
	}
	step := c.Physics.StepMillis
	if math.IsNaN(step) || math.IsInf(step, 0) || step <= 0 {
		errs = append(errs, fmt.Errorf("physics.step_millis must be positive, got %v", step))
	}
	switch c.Logger.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("logger.format must be console or json, got %q", c.Logger.Format))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
