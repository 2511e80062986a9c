package config

import (
	"fmt"
	"os"

	"github.com/san-kum/springlab/internal/spring"
	"github.com/san-kum/springlab/internal/system"
	"gopkg.in/yaml.v3"
)

const (
	SceneSingle   = "single"
	SceneSeries   = "series"
	SceneParallel = "parallel"

	ModeForce        = "force"
	ModeDisplacement = "displacement"

	DefaultEquilibriumLength = 1.5
	DefaultAppliedForceDelta = 1.0
)

// Config describes one scene. For composite scenes SpringConstantRange and
// EquilibriumLength apply to each component spring and AppliedForceRange to
// the equivalent spring. DisplacementRange is only read by a single scene in
// displacement mode.
type Config struct {
	Scene               string       `yaml:"scene"`
	Mode                string       `yaml:"mode"`
	Left                float64      `yaml:"left"`
	EquilibriumLength   float64      `yaml:"equilibrium_length"`
	SpringConstantRange spring.Range `yaml:"spring_constant_range"`
	AppliedForceRange   spring.Range `yaml:"applied_force_range"`
	DisplacementRange   spring.Range `yaml:"displacement_range"`
	AppliedForceDelta   float64      `yaml:"applied_force_delta"`
}

func DefaultConfig() *Config {
	return &Config{
		Scene:               SceneSingle,
		Mode:                ModeForce,
		EquilibriumLength:   DefaultEquilibriumLength,
		SpringConstantRange: spring.NewRange(100, 1000, 200),
		AppliedForceRange:   spring.NewRange(-100, 100, 0),
		DisplacementRange:   spring.NewRange(-1, 1, 0),
		AppliedForceDelta:   DefaultAppliedForceDelta,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the fields the systems do not check themselves.
func (c *Config) Validate() error {
	switch c.Scene {
	case SceneSingle, SceneSeries, SceneParallel:
	default:
		return fmt.Errorf("unknown scene: %q", c.Scene)
	}
	switch c.Mode {
	case ModeForce, ModeDisplacement:
	case "":
		c.Mode = ModeForce
	default:
		return fmt.Errorf("unknown mode: %q", c.Mode)
	}
	if c.Scene != SceneSingle && c.Mode != ModeForce {
		return fmt.Errorf("scene %s is always force-driven", c.Scene)
	}
	return nil
}

// SingleOptions converts the config for system.NewSingle.
func (c *Config) SingleOptions() system.SingleOptions {
	opts := system.SingleOptions{
		Spring: spring.Options{
			Name:                "spring",
			Left:                c.Left,
			EquilibriumLength:   c.EquilibriumLength,
			SpringConstantRange: c.SpringConstantRange,
			AppliedForceDelta:   c.AppliedForceDelta,
		},
	}
	if c.Mode == ModeDisplacement {
		x := c.DisplacementRange
		opts.Spring.DisplacementRange = &x
	} else {
		f := c.AppliedForceRange
		opts.Spring.AppliedForceRange = &f
	}
	return opts
}

func (c *Config) SeriesOptions() system.SeriesOptions {
	return system.SeriesOptions{
		Left:                c.Left,
		EquilibriumLength:   c.EquilibriumLength,
		SpringConstantRange: c.SpringConstantRange,
		AppliedForceRange:   c.AppliedForceRange,
		AppliedForceDelta:   c.AppliedForceDelta,
	}
}

func (c *Config) ParallelOptions() system.ParallelOptions {
	return system.ParallelOptions{
		Left:                c.Left,
		EquilibriumLength:   c.EquilibriumLength,
		SpringConstantRange: c.SpringConstantRange,
		AppliedForceRange:   c.AppliedForceRange,
		AppliedForceDelta:   c.AppliedForceDelta,
	}
}
