package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the layout of a YAML override file. Sections left out keep their
// defaults, and so do fields left out of a section.
type File struct {
	Collision CollisionConfig `yaml:"collision"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Player    BodyConfig      `yaml:"player"`
	Crate     BodyConfig      `yaml:"crate"`
	Platform  PlatformConfig  `yaml:"platform"`
	Sim       SimConfig       `yaml:"sim"`
	Viewer    ViewerConfig    `yaml:"viewer"`
}

// Load reads a YAML override file and applies it onto the current values.
func Load(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := Apply(raw); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Apply merges raw YAML onto the current configuration. Nothing changes if
// the document is invalid.
func Apply(raw []byte) error {
	f := File{
		Collision: Collision,
		Physics:   Physics,
		Player:    Player,
		Crate:     Crate,
		Platform:  Platform,
		Sim:       Sim,
		Viewer:    Viewer,
	}
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if err := f.validate(); err != nil {
		return err
	}
	Collision = f.Collision
	Physics = f.Physics
	Player = f.Player
	Crate = f.Crate
	Platform = f.Platform
	Sim = f.Sim
	Viewer = f.Viewer
	return nil
}

func (f *File) validate() error {
	c := f.Collision
	if c.CellWidth <= 0 || c.CellHeight <= 0 {
		return fmt.Errorf("collision cell size must be positive, got %vx%v", c.CellWidth, c.CellHeight)
	}
	if c.QueryMargin < 0 {
		return fmt.Errorf("collision query margin must not be negative, got %d", c.QueryMargin)
	}
	// Objects are linked by their last committed box, so a query margin
	// smaller than one tick of movement misses neighbours.
	if float64(c.QueryMargin)*min(c.CellWidth, c.CellHeight) < c.MaxSpeed {
		return fmt.Errorf("collision query margin of %d cells does not cover max speed %v", c.QueryMargin, c.MaxSpeed)
	}
	if c.Epsilon <= 0 {
		return fmt.Errorf("collision epsilon must be positive, got %v", c.Epsilon)
	}
	if f.Sim.TickRate <= 0 {
		return fmt.Errorf("sim tick rate must be positive, got %d", f.Sim.TickRate)
	}
	return nil
}
