package config

import (
	"image/color"

	"github.com/yohamta/donburi/ecs"
)

// Default is the ECS layer everything lives on.
const Default ecs.LayerID = 0

type Config struct {
	Width  int
	Height int
}

// CollisionConfig tunes the collision engine. Distances are in pixels,
// speeds in pixels per tick.
type CollisionConfig struct {
	CellWidth         float64 `yaml:"cell_width"`
	CellHeight        float64 `yaml:"cell_height"`
	QueryMargin       int     `yaml:"query_margin"`
	MaxSpeed          float64 `yaml:"max_speed"`
	ShiftDelta        float64 `yaml:"shift_delta"`
	Epsilon           float64 `yaml:"epsilon"`
	Forgiveness       float64 `yaml:"forgiveness"`
	CrushThreshold    float64 `yaml:"crush_threshold"`
	UnisolidTolerance float64 `yaml:"unisolid_tolerance"`
}

// PhysicsConfig contains global physics values, per 60Hz frame.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
	MaxRiseSpeed float64 `yaml:"max_rise_speed"`
	// IceFriction replaces a body's friction while it stands on ice.
	IceFriction float64 `yaml:"ice_friction"`
	// WaterDrag scales speeds of bodies overlapping water tiles.
	WaterDrag float64 `yaml:"water_drag"`
}

// BodyConfig describes one kind of simulated body.
type BodyConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Acceleration float64 `yaml:"acceleration"`
	MaxSpeed     float64 `yaml:"max_speed"`
	JumpSpeed    float64 `yaml:"jump_speed"`
	Friction     float64 `yaml:"friction"`
	Gravity      float64 `yaml:"gravity"`
}

// PlatformConfig contains defaults for tweened moving platforms.
type PlatformConfig struct {
	Height float64 `yaml:"height"`
	// Distance and Duration are used when a map object leaves them out.
	Distance float64 `yaml:"distance"`
	Duration float64 `yaml:"duration"`
}

// SimConfig controls the headless simulation loop.
type SimConfig struct {
	TickRate int `yaml:"tick_rate"`
	// LevelDir is a directory of .tmx files; empty uses the embedded levels.
	LevelDir  string `yaml:"level_dir"`
	Level     string `yaml:"level"`
	LogEvery  int    `yaml:"log_every"`
	AutoWalk  bool   `yaml:"auto_walk"`
	AutoJumps bool   `yaml:"auto_jumps"`
}

// ViewerConfig contains the debug viewer colours and overlay defaults.
type ViewerConfig struct {
	GroupColors map[string]color.RGBA `yaml:"-"`
	GridColor   color.RGBA            `yaml:"-"`
	EdgeColor   color.RGBA            `yaml:"-"`
	TileColor   color.RGBA            `yaml:"-"`
	OneWayColor color.RGBA            `yaml:"-"`
	HUDColor    color.RGBA            `yaml:"-"`
	ShowGrid    bool                  `yaml:"show_grid"`
	ShowGraph   bool                  `yaml:"show_graph"`
	ShowHUD     bool                  `yaml:"show_hud"`
}

// DebugConfig contains command-line debug options.
type DebugConfig struct {
	LogCollisions bool
}

// Global configuration instances
var C *Config
var Collision CollisionConfig
var Physics PhysicsConfig
var Player BodyConfig
var Crate BodyConfig
var Platform PlatformConfig
var Sim SimConfig
var Viewer ViewerConfig
var Debug DebugConfig

// Shared RGBA color constants
var (
	White      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Yellow     = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Violet     = color.RGBA{R: 128, G: 0, B: 255, A: 191}
	Red        = color.RGBA{R: 255, G: 0, B: 0, A: 191}
	LightRed   = color.RGBA{R: 255, G: 128, B: 128, A: 191}
	Cyan       = color.RGBA{R: 0, G: 255, B: 255, A: 191}
	Orange     = color.RGBA{R: 255, G: 128, B: 0, A: 191}
	LightGreen = color.RGBA{R: 178, G: 255, B: 178, A: 191}
	Grey       = color.RGBA{R: 90, G: 90, B: 110, A: 255}
	DarkGrey   = color.RGBA{R: 40, G: 40, B: 50, A: 255}
)

// Direction constants for body facing
const (
	DirectionLeft  = -1.0
	DirectionRight = 1.0
)

func init() {
	C = &Config{
		Width:  640,
		Height: 360,
	}

	Collision = CollisionConfig{
		CellWidth:         128,
		CellHeight:        128,
		QueryMargin:       2,
		MaxSpeed:          16,
		ShiftDelta:        7,
		Epsilon:           .002,
		Forgiveness:       256, // half a tile by half a tile
		CrushThreshold:    16,
		UnisolidTolerance: 4.0, // Pixels above a one-way tile that still land on it
	}

	Physics = PhysicsConfig{
		Gravity:      0.75,
		MaxFallSpeed: 10.0,
		MaxRiseSpeed: -15.0,
		IceFriction:  0.02,
		WaterDrag:    0.5,
	}

	Player = BodyConfig{
		Width:        16,
		Height:       40,
		Acceleration: 0.75,
		MaxSpeed:     6.0,
		JumpSpeed:    15.0,
		Friction:     0.5,
		Gravity:      0.75,
	}

	Crate = BodyConfig{
		Width:    32,
		Height:   32,
		MaxSpeed: 4.0,
		Friction: 0.3,
		Gravity:  0.75,
	}

	Platform = PlatformConfig{
		Height:   16,
		Distance: 128,
		Duration: 2,
	}

	Sim = SimConfig{
		TickRate:  60,
		LogEvery:  60,
		AutoWalk:  true,
		AutoJumps: true,
	}

	Viewer = ViewerConfig{
		GroupColors: map[string]color.RGBA{
			"moving-static":      Violet,
			"moving":             Red,
			"moving-only-static": LightRed,
			"static":             Cyan,
			"touchable":          Orange,
			"disabled":           LightGreen,
		},
		GridColor:   DarkGrey,
		EdgeColor:   Yellow,
		TileColor:   Grey,
		OneWayColor: Yellow,
		HUDColor:    White,
		ShowGrid:    true,
		ShowGraph:   true,
		ShowHUD:     true,
	}

	Debug = DebugConfig{
		LogCollisions: false,
	}
}
