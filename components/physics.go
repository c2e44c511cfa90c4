package components

import (
	"github.com/yohamta/donburi"
)

// PhysicsData holds per-frame speeds. Speeds are in pixels per 60Hz frame.
type PhysicsData struct {
	SpeedX   float64
	SpeedY   float64
	AccelX   float64
	Gravity  float64
	Friction float64
	MaxSpeed float64
	// OnGround is what the body stood on after the last tick: the carrying
	// platform entity, or nil for tiles and statics. Grounded tells the two
	// nil cases apart.
	OnGround *donburi.Entry
	Grounded bool
	OnIce    bool
	InWater  bool
}

var Physics = donburi.NewComponentType[PhysicsData]()
