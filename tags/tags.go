package tags

import "github.com/yohamta/donburi"

var (
	Player           = donburi.NewTag().SetName("Player")
	Crate            = donburi.NewTag().SetName("Crate")
	Platform         = donburi.NewTag().SetName("Platform")
	FloatingPlatform = donburi.NewTag().SetName("FloatingPlatform")
	Wall             = donburi.NewTag().SetName("Wall")
	MovingTiles      = donburi.NewTag().SetName("MovingTiles")
	SolidTiles       = donburi.NewTag().SetName("SolidTiles")
)

// Resolv tags for the sensor space
const (
	ResolvPlayer   = "Player"
	ResolvCrate    = "Crate"
	ResolvDeadZone = "deadzone"
)
