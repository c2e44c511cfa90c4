package components

import (
	"github.com/automoto/platcollide/shared/gamemath"
	"github.com/yohamta/donburi"
)

type PlayerData struct {
	Direction float64
	JumpSpeed float64
	// Spawn is where the player returns after falling into a dead zone.
	Spawn gamemath.Vector
	// LastSafe is the last position where the player was safely grounded.
	LastSafe gamemath.Vector
	Respawns int
}

var Player = donburi.NewComponentType[PlayerData]()
