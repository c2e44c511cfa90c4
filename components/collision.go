package components

import (
	"github.com/automoto/platcollide/collision"
	"github.com/yohamta/donburi"
)

// CollisionData holds the world's collision engine.
type CollisionData struct {
	Engine *collision.Engine
}

var Collision = donburi.NewComponentType[CollisionData]()
