package factory

import (
	"github.com/automoto/platcollide/archetypes"
	"github.com/automoto/platcollide/collision"
	"github.com/automoto/platcollide/components"
	"github.com/automoto/platcollide/shared/gamemath"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateWall creates a static blocking object.
func CreateWall(ecs *ecs.ECS, x, y, w, h float64) *donburi.Entry {
	wall := archetypes.Wall.Spawn(ecs)
	components.Body.SetValue(wall, components.BodyData{
		Name:           "wall",
		Box:            gamemath.NewRect(x, y, w, h),
		CollisionGroup: collision.GroupStatic,
	})
	addBody(ecs, wall)
	return wall
}
