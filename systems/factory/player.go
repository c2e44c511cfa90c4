package factory

import (
	"github.com/automoto/platcollide/archetypes"
	"github.com/automoto/platcollide/collision"
	"github.com/automoto/platcollide/components"
	cfg "github.com/automoto/platcollide/config"
	"github.com/automoto/platcollide/shared/gamemath"
	"github.com/automoto/platcollide/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func CreatePlayer(ecs *ecs.ECS, x, y float64) *donburi.Entry {
	player := archetypes.Player.Spawn(ecs)

	w, h := cfg.Player.Width, cfg.Player.Height
	components.Body.SetValue(player, components.BodyData{
		Name:           "player",
		Box:            gamemath.NewRect(x, y, w, h),
		CollisionGroup: collision.GroupMoving,
	})
	components.Player.SetValue(player, components.PlayerData{
		Direction: cfg.DirectionRight,
		JumpSpeed: cfg.Player.JumpSpeed,
		Spawn:     gamemath.Vector{X: x, Y: y},
		LastSafe:  gamemath.Vector{X: x, Y: y},
	})
	components.Physics.SetValue(player, components.PhysicsData{
		AccelX:   cfg.Player.Acceleration,
		Gravity:  cfg.Player.Gravity,
		Friction: cfg.Player.Friction,
		MaxSpeed: cfg.Player.MaxSpeed,
	})

	obj := resolv.NewObject(x, y, w, h, tags.ResolvPlayer)
	obj.SetShape(resolv.NewRectangle(0, 0, w, h))
	obj.Data = player
	components.Object.SetValue(player, components.ObjectData{Object: obj})
	addSensor(ecs, obj)

	addBody(ecs, player)
	return player
}

// CreateCrate creates a pushable box.
func CreateCrate(ecs *ecs.ECS, x, y float64) *donburi.Entry {
	crate := archetypes.Crate.Spawn(ecs)

	w, h := cfg.Crate.Width, cfg.Crate.Height
	components.Body.SetValue(crate, components.BodyData{
		Name:           "crate",
		Box:            gamemath.NewRect(x, y, w, h),
		CollisionGroup: collision.GroupMoving,
	})
	components.Physics.SetValue(crate, components.PhysicsData{
		Gravity:  cfg.Crate.Gravity,
		Friction: cfg.Crate.Friction,
		MaxSpeed: cfg.Crate.MaxSpeed,
	})

	obj := resolv.NewObject(x, y, w, h, tags.ResolvCrate)
	obj.SetShape(resolv.NewRectangle(0, 0, w, h))
	obj.Data = crate
	components.Object.SetValue(crate, components.ObjectData{Object: obj})
	addSensor(ecs, obj)

	addBody(ecs, crate)
	return crate
}
