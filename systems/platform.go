package systems

import (
	"github.com/automoto/platcollide/components"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdatePlatforms advances every path tween and turns the new position into
// movement: bodies request it for this tick, tilemaps get a velocity.
func UpdatePlatforms(ecs *ecs.ECS) {
	dt := tickDT(ecs)
	components.Tween.Each(ecs.World, func(e *donburi.Entry) {
		tw := components.Tween.Get(e)
		progress, _, seqDone := tw.Update(float32(dt))
		if seqDone {
			tw.Reset()
		}
		if !e.HasComponent(components.Path) {
			return
		}
		target := components.Path.Get(e).At(float64(progress))

		if e.HasComponent(components.Body) {
			body := components.Body.Get(e)
			body.Move = target.Sub(body.Box.Pos())
		}
		if e.HasComponent(components.TileMap) {
			components.TileMap.Get(e).MoveTo(target, dt)
		}
	})
}

// advanceTilemaps moves tilemaps to where their velocity said they would be.
func advanceTilemaps(ecs *ecs.ECS, dt float64) {
	components.TileMap.Each(ecs.World, func(e *donburi.Entry) {
		components.TileMap.Get(e).Advance(dt)
	})
}
