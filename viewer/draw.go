package viewer

import (
	"image/color"

	"github.com/automoto/platcollide/collision"
	"github.com/automoto/platcollide/components"
	cfg "github.com/automoto/platcollide/config"
	"github.com/automoto/platcollide/shared/gamemath"
	"github.com/automoto/platcollide/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var deadZoneColor = color.RGBA{R: 120, G: 0, B: 0, A: 120}

// view is the visible part of the world for one frame.
type view struct {
	offset gamemath.Vector
	bounds gamemath.Rect
}

func (g *Game) view(screen *ebiten.Image) view {
	w, h := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())
	offset := g.camera.Offset(w, h)
	return view{
		offset: offset,
		bounds: gamemath.NewRect(-offset.X, -offset.Y, w, h),
	}
}

// toScreen converts a world rectangle to screen space, reporting false when
// it is outside the view.
func (v view) toScreen(r gamemath.Rect) (gamemath.Rect, bool) {
	if !r.Intersects(v.bounds) {
		return gamemath.Rect{}, false
	}
	return r.Move(v.offset), true
}

func (v view) point(p gamemath.Vector) (float32, float32) {
	return float32(p.X + v.offset.X), float32(p.Y + v.offset.Y)
}

// DrawTiles draws every tilemap: solid tiles filled, one-way tiles as their
// top edge and slopes as their surface line.
func (g *Game) DrawTiles(e *ecs.ECS, screen *ebiten.Image) {
	v := g.view(screen)
	components.TileMap.Each(e.World, func(entry *donburi.Entry) {
		tm := components.TileMap.Get(entry)
		tm.Each(func(x, y int, tile collision.Tile) {
			r, ok := v.toScreen(tm.TileBBox(x, y))
			if !ok {
				return
			}
			switch {
			case tile.Slope():
				tri := gamemath.NewAATriangle(r, tile.Data)
				area := tri.Area()
				vector.StrokeLine(screen,
					float32(area.Left), float32(tri.SurfaceY(area.Left)),
					float32(area.Right), float32(tri.SurfaceY(area.Right)),
					2, cfg.Viewer.TileColor, false)
			case tile.Unisolid():
				vector.FillRect(screen, float32(r.Left), float32(r.Top), float32(r.Width()), 2, cfg.Viewer.OneWayColor, false)
			case tile.Solid():
				vector.FillRect(screen, float32(r.Left), float32(r.Top), float32(r.Width()), float32(r.Height()), cfg.Viewer.TileColor, false)
			case tile.Attributes != 0:
				vector.StrokeRect(screen, float32(r.Left)+0.5, float32(r.Top)+0.5, float32(r.Width())-1, float32(r.Height())-1, 1, cfg.Viewer.TileColor, false)
			}
		})
	})
}

// DrawDeadZones shades the resolv trigger areas.
func (g *Game) DrawDeadZones(e *ecs.ECS, screen *ebiten.Image) {
	spaceEntry, ok := components.Space.First(e.World)
	if !ok {
		return
	}
	v := g.view(screen)
	for _, obj := range components.Space.Get(spaceEntry).Objects() {
		if !obj.HasTags(tags.ResolvDeadZone) {
			continue
		}
		r, ok := v.toScreen(gamemath.NewRect(obj.X, obj.Y, obj.W, obj.H))
		if !ok {
			continue
		}
		vector.FillRect(screen, float32(r.Left), float32(r.Top), float32(r.Width()), float32(r.Height()), deadZoneColor, false)
	}
}

// DrawBodies outlines every body in its collision group colour.
func (g *Game) DrawBodies(e *ecs.ECS, screen *ebiten.Image) {
	v := g.view(screen)
	components.Body.Each(e.World, func(entry *donburi.Entry) {
		body := components.Body.Get(entry)
		r, ok := v.toScreen(body.Box)
		if !ok {
			return
		}
		c := GroupColor(body.CollisionGroup)
		vector.StrokeRect(screen, float32(r.Left)+0.5, float32(r.Top)+0.5, float32(r.Width())-1, float32(r.Height())-1, 1, c, false)
		if body.OneWay {
			vector.FillRect(screen, float32(r.Left), float32(r.Top), float32(r.Width()), 2, cfg.Viewer.OneWayColor, false)
		}
	})
}

// DrawGrid draws the broad-phase cell lines.
func (g *Game) DrawGrid(e *ecs.ECS, screen *ebiten.Image) {
	if !g.settings.ShowGrid {
		return
	}
	engine := g.sim.Engine()
	if engine == nil {
		return
	}
	v := g.view(screen)
	cellW, cellH := engine.Grid().CellSize()
	cellsX, cellsY := engine.Grid().Cells()
	worldW, worldH := cellW*float64(cellsX), cellH*float64(cellsY)

	for i := 0; i <= cellsX; i++ {
		x0, y0 := v.point(gamemath.Vector{X: float64(i) * cellW})
		x1, y1 := v.point(gamemath.Vector{X: float64(i) * cellW, Y: worldH})
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, cfg.Viewer.GridColor, false)
	}
	for j := 0; j <= cellsY; j++ {
		x0, y0 := v.point(gamemath.Vector{Y: float64(j) * cellH})
		x1, y1 := v.point(gamemath.Vector{X: worldW, Y: float64(j) * cellH})
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, cfg.Viewer.GridColor, false)
	}
}

// DrawGraph draws an edge from every body to each object it carried in the
// last tick.
func (g *Game) DrawGraph(e *ecs.ECS, screen *ebiten.Image) {
	if !g.settings.ShowGraph {
		return
	}
	engine := g.sim.Engine()
	if engine == nil {
		return
	}
	v := g.view(screen)
	components.Body.Each(e.World, func(entry *donburi.Entry) {
		body := components.Body.Get(entry)
		for _, rider := range engine.Riders(body) {
			x0, y0 := v.point(body.Box.Center())
			x1, y1 := v.point(rider.BBox().Center())
			vector.StrokeLine(screen, x0, y0, x1, y1, 1, cfg.Viewer.EdgeColor, false)
			vector.FillRect(screen, x1-2, y1-2, 4, 4, cfg.Viewer.EdgeColor, false)
		}
	})
}

// GroupColor is the outline colour for a collision group.
func GroupColor(group collision.Group) color.RGBA {
	if c, ok := cfg.Viewer.GroupColors[group.String()]; ok {
		return c
	}
	return cfg.White
}
