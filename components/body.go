package components

import (
	"github.com/automoto/platcollide/collision"
	"github.com/automoto/platcollide/shared/gamemath"
	"github.com/yohamta/donburi"
)

// BodyData is an entity's rectangle in the collision engine. It implements
// collision.Object; the engine calls back into it during a tick and the
// results become visible after Commit.
type BodyData struct {
	Name string
	// Entry links back to the owning entity.
	Entry *donburi.Entry
	Box   gamemath.Rect
	// Move is the displacement requested for the coming tick.
	Move           gamemath.Vector
	CollisionGroup collision.Group
	// OneWay bodies can only be landed on from above.
	OneWay bool
	// Response is what the body answers when another object runs into it.
	Response collision.HitResponse
	// Pass lists groups this body never collides with.
	Pass []collision.Group

	// Results of the last committed tick.
	Hit        collision.Hit
	Crushed    bool
	Attributes uint32
	Touching   []collision.Object
	// Moved is how far the last tick actually moved the body.
	Moved gamemath.Vector

	pendingHit   collision.Hit
	pendingAttrs uint32
	pendingTouch []collision.Object
}

var Body = donburi.NewComponentType[BodyData]()

func (b *BodyData) BBox() gamemath.Rect       { return b.Box }
func (b *BodyData) Movement() gamemath.Vector { return b.Move }
func (b *BodyData) Group() collision.Group    { return b.CollisionGroup }
func (b *BodyData) Unisolid() bool            { return b.OneWay }

// Commit publishes everything gathered during the tick.
func (b *BodyData) Commit(bbox gamemath.Rect) {
	b.Moved = bbox.Pos().Sub(b.Box.Pos())
	b.Box = bbox
	b.Hit = b.pendingHit
	b.Crushed = b.pendingHit.Crush
	b.Attributes = b.pendingAttrs
	b.Touching = append(b.Touching[:0], b.pendingTouch...)
	b.pendingHit = collision.Hit{}
	b.pendingAttrs = 0
	b.pendingTouch = b.pendingTouch[:0]
}

func (b *BodyData) CollisionSolid(hit collision.Hit) {
	b.pendingHit = b.pendingHit.Union(hit)
}

func (b *BodyData) Collision(other collision.Object, hit collision.Hit) collision.HitResponse {
	if other.Group() == collision.GroupTouchable || b.CollisionGroup == collision.GroupTouchable {
		b.pendingTouch = append(b.pendingTouch, other)
		return collision.Continue
	}
	b.pendingHit = b.pendingHit.Union(hit)
	return b.Response
}

func (b *BodyData) Collides(other collision.Object, hit collision.Hit) bool {
	g := other.Group()
	for _, p := range b.Pass {
		if p == g {
			return false
		}
	}
	return true
}

func (b *BodyData) CollisionTile(attributes uint32) {
	b.pendingAttrs |= attributes
}

// SetPos teleports the body. The caller relinks it in the engine.
func (b *BodyData) SetPos(x, y float64) {
	b.Box = b.Box.SetPos(gamemath.Vector{X: x, Y: y})
	b.Move = gamemath.Vector{}
}

// OnGround reports whether the last tick ended standing on something.
func (b *BodyData) OnGround() bool { return b.Hit.Bottom }

var (
	_ collision.Object      = (*BodyData)(nil)
	_ collision.Collider    = (*BodyData)(nil)
	_ collision.Unisolid    = (*BodyData)(nil)
	_ collision.TileToucher = (*BodyData)(nil)
)
