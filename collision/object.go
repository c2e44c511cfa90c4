package collision

import "github.com/automoto/platcollide/shared/gamemath"

// Group decides which phases of a tick an object takes part in.
type Group uint8

const (
	// GroupDisabled objects are stored but never collide.
	GroupDisabled Group = iota
	// GroupMovingStatic objects move, collide with tiles and statics, and
	// block moving objects like a static would. Moving platforms use it.
	GroupMovingStatic
	// GroupMoving objects collide with everything.
	GroupMoving
	// GroupMovingOnlyStatic objects ignore other moving objects.
	GroupMovingOnlyStatic
	// GroupStatic objects never move and block movers.
	GroupStatic
	// GroupTouchable objects get Collision callbacks but never block.
	GroupTouchable
)

func (g Group) String() string {
	switch g {
	case GroupDisabled:
		return "disabled"
	case GroupMovingStatic:
		return "moving-static"
	case GroupMoving:
		return "moving"
	case GroupMovingOnlyStatic:
		return "moving-only-static"
	case GroupStatic:
		return "static"
	case GroupTouchable:
		return "touchable"
	}
	return "unknown"
}

// movesAgainstStatics reports whether the group runs the tile/static phase.
func (g Group) movesAgainstStatics() bool {
	return g == GroupMoving || g == GroupMovingStatic || g == GroupMovingOnlyStatic
}

// mover reports whether the group takes part in object/object resolution.
func (g Group) mover() bool {
	return g == GroupMoving || g == GroupMovingStatic
}

// blocks reports whether movers are constrained by the group.
func (g Group) blocks() bool {
	return g == GroupStatic || g == GroupMovingStatic
}

// HitResponse is what an object answers when told about a collision.
type HitResponse uint8

const (
	// Continue lets the engine separate both objects.
	Continue HitResponse = iota
	// AbortMove cancels the resolution for this pair.
	AbortMove
	// ForceMove asks the engine to move the other object out of the way.
	ForceMove
)

// Hit describes on which sides an object was hit.
type Hit struct {
	Left, Right, Top, Bottom bool
	Crush                    bool
	SlopeNormal              gamemath.Vector
}

// Any reports whether any side was hit.
func (h Hit) Any() bool {
	return h.Left || h.Right || h.Top || h.Bottom
}

// Inverted returns the hit as seen by the other object.
func (h Hit) Inverted() Hit {
	return Hit{
		Left:        h.Right,
		Right:       h.Left,
		Top:         h.Bottom,
		Bottom:      h.Top,
		Crush:       h.Crush,
		SlopeNormal: h.SlopeNormal.Scale(-1),
	}
}

// Union merges two hits side by side.
func (h Hit) Union(o Hit) Hit {
	out := Hit{
		Left:        h.Left || o.Left,
		Right:       h.Right || o.Right,
		Top:         h.Top || o.Top,
		Bottom:      h.Bottom || o.Bottom,
		Crush:       h.Crush || o.Crush,
		SlopeNormal: h.SlopeNormal,
	}
	if out.SlopeNormal.IsZero() {
		out.SlopeNormal = o.SlopeNormal
	}
	return out
}

// Object is anything the engine can move and collide.
type Object interface {
	BBox() gamemath.Rect
	// Movement is the displacement the object wants for this tick.
	Movement() gamemath.Vector
	Group() Group
	// Commit is called once at the end of the tick with the resolved box.
	Commit(bbox gamemath.Rect)
	// CollisionSolid reports a hit against tiles or static objects.
	CollisionSolid(hit Hit)
	// Collision reports a hit against another object.
	Collision(other Object, hit Hit) HitResponse
}

// Collider lets an object veto a collision before it is resolved.
type Collider interface {
	Collides(other Object, hit Hit) bool
}

// Unisolid objects only block from above.
type Unisolid interface {
	Unisolid() bool
}

// TileToucher receives the attributes of the tiles it overlaps.
type TileToucher interface {
	CollisionTile(attributes uint32)
}

func collides(a, b Object, hit Hit) bool {
	if c, ok := a.(Collider); ok {
		return c.Collides(b, hit)
	}
	return true
}

func isUnisolid(o Object) bool {
	u, ok := o.(Unisolid)
	return ok && u.Unisolid()
}
