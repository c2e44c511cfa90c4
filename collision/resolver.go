package collision

import (
	"math"

	"github.com/automoto/platcollide/shared/gamemath"
)

const (
	// slopeProbeMargin is how far the probe corner may sit outside a slope's
	// area before the slope is treated as a plain rectangle.
	slopeProbeMargin = 3
	// slopeDepthOffset pushes objects slightly further out of slopes.
	slopeDepthOffset = 0.2
)

// Resolver holds the tolerances of rectangle checks.
type Resolver struct {
	ShiftDelta float64
	Epsilon    float64
}

// SetRectangleRectangleConstraints pushes r1 out of r2 along the axis of
// least penetration.
func SetRectangleRectangleConstraints(c *Constraints, r1, r2 gamemath.Rect, addlGround gamemath.Vector) {
	itop := r1.Bottom - r2.Top
	ibottom := r2.Bottom - r1.Top
	ileft := r1.Right - r2.Left
	iright := r2.Right - r1.Left

	vert := math.Min(itop, ibottom)
	horiz := math.Min(ileft, iright)
	if vert < horiz {
		if itop < ibottom {
			c.ConstrainBottom(r2.Top, addlGround.Y)
			c.Hit.Bottom = true
			if c.GroundMovement.IsZero() {
				c.GroundMovement = addlGround
			}
		} else {
			c.ConstrainTop(r2.Bottom, addlGround.Y)
			c.Hit.Top = true
		}
		return
	}
	if ileft < iright {
		c.ConstrainRight(r2.Left, addlGround.X)
		c.Hit.Right = true
	} else {
		c.ConstrainLeft(r2.Right, addlGround.X)
		c.Hit.Left = true
	}
}

// makePlane returns the unit normal and offset of the line through p1 and p2.
func makePlane(p1, p2 gamemath.Vector) (gamemath.Vector, float64) {
	n := gamemath.Vector{X: p2.Y - p1.Y, Y: p1.X - p2.X}
	c := -p2.Dot(n)
	l := n.Len()
	if l == 0 {
		return gamemath.Vector{}, 0
	}
	return n.Scale(1 / l), c / l
}

// RectangleAATriangle tightens c so rect does not sink into the slope.
// It reports whether the rectangle touched the triangle and whether the
// triangle supports it from below.
func RectangleAATriangle(c *Constraints, rect gamemath.Rect, tri gamemath.AATriangle, addlGround gamemath.Vector) (hit, hitsBottom bool) {
	if !rect.Intersects(tri.BBox) {
		return false, false
	}
	area := tri.Area()
	nc := NewConstraints()

	if tri.IsFull() {
		SetRectangleRectangleConstraints(&nc, rect, area, addlGround)
		c.Merge(nc)
		return true, nc.Hit.Bottom
	}

	var p1, a, b gamemath.Vector
	switch tri.Direction() {
	case gamemath.SouthWest:
		p1 = gamemath.Vector{X: rect.Left, Y: rect.Bottom}
		a = gamemath.Vector{X: area.Left, Y: area.Top}
		b = gamemath.Vector{X: area.Right, Y: area.Bottom}
	case gamemath.NorthEast:
		p1 = gamemath.Vector{X: rect.Right, Y: rect.Top}
		a = gamemath.Vector{X: area.Right, Y: area.Bottom}
		b = gamemath.Vector{X: area.Left, Y: area.Top}
	case gamemath.SouthEast:
		p1 = gamemath.Vector{X: rect.Right, Y: rect.Bottom}
		a = gamemath.Vector{X: area.Left, Y: area.Bottom}
		b = gamemath.Vector{X: area.Right, Y: area.Top}
	default:
		p1 = gamemath.Vector{X: rect.Left, Y: rect.Top}
		a = gamemath.Vector{X: area.Right, Y: area.Top}
		b = gamemath.Vector{X: area.Left, Y: area.Bottom}
	}
	normal, offset := makePlane(a, b)

	depth := -normal.Dot(p1) - offset
	if depth < 0 {
		return false, false
	}
	out := normal.Scale(depth + slopeDepthOffset)

	if p1.X < area.Left-slopeProbeMargin || p1.X > area.Right+slopeProbeMargin ||
		p1.Y < area.Top-slopeProbeMargin || p1.Y > area.Bottom+slopeProbeMargin {
		SetRectangleRectangleConstraints(&nc, rect, area, addlGround)
		c.Merge(nc)
		return true, nc.Hit.Bottom
	}

	if out.X < 0 {
		nc.ConstrainRight(rect.Right+out.X, addlGround.X)
		nc.Hit.Right = true
	} else {
		nc.ConstrainLeft(rect.Left+out.X, addlGround.X)
		nc.Hit.Left = true
	}
	if out.Y < 0 {
		nc.ConstrainBottom(rect.Bottom+out.Y, addlGround.Y)
		nc.Hit.Bottom = true
		nc.GroundMovement = addlGround
	} else {
		nc.ConstrainTop(rect.Top+out.Y, addlGround.Y)
		nc.Hit.Top = true
	}
	nc.Hit.SlopeNormal = normal
	c.Merge(nc)
	return true, nc.Hit.Bottom
}

// CheckCollisions computes the constraints moving puts on a mover that
// wants to travel by movement into other. Objects barely overlapping a
// corner along the axis they are not moving on are shifted out without a
// hit, so they slide past instead of snagging.
func (r Resolver) CheckCollisions(movement gamemath.Vector, moving, other gamemath.Rect, otherMovement gamemath.Vector, unisolid bool) (c Constraints, shiftout bool) {
	c = NewConstraints()
	grown := other.Grown(r.Epsilon)
	if !moving.Overlaps(grown) {
		return c, false
	}

	itop := moving.Bottom - grown.Top
	ibottom := grown.Bottom - moving.Top
	ileft := moving.Right - grown.Left
	iright := grown.Right - moving.Left

	if !unisolid {
		if math.Abs(movement.Y) > math.Abs(movement.X) {
			if ileft < r.ShiftDelta {
				c.ConstrainRight(grown.Left, otherMovement.X)
				shiftout = true
			} else if iright < r.ShiftDelta {
				c.ConstrainLeft(grown.Right, otherMovement.X)
				shiftout = true
			}
		} else {
			if itop < r.ShiftDelta {
				c.ConstrainBottom(grown.Top, otherMovement.Y)
				shiftout = true
			} else if ibottom < r.ShiftDelta {
				c.ConstrainTop(grown.Bottom, otherMovement.Y)
				shiftout = true
			}
		}
	}
	if shiftout {
		return c, true
	}

	if unisolid {
		if moving.Bottom-movement.Y <= grown.Top {
			c.ConstrainBottom(other.Top, otherMovement.Y)
			c.Hit.Bottom = true
			c.GroundMovement = otherMovement
		}
		return c, false
	}
	SetRectangleRectangleConstraints(&c, moving, grown, otherMovement)
	return c, false
}

// HitNormal returns the side r1 hits r2 on and the penetration along that
// axis. r2 is pushed by the normal, r1 by its opposite.
func HitNormal(r1, r2 gamemath.Rect) (Hit, gamemath.Vector) {
	itop := r1.Bottom - r2.Top
	ibottom := r2.Bottom - r1.Top
	ileft := r1.Right - r2.Left
	iright := r2.Right - r1.Left

	vert := math.Min(itop, ibottom)
	horiz := math.Min(ileft, iright)

	var hit Hit
	var normal gamemath.Vector
	if vert < horiz {
		if itop < ibottom {
			hit.Bottom = true
			normal.Y = vert
		} else {
			hit.Top = true
			normal.Y = -vert
		}
	} else {
		if ileft < iright {
			hit.Right = true
			normal.X = horiz
		} else {
			hit.Left = true
			normal.X = -horiz
		}
	}
	return hit, normal
}
