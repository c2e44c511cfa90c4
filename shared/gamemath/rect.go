package gamemath

import "math"

// Rect is an axis-aligned box. Y grows downward, so Top <= Bottom for a
// valid rectangle.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// NewRect builds a rectangle from a position and a size, the way Tiled
// objects and resolv shapes are described.
func NewRect(x, y, w, h float64) Rect {
	return Rect{Left: x, Top: y, Right: x + w, Bottom: y + h}
}

func (r Rect) Width() float64  { return r.Right - r.Left }
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Valid reports whether the rectangle has non-negative extent and no NaN
// coordinates.
func (r Rect) Valid() bool {
	return r.Right >= r.Left && r.Bottom >= r.Top
}

func (r Rect) Pos() Vector {
	return Vector{r.Left, r.Top}
}

func (r Rect) Center() Vector {
	return Vector{(r.Left + r.Right) / 2, (r.Top + r.Bottom) / 2}
}

func (r Rect) Move(v Vector) Rect {
	return Rect{r.Left + v.X, r.Top + v.Y, r.Right + v.X, r.Bottom + v.Y}
}

// SetPos moves the rectangle so its top-left corner is at p, keeping its size.
func (r Rect) SetPos(p Vector) Rect {
	return NewRect(p.X, p.Y, r.Width(), r.Height())
}

// Grown returns the rectangle expanded by d on every side.
func (r Rect) Grown(d float64) Rect {
	return Rect{r.Left - d, r.Top - d, r.Right + d, r.Bottom + d}
}

// Overlaps reports a strictly positive-area intersection.
func (r Rect) Overlaps(o Rect) bool {
	return r.Right > o.Left && r.Left < o.Right &&
		r.Bottom > o.Top && r.Top < o.Bottom
}

// Intersects is like Overlaps but rectangles that only touch count.
func (r Rect) Intersects(o Rect) bool {
	if r.Right < o.Left || r.Left > o.Right {
		return false
	}
	if r.Bottom < o.Top || r.Top > o.Bottom {
		return false
	}
	return true
}

func (r Rect) Contains(p Vector) bool {
	return p.X >= r.Left && p.X < r.Right && p.Y >= r.Top && p.Y < r.Bottom
}

// Distance returns how far p lies outside the rectangle, 0 when inside.
func (r Rect) Distance(p Vector) float64 {
	dx := math.Max(0, math.Max(r.Left-p.X, p.X-r.Right))
	dy := math.Max(0, math.Max(r.Top-p.Y, p.Y-r.Bottom))
	return math.Hypot(dx, dy)
}

// IntersectsLine reports whether the segment a-b crosses or lies inside r.
func (r Rect) IntersectsLine(a, b Vector) bool {
	if r.Contains(a) || r.Contains(b) {
		return true
	}
	tl := Vector{r.Left, r.Top}
	tr := Vector{r.Right, r.Top}
	bl := Vector{r.Left, r.Bottom}
	br := Vector{r.Right, r.Bottom}
	return SegmentsIntersect(a, b, tl, tr) ||
		SegmentsIntersect(a, b, tr, br) ||
		SegmentsIntersect(a, b, br, bl) ||
		SegmentsIntersect(a, b, bl, tl)
}

// SegmentsIntersect reports whether segments p1-p2 and p3-p4 share a point.
func SegmentsIntersect(p1, p2, p3, p4 Vector) bool {
	d1 := cross(p3, p4, p1)
	d2 := cross(p3, p4, p2)
	d3 := cross(p1, p2, p3)
	d4 := cross(p1, p2, p4)
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	return (d1 == 0 && onSegment(p3, p4, p1)) ||
		(d2 == 0 && onSegment(p3, p4, p2)) ||
		(d3 == 0 && onSegment(p1, p2, p3)) ||
		(d4 == 0 && onSegment(p1, p2, p4))
}

func cross(a, b, c Vector) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func onSegment(a, b, p Vector) bool {
	return math.Min(a.X, b.X) <= p.X && p.X <= math.Max(a.X, b.X) &&
		math.Min(a.Y, b.Y) <= p.Y && p.Y <= math.Max(a.Y, b.Y)
}
