package gamemath

// Slope directions name the corner of the tile that is solid.
const (
	SouthWest = 0
	NorthEast = 1
	SouthEast = 2
	NorthWest = 3

	DirectionMask = 0x0003
)

// Deform flags squash the triangle into one half of its tile.
const (
	DeformBottom = 0x0010
	DeformTop    = 0x0020
	DeformLeft   = 0x0030
	DeformRight  = 0x0040

	DeformMask = 0x0070
)

// Full marks a slope tile whose triangle covers the whole tile. Such a tile
// collides exactly like a solid rectangle.
const Full = 0x0080

// Tiled "slope" property values, kept for maps authored with string names.
const (
	SlopeUpRight = "45_up_right"
	SlopeUpLeft  = "45_up_left"
)

// AATriangle is an axis-aligned right triangle inside BBox.
type AATriangle struct {
	BBox Rect
	Dir  int
}

func NewAATriangle(bbox Rect, dir int) AATriangle {
	return AATriangle{BBox: bbox, Dir: dir}
}

func (t AATriangle) Direction() int { return t.Dir & DirectionMask }
func (t AATriangle) Deform() int    { return t.Dir & DeformMask }
func (t AATriangle) IsFull() bool   { return t.Dir&Full != 0 }

// IsSouth reports whether the solid part is at the bottom, i.e. the slope
// is walkable from above.
func (t AATriangle) IsSouth() bool {
	d := t.Direction()
	return d == SouthWest || d == SouthEast
}

// Area is the region the triangle actually occupies once deform flags are
// applied.
func (t AATriangle) Area() Rect {
	a := t.BBox
	switch t.Deform() {
	case DeformBottom:
		a.Top += a.Height() / 2
	case DeformTop:
		a.Bottom -= a.Height() / 2
	case DeformLeft:
		a.Right -= a.Width() / 2
	case DeformRight:
		a.Left += a.Width() / 2
	}
	return a
}

// SurfaceY returns the Y of the hypotenuse at x. For south slopes that is
// the walkable top surface, for north slopes the underside.
func (t AATriangle) SurfaceY(x float64) float64 {
	a := t.Area()
	if t.IsFull() {
		if t.IsSouth() {
			return a.Top
		}
		return a.Bottom
	}
	rel := 0.0
	if a.Width() > 0 {
		rel = Clamp(x-a.Left, 0, a.Width()) / a.Width()
	}
	switch t.Direction() {
	case SouthWest:
		return a.Top + a.Height()*rel
	case SouthEast:
		return a.Top + a.Height()*(1-rel)
	case NorthWest:
		return a.Bottom - a.Height()*rel
	default:
		return a.Top + a.Height()*rel
	}
}

// VerticalFlip mirrors slope data upside down: north and south swap, and so
// do the top and bottom deform flags.
func VerticalFlip(dir int) int {
	direction := dir & DirectionMask
	deform := dir & DeformMask
	switch direction {
	case NorthWest:
		direction = SouthWest
	case NorthEast:
		direction = SouthEast
	case SouthWest:
		direction = NorthWest
	case SouthEast:
		direction = NorthEast
	}
	switch deform {
	case DeformTop:
		deform = DeformBottom
	case DeformBottom:
		deform = DeformTop
	}
	return direction | deform | (dir & Full)
}

// SlopeData converts a Tiled slope name into triangle data. An up-right ramp
// rises to the right, so its solid corner is the south-east one.
func SlopeData(name string) (int, bool) {
	switch name {
	case SlopeUpRight:
		return SouthEast, true
	case SlopeUpLeft:
		return SouthWest, true
	}
	return 0, false
}
