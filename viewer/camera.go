package viewer

import (
	"math"

	"github.com/automoto/platcollide/shared/gamemath"
)

// followSmoothing is the fraction of the distance to the target the camera
// covers each frame.
const followSmoothing = 0.1

// Camera is the world position shown at the screen centre.
type Camera struct {
	Position gamemath.Vector
}

// Follow moves the camera towards target, keeping the level filling the
// screen. A level smaller than the screen is centred on that axis.
func (c *Camera) Follow(target gamemath.Vector, levelW, levelH, screenW, screenH float64) {
	targetX := clampAxis(target.X, levelW, screenW)
	targetY := clampAxis(target.Y, levelH, screenH)

	c.Position.X += (targetX - c.Position.X) * followSmoothing
	c.Position.Y += (targetY - c.Position.Y) * followSmoothing
}

// Snap jumps straight to the clamped target.
func (c *Camera) Snap(target gamemath.Vector, levelW, levelH, screenW, screenH float64) {
	c.Position = gamemath.Vector{
		X: clampAxis(target.X, levelW, screenW),
		Y: clampAxis(target.Y, levelH, screenH),
	}
}

// Offset is the translation from world to screen coordinates.
func (c *Camera) Offset(screenW, screenH float64) gamemath.Vector {
	return gamemath.Vector{
		X: math.Round(screenW/2 - c.Position.X),
		Y: math.Round(screenH/2 - c.Position.Y),
	}
}

func clampAxis(v, level, screen float64) float64 {
	lo, hi := screen/2, level-screen/2
	if hi < lo {
		return level / 2
	}
	return math.Max(lo, math.Min(hi, v))
}
