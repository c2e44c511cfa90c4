package collision

import (
	"math"

	"github.com/automoto/platcollide/shared/gamemath"
)

// Constraints collects the bounds a moving object may not cross this tick.
// Each bound remembers the velocity of the surface that set it.
type Constraints struct {
	positionLeft, positionRight float64
	positionTop, positionBottom float64

	speedLeft, speedRight float64
	speedTop, speedBottom float64

	// GroundMovement is the displacement of whatever the object stands on.
	GroundMovement gamemath.Vector
	Hit            Hit
}

func NewConstraints() Constraints {
	return Constraints{
		positionLeft:   math.Inf(-1),
		positionRight:  math.Inf(1),
		positionTop:    math.Inf(-1),
		positionBottom: math.Inf(1),
	}
}

func (c *Constraints) HasConstraints() bool {
	return !math.IsInf(c.positionLeft, -1) || !math.IsInf(c.positionRight, 1) ||
		!math.IsInf(c.positionTop, -1) || !math.IsInf(c.positionBottom, 1)
}

func (c *Constraints) ConstrainLeft(position, velocity float64) {
	if position > c.positionLeft {
		c.positionLeft = position
		c.speedLeft = velocity
	}
}

func (c *Constraints) ConstrainRight(position, velocity float64) {
	if position < c.positionRight {
		c.positionRight = position
		c.speedRight = velocity
	}
}

func (c *Constraints) ConstrainTop(position, velocity float64) {
	if position > c.positionTop {
		c.positionTop = position
		c.speedTop = velocity
	}
}

func (c *Constraints) ConstrainBottom(position, velocity float64) {
	if position < c.positionBottom {
		c.positionBottom = position
		c.speedBottom = velocity
	}
}

func (c *Constraints) PositionLeft() float64   { return c.positionLeft }
func (c *Constraints) PositionRight() float64  { return c.positionRight }
func (c *Constraints) PositionTop() float64    { return c.positionTop }
func (c *Constraints) PositionBottom() float64 { return c.positionBottom }

func (c *Constraints) SpeedLeft() float64   { return c.speedLeft }
func (c *Constraints) SpeedRight() float64  { return c.speedRight }
func (c *Constraints) SpeedTop() float64    { return c.speedTop }
func (c *Constraints) SpeedBottom() float64 { return c.speedBottom }

func (c *Constraints) Width() float64     { return c.positionRight - c.positionLeft }
func (c *Constraints) Height() float64    { return c.positionBottom - c.positionTop }
func (c *Constraints) XMidpoint() float64 { return (c.positionLeft + c.positionRight) / 2 }

// Merge tightens c with every bound of o and unions the hit flags. The
// first ground movement seen is kept, so several tiles of one moving map do
// not carry the object several times. Ground from separate maps is summed by
// the engine.
func (c *Constraints) Merge(o Constraints) {
	c.ConstrainLeft(o.positionLeft, o.speedLeft)
	c.ConstrainRight(o.positionRight, o.speedRight)
	c.ConstrainTop(o.positionTop, o.speedTop)
	c.ConstrainBottom(o.positionBottom, o.speedBottom)
	if c.GroundMovement.IsZero() {
		c.GroundMovement = o.GroundMovement
	}
	c.Hit = c.Hit.Union(o.Hit)
}
