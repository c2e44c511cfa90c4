package gamemath

// ApplyFriction reduces speed toward zero by friction amount.
func ApplyFriction(speedX, friction float64) float64 {
	if speedX > friction {
		return speedX - friction
	}
	if speedX < -friction {
		return speedX + friction
	}
	return 0
}

// ClampSpeed clamps a value to [-max, max].
func ClampSpeed(speed, max float64) float64 {
	if speed > max {
		return max
	}
	if speed < -max {
		return -max
	}
	return speed
}

// ClampMovement limits the length of a per-tick displacement to max,
// keeping its direction.
func ClampMovement(v Vector, max float64) Vector {
	if v.Len() > max {
		return v.Normalize().Scale(max)
	}
	return v
}
