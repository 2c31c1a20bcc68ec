package viewport

import "math"

// Transform is a uniform scale followed by a translation, the only kind of
// mapping a pixel grid display needs:
//
//	x' = S*x + TX
//	y' = S*y + TY
type Transform struct {
	S      float64
	TX, TY float64
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{S: 1}
}

// Apply maps a point.
func (t Transform) Apply(x, y float64) (float64, float64) {
	return t.S*x + t.TX, t.S*y + t.TY
}

// Then returns the transform that applies t first, then next.
func (t Transform) Then(next Transform) Transform {
	return Transform{
		S:  next.S * t.S,
		TX: next.S*t.TX + next.TX,
		TY: next.S*t.TY + next.TY,
	}
}

// Invert returns the inverse transform.
// Returns the identity transform if t is not invertible.
func (t Transform) Invert() Transform {
	if math.Abs(t.S) < 1e-10 {
		return Identity()
	}
	inv := 1 / t.S
	return Transform{S: inv, TX: -t.TX * inv, TY: -t.TY * inv}
}
