package primitives

import (
	"math"

	"golang.org/x/exp/constraints"
)

type Number interface {
	constraints.Integer | constraints.Float
}

func Abs[T constraints.Signed | constraints.Float](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

// Angle is the set of types able to hold a full turn of 360 degrees.
type Angle interface {
	~int | ~int16 | ~int32 | ~int64 | constraints.Float
}

// CircularDiff is the shorter way around a 360 degree circle between a and b.
func CircularDiff[T Angle](a, b T) T {
	d := Abs(a - b)
	return min(d, 360-d)
}

func Distance[T Number](x1, y1, x2, y2 T) float64 {
	return math.Hypot(float64(x1)-float64(x2), float64(y1)-float64(y2))
}
