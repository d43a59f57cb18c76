package numeric

import "math"

type Array []float64

func (a Array) Clone() Array {
	c := make(Array, len(a))
	copy(c, a)
	return c
}

func (a Array) Len() int { return len(a) }

func (a Array) Sum() float64 {
	sum := 0.0
	for _, v := range a {
		sum += v
	}
	return sum
}

// IsValid reports whether every entry is finite.
func (a Array) IsValid() bool {
	for _, v := range a {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Vec3 is one atom's position or momentum.
type Vec3 [3]float64

func (v Vec3) Norm() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}
