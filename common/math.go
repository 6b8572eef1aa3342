package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// RegularPolygon returns the vertices of a regular polygon centred on the
// origin, with its first vertex half a segment past the +X axis.
func RegularPolygon(sides int, radius float64) []cp.Vector {
	if sides < 3 {
		return nil
	}
	theta := 2 * math.Pi / float64(sides)
	offset := theta * 0.5
	verts := make([]cp.Vector, sides)
	for i := range verts {
		angle := offset + float64(i)*theta
		verts[i] = cp.Vector{X: math.Cos(angle) * radius, Y: math.Sin(angle) * radius}
	}
	return verts
}
