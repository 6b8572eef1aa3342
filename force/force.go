// Package force holds the attraction laws an attractor body can carry.
package force

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/attractors/ecs/component"
)

// DefaultScale is the spring constant of the default law.
const DefaultScale = 1e-6

// Default pulls with DefaultScale.
var Default = Linear(DefaultScale)

// Linear returns a law proportional to the displacement from body to
// attractor, independent of mass. Coincident bodies feel no force.
func Linear(scale float64) component.ForceFunc {
	return func(attractor, body cp.Vector) cp.Vector {
		return cp.Vector{
			X: (attractor.X - body.X) * scale,
			Y: (attractor.Y - body.Y) * scale,
		}
	}
}
