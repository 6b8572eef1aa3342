package component

import "github.com/jakecoffman/cp"

// ForceFunc returns the force a body at attractor exerts on a body at body.
// Implementations must be pure.
type ForceFunc func(attractor, body cp.Vector) cp.Vector

// Attractor marks the single driver body and carries its force law.
type Attractor struct {
	Force ForceFunc
}

var AttractorComponent = NewComponent[Attractor]("attractor")
