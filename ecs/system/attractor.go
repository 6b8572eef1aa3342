package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/attractors/common"
	"github.com/milk9111/attractors/ecs"
	"github.com/milk9111/attractors/ecs/component"
)

// AttractorSmoothing is the fraction of the remaining distance to the
// pointer the attractor covers each tick.
const AttractorSmoothing = 0.12

// PointerSource reports the freshest pointer position, or false when the
// pointer has not been seen yet.
type PointerSource interface {
	Pointer() (cp.Vector, bool)
}

// AttractorSystem nudges the attractor toward the pointer. It runs after
// the physics step and only ever writes positions, never velocities.
type AttractorSystem struct {
	pointer   PointerSource
	smoothing float64
}

func NewAttractorSystem(pointer PointerSource) *AttractorSystem {
	return &AttractorSystem{pointer: pointer, smoothing: AttractorSmoothing}
}

func (as *AttractorSystem) Update(w *ecs.World) {
	if as == nil || as.pointer == nil || w == nil {
		return
	}
	target, ok := as.pointer.Pointer()
	if !ok {
		return
	}

	ecs.ForEach2(w, component.AttractorComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.Attractor, t *component.Transform) {
		next := Follow(cp.Vector{X: t.X, Y: t.Y}, target, as.smoothing)
		t.X = next.X
		t.Y = next.Y
		if pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && pb.Body != nil {
			pb.Body.SetPosition(next)
		}
	})
}

// Follow moves current the given fraction of the way to target.
func Follow(current, target cp.Vector, factor float64) cp.Vector {
	return cp.Vector{
		X: common.Lerp(current.X, target.X, factor),
		Y: common.Lerp(current.Y, target.Y, factor),
	}
}
