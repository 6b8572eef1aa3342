package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/attractors/ecs"
	"github.com/milk9111/attractors/ecs/component"
	"github.com/milk9111/attractors/prefabs"
)

func styleFrom(spec prefabs.StyleSpec, fill color.RGBA) *component.Style {
	return &component.Style{
		Fill:        fill,
		Stroke:      spec.Stroke.RGBA,
		StrokeWidth: spec.StrokeWidth,
	}
}

// NewAttractor creates the static driver body carrying law.
func NewAttractor(w *ecs.World, spec prefabs.AttractorSpec, x, y, radius float64, law component.ForceFunc) (ecs.Entity, error) {
	if law == nil {
		return 0, fmt.Errorf("attractor: nil force law")
	}
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}); err != nil {
		return 0, discard(w, e, fmt.Errorf("attractor: add transform: %w", err))
	}
	if err := ecs.Add(w, e, component.BodyComponent.Kind(), &component.Body{
		Kind:     component.BodyAttractor,
		Radius:   radius,
		Friction: spec.Friction,
		Static:   true,
	}); err != nil {
		return 0, discard(w, e, fmt.Errorf("attractor: add body: %w", err))
	}
	if err := ecs.Add(w, e, component.StyleComponent.Kind(), styleFrom(spec.Style, spec.Style.Fill.RGBA)); err != nil {
		return 0, discard(w, e, fmt.Errorf("attractor: add style: %w", err))
	}
	if err := ecs.Add(w, e, component.AttractorComponent.Kind(), &component.Attractor{Force: law}); err != nil {
		return 0, discard(w, e, fmt.Errorf("attractor: add force hook: %w", err))
	}
	return e, nil
}

// NewPolygon creates a regular polygon of the given circumradius. Its mass
// is size divided by the prefab's mass divisor.
func NewPolygon(w *ecs.World, spec prefabs.PolygonSpec, group component.SpawnGroup, sides int, size, rotation float64) (ecs.Entity, error) {
	body := &component.Body{
		Kind:        component.BodyPolygon,
		Sides:       sides,
		Size:        size,
		Mass:        size / spec.MassDivisor,
		Friction:    spec.Friction,
		FrictionAir: spec.FrictionAir,
	}
	return newGroupMember(w, "polygon", group, rotation, body, styleFrom(spec.Style, spec.Style.Fill.RGBA))
}

// NewCircle creates one of the three circle kinds of a spawn group.
func NewCircle(w *ecs.World, kind component.BodyKind, spec prefabs.CircleSpec, group component.SpawnGroup, radius float64, fill color.RGBA) (ecs.Entity, error) {
	if !kind.IsCircle() || kind == component.BodyAttractor {
		return 0, fmt.Errorf("circle: %s is not a circle kind", kind)
	}
	body := &component.Body{
		Kind:        kind,
		Radius:      radius,
		Mass:        spec.Mass,
		Friction:    spec.Friction,
		FrictionAir: spec.FrictionAir,
	}
	return newGroupMember(w, kind.String(), group, 0, body, styleFrom(spec.Style, fill))
}

func newGroupMember(w *ecs.World, name string, group component.SpawnGroup, rotation float64, body *component.Body, style *component.Style) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        group.OriginX,
		Y:        group.OriginY,
		Rotation: rotation,
	}); err != nil {
		return 0, discard(w, e, fmt.Errorf("%s: add transform: %w", name, err))
	}
	if err := ecs.Add(w, e, component.BodyComponent.Kind(), body); err != nil {
		return 0, discard(w, e, fmt.Errorf("%s: add body: %w", name, err))
	}
	if err := ecs.Add(w, e, component.StyleComponent.Kind(), style); err != nil {
		return 0, discard(w, e, fmt.Errorf("%s: add style: %w", name, err))
	}
	g := group
	if err := ecs.Add(w, e, component.SpawnGroupComponent.Kind(), &g); err != nil {
		return 0, discard(w, e, fmt.Errorf("%s: add spawn group: %w", name, err))
	}
	return e, nil
}

func discard(w *ecs.World, e ecs.Entity, err error) error {
	ecs.DestroyEntity(w, e)
	return err
}
