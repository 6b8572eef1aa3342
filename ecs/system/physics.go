package system

import (
	"errors"
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/attractors/common"
	"github.com/milk9111/attractors/ecs"
	"github.com/milk9111/attractors/ecs/component"
	"go.uber.org/zap"
)

// DefaultStepMillis is one 60 Hz tick. The space is stepped in milliseconds
// so a force F is worth F/m·dt² of displacement per tick. Chipmunk
// integrates positions before velocities, so a force accumulated in one
// step first moves the body in the next.
const DefaultStepMillis = 1000.0 / 60.0

const spaceIterations = 20

var ErrInvalidStep = errors.New("physics: step must be finite and positive")

type PhysicsSystem struct {
	space    *cp.Space
	step     float64
	logger   *zap.Logger
	detached bool

	entities   map[ecs.Entity]*bodyInfo
	attractors []attractorRef
}

type bodyInfo struct {
	entity      ecs.Entity
	body        *cp.Body
	shape       *cp.Shape
	frictionAir float64
	kinematic   bool
}

type attractorRef struct {
	body  *cp.Body
	force component.ForceFunc
}

func NewPhysicsSystem(stepMillis float64, logger *zap.Logger) (*PhysicsSystem, error) {
	if math.IsNaN(stepMillis) || math.IsInf(stepMillis, 0) || stepMillis <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidStep, stepMillis)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	space := cp.NewSpace()
	space.Iterations = spaceIterations
	space.SetGravity(cp.Vector{})
	return &PhysicsSystem{
		space:    space,
		step:     stepMillis,
		logger:   logger,
		entities: make(map[ecs.Entity]*bodyInfo),
	}, nil
}

// Detached reports whether Detach has run.
func (ps *PhysicsSystem) Detached() bool {
	return ps == nil || ps.detached
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || ps.detached || w == nil {
		return
	}
	if err := ps.Sync(w); err != nil {
		ps.logger.Warn("sync failed", zap.Error(err))
	}
	ps.collectAttractors(w)
	ps.space.Step(ps.step)
	ps.syncTransforms(w)
}

// Sync registers every entity that has a Body and Transform but no engine
// handles yet.
func (ps *PhysicsSystem) Sync(w *ecs.World) error {
	if ps == nil || ps.detached {
		return nil
	}
	for _, e := range ecs.Query(w, component.BodyComponent.Kind(), component.TransformComponent.Kind()) {
		if _, ok := ps.entities[e]; ok {
			continue
		}
		body, _ := ecs.Get(w, e, component.BodyComponent.Kind())
		transform, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		info, err := ps.createBodyInfo(e, *transform, *body)
		if err != nil {
			return fmt.Errorf("physics: register %s: %w", e, err)
		}
		ps.entities[e] = info
		if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Body: info.body, Shape: info.shape}); err != nil {
			return fmt.Errorf("physics: register %s: %w", e, err)
		}
	}
	return nil
}

func (ps *PhysicsSystem) createBodyInfo(e ecs.Entity, transform component.Transform, spec component.Body) (*bodyInfo, error) {
	info := &bodyInfo{entity: e, frictionAir: spec.FrictionAir, kinematic: spec.Static}
	pos := cp.Vector{X: transform.X, Y: transform.Y}

	if spec.Static {
		// Kinematic bodies ignore forces and contact impulses but can still
		// be moved by setting their position.
		info.body = cp.NewKinematicBody()
	} else {
		if spec.Mass <= 0 {
			return nil, fmt.Errorf("mass must be positive, got %v", spec.Mass)
		}
		var moment float64
		if spec.Kind.IsCircle() {
			moment = cp.MomentForCircle(spec.Mass, 0, spec.Radius, cp.Vector{})
		} else {
			verts := common.RegularPolygon(spec.Sides, spec.Size)
			if verts == nil {
				return nil, fmt.Errorf("polygon needs at least 3 sides, got %d", spec.Sides)
			}
			moment = cp.MomentForPoly(spec.Mass, len(verts), verts, cp.Vector{}, 0)
		}
		info.body = cp.NewBody(spec.Mass, moment)
		info.body.SetVelocityUpdateFunc(ps.integrateVelocity)
	}
	info.body.SetPosition(pos)
	info.body.SetAngle(transform.Rotation)
	info.body.UserData = info

	if spec.Kind.IsCircle() {
		info.shape = cp.NewCircle(info.body, spec.Radius, cp.Vector{})
	} else {
		verts := common.RegularPolygon(spec.Sides, spec.Size)
		info.shape = cp.NewPolyShape(info.body, len(verts), verts, cp.NewTransformIdentity(), 0)
	}
	info.shape.SetFriction(spec.Friction)

	ps.space.AddBody(info.body)
	ps.space.AddShape(info.shape)
	ps.logger.Debug("registered body",
		zap.Stringer("entity", e),
		zap.Stringer("kind", spec.Kind),
		zap.Float64("x", pos.X),
		zap.Float64("y", pos.Y),
	)
	return info, nil
}

func (ps *PhysicsSystem) collectAttractors(w *ecs.World) {
	ps.attractors = ps.attractors[:0]
	ecs.ForEach2(w, component.AttractorComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(_ ecs.Entity, a *component.Attractor, pb *component.PhysicsBody) {
		if a.Force == nil || pb.Body == nil {
			return
		}
		ps.attractors = append(ps.attractors, attractorRef{body: pb.Body, force: a.Force})
	})
}

// integrateVelocity is installed as the velocity hook of every dynamic body.
// It is the force-accumulation pass: each attractor's law is evaluated once
// for the body, then air friction is applied as per-step damping.
func (ps *PhysicsSystem) integrateVelocity(body *cp.Body, gravity cp.Vector, _ float64, dt float64) {
	if ps.detached {
		return
	}
	damping := 1.0
	if info, ok := body.UserData.(*bodyInfo); ok {
		damping = 1 - info.frictionAir
	}
	body.SetForce(body.Force().Add(ps.attraction(body)))
	cp.BodyUpdateVelocity(body, gravity, damping, dt)
}

// attraction sums the force every attractor exerts on body, skipping an
// attractor's own body.
func (ps *PhysicsSystem) attraction(body *cp.Body) cp.Vector {
	var total cp.Vector
	if ps.detached {
		return total
	}
	for _, a := range ps.attractors {
		if a.body == body {
			continue
		}
		total = total.Add(a.force(a.body.Position(), body.Position()))
	}
	return total
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
		if pb.Body == nil {
			return
		}
		pos := pb.Body.Position()
		t.X = pos.X
		t.Y = pos.Y
		t.Rotation = pb.Body.Angle()
	})
}

// Detach removes every registered body from the space and turns Update and
// the velocity hook into no-ops. It is safe to call more than once.
func (ps *PhysicsSystem) Detach() {
	if ps == nil || ps.detached {
		return
	}
	ps.detached = true
	ps.attractors = nil
	for e, info := range ps.entities {
		if info.shape != nil {
			ps.space.RemoveShape(info.shape)
		}
		if info.body != nil {
			info.body.UserData = nil
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
	}
	ps.logger.Debug("detached from space")
}
