package scene

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/milk9111/attractors/ecs"
	"github.com/milk9111/attractors/ecs/component"
	"github.com/milk9111/attractors/ecs/system"
	"github.com/milk9111/attractors/prefabs"
	"github.com/milk9111/attractors/viewport"
	"go.uber.org/zap"
)

type Options struct {
	Width     float64
	Height    float64
	BodyCount int
	// StepMillis is the fixed physics step; zero means system.DefaultStepMillis.
	StepMillis float64
	// ResizeDelay is the resize quiet period; zero means viewport.DefaultResizeDelay.
	ResizeDelay time.Duration
	// ViewportWidth and ViewportHeight are the window size when it already
	// differs from Width and Height, e.g. a scene replaced mid resize. The
	// difference is queued as a resize at Now.
	ViewportWidth  int
	ViewportHeight int
	Now            time.Time

	Spec    *prefabs.SceneSpec
	Force   component.ForceFunc
	Rand    *rand.Rand
	Pointer system.PointerSource
	Surface viewport.Surface
	Logger  *zap.Logger
}

// Scene is one running instance: a populated world, the systems that tick
// it and the resize adapter that follows the viewport.
type Scene struct {
	id        uuid.UUID
	world     *ecs.World
	physics   *system.PhysicsSystem
	scheduler *ecs.Scheduler
	resize    *viewport.ResizeAdapter
	logger    *zap.Logger

	rendering bool
	tornDown  bool
}

// New validates opts, builds the engine and populates the world. Nothing is
// started when it returns an error.
func New(opts Options) (*Scene, error) {
	if err := ValidateParameters(opts.Width, opts.Height, opts.BodyCount); err != nil {
		return nil, err
	}
	id := uuid.New()
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.Stringer("scene_id", id))

	step := opts.StepMillis
	if step == 0 {
		step = system.DefaultStepMillis
	}
	physics, err := system.NewPhysicsSystem(step, logger.Named("physics"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEngineUnavailable, err)
	}

	populator, err := NewPopulator(opts.Spec, opts.Force, opts.Rand, logger.Named("populator"))
	if err != nil {
		return nil, err
	}
	world, err := populator.Populate(opts.Width, opts.Height, opts.BodyCount)
	if err != nil {
		return nil, err
	}
	if err := physics.Sync(world); err != nil {
		physics.Detach()
		return nil, fmt.Errorf("%w: %w", ErrEngineUnavailable, err)
	}

	s := &Scene{
		id:        id,
		world:     world,
		physics:   physics,
		scheduler: ecs.NewScheduler(physics, system.NewAttractorSystem(opts.Pointer)),
		resize:    viewport.NewResizeAdapter(opts.Surface, opts.ResizeDelay, logger.Named("viewport")),
		logger:    logger,
		rendering: true,
	}
	if opts.ViewportWidth > 0 && opts.ViewportHeight > 0 &&
		(float64(opts.ViewportWidth) != opts.Width || float64(opts.ViewportHeight) != opts.Height) {
		now := opts.Now
		if now.IsZero() {
			now = time.Now()
		}
		s.resize.OnResize(opts.ViewportWidth, opts.ViewportHeight, now)
	}
	logger.Info("scene started",
		zap.Float64("width", opts.Width),
		zap.Float64("height", opts.Height),
		zap.Int("groups", opts.BodyCount),
		zap.Int("bodies", world.Len()),
	)
	return s, nil
}

func (s *Scene) ID() uuid.UUID {
	return s.id
}

func (s *Scene) World() *ecs.World {
	return s.world
}

func (s *Scene) Physics() *system.PhysicsSystem {
	return s.physics
}

// Tick runs one simulation step: pending resizes first, then physics, then
// the attractor follow. It does nothing after Teardown.
func (s *Scene) Tick(now time.Time) {
	if s == nil || s.tornDown {
		return
	}
	s.resize.Poll(now)
	s.scheduler.Update(s.world)
}

// Render hands the world to draw while rendering is active.
func (s *Scene) Render(draw func(w *ecs.World)) {
	if s == nil || !s.rendering || draw == nil {
		return
	}
	draw(s.world)
}

// OnResize forwards a viewport resize to the debounced adapter.
func (s *Scene) OnResize(width, height int, now time.Time) {
	if s == nil {
		return
	}
	s.resize.OnResize(width, height, now)
}

func (s *Scene) TornDown() bool {
	return s == nil || s.tornDown
}

// Teardown stops rendering, then ticking, then resize handling, and finally
// destroys every body. Later calls to Tick, Render and OnResize are no-ops.
func (s *Scene) Teardown() {
	if s == nil || s.tornDown {
		return
	}
	s.rendering = false

	s.scheduler.Stop()
	s.physics.Detach()

	s.resize.Detach()

	for _, e := range ecs.Entities(s.world) {
		ecs.DestroyEntity(s.world, e)
	}
	s.tornDown = true
	s.logger.Info("scene torn down")
}
