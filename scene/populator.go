package scene

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/milk9111/attractors/ecs"
	"github.com/milk9111/attractors/ecs/component"
	"github.com/milk9111/attractors/ecs/entity"
	"github.com/milk9111/attractors/prefabs"
	"go.uber.org/zap"
)

// DefaultBodyCount is the number of spawn groups in a default scene.
const DefaultBodyCount = 60

// Populator generates scenes from a spec. The force law is injected here and
// attached to the attractor of every world it builds.
type Populator struct {
	spec   *prefabs.SceneSpec
	law    component.ForceFunc
	rng    *rand.Rand
	logger *zap.Logger
}

func NewPopulator(spec *prefabs.SceneSpec, law component.ForceFunc, rng *rand.Rand, logger *zap.Logger) (*Populator, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSceneParameters, err)
	}
	if law == nil {
		return nil, fmt.Errorf("%w: nil force law", ErrInvalidSceneParameters)
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Populator{spec: spec, law: law, rng: rng, logger: logger}, nil
}

// Populate builds a world holding one attractor at the viewport centre and
// bodyCount spawn groups of four co-located bodies each.
func (p *Populator) Populate(width, height float64, bodyCount int) (*ecs.World, error) {
	if err := ValidateParameters(width, height, bodyCount); err != nil {
		return nil, err
	}

	w := ecs.NewWorld()
	radius := math.Max(width, height) / p.spec.Attractor.RadiusDivisor / 2
	if _, err := entity.NewAttractor(w, p.spec.Attractor, width/2, height/2, radius, p.law); err != nil {
		return nil, fmt.Errorf("scene: populate: %w", err)
	}

	for i := 0; i < bodyCount; i++ {
		if err := p.spawnGroup(w, i, width, height); err != nil {
			return nil, fmt.Errorf("scene: populate group %d: %w", i, err)
		}
	}

	p.logger.Debug("populated",
		zap.Float64("width", width),
		zap.Float64("height", height),
		zap.Int("groups", bodyCount),
		zap.Int("bodies", w.Len()),
	)
	return w, nil
}

func (p *Populator) spawnGroup(w *ecs.World, index int, width, height float64) error {
	group := component.SpawnGroup{
		Index:   index,
		OriginX: p.uniform(0, width),
		OriginY: p.uniform(0, height),
	}

	poly := p.spec.Polygon
	sizes := poly.SmallSize
	if p.rng.Float64() < poly.LargeChance {
		sizes = poly.LargeSize
	}
	size := p.uniform(sizes.Min, sizes.Max)
	sides := poly.MinSides + p.rng.IntN(poly.MaxSides-poly.MinSides+1)
	rotation := p.uniform(0, 2*math.Pi)
	if _, err := entity.NewPolygon(w, poly, group, sides, size, rotation); err != nil {
		return err
	}

	// r only picks a palette.
	r := p.rng.Float64()
	circles := []struct {
		kind component.BodyKind
		spec prefabs.CircleSpec
	}{
		{component.BodySmallCircle, p.spec.Circles.Small},
		{component.BodyMediumCircle, p.spec.Circles.Medium},
		{component.BodyLargeCircle, p.spec.Circles.Large},
	}
	for _, c := range circles {
		radius := p.uniform(c.spec.Radius.Min, c.spec.Radius.Max)
		fill := c.spec.Style.FillFor(r, p.spec.PaletteThreshold)
		if _, err := entity.NewCircle(w, c.kind, c.spec, group, radius, fill); err != nil {
			return err
		}
	}
	return nil
}

func (p *Populator) uniform(lo, hi float64) float64 {
	return lo + p.rng.Float64()*(hi-lo)
}
