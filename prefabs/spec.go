package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// SceneFile is the embedded scene spec name.
const SceneFile = "scene.yaml"

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

type SceneSpec struct {
	Name             string        `yaml:"name"`
	Attractor        AttractorSpec `yaml:"attractor"`
	Polygon          PolygonSpec   `yaml:"polygon"`
	PaletteThreshold float64       `yaml:"palette_threshold"`
	Circles          CirclesSpec   `yaml:"circles"`
}

type AttractorSpec struct {
	// RadiusDivisor: radius = max(w, h) / RadiusDivisor / 2.
	RadiusDivisor float64   `yaml:"radius_divisor"`
	Friction      float64   `yaml:"friction"`
	Style         StyleSpec `yaml:"style"`
}

type PolygonSpec struct {
	LargeChance float64   `yaml:"large_chance"`
	LargeSize   RangeSpec `yaml:"large_size"`
	SmallSize   RangeSpec `yaml:"small_size"`
	MinSides    int       `yaml:"min_sides"`
	MaxSides    int       `yaml:"max_sides"`
	MassDivisor float64   `yaml:"mass_divisor"`
	Friction    float64   `yaml:"friction"`
	FrictionAir float64   `yaml:"friction_air"`
	Style       StyleSpec `yaml:"style"`
}

type CirclesSpec struct {
	Small  CircleSpec `yaml:"small"`
	Medium CircleSpec `yaml:"medium"`
	Large  CircleSpec `yaml:"large"`
}

type CircleSpec struct {
	Radius      RangeSpec `yaml:"radius"`
	Mass        float64   `yaml:"mass"`
	Friction    float64   `yaml:"friction"`
	FrictionAir float64   `yaml:"friction_air"`
	Style       StyleSpec `yaml:"style"`
}

// RangeSpec is a half-open [Min, Max) interval.
type RangeSpec struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

type StyleSpec struct {
	Fill        YAMLColor  `yaml:"fill"`
	AltFill     *YAMLColor `yaml:"alt_fill"`
	Stroke      YAMLColor  `yaml:"stroke"`
	StrokeWidth float64    `yaml:"stroke_width"`
}

// FillFor picks Fill when r is above threshold and AltFill otherwise.
func (s StyleSpec) FillFor(r, threshold float64) color.RGBA {
	if r > threshold || s.AltFill == nil {
		return s.Fill.RGBA
	}
	return s.AltFill.RGBA
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadSceneSpec reads the scene spec from path, or from the prefab
// directory (disk first, then embedded) when path is empty.
func LoadSceneSpec(path string) (*SceneSpec, error) {
	var (
		spec SceneSpec
		err  error
	)
	name := SceneFile
	if path == "" {
		spec, err = LoadSpec[SceneSpec](SceneFile)
		if err != nil {
			return nil, err
		}
	} else {
		name = path
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, fmt.Errorf("prefabs: load %s: %w", path, readErr)
		}
		if err := yaml.Unmarshal(data, &spec); err != nil {
			return nil, fmt.Errorf("prefabs: unmarshal %s: %w", path, err)
		}
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: validate %s: %w", name, err)
	}
	return &spec, nil
}

func (s *SceneSpec) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: nil scene", ErrInvalidSpec)
	}
	var errs []error
	if !positive(s.Attractor.RadiusDivisor) {
		errs = append(errs, fmt.Errorf("attractor.radius_divisor must be positive, got %v", s.Attractor.RadiusDivisor))
	}
	if !nonNegative(s.Attractor.Friction) {
		errs = append(errs, fmt.Errorf("attractor.friction must be >= 0, got %v", s.Attractor.Friction))
	}

	p := s.Polygon
	if !unit(p.LargeChance) {
		errs = append(errs, fmt.Errorf("polygon.large_chance must be in [0,1], got %v", p.LargeChance))
	}
	errs = appendRange(errs, "polygon.large_size", p.LargeSize)
	errs = appendRange(errs, "polygon.small_size", p.SmallSize)
	if p.MinSides < 3 || p.MaxSides < p.MinSides {
		errs = append(errs, fmt.Errorf("polygon sides must satisfy 3 <= min_sides <= max_sides, got %d..%d", p.MinSides, p.MaxSides))
	}
	if !positive(p.MassDivisor) {
		errs = append(errs, fmt.Errorf("polygon.mass_divisor must be positive, got %v", p.MassDivisor))
	}
	errs = appendMaterial(errs, "polygon", 1, p.Friction, p.FrictionAir)

	if !unit(s.PaletteThreshold) {
		errs = append(errs, fmt.Errorf("palette_threshold must be in [0,1], got %v", s.PaletteThreshold))
	}

	for _, c := range []struct {
		name string
		spec CircleSpec
	}{
		{"circles.small", s.Circles.Small},
		{"circles.medium", s.Circles.Medium},
		{"circles.large", s.Circles.Large},
	} {
		errs = appendRange(errs, c.name+".radius", c.spec.Radius)
		errs = appendMaterial(errs, c.name, c.spec.Mass, c.spec.Friction, c.spec.FrictionAir)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidSpec, errors.Join(errs...))
	}
	return nil
}

func appendRange(errs []error, name string, r RangeSpec) []error {
	if !positive(r.Min) || !finite(r.Max) || r.Max < r.Min {
		return append(errs, fmt.Errorf("%s must satisfy 0 < min <= max, got [%v, %v)", name, r.Min, r.Max))
	}
	return errs
}

func appendMaterial(errs []error, name string, mass, friction, frictionAir float64) []error {
	if !positive(mass) {
		errs = append(errs, fmt.Errorf("%s.mass must be positive, got %v", name, mass))
	}
	if !nonNegative(friction) {
		errs = append(errs, fmt.Errorf("%s.friction must be >= 0, got %v", name, friction))
	}
	if !unit(frictionAir) {
		errs = append(errs, fmt.Errorf("%s.friction_air must be in [0,1], got %v", name, frictionAir))
	}
	return errs
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func positive(v float64) bool {
	return finite(v) && v > 0
}

func nonNegative(v float64) bool {
	return finite(v) && v >= 0
}

func unit(v float64) bool {
	return finite(v) && v >= 0 && v <= 1
}

// YAMLColor accepts #rrggbb, #rrggbbaa or an SVG color name.
type YAMLColor struct {
	color.RGBA
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	if named, ok := colornames.Map[strings.ToLower(value.Value)]; ok {
		c.RGBA = named
		return nil
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	var rgba [4]uint8
	rgba[3] = 255
	for i := 0; i < len(s)/2; i++ {
		v, err := parse(i * 2)
		if err != nil {
			return fmt.Errorf("invalid color %s: %w", value.Value, err)
		}
		rgba[i] = v
	}

	c.RGBA = color.RGBAModel.Convert(color.NRGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}).(color.RGBA)
	return nil
}
