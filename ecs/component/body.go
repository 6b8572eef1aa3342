package component

// BodyKind classifies the bodies a scene is made of.
type BodyKind uint8

const (
	BodyAttractor BodyKind = iota
	BodyPolygon
	BodySmallCircle
	BodyMediumCircle
	BodyLargeCircle
)

func (k BodyKind) String() string {
	switch k {
	case BodyAttractor:
		return "attractor"
	case BodyPolygon:
		return "polygon"
	case BodySmallCircle:
		return "small_circle"
	case BodyMediumCircle:
		return "medium_circle"
	case BodyLargeCircle:
		return "large_circle"
	default:
		return "unknown"
	}
}

// IsCircle reports whether bodies of this kind use a circle shape.
func (k BodyKind) IsCircle() bool {
	return k != BodyPolygon
}

// Body holds the immutable geometry and physical parameters a body was
// created with.
type Body struct {
	Kind BodyKind

	// Sides and Size describe a regular polygon: Size is the circumradius.
	Sides int
	Size  float64
	// Radius is used by circle kinds, the attractor included.
	Radius float64

	Mass        float64
	Friction    float64
	FrictionAir float64
	Static      bool
}

var BodyComponent = NewComponent[Body]("body")
