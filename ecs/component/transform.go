package component

// Transform is a body's pose in surface coordinates. The physics system
// mirrors it from the engine after every step.
type Transform struct {
	X        float64
	Y        float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]("transform")
