package component

import "image/color"

// Style is purely cosmetic.
type Style struct {
	Fill        color.RGBA
	Stroke      color.RGBA
	StrokeWidth float64
}

var StyleComponent = NewComponent[Style]("style")
