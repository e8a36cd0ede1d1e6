package component

import "image/color"

type Point struct {
	X float64
	Y float64
}

// LineRender is a world-space polyline. Hidden lines keep their points.
type LineRender struct {
	Points    []Point
	Visible   bool
	Width     float32
	Color     color.Color
	AntiAlias bool
}

var LineRenderComponent = NewComponent[LineRender]()
