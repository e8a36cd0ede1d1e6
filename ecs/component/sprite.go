package component

import "image/color"

// Sprite is a flat coloured rectangle centred on the transform.
type Sprite struct {
	Width      float64
	Height     float64
	Color      color.NRGBA
	FacingLeft bool
}

var SpriteComponent = NewComponent[Sprite]()
