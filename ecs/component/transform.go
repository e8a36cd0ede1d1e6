package component

// Transform is the world-space centre of an entity. A negative ScaleY mirrors
// the sprite vertically, which is how inverted gravity is drawn.
type Transform struct {
	X, Y           float64
	ScaleX, ScaleY float64
	Rotation       float64
}

var TransformComponent = NewComponent[Transform]()
