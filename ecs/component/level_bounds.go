package component

// LevelBounds is the pixel extent of the loaded level. Physics walls it in
// and the camera clamps to it.
type LevelBounds struct {
	Width, Height float64
}

var LevelBoundsComponent = NewComponent[LevelBounds]()
