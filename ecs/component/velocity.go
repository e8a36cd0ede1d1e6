package component

// Velocity is the authoritative velocity of an entity in pixels per second.
// The physics system pushes it into the body before each step and reads the
// solved value back afterwards.
type Velocity struct {
	X float64
	Y float64
}

var VelocityComponent = NewComponent[Velocity]()
