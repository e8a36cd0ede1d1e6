package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Position is the body centre (Transform X/Y).
type PhysicsBody struct {
	Body  *cp.Body
	Shape *cp.Shape

	Width      float64
	Height     float64
	Mass       float64
	Friction   float64
	Elasticity float64
	Static     bool
	Sensor     bool

	// CustomGravity bodies ignore space gravity; their vertical motion is
	// integrated by gameplay systems through Velocity.
	CustomGravity bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
