package component

const (
	WallNone  = 0
	WallLeft  = 1
	WallRight = 2
)

// ContactSensor stores the contact flags an actor reads every frame.
// GroundEntered/GroundExited are edges set by physics and cleared once the
// controller has consumed them.
type ContactSensor struct {
	Grounded      bool
	GroundEntered bool
	GroundExited  bool

	// Wall: WallNone, WallLeft or WallRight.
	Wall int
}

var ContactSensorComponent = NewComponent[ContactSensor]()
