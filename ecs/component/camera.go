package component

type Camera struct {
	Zoom       float64
	Smoothness float64
	// Target is the ecs.Entity (uint64) the camera follows; 0 follows the player.
	Target uint64
}

var CameraComponent = NewComponent[Camera]()
