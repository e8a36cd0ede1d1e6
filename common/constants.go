package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// TPS is the Ebiten update rate; one frame step lasts 1/TPS seconds.
	TPS = 60

	// Gravity is the Chipmunk space gravity in pixels/s^2 for bodies that use
	// the default velocity integration (chasers, loose props).
	Gravity = 1800.0

	TileSize = 32
)

// Collision categories used by shape filters and sensor masks.
const (
	CategorySolid uint32 = 1 << iota
	CategoryGrapple
	CategoryPlayer
	CategoryEnemy
	CategoryZone
)
