package component

// Player holds the movement tuning of a controllable actor. Speeds are in
// pixels per second, accelerations in pixels per second squared and times in
// seconds.
type Player struct {
	RunSpeed         float64
	SprintMultiplier float64

	GroundAcceleration float64
	AirAcceleration    float64
	GroundDeceleration float64
	AirDeceleration    float64

	JumpSpeed                   float64
	FallAcceleration            float64
	MaxFallSpeed                float64
	JumpEndEarlyGravityModifier float64

	CoyoteTime     float64
	JumpBufferTime float64

	DashSpeed    float64
	DashDuration float64

	WallJumpForce    float64
	WallJumpDirX     float64
	WallJumpDirY     float64
	WallJumpLockTime float64
	WallSlideSpeed   float64

	WallProbeRange float64
	WallMask       uint32
}

var PlayerComponent = NewComponent[Player]()
