package component

// MotionState is the single active movement mode of an actor.
type MotionState uint8

const (
	MotionGrounded MotionState = iota
	MotionAirborne
	MotionWallSliding
	MotionWallJumping
	MotionDashing
)

func (s MotionState) String() string {
	switch s {
	case MotionGrounded:
		return "grounded"
	case MotionAirborne:
		return "airborne"
	case MotionWallSliding:
		return "wall_sliding"
	case MotionWallJumping:
		return "wall_jumping"
	case MotionDashing:
		return "dashing"
	default:
		return "unknown"
	}
}

// Motion is the derived movement state of an actor plus its lockout
// countdowns. Grounded is the logical flag: a jump clears it immediately even
// while the feet are still touching.
type Motion struct {
	State MotionState

	Grounded       bool
	IsJumping      bool
	EndedJumpEarly bool

	// Facing is +1 (right) or -1 (left).
	Facing float64

	DashX     float64
	DashY     float64
	DashTimer float64

	WallJumpTimer float64
}

var MotionComponent = NewComponent[Motion]()

// Timers is the actor's timer bank. A value above zero means armed.
type Timers struct {
	Coyote     float64
	JumpBuffer float64
}

var TimersComponent = NewComponent[Timers]()
