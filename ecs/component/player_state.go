package component

// PlayerState defines the interface for player state machine states.
// Each state owns its own enter/exit, input handling, and update logic.
type PlayerState interface {
	Name() string
	Enter(ctx *PlayerStateContext)
	Exit(ctx *PlayerStateContext)
	HandleInput(ctx *PlayerStateContext)
	Update(ctx *PlayerStateContext)
}

// PlayerStateContext provides controlled access to an actor's components for
// a state. Velocity and state changes go through callbacks so states never
// touch the world directly.
type PlayerStateContext struct {
	Input   *Input
	Player  *Player
	Motion  *Motion
	Timers  *Timers
	Contact *ContactSensor
	Gravity *Gravity

	GetVelocity func() (x, y float64)
	SetVelocity func(x, y float64)
	ChangeState func(state PlayerState)
	Trigger     func(name string)
}

// PlayerStateMachine stores the active and pending states for the player.
type PlayerStateMachine struct {
	State   PlayerState
	Pending PlayerState
}

var PlayerStateMachineComponent = NewComponent[PlayerStateMachine]()
