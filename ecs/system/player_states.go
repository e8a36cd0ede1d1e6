package system

import (
	"math"

	"github.com/milk9111/hookshot/common"
	"github.com/milk9111/hookshot/ecs/component"
)

// Player state singletons (avoid allocations on transitions).
var (
	playerStateGrounded component.PlayerState = &playerGroundedState{}
	playerStateAirborne component.PlayerState = &playerAirborneState{}
	playerStateWall     component.PlayerState = &playerWallSlideState{}
	playerStateWallJump component.PlayerState = &playerWallJumpState{}
	playerStateDash     component.PlayerState = &playerDashState{}
)

type playerGroundedState struct{}

type playerAirborneState struct{}

type playerWallSlideState struct{}

type playerWallJumpState struct{}

type playerDashState struct{}

// stateFor maps a motion tag back to its state singleton.
func stateFor(s component.MotionState) component.PlayerState {
	switch s {
	case component.MotionAirborne:
		return playerStateAirborne
	case component.MotionWallSliding:
		return playerStateWall
	case component.MotionWallJumping:
		return playerStateWallJump
	case component.MotionDashing:
		return playerStateDash
	default:
		return playerStateGrounded
	}
}

func (playerGroundedState) Name() string { return component.MotionGrounded.String() }
func (playerGroundedState) Enter(ctx *component.PlayerStateContext) {
	ctx.Motion.State = component.MotionGrounded
}
func (playerGroundedState) Exit(ctx *component.PlayerStateContext) {}
func (playerGroundedState) HandleInput(ctx *component.PlayerStateContext) {
	handleJumpAndDashInput(ctx)
}
func (playerGroundedState) Update(ctx *component.PlayerStateContext) {
	if consumeBufferedJump(ctx) {
		return
	}
	if !ctx.Motion.Grounded {
		ctx.ChangeState(playerStateAirborne)
	}
}

func (playerAirborneState) Name() string { return component.MotionAirborne.String() }
func (playerAirborneState) Enter(ctx *component.PlayerStateContext) {
	ctx.Motion.State = component.MotionAirborne
}
func (playerAirborneState) Exit(ctx *component.PlayerStateContext) {}
func (playerAirborneState) HandleInput(ctx *component.PlayerStateContext) {
	handleJumpAndDashInput(ctx)
}
func (playerAirborneState) Update(ctx *component.PlayerStateContext) {
	if consumeBufferedJump(ctx) {
		return
	}
	if ctx.Motion.Grounded {
		ctx.ChangeState(playerStateGrounded)
		return
	}
	if shouldWallSlide(ctx) {
		ctx.ChangeState(playerStateWall)
	}
}

func (playerWallSlideState) Name() string { return component.MotionWallSliding.String() }
func (playerWallSlideState) Enter(ctx *component.PlayerStateContext) {
	ctx.Motion.State = component.MotionWallSliding
}
func (playerWallSlideState) Exit(ctx *component.PlayerStateContext) {}
func (playerWallSlideState) HandleInput(ctx *component.PlayerStateContext) {
	handleJumpAndDashInput(ctx)
}
func (playerWallSlideState) Update(ctx *component.PlayerStateContext) {
	if consumeBufferedJump(ctx) {
		return
	}
	if ctx.Motion.Grounded {
		ctx.ChangeState(playerStateGrounded)
		return
	}
	if !shouldWallSlide(ctx) {
		ctx.ChangeState(playerStateAirborne)
	}
}

func (playerWallJumpState) Name() string { return component.MotionWallJumping.String() }
func (playerWallJumpState) Enter(ctx *component.PlayerStateContext) {
	ctx.Motion.State = component.MotionWallJumping
}
func (playerWallJumpState) Exit(ctx *component.PlayerStateContext) {
	ctx.Motion.WallJumpTimer = 0
}
func (playerWallJumpState) HandleInput(ctx *component.PlayerStateContext) {
	handleJumpAndDashInput(ctx)
}
func (playerWallJumpState) Update(ctx *component.PlayerStateContext) {
	if common.Armed(ctx.Motion.WallJumpTimer) {
		return
	}
	if ctx.Motion.Grounded {
		ctx.ChangeState(playerStateGrounded)
		return
	}
	ctx.ChangeState(playerStateAirborne)
}

func (playerDashState) Name() string { return component.MotionDashing.String() }
func (playerDashState) Enter(ctx *component.PlayerStateContext) {
	m := ctx.Motion
	m.State = component.MotionDashing

	dx, dy := common.Normalize(ctx.Input.MoveX, ctx.Input.MoveY)
	if dx == 0 && dy == 0 {
		dx = m.Facing
		if dx == 0 {
			dx = 1
		}
	}
	m.DashX = dx * ctx.Player.DashSpeed
	m.DashY = dy * ctx.Player.DashSpeed
	m.DashTimer = ctx.Player.DashDuration
	ctx.SetVelocity(m.DashX, m.DashY)
	if ctx.Trigger != nil {
		ctx.Trigger(component.AnimTriggerDash)
	}
}
func (playerDashState) Exit(ctx *component.PlayerStateContext) {
	ctx.Motion.DashTimer = 0
	ctx.Motion.DashX = 0
	ctx.Motion.DashY = 0
}
func (playerDashState) HandleInput(ctx *component.PlayerStateContext) {
	// a dash cannot be cancelled; a jump pressed during it stays buffered
	if ctx.Input.JumpPressed {
		ctx.Timers.JumpBuffer = ctx.Player.JumpBufferTime
	}
}
func (playerDashState) Update(ctx *component.PlayerStateContext) {
	m := ctx.Motion
	if common.Armed(m.DashTimer) {
		ctx.SetVelocity(m.DashX, m.DashY)
		return
	}
	ctx.SetVelocity(0, 0)
	if m.Grounded {
		ctx.ChangeState(playerStateGrounded)
		return
	}
	ctx.ChangeState(playerStateAirborne)
}

// handleJumpAndDashInput is the shared edge handling of every interruptible
// state.
func handleJumpAndDashInput(ctx *component.PlayerStateContext) {
	in := ctx.Input
	if in.JumpPressed {
		ctx.Timers.JumpBuffer = ctx.Player.JumpBufferTime
		if canJump(ctx) {
			jump(ctx)
			return
		}
		if canWallJump(ctx) {
			wallJump(ctx)
			return
		}
	}
	if in.JumpReleased && isAscending(ctx) {
		ctx.Motion.EndedJumpEarly = true
	}
	if in.DashPressed {
		ctx.ChangeState(playerStateDash)
	}
}

// consumeBufferedJump performs a buffered jump as soon as one is allowed.
func consumeBufferedJump(ctx *component.PlayerStateContext) bool {
	if !common.Armed(ctx.Timers.JumpBuffer) || !canJump(ctx) {
		return false
	}
	jump(ctx)
	return true
}

func canJump(ctx *component.PlayerStateContext) bool {
	m := ctx.Motion
	return (common.Armed(ctx.Timers.Coyote) || m.Grounded) && !m.IsJumping
}

func canWallJump(ctx *component.PlayerStateContext) bool {
	return !ctx.Motion.Grounded && ctx.Contact.Wall != component.WallNone
}

func jump(ctx *component.PlayerStateContext) {
	m := ctx.Motion
	x, _ := ctx.GetVelocity()
	ctx.SetVelocity(x, -ctx.Player.JumpSpeed*gravitySign(ctx.Gravity))

	m.Grounded = false
	m.EndedJumpEarly = false
	m.IsJumping = true
	ctx.Timers.JumpBuffer = 0
	ctx.Timers.Coyote = 0

	if m.State != component.MotionAirborne {
		ctx.ChangeState(playerStateAirborne)
	}
}

func wallJump(ctx *component.PlayerStateContext) {
	p := ctx.Player
	m := ctx.Motion

	away := 1.0
	if ctx.Contact.Wall == component.WallRight {
		away = -1
	}
	vx := away * p.WallJumpDirX * p.WallJumpForce
	vy := -p.WallJumpDirY * p.WallJumpForce * gravitySign(ctx.Gravity)
	ctx.SetVelocity(vx, vy)

	m.Facing = away
	m.EndedJumpEarly = false
	m.IsJumping = true
	m.WallJumpTimer = p.WallJumpLockTime
	ctx.Timers.JumpBuffer = 0
	ctx.Timers.Coyote = 0

	ctx.ChangeState(playerStateWallJump)
}

// shouldWallSlide reports airborne wall contact with input pressing into the
// wall.
func shouldWallSlide(ctx *component.PlayerStateContext) bool {
	if ctx.Motion.Grounded {
		return false
	}
	switch ctx.Contact.Wall {
	case component.WallLeft:
		return ctx.Input.MoveX < 0
	case component.WallRight:
		return ctx.Input.MoveX > 0
	default:
		return false
	}
}

func isAscending(ctx *component.PlayerStateContext) bool {
	_, y := ctx.GetVelocity()
	return ascending(y, ctx.Gravity)
}

func ascending(vy float64, g *component.Gravity) bool {
	return vy*gravitySign(g) < 0
}

func gravitySign(g *component.Gravity) float64 {
	if g == nil || g.Sign == 0 {
		return 1
	}
	return math.Copysign(1, g.Sign)
}
