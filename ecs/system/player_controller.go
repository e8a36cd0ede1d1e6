package system

import (
	"github.com/milk9111/hookshot/common"
	"github.com/milk9111/hookshot/ecs"
	"github.com/milk9111/hookshot/ecs/component"
	"github.com/rs/zerolog/log"
)

const maxStateChangesPerPhase = 4

// PlayerControllerSystem runs the motion state machine once per frame:
// ground edges, global toggles, state input, state update, countdowns and
// animator parameters, in that order.
type PlayerControllerSystem struct {
	DT float64
}

func NewPlayerControllerSystem(dt float64) *PlayerControllerSystem {
	return &PlayerControllerSystem{DT: dt}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if p == nil || w == nil {
		return
	}

	entities := w.Query(
		component.PlayerTagComponent.Kind(),
		component.InputComponent.Kind(),
		component.PlayerComponent.Kind(),
		component.MotionComponent.Kind(),
		component.VelocityComponent.Kind(),
	)
	for _, e := range entities {
		p.updateEntity(w, e)
	}
}

func (p *PlayerControllerSystem) updateEntity(w *ecs.World, e ecs.Entity) {
	input, _ := ecs.Get(w, e, component.InputComponent.Kind())
	player, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
	motion, _ := ecs.Get(w, e, component.MotionComponent.Kind())
	vel, _ := ecs.Get(w, e, component.VelocityComponent.Kind())

	timers := getOrAdd(w, e, component.TimersComponent.Kind(), "timers")
	contact := getOrAdd(w, e, component.ContactSensorComponent.Kind(), "contact sensor")
	sm := getOrAdd(w, e, component.PlayerStateMachineComponent.Kind(), "state machine")
	gravity, ok := ecs.Get(w, e, component.GravityComponent.Kind())
	if !ok {
		gravity = &component.Gravity{Sign: 1, Scale: 1, Default: 1}
		if err := ecs.Add(w, e, component.GravityComponent.Kind(), gravity); err != nil {
			panic("player controller: add gravity: " + err.Error())
		}
	}
	if motion.Facing == 0 {
		motion.Facing = 1
	}

	ctx := &component.PlayerStateContext{
		Input:   input,
		Player:  player,
		Motion:  motion,
		Timers:  timers,
		Contact: contact,
		Gravity: gravity,
		GetVelocity: func() (float64, float64) {
			return vel.X, vel.Y
		},
		SetVelocity: func(x, y float64) {
			vel.X = x
			vel.Y = y
		},
		ChangeState: func(state component.PlayerState) {
			sm.Pending = state
		},
	}
	anim, hasAnim := ecs.Get(w, e, component.AnimatorComponent.Kind())
	ctx.Trigger = func(name string) {
		if hasAnim {
			anim.Trigger(name)
		}
	}

	if sm.State == nil {
		sm.State = stateFor(motion.State)
		sm.State.Enter(ctx)
	}

	// 1. ground edges
	applyGroundContact(ctx)

	// 2. global toggles
	if input.InvertGravityPressed {
		transform, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		InvertGravity(gravity, transform)
		log.Debug().Uint64("entity", uint64(e)).Float64("sign", gravity.Sign).Msg("gravity inverted")
	}
	if input.FirePressed {
		ctx.Trigger(component.AnimTriggerAttack)
	}

	// 3-4. state input then state update
	sm.State.HandleInput(ctx)
	applyPendingState(e, sm, ctx)
	sm.State.Update(ctx)
	applyPendingState(e, sm, ctx)

	// 5. countdowns
	timers.Coyote = common.Countdown(timers.Coyote, p.DT)
	timers.JumpBuffer = common.Countdown(timers.JumpBuffer, p.DT)
	motion.DashTimer = common.Countdown(motion.DashTimer, p.DT)
	motion.WallJumpTimer = common.Countdown(motion.WallJumpTimer, p.DT)

	// 6. facing and animator parameters
	if motion.State != component.MotionDashing && motion.State != component.MotionWallJumping {
		if input.MoveX > 0 {
			motion.Facing = 1
		} else if input.MoveX < 0 {
			motion.Facing = -1
		}
	}
	if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
		sprite.FacingLeft = motion.Facing < 0
	}
	if hasAnim {
		anim.SetBool(component.AnimIsRunning, input.MoveX != 0)
		anim.SetBool(component.AnimIsJumping, !motion.Grounded)
	}
}

// applyGroundContact folds the physics ground edges into the logical grounded
// flag and the coyote timer, then clears the edges.
func applyGroundContact(ctx *component.PlayerStateContext) {
	m := ctx.Motion
	c := ctx.Contact
	rising := isAscending(ctx)

	if c.GroundExited && m.Grounded {
		m.Grounded = false
		ctx.Timers.Coyote = ctx.Player.CoyoteTime
	}
	touching := c.GroundEntered || c.Grounded
	if touching && !m.Grounded && !rising {
		land(ctx)
	}
	c.GroundEntered = false
	c.GroundExited = false
}

func land(ctx *component.PlayerStateContext) {
	m := ctx.Motion
	m.Grounded = true
	m.IsJumping = false
	m.EndedJumpEarly = false
	ctx.Timers.Coyote = ctx.Player.CoyoteTime
}

func applyPendingState(e ecs.Entity, sm *component.PlayerStateMachine, ctx *component.PlayerStateContext) {
	for i := 0; i < maxStateChangesPerPhase && sm.Pending != nil; i++ {
		next := sm.Pending
		sm.Pending = nil
		if next == sm.State {
			continue
		}
		prev := sm.State
		prev.Exit(ctx)
		sm.State = next
		next.Enter(ctx)
		log.Debug().Uint64("entity", uint64(e)).Str("from", prev.Name()).Str("to", next.Name()).Msg("player state")
	}
	sm.Pending = nil
}

// getOrAdd returns the component of kind on e, adding a zero value first
// when it is missing.
func getOrAdd[T any](w *ecs.World, e ecs.Entity, kind component.ComponentKind[T], what string) *T {
	if v, ok := ecs.Get(w, e, kind); ok {
		return v
	}
	v := new(T)
	if err := ecs.Add(w, e, kind, v); err != nil {
		panic("player controller: add " + what + ": " + err.Error())
	}
	return v
}
