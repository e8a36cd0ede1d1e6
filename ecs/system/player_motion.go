package system

import (
	"math"

	"github.com/milk9111/hookshot/common"
	"github.com/milk9111/hookshot/ecs"
	"github.com/milk9111/hookshot/ecs/component"
)

// PlayerMotionSystem integrates horizontal run speed, grapple attraction and
// gravity into Velocity on the fixed step.
type PlayerMotionSystem struct {
	DT float64
}

func NewPlayerMotionSystem(dt float64) *PlayerMotionSystem {
	return &PlayerMotionSystem{DT: dt}
}

func (s *PlayerMotionSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	ecs.ForEach4(w,
		component.InputComponent.Kind(),
		component.PlayerComponent.Kind(),
		component.MotionComponent.Kind(),
		component.VelocityComponent.Kind(),
		func(e ecs.Entity, in *component.Input, p *component.Player, m *component.Motion, v *component.Velocity) {
			g, _ := ecs.Get(w, e, component.GravityComponent.Kind())
			if m.State == component.MotionDashing {
				return
			}
			if m.State != component.MotionWallJumping {
				IntegrateHorizontal(v, in, p, m.Grounded, s.DT)
			}
			if grapple, ok := ecs.Get(w, e, component.GrappleComponent.Kind()); ok {
				if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
					ApplyGrappleAttraction(v, grapple, t, in, s.DT)
				}
			}
			IntegrateGravity(v, p, m, g, s.DT)
		})
}

// IntegrateHorizontal moves vx toward the input target speed.
func IntegrateHorizontal(v *component.Velocity, in *component.Input, p *component.Player, grounded bool, dt float64) {
	target := in.MoveX * p.RunSpeed
	if in.Sprint && p.SprintMultiplier > 0 {
		target *= p.SprintMultiplier
	}

	var rate float64
	switch {
	case in.MoveX != 0 && grounded:
		rate = p.GroundAcceleration
	case in.MoveX != 0:
		rate = p.AirAcceleration
	case grounded:
		rate = p.GroundDeceleration
	default:
		rate = p.AirDeceleration
	}
	v.X = common.MoveToward(v.X, target, rate*dt)
}

// IntegrateGravity pulls vy toward the fall cap in the gravity direction and
// clamps it there.
func IntegrateGravity(v *component.Velocity, p *component.Player, m *component.Motion, g *component.Gravity, dt float64) {
	sign := gravitySign(g)
	rising := ascending(v.Y, g)
	if m.Grounded && !rising {
		v.Y = 0
		return
	}

	scale := 1.0
	if g != nil {
		scale = math.Abs(g.Scale)
	}
	accel := p.FallAcceleration * scale
	if m.EndedJumpEarly && rising && p.JumpEndEarlyGravityModifier > 0 {
		accel *= p.JumpEndEarlyGravityModifier
	}

	maxFall := p.MaxFallSpeed
	if m.State == component.MotionWallSliding && p.WallSlideSpeed > 0 {
		maxFall = p.WallSlideSpeed
	}

	v.Y = common.MoveToward(v.Y, maxFall*sign, accel*dt)
	if v.Y*sign > maxFall {
		v.Y = maxFall * sign
	}
}
