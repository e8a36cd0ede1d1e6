package system

import (
	"testing"

	"github.com/milk9111/hookshot/ecs"
	"github.com/milk9111/hookshot/ecs/component"
	"github.com/stretchr/testify/require"
)

const frameDT = 1.0 / 60

func testTuning() component.Player {
	return component.Player{
		RunSpeed:                    240,
		SprintMultiplier:            1.5,
		GroundAcceleration:          2400,
		AirAcceleration:             1600,
		GroundDeceleration:          2400,
		AirDeceleration:             1200,
		JumpSpeed:                   600,
		FallAcceleration:            1800,
		MaxFallSpeed:                900,
		JumpEndEarlyGravityModifier: 2,
		CoyoteTime:                  0.1,
		JumpBufferTime:              0.2,
		DashSpeed:                   720,
		DashDuration:                0.2,
		WallJumpForce:               500,
		WallJumpDirX:                0.8,
		WallJumpDirY:                1,
		WallJumpLockTime:            0.15,
		WallSlideSpeed:              180,
	}
}

type testActor struct {
	w       *ecs.World
	e       ecs.Entity
	input   *component.Input
	player  *component.Player
	motion  *component.Motion
	vel     *component.Velocity
	timers  *component.Timers
	contact *component.ContactSensor
	gravity *component.Gravity
	tf      *component.Transform
}

// newTestActor builds a bare player entity without physics.
func newTestActor(t *testing.T, state component.MotionState, grounded bool) *testActor {
	t.Helper()
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	tuning := testTuning()
	a := &testActor{
		w:       w,
		e:       e,
		input:   &component.Input{},
		player:  &tuning,
		motion:  &component.Motion{State: state, Grounded: grounded, Facing: 1},
		vel:     &component.Velocity{},
		timers:  &component.Timers{},
		contact: &component.ContactSensor{Grounded: grounded},
		gravity: &component.Gravity{Sign: 1, Scale: 1, Default: 1},
		tf:      &component.Transform{X: 100, Y: 100, ScaleX: 1, ScaleY: 1},
	}
	require.NoError(t, ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	require.NoError(t, ecs.Add(w, e, component.InputComponent.Kind(), a.input))
	require.NoError(t, ecs.Add(w, e, component.PlayerComponent.Kind(), a.player))
	require.NoError(t, ecs.Add(w, e, component.MotionComponent.Kind(), a.motion))
	require.NoError(t, ecs.Add(w, e, component.VelocityComponent.Kind(), a.vel))
	require.NoError(t, ecs.Add(w, e, component.TimersComponent.Kind(), a.timers))
	require.NoError(t, ecs.Add(w, e, component.ContactSensorComponent.Kind(), a.contact))
	require.NoError(t, ecs.Add(w, e, component.GravityComponent.Kind(), a.gravity))
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), a.tf))
	return a
}

// frame runs one controller frame with in as the input, then clears edges.
func (a *testActor) frame(ctrl *PlayerControllerSystem, in component.Input) {
	*a.input = in
	ctrl.Update(a.w)
	*a.input = component.Input{MoveX: in.MoveX, MoveY: in.MoveY, Jump: in.Jump, Sprint: in.Sprint}
}
