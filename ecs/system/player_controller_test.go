package system

import (
	"testing"

	"github.com/milk9111/hookshot/ecs"
	"github.com/milk9111/hookshot/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJumpFromGround(t *testing.T) {
	a := newTestActor(t, component.MotionGrounded, true)
	ctrl := NewPlayerControllerSystem(frameDT)

	a.frame(ctrl, component.Input{JumpPressed: true, Jump: true})

	assert.Equal(t, -a.player.JumpSpeed, a.vel.Y)
	assert.Equal(t, component.MotionAirborne, a.motion.State)
	assert.False(t, a.motion.Grounded)
	assert.True(t, a.motion.IsJumping)
	assert.Zero(t, a.timers.JumpBuffer)
	assert.Zero(t, a.timers.Coyote)
}

func TestJumpBufferFiresOnceOnLanding(t *testing.T) {
	a := newTestActor(t, component.MotionAirborne, false)
	ctrl := NewPlayerControllerSystem(frameDT)
	a.vel.Y = 300

	// pressed in the air with no coyote time left
	a.frame(ctrl, component.Input{JumpPressed: true, Jump: true})
	require.Equal(t, 300.0, a.vel.Y)
	require.Greater(t, a.timers.JumpBuffer, 0.0)

	// landing inside the buffer window performs the jump
	a.contact.Grounded = true
	a.contact.GroundEntered = true
	a.frame(ctrl, component.Input{Jump: true})
	assert.Equal(t, -a.player.JumpSpeed, a.vel.Y)
	assert.Zero(t, a.timers.JumpBuffer)
	assert.True(t, a.motion.IsJumping)

	// feet still touching on the next frame must not jump again
	a.vel.Y = -123
	a.frame(ctrl, component.Input{Jump: true})
	assert.Equal(t, -123.0, a.vel.Y)
	assert.False(t, a.motion.Grounded)
}

func TestJumpBufferExpires(t *testing.T) {
	a := newTestActor(t, component.MotionAirborne, false)
	ctrl := NewPlayerControllerSystem(frameDT)
	a.vel.Y = 300

	a.frame(ctrl, component.Input{JumpPressed: true})
	for i := 0; i < 15; i++ {
		a.frame(ctrl, component.Input{})
	}
	require.Zero(t, a.timers.JumpBuffer)

	a.contact.Grounded = true
	a.contact.GroundEntered = true
	a.frame(ctrl, component.Input{})
	assert.True(t, a.motion.Grounded)
	assert.Equal(t, component.MotionGrounded, a.motion.State)
	assert.Equal(t, 300.0, a.vel.Y)
}

func TestCoyoteWindow(t *testing.T) {
	cases := []struct {
		name      string
		waitFrame int
		wantJump  bool
	}{
		{"inside_window", 2, true},
		{"after_window", 8, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := newTestActor(t, component.MotionGrounded, true)
			ctrl := NewPlayerControllerSystem(frameDT)

			// walk off a ledge
			a.contact.Grounded = false
			a.contact.GroundExited = true
			a.vel.Y = 50
			a.frame(ctrl, component.Input{})
			require.False(t, a.motion.Grounded)
			require.Equal(t, component.MotionAirborne, a.motion.State)

			for i := 0; i < c.waitFrame; i++ {
				a.frame(ctrl, component.Input{})
			}
			a.frame(ctrl, component.Input{JumpPressed: true, Jump: true})

			if c.wantJump {
				assert.Equal(t, -a.player.JumpSpeed, a.vel.Y)
				assert.True(t, a.motion.IsJumping)
				return
			}
			assert.Equal(t, 50.0, a.vel.Y)
			assert.False(t, a.motion.IsJumping)
			assert.Greater(t, a.timers.JumpBuffer, 0.0)
		})
	}
}

func TestCoyoteNotGrantedAfterJump(t *testing.T) {
	a := newTestActor(t, component.MotionGrounded, true)
	ctrl := NewPlayerControllerSystem(frameDT)

	a.frame(ctrl, component.Input{JumpPressed: true, Jump: true})
	a.contact.Grounded = false
	a.contact.GroundExited = true
	a.frame(ctrl, component.Input{Jump: true})

	assert.Zero(t, a.timers.Coyote)
	a.frame(ctrl, component.Input{JumpPressed: true, Jump: true})
	assert.Equal(t, component.MotionAirborne, a.motion.State)
	assert.Greater(t, a.timers.JumpBuffer, 0.0)
}

func TestEarlyJumpRelease(t *testing.T) {
	a := newTestActor(t, component.MotionGrounded, true)
	ctrl := NewPlayerControllerSystem(frameDT)

	a.frame(ctrl, component.Input{JumpPressed: true, Jump: true})
	a.frame(ctrl, component.Input{JumpReleased: true})
	assert.True(t, a.motion.EndedJumpEarly)
}

func TestDashIsNotInterruptible(t *testing.T) {
	a := newTestActor(t, component.MotionAirborne, false)
	ctrl := NewPlayerControllerSystem(0.05)

	a.frame(ctrl, component.Input{DashPressed: true, MoveX: 1})
	require.Equal(t, component.MotionDashing, a.motion.State)
	assert.Equal(t, a.player.DashSpeed, a.vel.X)
	assert.Zero(t, a.vel.Y)

	held := 1
	for a.motion.State == component.MotionDashing {
		// jump and dash presses do not cut the dash short
		a.frame(ctrl, component.Input{JumpPressed: true, DashPressed: true, MoveX: -1})
		if a.motion.State == component.MotionDashing {
			assert.Equal(t, a.player.DashSpeed, a.vel.X)
			held++
		}
		require.Less(t, held, 20, "dash never ended")
	}

	assert.Equal(t, 4, held, "dash should last DashDuration")
	assert.Equal(t, component.MotionAirborne, a.motion.State)
	assert.Zero(t, a.vel.X)
	assert.Zero(t, a.vel.Y)
}

func TestDashWithoutInputUsesFacing(t *testing.T) {
	a := newTestActor(t, component.MotionGrounded, true)
	a.motion.Facing = -1
	ctrl := NewPlayerControllerSystem(frameDT)

	a.frame(ctrl, component.Input{DashPressed: true})
	assert.Equal(t, -a.player.DashSpeed, a.vel.X)
}

func TestWallSlideAndWallJump(t *testing.T) {
	a := newTestActor(t, component.MotionAirborne, false)
	ctrl := NewPlayerControllerSystem(frameDT)
	a.vel.Y = 200
	a.contact.Wall = component.WallRight

	a.frame(ctrl, component.Input{MoveX: 1})
	require.Equal(t, component.MotionWallSliding, a.motion.State)

	a.frame(ctrl, component.Input{MoveX: 1, JumpPressed: true, Jump: true})
	require.Equal(t, component.MotionWallJumping, a.motion.State)
	assert.InDelta(t, -a.player.WallJumpDirX*a.player.WallJumpForce, a.vel.X, 1e-9)
	assert.InDelta(t, -a.player.WallJumpDirY*a.player.WallJumpForce, a.vel.Y, 1e-9)
	assert.Equal(t, -1.0, a.motion.Facing)

	// facing stays locked while pushing toward the wall during the lock
	a.contact.Wall = component.WallNone
	a.frame(ctrl, component.Input{MoveX: 1})
	assert.Equal(t, -1.0, a.motion.Facing)

	for i := 0; i < 10 && a.motion.State == component.MotionWallJumping; i++ {
		a.frame(ctrl, component.Input{})
	}
	assert.Equal(t, component.MotionAirborne, a.motion.State)
}

func TestWallSlideRequiresInputIntoWall(t *testing.T) {
	a := newTestActor(t, component.MotionAirborne, false)
	ctrl := NewPlayerControllerSystem(frameDT)
	a.vel.Y = 200
	a.contact.Wall = component.WallLeft

	a.frame(ctrl, component.Input{MoveX: 1})
	assert.Equal(t, component.MotionAirborne, a.motion.State)
	a.frame(ctrl, component.Input{MoveX: -1})
	assert.Equal(t, component.MotionWallSliding, a.motion.State)
	a.frame(ctrl, component.Input{})
	assert.Equal(t, component.MotionAirborne, a.motion.State)
}

func TestInvertGravityFromInput(t *testing.T) {
	a := newTestActor(t, component.MotionGrounded, true)
	ctrl := NewPlayerControllerSystem(frameDT)

	a.frame(ctrl, component.Input{InvertGravityPressed: true})
	assert.True(t, a.gravity.Inverted())
	assert.Equal(t, -1.0, a.tf.ScaleY)

	// jumping now pushes toward +Y
	a.contact.Grounded = true
	a.motion.Grounded = true
	a.motion.IsJumping = false
	a.frame(ctrl, component.Input{JumpPressed: true})
	assert.Equal(t, a.player.JumpSpeed, a.vel.Y)
}

func TestControllerAnimatorAndFacing(t *testing.T) {
	a := newTestActor(t, component.MotionGrounded, true)
	anim := &component.Animator{}
	sprite := &component.Sprite{}
	require.NoError(t, ecs.Add(a.w, a.e, component.AnimatorComponent.Kind(), anim))
	require.NoError(t, ecs.Add(a.w, a.e, component.SpriteComponent.Kind(), sprite))
	ctrl := NewPlayerControllerSystem(frameDT)

	a.frame(ctrl, component.Input{MoveX: -1, FirePressed: true})
	assert.Equal(t, -1.0, a.motion.Facing)
	assert.True(t, sprite.FacingLeft)
	assert.True(t, anim.Bools[component.AnimIsRunning])
	assert.False(t, anim.Bools[component.AnimIsJumping])
	assert.Contains(t, anim.Triggers, component.AnimTriggerAttack)
}

func TestControllerAddsMissingComponents(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	tuning := testTuning()
	require.NoError(t, ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	require.NoError(t, ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}))
	require.NoError(t, ecs.Add(w, e, component.PlayerComponent.Kind(), &tuning))
	require.NoError(t, ecs.Add(w, e, component.MotionComponent.Kind(), &component.Motion{}))
	require.NoError(t, ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{}))

	NewPlayerControllerSystem(frameDT).Update(w)

	assert.True(t, ecs.Has(w, e, component.TimersComponent.Kind()))
	assert.True(t, ecs.Has(w, e, component.ContactSensorComponent.Kind()))
	assert.True(t, ecs.Has(w, e, component.PlayerStateMachineComponent.Kind()))
	g, ok := ecs.Get(w, e, component.GravityComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, 1.0, g.Sign)
}
