package system

import (
	"testing"

	"github.com/milk9111/hookshot/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegrateHorizontalReachesRunSpeed(t *testing.T) {
	p := &component.Player{RunSpeed: 8, GroundAcceleration: 10, GroundDeceleration: 10}
	v := &component.Velocity{}
	in := &component.Input{MoveX: 1}

	ticks := 0
	for v.X < p.RunSpeed {
		IntegrateHorizontal(v, in, p, true, 0.1)
		ticks++
		require.LessOrEqual(t, v.X, p.RunSpeed, "overshot run speed")
		require.Less(t, ticks, 100)
	}
	assert.Equal(t, 8, ticks)

	// releasing input decelerates back to rest
	in.MoveX = 0
	for i := 0; i < 8; i++ {
		IntegrateHorizontal(v, in, p, true, 0.1)
	}
	assert.InDelta(t, 0, v.X, 1e-9)
}

func TestIntegrateHorizontalRates(t *testing.T) {
	p := testTuning()
	cases := []struct {
		name     string
		in       component.Input
		grounded bool
		start    float64
		want     float64
	}{
		{"ground_accel", component.Input{MoveX: 1}, true, 0, 24},
		{"air_accel", component.Input{MoveX: 1}, false, 0, 16},
		{"ground_decel", component.Input{}, true, 100, 76},
		{"air_decel", component.Input{}, false, 100, 88},
		{"sprint_target", component.Input{MoveX: 1, Sprint: true}, true, 350, 360},
		{"turnaround", component.Input{MoveX: -1}, true, 10, -14},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v := &component.Velocity{X: c.start}
			IntegrateHorizontal(v, &c.in, &p, c.grounded, 0.01)
			assert.InDelta(t, c.want, v.X, 1e-9)
		})
	}
}

func TestIntegrateGravityFallCap(t *testing.T) {
	p := testTuning()
	cases := []struct {
		name  string
		sign  float64
		state component.MotionState
		cap   float64
	}{
		{"normal", 1, component.MotionAirborne, p.MaxFallSpeed},
		{"inverted", -1, component.MotionAirborne, p.MaxFallSpeed},
		{"wall_slide", 1, component.MotionWallSliding, p.WallSlideSpeed},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v := &component.Velocity{}
			m := &component.Motion{State: c.state}
			g := &component.Gravity{Sign: c.sign, Scale: c.sign, Default: 1}
			for i := 0; i < 600; i++ {
				IntegrateGravity(v, &p, m, g, 1.0/120)
				require.LessOrEqual(t, v.Y*c.sign, c.cap+1e-9)
			}
			assert.InDelta(t, c.cap*c.sign, v.Y, 1e-9)
		})
	}
}

func TestIntegrateGravityClampsFastFall(t *testing.T) {
	p := testTuning()
	v := &component.Velocity{Y: 5000}
	IntegrateGravity(v, &p, &component.Motion{State: component.MotionWallSliding}, nil, 1.0/120)
	assert.Equal(t, p.WallSlideSpeed, v.Y)
}

func TestIntegrateGravityGroundedAndEarlyRelease(t *testing.T) {
	p := testTuning()
	g := &component.Gravity{Sign: 1, Scale: 1, Default: 1}

	v := &component.Velocity{Y: 40}
	IntegrateGravity(v, &p, &component.Motion{Grounded: true}, g, 0.01)
	assert.Zero(t, v.Y, "grounded actors do not accumulate fall speed")

	normal := &component.Velocity{Y: -300}
	IntegrateGravity(normal, &p, &component.Motion{}, g, 0.01)
	early := &component.Velocity{Y: -300}
	IntegrateGravity(early, &p, &component.Motion{EndedJumpEarly: true}, g, 0.01)
	assert.InDelta(t, -282, normal.Y, 1e-9)
	assert.InDelta(t, -264, early.Y, 1e-9)

	// zone scale weakens gravity
	g.Scale = 0.5
	zoned := &component.Velocity{}
	IntegrateGravity(zoned, &p, &component.Motion{}, g, 0.01)
	assert.InDelta(t, 9, zoned.Y, 1e-9)
}

func TestPlayerMotionSystemSkipsDash(t *testing.T) {
	a := newTestActor(t, component.MotionDashing, false)
	a.vel.X = 720
	a.input.MoveX = -1

	NewPlayerMotionSystem(0.01).Update(a.w)
	assert.Equal(t, 720.0, a.vel.X)
	assert.Zero(t, a.vel.Y)

	a.motion.State = component.MotionWallJumping
	NewPlayerMotionSystem(0.01).Update(a.w)
	assert.Equal(t, 720.0, a.vel.X, "horizontal input is locked during a wall jump")
	assert.InDelta(t, 18, a.vel.Y, 1e-9)
}
