package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/hookshot/ecs"
	"github.com/milk9111/hookshot/ecs/component"
	"github.com/milk9111/hookshot/ecs/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const physicsDT = 1.0 / 120

type physicsRig struct {
	w       *ecs.World
	ps      *PhysicsSystem
	player  ecs.Entity
	contact *component.ContactSensor
	gravity *component.Gravity
	body    *component.PhysicsBody
}

// newPhysicsRig spawns the player prefab standing on a floor whose top face
// is at y = 184.
func newPhysicsRig(t *testing.T) *physicsRig {
	t.Helper()
	w := ecs.NewWorld()
	_, err := entity.NewSolid(w, 200, 200, 400, 32, false)
	require.NoError(t, err)
	player, err := entity.NewPlayerAt(w, 100, 163)
	require.NoError(t, err)

	r := &physicsRig{w: w, ps: NewPhysicsSystem(physicsDT), player: player}
	r.ps.Update(w)

	var ok bool
	r.contact, ok = ecs.Get(w, player, component.ContactSensorComponent.Kind())
	require.True(t, ok)
	r.gravity, ok = ecs.Get(w, player, component.GravityComponent.Kind())
	require.True(t, ok)
	r.body, ok = ecs.Get(w, player, component.PhysicsBodyComponent.Kind())
	require.True(t, ok)
	return r
}

func (r *physicsRig) moveTo(x, y float64) {
	r.body.Body.SetPosition(cp.Vector{X: x, Y: y})
}

func TestPhysicsGroundContact(t *testing.T) {
	r := newPhysicsRig(t)

	require.NotNil(t, r.body.Body)
	assert.True(t, r.contact.Grounded)
	assert.True(t, r.contact.GroundEntered)

	r.contact.GroundEntered = false
	r.moveTo(100, 60)
	r.ps.Update(r.w)
	r.ps.Update(r.w)
	assert.False(t, r.contact.Grounded)
	assert.True(t, r.contact.GroundExited)
}

func TestPhysicsInvertedGravityUsesHeadSensor(t *testing.T) {
	r := newPhysicsRig(t)
	r.gravity.Sign = -1

	r.ps.Update(r.w)
	assert.False(t, r.contact.Grounded, "the floor is overhead when gravity points up")
}

func TestPhysicsCustomGravityBodyHoldsVelocity(t *testing.T) {
	r := newPhysicsRig(t)
	vel, _ := ecs.Get(r.w, r.player, component.VelocityComponent.Kind())
	tf, _ := ecs.Get(r.w, r.player, component.TransformComponent.Kind())
	r.moveTo(100, 60)
	vel.X, vel.Y = 120, 0

	r.ps.Update(r.w)

	assert.InDelta(t, 120, vel.X, 1e-6)
	assert.InDelta(t, 0, vel.Y, 1e-6, "space gravity does not act on the player")
	assert.InDelta(t, 101, tf.X, 1e-6)
}

func TestPhysicsGravityZoneEvents(t *testing.T) {
	r := newPhysicsRig(t)
	zone, err := entity.NewGravityZone(r.w, 300, 80, 100, 100, 0.3)
	require.NoError(t, err)
	zones := NewGravityZoneSystem()

	r.moveTo(300, 80)
	r.ps.Update(r.w)
	events := r.w.Events().DrainType(ecs.EventZone)
	require.Len(t, events, 1)
	ev := events[0].Data.(ecs.ZoneEvent)
	assert.Equal(t, r.player, ev.Actor)
	assert.Equal(t, zone, ev.Zone)
	assert.True(t, ev.Entered)

	w := r.w
	w.Events().Push(events[0])
	zones.Update(w)
	assert.InDelta(t, 0.3, r.gravity.Scale, 1e-12)

	r.moveTo(60, 80)
	r.ps.Update(w)
	r.ps.Update(w)
	zones.Update(w)
	assert.Equal(t, 1.0, r.gravity.Scale)
}

func TestPhysicsGrappleJointRoundTrip(t *testing.T) {
	r := newPhysicsRig(t)
	_, err := entity.NewSolid(r.w, 100, 0, 256, 32, true)
	require.NoError(t, err)
	r.ps.Update(r.w)

	grapple, ok := ecs.Get(r.w, r.player, component.GrappleComponent.Kind())
	require.True(t, ok)
	input, _ := ecs.Get(r.w, r.player, component.InputComponent.Kind())
	tf, _ := ecs.Get(r.w, r.player, component.TransformComponent.Kind())
	sys := NewGrappleSystem(r.ps, entity.NewGrappleAnchor, frameDT)

	*input = component.Input{GrapplePressed: true, PointerX: tf.X, PointerY: -100}
	sys.Update(r.w)
	require.True(t, grapple.Engaged)
	assert.InDelta(t, 16, grapple.AnchorY, 1e-6)
	require.NotZero(t, grapple.Marker)

	r.ps.Update(r.w)
	require.True(t, r.ps.HasJoint(r.player))
	length, ok := r.ps.JointLength(r.player)
	require.True(t, ok)
	assert.InDelta(t, grapple.Length, length, 1e-9)

	*input = component.Input{ReelInPressed: true}
	sys.Update(r.w)
	r.ps.Update(r.w)
	length, _ = r.ps.JointLength(r.player)
	assert.InDelta(t, grapple.Length, length, 1e-9)

	marker := ecs.Entity(grapple.Marker)
	*input = component.Input{GrappleReleased: true}
	sys.Update(r.w)
	r.ps.Update(r.w)
	assert.False(t, grapple.Engaged)
	assert.False(t, r.ps.HasJoint(r.player))
	assert.False(t, ecs.IsAlive(r.w, marker))
}

func TestPhysicsRemovesDestroyedBodies(t *testing.T) {
	r := newPhysicsRig(t)
	shapes := 0
	r.ps.Space().EachShape(func(*cp.Shape) { shapes++ })
	require.Positive(t, shapes)

	ecs.DestroyEntity(r.w, r.player)
	r.ps.Update(r.w)

	after := 0
	r.ps.Space().EachShape(func(*cp.Shape) { after++ })
	assert.Equal(t, shapes-3, after, "body shape and both ground sensors are removed")

	r.ps.Reset()
	after = 0
	r.ps.Space().EachShape(func(*cp.Shape) { after++ })
	assert.Zero(t, after)
}

func TestPhysicsWallFaceIsNotGround(t *testing.T) {
	cases := []struct {
		name string
		sign float64
	}{
		{"foot_sensor", 1},
		{"head_sensor", -1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			_, err := entity.NewSolid(w, 300, 100, 32, 400, false)
			require.NoError(t, err)
			// sunk 2px into the wall face at x = 284, far from any floor
			player, err := entity.NewPlayerAt(w, 274, 100)
			require.NoError(t, err)
			vel, _ := ecs.Get(w, player, component.VelocityComponent.Kind())
			contact, _ := ecs.Get(w, player, component.ContactSensorComponent.Kind())
			gravity, _ := ecs.Get(w, player, component.GravityComponent.Kind())
			gravity.Sign = c.sign

			ps := NewPhysicsSystem(physicsDT)
			for i := 0; i < 4; i++ {
				vel.X = 240
				ps.Update(w)
				assert.False(t, contact.Grounded, "step %d", i)
				assert.False(t, contact.GroundEntered, "step %d", i)
			}
		})
	}
}

func TestPhysicsInvertedGravityStandsOnCeiling(t *testing.T) {
	w := ecs.NewWorld()
	_, err := entity.NewSolid(w, 100, 0, 200, 32, false)
	require.NoError(t, err)
	// head strip reaches 1px into the ceiling's bottom face at y = 16
	player, err := entity.NewPlayerAt(w, 100, 37)
	require.NoError(t, err)
	contact, _ := ecs.Get(w, player, component.ContactSensorComponent.Kind())
	gravity, _ := ecs.Get(w, player, component.GravityComponent.Kind())

	ps := NewPhysicsSystem(physicsDT)
	ps.Update(w)
	assert.False(t, contact.Grounded, "normal gravity ignores the ceiling")

	gravity.Sign = -1
	ps.Update(w)
	assert.True(t, contact.Grounded)
	assert.True(t, contact.GroundEntered)
}
