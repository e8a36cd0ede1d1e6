package entity

import (
	"testing"

	"github.com/milk9111/hookshot/common"
	"github.com/milk9111/hookshot/ecs"
	"github.com/milk9111/hookshot/ecs/component"
	"github.com/milk9111/hookshot/levels"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlayerAt(t *testing.T) {
	w := ecs.NewWorld()
	e, err := NewPlayerAt(w, 64, 128)
	require.NoError(t, err)

	tf, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, 64.0, tf.X)
	assert.Equal(t, 128.0, tf.Y)

	for name, has := range map[string]bool{
		"tag":      ecs.Has(w, e, component.PlayerTagComponent.Kind()),
		"input":    ecs.Has(w, e, component.InputComponent.Kind()),
		"velocity": ecs.Has(w, e, component.VelocityComponent.Kind()),
		"timers":   ecs.Has(w, e, component.TimersComponent.Kind()),
		"contact":  ecs.Has(w, e, component.ContactSensorComponent.Kind()),
		"grapple":  ecs.Has(w, e, component.GrappleComponent.Kind()),
		"rope":     ecs.Has(w, e, component.RopeComponent.Kind()),
		"body":     ecs.Has(w, e, component.PhysicsBodyComponent.Kind()),
	} {
		assert.True(t, has, name)
	}

	motion, _ := ecs.Get(w, e, component.MotionComponent.Kind())
	assert.Equal(t, component.MotionAirborne, motion.State)
	assert.Equal(t, 1.0, motion.Facing)

	g, _ := ecs.Get(w, e, component.GravityComponent.Kind())
	assert.Equal(t, component.Gravity{Sign: 1, Scale: 1, Default: 1}, *g)

	body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	assert.True(t, body.CustomGravity)
}

func TestReloadPlayerTuning(t *testing.T) {
	w := ecs.NewWorld()
	e, err := NewPlayerAt(w, 0, 0)
	require.NoError(t, err)
	p, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
	want := *p

	p.RunSpeed = 1
	motion, _ := ecs.Get(w, e, component.MotionComponent.Kind())
	motion.State = component.MotionDashing

	n, err := ReloadPlayerTuning(w)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, want, *p)
	assert.Equal(t, component.MotionDashing, motion.State, "runtime state survives a reload")
}

func TestBuildEntityErrors(t *testing.T) {
	w := ecs.NewWorld()
	_, err := BuildEntity(w, "missing.yaml")
	assert.Error(t, err)
	_, err = BuildEntity(nil, "player.yaml")
	assert.Error(t, err)
	assert.Empty(t, ecs.Entities(w))

	_, err = NewGravityZone(w, 0, 0, 10, 10, -1)
	assert.Error(t, err)
	assert.Empty(t, ecs.Entities(w))
}

func TestNewSolidGrappleable(t *testing.T) {
	w := ecs.NewWorld()
	plain, err := NewSolid(w, 0, 0, 64, 32, false)
	require.NoError(t, err)
	hook, err := NewSolid(w, 0, 100, 64, 32, true)
	require.NoError(t, err)

	layer, _ := ecs.Get(w, plain, component.CollisionLayerComponent.Kind())
	assert.Zero(t, layer.Category&common.CategoryGrapple)
	layer, _ = ecs.Get(w, hook, component.CollisionLayerComponent.Kind())
	assert.NotZero(t, layer.Category&common.CategoryGrapple)
	assert.NotZero(t, layer.Category&common.CategorySolid)

	body, _ := ecs.Get(w, hook, component.PhysicsBodyComponent.Kind())
	assert.Equal(t, 64.0, body.Width)
	assert.Equal(t, 32.0, body.Height)
	assert.True(t, body.Static)
}

func TestNewGrappleAnchor(t *testing.T) {
	w := ecs.NewWorld()
	anchor, err := NewGrappleAnchor(w, 42, 10, 20)
	require.NoError(t, err)
	tag, ok := ecs.Get(w, anchor, component.GrappleAnchorTagComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, uint64(42), tag.Owner)
	tf, _ := ecs.Get(w, anchor, component.TransformComponent.Kind())
	assert.Equal(t, 10.0, tf.X)
	assert.Equal(t, 20.0, tf.Y)
}

func TestLoadLevelMergesTiles(t *testing.T) {
	lvl, err := levels.ParseLevel([]byte(`{
		"name": "tiny", "width": 4, "height": 2,
		"layers": [[1,1,2,2, 1,1,0,0]],
		"entities": [
			{"type": "player", "x": 16, "y": 100},
			{"type": "gravity_zone", "x": 80, "y": 48, "props": {"width": 64, "height": 32, "value": 0.5}},
			{"type": "ufo", "x": 0, "y": 0}
		]}`))
	require.NoError(t, err)

	w := ecs.NewWorld()
	require.NoError(t, LoadLevelToWorld(w, lvl))

	solids := w.Query(component.SolidTagComponent.Kind())
	require.Len(t, solids, 2)
	var grappleable int
	for _, e := range solids {
		tf, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		layer, _ := ecs.Get(w, e, component.CollisionLayerComponent.Kind())
		if layer.Category&common.CategoryGrapple != 0 {
			grappleable++
			assert.Equal(t, 96.0, tf.X)
			assert.Equal(t, 16.0, tf.Y)
			assert.Equal(t, 64.0, body.Width)
			assert.Equal(t, 32.0, body.Height)
			continue
		}
		assert.Equal(t, 32.0, tf.X)
		assert.Equal(t, 32.0, tf.Y)
		assert.Equal(t, 64.0, body.Width)
		assert.Equal(t, 64.0, body.Height)
	}
	assert.Equal(t, 1, grappleable)

	boundsEntity, ok := w.First(component.LevelBoundsComponent.Kind())
	require.True(t, ok)
	bounds, _ := ecs.Get(w, boundsEntity, component.LevelBoundsComponent.Kind())
	assert.Equal(t, component.LevelBounds{Width: 128, Height: 64}, *bounds)

	zones := w.Query(component.GravityZoneComponent.Kind())
	require.Len(t, zones, 1)
	zone, _ := ecs.Get(w, zones[0], component.GravityZoneComponent.Kind())
	assert.Equal(t, component.GravityZone{Value: 0.5, Width: 64, Height: 32}, *zone)

	assert.Len(t, w.Query(component.PlayerTagComponent.Kind()), 1)
}

func TestLoadDemoLevel(t *testing.T) {
	lvl, err := levels.LoadLevel("demo")
	require.NoError(t, err)

	w := ecs.NewWorld()
	require.NoError(t, LoadLevelToWorld(w, lvl))
	assert.Len(t, w.Query(component.PlayerTagComponent.Kind()), 1)
	assert.Len(t, w.Query(component.CameraComponent.Kind()), 1)
	assert.Len(t, w.Query(component.ChaserComponent.Kind()), 1)
	assert.NotEmpty(t, w.Query(component.SolidTagComponent.Kind()))
}
