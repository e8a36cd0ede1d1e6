package entity

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/milk9111/hookshot/common"
	"github.com/milk9111/hookshot/ecs"
	"github.com/milk9111/hookshot/ecs/component"
	"github.com/milk9111/hookshot/prefabs"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":           addPlayerTag,
	"camera_tag":           addCameraTag,
	"solid_tag":            addSolidTag,
	"player":               addPlayer,
	"input":                addInput,
	"player_state_machine": addPlayerStateMachine,
	"transform":            addTransform,
	"sprite":               addSprite,
	"render_layer":         addRenderLayer,
	"line_render":          addLineRender,
	"camera":               addCamera,
	"gravity":              addGravity,
	"gravity_zone":         addGravityZone,
	"grapple":              addGrapple,
	"rope":                 addRope,
	"animator":             addAnimator,
	"chaser":               addChaser,
	"collision_layer":      addCollisionLayer,
	"physics_body":         addPhysicsBody,
}

// componentBuildOrder lists tags and data before the components whose
// builders read them (physics_body reads the sprite size, gravity needs the
// transform).
var componentBuildOrder = []string{
	"player_tag",
	"camera_tag",
	"solid_tag",
	"player",
	"input",
	"player_state_machine",
	"transform",
	"sprite",
	"render_layer",
	"line_render",
	"camera",
	"gravity",
	"gravity_zone",
	"grapple",
	"rope",
	"animator",
	"chaser",
	"collision_layer",
	"physics_body",
}

// BuildEntity creates an entity from a prefab file. Unknown component names
// fail the build and leave no entity behind.
func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, names[0])
	}
	return e, nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	t.Rotation = rotation
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

// SetEntitySize resizes the sprite and collider of e, for level volumes that
// share one prefab.
func SetEntitySize(w *ecs.World, e ecs.Entity, width, height float64) {
	if s, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
		s.Width = width
		s.Height = height
	}
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
		body.Width = width
		body.Height = height
	}
	if zone, ok := ecs.Get(w, e, component.GravityZoneComponent.Kind()); ok {
		zone.Width = width
		zone.Height = height
	}
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
}

func addSolidTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.SolidTagComponent.Kind(), &component.SolidTag{})
}

type playerSpec = prefabs.PlayerComponentSpec

func addPlayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[playerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player spec: %w", err)
	}
	if err := ecs.Add(w, e, component.PlayerComponent.Kind(), PlayerFromSpec(spec)); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.MotionComponent.Kind(), &component.Motion{State: component.MotionAirborne, Facing: 1}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.TimersComponent.Kind(), &component.Timers{}); err != nil {
		return err
	}
	return ecs.Add(w, e, component.ContactSensorComponent.Kind(), &component.ContactSensor{})
}

// PlayerFromSpec converts decoded tuning into the component, filling the
// wall mask default.
func PlayerFromSpec(spec playerSpec) *component.Player {
	mask := spec.WallMask
	if mask == 0 {
		mask = common.CategorySolid
	}
	return &component.Player{
		RunSpeed:                    spec.RunSpeed,
		SprintMultiplier:            spec.SprintMultiplier,
		GroundAcceleration:          spec.GroundAcceleration,
		AirAcceleration:             spec.AirAcceleration,
		GroundDeceleration:          spec.GroundDeceleration,
		AirDeceleration:             spec.AirDeceleration,
		JumpSpeed:                   spec.JumpSpeed,
		FallAcceleration:            spec.FallAcceleration,
		MaxFallSpeed:                spec.MaxFallSpeed,
		JumpEndEarlyGravityModifier: spec.JumpEndEarlyGravityModifier,
		CoyoteTime:                  spec.CoyoteTime,
		JumpBufferTime:              spec.JumpBufferTime,
		DashSpeed:                   spec.DashSpeed,
		DashDuration:                spec.DashDuration,
		WallJumpForce:               spec.WallJumpForce,
		WallJumpDirX:                spec.WallJumpDirX,
		WallJumpDirY:                spec.WallJumpDirY,
		WallJumpLockTime:            spec.WallJumpLockTime,
		WallSlideSpeed:              spec.WallSlideSpeed,
		WallProbeRange:              spec.WallProbeRange,
		WallMask:                    mask,
	}
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

func addPlayerStateMachine(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerStateMachineComponent.Kind(), &component.PlayerStateMachine{})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: spec.Rotation,
	})
}

type spriteSpec = prefabs.SpriteComponentSpec

func addSprite(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[spriteSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sprite spec: %w", err)
	}
	clr := spec.Color.NRGBA
	if clr.A == 0 && clr.R == 0 && clr.G == 0 && clr.B == 0 {
		clr = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
	width, height := spec.Width, spec.Height
	if width <= 0 {
		width = common.TileSize
	}
	if height <= 0 {
		height = common.TileSize
	}
	return ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Width:      width,
		Height:     height,
		Color:      clr,
		FacingLeft: spec.FacingLeft,
	})
}

type renderLayerSpec = prefabs.RenderLayerComponentSpec

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[renderLayerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render layer spec: %w", err)
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Index})
}

type lineRenderSpec = prefabs.LineRenderComponentSpec

func addLineRender(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[lineRenderSpec](raw)
	if err != nil {
		return fmt.Errorf("decode line render spec: %w", err)
	}
	width := spec.Width
	if width <= 0 {
		width = 1
	}
	var clr color.Color = color.White
	if spec.Color.A != 0 {
		clr = spec.Color.NRGBA
	}
	return ecs.Add(w, e, component.LineRenderComponent.Kind(), &component.LineRender{
		Width:     width,
		Color:     clr,
		AntiAlias: spec.AntiAlias,
	})
}

type cameraSpec = prefabs.CameraComponentSpec

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[cameraSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	zoom := spec.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	smooth := spec.Smoothness
	if smooth == 0 {
		smooth = 0.15
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{Zoom: zoom, Smoothness: smooth})
}

type gravitySpec = prefabs.GravityComponentSpec

func addGravity(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[gravitySpec](raw)
	if err != nil {
		return fmt.Errorf("decode gravity spec: %w", err)
	}
	scale := spec.Scale
	if scale == 0 {
		scale = 1
	}
	if scale < 0 {
		return fmt.Errorf("gravity scale must not be negative, got %v", scale)
	}
	return ecs.Add(w, e, component.GravityComponent.Kind(), &component.Gravity{Sign: 1, Scale: scale, Default: scale})
}

type gravityZoneSpec = prefabs.GravityZoneComponentSpec

func addGravityZone(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[gravityZoneSpec](raw)
	if err != nil {
		return fmt.Errorf("decode gravity zone spec: %w", err)
	}
	if spec.Value < 0 {
		return fmt.Errorf("gravity zone value must not be negative, got %v", spec.Value)
	}
	return ecs.Add(w, e, component.GravityZoneComponent.Kind(), &component.GravityZone{Value: spec.Value})
}

type grappleSpec = prefabs.GrappleComponentSpec

func addGrapple(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[grappleSpec](raw)
	if err != nil {
		return fmt.Errorf("decode grapple spec: %w", err)
	}
	mode := spec.Mode
	switch mode {
	case "":
		mode = component.GrappleModeReel
	case component.GrappleModeReel, component.GrappleModeAttract:
	default:
		return fmt.Errorf("unknown grapple mode %q", spec.Mode)
	}
	mask := spec.Mask
	if mask == 0 {
		mask = common.CategoryGrapple
	}
	return ecs.Add(w, e, component.GrappleComponent.Kind(), &component.Grapple{
		Mode:         mode,
		Range:        spec.Range,
		MinLength:    spec.MinLength,
		MaxLength:    spec.MaxLength,
		ReelStep:     spec.ReelStep,
		ReelSpeed:    spec.ReelSpeed,
		AttractForce: spec.AttractForce,
		FireOffsetX:  spec.FireOffsetX,
		FireOffsetY:  spec.FireOffsetY,
		Mask:         mask,
	})
}

type ropeSpec = prefabs.RopeComponentSpec

func addRope(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[ropeSpec](raw)
	if err != nil {
		return fmt.Errorf("decode rope spec: %w", err)
	}
	return ecs.Add(w, e, component.RopeComponent.Kind(), &component.Rope{
		Precision:        spec.Precision,
		StartWaveSize:    spec.StartWaveSize,
		StraightenSpeed:  spec.StraightenSpeed,
		ProgressionSpeed: spec.ProgressionSpeed,
		Waves:            spec.Waves,
	})
}

func addAnimator(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.AnimatorComponent.Kind(), &component.Animator{Bools: map[string]bool{}})
}

type chaserSpec = prefabs.ChaserComponentSpec

func addChaser(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[chaserSpec](raw)
	if err != nil {
		return fmt.Errorf("decode chaser spec: %w", err)
	}
	if err := ecs.Add(w, e, component.ChaserComponent.Kind(), &component.Chaser{
		Speed:          spec.Speed,
		DetectionRange: spec.DetectionRange,
		Script:         spec.Script,
	}); err != nil {
		return err
	}
	return ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{})
}

type collisionLayerSpec = prefabs.CollisionLayerComponentSpec

func addCollisionLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[collisionLayerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode collision layer spec: %w", err)
	}
	cat := spec.Category
	mask := spec.Mask
	if cat == 0 {
		cat = common.CategorySolid
	}
	if mask == 0 {
		mask = ^uint32(0)
	}
	return ecs.Add(w, e, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{Category: cat, Mask: mask})
}

type physicsBodySpec = prefabs.PhysicsBodyComponentSpec

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[physicsBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}
	width, height := spec.Width, spec.Height
	if width <= 0 || height <= 0 {
		if s, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
			width, height = s.Width, s.Height
		}
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:         width,
		Height:        height,
		Mass:          spec.Mass,
		Friction:      spec.Friction,
		Elasticity:    spec.Elasticity,
		Static:        spec.Static,
		Sensor:        spec.Sensor,
		CustomGravity: spec.CustomGravity,
	})
}
