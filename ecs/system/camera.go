package system

import (
	"github.com/milk9111/hookshot/common"
	"github.com/milk9111/hookshot/ecs"
	"github.com/milk9111/hookshot/ecs/component"
)

// CameraSystem keeps the camera transform (the top-left of the view) centred
// on its target and inside the level bounds.
type CameraSystem struct {
	ViewW float64
	ViewH float64

	camEntity    ecs.Entity
	targetEntity ecs.Entity
}

func NewCameraSystem(viewW, viewH float64) *CameraSystem {
	return &CameraSystem{ViewW: viewW, ViewH: viewH}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if cs == nil || w == nil {
		return
	}
	if !w.IsAlive(cs.camEntity) {
		camEntity, ok := w.First(component.CameraComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = camEntity
		cs.targetEntity = 0
	}
	camComp, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}

	if !w.IsAlive(cs.targetEntity) {
		cs.targetEntity = findCameraTarget(w, camComp)
	}
	target, ok := ecs.Get(w, cs.targetEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}
	camTransform, ok := ecs.Get(w, cs.camEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}

	zoom := camComp.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	viewW := cs.ViewW / zoom
	viewH := cs.ViewH / zoom

	x := target.X - viewW/2
	y := target.Y - viewH/2
	if bounds, ok := levelBounds(w); ok {
		x = clampView(x, viewW, bounds.Width)
		y = clampView(y, viewH, bounds.Height)
	}

	smooth := camComp.Smoothness
	if smooth <= 0 || smooth > 1 {
		smooth = 1
	}
	camTransform.X = common.Lerp(camTransform.X, x, smooth)
	camTransform.Y = common.Lerp(camTransform.Y, y, smooth)
}

// SnapCamera moves the camera straight onto its target, skipping smoothing.
func (cs *CameraSystem) SnapCamera(w *ecs.World) {
	if cs == nil || w == nil {
		return
	}
	camEntity, ok := w.First(component.CameraComponent.Kind())
	if !ok {
		return
	}
	camComp, _ := ecs.Get(w, camEntity, component.CameraComponent.Kind())
	saved := camComp.Smoothness
	camComp.Smoothness = 1
	cs.camEntity = 0
	cs.Update(w)
	camComp.Smoothness = saved
}

func findCameraTarget(w *ecs.World, cam *component.Camera) ecs.Entity {
	if cam.Target != 0 && w.IsAlive(ecs.Entity(cam.Target)) {
		return ecs.Entity(cam.Target)
	}
	if e, ok := w.First(component.PlayerTagComponent.Kind()); ok {
		return e
	}
	return 0
}

func levelBounds(w *ecs.World) (*component.LevelBounds, bool) {
	e, ok := w.First(component.LevelBoundsComponent.Kind())
	if !ok {
		return nil, false
	}
	return ecs.Get(w, e, component.LevelBoundsComponent.Kind())
}

func clampView(pos, view, world float64) float64 {
	if world <= view {
		return (world - view) / 2
	}
	return common.Clamp(pos, 0, world-view)
}
