package system

import (
	"github.com/milk9111/hookshot/ecs"
	"github.com/milk9111/hookshot/ecs/component"
)

// RayHit is the nearest intersection of a segment query.
type RayHit struct {
	Entity   ecs.Entity
	X, Y     float64
	NormalX  float64
	NormalY  float64
	Distance float64
}

// Raycaster answers segment queries against level geometry filtered by a
// category mask.
type Raycaster interface {
	Raycast(x0, y0, x1, y1 float64, mask uint32) (RayHit, bool)
}

// Probe casts a ray of length rng from (x, y) along (dirX, dirY) and reports
// whether it hit anything in mask.
func Probe(caster Raycaster, x, y, dirX, dirY, rng float64, mask uint32) bool {
	if caster == nil || rng <= 0 {
		return false
	}
	_, ok := caster.Raycast(x, y, x+dirX*rng, y+dirY*rng, mask)
	return ok
}

// WallSensorSystem probes left and right of every actor each frame and
// stores the touched side in ContactSensor.Wall.
type WallSensorSystem struct {
	caster Raycaster
}

func NewWallSensorSystem(caster Raycaster) *WallSensorSystem {
	return &WallSensorSystem{caster: caster}
}

func (s *WallSensorSystem) SetRaycaster(caster Raycaster) {
	s.caster = caster
}

func (s *WallSensorSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	ecs.ForEach2(w, component.PlayerComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Player, t *component.Transform) {
		contact := getOrAdd(w, e, component.ContactSensorComponent.Kind(), "contact sensor")
		contact.Wall = WallContact(s.caster, t.X, t.Y, p.WallProbeRange, p.WallMask)
	})
}

// WallContact probes left first, then right.
func WallContact(caster Raycaster, x, y, rng float64, mask uint32) int {
	if Probe(caster, x, y, -1, 0, rng, mask) {
		return component.WallLeft
	}
	if Probe(caster, x, y, 1, 0, rng, mask) {
		return component.WallRight
	}
	return component.WallNone
}
