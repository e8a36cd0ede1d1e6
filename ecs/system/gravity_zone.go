package system

import (
	"math"

	"github.com/milk9111/hookshot/ecs"
	"github.com/milk9111/hookshot/ecs/component"
	"github.com/rs/zerolog/log"
)

// InvertGravity flips the gravity sign, the sign of the current scale and the
// vertical scale of the transform. Applying it twice restores all three.
func InvertGravity(g *component.Gravity, t *component.Transform) {
	if g == nil {
		return
	}
	if g.Sign == 0 {
		g.Sign = 1
	}
	g.Sign = -g.Sign
	g.Scale = -g.Scale
	if t != nil {
		if t.ScaleY == 0 {
			t.ScaleY = 1
		}
		t.ScaleY = -t.ScaleY
	}
}

// SetGravityScale overrides the gravity magnitude while keeping the current
// direction.
func SetGravityScale(g *component.Gravity, value float64) {
	if g == nil {
		return
	}
	g.Scale = math.Abs(value) * gravitySign(g)
}

// ResetGravityScale restores the default magnitude in the current direction.
func ResetGravityScale(g *component.Gravity) {
	if g == nil {
		return
	}
	g.Scale = math.Abs(g.Default) * gravitySign(g)
}

// GravityZoneSystem applies zone enter/exit events reported by physics.
type GravityZoneSystem struct{}

func NewGravityZoneSystem() *GravityZoneSystem {
	return &GravityZoneSystem{}
}

func (s *GravityZoneSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	for _, evt := range w.Events().DrainType(ecs.EventZone) {
		ze, ok := evt.Data.(ecs.ZoneEvent)
		if !ok {
			continue
		}
		g, ok := ecs.Get(w, ze.Actor, component.GravityComponent.Kind())
		if !ok {
			continue
		}
		if !ze.Entered {
			ResetGravityScale(g)
			log.Debug().Uint64("entity", uint64(ze.Actor)).Float64("scale", g.Scale).Msg("left gravity zone")
			continue
		}
		zone, ok := ecs.Get(w, ze.Zone, component.GravityZoneComponent.Kind())
		if !ok {
			continue
		}
		SetGravityScale(g, zone.Value)
		log.Debug().Uint64("entity", uint64(ze.Actor)).Float64("scale", g.Scale).Msg("entered gravity zone")
	}
}
