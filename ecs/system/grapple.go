package system

import (
	"math"

	"github.com/milk9111/hookshot/common"
	"github.com/milk9111/hookshot/ecs"
	"github.com/milk9111/hookshot/ecs/component"
	"github.com/rs/zerolog/log"
)

const defaultGrappleMinLength = 1.0

// MarkerFactory spawns the visual anchor marker for a grapple owned by owner.
type MarkerFactory func(w *ecs.World, owner ecs.Entity, x, y float64) (ecs.Entity, error)

// GrappleSystem engages, adjusts and releases grapples from input edges.
type GrappleSystem struct {
	DT float64

	caster    Raycaster
	newMarker MarkerFactory
}

func NewGrappleSystem(caster Raycaster, newMarker MarkerFactory, dt float64) *GrappleSystem {
	return &GrappleSystem{DT: dt, caster: caster, newMarker: newMarker}
}

func (s *GrappleSystem) SetRaycaster(caster Raycaster) {
	s.caster = caster
}

func (s *GrappleSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	ecs.ForEach3(w,
		component.InputComponent.Kind(),
		component.GrappleComponent.Kind(),
		component.TransformComponent.Kind(),
		func(e ecs.Entity, in *component.Input, g *component.Grapple, t *component.Transform) {
			if in.GrapplePressed {
				s.engage(w, e, g, t, in.PointerX, in.PointerY)
			}
			if g.Engaged && g.Mode != component.GrappleModeAttract {
				s.reel(g, in)
			}
			if in.GrappleReleased && g.Engaged {
				Disengage(w, e, g)
			}
		})
}

// FirePoint is the world position the grapple ray and rope start from.
func FirePoint(g *component.Grapple, t *component.Transform) (float64, float64) {
	return t.X + g.FireOffsetX, t.Y + g.FireOffsetY
}

func (s *GrappleSystem) engage(w *ecs.World, e ecs.Entity, g *component.Grapple, t *component.Transform, aimX, aimY float64) {
	fx, fy := FirePoint(g, t)
	dx, dy := common.Normalize(aimX-fx, aimY-fy)
	if (dx == 0 && dy == 0) || s.caster == nil {
		return
	}
	hit, ok := s.caster.Raycast(fx, fy, fx+dx*g.Range, fy+dy*g.Range, g.Mask)
	if !ok {
		log.Debug().Uint64("entity", uint64(e)).Msg("grapple missed")
		return
	}

	destroyMarker(w, g)
	g.Engaged = true
	g.AnchorX = hit.X
	g.AnchorY = hit.Y
	g.Length = clampLength(g, math.Hypot(hit.X-t.X, hit.Y-t.Y))

	if s.newMarker != nil {
		marker, err := s.newMarker(w, e, hit.X, hit.Y)
		if err != nil {
			log.Warn().Err(err).Uint64("entity", uint64(e)).Msg("grapple marker")
		} else {
			g.Marker = uint64(marker)
		}
	}

	if rope, ok := ecs.Get(w, e, component.RopeComponent.Kind()); ok {
		rope.Active = true
		rope.Straight = false
		rope.MoveTime = 0
		rope.WaveSize = rope.StartWaveSize
	}
	if line, ok := ecs.Get(w, e, component.LineRenderComponent.Kind()); ok {
		line.Visible = true
	}
	log.Debug().Uint64("entity", uint64(e)).Float64("anchor_x", hit.X).Float64("anchor_y", hit.Y).Float64("length", g.Length).Msg("grapple engaged")
}

func (s *GrappleSystem) reel(g *component.Grapple, in *component.Input) {
	switch {
	case in.ReelInPressed:
		g.Length -= g.ReelStep
	case in.ReelIn:
		g.Length -= g.ReelSpeed * s.DT
	}
	switch {
	case in.ReelOutPressed:
		g.Length += g.ReelStep
	case in.ReelOut:
		g.Length += g.ReelSpeed * s.DT
	}
	g.Length = clampLength(g, g.Length)
}

// Disengage releases the grapple, hides the rope and destroys the marker.
// The physics system drops the joint on its next step.
func Disengage(w *ecs.World, e ecs.Entity, g *component.Grapple) {
	g.Engaged = false
	destroyMarker(w, g)
	if rope, ok := ecs.Get(w, e, component.RopeComponent.Kind()); ok {
		rope.Active = false
	}
	if line, ok := ecs.Get(w, e, component.LineRenderComponent.Kind()); ok {
		line.Visible = false
		line.Points = line.Points[:0]
	}
	log.Debug().Uint64("entity", uint64(e)).Msg("grapple released")
}

func destroyMarker(w *ecs.World, g *component.Grapple) {
	if g.Marker == 0 {
		return
	}
	ecs.DestroyEntity(w, ecs.Entity(g.Marker))
	g.Marker = 0
}

func clampLength(g *component.Grapple, length float64) float64 {
	minLen := g.MinLength
	if minLen <= 0 {
		minLen = defaultGrappleMinLength
	}
	maxLen := g.MaxLength
	if maxLen <= 0 {
		maxLen = g.Range
	}
	if maxLen < minLen {
		maxLen = minLen
	}
	return common.Clamp(length, minLen, maxLen)
}

// ApplyGrappleAttraction pulls the actor toward the anchor while the attract
// key is held.
func ApplyGrappleAttraction(v *component.Velocity, g *component.Grapple, t *component.Transform, in *component.Input, dt float64) {
	if !g.Engaged || g.Mode != component.GrappleModeAttract || !in.ReelIn {
		return
	}
	dx, dy := common.Normalize(g.AnchorX-t.X, g.AnchorY-t.Y)
	v.X += dx * g.AttractForce * dt
	v.Y += dy * g.AttractForce * dt
}
