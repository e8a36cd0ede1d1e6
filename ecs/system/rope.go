package system

import (
	"math"

	"github.com/milk9111/hookshot/common"
	"github.com/milk9111/hookshot/ecs"
	"github.com/milk9111/hookshot/ecs/component"
)

const defaultRopePrecision = 40

// RopeSystem animates the grapple line: it shoots out from the fire point as
// a wave, the wave then decays, and the line collapses to two points.
type RopeSystem struct {
	DT float64
}

func NewRopeSystem(dt float64) *RopeSystem {
	return &RopeSystem{DT: dt}
}

func (s *RopeSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	ecs.ForEach4(w,
		component.RopeComponent.Kind(),
		component.LineRenderComponent.Kind(),
		component.GrappleComponent.Kind(),
		component.TransformComponent.Kind(),
		func(e ecs.Entity, rope *component.Rope, line *component.LineRender, g *component.Grapple, t *component.Transform) {
			if !rope.Active || !g.Engaged {
				line.Visible = false
				return
			}
			line.Visible = true
			rope.MoveTime += s.DT
			fx, fy := FirePoint(g, t)
			StepRope(rope, line, fx, fy, g.AnchorX, g.AnchorY, s.DT)
		})
}

// StepRope advances the rope animation by dt and rewrites the line points.
func StepRope(rope *component.Rope, line *component.LineRender, fx, fy, ax, ay, dt float64) {
	if !rope.Straight {
		if ropeProgress(rope) >= 1 {
			rope.Straight = true
		}
		drawRopeWaves(rope, line, fx, fy, ax, ay)
		return
	}
	if rope.WaveSize > 0 {
		rope.WaveSize -= dt * rope.StraightenSpeed
		if rope.WaveSize > 0 {
			drawRopeWaves(rope, line, fx, fy, ax, ay)
			return
		}
	}
	rope.WaveSize = 0
	line.Points = append(line.Points[:0],
		component.Point{X: fx, Y: fy},
		component.Point{X: ax, Y: ay},
	)
}

func ropeProgress(rope *component.Rope) float64 {
	speed := rope.ProgressionSpeed
	if speed <= 0 {
		speed = 1
	}
	return common.Clamp(rope.MoveTime*speed, 0, 1)
}

func drawRopeWaves(rope *component.Rope, line *component.LineRender, fx, fy, ax, ay float64) {
	n := rope.Precision
	if n < 2 {
		n = defaultRopePrecision
	}
	waves := rope.Waves
	if waves <= 0 {
		waves = 1
	}
	// perpendicular of the fire->anchor direction
	px, py := common.Normalize(-(ay - fy), ax-fx)
	progress := ropeProgress(rope)

	line.Points = line.Points[:0]
	for i := 0; i < n; i++ {
		delta := float64(i) / float64(n-1)
		amp := math.Sin(delta*waves*2*math.Pi) * rope.WaveSize
		tx := common.Lerp(fx, ax, delta) + px*amp
		ty := common.Lerp(fy, ay, delta) + py*amp
		line.Points = append(line.Points, component.Point{
			X: common.Lerp(fx, tx, progress),
			Y: common.Lerp(fy, ty, progress),
		})
	}
}
