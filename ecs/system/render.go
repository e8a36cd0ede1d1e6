package system

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/hookshot/ecs"
	"github.com/milk9111/hookshot/ecs/component"
)

var clipTints = map[string]color.NRGBA{
	ClipDash:   {R: 255, G: 255, B: 255, A: 255},
	ClipAttack: {R: 255, G: 90, B: 90, A: 255},
}

// RenderSystem draws sprites as camera-relative rectangles, then rope lines.
type RenderSystem struct {
	Debug bool

	camEntity ecs.Entity
}

func NewRenderSystem(debug bool) *RenderSystem {
	return &RenderSystem{Debug: debug}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	if !w.IsAlive(r.camEntity) {
		if camEntity, ok := w.First(component.CameraComponent.Kind()); ok {
			r.camEntity = camEntity
		}
	}

	camX, camY := 0.0, 0.0
	zoom := 1.0
	if camTransform, ok := ecs.Get(w, r.camEntity, component.TransformComponent.Kind()); ok {
		camX = camTransform.X
		camY = camTransform.Y
	}
	if camComp, ok := ecs.Get(w, r.camEntity, component.CameraComponent.Kind()); ok && camComp.Zoom > 0 {
		zoom = camComp.Zoom
	}
	toScreen := func(x, y float64) (float32, float32) {
		return float32((x - camX) * zoom), float32((y - camY) * zoom)
	}

	entities := w.Query(component.TransformComponent.Kind(), component.SpriteComponent.Kind())
	sort.SliceStable(entities, func(i, j int) bool {
		li := 0
		if layer, ok := ecs.Get(w, entities[i], component.RenderLayerComponent.Kind()); ok {
			li = layer.Index
		}
		lj := 0
		if layer, ok := ecs.Get(w, entities[j], component.RenderLayerComponent.Kind()); ok {
			lj = layer.Index
		}
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		s, _ := ecs.Get(w, e, component.SpriteComponent.Kind())

		sx := math.Abs(t.ScaleX)
		if sx == 0 {
			sx = 1
		}
		sy := math.Abs(t.ScaleY)
		if sy == 0 {
			sy = 1
		}
		width := s.Width * sx
		height := s.Height * sy

		clr := s.Color
		if anim, ok := ecs.Get(w, e, component.AnimatorComponent.Kind()); ok {
			if tint, ok := clipTints[anim.Clip]; ok {
				clr = tint
			}
		}

		x, y := toScreen(t.X-width/2, t.Y-height/2)
		vector.FillRect(screen, x, y, float32(width*zoom), float32(height*zoom), clr, false)

		if ecs.Has(w, e, component.PlayerTagComponent.Kind()) {
			r.drawFacing(screen, t, s, width, height, toScreen, zoom)
		}
	}

	ecs.ForEach(w, component.LineRenderComponent.Kind(), func(e ecs.Entity, line *component.LineRender) {
		if !line.Visible || len(line.Points) < 2 {
			return
		}
		clr := line.Color
		if clr == nil {
			clr = color.White
		}
		width := line.Width
		if width <= 0 {
			width = 1
		}
		for i := 1; i < len(line.Points); i++ {
			x0, y0 := toScreen(line.Points[i-1].X, line.Points[i-1].Y)
			x1, y1 := toScreen(line.Points[i].X, line.Points[i].Y)
			vector.StrokeLine(screen, x0, y0, x1, y1, width*float32(zoom), clr, line.AntiAlias)
		}
	})

	if r.Debug {
		r.drawDebug(w, screen)
	}
}

// drawFacing marks the front-top corner so facing and inversion are visible
// without sprite art.
func (r *RenderSystem) drawFacing(screen *ebiten.Image, t *component.Transform, s *component.Sprite, width, height float64, toScreen func(x, y float64) (float32, float32), zoom float64) {
	const eye = 4.0
	ex := t.X + width/4
	if s.FacingLeft {
		ex = t.X - width/4
	}
	ey := t.Y - height/4
	if t.ScaleY < 0 {
		ey = t.Y + height/4
	}
	x, y := toScreen(ex-eye/2, ey-eye/2)
	vector.FillRect(screen, x, y, float32(eye*zoom), float32(eye*zoom), color.Black, false)
}

func (r *RenderSystem) drawDebug(w *ecs.World, screen *ebiten.Image) {
	player, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	motion, ok := ecs.Get(w, player, component.MotionComponent.Kind())
	if !ok {
		return
	}
	vel, _ := ecs.Get(w, player, component.VelocityComponent.Kind())
	timers, _ := ecs.Get(w, player, component.TimersComponent.Kind())
	g, _ := ecs.Get(w, player, component.GravityComponent.Kind())

	msg := fmt.Sprintf("state: %s\ngrounded: %t\n", motion.State, motion.Grounded)
	if vel != nil {
		msg += fmt.Sprintf("vel: %.1f, %.1f\n", vel.X, vel.Y)
	}
	if timers != nil {
		msg += fmt.Sprintf("coyote: %.2f buffer: %.2f\n", timers.Coyote, timers.JumpBuffer)
	}
	if g != nil {
		msg += fmt.Sprintf("gravity: %.0f x %.2f\n", g.Sign, g.Scale)
	}
	msg += fmt.Sprintf("tps: %.0f", ebiten.ActualTPS())
	ebitenutil.DebugPrintAt(screen, msg, 8, 8)
}
