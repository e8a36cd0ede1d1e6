package system

import (
	"fmt"
	"math"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/milk9111/hookshot/common"
	"github.com/milk9111/hookshot/ecs"
	"github.com/milk9111/hookshot/ecs/component"
	"github.com/milk9111/hookshot/prefabs"
	"github.com/rs/zerolog/log"
)

// ChaserSenseSystem measures the distance from every chaser to the player
// once per frame.
type ChaserSenseSystem struct{}

func NewChaserSenseSystem() *ChaserSenseSystem {
	return &ChaserSenseSystem{}
}

func (s *ChaserSenseSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	player, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	target, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	ecs.ForEach2(w, component.ChaserComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, c *component.Chaser, t *component.Transform) {
		dx := target.X - t.X
		dy := target.Y - t.Y
		c.InRange = math.Hypot(dx, dy) <= c.DetectionRange
		c.DirX, _ = common.Normalize(dx, dy)
	})
}

// ChaserMoveSystem sets the horizontal velocity of chasers on the fixed
// step. Vertical velocity is left to the physics space.
type ChaserMoveSystem struct {
	scripts map[string]*chaserScript
}

type chaserScript struct {
	compiled *tengo.Compiled
	failed   bool
}

func NewChaserMoveSystem() *ChaserMoveSystem {
	return &ChaserMoveSystem{scripts: make(map[string]*chaserScript)}
}

// InvalidateScripts drops compiled scripts so edited files are reloaded.
func (s *ChaserMoveSystem) InvalidateScripts() {
	s.scripts = make(map[string]*chaserScript)
}

func (s *ChaserMoveSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	player, hasPlayer := w.First(component.PlayerTagComponent.Kind())
	var target *component.Transform
	if hasPlayer {
		target, hasPlayer = ecs.Get(w, player, component.TransformComponent.Kind())
	}

	ecs.ForEach3(w,
		component.ChaserComponent.Kind(),
		component.TransformComponent.Kind(),
		component.VelocityComponent.Kind(),
		func(e ecs.Entity, c *component.Chaser, t *component.Transform, v *component.Velocity) {
			if !hasPlayer {
				v.X = 0
				return
			}
			distance := math.Hypot(target.X-t.X, target.Y-t.Y)
			if c.Script != "" {
				if vx, ok := s.runScript(e, c, distance); ok {
					v.X = vx
					return
				}
			}
			v.X = ChaseVelocity(c)
		})
}

// ChaseVelocity is the built-in chase rule.
func ChaseVelocity(c *component.Chaser) float64 {
	if !c.InRange {
		return 0
	}
	return c.DirX * c.Speed
}

func (s *ChaserMoveSystem) runScript(e ecs.Entity, c *component.Chaser, distance float64) (float64, bool) {
	cs, err := s.script(c.Script)
	if err != nil {
		log.Warn().Err(err).Uint64("entity", uint64(e)).Str("script", c.Script).Msg("chaser script")
		return 0, false
	}
	if cs.failed {
		return 0, false
	}

	compiled := cs.compiled
	for name, value := range map[string]any{
		"distance":        distance,
		"detection_range": c.DetectionRange,
		"speed":           c.Speed,
		"dir_x":           c.DirX,
	} {
		if err := compiled.Set(name, value); err != nil {
			cs.failed = true
			log.Warn().Err(err).Str("script", c.Script).Msg("chaser script: set " + name)
			return 0, false
		}
	}
	if err := compiled.Run(); err != nil {
		cs.failed = true
		log.Warn().Err(err).Str("script", c.Script).Msg("chaser script: run")
		return 0, false
	}
	if !compiled.IsDefined("vx") {
		return 0, false
	}
	return compiled.Get("vx").Float(), true
}

func (s *ChaserMoveSystem) script(path string) (*chaserScript, error) {
	if s.scripts == nil {
		s.scripts = make(map[string]*chaserScript)
	}
	if cs, ok := s.scripts[path]; ok {
		return cs, nil
	}
	src, err := prefabs.LoadScript(strings.TrimSpace(path))
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", path, err)
	}
	cs, err := compileChaserScript(src)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", path, err)
	}
	s.scripts[path] = cs
	return cs, nil
}

// scriptVar is a variable declared on a chaser script before compiling.
type scriptVar struct {
	name  string
	value any
}

var chaserScriptVars = []scriptVar{
	{"distance", 0.0},
	{"detection_range", 0.0},
	{"speed", 0.0},
	{"dir_x", 0.0},
	{"vx", 0.0},
}

func compileChaserScript(src []byte) (*chaserScript, error) {
	script := tengo.NewScript(src)
	if err := declareScriptVars(script, chaserScriptVars); err != nil {
		return nil, err
	}
	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}
	return &chaserScript{compiled: compiled}, nil
}

// declareScriptVars adds vars in order and stops at the first failure.
func declareScriptVars(script *tengo.Script, vars []scriptVar) error {
	for _, v := range vars {
		if err := script.Add(v.name, v.value); err != nil {
			return fmt.Errorf("declare %s: %w", v.name, err)
		}
	}
	return nil
}
