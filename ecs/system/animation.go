package system

import (
	"github.com/milk9111/hookshot/common"
	"github.com/milk9111/hookshot/ecs"
	"github.com/milk9111/hookshot/ecs/component"
)

const (
	ClipIdle   = "idle"
	ClipRun    = "run"
	ClipJump   = "jump"
	ClipDash   = "dash"
	ClipAttack = "attack"
)

var triggerClips = map[string]struct {
	clip     string
	duration float64
}{
	component.AnimTriggerDash:   {clip: ClipDash, duration: 0.2},
	component.AnimTriggerAttack: {clip: ClipAttack, duration: 0.15},
}

// AnimationSystem resolves the animator parameters into the clip the
// renderer shows. One-shot triggers play their clip for a fixed time before
// the boolean parameters take over again.
type AnimationSystem struct {
	DT float64
}

func NewAnimationSystem(dt float64) *AnimationSystem {
	return &AnimationSystem{DT: dt}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	if a == nil || w == nil {
		return
	}
	ecs.ForEach(w, component.AnimatorComponent.Kind(), func(e ecs.Entity, anim *component.Animator) {
		for _, trig := range anim.Triggers {
			if tc, ok := triggerClips[trig]; ok {
				anim.Clip = tc.clip
				anim.ClipTimer = tc.duration
			}
		}
		anim.Triggers = anim.Triggers[:0]

		if common.Armed(anim.ClipTimer) {
			anim.ClipTimer = common.Countdown(anim.ClipTimer, a.DT)
			return
		}
		switch {
		case anim.Bools[component.AnimIsJumping]:
			anim.Clip = ClipJump
		case anim.Bools[component.AnimIsRunning]:
			anim.Clip = ClipRun
		default:
			anim.Clip = ClipIdle
		}
	})
}
