package component

const (
	AnimIsRunning = "isRunning"
	AnimIsJumping = "isJumping"

	AnimTriggerDash   = "Dash"
	AnimTriggerAttack = "isAttacking"
)

// Animator carries the boolean parameters and one-shot triggers gameplay
// sets for the visual layer, plus the clip resolved from them.
type Animator struct {
	Bools    map[string]bool
	Triggers []string

	Clip      string
	ClipTimer float64
}

func (a *Animator) SetBool(name string, v bool) {
	if a.Bools == nil {
		a.Bools = make(map[string]bool)
	}
	a.Bools[name] = v
}

func (a *Animator) Trigger(name string) {
	a.Triggers = append(a.Triggers, name)
}

var AnimatorComponent = NewComponent[Animator]()
