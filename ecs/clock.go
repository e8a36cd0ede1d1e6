package ecs

// FixedStepper converts variable frame time into whole fixed steps. Leftover
// time carries over to the next frame.
type FixedStepper struct {
	Step     float64
	MaxSteps int

	acc float64
}

func NewFixedStepper(step float64, maxSteps int) *FixedStepper {
	if maxSteps <= 0 {
		maxSteps = 5
	}
	return &FixedStepper{Step: step, MaxSteps: maxSteps}
}

// Advance adds frame time and returns how many fixed steps are due. When
// more than MaxSteps are owed the backlog is dropped instead of spiralling.
func (f *FixedStepper) Advance(frameDT float64) int {
	if f == nil || f.Step <= 0 || frameDT <= 0 {
		return 0
	}
	f.acc += frameDT
	// tolerate float drift so 1/60 frames at 60Hz always yield one step
	const slack = 1e-9
	n := 0
	for f.acc+slack >= f.Step && n < f.MaxSteps {
		f.acc -= f.Step
		n++
	}
	if n == f.MaxSteps && f.acc >= f.Step {
		f.acc = 0
	}
	if f.acc < 0 {
		f.acc = 0
	}
	return n
}

// Alpha is the fraction of a step left in the accumulator, for interpolation.
func (f *FixedStepper) Alpha() float64 {
	if f == nil || f.Step <= 0 {
		return 0
	}
	return f.acc / f.Step
}
