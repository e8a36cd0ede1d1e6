package ecs

// System updates a world once per tick of whichever scheduler owns it.
type System interface {
	Update(w *World)
}

// Scheduler runs its systems in the order they were added. The game keeps
// two: one per rendered frame, one per fixed physics step.
type Scheduler struct {
	systems []System
}

// NewScheduler builds a scheduler from systems, dropping nil entries so
// optional systems can be passed unconditionally.
func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{systems: make([]System, 0, len(systems))}
	for _, sys := range systems {
		s.Add(sys)
	}
	return s
}

func (s *Scheduler) Add(sys System) {
	if sys != nil {
		s.systems = append(s.systems, sys)
	}
}

func (s *Scheduler) Update(w *World) {
	if s == nil || w == nil {
		return
	}
	for _, sys := range s.systems {
		sys.Update(w)
	}
}

// Len reports how many systems will run per Update.
func (s *Scheduler) Len() int {
	if s == nil {
		return 0
	}
	return len(s.systems)
}
