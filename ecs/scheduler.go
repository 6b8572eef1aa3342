package ecs

type System interface {
	Update(w *World)
}

// Scheduler runs systems in registration order. Once stopped it never runs
// them again.
type Scheduler struct {
	systems []System
	stopped bool
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) Update(w *World) {
	if s == nil || s.stopped || w == nil {
		return
	}
	for _, system := range s.systems {
		system.Update(w)
	}
}

func (s *Scheduler) Stop() {
	if s == nil {
		return
	}
	s.stopped = true
}

func (s *Scheduler) Stopped() bool {
	return s == nil || s.stopped
}

func (s *Scheduler) Systems() []System {
	if s == nil {
		return nil
	}
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
