package hotloop

import (
	"sort"
	"time"
)

// Clock reports the current time. The scheduler and the gesture interpreter
// read time only through a Clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the wall clock.
var SystemClock Clock = systemClock{}

// ManualClock is a Clock that only moves when told to. Headless runs advance
// it by one tick per Scene.Update so deferred tasks fire on simulated time.
type ManualClock struct {
	t time.Time
}

// NewManualClock returns a ManualClock starting at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{t: start}
}

// Now returns the clock's current time.
func (c *ManualClock) Now() time.Time { return c.t }

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type task struct {
	id  uint64
	due time.Time
	fn  func()
}

// Scheduler runs deferred callbacks on the game goroutine. Tasks are checked
// once per tick from Scene.Update, so a task fires on the first tick at or
// after its due time.
type Scheduler struct {
	clock  Clock
	tasks  []task
	due    []task
	nextID uint64
}

// NewScheduler creates a Scheduler driven by clock.
func NewScheduler(clock Clock) *Scheduler {
	if clock == nil {
		clock = SystemClock
	}
	return &Scheduler{clock: clock}
}

// Timer is the handle of a scheduled task.
type Timer struct {
	id    uint64
	sched *Scheduler
}

// Cancel removes the task if it has not fired yet. It reports whether the
// task was still pending. Cancel on the zero Timer is a no-op.
func (t Timer) Cancel() bool {
	if t.sched == nil {
		return false
	}
	return t.sched.cancel(t.id)
}

// After schedules fn to run once d has elapsed.
func (s *Scheduler) After(d time.Duration, fn func()) Timer {
	s.nextID++
	s.tasks = append(s.tasks, task{id: s.nextID, due: s.clock.Now().Add(d), fn: fn})
	return Timer{id: s.nextID, sched: s}
}

// Pending returns the number of tasks that have not fired.
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}

// Run fires every task whose due time has passed, earliest first. Tasks with
// equal due times fire in scheduling order. Tasks scheduled by a callback are
// not considered until the next Run.
func (s *Scheduler) Run() {
	if len(s.tasks) == 0 {
		return
	}
	now := s.clock.Now()
	s.due = s.due[:0]
	keep := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.due.After(now) {
			s.due = append(s.due, t)
		} else {
			keep = append(keep, t)
		}
	}
	for i := len(keep); i < len(s.tasks); i++ {
		s.tasks[i] = task{}
	}
	s.tasks = keep
	if len(s.due) == 0 {
		return
	}
	sort.SliceStable(s.due, func(i, j int) bool {
		return s.due[i].due.Before(s.due[j].due)
	})
	for _, t := range s.due {
		t.fn()
	}
}

func (s *Scheduler) cancel(id uint64) bool {
	for i := range s.tasks {
		if s.tasks[i].id == id {
			copy(s.tasks[i:], s.tasks[i+1:])
			s.tasks[len(s.tasks)-1] = task{}
			s.tasks = s.tasks[:len(s.tasks)-1]
			return true
		}
	}
	return false
}
