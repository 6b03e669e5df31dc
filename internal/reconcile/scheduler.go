package reconcile

import (
	"slices"
	"time"
)

type task struct {
	due time.Time
	seq uint64
	run func(at time.Time)
}

// Scheduler is a cooperative queue of delayed mutations. Nothing runs on its
// own: the owner calls Advance with the current time (from its event loop) and
// due tasks run synchronously, in due order, on the caller's goroutine.
//
// The zero value is ready to use. A Scheduler is not safe for concurrent use.
type Scheduler struct {
	tasks []task
	seq   uint64
}

// After queues fn to run once d has elapsed since now.
func (s *Scheduler) After(now time.Time, d time.Duration, fn func(at time.Time)) {
	if fn == nil {
		return
	}
	if d < 0 {
		d = 0
	}
	s.seq++
	t := task{due: now.Add(d), seq: s.seq, run: fn}
	idx, _ := slices.BinarySearchFunc(s.tasks, t, compareTasks)
	s.tasks = slices.Insert(s.tasks, idx, t)
}

// Advance runs every task due at or before now, including tasks queued by
// tasks that ran during this call. It returns the number of tasks run.
func (s *Scheduler) Advance(now time.Time) int {
	ran := 0
	for len(s.tasks) > 0 && !s.tasks[0].due.After(now) {
		t := s.pop()
		t.run(t.due)
		ran++
	}
	return ran
}

// Flush runs every pending task immediately, each at its own due time, until
// the queue is empty.
func (s *Scheduler) Flush() int {
	ran := 0
	for len(s.tasks) > 0 {
		t := s.pop()
		t.run(t.due)
		ran++
	}
	return ran
}

// Next returns the due time of the earliest pending task.
func (s *Scheduler) Next() (time.Time, bool) {
	if len(s.tasks) == 0 {
		return time.Time{}, false
	}
	return s.tasks[0].due, true
}

// Len reports the number of pending tasks.
func (s *Scheduler) Len() int {
	return len(s.tasks)
}

// Clear drops every pending task without running it.
func (s *Scheduler) Clear() {
	s.tasks = nil
}

func (s *Scheduler) pop() task {
	t := s.tasks[0]
	s.tasks[0] = task{}
	s.tasks = s.tasks[1:]
	return t
}

func compareTasks(a, b task) int {
	if c := a.due.Compare(b.due); c != 0 {
		return c
	}
	switch {
	case a.seq < b.seq:
		return -1
	case a.seq > b.seq:
		return 1
	default:
		return 0
	}
}
