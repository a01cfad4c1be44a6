// Package schedule provides cancellable one-shot tasks and a clock.
//
// Real runs tasks on the runtime timer. Manual keeps a virtual clock that only
// moves when Advance is called, which lets timer-driven behaviour be tested
// step by step.
package schedule

import (
	"sort"
	"sync"
	"time"
)

// Task is a scheduled callback
type Task interface {
	// Cancel stops the task. It reports false if the task already ran or was cancelled.
	Cancel() bool
}

// Scheduler runs callbacks after a delay and tells the time
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Task
	Now() time.Time
}

// Real schedules on the runtime timer. Callbacks run on their own goroutine.
type Real struct{}

// AfterFunc runs f on its own goroutine after d
func (Real) AfterFunc(d time.Duration, f func()) Task {
	return realTask{timer: time.AfterFunc(d, f)}
}

// Now returns the wall clock time
func (Real) Now() time.Time {
	return time.Now()
}

type realTask struct {
	timer *time.Timer
}

func (t realTask) Cancel() bool {
	return t.timer.Stop()
}

// Manual is a virtual-time scheduler. Callbacks run synchronously inside Advance.
type Manual struct {
	mu    sync.Mutex
	now   time.Time
	seq   int
	tasks []*manualTask
}

type manualTask struct {
	m   *Manual
	at  time.Time
	seq int
	fn  func()
}

// NewManual returns a manual scheduler whose clock starts at start
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the virtual time
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// AfterFunc schedules f to run once the virtual clock reaches now+d
func (m *Manual) AfterFunc(d time.Duration, f func()) Task {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	t := &manualTask{m: m, at: m.now.Add(d), seq: m.seq, fn: f}
	m.tasks = append(m.tasks, t)
	return t
}

// Advance moves the clock forward by d, running every task that falls due in
// deadline order. Tasks scheduled by callbacks run too if they fall inside the window.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		m.mu.Lock()
		next := m.popDue(target)
		if next == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		m.now = next.at
		m.mu.Unlock()

		next.fn()
	}
}

// Pending returns the number of tasks waiting to run
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

func (m *Manual) popDue(target time.Time) *manualTask {
	if len(m.tasks) == 0 {
		return nil
	}

	sort.SliceStable(m.tasks, func(i, j int) bool {
		if m.tasks[i].at.Equal(m.tasks[j].at) {
			return m.tasks[i].seq < m.tasks[j].seq
		}
		return m.tasks[i].at.Before(m.tasks[j].at)
	})

	first := m.tasks[0]
	if first.at.After(target) {
		return nil
	}
	m.tasks = m.tasks[1:]
	return first
}

func (t *manualTask) Cancel() bool {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()

	for i, pending := range t.m.tasks {
		if pending == t {
			t.m.tasks = append(t.m.tasks[:i], t.m.tasks[i+1:]...)
			return true
		}
	}
	return false
}
