package schedule

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func TestManual_RunsDueTasksInOrder(t *testing.T) {
	m := NewManual(epoch)
	var order []string

	m.AfterFunc(3*time.Second, func() { order = append(order, "c") })
	m.AfterFunc(1*time.Second, func() { order = append(order, "a") })
	m.AfterFunc(2*time.Second, func() { order = append(order, "b") })

	m.Advance(2 * time.Second)
	assert.Equal(t, []string{"a", "b"}, order)
	assert.Equal(t, 1, m.Pending())
	assert.Equal(t, epoch.Add(2*time.Second), m.Now())

	m.Advance(time.Second)
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Zero(t, m.Pending())
}

func TestManual_Cancel(t *testing.T) {
	m := NewManual(epoch)
	ran := false
	task := m.AfterFunc(time.Second, func() { ran = true })

	assert.True(t, task.Cancel())
	assert.False(t, task.Cancel())

	m.Advance(time.Hour)
	assert.False(t, ran)
}

func TestManual_CancelAfterRun(t *testing.T) {
	m := NewManual(epoch)
	task := m.AfterFunc(time.Second, func() {})
	m.Advance(time.Second)
	assert.False(t, task.Cancel())
}

func TestManual_CallbackReschedules(t *testing.T) {
	m := NewManual(epoch)
	ticks := 0

	var tick func()
	tick = func() {
		ticks++
		m.AfterFunc(5*time.Second, tick)
	}
	m.AfterFunc(5*time.Second, tick)

	m.Advance(16 * time.Second)
	assert.Equal(t, 3, ticks)
	assert.Equal(t, 1, m.Pending())
}

func TestManual_CallbackSeesTaskTime(t *testing.T) {
	m := NewManual(epoch)
	var seen time.Time
	m.AfterFunc(3*time.Second, func() { seen = m.Now() })

	m.Advance(10 * time.Second)
	assert.Equal(t, epoch.Add(3*time.Second), seen)
	assert.Equal(t, epoch.Add(10*time.Second), m.Now())
}

func TestReal_AfterFuncAndCancel(t *testing.T) {
	var s Scheduler = Real{}

	done := make(chan struct{})
	s.AfterFunc(time.Millisecond, func() { close(done) })
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task did not run")
	}

	var fired atomic.Bool
	task := s.AfterFunc(time.Hour, func() { fired.Store(true) })
	require.True(t, task.Cancel())
	assert.False(t, fired.Load())
	assert.WithinDuration(t, time.Now(), s.Now(), time.Second)
}
