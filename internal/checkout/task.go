package checkout

import (
	"sync"
	"time"
)

type taskState int

const (
	taskPending taskState = iota
	taskRunning
	taskDone
	taskCancelled
)

// Task is a deferred unit of work with a single completion callback. The
// callback runs at most once, after the delay, and never after Cancel
// succeeded.
type Task struct {
	mu    sync.Mutex
	state taskState
	timer *time.Timer
	done  chan struct{}
}

// Defer schedules fn to run once after delay.
func Defer(delay time.Duration, fn func()) *Task {
	t := &Task{done: make(chan struct{})}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.timer = time.AfterFunc(delay, func() {
		t.mu.Lock()
		if t.state != taskPending {
			t.mu.Unlock()
			return
		}
		t.state = taskRunning
		t.mu.Unlock()

		defer func() {
			t.mu.Lock()
			t.state = taskDone
			t.mu.Unlock()
			close(t.done)
		}()
		fn()
	})
	return t
}

// Cancel prevents the callback from running. It reports false when the
// callback already started or the task was cancelled before.
func (t *Task) Cancel() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != taskPending {
		return false
	}
	t.state = taskCancelled
	t.timer.Stop()
	close(t.done)
	return true
}

// Done is closed once the callback returned or the task was cancelled.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Cancelled reports whether the task was cancelled before running.
func (t *Task) Cancelled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state == taskCancelled
}
