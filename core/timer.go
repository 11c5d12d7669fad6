package core

import "time"

// Timer is the flush-deadline capability armed by the Batcher for each
// open batch. Concrete implementations may use runtime-specific
// primitives; realTimer below uses time.AfterFunc. Modeling the timer as
// an injected capability (rather than an ambient sleep) lets the Batcher
// guarantee exactly one armed timer per open batch, per spec §9.
type Timer interface {
	// Arm schedules callback to run once after d elapses. Arming an
	// already-armed Timer replaces the pending callback.
	Arm(d time.Duration, callback func())
	// Cancel prevents a pending callback from firing. It is a no-op if
	// no callback is pending or it already fired.
	Cancel()
}

type realTimer struct {
	t *time.Timer
}

// NewRealTimer returns a Timer backed by the standard library's
// time.AfterFunc.
func NewRealTimer() Timer {
	return &realTimer{}
}

func (r *realTimer) Arm(d time.Duration, callback func()) {
	r.Cancel()
	r.t = time.AfterFunc(d, callback)
}

func (r *realTimer) Cancel() {
	if r.t != nil {
		r.t.Stop()
		r.t = nil
	}
}
