package session

import (
	"sync"
	"time"
)

// Runner drives a session's countdown on a real one-second cadence. It owns
// the only goroutine touching the ticker and guarantees the ticker is stopped
// once the session ends, however it ends.
type Runner struct {
	session      *Session
	onAutoSubmit func(Result)

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewRunner wires a runner to a session. onAutoSubmit fires at most once,
// from the runner goroutine, when the countdown reaches zero before a manual
// submit.
func NewRunner(s *Session, onAutoSubmit func(Result)) *Runner {
	return &Runner{
		session:      s,
		onAutoSubmit: onAutoSubmit,
		stop:         make(chan struct{}),
		done:         make(chan struct{}),
	}
}

func (r *Runner) Start() {
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		defer close(r.done)

		for {
			select {
			case <-r.stop:
				return
			case <-ticker.C:
				result, autoSubmitted := r.session.Tick()
				if autoSubmitted {
					if r.onAutoSubmit != nil {
						r.onAutoSubmit(result)
					}
					return
				}
				if r.session.Submitted() {
					return
				}
			}
		}
	}()
}

// Stop halts the countdown and waits for the runner goroutine to exit. Safe
// to call after the runner already finished on its own.
func (r *Runner) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
	<-r.done
}
