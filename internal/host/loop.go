package host

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Loop calls a frame function at a fixed rate until stopped.
type Loop struct {
	frame    func() bool
	interval time.Duration

	stop    chan struct{}
	done    chan struct{}
	once    sync.Once
	started atomic.Bool
}

// NewLoop returns a loop running frame tickRate times per second. A tick
// rate of zero or less runs frames back to back. The loop ends when frame
// returns false.
func NewLoop(tickRate int, frame func() bool) *Loop {
	l := &Loop{
		frame: frame,
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	if tickRate > 0 {
		l.interval = time.Second / time.Duration(tickRate)
	}
	return l
}

// Run drives frames until ctx is done, Stop is called or frame returns
// false. It blocks and may only be called once.
func (l *Loop) Run(ctx context.Context) error {
	l.started.Store(true)
	defer close(l.done)

	var tick <-chan time.Time
	if l.interval > 0 {
		ticker := time.NewTicker(l.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.stop:
			return nil
		default:
		}

		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-l.stop:
				return nil
			case <-tick:
			}
		}

		if !l.frame() {
			return nil
		}
	}
}

// Stop ends the loop and waits for the current frame to finish. No frame
// runs after Stop returns. It is safe to call more than once but must not
// be called from inside frame.
func (l *Loop) Stop() {
	l.once.Do(func() { close(l.stop) })
	if l.started.Load() {
		<-l.done
	}
}
