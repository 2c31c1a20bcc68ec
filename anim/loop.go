package anim

import (
	"context"
	"sync"
	"time"
)

// Loop is a Scheduler backed by real timers. Timers fire on runtime
// goroutines but only enqueue; callbacks run one at a time on the goroutine
// calling Run. Cancel may be called from any goroutine, including from a
// callback, and guarantees the cancelled callback does not run.
type Loop struct {
	mu     sync.Mutex
	next   Handle
	timers map[Handle]*loopTimer
	queue  chan Handle
	posted chan func()
	done   chan struct{}
}

type loopTimer struct {
	t  *time.Timer
	fn func()
}

// NewLoop returns a loop that is ready to accept callbacks. Nothing runs
// until Run is called.
func NewLoop() *Loop {
	return &Loop{
		timers: make(map[Handle]*loopTimer),
		queue:  make(chan Handle, 16),
		posted: make(chan func(), 16),
		done:   make(chan struct{}),
	}
}

// ScheduleAfter runs fn on the Run goroutine once d has elapsed.
func (l *Loop) ScheduleAfter(d time.Duration, fn func()) Handle {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.next++
	h := l.next
	lt := &loopTimer{fn: fn}
	lt.t = time.AfterFunc(max(d, 0), func() {
		select {
		case l.queue <- h:
		case <-l.done:
		}
	})
	l.timers[h] = lt
	return h
}

// Cancel stops a scheduled callback. Unknown or finished handles are ignored.
func (l *Loop) Cancel(h Handle) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if lt, ok := l.timers[h]; ok {
		lt.t.Stop()
		delete(l.timers, h)
	}
}

// Post runs fn on the Run goroutine as soon as possible. It is the way for
// other goroutines to touch state owned by the loop.
func (l *Loop) Post(fn func()) {
	select {
	case l.posted <- fn:
	case <-l.done:
	}
}

// Run executes callbacks until ctx is done and returns ctx.Err(). Run must
// be called at most once.
func (l *Loop) Run(ctx context.Context) error {
	defer func() {
		close(l.done)
		l.mu.Lock()
		for h, lt := range l.timers {
			lt.t.Stop()
			delete(l.timers, h)
		}
		l.mu.Unlock()
	}()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.posted:
			fn()
		case h := <-l.queue:
			l.mu.Lock()
			lt, ok := l.timers[h]
			delete(l.timers, h)
			l.mu.Unlock()
			if ok {
				lt.fn()
			}
		}
	}
}
