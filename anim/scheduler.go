// Package anim plays a document's frames and computes onion-skin ghosts.
//
// Playback is a self-rescheduling callback rather than a goroutine: the
// [Player] asks a [Scheduler] to run its tick after the current frame's
// duration, and each tick reschedules the next. Tests drive playback with a
// [ManualScheduler]; programs use a [Loop], which runs callbacks serially on
// the goroutine calling [Loop.Run].
package anim

import "time"

// Handle identifies a scheduled callback. The zero Handle is never issued.
type Handle uint64

// Scheduler runs callbacks after a delay. Implementations must run callbacks
// one at a time and never after Cancel returned for their handle.
type Scheduler interface {
	ScheduleAfter(d time.Duration, fn func()) Handle
	Cancel(h Handle)
}

// ManualScheduler is a deterministic Scheduler driven by Advance. It is not
// safe for concurrent use.
type ManualScheduler struct {
	now     time.Duration
	next    Handle
	pending []pending
}

type pending struct {
	h   Handle
	due time.Duration
	fn  func()
}

// NewManualScheduler returns a scheduler at time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Now returns the scheduler's virtual time.
func (s *ManualScheduler) Now() time.Duration { return s.now }

// Pending returns the number of callbacks waiting to run.
func (s *ManualScheduler) Pending() int { return len(s.pending) }

// ScheduleAfter registers fn to run once virtual time has advanced by d.
func (s *ManualScheduler) ScheduleAfter(d time.Duration, fn func()) Handle {
	s.next++
	s.pending = append(s.pending, pending{h: s.next, due: s.now + max(d, 0), fn: fn})
	return s.next
}

// Cancel removes a pending callback. Unknown handles are ignored.
func (s *ManualScheduler) Cancel(h Handle) {
	for i, p := range s.pending {
		if p.h == h {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
}

// Advance moves virtual time forward by d, running every callback that
// becomes due in order of due time, including callbacks scheduled by the
// callbacks themselves. It returns the number of callbacks run.
func (s *ManualScheduler) Advance(d time.Duration) int {
	end := s.now + d
	ran := 0
	for {
		i := s.earliest()
		if i < 0 || s.pending[i].due > end {
			break
		}
		p := s.pending[i]
		s.pending = append(s.pending[:i], s.pending[i+1:]...)
		s.now = p.due
		p.fn()
		ran++
	}
	s.now = end
	return ran
}

// earliest returns the index of the next callback to run, or -1. Ties run in
// scheduling order.
func (s *ManualScheduler) earliest() int {
	if len(s.pending) == 0 {
		return -1
	}
	best := 0
	for i, p := range s.pending[1:] {
		if p.due < s.pending[best].due {
			best = i + 1
		}
	}
	return best
}
