package anim

import (
	"github.com/gogpu/pixart"
)

// Player cycles a document's frames over a Scheduler.
//
// While playing, each tick loads the next frame (wrapping around) into the
// live layer stack and schedules the following tick after that frame's
// duration. Player is not safe for concurrent use; with a Loop, call it only
// from the Run goroutine.
type Player struct {
	doc     *pixart.Document
	sched   Scheduler
	playing bool
	handle  Handle

	// Onion configures onion skinning during playback.
	Onion OnionSettings

	// OnFrame, if set, is called after every frame change with the index of
	// the frame now current.
	OnFrame func(index int)
}

// NewPlayer returns a stopped player.
func NewPlayer(doc *pixart.Document, sched Scheduler) *Player {
	return &Player{doc: doc, sched: sched, Onion: DefaultOnionSettings()}
}

// Playing reports whether playback is running.
func (p *Player) Playing() bool { return p.playing }

// Play starts playback from the current frame. Playing again is a no-op.
func (p *Player) Play() {
	if p.playing || p.doc.FrameCount() == 0 {
		return
	}
	p.playing = true
	pixart.Logger().Debug("playback started", "frame", p.doc.CurrentFrameIndex(), "frames", p.doc.FrameCount())
	p.schedule()
}

// Stop ends playback and reloads the frame that is current at the moment of
// stopping, so the display matches it. Stopping a stopped player does
// nothing.
func (p *Player) Stop() {
	if !p.playing {
		return
	}
	p.playing = false
	p.sched.Cancel(p.handle)
	p.handle = 0
	if err := p.doc.LoadFrame(p.doc.CurrentFrameIndex()); err == nil {
		p.notify()
	}
	pixart.Logger().Debug("playback stopped", "frame", p.doc.CurrentFrameIndex())
}

// Toggle starts a stopped player or stops a playing one.
func (p *Player) Toggle() {
	if p.playing {
		p.Stop()
	} else {
		p.Play()
	}
}

// Ghosts returns the onion-skin ghosts to draw under the current frame. It
// is empty unless playing with onion skinning enabled.
func (p *Player) Ghosts() []Ghost {
	if !p.playing || !p.Onion.Enabled {
		return nil
	}
	return OnionSkin(p.doc, p.Onion.Frames, p.Onion.Opacity)
}

func (p *Player) schedule() {
	f := p.doc.CurrentFrame()
	if f == nil {
		p.halt()
		return
	}
	p.handle = p.sched.ScheduleAfter(f.Duration, p.tick)
}

// tick advances one frame. Frames may have been deleted since the tick was
// scheduled, so it re-checks before touching them.
func (p *Player) tick() {
	if !p.playing {
		return
	}
	n := p.doc.FrameCount()
	if n == 0 {
		p.halt()
		return
	}
	next := (p.doc.CurrentFrameIndex() + 1) % n
	if err := p.doc.LoadFrame(next); err != nil {
		p.halt()
		return
	}
	p.notify()
	p.schedule()
}

// halt stops without reloading, for when there is nothing left to show.
func (p *Player) halt() {
	p.playing = false
	p.handle = 0
	pixart.Logger().Warn("playback stopped: no frame to show")
}

func (p *Player) notify() {
	if p.OnFrame != nil {
		p.OnFrame(p.doc.CurrentFrameIndex())
	}
}
