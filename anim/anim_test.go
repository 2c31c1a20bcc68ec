package anim

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gogpu/pixart"
)

func TestManualScheduler(t *testing.T) {
	s := NewManualScheduler()
	var got []string
	s.ScheduleAfter(30*time.Millisecond, func() { got = append(got, "c") })
	s.ScheduleAfter(10*time.Millisecond, func() {
		got = append(got, "a")
		s.ScheduleAfter(5*time.Millisecond, func() { got = append(got, "b") })
	})
	h := s.ScheduleAfter(20*time.Millisecond, func() { got = append(got, "cancelled") })
	s.Cancel(h)

	if n := s.Advance(15 * time.Millisecond); n != 2 {
		t.Errorf("Advance(15ms) ran %d, want 2", n)
	}
	if n := s.Advance(14 * time.Millisecond); n != 0 {
		t.Errorf("Advance(14ms) ran %d, want 0", n)
	}
	s.Advance(time.Millisecond)
	if want := []string{"a", "b", "c"}; len(got) != 3 || got[0] != want[0] || got[1] != want[1] || got[2] != want[2] {
		t.Errorf("order = %v, want %v", got, want)
	}
	if s.Pending() != 0 || s.Now() != 30*time.Millisecond {
		t.Errorf("Pending() = %d, Now() = %v", s.Pending(), s.Now())
	}
}

func newAnimatedDoc(t *testing.T, frames int) *pixart.Document {
	t.Helper()
	doc := pixart.NewDocument(frames, 1)
	doc.Frame(0).Layers[0].Pixels.SetPixel(0, 0, pixart.Red)
	for i := 1; i < frames; i++ {
		f := doc.AddFrame(false)
		f.Layers[0].Pixels.SetPixel(i, 0, pixart.Red)
	}
	if err := doc.LoadFrame(0); err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestPlayerAdvancesAndWraps(t *testing.T) {
	doc := newAnimatedDoc(t, 3)
	if err := doc.SetFrameDuration(1, 300*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	s := NewManualScheduler()
	p := NewPlayer(doc, s)
	var shown []int
	p.OnFrame = func(i int) { shown = append(shown, i) }

	p.Play()
	p.Play() // no-op
	if !p.Playing() || s.Pending() != 1 {
		t.Fatalf("Playing() = %v, pending = %d", p.Playing(), s.Pending())
	}

	s.Advance(100 * time.Millisecond) // frame 0 done -> 1
	if doc.CurrentFrameIndex() != 1 {
		t.Fatalf("current = %d, want 1", doc.CurrentFrameIndex())
	}
	if doc.ActiveLayer().Pixels.GetPixel(1, 0) != pixart.Red {
		t.Error("frame 1 not loaded into the live stack")
	}
	s.Advance(299 * time.Millisecond) // frame 1 lasts 300ms
	if doc.CurrentFrameIndex() != 1 {
		t.Errorf("advanced early to %d", doc.CurrentFrameIndex())
	}
	s.Advance(time.Millisecond)
	s.Advance(100 * time.Millisecond)
	if doc.CurrentFrameIndex() != 0 {
		t.Errorf("current = %d, want wrap to 0", doc.CurrentFrameIndex())
	}
	if len(shown) != 3 || shown[0] != 1 || shown[1] != 2 || shown[2] != 0 {
		t.Errorf("OnFrame calls = %v, want [1 2 0]", shown)
	}
}

func TestPlayerStop(t *testing.T) {
	doc := newAnimatedDoc(t, 3)
	s := NewManualScheduler()
	p := NewPlayer(doc, s)

	p.Play()
	s.Advance(100 * time.Millisecond)
	// Draw on the live stack; stopping reloads frame 1 and drops it.
	doc.ActiveLayer().Pixels.SetPixel(2, 0, pixart.Blue)
	p.Stop()
	if p.Playing() || s.Pending() != 0 {
		t.Fatalf("still playing after Stop: pending = %d", s.Pending())
	}
	if doc.CurrentFrameIndex() != 1 {
		t.Errorf("current = %d, want 1", doc.CurrentFrameIndex())
	}
	if got := doc.ActiveLayer().Pixels.GetPixel(2, 0); got != pixart.Transparent {
		t.Errorf("(2,0) = %v, want frame 1 content", got)
	}

	p.Stop() // idempotent
	s.Advance(time.Second)
	if doc.CurrentFrameIndex() != 1 {
		t.Errorf("playback continued after Stop")
	}

	p.Toggle()
	if !p.Playing() {
		t.Error("Toggle did not start playback")
	}
	p.Toggle()
	if p.Playing() {
		t.Error("Toggle did not stop playback")
	}
}

func TestPlayerSurvivesFrameDeletion(t *testing.T) {
	doc := newAnimatedDoc(t, 3)
	s := NewManualScheduler()
	p := NewPlayer(doc, s)
	p.Play()
	s.Advance(100 * time.Millisecond)
	s.Advance(100 * time.Millisecond) // now at frame 2

	// Delete frames under the running player.
	if err := doc.DeleteFrame(2); err != nil {
		t.Fatal(err)
	}
	if err := doc.DeleteFrame(1); err != nil {
		t.Fatal(err)
	}
	s.Advance(time.Second)
	if !p.Playing() {
		t.Fatal("player stopped with one frame left")
	}
	if doc.CurrentFrameIndex() != 0 {
		t.Errorf("current = %d, want 0", doc.CurrentFrameIndex())
	}
}

func TestOnionSkin(t *testing.T) {
	doc := newAnimatedDoc(t, 5)
	if err := doc.LoadFrame(0); err != nil {
		t.Fatal(err)
	}
	before := make([]*pixart.Pixmap, 0)
	for _, f := range doc.Frames() {
		before = append(before, f.Layers[0].Pixels.Clone())
	}

	ghosts := OnionSkin(doc, 2, 0.6)
	want := []struct {
		index, distance int
		alpha           float64
	}{
		{4, 1, 0.6}, {1, 1, 0.6}, {3, 2, 0.3}, {2, 2, 0.3},
	}
	if len(ghosts) != len(want) {
		t.Fatalf("got %d ghosts, want %d", len(ghosts), len(want))
	}
	for i, w := range want {
		g := ghosts[i]
		if g.Index != w.index || g.Distance != w.distance || g.Alpha != w.alpha {
			t.Errorf("ghost %d = {%d %d %v}, want %+v", i, g.Index, g.Distance, g.Alpha, w)
		}
	}

	for i, f := range doc.Frames() {
		if !f.Layers[0].Pixels.Equal(before[i]) {
			t.Errorf("frame %d mutated", i)
		}
	}
}

func TestOnionSkinEdgeCases(t *testing.T) {
	doc := newAnimatedDoc(t, 2)
	if g := OnionSkin(doc, 3, 0.5); len(g) != 1 || g[0].Index != 1 {
		t.Errorf("two frames: %+v, want one ghost of frame 1", g)
	}
	if g := OnionSkin(pixart.NewDocument(1, 1), 1, 0.5); g != nil {
		t.Errorf("single frame: %v, want none", g)
	}
	if g := OnionSkin(doc, 0, 0.5); g != nil {
		t.Errorf("zero frames requested: %v, want none", g)
	}
}

func TestPlayerGhostsOnlyWhilePlaying(t *testing.T) {
	doc := newAnimatedDoc(t, 3)
	p := NewPlayer(doc, NewManualScheduler())
	p.Onion.Enabled = true
	if p.Ghosts() != nil {
		t.Error("ghosts while stopped")
	}
	p.Play()
	if len(p.Ghosts()) != 2 {
		t.Errorf("got %d ghosts while playing, want 2", len(p.Ghosts()))
	}
	p.Onion.Enabled = false
	if p.Ghosts() != nil {
		t.Error("ghosts with onion skin disabled")
	}
}

func TestLoop(t *testing.T) {
	l := NewLoop()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var order []int
	finished := make(chan struct{})
	l.ScheduleAfter(20*time.Millisecond, func() {
		order = append(order, 2)
		close(finished)
	})
	l.ScheduleAfter(time.Millisecond, func() { order = append(order, 1) })
	h := l.ScheduleAfter(5*time.Millisecond, func() { order = append(order, -1) })
	l.Cancel(h)

	errc := make(chan error, 1)
	go func() { errc <- l.Run(ctx) }()

	select {
	case <-finished:
	case <-ctx.Done():
		t.Fatal("callbacks did not run")
	}
	l.Post(cancel)
	if err := <-errc; !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("order = %v, want [1 2]", order)
	}
}

func TestPlayerOnLoop(t *testing.T) {
	doc := newAnimatedDoc(t, 3)
	for i := range doc.FrameCount() {
		if err := doc.SetFrameDuration(i, time.Millisecond); err != nil {
			t.Fatal(err)
		}
	}
	l := NewLoop()
	p := NewPlayer(doc, l)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	frames := 0
	p.OnFrame = func(int) {
		frames++
		if frames == 6 {
			p.Stop()
			cancel()
		}
	}
	l.Post(p.Play)
	_ = l.Run(ctx)
	if frames < 6 {
		t.Fatalf("saw %d frame changes, want at least 6", frames)
	}
	if p.Playing() {
		t.Error("still playing")
	}
}
