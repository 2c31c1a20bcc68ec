package anim

import "github.com/gogpu/pixart"

// OnionSettings controls onion skinning.
type OnionSettings struct {
	Enabled bool
	// Opacity is the ghost opacity at distance 1; at distance d it is
	// Opacity/d.
	Opacity float64
	// Frames is how many neighbors to show on each side.
	Frames int
}

// DefaultOnionSettings returns onion skinning disabled, one neighbor on each
// side at 30% opacity.
func DefaultOnionSettings() OnionSettings {
	return OnionSettings{Opacity: 0.3, Frames: 1}
}

// Ghost is a neighboring frame drawn semi-transparently.
//
// Layers are the frame's own snapshot layers and must be treated as read
// only. Renderers flatten them raw, without regard to each layer's
// visibility or opacity, and draw the result at Alpha.
type Ghost struct {
	Index    int
	Distance int
	Alpha    float64
	Layers   []*pixart.Layer
}

// OnionSkin returns the ghosts around the current frame, nearest first; at
// each distance the previous frame comes before the next one. Neighbors wrap
// around the timeline. The current frame is never a ghost and no frame
// appears twice. Nothing is mutated.
func OnionSkin(doc *pixart.Document, frames int, baseOpacity float64) []Ghost {
	n := doc.FrameCount()
	cur := doc.CurrentFrameIndex()
	if n < 2 || frames < 1 || baseOpacity <= 0 {
		return nil
	}

	seen := map[int]bool{cur: true}
	var ghosts []Ghost
	for d := 1; d <= frames; d++ {
		for _, i := range [2]int{(cur - d%n + n) % n, (cur + d) % n} {
			if seen[i] {
				continue
			}
			seen[i] = true
			ghosts = append(ghosts, Ghost{
				Index:    i,
				Distance: d,
				Alpha:    min(baseOpacity/float64(d), 1),
				Layers:   doc.Frame(i).Layers,
			})
		}
	}
	return ghosts
}
