// Package blend implements the source-over compositing operator on straight
// (non-premultiplied) RGBA byte spans.
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

// SourceOver blends src onto dst in place. Both slices hold straight-alpha
// RGBA pixels and must have the same length. opacity scales the source alpha
// and is expected in [0, 1].
//
// With sa = srcA/255*opacity and da = dstA/255:
//
//	outA = sa + da*(1-sa)
//	outC = (srcC*sa + dstC*da*(1-sa)) / outA
//
// For an opaque destination this is exactly dst*(1-sa) + src*sa.
func SourceOver(dst, src []byte, opacity float64) {
	if opacity <= 0 {
		return
	}
	if opacity > 1 {
		opacity = 1
	}
	n := min(len(dst), len(src))
	for i := 0; i+3 < n; i += 4 {
		sa := float64(src[i+3]) / 255 * opacity
		if sa == 0 {
			continue
		}
		if sa >= 1 {
			copy(dst[i:i+4], src[i:i+4])
			continue
		}
		over(dst[i:i+4:i+4], src[i:i+4:i+4], sa)
	}
}

// over blends one pixel. sa is the effective source alpha in (0, 1).
func over(dst, src []byte, sa float64) {
	da := float64(dst[3]) / 255
	keep := da * (1 - sa)
	outA := sa + keep
	if outA <= 0 {
		dst[0], dst[1], dst[2], dst[3] = 0, 0, 0, 0
		return
	}
	for c := 0; c < 3; c++ {
		v := (float64(src[c])*sa + float64(dst[c])*keep) / outA
		dst[c] = round255(v)
	}
	dst[3] = round255(outA * 255)
}

// round255 rounds to the nearest byte, clamping to [0, 255].
func round255(v float64) byte {
	v += 0.5
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return byte(v)
}
