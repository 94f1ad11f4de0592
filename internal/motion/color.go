package motion

import (
	"github.com/lucasb-eyer/go-colorful"
)

// BlendColor blends two hex colours in Lab space. t=0 yields from, t=1
// yields to. An unparsable input is returned unchanged on the side it
// would dominate.
func BlendColor(from, to string, t float64) string {
	a, errA := colorful.Hex(from)
	b, errB := colorful.Hex(to)
	switch {
	case errA != nil && errB != nil:
		return from
	case errA != nil:
		return to
	case errB != nil:
		return from
	}
	if t <= 0 {
		return a.Hex()
	}
	if t >= 1 {
		return b.Hex()
	}
	return a.BlendLab(b, t).Clamped().Hex()
}

// Fade blends fg toward bg by (1 - opacity), the terminal stand-in for
// alpha.
func Fade(fg, bg string, opacity float64) string {
	return BlendColor(bg, fg, opacity)
}
