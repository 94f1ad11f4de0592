// Package motion derives visuals from values. The style mappings are pure
// functions of state; the spring types advance animations one frame at a
// time and hold no references to the controls that start them.
package motion

import "math"

// ItemStyle is the render-style record for one wheel item.
type ItemStyle struct {
	Scale   float64
	Opacity float64
	RotateX float64 // degrees; positive tilts away above the centre line
}

// VisibleSlots is how many neighbours on each side of the centred item
// receive distinct styling. Beyond it values are clamped.
const VisibleSlots = 2

var (
	wheelScale   = [2*VisibleSlots + 1]float64{0.7, 0.85, 1, 0.85, 0.7}
	wheelOpacity = [2*VisibleSlots + 1]float64{0.3, 0.6, 1, 0.6, 0.3}
	wheelRotate  = [2*VisibleSlots + 1]float64{45, 25, 0, -25, -45}
)

// Proximity returns the signed distance, in items, between the item at
// index and the centre of the viewport at offset.
func Proximity(offset float64, index int, extent float64) float64 {
	if extent <= 0 {
		return 0
	}
	return (float64(index)*extent - offset) / extent
}

// WheelItemStyle maps a scroll offset to the style of the item at index.
// The centred item peaks at scale 1 and full opacity; neighbours fall off
// symmetrically and anything two or more slots away is clamped.
func WheelItemStyle(offset float64, index int, extent float64) ItemStyle {
	d := Proximity(offset, index, extent)
	return ItemStyle{
		Scale:   interpolate(d, wheelScale),
		Opacity: interpolate(d, wheelOpacity),
		RotateX: interpolate(d, wheelRotate),
	}
}

// interpolate is piecewise-linear over keyframes at d = -2..2 with clamped
// extrapolation.
func interpolate(d float64, keys [2*VisibleSlots + 1]float64) float64 {
	x := math.Max(-VisibleSlots, math.Min(VisibleSlots, d)) + VisibleSlots
	lo := int(math.Floor(x))
	if lo >= len(keys)-1 {
		return keys[len(keys)-1]
	}
	frac := x - float64(lo)
	return keys[lo] + (keys[lo+1]-keys[lo])*frac
}

// SelectStyle is the render-style record for a selectable option.
type SelectStyle struct {
	Scale      float64
	Border     string // hex colour
	Background string // hex colour
}

// Palette is the pair of colours a selectable option blends between.
type Palette struct {
	Idle   string // unselected border
	Accent string // theme colour token
	Card   string // unselected background
}

// OptionStyle derives an option's style from its selection transition
// factor t in [0,1] and its current scale.
func OptionStyle(p Palette, t, scale float64) SelectStyle {
	t = math.Max(0, math.Min(1, t))
	return SelectStyle{
		Scale:      scale,
		Border:     BlendColor(p.Idle, p.Accent, t),
		Background: BlendColor(p.Card, p.Accent, t*0.15),
	}
}

// TrackFill returns how many of width cells a slider at progress fills.
// Progress outside [0,1] is clamped.
func TrackFill(progress float64, width int) int {
	if width <= 0 {
		return 0
	}
	progress = math.Max(0, math.Min(1, progress))
	return int(math.Round(progress * float64(width)))
}
