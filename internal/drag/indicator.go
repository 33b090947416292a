package drag

import "github.com/mattn/go-runewidth"

// Indicator offset from the pointer, so the label does not cover the
// cell being pointed at.
const (
	offsetX = 2
	offsetY = 1
	// border plus one cell of padding each side
	chromeW = 4
	chromeH = 2
)

// placeIndicator sizes the label box and positions it next to the pointer,
// clamped so the whole box stays inside bounds.
func placeIndicator(label string, at Point, bounds Rect) Indicator {
	maxText := bounds.W - chromeW
	if bounds.W > 0 && maxText > 0 && runewidth.StringWidth(label) > maxText {
		label = runewidth.Truncate(label, maxText, "…")
	}
	ind := Indicator{
		Label: label,
		W:     runewidth.StringWidth(label) + chromeW,
		H:     1 + chromeH,
	}
	ind.X = clamp(at.X+offsetX, bounds.X, bounds.X+bounds.W-ind.W)
	ind.Y = clamp(at.Y+offsetY, bounds.Y, bounds.Y+bounds.H-ind.H)
	return ind
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}
