package selector

import "github.com/1broseidon/tatami/internal/grid"

// Button is a pointer button number as reported by the window system.
type Button uint8

// PrimaryButton is the left mouse button.
const PrimaryButton Button = 1

// PointerEvent is a toolkit-neutral mouse event in surface coordinates.
type PointerEvent struct {
	X      int
	Y      int
	Button Button
	// Device identifies the input source of the event. A release only ends a
	// gesture when it comes from the same device as the press.
	Device uint32
}

// Gesture holds the drag state between pointer down and pointer up.
type Gesture struct {
	anchor   PointerEvent
	active   bool
	currentX int
	currentY int
	moved    bool // current point is only meaningful once set
}

// Begin starts a gesture anchored at the press event.
func (g *Gesture) Begin(press PointerEvent) {
	g.anchor = press
	g.active = true
	g.moved = false
	g.currentX = 0
	g.currentY = 0
}

// Update records the current pointer position. It is a no-op when no
// gesture is active.
func (g *Gesture) Update(x, y int) {
	if !g.active {
		return
	}
	g.currentX = x
	g.currentY = y
	g.moved = true
}

// Clear resets the gesture to inactive.
func (g *Gesture) Clear() {
	*g = Gesture{}
}

// Active reports whether a press has been recorded.
func (g *Gesture) Active() bool {
	return g.active
}

// Ends reports whether release terminates this gesture: same button and same
// device as the original press.
func (g *Gesture) Ends(release PointerEvent) bool {
	return g.active &&
		g.anchor.Button == release.Button &&
		g.anchor.Device == release.Device
}

// Drag returns the rectangle spanned by the anchor and current point. The
// second value is false until the pointer has moved.
func (g *Gesture) Drag() (grid.Rect, bool) {
	if !g.active || !g.moved {
		return grid.Rect{}, false
	}
	return grid.Span(g.anchor.X, g.anchor.Y, g.currentX, g.currentY), true
}
