package selector

import (
	"errors"
	"log"

	"github.com/1broseidon/tatami/internal/grid"
	"github.com/1broseidon/tatami/internal/paint"
)

// Host is the window hosting the selector.
type Host interface {
	// Size returns the current surface size in pixels.
	Size() (width, height int)
	// QueueDraw schedules a paint of the whole surface.
	QueueDraw()
	// Close tears down the host window and ends its event loop.
	Close()
}

// Canvas is a drawing surface valid for the duration of one paint event.
type Canvas interface {
	FillRect(r grid.Rect, c paint.Color)
}

// Committer receives the target rectangle in full-screen coordinates.
type Committer interface {
	Commit(r grid.Rect)
}

// CommitFunc adapts a function to the Committer interface.
type CommitFunc func(r grid.Rect)

func (f CommitFunc) Commit(r grid.Rect) { f(r) }

// Selector turns one click-drag-release gesture over the grid into a target
// rectangle. All methods must be called from the host's event loop.
type Selector struct {
	grid         grid.Grid
	palette      paint.Palette
	screenWidth  int
	screenHeight int
	host         Host
	committer    Committer

	gesture Gesture
	ready   bool // set by the first paint
	done    bool

	// Debug enables per-event logging.
	Debug bool
}

// New creates a selector mapping g onto a screen of the given size.
func New(g grid.Grid, palette paint.Palette, screenWidth, screenHeight int, host Host, committer Committer) *Selector {
	return &Selector{
		grid:         g,
		palette:      palette,
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
		host:         host,
		committer:    committer,
	}
}

// Ready reports whether the surface has been painted at least once.
func (s *Selector) Ready() bool {
	return s.ready
}

// Gesture exposes the current drag state.
func (s *Selector) Gesture() *Gesture {
	return &s.gesture
}

// OnPointerDown starts a gesture on the primary button. Presses before the
// first paint are ignored.
func (s *Selector) OnPointerDown(ev PointerEvent) {
	if s.done || !s.ready {
		s.debugf("Selector: ignoring press before first paint")
		return
	}
	if ev.Button != PrimaryButton {
		return
	}

	s.gesture.Begin(ev)
	s.debugf("Selector: drag started at %d,%d", ev.X, ev.Y)
	s.host.QueueDraw()
}

// OnPointerMove extends the active gesture.
func (s *Selector) OnPointerMove(x, y int) {
	if s.done || !s.gesture.Active() {
		return
	}

	s.gesture.Update(x, y)
	s.host.QueueDraw()
}

// OnPointerUp finishes the gesture if the release matches the press. An empty
// selection ends the gesture without committing.
func (s *Selector) OnPointerUp(ev PointerEvent) {
	if s.done {
		return
	}
	if !s.gesture.Ends(ev) {
		s.debugf("Selector: ignoring release of button %d from device %d", ev.Button, ev.Device)
		return
	}

	rect, err := s.resolve()
	s.gesture.Clear()
	s.host.QueueDraw()

	if err != nil {
		if errors.Is(err, grid.ErrEmptySelection) {
			s.debugf("Selector: released with no cells selected")
			return
		}
		log.Printf("Selector: failed to resolve selection: %v", err)
		return
	}

	log.Printf("Selector: selected %d,%d %dx%d", rect.X, rect.Y, rect.Width, rect.Height)
	s.done = true
	s.committer.Commit(rect)
	s.host.Close()
}

// OnPaint draws the backdrop and every cell, coloring cells covered by the
// current drag as selected.
func (s *Selector) OnPaint(c Canvas) {
	width, height := s.host.Size()
	s.ready = true

	c.FillRect(grid.Rect{X: 0, Y: 0, Width: width, Height: height}, s.palette.Backdrop)

	drag, dragging := s.gesture.Drag()
	for _, cell := range s.grid.Cells() {
		color := s.palette.Cell
		if dragging && s.grid.Selected(cell, drag, width, height) {
			color = s.palette.Selected
		}
		c.FillRect(s.grid.CellRect(cell, width, height), color)
	}
}

// Selection returns the cells currently covered by the drag.
func (s *Selector) Selection() []grid.Cell {
	drag, ok := s.gesture.Drag()
	if !ok {
		return nil
	}
	width, height := s.host.Size()
	return s.grid.Selection(drag, width, height)
}

func (s *Selector) resolve() (grid.Rect, error) {
	return s.grid.Resolve(s.Selection(), s.screenWidth, s.screenHeight)
}

func (s *Selector) debugf(format string, args ...any) {
	if s.Debug {
		log.Printf(format, args...)
	}
}
