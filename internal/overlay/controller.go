package overlay

import (
	"log"

	"github.com/1broseidon/tatami/internal/grid"
	"github.com/1broseidon/tatami/internal/keys"
	"github.com/1broseidon/tatami/internal/paint"
	"github.com/1broseidon/tatami/internal/selector"
	"github.com/BurntSushi/xgb/xproto"
)

// Handler receives the events a host window dispatches.
type Handler interface {
	OnPointerDown(ev selector.PointerEvent)
	OnPointerMove(x, y int)
	OnPointerUp(ev selector.PointerEvent)
	OnPaint(c selector.Canvas)
	OnKeyUp(code xproto.Keycode, state uint16)
	OnFocusIn()
	OnFocusOut()
	OnDestroy()
}

// Options configures a Controller.
type Options struct {
	Grid         grid.Grid
	Palette      paint.Palette
	ScreenWidth  int
	ScreenHeight int
	Keymap       Keymap
	// IgnoredMods are modifier bits (CapsLock, NumLock) that do not disable
	// shortcuts.
	IgnoredMods uint16
	Host        selector.Host
	Committer   selector.Committer
	Debug       bool
}

// Controller owns the overlay lifecycle: it forwards pointer and paint events
// to the grid selector, handles shortcut keys, and closes the host on commit,
// cancel, focus loss or destruction. The committer runs at most once.
type Controller struct {
	selector    *selector.Selector
	host        selector.Host
	committer   selector.Committer
	keymap      Keymap
	ignoredMods uint16
	screen      grid.Rect
	debug       bool

	focused   bool
	committed bool
	closed    bool
}

var _ Handler = (*Controller)(nil)

// NewController wires a selector to opts.Host.
func NewController(opts Options) *Controller {
	c := &Controller{
		host:        opts.Host,
		committer:   opts.Committer,
		keymap:      opts.Keymap,
		ignoredMods: opts.IgnoredMods,
		screen:      grid.Rect{X: 0, Y: 0, Width: opts.ScreenWidth, Height: opts.ScreenHeight},
		debug:       opts.Debug,
	}
	c.selector = selector.New(opts.Grid, opts.Palette, opts.ScreenWidth, opts.ScreenHeight, (*selectorHost)(c), (*selectorCommitter)(c))
	c.selector.Debug = opts.Debug
	return c
}

// Geometry returns the overlay bounds: a quarter of the screen in each
// dimension, centred.
func Geometry(screenWidth, screenHeight int) grid.Rect {
	width := screenWidth / 4
	height := screenHeight / 4
	return grid.Rect{
		X:      (screenWidth - width) / 2,
		Y:      (screenHeight - height) / 2,
		Width:  width,
		Height: height,
	}
}

// Closed reports whether the overlay has been closed.
func (c *Controller) Closed() bool {
	return c.closed
}

// Committed reports whether a target rectangle was delivered.
func (c *Controller) Committed() bool {
	return c.committed
}

// Selector returns the grid selector driven by this controller.
func (c *Controller) Selector() *selector.Selector {
	return c.selector
}

func (c *Controller) OnPointerDown(ev selector.PointerEvent) {
	if c.closed {
		return
	}
	c.selector.OnPointerDown(ev)
}

func (c *Controller) OnPointerMove(x, y int) {
	if c.closed {
		return
	}
	c.selector.OnPointerMove(x, y)
}

func (c *Controller) OnPointerUp(ev selector.PointerEvent) {
	if c.closed {
		return
	}
	c.selector.OnPointerUp(ev)
}

func (c *Controller) OnPaint(canvas selector.Canvas) {
	if c.closed {
		return
	}
	c.selector.OnPaint(canvas)
}

// OnKeyUp handles shortcut keys. Any held modifier disables shortcuts.
func (c *Controller) OnKeyUp(code xproto.Keycode, state uint16) {
	if c.closed {
		return
	}
	if keys.Modified(state, c.ignoredMods) {
		c.debugf("Overlay: ignoring keycode %d with modifiers %#x", code, state)
		return
	}

	binding := c.keymap.Lookup(code)
	switch binding.Action {
	case ActionCancel:
		log.Println("Overlay: cancelled")
		c.Close()
	case ActionPreset:
		rect := grid.ApplyRegion(c.screen, binding.Region)
		log.Printf("Overlay: preset %q (%s) -> %d,%d %dx%d",
			binding.Key, binding.Region.Type, rect.X, rect.Y, rect.Width, rect.Height)
		c.commit(rect)
		c.Close()
	default:
		log.Printf("Overlay: unhandled keycode %d", code)
	}
}

func (c *Controller) OnFocusIn() {
	c.focused = true
}

// OnFocusOut closes the overlay once it has held focus.
func (c *Controller) OnFocusOut() {
	if c.closed || !c.focused {
		return
	}
	log.Println("Overlay: lost focus")
	c.Close()
}

func (c *Controller) OnDestroy() {
	if c.closed {
		return
	}
	log.Println("Overlay: window destroyed")
	c.Close()
}

// Close closes the host once.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.host.Close()
}

func (c *Controller) commit(r grid.Rect) {
	if c.committed {
		return
	}
	c.committed = true
	c.committer.Commit(r)
}

// selectorHost routes the selector's Close through the controller.
type selectorHost Controller

func (h *selectorHost) Size() (int, int) { return h.host.Size() }
func (h *selectorHost) QueueDraw()        { h.host.QueueDraw() }
func (h *selectorHost) Close()            { (*Controller)(h).Close() }

// selectorCommitter enforces the single commit.
type selectorCommitter Controller

func (sc *selectorCommitter) Commit(r grid.Rect) { (*Controller)(sc).commit(r) }

func (c *Controller) debugf(format string, args ...any) {
	if c.debug {
		log.Printf(format, args...)
	}
}
