package overlay

import (
	"fmt"
	"log"

	"github.com/1broseidon/tatami/internal/grid"
	"github.com/1broseidon/tatami/internal/paint"
	"github.com/1broseidon/tatami/internal/selector"
	"github.com/1broseidon/tatami/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/motif"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"
)

const windowTitle = "tatami"

const windowEventMask = xproto.EventMaskExposure |
	xproto.EventMaskButtonPress |
	xproto.EventMaskButtonRelease |
	xproto.EventMaskPointerMotion |
	xproto.EventMaskKeyPress |
	xproto.EventMaskKeyRelease |
	xproto.EventMaskFocusChange |
	xproto.EventMaskStructureNotify

// Window is the X11 host for the grid overlay. It implements selector.Host
// and selector.Canvas and forwards X events to a Handler.
type Window struct {
	conn    *x11.Connection
	xu      *xgbutil.XUtil
	id      xproto.Window
	gc      xproto.Gcontext
	bounds  grid.Rect
	argb    bool
	handler Handler

	drawPending bool
	focusAsked  bool
	closed      bool
}

var (
	_ selector.Host   = (*Window)(nil)
	_ selector.Canvas = (*Window)(nil)
)

// NewWindow creates (but does not map) an undecorated, always-on-top window
// at bounds. It uses a 32-bit ARGB visual when the server offers one so the
// background stays transparent; otherwise it falls back to the root visual
// and the translucent colors are composited over black.
func NewWindow(conn *x11.Connection, bounds grid.Rect) (*Window, error) {
	if bounds.Width < 1 || bounds.Height < 1 {
		return nil, fmt.Errorf("invalid overlay size %dx%d", bounds.Width, bounds.Height)
	}

	xu := conn.XUtil
	xc := xu.Conn()
	screen := xu.Screen()

	depth := screen.RootDepth
	visual := screen.RootVisual
	colormap := screen.DefaultColormap
	argb := false

	if v, d, ok := conn.ARGBVisual(); ok {
		cmap, err := xproto.NewColormapId(xc)
		if err != nil {
			return nil, fmt.Errorf("failed to allocate colormap id: %w", err)
		}
		if err := xproto.CreateColormapChecked(xc, xproto.ColormapAllocNone, cmap, conn.Root, v).Check(); err != nil {
			return nil, fmt.Errorf("failed to create ARGB colormap: %w", err)
		}
		depth, visual, colormap, argb = d, v, cmap, true
	} else {
		log.Println("Overlay: no 32-bit visual available; background will be opaque")
	}

	wid, err := xproto.NewWindowId(xc)
	if err != nil {
		return nil, err
	}

	err = xproto.CreateWindowChecked(
		xc,
		depth,
		wid,
		conn.Root,
		int16(bounds.X), int16(bounds.Y),
		uint16(bounds.Width), uint16(bounds.Height),
		0, // border_width
		xproto.WindowClassInputOutput,
		visual,
		xproto.CwBackPixel|xproto.CwBorderPixel|xproto.CwEventMask|xproto.CwColormap,
		// Value list order follows the bit positions of the mask (low -> high).
		[]uint32{
			0, // back_pixel: transparent on ARGB visuals
			0, // border_pixel: required when the depth differs from the parent
			uint32(windowEventMask),
			uint32(colormap),
		},
	).Check()
	if err != nil {
		return nil, fmt.Errorf("failed to create overlay window: %w", err)
	}

	gc, err := xproto.NewGcontextId(xc)
	if err != nil {
		xproto.DestroyWindow(xc, wid)
		return nil, err
	}
	err = xproto.CreateGCChecked(
		xc,
		gc,
		xproto.Drawable(wid),
		xproto.GcForeground|xproto.GcGraphicsExposures,
		[]uint32{
			0, // foreground
			0, // graphics_exposures=false
		},
	).Check()
	if err != nil {
		xproto.DestroyWindow(xc, wid)
		return nil, fmt.Errorf("failed to create overlay gc: %w", err)
	}

	w := &Window{
		conn:   conn,
		xu:     xu,
		id:     wid,
		gc:     gc,
		bounds: bounds,
		argb:   argb,
	}
	w.setProperties()
	return w, nil
}

// ID returns the X window id.
func (w *Window) ID() xproto.Window {
	return w.id
}

// Attach connects X event callbacks for this window to h.
func (w *Window) Attach(h Handler) {
	w.handler = h
	xu, wid := w.xu, w.id

	xevent.ExposeFun(func(xu *xgbutil.XUtil, ev xevent.ExposeEvent) {
		if ev.Count > 0 {
			return
		}
		w.drawPending = false
		w.requestFocus()
		h.OnPaint(w)
	}).Connect(xu, wid)

	xevent.ConfigureNotifyFun(func(xu *xgbutil.XUtil, ev xevent.ConfigureNotifyEvent) {
		w.bounds.Width = int(ev.Width)
		w.bounds.Height = int(ev.Height)
	}).Connect(xu, wid)

	xevent.ButtonPressFun(func(xu *xgbutil.XUtil, ev xevent.ButtonPressEvent) {
		h.OnPointerDown(pointerEvent(ev.Detail, ev.EventX, ev.EventY, ev.Event))
	}).Connect(xu, wid)

	xevent.ButtonReleaseFun(func(xu *xgbutil.XUtil, ev xevent.ButtonReleaseEvent) {
		h.OnPointerUp(pointerEvent(ev.Detail, ev.EventX, ev.EventY, ev.Event))
	}).Connect(xu, wid)

	xevent.MotionNotifyFun(func(xu *xgbutil.XUtil, ev xevent.MotionNotifyEvent) {
		h.OnPointerMove(int(ev.EventX), int(ev.EventY))
	}).Connect(xu, wid)

	xevent.KeyReleaseFun(func(xu *xgbutil.XUtil, ev xevent.KeyReleaseEvent) {
		h.OnKeyUp(ev.Detail, ev.State)
	}).Connect(xu, wid)

	xevent.FocusInFun(func(xu *xgbutil.XUtil, ev xevent.FocusInEvent) {
		if focusChangeCounts(ev.Mode, ev.Detail) {
			h.OnFocusIn()
		}
	}).Connect(xu, wid)

	xevent.FocusOutFun(func(xu *xgbutil.XUtil, ev xevent.FocusOutEvent) {
		if focusChangeCounts(ev.Mode, ev.Detail) {
			h.OnFocusOut()
		}
	}).Connect(xu, wid)

	xevent.DestroyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.DestroyNotifyEvent) {
		if ev.Window == wid {
			w.closed = true
			h.OnDestroy()
		}
	}).Connect(xu, wid)

	xevent.ClientMessageFun(func(xu *xgbutil.XUtil, ev xevent.ClientMessageEvent) {
		if w.isDeleteRequest(ev) {
			log.Println("Overlay: close requested by window manager")
			h.OnDestroy()
		}
	}).Connect(xu, wid)
}

// Show maps the window, places it, raises it above other windows and asks
// the window manager to focus it.
func (w *Window) Show() error {
	if w.handler == nil {
		return fmt.Errorf("overlay window has no handler attached")
	}

	xproto.MapWindow(w.xu.Conn(), w.id)
	// Window managers may ignore the create-time position.
	xwindow.New(w.xu, w.id).Move(w.bounds.X, w.bounds.Y)
	w.conn.RaiseWindow(w.id)

	if err := w.conn.FocusWindow(w.id); err != nil {
		log.Printf("Overlay: focus request failed: %v", err)
	}
	return nil
}

// Run shows the window and blocks in the X event loop until it closes.
func (w *Window) Run() error {
	if err := w.Show(); err != nil {
		return err
	}
	w.conn.EventLoop()
	return nil
}

// Size returns the current window size.
func (w *Window) Size() (int, int) {
	return w.bounds.Width, w.bounds.Height
}

// QueueDraw clears the window with exposures, which arrives back as an
// Expose event. Repeated requests before the paint are coalesced.
func (w *Window) QueueDraw() {
	if w.closed || w.drawPending {
		return
	}
	w.drawPending = true
	xproto.ClearArea(w.xu.Conn(), true, w.id, 0, 0, 0, 0)
}

// FillRect paints a solid rectangle.
func (w *Window) FillRect(r grid.Rect, c paint.Color) {
	if w.closed || r.Width < 1 || r.Height < 1 {
		return
	}
	xc := w.xu.Conn()
	xproto.ChangeGC(xc, w.gc, xproto.GcForeground, []uint32{w.pixel(c)})
	xproto.PolyFillRectangle(xc, xproto.Drawable(w.id), w.gc, []xproto.Rectangle{{
		X:      int16(r.X),
		Y:      int16(r.Y),
		Width:  uint16(r.Width),
		Height: uint16(r.Height),
	}})
}

// Close destroys the window and stops the event loop.
func (w *Window) Close() {
	xc := w.xu.Conn()
	if !w.closed {
		w.closed = true
		xevent.Detach(w.xu, w.id)
		xproto.FreeGC(xc, w.gc)
		xproto.DestroyWindow(xc, w.id)
	}
	w.conn.Quit()
}

func (w *Window) pixel(c paint.Color) uint32 {
	if w.argb {
		return c.ARGB()
	}
	return c.RGB()
}

func (w *Window) setProperties() {
	xu, wid := w.xu, w.id

	if err := ewmh.WmNameSet(xu, wid, windowTitle); err != nil {
		log.Printf("Overlay: failed to set _NET_WM_NAME: %v", err)
	}
	if err := icccm.WmNameSet(xu, wid, windowTitle); err != nil {
		log.Printf("Overlay: failed to set WM_NAME: %v", err)
	}
	if err := icccm.WmClassSet(xu, wid, &icccm.WmClass{Instance: windowTitle, Class: "Tatami"}); err != nil {
		log.Printf("Overlay: failed to set WM_CLASS: %v", err)
	}

	if err := icccm.WmNormalHintsSet(xu, wid, &icccm.NormalHints{
		Flags:  icccm.SizeHintUSPosition | icccm.SizeHintPPosition | icccm.SizeHintUSSize | icccm.SizeHintPSize,
		X:      w.bounds.X,
		Y:      w.bounds.Y,
		Width:  uint(w.bounds.Width),
		Height: uint(w.bounds.Height),
	}); err != nil {
		log.Printf("Overlay: failed to set WM_NORMAL_HINTS: %v", err)
	}
	if err := icccm.WmHintsSet(xu, wid, &icccm.Hints{
		Flags: icccm.HintInput,
		Input: 1,
	}); err != nil {
		log.Printf("Overlay: failed to set WM_HINTS: %v", err)
	}
	if err := icccm.WmProtocolsSet(xu, wid, []string{"WM_DELETE_WINDOW"}); err != nil {
		log.Printf("Overlay: failed to set WM_PROTOCOLS: %v", err)
	}

	// No title bar or border.
	if err := motif.WmHintsSet(xu, wid, &motif.Hints{
		Flags:      motif.HintDecorations,
		Decoration: motif.DecorationNone,
	}); err != nil {
		log.Printf("Overlay: failed to disable decorations: %v", err)
	}

	if err := ewmh.WmStateSet(xu, wid, []string{
		"_NET_WM_STATE_ABOVE",
		"_NET_WM_STATE_SKIP_TASKBAR",
		"_NET_WM_STATE_SKIP_PAGER",
	}); err != nil {
		log.Printf("Overlay: failed to set _NET_WM_STATE: %v", err)
	}
}

// requestFocus sets input focus directly once the window is viewable, for
// window managers that ignore _NET_ACTIVE_WINDOW from clients.
func (w *Window) requestFocus() {
	if w.focusAsked || w.closed {
		return
	}
	w.focusAsked = true
	xproto.SetInputFocus(w.xu.Conn(), xproto.InputFocusParent, w.id, xproto.TimeCurrentTime)
}

func (w *Window) isDeleteRequest(ev xevent.ClientMessageEvent) bool {
	name, err := xprop.AtomName(w.xu, ev.Type)
	if err != nil || name != "WM_PROTOCOLS" {
		return false
	}
	if len(ev.Data.Data32) == 0 {
		return false
	}
	proto, err := xprop.AtomName(w.xu, xproto.Atom(ev.Data.Data32[0]))
	return err == nil && proto == "WM_DELETE_WINDOW"
}

func pointerEvent(button xproto.Button, x, y int16, source xproto.Window) selector.PointerEvent {
	return selector.PointerEvent{
		X:      int(x),
		Y:      int(y),
		Button: selector.Button(button),
		Device: uint32(source),
	}
}

// focusChangeCounts filters out focus events caused by keyboard grabs and by
// focus moving between our window and its children or the pointer.
func focusChangeCounts(mode, detail byte) bool {
	switch mode {
	case xproto.NotifyModeGrab, xproto.NotifyModeUngrab:
		return false
	}
	switch detail {
	case xproto.NotifyDetailInferior, xproto.NotifyDetailPointer, xproto.NotifyDetailPointerRoot, xproto.NotifyDetailNone:
		return false
	}
	return true
}
