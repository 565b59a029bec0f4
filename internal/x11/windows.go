package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xwindow"
)

const (
	stateMaximizedHorz = "_NET_WM_STATE_MAXIMIZED_HORZ"
	stateMaximizedVert = "_NET_WM_STATE_MAXIMIZED_VERT"
)

// ActiveWindow returns the window the window manager reports as focused.
func (c *Connection) ActiveWindow() (xproto.Window, error) {
	win, err := ewmh.ActiveWindowGet(c.XUtil)
	if err != nil {
		return 0, fmt.Errorf("failed to get active window: %w", err)
	}
	if win == 0 {
		return 0, fmt.Errorf("no active window")
	}
	return win, nil
}

// Unmaximize removes any maximized state from a window.
func (c *Connection) Unmaximize(windowID xproto.Window) error {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		// No _NET_WM_STATE means nothing to undo.
		return nil
	}

	hasMaxH := false
	hasMaxV := false
	for _, state := range states {
		switch state {
		case stateMaximizedHorz:
			hasMaxH = true
		case stateMaximizedVert:
			hasMaxV = true
		}
	}

	if hasMaxH {
		if err := ewmh.WmStateReq(c.XUtil, windowID, ewmh.StateRemove, stateMaximizedHorz); err != nil {
			return fmt.Errorf("failed to remove %s: %w", stateMaximizedHorz, err)
		}
	}
	if hasMaxV {
		if err := ewmh.WmStateReq(c.XUtil, windowID, ewmh.StateRemove, stateMaximizedVert); err != nil {
			return fmt.Errorf("failed to remove %s: %w", stateMaximizedVert, err)
		}
	}
	return nil
}

// ResizeWindow asks the window manager to resize a window, falling back to a
// direct configure request.
func (c *Connection) ResizeWindow(windowID xproto.Window, width, height int) error {
	if width < 1 || height < 1 {
		return fmt.Errorf("invalid size %dx%d", width, height)
	}
	if err := ewmh.ResizeWindow(c.XUtil, windowID, width, height); err != nil {
		xwindow.New(c.XUtil, windowID).Resize(width, height)
	}
	return nil
}

// MoveWindow asks the window manager to move a window, falling back to a
// direct configure request.
func (c *Connection) MoveWindow(windowID xproto.Window, x, y int) error {
	if err := ewmh.MoveWindow(c.XUtil, windowID, x, y); err != nil {
		xwindow.New(c.XUtil, windowID).Move(x, y)
	}
	return nil
}
