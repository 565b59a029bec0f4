package platform

import "fmt"

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Backend abstracts the window-system operations tatami needs: the screen
// size, the active window, and unmaximize/resize/move on it.
type Backend interface {
	ScreenSize() (width, height int, err error)
	ActiveWindow() (WindowID, error)
	Unmaximize(windowID WindowID) error
	Resize(windowID WindowID, width, height int) error
	Move(windowID WindowID, x, y int) error
}

// Apply places a window at bounds: unmaximize, then resize, then move.
func Apply(b Backend, windowID WindowID, bounds Rect) error {
	if err := b.Unmaximize(windowID); err != nil {
		return fmt.Errorf("unmaximize window %d: %w", windowID, err)
	}
	if err := b.Resize(windowID, bounds.Width, bounds.Height); err != nil {
		return fmt.Errorf("resize window %d: %w", windowID, err)
	}
	if err := b.Move(windowID, bounds.X, bounds.Y); err != nil {
		return fmt.Errorf("move window %d: %w", windowID, err)
	}
	return nil
}
