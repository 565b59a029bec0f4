package keys

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
)

// modifierMask covers the keyboard modifiers that turn a shortcut into a
// different key combination. Pointer button bits are deliberately absent.
const modifierMask = uint16(xproto.ModMaskShift |
	xproto.ModMaskLock |
	xproto.ModMaskControl |
	xproto.ModMask1 |
	xproto.ModMask2 |
	xproto.ModMask3 |
	xproto.ModMask4 |
	xproto.ModMask5)

// IgnoredMods returns the lock-style modifiers that should not count as held:
// CapsLock, plus whichever ModN bits NumLock and ScrollLock are mapped to.
func IgnoredMods(xu *xgbutil.XUtil) uint16 {
	ignored := uint16(xproto.ModMaskLock)
	if xu == nil {
		return ignored
	}
	ignored |= modMaskForKeysym(xu, "Num_Lock")
	ignored |= modMaskForKeysym(xu, "Scroll_Lock")
	return ignored
}

// Modified reports whether any real modifier is held in an event state.
func Modified(state uint16, ignored uint16) bool {
	return state&modifierMask&^ignored != 0
}

// Keycodes resolves a keysym name such as "f" or "Escape" to every keycode
// that produces it on the current keyboard mapping.
func Keycodes(xu *xgbutil.XUtil, name string) []xproto.Keycode {
	if xu == nil {
		return nil
	}
	return keybind.StrToKeycodes(xu, name)
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
