package overlay

import (
	"log"

	"github.com/1broseidon/tatami/internal/config"
	"github.com/BurntSushi/xgb/xproto"
)

// Action is what a key does in the overlay.
type Action int

const (
	ActionNone Action = iota
	ActionPreset
	ActionCancel
)

// String returns the string representation of the action
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionPreset:
		return "preset"
	case ActionCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Binding is the resolved meaning of one keycode.
type Binding struct {
	Action Action
	Key    string
	Region config.Region
}

// Keymap maps keycodes to bindings.
type Keymap map[xproto.Keycode]Binding

// KeycodeResolver turns a keysym name into the keycodes that produce it.
type KeycodeResolver func(name string) []xproto.Keycode

// NewKeymap binds Escape to cancel and every preset key to its region.
// Presets are resolved in sorted key order; a keycode already taken keeps its
// first binding.
func NewKeymap(cfg *config.Config, resolve KeycodeResolver) Keymap {
	km := make(Keymap)
	for _, code := range resolve(config.CancelKey) {
		km[code] = Binding{Action: ActionCancel, Key: config.CancelKey}
	}

	for _, key := range cfg.PresetKeys() {
		codes := resolve(key)
		if len(codes) == 0 {
			log.Printf("Overlay: preset key %q has no keycode on this keyboard", key)
			continue
		}
		for _, code := range codes {
			if existing, ok := km[code]; ok {
				log.Printf("Overlay: preset key %q shares keycode %d with %q; keeping %q", key, code, existing.Key, existing.Key)
				continue
			}
			km[code] = Binding{Action: ActionPreset, Key: key, Region: cfg.Presets[key]}
		}
	}
	return km
}

// Lookup returns the binding for a keycode, or ActionNone.
func (km Keymap) Lookup(code xproto.Keycode) Binding {
	if b, ok := km[code]; ok {
		return b
	}
	return Binding{Action: ActionNone}
}
