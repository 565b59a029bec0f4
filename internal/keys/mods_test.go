package keys

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"
)

func TestModified(t *testing.T) {
	numLock := uint16(xproto.ModMask2)
	ignored := uint16(xproto.ModMaskLock) | numLock

	tests := []struct {
		name  string
		state uint16
		want  bool
	}{
		{"no modifiers", 0, false},
		{"caps lock only", xproto.ModMaskLock, false},
		{"num lock only", numLock, false},
		{"caps and num lock", xproto.ModMaskLock | numLock, false},
		{"shift", xproto.ModMaskShift, true},
		{"control", xproto.ModMaskControl, true},
		{"alt with num lock", xproto.ModMask1 | numLock, true},
		{"super", xproto.ModMask4, true},
		{"button held only", xproto.KeyButMaskButton1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Modified(tt.state, ignored); got != tt.want {
				t.Fatalf("Modified(%#x) = %v, want %v", tt.state, got, tt.want)
			}
		})
	}
}

func TestIgnoredMods_NilConnection(t *testing.T) {
	if got := IgnoredMods(nil); got != uint16(xproto.ModMaskLock) {
		t.Fatalf("IgnoredMods(nil) = %#x, want CapsLock only", got)
	}
	if Keycodes(nil, "f") != nil {
		t.Fatalf("expected no keycodes without a connection")
	}
}
