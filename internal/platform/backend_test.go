package platform

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

type fakeBackend struct {
	calls      []string
	failResize error
}

func (f *fakeBackend) ScreenSize() (int, int, error) { return 1920, 1080, nil }
func (f *fakeBackend) ActiveWindow() (WindowID, error) { return 42, nil }

func (f *fakeBackend) Unmaximize(id WindowID) error {
	f.calls = append(f.calls, "unmaximize")
	return nil
}

func (f *fakeBackend) Resize(id WindowID, w, h int) error {
	f.calls = append(f.calls, "resize")
	return f.failResize
}

func (f *fakeBackend) Move(id WindowID, x, y int) error {
	f.calls = append(f.calls, "move")
	return nil
}

func TestApply_Order(t *testing.T) {
	b := &fakeBackend{}
	if err := Apply(b, 42, Rect{X: 480, Y: 270, Width: 960, Height: 405}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	want := []string{"unmaximize", "resize", "move"}
	if !reflect.DeepEqual(b.calls, want) {
		t.Fatalf("calls = %v, want %v", b.calls, want)
	}
}

func TestApply_StopsAtFirstError(t *testing.T) {
	boom := errors.New("boom")
	b := &fakeBackend{failResize: boom}

	err := Apply(b, 42, Rect{Width: 10, Height: 10})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if !strings.Contains(err.Error(), "resize window 42") {
		t.Fatalf("expected step in error, got %q", err.Error())
	}
	if want := []string{"unmaximize", "resize"}; !reflect.DeepEqual(b.calls, want) {
		t.Fatalf("calls = %v, want %v", b.calls, want)
	}
}
