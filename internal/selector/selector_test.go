package selector

import (
	"testing"

	"github.com/1broseidon/tatami/internal/grid"
	"github.com/1broseidon/tatami/internal/paint"
)

type fakeHost struct {
	width, height int
	draws         int
	closed        int
}

func (h *fakeHost) Size() (int, int) { return h.width, h.height }
func (h *fakeHost) QueueDraw()        { h.draws++ }
func (h *fakeHost) Close()            { h.closed++ }

type fill struct {
	rect  grid.Rect
	color paint.Color
}

type fakeCanvas struct {
	fills []fill
}

func (c *fakeCanvas) FillRect(r grid.Rect, col paint.Color) {
	c.fills = append(c.fills, fill{rect: r, color: col})
}

type recorder struct {
	rects []grid.Rect
}

func (r *recorder) Commit(rect grid.Rect) { r.rects = append(r.rects, rect) }

func newTestSelector() (*Selector, *fakeHost, *recorder) {
	host := &fakeHost{width: 480, height: 270}
	rec := &recorder{}
	s := New(grid.Default(), paint.DefaultPalette(), 1920, 1080, host, rec)
	return s, host, rec
}

func cellCenter(c grid.Cell) (int, int) {
	r := grid.Default().CellRect(c, 480, 270)
	return r.X + r.Width/2, r.Y + r.Height/2
}

func press(x, y int) PointerEvent {
	return PointerEvent{X: x, Y: y, Button: PrimaryButton, Device: 7}
}

func TestSelector_IgnoresPressBeforeFirstPaint(t *testing.T) {
	s, host, _ := newTestSelector()

	s.OnPointerDown(press(10, 10))
	if s.Gesture().Active() {
		t.Fatalf("expected press before paint to be ignored")
	}
	if host.draws != 0 {
		t.Fatalf("expected no redraw, got %d", host.draws)
	}
}

func TestSelector_DragCommitsScenarioRect(t *testing.T) {
	s, host, rec := newTestSelector()
	s.OnPaint(&fakeCanvas{})

	ax, ay := cellCenter(grid.Cell{Row: 2, Col: 2})
	bx, by := cellCenter(grid.Cell{Row: 4, Col: 5})

	s.OnPointerDown(press(ax, ay))
	s.OnPointerMove(bx, by)
	if got := len(s.Selection()); got != 12 {
		t.Fatalf("expected 12 selected cells while dragging, got %d", got)
	}
	s.OnPointerUp(press(bx, by))

	if len(rec.rects) != 1 {
		t.Fatalf("expected one commit, got %d", len(rec.rects))
	}
	want := grid.Rect{X: 480, Y: 270, Width: 960, Height: 405}
	if rec.rects[0] != want {
		t.Fatalf("committed %+v, want %+v", rec.rects[0], want)
	}
	if host.closed != 1 {
		t.Fatalf("expected host to close once, got %d", host.closed)
	}
	if s.Gesture().Active() {
		t.Fatalf("expected gesture to be cleared")
	}
	if host.draws != 3 {
		t.Fatalf("expected redraw after press, move and release, got %d", host.draws)
	}

	// Nothing further is committed after completion.
	s.OnPointerDown(press(ax, ay))
	s.OnPointerMove(bx, by)
	s.OnPointerUp(press(bx, by))
	if len(rec.rects) != 1 {
		t.Fatalf("expected a single commit per run, got %d", len(rec.rects))
	}
}

func TestSelector_MismatchedReleaseKeepsGesture(t *testing.T) {
	s, host, rec := newTestSelector()
	s.OnPaint(&fakeCanvas{})

	x, y := cellCenter(grid.Cell{Row: 0, Col: 0})
	s.OnPointerDown(press(x, y))
	s.OnPointerMove(x+1, y+1)

	s.OnPointerUp(PointerEvent{X: x, Y: y, Button: 3, Device: 7})
	s.OnPointerUp(PointerEvent{X: x, Y: y, Button: PrimaryButton, Device: 8})
	if len(rec.rects) != 0 || host.closed != 0 {
		t.Fatalf("expected mismatched releases to be ignored")
	}
	if !s.Gesture().Active() {
		t.Fatalf("expected gesture to remain active")
	}

	s.OnPointerUp(press(x, y))
	if len(rec.rects) != 1 {
		t.Fatalf("expected matching release to commit, got %d commits", len(rec.rects))
	}
	if want := (grid.Rect{X: 0, Y: 0, Width: 240, Height: 135}); rec.rects[0] != want {
		t.Fatalf("committed %+v, want %+v", rec.rects[0], want)
	}
}

func TestSelector_ReleaseWithoutPressIgnored(t *testing.T) {
	s, host, rec := newTestSelector()
	s.OnPaint(&fakeCanvas{})

	s.OnPointerUp(press(10, 10))
	if len(rec.rects) != 0 || host.closed != 0 || host.draws != 0 {
		t.Fatalf("expected stray release to be ignored")
	}
}

func TestSelector_EmptySelectionIsNoop(t *testing.T) {
	s, host, rec := newTestSelector()
	s.OnPaint(&fakeCanvas{})

	// Press and release without moving: no current point, no cells.
	s.OnPointerDown(press(30, 20))
	s.OnPointerUp(press(30, 20))
	if len(rec.rects) != 0 || host.closed != 0 {
		t.Fatalf("expected empty selection not to commit")
	}
	if s.Gesture().Active() {
		t.Fatalf("expected gesture to end")
	}

	// A drag confined to a margin also selects nothing.
	s.OnPointerDown(press(61, 2))
	s.OnPointerMove(61, 3)
	s.OnPointerUp(press(61, 3))
	if len(rec.rects) != 0 || host.closed != 0 {
		t.Fatalf("expected margin drag not to commit")
	}
}

func TestSelector_NonPrimaryPressIgnored(t *testing.T) {
	s, _, _ := newTestSelector()
	s.OnPaint(&fakeCanvas{})

	s.OnPointerDown(PointerEvent{X: 10, Y: 10, Button: 3})
	if s.Gesture().Active() {
		t.Fatalf("expected right button press to be ignored")
	}
}

func TestSelector_MoveWithoutPressIgnored(t *testing.T) {
	s, host, _ := newTestSelector()
	s.OnPaint(&fakeCanvas{})

	s.OnPointerMove(100, 100)
	if host.draws != 0 {
		t.Fatalf("expected no redraw for hover, got %d", host.draws)
	}
}

func TestSelector_PaintColorsSelection(t *testing.T) {
	s, _, _ := newTestSelector()
	palette := paint.DefaultPalette()

	canvas := &fakeCanvas{}
	s.OnPaint(canvas)
	if len(canvas.fills) != 65 {
		t.Fatalf("expected backdrop + 64 cells, got %d fills", len(canvas.fills))
	}
	if canvas.fills[0].rect != (grid.Rect{X: 0, Y: 0, Width: 480, Height: 270}) || canvas.fills[0].color != palette.Backdrop {
		t.Fatalf("expected full-surface backdrop first, got %+v", canvas.fills[0])
	}
	for _, f := range canvas.fills[1:] {
		if f.color != palette.Cell {
			t.Fatalf("expected all cells unselected before a drag")
		}
	}

	ax, ay := cellCenter(grid.Cell{Row: 0, Col: 0})
	bx, by := cellCenter(grid.Cell{Row: 1, Col: 1})
	s.OnPointerDown(press(ax, ay))
	s.OnPointerMove(bx, by)

	canvas = &fakeCanvas{}
	s.OnPaint(canvas)
	selected := 0
	for _, f := range canvas.fills[1:] {
		if f.color == palette.Selected {
			selected++
		}
	}
	if selected != 4 {
		t.Fatalf("expected 4 selected cells painted, got %d", selected)
	}
}

func TestCommitFunc(t *testing.T) {
	var got grid.Rect
	var c Committer = CommitFunc(func(r grid.Rect) { got = r })
	c.Commit(grid.Rect{X: 1, Y: 2, Width: 3, Height: 4})
	if got != (grid.Rect{X: 1, Y: 2, Width: 3, Height: 4}) {
		t.Fatalf("CommitFunc did not forward rect, got %+v", got)
	}
}
