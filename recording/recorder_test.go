package recording

import (
	"bytes"
	"testing"

	"github.com/gogpu/framecache/core"
	"github.com/gogpu/framecache/surface"
)

func newTestRecorder(maxBytes int) *Recorder {
	r := NewRecorder(maxBytes, nil)
	r.Reset(core.Rect{W: 800, H: 600})
	return r
}

func TestRecorderReset(t *testing.T) {
	r := newTestRecorder(0)

	if got := r.Clip(); got != (core.Rect{W: 800, H: 600}) {
		t.Errorf("Clip() = %+v, want full bounds", got)
	}
	r.PushDrawRect(DrawRect{Rect: core.Rect{W: 10, H: 10}, Color: core.Color{A: 0xFF}})
	r.Reset(core.Rect{W: 100, H: 100})
	if r.Len() != 0 || r.Bytes() != 0 {
		t.Errorf("Len() = %d, Bytes() = %d after Reset, want 0, 0", r.Len(), r.Bytes())
	}
}

func TestPushSetClipIntersects(t *testing.T) {
	r := newTestRecorder(0)

	r.PushSetClip(core.Rect{X: -50, Y: -50, W: 10000, H: 10000})
	if got := r.Clip(); got != (core.Rect{W: 800, H: 600}) {
		t.Errorf("Clip() = %+v, want clamped to bounds", got)
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}

	cmd := r.Commands()[0].(SetClip)
	if cmd.Rect != (core.Rect{W: 800, H: 600}) {
		t.Errorf("recorded clip = %+v, want clamped", cmd.Rect)
	}
}

func TestPushRejectsOutsideClip(t *testing.T) {
	r := newTestRecorder(0)
	r.PushSetClip(core.Rect{X: 0, Y: 0, W: 100, H: 100})
	n := r.Len()

	if r.PushDrawRect(DrawRect{Rect: core.Rect{X: 200, Y: 200, W: 50, H: 50}, Color: core.Color{A: 0xFF}}) {
		t.Error("PushDrawRect outside clip = true, want rejected")
	}
	if r.Len() != n {
		t.Errorf("Len() = %d after rejected push, want %d", r.Len(), n)
	}

	// Overlapping the clip edge records.
	if !r.PushDrawRect(DrawRect{Rect: core.Rect{X: 90, Y: 90, W: 50, H: 50}, Color: core.Color{A: 0xFF}}) {
		t.Error("PushDrawRect overlapping clip = false, want recorded")
	}
}

func TestPushRejectsEmptyRect(t *testing.T) {
	r := newTestRecorder(0)
	if r.PushDrawRect(DrawRect{Rect: core.Rect{X: 10, Y: 10}, Color: core.Color{A: 0xFF}}) {
		t.Error("PushDrawRect with empty rect = true, want rejected")
	}
}

func TestDegradedFrame(t *testing.T) {
	// Budget fits roughly two rect commands.
	r := NewRecorder(50, nil)
	r.Reset(core.Rect{W: 800, H: 600})

	cmd := DrawRect{Rect: core.Rect{W: 10, H: 10}, Color: core.Color{A: 0xFF}}
	if !r.PushDrawRect(cmd) {
		t.Fatal("first push rejected under budget")
	}
	if !r.PushDrawRect(cmd) {
		t.Fatal("second push rejected under budget")
	}
	if r.Degraded() {
		t.Fatal("Degraded() = true before budget hit")
	}

	if r.PushDrawRect(cmd) {
		t.Error("push over budget = true, want dropped")
	}
	if !r.Degraded() {
		t.Error("Degraded() = false after budget hit")
	}
	if r.Len() != 2 {
		t.Errorf("Len() = %d, want the 2 commands recorded before degradation", r.Len())
	}

	// Everything else this frame is a no-op, including clip changes.
	if r.PushSetClip(core.Rect{W: 10, H: 10}) {
		t.Error("PushSetClip on degraded frame = true, want dropped")
	}

	// The next frame recovers.
	r.Reset(core.Rect{W: 800, H: 600})
	if r.Degraded() {
		t.Error("Degraded() = true after Reset")
	}
	if !r.PushDrawRect(cmd) {
		t.Error("push after Reset rejected")
	}
}

func TestPushDrawCanvasPins(t *testing.T) {
	r := newTestRecorder(0)
	cv := surface.NewCanvas(8, 8)

	ok := r.PushDrawCanvas(DrawCanvas{
		Rect:    core.Rect{X: 10, Y: 10, W: 8, H: 8},
		Canvas:  cv,
		X:       10,
		Y:       10,
		Version: cv.Version(),
	})
	if !ok {
		t.Fatal("PushDrawCanvas rejected")
	}
	if !cv.Pinned() {
		t.Error("canvas not pinned after record")
	}
}

func TestPushDrawCanvasRejectedNotPinned(t *testing.T) {
	r := newTestRecorder(0)
	r.PushSetClip(core.Rect{W: 50, H: 50})
	cv := surface.NewCanvas(8, 8)

	ok := r.PushDrawCanvas(DrawCanvas{
		Rect:   core.Rect{X: 100, Y: 100, W: 8, H: 8},
		Canvas: cv,
	})
	if ok {
		t.Fatal("PushDrawCanvas outside clip = true, want rejected")
	}
	if cv.Pinned() {
		t.Error("rejected canvas draw left the canvas pinned")
	}
}

func TestPayloadDeterminism(t *testing.T) {
	mk := func() []byte {
		cmd := DrawRect{
			Rect:    core.Rect{X: 1, Y: 2, W: 3, H: 4},
			Color:   core.Color{R: 5, G: 6, B: 7, A: 8},
			Replace: true,
		}
		return cmd.AppendPayload(nil)
	}
	a, b := mk(), mk()
	if !bytes.Equal(a, b) {
		t.Errorf("payloads differ:\n%x\n%x", a, b)
	}
}

func TestPayloadsDistinguishCommands(t *testing.T) {
	base := DrawRect{Rect: core.Rect{X: 1, Y: 2, W: 3, H: 4}, Color: core.Color{A: 0xFF}}
	variants := []Command{
		DrawRect{Rect: core.Rect{X: 1, Y: 2, W: 3, H: 5}, Color: core.Color{A: 0xFF}},
		DrawRect{Rect: base.Rect, Color: core.Color{R: 1, A: 0xFF}},
		DrawRect{Rect: base.Rect, Color: base.Color, Replace: true},
		SetClip{Rect: base.Rect},
		DrawPoly{Rect: base.Rect, Color: base.Color, Points: []core.Point{{X: 1, Y: 2}}},
	}

	ref := base.AppendPayload(nil)
	for i, v := range variants {
		if bytes.Equal(ref, v.AppendPayload(nil)) {
			t.Errorf("variant %d has the same payload as the base command", i)
		}
	}
}

func TestPayloadPolyTagMatters(t *testing.T) {
	pts := []core.Point{{X: 1, Y: 1}, {X: 5, Y: 1, Tag: core.PointControlQuad}, {X: 5, Y: 5}}
	a := DrawPoly{Rect: core.Rect{W: 6, H: 6}, Color: core.Color{A: 0xFF}, Points: pts}

	flat := []core.Point{{X: 1, Y: 1}, {X: 5, Y: 1}, {X: 5, Y: 5}}
	b := DrawPoly{Rect: core.Rect{W: 6, H: 6}, Color: core.Color{A: 0xFF}, Points: flat}

	if bytes.Equal(a.AppendPayload(nil), b.AppendPayload(nil)) {
		t.Error("point tags do not affect the payload")
	}
}

func TestCanvasPayloadTracksVersion(t *testing.T) {
	cv := surface.NewCanvas(4, 4)
	a := DrawCanvas{Rect: core.Rect{W: 4, H: 4}, Canvas: cv, Version: 1}
	b := DrawCanvas{Rect: core.Rect{W: 4, H: 4}, Canvas: cv, Version: 2}
	if bytes.Equal(a.AppendPayload(nil), b.AppendPayload(nil)) {
		t.Error("canvas version does not affect the payload")
	}
}

func TestCommandTypeString(t *testing.T) {
	tests := []struct {
		t    CommandType
		want string
	}{
		{CmdSetClip, "SetClip"},
		{CmdDrawRect, "DrawRect"},
		{CmdDrawText, "DrawText"},
		{CmdDrawPoly, "DrawPoly"},
		{CmdDrawCanvas, "DrawCanvas"},
		{CommandType(42), "Unknown(42)"},
	}
	for _, tt := range tests {
		if got := tt.t.String(); got != tt.want {
			t.Errorf("CommandType(%d).String() = %q, want %q", tt.t, got, tt.want)
		}
	}
}

func TestRecorderGrowth(t *testing.T) {
	r := newTestRecorder(0)
	cmd := DrawRect{Rect: core.Rect{W: 10, H: 10}, Color: core.Color{A: 0xFF}}
	for i := 0; i < 10000; i++ {
		if !r.PushDrawRect(cmd) {
			t.Fatalf("push %d rejected", i)
		}
	}
	if r.Len() != 10000 {
		t.Errorf("Len() = %d, want 10000", r.Len())
	}
}
