package recording

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/framecache/core"
	"github.com/gogpu/framecache/surface"
	"github.com/gogpu/framecache/text"
)

// CommandType identifies a recorded drawing operation.
type CommandType uint8

const (
	// CmdSetClip narrows the ambient clip for subsequent commands.
	CmdSetClip CommandType = iota
	// CmdDrawRect fills an axis-aligned rectangle.
	CmdDrawRect
	// CmdDrawText renders shaped text at a baseline position.
	CmdDrawText
	// CmdDrawPoly fills a tagged-point outline.
	CmdDrawPoly
	// CmdDrawCanvas blits an off-screen canvas.
	CmdDrawCanvas
)

// String returns the string representation of the command type.
func (t CommandType) String() string {
	switch t {
	case CmdSetClip:
		return "SetClip"
	case CmdDrawRect:
		return "DrawRect"
	case CmdDrawText:
		return "DrawText"
	case CmdDrawPoly:
		return "DrawPoly"
	case CmdDrawCanvas:
		return "DrawCanvas"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(t))
	}
}

// Command is one recorded drawing operation. Bounds is the rectangle
// the command may touch, in points, used for change detection.
// AppendPayload appends a deterministic byte encoding of everything
// that affects the command's rendered output; two commands with equal
// payloads draw identical pixels.
type Command interface {
	Type() CommandType
	Bounds() core.Rect
	AppendPayload(buf []byte) []byte
}

// payload append helpers. Everything is little-endian so the encoding
// is stable across platforms.

func appendU32(buf []byte, v uint32) []byte {
	return binary.LittleEndian.AppendUint32(buf, v)
}

func appendU64(buf []byte, v uint64) []byte {
	return binary.LittleEndian.AppendUint64(buf, v)
}

func appendI32(buf []byte, v int) []byte {
	return appendU32(buf, uint32(int32(v)))
}

func appendF64(buf []byte, v float64) []byte {
	return appendU64(buf, math.Float64bits(v))
}

func appendRect(buf []byte, r core.Rect) []byte {
	buf = appendI32(buf, r.X)
	buf = appendI32(buf, r.Y)
	buf = appendI32(buf, r.W)
	return appendI32(buf, r.H)
}

func appendColor(buf []byte, c core.Color) []byte {
	return append(buf, c.R, c.G, c.B, c.A)
}

func appendBool(buf []byte, b bool) []byte {
	if b {
		return append(buf, 1)
	}
	return append(buf, 0)
}

// SetClip narrows the clip to Rect, already intersected with the
// surface bounds at record time.
type SetClip struct {
	Rect core.Rect
}

func (c SetClip) Type() CommandType { return CmdSetClip }

func (c SetClip) Bounds() core.Rect { return c.Rect }

func (c SetClip) AppendPayload(buf []byte) []byte {
	buf = append(buf, byte(CmdSetClip))
	return appendRect(buf, c.Rect)
}

// DrawRect fills Rect with Color. Replace stores the color instead of
// blending it.
type DrawRect struct {
	Rect    core.Rect
	Color   core.Color
	Replace bool
}

func (c DrawRect) Type() CommandType { return CmdDrawRect }

func (c DrawRect) Bounds() core.Rect { return c.Rect }

func (c DrawRect) AppendPayload(buf []byte) []byte {
	buf = append(buf, byte(CmdDrawRect))
	buf = appendRect(buf, c.Rect)
	buf = appendColor(buf, c.Color)
	return appendBool(buf, c.Replace)
}

// DrawText renders Text with Fonts at baseline (X, Rect.Y). Rect spans
// the shaped width and the group line height.
type DrawText struct {
	Rect  core.Rect
	Color core.Color
	Fonts *text.FontGroup
	Text  string
	X     float64
	Tab   text.Tab
}

func (c DrawText) Type() CommandType { return CmdDrawText }

func (c DrawText) Bounds() core.Rect { return c.Rect }

func (c DrawText) AppendPayload(buf []byte) []byte {
	buf = append(buf, byte(CmdDrawText))
	buf = appendRect(buf, c.Rect)
	buf = appendColor(buf, c.Color)
	buf = appendF64(buf, c.X)
	buf = appendF64(buf, c.Tab.Offset)
	// The group identity alone is not enough: a resized or restyled
	// group draws differently, so the per-font rendering parameters
	// fold in too.
	buf = appendU64(buf, c.Fonts.ID())
	for _, f := range c.Fonts.Fonts() {
		buf = appendF64(buf, f.Size())
		buf = append(buf, byte(f.Style()), byte(f.Antialiasing()), byte(f.Hinting()))
		buf = appendI32(buf, f.TabSize())
	}
	return append(buf, c.Text...)
}

// DrawPoly fills the tagged-point outline Points with Color. Rect is
// the outline's control box.
type DrawPoly struct {
	Rect   core.Rect
	Color  core.Color
	Points []core.Point
}

func (c DrawPoly) Type() CommandType { return CmdDrawPoly }

func (c DrawPoly) Bounds() core.Rect { return c.Rect }

func (c DrawPoly) AppendPayload(buf []byte) []byte {
	buf = append(buf, byte(CmdDrawPoly))
	buf = appendRect(buf, c.Rect)
	buf = appendColor(buf, c.Color)
	for _, p := range c.Points {
		buf = appendF64(buf, p.X)
		buf = appendF64(buf, p.Y)
		buf = append(buf, byte(p.Tag))
	}
	return buf
}

// DrawCanvas blits Canvas at point offset (X, Y). Version is the canvas
// mutation counter captured at record time, so a canvas redrawn with
// new content invalidates the cells it covers.
type DrawCanvas struct {
	Rect    core.Rect
	Canvas  *surface.Canvas
	X, Y    int
	Blend   bool
	Version uint64
}

func (c DrawCanvas) Type() CommandType { return CmdDrawCanvas }

func (c DrawCanvas) Bounds() core.Rect { return c.Rect }

func (c DrawCanvas) AppendPayload(buf []byte) []byte {
	buf = append(buf, byte(CmdDrawCanvas))
	buf = appendRect(buf, c.Rect)
	buf = appendI32(buf, c.X)
	buf = appendI32(buf, c.Y)
	buf = appendBool(buf, c.Blend)
	buf = appendU64(buf, c.Canvas.ID())
	return appendU64(buf, c.Version)
}
