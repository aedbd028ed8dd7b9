package recording

import (
	"log/slog"

	"github.com/gogpu/framecache/core"
)

// DefaultMaxBytes is the default command log byte budget per frame.
const DefaultMaxBytes = 16 << 20

// Recorder captures one frame's drawing operations as a command log.
//
// Commands are rejected at record time when they cannot affect pixels:
// empty rectangles and draws entirely outside the ambient clip are
// dropped, so the log never stores work the replay would discard.
//
// The log carries a byte budget. A frame that would exceed it goes
// degraded: the offending command and everything after it is dropped,
// what was already recorded stays, and a warning is logged once. The
// affected regions simply keep their previous content.
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	bounds core.Rect
	clip   core.Rect

	commands []Command
	bytes    int
	maxBytes int

	degraded bool
	logger   func() *slog.Logger
	scratch  []byte
}

// NewRecorder creates a Recorder with the given byte budget. A zero or
// negative budget selects DefaultMaxBytes. The logger function is
// called when the degradation warning fires, so a logger swapped in
// after construction is still honored. A nil function discards the
// warning.
func NewRecorder(maxBytes int, logger func() *slog.Logger) *Recorder {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if logger == nil {
		discard := slog.New(slog.DiscardHandler)
		logger = func() *slog.Logger { return discard }
	}
	return &Recorder{
		maxBytes: maxBytes,
		logger:   logger,
	}
}

// Reset starts a new frame over the given surface bounds (points).
// The clip opens to the full bounds and the degraded flag clears.
// Recorded commands are kept allocated for reuse.
func (r *Recorder) Reset(bounds core.Rect) {
	r.bounds = bounds
	r.clip = bounds
	clear(r.commands)
	r.commands = r.commands[:0]
	r.bytes = 0
	r.degraded = false
}

// Bounds returns the surface bounds the frame was opened with.
func (r *Recorder) Bounds() core.Rect { return r.bounds }

// Clip returns the ambient clip commands are currently rejected
// against.
func (r *Recorder) Clip() core.Rect { return r.clip }

// Commands returns the recorded log in order. The slice is owned by
// the recorder and valid until the next Reset.
func (r *Recorder) Commands() []Command { return r.commands }

// Len returns the number of recorded commands.
func (r *Recorder) Len() int { return len(r.commands) }

// Bytes returns the payload bytes recorded so far.
func (r *Recorder) Bytes() int { return r.bytes }

// Degraded reports whether the frame hit the byte budget and dropped
// commands.
func (r *Recorder) Degraded() bool { return r.degraded }

// PushSetClip records a clip change. The rectangle is intersected with
// the surface bounds and becomes the ambient clip for rejection.
func (r *Recorder) PushSetClip(rect core.Rect) bool {
	clipped := rect.Intersect(r.bounds)
	if !r.push(SetClip{Rect: clipped}) {
		return false
	}
	r.clip = clipped
	return true
}

// PushDrawRect records a rectangle fill.
func (r *Recorder) PushDrawRect(cmd DrawRect) bool {
	if cmd.Rect.Empty() || !cmd.Rect.Overlaps(r.clip) {
		return false
	}
	return r.push(cmd)
}

// PushDrawText records a text draw. The caller computes Rect from the
// shaped width and the group height.
func (r *Recorder) PushDrawText(cmd DrawText) bool {
	if cmd.Rect.Empty() || !cmd.Rect.Overlaps(r.clip) {
		return false
	}
	return r.push(cmd)
}

// PushDrawPoly records an outline fill. The caller computes Rect as
// the outline's control box.
func (r *Recorder) PushDrawPoly(cmd DrawPoly) bool {
	if cmd.Rect.Empty() || !cmd.Rect.Overlaps(r.clip) {
		return false
	}
	return r.push(cmd)
}

// PushDrawCanvas records a canvas blit and pins the canvas so its
// pixels cannot change before the frame replays. The pin is released
// during frame finalization.
func (r *Recorder) PushDrawCanvas(cmd DrawCanvas) bool {
	if cmd.Canvas == nil || cmd.Rect.Empty() || !cmd.Rect.Overlaps(r.clip) {
		return false
	}
	if !r.push(cmd) {
		return false
	}
	cmd.Canvas.Retain()
	return true
}

// push appends a command, enforcing the byte budget and growing the
// log geometrically.
func (r *Recorder) push(cmd Command) bool {
	if r.degraded {
		return false
	}

	payload := cmd.AppendPayload(r.scratch[:0])
	r.scratch = payload[:0]

	if r.bytes+len(payload) > r.maxBytes {
		r.degraded = true
		r.logger().Warn("recording: command log budget exhausted, degrading frame",
			"bytes", r.bytes,
			"budget", r.maxBytes,
			"commands", len(r.commands))
		return false
	}

	if len(r.commands) == cap(r.commands) {
		grown := cap(r.commands) + cap(r.commands)/4
		if grown < 64 {
			grown = 64
		}
		next := make([]Command, len(r.commands), grown)
		copy(next, r.commands)
		r.commands = next
	}
	r.commands = append(r.commands, cmd)
	r.bytes += len(payload)
	return true
}
