// Package recording holds the per-frame command log the frame cache
// diffs and replays. Commands carry a deterministic byte payload; the
// cache hashes those payloads into grid cells to find what changed
// between frames.
package recording
