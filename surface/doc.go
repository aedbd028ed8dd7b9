// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface provides the rendering targets the frame cache draws
// into: a software backend over *image.RGBA, off-screen canvases with
// pin-based mutation control, and a wgpu-backed texture surface.
// Backends self-register in a priority registry so callers can pick the
// best available one without importing it directly.
package surface
