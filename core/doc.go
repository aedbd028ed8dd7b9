// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package core provides the primitive value types shared by the
// framecache packages: integer rectangles, byte-component colors,
// tagged polygon points, and the running hash used by the cell grid.
//
// The package has no dependencies on the rest of the module so that
// recording, text, and surface can all build on it without cycles.
package core
