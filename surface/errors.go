// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import "errors"

var (
	// ErrSurfaceClosed is returned when operating on a closed surface.
	ErrSurfaceClosed = errors.New("surface: surface is closed")

	// ErrCanvasPinned is returned when mutating a canvas that is pinned
	// by an in-flight frame.
	ErrCanvasPinned = errors.New("surface: canvas is pinned by a recorded frame")

	// ErrNoGPU is returned when no suitable GPU adapter is found.
	ErrNoGPU = errors.New("surface: no suitable GPU adapter found")

	// ErrNotInitialized is returned when using a GPU surface before its
	// device is brought up.
	ErrNotInitialized = errors.New("surface: GPU backend not initialized")

	// ErrNoBackendAvailable is returned when no surface backends are
	// registered or available on the current system.
	ErrNoBackendAvailable = errors.New("surface: no backend available")
)

// BackendNotFoundError indicates a named backend is not registered.
type BackendNotFoundError struct {
	Name string
}

func (e *BackendNotFoundError) Error() string {
	return "surface: backend not found: " + e.Name
}

// BackendUnavailableError indicates a backend exists but is not available.
type BackendUnavailableError struct {
	Name string
}

func (e *BackendUnavailableError) Error() string {
	return "surface: backend unavailable: " + e.Name
}
