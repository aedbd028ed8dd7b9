// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package core

// HashSeed is the FNV-1a 32-bit offset basis. Every cell of the change
// detection grid starts each frame at this value; a cell nothing was
// painted into therefore always compares equal to an equally unpainted
// cell from the previous frame.
const HashSeed uint32 = 2166136261

const fnvPrime = 16777619

// HashBytes folds data into a running FNV-1a 32-bit hash.
// The standard library fnv cannot resume from an arbitrary running
// value, which the grid needs when folding several commands into the
// same cell, so the two-line loop lives here instead.
func HashBytes(h uint32, data []byte) uint32 {
	for _, b := range data {
		h = (h ^ uint32(b)) * fnvPrime
	}
	return h
}

// HashUint32 folds the four little-endian bytes of v into h.
func HashUint32(h, v uint32) uint32 {
	h = (h ^ (v & 0xFF)) * fnvPrime
	h = (h ^ ((v >> 8) & 0xFF)) * fnvPrime
	h = (h ^ ((v >> 16) & 0xFF)) * fnvPrime
	h = (h ^ (v >> 24)) * fnvPrime
	return h
}
