// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package core

import (
	"encoding/binary"
	"hash/fnv"
	"math/rand"
	"testing"
)

func TestHashBytesMatchesStdlib(t *testing.T) {
	// Starting from the seed, HashBytes must agree with hash/fnv.
	data := []byte("the quick brown fox")

	h := fnv.New32a()
	_, _ = h.Write(data)
	want := h.Sum32()

	if got := HashBytes(HashSeed, data); got != want {
		t.Errorf("HashBytes() = %#x, want %#x", got, want)
	}
}

func TestHashUint32MatchesHashBytes(t *testing.T) {
	var buf [4]byte
	for _, v := range []uint32{0, 1, 0xDEADBEEF, 0xFFFFFFFF} {
		binary.LittleEndian.PutUint32(buf[:], v)
		if got, want := HashUint32(HashSeed, v), HashBytes(HashSeed, buf[:]); got != want {
			t.Errorf("HashUint32(%#x) = %#x, want %#x", v, got, want)
		}
	}
}

// TestHashCollisionRate is a statistical check on the running
// multiply-XOR fold: distinct random command payloads folded into a cell
// must produce distinct cell values at a rate consistent with a 32-bit
// hash. 100k samples keep the expected birthday-collision count near 1.
func TestHashCollisionRate(t *testing.T) {
	const samples = 100000
	rng := rand.New(rand.NewSource(1))
	seen := make(map[uint32]int, samples)
	collisions := 0

	payload := make([]byte, 40)
	for i := 0; i < samples; i++ {
		rng.Read(payload)
		// Same fold order as the grid: seed, then the payload hash.
		h := HashBytes(HashSeed, payload)
		cell := HashUint32(HashSeed, h)
		if _, ok := seen[cell]; ok {
			collisions++
		}
		seen[cell] = i
	}

	// Expected ~1.2 collisions for 1e5 samples over 2^32. Ten is far
	// outside any plausible variance and would indicate broken mixing.
	if collisions > 10 {
		t.Errorf("got %d collisions over %d samples, expected ~1", collisions, samples)
	}
}
