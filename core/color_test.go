// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package core

import "testing"

func TestHex(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#FF0000", Color{255, 0, 0, 255}},
		{"00FF00", Color{0, 255, 0, 255}},
		{"#0000FF80", Color{0, 0, 255, 128}},
		{"#F00", Color{255, 0, 0, 255}},
		{"#F008", Color{255, 0, 0, 136}},
	}
	for _, tt := range tests {
		if got := Hex(tt.in); got != tt.want {
			t.Errorf("Hex(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestColorRoundTrip(t *testing.T) {
	c := Color{R: 200, G: 100, B: 50, A: 255}
	if got := FromColor(c.Color()); got != c {
		t.Errorf("FromColor(Color()) = %+v, want %+v", got, c)
	}
}
