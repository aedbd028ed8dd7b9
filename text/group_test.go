package text

import (
	"errors"
	"math"
	"testing"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

func testGroup(t *testing.T, size float64) *FontGroup {
	t.Helper()
	return GroupOf(loadTestFont(t, goregular.TTF, size))
}

func TestNewGroupEmpty(t *testing.T) {
	_, err := NewGroup()
	if !errors.Is(err, ErrEmptyGroup) {
		t.Errorf("NewGroup() error = %v, want ErrEmptyGroup", err)
	}
}

func TestNewGroupTooMany(t *testing.T) {
	f := loadTestFont(t, goregular.TTF, 14)
	fonts := make([]*Font, MaxFallback+1)
	for i := range fonts {
		fonts[i] = f
	}
	_, err := NewGroup(fonts...)
	if !errors.Is(err, ErrTooManyFonts) {
		t.Errorf("NewGroup(%d fonts) error = %v, want ErrTooManyFonts", len(fonts), err)
	}
}

func TestGroupOfNil(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("GroupOf(nil) did not panic")
		}
	}()
	GroupOf(nil)
}

func TestGroupHeight(t *testing.T) {
	small := loadTestFont(t, goregular.TTF, 10)
	large := loadTestFont(t, gobold.TTF, 24)
	g, err := NewGroup(small, large)
	if err != nil {
		t.Fatalf("NewGroup() error = %v", err)
	}

	if got, want := g.Height(), large.Height(); got != want {
		t.Errorf("Height() = %d, want %d (largest in chain)", got, want)
	}
	if got, want := g.Baseline(), small.Baseline(); got != want {
		t.Errorf("Baseline() = %d, want %d (first font)", got, want)
	}
}

func TestGroupSetSize(t *testing.T) {
	g, err := NewGroup(
		loadTestFont(t, goregular.TTF, 14),
		loadTestFont(t, gobold.TTF, 14),
	)
	if err != nil {
		t.Fatalf("NewGroup() error = %v", err)
	}
	if err := g.SetSize(20); err != nil {
		t.Fatalf("SetSize() error = %v", err)
	}
	for i, f := range g.Fonts() {
		if got := f.Size(); got != 20 {
			t.Errorf("fonts[%d].Size() = %v, want 20", i, got)
		}
	}
}

func TestGetGlyphNeverNil(t *testing.T) {
	g := testGroup(t, 14)

	// A mapped rune, an unmapped basic rune, and an unmapped non-basic
	// rune must all resolve to a usable metric.
	for _, r := range []rune{'A', '\uE000', '\U0001F600'} {
		gid := g.First().GlyphIndex(r)
		_, m, set := g.GetGlyph(gid, r, 0)
		if m == nil || set == nil {
			t.Errorf("GetGlyph(%U) returned nil metric or set", r)
		}
	}
}

func TestGetGlyphFallbackChain(t *testing.T) {
	// The bold face is listed second; both map 'A', so the primary font
	// must win.
	first := loadTestFont(t, goregular.TTF, 14)
	second := loadTestFont(t, gobold.TTF, 14)
	g, err := NewGroup(first, second)
	if err != nil {
		t.Fatalf("NewGroup() error = %v", err)
	}

	f, m, _ := g.GetGlyph(first.GlyphIndex('A'), 'A', 0)
	if f != first {
		t.Error("GetGlyph('A') resolved past the primary font")
	}
	if !m.Loaded {
		t.Error("GetGlyph('A') metric not loaded")
	}

	// An unmapped shaped index with a mapped fallback rune resolves in a
	// later font by rune lookup.
	f2, m2, _ := g.GetGlyph(0, 'B', 0)
	if m2 == nil || !m2.Loaded {
		t.Fatalf("GetGlyph(0, 'B') metric = %+v, want loaded", m2)
	}
	if f2 != second {
		t.Error("GetGlyph(0, 'B') not resolved by the fallback font")
	}
}

func TestGetGlyphNegativePhase(t *testing.T) {
	g := testGroup(t, 14)
	gid := g.First().GlyphIndex('A')
	_, m, _ := g.GetGlyph(gid, 'A', -1)
	if m == nil || !m.Loaded {
		t.Error("GetGlyph with negative phase did not resolve")
	}
}

func TestWidth(t *testing.T) {
	g := testGroup(t, 14)

	if got := g.Width("", Tab{}); got != 0 {
		t.Errorf("Width(\"\") = %v, want 0", got)
	}
	one := g.Width("M", Tab{})
	two := g.Width("MM", Tab{})
	if one <= 0 {
		t.Fatalf("Width(\"M\") = %v, want > 0", one)
	}
	if two <= one {
		t.Errorf("Width(\"MM\") = %v, want > Width(\"M\") = %v", two, one)
	}
}

func TestWidthTab(t *testing.T) {
	g := testGroup(t, 14)
	g.SetTabSize(4)

	want := g.First().SpaceAdvance() * 4
	got := g.Width("\t", Tab{})
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Width(\"\\t\") = %v, want %v", got, want)
	}

	// A pen already past the first stop jumps to the second.
	got = g.Width("\t\t", Tab{})
	if math.Abs(got-2*want) > 1e-9 {
		t.Errorf("Width(\"\\t\\t\") = %v, want %v", got, 2*want)
	}
}

func TestWidthTabOffset(t *testing.T) {
	g := testGroup(t, 14)
	g.SetTabSize(4)

	stop := g.First().SpaceAdvance() * 4
	// With the origin shifted half a stop, the first tab only advances
	// the remaining half.
	got := g.Width("\t", Tab{Offset: stop / 2})
	if math.Abs(got-stop/2) > 1e-9 {
		t.Errorf("Width with offset = %v, want %v", got, stop/2)
	}
}

func TestWidthMatchesMonotonicPen(t *testing.T) {
	g := testGroup(t, 14)
	prev := 0.0
	for _, s := range []string{"a", "ab", "abc", "abcd"} {
		w := g.Width(s, Tab{})
		if w <= prev {
			t.Errorf("Width(%q) = %v, want > %v", s, w, prev)
		}
		prev = w
	}
}
