package layout

import (
	"testing"
)

// area is a test helper that creates a Rect at origin with the given size.
func area(w, h int) Rect {
	return Rect{X: 0, Y: 0, Width: w, Height: h}
}

func sum(allocs []int) int {
	total := 0
	for _, a := range allocs {
		total += a
	}
	return total
}

// assertRectsEqual fails the test if got and want differ.
func assertRectsEqual(t *testing.T, label string, got, want []Rect) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: len(got)=%d, want %d\ngot:  %v\nwant: %v", label, len(got), len(want), got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("%s[%d]: got %v, want %v", label, i, got[i], want[i])
		}
	}
}

func assertAllocs(t *testing.T, label string, got, want []int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: len(got)=%d, want %d (got %v)", label, len(got), len(want), got)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("%s: got %v, want %v", label, got, want)
			return
		}
	}
}

// --- Fill constraints ---

func TestSingleFillFillsEntireArea(t *testing.T) {
	rects := NewLayout(Horizontal, Fill{}).Split(area(100, 50))
	assertRectsEqual(t, "single fill", rects, []Rect{
		{X: 0, Y: 0, Width: 100, Height: 50},
	})
}

func TestTwoFillsEqualSplit(t *testing.T) {
	rects := NewLayout(Horizontal, Fill{}, Fill{}).Split(area(100, 50))
	assertRectsEqual(t, "two fills", rects, []Rect{
		{X: 0, Y: 0, Width: 50, Height: 50},
		{X: 50, Y: 0, Width: 50, Height: 50},
	})
}

func TestFillRemainderGoesToEarliest(t *testing.T) {
	got := Allocate(11, []Constraint{Fill{}, Fill{}, Fill{}})
	assertAllocs(t, "fill 11/3", got, []int{4, 4, 3})
}

// --- Length constraints ---

func TestLengthPlusFill(t *testing.T) {
	rects := NewLayout(Vertical, Length{3}, Fill{}).Split(area(80, 20))
	assertRectsEqual(t, "length+fill", rects, []Rect{
		{X: 0, Y: 0, Width: 80, Height: 3},
		{X: 0, Y: 3, Width: 80, Height: 17},
	})
}

func TestMultipleLengthsLeaveSurplus(t *testing.T) {
	rects := NewLayout(Horizontal, Length{20}, Length{30}).Split(area(100, 50))
	assertRectsEqual(t, "two lengths", rects, []Rect{
		{X: 0, Y: 0, Width: 20, Height: 50},
		{X: 20, Y: 0, Width: 30, Height: 50},
	})
}

func TestOversubscribedLengthsShrinkProportionally(t *testing.T) {
	got := Allocate(100, []Constraint{Length{80}, Length{80}})
	assertAllocs(t, "80+80 in 100", got, []int{50, 50})

	got = Allocate(10, []Constraint{Length{6}, Length{3}, Length{3}})
	if sum(got) != 10 {
		t.Errorf("sum = %d, want 10 (%v)", sum(got), got)
	}
}

func TestNegativeLengthClampedToZero(t *testing.T) {
	got := Allocate(40, []Constraint{Length{-5}, Fill{}})
	assertAllocs(t, "negative length", got, []int{0, 40})
}

// --- Percentage constraints ---

func TestPercentageFillPercentage(t *testing.T) {
	got := Allocate(100, []Constraint{Percentage{25}, Fill{}, Percentage{25}})
	assertAllocs(t, "25/fill/25", got, []int{25, 50, 25})
}

func TestPercentageOfRemainingAfterLength(t *testing.T) {
	// 20 cells reserved, 50% of the 80 left.
	got := Allocate(100, []Constraint{Length{20}, Percentage{50}, Fill{}})
	assertAllocs(t, "length then pct", got, []int{20, 40, 40})
}

func TestOversubscribedPercentagesScaleToFullSpace(t *testing.T) {
	tests := []struct {
		name  string
		total int
		want  []int
	}{
		{"even", 100, []int{50, 50}},
		{"odd", 41, []int{20, 21}},
		{"tiny", 1, []int{0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Allocate(tt.total, []Constraint{Percentage{70}, Percentage{70}})
			assertAllocs(t, tt.name, got, tt.want)
			if sum(got) != tt.total {
				t.Errorf("sum = %d, want %d", sum(got), tt.total)
			}
		})
	}
}

func TestOversubscribedPercentagesRemainderToFill(t *testing.T) {
	got := Allocate(41, []Constraint{Percentage{70}, Fill{}, Percentage{70}})
	assertAllocs(t, "pct drift to fill", got, []int{20, 1, 20})
}

func TestPercentageClampedTo100(t *testing.T) {
	got := Allocate(100, []Constraint{Percentage{150}})
	assertAllocs(t, "150%", got, []int{100})
}

func TestPercentageNegativeClamped(t *testing.T) {
	got := Allocate(100, []Constraint{Percentage{-10}})
	assertAllocs(t, "-10%", got, []int{0})
}

func TestPercentageWithOddWidth(t *testing.T) {
	got := Allocate(101, []Constraint{Percentage{50}, Percentage{50}})
	if sum(got) > 101 {
		t.Errorf("percentages exceed available width: %v", got)
	}
}

// --- Zero and edge cases ---

func TestZeroSizeArea(t *testing.T) {
	rects := NewLayout(Horizontal, Length{10}, Fill{}).Split(area(0, 0))
	for i, r := range rects {
		if r.Width != 0 || r.Height != 0 {
			t.Errorf("rect[%d] should be zero-size, got %v", i, r)
		}
	}
}

func TestNoConstraints(t *testing.T) {
	if rects := NewLayout(Horizontal).Split(area(100, 50)); rects != nil {
		t.Errorf("expected nil for no constraints, got %v", rects)
	}
	if got := Allocate(100, nil); len(got) != 0 {
		t.Errorf("Allocate(nil) = %v, want empty", got)
	}
}

func TestNegativeTotal(t *testing.T) {
	got := Allocate(-5, []Constraint{Length{3}, Fill{}})
	assertAllocs(t, "negative total", got, []int{0, 0})
}

func TestAllocationNeverExceedsTotal(t *testing.T) {
	cases := [][]Constraint{
		{Length{30}, Percentage{80}, Fill{}, Percentage{60}},
		{Length{200}, Fill{}},
		{Percentage{100}, Percentage{100}, Percentage{100}},
		{Length{1}, Length{1}, Length{1}, Fill{}, Fill{}},
	}
	for _, total := range []int{0, 1, 7, 33, 100, 257} {
		for i, cs := range cases {
			got := Allocate(total, cs)
			if s := sum(got); s > total || s < 0 {
				t.Errorf("case %d total %d: sum %d out of range (%v)", i, total, s, got)
			}
			for j, a := range got {
				if a < 0 {
					t.Errorf("case %d total %d: alloc[%d] = %d negative", i, total, j, a)
				}
			}
		}
	}
}

// --- Non-overlapping guarantee ---

func TestNoOverlap(t *testing.T) {
	rects := NewLayout(Horizontal, Fill{}, Length{20}, Percentage{30}, Fill{}).Split(area(200, 100))
	for i := 0; i < len(rects); i++ {
		for j := i + 1; j < len(rects); j++ {
			if rects[i].Overlaps(rects[j]) {
				t.Errorf("rects[%d] and rects[%d] overlap: %v, %v", i, j, rects[i], rects[j])
			}
		}
	}
}

func TestNoOverlapVertical(t *testing.T) {
	rects := NewLayout(Vertical, Fill{}, Length{5}, Percentage{20}, Fill{}).Split(area(80, 100))
	for i := 0; i < len(rects); i++ {
		for j := i + 1; j < len(rects); j++ {
			if rects[i].Overlaps(rects[j]) {
				t.Errorf("rects[%d] and rects[%d] overlap: %v, %v", i, j, rects[i], rects[j])
			}
		}
	}
}

// --- Rect methods ---

func TestRectArea(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 10, Height: 5}
	if r.Area() != 50 {
		t.Errorf("Area: got %d, want 50", r.Area())
	}
}

func TestRectEmpty(t *testing.T) {
	if !(Rect{Width: 0, Height: 5}).Empty() {
		t.Error("zero width should be empty")
	}
	if !(Rect{Width: 5, Height: 0}).Empty() {
		t.Error("zero height should be empty")
	}
	if (Rect{Width: 5, Height: 5}).Empty() {
		t.Error("5x5 should not be empty")
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 30, Height: 40}
	tests := []struct {
		x, y int
		want bool
	}{
		{10, 20, true},  // top-left corner (inclusive)
		{39, 59, true},  // bottom-right (inclusive, last cell)
		{40, 60, false}, // right/bottom edge (exclusive)
		{9, 20, false},  // left of rect
		{25, 15, false}, // above rect
	}
	for _, tt := range tests {
		got := r.Contains(tt.x, tt.y)
		if got != tt.want {
			t.Errorf("Contains(%d,%d): got %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestRectIntersect(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	b := Rect{X: 5, Y: 5, Width: 10, Height: 10}
	want := Rect{X: 5, Y: 5, Width: 5, Height: 5}
	if inter := a.Intersect(b); inter != want {
		t.Errorf("Intersect: got %v, want %v", inter, want)
	}
	c := Rect{X: 10, Y: 10, Width: 5, Height: 5}
	if a.Overlaps(c) {
		t.Errorf("edge-adjacent rects should not overlap: %v, %v", a, c)
	}
}

func TestRectInner(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 100, Height: 50}
	want := Rect{X: 15, Y: 15, Width: 90, Height: 40}
	if inner := r.Inner(5); inner != want {
		t.Errorf("Inner(5): got %v, want %v", inner, want)
	}
	if inner := r.Inner(-3); inner != r {
		t.Errorf("Inner(-3) should equal original, got %v", inner)
	}
	if inner := (Rect{Width: 10, Height: 10}).Inner(20); !inner.Empty() {
		t.Errorf("Inner(20) on 10x10 should be empty, got %v", inner)
	}
}

// --- Helpers ---

func TestSplitHelpers(t *testing.T) {
	rows := SplitVertical(area(80, 24), Length{1}, Fill{}, Length{1})
	assertRectsEqual(t, "vertical", rows, []Rect{
		{X: 0, Y: 0, Width: 80, Height: 1},
		{X: 0, Y: 1, Width: 80, Height: 22},
		{X: 0, Y: 23, Width: 80, Height: 1},
	})

	cols := SplitHorizontal(Rect{X: 10, Y: 20, Width: 100, Height: 50}, Fill{}, Fill{})
	if cols[1].X != 60 || cols[1].Y != 20 {
		t.Errorf("offset area: second rect = %v, want X=60 Y=20", cols[1])
	}
}

func TestPlaceWithOffset(t *testing.T) {
	rects := Place(Vertical, area(10, 10), []int{2, 3}, 5)
	assertRectsEqual(t, "place", rects, []Rect{
		{X: 0, Y: 5, Width: 10, Height: 2},
		{X: 0, Y: 7, Width: 10, Height: 3},
	})
}

// --- Real-world: player layout ---

func TestPlayerColumns(t *testing.T) {
	// sidebar | playlist | now playing
	cols := SplitHorizontal(area(120, 40), Percentage{25}, Fill{}, Percentage{30})
	if cols[0].Width != 30 {
		t.Errorf("sidebar: got %d, want 30", cols[0].Width)
	}
	if cols[2].Width != 36 {
		t.Errorf("now playing: got %d, want 36", cols[2].Width)
	}
	if cols[1].Width != 54 {
		t.Errorf("playlist: got %d, want 54", cols[1].Width)
	}
}

func TestManyFills(t *testing.T) {
	n := 10
	cs := make([]Constraint, n)
	for i := range cs {
		cs[i] = Fill{}
	}
	rects := NewLayout(Horizontal, cs...).Split(area(100, 50))
	if len(rects) != n {
		t.Fatalf("expected %d rects, got %d", n, len(rects))
	}
	total := 0
	for _, r := range rects {
		total += r.Width
	}
	if total != 100 {
		t.Errorf("total width should be 100, got %d", total)
	}
}
