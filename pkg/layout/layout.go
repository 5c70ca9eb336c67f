// Package layout provides the one-dimensional constraint solver that turns
// size policies into cell allocations, plus the Rect type used for screen
// geometry throughout the engine.
//
// Constraint types:
//   - Length(n): fixed size in cells
//   - Percentage(p): percentage of the space left after Length (0-100)
//   - Fill: an even share of whatever remains
//
// The solver runs in three passes:
//  1. Reserve Length cells, shrinking them proportionally when they
//     oversubscribe the axis
//  2. Allocate Percentage against the space remaining after pass 1,
//     scaling the whole group down when it sums past 100
//  3. Split the leftover evenly across Fill items
//
// Allocations never go negative and never sum past the axis size.
package layout

// Rect represents a rectangular area in terminal cells.
type Rect struct {
	X, Y, Width, Height int
}

// Area returns the number of cells in this rectangle.
func (r Rect) Area() int {
	return r.Width * r.Height
}

// Empty returns true if this rectangle has zero area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Right returns the X coordinate of the right edge (exclusive).
func (r Rect) Right() int {
	return r.X + r.Width
}

// Bottom returns the Y coordinate of the bottom edge (exclusive).
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// Inner returns a new Rect shrunk by margin on all sides.
// If the margin would cause negative dimensions, a zero-size rect is returned.
func (r Rect) Inner(margin int) Rect {
	if margin < 0 {
		margin = 0
	}
	w := r.Width - 2*margin
	h := r.Height - 2*margin
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Rect{X: r.X + margin, Y: r.Y + margin, Width: w, Height: h}
}

// Contains returns true if the point (px, py) lies within this rectangle.
func (r Rect) Contains(px, py int) bool {
	return px >= r.X && px < r.Right() && py >= r.Y && py < r.Bottom()
}

// Intersect returns the overlapping region of two rectangles.
// If there is no overlap, returns a zero-size Rect.
func (r Rect) Intersect(other Rect) Rect {
	x1 := max(r.X, other.X)
	y1 := max(r.Y, other.Y)
	x2 := min(r.Right(), other.Right())
	y2 := min(r.Bottom(), other.Bottom())
	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Overlaps reports whether two non-empty rectangles share at least one cell.
func (r Rect) Overlaps(other Rect) bool {
	return !r.Intersect(other).Empty()
}

// Direction controls the axis along which a Layout splits space.
type Direction int

const (
	// Horizontal splits left-to-right (constraints control width).
	Horizontal Direction = iota
	// Vertical splits top-to-bottom (constraints control height).
	Vertical
)

func (d Direction) String() string {
	if d == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Constraint is the interface satisfied by all layout constraint types.
// The marker method prevents external implementations.
type Constraint interface {
	constraint() // sealed marker
}

// Length allocates exactly Value cells, or a proportional share of the axis
// when all Length items together do not fit.
type Length struct{ Value int }

func (Length) constraint() {}

// Percentage allocates Value percent of the space left after Length items.
type Percentage struct{ Value int }

func (Percentage) constraint() {}

// Fill takes an even share of the space left after Length and Percentage.
type Fill struct{}

func (Fill) constraint() {}

// Allocate distributes total cells across constraints and returns one size
// per constraint. The result is deterministic for a given input.
func Allocate(total int, constraints []Constraint) []int {
	n := len(constraints)
	allocs := make([]int, n)
	if n == 0 || total <= 0 {
		return allocs
	}

	var lengths, percents, fills []int
	for i, c := range constraints {
		switch c.(type) {
		case Length:
			lengths = append(lengths, i)
		case Percentage:
			percents = append(percents, i)
		case Fill:
			fills = append(fills, i)
		}
	}

	// --- Pass 1: fixed lengths ---
	used := 0
	for _, i := range lengths {
		allocs[i] = clampNonNeg(constraints[i].(Length).Value)
		used += allocs[i]
	}
	if used > total {
		shrinkToFit(allocs, lengths, total)
		used = total
	}
	remaining := total - used

	// --- Pass 2: percentages of what is left ---
	pctSum := 0
	for _, i := range percents {
		pctSum += clampRange(constraints[i].(Percentage).Value, 0, 100)
	}
	if pctSum > 0 {
		denom := 100
		if pctSum > 100 {
			denom = pctSum
		}
		given := 0
		for _, i := range percents {
			p := clampRange(constraints[i].(Percentage).Value, 0, 100)
			allocs[i] = remaining * p / denom
			given += allocs[i]
		}
		// An oversubscribed group claims all remaining space. Rounding
		// drift goes to Fill when there is any, else to the last entry.
		if pctSum > 100 && len(fills) == 0 && len(percents) > 0 {
			last := percents[len(percents)-1]
			allocs[last] += remaining - given
			given = remaining
		}
		remaining -= given
	}

	// --- Pass 3: even fill ---
	if len(fills) > 0 && remaining > 0 {
		share := remaining / len(fills)
		extra := remaining % len(fills)
		for k, i := range fills {
			allocs[i] = share
			if k < extra {
				allocs[i]++
			}
		}
	}

	return allocs
}

// Layout splits a Rect into sub-regions according to constraints.
type Layout struct {
	direction   Direction
	constraints []Constraint
}

// NewLayout creates a Layout with the given direction and constraints.
func NewLayout(dir Direction, constraints ...Constraint) *Layout {
	return &Layout{
		direction:   dir,
		constraints: constraints,
	}
}

// Split divides area into len(constraints) non-overlapping Rects packed
// from the start of the axis. Unclaimed space is left at the end.
func (l *Layout) Split(area Rect) []Rect {
	n := len(l.constraints)
	if n == 0 {
		return nil
	}
	if area.Empty() {
		return makeEmptyRects(n, area)
	}
	allocs := Allocate(l.axisSize(area), l.constraints)
	return Place(l.direction, area, allocs, 0)
}

// Place turns 1-D allocations into Rects along dir, starting offset cells
// into area.
func Place(dir Direction, area Rect, allocs []int, offset int) []Rect {
	rects := make([]Rect, len(allocs))
	pos := offset
	for i, a := range allocs {
		switch dir {
		case Horizontal:
			rects[i] = Rect{X: area.X + pos, Y: area.Y, Width: a, Height: area.Height}
		case Vertical:
			rects[i] = Rect{X: area.X, Y: area.Y + pos, Width: area.Width, Height: a}
		}
		pos += a
	}
	return rects
}

// shrinkToFit proportionally reduces allocs[idx...] so they sum to target.
// Rounding remainder goes to the last index.
func shrinkToFit(allocs []int, idx []int, target int) {
	if target <= 0 {
		for _, i := range idx {
			allocs[i] = 0
		}
		return
	}

	total := 0
	for _, i := range idx {
		total += allocs[i]
	}
	if total <= target {
		return
	}

	newTotal := 0
	for _, i := range idx {
		allocs[i] = allocs[i] * target / total
		newTotal += allocs[i]
	}
	if len(idx) > 0 {
		allocs[idx[len(idx)-1]] += target - newTotal
	}
}

// axisSize returns the size of rect along the layout direction.
func (l *Layout) axisSize(r Rect) int {
	if l.direction == Horizontal {
		return r.Width
	}
	return r.Height
}

// makeEmptyRects returns n zero-size rects positioned at the area's origin.
func makeEmptyRects(n int, area Rect) []Rect {
	rects := make([]Rect, n)
	for i := range rects {
		rects[i] = Rect{X: area.X, Y: area.Y}
	}
	return rects
}

func clampNonNeg(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

func clampRange(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
