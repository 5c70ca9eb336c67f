package layout

// SplitVertical is a convenience function that splits area top-to-bottom
// according to the given constraints.
func SplitVertical(area Rect, constraints ...Constraint) []Rect {
	return NewLayout(Vertical, constraints...).Split(area)
}

// SplitHorizontal is a convenience function that splits area left-to-right
// according to the given constraints.
func SplitHorizontal(area Rect, constraints ...Constraint) []Rect {
	return NewLayout(Horizontal, constraints...).Split(area)
}
