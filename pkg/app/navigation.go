package app

// CycleFocusForward moves focus to the next region, wrapping around to the
// first after the last.
func (m *Model) CycleFocusForward() {
	order := m.regions.Names()
	if len(order) == 0 {
		return
	}
	idx := m.focusedIndex(order)
	m.focused = order[(idx+1)%len(order)]
}

// CycleFocusBackward moves focus to the previous region, wrapping around to
// the last before the first.
func (m *Model) CycleFocusBackward() {
	order := m.regions.Names()
	if len(order) == 0 {
		return
	}
	idx := m.focusedIndex(order)
	if idx < 0 {
		idx = 0
	}
	m.focused = order[(idx-1+len(order))%len(order)]
}

// FocusWidget sets focus to the named widget. Widgets without a region
// (hidden or collapsed) cannot take focus.
func (m *Model) FocusWidget(name string) {
	if _, ok := m.regions.Get(name); ok {
		m.focused = name
	}
}

// keepFocus re-homes focus after the regions change.
func (m *Model) keepFocus() {
	if _, ok := m.regions.Get(m.focused); ok {
		return
	}
	m.focused = ""
	if names := m.regions.Names(); len(names) > 0 {
		m.focused = names[0]
	}
}

// focusedIndex returns the index of the focused widget in order, or -1 when
// nothing is focused so that forward cycling starts at the first entry.
func (m *Model) focusedIndex(order []string) int {
	for i, name := range order {
		if name == m.focused {
			return i
		}
	}
	return -1
}
