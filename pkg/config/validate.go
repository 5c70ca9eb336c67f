package config

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"

	"gitlab.com/tinyland/lab/turtle-layout/pkg/keys"
	"gitlab.com/tinyland/lab/turtle-layout/pkg/theme"
)

// build validates raw and converts it into a Descriptor. Every problem is
// collected so one reload reports all of them at once.
func build(raw *rawLayout) (*Descriptor, *ValidationErrors) {
	verrs := &ValidationErrors{}

	if strings.TrimSpace(raw.Version) == "" {
		verrs.add(&ValidationError{Field: "version", Message: "is required", Code: ErrCodeRequiredMissing})
	}
	if strings.TrimSpace(raw.Name) == "" {
		verrs.add(&ValidationError{Field: "name", Message: "is required", Code: ErrCodeRequiredMissing})
	}

	widgets := buildWidgets(raw.Widgets, verrs)
	settings := buildSettings(raw.Settings, verrs)

	for _, k := range slices.Sorted(maps.Keys(raw.Keybindings)) {
		a := raw.Keybindings[k]
		if strings.TrimSpace(k) == "" {
			verrs.add(&ValidationError{Field: "keybindings", Message: "key must not be empty", Value: a, Code: ErrCodeRequiredMissing})
		}
		if strings.TrimSpace(a) == "" {
			verrs.add(&ValidationError{Field: "keybindings." + k, Message: "action must not be empty", Code: ErrCodeRequiredMissing})
		}
	}

	if len(verrs.Errors) > 0 {
		return nil, verrs
	}

	return &Descriptor{
		version:     strings.TrimSpace(raw.Version),
		name:        strings.TrimSpace(raw.Name),
		description: raw.Description,
		theme:       theme.Source{Name: raw.Theme.Name, Colors: raw.Theme.Colors}.Clone(),
		widgets:     widgets,
		keymap:      keys.Merge(keys.Defaults(), raw.Keybindings),
		settings:    settings,
	}, nil
}

func buildWidgets(raws []rawWidget, verrs *ValidationErrors) []WidgetSpec {
	widgets := make([]WidgetSpec, 0, len(raws))
	seen := make(map[string]int, len(raws))

	for i, rw := range raws {
		label := strings.TrimSpace(rw.Name)
		if label == "" {
			label = fmt.Sprintf("widgets[%d]", i)
			verrs.add(&ValidationError{Widget: label, Field: "name", Message: "is required", Code: ErrCodeRequiredMissing})
		} else if first, dup := seen[label]; dup {
			verrs.add(&ValidationError{
				Widget:  label,
				Field:   "name",
				Message: fmt.Sprintf("duplicate widget name (first declared at widgets[%d])", first),
				Code:    ErrCodeDuplicate,
			})
		} else {
			seen[label] = i
		}

		typ := strings.ToLower(strings.TrimSpace(rw.Type))
		if !validWidgetType(typ) {
			verrs.add(&ValidationError{Widget: label, Field: "type", Message: "unknown widget type", Value: rw.Type, Code: ErrCodeInvalidEnum})
		}
		pos := strings.ToLower(strings.TrimSpace(rw.Position))
		if !validPosition(pos) {
			verrs.add(&ValidationError{Widget: label, Field: "position", Message: "must be one of top, bottom, left, right, center", Value: rw.Position, Code: ErrCodeInvalidEnum})
		}
		size, ok := parseSize(label, rw.Size, verrs)
		if !ok {
			size = Fill()
		}

		w := WidgetSpec{
			Name:     label,
			Type:     WidgetType(typ),
			Position: Position(pos),
			Size:     size,
			Visible:  true,
			Border:   true,
			Title:    rw.Title,
		}
		if rw.Visible != nil {
			w.Visible = *rw.Visible
		}
		if rw.Border != nil {
			w.Border = *rw.Border
		}
		widgets = append(widgets, w)
	}
	return widgets
}

// parseSize accepts "fill", {percentage = N} or {length = N}.
func parseSize(widget string, v any, verrs *ValidationErrors) (Size, bool) {
	fail := func(field, msg string, val any, code ValidationErrorCode) (Size, bool) {
		verrs.add(&ValidationError{Widget: widget, Field: field, Message: msg, Value: val, Code: code})
		return Size{}, false
	}

	switch sv := v.(type) {
	case nil:
		return fail("size", "is required", nil, ErrCodeRequiredMissing)
	case string:
		if strings.EqualFold(strings.TrimSpace(sv), "fill") {
			return Fill(), true
		}
		return fail("size", `must be "fill", {percentage = N} or {length = N}`, sv, ErrCodeShape)
	case map[string]any:
		if len(sv) != 1 {
			return fail("size", "must have exactly one of percentage or length", sv, ErrCodeShape)
		}
		for k, raw := range sv {
			n, ok := toInt(raw)
			switch strings.ToLower(k) {
			case "percentage":
				if !ok {
					return fail("size.percentage", "must be an integer", raw, ErrCodeShape)
				}
				if n < 0 || n > 100 {
					return fail("size.percentage", "must be between 0 and 100", n, ErrCodeOutOfRange)
				}
				return Percentage(n), true
			case "length":
				if !ok {
					return fail("size.length", "must be an integer", raw, ErrCodeShape)
				}
				if n < 0 {
					return fail("size.length", "must not be negative", n, ErrCodeOutOfRange)
				}
				return Length(n), true
			case "fill":
				return Fill(), true
			default:
				return fail("size", "unknown size kind "+k, sv, ErrCodeShape)
			}
		}
	}
	return fail("size", "unrecognised size value", v, ErrCodeShape)
}

// toInt accepts the integer types TOML and YAML decode into.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		if n > math.MaxInt32 || n < math.MinInt32 {
			return 0, false
		}
		return int(n), true
	case uint64:
		if n > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	case float64:
		if n != math.Trunc(n) || n > math.MaxInt32 || n < math.MinInt32 {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}

func buildSettings(raw *rawSettings, verrs *ValidationErrors) Settings {
	s := DefaultSettings()
	if raw == nil {
		return s
	}
	if raw.AutoSave != nil {
		s.AutoSave = *raw.AutoSave
	}
	if raw.DebounceMS != nil {
		if *raw.DebounceMS < 0 || *raw.DebounceMS > math.MaxInt32 {
			verrs.add(&ValidationError{Field: "settings.debounce_ms", Message: "must be a non-negative number of milliseconds", Value: *raw.DebounceMS, Code: ErrCodeOutOfRange})
		} else {
			s.DebounceMS = int(*raw.DebounceMS)
		}
	}

	r := raw.Responsive
	if r == nil {
		return s
	}
	set := func(field string, src *int64, dst *int) {
		if src == nil {
			return
		}
		if *src <= 0 || *src > math.MaxInt32 {
			verrs.add(&ValidationError{Field: "settings.responsive." + field, Message: "must be a positive width", Value: *src, Code: ErrCodeOutOfRange})
			return
		}
		*dst = int(*src)
	}
	set("small_width", r.SmallWidth, &s.Responsive.SmallWidth)
	set("medium_width", r.MediumWidth, &s.Responsive.MediumWidth)
	set("large_width", r.LargeWidth, &s.Responsive.LargeWidth)
	if r.CollapseSides != nil {
		s.Responsive.CollapseSides = *r.CollapseSides
	}

	rs := s.Responsive
	if rs.SmallWidth >= rs.MediumWidth || rs.MediumWidth >= rs.LargeWidth {
		verrs.add(&ValidationError{
			Field:   "settings.responsive",
			Message: "breakpoints must be strictly ascending (small < medium < large)",
			Value:   fmt.Sprintf("%d/%d/%d", rs.SmallWidth, rs.MediumWidth, rs.LargeWidth),
			Code:    ErrCodeOrder,
		})
	}
	return s
}
