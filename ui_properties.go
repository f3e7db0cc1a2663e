package scrawl

/* PropertyValue represents an editable field in the properties panel. When
a selection is heterogeneous for that field, Mixed is true and Value holds
a starting point to cycle from (spec.md §4.6). */
type PropertyValue[T any] struct {
	Value  T
	Mixed  bool
	Locked bool /* true when every selected shape disallows editing this row */
	Apply  bool /* false when the row does not apply to the current selection at all */
}

/* PropertiesPanelState mirrors spec.md §4.6: immutable facts plus editable
rows, recomputed whenever Selection changes. */
type PropertiesPanelState struct {
	Visible bool

	IDs       []uint64
	Layer     PropertyValue[int]
	Bounds    Rect
	Locked    PropertyValue[bool]
	CreatedAt PropertyValue[int64]

	Color       PropertyValue[Color]
	Thickness   PropertyValue[float64]
	Fill        PropertyValue[*Color]
	FontSize    PropertyValue[float64]
	ArrowHead   PropertyValue[bool]
	HeadLength  PropertyValue[float64]
	HeadAngle   PropertyValue[float64]
	TextBG      PropertyValue[*Color]
}

/* BuildPropertiesPanel inspects every selected shape and fills out rows
that apply; rows that don't apply to any selected shape are left with
Apply=false so the renderer omits them. */
func BuildPropertiesPanel(frame *Frame, sel Selection) PropertiesPanelState {
	state := PropertiesPanelState{Visible: !sel.IsEmpty(), IDs: sel.IDs()}
	if sel.IsEmpty() {
		return state
	}

	var shapes []DrawnShape
	for _, id := range sel.IDs() {
		if ds, ok := frame.Get(id); ok {
			shapes = append(shapes, ds)
		}
	}
	if len(shapes) == 0 {
		return state
	}

	bounds := shapes[0].Shape.Bounds()
	allLocked := true
	for _, s := range shapes[1:] {
		bounds = bounds.Union(s.Shape.Bounds())
	}
	for _, s := range shapes {
		if !s.Locked {
			allLocked = false
		}
	}
	state.Bounds = bounds
	state.Locked = PropertyValue[bool]{Value: shapes[0].Locked, Mixed: mixedBool(shapes, func(d DrawnShape) bool { return d.Locked }), Apply: true}
	state.CreatedAt = PropertyValue[int64]{Value: shapes[0].CreatedAt, Mixed: mixedI64(shapes, func(d DrawnShape) int64 { return d.CreatedAt }), Apply: true}

	state.Color = collectColor(shapes, allLocked)
	state.Thickness = collectThickness(shapes, allLocked)
	state.FontSize = collectFontSize(shapes, allLocked)
	return state
}

func mixedBool(shapes []DrawnShape, get func(DrawnShape) bool) bool {
	if len(shapes) == 0 {
		return false
	}
	first := get(shapes[0])
	for _, s := range shapes[1:] {
		if get(s) != first {
			return true
		}
	}
	return false
}

func mixedI64(shapes []DrawnShape, get func(DrawnShape) int64) bool {
	if len(shapes) == 0 {
		return false
	}
	first := get(shapes[0])
	for _, s := range shapes[1:] {
		if get(s) != first {
			return true
		}
	}
	return false
}

func shapeColor(s Shape) (Color, bool) {
	switch v := s.(type) {
	case Freehand:
		return v.Color, true
	case Line:
		return v.Color, true
	case Rectangle:
		return v.Color, true
	case EllipseShape:
		return v.Color, true
	case Arrow:
		return v.Color, true
	case MarkerStroke:
		return v.Color, true
	case Text:
		return v.Color, true
	}
	return Color{}, false
}

func collectColor(shapes []DrawnShape, allLocked bool) PropertyValue[Color] {
	var vals []Color
	for _, s := range shapes {
		if c, ok := shapeColor(s.Shape); ok {
			vals = append(vals, c)
		}
	}
	if len(vals) == 0 {
		return PropertyValue[Color]{Apply: false}
	}
	mixed := false
	for _, v := range vals[1:] {
		if v != vals[0] {
			mixed = true
		}
	}
	return PropertyValue[Color]{Value: vals[0], Mixed: mixed, Locked: allLocked, Apply: true}
}

func shapeThickness(s Shape) (float64, bool) {
	switch v := s.(type) {
	case Freehand:
		return v.Thickness, true
	case Line:
		return v.Thickness, true
	case Rectangle:
		return v.Thickness, true
	case EllipseShape:
		return v.Thickness, true
	case Arrow:
		return v.Thickness, true
	case MarkerStroke:
		return v.Thickness, true
	}
	return 0, false
}

func collectThickness(shapes []DrawnShape, allLocked bool) PropertyValue[float64] {
	var vals []float64
	for _, s := range shapes {
		if t, ok := shapeThickness(s.Shape); ok {
			vals = append(vals, t)
		}
	}
	if len(vals) == 0 {
		return PropertyValue[float64]{Apply: false}
	}
	mixed := false
	for _, v := range vals[1:] {
		if v != vals[0] {
			mixed = true
		}
	}
	return PropertyValue[float64]{Value: vals[0], Mixed: mixed, Locked: allLocked, Apply: true}
}

func collectFontSize(shapes []DrawnShape, allLocked bool) PropertyValue[float64] {
	var vals []float64
	for _, s := range shapes {
		switch v := s.Shape.(type) {
		case Text:
			vals = append(vals, v.FontSize)
		case StickyNote:
			vals = append(vals, v.FontSize)
		}
	}
	if len(vals) == 0 {
		return PropertyValue[float64]{Apply: false}
	}
	mixed := false
	for _, v := range vals[1:] {
		if v != vals[0] {
			mixed = true
		}
	}
	return PropertyValue[float64]{Value: vals[0], Mixed: mixed, Locked: allLocked, Apply: true}
}
