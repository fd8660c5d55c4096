package render

// UI is the primitive widget vocabulary a host toolkit exposes. It follows the
// immediate-mode model: every call draws one widget for the current frame and
// returns the user's input for it. Grouping calls (Horizontal, Vertical,
// Group, Scroll, Combo) are visual pass-throughs with no data contract; they
// run add synchronously with the nested UI.
type UI interface {
	// Label draws static text.
	Label(text string)
	// TextEdit draws a single-line text field and returns its content.
	TextEdit(text string) string
	// TextEditMultiline draws a multi-line text field and returns its content.
	TextEditMultiline(text string) string
	// Checkbox draws a checkbox and returns its state.
	Checkbox(checked bool, text string) bool
	// DragValue draws a numeric stepper bounded by [min, max].
	DragValue(value, min, max float64) float64
	// Button draws a button and reports whether it was clicked. Disabled
	// buttons never report clicks.
	Button(text string, enabled bool) bool
	// Selectable draws a selectable item and reports whether it was clicked.
	Selectable(selected bool, text string) bool
	// Separator draws a divider.
	Separator()

	Horizontal(add func(UI))
	Vertical(add func(UI))
	Group(add func(UI))
	Scroll(add func(UI))
	// Combo draws a drop-down showing selectedText; add draws its entries,
	// usually Selectable items.
	Combo(selectedText string, add func(UI))
}
