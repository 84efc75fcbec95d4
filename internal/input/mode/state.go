package mode

// Keymap context keys and identifiers installed by the modal layer.
const (
	// ContextKeyMode carries the mode name of the focused surface.
	ContextKeyMode = "editing_mode"

	// ContextModalControl marks a context whose default bindings are
	// intercepted by the modal layer.
	ContextModalControl = "HelixControl"
)

// EditorState is the modal state of one editing surface.
type EditorState struct {
	Mode Mode
}

// NewEditorState returns a state in the given mode.
func NewEditorState(m Mode) EditorState {
	return EditorState{Mode: m}
}

// CursorShape returns the cursor shape for the state's mode.
func (s EditorState) CursorShape() CursorShape {
	switch s.Mode {
	case Insert:
		return CursorBar
	default:
		return CursorBlock
	}
}

// ModallyControlled reports whether the layer intercepts host default
// key handling. Insert yields ordinary input to the host.
func (s EditorState) ModallyControlled() bool {
	switch s.Mode {
	case Insert:
		return false
	default:
		return true
	}
}

// KeymapContextLayer returns the context layer installed on the focused
// surface so the host's binding resolver can select mode bindings.
func (s EditorState) KeymapContextLayer() KeyContext {
	ctx := NewKeyContext()
	ctx.Set(ContextKeyMode, s.Mode.String())
	if s.ModallyControlled() {
		ctx.Add(ContextModalControl)
	}
	return ctx
}
