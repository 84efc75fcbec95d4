package keymap

import (
	"fmt"

	"github.com/j0lol/hxzed/internal/dispatcher/handler"
	"github.com/j0lol/hxzed/internal/input/key"
)

// Binding represents a single key-to-action mapping.
type Binding struct {
	// Keys is the key sequence that triggers this binding.
	// Formats: "j", "g g", "ctrl-s", "alt-C".
	Keys string

	// Action is the action name, e.g. "hx::Down".
	Action string

	// Arg is an optional fixed argument passed with the action.
	Arg string

	// Context is the predicate that must hold for the binding to apply.
	Context string
}

// NewBinding creates a new binding with the given keys and action.
func NewBinding(keys, action string) Binding {
	return Binding{Keys: keys, Action: action}
}

// WithArg sets the action argument.
func (b Binding) WithArg(arg string) Binding {
	b.Arg = arg
	return b
}

// WithContext sets the context predicate.
func (b Binding) WithContext(ctx string) Binding {
	b.Context = ctx
	return b
}

// ToAction returns the action this binding dispatches.
func (b Binding) ToAction() handler.Action {
	return handler.Action{Name: b.Action, Arg: b.Arg}
}

// parsedBinding is a binding with its sequence and predicate resolved.
type parsedBinding struct {
	Binding
	seq  key.Sequence
	pred Predicate
}

func parseBinding(b Binding) (parsedBinding, error) {
	if b.Action == "" {
		return parsedBinding{}, fmt.Errorf("binding %q: empty action", b.Keys)
	}
	seq, err := key.ParseSequence(b.Keys)
	if err != nil {
		return parsedBinding{}, fmt.Errorf("binding %q: %w", b.Keys, err)
	}
	pred, err := ParsePredicate(b.Context)
	if err != nil {
		return parsedBinding{}, fmt.Errorf("binding %q: %w", b.Keys, err)
	}
	return parsedBinding{Binding: b, seq: seq, pred: pred}, nil
}
