package keymap

import (
	"github.com/j0lol/hxzed/internal/dispatcher/handler"
	"github.com/j0lol/hxzed/internal/input/key"
	"github.com/j0lol/hxzed/internal/input/mode"
)

// Keymap holds an ordered list of bindings.
type Keymap struct {
	// Name is the keymap identifier.
	Name string

	bindings []parsedBinding
}

// New creates an empty keymap.
func New(name string) *Keymap {
	return &Keymap{Name: name}
}

// Add parses and appends a binding. Later bindings take precedence.
func (k *Keymap) Add(b Binding) error {
	pb, err := parseBinding(b)
	if err != nil {
		return err
	}
	k.bindings = append(k.bindings, pb)
	return nil
}

// AddAll appends bindings in order, stopping at the first invalid one.
func (k *Keymap) AddAll(bs []Binding) error {
	for _, b := range bs {
		if err := k.Add(b); err != nil {
			return err
		}
	}
	return nil
}

// Merge appends every binding of other, so other overrides k.
func (k *Keymap) Merge(other *Keymap) {
	k.bindings = append(k.bindings, other.bindings...)
}

// Len returns the number of bindings.
func (k *Keymap) Len() int {
	return len(k.bindings)
}

// Bindings returns the bindings in precedence order, lowest first.
func (k *Keymap) Bindings() []Binding {
	out := make([]Binding, len(k.bindings))
	for i, pb := range k.bindings {
		out[i] = pb.Binding
	}
	return out
}

// Lookup resolves seq in ctx. found reports an exact match, whose action
// is returned. pending reports that a longer binding starting with seq
// also applies in ctx.
func (k *Keymap) Lookup(seq key.Sequence, ctx mode.KeyContext) (action handler.Action, pending, found bool) {
	if len(seq) == 0 {
		return handler.Action{}, false, false
	}
	for i := len(k.bindings) - 1; i >= 0; i-- {
		pb := k.bindings[i]
		if !pb.seq.HasPrefix(seq) || !pb.pred.Eval(ctx) {
			continue
		}
		if len(pb.seq) == len(seq) {
			if !found {
				action, found = pb.ToAction(), true
			}
			continue
		}
		pending = true
	}
	return action, pending, found
}

// BindingsFor returns the bindings that apply in ctx for action, lowest
// precedence first.
func (k *Keymap) BindingsFor(action string, ctx mode.KeyContext) []Binding {
	var out []Binding
	for _, pb := range k.bindings {
		if pb.Action == action && pb.pred.Eval(ctx) {
			out = append(out, pb.Binding)
		}
	}
	return out
}
