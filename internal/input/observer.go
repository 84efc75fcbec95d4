package input

import (
	"github.com/j0lol/hxzed/internal/dispatcher"
)

// ModalObserver keeps the modal layer in step with keystrokes the layer
// did not bind itself.
type ModalObserver struct {
	d *dispatcher.Dispatcher
}

// NewModalObserver creates an observer bound to d.
func NewModalObserver(d *dispatcher.Dispatcher) *ModalObserver {
	return &ModalObserver{d: d}
}

// ObserveKeystroke applies these rules in order:
//   - a disabled layer never claims a keystroke;
//   - actions of the layer's own namespace are claimed;
//   - any other action drops the pending count;
//   - keystrokes of an unfinished binding are left alone;
//   - an unbound keystroke drops the pending count and is claimed while
//     the surface is modally controlled, so Normal mode does not insert
//     text.
func (o *ModalObserver) ObserveKeystroke(ev *KeystrokeEvent) Verdict {
	if !o.d.Enabled() {
		return FallThrough
	}
	return dispatcher.Update(o.d, func(d *dispatcher.Dispatcher) Verdict {
		if ev.Action != nil {
			if ev.Action.InNamespace(dispatcher.ContextLayerKey) {
				return Handled
			}
			d.ClearCount()
			return FallThrough
		}
		if ev.Pending {
			return FallThrough
		}
		d.ClearCount()
		if d.State().ModallyControlled() {
			return Handled
		}
		return FallThrough
	})
}
