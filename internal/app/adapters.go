package app

import (
	"github.com/j0lol/hxzed/internal/config"
	"github.com/j0lol/hxzed/internal/dispatcher"
	"github.com/j0lol/hxzed/internal/dispatcher/handlers/file"
	"github.com/j0lol/hxzed/internal/host"
	"github.com/j0lol/hxzed/internal/input"
)

// documents exposes workspace editors to the file handler.
type documents struct {
	ws *host.Workspace
}

func (d documents) FocusedDocument() (file.Document, bool) {
	e := d.ws.Focused()
	if e == nil {
		return nil, false
	}
	return e, true
}

func (d documents) Documents() []file.Document {
	editors := d.ws.Editors()
	docs := make([]file.Document, len(editors))
	for i, e := range editors {
		docs[i] = e
	}
	return docs
}

// focusedTarget returns the input target for the focused editor.
func focusedTarget(ws *host.Workspace) input.TargetFunc {
	return func() (input.Target, bool) {
		e := ws.Focused()
		if e == nil {
			return nil, false
		}
		return e, true
	}
}

// settingsToggler persists the toggle and applies the new value to the
// dispatcher right away instead of waiting for the file watcher.
type settingsToggler struct {
	settings *config.Settings
	d        *dispatcher.Dispatcher
}

func (t settingsToggler) ToggleHelixMode() (bool, error) {
	enabled, err := t.settings.ToggleHelixMode()
	if err != nil {
		return t.d.Enabled(), err
	}
	dispatcher.Update(t.d, func(d *dispatcher.Dispatcher) struct{} {
		d.SetEnabled(enabled)
		return struct{}{}
	})
	return enabled, nil
}
