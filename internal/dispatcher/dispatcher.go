package dispatcher

import (
	"log/slog"
	"slices"

	"github.com/j0lol/hxzed/internal/input/mode"
)

// ModeChangeFunc is called after a surface changed mode and has been
// re-synchronized.
type ModeChangeFunc func(id SurfaceID, from, to mode.Mode)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithEnabled sets the initial enabled flag. Defaults to false.
func WithEnabled(enabled bool) Option {
	return func(d *Dispatcher) {
		d.enabled = enabled
	}
}

// WithDefaultMode sets the mode given to surfaces seen for the first time.
func WithDefaultMode(m mode.Mode) Option {
	return func(d *Dispatcher) {
		d.defaultState = mode.NewEditorState(m)
	}
}

type modeChange struct {
	id       SurfaceID
	from, to mode.Mode
}

type modeObserver struct {
	id uint64
	fn ModeChangeFunc
}

// Dispatcher tracks modal state per surface and synchronizes surfaces.
type Dispatcher struct {
	host   Host
	logger *slog.Logger

	enabled      bool
	active       SurfaceID
	hasActive    bool
	states       map[SurfaceID]mode.EditorState
	defaultState mode.EditorState
	count        countState

	// Update nesting depth and mode changes awaiting notification
	depth   int
	pending []modeChange

	observers    []modeObserver
	nextObserver uint64
}

// New creates a dispatcher resolving surfaces through host.
func New(host Host, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		host:   host,
		logger: slog.Default(),
		states: make(map[SurfaceID]mode.EditorState),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = d.logger.With("component", "dispatcher")
	return d
}

// Enabled reports whether the modal layer is on.
func (d *Dispatcher) Enabled() bool {
	return d.enabled
}

// Active returns the active surface, if one is recorded. The surface may
// have been closed since; use State for a liveness-checked read.
func (d *Dispatcher) Active() (SurfaceID, bool) {
	return d.active, d.hasActive
}

// activeLive returns the active surface if the host still resolves it.
func (d *Dispatcher) activeLive() (SurfaceID, bool) {
	if !d.hasActive {
		return "", false
	}
	if _, ok := d.host.Surface(d.active); !ok {
		return "", false
	}
	return d.active, true
}

// State returns the state of the active surface. When there is no active
// surface, it has no entry, or it has been closed, the default state is
// returned.
func (d *Dispatcher) State() mode.EditorState {
	if id, ok := d.activeLive(); ok {
		if st, ok := d.states[id]; ok {
			return st
		}
	}
	return d.defaultState
}

// StateFor returns the state recorded for id, or the default state.
func (d *Dispatcher) StateFor(id SurfaceID) mode.EditorState {
	if st, ok := d.states[id]; ok {
		return st
	}
	return d.defaultState
}

// Tracked returns the ids of every surface with recorded state.
func (d *Dispatcher) Tracked() []SurfaceID {
	ids := make([]SurfaceID, 0, len(d.states))
	for id := range d.states {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Update runs fn as a mutation of d. Calls may nest; the active surface
// is re-synchronized and mode-change callbacks run when the outermost
// call returns.
func Update[R any](d *Dispatcher, fn func(*Dispatcher) R) R {
	d.depth++
	defer func() {
		d.depth--
		if d.depth == 0 {
			d.flush()
		}
	}()
	return fn(d)
}

func (d *Dispatcher) mutate(fn func()) {
	Update(d, func(*Dispatcher) struct{} {
		fn()
		return struct{}{}
	})
}

func (d *Dispatcher) flush() {
	if id, ok := d.activeLive(); ok {
		d.Synchronize(id)
	}
	changes := d.pending
	d.pending = nil
	for _, c := range changes {
		for _, o := range slices.Clone(d.observers) {
			o.fn(c.id, c.from, c.to)
		}
	}
}

// SetMode switches the active surface to m.
func (d *Dispatcher) SetMode(m mode.Mode) error {
	if !d.enabled {
		return ErrDisabled
	}
	id, ok := d.activeLive()
	if !ok {
		return ErrNoActiveSurface
	}
	d.mutate(func() {
		st := d.StateFor(id)
		from := st.Mode
		st.Mode = m
		d.states[id] = st
		if from != m {
			d.logger.Debug("mode changed", "surface", id, "from", from, "to", m)
			d.pending = append(d.pending, modeChange{id: id, from: from, to: m})
		}
	})
	return nil
}

// SetEnabled turns the modal layer on or off. Turning it on activates
// the host's focused surface. Turning it off removes the context layer
// from every live tracked surface, restores their cursor and forgets the
// active surface.
func (d *Dispatcher) SetEnabled(enabled bool) {
	if d.enabled == enabled {
		return
	}
	d.mutate(func() {
		d.enabled = enabled
		d.logger.Info("modal layer toggled", "enabled", enabled)
		if enabled {
			if id, ok := d.host.FocusedSurface(); ok {
				d.Activate(id)
			}
			return
		}
		d.count.reset()
		for _, id := range d.Tracked() {
			d.Synchronize(id)
		}
		d.active, d.hasActive = "", false
	})
}

// Activate makes id the active surface. The previously active surface is
// synchronized first so it drops its context layer once unfocused.
func (d *Dispatcher) Activate(id SurfaceID) {
	d.mutate(func() {
		prev, hadPrev := d.active, d.hasActive
		d.active, d.hasActive = id, true
		if _, ok := d.states[id]; !ok {
			d.states[id] = d.defaultState
		}
		if hadPrev && prev != id {
			d.Synchronize(prev)
		}
		d.logger.Debug("surface activated", "surface", id)
	})
}

// HandleFocused reacts to a surface gaining focus.
func (d *Dispatcher) HandleFocused(id SurfaceID) {
	if !d.enabled {
		return
	}
	d.Activate(id)
}

// HandleClosed forgets a closed surface.
func (d *Dispatcher) HandleClosed(id SurfaceID) {
	delete(d.states, id)
	if d.hasActive && d.active == id {
		d.active, d.hasActive = "", false
		d.count.reset()
	}
	d.logger.Debug("surface closed", "surface", id)
}

// UpdateActiveSurface runs fn against the live active surface. Returns
// false when there is none.
func (d *Dispatcher) UpdateActiveSurface(fn func(s Surface)) bool {
	if !d.hasActive {
		return false
	}
	s, ok := d.host.Surface(d.active)
	if !ok {
		return false
	}
	fn(s)
	return true
}

// OnModeChange registers a callback for mode changes. Returns a function
// that unregisters it.
func (d *Dispatcher) OnModeChange(fn ModeChangeFunc) func() {
	d.nextObserver++
	id := d.nextObserver
	d.observers = append(d.observers, modeObserver{id: id, fn: fn})
	return func() {
		d.observers = slices.DeleteFunc(d.observers, func(o modeObserver) bool {
			return o.id == id
		})
	}
}
