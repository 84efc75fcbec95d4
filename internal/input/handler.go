package input

import (
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/j0lol/hxzed/internal/dispatcher/handler"
	"github.com/j0lol/hxzed/internal/input/key"
	"github.com/j0lol/hxzed/internal/input/keymap"
	"github.com/j0lol/hxzed/internal/input/mode"
)

// Config configures the input handler.
type Config struct {
	// SequenceTimeout is how long a partial multi-key sequence is kept.
	// Zero keeps it until the next keystroke decides it.
	// Default: 1000ms
	SequenceTimeout time.Duration
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{SequenceTimeout: 1000 * time.Millisecond}
}

// Target is the focused editing surface as seen by the input handler.
type Target interface {
	// KeyContext returns the context bindings are resolved in.
	KeyContext() mode.KeyContext

	InsertText(text string)
	Newline()
	Backspace()
}

// TargetFunc returns the focused target, if any.
type TargetFunc func() (Target, bool)

// Outcome reports what a keystroke did.
type Outcome struct {
	// Action is the dispatched action, nil if the keystroke was unbound.
	Action *handler.Action

	// Result is the action result. Zero when no action ran.
	Result handler.Result

	// Verdict is the hook chain's decision.
	Verdict Verdict

	// Pending is true while a multi-key binding is incomplete.
	Pending bool

	// Inserted is true if default text handling consumed the keystroke.
	Inserted bool
}

// Option configures a Handler.
type Option func(*Handler)

// WithConfig sets the handler configuration.
func WithConfig(cfg Config) Option {
	return func(h *Handler) { h.config = cfg }
}

// WithLogger sets the handler logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithClock overrides the time source used for sequence timeouts.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

// Handler is the main entry point for keystroke processing. It is not
// safe for concurrent use.
type Handler struct {
	config  Config
	keymap  *keymap.Keymap
	actions *handler.Registry
	actx    *handler.Context
	target  TargetFunc
	hooks   *HookManager
	metrics *Metrics
	logger  *slog.Logger
	now     func() time.Time

	pending key.Sequence
	lastKey time.Time
}

// NewHandler creates a handler resolving keystrokes with km and
// dispatching actions to actions with actx.
func NewHandler(km *keymap.Keymap, actions *handler.Registry, actx *handler.Context, target TargetFunc, opts ...Option) *Handler {
	h := &Handler{
		config:  DefaultConfig(),
		keymap:  km,
		actions: actions,
		actx:    actx,
		target:  target,
		hooks:   NewHookManager(),
		metrics: NewMetrics(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = h.logger.With("component", "input")
	return h
}

// Hooks returns the hook manager.
func (h *Handler) Hooks() *HookManager {
	return h.hooks
}

// Metrics returns the handler metrics.
func (h *Handler) Metrics() *Metrics {
	return h.metrics
}

// Keymap returns the keymap in use.
func (h *Handler) Keymap() *keymap.Keymap {
	return h.keymap
}

// SetKeymap replaces the keymap and drops any pending sequence.
func (h *Handler) SetKeymap(km *keymap.Keymap) {
	h.keymap = km
	h.pending = nil
}

// PendingKeys returns the pending key sequence as a string.
func (h *Handler) PendingKeys() string {
	return h.pending.String()
}

// ClearPending discards a partial key sequence.
func (h *Handler) ClearPending() {
	h.pending = nil
}

// HandleKeystroke processes a single keystroke.
func (h *Handler) HandleKeystroke(ks key.Keystroke) Outcome {
	timer := h.metrics.StartKeystrokeTimer()
	defer timer.Stop()

	now := h.now()
	if len(h.pending) > 0 && h.config.SequenceTimeout > 0 && now.Sub(h.lastKey) > h.config.SequenceTimeout {
		h.logger.Debug("pending sequence timed out", "keys", h.pending.String())
		h.metrics.RecordSequenceTimeout()
		h.pending = nil
	}
	h.lastKey = now

	t, hasTarget := h.target()
	ctx := mode.NewKeyContext()
	if hasTarget {
		ctx = t.KeyContext()
	}

	seq := append(slices.Clone(h.pending), ks)
	action, pending, found := h.keymap.Lookup(seq, ctx)
	if !found && !pending && len(h.pending) > 0 {
		// The prefix led nowhere; resolve the keystroke on its own.
		h.pending = nil
		seq = key.Sequence{ks}
		action, pending, found = h.keymap.Lookup(seq, ctx)
	}

	ev := &KeystrokeEvent{Keystroke: ks}
	var out Outcome
	switch {
	case found:
		h.pending = nil
		out.Action = &action
		out.Result = h.dispatch(action)
		ev.Action = &action
	case pending:
		h.pending = seq
		out.Pending = true
		ev.Pending = true
	default:
		h.pending = nil
	}

	out.Verdict = h.hooks.Run(ev)
	if out.Verdict == Handled {
		h.metrics.RecordHookConsumption()
		return out
	}
	if ev.Action == nil && !ev.Pending && hasTarget {
		out.Inserted = insertDefault(t, ks)
		if out.Inserted {
			h.metrics.RecordInsertion()
		}
	}
	return out
}

// Dispatch runs action directly, bypassing the keymap.
func (h *Handler) Dispatch(action handler.Action) handler.Result {
	return h.dispatch(action)
}

func (h *Handler) dispatch(action handler.Action) handler.Result {
	timer := h.metrics.StartActionTimer()
	defer timer.Stop()
	return h.actions.Dispatch(action, h.actx)
}

// insertDefault applies plain text editing for an unclaimed keystroke.
func insertDefault(t Target, ks key.Keystroke) bool {
	switch {
	case ks.Key == key.KeyEnter && ks.Modifiers == key.ModNone:
		t.Newline()
	case ks.Key == key.KeyBackspace && ks.Modifiers == key.ModNone:
		t.Backspace()
	case ks.Key == key.KeyTab && ks.Modifiers == key.ModNone:
		t.InsertText("\t")
	case ks.IsChar():
		t.InsertText(ks.Text())
	default:
		return false
	}
	return true
}
