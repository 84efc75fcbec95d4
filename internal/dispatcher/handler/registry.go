package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"
)

// Registry errors.
var (
	// ErrNoHandler indicates no handler was found for an action.
	ErrNoHandler = errors.New("handler: no handler for action")

	// ErrPanic indicates the handler panicked.
	ErrPanic = errors.New("handler: handler panic")
)

// Registry maps exact action names to handlers.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	metrics  *Metrics
}

// NewRegistry creates a new handler registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
		metrics:  NewMetrics(),
	}
}

// Register adds a handler for an action name, replacing any previous one.
func (r *Registry) Register(actionName string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[actionName] = h
}

// RegisterFunc registers a function as the handler for an action name.
func (r *Registry) RegisterFunc(actionName string, fn func(Action, *Context) Result) {
	r.Register(actionName, HandlerFunc(fn))
}

// Unregister removes the handler for an action name.
func (r *Registry) Unregister(actionName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handlers, actionName)
}

// Get returns the handler for an action, or nil.
func (r *Registry) Get(actionName string) Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.handlers[actionName]
}

// Has returns true if a handler is registered for the action.
func (r *Registry) Has(actionName string) bool {
	return r.Get(actionName) != nil
}

// List returns all registered action names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered actions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}

// Metrics returns the dispatch statistics collector.
func (r *Registry) Metrics() *Metrics {
	return r.metrics
}

// Dispatch runs the handler registered for action. Unknown actions
// produce an error result wrapping ErrNoHandler. Handler panics are
// recovered and reported as ErrPanic.
func (r *Registry) Dispatch(action Action, ctx *Context) Result {
	h := r.Get(action.Name)
	if h == nil {
		return Error(fmt.Errorf("%w: %s", ErrNoHandler, action.Name))
	}
	if ctx.Logger == nil {
		ctx.Logger = slog.Default()
	}

	start := time.Now()
	result := r.execute(h, action, ctx)
	r.metrics.RecordDispatch(action.Name, time.Since(start), result.Status)

	if result.IsError() {
		ctx.Logger.Warn("action failed", "action", action.String(), "error", result.Error)
	} else {
		ctx.Logger.Debug("action dispatched", "action", action.String(), "status", result.Status)
	}
	return result
}

func (r *Registry) execute(h Handler, action Action, ctx *Context) (result Result) {
	defer func() {
		if p := recover(); p != nil {
			r.metrics.RecordPanic(action.Name)
			result = Error(fmt.Errorf("%w: %s: %v", ErrPanic, action.Name, p))
		}
	}()
	return h.Handle(action, ctx)
}
