package input

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/j0lol/hxzed/internal/dispatcher/handler"
	"github.com/j0lol/hxzed/internal/input/key"
)

// Verdict is a hook's decision about a keystroke.
type Verdict uint8

const (
	// FallThrough lets later hooks and default handling see the keystroke.
	FallThrough Verdict = iota
	// Handled claims the keystroke.
	Handled
)

// String returns a string representation of the verdict.
func (v Verdict) String() string {
	if v == Handled {
		return "handled"
	}
	return "fall-through"
}

// KeystrokeEvent describes a resolved keystroke.
type KeystrokeEvent struct {
	// Keystroke is the key that was pressed.
	Keystroke key.Keystroke

	// Action is the action the keystroke dispatched, nil if none.
	Action *handler.Action

	// Pending is true while the keystroke is part of an unfinished
	// multi-key binding.
	Pending bool
}

// Hook observes keystrokes after keymap resolution.
type Hook interface {
	ObserveKeystroke(ev *KeystrokeEvent) Verdict
}

// HookFunc adapts a function to the Hook interface.
type HookFunc func(ev *KeystrokeEvent) Verdict

// ObserveKeystroke calls f.
func (f HookFunc) ObserveKeystroke(ev *KeystrokeEvent) Verdict {
	if f == nil {
		return FallThrough
	}
	return f(ev)
}

// HookPriority defines the execution order for hooks.
// Lower values execute first.
type HookPriority int

const (
	// HookPriorityHighest runs before all other hooks.
	HookPriorityHighest HookPriority = -1000
	// HookPriorityHigh runs early in the hook chain.
	HookPriorityHigh HookPriority = -100
	// HookPriorityNormal is the default priority.
	HookPriorityNormal HookPriority = 0
	// HookPriorityLow runs late in the hook chain.
	HookPriorityLow HookPriority = 100
	// HookPriorityLowest runs after all other hooks.
	HookPriorityLowest HookPriority = 1000
)

// HookID uniquely identifies a registered hook.
type HookID uint64

// HookRegistration holds metadata about a registered hook.
type HookRegistration struct {
	ID       HookID
	Name     string
	Priority HookPriority
	Hook     Hook
}

// HookManager manages keystroke hooks with priorities and named
// registration.
type HookManager struct {
	mu      sync.RWMutex
	hooks   []HookRegistration
	nextID  HookID
	sorted  bool
	enabled bool
}

// NewHookManager creates a new hook manager.
func NewHookManager() *HookManager {
	return &HookManager{enabled: true, sorted: true}
}

// Register adds a hook with default priority.
func (m *HookManager) Register(hook Hook) HookID {
	return m.RegisterWithOptions(hook, "", HookPriorityNormal)
}

// RegisterWithPriority adds a hook with specified priority.
func (m *HookManager) RegisterWithPriority(hook Hook, priority HookPriority) HookID {
	return m.RegisterWithOptions(hook, "", priority)
}

// RegisterNamed adds a hook with a name for later reference. A hook
// already registered under name is replaced.
func (m *HookManager) RegisterNamed(hook Hook, name string) HookID {
	return m.RegisterWithOptions(hook, name, HookPriorityNormal)
}

// RegisterWithOptions adds a hook with all options specified.
func (m *HookManager) RegisterWithOptions(hook Hook, name string, priority HookPriority) HookID {
	m.mu.Lock()
	defer m.mu.Unlock()

	if name != "" {
		m.removeLocked(func(r HookRegistration) bool { return r.Name == name })
	}

	m.nextID++
	m.hooks = append(m.hooks, HookRegistration{
		ID:       m.nextID,
		Name:     name,
		Priority: priority,
		Hook:     hook,
	})
	m.sorted = false
	return m.nextID
}

// Unregister removes a hook by ID.
func (m *HookManager) Unregister(id HookID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.removeLocked(func(r HookRegistration) bool { return r.ID == id })
}

// UnregisterByName removes a hook by name.
func (m *HookManager) UnregisterByName(name string) bool {
	if name == "" {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.removeLocked(func(r HookRegistration) bool { return r.Name == name })
}

func (m *HookManager) removeLocked(match func(HookRegistration) bool) bool {
	for i := range m.hooks {
		if match(m.hooks[i]) {
			m.hooks = append(m.hooks[:i], m.hooks[i+1:]...)
			return true
		}
	}
	return false
}

// GetByName returns a hook registration by name.
func (m *HookManager) GetByName(name string) (HookRegistration, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.hooks {
		if name != "" && r.Name == name {
			return r, true
		}
	}
	return HookRegistration{}, false
}

// SetEnabled enables or disables all hooks.
func (m *HookManager) SetEnabled(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = enabled
}

// IsEnabled returns whether hooks are enabled.
func (m *HookManager) IsEnabled() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.enabled
}

// Count returns the number of registered hooks.
func (m *HookManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.hooks)
}

// List returns all hook registrations in execution order.
func (m *HookManager) List() []HookRegistration {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureSorted()
	result := make([]HookRegistration, len(m.hooks))
	copy(result, m.hooks)
	return result
}

// ensureSorted sorts hooks by priority if needed.
func (m *HookManager) ensureSorted() {
	if m.sorted {
		return
	}
	sort.SliceStable(m.hooks, func(i, j int) bool {
		return m.hooks[i].Priority < m.hooks[j].Priority
	})
	m.sorted = true
}

// Run passes ev to each hook in priority order. The first Handled
// verdict stops the chain.
func (m *HookManager) Run(ev *KeystrokeEvent) Verdict {
	m.mu.Lock()
	if !m.enabled || len(m.hooks) == 0 {
		m.mu.Unlock()
		return FallThrough
	}
	m.ensureSorted()

	// Copy hooks for iteration outside lock
	hooks := make([]Hook, len(m.hooks))
	for i := range m.hooks {
		hooks[i] = m.hooks[i].Hook
	}
	m.mu.Unlock()

	for _, hook := range hooks {
		if hook.ObserveKeystroke(ev) == Handled {
			return Handled
		}
	}
	return FallThrough
}

// Clear removes all hooks.
func (m *HookManager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooks = nil
	m.sorted = true
}

// LoggingHook logs every keystroke at debug level.
type LoggingHook struct {
	Logger *slog.Logger
}

// ObserveKeystroke logs ev and never claims it.
func (h LoggingHook) ObserveKeystroke(ev *KeystrokeEvent) Verdict {
	if h.Logger == nil {
		return FallThrough
	}
	attrs := []any{"key", ev.Keystroke.String(), "pending", ev.Pending}
	if ev.Action != nil {
		attrs = append(attrs, "action", ev.Action.String())
	}
	h.Logger.Debug("keystroke", attrs...)
	return FallThrough
}
