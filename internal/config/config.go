// Package config provides the persisted settings that control the modal
// editing layer.
//
// Settings are read from an ordered list of files, typically the user
// settings file followed by the workspace settings file. Later files take
// precedence, and environment overrides (HX_HELIX_MODE) take precedence
// over every file. Files may be JSON or TOML; see package loader.
package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/j0lol/hxzed/internal/config/loader"
	"github.com/j0lol/hxzed/internal/config/registry"
	"github.com/j0lol/hxzed/internal/config/watcher"
)

var (
	// ErrReadOnly is returned when toggling with no settings file configured.
	ErrReadOnly = errors.New("no writable settings file")

	// ErrEnvOverride is returned when toggling a setting the environment
	// overrides, since writing a file would not change the result.
	ErrEnvOverride = errors.New("setting is overridden by the environment")
)

// HelixModeSetting enables the modal editing layer.
var HelixModeSetting = registry.NewSetting(
	"helix_mode",
	"Enable Helix-style modal editing",
	false,
)

// DefaultRegistry returns a registry holding the built-in settings.
func DefaultRegistry() *registry.Registry {
	r := registry.New()
	r.MustRegister(HelixModeSetting)
	return r
}

// NewRegistry registers defs and then every built-in setting that defs
// did not already define, so a definition in defs replaces the built-in
// one with the same key. A definition without a default fails
// registration.
func NewRegistry(defs ...registry.Definition) (*registry.Registry, error) {
	r := registry.New()
	for _, def := range defs {
		if err := r.Register(def); err != nil {
			return nil, err
		}
	}
	if !r.Has(HelixModeSetting.Key) {
		if err := r.Register(HelixModeSetting); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Settings resolves and persists the modal-layer settings.
type Settings struct {
	mu        sync.RWMutex
	registry  *registry.Registry
	paths     []string
	env       *loader.EnvLoader
	docs      []loader.Document
	helixMode bool
	logger    *slog.Logger
	debounce  time.Duration
}

// Option configures Settings.
type Option func(*Settings)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithEnv sets the environment override loader. Nil disables overrides.
func WithEnv(env *loader.EnvLoader) Option {
	return func(s *Settings) {
		s.env = env
	}
}

// WithRegistry sets the registry settings are resolved through. Defaults
// to DefaultRegistry.
func WithRegistry(r *registry.Registry) Option {
	return func(s *Settings) {
		if r != nil {
			s.registry = r
		}
	}
}

// WithDebounce sets how long file changes must settle before Watch
// reports them.
func WithDebounce(d time.Duration) Option {
	return func(s *Settings) {
		s.debounce = d
	}
}

// New creates settings backed by paths, lowest precedence first.
// Call Load to read them.
func New(paths []string, opts ...Option) *Settings {
	s := &Settings{
		paths:    append([]string(nil), paths...),
		env:      loader.NewEnvLoader(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		debounce: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		s.registry = DefaultRegistry()
	}
	if setting, err := s.helixSetting(); err == nil {
		s.helixMode = *setting.Default
	}
	return s
}

// helixSetting returns the registered helix_mode definition.
func (s *Settings) helixSetting() (registry.Setting[bool], error) {
	def, err := s.registry.Get(HelixModeSetting.Key)
	if err != nil {
		return registry.Setting[bool]{}, err
	}
	setting, ok := def.(registry.Setting[bool])
	if !ok {
		return registry.Setting[bool]{}, fmt.Errorf("%w: %s: expected bool, got %s",
			registry.ErrTypeMismatch, HelixModeSetting.Key, def.ValueType())
	}
	return setting, nil
}

// Paths returns the settings file paths, lowest precedence first.
func (s *Settings) Paths() []string {
	return append([]string(nil), s.paths...)
}

// Load reads every settings file and resolves the settings. On error the
// previously loaded values are kept.
func (s *Settings) Load() error {
	setting, err := s.helixSetting()
	if err != nil {
		return err
	}

	docs := make([]loader.Document, 0, len(s.paths)+1)
	for _, path := range s.paths {
		doc, err := loader.Load(path)
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}
		docs = append(docs, doc)
	}

	values := make([]*bool, 0, len(docs)+1)
	for i, doc := range docs {
		values = append(values, s.lookup(setting, doc, s.paths[i]))
	}
	if s.env != nil {
		values = append(values, s.lookup(setting, s.env.Load(), "environment"))
	}

	helixMode, err := setting.Resolve(values)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.docs = docs
	s.helixMode = helixMode
	s.mu.Unlock()

	s.logger.Debug("settings loaded", "helix_mode", helixMode)
	return nil
}

// lookup reads the helix mode value from doc. A value of the wrong type
// is logged and treated as unset.
func (s *Settings) lookup(setting registry.Setting[bool], doc loader.Document, source string) *bool {
	if doc == nil {
		return nil
	}
	raw, ok := doc.Get(setting.Key)
	if !ok {
		return nil
	}
	v, err := setting.Convert(raw)
	if err != nil {
		s.logger.Warn("ignoring setting", "source", source, "error", err)
		return nil
	}
	return v
}

// HelixMode reports whether the modal layer is enabled.
func (s *Settings) HelixMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.helixMode
}

// ToggleHelixMode flips helix_mode in the settings file that currently
// decides it, or in the first settings file when none does, and returns
// the resolved value after reloading. When the environment sets helix_mode
// nothing is written and ErrEnvOverride is returned.
func (s *Settings) ToggleHelixMode() (bool, error) {
	if len(s.paths) == 0 {
		return false, ErrReadOnly
	}
	setting, err := s.helixSetting()
	if err != nil {
		return s.HelixMode(), err
	}
	if s.env != nil && s.lookup(setting, s.env.Load(), "environment") != nil {
		return s.HelixMode(), fmt.Errorf("%w: %s", ErrEnvOverride, setting.Key)
	}

	target := s.writePath()
	next := !s.HelixMode()
	if err := loader.Update(target, setting.Key, next); err != nil {
		return s.HelixMode(), fmt.Errorf("toggling %s: %w", setting.Key, err)
	}
	s.logger.Info("settings updated", "path", target, "helix_mode", next)

	if err := s.Load(); err != nil {
		return s.HelixMode(), err
	}
	return s.HelixMode(), nil
}

// writePath returns the highest-precedence path that defines helix_mode.
func (s *Settings) writePath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.docs) - 1; i >= 0; i-- {
		if s.docs[i] == nil {
			continue
		}
		if _, ok := s.docs[i].Get(HelixModeSetting.Key); ok {
			return s.paths[i]
		}
	}
	return s.paths[0]
}

// Watch calls fn whenever a settings file changes, until ctx is
// cancelled or the returned stop function is called. fn runs on the
// watcher goroutine.
func (s *Settings) Watch(ctx context.Context, fn func()) (stop func(), err error) {
	w := watcher.New(watcher.WithDebounce(s.debounce), watcher.WithLogger(s.logger))
	for _, path := range s.paths {
		if err := w.Watch(path); err != nil {
			return nil, err
		}
	}
	w.OnChange(func(e watcher.Event) {
		s.logger.Debug("settings file changed", "path", e.Path, "op", e.Op.String())
		fn()
	})
	if err := w.Start(ctx); err != nil {
		return nil, err
	}
	return w.Stop, nil
}
