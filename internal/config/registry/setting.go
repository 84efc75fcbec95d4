// Package registry defines typed settings and the registry that holds
// their definitions.
//
// A setting resolves its value from an ordered list of optional user
// values: the last one present wins, and the registered default applies
// when none is present. A setting without a default cannot be
// registered.
package registry

import (
	"errors"
	"fmt"
	"reflect"
)

// Errors returned by setting operations.
var (
	// ErrMissingDefault indicates a setting has no default value.
	ErrMissingDefault = errors.New("setting has no default")

	// ErrSettingAlreadyRegistered indicates a duplicate registration.
	ErrSettingAlreadyRegistered = errors.New("setting already registered")

	// ErrSettingNotFound indicates the key is not registered.
	ErrSettingNotFound = errors.New("setting not found")

	// ErrTypeMismatch indicates a stored value has the wrong type.
	ErrTypeMismatch = errors.New("type mismatch")
)

// Definition is the untyped view of a setting held by the Registry.
type Definition interface {
	// SettingKey returns the key the setting is stored under.
	SettingKey() string

	// SettingDescription returns human-readable documentation.
	SettingDescription() string

	// DefaultValue returns the default, or nil if there is none.
	DefaultValue() any

	// ValueType returns the setting's Go type.
	ValueType() reflect.Type
}

// Setting is a typed setting definition.
type Setting[T any] struct {
	// Key is the settings-file key, e.g. "helix_mode".
	Key string

	// Description is human-readable documentation.
	Description string

	// Default is the value used when no source provides one.
	Default *T
}

// NewSetting creates a setting with a default value.
func NewSetting[T any](key, description string, def T) Setting[T] {
	return Setting[T]{Key: key, Description: description, Default: &def}
}

// SettingKey implements Definition.
func (s Setting[T]) SettingKey() string { return s.Key }

// SettingDescription implements Definition.
func (s Setting[T]) SettingDescription() string { return s.Description }

// DefaultValue implements Definition.
func (s Setting[T]) DefaultValue() any {
	if s.Default == nil {
		return nil
	}
	return *s.Default
}

// ValueType implements Definition.
func (s Setting[T]) ValueType() reflect.Type {
	return reflect.TypeFor[T]()
}

// Resolve returns the last non-nil user value, or the default.
func (s Setting[T]) Resolve(user []*T) (T, error) {
	for i := len(user) - 1; i >= 0; i-- {
		if user[i] != nil {
			return *user[i], nil
		}
	}
	if s.Default == nil {
		var zero T
		return zero, fmt.Errorf("%w: %s", ErrMissingDefault, s.Key)
	}
	return *s.Default, nil
}

// Convert checks that a raw value loaded from a settings source has the
// setting's type.
func (s Setting[T]) Convert(raw any) (*T, error) {
	if raw == nil {
		return nil, nil
	}
	v, ok := raw.(T)
	if !ok {
		var zero T
		return nil, fmt.Errorf("%w: %s: expected %T, got %T", ErrTypeMismatch, s.Key, zero, raw)
	}
	return &v, nil
}
