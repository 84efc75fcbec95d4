// Package loader reads and edits settings files.
//
// The format of a settings file is chosen by extension: ".json" files are
// queried with gjson and edited in place with sjson, ".toml" files are
// decoded with go-toml. Keys are dot-separated paths. A missing file is
// not an error; it simply provides no values.
package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat indicates a settings file extension with no decoder.
var ErrUnsupportedFormat = errors.New("unsupported settings format")

// Format identifies a settings file encoding.
type Format int

const (
	// FormatJSON is a JSON settings file.
	FormatJSON Format = iota
	// FormatTOML is a TOML settings file.
	FormatTOML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatTOML:
		return "toml"
	default:
		return "unknown"
	}
}

// FormatFor returns the format implied by path's extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Document is a decoded settings source.
type Document interface {
	// Get returns the value stored at a dot-separated key.
	Get(key string) (any, bool)
}

// Load reads the settings file at path.
// Returns nil, nil if the file doesn't exist.
func Load(path string) (Document, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading settings file %s: %w", path, err)
	}

	switch format {
	case FormatJSON:
		return parseJSON(path, data)
	default:
		return parseTOML(path, data)
	}
}

// Update sets key to value in the settings file at path, creating the
// file if it does not exist.
func Update(path, key string, value any) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading settings file %s: %w", path, err)
	}

	var out []byte
	switch format {
	case FormatJSON:
		out, err = updateJSON(path, data, key, value)
	default:
		out, err = updateTOML(path, data, key, value)
	}
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("writing settings file %s: %w", path, err)
	}
	return nil
}

// MapDocument is a Document backed by nested maps.
type MapDocument map[string]any

// Get implements Document.
func (d MapDocument) Get(key string) (any, bool) {
	var current any = map[string]any(d)
	for _, part := range strings.Split(key, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data

	for i := 0; i < len(parts)-1; i++ {
		part := parts[i]
		if next, ok := current[part].(map[string]any); ok {
			current = next
		} else {
			next := make(map[string]any)
			current[part] = next
			current = next
		}
	}

	current[parts[len(parts)-1]] = value
}
