package keymap

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidKeymap is returned for keymap files that do not follow the
// section layout.
var ErrInvalidKeymap = errors.New("invalid keymap")

//go:embed default.yaml
var defaultKeymap []byte

// section is one context block of a keymap file. Bindings is kept as a
// node so the file order of keys survives decoding.
type section struct {
	Context  string    `yaml:"context"`
	Bindings yaml.Node `yaml:"bindings"`
}

// Decode reads a YAML keymap and returns its bindings in file order.
func Decode(r io.Reader) ([]Binding, error) {
	var sections []section
	if err := yaml.NewDecoder(r).Decode(&sections); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeymap, err)
	}

	var out []Binding
	for i, s := range sections {
		if s.Bindings.Kind == 0 {
			continue
		}
		if s.Bindings.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("%w: section %d: bindings must be a mapping", ErrInvalidKeymap, i)
		}
		content := s.Bindings.Content
		for j := 0; j+1 < len(content); j += 2 {
			b, err := decodeBinding(content[j], content[j+1])
			if err != nil {
				return nil, fmt.Errorf("%w: section %d: %v", ErrInvalidKeymap, i, err)
			}
			b.Context = s.Context
			out = append(out, b)
		}
	}
	return out, nil
}

// decodeBinding accepts `keys: action` and `keys: [action, arg]`.
func decodeBinding(k, v *yaml.Node) (Binding, error) {
	b := Binding{Keys: k.Value}
	switch v.Kind {
	case yaml.ScalarNode:
		b.Action = v.Value
	case yaml.SequenceNode:
		if len(v.Content) == 0 || len(v.Content) > 2 {
			return Binding{}, fmt.Errorf("line %d: %q: want [action] or [action, arg]", v.Line, k.Value)
		}
		b.Action = v.Content[0].Value
		if len(v.Content) == 2 {
			b.Arg = v.Content[1].Value
		}
	default:
		return Binding{}, fmt.Errorf("line %d: %q: unsupported value", v.Line, k.Value)
	}
	return b, nil
}

// Load decodes a keymap into a new Keymap named name.
func Load(name string, r io.Reader) (*Keymap, error) {
	bs, err := Decode(r)
	if err != nil {
		return nil, err
	}
	km := New(name)
	if err := km.AddAll(bs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeymap, err)
	}
	return km, nil
}

// LoadFile loads a keymap from a YAML file.
func LoadFile(path string) (*Keymap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening keymap file: %w", err)
	}
	defer f.Close()
	return Load(path, f)
}

// Default returns the built-in keymap.
func Default() *Keymap {
	km, err := Load("default", bytes.NewReader(defaultKeymap))
	if err != nil {
		panic(fmt.Sprintf("keymap: built-in keymap: %v", err))
	}
	return km
}
