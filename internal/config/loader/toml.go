package loader

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

func parseTOML(path string, data []byte) (Document, error) {
	tree, err := decodeTOML(path, data)
	if err != nil {
		return nil, err
	}
	return MapDocument(tree), nil
}

func decodeTOML(path string, data []byte) (map[string]any, error) {
	var tree map[string]any
	if err := toml.Unmarshal(data, &tree); err != nil {
		perr := &ParseError{
			Path:    path,
			Message: err.Error(),
			Err:     err,
		}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return nil, perr
	}
	if tree == nil {
		tree = make(map[string]any)
	}
	return tree, nil
}

// updateTOML rewrites a top-level key in place so comments and key order
// survive. Dotted keys, and edits the line rewrite cannot express, go
// through a full decode and re-encode.
func updateTOML(path string, data []byte, key string, value any) ([]byte, error) {
	tree, err := decodeTOML(path, data)
	if err != nil {
		return nil, err
	}
	if !strings.Contains(key, ".") {
		if out, ok := editTOMLLine(data, key, value); ok {
			return out, nil
		}
	}
	setByPath(tree, key, value)

	out, err := toml.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", path, err)
	}
	return out, nil
}

// editTOMLLine replaces the assignment of key in the root table, or adds
// one before the first table header. The result is decoded again and
// rejected unless key holds value.
func editTOMLLine(data []byte, key string, value any) ([]byte, bool) {
	assign, err := toml.Marshal(map[string]any{key: value})
	if err != nil {
		return nil, false
	}
	line := strings.TrimRight(string(assign), "\n")

	text := string(data)
	lines := strings.Split(text, "\n")
	header := len(lines)
	found := -1
	for i, l := range lines {
		trimmed := strings.TrimSpace(l)
		if strings.HasPrefix(trimmed, "[") {
			header = i
			break
		}
		if assignsKey(trimmed, key) {
			found = i
			break
		}
	}

	switch {
	case found >= 0:
		indent := lines[found][:len(lines[found])-len(strings.TrimLeft(lines[found], " \t"))]
		lines[found] = indent + line
	case header < len(lines):
		// Comments and blank lines directly above a header belong to it.
		at := header
		for at > 0 {
			prev := strings.TrimSpace(lines[at-1])
			if prev != "" && !strings.HasPrefix(prev, "#") {
				break
			}
			at--
		}
		lines = slices.Insert(lines, at, line)
		if at == 0 {
			lines = slices.Insert(lines, 1, "")
		}
	default:
		if n := len(lines); n > 0 && lines[n-1] == "" {
			lines = slices.Insert(lines, n-1, line)
		} else {
			lines = append(lines, line, "")
		}
	}

	out := []byte(strings.Join(lines, "\n"))
	var got, want map[string]any
	if toml.Unmarshal(out, &got) != nil || toml.Unmarshal(assign, &want) != nil {
		return nil, false
	}
	if !reflect.DeepEqual(got[key], want[key]) {
		return nil, false
	}
	return out, true
}

// assignsKey reports whether a trimmed line assigns the bare or quoted key.
func assignsKey(line, key string) bool {
	for _, k := range []string{key, `"` + key + `"`, "'" + key + "'"} {
		rest, ok := strings.CutPrefix(line, k)
		if ok && strings.HasPrefix(strings.TrimLeft(rest, " \t"), "=") {
			return true
		}
	}
	return false
}
