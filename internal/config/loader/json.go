package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// jsonDocument answers queries directly against the raw bytes.
type jsonDocument struct {
	data []byte
}

func parseJSON(path string, data []byte) (Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return jsonDocument{data: []byte("{}")}, nil
	}
	if !gjson.ValidBytes(data) {
		line, col := syntaxPosition(data)
		return nil, &ParseError{
			Path:    path,
			Line:    line,
			Column:  col,
			Message: "invalid JSON",
		}
	}
	if !gjson.ParseBytes(data).IsObject() {
		return nil, &ParseError{Path: path, Message: "top level value must be an object"}
	}
	return jsonDocument{data: data}, nil
}

// Get implements Document.
func (d jsonDocument) Get(key string) (any, bool) {
	r := gjson.GetBytes(d.data, key)
	if !r.Exists() {
		return nil, false
	}
	return r.Value(), true
}

func updateJSON(path string, data []byte, key string, value any) ([]byte, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		data = []byte("{}")
	} else if _, err := parseJSON(path, data); err != nil {
		return nil, err
	}

	out, err := sjson.SetBytes(data, key, value)
	if err != nil {
		return nil, fmt.Errorf("updating %s in %s: %w", key, path, err)
	}
	return out, nil
}

// syntaxPosition reports the line and column of the first syntax error
// in data, or zeros when it cannot be located.
func syntaxPosition(data []byte) (line, column int) {
	var v any
	var serr *json.SyntaxError
	if err := json.Unmarshal(data, &v); !errors.As(err, &serr) {
		return 0, 0
	}
	// Offset counts the offending byte.
	offset := int(serr.Offset) - 1
	if offset < 0 {
		offset = 0
	}
	if offset > len(data) {
		offset = len(data)
	}
	line, column = 1, 1
	for _, b := range data[:offset] {
		if b == '\n' {
			line++
			column = 1
			continue
		}
		column++
	}
	return line, column
}
