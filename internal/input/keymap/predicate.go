package keymap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/j0lol/hxzed/internal/input/mode"
)

// ErrInvalidPredicate is returned for malformed context expressions.
var ErrInvalidPredicate = errors.New("invalid context predicate")

type termKind uint8

const (
	termIdent termKind = iota
	termNotIdent
	termEqual
	termNotEqual
)

type term struct {
	kind  termKind
	key   string
	value string
}

func (t term) eval(ctx mode.KeyContext) bool {
	switch t.kind {
	case termIdent:
		return ctx.Contains(t.key)
	case termNotIdent:
		return !ctx.Contains(t.key)
	case termEqual:
		v, ok := ctx.Get(t.key)
		return ok && v == t.value
	case termNotEqual:
		v, ok := ctx.Get(t.key)
		return !ok || v != t.value
	}
	return false
}

func (t term) String() string {
	switch t.kind {
	case termNotIdent:
		return "!" + t.key
	case termEqual:
		return t.key + " == " + t.value
	case termNotEqual:
		return t.key + " != " + t.value
	default:
		return t.key
	}
}

// Predicate is a parsed context expression. The zero value matches
// every context.
type Predicate struct {
	terms []term
}

// ParsePredicate parses a context expression. An empty expression
// matches everything.
func ParsePredicate(expr string) (Predicate, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Predicate{}, nil
	}

	var p Predicate
	for _, part := range strings.Split(expr, "&&") {
		t, err := parseTerm(strings.TrimSpace(part))
		if err != nil {
			return Predicate{}, fmt.Errorf("%w: %q: %v", ErrInvalidPredicate, expr, err)
		}
		p.terms = append(p.terms, t)
	}
	return p, nil
}

func parseTerm(s string) (term, error) {
	if s == "" {
		return term{}, errors.New("empty term")
	}
	if l, r, ok := strings.Cut(s, "!="); ok {
		return comparison(termNotEqual, l, r)
	}
	if l, r, ok := strings.Cut(s, "=="); ok {
		return comparison(termEqual, l, r)
	}
	if rest, ok := strings.CutPrefix(s, "!"); ok {
		rest = strings.TrimSpace(rest)
		if !isIdent(rest) {
			return term{}, fmt.Errorf("bad identifier %q", rest)
		}
		return term{kind: termNotIdent, key: rest}, nil
	}
	if !isIdent(s) {
		return term{}, fmt.Errorf("bad identifier %q", s)
	}
	return term{kind: termIdent, key: s}, nil
}

func comparison(kind termKind, left, right string) (term, error) {
	left, right = strings.TrimSpace(left), strings.TrimSpace(right)
	if !isIdent(left) {
		return term{}, fmt.Errorf("bad key %q", left)
	}
	if !isIdent(right) {
		return term{}, fmt.Errorf("bad value %q", right)
	}
	return term{kind: kind, key: left, value: right}, nil
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_', r == '-', r == '.':
		default:
			return false
		}
	}
	return true
}

// Eval reports whether ctx satisfies every term.
func (p Predicate) Eval(ctx mode.KeyContext) bool {
	for _, t := range p.terms {
		if !t.eval(ctx) {
			return false
		}
	}
	return true
}

// String returns the canonical expression.
func (p Predicate) String() string {
	parts := make([]string, len(p.terms))
	for i, t := range p.terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, " && ")
}
