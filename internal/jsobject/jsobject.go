// Package jsobject converts the object literal of a SystemJS config file
// (System.config({...});) to JSON and back.
package jsobject

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"slices"

	"github.com/tailscale/hujson"
)

// ErrNoConfig is returned when the source has no System.config(...); call.
var ErrNoConfig = errors.New("no System.config(...) call found")

var (
	wrapper    = regexp.MustCompile(`(?s)System\.config\((.*)\);`)
	quotedKeys = regexp.MustCompile(`"([a-zA-Z]+)":`)
)

// Extract returns the object literal passed to System.config in src.
func Extract(src []byte) ([]byte, error) {
	m := wrapper.FindSubmatch(src)
	if m == nil || len(bytes.TrimSpace(m[1])) == 0 {
		return nil, ErrNoConfig
	}
	return m[1], nil
}

// Wrap returns data wrapped in a System.config call.
func Wrap(data []byte) []byte {
	out := make([]byte, 0, len(data)+len("System.config();"))
	out = append(out, "System.config("...)
	out = append(out, data...)
	return append(out, ");"...)
}

// UnquoteKeys removes the quotes around object keys made of ASCII letters,
// except for the keys listed in keep.
func UnquoteKeys(data []byte, keep ...string) []byte {
	return quotedKeys.ReplaceAllFunc(data, func(match []byte) []byte {
		key := match[1 : len(match)-2]
		if slices.Contains(keep, string(key)) {
			return match
		}
		return append(slices.Clone(key), ':')
	})
}

// ToJSON converts a JavaScript object literal to standard JSON.
// Bare identifier keys are quoted, single-quoted strings become
// double-quoted, and comments and trailing commas are removed.
func ToJSON(literal []byte) ([]byte, error) {
	s := &scanner{src: literal}
	if err := s.run(); err != nil {
		return nil, err
	}
	out, err := hujson.Standardize(s.out.Bytes())
	if err != nil {
		return nil, fmt.Errorf("parse object literal: %w", err)
	}
	return out, nil
}

type scanner struct {
	src []byte
	pos int
	out bytes.Buffer
}

func (s *scanner) run() error {
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case c == '"' || c == '\'':
			if err := s.string(c); err != nil {
				return err
			}
		case c == '/' && s.peek(1) == '/':
			s.lineComment()
		case c == '/' && s.peek(1) == '*':
			if err := s.blockComment(); err != nil {
				return err
			}
		case isIdentStart(c):
			s.identifier()
		default:
			s.out.WriteByte(c)
			s.pos++
		}
	}
	return nil
}

func (s *scanner) peek(n int) byte {
	if s.pos+n < len(s.src) {
		return s.src[s.pos+n]
	}
	return 0
}

// string copies a quoted string starting at s.pos to the output as a JSON string.
func (s *scanner) string(quote byte) error {
	start := s.pos
	s.out.WriteByte('"')
	s.pos++
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case c == '\\':
			next := s.peek(1)
			if next == '\'' {
				s.out.WriteByte('\'')
			} else {
				s.out.WriteByte('\\')
				s.out.WriteByte(next)
			}
			s.pos += 2
		case c == quote:
			s.out.WriteByte('"')
			s.pos++
			return nil
		case c == '"':
			s.out.WriteString(`\"`)
			s.pos++
		default:
			s.out.WriteByte(c)
			s.pos++
		}
	}
	return fmt.Errorf("unterminated string at offset %d", start)
}

func (s *scanner) lineComment() {
	for s.pos < len(s.src) && s.src[s.pos] != '\n' {
		s.pos++
	}
}

func (s *scanner) blockComment() error {
	end := bytes.Index(s.src[s.pos+2:], []byte("*/"))
	if end < 0 {
		return fmt.Errorf("unterminated comment at offset %d", s.pos)
	}
	s.pos += end + 4
	s.out.WriteByte(' ')
	return nil
}

// identifier copies a bare word, quoting it when it is used as an object key.
func (s *scanner) identifier() {
	start := s.pos
	for s.pos < len(s.src) && isIdentPart(s.src[s.pos]) {
		s.pos++
	}
	word := s.src[start:s.pos]

	next := s.pos
	for next < len(s.src) && isSpace(s.src[next]) {
		next++
	}
	if next < len(s.src) && s.src[next] == ':' {
		s.out.WriteByte('"')
		s.out.Write(word)
		s.out.WriteByte('"')
		return
	}
	s.out.Write(word)
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
