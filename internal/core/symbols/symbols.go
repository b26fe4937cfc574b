// Package symbols loads the set of code points the normalizer strips before classification.
// The list is embedded at build time from symbols.json and never changes at runtime
package symbols

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

//go:embed symbols.json
var embedded []byte

type rawSet struct {
	Version     int      `json:"version"`
	Description string   `json:"description"`
	Symbols     []string `json:"symbols"`
}

// Set is an immutable rune set. A nil *Set contains nothing
type Set struct {
	version int
	m       map[rune]struct{}
}

// New builds a Set from rs. Duplicates are harmless. A newline member is rejected
// because the normalizer gives '\n' its own meaning
func New(rs ...rune) (*Set, error) {
	s := &Set{m: make(map[rune]struct{}, len(rs))}
	for _, r := range rs {
		if r == '\n' {
			return nil, fmt.Errorf("symbols: newline cannot be filtered")
		}
		s.m[r] = struct{}{}
	}
	return s, nil
}

// Load returns the Set compiled into the binary
func Load() (*Set, error) {
	return parse(embedded)
}

func parse(data []byte) (*Set, error) {
	var raw rawSet
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("symbols: parse symbols.json: %w", err)
	}
	if raw.Version != 1 {
		return nil, fmt.Errorf("symbols: unsupported symbols.json version %d (want 1)", raw.Version)
	}
	rs := make([]rune, 0, len(raw.Symbols))
	for _, tok := range raw.Symbols {
		r, err := parseCodePoint(tok)
		if err != nil {
			return nil, err
		}
		rs = append(rs, r)
	}
	s, err := New(rs...)
	if err != nil {
		return nil, err
	}
	s.version = raw.Version
	return s, nil
}

// parseCodePoint accepts "U+200B", "u+200b" or "0x200B"
func parseCodePoint(tok string) (rune, error) {
	t := strings.TrimSpace(tok)
	switch {
	case len(t) > 2 && (t[:2] == "U+" || t[:2] == "u+"):
		t = t[2:]
	case len(t) > 2 && (t[:2] == "0x" || t[:2] == "0X"):
		t = t[2:]
	default:
		return 0, fmt.Errorf("symbols: bad code point %q", tok)
	}
	v, err := strconv.ParseUint(t, 16, 32)
	if err != nil || v > 0x10FFFF || (v >= 0xD800 && v <= 0xDFFF) {
		return 0, fmt.Errorf("symbols: bad code point %q", tok)
	}
	return rune(v), nil
}

// Contains reports whether r is filtered
func (s *Set) Contains(r rune) bool {
	if s == nil {
		return false
	}
	_, ok := s.m[r]
	return ok
}

// Len returns the number of distinct members
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.m)
}

// Version returns the data revision the set was loaded from (0 for sets built with New)
func (s *Set) Version() int {
	if s == nil {
		return 0
	}
	return s.version
}

// Runes returns the members in ascending order
func (s *Set) Runes() []rune {
	if s == nil {
		return nil
	}
	out := make([]rune, 0, len(s.m))
	for r := range s.m {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
