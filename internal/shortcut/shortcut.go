// Package shortcut is the abbreviation table the engine consults when a
// word ends, or while it is typed for immediate shortcuts.
package shortcut

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/derekparker/trie"

	"vnime/internal/types"
)

const (
	// Capacity bounds the number of entries in a Table.
	Capacity = 200
	// MaxReplacement is the longest replacement kept, in runes.
	MaxReplacement = 63
)

var (
	ErrFull         = errors.New("shortcut table is full")
	ErrEmptyTrigger = errors.New("shortcut trigger is empty")
)

// When says when a shortcut fires.
type When uint8

const (
	OnWordBoundary When = iota
	Immediate
)

func (w When) String() string {
	if w == Immediate {
		return "immediate"
	}
	return "word_boundary"
}

// CaseMode says how the typed case maps onto the replacement.
type CaseMode uint8

const (
	// MatchCase accepts any case and copies it onto the replacement:
	// "vn" -> "Việt Nam", "VN" -> "VIỆT NAM".
	MatchCase CaseMode = iota
	// Exact fires only on the trigger as written.
	Exact
)

func (c CaseMode) String() string {
	if c == Exact {
		return "exact"
	}
	return "match_case"
}

// Scope restricts a shortcut to one input method.
type Scope uint8

const (
	ScopeAll Scope = iota
	ScopeTelex
	ScopeVNI
)

func (s Scope) String() string {
	switch s {
	case ScopeTelex:
		return "telex"
	case ScopeVNI:
		return "vni"
	default:
		return "all"
	}
}

func (s Scope) allows(m types.Method) bool {
	switch s {
	case ScopeTelex:
		return m == types.MethodTelex
	case ScopeVNI:
		return m == types.MethodVNI
	default:
		return true
	}
}

type Shortcut struct {
	Trigger     string
	Replacement string
	When        When
	Case        CaseMode
	Scope       Scope
}

// Table stores shortcuts in a trie keyed by the lower-cased trigger.
type Table struct {
	t *trie.Trie
	n int
}

func NewTable() *Table {
	return &Table{t: trie.New()}
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return t.n
}

// Add inserts or replaces a shortcut. Replacements longer than
// MaxReplacement runes are cut.
func (t *Table) Add(s Shortcut) error {
	s.Trigger = strings.TrimSpace(s.Trigger)
	if s.Trigger == "" {
		return ErrEmptyTrigger
	}
	if utf8.RuneCountInString(s.Replacement) > MaxReplacement {
		s.Replacement = string([]rune(s.Replacement)[:MaxReplacement])
	}
	key := strings.ToLower(s.Trigger)
	if _, ok := t.t.Find(key); ok {
		t.t.Add(key, s)
		return nil
	}
	if t.n >= Capacity {
		return fmt.Errorf("add %q: %w", s.Trigger, ErrFull)
	}
	t.t.Add(key, s)
	t.n++
	return nil
}

// Remove deletes a trigger. The trie is rebuilt without it, since removing
// a node in place can drop its neighbours.
func (t *Table) Remove(trigger string) bool {
	key := strings.ToLower(strings.TrimSpace(trigger))
	if _, ok := t.t.Find(key); !ok {
		return false
	}
	rest := t.All()
	t.Clear()
	for _, s := range rest {
		if k := strings.ToLower(s.Trigger); k != key {
			t.t.Add(k, s)
			t.n++
		}
	}
	return true
}

func (t *Table) Clear() {
	t.t = trie.New()
	t.n = 0
}

func (t *Table) get(key string) (Shortcut, bool) {
	node, ok := t.t.Find(key)
	if !ok {
		return Shortcut{}, false
	}
	s, ok := node.Meta().(Shortcut)
	return s, ok
}

// Lookup finds the shortcut for a typed word under method.
func (t *Table) Lookup(word string, method types.Method) (Shortcut, bool) {
	if t == nil || word == "" {
		return Shortcut{}, false
	}
	s, ok := t.get(strings.ToLower(word))
	if !ok || !s.Scope.allows(method) {
		return Shortcut{}, false
	}
	if s.Case == Exact && word != s.Trigger {
		return Shortcut{}, false
	}
	return s, true
}

// Expand returns the replacement for word. immediate selects between the
// two kinds of shortcut. Words that start with anything but a letter never
// expand, so "149k" stays as typed.
func (t *Table) Expand(word string, method types.Method, immediate bool) (string, bool) {
	first, _ := utf8.DecodeRuneInString(word)
	if !unicode.IsLetter(first) {
		return "", false
	}
	s, ok := t.Lookup(word, method)
	if !ok || (s.When == Immediate) != immediate {
		return "", false
	}
	if s.Case == Exact {
		return s.Replacement, true
	}
	return applyCase(word, s.Replacement), true
}

// HasPrefix reports whether some trigger starts with prefix.
func (t *Table) HasPrefix(prefix string) bool {
	if t == nil || t.n == 0 {
		return false
	}
	return t.t.HasKeysWithPrefix(strings.ToLower(prefix))
}

// All returns the shortcuts sorted by trigger.
func (t *Table) All() []Shortcut {
	if t == nil || t.n == 0 {
		return nil
	}
	keys := t.t.PrefixSearch("")
	sort.Strings(keys)
	out := make([]Shortcut, 0, len(keys))
	for _, k := range keys {
		if s, ok := t.get(k); ok {
			out = append(out, s)
		}
	}
	return out
}

func applyCase(typed, replacement string) string {
	letters, upper := 0, 0
	for _, r := range typed {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	switch {
	case letters > 1 && upper == letters:
		return strings.ToUpper(replacement)
	case upper > 0:
		first, _ := utf8.DecodeRuneInString(typed)
		if unicode.IsUpper(first) {
			r, size := utf8.DecodeRuneInString(replacement)
			return string(unicode.ToUpper(r)) + replacement[size:]
		}
	}
	return replacement
}
