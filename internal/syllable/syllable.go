// Package syllable splits a word buffer into initial, glide, nucleus and
// coda.
package syllable

import (
	"github.com/npillmayer/schuko/tracing"

	"vnime/internal/buffer"
	"vnime/internal/keys"
)

func tracer() tracing.Trace {
	return tracing.Select("vnime.syllable")
}

// Span is a half-open range of buffer positions.
type Span struct {
	Start, End int
}

func (s Span) Len() int { return s.End - s.Start }

func (s Span) Empty() bool { return s.End <= s.Start }

func (s Span) Has(i int) bool { return i >= s.Start && i < s.End }

// Syllable is a decomposition of the buffer. Rest is non-empty when letters
// follow the coda, which never happens inside one Vietnamese syllable.
type Syllable struct {
	Initial Span
	Glide   Span
	Nucleus Span
	Coda    Span
	Rest    Span

	chars []buffer.Char
}

// Parse decomposes chars. It never fails; callers ask the validator whether
// the parts are legal.
func Parse(chars []buffer.Char) Syllable {
	n := len(chars)
	s := Syllable{chars: chars}

	i := 0
	for i < n && !keys.IsVowel(chars[i].Key) {
		i++
	}
	s.Initial = Span{0, i}

	j := i
	for j < n && keys.IsVowel(chars[j].Key) {
		j++
	}
	s.Nucleus = Span{i, j}

	// qu and gi swallow their vowel when another vowel follows.
	if s.Initial.Len() == 1 && s.Nucleus.Len() >= 2 {
		first, next := chars[0].Key, chars[i].Key
		if (first == keys.Q && next == keys.U) || (first == keys.G && next == keys.I) {
			s.Initial.End++
			s.Nucleus.Start++
		}
	}
	if s.Initial.Len() == 1 && s.Nucleus.Len() == 1 && chars[0].Key == keys.Q && chars[i].Key == keys.U {
		s.Initial.End++
		s.Nucleus.Start++
	}

	k := j
	for k < n && !keys.IsVowel(chars[k].Key) {
		k++
	}
	s.Coda = Span{j, k}
	s.Rest = Span{k, n}

	if s.Nucleus.Len() >= 2 && isGlide(chars, s.Nucleus) {
		s.Glide = Span{s.Nucleus.Start, s.Nucleus.Start + 1}
	}
	if !s.Rest.Empty() {
		tracer().Debugf("buffer of %d chars spans more than one syllable", n)
	}
	return s
}

func isGlide(chars []buffer.Char, nucleus Span) bool {
	first := chars[nucleus.Start]
	second := chars[nucleus.Start+1]
	if first.Tone != buffer.ToneNone {
		return false
	}
	switch first.Key {
	case keys.O:
		return second.Key == keys.A || second.Key == keys.E
	case keys.U:
		return second.Key == keys.Y || (second.Key == keys.A && second.Tone == buffer.ToneCircumflex) ||
			(second.Key == keys.E && second.Tone == buffer.ToneCircumflex) ||
			(second.Key == keys.O && second.Tone == buffer.ToneHorn)
	}
	return false
}

// Chars returns the buffer the syllable was parsed from.
func (s Syllable) Chars() []buffer.Char { return s.chars }

// HasVowel reports a non-empty nucleus.
func (s Syllable) HasVowel() bool { return !s.Nucleus.Empty() }

// Single reports whether the buffer is at most one syllable.
func (s Syllable) Single() bool { return s.Rest.Empty() }

// HasQu reports a qu initial.
func (s Syllable) HasQu() bool {
	return s.Initial.Len() == 2 && s.chars[0].Key == keys.Q && s.chars[1].Key == keys.U
}

// HasGi reports a gi initial that took the i from the nucleus.
func (s Syllable) HasGi() bool {
	return s.Initial.Len() == 2 && s.chars[0].Key == keys.G && s.chars[1].Key == keys.I
}

// InitialString spells the initial with đ for a stroked d.
func (s Syllable) InitialString() string { return spell(s.chars, s.Initial, false) }

// NucleusString spells the nucleus with shape modifiers and without marks,
// e.g. "ươ" or "uyê".
func (s Syllable) NucleusString() string { return spell(s.chars, s.Nucleus, true) }

// NucleusBase spells the nucleus without any diacritic.
func (s Syllable) NucleusBase() string { return spell(s.chars, s.Nucleus, false) }

func (s Syllable) CodaString() string { return spell(s.chars, s.Coda, false) }

func spell(chars []buffer.Char, sp Span, shapes bool) string {
	if sp.Empty() {
		return ""
	}
	out := make([]rune, 0, sp.Len())
	for i := sp.Start; i < sp.End && i < len(chars); i++ {
		c := chars[i]
		plain := buffer.Char{Key: c.Key, Stroke: c.Stroke && c.Key == keys.D}
		if shapes {
			plain.Tone = c.Tone
		}
		if r, ok := plain.Rune(); ok {
			out = append(out, r)
		}
	}
	return string(out)
}
