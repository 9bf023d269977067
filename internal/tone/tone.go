// Package tone chooses the vowel that carries a tone mark.
package tone

import (
	"vnime/internal/buffer"
	"vnime/internal/keys"
	"vnime/internal/syllable"
	"vnime/internal/types"
)

// Position returns the buffer index of the vowel that takes the mark, or -1
// when the syllable has no nucleus. The qu and gi glides never count: the
// parser already moved them into the initial.
func Position(s syllable.Syllable, style types.ToneStyle) int {
	if !s.HasVowel() {
		return -1
	}
	chars := s.Chars()
	start, n := s.Nucleus.Start, s.Nucleus.Len()

	// A vowel with a shape modifier always wins (ươ, iê, uô, uyê...).
	for i := s.Nucleus.End - 1; i >= start; i-- {
		if chars[i].Tone != buffer.ToneNone {
			return i
		}
	}

	switch n {
	case 1:
		return start
	case 2:
		if !s.Coda.Empty() {
			return start + 1
		}
		if modernPair(chars[start].Key, chars[start+1].Key) && style == types.ToneModern {
			return start + 1
		}
		return start
	default:
		return start + 1
	}
}

// oa, oe and uy move the mark to the second vowel under the modern rules.
func modernPair(first, second uint16) bool {
	switch {
	case first == keys.O && (second == keys.A || second == keys.E):
		return true
	case first == keys.U && second == keys.Y:
		return true
	}
	return false
}

// Place moves the syllable's existing mark onto the vowel Position picks.
// It returns the old and new positions; from == to when nothing moved and
// both are -1 when the buffer has no mark.
func Place(b *buffer.Buffer, style types.ToneStyle) (from, to int) {
	from, ok := b.MarkedVowel()
	if !ok {
		return -1, -1
	}
	s := syllable.Parse(b.Chars())
	if !s.Single() {
		return from, from
	}
	to = Position(s, style)
	if to < 0 || to == from {
		return from, from
	}
	mark := b.At(from).Mark
	b.At(from).Mark = buffer.MarkNone
	b.At(to).Mark = mark
	return from, to
}
