package buffer

import (
	"unicode"

	"golang.org/x/text/unicode/norm"

	"vnime/internal/keys"
)

// Tone is the vowel shape modifier. Horn on a renders as a breve.
type Tone uint8

const (
	ToneNone Tone = iota
	ToneCircumflex
	ToneHorn
)

// Mark is one of the five written tone marks; MarkNone is the level tone.
type Mark uint8

const (
	MarkNone Mark = iota
	MarkAcute
	MarkGrave
	MarkHook
	MarkTilde
	MarkDot
)

const (
	combCircumflex = '\u0302'
	combBreve      = '\u0306'
	combHorn       = '\u031b'
	combAcute      = '\u0301'
	combGrave      = '\u0300'
	combHook       = '\u0309'
	combTilde      = '\u0303'
	combDot        = '\u0323'
)

var markCombining = [...]rune{0, combAcute, combGrave, combHook, combTilde, combDot}

type glyphKey struct {
	base byte
	tone Tone
	mark Mark
}

type decomposed struct {
	key  uint16
	caps bool
	tone Tone
	mark Mark
	d    bool
}

var (
	glyphs  = map[glyphKey]rune{}
	reverse = map[rune]decomposed{}
)

// ToneAllowed reports whether a vowel key accepts a shape modifier.
func ToneAllowed(key uint16, tone Tone) bool {
	switch tone {
	case ToneNone:
		return true
	case ToneCircumflex:
		return key == keys.A || key == keys.E || key == keys.O
	case ToneHorn:
		return key == keys.A || key == keys.O || key == keys.U
	}
	return false
}

func init() {
	for _, key := range []uint16{keys.A, keys.E, keys.I, keys.O, keys.U, keys.Y} {
		base, _ := keys.ToChar(key, false)
		for tone := ToneNone; tone <= ToneHorn; tone++ {
			if !ToneAllowed(key, tone) {
				continue
			}
			for mark := MarkNone; mark <= MarkDot; mark++ {
				seq := []rune{base}
				switch {
				case tone == ToneCircumflex:
					seq = append(seq, combCircumflex)
				case tone == ToneHorn && key == keys.A:
					seq = append(seq, combBreve)
				case tone == ToneHorn:
					seq = append(seq, combHorn)
				}
				if mark != MarkNone {
					seq = append(seq, markCombining[mark])
				}
				composed := []rune(norm.NFC.String(string(seq)))
				if len(composed) != 1 {
					continue
				}
				r := composed[0]
				glyphs[glyphKey{base: byte(base), tone: tone, mark: mark}] = r
				reverse[r] = decomposed{key: key, tone: tone, mark: mark}
				reverse[unicode.ToUpper(r)] = decomposed{key: key, caps: true, tone: tone, mark: mark}
			}
		}
	}
	reverse['đ'] = decomposed{key: keys.D, d: true}
	reverse['Đ'] = decomposed{key: keys.D, caps: true, d: true}
}

// Rune renders one annotated character as a single precomposed codepoint.
func (c Char) Rune() (rune, bool) {
	if c.Key == keys.D && c.Stroke {
		if c.Caps {
			return 'Đ', true
		}
		return 'đ', true
	}
	base, ok := keys.ToChar(c.Key, false)
	if !ok {
		return 0, false
	}
	if keys.IsVowel(c.Key) {
		tone := c.Tone
		if !ToneAllowed(c.Key, tone) {
			tone = ToneNone
		}
		if r, ok := glyphs[glyphKey{base: byte(base), tone: tone, mark: c.Mark}]; ok {
			base = r
		}
	}
	if c.Caps {
		base = unicode.ToUpper(base)
	}
	return base, true
}

// Parse turns a rendered rune back into an annotated character. Letters
// without diacritics and plain ASCII keys are accepted too.
func Parse(r rune) (Char, bool) {
	if d, ok := reverse[r]; ok {
		return Char{Key: d.key, Caps: d.caps, Tone: d.tone, Mark: d.mark, Stroke: d.d}, true
	}
	if r < 128 {
		s, ok := keys.FromASCII(byte(r))
		if !ok || !keys.IsLetter(s.Key) {
			return Char{}, false
		}
		return Char{Key: s.Key, Caps: s.Caps}, true
	}
	// Decomposed input such as "ệ" arrives here one rune at a time
	// only if the caller skipped normalisation.
	return Char{}, false
}

// ParseWord parses a rendered word after NFC normalisation, so decomposed
// input such as "ệ" is accepted.
func ParseWord(word string) ([]Char, bool) {
	word = norm.NFC.String(word)
	out := make([]Char, 0, len(word))
	for _, r := range word {
		c, ok := Parse(r)
		if !ok {
			return nil, false
		}
		out = append(out, c)
	}
	return out, true
}
