package english

import (
	"strings"

	"vnime/internal/buffer"
	"vnime/internal/keys"
	"vnime/internal/syllable"
)

// Layer is one phonotactic signal. Weight is the English confidence the
// signal carries on its own.
type Layer struct {
	Name   string
	Weight int
	match  func(w word) bool
}

// word is what the layers look at. typed spells the keys as pressed, so a
// Telex "w" stays "w"; base spells the buffer without diacritics.
type word struct {
	typed string
	base  string
	syl   syllable.Syllable
}

var (
	onsetClusters = []string{
		"bl", "br", "cl", "cr", "dr", "fl", "fr", "gl", "gr", "pl", "pr",
		"sc", "sk", "sl", "sm", "sn", "sp", "st", "sw", "tw", "wr", "sh", "wh",
	}
	suffixes = []string{
		"tion", "sion", "ness", "ment", "able", "ible", "ful", "less", "ous",
		"ing", "ed", "ly", "ore", "er", "ise", "ize",
	}
	codaClusters = []string{
		"ght", "st", "nd", "nt", "mp", "nk", "ck", "rd", "rk", "rt", "lt",
		"ld", "ft", "pt", "sk", "ls", "rs", "ts", "ds",
	}
	prefixes     = []string{"un", "dis", "mis", "pre", "sub", "inter", "trans", "over", "under", "super"}
	vowelPairs   = []string{"ea", "ei", "ou", "ae", "io", "yo", "oy"}
	vietDigraphs = map[string]bool{
		"ch": true, "gh": true, "kh": true, "ng": true, "nh": true, "ph": true, "th": true, "tr": true,
	}
)

// Layers lists the signals in evaluation order.
var Layers = []Layer{
	{Name: "invalid-initial", Weight: 100, match: func(w word) bool {
		return strings.IndexByte("fjwz", w.typed[0]) >= 0
	}},
	{Name: "onset-cluster", Weight: 98, match: func(w word) bool {
		return hasAnyPrefix(w.typed, onsetClusters, 0)
	}},
	{Name: "double-consonant", Weight: 95, match: func(x word) bool {
		w := x.base
		for i := 0; i+1 < len(w); i++ {
			if w[i] == w[i+1] && w[i] != 'd' && !isVowelByte(w[i]) {
				return true
			}
		}
		return false
	}},
	{Name: "suffix", Weight: 90, match: func(x word) bool {
		w := x.base
		for _, s := range suffixes {
			if len(w) > len(s)+1 && strings.HasSuffix(w, s) {
				return true
			}
		}
		return false
	}},
	{Name: "coda-cluster", Weight: 91, match: func(x word) bool {
		w := x.base
		tail := trailingConsonants(w)
		if len(tail) < 2 || len(tail) == len(w) {
			return false
		}
		for _, c := range codaClusters {
			if strings.HasSuffix(tail, c) {
				return true
			}
		}
		return false
	}},
	{Name: "prefix", Weight: 60, match: func(x word) bool {
		w := x.base
		return hasAnyPrefix(w, prefixes, 2)
	}},
	{Name: "vowel-cluster", Weight: 85, match: func(x word) bool {
		w := x.base
		for _, p := range vowelPairs {
			if strings.Contains(w, p) {
				return true
			}
		}
		return false
	}},
	{Name: "bigram", Weight: 80, match: func(x word) bool {
		w := x.base
		for i := 0; i+1 < len(w); i++ {
			if isVowelByte(w[i]) || isVowelByte(w[i+1]) {
				continue
			}
			if !vietDigraphs[w[i:i+2]] {
				return true
			}
		}
		return false
	}},
	{Name: "multi-syllable", Weight: 90, match: func(w word) bool {
		return !w.syl.Single()
	}},
}

func hasAnyPrefix(w string, list []string, extra int) bool {
	for _, p := range list {
		if len(w) >= len(p)+extra && strings.HasPrefix(w, p) {
			return true
		}
	}
	return false
}

func isVowelByte(c byte) bool {
	return strings.IndexByte("aeiouy", c) >= 0
}

func trailingConsonants(w string) string {
	i := len(w)
	for i > 0 && !isVowelByte(w[i-1]) {
		i--
	}
	return w[i:]
}

// baseLetters spells the buffer's letters without diacritics. Non-letters
// are skipped.
func baseLetters(b *buffer.Buffer) string {
	var sb strings.Builder
	for _, c := range b.Chars() {
		if !keys.IsLetter(c.Key) {
			continue
		}
		if r, ok := keys.ToChar(c.Key, false); ok {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// typedLetters spells the letter keys of raw in lower case.
func typedLetters(raw []uint16) string {
	var sb strings.Builder
	for _, k := range raw {
		if !keys.IsLetter(k) {
			continue
		}
		if r, ok := keys.ToChar(k, false); ok {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Phonotactic scores the word. The onset layers read the raw keys, the rest
// read the buffer's letters. The strongest signal sets the confidence; each
// further signal adds five points.
func Phonotactic(raw []uint16, b *buffer.Buffer) (confidence int, fired []string) {
	w := word{typed: typedLetters(raw), base: baseLetters(b), syl: syllable.Parse(b.Chars())}
	if w.base == "" {
		return 0, nil
	}
	if w.typed == "" {
		w.typed = w.base
	}
	for _, l := range Layers {
		if !l.match(w) {
			continue
		}
		fired = append(fired, l.Name)
		if l.Weight > confidence {
			confidence = l.Weight
		}
	}
	if len(fired) > 1 {
		confidence += 5 * (len(fired) - 1)
	}
	return clamp(confidence), fired
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
