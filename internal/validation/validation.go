// Package validation decides whether a parsed syllable is legal Vietnamese.
package validation

import (
	"strings"

	"vnime/internal/buffer"
	"vnime/internal/keys"
	"vnime/internal/syllable"
)

type Result uint8

const (
	Valid Result = iota
	InvalidInitial
	InvalidNucleus
	InvalidCoda
	InvalidNucleusCoda
	NoSyllable
)

func (r Result) String() string {
	switch r {
	case Valid:
		return "valid"
	case InvalidInitial:
		return "invalid initial"
	case InvalidNucleus:
		return "invalid nucleus"
	case InvalidCoda:
		return "invalid coda"
	case InvalidNucleusCoda:
		return "invalid nucleus/coda pair"
	case NoSyllable:
		return "no syllable"
	default:
		return "unknown"
	}
}

// Validator is consulted by the transform rules and the english detector.
// Validate is strict; Plausible accepts syllables that further typing can
// still complete, such as "ngh" or "vie" before its circumflex arrives.
type Validator interface {
	Validate(s syllable.Syllable) Result
	Plausible(s syllable.Syllable) bool
}

// Default is the table-driven validator used in production.
var Default Validator = tableValidator{}

type tableValidator struct{}

var (
	initialSet  = map[string]bool{}
	initialPref = map[string]bool{}
	codaSet     = map[string]bool{}
	codaPref    = map[string]bool{}
	nucleusSeqs [][]buffer.Char
)

func init() {
	for _, s := range initials {
		initialSet[s] = true
		r := []rune(s)
		for i := 1; i <= len(r); i++ {
			initialPref[string(r[:i])] = true
		}
	}
	for _, s := range codas {
		codaSet[s] = true
		codaPref[s[:1]] = true
		codaPref[s] = true
	}
	for _, s := range nuclei {
		seq := make([]buffer.Char, 0, 3)
		for _, r := range s {
			c, ok := buffer.Parse(r)
			if !ok {
				panic("validation: bad nucleus table entry " + s)
			}
			seq = append(seq, c)
		}
		nucleusSeqs = append(nucleusSeqs, seq)
	}
}

func (tableValidator) Validate(s syllable.Syllable) Result {
	if !s.HasVowel() {
		return NoSyllable
	}
	if !s.Initial.Empty() && !initialSet[s.InitialString()] {
		return InvalidInitial
	}
	nucleus := s.Chars()[s.Nucleus.Start:s.Nucleus.End]
	if !matchNucleus(nucleus, false, false) {
		return InvalidNucleus
	}
	if !s.Single() {
		return InvalidCoda
	}
	coda := s.CodaString()
	if coda != "" && !codaSet[coda] {
		return InvalidCoda
	}
	if illegalPair(nucleus[len(nucleus)-1], coda, false) {
		return InvalidNucleusCoda
	}
	return Valid
}

func (tableValidator) Plausible(s syllable.Syllable) bool {
	if !s.Single() {
		return false
	}
	initial := s.InitialString()
	if !s.HasVowel() {
		return initial == "" || initialPref[initial]
	}
	if initial != "" && !initialSet[initial] {
		return false
	}
	nucleus := s.Chars()[s.Nucleus.Start:s.Nucleus.End]
	coda := s.CodaString()
	if coda == "" {
		return matchNucleus(nucleus, true, true)
	}
	if !matchNucleus(nucleus, false, true) || !codaPref[coda] {
		return false
	}
	return !illegalPair(nucleus[len(nucleus)-1], coda, true)
}

// matchNucleus compares vowels against the whitelist. With prefix set the
// vowels only need to start an entry; with loose set a vowel without a shape
// modifier matches any shape of the same letter.
func matchNucleus(vowels []buffer.Char, prefix, loose bool) bool {
	for _, seq := range nucleusSeqs {
		if len(vowels) > len(seq) || (!prefix && len(vowels) != len(seq)) {
			continue
		}
		ok := true
		for i, v := range vowels {
			want := seq[i]
			if v.Key != want.Key {
				ok = false
				break
			}
			if v.Tone != want.Tone && !(loose && v.Tone == buffer.ToneNone) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

func illegalPair(last buffer.Char, coda string, loose bool) bool {
	switch last.Key {
	case keys.O, keys.U:
		return coda == "ch" || coda == "nh"
	case keys.E:
		// A bare e may still take its circumflex.
		return coda == "ng" && last.Tone == buffer.ToneNone && !loose
	}
	return false
}

// Describe renders a syllable for diagnostics, e.g. "ng|ươ|i".
func Describe(s syllable.Syllable) string {
	parts := []string{s.InitialString(), s.NucleusString(), s.CodaString()}
	return strings.Join(parts, "|")
}
