// Package english decides whether the word being typed is English.
package english

import (
	"github.com/npillmayer/schuko/tracing"

	"vnime/internal/buffer"
	"vnime/internal/keys"
	"vnime/internal/syllable"
	"vnime/internal/validation"
)

func tracer() tracing.Trace {
	return tracing.Select("vnime.english")
}

const (
	// LockThreshold is the English score a word needs before it locks.
	LockThreshold = 80
	// ValidatorWeight moves both scores by the validator's opinion.
	ValidatorWeight = 30
	// DiacriticPenalty is taken from the English score once the buffer holds
	// a Vietnamese diacritic.
	DiacriticPenalty = 70
)

// State is the per-word language state. It only moves forward.
type State uint8

const (
	Unknown State = iota
	VietnameseLocked
	EnglishLocked
)

func (s State) String() string {
	switch s {
	case Unknown:
		return "unknown"
	case VietnameseLocked:
		return "vietnamese"
	case EnglishLocked:
		return "english"
	default:
		return "invalid"
	}
}

// Locked reports a final state.
func (s State) Locked() bool { return s != Unknown }

type Verdict struct {
	English    int
	Vietnamese int
	Lock       bool
	Dictionary bool
	Plausible  bool
	Layers     []string
}

type Detector struct {
	dict      *Dictionary
	validator validation.Validator
}

// NewDetector uses the builtin dictionary and validator when given nil.
func NewDetector(dict *Dictionary, v validation.Validator) *Detector {
	if dict == nil {
		dict = Builtin()
	}
	if v == nil {
		v = validation.Default
	}
	return &Detector{dict: dict, validator: v}
}

func (d *Detector) Dictionary() *Dictionary { return d.dict }

// Evaluate scores the current word. raw holds the keys as typed, b the
// transformed buffer.
func (d *Detector) Evaluate(raw []uint16, b *buffer.Buffer) Verdict {
	if len(raw) > 0 && d.dict.Contains(raw) {
		return Verdict{English: 100, Lock: true, Dictionary: true}
	}
	conf, fired := Phonotactic(raw, b)
	v := Verdict{English: conf, Vietnamese: 100 - conf, Layers: fired}
	v.Plausible = d.validator.Plausible(parseBuffer(b))
	if v.Plausible {
		v.Vietnamese += ValidatorWeight
		v.English -= ValidatorWeight
	} else {
		v.Vietnamese -= ValidatorWeight
		v.English += ValidatorWeight
	}
	if diacriticsFrom(b, initialHorn(raw)) {
		v.English -= DiacriticPenalty
	}
	v.English, v.Vietnamese = clamp(v.English), clamp(v.Vietnamese)
	v.Lock = v.English > v.Vietnamese && v.English >= LockThreshold
	return v
}

// initialHorn returns 1 when the word was started with a Telex "w": the
// horned first letter is then a symptom of the english onset and does not
// count as a typed diacritic.
func initialHorn(raw []uint16) int {
	if len(raw) > 0 && raw[0] == keys.W {
		return 1
	}
	return 0
}

func diacriticsFrom(b *buffer.Buffer, start int) bool {
	for i := start; i < b.Len(); i++ {
		if !b.At(i).Plain() {
			return true
		}
	}
	return false
}

func parseBuffer(b *buffer.Buffer) syllable.Syllable {
	return syllable.Parse(b.Chars())
}
