// Package transform applies Telex and VNI keystrokes to a word buffer.
//
// Apply is called once per key after the key has been recorded in the raw
// input. It either edits the buffer in place (a mark, a shape modifier, a
// stroke) or appends the key as a literal character. Every edit is checked
// against the validator and rolled back when the result can no longer become
// a Vietnamese syllable.
package transform

import (
	"github.com/npillmayer/schuko/tracing"

	"vnime/internal/buffer"
	"vnime/internal/keys"
	"vnime/internal/tone"
	"vnime/internal/types"
	"vnime/internal/validation"
)

func tracer() tracing.Trace {
	return tracing.Select("vnime.transform")
}

type Options struct {
	Method        types.Method
	Style         types.ToneStyle
	FreeTone      bool
	SkipWShortcut bool
	Validator     validation.Validator
}

func DefaultOptions() Options {
	return Options{
		Method:    types.MethodTelex,
		Style:     types.ToneModern,
		Validator: validation.Default,
	}
}

// Kind classifies what a key did to the buffer.
type Kind uint8

const (
	KindNone Kind = iota
	KindLiteral
	KindMark
	KindRemove
	KindTone
	KindStroke
	KindWVowel
	KindAbsorb
	KindRevert
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindLiteral:
		return "literal"
	case KindMark:
		return "mark"
	case KindRemove:
		return "remove"
	case KindTone:
		return "tone"
	case KindStroke:
		return "stroke"
	case KindWVowel:
		return "w-vowel"
	case KindAbsorb:
		return "absorb"
	case KindRevert:
		return "revert"
	default:
		return "unknown"
	}
}

func (k Kind) revertible() bool {
	switch k {
	case KindMark, KindTone, KindStroke, KindWVowel:
		return true
	}
	return false
}

// Record remembers the last transform so that pressing its trigger again
// can undo it. Raw is the index of the trigger in the raw input.
type Record struct {
	Kind Kind
	Key  uint16
	Raw  int
	Pos  [2]int
	Prev [2]buffer.Char
	N    int
}

func (r *Record) Reset() { *r = Record{} }

// Edit reports the outcome of one key. From is the first buffer position
// whose rendering may have changed.
type Edit struct {
	Kind Kind
	From int
	// Stroke is set when the key turned d into đ.
	Stroke bool
}

type outcome uint8

const (
	declined outcome = iota
	applied
	final
)

// work carries one key through the rules. Raw ownership changes are queued
// and only committed once the edit survives validation.
type work struct {
	b    *buffer.Buffer
	raw  *buffer.RawInput
	last *Record
	key  uint16
	caps bool
	opt  Options

	rawIdx  int
	from    int
	kind    Kind
	stroke  bool
	own     int
	ownMark bool
	moves   [2][2]int
	nMoves  int
}

func (w *work) touch(i int) {
	if i >= 0 && i < w.from {
		w.from = i
	}
}

func (w *work) move(from, to int) {
	if from == to || w.nMoves == len(w.moves) {
		return
	}
	w.moves[w.nMoves] = [2]int{from, to}
	w.nMoves++
	w.touch(from)
	w.touch(to)
}

// reposition re-places the mark after an edit changed the syllable.
func (w *work) reposition() {
	from, to := tone.Place(w.b, w.opt.Style)
	if from != to {
		w.move(from, to)
	}
}

func (w *work) commit() Edit {
	for i := 0; i < w.nMoves; i++ {
		w.raw.RetargetMarks(w.moves[i][0], w.moves[i][1])
	}
	if w.own >= 0 {
		w.raw.Own(w.own, w.ownMark)
	}
	return Edit{Kind: w.kind, From: w.from, Stroke: w.stroke}
}

// Apply runs key through the rule table of opt.Method. The key must already
// be the last raw entry and the buffer must have room for one character.
func Apply(b *buffer.Buffer, raw *buffer.RawInput, last *Record, key uint16, caps bool, opt Options) Edit {
	if opt.Validator == nil {
		opt.Validator = validation.Default
	}
	w := &work{b: b, raw: raw, last: last, key: key, caps: caps, opt: opt, rawIdx: raw.Len() - 1}
	w.reset()
	prev := *last
	last.Reset()

	rule := lookup(opt.Method, key)
	if rule == nil {
		return w.literal()
	}
	if prev.Kind.revertible() && prev.Key == key {
		return w.revert(prev)
	}

	snapshot := b.Clone()
	switch rule(w) {
	case final:
		return w.commit()
	case applied:
		if opt.FreeTone || w.plausible() {
			return w.commit()
		}
		tracer().Debugf("rolled back %s for %q", w.kind, b.Render())
		*b = snapshot
		last.Reset()
		w.reset()
	}
	return w.literal()
}

func (w *work) reset() {
	w.from = w.b.Len()
	w.kind = KindNone
	w.stroke = false
	w.own = -1
	w.ownMark = false
	w.nMoves = 0
}

func (w *work) plausible() bool {
	return w.opt.Validator.Plausible(parse(w.b))
}

// literal appends the key as typed.
func (w *work) literal() Edit {
	if !w.appendLiteral() {
		return Edit{Kind: KindNone, From: w.b.Len()}
	}
	return w.commit()
}

func (w *work) appendLiteral() bool {
	pos := w.b.Len()
	if !w.b.Push(buffer.NewChar(w.key, w.caps)) {
		return false
	}
	w.kind = KindLiteral
	w.touch(pos)
	w.own = pos
	w.ownMark = false
	if w.key == keys.O && pos >= 1 {
		w.normalizeHorn(pos - 1)
	}
	w.reposition()
	return true
}

// normalizeHorn turns ưo into ươ. The q check keeps "quơ" intact.
func (w *work) normalizeHorn(u int) {
	uc, oc := w.b.At(u), w.b.At(u+1)
	if uc == nil || oc == nil || uc.Key != keys.U || uc.Tone != buffer.ToneHorn {
		return
	}
	if oc.Key != keys.O || oc.Tone != buffer.ToneNone {
		return
	}
	if q := w.b.At(u - 1); q != nil && q.Key == keys.Q {
		return
	}
	oc.Tone = buffer.ToneHorn
	w.touch(u + 1)
}

// revert undoes the previous transform and types its trigger literally.
func (w *work) revert(prev Record) Edit {
	switch prev.Kind {
	case KindMark:
		if pos, ok := w.b.MarkedVowel(); ok {
			w.cancelMark(pos)
		}
	case KindTone, KindStroke:
		for i := 0; i < prev.N; i++ {
			c := w.b.At(prev.Pos[i])
			if c == nil {
				continue
			}
			c.Tone = prev.Prev[i].Tone
			c.Stroke = prev.Prev[i].Stroke
			w.touch(prev.Pos[i])
		}
		if e := w.raw.At(prev.Raw); e != nil {
			e.Pos = w.b.Len()
			e.Mark = false
		}
	case KindWVowel:
		if pos := w.b.Len() - 1; pos == prev.Pos[0] {
			w.b.Pop()
			w.touch(pos)
		}
	}
	e := w.literal()
	e.Kind = KindRevert
	tracer().Debugf("reverted %s, buffer %q", prev.Kind, w.b.Render())
	return e
}

// cancelMark clears the mark at pos and hands its triggers to the literal
// that is about to be appended.
func (w *work) cancelMark(pos int) {
	w.b.At(pos).Mark = buffer.MarkNone
	w.touch(pos)
	w.raw.Reassign(pos, w.b.Len())
}

// recordOne saves the state of one position before a revertible edit.
func (w *work) recordOne(kind Kind, pos int) {
	c, _ := w.b.Get(pos)
	*w.last = Record{Kind: kind, Key: w.key, Raw: w.rawIdx, Pos: [2]int{pos}, Prev: [2]buffer.Char{c}, N: 1}
}

func (w *work) recordTwo(kind Kind, a, b int) {
	ca, _ := w.b.Get(a)
	cb, _ := w.b.Get(b)
	*w.last = Record{Kind: kind, Key: w.key, Raw: w.rawIdx, Pos: [2]int{a, b}, Prev: [2]buffer.Char{ca, cb}, N: 2}
}
