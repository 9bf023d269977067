package transform

import (
	"vnime/internal/buffer"
	"vnime/internal/keys"
	"vnime/internal/syllable"
	"vnime/internal/tone"
	"vnime/internal/types"
)

type rule func(w *work) outcome

var tables [types.MethodPassthrough][128]rule

func init() {
	telex := &tables[types.MethodTelex]
	telex[keys.S] = mark(buffer.MarkAcute)
	telex[keys.F] = mark(buffer.MarkGrave)
	telex[keys.R] = mark(buffer.MarkHook)
	telex[keys.X] = mark(buffer.MarkTilde)
	telex[keys.J] = mark(buffer.MarkDot)
	telex[keys.Z] = remove
	telex[keys.A] = circumflex
	telex[keys.E] = circumflex
	telex[keys.O] = circumflex
	telex[keys.W] = telexW
	telex[keys.D] = telexStroke

	vni := &tables[types.MethodVNI]
	vni[keys.N1] = mark(buffer.MarkAcute)
	vni[keys.N2] = mark(buffer.MarkGrave)
	vni[keys.N3] = mark(buffer.MarkHook)
	vni[keys.N4] = mark(buffer.MarkTilde)
	vni[keys.N5] = mark(buffer.MarkDot)
	vni[keys.N6] = circumflex
	vni[keys.N7] = horn
	vni[keys.N8] = breve
	vni[keys.N9] = vniStroke
	vni[keys.N0] = remove
}

func lookup(method types.Method, key uint16) rule {
	if method < 0 || method >= types.MethodPassthrough || int(key) >= len(tables[method]) {
		return nil
	}
	return tables[method][key]
}

// IsTrigger reports whether key can transform the buffer under method.
func IsTrigger(method types.Method, key uint16) bool {
	return lookup(method, key) != nil
}

func parse(b *buffer.Buffer) syllable.Syllable {
	return syllable.Parse(b.Chars())
}

func mark(m buffer.Mark) rule {
	return func(w *work) outcome {
		s := parse(w.b)
		if !s.HasVowel() || !s.Single() {
			return declined
		}
		cur, marked := w.b.MarkedVowel()
		if marked && w.b.At(cur).Mark == m {
			w.cancelMark(cur)
			w.appendLiteral()
			w.kind = KindRevert
			return final
		}
		pos := tone.Position(s, w.opt.Style)
		if pos < 0 {
			return declined
		}
		w.recordOne(KindMark, pos)
		if marked {
			w.b.At(cur).Mark = buffer.MarkNone
			w.move(cur, pos)
		}
		w.b.At(pos).Mark = m
		w.touch(pos)
		w.kind = KindMark
		w.own, w.ownMark = pos, true
		return applied
	}
}

// remove clears the mark, or the shape modifiers when there is no mark.
func remove(w *work) outcome {
	if pos, ok := w.b.MarkedVowel(); ok {
		w.b.At(pos).Mark = buffer.MarkNone
		w.touch(pos)
		w.kind = KindRemove
		w.own, w.ownMark = pos, true
		return final
	}
	s := parse(w.b)
	first := -1
	for i := s.Nucleus.Start; i < s.Nucleus.End; i++ {
		if c := w.b.At(i); c.Tone != buffer.ToneNone {
			c.Tone = buffer.ToneNone
			w.touch(i)
			if first < 0 {
				first = i
			}
		}
	}
	if first < 0 {
		return declined
	}
	w.kind = KindRemove
	w.own = first
	w.reposition()
	return final
}

// circumflex puts a hat on a, e or o. Telex needs the vowel of the same
// letter; VNI takes the last eligible vowel.
func circumflex(w *work) outcome {
	s := parse(w.b)
	if !s.HasVowel() || !s.Single() {
		return declined
	}
	target := -1
	for i := s.Nucleus.End - 1; i >= s.Nucleus.Start; i-- {
		c := w.b.At(i)
		if w.opt.Method == types.MethodTelex {
			if c.Key == w.key && c.Tone == buffer.ToneNone {
				target = i
				break
			}
			continue
		}
		if buffer.ToneAllowed(c.Key, buffer.ToneCircumflex) && c.Tone != buffer.ToneCircumflex {
			target = i
			break
		}
	}
	if target < 0 {
		return declined
	}
	w.recordOne(KindTone, target)
	w.b.At(target).Tone = buffer.ToneCircumflex
	w.touch(target)
	w.kind = KindTone
	w.own = target
	w.reposition()
	return applied
}

// telexW horns the nucleus, or types ư when there is no vowel yet.
func telexW(w *work) outcome {
	s := parse(w.b)
	if !s.Single() {
		return declined
	}
	if !s.HasVowel() {
		return wVowel(w)
	}
	if applyHorn(w, s, true, true) {
		return applied
	}
	if completeHorn(w.b, s) {
		w.kind = KindAbsorb
		w.own = s.Nucleus.Start
		return final
	}
	return declined
}

func horn(w *work) outcome {
	s := parse(w.b)
	if !s.HasVowel() || !s.Single() {
		return declined
	}
	if applyHorn(w, s, true, false) {
		return applied
	}
	return declined
}

func breve(w *work) outcome {
	s := parse(w.b)
	if !s.HasVowel() || !s.Single() {
		return declined
	}
	if applyHorn(w, s, false, true) {
		return applied
	}
	return declined
}

// applyHorn picks the vowel for a horn or breve:
//   - u followed by o takes the compound ươ;
//   - oa becomes oă;
//   - otherwise the first u or o, then the first a.
func applyHorn(w *work, s syllable.Syllable, uo, a bool) bool {
	start, end := s.Nucleus.Start, s.Nucleus.End
	at := func(i int) *buffer.Char { return w.b.At(i) }
	hornable := func(i int) bool { return at(i).Tone != buffer.ToneHorn }

	if uo {
		for i := start; i+1 < end; i++ {
			if at(i).Key == keys.U && at(i+1).Key == keys.O && (hornable(i) || hornable(i+1)) {
				w.recordTwo(KindTone, i, i+1)
				at(i).Tone = buffer.ToneHorn
				at(i + 1).Tone = buffer.ToneHorn
				w.touch(i)
				w.finishHorn(i)
				return true
			}
		}
	}
	target := -1
	if a && end-start >= 2 && at(end-2).Key == keys.O && at(end-1).Key == keys.A && hornable(end-1) {
		target = end - 1
	}
	if target < 0 && uo {
		for i := start; i < end; i++ {
			if (at(i).Key == keys.U || at(i).Key == keys.O) && hornable(i) {
				target = i
				break
			}
		}
	}
	if target < 0 && a {
		for i := start; i < end; i++ {
			if at(i).Key == keys.A && hornable(i) {
				target = i
				break
			}
		}
	}
	if target < 0 {
		return false
	}
	// ă never takes a following vowel.
	if at(target).Key == keys.A && target+1 < end {
		return false
	}
	w.recordOne(KindTone, target)
	at(target).Tone = buffer.ToneHorn
	w.touch(target)
	if at(target).Key == keys.U {
		w.normalizeHorn(target)
	}
	w.finishHorn(target)
	return true
}

func (w *work) finishHorn(owner int) {
	w.kind = KindTone
	w.own = owner
	w.reposition()
}

// completeHorn reports a nucleus that already holds every horn it can take.
func completeHorn(b *buffer.Buffer, s syllable.Syllable) bool {
	for i := s.Nucleus.Start; i+1 < s.Nucleus.End; i++ {
		u, o := b.At(i), b.At(i+1)
		if u.Key == keys.U && o.Key == keys.O && u.Tone == buffer.ToneHorn && o.Tone == buffer.ToneHorn {
			return true
		}
	}
	return false
}

// wVowel types ư for a lone w. The skip flag only applies at the start of
// a word.
func wVowel(w *work) outcome {
	if w.b.IsEmpty() && w.opt.SkipWShortcut {
		return declined
	}
	pos := w.b.Len()
	if !w.b.Push(buffer.Char{Key: keys.U, Caps: w.caps, Tone: buffer.ToneHorn}) {
		return declined
	}
	*w.last = Record{Kind: KindWVowel, Key: w.key, Raw: w.rawIdx, Pos: [2]int{pos}, N: 1}
	w.touch(pos)
	w.kind = KindWVowel
	w.own = pos
	return applied
}

// telexStroke handles dd and the delayed form where the second d follows an
// open syllable: "dad" gives "đa".
func telexStroke(w *work) outcome {
	first := w.b.At(0)
	if first == nil || first.Key != keys.D || first.Stroke {
		return declined
	}
	if w.b.Len() > 1 {
		s := parse(w.b)
		if s.Initial.Len() != 1 || !s.HasVowel() || !s.Coda.Empty() || !s.Single() {
			return declined
		}
	}
	return strokeAt(w, 0)
}

func vniStroke(w *work) outcome {
	first := w.b.At(0)
	if first == nil || first.Key != keys.D || first.Stroke {
		return declined
	}
	if s := parse(w.b); s.Initial.Len() != 1 {
		return declined
	}
	return strokeAt(w, 0)
}

func strokeAt(w *work, pos int) outcome {
	w.recordOne(KindStroke, pos)
	w.b.At(pos).Stroke = true
	w.touch(pos)
	w.kind = KindStroke
	w.stroke = true
	w.own = pos
	return applied
}
