package engine

import (
	"go.uber.org/zap"

	"vnime/internal/buffer"
	"vnime/internal/english"
	"vnime/internal/rebuild"
	"vnime/internal/tone"
	"vnime/internal/types"
)

func (e *Engine) backspace(shift bool) Result {
	e.afterSymbol = false
	if e.buf.IsEmpty() {
		return e.reopen()
	}
	prev := e.buf.Runes()
	if shift {
		e.Clear()
		return Result{Action: types.ActionReplace, Backspace: len(prev)}
	}

	pos := e.buf.Len() - 1
	e.buf.Pop()
	e.raw.DropPosition(pos)
	e.last.Reset()
	from := pos
	if e.buf.IsEmpty() {
		e.Clear()
		return replace(types.ActionReplace, rebuild.Diff(prev, nil, 0))
	}
	if was, now := tone.Place(&e.buf, e.cfg.ToneStyle); was != now {
		e.raw.RetargetMarks(was, now)
		from = min(from, was, now)
	}
	return replace(types.ActionReplace, rebuild.Diff(prev, e.buf.Runes(), from))
}

// reopen handles backspace on an empty word. Right after a committed word
// the space is deleted and the word becomes editable again; extra spaces
// are deleted by the host one at a time first.
func (e *Engine) reopen() Result {
	switch {
	case e.spaces > 1:
		e.spaces--
		return Result{}
	case e.spaces == 0 || e.history.Len() == 0:
		e.spaces = 0
		return Result{}
	}
	e.spaces = 0
	entry, _ := e.history.Pop()
	e.buf = entry.Buffer
	e.raw = entry.Raw
	e.last.Reset()
	e.state = english.Unknown
	if entry.English {
		e.state = english.EnglishLocked
	}
	word := e.buf.Runes()
	e.logger.Debug("reopened word", zap.String("word", string(word)))
	return Result{Action: types.ActionReplace, Backspace: 1 + len(word), Chars: word}
}

// RestoreWord makes an already rendered word the current word, for hosts
// that move the cursor back into text. It reports false when word holds
// anything but letters.
func (e *Engine) RestoreWord(word string) bool {
	chars, ok := buffer.ParseWord(word)
	if !ok || len(chars) == 0 || len(chars) > buffer.Capacity {
		return false
	}
	e.Clear()
	e.spaces = 0
	for i, c := range chars {
		e.buf.Push(c)
		for _, k := range modifierKeys(c, e.cfg.Method) {
			e.pushRaw(k, c.Caps, i, false)
		}
	}
	if pos, ok := e.buf.MarkedVowel(); ok {
		if k, ok := markKey(e.buf.At(pos).Mark, e.cfg.Method); ok {
			e.pushRaw(k, false, pos, true)
		}
	}
	return true
}

func (e *Engine) pushRaw(key uint16, caps bool, pos int, mark bool) {
	if e.raw.Push(key, caps) {
		e.raw.Own(pos, mark)
	}
}
