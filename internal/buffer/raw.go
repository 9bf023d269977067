package buffer

import (
	"strings"

	"vnime/internal/keys"
)

// RawEntry is one untransformed keystroke. Pos is the buffer position the
// key created or last modified; Mark flags tone-mark triggers, whose owner
// moves with the mark.
type RawEntry struct {
	Key  uint16
	Caps bool
	Pos  int
	Mark bool
}

// RawInput records the keys of the current word in the order they were
// typed.
type RawInput struct {
	entries [Capacity]RawEntry
	n       int
}

func (r *RawInput) Len() int      { return r.n }
func (r *RawInput) IsEmpty() bool { return r.n == 0 }
func (r *RawInput) IsFull() bool  { return r.n >= Capacity }

func (r *RawInput) Push(key uint16, caps bool) bool {
	if r.n >= Capacity {
		return false
	}
	r.entries[r.n] = RawEntry{Key: key, Caps: caps, Pos: -1}
	r.n++
	return true
}

func (r *RawInput) Pop() (RawEntry, bool) {
	if r.n == 0 {
		return RawEntry{}, false
	}
	r.n--
	e := r.entries[r.n]
	r.entries[r.n] = RawEntry{}
	return e, true
}

func (r *RawInput) Clear() {
	for i := 0; i < r.n; i++ {
		r.entries[i] = RawEntry{}
	}
	r.n = 0
}

func (r *RawInput) At(i int) *RawEntry {
	if i < 0 || i >= r.n {
		return nil
	}
	return &r.entries[i]
}

// Last returns the most recent entry, or nil.
func (r *RawInput) Last() *RawEntry {
	return r.At(r.n - 1)
}

func (r *RawInput) Entries() []RawEntry {
	return r.entries[:r.n]
}

func (r *RawInput) Keys() []uint16 {
	out := make([]uint16, r.n)
	for i := 0; i < r.n; i++ {
		out[i] = r.entries[i].Key
	}
	return out
}

// Own assigns the most recent entry to a buffer position.
func (r *RawInput) Own(pos int, mark bool) {
	if e := r.Last(); e != nil {
		e.Pos = pos
		e.Mark = mark
	}
}

// RetargetMarks moves mark-trigger ownership when a tone mark is re-placed.
func (r *RawInput) RetargetMarks(from, to int) {
	for i := 0; i < r.n; i++ {
		if r.entries[i].Mark && r.entries[i].Pos == from {
			r.entries[i].Pos = to
		}
	}
}

// Reassign hands every mark trigger owned by from to the plain character at
// to. Used when a repeated mark key cancels the mark and types itself.
func (r *RawInput) Reassign(from, to int) {
	for i := 0; i < r.n; i++ {
		if r.entries[i].Mark && r.entries[i].Pos == from {
			r.entries[i].Pos = to
			r.entries[i].Mark = false
		}
	}
}

// DropPosition removes every entry owned by pos and returns how many went.
func (r *RawInput) DropPosition(pos int) int {
	w := 0
	for i := 0; i < r.n; i++ {
		if r.entries[i].Pos == pos {
			continue
		}
		r.entries[w] = r.entries[i]
		w++
	}
	dropped := r.n - w
	for i := w; i < r.n; i++ {
		r.entries[i] = RawEntry{}
	}
	r.n = w
	return dropped
}

// Literal replaces the record with one plain entry per buffer character.
func (r *RawInput) Literal(b *Buffer) {
	r.Clear()
	for i, c := range b.Chars() {
		r.entries[i] = RawEntry{Key: c.Key, Caps: c.Caps, Pos: i}
		r.n++
	}
}

// Runes spells the keys as typed.
func (r *RawInput) Runes() []rune {
	out := make([]rune, 0, r.n)
	for i := 0; i < r.n; i++ {
		if ch, ok := keys.ToChar(r.entries[i].Key, r.entries[i].Caps); ok {
			out = append(out, ch)
		}
	}
	return out
}

func (r *RawInput) String() string {
	var sb strings.Builder
	for _, ch := range r.Runes() {
		sb.WriteRune(ch)
	}
	return sb.String()
}

func (r *RawInput) Clone() RawInput {
	return *r
}
