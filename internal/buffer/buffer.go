// Package buffer holds the per-word character state the engine edits: the
// annotated Buffer and the RawInput record of the keys that produced it.
package buffer

import (
	"strings"

	"vnime/internal/keys"
)

// Capacity bounds both buffers. Input beyond it passes through.
const Capacity = 256

// Char is one typed letter with its Vietnamese annotations.
type Char struct {
	Key    uint16
	Caps   bool
	Tone   Tone
	Mark   Mark
	Stroke bool
}

func NewChar(key uint16, caps bool) Char {
	return Char{Key: key, Caps: caps}
}

// Plain reports a character without any diacritic.
func (c Char) Plain() bool {
	return c.Tone == ToneNone && c.Mark == MarkNone && !c.Stroke
}

// Buffer is an append-only sequence of Chars; deletion only at the tail.
type Buffer struct {
	chars [Capacity]Char
	n     int
}

func (b *Buffer) Len() int      { return b.n }
func (b *Buffer) IsEmpty() bool { return b.n == 0 }
func (b *Buffer) IsFull() bool  { return b.n >= Capacity }

// Push appends c and reports false when the buffer is full.
func (b *Buffer) Push(c Char) bool {
	if b.n >= Capacity {
		return false
	}
	b.chars[b.n] = c
	b.n++
	return true
}

func (b *Buffer) Pop() (Char, bool) {
	if b.n == 0 {
		return Char{}, false
	}
	b.n--
	c := b.chars[b.n]
	b.chars[b.n] = Char{}
	return c, true
}

func (b *Buffer) Clear() {
	for i := 0; i < b.n; i++ {
		b.chars[i] = Char{}
	}
	b.n = 0
}

func (b *Buffer) Get(i int) (Char, bool) {
	if i < 0 || i >= b.n {
		return Char{}, false
	}
	return b.chars[i], true
}

// At returns a pointer for in-place edits, or nil when i is out of range.
func (b *Buffer) At(i int) *Char {
	if i < 0 || i >= b.n {
		return nil
	}
	return &b.chars[i]
}

func (b *Buffer) Last() (Char, bool) {
	return b.Get(b.n - 1)
}

// Chars exposes the live contents. The slice aliases the buffer.
func (b *Buffer) Chars() []Char {
	return b.chars[:b.n]
}

func (b *Buffer) Keys() []uint16 {
	out := make([]uint16, b.n)
	for i := 0; i < b.n; i++ {
		out[i] = b.chars[i].Key
	}
	return out
}

func (b *Buffer) Tones() []Tone {
	out := make([]Tone, b.n)
	for i := 0; i < b.n; i++ {
		out[i] = b.chars[i].Tone
	}
	return out
}

// FindVowels returns the positions of vowel letters in order.
func (b *Buffer) FindVowels() []int {
	out := make([]int, 0, 4)
	for i := 0; i < b.n; i++ {
		if keys.IsVowel(b.chars[i].Key) {
			out = append(out, i)
		}
	}
	return out
}

// HasTransforms reports whether any character carries a diacritic.
func (b *Buffer) HasTransforms() bool {
	for i := 0; i < b.n; i++ {
		if !b.chars[i].Plain() {
			return true
		}
	}
	return false
}

// MarkedVowel returns the position of the vowel carrying a tone mark.
func (b *Buffer) MarkedVowel() (int, bool) {
	for i := 0; i < b.n; i++ {
		if b.chars[i].Mark != MarkNone && keys.IsVowel(b.chars[i].Key) {
			return i, true
		}
	}
	return -1, false
}

// Runes renders the buffer, one rune per character.
func (b *Buffer) Runes() []rune {
	return b.RunesFrom(0)
}

func (b *Buffer) RunesFrom(from int) []rune {
	if from < 0 {
		from = 0
	}
	if from >= b.n {
		return nil
	}
	out := make([]rune, 0, b.n-from)
	for i := from; i < b.n; i++ {
		if r, ok := b.chars[i].Rune(); ok {
			out = append(out, r)
		}
	}
	return out
}

func (b *Buffer) Render() string {
	var sb strings.Builder
	sb.Grow(b.n * 2)
	for i := 0; i < b.n; i++ {
		if r, ok := b.chars[i].Rune(); ok {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func (b *Buffer) String() string { return b.Render() }

// Clone returns an independent copy.
func (b *Buffer) Clone() Buffer {
	return *b
}

// Equal compares contents only.
func (b *Buffer) Equal(other *Buffer) bool {
	if b.n != other.n {
		return false
	}
	for i := 0; i < b.n; i++ {
		if b.chars[i] != other.chars[i] {
			return false
		}
	}
	return true
}
