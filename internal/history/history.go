// Package history keeps the last committed words so backspace can reopen
// them.
package history

import "vnime/internal/buffer"

const Capacity = 10

type Entry struct {
	Buffer  buffer.Buffer
	Raw     buffer.RawInput
	English bool
}

// Ring overwrites the oldest entry when full.
type Ring struct {
	entries [Capacity]Entry
	head    int
	n       int
}

func (r *Ring) Len() int { return r.n }

func (r *Ring) Push(e Entry) {
	r.entries[r.head] = e
	r.head = (r.head + 1) % Capacity
	if r.n < Capacity {
		r.n++
	}
}

// Pop removes and returns the newest entry.
func (r *Ring) Pop() (Entry, bool) {
	if r.n == 0 {
		return Entry{}, false
	}
	r.head = (r.head - 1 + Capacity) % Capacity
	e := r.entries[r.head]
	r.entries[r.head] = Entry{}
	r.n--
	return e, true
}

// Peek returns the newest entry without removing it.
func (r *Ring) Peek() (*Entry, bool) {
	if r.n == 0 {
		return nil, false
	}
	return &r.entries[(r.head-1+Capacity)%Capacity], true
}

func (r *Ring) Clear() {
	*r = Ring{}
}
