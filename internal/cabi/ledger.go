package cabi

import "sync"

// Ledger tracks the C strings the library has handed out, so that each is
// freed exactly once whichever of process_key, engine_free or free_string
// gets to it first. Pointers and handles are opaque integers here.
type Ledger struct {
	mu sync.Mutex
	// owner maps an outstanding pointer to its handle, 0 for strings the
	// caller owns outright.
	owner map[uintptr]uintptr
	// current is the result string of each handle.
	current map[uintptr]uintptr
}

func NewLedger() *Ledger {
	return &Ledger{owner: make(map[uintptr]uintptr), current: make(map[uintptr]uintptr)}
}

// Track records p as outstanding. With a non-zero handle p becomes that
// handle's result string; release the previous one first.
func (l *Ledger) Track(h, p uintptr) {
	if p == 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.owner[p] = h
	if h != 0 {
		l.current[h] = p
	}
}

// Release ends the life of h's result string. It returns the pointer to
// free, or false when there is none or free_string already took it.
func (l *Ledger) Release(h uintptr) (uintptr, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	p, ok := l.current[h]
	if !ok {
		return 0, false
	}
	delete(l.current, h)
	if owner, live := l.owner[p]; !live || owner != h {
		return 0, false
	}
	delete(l.owner, p)
	return p, true
}

// Free reports whether p is outstanding and forgets it. Freeing an unknown
// or already freed pointer reports false.
func (l *Ledger) Free(p uintptr) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	h, ok := l.owner[p]
	if !ok {
		return false
	}
	delete(l.owner, p)
	if h != 0 && l.current[h] == p {
		delete(l.current, h)
	}
	return true
}

// Outstanding counts strings not yet freed.
func (l *Ledger) Outstanding() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.owner)
}
