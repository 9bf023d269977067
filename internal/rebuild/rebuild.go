// Package rebuild turns two renderings of the word into the edit the host
// has to apply.
package rebuild

// Result is the edit: delete Backspace characters before the cursor, then
// insert Chars.
type Result struct {
	Backspace int
	Chars     []rune
}

func (r Result) Empty() bool { return r.Backspace == 0 && len(r.Chars) == 0 }

func (r Result) String() string { return string(r.Chars) }

// Diff compares prev and next starting at from. Positions before from are
// assumed unchanged; the engine passes the start of the last edit so that
// the work stays proportional to the syllable, not the word.
func Diff(prev, next []rune, from int) Result {
	if from < 0 {
		from = 0
	}
	if from > len(prev) {
		from = len(prev)
	}
	if from > len(next) {
		from = len(next)
	}
	p := from
	for p < len(prev) && p < len(next) && prev[p] == next[p] {
		p++
	}
	out := Result{Backspace: len(prev) - p}
	if p < len(next) {
		out.Chars = append([]rune(nil), next[p:]...)
	}
	return out
}

// Full is the edit that types next into an empty field.
func Full(next []rune) Result {
	return Diff(nil, next, 0)
}

// Replace deletes all of prev and types next, without looking for a common
// prefix. Restores use it so the host sees the whole word again.
func Replace(prev, next []rune) Result {
	return Result{Backspace: len(prev), Chars: append([]rune(nil), next...)}
}
