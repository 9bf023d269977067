package transform

import "vnime/internal/buffer"

// Replay types entries into an empty word. It is what auto-restore and the
// dictionary filter use to ask "what would these keys have produced".
func Replay(entries []buffer.RawEntry, opt Options) (*buffer.Buffer, *buffer.RawInput) {
	b := &buffer.Buffer{}
	raw := &buffer.RawInput{}
	var last Record
	for _, e := range entries {
		if b.IsFull() || !raw.Push(e.Key, e.Caps) {
			break
		}
		Apply(b, raw, &last, e.Key, e.Caps, opt)
	}
	return b, raw
}

// ReplayKeys is Replay for lower-case keycodes.
func ReplayKeys(keyCodes []uint16, opt Options) *buffer.Buffer {
	entries := make([]buffer.RawEntry, len(keyCodes))
	for i, k := range keyCodes {
		entries[i] = buffer.RawEntry{Key: k}
	}
	b, _ := Replay(entries, opt)
	return b
}
