package emitter

import (
	"vnime/internal/engine"
	"vnime/internal/keys"
)

// Output is what a host text field can do. It is satisfied by
// TerminalEmitter and Recorder and lets tests substitute fakes.
type Output interface {
	Close() error
	SendBackspace(count int) error
	SendText(text string) error
}

var (
	_ Output = (*TerminalEmitter)(nil)
	_ Output = (*Recorder)(nil)
)

// Apply performs res on out. Keys the engine passes through are handled the
// way a text field would: Delete erases one character and printable keys
// type their symbol.
func Apply(out Output, res engine.Result, key uint16, caps, shift bool) error {
	if res.Consumed() {
		if err := out.SendBackspace(res.Backspace); err != nil {
			return err
		}
		return out.SendText(res.Text())
	}
	if key == keys.Delete {
		return out.SendBackspace(1)
	}
	if r, ok := keys.Symbol(key, shift || caps); ok && (r >= ' ' || r == '\n' || r == '\t') {
		return out.SendText(string(r))
	}
	return nil
}
