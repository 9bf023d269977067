package emitter

import (
	"bytes"
	"testing"

	"vnime/internal/engine"
	"vnime/internal/keys"
)

func feed(t *testing.T, eng *engine.Engine, out Output, text string) {
	t.Helper()
	for _, s := range keys.Strokes(text) {
		res := eng.OnKey(s.Key, s.Caps, false, s.Shift)
		if err := Apply(out, res, s.Key, s.Caps, s.Shift); err != nil {
			t.Fatalf("apply %q: %v", text, err)
		}
	}
}

func TestRecorderFollowsEngine(t *testing.T) {
	eng := engine.New(engine.DefaultConfig())
	rec := &Recorder{}
	feed(t, eng, rec, "Tieengs Vieetj\b")
	if rec.String() != "Tiếng Việ" {
		t.Fatalf("expected Tiếng Việ, got %q", rec.String())
	}
}

func TestTerminalEmitterEditsLine(t *testing.T) {
	var sink bytes.Buffer
	term := NewTerminal(&sink)
	if err := term.SendText("việ"); err != nil {
		t.Fatalf("send text: %v", err)
	}
	if err := term.SendBackspace(5); err != nil {
		t.Fatalf("send backspace: %v", err)
	}
	if term.Line() != "" {
		t.Fatalf("expected empty line, got %q", term.Line())
	}
	if got := sink.String(); got != "việ\b \b\b \b\b \b" {
		t.Fatalf("unexpected terminal output %q", got)
	}
	term.SendText("a\nb")
	if term.Line() != "b" {
		t.Fatalf("expected line to restart after newline, got %q", term.Line())
	}
	term.Close()
	if err := term.SendText("x"); err != ErrClosed {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}
