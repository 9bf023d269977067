package emitter

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

var ErrClosed = errors.New("emitter closed")

// TerminalEmitter edits the current terminal line. It keeps its own copy of
// the line so backspaces never walk past what it wrote.
type TerminalEmitter struct {
	w      io.Writer
	line   []rune
	closed bool
}

func NewTerminal(w io.Writer) *TerminalEmitter {
	return &TerminalEmitter{w: w}
}

func (e *TerminalEmitter) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	if c, ok := e.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (e *TerminalEmitter) SendBackspace(count int) error {
	if e.closed {
		return ErrClosed
	}
	if count > len(e.line) {
		count = len(e.line)
	}
	if count <= 0 {
		return nil
	}
	e.line = e.line[:len(e.line)-count]
	if _, err := io.WriteString(e.w, strings.Repeat("\b \b", count)); err != nil {
		return fmt.Errorf("write backspace: %w", err)
	}
	return nil
}

func (e *TerminalEmitter) SendText(text string) error {
	if e.closed {
		return ErrClosed
	}
	if text == "" {
		return nil
	}
	if !utf8.ValidString(text) {
		return fmt.Errorf("invalid utf-8 sequence")
	}
	for _, r := range text {
		if r == '\n' {
			e.line = e.line[:0]
			continue
		}
		e.line = append(e.line, r)
	}
	if strings.Contains(text, "\n") {
		text = strings.ReplaceAll(text, "\n", "\r\n")
	}
	if _, err := io.WriteString(e.w, text); err != nil {
		return fmt.Errorf("write text: %w", err)
	}
	return nil
}

// Line returns the text on the current line.
func (e *TerminalEmitter) Line() string { return string(e.line) }

// Recorder collects the text a host would show. The CLI uses it to print
// what a keystroke sequence produces.
type Recorder struct {
	text []rune
}

func (r *Recorder) Close() error { return nil }

func (r *Recorder) SendBackspace(count int) error {
	if count > len(r.text) {
		count = len(r.text)
	}
	r.text = r.text[:len(r.text)-count]
	return nil
}

func (r *Recorder) SendText(text string) error {
	r.text = append(r.text, []rune(text)...)
	return nil
}

func (r *Recorder) String() string { return string(r.text) }

func (r *Recorder) Reset() { r.text = r.text[:0] }
