// Package ime is the Go-facing API of the engine for programs that work
// with text rather than keycodes.
package ime

import (
	"strings"

	"vnime/internal/emitter"
	"vnime/internal/engine"
	"vnime/internal/keys"
	"vnime/internal/shortcut"
	"vnime/internal/types"
)

type Method = types.Method

const (
	Telex       = types.MethodTelex
	VNI         = types.MethodVNI
	Passthrough = types.MethodPassthrough
)

type Options struct {
	Method        Method
	Traditional   bool
	FreeTone      bool
	SkipWShortcut bool
	NoSmartMode   bool
	DeferRestore  bool
	Shortcuts     []shortcut.Shortcut
}

// Composer types ASCII into a line of Vietnamese text.
type Composer struct {
	eng  *engine.Engine
	line emitter.Recorder
}

func NewComposer(opt Options) *Composer {
	cfg := engine.DefaultConfig()
	cfg.Method = opt.Method
	if opt.Traditional {
		cfg.ToneStyle = types.ToneTraditional
	}
	cfg.FreeTone = opt.FreeTone
	cfg.SkipWShortcut = opt.SkipWShortcut
	cfg.SmartMode = !opt.NoSmartMode
	cfg.InstantRestore = !opt.DeferRestore

	table := shortcut.NewTable()
	for _, s := range opt.Shortcuts {
		_ = table.Add(s)
	}
	return &Composer{eng: engine.New(cfg, engine.WithShortcuts(table))}
}

// TypeKey feeds one ASCII character and reports whether it has a key.
func (c *Composer) TypeKey(ch rune) bool {
	if ch >= 128 {
		return false
	}
	s, ok := keys.FromASCII(byte(ch))
	if !ok {
		return false
	}
	c.press(s)
	return true
}

// TypeString feeds every ASCII character of text; others are skipped.
func (c *Composer) TypeString(text string) {
	for _, ch := range text {
		c.TypeKey(ch)
	}
}

func (c *Composer) press(s keys.Stroke) {
	res := c.eng.OnKey(s.Key, s.Caps, false, s.Shift)
	_ = emitter.Apply(&c.line, res, s.Key, s.Caps, s.Shift)
}

func (c *Composer) Space() { c.press(keys.Stroke{Key: keys.Space}) }

func (c *Composer) Backspace() { c.press(keys.Stroke{Key: keys.Delete}) }

// Enter returns the finished line and starts a new one.
func (c *Composer) Enter() string {
	c.press(keys.Stroke{Key: keys.Return})
	line := strings.TrimSuffix(c.line.String(), "\n")
	c.line.Reset()
	return line
}

// Preedit is the word still being composed.
func (c *Composer) Preedit() string { return c.eng.Render() }

// Text is the whole line, including the word being composed.
func (c *Composer) Text() string { return c.line.String() }

func (c *Composer) Reset() {
	c.eng.Reset()
	c.line.Reset()
}
