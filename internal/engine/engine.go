// Package engine is the per-keystroke facade: it owns the word being typed
// and turns every key into the edit the host application has to apply.
package engine

import (
	"go.uber.org/zap"

	"vnime/internal/buffer"
	"vnime/internal/english"
	"vnime/internal/history"
	"vnime/internal/keys"
	"vnime/internal/rebuild"
	"vnime/internal/shortcut"
	"vnime/internal/transform"
	"vnime/internal/types"
	"vnime/internal/validation"
)

type Config struct {
	Method           types.Method
	ToneStyle        types.ToneStyle
	Enabled          bool
	SkipWShortcut    bool
	EscRestore       bool
	FreeTone         bool
	InstantRestore   bool
	ShortcutsEnabled bool
	SmartMode        bool
}

func DefaultConfig() Config {
	return Config{
		Method:           types.MethodTelex,
		ToneStyle:        types.ToneModern,
		Enabled:          true,
		InstantRestore:   true,
		ShortcutsEnabled: true,
		SmartMode:        true,
	}
}

// Result is what the host does with a key. ActionNone means the host
// handles the key itself; otherwise it deletes Backspace characters and
// inserts Chars instead of the key.
type Result struct {
	Action    types.Action
	Backspace int
	Chars     []rune
}

func (r Result) Consumed() bool { return r.Action != types.ActionNone }

func (r Result) Text() string { return string(r.Chars) }

func replace(action types.Action, d rebuild.Result) Result {
	return Result{Action: action, Backspace: d.Backspace, Chars: d.Chars}
}

type Option func(*Engine)

func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

func WithShortcuts(table *shortcut.Table) Option {
	return func(e *Engine) {
		if table != nil {
			e.shortcuts = table
		}
	}
}

func WithDetector(d *english.Detector) Option {
	return func(e *Engine) {
		if d != nil {
			e.detector = d
		}
	}
}

func WithValidator(v validation.Validator) Option {
	return func(e *Engine) {
		if v != nil {
			e.validator = v
		}
	}
}

type Engine struct {
	cfg       Config
	logger    *zap.Logger
	shortcuts *shortcut.Table
	detector  *english.Detector
	validator validation.Validator

	buf   buffer.Buffer
	raw   buffer.RawInput
	last  transform.Record
	state english.State
	// glued marks a word typed straight after a digit or punctuation mark.
	glued   bool
	history history.Ring
	// spaces counts the spaces typed since the last committed word.
	spaces      int
	afterSymbol bool
}

func New(cfg Config, opts ...Option) *Engine {
	e := &Engine{cfg: cfg, logger: zap.NewNop(), validator: validation.Default}
	for _, opt := range opts {
		opt(e)
	}
	if e.shortcuts == nil {
		e.shortcuts = shortcut.NewTable()
	}
	if e.detector == nil {
		e.detector = english.NewDetector(nil, e.validator)
	}
	return e
}

func (e *Engine) Config() Config { return e.cfg }

func (e *Engine) Shortcuts() *shortcut.Table { return e.shortcuts }

// State is the language state of the current word.
func (e *Engine) State() english.State { return e.state }

// Render returns the word being typed.
func (e *Engine) Render() string { return e.buf.Render() }

// Raw returns the keys of the current word as typed.
func (e *Engine) Raw() string { return e.raw.String() }

func (e *Engine) HistoryLen() int { return e.history.Len() }

func (e *Engine) options() transform.Options {
	return transform.Options{
		Method:        e.cfg.Method,
		Style:         e.cfg.ToneStyle,
		FreeTone:      e.cfg.FreeTone,
		SkipWShortcut: e.cfg.SkipWShortcut,
		Validator:     e.validator,
	}
}

// Clear drops the current word without touching history.
func (e *Engine) Clear() {
	e.buf.Clear()
	e.raw.Clear()
	e.last.Reset()
	e.state = english.Unknown
	e.glued = false
}

// Reset drops the current word and the history.
func (e *Engine) Reset() {
	e.Clear()
	e.history.Clear()
	e.spaces = 0
	e.afterSymbol = false
}

// OnKey processes one key press. caps is set for upper-case letters, shift
// for the shifted symbol of digits and punctuation, cmd for any command or
// control chord.
func (e *Engine) OnKey(key uint16, caps, cmd, shift bool) Result {
	if !e.cfg.Enabled || e.cfg.Method == types.MethodPassthrough {
		return Result{}
	}
	if cmd {
		e.Reset()
		return Result{}
	}
	switch {
	case key == keys.Esc:
		return e.escape()
	case e.isBreak(key, shift):
		return e.commit(key, shift)
	case key == keys.Delete:
		return e.backspace(shift)
	}
	if _, ok := keys.ToChar(key, caps); !ok {
		e.Clear()
		e.spaces = 0
		return Result{}
	}
	if e.buf.IsFull() || e.raw.IsFull() {
		return Result{}
	}
	if e.buf.IsEmpty() {
		e.glued = e.afterSymbol
	}
	e.spaces = 0
	e.afterSymbol = false

	prev := e.buf.Runes()
	e.raw.Push(key, caps)
	if e.state == english.EnglishLocked {
		pos := e.literal(key, caps)
		return replace(types.ActionReplace, rebuild.Diff(prev, e.buf.Runes(), pos))
	}
	if keys.IsLetter(key) && e.rawEnglish() {
		return e.lockPattern(prev, key, caps)
	}

	edit := transform.Apply(&e.buf, &e.raw, &e.last, key, caps, e.options())
	if edit.Stroke && e.state == english.Unknown {
		e.state = english.VietnameseLocked
	}
	if res, ok := e.detect(prev); ok {
		return res
	}
	if res, ok := e.immediate(prev); ok {
		return res
	}
	return replace(types.ActionReplace, rebuild.Diff(prev, e.buf.Runes(), edit.From))
}

// isBreak reports keys that end the word. Digits are VNI triggers unless
// shifted.
func (e *Engine) isBreak(key uint16, shift bool) bool {
	if !keys.IsBreak(key) {
		return false
	}
	if keys.IsNumber(key) && e.cfg.Method == types.MethodVNI && !shift {
		return false
	}
	return true
}

// detect runs the english detector while the word is undecided and
// restores the raw keys once it locks.
func (e *Engine) detect(prev []rune) (Result, bool) {
	if !e.cfg.SmartMode || e.state != english.Unknown {
		return Result{}, false
	}
	v := e.detector.Evaluate(e.raw.Keys(), &e.buf)
	if !v.Lock {
		return Result{}, false
	}
	e.state = english.EnglishLocked
	e.logger.Debug("english lock",
		zap.String("raw", e.raw.String()),
		zap.Int("score", v.English),
		zap.Bool("dictionary", v.Dictionary),
		zap.Strings("layers", v.Layers))
	if !e.cfg.InstantRestore || !e.needsRestore() {
		return Result{}, false
	}
	e.restoreRaw()
	e.logger.Debug("auto restore", zap.String("word", e.buf.Render()))
	return replace(types.ActionRestore, rebuild.Diff(prev, e.buf.Runes(), 0)), true
}

// literal appends key untransformed and returns its position.
func (e *Engine) literal(key uint16, caps bool) int {
	pos := e.buf.Len()
	e.buf.Push(buffer.NewChar(key, caps))
	e.raw.Own(pos, false)
	e.last.Reset()
	return pos
}

// rawEnglish reports an undecided word whose keys form an english-only
// sequence.
func (e *Engine) rawEnglish() bool {
	return e.cfg.SmartMode && e.state == english.Unknown && english.RawPattern(e.raw.Keys())
}

// lockPattern locks the word english before key can transform it. Earlier
// transforms are undone at once, or at the break with InstantRestore off.
func (e *Engine) lockPattern(prev []rune, key uint16, caps bool) Result {
	e.state = english.EnglishLocked
	pos := e.literal(key, caps)
	e.logger.Debug("english pattern", zap.String("raw", e.raw.String()))
	if !e.cfg.InstantRestore || !e.needsRestore() {
		return replace(types.ActionReplace, rebuild.Diff(prev, e.buf.Runes(), pos))
	}
	e.restoreRaw()
	return replace(types.ActionRestore, rebuild.Diff(prev, e.buf.Runes(), 0))
}

func (e *Engine) needsRestore() bool {
	return e.buf.Render() != e.raw.String()
}

// restoreRaw replaces the buffer with the keys as typed.
func (e *Engine) restoreRaw() {
	e.buf.Clear()
	for _, entry := range e.raw.Entries() {
		e.buf.Push(buffer.NewChar(entry.Key, entry.Caps))
	}
	e.raw.Literal(&e.buf)
	e.last.Reset()
}

func (e *Engine) immediate(prev []rune) (Result, bool) {
	if !e.cfg.ShortcutsEnabled || e.glued || e.shortcuts.Len() == 0 {
		return Result{}, false
	}
	repl, ok := e.shortcuts.Expand(e.buf.Render(), e.cfg.Method, true)
	if !ok {
		return Result{}, false
	}
	e.Clear()
	return replace(types.ActionReplace, rebuild.Diff(prev, []rune(repl), 0)), true
}

// commit ends the word on a break key. Only printable breaks expand
// shortcuts or carry a deferred restore, since those edits retype the
// break character.
func (e *Engine) commit(key uint16, shift bool) Result {
	sym, printable := keys.Symbol(key, shift)
	printable = printable && sym >= ' '
	defer func() {
		e.afterSymbol = printable && sym != ' '
	}()

	if e.buf.IsEmpty() {
		if key == keys.Space && e.spaces > 0 {
			e.spaces++
		} else {
			e.spaces = 0
		}
		e.Clear()
		return Result{}
	}

	prev := e.buf.Runes()
	out := Result{}
	expanded := false
	switch {
	case !printable:
	case (e.state == english.EnglishLocked || e.rawEnglish()) && e.needsRestore():
		e.restoreRaw()
		e.logger.Debug("deferred restore", zap.String("word", e.buf.Render()))
		out = replace(types.ActionRestore, rebuild.Replace(prev, append(e.buf.Runes(), sym)))
	case e.cfg.ShortcutsEnabled && !e.glued:
		if repl, ok := e.shortcuts.Expand(e.buf.Render(), e.cfg.Method, false); ok {
			out = replace(types.ActionReplace, rebuild.Replace(prev, append([]rune(repl), sym)))
			expanded = true
		}
	}

	if !expanded {
		e.history.Push(history.Entry{
			Buffer:  e.buf.Clone(),
			Raw:     e.raw.Clone(),
			English: e.state == english.EnglishLocked,
		})
	}
	e.spaces = 0
	if key == keys.Space && !expanded {
		e.spaces = 1
	}
	e.Clear()
	return out
}

func (e *Engine) escape() Result {
	defer func() {
		e.Clear()
		e.spaces = 0
		e.afterSymbol = false
	}()
	if !e.cfg.EscRestore || e.buf.IsEmpty() || !e.needsRestore() {
		return Result{}
	}
	prev := e.buf.Runes()
	return replace(types.ActionRestore, rebuild.Diff(prev, e.raw.Runes(), 0))
}
