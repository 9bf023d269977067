// Package cabi is the Go side of the C library: one Session per engine
// handle, plain values in and out, and no panic ever crossing the boundary.
package cabi

import (
	"go.uber.org/zap"

	"vnime/internal/engine"
	"vnime/internal/shortcut"
	"vnime/internal/types"
)

// Config mirrors the C VnimeConfig struct.
type Config struct {
	Method           int32
	ToneStyle        int32
	SmartMode        bool
	ShortcutsEnabled bool
	InstantRestore   bool
	EscRestore       bool
}

func DefaultConfig() Config {
	d := engine.DefaultConfig()
	return Config{
		Method:           int32(d.Method),
		ToneStyle:        int32(d.ToneStyle),
		SmartMode:        d.SmartMode,
		ShortcutsEnabled: d.ShortcutsEnabled,
		InstantRestore:   d.InstantRestore,
		EscRestore:       d.EscRestore,
	}
}

// engineConfig rejects unknown enum values.
func (c Config) engineConfig() (engine.Config, bool) {
	method, style := types.Method(c.Method), types.ToneStyle(c.ToneStyle)
	if !method.Valid() || (style != types.ToneTraditional && style != types.ToneModern) {
		return engine.Config{}, false
	}
	cfg := engine.DefaultConfig()
	cfg.Method = method
	cfg.ToneStyle = style
	cfg.SmartMode = c.SmartMode
	cfg.ShortcutsEnabled = c.ShortcutsEnabled
	cfg.InstantRestore = c.InstantRestore
	cfg.EscRestore = c.EscRestore
	return cfg, true
}

// MaxCount is the largest backspace or character count a result carries.
const MaxCount = 255

// Result mirrors VnimeResult. Count is the number of characters in Chars.
type Result struct {
	Action    types.Action
	Backspace uint8
	Chars     string
	Count     uint8
	Consumed  bool
}

type Session struct {
	eng    *engine.Engine
	logger *zap.Logger
}

// NewSession never fails: an unusable config falls back to the defaults.
func NewSession(cfg Config, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	ec, ok := cfg.engineConfig()
	if !ok {
		logger.Warn("invalid engine config, using defaults",
			zap.Int32("method", cfg.Method), zap.Int32("tone_style", cfg.ToneStyle))
		ec = engine.DefaultConfig()
	}
	return &Session{eng: engine.New(ec, engine.WithLogger(logger)), logger: logger}
}

// guard turns a panic into a logged passthrough.
func (s *Session) guard(op string) {
	if r := recover(); r != nil {
		s.logger.Error("recovered panic", zap.String("op", op), zap.Any("panic", r))
		s.eng.Clear()
	}
}

func (s *Session) ProcessKey(key uint16, caps, cmd, shift bool) (out Result) {
	defer s.guard("process_key")
	res := s.eng.OnKey(key, caps, cmd, shift)
	if !res.Consumed() {
		return Result{}
	}
	if res.Backspace > MaxCount || len(res.Chars) > MaxCount {
		// The edit does not fit the result; drop the word and let the host
		// type the key.
		s.logger.Debug("result too large", zap.Int("backspace", res.Backspace), zap.Int("count", len(res.Chars)))
		s.eng.Clear()
		return Result{}
	}
	return Result{
		Action:    res.Action,
		Backspace: uint8(res.Backspace),
		Chars:     res.Text(),
		Count:     uint8(len(res.Chars)),
		Consumed:  true,
	}
}

// SetMethod reports false for an unknown method id.
func (s *Session) SetMethod(method int32) bool {
	defer s.guard("set_method")
	m := types.Method(method)
	if !m.Valid() {
		return false
	}
	s.eng.SetMethod(m)
	return true
}

func (s *Session) SetEnabled(v bool)          { s.eng.SetEnabled(v) }
func (s *Session) SetModernTone(v bool)       { s.eng.SetModernTone(v) }
func (s *Session) SetEscRestore(v bool)       { s.eng.SetEscRestore(v) }
func (s *Session) SetFreeTone(v bool)         { s.eng.SetFreeTone(v) }
func (s *Session) SetSkipWShortcut(v bool)    { s.eng.SetSkipWShortcut(v) }
func (s *Session) SetInstantRestore(v bool)   { s.eng.SetInstantRestore(v) }
func (s *Session) SetShortcutsEnabled(v bool) { s.eng.SetShortcutsEnabled(v) }

func (s *Session) AddShortcut(trigger, replacement string) bool {
	defer s.guard("add_shortcut")
	if err := s.eng.Shortcuts().Add(shortcut.Shortcut{Trigger: trigger, Replacement: replacement}); err != nil {
		s.logger.Debug("add shortcut", zap.String("trigger", trigger), zap.Error(err))
		return false
	}
	return true
}

// RemoveShortcut reports false when trigger was not defined.
func (s *Session) RemoveShortcut(trigger string) bool {
	defer s.guard("remove_shortcut")
	return s.eng.Shortcuts().Remove(trigger)
}

func (s *Session) ClearShortcuts() { s.eng.Shortcuts().Clear() }

func (s *Session) ClearBuffer() { s.eng.Clear() }

func (s *Session) RestoreWord(word string) (ok bool) {
	defer s.guard("restore_word")
	return s.eng.RestoreWord(word)
}

func (s *Session) Render() string { return s.eng.Render() }
