package engine

import (
	"go.uber.org/zap"

	"vnime/internal/types"
)

// SetConfig swaps the whole configuration. The current word is dropped
// when the method or the enabled flag changes.
func (e *Engine) SetConfig(cfg Config) {
	if cfg.Method != e.cfg.Method || cfg.Enabled != e.cfg.Enabled {
		e.Clear()
	}
	e.cfg = cfg
	e.logger.Debug("config changed",
		zap.Stringer("method", cfg.Method),
		zap.Stringer("tone_style", cfg.ToneStyle),
		zap.Bool("enabled", cfg.Enabled),
		zap.Bool("smart_mode", cfg.SmartMode))
}

func (e *Engine) update(fn func(*Config)) {
	cfg := e.cfg
	fn(&cfg)
	e.SetConfig(cfg)
}

func (e *Engine) SetMethod(m types.Method) {
	if !m.Valid() {
		return
	}
	e.update(func(c *Config) { c.Method = m })
}

func (e *Engine) SetEnabled(v bool) {
	e.update(func(c *Config) { c.Enabled = v })
	if !v {
		e.Reset()
	}
}

func (e *Engine) SetModernTone(v bool) {
	style := types.ToneTraditional
	if v {
		style = types.ToneModern
	}
	e.update(func(c *Config) { c.ToneStyle = style })
}

func (e *Engine) SetSkipWShortcut(v bool) { e.update(func(c *Config) { c.SkipWShortcut = v }) }

func (e *Engine) SetEscRestore(v bool) { e.update(func(c *Config) { c.EscRestore = v }) }

func (e *Engine) SetFreeTone(v bool) { e.update(func(c *Config) { c.FreeTone = v }) }

func (e *Engine) SetInstantRestore(v bool) { e.update(func(c *Config) { c.InstantRestore = v }) }

func (e *Engine) SetShortcutsEnabled(v bool) { e.update(func(c *Config) { c.ShortcutsEnabled = v }) }

func (e *Engine) SetSmartMode(v bool) { e.update(func(c *Config) { c.SmartMode = v }) }
