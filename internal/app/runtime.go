// Package app wires configuration, logging, shortcuts and the engine
// together for the interactive terminal front end.
package app

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"vnime/internal/cli"
	"vnime/internal/config"
	"vnime/internal/emitter"
	"vnime/internal/engine"
	"vnime/internal/keys"
	"vnime/internal/logging"
	"vnime/internal/shortcut"
	"vnime/internal/types"
)

type Runtime struct {
	opts       cli.Options
	configPath string
	loader     *config.Loader
	cfg        *config.Config
	logger     *zap.Logger
	shortcuts  *shortcut.Table
	engine     *engine.Engine
	reloads    chan engine.Config
	cleanups   []func()
}

func NewRuntime(opts cli.Options) *Runtime {
	return &Runtime{opts: opts, reloads: make(chan engine.Config, 1)}
}

// Prepare loads everything the engine needs. Call Close when done, also
// after an error.
func (rt *Runtime) Prepare() error {
	if err := rt.prepareConfig(); err != nil {
		return err
	}
	if err := rt.prepareLogger(); err != nil {
		return err
	}
	if err := rt.prepareShortcuts(); err != nil {
		return err
	}
	rt.engine = engine.New(rt.engineConfig(rt.cfg),
		engine.WithLogger(rt.logger),
		engine.WithShortcuts(rt.shortcuts))
	rt.watchConfig()
	return nil
}

func (rt *Runtime) Engine() *engine.Engine { return rt.engine }

func (rt *Runtime) Logger() *zap.Logger { return rt.logger }

func (rt *Runtime) prepareConfig() error {
	if rt.opts.Method != "" {
		if _, err := types.ParseMethod(rt.opts.Method); err != nil {
			return err
		}
	}
	if rt.opts.ToneStyle != "" {
		if _, err := types.ParseToneStyle(rt.opts.ToneStyle); err != nil {
			return err
		}
	}
	rt.configPath = strings.TrimSpace(rt.opts.ConfigPath)
	if rt.configPath == "" {
		rt.configPath = config.ResolvePath()
	}
	rt.loader = config.NewLoader(rt.configPath)
	cfg, err := rt.loader.Load()
	if err != nil {
		return err
	}
	rt.cfg = cfg
	return nil
}

func (rt *Runtime) prepareLogger() error {
	lc := config.LogOptions(rt.cfg)
	if rt.opts.LogLevel != "" {
		level, err := logging.ParseLevel(rt.opts.LogLevel)
		if err != nil {
			return err
		}
		lc.Level = level
	}
	logger, err := logging.New(lc)
	if err != nil {
		return err
	}
	rt.logger = logger
	rt.registerCleanup(func() { _ = logger.Sync() })
	return nil
}

func (rt *Runtime) prepareShortcuts() error {
	path := strings.TrimSpace(rt.opts.ShortcutsPath)
	if path == "" {
		path = config.ShortcutPath(rt.cfg, rt.configPath)
	}
	if path == "" {
		rt.shortcuts = shortcut.NewTable()
		return nil
	}
	table, err := shortcut.Load(path)
	if err != nil {
		return err
	}
	rt.logger.Info("loaded shortcuts", zap.String("path", path), zap.Int("count", table.Len()))
	rt.shortcuts = table
	return nil
}

// engineConfig applies the command line on top of the file.
func (rt *Runtime) engineConfig(cfg *config.Config) engine.Config {
	ec := config.EngineOptions(cfg)
	if m, err := types.ParseMethod(rt.opts.Method); err == nil {
		ec.Method = m
	}
	if s, err := types.ParseToneStyle(rt.opts.ToneStyle); err == nil {
		ec.ToneStyle = s
	}
	if rt.opts.NoSmart {
		ec.SmartMode = false
	}
	return ec
}

// watchConfig queues reloaded settings for the key loop; the engine itself
// is only touched from that loop.
func (rt *Runtime) watchConfig() {
	if rt.configPath == "" {
		return
	}
	rt.loader.OnChange(func(cfg *config.Config) {
		ec := rt.engineConfig(cfg)
		select {
		case <-rt.reloads:
		default:
		}
		rt.reloads <- ec
	})
	if err := rt.loader.Watch(); err != nil {
		rt.logger.Warn("config hot reload disabled", zap.Error(err))
		return
	}
	rt.registerCleanup(func() { _ = rt.loader.Close() })
	go func() {
		for err := range rt.loader.Errors() {
			rt.logger.Warn("config reload failed", zap.Error(err))
		}
	}()
}

// applyReloads installs a pending configuration, if any.
func (rt *Runtime) applyReloads() {
	select {
	case ec := <-rt.reloads:
		rt.engine.SetConfig(ec)
		rt.logger.Info("config reloaded", zap.Stringer("method", ec.Method))
	default:
	}
}

// Press feeds one key to the engine and applies the result to out.
func (rt *Runtime) Press(out emitter.Output, s keys.Stroke, cmd bool) error {
	rt.applyReloads()
	res := rt.engine.OnKey(s.Key, s.Caps, cmd, s.Shift)
	return emitter.Apply(out, res, s.Key, s.Caps, s.Shift)
}

// RunStdin reads keystroke lines and writes the text they type. Within a
// line, \b is Delete and \x1b is Esc.
func (rt *Runtime) RunStdin(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), 1024*1024)
	writer := bufio.NewWriter(w)
	defer writer.Flush()

	var rec emitter.Recorder
	for scanner.Scan() {
		rec.Reset()
		rt.engine.Reset()
		for _, s := range keys.Strokes(scanner.Text()) {
			if err := rt.Press(&rec, s, false); err != nil {
				return err
			}
		}
		if err := rt.Press(&rec, keys.Stroke{Key: keys.Return}, false); err != nil {
			return err
		}
		if _, err := writer.WriteString(rec.String()); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	return nil
}

func (rt *Runtime) registerCleanup(fn func()) {
	if fn == nil {
		return
	}
	rt.cleanups = append([]func(){fn}, rt.cleanups...)
}

func (rt *Runtime) Close() {
	for _, fn := range rt.cleanups {
		fn()
	}
	rt.cleanups = nil
}
