// Package config reads the INI profile used by the vnime binaries. The
// structured loader in internal/config decodes the same Config from TOML,
// YAML and JSON.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	ini "github.com/go-ini/ini"
)

type Engine struct {
	Method         string `ini:"method" toml:"method" yaml:"method" json:"method"`
	ToneStyle      string `ini:"tone_style" toml:"tone_style" yaml:"tone_style" json:"tone_style"`
	Enabled        bool   `ini:"enabled" toml:"enabled" yaml:"enabled" json:"enabled"`
	SkipWShortcut  bool   `ini:"skip_w_shortcut" toml:"skip_w_shortcut" yaml:"skip_w_shortcut" json:"skip_w_shortcut"`
	EscRestore     bool   `ini:"esc_restore" toml:"esc_restore" yaml:"esc_restore" json:"esc_restore"`
	FreeTone       bool   `ini:"free_tone" toml:"free_tone" yaml:"free_tone" json:"free_tone"`
	InstantRestore bool   `ini:"instant_restore" toml:"instant_restore" yaml:"instant_restore" json:"instant_restore"`
	SmartMode      bool   `ini:"smart_mode" toml:"smart_mode" yaml:"smart_mode" json:"smart_mode"`
}

type Shortcuts struct {
	Enabled bool   `ini:"enabled" toml:"enabled" yaml:"enabled" json:"enabled"`
	File    string `ini:"file" toml:"file" yaml:"file" json:"file"`
}

type Log struct {
	Level  string `ini:"level" toml:"level" yaml:"level" json:"level"`
	Format string `ini:"format" toml:"format" yaml:"format" json:"format"`
	Output string `ini:"output" toml:"output" yaml:"output" json:"output"`
}

type Config struct {
	Engine    Engine    `toml:"engine" yaml:"engine" json:"engine"`
	Shortcuts Shortcuts `toml:"shortcuts" yaml:"shortcuts" json:"shortcuts"`
	Log       Log       `toml:"log" yaml:"log" json:"log"`
}

const (
	defaultMethod    = "telex"
	defaultToneStyle = "modern"
	defaultLogLevel  = "info"
	defaultLogFormat = "console"
)

func Default() Config {
	return Config{
		Engine: Engine{
			Method:         defaultMethod,
			ToneStyle:      defaultToneStyle,
			Enabled:        true,
			InstantRestore: true,
			SmartMode:      true,
		},
		Shortcuts: Shortcuts{Enabled: true},
		Log:       Log{Level: defaultLogLevel, Format: defaultLogFormat, Output: "stderr"},
	}
}

// Load reads an INI profile. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: %w", err)
	}
	if info.IsDir() {
		return cfg, fmt.Errorf("config: %s is a directory", path)
	}

	file, err := ini.Load(filepath.Clean(path))
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}

	engine := file.Section("engine")
	cfg.Engine.Method = engine.Key("method").MustString(cfg.Engine.Method)
	cfg.Engine.ToneStyle = engine.Key("tone_style").MustString(cfg.Engine.ToneStyle)
	cfg.Engine.Enabled = engine.Key("enabled").MustBool(cfg.Engine.Enabled)
	cfg.Engine.SkipWShortcut = engine.Key("skip_w_shortcut").MustBool(cfg.Engine.SkipWShortcut)
	cfg.Engine.EscRestore = engine.Key("esc_restore").MustBool(cfg.Engine.EscRestore)
	cfg.Engine.FreeTone = engine.Key("free_tone").MustBool(cfg.Engine.FreeTone)
	cfg.Engine.InstantRestore = engine.Key("instant_restore").MustBool(cfg.Engine.InstantRestore)
	cfg.Engine.SmartMode = engine.Key("smart_mode").MustBool(cfg.Engine.SmartMode)

	shortcuts := file.Section("shortcuts")
	cfg.Shortcuts.Enabled = shortcuts.Key("enabled").MustBool(cfg.Shortcuts.Enabled)
	cfg.Shortcuts.File = shortcuts.Key("file").MustString(cfg.Shortcuts.File)

	log := file.Section("log")
	cfg.Log.Level = log.Key("level").MustString(cfg.Log.Level)
	cfg.Log.Format = log.Key("format").MustString(cfg.Log.Format)
	cfg.Log.Output = log.Key("output").MustString(cfg.Log.Output)
	return cfg, nil
}

// WriteINI renders cfg in the format Load reads.
func WriteINI(w io.Writer, cfg Config) error {
	file := ini.Empty()
	sections := []struct {
		name string
		v    any
	}{
		{"engine", &cfg.Engine},
		{"shortcuts", &cfg.Shortcuts},
		{"log", &cfg.Log},
	}
	for _, s := range sections {
		if err := file.Section(s.name).ReflectFrom(s.v); err != nil {
			return fmt.Errorf("config: %s: %w", s.name, err)
		}
	}
	if _, err := file.WriteTo(w); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
