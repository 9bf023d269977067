// Package config loads the engine configuration from TOML, YAML, JSON or
// INI files and keeps it current while the file changes.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"vnime/internal/engine"
	"vnime/internal/logging"
	"vnime/internal/types"
	profile "vnime/pkg/config"
)

// Config is the file layout shared by every format.
type Config = profile.Config

type ConfigError struct {
	msg string
}

func (e ConfigError) Error() string { return e.msg }

func Default() *Config {
	cfg := profile.Default()
	return &cfg
}

// Validate checks the enumerated fields.
func Validate(cfg *Config) error {
	if _, err := types.ParseMethod(cfg.Engine.Method); err != nil {
		return ConfigError{msg: fmt.Sprintf("engine.method: %v", err)}
	}
	if _, err := types.ParseToneStyle(cfg.Engine.ToneStyle); err != nil {
		return ConfigError{msg: fmt.Sprintf("engine.tone_style: %v", err)}
	}
	if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		return ConfigError{msg: fmt.Sprintf("log.level: %v", err)}
	}
	switch strings.ToLower(cfg.Log.Format) {
	case "", "console", "json":
	default:
		return ConfigError{msg: fmt.Sprintf("log.format: unknown format %q", cfg.Log.Format)}
	}
	return nil
}

// EngineOptions maps a validated configuration onto the engine.
func EngineOptions(cfg *Config) engine.Config {
	method, _ := types.ParseMethod(cfg.Engine.Method)
	style, _ := types.ParseToneStyle(cfg.Engine.ToneStyle)
	return engine.Config{
		Method:           method,
		ToneStyle:        style,
		Enabled:          cfg.Engine.Enabled,
		SkipWShortcut:    cfg.Engine.SkipWShortcut,
		EscRestore:       cfg.Engine.EscRestore,
		FreeTone:         cfg.Engine.FreeTone,
		InstantRestore:   cfg.Engine.InstantRestore,
		ShortcutsEnabled: cfg.Shortcuts.Enabled,
		SmartMode:        cfg.Engine.SmartMode,
	}
}

// LogOptions maps the [log] section onto the logger configuration.
func LogOptions(cfg *Config) logging.Config {
	level, _ := logging.ParseLevel(cfg.Log.Level)
	out := logging.DefaultConfig()
	out.Level = level
	if cfg.Log.Format != "" {
		out.Format = strings.ToLower(cfg.Log.Format)
	}
	if cfg.Log.Output != "" {
		out.Output = cfg.Log.Output
	}
	return out
}

// ShortcutPath resolves the shortcut file relative to the config file.
func ShortcutPath(cfg *Config, configPath string) string {
	file := cfg.Shortcuts.File
	if file == "" || filepath.IsAbs(file) || configPath == "" {
		return file
	}
	return filepath.Join(filepath.Dir(configPath), file)
}

var candidates = []string{"vnime.toml", "vnime.yaml", "vnime.yml", "vnime.json", "vnime.ini"}

// ResolvePath finds the config file: $VNIME_CONFIG, then the working
// directory, then $XDG_CONFIG_HOME/vnime (or ~/.config/vnime). It returns
// "" when nothing exists.
func ResolvePath() string {
	if p := os.Getenv("VNIME_CONFIG"); p != "" {
		return p
	}
	dirs := []string{"."}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, "vnime"))
	} else if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "vnime"))
	}
	for _, dir := range dirs {
		for _, name := range candidates {
			p := filepath.Join(dir, name)
			if info, err := os.Stat(p); err == nil && !info.IsDir() {
				return p
			}
		}
	}
	return ""
}
