// Package cli parses the command line of vnime-tty.
package cli

import (
	"fmt"
	"strings"
)

type Options struct {
	ShowHelp      bool
	Stdin         bool
	Method        string
	ToneStyle     string
	ConfigPath    string
	ShortcutsPath string
	LogLevel      string
	NoSmart       bool
}

func Parse(args []string) (Options, error) {
	var opts Options
	for i := 1; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--help" || arg == "-h":
			opts.ShowHelp = true
		case arg == "--stdin":
			opts.Stdin = true
		case arg == "--no-smart":
			opts.NoSmart = true
		case strings.HasPrefix(arg, "--method"):
			value, next, err := extractValue(arg, i, args)
			if err != nil {
				return Options{}, err
			}
			opts.Method = value
			i = next
		case strings.HasPrefix(arg, "--tone"):
			value, next, err := extractValue(arg, i, args)
			if err != nil {
				return Options{}, err
			}
			opts.ToneStyle = value
			i = next
		case strings.HasPrefix(arg, "--config"):
			value, next, err := extractValue(arg, i, args)
			if err != nil {
				return Options{}, err
			}
			opts.ConfigPath = value
			i = next
		case strings.HasPrefix(arg, "--shortcuts"):
			value, next, err := extractValue(arg, i, args)
			if err != nil {
				return Options{}, err
			}
			opts.ShortcutsPath = value
			i = next
		case strings.HasPrefix(arg, "--log-level"):
			value, next, err := extractValue(arg, i, args)
			if err != nil {
				return Options{}, err
			}
			opts.LogLevel = value
			i = next
		default:
			return Options{}, fmt.Errorf("unknown option: %s", arg)
		}
	}
	return opts, nil
}

func extractValue(current string, index int, args []string) (string, int, error) {
	if eq := strings.IndexRune(current, '='); eq >= 0 {
		return current[eq+1:], index, nil
	}
	if index+1 >= len(args) {
		return "", index, fmt.Errorf("option %s requires a value", current)
	}
	return args[index+1], index + 1, nil
}

func Usage() string {
	return `vnime-tty - type Vietnamese in the terminal
Usage: vnime-tty [options]

Options:
  --method NAME         Input method: telex, vni (default from config, else telex)
  --tone STYLE          Tone placement: modern, traditional
  --config PATH         Config file (toml, yaml, json or ini; default: $VNIME_CONFIG or vnime.* lookup)
  --shortcuts PATH      Shortcut file (tsv, yaml or json)
  --no-smart            Disable English detection
  --log-level LEVEL     Log to stderr at LEVEL (debug, info, warn, error)
  --stdin               Translate keystroke lines from stdin instead of the keyboard
  -h, --help            Show this help message`
}
