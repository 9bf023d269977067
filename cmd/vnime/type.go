package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vnime/internal/emitter"
	"vnime/internal/engine"
	"vnime/internal/keys"
	"vnime/internal/shortcut"
	"vnime/internal/types"
)

var (
	typeMethod    string
	typeTone      string
	typeNoSmart   bool
	typeEscape    bool
	typeShortcuts string
	typeTrace     bool
)

var typeCmd = &cobra.Command{
	Use:   "type [keys...]",
	Short: "Type ASCII keys through the engine and print the text",
	Long: "Type ASCII keys through the engine and print the text. Without arguments every\n" +
		"line of stdin is typed. \\b stands for backspace and \\e for escape.",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newTypeEngine()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(args) > 0 {
			return typeLine(out, eng, strings.Join(args, " "))
		}
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			if err := typeLine(out, eng, scanner.Text()); err != nil {
				return err
			}
		}
		return scanner.Err()
	},
}

func init() {
	typeCmd.Flags().StringVarP(&typeMethod, "method", "m", "telex", "input method (telex, vni)")
	typeCmd.Flags().StringVar(&typeTone, "tone", "modern", "tone placement (modern, traditional)")
	typeCmd.Flags().BoolVar(&typeNoSmart, "no-smart", false, "disable english detection")
	typeCmd.Flags().BoolVar(&typeEscape, "esc-restore", false, "restore the raw keys on escape")
	typeCmd.Flags().StringVarP(&typeShortcuts, "shortcuts", "s", "", "shortcut file (tsv, yaml or json)")
	typeCmd.Flags().BoolVar(&typeTrace, "trace", false, "print the engine result of every key")
}

func newTypeEngine() (*engine.Engine, error) {
	cfg := engine.DefaultConfig()
	method, err := types.ParseMethod(typeMethod)
	if err != nil {
		return nil, err
	}
	style, err := types.ParseToneStyle(typeTone)
	if err != nil {
		return nil, err
	}
	cfg.Method, cfg.ToneStyle = method, style
	cfg.SmartMode = !typeNoSmart
	cfg.EscRestore = typeEscape

	opts := []engine.Option{engine.WithLogger(logger)}
	if typeShortcuts != "" {
		table, err := shortcut.Load(typeShortcuts)
		if err != nil {
			return nil, err
		}
		opts = append(opts, engine.WithShortcuts(table))
	}
	return engine.New(cfg, opts...), nil
}

// unescape turns the \b and \e notation into the control bytes keys.Strokes
// understands.
func unescape(line string) string {
	return strings.NewReplacer(`\b`, "\b", `\e`, "\x1b").Replace(line)
}

func typeLine(w io.Writer, eng *engine.Engine, line string) error {
	eng.Reset()
	var rec emitter.Recorder
	strokes := append(keys.Strokes(unescape(line)), keys.Stroke{Key: keys.Return})
	for _, s := range strokes {
		res := eng.OnKey(s.Key, s.Caps, false, s.Shift)
		if typeTrace && s.Key != keys.Return {
			traceKey(w, s, res)
		}
		if err := emitter.Apply(&rec, res, s.Key, s.Caps, s.Shift); err != nil {
			return err
		}
	}
	logger.Debug("typed line", zap.String("keys", line), zap.String("text", rec.String()))
	_, err := io.WriteString(w, rec.String())
	return err
}

func traceKey(w io.Writer, s keys.Stroke, res engine.Result) {
	name := "?"
	if r, ok := keys.ToChar(s.Key, s.Caps); ok {
		name = string(r)
	} else if r, ok := keys.Symbol(s.Key, s.Shift); ok && r >= ' ' {
		name = string(r)
	} else if s.Key == keys.Delete {
		name = "⌫"
	} else if s.Key == keys.Esc {
		name = "esc"
	}
	action := labelStyle.Sprint(res.Action)
	if res.Action == types.ActionRestore {
		action = errStyle.Sprint(res.Action)
	}
	fmt.Fprintf(w, "  %s %s", keyStyle.Sprintf("%-3s", name), action)
	if res.Consumed() {
		fmt.Fprintf(w, " -%d %q", res.Backspace, res.Text())
	}
	fmt.Fprintln(w)
}
