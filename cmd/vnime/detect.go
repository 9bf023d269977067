package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"vnime/internal/buffer"
	"vnime/internal/emitter"
	"vnime/internal/engine"
	"vnime/internal/english"
	"vnime/internal/keys"
	"vnime/internal/types"
)

var detectMethod string

var detectCmd = &cobra.Command{
	Use:   "detect <keys>...",
	Short: "Show how the english detector scores typed words",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		method, err := types.ParseMethod(detectMethod)
		if err != nil {
			return err
		}
		detector := english.NewDetector(nil, nil)
		for _, word := range args {
			if err := detectWord(cmd.OutOrStdout(), detector, method, word); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	detectCmd.Flags().StringVarP(&detectMethod, "method", "m", "telex", "input method (telex, vni)")
}

// detectWord types word with detection off, scores the result and then
// types it again the way the engine would.
func detectWord(w io.Writer, d *english.Detector, method types.Method, word string) error {
	cfg := engine.DefaultConfig()
	cfg.Method = method
	cfg.SmartMode = false
	plain := engine.New(cfg)
	raw := make([]uint16, 0, len(word))
	for _, s := range keys.Strokes(word) {
		plain.OnKey(s.Key, s.Caps, false, s.Shift)
		raw = append(raw, s.Key)
	}
	rendered := plain.Render()

	chars, ok := buffer.ParseWord(rendered)
	if !ok {
		return fmt.Errorf("%q does not type a word", word)
	}
	var b buffer.Buffer
	for _, c := range chars {
		b.Push(c)
	}
	v := d.Evaluate(raw, &b)

	cfg.SmartMode = true
	smart := engine.New(cfg)
	var rec emitter.Recorder
	for _, s := range keys.Strokes(word + " ") {
		res := smart.OnKey(s.Key, s.Caps, false, s.Shift)
		if err := emitter.Apply(&rec, res, s.Key, s.Caps, s.Shift); err != nil {
			return err
		}
	}
	final := strings.TrimSuffix(rec.String(), " ")

	verdict := okStyle.Sprint("vietnamese")
	if v.Lock {
		verdict = errStyle.Sprint("english")
	}
	fmt.Fprintf(w, "%s -> %s  %s  en=%d vi=%d", keyStyle.Sprint(word), rendered, verdict, v.English, v.Vietnamese)
	if v.Dictionary {
		fmt.Fprint(w, labelStyle.Sprint(" dictionary"))
	}
	if len(v.Layers) > 0 {
		fmt.Fprintf(w, " layers=%s", strings.Join(v.Layers, ","))
	}
	fmt.Fprintf(w, "  typed=%s\n", final)
	return nil
}
