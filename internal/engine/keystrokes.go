package engine

import (
	"vnime/internal/buffer"
	"vnime/internal/keys"
	"vnime/internal/types"
)

var (
	telexMarks = [...]uint16{buffer.MarkAcute: keys.S, buffer.MarkGrave: keys.F, buffer.MarkHook: keys.R, buffer.MarkTilde: keys.X, buffer.MarkDot: keys.J}
	vniMarks   = [...]uint16{buffer.MarkAcute: keys.N1, buffer.MarkGrave: keys.N2, buffer.MarkHook: keys.N3, buffer.MarkTilde: keys.N4, buffer.MarkDot: keys.N5}
)

// modifierKeys spells one character as the keys that type it, without its
// tone mark.
func modifierKeys(c buffer.Char, method types.Method) []uint16 {
	out := []uint16{c.Key}
	vni := method == types.MethodVNI
	switch {
	case c.Stroke && vni:
		out = append(out, keys.N9)
	case c.Stroke:
		out = append(out, keys.D)
	case c.Tone == buffer.ToneCircumflex && vni:
		out = append(out, keys.N6)
	case c.Tone == buffer.ToneCircumflex:
		out = append(out, c.Key)
	case c.Tone == buffer.ToneHorn && vni && c.Key == keys.A:
		out = append(out, keys.N8)
	case c.Tone == buffer.ToneHorn && vni:
		out = append(out, keys.N7)
	case c.Tone == buffer.ToneHorn:
		out = append(out, keys.W)
	}
	return out
}

func markKey(m buffer.Mark, method types.Method) (uint16, bool) {
	if m == buffer.MarkNone || int(m) >= len(telexMarks) {
		return 0, false
	}
	if method == types.MethodVNI {
		return vniMarks[m], true
	}
	return telexMarks[m], true
}
