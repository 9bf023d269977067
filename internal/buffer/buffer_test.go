package buffer

import (
	"testing"

	"vnime/internal/keys"
)

func word(t *testing.T, chars ...Char) *Buffer {
	t.Helper()
	b := &Buffer{}
	for _, c := range chars {
		if !b.Push(c) {
			t.Fatalf("push %+v failed", c)
		}
	}
	return b
}

func TestRenderPrecomposed(t *testing.T) {
	b := word(t,
		NewChar(keys.V, false),
		NewChar(keys.I, false),
		Char{Key: keys.E, Tone: ToneCircumflex, Mark: MarkDot},
		NewChar(keys.T, false),
	)
	if got := b.Render(); got != "việt" {
		t.Fatalf("expected việt, got %q", got)
	}
	if got := len(b.Runes()); got != 4 {
		t.Fatalf("expected one rune per char, got %d", got)
	}
}

func TestRenderCapsStrokeAndHorns(t *testing.T) {
	b := word(t,
		Char{Key: keys.D, Caps: true, Stroke: true},
		Char{Key: keys.U, Tone: ToneHorn},
		Char{Key: keys.O, Tone: ToneHorn, Mark: MarkGrave},
		NewChar(keys.N, false),
		NewChar(keys.G, false),
	)
	if got := b.Render(); got != "Đường" {
		t.Fatalf("expected Đường, got %q", got)
	}
	breve := word(t, Char{Key: keys.A, Caps: true, Tone: ToneHorn, Mark: MarkDot})
	if got := breve.Render(); got != "Ặ" {
		t.Fatalf("expected Ặ, got %q", got)
	}
}

func TestRenderIgnoresImpossibleTone(t *testing.T) {
	b := word(t, Char{Key: keys.I, Tone: ToneCircumflex, Mark: MarkAcute})
	if got := b.Render(); got != "í" {
		t.Fatalf("expected í, got %q", got)
	}
}

func TestPushAboveCapacityIsNoop(t *testing.T) {
	b := &Buffer{}
	for i := 0; i < Capacity; i++ {
		if !b.Push(NewChar(keys.A, false)) {
			t.Fatalf("push %d rejected early", i)
		}
	}
	if b.Push(NewChar(keys.B, false)) {
		t.Fatalf("expected push above capacity to fail")
	}
	if b.Len() != Capacity || !b.IsFull() {
		t.Fatalf("expected full buffer, got len %d", b.Len())
	}
}

func TestPopAndVowels(t *testing.T) {
	b := word(t, NewChar(keys.T, false), NewChar(keys.O, false), NewChar(keys.A, false), NewChar(keys.N, false))
	if got := b.FindVowels(); len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("unexpected vowel positions %v", got)
	}
	c, ok := b.Pop()
	if !ok || c.Key != keys.N {
		t.Fatalf("expected to pop n, got %+v", c)
	}
	if b.Render() != "toa" {
		t.Fatalf("expected toa, got %q", b.Render())
	}
	if b.At(5) != nil {
		t.Fatalf("expected nil for out of range At")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := word(t, NewChar(keys.A, false))
	snap := b.Clone()
	b.At(0).Mark = MarkAcute
	if snap.Render() != "a" || b.Render() != "á" {
		t.Fatalf("clone shares state: %q %q", snap.Render(), b.Render())
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, r := range []rune("ẮằẩẫặâêôơưđĐỳỹýỵÝ") {
		c, ok := Parse(r)
		if !ok {
			t.Fatalf("parse %q failed", r)
		}
		got, _ := c.Rune()
		if got != r {
			t.Fatalf("expected %q, got %q", r, got)
		}
	}
	if _, ok := Parse('1'); ok {
		t.Fatalf("digits are not letters")
	}
}

func TestRawDropPosition(t *testing.T) {
	raw := &RawInput{}
	for i, k := range []uint16{keys.D, keys.D, keys.A} {
		raw.Push(k, false)
		pos := 0
		if i == 2 {
			pos = 1
		}
		raw.Own(pos, false)
	}
	if n := raw.DropPosition(0); n != 2 {
		t.Fatalf("expected two entries dropped, got %d", n)
	}
	if raw.String() != "a" {
		t.Fatalf("expected a, got %q", raw.String())
	}
}

func TestRawLiteral(t *testing.T) {
	b := word(t, Char{Key: keys.P, Caps: true}, Char{Key: keys.U, Mark: MarkAcute})
	raw := &RawInput{}
	raw.Literal(b)
	if raw.String() != "Pu" || raw.At(1).Pos != 1 {
		t.Fatalf("unexpected literal record %q", raw.String())
	}
}
