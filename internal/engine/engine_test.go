package engine

import (
	"strings"
	"testing"

	"vnime/internal/buffer"
	"vnime/internal/english"
	"vnime/internal/keys"
	"vnime/internal/shortcut"
	"vnime/internal/syllable"
	"vnime/internal/transform"
	"vnime/internal/types"
	"vnime/internal/validation"
)

// fakeEmitter plays the host application: it applies consumed results and
// types or deletes the key itself when the engine passes it through.
type fakeEmitter struct {
	buffer []rune
	last   Result
}

func (f *fakeEmitter) SendBackspace(count int) {
	if count > len(f.buffer) {
		count = len(f.buffer)
	}
	f.buffer = f.buffer[:len(f.buffer)-count]
}

func (f *fakeEmitter) SendText(text string) {
	f.buffer = append(f.buffer, []rune(text)...)
}

func (f *fakeEmitter) String() string { return string(f.buffer) }

func (f *fakeEmitter) apply(res Result, s keys.Stroke) {
	f.last = res
	if res.Consumed() {
		f.SendBackspace(res.Backspace)
		f.SendText(res.Text())
		return
	}
	if s.Key == keys.Delete {
		f.SendBackspace(1)
		return
	}
	if r, ok := keys.Symbol(s.Key, s.Shift || s.Caps); ok && r >= ' ' {
		f.SendText(string(r))
	}
}

func newTestEngine(t *testing.T, mutate func(*Config)) (*Engine, *fakeEmitter) {
	t.Helper()
	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	return New(cfg), &fakeEmitter{}
}

// typeKeys feeds ASCII text to the engine. \b is Delete, \x1b is Esc.
func typeKeys(t *testing.T, eng *Engine, out *fakeEmitter, text string) {
	t.Helper()
	strokes := keys.Strokes(text)
	if len(strokes) != len(text) {
		t.Fatalf("unmapped bytes in %q", text)
	}
	for _, s := range strokes {
		out.apply(eng.OnKey(s.Key, s.Caps, false, s.Shift), s)
	}
}

func vni(c *Config) { c.Method = types.MethodVNI }

func TestEngineTelexScenarios(t *testing.T) {
	cases := map[string]string{
		"vieetj":     "việt",
		"nguowif":    "người",
		"thuowng":    "thương",
		"thuowngj":   "thượng",
		"dadd":       "dad",
		"dd":         "đ",
		"ddd":        "dd",
		"Vieetj Nam": "Việt Nam",
	}
	for input, want := range cases {
		eng, out := newTestEngine(t, nil)
		typeKeys(t, eng, out, input)
		if out.String() != want {
			t.Fatalf("%q: expected %q on screen, got %q", input, want, out.String())
		}
	}
}

func TestEngineVNIScenario(t *testing.T) {
	eng, out := newTestEngine(t, vni)
	typeKeys(t, eng, out, "moi64")
	if out.String() != "mỗi" {
		t.Fatalf("expected mỗi, got %q", out.String())
	}
	typeKeys(t, eng, out, " d9i")
	if out.String() != "mỗi đi" {
		t.Fatalf("expected mỗi đi, got %q", out.String())
	}
}

func TestEngineEnglishAutoRestore(t *testing.T) {
	eng, out := newTestEngine(t, nil)
	typeKeys(t, eng, out, "pus")
	if out.String() != "pú" {
		t.Fatalf("expected pú before restore, got %q", out.String())
	}
	typeKeys(t, eng, out, "h")
	if out.String() != "push" {
		t.Fatalf("expected push, got %q", out.String())
	}
	if out.last.Action != types.ActionRestore {
		t.Fatalf("expected a restore action, got %s", out.last.Action)
	}
	if out.last.Backspace != 1 || out.last.Text() != "ush" {
		t.Fatalf("expected backspace 1 and ush, got %d %q", out.last.Backspace, out.last.Text())
	}
	if eng.State() != english.EnglishLocked || eng.Render() != "push" || eng.Raw() != "push" {
		t.Fatalf("unexpected state %s %q %q", eng.State(), eng.Render(), eng.Raw())
	}
}

func TestEngineDeferredRestore(t *testing.T) {
	eng, out := newTestEngine(t, func(c *Config) { c.InstantRestore = false })
	typeKeys(t, eng, out, "push")
	if out.String() != "púh" {
		t.Fatalf("expected púh before the break, got %q", out.String())
	}
	typeKeys(t, eng, out, " ")
	if out.String() != "push " {
		t.Fatalf("expected push and a space, got %q", out.String())
	}
	if out.last.Action != types.ActionRestore {
		t.Fatalf("expected restore on the break, got %s", out.last.Action)
	}
}

func TestEngineEnglishKeyPatterns(t *testing.T) {
	words := []string{"text", "next", "sexy", "reflex", "refer", "export", "telex", "element", "import", "wet", "were"}
	for _, w := range words {
		eng, out := newTestEngine(t, nil)
		typeKeys(t, eng, out, w+" ")
		if out.String() != w+" " {
			t.Fatalf("%q: expected the word untouched, got %q", w, out.String())
		}
	}

	// The three-key forms are still Vietnamese.
	cases := map[string]string{"sex ": "sẽ ", "rex ": "rẽ ", "ref ": "rè ", "tex ": "tẽ "}
	for input, want := range cases {
		eng, out := newTestEngine(t, nil)
		typeKeys(t, eng, out, input)
		if out.String() != want {
			t.Fatalf("%q: expected %q, got %q", input, want, out.String())
		}
	}
}

func TestEngineKeyPatternDeferredRestore(t *testing.T) {
	eng, out := newTestEngine(t, func(c *Config) { c.InstantRestore = false })
	typeKeys(t, eng, out, "text")
	if out.String() != "tẽt" {
		t.Fatalf("expected tẽt before the break, got %q", out.String())
	}
	if eng.State() != english.EnglishLocked {
		t.Fatalf("expected english lock, got %s", eng.State())
	}
	typeKeys(t, eng, out, " ")
	if out.String() != "text " || out.last.Action != types.ActionRestore {
		t.Fatalf("expected a restore to text on the break, got %q (%s)", out.String(), out.last.Action)
	}
}

func TestEngineEnglishLockIsSticky(t *testing.T) {
	eng, out := newTestEngine(t, nil)
	typeKeys(t, eng, out, "cl")
	if eng.State() != english.EnglishLocked {
		t.Fatalf("expected english lock after cl, got %s", eng.State())
	}
	typeKeys(t, eng, out, "ass")
	if out.String() != "class" {
		t.Fatalf("expected class, got %q", out.String())
	}
	if eng.State() != english.EnglishLocked {
		t.Fatalf("lock released mid word")
	}
}

func TestEngineStrokeLocksVietnamese(t *testing.T) {
	eng, out := newTestEngine(t, nil)
	typeKeys(t, eng, out, "ddi")
	if eng.State() != english.VietnameseLocked {
		t.Fatalf("expected vietnamese lock, got %s", eng.State())
	}
	if out.String() != "đi" {
		t.Fatalf("expected đi, got %q", out.String())
	}
}

func TestEngineBackspaceAfterSpaceReopensWord(t *testing.T) {
	eng, out := newTestEngine(t, nil)
	typeKeys(t, eng, out, "xin ")
	if eng.HistoryLen() != 1 || eng.Render() != "" {
		t.Fatalf("expected committed word, history %d buffer %q", eng.HistoryLen(), eng.Render())
	}
	typeKeys(t, eng, out, "\b")
	if out.String() != "xin" || eng.Render() != "xin" {
		t.Fatalf("expected xin reopened, screen %q buffer %q", out.String(), eng.Render())
	}
	if out.last.Backspace != 4 || out.last.Text() != "xin" {
		t.Fatalf("expected backspace 4 and xin, got %d %q", out.last.Backspace, out.last.Text())
	}
	typeKeys(t, eng, out, "h")
	if out.String() != "xinh" {
		t.Fatalf("expected xinh, got %q", out.String())
	}
}

func TestEngineSpacesCounter(t *testing.T) {
	eng, out := newTestEngine(t, nil)
	typeKeys(t, eng, out, "xin  \b")
	if out.String() != "xin " || out.last.Consumed() {
		t.Fatalf("first backspace should only delete a space, screen %q", out.String())
	}
	typeKeys(t, eng, out, "\b")
	if out.String() != "xin" || eng.Render() != "xin" {
		t.Fatalf("expected xin reopened, got %q", out.String())
	}
}

func TestEngineBackspaceWithinWord(t *testing.T) {
	eng, out := newTestEngine(t, nil)
	typeKeys(t, eng, out, "xin\b")
	if out.String() != "xi" || eng.Render() != "xi" || eng.Raw() != "xi" {
		t.Fatalf("expected xi, screen %q buffer %q raw %q", out.String(), eng.Render(), eng.Raw())
	}

	eng, out = newTestEngine(t, nil)
	typeKeys(t, eng, out, "vieetj\b")
	if out.String() != "việ" || eng.Raw() != "vieej" {
		t.Fatalf("expected việ from vieej, got %q from %q", out.String(), eng.Raw())
	}

	eng, out = newTestEngine(t, func(c *Config) { c.ToneStyle = types.ToneTraditional })
	typeKeys(t, eng, out, "hoafn\b")
	if out.String() != "hòa" {
		t.Fatalf("expected the mark to move back to o, got %q", out.String())
	}
	typeKeys(t, eng, out, "\b\b\b")
	if out.String() != "" || eng.State() != english.Unknown || eng.Raw() != "" {
		t.Fatalf("expected an empty word, got %q raw %q", out.String(), eng.Raw())
	}
}

func TestEngineShiftDeleteClearsWord(t *testing.T) {
	eng, out := newTestEngine(t, nil)
	typeKeys(t, eng, out, "tieengs")
	res := eng.OnKey(keys.Delete, false, false, true)
	if res.Backspace != 5 || eng.Render() != "" {
		t.Fatalf("expected backspace 5 and an empty word, got %d %q", res.Backspace, eng.Render())
	}
}

func TestEngineEmptyDeleteIsPassthrough(t *testing.T) {
	eng, _ := newTestEngine(t, nil)
	if res := eng.OnKey(keys.Delete, false, false, false); res.Consumed() {
		t.Fatalf("expected passthrough, got %+v", res)
	}
}

func TestEngineBreakCommits(t *testing.T) {
	eng, out := newTestEngine(t, nil)
	typeKeys(t, eng, out, "a1")
	if out.String() != "a1" || eng.Render() != "" || eng.HistoryLen() != 1 {
		t.Fatalf("digits end telex words: screen %q buffer %q", out.String(), eng.Render())
	}
	typeKeys(t, eng, out, "b.")
	if eng.HistoryLen() != 2 {
		t.Fatalf("expected two committed words, got %d", eng.HistoryLen())
	}
}

func TestEngineShiftDigitBreaksVNIWord(t *testing.T) {
	eng, out := newTestEngine(t, vni)
	typeKeys(t, eng, out, "a!")
	if out.String() != "a!" || eng.Render() != "" {
		t.Fatalf("expected a! with the word committed, got %q", out.String())
	}
}

func TestEngineEscRestore(t *testing.T) {
	eng, out := newTestEngine(t, func(c *Config) { c.EscRestore = true })
	typeKeys(t, eng, out, "vieetj\x1b")
	if out.String() != "vieetj" || eng.Render() != "" {
		t.Fatalf("expected raw keys restored, got %q", out.String())
	}

	eng, out = newTestEngine(t, nil)
	typeKeys(t, eng, out, "vieetj\x1b")
	if out.String() != "việt" || out.last.Consumed() {
		t.Fatalf("esc without restore should pass through, got %q", out.String())
	}
}

func TestEngineCapacity(t *testing.T) {
	eng, out := newTestEngine(t, func(c *Config) { c.SmartMode = false })
	typeKeys(t, eng, out, strings.Repeat("b", buffer.Capacity))
	if len([]rune(eng.Render())) != buffer.Capacity {
		t.Fatalf("expected a full buffer, got %d", len([]rune(eng.Render())))
	}
	if res := eng.OnKey(keys.B, false, false, false); res.Consumed() {
		t.Fatalf("expected passthrough at capacity, got %+v", res)
	}
	if len([]rune(eng.Render())) != buffer.Capacity {
		t.Fatalf("buffer changed at capacity")
	}
}

func TestEngineCmdAndDisabled(t *testing.T) {
	eng, out := newTestEngine(t, nil)
	typeKeys(t, eng, out, "xin viee")
	if res := eng.OnKey(keys.C, false, true, false); res.Consumed() {
		t.Fatalf("cmd chords pass through")
	}
	if eng.Render() != "" || eng.HistoryLen() != 0 {
		t.Fatalf("cmd should clear word and history")
	}

	eng.SetEnabled(false)
	if res := eng.OnKey(keys.A, false, false, false); res.Consumed() {
		t.Fatalf("disabled engine consumed a key")
	}
	eng.SetEnabled(true)
	eng.SetMethod(types.MethodPassthrough)
	if res := eng.OnKey(keys.A, false, false, false); res.Consumed() {
		t.Fatalf("passthrough method consumed a key")
	}
}

func TestEngineReplayInvariant(t *testing.T) {
	for _, input := range []string{"nguowif", "thuowngj", "vieetj", "quaan", "hoafn", "tooi"} {
		eng, out := newTestEngine(t, func(c *Config) { c.SmartMode = false })
		typeKeys(t, eng, out, input)
		replayed, _ := transform.Replay(eng.raw.Entries(), eng.options())
		if !replayed.Equal(&eng.buf) {
			t.Fatalf("%q: replay gives %q, buffer %q", input, replayed.Render(), eng.Render())
		}
	}
}

func TestEngineShortcuts(t *testing.T) {
	table := shortcut.NewTable()
	table.Add(shortcut.Shortcut{Trigger: "vn", Replacement: "Việt Nam"})
	table.Add(shortcut.Shortcut{Trigger: "ko", Replacement: "không", When: shortcut.Immediate})
	eng := New(DefaultConfig(), WithShortcuts(table))
	out := &fakeEmitter{}

	typeKeys(t, eng, out, "vn ")
	if out.String() != "Việt Nam " {
		t.Fatalf("expected expansion, got %q", out.String())
	}
	typeKeys(t, eng, out, "ko")
	if out.String() != "Việt Nam không" {
		t.Fatalf("expected immediate expansion, got %q", out.String())
	}

	eng.SetShortcutsEnabled(false)
	out = &fakeEmitter{}
	typeKeys(t, eng, out, " vn ")
	if out.String() != " vn " {
		t.Fatalf("disabled shortcuts expanded: %q", out.String())
	}
}

func TestEngineGluedWordDoesNotExpand(t *testing.T) {
	table := shortcut.NewTable()
	table.Add(shortcut.Shortcut{Trigger: "k", Replacement: "không"})
	eng := New(DefaultConfig(), WithShortcuts(table))
	out := &fakeEmitter{}
	typeKeys(t, eng, out, "149k ")
	if out.String() != "149k " {
		t.Fatalf("expected 149k untouched, got %q", out.String())
	}
}

func TestEngineRestoreWord(t *testing.T) {
	eng, out := newTestEngine(t, nil)
	if !eng.RestoreWord("việt") {
		t.Fatalf("restore failed")
	}
	if eng.Render() != "việt" {
		t.Fatalf("expected việt, got %q", eng.Render())
	}
	out.SendText("việt")
	typeKeys(t, eng, out, "\b")
	if out.String() != "việ" || eng.Render() != "việ" {
		t.Fatalf("expected việ, got %q", out.String())
	}
	if eng.RestoreWord("a1") {
		t.Fatalf("digits are not a word")
	}
}

// rejectAll refuses every syllable and counts how often it was asked.
type rejectAll struct{ calls int }

func (r *rejectAll) Validate(syllable.Syllable) validation.Result {
	r.calls++
	return validation.InvalidNucleus
}

func (r *rejectAll) Plausible(syllable.Syllable) bool {
	r.calls++
	return false
}

func TestEngineUsesInjectedValidator(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SmartMode = false
	stub := &rejectAll{}
	eng, out := New(cfg, WithValidator(stub)), &fakeEmitter{}

	typeKeys(t, eng, out, "tieengs")
	if got := out.String(); got != "tieengs" {
		t.Fatalf("rejected transforms should stay literal, got %q", got)
	}
	if stub.calls == 0 {
		t.Fatal("validator was never consulted")
	}

	def, defOut := newTestEngine(t, func(c *Config) { c.SmartMode = false })
	typeKeys(t, def, defOut, "tieengs")
	if got := defOut.String(); got != "tiếng" {
		t.Fatalf("default validator: got %q", got)
	}
}

func TestEngineUsesInjectedDetector(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SmartMode = true
	cfg.InstantRestore = true
	det := english.NewDetector(english.NewDictionary([]string{"tieeng"}), validation.Default)
	eng, out := New(cfg, WithDetector(det)), &fakeEmitter{}

	typeKeys(t, eng, out, "tieengs")
	if got := out.String(); got != "tieengs" {
		t.Fatalf("dictionary word should restore to its keys, got %q", got)
	}
	if eng.State() != english.EnglishLocked {
		t.Fatalf("state = %v, want english", eng.State())
	}
}
