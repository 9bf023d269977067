package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vnime/internal/buffer"
	"vnime/internal/syllable"
)

func parse(t *testing.T, word string) syllable.Syllable {
	t.Helper()
	out := make([]buffer.Char, 0, len(word))
	for _, r := range word {
		c, ok := buffer.Parse(r)
		if !ok {
			t.Fatalf("cannot parse %q", r)
		}
		out = append(out, c)
	}
	return syllable.Parse(out)
}

func TestValidate(t *testing.T) {
	cases := map[string]Result{
		"việt":   Valid,
		"người":  Valid,
		"thương": Valid,
		"quyết":  Valid,
		"hoạch":  Valid,
		"xoong":  Valid,
		"khuya":  Valid,
		"gì":     Valid,
		"tr":     NoSyllable,
		"fa":     InvalidInitial,
		"zô":     InvalidInitial,
		"vie":    InvalidNucleus,
		"aơ":     InvalidNucleus,
		"ăi":     InvalidNucleus,
		"tak":    InvalidCoda,
		"banana": InvalidCoda,
		"och":    InvalidNucleusCoda,
		"unh":    InvalidNucleusCoda,
		"beng":   InvalidNucleusCoda,
	}
	for word, want := range cases {
		assert.Equal(t, want, Default.Validate(parse(t, word)), word)
	}
}

func TestPlausible(t *testing.T) {
	for _, word := range []string{"tr", "ngh", "q", "vie", "nguo", "thuo", "uy", "vien", "beng", "giu", "chu"} {
		assert.True(t, Default.Plausible(parse(t, word)), word)
	}
	for _, word := range []string{"f", "push", "banana", "aơ", "och", "tak", "cl", "thee"} {
		assert.False(t, Default.Plausible(parse(t, word)), word)
	}
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "ng|ươi|", Describe(parse(t, "người")))
	assert.Equal(t, "qu|yê|t", Describe(parse(t, "quyết")))
}
