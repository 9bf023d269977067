package shortcut

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vnime/internal/types"
)

func TestExpandMatchCase(t *testing.T) {
	table := NewTable()
	require.NoError(t, table.Add(Shortcut{Trigger: "vn", Replacement: "Việt Nam"}))

	got, ok := table.Expand("vn", types.MethodTelex, false)
	assert.True(t, ok)
	assert.Equal(t, "Việt Nam", got)

	got, _ = table.Expand("VN", types.MethodTelex, false)
	assert.Equal(t, "VIỆT NAM", got)

	table.Add(Shortcut{Trigger: "ko", Replacement: "không"})
	got, _ = table.Expand("Ko", types.MethodVNI, false)
	assert.Equal(t, "Không", got)

	_, ok = table.Expand("vn", types.MethodTelex, true)
	assert.False(t, ok, "word boundary shortcut must not fire immediately")
}

func TestExpandExactAndScope(t *testing.T) {
	table := NewTable()
	table.Add(Shortcut{Trigger: "HN", Replacement: "Hà Nội", Case: Exact, Scope: ScopeVNI})

	_, ok := table.Expand("HN", types.MethodTelex, false)
	assert.False(t, ok)
	_, ok = table.Expand("hn", types.MethodVNI, false)
	assert.False(t, ok)
	got, ok := table.Expand("HN", types.MethodVNI, false)
	assert.True(t, ok)
	assert.Equal(t, "Hà Nội", got)
}

func TestNonLetterWordsNeverExpand(t *testing.T) {
	table := NewTable()
	table.Add(Shortcut{Trigger: "149k", Replacement: "149 nghìn"})
	_, ok := table.Expand("149k", types.MethodTelex, false)
	assert.False(t, ok)
}

func TestCapacityAndTruncation(t *testing.T) {
	table := NewTable()
	for i := 0; i < Capacity; i++ {
		require.NoError(t, table.Add(Shortcut{Trigger: fmt.Sprintf("s%d", i), Replacement: "x"}))
	}
	err := table.Add(Shortcut{Trigger: "extra", Replacement: "x"})
	assert.True(t, errors.Is(err, ErrFull))
	require.NoError(t, table.Add(Shortcut{Trigger: "s1", Replacement: "replaced"}), "replacing keeps the count")
	assert.Equal(t, Capacity, table.Len())

	table.Clear()
	require.NoError(t, table.Add(Shortcut{Trigger: "long", Replacement: strings.Repeat("ư", 100)}))
	s, ok := table.Lookup("long", types.MethodTelex)
	require.True(t, ok)
	assert.Equal(t, MaxReplacement, len([]rune(s.Replacement)))

	assert.ErrorIs(t, table.Add(Shortcut{Trigger: "  "}), ErrEmptyTrigger)
}

func TestRemoveAndPrefix(t *testing.T) {
	table := NewTable()
	table.Add(Shortcut{Trigger: "tphcm", Replacement: "Thành phố Hồ Chí Minh"})
	table.Add(Shortcut{Trigger: "tp", Replacement: "thành phố"})
	assert.True(t, table.HasPrefix("tph"))
	assert.Len(t, table.All(), 2)
	assert.True(t, table.Remove("TP"))
	assert.False(t, table.Remove("tp"))
	assert.Equal(t, 1, table.Len())
	assert.Equal(t, "tphcm", table.All()[0].Trigger)
}

func TestRemoveKeepsOtherTriggers(t *testing.T) {
	table := NewTable()
	for _, trig := range []string{"vn", "ko", "hn", "hnx", "ha"} {
		require.NoError(t, table.Add(Shortcut{Trigger: trig, Replacement: trig + "!"}))
	}

	require.True(t, table.Remove("vn"))
	assert.Equal(t, 4, table.Len())
	for _, trig := range []string{"ko", "hn", "hnx", "ha"} {
		_, ok := table.Lookup(trig, types.MethodTelex)
		assert.True(t, ok, trig)
	}

	require.True(t, table.Remove("hn"))
	_, ok := table.Lookup("hn", types.MethodTelex)
	assert.False(t, ok)
	s, ok := table.Lookup("hnx", types.MethodTelex)
	require.True(t, ok)
	assert.Equal(t, "hnx!", s.Replacement)
	assert.True(t, table.HasPrefix("hn"))
	assert.Len(t, table.All(), table.Len())
}

func TestParseTSV(t *testing.T) {
	in := "# comment\nvn\tViệt Nam\n; also comment\nbroken line\nhn\tHà Nội\n"
	got, err := ParseTSV("test", strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "hn", got[1].Trigger)
	assert.Equal(t, "Hà Nội", got[1].Replacement)
}

func TestParseYAMLAndJSON(t *testing.T) {
	yamlDoc := []byte(`shortcuts:
  - trigger: vn
    replacement: Việt Nam
  - trigger: ->
    replacement: "→"
    when: immediate
    case: exact
    method: telex
`)
	got, err := ParseYAML("test.yaml", yamlDoc)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, Immediate, got[1].When)
	assert.Equal(t, Exact, got[1].Case)
	assert.Equal(t, ScopeTelex, got[1].Scope)

	_, err = ParseJSON("bad.json", []byte(`{"shortcuts":[{"trigger":"a b","replacement":"x"}]}`))
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected a validation error, got %v", err)
	assert.Equal(t, "bad.json", verr.Source)

	_, err = ParseJSON("bad.json", []byte(`{"shortcuts":[{"trigger":"a","replacement":"x","when":"later"}]}`))
	assert.Error(t, err)
}

func TestLoadFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shortcuts.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"shortcuts":[{"trigger":"ko","replacement":"không"}]}`), 0o644))

	table, err := Load(path)
	require.NoError(t, err)
	got, ok := table.Expand("ko", types.MethodTelex, false)
	assert.True(t, ok)
	assert.Equal(t, "không", got)

	_, err = Load(filepath.Join(dir, "missing.tsv"))
	assert.Error(t, err)
}
