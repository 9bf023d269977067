package english

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"vnime/internal/keys"
	"vnime/internal/transform"
)

// MaxWordLen is the longest word a Dictionary stores.
const MaxWordLen = 16

//go:embed words.txt
var builtinWords string

// packed holds up to 16 keycodes, one per byte, little-endian: the first key
// sits in the low byte of lo.
type packed struct {
	lo, hi uint64
}

func (p packed) less(o packed) bool {
	if p.hi != o.hi {
		return p.hi < o.hi
	}
	return p.lo < o.lo
}

func pack(keyCodes []uint16) (packed, bool) {
	var p packed
	if len(keyCodes) == 0 || len(keyCodes) > MaxWordLen {
		return p, false
	}
	for i, k := range keyCodes {
		if k > 0xff {
			return p, false
		}
		if i < 8 {
			p.lo |= uint64(k) << (8 * i)
		} else {
			p.hi |= uint64(k) << (8 * (i - 8))
		}
	}
	return p, true
}

// Dictionary is an immutable set of keycode sequences, bucketed by length
// and sorted for binary search.
type Dictionary struct {
	buckets [MaxWordLen + 1][]packed
	size    int
}

// NewDictionary builds a dictionary from lower-case ASCII words. Words with
// characters that have no key are skipped.
func NewDictionary(words []string) *Dictionary {
	d := &Dictionary{}
	for _, w := range words {
		codes, ok := wordKeys(w)
		if !ok {
			continue
		}
		p, ok := pack(codes)
		if !ok {
			continue
		}
		d.buckets[len(codes)] = append(d.buckets[len(codes)], p)
	}
	for i := range d.buckets {
		b := d.buckets[i]
		sort.Slice(b, func(x, y int) bool { return b[x].less(b[y]) })
		d.buckets[i] = dedupe(b)
		d.size += len(d.buckets[i])
	}
	return d
}

func dedupe(b []packed) []packed {
	if len(b) < 2 {
		return b
	}
	out := b[:1]
	for _, p := range b[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}

func wordKeys(w string) ([]uint16, bool) {
	w = strings.ToLower(strings.TrimSpace(w))
	if w == "" {
		return nil, false
	}
	out := make([]uint16, 0, len(w))
	for i := 0; i < len(w); i++ {
		s, ok := keys.FromASCII(w[i])
		if !ok || !keys.IsLetter(s.Key) {
			return nil, false
		}
		out = append(out, s.Key)
	}
	return out, true
}

// Contains looks up a keycode sequence.
func (d *Dictionary) Contains(keyCodes []uint16) bool {
	if d == nil {
		return false
	}
	p, ok := pack(keyCodes)
	if !ok {
		return false
	}
	bucket := d.buckets[len(keyCodes)]
	i := sort.Search(len(bucket), func(i int) bool { return !bucket[i].less(p) })
	return i < len(bucket) && bucket[i] == p
}

// ContainsWord is Contains for an ASCII word.
func (d *Dictionary) ContainsWord(w string) bool {
	codes, ok := wordKeys(w)
	return ok && d.Contains(codes)
}

func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return d.size
}

var (
	builtinOnce sync.Once
	builtin     *Dictionary
)

// Builtin returns the embedded dictionary. Words whose Telex rendering could
// still be a Vietnamese syllable are dropped, so typing "the" stays free to
// become "thê".
func Builtin() *Dictionary {
	builtinOnce.Do(func() {
		words, err := ReadWords(strings.NewReader(builtinWords))
		if err != nil {
			panic(fmt.Sprintf("english: embedded word list: %v", err))
		}
		builtin = NewDictionary(FilterVietnamese(words))
		tracer().Debugf("built dictionary with %d of %d words", builtin.Len(), len(words))
	})
	return builtin
}

// FilterVietnamese drops words that type as a plausible Vietnamese syllable
// under the default Telex rules.
func FilterVietnamese(words []string) []string {
	opt := transform.DefaultOptions()
	out := words[:0:0]
	for _, w := range words {
		codes, ok := wordKeys(w)
		if !ok {
			continue
		}
		b := transform.ReplayKeys(codes, opt)
		if opt.Validator.Plausible(parseBuffer(b)) {
			continue
		}
		out = append(out, w)
	}
	return out
}

// ReadWords reads one word per line. Blank lines and lines starting with #
// are ignored.
func ReadWords(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if strings.ContainsAny(text, " \t") {
			return nil, fmt.Errorf("line %d: expected a single word, got %q", line, text)
		}
		words = append(words, strings.ToLower(text))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}
	return words, nil
}

// LoadWordFile reads a user word list. The words are not filtered: a user
// who lists a word wants it kept English.
func LoadWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list %s: %w", path, err)
	}
	defer f.Close()
	words, err := ReadWords(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return words, nil
}

// WithWords returns a dictionary holding the builtin words plus extra.
func WithWords(extra []string) *Dictionary {
	base := Builtin()
	words := make([]string, 0, base.Len()+len(extra))
	words = append(words, base.words()...)
	words = append(words, extra...)
	return NewDictionary(words)
}

func (d *Dictionary) words() []string {
	out := make([]string, 0, d.size)
	for n, bucket := range d.buckets {
		for _, p := range bucket {
			out = append(out, unpack(p, n))
		}
	}
	return out
}

func unpack(p packed, n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		var k uint16
		if i < 8 {
			k = uint16(p.lo >> (8 * i) & 0xff)
		} else {
			k = uint16(p.hi >> (8 * (i - 8)) & 0xff)
		}
		if r, ok := keys.ToChar(k, false); ok {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
