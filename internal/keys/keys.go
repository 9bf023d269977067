// Package keys holds the macOS virtual keycode tables the engine speaks.
package keys

// Letters.
const (
	A uint16 = 0
	S uint16 = 1
	D uint16 = 2
	F uint16 = 3
	H uint16 = 4
	G uint16 = 5
	Z uint16 = 6
	X uint16 = 7
	C uint16 = 8
	V uint16 = 9
	B uint16 = 11
	Q uint16 = 12
	W uint16 = 13
	E uint16 = 14
	R uint16 = 15
	Y uint16 = 16
	T uint16 = 17
	O uint16 = 31
	U uint16 = 32
	I uint16 = 34
	P uint16 = 35
	L uint16 = 37
	J uint16 = 38
	K uint16 = 40
	N uint16 = 45
	M uint16 = 46
)

// Digits on the main row.
const (
	N1 uint16 = 18
	N2 uint16 = 19
	N3 uint16 = 20
	N4 uint16 = 21
	N6 uint16 = 22
	N5 uint16 = 23
	N9 uint16 = 25
	N7 uint16 = 26
	N8 uint16 = 28
	N0 uint16 = 29
)

// Control and navigation.
const (
	Return uint16 = 36
	Tab    uint16 = 48
	Space  uint16 = 49
	Delete uint16 = 51
	Esc    uint16 = 53
	Enter  uint16 = 76
	Left   uint16 = 123
	Right  uint16 = 124
	Down   uint16 = 125
	Up     uint16 = 126
)

// Punctuation.
const (
	Equal        uint16 = 24
	Minus        uint16 = 27
	RightBracket uint16 = 30
	LeftBracket  uint16 = 33
	Quote        uint16 = 39
	Semicolon    uint16 = 41
	Backslash    uint16 = 42
	Comma        uint16 = 43
	Slash        uint16 = 44
	Dot          uint16 = 47
	Backquote    uint16 = 50
)

const tableSize = 128

type class uint8

const (
	classLetter class = 1 << iota
	classVowel
	classNumber
	classBreak
	classPunct
)

var (
	plain   [tableSize]byte
	shifted [tableSize]byte
	classes [tableSize]class
	ascii   [128]uint16
	asciiOK [128]bool
	asciiSh [128]bool
)

func init() {
	letters := map[uint16]byte{
		A: 'a', B: 'b', C: 'c', D: 'd', E: 'e', F: 'f', G: 'g', H: 'h', I: 'i',
		J: 'j', K: 'k', L: 'l', M: 'm', N: 'n', O: 'o', P: 'p', Q: 'q', R: 'r',
		S: 's', T: 't', U: 'u', V: 'v', W: 'w', X: 'x', Y: 'y', Z: 'z',
	}
	for code, ch := range letters {
		plain[code] = ch
		shifted[code] = ch - 'a' + 'A'
		classes[code] |= classLetter
		switch ch {
		case 'a', 'e', 'i', 'o', 'u', 'y':
			classes[code] |= classVowel
		}
	}

	digits := []struct {
		code         uint16
		ch, shiftedC byte
	}{
		{N1, '1', '!'}, {N2, '2', '@'}, {N3, '3', '#'}, {N4, '4', '$'}, {N5, '5', '%'},
		{N6, '6', '^'}, {N7, '7', '&'}, {N8, '8', '*'}, {N9, '9', '('}, {N0, '0', ')'},
	}
	for _, d := range digits {
		plain[d.code] = d.ch
		shifted[d.code] = d.shiftedC
		classes[d.code] |= classNumber | classBreak
	}

	punct := []struct {
		code         uint16
		ch, shiftedC byte
	}{
		{Dot, '.', '>'}, {Comma, ',', '<'}, {Slash, '/', '?'}, {Semicolon, ';', ':'},
		{Quote, '\'', '"'}, {LeftBracket, '[', '{'}, {RightBracket, ']', '}'},
		{Backslash, '\\', '|'}, {Minus, '-', '_'}, {Equal, '=', '+'}, {Backquote, '`', '~'},
	}
	for _, p := range punct {
		plain[p.code] = p.ch
		shifted[p.code] = p.shiftedC
		classes[p.code] |= classPunct | classBreak
	}

	plain[Space], shifted[Space] = ' ', ' '
	plain[Tab], shifted[Tab] = '\t', '\t'
	plain[Return], shifted[Return] = '\n', '\n'
	plain[Enter], shifted[Enter] = '\n', '\n'
	for _, code := range []uint16{Space, Tab, Return, Enter, Esc, Left, Right, Up, Down} {
		classes[code] |= classBreak
	}

	for code := 0; code < tableSize; code++ {
		if ch := plain[code]; ch != 0 && !asciiOK[ch] {
			ascii[ch], asciiOK[ch] = uint16(code), true
		}
	}
	for code := 0; code < tableSize; code++ {
		if ch := shifted[code]; ch != 0 && !asciiOK[ch] {
			ascii[ch], asciiOK[ch], asciiSh[ch] = uint16(code), true, true
		}
	}
	ascii['\r'], asciiOK['\r'] = Return, true
	ascii[0x08], asciiOK[0x08] = Delete, true
	ascii[0x7f], asciiOK[0x7f] = Delete, true
	ascii[0x1b], asciiOK[0x1b] = Esc, true
}

func classOf(key uint16) class {
	if int(key) >= tableSize {
		return 0
	}
	return classes[key]
}

func IsLetter(key uint16) bool { return classOf(key)&classLetter != 0 }

// IsVowel reports a, e, i, o, u and y.
func IsVowel(key uint16) bool { return classOf(key)&classVowel != 0 }

func IsConsonant(key uint16) bool {
	c := classOf(key)
	return c&classLetter != 0 && c&classVowel == 0
}

func IsNumber(key uint16) bool { return classOf(key)&classNumber != 0 }

// IsBreak reports keys that end a word: whitespace, return, escape, arrows,
// punctuation and the digit row.
func IsBreak(key uint16) bool { return classOf(key)&classBreak != 0 }

func IsPunctuation(key uint16) bool { return classOf(key)&classPunct != 0 }

// ToChar returns the character a key produces. Caps applies to letters,
// shift to digits and punctuation.
func ToChar(key uint16, caps bool) (rune, bool) {
	if int(key) >= tableSize || plain[key] == 0 {
		return 0, false
	}
	if caps && IsLetter(key) {
		return rune(shifted[key]), true
	}
	return rune(plain[key]), true
}

// Symbol returns the character produced with shift held.
func Symbol(key uint16, shift bool) (rune, bool) {
	if int(key) >= tableSize || plain[key] == 0 {
		return 0, false
	}
	if shift {
		return rune(shifted[key]), true
	}
	return rune(plain[key]), true
}

// Stroke is a keycode together with the modifier state needed to produce an
// ASCII character.
type Stroke struct {
	Key   uint16
	Caps  bool
	Shift bool
}

// FromASCII maps an ASCII byte to the key that types it on a US layout.
func FromASCII(ch byte) (Stroke, bool) {
	if ch >= 128 || !asciiOK[ch] {
		return Stroke{}, false
	}
	key := ascii[ch]
	shift := asciiSh[ch]
	return Stroke{Key: key, Caps: shift && IsLetter(key), Shift: shift && !IsLetter(key)}, true
}

// Strokes converts an ASCII string into keystrokes, skipping bytes that have
// no key.
func Strokes(text string) []Stroke {
	out := make([]Stroke, 0, len(text))
	for i := 0; i < len(text); i++ {
		if s, ok := FromASCII(text[i]); ok {
			out = append(out, s)
		}
	}
	return out
}
