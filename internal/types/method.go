package types

import (
	"fmt"
	"strings"
)

type Method int

const (
	MethodTelex Method = iota
	MethodVNI
	MethodPassthrough
)

func (m Method) String() string {
	switch m {
	case MethodTelex:
		return "telex"
	case MethodVNI:
		return "vni"
	case MethodPassthrough:
		return "passthrough"
	default:
		return "unknown"
	}
}

func (m Method) Valid() bool {
	return m >= MethodTelex && m <= MethodPassthrough
}

// ParseMethod accepts the names printed by String as well as the numeric ids
// used across the C boundary.
func ParseMethod(value string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "telex", "0":
		return MethodTelex, nil
	case "vni", "1":
		return MethodVNI, nil
	case "passthrough", "off", "english", "2":
		return MethodPassthrough, nil
	default:
		return MethodTelex, fmt.Errorf("unknown input method %q", value)
	}
}

type ToneStyle int

const (
	ToneTraditional ToneStyle = iota
	ToneModern
)

func (s ToneStyle) String() string {
	switch s {
	case ToneTraditional:
		return "traditional"
	case ToneModern:
		return "modern"
	default:
		return "unknown"
	}
}

func ParseToneStyle(value string) (ToneStyle, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "traditional", "old", "0":
		return ToneTraditional, nil
	case "modern", "new", "1":
		return ToneModern, nil
	default:
		return ToneModern, fmt.Errorf("unknown tone style %q", value)
	}
}

// Action tells the platform shim what to do with a key.
type Action uint8

const (
	ActionNone Action = iota
	ActionReplace
	ActionRestore
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionReplace:
		return "replace"
	case ActionRestore:
		return "restore"
	default:
		return "unknown"
	}
}
