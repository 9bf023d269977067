// Command libvnime builds the engine as a C shared library:
//
//	go build -buildmode=c-shared -o libvnime.so ./cmd/libvnime
package main

/*
#include <stdint.h>
#include <stdbool.h>
#include <stdlib.h>

typedef struct {
	uint8_t method;
	uint8_t tone_style;
	bool smart_mode;
	bool shortcuts_enabled;
	bool instant_restore;
	bool esc_restore;
} VnimeConfig;

typedef struct {
	uint8_t action;
	uint8_t backspace_count;
	char *chars;
	uint8_t count;
	bool consumed;
} VnimeResult;
*/
import "C"

import (
	"os"
	"runtime/cgo"
	"unsafe"

	"go.uber.org/zap"

	"vnime/internal/cabi"
	"vnime/internal/logging"
)

type handleState struct {
	session *cabi.Session
}

// strs owns every C string handed out: process_key results until the next
// call on their handle, render_buffer copies until free_string.
var strs = cabi.NewLedger()

func ptr(p *C.char) uintptr { return uintptr(unsafe.Pointer(p)) }

// release frees the result string of h unless free_string got to it first.
func release(h C.uintptr_t) {
	if p, ok := strs.Release(uintptr(h)); ok {
		C.free(unsafe.Pointer(p))
	}
}

var logger = newLogger()

func newLogger() *zap.Logger {
	level, err := logging.ParseLevel(os.Getenv("VNIME_LOG"))
	if err != nil || os.Getenv("VNIME_LOG") == "" {
		return logging.Nop()
	}
	cfg := logging.DefaultConfig()
	cfg.Level = level
	l, err := logging.New(cfg)
	if err != nil {
		return logging.Nop()
	}
	return l
}

func lookup(h C.uintptr_t) (st *handleState) {
	if h == 0 {
		return nil
	}
	defer func() {
		if recover() != nil {
			st = nil
		}
	}()
	st, _ = cgo.Handle(h).Value().(*handleState)
	return st
}

func newHandle(cfg cabi.Config) C.uintptr_t {
	return C.uintptr_t(cgo.NewHandle(&handleState{session: cabi.NewSession(cfg, logger)}))
}

//export engine_new
func engine_new() C.uintptr_t {
	return newHandle(cabi.DefaultConfig())
}

//export engine_new_with_config
func engine_new_with_config(cfg C.VnimeConfig) C.uintptr_t {
	return newHandle(cabi.Config{
		Method:           int32(cfg.method),
		ToneStyle:        int32(cfg.tone_style),
		SmartMode:        bool(cfg.smart_mode),
		ShortcutsEnabled: bool(cfg.shortcuts_enabled),
		InstantRestore:   bool(cfg.instant_restore),
		EscRestore:       bool(cfg.esc_restore),
	})
}

//export engine_free
func engine_free(h C.uintptr_t) {
	if lookup(h) == nil {
		return
	}
	release(h)
	cgo.Handle(h).Delete()
}

//export process_key
func process_key(h C.uintptr_t, key C.uint16_t, caps, cmd, shift C.bool) C.VnimeResult {
	var out C.VnimeResult
	st := lookup(h)
	if st == nil {
		return out
	}
	release(h)
	res := st.session.ProcessKey(uint16(key), bool(caps), bool(cmd), bool(shift))
	if !res.Consumed {
		return out
	}
	chars := C.CString(res.Chars)
	strs.Track(uintptr(h), ptr(chars))
	out.action = C.uint8_t(res.Action)
	out.backspace_count = C.uint8_t(res.Backspace)
	out.chars = chars
	out.count = C.uint8_t(res.Count)
	out.consumed = C.bool(true)
	return out
}

//export set_method
func set_method(h C.uintptr_t, method C.int32_t) C.bool {
	if st := lookup(h); st != nil {
		return C.bool(st.session.SetMethod(int32(method)))
	}
	return C.bool(false)
}

func withSession(h C.uintptr_t, fn func(*cabi.Session)) {
	if st := lookup(h); st != nil {
		fn(st.session)
	}
}

//export set_enabled
func set_enabled(h C.uintptr_t, v C.bool) {
	withSession(h, func(s *cabi.Session) { s.SetEnabled(bool(v)) })
}

//export set_modern_tone
func set_modern_tone(h C.uintptr_t, v C.bool) {
	withSession(h, func(s *cabi.Session) { s.SetModernTone(bool(v)) })
}

//export set_esc_restore
func set_esc_restore(h C.uintptr_t, v C.bool) {
	withSession(h, func(s *cabi.Session) { s.SetEscRestore(bool(v)) })
}

//export set_free_tone
func set_free_tone(h C.uintptr_t, v C.bool) {
	withSession(h, func(s *cabi.Session) { s.SetFreeTone(bool(v)) })
}

//export set_skip_w_shortcut
func set_skip_w_shortcut(h C.uintptr_t, v C.bool) {
	withSession(h, func(s *cabi.Session) { s.SetSkipWShortcut(bool(v)) })
}

//export set_instant_restore
func set_instant_restore(h C.uintptr_t, v C.bool) {
	withSession(h, func(s *cabi.Session) { s.SetInstantRestore(bool(v)) })
}

//export set_shortcuts_enabled
func set_shortcuts_enabled(h C.uintptr_t, v C.bool) {
	withSession(h, func(s *cabi.Session) { s.SetShortcutsEnabled(bool(v)) })
}

//export add_shortcut
func add_shortcut(h C.uintptr_t, trigger, replacement *C.char) C.bool {
	st := lookup(h)
	if st == nil || trigger == nil || replacement == nil {
		return C.bool(false)
	}
	return C.bool(st.session.AddShortcut(C.GoString(trigger), C.GoString(replacement)))
}

//export remove_shortcut
func remove_shortcut(h C.uintptr_t, trigger *C.char) C.bool {
	st := lookup(h)
	if st == nil || trigger == nil {
		return C.bool(false)
	}
	return C.bool(st.session.RemoveShortcut(C.GoString(trigger)))
}

//export clear_shortcuts
func clear_shortcuts(h C.uintptr_t) {
	withSession(h, func(s *cabi.Session) { s.ClearShortcuts() })
}

//export clear_buffer
func clear_buffer(h C.uintptr_t) {
	withSession(h, func(s *cabi.Session) { s.ClearBuffer() })
}

//export restore_word
func restore_word(h C.uintptr_t, word *C.char) C.bool {
	st := lookup(h)
	if st == nil || word == nil {
		return C.bool(false)
	}
	return C.bool(st.session.RestoreWord(C.GoString(word)))
}

// render_buffer returns a copy the caller releases with free_string.
//
//export render_buffer
func render_buffer(h C.uintptr_t) *C.char {
	st := lookup(h)
	if st == nil {
		return nil
	}
	p := C.CString(st.session.Render())
	strs.Track(0, ptr(p))
	return p
}

// free_string releases strings from render_buffer, or the chars of a
// process_key result before the next call. Unknown and already freed
// pointers are ignored.
//
//export free_string
func free_string(p *C.char) {
	if p == nil || !strs.Free(ptr(p)) {
		return
	}
	C.free(unsafe.Pointer(p))
}

func main() {}
