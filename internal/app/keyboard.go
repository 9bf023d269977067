package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/eiannone/keyboard"
	"go.uber.org/zap"

	"vnime/internal/emitter"
	"vnime/internal/keys"
)

// errQuit ends the key loop without an error.
var errQuit = errors.New("quit")

// translateKey maps a terminal key event onto a keystroke. cmd is set for
// control chords the engine treats as a context change.
func translateKey(ev keyboard.KeyEvent) (s keys.Stroke, cmd bool, err error) {
	switch ev.Key {
	case keyboard.KeyCtrlC, keyboard.KeyCtrlD:
		return keys.Stroke{}, false, errQuit
	case keyboard.KeySpace:
		return keys.Stroke{Key: keys.Space}, false, nil
	case keyboard.KeyEnter:
		return keys.Stroke{Key: keys.Return}, false, nil
	case keyboard.KeyTab:
		return keys.Stroke{Key: keys.Tab}, false, nil
	case keyboard.KeyBackspace, keyboard.KeyBackspace2:
		return keys.Stroke{Key: keys.Delete}, false, nil
	case keyboard.KeyEsc:
		return keys.Stroke{Key: keys.Esc}, false, nil
	case keyboard.KeyArrowLeft:
		return keys.Stroke{Key: keys.Left}, false, nil
	case keyboard.KeyArrowRight:
		return keys.Stroke{Key: keys.Right}, false, nil
	case keyboard.KeyArrowUp:
		return keys.Stroke{Key: keys.Up}, false, nil
	case keyboard.KeyArrowDown:
		return keys.Stroke{Key: keys.Down}, false, nil
	}
	if ev.Rune > 0 && ev.Rune < 128 {
		if s, ok := keys.FromASCII(byte(ev.Rune)); ok {
			return s, false, nil
		}
	}
	// Any other chord or non-ASCII rune moves the caret or inserts text the
	// engine did not see.
	return keys.Stroke{}, true, nil
}

// RunKeyboard reads keys from the terminal in raw mode and echoes the
// composed text until Ctrl+C, Ctrl+D or a termination signal.
func (rt *Runtime) RunKeyboard(ctx context.Context) error {
	if err := keyboard.Open(); err != nil {
		return err
	}
	rt.registerCleanup(func() { _ = keyboard.Close() })

	events, err := keyboard.GetKeys(16)
	if err != nil {
		return err
	}
	out := emitter.NewTerminal(os.Stdout)
	rt.registerCleanup(func() { _ = out.Close() })

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	rt.logger.Debug("keyboard loop started", zap.Stringer("method", rt.engine.Config().Method))
	for {
		select {
		case <-ctx.Done():
			return nil
		case sig := <-sigs:
			rt.logger.Debug("signal received", zap.Stringer("signal", sig))
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if ev.Err != nil {
				return ev.Err
			}
			s, cmd, err := translateKey(ev)
			if errors.Is(err, errQuit) {
				return nil
			}
			if cmd {
				rt.engine.OnKey(0, false, true, false)
				continue
			}
			if err := rt.Press(out, s, false); err != nil {
				return err
			}
		}
	}
}
