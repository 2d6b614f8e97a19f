//go:build windows || (cgo && (linux || darwin))

package hotkey

import (
	"fmt"

	xhotkey "golang.design/x/hotkey"
)

// desktopKeys maps canonical key names to the desktop backend's key codes.
var desktopKeys = map[string]xhotkey.Key{
	"a": xhotkey.KeyA, "b": xhotkey.KeyB, "c": xhotkey.KeyC, "d": xhotkey.KeyD,
	"e": xhotkey.KeyE, "f": xhotkey.KeyF, "g": xhotkey.KeyG, "h": xhotkey.KeyH,
	"i": xhotkey.KeyI, "j": xhotkey.KeyJ, "k": xhotkey.KeyK, "l": xhotkey.KeyL,
	"m": xhotkey.KeyM, "n": xhotkey.KeyN, "o": xhotkey.KeyO, "p": xhotkey.KeyP,
	"q": xhotkey.KeyQ, "r": xhotkey.KeyR, "s": xhotkey.KeyS, "t": xhotkey.KeyT,
	"u": xhotkey.KeyU, "v": xhotkey.KeyV, "w": xhotkey.KeyW, "x": xhotkey.KeyX,
	"y": xhotkey.KeyY, "z": xhotkey.KeyZ,

	"0": xhotkey.Key0, "1": xhotkey.Key1, "2": xhotkey.Key2, "3": xhotkey.Key3,
	"4": xhotkey.Key4, "5": xhotkey.Key5, "6": xhotkey.Key6, "7": xhotkey.Key7,
	"8": xhotkey.Key8, "9": xhotkey.Key9,

	"f1": xhotkey.KeyF1, "f2": xhotkey.KeyF2, "f3": xhotkey.KeyF3, "f4": xhotkey.KeyF4,
	"f5": xhotkey.KeyF5, "f6": xhotkey.KeyF6, "f7": xhotkey.KeyF7, "f8": xhotkey.KeyF8,
	"f9": xhotkey.KeyF9, "f10": xhotkey.KeyF10, "f11": xhotkey.KeyF11, "f12": xhotkey.KeyF12,

	"space":  xhotkey.KeySpace,
	"enter":  xhotkey.KeyReturn,
	"escape": xhotkey.KeyEscape,
	"tab":    xhotkey.KeyTab,
	"delete": xhotkey.KeyDelete,
	"left":   xhotkey.KeyLeft,
	"right":  xhotkey.KeyRight,
	"up":     xhotkey.KeyUp,
	"down":   xhotkey.KeyDown,
}

// desktopCombo translates seq for the desktop backend.
func desktopCombo(seq Sequence) ([]xhotkey.Modifier, xhotkey.Key, error) {
	names, name := seq.Split()
	key, ok := desktopKeys[name]
	if !ok {
		return nil, 0, fmt.Errorf("%w: key %q", errNotGlobal, name)
	}
	mods := make([]xhotkey.Modifier, 0, len(names))
	for _, n := range names {
		m, ok := desktopModifiers[n]
		if !ok {
			return nil, 0, fmt.Errorf("%w: modifier %q", errNotGlobal, n)
		}
		mods = append(mods, m)
	}
	return mods, key, nil
}

// registerDesktop grabs seq on the desktop and calls fire on every key
// press until the returned func releases it.
func registerDesktop(seq Sequence, fire func()) (func(), error) {
	mods, key, err := desktopCombo(seq)
	if err != nil {
		return nil, err
	}
	hk := xhotkey.New(mods, key)
	if err := hk.Register(); err != nil {
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		keydown := hk.Keydown()
		for {
			select {
			case <-done:
				return
			case _, ok := <-keydown:
				if !ok {
					return
				}
				fire()
			}
		}
	}()

	return func() {
		close(done)
		_ = hk.Unregister()
	}, nil
}
