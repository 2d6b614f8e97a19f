//go:build windows

package hotkey

import xhotkey "golang.design/x/hotkey"

var desktopModifiers = map[string]xhotkey.Modifier{
	"ctrl":  xhotkey.ModCtrl,
	"shift": xhotkey.ModShift,
	"alt":   xhotkey.ModAlt,
	"super": xhotkey.ModWin,
}

func displayAvailable() bool { return true }
