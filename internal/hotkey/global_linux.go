//go:build linux && cgo

package hotkey

import (
	"os"

	xhotkey "golang.design/x/hotkey"
)

// desktopModifiers follows the usual X11 layout: Mod1 is Alt, Mod4 is Super.
var desktopModifiers = map[string]xhotkey.Modifier{
	"ctrl":  xhotkey.ModCtrl,
	"shift": xhotkey.ModShift,
	"alt":   xhotkey.Mod1,
	"super": xhotkey.Mod4,
}

func displayAvailable() bool {
	return os.Getenv("DISPLAY") != ""
}
