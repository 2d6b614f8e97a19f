//go:build !windows && !(cgo && (linux || darwin))

package hotkey

// Without a desktop backend the toggle key works inside the terminal and
// through `qterminal toggle`.

func displayAvailable() bool { return false }

func registerDesktop(seq Sequence, _ func()) (func(), error) {
	return nil, errNotGlobal
}
