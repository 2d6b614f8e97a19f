package window

import (
	"fmt"
	"io"

	"github.com/ayhanyalcinsoy/qterminal/internal/hotkey"
	"github.com/charmbracelet/log"
)

// Visibility is the shown/hidden state machine of a window. In Overlay mode
// it owns the global toggle hotkey, the focus-loss auto-hide and the
// keep-open pin.
type Visibility struct {
	ctrl     *Controller
	focus    AppFocus
	hotkeys  hotkey.Service
	settings Settings
	logger   *log.Logger

	state    VisibilityState
	keepOpen bool
	binding  hotkey.Sequence

	pinObservers        []func(bool)
	visibilityObservers []func(VisibilityState)
}

// NewVisibility creates the state machine for the window driven by ctrl. A
// Normal window starts Shown, an Overlay starts Hidden. The keep-open pin is
// read from settings.
func NewVisibility(ctrl *Controller, focus AppFocus, hotkeys hotkey.Service, settings Settings, logger *log.Logger) *Visibility {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	v := &Visibility{
		ctrl:     ctrl,
		focus:    focus,
		hotkeys:  hotkeys,
		settings: settings,
		logger:   logger.WithPrefix("visibility"),
		keepOpen: settings.KeepOpen(),
	}
	if ctrl.Mode() == Normal {
		v.state = Shown
	}
	return v
}

// State returns the current visibility.
func (v *Visibility) State() VisibilityState { return v.state }

// KeepOpen reports whether the pin is engaged.
func (v *Visibility) KeepOpen() bool { return v.keepOpen }

// Binding returns the sequence currently registered with the hotkey service.
// It is empty in Normal mode and after a failed registration.
func (v *Visibility) Binding() hotkey.Sequence { return v.binding }

// OnPinChanged registers fn to observe pin changes (the pin icon).
func (v *Visibility) OnPinChanged(fn func(bool)) {
	v.pinObservers = append(v.pinObservers, fn)
}

// OnVisibilityChanged registers fn to observe show and hide transitions.
func (v *Visibility) OnVisibilityChanged(fn func(VisibilityState)) {
	v.visibilityObservers = append(v.visibilityObservers, fn)
}

// Start puts the display in the initial state and, for an overlay, registers
// seq as the toggle hotkey. A registration failure is returned but leaves
// the state machine usable.
func (v *Visibility) Start(seq hotkey.Sequence) error {
	if v.state == Shown {
		v.display().Show()
		v.display().Activate()
	} else {
		v.display().Hide()
	}
	v.notify()
	return v.SetHotkey(seq)
}

// Toggle flips between Shown and Hidden. Showing raises and activates the
// window. Both directions recompute geometry so the overlay follows any
// change of the desktop area.
func (v *Visibility) Toggle() {
	if v.state == Shown {
		v.hide()
		return
	}
	v.show()
}

// Show brings the window up if it is hidden.
func (v *Visibility) Show() {
	if v.state == Hidden {
		v.show()
	}
}

// FocusLost is called when the window loses activation. An unpinned overlay
// hides unless another window of the application (a dialog opened from the
// overlay, for example) now holds activation.
func (v *Visibility) FocusLost() {
	if v.ctrl.Mode() != Overlay || v.state != Shown {
		return
	}
	if v.keepOpen {
		v.logger.Debug("focus lost, pinned")
		return
	}
	if v.focus != nil && v.focus.AnyWindowActive() {
		v.logger.Debug("focus lost to an application window")
		return
	}
	v.hide()
}

// SetPinned sets the keep-open pin, persists it and notifies observers.
func (v *Visibility) SetPinned(pinned bool) {
	v.keepOpen = pinned
	v.settings.SetKeepOpen(pinned)
	if err := v.settings.Save(); err != nil {
		v.logger.Warn("could not persist keep-open", "err", err)
	}
	for _, fn := range v.pinObservers {
		fn(pinned)
	}
}

// TogglePin flips the keep-open pin.
func (v *Visibility) TogglePin() {
	v.SetPinned(!v.keepOpen)
}

// SetHotkey rebinds the toggle hotkey. In Normal mode nothing is bound.
// The previous sequence is always released first; on a bind failure the
// state machine is left without a binding and the error is returned.
func (v *Visibility) SetHotkey(seq hotkey.Sequence) error {
	if v.ctrl.Mode() != Overlay {
		return nil
	}
	if seq == v.binding && !seq.IsEmpty() {
		return nil
	}

	v.Release()
	if seq.IsEmpty() {
		v.logger.Warn("no toggle hotkey configured")
		return nil
	}
	if err := v.hotkeys.Bind(seq, v.Toggle); err != nil {
		v.logger.Error("could not register toggle hotkey", "key", seq.Display(), "err", err)
		return fmt.Errorf("register toggle hotkey: %w", err)
	}
	v.binding = seq
	v.logger.Info("toggle hotkey registered", "key", seq.Display())
	return nil
}

// Release unbinds the current hotkey, if any.
func (v *Visibility) Release() {
	if v.binding.IsEmpty() {
		return
	}
	v.hotkeys.Unbind(v.binding)
	v.binding = ""
}

func (v *Visibility) display() Display { return v.ctrl.display }

func (v *Visibility) show() {
	v.ctrl.Recompute()
	d := v.display()
	d.Show()
	d.Raise()
	d.Activate()
	v.state = Shown
	v.notify()
}

func (v *Visibility) hide() {
	v.ctrl.Recompute()
	v.display().Hide()
	v.state = Hidden
	v.notify()
}

func (v *Visibility) notify() {
	for _, fn := range v.visibilityObservers {
		fn(v.state)
	}
}
