package hotkey

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// errNotGlobal is returned for sequences the desktop cannot grab, such as
// keys only a terminal reports or a build without a desktop backend.
var errNotGlobal = errors.New("key cannot be registered with the desktop")

// Global is a Service backed by desktop-wide hotkeys. Every sequence is also
// bound in the in-terminal Registry, so claims still conflict and the key
// keeps working while the terminal has focus. Presses grabbed from the
// desktop are queued on Events; the receiver dispatches them on its own
// goroutine.
type Global struct {
	reg     *Registry
	logger  *log.Logger
	enabled bool
	events  chan Sequence

	mu       sync.Mutex
	releases map[Sequence]func()
}

var _ Service = (*Global)(nil)

// NewGlobal returns a desktop-backed service layered on reg. When no
// desktop session is reachable it behaves exactly like reg.
func NewGlobal(reg *Registry, logger *log.Logger) *Global {
	return newGlobal(reg, logger, displayAvailable())
}

func newGlobal(reg *Registry, logger *log.Logger, enabled bool) *Global {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Global{
		reg:      reg,
		logger:   logger.WithPrefix("hotkey"),
		enabled:  enabled,
		events:   make(chan Sequence, 8),
		releases: make(map[Sequence]func()),
	}
}

// Enabled reports whether sequences are grabbed from the desktop.
func (g *Global) Enabled() bool { return g.enabled }

// Events delivers sequences pressed while another application had focus.
func (g *Global) Events() <-chan Sequence { return g.events }

// Bind implements Service. A sequence the desktop refuses, because another
// application grabbed it, is reported as ErrAlreadyBound. A sequence the
// desktop cannot express stays bound in the terminal only.
func (g *Global) Bind(seq Sequence, fn func()) error {
	if err := g.reg.Bind(seq, fn); err != nil {
		return err
	}
	if !g.enabled {
		return nil
	}

	release, err := registerDesktop(seq, func() { g.fire(seq) })
	if errors.Is(err, errNotGlobal) {
		g.logger.Warn("key only works while the terminal has focus", "key", seq.Display(), "err", err)
		return nil
	}
	if err != nil {
		g.reg.Unbind(seq)
		return fmt.Errorf("%w: %s is registered by another application: %v", ErrAlreadyBound, seq.Display(), err)
	}

	g.mu.Lock()
	g.releases[seq] = release
	g.mu.Unlock()
	g.logger.Debug("registered desktop hotkey", "key", seq.Display())
	return nil
}

// Unbind implements Service.
func (g *Global) Unbind(seq Sequence) {
	g.reg.Unbind(seq)

	g.mu.Lock()
	release, ok := g.releases[seq]
	delete(g.releases, seq)
	g.mu.Unlock()

	if ok {
		release()
	}
}

// fire queues a desktop key press. Presses are dropped while the queue is
// full.
func (g *Global) fire(seq Sequence) {
	select {
	case g.events <- seq:
	default:
		g.logger.Debug("dropped desktop key press", "key", seq.Display())
	}
}
