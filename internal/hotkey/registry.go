package hotkey

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

var (
	// ErrAlreadyBound is returned when a sequence is already claimed.
	ErrAlreadyBound = errors.New("key sequence already bound")
	// ErrEmptySequence is returned when binding an empty sequence.
	ErrEmptySequence = errors.New("empty key sequence")
)

// Service is the contract the window core needs from a hotkey backend.
type Service interface {
	// Bind attaches fn to seq. It returns an error wrapping ErrAlreadyBound
	// when seq is held by someone else.
	Bind(seq Sequence, fn func()) error
	// Unbind releases seq. Unbinding an unknown sequence is a no-op.
	Unbind(seq Sequence)
}

type entry struct {
	owner string
	fn    func()
}

// Registry is an in-process Service. Sequences can be bound to callbacks or
// claimed by a named owner (the host terminal, menu shortcuts) so that
// conflicting bindings are reported instead of silently shadowed.
type Registry struct {
	mu      sync.Mutex
	entries map[Sequence]entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[Sequence]entry)}
}

// Bind implements Service.
func (r *Registry) Bind(seq Sequence, fn func()) error {
	if seq.IsEmpty() {
		return ErrEmptySequence
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[seq]; ok {
		owner := e.owner
		if owner == "" {
			owner = "another action"
		}
		return fmt.Errorf("%w: %s is held by %s", ErrAlreadyBound, seq.Display(), owner)
	}
	r.entries[seq] = entry{fn: fn}
	return nil
}

// Claim marks seq as owned by owner without a callback.
func (r *Registry) Claim(seq Sequence, owner string) error {
	if seq.IsEmpty() {
		return ErrEmptySequence
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[seq]; ok && e.owner != owner {
		return fmt.Errorf("%w: %s", ErrAlreadyBound, seq.Display())
	}
	r.entries[seq] = entry{owner: owner}
	return nil
}

// ReleaseOwner drops every claim held by owner.
func (r *Registry) ReleaseOwner(owner string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for seq, e := range r.entries {
		if e.owner == owner && e.fn == nil {
			delete(r.entries, seq)
		}
	}
}

// Unbind implements Service.
func (r *Registry) Unbind(seq Sequence) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[seq]; ok && e.fn != nil {
		delete(r.entries, seq)
	}
}

// Dispatch runs the callback bound to seq and reports whether one ran.
// Claimed sequences are not consumed. The callback runs on the caller's
// goroutine, outside the lock.
func (r *Registry) Dispatch(seq Sequence) bool {
	r.mu.Lock()
	e, ok := r.entries[seq]
	r.mu.Unlock()

	if !ok || e.fn == nil {
		return false
	}
	e.fn()
	return true
}

// Bound reports whether seq has a callback attached.
func (r *Registry) Bound(seq Sequence) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[seq]
	return ok && e.fn != nil
}

// Sequences returns the sequences that have callbacks, sorted.
func (r *Registry) Sequences() []Sequence {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Sequence, 0, len(r.entries))
	for seq, e := range r.entries {
		if e.fn != nil {
			out = append(out, seq)
		}
	}
	slices.Sort(out)
	return out
}
