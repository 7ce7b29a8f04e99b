package screen

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Name identifies a screen.
type Name string

const (
	Splash   Name = "Splash"
	Login    Name = "Login"
	Register Name = "Register"
	List     Name = "List"
	Cart     Name = "Cart"
)

// Valid reports whether name is one of the known screens.
func Valid(name Name) bool {
	switch name {
	case Splash, Login, Register, List, Cart:
		return true
	}
	return false
}

// Navigator is what the flows need from the router.
type Navigator interface {
	Navigate(name Name)
	NavigateAfter(d time.Duration, name Name) (cancel func())
	Current() Name
}

// Router is a navigation stack. At most one delayed transition is pending;
// it is dropped when any other navigation happens first or the router closes.
type Router struct {
	mu      sync.Mutex
	stack   []Name
	pending *time.Timer
	seq     uint64
	closed  bool
	logger  *zap.Logger
}

func NewRouter(initial Name, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{stack: []Name{initial}, logger: logger}
}

// Navigate pushes name, or pops back to it if it is already on the stack.
func (r *Router) Navigate(name Name) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.cancelPendingLocked()
	r.navigateLocked(name)
}

// NavigateAfter schedules a transition. The returned func cancels it.
func (r *Router) NavigateAfter(d time.Duration, name Name) func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return func() {}
	}
	r.cancelPendingLocked()

	r.seq++
	seq := r.seq
	r.pending = time.AfterFunc(d, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.closed || r.seq != seq {
			return
		}
		r.pending = nil
		r.navigateLocked(name)
	})

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.seq == seq {
			r.cancelPendingLocked()
		}
	}
}

// Back pops the current screen. The root screen is never popped.
func (r *Router) Back() Name {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.closed {
		r.cancelPendingLocked()
		if len(r.stack) > 1 {
			r.stack = r.stack[:len(r.stack)-1]
		}
	}
	return r.stack[len(r.stack)-1]
}

func (r *Router) Current() Name {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stack[len(r.stack)-1]
}

// History returns the stack from root to current.
func (r *Router) History() []Name {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Name(nil), r.stack...)
}

// Pending reports whether a delayed transition is scheduled.
func (r *Router) Pending() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending != nil
}

// Close drops any pending transition and ignores further navigation.
func (r *Router) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cancelPendingLocked()
	r.closed = true
}

func (r *Router) navigateLocked(name Name) {
	for i, n := range r.stack {
		if n == name {
			r.stack = r.stack[:i+1]
			r.logger.Debug("Navigated back", zap.String("screen", string(name)))
			return
		}
	}
	r.stack = append(r.stack, name)
	r.logger.Debug("Navigated", zap.String("screen", string(name)))
}

func (r *Router) cancelPendingLocked() {
	if r.pending != nil {
		r.pending.Stop()
		r.pending = nil
	}
	r.seq++
}
