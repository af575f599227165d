// Package view holds the per-screen state of the portal: the student list and
// the create and edit forms. Each view owns its state exclusively and talks to
// the API only through apiclient.StudentAPI.
package view

import (
	"context"
	"errors"
	"sync/atomic"
)

// ErrDisposed is returned when a response arrives after its view was disposed.
// The response is dropped and the view's state is left untouched.
var ErrDisposed = errors.New("view: disposed")

// State is a view's position in its state machine.
type State int

const (
	StateLoading State = iota
	StateReady
	StateSubmitting
	StateError
	StateDone
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateSubmitting:
		return "submitting"
	case StateError:
		return "error"
	case StateDone:
		return "done"
	}
	return "unknown"
}

// Navigator moves the user to another path.
type Navigator interface {
	Navigate(path string)
}

// ListPath is where both forms navigate on success or cancel.
const ListPath = "/"

// Lifecycle tracks whether a view is still mounted. Disposing cancels every
// call the view has in flight.
type Lifecycle struct {
	ctx      context.Context
	cancel   context.CancelFunc
	disposed atomic.Bool
}

func newLifecycle() *Lifecycle {
	ctx, cancel := context.WithCancel(context.Background())
	return &Lifecycle{ctx: ctx, cancel: cancel}
}

// Alive reports whether Dispose has not been called yet.
func (l *Lifecycle) Alive() bool {
	return !l.disposed.Load()
}

// Dispose unmounts the view. It is safe to call more than once.
func (l *Lifecycle) Dispose() {
	if l.disposed.CompareAndSwap(false, true) {
		l.cancel()
	}
}

// bind returns a context that ends when either ctx ends or the view is disposed.
func (l *Lifecycle) bind(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	merged, cancel := context.WithCancel(l.ctx)
	stop := context.AfterFunc(ctx, cancel)
	return merged, func() {
		stop()
		cancel()
	}
}
