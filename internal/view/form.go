package view

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"studentportal/internal/apiclient"
	"studentportal/internal/logger"
	"studentportal/internal/model"
)

// form is the draft handling shared by the create and edit forms.
type form struct {
	*Lifecycle

	api apiclient.StudentAPI
	nav Navigator

	mu     sync.Mutex
	state  State
	draft  model.Student
	errMsg string
}

// SetField updates exactly one field of the draft.
func (f *form) SetField(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft.Set(name, value)
}

// Draft returns a copy of the current draft.
func (f *form) Draft() model.Student {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

func (f *form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// ErrorText is the message shown above the form, if any.
func (f *form) ErrorText() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errMsg
}

// Cancel discards the draft and goes back to the list without any request.
func (f *form) Cancel() {
	f.mu.Lock()
	f.draft = model.Student{}
	f.state = StateDone
	f.mu.Unlock()
	f.nav.Navigate(ListPath)
}

// submit runs one ready -> submitting -> {done | ready-with-error} transition.
func (f *form) submit(ctx context.Context, op string, fallback string, call func(context.Context, model.Student) error) error {
	f.mu.Lock()
	if f.state != StateReady {
		f.mu.Unlock()
		return nil
	}
	f.state = StateSubmitting
	draft := f.draft
	f.mu.Unlock()

	ctx, cancel := f.bind(ctx)
	defer cancel()

	err := call(ctx, draft)
	if !f.Alive() {
		return ErrDisposed
	}

	f.mu.Lock()
	if err != nil {
		logger.Log.WithError(err).WithFields(logrus.Fields{"op": op}).Warn("student form submit failed")
		f.state = StateReady
		f.errMsg = apiclient.MessageOf(err, fallback)
		f.mu.Unlock()
		return nil
	}
	f.state = StateDone
	f.draft = model.Student{}
	f.errMsg = ""
	f.mu.Unlock()

	f.nav.Navigate(ListPath)
	return nil
}
