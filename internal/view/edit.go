package view

import (
	"context"

	"github.com/sirupsen/logrus"

	"studentportal/internal/apiclient"
	"studentportal/internal/logger"
	"studentportal/internal/model"
)

const (
	editLoadError = "Failed to fetch student details"
	editFailed    = "Failed to update student"
)

// EditForm edits an existing student. Email and student ID are shown
// read-only but still travel with the update.
type EditForm struct {
	form

	id  uint
	gen uint64
}

func NewEditForm(api apiclient.StudentAPI, nav Navigator) *EditForm {
	return &EditForm{form: form{
		Lifecycle: newLifecycle(),
		api:       api,
		nav:       nav,
		state:     StateLoading,
	}}
}

// Load fetches the student and replaces the draft with it. Calling Load with a
// new id while an older load is still running makes the older response stale;
// it is dropped when it arrives.
func (f *EditForm) Load(ctx context.Context, id uint) error {
	f.mu.Lock()
	f.gen++
	gen := f.gen
	f.id = id
	f.state = StateLoading
	f.errMsg = ""
	f.mu.Unlock()

	ctx, cancel := f.bind(ctx)
	defer cancel()

	s, err := f.api.GetStudent(ctx, id)
	if !f.Alive() {
		return ErrDisposed
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.gen {
		return nil
	}
	if err != nil {
		logger.Log.WithError(err).WithFields(logrus.Fields{"student": id}).Warn("get student failed")
		f.state = StateError
		f.errMsg = editLoadError
		return nil
	}
	s.Password = ""
	f.draft = *s
	f.state = StateReady
	return nil
}

// Restore puts the form straight into the ready state with a draft the user
// is already holding, skipping the fetch.
func (f *EditForm) Restore(id uint, draft model.Student) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gen++
	f.id = id
	draft.ID = id
	draft.Password = ""
	f.draft = draft
	f.state = StateReady
	f.errMsg = ""
}

// ID is the identifier of the student being edited.
func (f *EditForm) ID() uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.id
}

// Submit sends the whole draft, read-only fields included, to the same id.
func (f *EditForm) Submit(ctx context.Context) error {
	id := f.ID()
	return f.submit(ctx, "update", editFailed, func(ctx context.Context, s model.Student) error {
		_, err := f.api.UpdateStudent(ctx, id, s)
		return err
	})
}
