package view

import (
	"context"

	"studentportal/internal/apiclient"
	"studentportal/internal/model"
)

const createFailed = "Failed to add student"

// CreateForm collects a new student. Its draft starts empty.
type CreateForm struct {
	form
}

func NewCreateForm(api apiclient.StudentAPI, nav Navigator) *CreateForm {
	return &CreateForm{form{
		Lifecycle: newLifecycle(),
		api:       api,
		nav:       nav,
		state:     StateReady,
	}}
}

// Submit sends the draft to the API. On failure the draft is kept so the user
// can fix it and submit again.
func (f *CreateForm) Submit(ctx context.Context) error {
	return f.submit(ctx, "create", createFailed, func(ctx context.Context, s model.Student) error {
		_, err := f.api.CreateStudent(ctx, s)
		return err
	})
}
