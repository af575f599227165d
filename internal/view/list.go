package view

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"studentportal/internal/apiclient"
	"studentportal/internal/logger"
	"studentportal/internal/model"
)

const (
	listLoadError   = "Failed to fetch students"
	listDeleteAlert = "Failed to delete student"
)

// ListView shows every student and lets the user delete rows.
type ListView struct {
	*Lifecycle

	api apiclient.StudentAPI

	mu       sync.Mutex
	state    State
	rows     []model.Student
	errMsg   string
	alert    string
	deleting map[uint]bool
}

func NewListView(api apiclient.StudentAPI) *ListView {
	return &ListView{
		Lifecycle: newLifecycle(),
		api:       api,
		state:     StateLoading,
		deleting:  make(map[uint]bool),
	}
}

// Load fetches all students. A failure is terminal for this view; there is no
// automatic retry.
func (v *ListView) Load(ctx context.Context) error {
	ctx, cancel := v.bind(ctx)
	defer cancel()

	students, err := v.api.ListStudents(ctx)
	if !v.Alive() {
		return ErrDisposed
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		logger.Log.WithError(err).Warn("list students failed")
		v.state = StateError
		v.errMsg = listLoadError
		return nil
	}
	v.rows = students
	v.state = StateReady
	return nil
}

// Delete removes the student with the given ID once confirmed. The row is
// dropped from local state only after the API accepts the delete; nothing is
// re-fetched. It reports whether a row was removed.
func (v *ListView) Delete(ctx context.Context, id uint, confirmed bool) (bool, error) {
	if !confirmed {
		return false, nil
	}

	v.mu.Lock()
	if v.state != StateReady || v.deleting[id] {
		v.mu.Unlock()
		return false, nil
	}
	v.deleting[id] = true
	v.mu.Unlock()

	ctx, cancel := v.bind(ctx)
	defer cancel()

	err := v.api.DeleteStudent(ctx, id)
	if !v.Alive() {
		return false, ErrDisposed
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.deleting, id)

	if err != nil {
		logger.Log.WithError(err).WithFields(logrus.Fields{"student": id}).Warn("delete student failed")
		v.alert = listDeleteAlert
		return false, nil
	}

	kept := v.rows[:0:0]
	removed := false
	for _, s := range v.rows {
		if s.ID == id {
			removed = true
			continue
		}
		kept = append(kept, s)
	}
	v.rows = kept
	return removed, nil
}

func (v *ListView) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Rows returns a copy of the current rows in received order.
func (v *ListView) Rows() []model.Student {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]model.Student(nil), v.rows...)
}

func (v *ListView) ErrorText() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.errMsg
}

func (v *ListView) Alert() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.alert
}

// TakeAlert returns the pending alert and clears it.
func (v *ListView) TakeAlert() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	a := v.alert
	v.alert = ""
	return a
}

// Deleting reports whether a delete for id is in flight.
func (v *ListView) Deleting(id uint) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.deleting[id]
}
