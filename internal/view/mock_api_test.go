package view

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"studentportal/internal/model"
)

const (
	timeout = time.Second
	tick    = 5 * time.Millisecond
)

type MockStudentAPI struct {
	mock.Mock
}

func (m *MockStudentAPI) ListStudents(ctx context.Context) ([]model.Student, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Student), args.Error(1)
}

func (m *MockStudentAPI) GetStudent(ctx context.Context, id uint) (*model.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Student), args.Error(1)
}

func (m *MockStudentAPI) CreateStudent(ctx context.Context, s model.Student) (*model.Student, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Student), args.Error(1)
}

func (m *MockStudentAPI) UpdateStudent(ctx context.Context, id uint, s model.Student) (*model.Student, error) {
	args := m.Called(ctx, id, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Student), args.Error(1)
}

func (m *MockStudentAPI) DeleteStudent(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type recordingNavigator struct {
	paths []string
}

func (n *recordingNavigator) Navigate(path string) {
	n.paths = append(n.paths, path)
}
