package apiclient

import (
	"context"
	"strconv"

	"studentportal/internal/model"
)

const studentsPath = "/api/students"

// StudentAPI is the set of student operations the views depend on.
type StudentAPI interface {
	ListStudents(ctx context.Context) ([]model.Student, error)
	GetStudent(ctx context.Context, id uint) (*model.Student, error)
	CreateStudent(ctx context.Context, s model.Student) (*model.Student, error)
	UpdateStudent(ctx context.Context, id uint, s model.Student) (*model.Student, error)
	DeleteStudent(ctx context.Context, id uint) error
}

var _ StudentAPI = (*Client)(nil)

// ListStudents fetches every record in the order the API returns them.
func (c *Client) ListStudents(ctx context.Context) ([]model.Student, error) {
	var students []model.Student
	if err := c.Get(ctx, studentsPath, &students); err != nil {
		return nil, err
	}
	return students, nil
}

func (c *Client) GetStudent(ctx context.Context, id uint) (*model.Student, error) {
	var s model.Student
	if err := c.Get(ctx, studentPath(id), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateStudent posts a new record, password included.
func (c *Client) CreateStudent(ctx context.Context, s model.Student) (*model.Student, error) {
	s.ID = 0
	var created model.Student
	if err := c.Post(ctx, studentsPath, s, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateStudent puts the record without its password.
func (c *Client) UpdateStudent(ctx context.Context, id uint, s model.Student) (*model.Student, error) {
	var updated model.Student
	if err := c.Put(ctx, studentPath(id), s.ToUpdate(), &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteStudent(ctx context.Context, id uint) error {
	return c.Delete(ctx, studentPath(id), nil)
}

func studentPath(id uint) string {
	return studentsPath + "/" + strconv.FormatUint(uint64(id), 10)
}
