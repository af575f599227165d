package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"studentportal/internal/model"
)

var ErrNotFound = errors.New("student not found")

// ConflictError reports a duplicate email or student ID.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// ValidationError lists the fields a request got wrong.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "Invalid or missing fields: " + strings.Join(e.Fields, ", ")
}

type StudentService struct {
	db       *gorm.DB
	validate *validator.Validate
}

func NewStudentService(db *gorm.DB) *StudentService {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return &StudentService{db: db, validate: v}
}

// ListStudents returns every student ordered by id.
func (s *StudentService) ListStudents() ([]model.Student, error) {
	var students []model.Student
	if err := s.db.Order("id asc").Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

func (s *StudentService) GetStudent(id uint) (*model.Student, error) {
	var student model.Student
	err := s.db.First(&student, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// CreateStudent validates the record, hashes its password and stores it.
// Email and student ID must be unique.
func (s *StudentService) CreateStudent(student model.Student) (*model.Student, error) {
	student.ID = 0
	if err := s.check(student); err != nil {
		return nil, err
	}

	if err := s.ensureUnique("email", student.Email, "Email already exists"); err != nil {
		return nil, err
	}
	if err := s.ensureUnique("student_id", student.StudentID, "Student ID already exists"); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(student.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	student.PasswordHash = string(hash)
	student.Password = ""

	if err := s.insert(&student); err != nil {
		return nil, err
	}
	return &student, nil
}

// insert stores student. A unique index violation from a create that raced
// past the checks above is reported as a conflict.
func (s *StudentService) insert(student *model.Student) error {
	err := s.db.Create(student).Error
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return err
	}
	if cerr := s.ensureUnique("email", student.Email, "Email already exists"); cerr != nil {
		return cerr
	}
	if cerr := s.ensureUnique("student_id", student.StudentID, "Student ID already exists"); cerr != nil {
		return cerr
	}
	return &ConflictError{Message: "Student already exists"}
}

// UpdateStudent changes the editable fields. Email and student ID keep the
// values they were created with.
func (s *StudentService) UpdateStudent(id uint, req model.UpdateRequest) (*model.Student, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}

	student, err := s.GetStudent(id)
	if err != nil {
		return nil, err
	}

	err = s.db.Model(student).Select("first_name", "last_name", "date_of_birth", "phone_number", "address").
		Updates(model.Student{
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			DateOfBirth: req.DateOfBirth,
			PhoneNumber: req.PhoneNumber,
			Address:     req.Address,
		}).Error
	if err != nil {
		return nil, err
	}
	return s.GetStudent(id)
}

func (s *StudentService) DeleteStudent(id uint) error {
	result := s.db.Delete(&model.Student{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *StudentService) check(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return &ValidationError{Fields: fields}
}

func (s *StudentService) ensureUnique(column, value, msg string) error {
	var count int64
	if err := s.db.Model(&model.Student{}).Where(column+" = ?", value).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return &ConflictError{Message: msg}
	}
	return nil
}
