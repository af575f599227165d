package model

import (
	"fmt"
	"strings"
)

// Student is the single record managed by the portal. ID is assigned by the
// API; Email and StudentID are fixed once the record exists.
type Student struct {
	ID          uint   `json:"id,omitempty" gorm:"primaryKey"`
	StudentID   string `json:"studentId" gorm:"uniqueIndex;not null" validate:"required"`
	FirstName   string `json:"firstName" gorm:"not null" validate:"required"`
	LastName    string `json:"lastName" gorm:"not null" validate:"required"`
	Email       string `json:"email" gorm:"uniqueIndex;not null" validate:"required,email"`
	Password    string `json:"password,omitempty" gorm:"-" validate:"required"`
	DateOfBirth string `json:"dateOfBirth,omitempty" validate:"omitempty,datetime=2006-01-02"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Address     string `json:"address" validate:"required"`

	PasswordHash string `json:"-"`
}

// UpdateRequest is the body of an update. It carries every field except the
// password, which can only be set at creation time.
type UpdateRequest struct {
	StudentID   string `json:"studentId"`
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	Email       string `json:"email"`
	DateOfBirth string `json:"dateOfBirth,omitempty" validate:"omitempty,datetime=2006-01-02"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Address     string `json:"address" validate:"required"`
}

// Field describes one form input.
type Field struct {
	Name      string
	Label     string
	InputType string
	Required  bool
	// ReadOnlyOnEdit fields are shown disabled on the edit form but still sent.
	ReadOnlyOnEdit bool
	// CreateOnly fields are not shown on the edit form at all.
	CreateOnly bool
}

// Fields lists the form inputs in display order.
var Fields = []Field{
	{Name: "firstName", Label: "First Name", InputType: "text", Required: true},
	{Name: "lastName", Label: "Last Name", InputType: "text", Required: true},
	{Name: "email", Label: "Email", InputType: "email", Required: true, ReadOnlyOnEdit: true},
	{Name: "password", Label: "Password", InputType: "password", Required: true, CreateOnly: true},
	{Name: "studentId", Label: "Student ID", InputType: "text", Required: true, ReadOnlyOnEdit: true},
	{Name: "dateOfBirth", Label: "Date of Birth", InputType: "date"},
	{Name: "phoneNumber", Label: "Phone Number", InputType: "tel"},
	{Name: "address", Label: "Address", InputType: "textarea", Required: true},
}

// Set updates exactly the named field.
func (s *Student) Set(name, value string) error {
	p := s.field(name)
	if p == nil {
		return fmt.Errorf("unknown student field %q", name)
	}
	*p = value
	return nil
}

// Get returns the value of the named field, or "" for unknown names.
func (s *Student) Get(name string) string {
	if p := s.field(name); p != nil {
		return *p
	}
	return ""
}

func (s *Student) field(name string) *string {
	switch name {
	case "studentId":
		return &s.StudentID
	case "firstName":
		return &s.FirstName
	case "lastName":
		return &s.LastName
	case "email":
		return &s.Email
	case "password":
		return &s.Password
	case "dateOfBirth":
		return &s.DateOfBirth
	case "phoneNumber":
		return &s.PhoneNumber
	case "address":
		return &s.Address
	}
	return nil
}

// FullName is the name as shown in the student list.
func (s Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// ToUpdate drops the write-only password.
func (s Student) ToUpdate() UpdateRequest {
	return UpdateRequest{
		StudentID:   s.StudentID,
		FirstName:   s.FirstName,
		LastName:    s.LastName,
		Email:       s.Email,
		DateOfBirth: s.DateOfBirth,
		PhoneNumber: s.PhoneNumber,
		Address:     s.Address,
	}
}
