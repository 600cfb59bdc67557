package domain

import (
	"time"

	"github.com/student-records-api/internal/pkg/date"
)

type Student struct {
	StudentID string    `json:"id"`
	OwnerID   string    `json:"-"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	DOB       date.Date `json:"dob"`
	Gender    string    `json:"gender"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created"`
	UpdatedAt time.Time `json:"updated"`
}

// StudentInput is the body for both create and full update.
type StudentInput struct {
	FirstName string    `json:"first_name" validate:"required,max=100"`
	LastName  string    `json:"last_name" validate:"required,max=100"`
	DOB       date.Date `json:"dob"`
	Gender    string    `json:"gender" validate:"omitempty,max=20"`
	Email     string    `json:"email" validate:"omitempty,email"`
	Phone     string    `json:"phone" validate:"omitempty,max=30"`
	Address   string    `json:"address" validate:"omitempty,max=255"`
}
