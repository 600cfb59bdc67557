package domain

import "time"

type Course struct {
	CourseID    string    `json:"id"`
	OwnerID     string    `json:"-"`
	Name        string    `json:"course_name"`
	Code        string    `json:"course_code"`
	Description string    `json:"course_description"`
	CreatedAt   time.Time `json:"created"`
}

type CourseInput struct {
	Name        string `json:"course_name" validate:"required,max=150"`
	Code        string `json:"course_code" validate:"required,max=30"`
	Description string `json:"course_description" validate:"omitempty,max=1000"`
}
