package domain

// Mark is returned joined with the student's and course's display names.
type Mark struct {
	MarkID     string  `json:"id"`
	OwnerID    string  `json:"-"`
	StudentID  string  `json:"student_id"`
	CourseID   string  `json:"course_id"`
	Marks      float64 `json:"marks"`
	Semester   string  `json:"semester"`
	FirstName  string  `json:"first_name,omitempty"`
	LastName   string  `json:"last_name,omitempty"`
	CourseName string  `json:"course_name,omitempty"`
}

type MarkInput struct {
	StudentID string   `json:"student_id" validate:"required"`
	CourseID  string   `json:"course_id" validate:"required"`
	Marks     *float64 `json:"marks" validate:"required,gte=0,lte=100"`
	Semester  string   `json:"semester" validate:"required,max=30"`
}
