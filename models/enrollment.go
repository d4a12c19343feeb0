package models

// Enrollment is a record in the "enrolledCourses" collection. The course
// display fields are a snapshot captured at enroll time, so the card on the
// enrolled page survives later course edits. At most one enrollment may exist
// per (userId, courseId); the store has no unique constraint, the enrollment
// service enforces it with a pre-check.
type Enrollment struct {
	ID          int     `json:"id,omitempty"`
	CourseID    int     `json:"courseId"`
	UserID      string  `json:"userId"`
	Title       string  `json:"title"`
	Level       string  `json:"level"`
	Duration    string  `json:"duration"`
	Description string  `json:"description"`
	Thumbnail   string  `json:"thumbnail"`
	Price       float64 `json:"price"`
}

// NewEnrollment builds the snapshot for a user joining a course.
func NewEnrollment(userID string, course Course) Enrollment {
	return Enrollment{
		CourseID:    course.ID,
		UserID:      userID,
		Title:       course.Title,
		Level:       course.Level,
		Duration:    course.Duration,
		Description: course.Description,
		Thumbnail:   course.Thumbnail,
		Price:       course.Price,
	}
}
