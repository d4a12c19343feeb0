package models

// DefaultLessonCount is displayed when a course record carries no lesson
// count of its own.
const DefaultLessonCount = 12

// Course is a record in the "courses" collection. Courses are created and
// edited through the admin console; this service only reads them.
type Course struct {
	ID          int     `json:"id,omitempty"`
	Title       string  `json:"title"`
	Level       string  `json:"level"` // Beginner, Intermediate, Advanced
	Description string  `json:"description"`
	Price       float64 `json:"price"` // 0 means free
	Duration    string  `json:"duration"`
	Lessons     int     `json:"lessons"` // lesson count, not the lesson records
	Thumbnail   string  `json:"thumbnail"`
}

func (c Course) Free() bool {
	return c.Price == 0
}

// DisplayLessons returns the lesson count shown on course pages.
func (c Course) DisplayLessons() int {
	if c.Lessons <= 0 {
		return DefaultLessonCount
	}
	return c.Lessons
}

// Lesson is a record in the "lessons" collection, ordered by insertion.
type Lesson struct {
	ID          int    `json:"id,omitempty"`
	CourseID    int    `json:"courseId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoURL    string `json:"videoUrl"`
	PDFURL      string `json:"pdfUrl,omitempty"`
}
