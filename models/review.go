package models

import "math"

// Review is a record in the "reviews" collection. There is no uniqueness
// rule: the same name may review a course any number of times.
type Review struct {
	ID       int    `json:"id,omitempty"`
	CourseID int    `json:"courseId"`
	Name     string `json:"name"`
	Rating   int    `json:"rating"` // 1..5
	Comment  string `json:"comment"`
}

// AverageRating returns the arithmetic mean of the ratings at full precision.
// ok is false for an empty slice; an unreviewed course has no average, not a
// zero one.
func AverageRating(reviews []Review) (avg float64, ok bool) {
	if len(reviews) == 0 {
		return 0, false
	}
	total := 0
	for _, r := range reviews {
		total += r.Rating
	}
	return float64(total) / float64(len(reviews)), true
}

// DisplayRating rounds a mean to the single decimal shown next to the stars.
func DisplayRating(avg float64) float64 {
	return math.Round(avg*10) / 10
}
