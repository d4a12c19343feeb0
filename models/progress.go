package models

import "math"

// Progress is a record in the "progress" collection, one per
// (userId, courseId). CompletedLessons holds lesson ids of the course, no
// duplicates; keeping it a subset of the course's lessons is the caller's
// job (only ids taken from the lesson list may be toggled). Version guards
// updates: the store rejects a write whose version does not advance the
// stored one by exactly one.
type Progress struct {
	ID               int    `json:"id,omitempty"`
	CourseID         int    `json:"courseId"`
	UserID           string `json:"userId"`
	TotalLessons     int    `json:"totalLessons"`
	CompletedLessons []int  `json:"completedLessons"`
	LastLesson       *int   `json:"lastLesson"`
	Version          int    `json:"version"`
}

// NewProgress returns a fresh record with nothing completed.
func NewProgress(userID string, courseID, totalLessons int) Progress {
	return Progress{
		CourseID:         courseID,
		UserID:           userID,
		TotalLessons:     totalLessons,
		CompletedLessons: []int{},
	}
}

// Completed reports whether a lesson has been marked complete.
func (p Progress) Completed(lessonID int) bool {
	for _, id := range p.CompletedLessons {
		if id == lessonID {
			return true
		}
	}
	return false
}

// Toggled returns a copy with the lesson's completion flipped. LastLesson is
// set either way, and the version is bumped for the store's stale-write check.
func (p Progress) Toggled(lessonID int) Progress {
	out := p
	if p.Completed(lessonID) {
		kept := make([]int, 0, len(p.CompletedLessons)-1)
		for _, id := range p.CompletedLessons {
			if id != lessonID {
				kept = append(kept, id)
			}
		}
		out.CompletedLessons = kept
	} else {
		out.CompletedLessons = append(append([]int{}, p.CompletedLessons...), lessonID)
	}
	last := lessonID
	out.LastLesson = &last
	out.Version++
	return out
}

// CompletionPercent derives the 0..100 completion figure, rounding half up.
// A record with no lessons reports 0. The subset invariant is not clamped
// here: if callers toggle ids outside the course, the percent can exceed 100.
func (p Progress) CompletionPercent() int {
	if p.TotalLessons <= 0 {
		return 0
	}
	return int(math.Round(float64(len(p.CompletedLessons)) * 100 / float64(p.TotalLessons)))
}

// CertificateEligible reports whether a completion certificate may be issued.
// A course with zero lessons is never eligible, guarding the vacuous 0/0 case.
func (p Progress) CertificateEligible() bool {
	return p.TotalLessons > 0 && p.CompletionPercent() == 100
}
