package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"eduquest/models"
	"eduquest/store"
)

type EnrollStatus string

const (
	StatusEnrolled        EnrollStatus = "enrolled"
	StatusAlreadyEnrolled EnrollStatus = "already_enrolled"
)

// EnrollResult reports what Enroll did. Status is AlreadyEnrolled when an
// enrollment for the course existed and nothing was written.
type EnrollResult struct {
	Status     EnrollStatus      `json:"status"`
	Enrollment models.Enrollment `json:"enrollment"`
}

// EnrollmentService owns the enrollment lifecycle and the joined
// enrollment-plus-progress view.
type EnrollmentService struct {
	Store    *store.Client
	Progress *ProgressService
}

func NewEnrollmentService(s *store.Client, progress *ProgressService) *EnrollmentService {
	return &EnrollmentService{Store: s, Progress: progress}
}

// Enroll joins the user to a course. The at-most-one invariant is enforced
// here with a pre-check, since the backing store has no unique constraint.
// Enrolling provisions the matching progress record; if that step fails the
// fresh enrollment is deleted again so no half-enrolled state survives.
func (es *EnrollmentService) Enroll(ctx context.Context, sess models.Session, course models.Course) (EnrollResult, error) {
	var existing []models.Enrollment
	filter := map[string]string{
		"courseId": strconv.Itoa(course.ID),
		"userId":   sess.UserID,
	}
	if err := es.Store.List(ctx, store.Enrollments, filter, &existing); err != nil {
		return EnrollResult{}, err
	}
	if len(existing) > 0 {
		return EnrollResult{Status: StatusAlreadyEnrolled, Enrollment: existing[0]}, nil
	}

	var created models.Enrollment
	if err := es.Store.Create(ctx, store.Enrollments, models.NewEnrollment(sess.UserID, course), &created); err != nil {
		return EnrollResult{}, err
	}

	// Ensure, not Create: a progress record left over from an earlier
	// enrollment is resumed rather than shadowed by a duplicate.
	if _, err := es.Progress.Ensure(ctx, sess, course.ID, course.Lessons); err != nil {
		if delErr := es.Store.Delete(ctx, store.Enrollments, created.ID); delErr != nil {
			return EnrollResult{}, fmt.Errorf("provision progress: %w (compensating delete of enrollment %d also failed: %v)", err, created.ID, delErr)
		}
		return EnrollResult{}, fmt.Errorf("provision progress: %w", err)
	}

	return EnrollResult{Status: StatusEnrolled, Enrollment: created}, nil
}

// EnrolledCourse is an enrollment joined with its completion percent.
type EnrolledCourse struct {
	models.Enrollment
	Progress int `json:"progress"`
}

// ListEnrolled returns the user's enrollments in store order, each carrying
// its completion percent. A course with no progress record reports 0.
func (es *EnrollmentService) ListEnrolled(ctx context.Context, sess models.Session) ([]EnrolledCourse, error) {
	var enrollments []models.Enrollment
	filter := map[string]string{"userId": sess.UserID}
	if err := es.Store.List(ctx, store.Enrollments, filter, &enrollments); err != nil {
		return nil, err
	}

	out := make([]EnrolledCourse, 0, len(enrollments))
	for _, enrollment := range enrollments {
		percent := 0
		progress, err := es.Progress.Get(ctx, sess, enrollment.CourseID)
		switch {
		case err == nil:
			percent = progress.CompletionPercent()
		case !errors.Is(err, store.ErrNotFound):
			return nil, err
		}
		out = append(out, EnrolledCourse{Enrollment: enrollment, Progress: percent})
	}
	return out, nil
}

// Unenroll deletes the enrollment only. The progress record stays behind on
// purpose: re-enrolling resumes where the user left off.
func (es *EnrollmentService) Unenroll(ctx context.Context, sess models.Session, enrollmentID int) error {
	var enrollment models.Enrollment
	if err := es.Store.Get(ctx, store.Enrollments, enrollmentID, &enrollment); err != nil {
		return err
	}
	if enrollment.UserID != sess.UserID {
		return store.ErrNotFound
	}
	return es.Store.Delete(ctx, store.Enrollments, enrollmentID)
}
