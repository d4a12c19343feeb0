// Package services holds the enrollment and lesson-progress core. Services
// keep no state of their own; the backing collections reached through the
// store client are the only shared mutable state, so every read is fresh.
package services

import (
	"context"
	"errors"
	"strconv"

	"eduquest/models"
	"eduquest/store"
)

// ProgressService owns the progress record lifecycle for a (user, course)
// pair: creation, lesson toggling and the derived completion figures.
type ProgressService struct {
	Store *store.Client
}

func NewProgressService(s *store.Client) *ProgressService {
	return &ProgressService{Store: s}
}

// Get returns the user's progress for a course, or store.ErrNotFound. The
// backend cannot enforce one-record-per-course; should duplicates ever
// appear, the first match wins.
func (ps *ProgressService) Get(ctx context.Context, sess models.Session, courseID int) (models.Progress, error) {
	var records []models.Progress
	filter := map[string]string{
		"courseId": strconv.Itoa(courseID),
		"userId":   sess.UserID,
	}
	if err := ps.Store.List(ctx, store.Progress, filter, &records); err != nil {
		return models.Progress{}, err
	}
	if len(records) == 0 {
		return models.Progress{}, store.ErrNotFound
	}
	return records[0], nil
}

// Create writes a fresh record with nothing completed. Callers must Get
// first and only create when absent; the store does not police duplicates.
func (ps *ProgressService) Create(ctx context.Context, sess models.Session, courseID, totalLessons int) (models.Progress, error) {
	payload := models.NewProgress(sess.UserID, courseID, totalLessons)
	var created models.Progress
	if err := ps.Store.Create(ctx, store.Progress, payload, &created); err != nil {
		return models.Progress{}, err
	}
	return created, nil
}

// Ensure returns the existing record or creates one. This is the lazy path
// taken the first time a course's lessons are opened, and the reason
// re-enrolling resumes prior progress instead of restarting it.
func (ps *ProgressService) Ensure(ctx context.Context, sess models.Session, courseID, totalLessons int) (models.Progress, error) {
	progress, err := ps.Get(ctx, sess, courseID)
	if err == nil {
		return progress, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return models.Progress{}, err
	}
	return ps.Create(ctx, sess, courseID, totalLessons)
}

// ToggleLesson flips a lesson's completion and persists the whole record.
// LastLesson is set to the toggled lesson either way. The store's version
// check turns a lost update into store.ErrConflict; callers re-read and
// retry if they care.
func (ps *ProgressService) ToggleLesson(ctx context.Context, progress models.Progress, lessonID int) (models.Progress, error) {
	updated := progress.Toggled(lessonID)
	var saved models.Progress
	if err := ps.Store.Update(ctx, store.Progress, progress.ID, updated, &saved); err != nil {
		return models.Progress{}, err
	}
	return saved, nil
}
