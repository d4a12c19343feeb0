package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"eduquest/middleware"
	"eduquest/models"
	"eduquest/services"
	"eduquest/store"
	"eduquest/utils"
)

type ProgressController struct {
	Store    *store.Client
	Progress *services.ProgressService
}

func NewProgressController(s *store.Client, progress *services.ProgressService) *ProgressController {
	return &ProgressController{Store: s, Progress: progress}
}

func (pc *ProgressController) courseLessons(c *fiber.Ctx, courseID int) ([]models.Lesson, error) {
	var lessons []models.Lesson
	err := pc.Store.List(c.Context(), store.Lessons,
		map[string]string{"courseId": strconv.Itoa(courseID)}, &lessons)
	return lessons, err
}

// GetProgress returns the user's progress for a course, creating the record
// on first visit. The lesson count snapshot is taken from the actual lesson
// list, not the course's advertised count.
func (pc *ProgressController) GetProgress(c *fiber.Ctx) error {
	sess, ok := middleware.SessionFromCtx(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}

	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	lessons, err := pc.courseLessons(c, courseID)
	if err != nil {
		return storeError(c, err, "Lessons not found")
	}

	progress, err := pc.Progress.Ensure(c.Context(), sess, courseID, len(lessons))
	if err != nil {
		return storeError(c, err, "Progress not found")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"progress": progress,
		"percent":  progress.CompletionPercent(),
	})
}

type toggleInput struct {
	LessonID int `json:"lessonId" validate:"required"`
}

// ToggleLesson flips a lesson between complete and not complete. Only ids
// from the course's own lesson list are accepted, which is what keeps
// completedLessons a subset of the course. A stale write comes back as 409.
func (pc *ProgressController) ToggleLesson(c *fiber.Ctx) error {
	sess, ok := middleware.SessionFromCtx(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}

	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var input toggleInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	lessons, err := pc.courseLessons(c, courseID)
	if err != nil {
		return storeError(c, err, "Lessons not found")
	}
	known := false
	for _, lesson := range lessons {
		if lesson.ID == input.LessonID {
			known = true
			break
		}
	}
	if !known {
		return utils.BadRequest(c, "Lesson does not belong to this course")
	}

	progress, err := pc.Progress.Ensure(c.Context(), sess, courseID, len(lessons))
	if err != nil {
		return storeError(c, err, "Progress not found")
	}

	saved, err := pc.Progress.ToggleLesson(c.Context(), progress, input.LessonID)
	if err != nil {
		return storeError(c, err, "Progress not found")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"progress": saved,
		"percent":  saved.CompletionPercent(),
	})
}
