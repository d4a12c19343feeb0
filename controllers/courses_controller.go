package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"eduquest/models"
	"eduquest/store"
	"eduquest/utils"
)

type CoursesController struct {
	Store *store.Client
}

func NewCoursesController(s *store.Client) *CoursesController {
	return &CoursesController{Store: s}
}

// ListCourses returns the catalog, optionally filtered by level.
func (cc *CoursesController) ListCourses(c *fiber.Ctx) error {
	var filter map[string]string
	if level := c.Query("level"); level != "" {
		filter = map[string]string{"level": level}
	}

	var courses []models.Course
	if err := cc.Store.List(c.Context(), store.Courses, filter, &courses); err != nil {
		return storeError(c, err, "Courses not found")
	}
	return utils.Success(c, fiber.StatusOK, courses)
}

// GetCourse returns one course with its review summary and up to three
// related courses of the same level.
func (cc *CoursesController) GetCourse(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := cc.Store.Get(c.Context(), store.Courses, courseID, &course); err != nil {
		return storeError(c, err, "Course not found")
	}

	var reviews []models.Review
	if err := cc.Store.List(c.Context(), store.Reviews,
		map[string]string{"courseId": strconv.Itoa(courseID)}, &reviews); err != nil {
		return storeError(c, err, "Reviews not found")
	}

	var allCourses []models.Course
	if err := cc.Store.List(c.Context(), store.Courses, nil, &allCourses); err != nil {
		return storeError(c, err, "Courses not found")
	}
	related := make([]models.Course, 0, 3)
	for _, other := range allCourses {
		if other.ID != course.ID && other.Level == course.Level {
			related = append(related, other)
			if len(related) == 3 {
				break
			}
		}
	}

	payload := fiber.Map{
		"course":      course,
		"lessonCount": course.DisplayLessons(),
		"reviewCount": len(reviews),
		"related":     related,
	}
	if avg, ok := models.AverageRating(reviews); ok {
		payload["averageRating"] = models.DisplayRating(avg)
	}
	return utils.Success(c, fiber.StatusOK, payload)
}

// ListLessons returns the course's lessons in insertion order.
func (cc *CoursesController) ListLessons(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var lessons []models.Lesson
	if err := cc.Store.List(c.Context(), store.Lessons,
		map[string]string{"courseId": strconv.Itoa(courseID)}, &lessons); err != nil {
		return storeError(c, err, "Lessons not found")
	}
	return utils.Success(c, fiber.StatusOK, lessons)
}
