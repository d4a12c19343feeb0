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

type EnrollmentController struct {
	Store       *store.Client
	Enrollments *services.EnrollmentService
}

func NewEnrollmentController(s *store.Client, enrollments *services.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{Store: s, Enrollments: enrollments}
}

type enrollInput struct {
	CourseID int `json:"courseId" validate:"required"`
}

// Enroll joins the current user to a course. Enrolling twice is not an
// error; the second call reports already_enrolled and writes nothing.
func (ec *EnrollmentController) Enroll(c *fiber.Ctx) error {
	sess, ok := middleware.SessionFromCtx(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input enrollInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	var course models.Course
	if err := ec.Store.Get(c.Context(), store.Courses, input.CourseID, &course); err != nil {
		return storeError(c, err, "Course not found")
	}

	result, err := ec.Enrollments.Enroll(c.Context(), sess, course)
	if err != nil {
		return storeError(c, err, "Course not found")
	}

	if result.Status == services.StatusAlreadyEnrolled {
		return utils.Success(c, fiber.StatusOK, result)
	}
	return utils.Created(c, result)
}

// ListEnrolled returns the user's enrollments with completion percentages.
func (ec *EnrollmentController) ListEnrolled(c *fiber.Ctx) error {
	sess, ok := middleware.SessionFromCtx(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}

	enrolled, err := ec.Enrollments.ListEnrolled(c.Context(), sess)
	if err != nil {
		return storeError(c, err, "Enrollments not found")
	}
	return utils.Success(c, fiber.StatusOK, enrolled)
}

// Unenroll removes an enrollment. Progress for the course is kept, so
// enrolling again resumes it.
func (ec *EnrollmentController) Unenroll(c *fiber.Ctx) error {
	sess, ok := middleware.SessionFromCtx(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}

	enrollmentID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid enrollment ID")
	}

	if err := ec.Enrollments.Unenroll(c.Context(), sess, enrollmentID); err != nil {
		return storeError(c, err, "Enrollment not found")
	}
	return utils.NoContent(c)
}
