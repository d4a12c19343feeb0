package controllers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"eduquest/models"
	"eduquest/store"
	"eduquest/utils"
)

type ReviewsController struct {
	Store *store.Client
}

func NewReviewsController(s *store.Client) *ReviewsController {
	return &ReviewsController{Store: s}
}

// ListReviews returns a course's reviews with the average rating, when one
// exists. No reviews means no average, not a zero.
func (rc *ReviewsController) ListReviews(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var reviews []models.Review
	if err := rc.Store.List(c.Context(), store.Reviews,
		map[string]string{"courseId": strconv.Itoa(courseID)}, &reviews); err != nil {
		return storeError(c, err, "Reviews not found")
	}

	payload := fiber.Map{"reviews": reviews}
	if avg, ok := models.AverageRating(reviews); ok {
		payload["averageRating"] = models.DisplayRating(avg)
	}
	return utils.Success(c, fiber.StatusOK, payload)
}

type reviewInput struct {
	Name    string `json:"name" validate:"required"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required"`
}

// AddReview posts a review for a course. Nothing stops the same name from
// reviewing a course more than once.
func (rc *ReviewsController) AddReview(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var input reviewInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	input.Name = strings.TrimSpace(input.Name)
	input.Comment = strings.TrimSpace(input.Comment)
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	review := models.Review{
		CourseID: courseID,
		Name:     input.Name,
		Rating:   input.Rating,
		Comment:  input.Comment,
	}

	var created models.Review
	if err := rc.Store.Create(c.Context(), store.Reviews, review, &created); err != nil {
		return storeError(c, err, "Course not found")
	}
	return utils.Created(c, created)
}

// DeleteReview removes a review. Admin only.
func (rc *ReviewsController) DeleteReview(c *fiber.Ctx) error {
	reviewID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid review ID")
	}

	if err := rc.Store.Delete(c.Context(), store.Reviews, reviewID); err != nil {
		return storeError(c, err, "Review not found")
	}
	return utils.NoContent(c)
}
