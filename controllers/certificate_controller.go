package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"eduquest/middleware"
	"eduquest/models"
	"eduquest/services"
	"eduquest/store"
	"eduquest/utils"
)

type CertificateController struct {
	Store        *store.Client
	Progress     *services.ProgressService
	Certificates *services.CertificateService
}

func NewCertificateController(s *store.Client, progress *services.ProgressService, certs *services.CertificateService) *CertificateController {
	return &CertificateController{Store: s, Progress: progress, Certificates: certs}
}

// GetCertificate returns the completion certificate for a course, or 403
// while any lesson is still open.
func (cc *CertificateController) GetCertificate(c *fiber.Ctx) error {
	sess, ok := middleware.SessionFromCtx(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}

	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := cc.Store.Get(c.Context(), store.Courses, courseID, &course); err != nil {
		return storeError(c, err, "Course not found")
	}

	progress, err := cc.Progress.Get(c.Context(), sess, courseID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return utils.Forbidden(c, "Complete the course to receive a certificate")
		}
		return storeError(c, err, "Progress not found")
	}

	certificate, err := cc.Certificates.Issue(sess, course, progress)
	if err != nil {
		if errors.Is(err, services.ErrNotEligible) {
			return utils.Forbidden(c, "Complete the course to receive a certificate")
		}
		return utils.InternalServerError(c, "Could not issue certificate")
	}

	return utils.Success(c, fiber.StatusOK, certificate)
}
