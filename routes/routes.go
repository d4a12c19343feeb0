package routes

import (
	"github.com/gofiber/fiber/v2"

	"eduquest/config"
	"eduquest/controllers"
	"eduquest/middleware"
	"eduquest/services"
	"eduquest/store"
)

func SetupRoutes(app *fiber.App, storeClient *store.Client, cfg *config.Config) {
	progressService := services.NewProgressService(storeClient)
	enrollmentService := services.NewEnrollmentService(storeClient, progressService)
	certificateService := services.NewCertificateService()

	authMiddleware := middleware.AuthMiddleware(cfg)
	adminMiddleware := middleware.AdminMiddleware()

	// Auth routes
	authController := controllers.NewAuthController(cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Catalog routes, public
	coursesController := controllers.NewCoursesController(storeClient)
	app.Get("/api/courses", coursesController.ListCourses)
	app.Get("/api/courses/:id", coursesController.GetCourse)
	app.Get("/api/courses/:id/lessons", coursesController.ListLessons)

	// Review routes; reading is public, posting needs a session
	reviewsController := controllers.NewReviewsController(storeClient)
	app.Get("/api/courses/:id/reviews", reviewsController.ListReviews)
	app.Post("/api/courses/:id/reviews", authMiddleware, reviewsController.AddReview)
	app.Delete("/api/reviews/:id", authMiddleware, adminMiddleware, reviewsController.DeleteReview)

	// Enrollment routes
	enrollmentController := controllers.NewEnrollmentController(storeClient, enrollmentService)
	enrollments := app.Group("/api/enrollments", authMiddleware)
	enrollments.Post("/", enrollmentController.Enroll)
	enrollments.Get("/", enrollmentController.ListEnrolled)
	enrollments.Delete("/:id", enrollmentController.Unenroll)

	// Progress routes
	progressController := controllers.NewProgressController(storeClient, progressService)
	app.Get("/api/courses/:id/progress", authMiddleware, progressController.GetProgress)
	app.Post("/api/courses/:id/progress/toggle", authMiddleware, progressController.ToggleLesson)

	// Certificate route
	certificateController := controllers.NewCertificateController(storeClient, progressService, certificateService)
	app.Get("/api/courses/:id/certificate", authMiddleware, certificateController.GetCertificate)
}
