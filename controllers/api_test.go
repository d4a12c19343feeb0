package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"eduquest/config"
	"eduquest/mockstore"
	"eduquest/models"
	"eduquest/routes"
	"eduquest/store"
	"eduquest/utils"
)

const adminPassword = "admin@123"

// newTestAPI boots the mock data store and the platform API wired to it.
func newTestAPI(t *testing.T) (*fiber.App, *store.Client, *config.Config) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&mockstore.Document{}))

	storeApp := mockstore.New(db)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = storeApp.Listener(ln) }()
	t.Cleanup(func() { _ = storeApp.Shutdown() })

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &config.Config{
		JWTSecret:         "testsecret",
		AdminEmail:        "admin@eduquest.com",
		AdminPasswordHash: string(hash),
	}

	client := store.NewClient("http://"+ln.Addr().String(), 5*time.Second)
	app := fiber.New()
	routes.SetupRoutes(app, client, cfg)
	return app, client, cfg
}

func studentToken(t *testing.T, cfg *config.Config) string {
	t.Helper()
	token, err := utils.GenerateToken(models.Session{
		UserID: "amira@example.com", Name: "Amira", Role: models.RoleStudent,
	}, cfg)
	require.NoError(t, err)
	return token
}

func adminToken(t *testing.T, cfg *config.Config) string {
	t.Helper()
	token, err := utils.GenerateToken(models.Session{
		UserID: cfg.AdminEmail, Role: models.RoleAdmin,
	}, cfg)
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := app.Test(req, 10000)
	require.NoError(t, err)

	var decoded map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&decoded)
	return resp.StatusCode, decoded
}

func data(t *testing.T, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	payload, ok := body["data"].(map[string]interface{})
	require.True(t, ok, "response has no data object: %v", body)
	return payload
}

func seedCourse(t *testing.T, client *store.Client, lessons int) models.Course {
	t.Helper()
	var course models.Course
	require.NoError(t, client.Create(context.Background(), store.Courses,
		models.Course{Title: "Go Basics", Level: "Beginner", Duration: "6 weeks", Lessons: lessons}, &course))
	for i := 1; i <= lessons; i++ {
		require.NoError(t, client.Create(context.Background(), store.Lessons,
			models.Lesson{CourseID: course.ID, Title: fmt.Sprintf("Lesson %d", i)}, nil))
	}
	return course
}

func TestRegisterValidation(t *testing.T) {
	app, _, _ := newTestAPI(t)

	status, _ := doJSON(t, app, "POST", "/api/auth/register", "",
		map[string]string{"name": "Amira", "email": "not-an-email", "password": "secret1"})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)

	status, body := doJSON(t, app, "POST", "/api/auth/register", "",
		map[string]string{"name": "Amira", "email": "amira@example.com", "password": "secret1"})
	assert.Equal(t, fiber.StatusCreated, status)
	assert.NotEmpty(t, data(t, body)["token"])
}

func TestAdminLogin(t *testing.T) {
	app, _, _ := newTestAPI(t)

	status, _ := doJSON(t, app, "POST", "/api/auth/login", "",
		map[string]string{"email": "admin@eduquest.com", "password": "wrong"})
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, body := doJSON(t, app, "POST", "/api/auth/login", "",
		map[string]string{"email": "admin@eduquest.com", "password": adminPassword})
	require.Equal(t, fiber.StatusOK, status)
	user := data(t, body)["user"].(map[string]interface{})
	assert.Equal(t, models.RoleAdmin, user["role"])
}

func TestEnrollFlow(t *testing.T) {
	app, client, cfg := newTestAPI(t)
	course := seedCourse(t, client, 2)
	token := studentToken(t, cfg)

	// enrolling needs a session
	status, _ := doJSON(t, app, "POST", "/api/enrollments", "", map[string]int{"courseId": course.ID})
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, body := doJSON(t, app, "POST", "/api/enrollments", token, map[string]int{"courseId": course.ID})
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "enrolled", data(t, body)["status"])

	status, body = doJSON(t, app, "POST", "/api/enrollments", token, map[string]int{"courseId": course.ID})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "already_enrolled", data(t, body)["status"])

	status, body = doJSON(t, app, "GET", "/api/enrollments", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	enrolled := body["data"].([]interface{})
	require.Len(t, enrolled, 1)
	assert.Equal(t, float64(0), enrolled[0].(map[string]interface{})["progress"])

	status, _ = doJSON(t, app, "POST", "/api/enrollments", token, map[string]int{"courseId": 999})
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestProgressAndCertificate(t *testing.T) {
	app, client, cfg := newTestAPI(t)
	course := seedCourse(t, client, 2)
	token := studentToken(t, cfg)

	doJSON(t, app, "POST", "/api/enrollments", token, map[string]int{"courseId": course.ID})

	path := fmt.Sprintf("/api/courses/%d", course.ID)

	// not done yet, no certificate
	status, _ := doJSON(t, app, "GET", path+"/certificate", token, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	// toggling an id outside the course is refused
	status, _ = doJSON(t, app, "POST", path+"/progress/toggle", token, map[string]int{"lessonId": 999})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, body := doJSON(t, app, "POST", path+"/progress/toggle", token, map[string]int{"lessonId": 1})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(50), data(t, body)["percent"])

	status, body = doJSON(t, app, "POST", path+"/progress/toggle", token, map[string]int{"lessonId": 2})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(100), data(t, body)["percent"])

	status, body = doJSON(t, app, "GET", path+"/certificate", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	cert := data(t, body)
	assert.Equal(t, "Amira", cert["student"])
	assert.Equal(t, "Go Basics", cert["courseTitle"])
	assert.NotEmpty(t, cert["serial"])

	// un-completing a lesson revokes eligibility
	doJSON(t, app, "POST", path+"/progress/toggle", token, map[string]int{"lessonId": 2})
	status, _ = doJSON(t, app, "GET", path+"/certificate", token, nil)
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestReviews(t *testing.T) {
	app, client, cfg := newTestAPI(t)
	course := seedCourse(t, client, 1)
	token := studentToken(t, cfg)
	path := fmt.Sprintf("/api/courses/%d/reviews", course.ID)

	status, _ := doJSON(t, app, "POST", path, "", map[string]interface{}{
		"name": "Amira", "rating": 5, "comment": "Great course",
	})
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = doJSON(t, app, "POST", path, token, map[string]interface{}{
		"name": "Amira", "rating": 9, "comment": "Great course",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)

	for _, rating := range []int{5, 4, 3} {
		status, _ = doJSON(t, app, "POST", path, token, map[string]interface{}{
			"name": "Amira", "rating": rating, "comment": "Great course",
		})
		require.Equal(t, fiber.StatusCreated, status)
	}

	status, body := doJSON(t, app, "GET", path, "", nil)
	require.Equal(t, fiber.StatusOK, status)
	payload := data(t, body)
	assert.Equal(t, float64(4.0), payload["averageRating"])
	assert.Len(t, payload["reviews"].([]interface{}), 3)

	// deleting is admin only
	status, _ = doJSON(t, app, "DELETE", "/api/reviews/1", token, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = doJSON(t, app, "DELETE", "/api/reviews/1", adminToken(t, cfg), nil)
	assert.Equal(t, fiber.StatusNoContent, status)

	_, body = doJSON(t, app, "GET", path, "", nil)
	assert.Len(t, data(t, body)["reviews"].([]interface{}), 2)
}

func TestCourseDetails(t *testing.T) {
	app, client, cfg := newTestAPI(t)
	course := seedCourse(t, client, 2)
	var other models.Course
	require.NoError(t, client.Create(context.Background(), store.Courses,
		models.Course{Title: "Go Routines", Level: "Beginner"}, &other))
	token := studentToken(t, cfg)

	doJSON(t, app, "POST", fmt.Sprintf("/api/courses/%d/reviews", course.ID), token,
		map[string]interface{}{"name": "Amira", "rating": 4, "comment": "Solid"})

	status, body := doJSON(t, app, "GET", fmt.Sprintf("/api/courses/%d", course.ID), "", nil)
	require.Equal(t, fiber.StatusOK, status)
	payload := data(t, body)
	assert.Equal(t, float64(4.0), payload["averageRating"])
	assert.Equal(t, float64(1), payload["reviewCount"])

	related := payload["related"].([]interface{})
	require.Len(t, related, 1)
	assert.Equal(t, "Go Routines", related[0].(map[string]interface{})["title"])

	status, _ = doJSON(t, app, "GET", "/api/courses/999", "", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}
