package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"eduquest/config"
	"eduquest/models"
	"eduquest/utils"
)

// AuthController issues session tokens. This is the original platform's toy
// scheme carried over: only the one configured admin account has a real
// credential check, anyone else signs in as a student. It is not a security
// boundary and is documented as such.
type AuthController struct {
	Cfg *config.Config
}

func NewAuthController(cfg *config.Config) *AuthController {
	return &AuthController{Cfg: cfg}
}

type registerInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Register creates a student session and returns its token. No user record
// is stored anywhere; the token itself is the account.
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input registerInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Password = strings.TrimSpace(input.Password)
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	sess := models.Session{UserID: input.Email, Name: input.Name, Role: models.RoleStudent}

	token, err := utils.GenerateToken(sess, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c, "Could not generate token")
	}

	return utils.Created(c, fiber.Map{
		"token": token,
		"user":  sess,
	})
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login checks the admin credential and hands out a role-bearing token.
// Non-admin emails log in as students without verification, matching the
// original front end.
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input loginInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	input.Email = strings.TrimSpace(input.Email)
	input.Password = strings.TrimSpace(input.Password)
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	sess := models.Session{UserID: input.Email, Role: models.RoleStudent}
	if input.Email == ac.Cfg.AdminEmail {
		if ac.Cfg.AdminPasswordHash == "" {
			return utils.Unauthorized(c, "Admin login is not configured")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(ac.Cfg.AdminPasswordHash), []byte(input.Password)); err != nil {
			return utils.Unauthorized(c, "Invalid credentials")
		}
		sess.Role = models.RoleAdmin
	}

	token, err := utils.GenerateToken(sess, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c, "Could not generate token")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"token": token,
		"user":  sess,
	})
}
