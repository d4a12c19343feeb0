package utils

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"eduquest/config"
	"eduquest/models"
)

// GenerateToken signs a session into an HS256 JWT valid for 72 hours.
func GenerateToken(sess models.Session, cfg *config.Config) (string, error) {
	claims := jwt.MapClaims{
		"email": sess.UserID,
		"name":  sess.Name,
		"role":  sess.Role,
		"exp":   time.Now().Add(time.Hour * 72).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// SessionFromToken parses the Authorization header back into a session.
func SessionFromToken(c *fiber.Ctx, cfg *config.Config) (models.Session, error) {
	tokenString := c.Get("Authorization")
	if tokenString == "" {
		return models.Session{}, fiber.NewError(fiber.StatusUnauthorized, "Missing authorization token")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil {
		return models.Session{}, fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return models.Session{}, fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
	}

	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return models.Session{}, fiber.NewError(fiber.StatusUnauthorized, "Invalid email in token")
	}

	sess := models.Session{UserID: email, Role: models.RoleStudent}
	if name, ok := claims["name"].(string); ok {
		sess.Name = name
	}
	if role, ok := claims["role"].(string); ok && role != "" {
		sess.Role = role
	}
	return sess, nil
}
