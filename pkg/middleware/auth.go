// Package middleware holds the Fiber middleware shared by the gateway routes.
package middleware

import (
	"errors"
	"strings"

	"github.com/amirasaad/finance/pkg/config"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// UserKey is the Fiber local holding the verified *jwt.Token.
const UserKey = "user"

// JwtProtected verifies the bearer access token against the access secret.
// Refresh tokens are signed with another secret and are rejected here.
func JwtProtected(cfg *config.Jwt) fiber.Handler {
	secret := ""
	if cfg != nil {
		secret = cfg.Secret
	}
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{JWTAlg: jwtware.HS256, Key: []byte(secret)},
		ContextKey:   UserKey,
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	status := fiber.StatusUnauthorized
	title := "Invalid or expired JWT"
	if errors.Is(err, jwtware.ErrJWTMissingOrMalformed) ||
		strings.EqualFold(err.Error(), jwtware.ErrJWTMissingOrMalformed.Error()) {
		status = fiber.StatusBadRequest
		title = "Missing or malformed JWT"
	}
	return c.Status(status).JSON(fiber.Map{
		"type":     "about:blank",
		"title":    title,
		"status":   status,
		"detail":   err.Error(),
		"instance": c.OriginalURL(),
	}, "application/problem+json")
}

// UserID returns the caller id carried in the sub claim of the verified
// token. It fails when the route is not protected or the claim is not a
// uuid.
func UserID(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals(UserKey).(*jwt.Token)
	if !ok || token == nil {
		return uuid.Nil, errors.New("no verified token on request")
	}
	sub, err := token.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(sub)
}
