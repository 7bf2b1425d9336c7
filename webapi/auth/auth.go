// Package auth exposes sign up, sign in, token refresh and sign out.
package auth

import (
	"github.com/amirasaad/finance/pkg/config"
	"github.com/amirasaad/finance/pkg/dto"
	"github.com/amirasaad/finance/pkg/middleware"
	"github.com/amirasaad/finance/pkg/rpc"
	"github.com/amirasaad/finance/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Routes registers the authentication routes. Only signout needs a token.
func Routes(app *fiber.App, client *rpc.Client, cfg *config.App) {
	app.Post("/authentication/signup", SignUp(client))
	app.Post("/authentication/signin", SignIn(client))
	app.Post("/authentication/refresh", Refresh(client))
	app.Post("/authentication/signout", middleware.JwtProtected(cfg.Auth.Jwt), SignOut(client))
}

// SignUp creates a user with an empty bank and signs them in.
// @Summary Sign up
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SignUpRequest true "New user"
// @Success 201 {object} common.Response{data=dto.AuthTokens}
// @Failure 400 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Router /authentication/signup [post]
func SignUp(client *rpc.Client) fiber.Handler {
	return anonymous[dto.SignUpRequest](client, rpc.SignUp, fiber.StatusCreated, "Signed up", "Sign up failed")
}

// SignIn exchanges credentials for a token pair.
// @Summary Sign in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SignInRequest true "Credentials"
// @Success 200 {object} common.Response{data=dto.AuthTokens}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Router /authentication/signin [post]
func SignIn(client *rpc.Client) fiber.Handler {
	return anonymous[dto.SignInRequest](client, rpc.SignIn, fiber.StatusOK, "Signed in", "Invalid credentials")
}

// Refresh rotates a refresh token.
// @Summary Refresh tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshRequest true "Refresh token"
// @Success 200 {object} common.Response{data=dto.AuthTokens}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /authentication/refresh [post]
func Refresh(client *rpc.Client) fiber.Handler {
	return anonymous[dto.RefreshRequest](client, rpc.RefreshToken, fiber.StatusOK, "Tokens refreshed", "Invalid refresh token")
}

func anonymous[T any](client *rpc.Client, pattern rpc.Pattern, status int, message, failure string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[T](c)
		if input == nil {
			return err // error response already written
		}
		tokens, err := rpc.Call[dto.AuthTokens](c.UserContext(), client, rpc.ServiceAuthentication, pattern, uuid.Nil, input)
		if err != nil {
			return common.ProblemDetailsJSON(c, failure, err)
		}
		return common.SuccessResponseJSON(c, status, message, tokens)
	}
}

// SignOut revokes the refresh token of the caller.
// @Summary Sign out
// @Tags auth
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /authentication/signout [post]
// @Security Bearer
func SignOut(client *rpc.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.Caller(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		if _, err = rpc.Call[struct{}](c.UserContext(), client, rpc.ServiceAuthentication, rpc.SignOut, userID, nil); err != nil {
			return common.ProblemDetailsJSON(c, "Sign out failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Signed out", nil)
	}
}
