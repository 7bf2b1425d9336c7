package user

import (
	"github.com/amirasaad/finance/pkg/config"
	"github.com/amirasaad/finance/pkg/dto"
	"github.com/amirasaad/finance/pkg/middleware"
	"github.com/amirasaad/finance/pkg/rpc"
	"github.com/amirasaad/finance/webapi/common"
	"github.com/gofiber/fiber/v2"
)

func Routes(app *fiber.App, client *rpc.Client, cfg *config.App) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Get("/users/me", protected, Me(client))
	app.Patch("/users/:id", protected, UpdateUser(client))
	app.Delete("/users/:id", protected, DeleteUser(client))
	app.Patch("/users/:id/password", protected, UpdatePassword(client))
}

// Me returns the profile of the caller.
// @Summary Current user
// @Tags users
// @Produce json
// @Success 200 {object} common.Response{data=dto.UserRead}
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /users/me [get]
// @Security Bearer
func Me(client *rpc.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.Caller(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		u, err := rpc.Call[dto.UserRead](c.UserContext(), client, rpc.ServiceUsers, rpc.FindOne, userID, nil)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to get user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User found", u)
	}
}

// UpdateUser changes the profile of the caller.
// @Summary Update user
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.UserUpdate true "Fields to change"
// @Success 200 {object} common.Response{data=dto.UserRead}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Router /users/{id} [patch]
// @Security Bearer
func UpdateUser(client *rpc.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.Caller(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[dto.UserUpdate](c)
		if input == nil {
			return err // error response already written
		}
		u, err := rpc.Call[dto.UserRead](c.UserContext(), client, rpc.ServiceUsers, rpc.UpdateUser, userID, input, rpc.WithID(c.Params("id")))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User updated", u)
	}
}

// UpdatePassword replaces the password of the caller.
// @Summary Update password
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.UpdatePasswordRequest true "New password"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Router /users/{id}/password [patch]
// @Security Bearer
func UpdatePassword(client *rpc.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.Caller(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[dto.UpdatePasswordRequest](c)
		if input == nil {
			return err // error response already written
		}
		if _, err = rpc.Call[struct{}](c.UserContext(), client, rpc.ServiceUsers, rpc.UpdatePassword, userID, input, rpc.WithID(c.Params("id"))); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update password", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Password updated", nil)
	}
}

// DeleteUser erases the caller and everything they own.
// @Summary Delete user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /users/{id} [delete]
// @Security Bearer
func DeleteUser(client *rpc.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.Caller(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		if _, err = rpc.Call[struct{}](c.UserContext(), client, rpc.ServiceUsers, rpc.Delete, userID, nil, rpc.WithID(c.Params("id"))); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User deleted", nil)
	}
}
