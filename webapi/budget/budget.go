// Package budget exposes shared budgets and their participants.
package budget

import (
	"github.com/amirasaad/finance/pkg/config"
	"github.com/amirasaad/finance/pkg/dto"
	"github.com/amirasaad/finance/pkg/middleware"
	"github.com/amirasaad/finance/pkg/rpc"
	"github.com/amirasaad/finance/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the budget routes.
func Routes(app *fiber.App, client *rpc.Client, cfg *config.App) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Get("/budgets", protected, FindAll(client))
	app.Post("/budgets", protected, Create(client))
	app.Get("/budgets/:id", protected, FindOne(client))
	app.Patch("/budgets/:id", protected, Update(client))
	app.Delete("/budgets/:id", protected, Delete(client))
	app.Post("/budgets/:id/participants", protected, AddParticipant(client))
	app.Delete("/budgets/:id/participants/:participantId", protected, RemoveParticipant(client))
}

// Create opens a budget.
// @Summary Create budget
// @Tags budgets
// @Accept json
// @Produce json
// @Param request body dto.CreateBudgetRequest true "Budget"
// @Success 201 {object} common.Response{data=dto.BudgetRead}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /budgets [post]
// @Security Bearer
func Create(client *rpc.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.Caller(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[dto.CreateBudgetRequest](c)
		if input == nil {
			return err // error response already written
		}
		b, err := rpc.Call[dto.BudgetRead](c.UserContext(), client, rpc.ServiceBudgets, rpc.Create, userID, input)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to create budget", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Budget created", b)
	}
}

// FindAll lists the caller's budgets.
// @Summary List budgets
// @Tags budgets
// @Produce json
// @Success 200 {object} common.Response{data=[]dto.BudgetRead}
// @Failure 401 {object} common.ProblemDetails
// @Router /budgets [get]
// @Security Bearer
func FindAll(client *rpc.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.Caller(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		list, err := rpc.Call[[]*dto.BudgetRead](c.UserContext(), client, rpc.ServiceBudgets, rpc.FindAll, userID, nil)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list budgets", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Budgets fetched", list)
	}
}

// FindOne returns one budget with its active participants.
// @Summary Get budget
// @Tags budgets
// @Produce json
// @Param id path string true "Budget ID"
// @Success 200 {object} common.Response{data=dto.BudgetRead}
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /budgets/{id} [get]
// @Security Bearer
func FindOne(client *rpc.Client) fiber.Handler {
	return forward(client, rpc.FindOne, nil, "Budget fetched", "Failed to get budget")
}

// Update changes a budget.
// @Summary Update budget
// @Tags budgets
// @Accept json
// @Produce json
// @Param id path string true "Budget ID"
// @Param request body dto.UpdateBudgetRequest true "Fields to change"
// @Success 200 {object} common.Response{data=dto.BudgetRead}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /budgets/{id} [patch]
// @Security Bearer
func Update(client *rpc.Client) fiber.Handler {
	return forward(client, rpc.Update, bind[dto.UpdateBudgetRequest], "Budget updated", "Failed to update budget")
}

// Delete archives a budget.
// @Summary Archive budget
// @Tags budgets
// @Produce json
// @Param id path string true "Budget ID"
// @Success 200 {object} common.Response{data=dto.BudgetRead}
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /budgets/{id} [delete]
// @Security Bearer
func Delete(client *rpc.Client) fiber.Handler {
	return forward(client, rpc.Delete, nil, "Budget archived", "Failed to archive budget")
}

// AddParticipant adds a contributor to a budget.
// @Summary Add participant
// @Tags budgets
// @Accept json
// @Produce json
// @Param id path string true "Budget ID"
// @Param request body dto.AddBudgetParticipantRequest true "Participant"
// @Success 200 {object} common.Response{data=dto.BudgetRead}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /budgets/{id}/participants [post]
// @Security Bearer
func AddParticipant(client *rpc.Client) fiber.Handler {
	return forward(client, rpc.AddParticipant, bind[dto.AddBudgetParticipantRequest], "Participant added", "Failed to add participant")
}

// RemoveParticipant removes a contributor from a budget.
// @Summary Remove participant
// @Tags budgets
// @Produce json
// @Param id path string true "Budget ID"
// @Param participantId path string true "Participant ID"
// @Success 200 {object} common.Response{data=dto.BudgetRead}
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /budgets/{id}/participants/{participantId} [delete]
// @Security Bearer
func RemoveParticipant(client *rpc.Client) fiber.Handler {
	return forward(client, rpc.RemoveParticipant, nil, "Participant removed", "Failed to remove participant")
}

// binder reads the request body. A nil payload with a nil error means the
// error response was already written.
type binder func(c *fiber.Ctx) (any, error)

func bind[T any](c *fiber.Ctx) (any, error) {
	input, err := common.BindAndValidate[T](c)
	if input == nil {
		return nil, err
	}
	return input, nil
}

func forward(client *rpc.Client, pattern rpc.Pattern, body binder, message, failure string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.Caller(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		var payload any
		if body != nil {
			if payload, err = body(c); payload == nil {
				return err // error response already written
			}
		}
		b, err := rpc.Call[dto.BudgetRead](
			c.UserContext(), client, rpc.ServiceBudgets, pattern, userID, payload,
			rpc.WithID(c.Params("id")), rpc.WithSubID(c.Params("participantId")),
		)
		if err != nil {
			return common.ProblemDetailsJSON(c, failure, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, message, b)
	}
}
