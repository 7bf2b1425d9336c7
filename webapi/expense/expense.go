// Package expense exposes the expense routes of the caller.
package expense

import (
	"fmt"
	"time"

	"github.com/amirasaad/finance/pkg/config"
	"github.com/amirasaad/finance/pkg/domain"
	"github.com/amirasaad/finance/pkg/dto"
	"github.com/amirasaad/finance/pkg/middleware"
	"github.com/amirasaad/finance/pkg/rpc"
	"github.com/amirasaad/finance/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the expense routes. The statistics route is registered
// before /:id so it is not read as an id.
func Routes(app *fiber.App, client *rpc.Client, cfg *config.App) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Get("/expenses", protected, FindAll(client))
	app.Get("/expenses/statistics", protected, GetStatistics(client))
	app.Get("/expenses/:id", protected, FindOne(client))
	app.Post("/expenses", protected, Create(client))
	app.Patch("/expenses/:id", protected, Update(client))
	app.Delete("/expenses/:id", protected, Delete(client))
	app.Delete("/expenses/:id/permanent", protected, HardDelete(client))
}

// Create records an expense and debits the caller's share of it.
// @Summary Create expense
// @Description Create an expense. The balance is debited by the caller's share.
// @Tags expenses
// @Accept json
// @Produce json
// @Param request body dto.CreateExpenseRequest true "Expense"
// @Success 201 {object} common.Response{data=dto.ExpenseRead}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /expenses [post]
// @Security Bearer
func Create(client *rpc.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.Caller(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[dto.CreateExpenseRequest](c)
		if input == nil {
			return err // error response already written
		}
		e, err := rpc.Call[dto.ExpenseRead](c.UserContext(), client, rpc.ServiceExpenses, rpc.Create, userID, input)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to create expense", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Expense created", e)
	}
}

// FindAll lists the caller's expenses.
// @Summary List expenses
// @Tags expenses
// @Produce json
// @Param page query int false "Page, from 1"
// @Param limit query int false "Page size, at most 100"
// @Param category query string false "Category"
// @Param frequency query string false "Frequency"
// @Param startDate query string false "Created on or after (RFC 3339 or YYYY-MM-DD)"
// @Param endDate query string false "Created on or before (RFC 3339 or YYYY-MM-DD)"
// @Param includeArchived query bool false "Include archived expenses"
// @Success 200 {object} common.Response{data=dto.ExpenseList}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /expenses [get]
// @Security Bearer
func FindAll(client *rpc.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.Caller(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		q, err := parseQuery(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid query", err)
		}
		list, err := rpc.Call[dto.ExpenseList](c.UserContext(), client, rpc.ServiceExpenses, rpc.FindAll, userID, q)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list expenses", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Expenses fetched", list)
	}
}

func parseQuery(c *fiber.Ctx) (*dto.ExpenseQuery, error) {
	q := &dto.ExpenseQuery{
		Page:            c.QueryInt("page"),
		Limit:           c.QueryInt("limit"),
		Category:        c.Query("category"),
		Frequency:       c.Query("frequency"),
		IncludeArchived: c.QueryBool("includeArchived"),
	}
	var err error
	if q.StartDate, err = parseDate(c.Query("startDate")); err != nil {
		return nil, err
	}
	if q.EndDate, err = parseDate(c.Query("endDate")); err != nil {
		return nil, err
	}
	return q, nil
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: invalid date %q", domain.ErrBadRequest, s)
}

// FindOne returns one expense of the caller.
// @Summary Get expense
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} common.Response{data=dto.ExpenseRead}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /expenses/{id} [get]
// @Security Bearer
func FindOne(client *rpc.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.Caller(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		e, err := rpc.Call[dto.ExpenseRead](c.UserContext(), client, rpc.ServiceExpenses, rpc.FindOne, userID, nil, rpc.WithID(c.Params("id")))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to get expense", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Expense fetched", e)
	}
}

// Update changes an expense and posts the change in the caller's share.
// @Summary Update expense
// @Description Partially update an expense. A change of the caller's share adjusts the balance.
// @Tags expenses
// @Accept json
// @Produce json
// @Param id path string true "Expense ID"
// @Param request body dto.UpdateExpenseRequest true "Fields to change"
// @Success 200 {object} common.Response{data=dto.ExpenseRead}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /expenses/{id} [patch]
// @Security Bearer
func Update(client *rpc.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.Caller(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[dto.UpdateExpenseRequest](c)
		if input == nil {
			return err // error response already written
		}
		e, err := rpc.Call[dto.ExpenseRead](c.UserContext(), client, rpc.ServiceExpenses, rpc.Update, userID, input, rpc.WithID(c.Params("id")))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update expense", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Expense updated", e)
	}
}

// Delete archives an expense and refunds the caller's share once.
// @Summary Archive expense
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} common.Response{data=dto.ExpenseRead}
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /expenses/{id} [delete]
// @Security Bearer
func Delete(client *rpc.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.Caller(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		e, err := rpc.Call[dto.ExpenseRead](c.UserContext(), client, rpc.ServiceExpenses, rpc.Delete, userID, nil, rpc.WithID(c.Params("id")))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to archive expense", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Expense archived", e)
	}
}

// HardDelete removes an expense for good.
// @Summary Delete expense permanently
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /expenses/{id}/permanent [delete]
// @Security Bearer
func HardDelete(client *rpc.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.Caller(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		if _, err = rpc.Call[struct{}](c.UserContext(), client, rpc.ServiceExpenses, rpc.HardDelete, userID, nil, rpc.WithID(c.Params("id"))); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete expense", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Expense deleted", nil)
	}
}

// GetStatistics summarises the caller's expenses.
// @Summary Expense statistics
// @Tags expenses
// @Produce json
// @Success 200 {object} common.Response{data=dto.ExpenseStatistics}
// @Failure 401 {object} common.ProblemDetails
// @Router /expenses/statistics [get]
// @Security Bearer
func GetStatistics(client *rpc.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.Caller(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		stats, err := rpc.Call[dto.ExpenseStatistics](c.UserContext(), client, rpc.ServiceExpenses, rpc.GetStatistics, userID, nil)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to compute statistics", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Statistics computed", stats)
	}
}
