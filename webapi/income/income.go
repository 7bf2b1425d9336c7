package income

import (
	"github.com/amirasaad/finance/pkg/config"
	"github.com/amirasaad/finance/pkg/dto"
	"github.com/amirasaad/finance/pkg/middleware"
	"github.com/amirasaad/finance/pkg/rpc"
	"github.com/amirasaad/finance/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the income routes.
func Routes(app *fiber.App, client *rpc.Client, cfg *config.App) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Get("/incomes", protected, FindAll(client))
	app.Get("/incomes/due", protected, FindDue(client))
	app.Get("/incomes/:id", protected, FindOne(client))
	app.Post("/incomes", protected, Create(client))
	app.Patch("/incomes/:id", protected, Update(client))
	app.Post("/incomes/:id/credit", protected, CreditNow(client))
	app.Delete("/incomes/:id", protected, Delete(client))
	app.Delete("/incomes/:id/permanent", protected, HardDelete(client))
}

// Create records an income. The balance is not touched until it is credited.
// @Summary Create income
// @Tags incomes
// @Accept json
// @Produce json
// @Param request body dto.CreateIncomeRequest true "Income"
// @Success 201 {object} common.Response{data=dto.IncomeRead}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /incomes [post]
// @Security Bearer
func Create(client *rpc.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.Caller(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[dto.CreateIncomeRequest](c)
		if input == nil {
			return err // error response already written
		}
		i, err := rpc.Call[dto.IncomeRead](c.UserContext(), client, rpc.ServiceIncomes, rpc.Create, userID, input)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to create income", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Income created", i)
	}
}

// FindAll lists the caller's incomes.
// @Summary List incomes
// @Tags incomes
// @Produce json
// @Param includeArchived query bool false "Include archived incomes"
// @Success 200 {object} common.Response{data=[]dto.IncomeRead}
// @Failure 401 {object} common.ProblemDetails
// @Router /incomes [get]
// @Security Bearer
func FindAll(client *rpc.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.Caller(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		q := dto.IncomeQuery{IncludeArchived: c.QueryBool("includeArchived")}
		list, err := rpc.Call[[]*dto.IncomeRead](c.UserContext(), client, rpc.ServiceIncomes, rpc.FindAll, userID, q)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list incomes", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Incomes fetched", list)
	}
}

// FindDue lists active incomes whose next payment date has passed.
// @Summary List due incomes
// @Tags incomes
// @Produce json
// @Success 200 {object} common.Response{data=[]dto.IncomeRead}
// @Failure 401 {object} common.ProblemDetails
// @Router /incomes/due [get]
// @Security Bearer
func FindDue(client *rpc.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.Caller(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		list, err := rpc.Call[[]*dto.IncomeRead](c.UserContext(), client, rpc.ServiceIncomes, rpc.FindDue, userID, nil)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list due incomes", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Due incomes fetched", list)
	}
}

// FindOne returns one income of the caller.
// @Summary Get income
// @Tags incomes
// @Produce json
// @Param id path string true "Income ID"
// @Success 200 {object} common.Response{data=dto.IncomeRead}
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /incomes/{id} [get]
// @Security Bearer
func FindOne(client *rpc.Client) fiber.Handler {
	return resource(client, rpc.FindOne, "Income fetched", "Failed to get income")
}

// Update changes an income. The balance is not touched.
// @Summary Update income
// @Tags incomes
// @Accept json
// @Produce json
// @Param id path string true "Income ID"
// @Param request body dto.UpdateIncomeRequest true "Fields to change"
// @Success 200 {object} common.Response{data=dto.IncomeRead}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /incomes/{id} [patch]
// @Security Bearer
func Update(client *rpc.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.Caller(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[dto.UpdateIncomeRequest](c)
		if input == nil {
			return err // error response already written
		}
		i, err := rpc.Call[dto.IncomeRead](c.UserContext(), client, rpc.ServiceIncomes, rpc.Update, userID, input, rpc.WithID(c.Params("id")))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update income", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Income updated", i)
	}
}

// Delete archives an income.
// @Summary Archive income
// @Tags incomes
// @Produce json
// @Param id path string true "Income ID"
// @Success 200 {object} common.Response{data=dto.IncomeRead}
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /incomes/{id} [delete]
// @Security Bearer
func Delete(client *rpc.Client) fiber.Handler {
	return resource(client, rpc.Delete, "Income archived", "Failed to archive income")
}

// HardDelete removes an income for good.
// @Summary Delete income permanently
// @Tags incomes
// @Produce json
// @Param id path string true "Income ID"
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /incomes/{id}/permanent [delete]
// @Security Bearer
func HardDelete(client *rpc.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.Caller(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		if _, err = rpc.Call[struct{}](c.UserContext(), client, rpc.ServiceIncomes, rpc.HardDelete, userID, nil, rpc.WithID(c.Params("id"))); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete income", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Income deleted", nil)
	}
}

// CreditNow credits one payment of an income to the balance.
// @Summary Credit income
// @Description Credit the income amount, record an income entry and schedule the next payment
// @Tags incomes
// @Produce json
// @Param id path string true "Income ID"
// @Success 200 {object} common.Response{data=dto.CreditResult}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /incomes/{id}/credit [post]
// @Security Bearer
func CreditNow(client *rpc.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.Caller(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		res, err := rpc.Call[dto.CreditResult](c.UserContext(), client, rpc.ServiceIncomes, rpc.CreditNow, userID, nil, rpc.WithID(c.Params("id")))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to credit income", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Income credited", res)
	}
}

func resource(client *rpc.Client, pattern rpc.Pattern, message, failure string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.Caller(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		i, err := rpc.Call[dto.IncomeRead](c.UserContext(), client, rpc.ServiceIncomes, pattern, userID, nil, rpc.WithID(c.Params("id")))
		if err != nil {
			return common.ProblemDetailsJSON(c, failure, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, message, i)
	}
}
