// Package bank exposes the virtual balance of the caller.
package bank

import (
	"github.com/amirasaad/finance/pkg/config"
	"github.com/amirasaad/finance/pkg/dto"
	"github.com/amirasaad/finance/pkg/middleware"
	"github.com/amirasaad/finance/pkg/rpc"
	"github.com/amirasaad/finance/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the bank routes.
func Routes(app *fiber.App, client *rpc.Client, cfg *config.App) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt)
	app.Get("/banks", protected, GetBank(client))
	app.Patch("/banks/balance/add", protected, AddBalance(client))
	app.Patch("/banks/balance/subtract", protected, SubtractBalance(client))
	app.Patch("/banks/currency", protected, UpdateCurrency(client))
}

// GetBank returns the bank of the caller.
// @Summary Get balance
// @Description Return the virtual balance of the authenticated user
// @Tags banks
// @Produce json
// @Success 200 {object} common.Response{data=dto.BankRead}
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /banks [get]
// @Security Bearer
func GetBank(client *rpc.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.Caller(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		bank, err := rpc.Call[dto.BankRead](c.UserContext(), client, rpc.ServiceBanks, rpc.GetBank, userID, nil)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to get bank", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Bank fetched", bank)
	}
}

// AddBalance credits the balance of the caller.
// @Summary Add to balance
// @Description Credit the balance and record an adjustment entry
// @Tags banks
// @Accept json
// @Produce json
// @Param request body dto.BalanceChange true "Amount to add"
// @Success 200 {object} common.Response{data=dto.BankRead}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /banks/balance/add [patch]
// @Security Bearer
func AddBalance(client *rpc.Client) fiber.Handler {
	return changeBalance(client, rpc.AddBalance, "Balance added")
}

// SubtractBalance debits the balance of the caller. The balance may go
// negative.
// @Summary Subtract from balance
// @Description Debit the balance and record an adjustment entry
// @Tags banks
// @Accept json
// @Produce json
// @Param request body dto.BalanceChange true "Amount to subtract"
// @Success 200 {object} common.Response{data=dto.BankRead}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /banks/balance/subtract [patch]
// @Security Bearer
func SubtractBalance(client *rpc.Client) fiber.Handler {
	return changeBalance(client, rpc.SubtractBalance, "Balance subtracted")
}

func changeBalance(client *rpc.Client, pattern rpc.Pattern, message string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.Caller(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[dto.BalanceChange](c)
		if input == nil {
			return err // error response already written
		}
		bank, err := rpc.Call[dto.BankRead](c.UserContext(), client, rpc.ServiceBanks, pattern, userID, input)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to change balance", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, message, bank)
	}
}

// UpdateCurrency relabels the balance currency without converting it.
// @Summary Change currency
// @Description Change the currency label of the balance. The amount is not converted.
// @Tags banks
// @Accept json
// @Produce json
// @Param request body dto.CurrencyChange true "New ISO 4217 code"
// @Success 200 {object} common.Response{data=dto.BankRead}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /banks/currency [patch]
// @Security Bearer
func UpdateCurrency(client *rpc.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.Caller(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[dto.CurrencyChange](c)
		if input == nil {
			return err // error response already written
		}
		bank, err := rpc.Call[dto.BankRead](c.UserContext(), client, rpc.ServiceBanks, rpc.UpdateCurrency, userID, input)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update currency", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Currency updated", bank)
	}
}
