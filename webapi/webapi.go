// Package webapi is the HTTP gateway. It authenticates the caller, binds and
// validates the request and forwards one RPC call per request. It is
// organized into sub-packages per service:
// - auth: sign up, sign in, refresh and sign out
// - bank: balance and currency
// - expense, income: ledger-affecting records
// - user: profile and erasure
// - budget, event: shared budgets and events
package webapi

import (
	"errors"
	"strings"
	"time"

	"github.com/amirasaad/finance/pkg/config"
	"github.com/amirasaad/finance/pkg/rpc"
	authweb "github.com/amirasaad/finance/webapi/auth"
	bankweb "github.com/amirasaad/finance/webapi/bank"
	budgetweb "github.com/amirasaad/finance/webapi/budget"
	"github.com/amirasaad/finance/webapi/common"
	eventweb "github.com/amirasaad/finance/webapi/event"
	expenseweb "github.com/amirasaad/finance/webapi/expense"
	incomeweb "github.com/amirasaad/finance/webapi/income"
	userweb "github.com/amirasaad/finance/webapi/user"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"

	_ "github.com/amirasaad/finance/docs"
)

// SetupApp Initialize Fiber with custom configuration
func SetupApp(client *rpc.Client, cfg *config.App) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})
	fiberApp.Get("/swagger/*", swagger.New(swagger.Config{
		TryItOutEnabled:      true,
		WithCredentials:      true,
		PersistAuthorization: true,
	}))

	// Configure rate limiting middleware
	// Uses X-Forwarded-For header when behind a proxy
	// Falls back to X-Real-IP or direct IP if needed
	rateLimit := cfg.RateLimit
	if rateLimit == nil {
		rateLimit = &config.RateLimit{MaxRequests: 100, Window: time.Minute}
	}
	fiberApp.Use(limiter.New(limiter.Config{
		Max:        rateLimit.MaxRequests,
		Expiration: rateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				// Take the first IP in the chain
				if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
					return strings.TrimSpace(forwardedFor[:commaIndex])
				}
				return strings.TrimSpace(forwardedFor)
			}
			if realIP := c.Get("X-Real-IP"); realIP != "" {
				return realIP
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(
				c,
				"Too Many Requests",
				errors.New("rate limit exceeded"),
				fiber.StatusTooManyRequests,
			)
		},
	}))
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())

	// Health check endpoint
	fiberApp.Get(
		"/",
		func(c *fiber.Ctx) error {
			return c.SendString("Finance API is running")
		},
	)

	authweb.Routes(fiberApp, client, cfg)
	bankweb.Routes(fiberApp, client, cfg)
	expenseweb.Routes(fiberApp, client, cfg)
	incomeweb.Routes(fiberApp, client, cfg)
	userweb.Routes(fiberApp, client, cfg)
	budgetweb.Routes(fiberApp, client, cfg)
	eventweb.Routes(fiberApp, client, cfg)
	return fiberApp
}
