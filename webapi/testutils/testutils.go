package testutils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amirasaad/finance/infra"
	infraeventbus "github.com/amirasaad/finance/infra/eventbus"
	infrarepo "github.com/amirasaad/finance/infra/repository"
	"github.com/amirasaad/finance/internal/testdb"
	"github.com/amirasaad/finance/pkg/app"
	"github.com/amirasaad/finance/pkg/config"
	"github.com/amirasaad/finance/pkg/dto"
	"github.com/amirasaad/finance/pkg/repository"
	"github.com/amirasaad/finance/pkg/service/auth"
	"github.com/amirasaad/finance/pkg/utils"
	"github.com/amirasaad/finance/webapi"
	"github.com/amirasaad/finance/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestPassword satisfies the password policy.
const TestPassword = "Str0ng!Passw0rd"

// TestConfig returns an in-process configuration with generous rate limits.
func TestConfig() *config.App {
	return &config.App{
		Env: "test",
		Auth: &config.Auth{Jwt: &config.Jwt{
			Secret:        "test-access-secret",
			Expiry:        15 * time.Minute,
			RefreshSecret: "test-refresh-secret",
			RefreshExpiry: time.Hour,
		}},
		RPC:       &config.RPC{Transport: "memory", Timeout: 5 * time.Second},
		RateLimit: &config.RateLimit{MaxRequests: 10000, Window: time.Minute},
	}
}

// NewApp wires the gateway to the services over the memory transport.
func NewApp(uow repository.UnitOfWork, cfg *config.App) (*fiber.App, *app.App, error) {
	utils.HashCost = 4
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens, err := auth.NewTokenIssuer(cfg.Auth.Jwt)
	if err != nil {
		return nil, nil, err
	}
	a, err := app.New(&app.Deps{
		Uow:      uow,
		EventBus: infraeventbus.NewWithMemory(logger),
		Tokens:   tokens,
		Logger:   logger,
	}, cfg)
	if err != nil {
		return nil, nil, err
	}
	return webapi.SetupApp(a.Client, cfg), a, nil
}

// NewTestApp is NewApp over a throwaway sqlite database.
func NewTestApp(t testing.TB, cfg *config.App) (*fiber.App, repository.UnitOfWork) {
	t.Helper()
	uow, _ := testdb.NewUoW(t)
	fiberApp, _, err := NewApp(uow, cfg)
	require.NoError(t, err)
	return fiberApp, uow
}

// MakeRequestWithApp is a helper for making HTTP requests in tests.
func MakeRequestWithApp(fiberApp *fiber.App, method, path, body, token string) *http.Response {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := fiberApp.Test(req, -1)
	if err != nil {
		panic(err) // For standalone tests, panic on error
	}
	return resp
}

// DecodeData reads a common.Response and decodes its data into out.
func DecodeData(resp *http.Response, out any) (*common.Response, error) {
	defer resp.Body.Close() //nolint: errcheck
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var envelope struct {
		common.Response
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode %s: %w", raw, err)
	}
	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return nil, err
		}
	}
	return &envelope.Response, nil
}

// SignUp registers a random user through the API and returns its tokens.
func SignUp(fiberApp *fiber.App) (*dto.AuthTokens, error) {
	suffix := uuid.NewString()[:8]
	body := fmt.Sprintf(
		`{"name":"user %s","email":"user_%s@example.com","password":%q}`,
		suffix, suffix, TestPassword,
	)
	resp := MakeRequestWithApp(fiberApp, http.MethodPost, "/authentication/signup", body, "")
	if resp.StatusCode != http.StatusCreated {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("expected 201 Created for sign up, got %d", resp.StatusCode)
	}
	var tokens dto.AuthTokens
	if _, err := DecodeData(resp, &tokens); err != nil {
		return nil, err
	}
	return &tokens, nil
}

// E2ETestSuite provides a test suite with a real Postgres database using Testcontainers
type E2ETestSuite struct {
	suite.Suite
	pgContainer *tcpostgres.PostgresContainer
	db          *gorm.DB
	app         *fiber.App
	cfg         *config.App
}

// startPostgresContainer starts a Postgres container using Testcontainers
func (s *E2ETestSuite) startPostgresContainer(ctx context.Context) (*tcpostgres.PostgresContainer, error) {
	return tcpostgres.Run(
		ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(30*time.Second),
		),
	)
}

// SetupSuite initializes the test suite with a real Postgres database
func (s *E2ETestSuite) SetupSuite() {
	if testing.Short() {
		s.T().Skip("skipping Postgres e2e suite in short mode")
	}
	ctx := context.Background()

	pg, err := s.startPostgresContainer(ctx)
	s.Require().NoError(err)
	s.pgContainer = pg

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	s.db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	s.Require().NoError(err)
	s.Require().NoError(infra.Migrate(s.db))

	s.cfg = TestConfig()
	s.cfg.DB = &config.DB{Url: dsn}
	s.app, _, err = NewApp(infrarepo.NewUoW(s.db), s.cfg)
	s.Require().NoError(err)
}

// TearDownSuite cleans up the test suite resources
func (s *E2ETestSuite) TearDownSuite() {
	if s.pgContainer != nil {
		_ = s.pgContainer.Terminate(context.Background())
	}
}

// App returns the gateway under test.
func (s *E2ETestSuite) App() *fiber.App {
	return s.app
}

// MakeRequest is a helper for making HTTP requests in tests
func (s *E2ETestSuite) MakeRequest(method, path, body, token string) *http.Response {
	return MakeRequestWithApp(s.app, method, path, body, token)
}

// CreateTestUser signs up a unique user and returns its tokens.
func (s *E2ETestSuite) CreateTestUser() *dto.AuthTokens {
	tokens, err := SignUp(s.app)
	s.Require().NoError(err)
	return tokens
}
