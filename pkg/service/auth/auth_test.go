package auth_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	infrarepo "github.com/amirasaad/finance/infra/repository"
	"github.com/amirasaad/finance/internal/testdb"
	"github.com/amirasaad/finance/pkg/config"
	"github.com/amirasaad/finance/pkg/domain"
	"github.com/amirasaad/finance/pkg/dto"
	authsvc "github.com/amirasaad/finance/pkg/service/auth"
	"github.com/amirasaad/finance/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	utils.HashCost = 4
}

var jwtCfg = &config.Jwt{
	Secret:        "access-secret",
	Expiry:        15 * time.Minute,
	RefreshSecret: "refresh-secret",
	RefreshExpiry: 7 * 24 * time.Hour,
}

const password = "Sup3r$ecret"

func newService(t *testing.T) (*authsvc.Service, *authsvc.TokenIssuer, *infrarepo.UoW) {
	t.Helper()
	uow, _ := testdb.NewUoW(t)
	tokens, err := authsvc.NewTokenIssuer(jwtCfg)
	require.NoError(t, err)
	return authsvc.New(uow, tokens, slog.Default()), tokens, uow
}

func signUp(t *testing.T, svc *authsvc.Service, email string) *dto.AuthTokens {
	t.Helper()
	out, err := svc.SignUp(context.Background(), dto.SignUpRequest{
		Name:     "Jane",
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
	return out
}

func TestNewTokenIssuer_RequiresSecrets(t *testing.T) {
	t.Parallel()
	_, err := authsvc.NewTokenIssuer(&config.Jwt{Secret: "x"})
	assert.Error(t, err)
	_, err = authsvc.NewTokenIssuer(nil)
	assert.Error(t, err)
}

func TestTokenIssuer_SeparateSecrets(t *testing.T) {
	t.Parallel()
	tokens, err := authsvc.NewTokenIssuer(jwtCfg)
	require.NoError(t, err)
	u := &dto.UserRead{ID: uuid.New(), Email: "a@b.co"}

	access, err := tokens.Access(u)
	require.NoError(t, err)
	id, err := tokens.ParseAccess(access)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)
	_, err = tokens.ParseRefresh(access)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	claims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(access, claims)
	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), claims["sub"])
	assert.Equal(t, "a@b.co", claims["email"])
	assert.Contains(t, claims, "exp")
	assert.Contains(t, claims, "iat")

	r1, _, err := tokens.Refresh(u.ID)
	require.NoError(t, err)
	r2, _, err := tokens.Refresh(u.ID)
	require.NoError(t, err)
	assert.NotEqual(t, r1, r2)
	_, err = tokens.ParseAccess(r1)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestSignUp_CreatesUserAccountAndBank(t *testing.T) {
	svc, tokens, uow := newService(t)
	out := signUp(t, svc, " Jane@Example.com")

	assert.Equal(t, "jane@example.com", out.User.Email)
	assert.Equal(t, "fr", out.User.Lang)
	id, err := tokens.ParseAccess(out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, id)

	banks, err := uow.BankRepository()
	require.NoError(t, err)
	b, err := banks.GetByUserID(context.Background(), out.User.ID)
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, "EUR", b.Currency)
	assert.True(t, b.Balance.IsZero())

	accounts, err := uow.AccountRepository()
	require.NoError(t, err)
	a, err := accounts.GetByUserID(context.Background(), out.User.ID)
	require.NoError(t, err)
	assert.NotEqual(t, password, a.PasswordHash)
	assert.Equal(t, utils.HashToken(out.RefreshToken), a.RefreshTokenHash)
}

func TestSignUp_Rejected(t *testing.T) {
	svc, _, _ := newService(t)
	signUp(t, svc, "jane@example.com")

	_, err := svc.SignUp(context.Background(), dto.SignUpRequest{Name: "J", Email: "JANE@example.com", Password: password})
	assert.ErrorIs(t, err, domain.ErrConflict)
	_, err = svc.SignUp(context.Background(), dto.SignUpRequest{Name: "J", Email: "x@example.com", Password: "password"})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
	_, err = svc.SignUp(context.Background(), dto.SignUpRequest{Name: "J", Email: "nope", Password: password})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestSignIn(t *testing.T) {
	svc, _, _ := newService(t)
	first := signUp(t, svc, "jane@example.com")
	ctx := context.Background()

	out, err := svc.SignIn(ctx, dto.SignInRequest{Email: "jane@example.com", Password: password})
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, out.RefreshToken)

	_, err = svc.Refresh(ctx, dto.RefreshRequest{RefreshToken: first.RefreshToken})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "sign in rotates the refresh token")

	_, err = svc.SignIn(ctx, dto.SignInRequest{Email: "jane@example.com", Password: "Wr0ng!pass"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = svc.SignIn(ctx, dto.SignInRequest{Email: "nobody@example.com", Password: password})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestSignIn_InactiveUser(t *testing.T) {
	uow, db := testdb.NewUoW(t)
	tokens, err := authsvc.NewTokenIssuer(jwtCfg)
	require.NoError(t, err)
	svc := authsvc.New(uow, tokens, slog.Default())
	out := signUp(t, svc, "jane@example.com")
	require.NoError(t, db.Exec("UPDATE users SET is_active = ? WHERE id = ?", false, out.User.ID).Error)

	_, err = svc.SignIn(context.Background(), dto.SignInRequest{Email: "jane@example.com", Password: password})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = svc.Refresh(context.Background(), dto.RefreshRequest{RefreshToken: out.RefreshToken})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRefreshAndSignOut(t *testing.T) {
	svc, _, _ := newService(t)
	first := signUp(t, svc, "jane@example.com")
	ctx := context.Background()

	second, err := svc.Refresh(ctx, dto.RefreshRequest{RefreshToken: first.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	_, err = svc.Refresh(ctx, dto.RefreshRequest{RefreshToken: first.RefreshToken})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	require.NoError(t, svc.SignOut(ctx, second.User.ID))
	_, err = svc.Refresh(ctx, dto.RefreshRequest{RefreshToken: second.RefreshToken})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = svc.Refresh(ctx, dto.RefreshRequest{RefreshToken: "garbage"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
