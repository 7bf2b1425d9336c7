// Package auth signs users up and in, and rotates their token pair. Only a
// SHA-256 digest of the current refresh token is stored, so a leaked
// database row cannot be replayed.
package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"strings"

	"github.com/amirasaad/finance/pkg/domain"
	domainuser "github.com/amirasaad/finance/pkg/domain/user"
	"github.com/amirasaad/finance/pkg/dto"
	"github.com/amirasaad/finance/pkg/repository"
	banksvc "github.com/amirasaad/finance/pkg/service/bank"
	"github.com/amirasaad/finance/pkg/utils"
	"github.com/google/uuid"
)

var errBadCredentials = fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)

// Service provides authentication operations.
type Service struct {
	uow    repository.UnitOfWork
	tokens *TokenIssuer
	logger *slog.Logger
}

// New creates a new auth Service.
func New(
	uow repository.UnitOfWork,
	tokens *TokenIssuer,
	logger *slog.Logger,
) *Service {
	return &Service{uow: uow, tokens: tokens, logger: logger}
}

// SignUp creates the user, their credentials and an empty bank together.
func (s *Service) SignUp(
	ctx context.Context,
	in dto.SignUpRequest,
) (out *dto.AuthTokens, err error) {
	log := s.logger.With("context", "SignUp")
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrBadRequest)
	}
	email, err := domainuser.NormalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if err = domainuser.ValidatePassword(in.Password); err != nil {
		return nil, err
	}
	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	lang := in.Lang
	if lang == "" {
		lang = domainuser.DefaultLang
	}

	userID := uuid.New()
	refresh, expiresAt, err := s.tokens.Refresh(userID)
	if err != nil {
		return nil, err
	}

	var u *dto.UserRead
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		taken, err := users.ExistsByEmail(ctx, email)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: email already registered", domain.ErrConflict)
		}
		if err := users.Create(ctx, &dto.UserCreate{
			ID:          userID,
			Name:        name,
			Email:       email,
			PhoneNumber: in.PhoneNumber,
			Lang:        lang,
		}); err != nil {
			return err
		}
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		if err := accounts.Create(ctx, &dto.AccountCreate{
			ID:                    uuid.New(),
			UserID:                userID,
			PasswordHash:          hash,
			RefreshTokenHash:      utils.HashToken(refresh),
			RefreshTokenExpiresAt: expiresAt,
		}); err != nil {
			return err
		}
		if err := banksvc.Open(ctx, uow, userID); err != nil {
			return err
		}
		u, err = users.Get(ctx, userID)
		return err
	})
	if err != nil {
		log.Error("sign up failed", "error", err)
		return nil, err
	}

	access, err := s.tokens.Access(u)
	if err != nil {
		return nil, err
	}
	log.Info("user signed up", "userID", userID)
	return &dto.AuthTokens{AccessToken: access, RefreshToken: refresh, User: u}, nil
}

// SignIn checks the credentials and rotates the refresh token. Unknown
// users cost the same bcrypt comparison as a wrong password.
func (s *Service) SignIn(
	ctx context.Context,
	in dto.SignInRequest,
) (*dto.AuthTokens, error) {
	log := s.logger.With("context", "SignIn")
	email := strings.ToLower(strings.TrimSpace(in.Email))

	users, err := s.uow.UserRepository()
	if err != nil {
		return nil, err
	}
	u, err := users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		_ = utils.CheckPasswordHash(in.Password, utils.DummyHash)
		log.Warn("sign in failed", "reason", "unknown email")
		return nil, errBadCredentials
	}
	accounts, err := s.uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	a, err := accounts.GetByUserID(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	if a == nil || !utils.CheckPasswordHash(in.Password, a.PasswordHash) {
		log.Warn("sign in failed", "reason", "bad password", "userID", u.ID)
		return nil, errBadCredentials
	}
	if !u.IsActive {
		log.Warn("sign in failed", "reason", "inactive", "userID", u.ID)
		return nil, errBadCredentials
	}

	out, err := s.issue(ctx, u)
	if err != nil {
		log.Error("sign in failed", "error", err)
		return nil, err
	}
	log.Info("user signed in", "userID", u.ID)
	return out, nil
}

// Refresh trades a valid refresh token for a new pair. The old refresh
// token stops working.
func (s *Service) Refresh(
	ctx context.Context,
	in dto.RefreshRequest,
) (*dto.AuthTokens, error) {
	log := s.logger.With("context", "Refresh")
	userID, err := s.tokens.ParseRefresh(in.RefreshToken)
	if err != nil {
		return nil, err
	}

	accounts, err := s.uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	a, err := accounts.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if a == nil || a.RefreshTokenHash == "" ||
		subtle.ConstantTimeCompare([]byte(a.RefreshTokenHash), []byte(utils.HashToken(in.RefreshToken))) != 1 {
		log.Warn("refresh rejected", "reason", "token mismatch", "userID", userID)
		return nil, fmt.Errorf("%w: refresh token revoked", domain.ErrUnauthorized)
	}
	if !a.RefreshTokenExpiresAt.After(s.tokens.now()) {
		return nil, fmt.Errorf("%w: refresh token expired", domain.ErrUnauthorized)
	}

	users, err := s.uow.UserRepository()
	if err != nil {
		return nil, err
	}
	u, err := users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.IsActive {
		return nil, fmt.Errorf("%w: user is not active", domain.ErrUnauthorized)
	}
	return s.issue(ctx, u)
}

// SignOut revokes the stored refresh token.
func (s *Service) SignOut(ctx context.Context, userID uuid.UUID) error {
	now := s.tokens.now().UTC()
	empty := ""
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		return accounts.UpdateByUserID(ctx, userID, &dto.AccountUpdate{
			RefreshTokenHash:      &empty,
			RefreshTokenExpiresAt: &now,
		})
	})
	if err != nil {
		return err
	}
	s.logger.Info("user signed out", "userID", userID)
	return nil
}

func (s *Service) issue(ctx context.Context, u *dto.UserRead) (*dto.AuthTokens, error) {
	access, err := s.tokens.Access(u)
	if err != nil {
		return nil, err
	}
	refresh, expiresAt, err := s.tokens.Refresh(u.ID)
	if err != nil {
		return nil, err
	}
	hash := utils.HashToken(refresh)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		return accounts.UpdateByUserID(ctx, u.ID, &dto.AccountUpdate{
			RefreshTokenHash:      &hash,
			RefreshTokenExpiresAt: &expiresAt,
		})
	})
	if err != nil {
		return nil, err
	}
	return &dto.AuthTokens{AccessToken: access, RefreshToken: refresh, User: u}, nil
}
