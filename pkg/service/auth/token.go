package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/amirasaad/finance/pkg/config"
	"github.com/amirasaad/finance/pkg/domain"
	"github.com/amirasaad/finance/pkg/dto"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessClaims are carried by access tokens. The subject is the user id.
type AccessClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies the HS256 token pair. Access and refresh
// tokens use separate secrets so one can never stand in for the other.
type TokenIssuer struct {
	cfg *config.Jwt
	now func() time.Time
}

// NewTokenIssuer refuses a configuration without both secrets.
func NewTokenIssuer(cfg *config.Jwt) (*TokenIssuer, error) {
	if cfg == nil || cfg.Secret == "" || cfg.RefreshSecret == "" {
		return nil, errors.New("jwt secret and refresh secret must be set")
	}
	return &TokenIssuer{cfg: cfg, now: time.Now}, nil
}

// Access signs an access token for u.
func (t *TokenIssuer) Access(u *dto.UserRead) (string, error) {
	now := t.now()
	claims := AccessClaims{
		Email: u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.cfg.Expiry)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(t.cfg.Secret))
}

// Refresh signs a refresh token for userID and reports when it expires.
// Every token carries a fresh jti, so two tokens issued within the same
// second still differ.
func (t *TokenIssuer) Refresh(userID uuid.UUID) (string, time.Time, error) {
	now := t.now()
	expiresAt := now.Add(t.cfg.RefreshExpiry)
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(t.cfg.RefreshSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt.UTC(), nil
}

// ParseAccess verifies an access token and returns its subject.
func (t *TokenIssuer) ParseAccess(token string) (uuid.UUID, error) {
	return t.parse(token, t.cfg.Secret, &AccessClaims{})
}

// ParseRefresh verifies a refresh token and returns its subject.
func (t *TokenIssuer) ParseRefresh(token string) (uuid.UUID, error) {
	return t.parse(token, t.cfg.RefreshSecret, &jwt.RegisteredClaims{})
}

func (t *TokenIssuer) parse(token, secret string, claims jwt.Claims) (uuid.UUID, error) {
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || !parsed.Valid {
		return uuid.Nil, fmt.Errorf("%w: invalid token", domain.ErrUnauthorized)
	}
	sub, err := parsed.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid token subject", domain.ErrUnauthorized)
	}
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid token subject", domain.ErrUnauthorized)
	}
	return id, nil
}
