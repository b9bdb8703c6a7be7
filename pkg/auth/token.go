package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/angelmondragon/leadflow-backend/pkg/config"
	"github.com/angelmondragon/leadflow-backend/pkg/enums"
)

const clockSkew = 30 * time.Second

var signingMethod = jwt.SigningMethodHS256

// Signer mints and verifies HS256 access tokens for one issuer.
type Signer struct {
	cfg    config.JWTConfig
	now    func() time.Time
	parser *jwt.Parser
}

// NewSigner binds the JWT settings. A nil clock means time.Now.
func NewSigner(cfg config.JWTConfig, now func() time.Time) *Signer {
	if now == nil {
		now = time.Now
	}
	return &Signer{
		cfg: cfg,
		now: now,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{signingMethod.Alg()}),
			jwt.WithIssuer(cfg.Issuer),
			jwt.WithExpirationRequired(),
			jwt.WithIssuedAt(),
			jwt.WithLeeway(clockSkew),
			jwt.WithTimeFunc(now),
		),
	}
}

// Mint issues a token whose subject is the user id. It returns the signed
// token and its expiry.
func (s *Signer) Mint(userID uuid.UUID, role enums.UserRole) (string, time.Time, error) {
	switch {
	case s.cfg.Secret == "":
		return "", time.Time{}, errors.New("jwt secret is required")
	case s.cfg.Issuer == "":
		return "", time.Time{}, errors.New("jwt issuer is required")
	case s.cfg.TTL() <= 0:
		return "", time.Time{}, errors.New("jwt expiration minutes must be positive")
	case userID == uuid.Nil:
		return "", time.Time{}, errors.New("user id is required")
	case !role.IsValid():
		return "", time.Time{}, fmt.Errorf("invalid user role %q", role)
	}

	issued := s.now().UTC().Truncate(time.Second)
	expires := issued.Add(s.cfg.TTL())
	claims := AccessTokenClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(expires),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(signingMethod, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing jwt: %w", err)
	}
	return signed, expires, nil
}

// Parse checks signature, issuer and expiry and returns the typed claims.
func (s *Signer) Parse(token string) (*AccessTokenClaims, error) {
	if s.cfg.Secret == "" {
		return nil, errors.New("jwt secret is required")
	}

	claims := &AccessTokenClaims{}
	_, err := s.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return []byte(s.cfg.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	if _, err := claims.UserID(); err != nil {
		return nil, fmt.Errorf("invalid subject: %w", err)
	}
	return claims, nil
}
