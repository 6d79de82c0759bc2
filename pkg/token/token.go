package token

import (
	"errors"
	"time"

	"smart-clinic-backend/config"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// InvalidLifetime is returned by RemainingLifetime when the token cannot be
// verified. It is a diagnostic sentinel, never an authorization decision.
const InvalidLifetime = time.Duration(-1)

// Service issues and verifies self-contained HS256 bearer tokens. The payload
// carries only a subject identifier and timestamps; no role and no server-side
// session state.
type Service struct {
	config config.JWTConfig
}

func NewService(cfg config.JWTConfig) *Service {
	return &Service{config: cfg}
}

// Generate issues a token for the given subject identifier (admin username or
// doctor/patient email).
func (s *Service) Generate(identifier string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   identifier,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.config.Expiry)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.Secret))
}

// ExtractIdentifier verifies the token signature and expiry and returns the
// subject identifier unmodified.
func (s *Service) ExtractIdentifier(tokenString string) (string, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}
	return claims.Subject, nil
}

// RemainingLifetime reports how long the token stays valid. Any verification
// failure collapses to InvalidLifetime.
func (s *Service) RemainingLifetime(tokenString string) time.Duration {
	claims, err := s.parse(tokenString)
	if err != nil || claims.ExpiresAt == nil {
		return InvalidLifetime
	}
	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining < 0 {
		return InvalidLifetime
	}
	return remaining
}

// Expiry exposes the configured token lifetime.
func (s *Service) Expiry() time.Duration {
	return s.config.Expiry
}

func (s *Service) parse(tokenString string) (*jwt.RegisteredClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
