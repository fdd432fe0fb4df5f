package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"bamf/config"
	"bamf/shared/timezone"
)

var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrExpiredToken = errors.New("session has expired")
)

// Claims carries the operator identity inside the signed session cookie.
type Claims struct {
	User    string `json:"user"`
	TokenID string `json:"token_id"`
	jwt.RegisteredClaims
}

// Session issues and validates the HMAC-signed admin session token carried in
// a cookie.
type Session interface {
	IssueToken(user string) (token string, expiresAt time.Time, err error)
	ValidateToken(token string) (*Claims, error)
}

type sessionImpl struct {
	config *config.Config
}

func New(cfg *config.Config) Session {
	return &sessionImpl{
		config: cfg,
	}
}

func (s *sessionImpl) IssueToken(user string) (string, time.Time, error) {
	now := timezone.Now()
	expiresAt := now.Add(time.Duration(s.config.Admin.SessionTTLMin) * time.Minute)

	claims := Claims{
		User:    user,
		TokenID: uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.config.App.Name,
			Subject:   user,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(s.config.Admin.SessionSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	return signed, expiresAt, nil
}

func (s *sessionImpl) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(s.config.Admin.SessionSecret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}

		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
