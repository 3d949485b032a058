package services

import (
	"fmt"
	"time"

	"apteekki/internal/apperror"

	"github.com/dgrijalva/jwt-go"
)

// Claims are the identity claims carried by an issued token.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.StandardClaims
}

// TokenService issues and verifies signed identity tokens. Tokens are
// HS256-signed with a process-wide secret. When ttl is zero no exp claim
// is set and tokens never expire; production deployments should configure
// a positive ttl.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a new TokenService.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue produces a signed token binding the user's id and username.
func (s *TokenService) Issue(userID, username string) (string, error) {
	claims := Claims{
		UserID:   userID,
		Username: username,
	}
	if s.ttl > 0 {
		now := time.Now()
		claims.IssuedAt = now.Unix()
		claims.ExpiresAt = now.Add(s.ttl).Unix()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", apperror.NewInternal("failed to sign token", err)
	}
	return tokenString, nil
}

// Verify checks signature validity and structural well-formedness. It
// always returns a structured outcome: an absent, malformed or tampered
// token yields an Unauthorized error, never a panic.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, apperror.NewUnauthorized("token missing", nil)
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, apperror.NewUnauthorized("invalid token", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperror.NewUnauthorized("invalid token", nil)
	}
	return claims, nil
}
