// Package jwtauth implementa los ports de auth con JWT HS256 firmado
// localmente. El secreto y el TTL vienen de configuración.
package jwtauth

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"pet-adoption-api/internal/domain/apperr"
	"pet-adoption-api/internal/ports/auth"
)

type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func New(secret string, ttl time.Duration) *Manager {
	if ttl == 0 {
		ttl = time.Hour
	}
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

type sessionClaims struct {
	jwt.RegisteredClaims
	Role     string `json:"role,omitempty"`
	EntityID string `json:"entity_id,omitempty"`
}

func (m *Manager) Issue(c auth.Claims) (string, error) {
	now := m.now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.IdentityID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		Role:     c.Role,
		EntityID: c.EntityID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify devuelve apperr.ErrTokenInvalid ante token malformado, firma
// inválida o expirado. No distingue causas hacia el cliente.
func (m *Manager) Verify(ctx context.Context, tokenString string) (auth.Claims, error) {
	_ = ctx

	if strings.TrimSpace(tokenString) == "" {
		return auth.Claims{}, apperr.ErrTokenInvalid
	}

	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperr.ErrTokenInvalid
		}
		return m.secret, nil
	})
	if err != nil {
		return auth.Claims{}, apperr.ErrTokenInvalid
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid || strings.TrimSpace(claims.Subject) == "" {
		return auth.Claims{}, apperr.ErrTokenInvalid
	}

	return auth.Claims{
		IdentityID: claims.Subject,
		Role:       claims.Role,
		EntityID:   claims.EntityID,
	}, nil
}
