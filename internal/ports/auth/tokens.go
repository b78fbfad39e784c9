package auth

import "context"

// TokenIssuer firma un token de sesión con expiración finita.
type TokenIssuer interface {
	Issue(claims Claims) (string, error)
}

// TokenVerifier verifica firma y expiración, y devuelve los claims o error.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
