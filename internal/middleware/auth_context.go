// Package middleware implementa el gate de acceso por request:
// Unauthenticated → TokenPresent → TokenValid → RoleAuthorized → Admitted,
// con corte temprano en cada paso. La identidad resuelta se adjunta al
// context del request antes de que corra cualquier handler.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"pet-adoption-api/internal/domain/apperr"
	"pet-adoption-api/internal/platform/logger"
	"pet-adoption-api/internal/ports/auth"
	"pet-adoption-api/internal/transport/httpjson"
)

type ctxKey string

const principalKey ctxKey = "principal"

// Principal es la identidad autenticada adjunta al request.
type Principal struct {
	ID       string
	Role     string
	EntityID string // vacío para admins
}

// PrincipalResolver vuelve del id del token a la identidad viva en el store.
// Devuelve apperr.ErrIdentityNotFound si la identidad ya no existe.
type PrincipalResolver func(ctx context.Context, identityID string) (Principal, error)

// RequireRoles arma el gate para un conjunto estático de roles permitidos.
// Sin roles, admite cualquier identidad autenticada.
func RequireRoles(verifier auth.TokenVerifier, resolve PrincipalResolver, log logger.Logger, roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				log.Warn("request sin token", map[string]any{"path": r.URL.Path})
				httpjson.WriteError(w, apperr.ErrTokenMissing)
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				log.Warn("token inválido", map[string]any{"path": r.URL.Path})
				httpjson.WriteError(w, apperr.ErrTokenInvalid)
				return
			}

			p, err := resolve(r.Context(), claims.IdentityID)
			if err != nil {
				log.Warn("identidad del token no resuelve", map[string]any{"path": r.URL.Path})
				httpjson.WriteError(w, err)
				return
			}

			if len(allowed) > 0 {
				if _, ok := allowed[p.Role]; !ok {
					log.Warn("rol no autorizado", map[string]any{"path": r.URL.Path, "role": p.Role})
					httpjson.WriteError(w, &apperr.Forbidden{Role: p.Role})
					return
				}
			}

			ctx := context.WithValue(r.Context(), principalKey, p)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetPrincipal(ctx context.Context) (Principal, bool) {
	v := ctx.Value(principalKey)
	if v == nil {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
