package auth

import (
	"context"
	"time"

	"github.com/mdaskas/customer-console/pkg/jwt"
)

type operatorKey struct{}

// WithOperator guarda el operador autenticado en el contexto de la petición.
func WithOperator(ctx context.Context, operator string) context.Context {
	return context.WithValue(ctx, operatorKey{}, operator)
}

// OperatorFrom devuelve el operador del contexto ("" si no hay sesión).
func OperatorFrom(ctx context.Context) string {
	s, _ := ctx.Value(operatorKey{}).(string)
	return s
}

// UpstreamTokens devuelve una fuente de Bearer tokens para la API GraphQL: cada llamada firma
// un token de vida corta cuyo subject es el operador del contexto. Sin secret no se envía
// Authorization.
func UpstreamTokens(secret, issuer string, ttl time.Duration) func(ctx context.Context) (string, error) {
	return func(ctx context.Context) (string, error) {
		if secret == "" {
			return "", nil
		}
		operator := OperatorFrom(ctx)
		if operator == "" {
			operator = "console"
		}
		return jwt.GenerateShortLived(secret, operator, issuer, ttl)
	}
}
