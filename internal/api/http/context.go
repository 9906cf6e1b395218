package http

import (
	"context"

	"suitrental-backend/internal/security"
)

type contextKey string

const operatorKey contextKey = "operator"

func withOperator(ctx context.Context, claims *security.OperatorClaims) context.Context {
	return context.WithValue(ctx, operatorKey, claims)
}

// operatorFromContext returns the authenticated operator claims, nil outside
// authenticated routes.
func operatorFromContext(ctx context.Context) *security.OperatorClaims {
	claims, _ := ctx.Value(operatorKey).(*security.OperatorClaims)
	return claims
}
