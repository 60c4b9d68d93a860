package auth

import (
	"context"

	"github.com/google/uuid"
)

// Principal is the authenticated identity every money operation runs as.
type Principal struct {
	UserID        uuid.UUID
	AccountID     uuid.UUID
	AccountNumber int64
	Username      string
}

type principalKey struct{}

func ContextWithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
