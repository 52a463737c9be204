package utils

import (
	"context"

	"lms-backend/pkg/token"
)

type contextKey string

const identityKey contextKey = "identity"

// SetIdentity attaches the caller identity decoded from the session token.
func SetIdentity(ctx context.Context, identity *token.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

func IdentityFromContext(ctx context.Context) (*token.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*token.Identity)
	if !ok || identity == nil {
		return nil, false
	}
	return identity, true
}
