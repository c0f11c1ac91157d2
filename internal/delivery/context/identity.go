// Package context carries request-scoped values through the processing chain.
package context

import (
	"context"

	"github.com/alexandruvladut/articles-rest-api/internal/domain/entity"
)

// KeyIdentity is the key for storing the authenticated identity in context.
const KeyIdentity ContextKey = "identity"

// WithIdentity returns a new context carrying the authenticated identity.
// The identity is request-scoped: it lives only in the request's context and
// is discarded when the request completes.
func WithIdentity(ctx context.Context, identity *entity.Identity) context.Context {
	return context.WithValue(ctx, KeyIdentity, identity)
}

// GetIdentity extracts the authenticated identity from the context.
// ok is false when the request never authenticated.
func GetIdentity(ctx context.Context) (*entity.Identity, bool) {
	identity, ok := ctx.Value(KeyIdentity).(*entity.Identity)
	if !ok || identity == nil {
		return nil, false
	}

	return identity, true
}
