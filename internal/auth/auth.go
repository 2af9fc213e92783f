// Package auth resolves bearer secrets to club members and evaluates
// permission checks. Token issuance lives outside this service; a secret is
// an opaque capability handed to us by the caller.
package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/clubworks/clubd/internal/model"
	"github.com/clubworks/clubd/internal/store"
)

// HasPermission reports whether u satisfies every required permission.
// A user holding model.PermissionAdmin passes any check. A nil user never
// passes.
func HasPermission(u *model.User, required ...model.Permission) bool {
	if u == nil {
		return false
	}
	if u.HasPermission(model.PermissionAdmin) {
		return true
	}
	for _, p := range required {
		if !u.HasPermission(p) {
			return false
		}
	}
	return true
}

// Resolver maps an opaque bearer secret to a user account.
type Resolver interface {
	// Resolve returns the user owning the secret, or model.ErrUnauthorized
	// when the secret is empty or unknown.
	Resolve(ctx context.Context, secret string) (*model.User, error)
}

// StoreResolver resolves secrets against the user repository by hashed lookup.
type StoreResolver struct {
	users store.UserRepository
}

// NewStoreResolver returns a Resolver backed by the given user repository.
func NewStoreResolver(users store.UserRepository) *StoreResolver {
	return &StoreResolver{users: users}
}

// Resolve hashes the secret and looks it up. Unknown secrets yield
// model.ErrUnauthorized; store failures are surfaced as storage errors.
func (r *StoreResolver) Resolve(ctx context.Context, secret string) (*model.User, error) {
	if secret == "" {
		return nil, model.ErrUnauthorized
	}
	u, err := r.users.GetBySecretHash(ctx, HashSecret(secret))
	if errors.Is(err, model.ErrNotFound) {
		return nil, model.ErrUnauthorized
	}
	if err != nil {
		return nil, fmt.Errorf("resolve secret: %w", err)
	}
	return u, nil
}

// HashSecret returns the hex SHA-256 digest under which a secret is stored.
func HashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}
