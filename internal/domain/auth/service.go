package auth

import (
	"context"
)

// Identity is a login created in the managed identity service
type Identity struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// Provisioner creates student logins. It is technology-agnostic so the
// import flow can be tested without an identity service.
type Provisioner interface {
	// CreateIdentity registers email with a temporary password that must be
	// changed on first sign-in. It returns ErrEmailInUse when the email
	// already has an identity.
	CreateIdentity(ctx context.Context, email, name, temporaryPassword string) (*Identity, error)
}
