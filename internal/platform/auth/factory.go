package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/oklog/ulid/v2"

	"github.com/hirosato/lidere-backoffice/internal/common/config"
	"github.com/hirosato/lidere-backoffice/internal/domain/auth"
	"github.com/hirosato/lidere-backoffice/internal/platform/cognito"
)

// ProviderType represents the type of identity provider
type ProviderType string

const (
	// ProviderCognito provisions students in the Cognito user pool
	ProviderCognito ProviderType = "cognito"
	// ProviderLocal fakes identities for local runs against an emulator
	ProviderLocal ProviderType = "local"
)

// NewProvisioner creates the student provisioner selected by configuration
func NewProvisioner(ctx context.Context, cfg *config.Config, log *slog.Logger) (auth.Provisioner, error) {
	providerType := ProviderCognito
	if cfg.IdentityProvider != "" {
		providerType = ProviderType(cfg.IdentityProvider)
	}

	switch providerType {
	case ProviderCognito:
		client, err := cognito.NewClient(ctx, cfg.AWSRegion)
		if err != nil {
			return nil, err
		}
		return cognito.NewProvisioner(client, cfg.UserPoolID, cfg.StudentGroupName, log), nil
	case ProviderLocal:
		if cfg.IsProd() {
			return nil, fmt.Errorf("identity provider %q is not allowed in prod", providerType)
		}
		return NewLocalProvisioner(log), nil
	default:
		return nil, fmt.Errorf("unknown identity provider %q", providerType)
	}
}

// LocalProvisioner issues random user ids and only logs
type LocalProvisioner struct {
	log *slog.Logger
}

// NewLocalProvisioner creates a new local provisioner
func NewLocalProvisioner(log *slog.Logger) *LocalProvisioner {
	return &LocalProvisioner{log: log}
}

// CreateIdentity returns a fresh identity without contacting any service
func (p *LocalProvisioner) CreateIdentity(ctx context.Context, email, name, temporaryPassword string) (*auth.Identity, error) {
	identity := &auth.Identity{UserID: "local-" + ulid.Make().String(), Email: email}
	p.log.InfoContext(ctx, "local identity created", "userId", identity.UserID)
	return identity, nil
}
