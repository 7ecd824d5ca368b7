package secrets

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-secretsmanager-caching-go/v2/secretcache"
)

// Cache is the part of secretcache.Cache the resolver reads through
type Cache interface {
	GetSecretStringWithContext(ctx context.Context, secretID string) (string, error)
}

// Resolver reads secret strings from Secrets Manager through a local cache
type Resolver struct {
	cache Cache
	log   *slog.Logger
}

// NewResolver creates a resolver over an existing cache
func NewResolver(cache Cache, log *slog.Logger) *Resolver {
	return &Resolver{cache: cache, log: log}
}

// NewAWSResolver builds a Secrets Manager client for region and wraps it in
// a secretcache.Cache
func NewAWSResolver(ctx context.Context, region string, log *slog.Logger) (*Resolver, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	client := secretsmanager.NewFromConfig(awsCfg)

	cache, err := secretcache.New(func(c *secretcache.Cache) {
		c.Client = client
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize secret cache: %w", err)
	}
	return NewResolver(cache, log), nil
}

// Resolve returns the secret string stored under secretID
func (r *Resolver) Resolve(ctx context.Context, secretID string) (string, error) {
	value, err := r.cache.GetSecretStringWithContext(ctx, secretID)
	if err != nil {
		return "", fmt.Errorf("failed to read secret %s: %w", secretID, err)
	}
	if value == "" {
		return "", fmt.Errorf("secret %s is empty", secretID)
	}
	r.log.DebugContext(ctx, "secret resolved", "secretId", secretID)
	return value, nil
}

// ResolveOr returns fallback when secretID is empty, otherwise the secret
func (r *Resolver) ResolveOr(ctx context.Context, secretID, fallback string) (string, error) {
	if secretID == "" {
		return fallback, nil
	}
	return r.Resolve(ctx, secretID)
}
