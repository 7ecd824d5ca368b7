package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hirosato/lidere-backoffice/internal/common/config"
	"github.com/hirosato/lidere-backoffice/internal/domain/account"
	"github.com/hirosato/lidere-backoffice/internal/domain/contact"
	"github.com/hirosato/lidere-backoffice/internal/domain/debt"
	"github.com/hirosato/lidere-backoffice/internal/domain/events"
	"github.com/hirosato/lidere-backoffice/internal/domain/ledger"
	platformAuth "github.com/hirosato/lidere-backoffice/internal/platform/auth"
	dynamoClient "github.com/hirosato/lidere-backoffice/internal/platform/dynamodb/client"
	dynamodbRepository "github.com/hirosato/lidere-backoffice/internal/platform/dynamodb/repository"
	"github.com/hirosato/lidere-backoffice/internal/platform/rabbitmq"
	"github.com/hirosato/lidere-backoffice/internal/platform/secrets"
)

// App holds the services shared by every entry point
type App struct {
	Accounts *account.Service
	Ledger   *ledger.Service
	Debts    *debt.Service
	Contacts *contact.Service
	Importer *contact.Importer

	closers []func()
}

// New connects to the table, the identity service and the broker and builds
// the domain services on top of them
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := dynamoClient.NewDynamoDBClient(ctx, cfg.AWSRegion, cfg.DynamoDBEndpoint, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize DynamoDB client: %w", err)
	}
	repos := dynamodbRepository.NewFactory(db, cfg.DynamoDBTableName, logger)

	a := &App{}

	invalidator, err := a.newInvalidator(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	provisioner, err := platformAuth.NewProvisioner(ctx, cfg, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	ledgerRepo := repos.LedgerRepository()
	contactRepo := repos.ContactRepository()

	a.Accounts = account.NewService(repos.AccountRepository(), ledgerRepo, invalidator, logger)
	a.Ledger = ledger.NewService(ledgerRepo, invalidator, logger)
	a.Debts = debt.NewService(repos.DebtRepository(), invalidator, logger)
	a.Contacts = contact.NewService(contactRepo, invalidator, logger)
	a.Importer = contact.NewImporter(contactRepo, repos.FormationRepository(), provisioner, invalidator, logger)
	return a, nil
}

// newInvalidator publishes to the broker when one is configured and falls
// back to logging otherwise
func (a *App) newInvalidator(ctx context.Context, cfg *config.Config, logger *slog.Logger) (events.Invalidator, error) {
	if !cfg.HasBroker() {
		return events.NewLogInvalidator(logger), nil
	}

	amqpURL := cfg.AMQPURL
	if cfg.AMQPURLSecretID != "" {
		resolver, err := secrets.NewAWSResolver(ctx, cfg.AWSRegion, logger)
		if err != nil {
			return nil, err
		}
		amqpURL, err = resolver.ResolveOr(ctx, cfg.AMQPURLSecretID, cfg.AMQPURL)
		if err != nil {
			return nil, err
		}
	}

	publisher, err := rabbitmq.Dial(amqpURL, cfg.InvalidationExchange, logger)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, publisher.Close)
	return publisher, nil
}

// Close releases broker connections
func (a *App) Close() {
	for _, c := range a.closers {
		c()
	}
}
