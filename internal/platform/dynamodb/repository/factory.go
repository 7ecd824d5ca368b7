package repository

import (
	"log/slog"

	"github.com/hirosato/lidere-backoffice/internal/platform/dynamodb/client"
)

// Factory creates repository instances that share one table
type Factory struct {
	client    client.Client
	tableName string
	logger    *slog.Logger
}

// NewFactory creates a new repository factory
func NewFactory(client client.Client, tableName string, logger *slog.Logger) *Factory {
	return &Factory{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// AccountRepository returns the DynamoDB account repository
func (f *Factory) AccountRepository() *DynamoDBAccountRepository {
	return NewDynamoDBAccountRepository(f.client, f.tableName, f.logger)
}

// LedgerRepository returns the DynamoDB ledger repository
func (f *Factory) LedgerRepository() *DynamoDBLedgerRepository {
	return NewDynamoDBLedgerRepository(f.client, f.tableName, f.logger)
}

// DebtRepository returns the DynamoDB debt repository
func (f *Factory) DebtRepository() *DynamoDBDebtRepository {
	return NewDynamoDBDebtRepository(f.client, f.tableName, f.logger)
}

// ContactRepository returns the DynamoDB contact repository
func (f *Factory) ContactRepository() *DynamoDBContactRepository {
	return NewDynamoDBContactRepository(f.client, f.tableName, f.logger)
}

// FormationRepository returns the DynamoDB formation catalog repository
func (f *Factory) FormationRepository() *DynamoDBFormationRepository {
	return NewDynamoDBFormationRepository(f.client, f.tableName, f.logger)
}
