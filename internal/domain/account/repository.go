package account

import (
	"context"

	"github.com/hirosato/lidere-backoffice/internal/domain/ledger"
)

// Repository defines the interface for account data operations
type Repository interface {
	// Create a new account
	CreateAccount(ctx context.Context, account *Account) error

	// Get an account by ID
	GetAccount(ctx context.Context, accountID string) (*Account, error)

	// Get accounts by criteria
	ListAccounts(ctx context.Context, filter *ListAccountsRequest) ([]*Account, error)

	// Delete a pending account
	DeleteAccount(ctx context.Context, accountID string) error

	// SettleAccount inserts entry and stores account as paid in one atomic
	// batch. It fails with INVALID_STATE when the stored account is no longer
	// pending, and nothing is written.
	SettleAccount(ctx context.Context, account *Account, entry *ledger.Entry) error

	// ReopenAccount deletes entry (when not nil) and stores account as
	// pending in one atomic batch. It fails with INVALID_STATE when the stored
	// account is no longer paid, and nothing is written.
	ReopenAccount(ctx context.Context, account *Account, entry *ledger.Entry) error
}
