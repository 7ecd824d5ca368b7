package ledger

import (
	"context"
)

// Repository defines the interface for ledger entry data operations
type Repository interface {
	// Create a new independent entry
	CreateEntry(ctx context.Context, entry *Entry) error

	// Get an entry by ID
	GetEntry(ctx context.Context, entryID string) (*Entry, error)

	// Get entries by criteria
	ListEntries(ctx context.Context, filter *ListEntriesRequest) ([]*Entry, error)

	// Get the entries spawned by an account
	FindBySourceAccount(ctx context.Context, accountID string) ([]*Entry, error)

	// Delete an entry
	DeleteEntry(ctx context.Context, entryID string) error
}
