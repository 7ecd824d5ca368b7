package debt

import (
	"context"

	"github.com/hirosato/lidere-backoffice/internal/domain/account"
)

// Repository defines the interface for debt data operations
type Repository interface {
	// Create a new debt
	CreateDebt(ctx context.Context, debt *Debt) error

	// Get a debt by ID
	GetDebt(ctx context.Context, debtID string) (*Debt, error)

	// Get debts by criteria
	ListDebts(ctx context.Context, filter *ListDebtsRequest) ([]*Debt, error)

	// Delete an open debt
	DeleteDebt(ctx context.Context, debtID string) error

	// SaveNegotiation creates every installment and stores debt as negotiated
	// in one atomic batch. It fails with INVALID_STATE when the stored debt
	// is no longer open, and nothing is written.
	SaveNegotiation(ctx context.Context, debt *Debt, installments []*account.Account) error

	// MarkPaid stores debt as paid. It fails with INVALID_STATE when the
	// stored debt is not negotiated.
	MarkPaid(ctx context.Context, debt *Debt) error
}
