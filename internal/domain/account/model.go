package account

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hirosato/lidere-backoffice/internal/domain/ledger"
)

// Kind tells whether the company owes or is owed the amount
type Kind string

const (
	// Payable is an amount the company owes
	Payable Kind = "payable"
	// Receivable is an amount owed to the company
	Receivable Kind = "receivable"
)

// Valid reports whether k is a known kind
func (k Kind) Valid() bool {
	return k == Payable || k == Receivable
}

// EntryType is the ledger direction produced when an account of this kind is settled
func (k Kind) EntryType() ledger.EntryType {
	if k == Receivable {
		return ledger.Income
	}
	return ledger.Expense
}

// Status represents the settlement state of an account
type Status string

const (
	// Pending accounts are not yet settled
	Pending Status = "pending"
	// Paid accounts are settled and own exactly one ledger entry
	Paid Status = "paid"
)

// Frequency of a recurring account
type Frequency string

const (
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
	Yearly  Frequency = "yearly"
)

// Valid reports whether f is a known frequency
func (f Frequency) Valid() bool {
	switch f {
	case Weekly, Monthly, Yearly:
		return true
	}
	return false
}

// Recurrence describes how a recurring account repeats
type Recurrence struct {
	Frequency Frequency  `json:"frequency"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

// Account represents a payable or receivable obligation
type Account struct {
	ID          string          `json:"id"`
	Kind        Kind            `json:"kind"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	CompanyID   string          `json:"companyId"`
	CompanyName string          `json:"companyName"`
	Status      Status          `json:"status"`
	Category    string          `json:"category"`
	IsRecurring bool            `json:"isRecurring"`
	Notes       string          `json:"notes,omitempty"`
	DueDate     time.Time       `json:"dueDate"`
	CreatedAt   time.Time       `json:"createdAt"`
	PaidAt      *time.Time      `json:"paidAt,omitempty"` // set iff Status == Paid
	Recurrence  *Recurrence     `json:"recurrence,omitempty"`

	// DebtID is set on installments generated by a debt negotiation
	DebtID string `json:"debtId,omitempty"`

	// LedgerEntryID names the entry written when the account was paid
	LedgerEntryID string `json:"ledgerEntryId,omitempty"`
}

// IsPaid reports whether the account is settled
func (a *Account) IsPaid() bool {
	return a.Status == Paid
}

// Clone returns a copy of the account that can be mutated independently
func (a *Account) Clone() *Account {
	c := *a
	if a.PaidAt != nil {
		paidAt := *a.PaidAt
		c.PaidAt = &paidAt
	}
	if a.Recurrence != nil {
		r := *a.Recurrence
		c.Recurrence = &r
	}
	return &c
}

// Outcome is the result of a status transition request
type Outcome string

const (
	// Applied means the transition was committed
	Applied Outcome = "applied"
	// AlreadyPaid means markAsPaid found the account already settled
	AlreadyPaid Outcome = "already_paid"
	// AlreadyPending means markAsPending found the account already pending
	AlreadyPending Outcome = "already_pending"
)

// TransitionResult reports the outcome of MarkAsPaid or MarkAsPending. Soft
// outcomes are returned with a nil error.
type TransitionResult struct {
	Outcome     Outcome       `json:"outcome"`
	Account     *Account      `json:"account"`
	LedgerEntry *ledger.Entry `json:"ledgerEntry,omitempty"`
}

// RecurrenceRequest is the wire form of Recurrence
type RecurrenceRequest struct {
	Frequency Frequency `json:"frequency"`
	EndDate   string    `json:"endDate,omitempty"` //YYYY-MM-DD
}

// CreateAccountRequest represents the request to create a new account
type CreateAccountRequest struct {
	Kind        Kind               `json:"kind"`
	Description string             `json:"description"`
	Amount      decimal.Decimal    `json:"amount"`
	CompanyID   string             `json:"companyId"`
	CompanyName string             `json:"companyName"`
	Category    string             `json:"category"`
	DueDate     string             `json:"dueDate"` //YYYY-MM-DD
	Notes       string             `json:"notes,omitempty"`
	IsRecurring bool               `json:"isRecurring"`
	Recurrence  *RecurrenceRequest `json:"recurrence,omitempty"`
}

// ListAccountsRequest filters accounts. Empty fields match everything.
type ListAccountsRequest struct {
	CompanyID string `json:"companyId,omitempty"`
	Kind      Kind   `json:"kind,omitempty"`
	Status    Status `json:"status,omitempty"`
	DebtID    string `json:"debtId,omitempty"`
}
