package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType is the direction of a ledger entry
type EntryType string

const (
	// Income records money received
	Income EntryType = "income"
	// Expense records money paid out
	Expense EntryType = "expense"
)

// Valid reports whether t is a known entry type
func (t EntryType) Valid() bool {
	return t == Income || t == Expense
}

// Entry represents a realized financial record
type Entry struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        EntryType       `json:"type"`
	Date        time.Time       `json:"date"`
	Category    string          `json:"category"`
	CompanyID   string          `json:"companyId"`
	CompanyName string          `json:"companyName"`
	CreatedAt   time.Time       `json:"createdAt"`

	// SourceAccountID is set when the entry was spawned by an account
	// settlement. Such an entry is owned by that account.
	SourceAccountID string `json:"sourceAccountId,omitempty"`
}

// IsOwned reports whether the entry belongs to an account
func (e *Entry) IsOwned() bool {
	return e.SourceAccountID != ""
}

// CreateEntryRequest represents the data needed to record a manual entry
type CreateEntryRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        EntryType       `json:"type"`
	Date        string          `json:"date"` //YYYY-MM-DD
	Category    string          `json:"category"`
	CompanyID   string          `json:"companyId"`
	CompanyName string          `json:"companyName"`
}

// ListEntriesRequest filters ledger entries. Empty fields match everything.
type ListEntriesRequest struct {
	CompanyID string    `json:"companyId,omitempty"`
	Type      EntryType `json:"type,omitempty"`
}
