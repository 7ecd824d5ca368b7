package debt

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hirosato/lidere-backoffice/internal/domain/account"
)

// Status of a debt. Transitions only move forward: open, negotiated, paid.
type Status string

const (
	Open       Status = "open"
	Negotiated Status = "negotiated"
	Paid       Status = "paid"
)

// MaxInstallments bounds a negotiation so the installments and the debt
// update fit in a single atomic batch.
const MaxInstallments = 99

// InstallmentCategory is the category given to generated installment accounts
const InstallmentCategory = "Dívidas"

// NegotiationDetails records the agreed installment plan
type NegotiationDetails struct {
	NumberOfInstallments int             `json:"numberOfInstallments"`
	InstallmentAmount    decimal.Decimal `json:"installmentAmount"`
	FirstInstallmentDate time.Time       `json:"firstInstallmentDate"`
	LinkedAccountIDs     []string        `json:"linkedAccountIds"` // in installment order
}

// Debt represents an obligation that can be negotiated into installments
type Debt struct {
	ID                 string              `json:"id"`
	Description        string              `json:"description"`
	Creditor           string              `json:"creditor"`
	OriginalAmount     decimal.Decimal     `json:"originalAmount"`
	InterestRate       decimal.Decimal     `json:"interestRate"`
	CompanyID          string              `json:"companyId"`
	CompanyName        string              `json:"companyName"`
	Status             Status              `json:"status"`
	CreatedAt          time.Time           `json:"createdAt"`
	NegotiationDetails *NegotiationDetails `json:"negotiationDetails,omitempty"`
}

// CreateDebtRequest represents the request to register a debt
type CreateDebtRequest struct {
	Description    string          `json:"description"`
	Creditor       string          `json:"creditor"`
	OriginalAmount decimal.Decimal `json:"originalAmount"`
	InterestRate   decimal.Decimal `json:"interestRate"`
	CompanyID      string          `json:"companyId"`
	CompanyName    string          `json:"companyName"`
}

// NegotiateRequest is the installment plan to apply to an open debt
type NegotiateRequest struct {
	NumberOfInstallments int             `json:"numberOfInstallments"`
	InstallmentAmount    decimal.Decimal `json:"installmentAmount"`
	FirstInstallmentDate string          `json:"firstInstallmentDate"` //YYYY-MM-DD
}

// NegotiationResult is the negotiated debt and its generated installments
type NegotiationResult struct {
	Debt         *Debt              `json:"debt"`
	Installments []*account.Account `json:"installments"`
}

// ListDebtsRequest filters debts. Empty fields match everything.
type ListDebtsRequest struct {
	CompanyID string `json:"companyId,omitempty"`
	Status    Status `json:"status,omitempty"`
}
