package debt

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"

	"github.com/hirosato/lidere-backoffice/internal/common/utils"
	"github.com/hirosato/lidere-backoffice/internal/domain/account"
	"github.com/hirosato/lidere-backoffice/internal/domain/errors"
	"github.com/hirosato/lidere-backoffice/internal/domain/events"
)

// Service provides debt-related business logic
type Service struct {
	repo        Repository
	invalidator events.Invalidator
	logger      *slog.Logger
	now         func() time.Time
}

// NewService creates a new debt service
func NewService(repo Repository, invalidator events.Invalidator, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		invalidator: invalidator,
		logger:      logger,
		now:         time.Now,
	}
}

// CreateDebt registers an open debt
func (s *Service) CreateDebt(ctx context.Context, req *CreateDebtRequest) (*Debt, error) {
	if err := utils.ValidateRequiredString(req.Description, "description"); err != nil {
		return nil, err
	}
	if err := utils.ValidateRequiredString(req.Creditor, "creditor"); err != nil {
		return nil, err
	}
	if err := utils.ValidatePositiveAmount(req.OriginalAmount, "originalAmount"); err != nil {
		return nil, err
	}
	if req.InterestRate.IsNegative() {
		return nil, errors.NewValidationError("interestRate cannot be negative")
	}
	if err := utils.ValidateCompanyID(req.CompanyID); err != nil {
		return nil, err
	}

	debt := &Debt{
		ID:             ulid.Make().String(),
		Description:    strings.TrimSpace(req.Description),
		Creditor:       strings.TrimSpace(req.Creditor),
		OriginalAmount: req.OriginalAmount,
		InterestRate:   req.InterestRate,
		CompanyID:      req.CompanyID,
		CompanyName:    req.CompanyName,
		Status:         Open,
		CreatedAt:      s.now().UTC(),
	}

	if err := s.repo.CreateDebt(ctx, debt); err != nil {
		return nil, err
	}

	events.Notify(ctx, s.invalidator, s.logger, events.ViewDebts)
	return debt, nil
}

// GetDebt retrieves a debt by ID
func (s *Service) GetDebt(ctx context.Context, debtID string) (*Debt, error) {
	return s.repo.GetDebt(ctx, debtID)
}

// ListDebts retrieves debts based on criteria
func (s *Service) ListDebts(ctx context.Context, req *ListDebtsRequest) ([]*Debt, error) {
	if req == nil {
		req = &ListDebtsRequest{}
	}
	return s.repo.ListDebts(ctx, req)
}

// DeleteDebt deletes a debt that has not been negotiated
func (s *Service) DeleteDebt(ctx context.Context, debtID string) error {
	debt, err := s.repo.GetDebt(ctx, debtID)
	if err != nil {
		return err
	}
	if debt.Status != Open {
		return errors.NewInvalidStateError(fmt.Sprintf("cannot delete a %s debt", debt.Status))
	}

	if err := s.repo.DeleteDebt(ctx, debtID); err != nil {
		return err
	}

	events.Notify(ctx, s.invalidator, s.logger, events.ViewDebts)
	return nil
}

// Negotiate turns an open debt into a series of monthly payable installments.
// The installments and the debt update commit together or not at all.
func (s *Service) Negotiate(ctx context.Context, debtID string, req NegotiateRequest) (*NegotiationResult, error) {
	if req.NumberOfInstallments < 1 || req.NumberOfInstallments > MaxInstallments {
		return nil, errors.NewValidationError(fmt.Sprintf("numberOfInstallments must be between 1 and %d", MaxInstallments))
	}
	if err := utils.ValidatePositiveAmount(req.InstallmentAmount, "installmentAmount"); err != nil {
		return nil, err
	}
	firstDate, err := utils.ParseDate(req.FirstInstallmentDate)
	if err != nil {
		return nil, err
	}

	debt, err := s.repo.GetDebt(ctx, debtID)
	if err != nil {
		return nil, err
	}
	if debt.Status != Open {
		return nil, errors.NewInvalidStateError(fmt.Sprintf("debt is already %s", debt.Status)).
			WithDetail("status", string(debt.Status))
	}

	now := s.now().UTC()
	installments := BuildInstallments(debt, req.NumberOfInstallments, req.InstallmentAmount, firstDate, now)

	ids := make([]string, len(installments))
	for i, inst := range installments {
		ids[i] = inst.ID
	}

	negotiated := *debt
	negotiated.Status = Negotiated
	negotiated.NegotiationDetails = &NegotiationDetails{
		NumberOfInstallments: req.NumberOfInstallments,
		InstallmentAmount:    req.InstallmentAmount,
		FirstInstallmentDate: firstDate,
		LinkedAccountIDs:     ids,
	}

	if err := s.repo.SaveNegotiation(ctx, &negotiated, installments); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "debt negotiated",
		"debtId", debt.ID, "installments", req.NumberOfInstallments)
	events.Notify(ctx, s.invalidator, s.logger, events.ViewDebts, events.ViewAccounts)

	return &NegotiationResult{Debt: &negotiated, Installments: installments}, nil
}

// MarkAsPaid closes a negotiated debt. The negotiation details are kept.
func (s *Service) MarkAsPaid(ctx context.Context, debtID string) (*Debt, error) {
	debt, err := s.repo.GetDebt(ctx, debtID)
	if err != nil {
		return nil, err
	}
	if debt.Status != Negotiated {
		return nil, errors.NewInvalidStateError(fmt.Sprintf("only negotiated debts can be paid, debt is %s", debt.Status))
	}

	paid := *debt
	paid.Status = Paid
	if err := s.repo.MarkPaid(ctx, &paid); err != nil {
		return nil, err
	}

	events.Notify(ctx, s.invalidator, s.logger, events.ViewDebts)
	return &paid, nil
}

// BuildInstallments generates the pending payable accounts of a negotiation.
// Due dates are calendar months after firstDate, each computed from
// firstDate so a clamped month does not shift the following ones.
func BuildInstallments(debt *Debt, n int, amount decimal.Decimal, firstDate, now time.Time) []*account.Account {
	installments := make([]*account.Account, n)
	for i := 0; i < n; i++ {
		installments[i] = &account.Account{
			ID:          ulid.Make().String(),
			Kind:        account.Payable,
			Description: fmt.Sprintf("%s - Parcela %d/%d", debt.Description, i+1, n),
			Amount:      amount,
			CompanyID:   debt.CompanyID,
			CompanyName: debt.CompanyName,
			Status:      account.Pending,
			Category:    InstallmentCategory,
			Notes:       fmt.Sprintf("Negociação da dívida %s", debt.ID),
			DueDate:     utils.AddCalendarMonths(firstDate, i),
			CreatedAt:   now,
			DebtID:      debt.ID,
		}
	}
	return installments
}
