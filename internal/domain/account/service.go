package account

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hirosato/lidere-backoffice/internal/common/utils"
	"github.com/hirosato/lidere-backoffice/internal/domain/errors"
	"github.com/hirosato/lidere-backoffice/internal/domain/events"
	"github.com/hirosato/lidere-backoffice/internal/domain/ledger"
)

// Service provides account-related business logic
type Service struct {
	repo        Repository
	ledgerRepo  ledger.Repository
	invalidator events.Invalidator
	logger      *slog.Logger
	now         func() time.Time
}

// NewService creates a new account service
func NewService(repo Repository, ledgerRepo ledger.Repository, invalidator events.Invalidator, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		ledgerRepo:  ledgerRepo,
		invalidator: invalidator,
		logger:      logger,
		now:         time.Now,
	}
}

// CreateAccount creates a new pending account
func (s *Service) CreateAccount(ctx context.Context, req *CreateAccountRequest) (*Account, error) {
	if !req.Kind.Valid() {
		return nil, errors.NewValidationError("kind must be payable or receivable")
	}
	if err := utils.ValidateRequiredString(req.Description, "description"); err != nil {
		return nil, err
	}
	if err := utils.ValidatePositiveAmount(req.Amount, "amount"); err != nil {
		return nil, err
	}
	if err := utils.ValidateCompanyID(req.CompanyID); err != nil {
		return nil, err
	}
	dueDate, err := utils.ParseDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	var recurrence *Recurrence
	if req.IsRecurring {
		if req.Recurrence == nil || !req.Recurrence.Frequency.Valid() {
			return nil, errors.NewValidationError("recurring accounts need a frequency of weekly, monthly or yearly")
		}
		recurrence = &Recurrence{Frequency: req.Recurrence.Frequency}
		if req.Recurrence.EndDate != "" {
			end, err := utils.ParseDate(req.Recurrence.EndDate)
			if err != nil {
				return nil, err
			}
			if end.Before(dueDate) {
				return nil, errors.NewValidationError("recurrence end date is before the due date")
			}
			recurrence.EndDate = &end
		}
	}

	account := &Account{
		ID:          ulid.Make().String(),
		Kind:        req.Kind,
		Description: strings.TrimSpace(req.Description),
		Amount:      req.Amount,
		CompanyID:   req.CompanyID,
		CompanyName: req.CompanyName,
		Status:      Pending,
		Category:    req.Category,
		IsRecurring: req.IsRecurring,
		Notes:       req.Notes,
		DueDate:     dueDate,
		CreatedAt:   s.now().UTC(),
		Recurrence:  recurrence,
	}

	if err := s.repo.CreateAccount(ctx, account); err != nil {
		return nil, err
	}

	events.Notify(ctx, s.invalidator, s.logger, events.ViewAccounts)
	return account, nil
}

// GetAccount retrieves an account by ID
func (s *Service) GetAccount(ctx context.Context, accountID string) (*Account, error) {
	return s.repo.GetAccount(ctx, accountID)
}

// ListAccounts retrieves accounts based on criteria
func (s *Service) ListAccounts(ctx context.Context, req *ListAccountsRequest) ([]*Account, error) {
	if req == nil {
		req = &ListAccountsRequest{}
	}
	return s.repo.ListAccounts(ctx, req)
}

// DeleteAccount deletes a pending account. A paid account owns its ledger
// entry and must be reverted first.
func (s *Service) DeleteAccount(ctx context.Context, accountID string) error {
	account, err := s.repo.GetAccount(ctx, accountID)
	if err != nil {
		return err
	}
	if account.IsPaid() {
		return errors.NewInvalidStateError("cannot delete a paid account; mark it as pending first")
	}

	if err := s.repo.DeleteAccount(ctx, accountID); err != nil {
		return err
	}

	events.Notify(ctx, s.invalidator, s.logger, events.ViewAccounts)
	return nil
}

// MarkAsPaid settles a pending account and records its ledger entry. The
// entry and the status change commit together or not at all.
func (s *Service) MarkAsPaid(ctx context.Context, accountID string) (*TransitionResult, error) {
	account, err := s.repo.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.IsPaid() {
		return &TransitionResult{Outcome: AlreadyPaid, Account: account}, nil
	}

	now := s.now().UTC()
	entry := &ledger.Entry{
		ID:              ulid.Make().String(),
		Description:     account.Description,
		Amount:          account.Amount,
		Type:            account.Kind.EntryType(),
		Date:            utils.Today(now),
		Category:        account.Category,
		CompanyID:       account.CompanyID,
		CompanyName:     account.CompanyName,
		CreatedAt:       now,
		SourceAccountID: account.ID,
	}

	paid := account.Clone()
	paid.Status = Paid
	paid.PaidAt = &now
	paid.LedgerEntryID = entry.ID

	if err := s.repo.SettleAccount(ctx, paid, entry); err != nil {
		if errors.HasCode(err, errors.CodeInvalidState) {
			// another request settled it first
			return s.settledElsewhere(ctx, accountID, Paid, err)
		}
		return nil, err
	}

	s.logger.InfoContext(ctx, "account marked as paid", "accountId", account.ID, "ledgerEntryId", entry.ID)
	events.Notify(ctx, s.invalidator, s.logger, events.ViewAccounts, events.ViewLedger)

	return &TransitionResult{Outcome: Applied, Account: paid, LedgerEntry: entry}, nil
}

// MarkAsPending reverts a paid account and removes the ledger entry it owns.
func (s *Service) MarkAsPending(ctx context.Context, accountID string) (*TransitionResult, error) {
	account, err := s.repo.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !account.IsPaid() {
		return &TransitionResult{Outcome: AlreadyPending, Account: account}, nil
	}

	entry, err := s.linkedEntry(ctx, account)
	if err != nil {
		return nil, err
	}

	pending := account.Clone()
	pending.Status = Pending
	pending.PaidAt = nil
	pending.LedgerEntryID = ""

	if err := s.repo.ReopenAccount(ctx, pending, entry); err != nil {
		if errors.HasCode(err, errors.CodeInvalidState) {
			return s.settledElsewhere(ctx, accountID, Pending, err)
		}
		return nil, err
	}

	s.logger.InfoContext(ctx, "account marked as pending", "accountId", account.ID)
	events.Notify(ctx, s.invalidator, s.logger, events.ViewAccounts, events.ViewLedger)

	return &TransitionResult{Outcome: Applied, Account: pending, LedgerEntry: entry}, nil
}

// linkedEntry finds the ledger entry a paid account owns, or nil when there
// is none. The id recorded at settlement is read by key; accounts paid before
// the id was recorded are looked up through the source-account index.
func (s *Service) linkedEntry(ctx context.Context, account *Account) (*ledger.Entry, error) {
	if account.LedgerEntryID != "" {
		entry, err := s.ledgerRepo.GetEntry(ctx, account.LedgerEntryID)
		switch {
		case errors.HasCode(err, errors.CodeNotFound):
			s.logger.WarnContext(ctx, "linked ledger entry no longer exists",
				"accountId", account.ID, "ledgerEntryId", account.LedgerEntryID)
			return nil, nil
		case err != nil:
			return nil, err
		case entry.SourceAccountID != account.ID:
			s.logger.WarnContext(ctx, "linked ledger entry belongs to another account",
				"accountId", account.ID, "ledgerEntryId", entry.ID, "sourceAccountId", entry.SourceAccountID)
			return nil, nil
		}
		return entry, nil
	}

	linked, err := s.ledgerRepo.FindBySourceAccount(ctx, account.ID)
	if err != nil {
		return nil, err
	}
	switch len(linked) {
	case 0:
		s.logger.WarnContext(ctx, "paid account has no linked ledger entry", "accountId", account.ID)
		return nil, nil
	case 1:
		return linked[0], nil
	}
	ids := make([]string, len(linked))
	for i, e := range linked {
		ids[i] = e.ID
	}
	s.logger.WarnContext(ctx, "paid account has more than one linked ledger entry, removing only the first",
		"accountId", account.ID, "ledgerEntryIds", ids)
	return linked[0], nil
}

// settledElsewhere resolves a lost compare-and-set. When the stored account
// already has the target status the request is reported as the soft outcome.
func (s *Service) settledElsewhere(ctx context.Context, accountID string, target Status, cause error) (*TransitionResult, error) {
	current, err := s.repo.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if current.Status != target {
		return nil, cause
	}
	outcome := AlreadyPaid
	if target == Pending {
		outcome = AlreadyPending
	}
	return &TransitionResult{Outcome: outcome, Account: current}, nil
}
