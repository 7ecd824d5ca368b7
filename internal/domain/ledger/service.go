package ledger

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hirosato/lidere-backoffice/internal/common/utils"
	"github.com/hirosato/lidere-backoffice/internal/domain/errors"
	"github.com/hirosato/lidere-backoffice/internal/domain/events"
)

// Service provides ledger entry-related business logic
type Service struct {
	repo        Repository
	invalidator events.Invalidator
	logger      *slog.Logger
	now         func() time.Time
}

// NewService creates a new ledger service
func NewService(repo Repository, invalidator events.Invalidator, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		invalidator: invalidator,
		logger:      logger,
		now:         time.Now,
	}
}

// CreateEntry records a manual entry that no account owns
func (s *Service) CreateEntry(ctx context.Context, req *CreateEntryRequest) (*Entry, error) {
	if err := utils.ValidateRequiredString(req.Description, "description"); err != nil {
		return nil, err
	}
	if err := utils.ValidatePositiveAmount(req.Amount, "amount"); err != nil {
		return nil, err
	}
	if !req.Type.Valid() {
		return nil, errors.NewValidationError("type must be income or expense")
	}
	if err := utils.ValidateCompanyID(req.CompanyID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	date := utils.Today(now)
	if req.Date != "" {
		d, err := utils.ParseDate(req.Date)
		if err != nil {
			return nil, err
		}
		date = d
	}

	entry := &Entry{
		ID:          ulid.Make().String(),
		Description: strings.TrimSpace(req.Description),
		Amount:      req.Amount,
		Type:        req.Type,
		Date:        date,
		Category:    req.Category,
		CompanyID:   req.CompanyID,
		CompanyName: req.CompanyName,
		CreatedAt:   now,
	}

	if err := s.repo.CreateEntry(ctx, entry); err != nil {
		return nil, err
	}

	events.Notify(ctx, s.invalidator, s.logger, events.ViewLedger)
	return entry, nil
}

// GetEntry retrieves an entry by ID
func (s *Service) GetEntry(ctx context.Context, entryID string) (*Entry, error) {
	return s.repo.GetEntry(ctx, entryID)
}

// ListEntries retrieves entries based on criteria
func (s *Service) ListEntries(ctx context.Context, req *ListEntriesRequest) ([]*Entry, error) {
	if req == nil {
		req = &ListEntriesRequest{}
	}
	return s.repo.ListEntries(ctx, req)
}

// DeleteEntry deletes an independent entry. Entries owned by an account are
// removed only by reverting that account to pending.
func (s *Service) DeleteEntry(ctx context.Context, entryID string) error {
	entry, err := s.repo.GetEntry(ctx, entryID)
	if err != nil {
		return err
	}
	if entry.IsOwned() {
		return errors.NewInvalidStateError("ledger entry is owned by an account; mark the account as pending instead").
			WithDetail("sourceAccountId", entry.SourceAccountID)
	}

	if err := s.repo.DeleteEntry(ctx, entryID); err != nil {
		return err
	}

	events.Notify(ctx, s.invalidator, s.logger, events.ViewLedger)
	return nil
}
