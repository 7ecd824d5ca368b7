package contact

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hirosato/lidere-backoffice/internal/common/utils"
	"github.com/hirosato/lidere-backoffice/internal/domain/events"
)

// Service provides contact-related business logic
type Service struct {
	repo        Repository
	invalidator events.Invalidator
	logger      *slog.Logger
	now         func() time.Time
}

// NewService creates a new contact service
func NewService(repo Repository, invalidator events.Invalidator, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		invalidator: invalidator,
		logger:      logger,
		now:         time.Now,
	}
}

// CreateContact creates a single contact without student access
func (s *Service) CreateContact(ctx context.Context, req *CreateContactRequest) (*Contact, error) {
	if err := utils.ValidateRequiredString(req.Name, "name"); err != nil {
		return nil, err
	}
	if err := utils.ValidateRequiredString(req.Phone, "phone"); err != nil {
		return nil, err
	}
	if req.Email != "" {
		if err := utils.ValidateEmail(req.Email); err != nil {
			return nil, err
		}
	}

	contact := &Contact{
		ID:        ulid.Make().String(),
		Name:      strings.TrimSpace(req.Name),
		Phone:     strings.TrimSpace(req.Phone),
		Email:     strings.TrimSpace(req.Email),
		Company:   strings.TrimSpace(req.Company),
		Tags:      SplitValues(strings.Join(req.Tags, ",")),
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.CreateContact(ctx, contact); err != nil {
		return nil, err
	}

	events.Notify(ctx, s.invalidator, s.logger, events.ViewContacts)
	return contact, nil
}

// GetContact retrieves a contact by ID
func (s *Service) GetContact(ctx context.Context, contactID string) (*Contact, error) {
	return s.repo.GetContact(ctx, contactID)
}

// ListContacts retrieves contacts based on criteria
func (s *Service) ListContacts(ctx context.Context, req *ListContactsRequest) ([]*Contact, error) {
	if req == nil {
		req = &ListContactsRequest{}
	}
	return s.repo.ListContacts(ctx, req)
}
