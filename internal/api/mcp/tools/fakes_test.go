package tools

import (
	"context"
	"io"
	"log/slog"

	"github.com/hirosato/lidere-backoffice/internal/domain/account"
	"github.com/hirosato/lidere-backoffice/internal/domain/auth"
	"github.com/hirosato/lidere-backoffice/internal/domain/contact"
	"github.com/hirosato/lidere-backoffice/internal/domain/debt"
	"github.com/hirosato/lidere-backoffice/internal/domain/errors"
	"github.com/hirosato/lidere-backoffice/internal/domain/formation"
	"github.com/hirosato/lidere-backoffice/internal/domain/ledger"
)

// memStore is an in-memory account, ledger and debt store
type memStore struct {
	accounts map[string]*account.Account
	entries  map[string]*ledger.Entry
	debts    map[string]*debt.Debt
}

func newMemStore() *memStore {
	return &memStore{
		accounts: make(map[string]*account.Account),
		entries:  make(map[string]*ledger.Entry),
		debts:    make(map[string]*debt.Debt),
	}
}

func (s *memStore) CreateAccount(ctx context.Context, a *account.Account) error {
	s.accounts[a.ID] = a.Clone()
	return nil
}

func (s *memStore) GetAccount(ctx context.Context, accountID string) (*account.Account, error) {
	a, ok := s.accounts[accountID]
	if !ok {
		return nil, errors.NewNotFoundError("account not found")
	}
	return a.Clone(), nil
}

func (s *memStore) ListAccounts(ctx context.Context, filter *account.ListAccountsRequest) ([]*account.Account, error) {
	var out []*account.Account
	for _, a := range s.accounts {
		out = append(out, a.Clone())
	}
	return out, nil
}

func (s *memStore) DeleteAccount(ctx context.Context, accountID string) error {
	delete(s.accounts, accountID)
	return nil
}

func (s *memStore) SettleAccount(ctx context.Context, a *account.Account, entry *ledger.Entry) error {
	s.entries[entry.ID] = entry
	s.accounts[a.ID] = a.Clone()
	return nil
}

func (s *memStore) ReopenAccount(ctx context.Context, a *account.Account, entry *ledger.Entry) error {
	if entry != nil {
		delete(s.entries, entry.ID)
	}
	s.accounts[a.ID] = a.Clone()
	return nil
}

func (s *memStore) CreateEntry(ctx context.Context, entry *ledger.Entry) error {
	s.entries[entry.ID] = entry
	return nil
}

func (s *memStore) GetEntry(ctx context.Context, entryID string) (*ledger.Entry, error) {
	e, ok := s.entries[entryID]
	if !ok {
		return nil, errors.NewNotFoundError("ledger entry not found")
	}
	return e, nil
}

func (s *memStore) ListEntries(ctx context.Context, filter *ledger.ListEntriesRequest) ([]*ledger.Entry, error) {
	var out []*ledger.Entry
	for _, e := range s.entries {
		out = append(out, e)
	}
	return out, nil
}

func (s *memStore) FindBySourceAccount(ctx context.Context, accountID string) ([]*ledger.Entry, error) {
	var out []*ledger.Entry
	for _, e := range s.entries {
		if e.SourceAccountID == accountID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *memStore) DeleteEntry(ctx context.Context, entryID string) error {
	delete(s.entries, entryID)
	return nil
}

func (s *memStore) CreateDebt(ctx context.Context, d *debt.Debt) error {
	stored := *d
	s.debts[d.ID] = &stored
	return nil
}

func (s *memStore) GetDebt(ctx context.Context, debtID string) (*debt.Debt, error) {
	d, ok := s.debts[debtID]
	if !ok {
		return nil, errors.NewNotFoundError("debt not found")
	}
	found := *d
	return &found, nil
}

func (s *memStore) ListDebts(ctx context.Context, filter *debt.ListDebtsRequest) ([]*debt.Debt, error) {
	var out []*debt.Debt
	for _, d := range s.debts {
		found := *d
		out = append(out, &found)
	}
	return out, nil
}

func (s *memStore) DeleteDebt(ctx context.Context, debtID string) error {
	delete(s.debts, debtID)
	return nil
}

func (s *memStore) SaveNegotiation(ctx context.Context, d *debt.Debt, installments []*account.Account) error {
	for _, inst := range installments {
		s.accounts[inst.ID] = inst.Clone()
	}
	stored := *d
	s.debts[d.ID] = &stored
	return nil
}

func (s *memStore) MarkPaid(ctx context.Context, d *debt.Debt) error {
	stored := *d
	s.debts[d.ID] = &stored
	return nil
}

// memContacts is an in-memory contact store with an empty formation catalog
type memContacts struct {
	contacts map[string]*contact.Contact
}

func (s *memContacts) CreateContact(ctx context.Context, c *contact.Contact) error {
	stored := *c
	s.contacts[c.ID] = &stored
	return nil
}

func (s *memContacts) GetContact(ctx context.Context, contactID string) (*contact.Contact, error) {
	c, ok := s.contacts[contactID]
	if !ok {
		return nil, errors.NewNotFoundError("contact not found")
	}
	return c, nil
}

func (s *memContacts) ListContacts(ctx context.Context, filter *contact.ListContactsRequest) ([]*contact.Contact, error) {
	var out []*contact.Contact
	for _, c := range s.contacts {
		out = append(out, c)
	}
	return out, nil
}

func (s *memContacts) FindStudentByEmail(ctx context.Context, email string) (*contact.Contact, error) {
	for _, c := range s.contacts {
		if c.IsStudent() && contact.NormalizeEmail(c.Email) == email {
			return c, nil
		}
	}
	return nil, nil
}

func (s *memContacts) GrantStudentAccess(ctx context.Context, contactID string, access *contact.StudentAccess, formations []contact.FormationAccess) error {
	c := s.contacts[contactID]
	c.StudentAccess = access
	c.FormationAccess = formations
	return nil
}

func (s *memContacts) ListFormations(ctx context.Context) ([]*formation.Formation, error) {
	return []*formation.Formation{}, nil
}

type stubProvisioner struct{}

func (stubProvisioner) CreateIdentity(ctx context.Context, email, name, temporaryPassword string) (*auth.Identity, error) {
	return &auth.Identity{UserID: "user-" + email, Email: email}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
