package resources

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/url"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirosato/lidere-backoffice/internal/domain/account"
	"github.com/hirosato/lidere-backoffice/internal/domain/contact"
	"github.com/hirosato/lidere-backoffice/internal/domain/debt"
	"github.com/hirosato/lidere-backoffice/internal/domain/errors"
	"github.com/hirosato/lidere-backoffice/internal/domain/ledger"
	"github.com/hirosato/lidere-backoffice/internal/domain/tenant"
)

// listStore records the filters it is asked for and returns fixed rows
type listStore struct {
	accountFilter *account.ListAccountsRequest
	entryFilter   *ledger.ListEntriesRequest
	debtFilter    *debt.ListDebtsRequest
	contactFilter *contact.ListContactsRequest

	accounts []*account.Account
	debts    []*debt.Debt
}

func (s *listStore) CreateAccount(ctx context.Context, a *account.Account) error { return nil }
func (s *listStore) GetAccount(ctx context.Context, id string) (*account.Account, error) {
	for _, a := range s.accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, errors.NewNotFoundError("account not found")
}
func (s *listStore) ListAccounts(ctx context.Context, filter *account.ListAccountsRequest) ([]*account.Account, error) {
	s.accountFilter = filter
	return s.accounts, nil
}
func (s *listStore) DeleteAccount(ctx context.Context, id string) error { return nil }
func (s *listStore) SettleAccount(ctx context.Context, a *account.Account, e *ledger.Entry) error {
	return nil
}
func (s *listStore) ReopenAccount(ctx context.Context, a *account.Account, e *ledger.Entry) error {
	return nil
}

func (s *listStore) CreateEntry(ctx context.Context, e *ledger.Entry) error { return nil }
func (s *listStore) GetEntry(ctx context.Context, id string) (*ledger.Entry, error) {
	return nil, errors.NewNotFoundError("ledger entry not found")
}
func (s *listStore) ListEntries(ctx context.Context, filter *ledger.ListEntriesRequest) ([]*ledger.Entry, error) {
	s.entryFilter = filter
	return []*ledger.Entry{}, nil
}
func (s *listStore) FindBySourceAccount(ctx context.Context, id string) ([]*ledger.Entry, error) {
	return nil, nil
}
func (s *listStore) DeleteEntry(ctx context.Context, id string) error { return nil }

func (s *listStore) CreateDebt(ctx context.Context, d *debt.Debt) error { return nil }
func (s *listStore) GetDebt(ctx context.Context, id string) (*debt.Debt, error) {
	for _, d := range s.debts {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, errors.NewNotFoundError("debt not found")
}
func (s *listStore) ListDebts(ctx context.Context, filter *debt.ListDebtsRequest) ([]*debt.Debt, error) {
	s.debtFilter = filter
	return s.debts, nil
}
func (s *listStore) DeleteDebt(ctx context.Context, id string) error { return nil }
func (s *listStore) SaveNegotiation(ctx context.Context, d *debt.Debt, installments []*account.Account) error {
	return nil
}
func (s *listStore) MarkPaid(ctx context.Context, d *debt.Debt) error { return nil }

func (s *listStore) CreateContact(ctx context.Context, c *contact.Contact) error { return nil }
func (s *listStore) GetContact(ctx context.Context, id string) (*contact.Contact, error) {
	return &contact.Contact{ID: id, Name: "Ana"}, nil
}
func (s *listStore) ListContacts(ctx context.Context, filter *contact.ListContactsRequest) ([]*contact.Contact, error) {
	s.contactFilter = filter
	return []*contact.Contact{}, nil
}
func (s *listStore) FindStudentByEmail(ctx context.Context, email string) (*contact.Contact, error) {
	return nil, nil
}
func (s *listStore) GrantStudentAccess(ctx context.Context, id string, access *contact.StudentAccess, formations []contact.FormationAccess) error {
	return nil
}

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

func scopedTo(companyID string) context.Context {
	return tenant.WithContext(context.Background(), &tenant.TenantContext{CompanyID: companyID})
}

func TestAccountsResource(t *testing.T) {
	due := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	newResource := func() (*AccountsResource, *listStore) {
		store := &listStore{accounts: []*account.Account{
			{ID: "acc-1", Kind: account.Payable, Amount: decimal.RequireFromString("10.50"), CompanyID: "acme", Status: account.Pending, DueDate: due},
		}}
		return NewAccountsResource(account.NewService(store, store, nil, logger)), store
	}

	t.Run("list is scoped and filtered", func(t *testing.T) {
		// Setup
		resource, store := newResource()
		query := url.Values{"status": {"pending"}, "kind": {"payable"}, "debtId": {"d-1"}}

		// Act
		result, err := resource.Read(scopedTo("acme"), query)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, &account.ListAccountsRequest{CompanyID: "acme", Kind: account.Payable, Status: account.Pending, DebtID: "d-1"}, store.accountFilter)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "lidere://accounts", result.Contents[0].URI)
		assert.Equal(t, "application/json", result.Contents[0].MimeType)

		var listed []map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &listed))
		require.Len(t, listed, 1)
		assert.Equal(t, "10.5", listed[0]["amount"])
	})

	t.Run("unknown status", func(t *testing.T) {
		// Setup
		resource, store := newResource()

		// Act
		_, err := resource.Read(context.Background(), url.Values{"status": {"late"}})

		// Assert
		assert.True(t, errors.HasCode(err, errors.CodeValidation))
		assert.Nil(t, store.accountFilter)
	})

	t.Run("single account outside scope", func(t *testing.T) {
		// Setup
		resource, _ := newResource()

		// Act
		_, err := resource.Read(scopedTo("other"), url.Values{"id": {"acc-1"}})

		// Assert
		assert.True(t, errors.HasCode(err, errors.CodeNotFound))
	})

	t.Run("single account", func(t *testing.T) {
		// Setup
		resource, _ := newResource()

		// Act
		result, err := resource.Read(scopedTo("acme"), url.Values{"id": {"acc-1"}})

		// Assert
		require.NoError(t, err)
		assert.Contains(t, result.Contents[0].Text, `"id": "acc-1"`)
	})
}

func TestLedgerEntriesResource(t *testing.T) {
	// Setup
	store := &listStore{}
	resource := NewLedgerEntriesResource(ledger.NewService(store, nil, logger))

	// Act
	result, err := resource.Read(scopedTo("acme"), url.Values{"type": {"expense"}})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, &ledger.ListEntriesRequest{CompanyID: "acme", Type: ledger.Expense}, store.entryFilter)
	assert.Equal(t, "[]", result.Contents[0].Text)
}

func TestDebtsResource(t *testing.T) {
	t.Run("unscoped list", func(t *testing.T) {
		// Setup
		store := &listStore{debts: []*debt.Debt{{ID: "d-1", CompanyID: "acme", Status: debt.Open}}}
		resource := NewDebtsResource(debt.NewService(store, nil, logger))

		// Act
		_, err := resource.Read(context.Background(), url.Values{"status": {"open"}})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, &debt.ListDebtsRequest{Status: debt.Open}, store.debtFilter)
	})

	t.Run("bad status", func(t *testing.T) {
		// Setup
		resource := NewDebtsResource(debt.NewService(&listStore{}, nil, logger))

		// Act
		_, err := resource.Read(context.Background(), url.Values{"status": {"closed"}})

		// Assert
		assert.True(t, errors.HasCode(err, errors.CodeValidation))
	})
}

func TestContactsResource(t *testing.T) {
	t.Run("students filter", func(t *testing.T) {
		// Setup
		store := &listStore{}
		resource := NewContactsResource(contact.NewService(store, nil, logger))

		// Act
		_, err := resource.Read(scopedTo("acme"), url.Values{"tag": {"vip"}, "students": {"true"}})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, &contact.ListContactsRequest{Tag: "vip", StudentsOnly: true}, store.contactFilter)
	})

	t.Run("bad students flag", func(t *testing.T) {
		// Setup
		resource := NewContactsResource(contact.NewService(&listStore{}, nil, logger))

		// Act
		_, err := resource.Read(context.Background(), url.Values{"students": {"maybe"}})

		// Assert
		assert.True(t, errors.HasCode(err, errors.CodeValidation))
	})
}
