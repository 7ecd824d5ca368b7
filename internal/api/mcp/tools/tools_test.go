package tools

import (
	"context"
	"encoding/json"
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

func newServices(store *memStore) (*account.Service, *ledger.Service, *debt.Service) {
	logger := discardLogger()
	return account.NewService(store, store, nil, logger),
		ledger.NewService(store, nil, logger),
		debt.NewService(store, nil, logger)
}

func scopedTo(companyID string) context.Context {
	return tenant.WithContext(context.Background(), &tenant.TenantContext{CompanyID: companyID, CompanyName: "Lidere " + companyID})
}

func seedAccount(store *memStore, id, companyID string, status account.Status) {
	a := &account.Account{
		ID:          id,
		Kind:        account.Receivable,
		Description: "Mensalidade",
		Amount:      decimal.RequireFromString("350.00"),
		CompanyID:   companyID,
		Status:      status,
		DueDate:     time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	}
	if status == account.Paid {
		paidAt := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
		a.PaidAt = &paidAt
	}
	store.accounts[id] = a
}

func TestCreateAccountTool(t *testing.T) {
	t.Run("defaults company from scope", func(t *testing.T) {
		// Setup
		store := newMemStore()
		accounts, _, _ := newServices(store)
		tool := NewCreateAccountTool(accounts)
		args := json.RawMessage(`{"kind":"payable","description":"Aluguel","amount":"1500.00","dueDate":"2026-04-05"}`)

		// Act
		result, err := tool.Execute(scopedTo("acme"), args)

		// Assert
		require.NoError(t, err)
		assert.Contains(t, result.Content[0].Text, "Account created:")
		require.Len(t, store.accounts, 1)
		for _, a := range store.accounts {
			assert.Equal(t, "acme", a.CompanyID)
			assert.Equal(t, "Lidere acme", a.CompanyName)
			assert.Equal(t, account.Pending, a.Status)
			assert.True(t, decimal.RequireFromString("1500").Equal(a.Amount))
		}
	})

	t.Run("rejects a different company", func(t *testing.T) {
		// Setup
		store := newMemStore()
		accounts, _, _ := newServices(store)
		tool := NewCreateAccountTool(accounts)
		args := json.RawMessage(`{"kind":"payable","description":"Aluguel","amount":"1500","dueDate":"2026-04-05","companyId":"other"}`)

		// Act
		_, err := tool.Execute(scopedTo("acme"), args)

		// Assert
		assert.True(t, errors.HasCode(err, errors.CodeValidation))
		assert.Empty(t, store.accounts)
	})

	t.Run("recurrence", func(t *testing.T) {
		// Setup
		store := newMemStore()
		accounts, _, _ := newServices(store)
		tool := NewCreateAccountTool(accounts)
		args := json.RawMessage(`{"kind":"receivable","description":"Mensalidade","amount":"350","dueDate":"2026-04-05",
			"companyId":"acme","isRecurring":true,"recurrence":{"frequency":"monthly","endDate":"2026-12-05"}}`)

		// Act
		_, err := tool.Execute(context.Background(), args)

		// Assert
		require.NoError(t, err)
		for _, a := range store.accounts {
			require.NotNil(t, a.Recurrence)
			assert.Equal(t, account.Monthly, a.Recurrence.Frequency)
		}
	})

	t.Run("malformed arguments", func(t *testing.T) {
		// Setup
		accounts, _, _ := newServices(newMemStore())
		tool := NewCreateAccountTool(accounts)

		// Act
		_, err := tool.Execute(context.Background(), json.RawMessage(`{"amount":`))

		// Assert
		assert.True(t, errors.HasCode(err, errors.CodeValidation))
	})
}

func TestMarkAccountTools(t *testing.T) {
	t.Run("paid then pending", func(t *testing.T) {
		// Setup
		store := newMemStore()
		seedAccount(store, "acc-1", "acme", account.Pending)
		accounts, _, _ := newServices(store)
		args := json.RawMessage(`{"accountId":"acc-1"}`)

		// Act
		paid, err := NewMarkAccountPaidTool(accounts).Execute(scopedTo("acme"), args)
		require.NoError(t, err)
		entriesAfterPaid := len(store.entries)
		pending, err := NewMarkAccountPendingTool(accounts).Execute(scopedTo("acme"), args)
		require.NoError(t, err)

		// Assert
		assert.Contains(t, paid.Content[0].Text, "Account is now paid:")
		assert.Equal(t, 1, entriesAfterPaid)
		assert.Contains(t, pending.Content[0].Text, "Account is now pending:")
		assert.Empty(t, store.entries)
		assert.Equal(t, account.Pending, store.accounts["acc-1"].Status)
	})

	t.Run("already paid is not an error", func(t *testing.T) {
		// Setup
		store := newMemStore()
		seedAccount(store, "acc-1", "acme", account.Paid)
		accounts, _, _ := newServices(store)

		// Act
		result, err := NewMarkAccountPaidTool(accounts).Execute(context.Background(), json.RawMessage(`{"accountId":"acc-1"}`))

		// Assert
		require.NoError(t, err)
		assert.False(t, result.IsError)
		assert.Contains(t, result.Content[0].Text, "already paid")
		assert.Empty(t, store.entries)
	})

	t.Run("account of another company", func(t *testing.T) {
		// Setup
		store := newMemStore()
		seedAccount(store, "acc-1", "other", account.Pending)
		accounts, _, _ := newServices(store)

		// Act
		_, err := NewMarkAccountPaidTool(accounts).Execute(scopedTo("acme"), json.RawMessage(`{"accountId":"acc-1"}`))

		// Assert
		assert.True(t, errors.HasCode(err, errors.CodeNotFound))
		assert.Equal(t, account.Pending, store.accounts["acc-1"].Status)
	})

	t.Run("unknown account", func(t *testing.T) {
		// Setup
		accounts, _, _ := newServices(newMemStore())

		// Act
		_, err := NewMarkAccountPendingTool(accounts).Execute(context.Background(), json.RawMessage(`{"accountId":"nope"}`))

		// Assert
		assert.True(t, errors.HasCode(err, errors.CodeNotFound))
	})
}

func TestDebtTools(t *testing.T) {
	t.Run("create, negotiate and pay", func(t *testing.T) {
		// Setup
		store := newMemStore()
		_, _, debts := newServices(store)
		ctx := scopedTo("acme")

		// Act
		_, err := NewCreateDebtTool(debts).Execute(ctx,
			json.RawMessage(`{"description":"Fornecedor","creditor":"Banco","originalAmount":"3000","interestRate":"2.5"}`))
		require.NoError(t, err)
		require.Len(t, store.debts, 1)
		var debtID string
		for id := range store.debts {
			debtID = id
		}

		negotiated, err := NewNegotiateDebtTool(debts).Execute(ctx, json.RawMessage(
			`{"debtId":"`+debtID+`","numberOfInstallments":3,"installmentAmount":"1050.00","firstInstallmentDate":"2026-01-31"}`))
		require.NoError(t, err)
		_, err = NewMarkDebtPaidTool(debts).Execute(ctx, json.RawMessage(`{"debtId":"`+debtID+`"}`))
		require.NoError(t, err)

		// Assert
		assert.Contains(t, negotiated.Content[0].Text, "Debt negotiated into 3 installments:")
		assert.Len(t, store.accounts, 3)
		assert.Equal(t, debt.Paid, store.debts[debtID].Status)
		assert.Equal(t, "acme", store.debts[debtID].CompanyID)
	})

	t.Run("negotiate twice", func(t *testing.T) {
		// Setup
		store := newMemStore()
		store.debts["d-1"] = &debt.Debt{ID: "d-1", CompanyID: "acme", Status: debt.Negotiated,
			NegotiationDetails: &debt.NegotiationDetails{NumberOfInstallments: 1}}
		_, _, debts := newServices(store)

		// Act
		_, err := NewNegotiateDebtTool(debts).Execute(context.Background(), json.RawMessage(
			`{"debtId":"d-1","numberOfInstallments":2,"installmentAmount":"10","firstInstallmentDate":"2026-01-31"}`))

		// Assert
		assert.True(t, errors.HasCode(err, errors.CodeInvalidState))
		assert.Empty(t, store.accounts)
	})

	t.Run("debt of another company", func(t *testing.T) {
		// Setup
		store := newMemStore()
		store.debts["d-1"] = &debt.Debt{ID: "d-1", CompanyID: "other", Status: debt.Negotiated}
		_, _, debts := newServices(store)

		// Act
		_, err := NewMarkDebtPaidTool(debts).Execute(scopedTo("acme"), json.RawMessage(`{"debtId":"d-1"}`))

		// Assert
		assert.True(t, errors.HasCode(err, errors.CodeNotFound))
		assert.Equal(t, debt.Negotiated, store.debts["d-1"].Status)
	})
}

func TestCreateLedgerEntryTool(t *testing.T) {
	// Setup
	store := newMemStore()
	_, entries, _ := newServices(store)
	tool := NewCreateLedgerEntryTool(entries)

	// Act
	result, err := tool.Execute(scopedTo("acme"),
		json.RawMessage(`{"description":"Venda avulsa","amount":"99.90","type":"income","date":"2026-02-14","category":"Vendas"}`))

	// Assert
	require.NoError(t, err)
	assert.Contains(t, result.Content[0].Text, "Ledger entry created:")
	require.Len(t, store.entries, 1)
	for _, e := range store.entries {
		assert.Equal(t, ledger.Income, e.Type)
		assert.Equal(t, "acme", e.CompanyID)
		assert.False(t, e.IsOwned())
	}
}

func TestImportContactsTool(t *testing.T) {
	newTool := func() (*ImportContactsTool, *memContacts) {
		store := &memContacts{contacts: make(map[string]*contact.Contact)}
		importer := contact.NewImporter(store, store, stubProvisioner{}, nil, discardLogger())
		return NewImportContactsTool(importer), store
	}

	t.Run("imports with mapping", func(t *testing.T) {
		// Setup
		tool, store := newTool()
		args := json.RawMessage(`{
			"records": [
				{"Nome": "Ana", "Telefone": "11999990000", "E-mail": "ana@example.com", "Aluno": "sim"},
				{"Nome": "", "Telefone": "", "E-mail": ""},
				{"Nome": "Bruno", "Telefone": ""}
			],
			"fieldMapping": {"name": "Nome", "phone": "Telefone", "email": "E-mail", "student": "Aluno"},
			"studentConfig": {"grantAccess": true, "expiresAt": "2027-01-01"}
		}`)

		// Act
		result, err := tool.Execute(context.Background(), args)

		// Assert
		require.NoError(t, err)
		assert.Contains(t, result.Content[0].Text, "Imported 1 of 3 records (1 failed, 1 skipped):")
		require.Len(t, store.contacts, 1)
		for _, c := range store.contacts {
			assert.True(t, c.IsStudent())
		}
	})

	t.Run("invalid expiry date", func(t *testing.T) {
		// Setup
		tool, store := newTool()

		// Act
		_, err := tool.Execute(context.Background(),
			json.RawMessage(`{"records":[],"studentConfig":{"grantAccess":true,"expiresAt":"01/01/2027"}}`))

		// Assert
		assert.True(t, errors.HasCode(err, errors.CodeValidation))
		assert.Empty(t, store.contacts)
	})
}

func TestDeleteTools(t *testing.T) {
	t.Run("paid account is kept", func(t *testing.T) {
		// Setup
		store := newMemStore()
		seedAccount(store, "acc-1", "acme", account.Paid)
		accounts, _, _ := newServices(store)

		// Act
		_, err := NewDeleteAccountTool(accounts).Execute(scopedTo("acme"), json.RawMessage(`{"accountId":"acc-1"}`))

		// Assert
		assert.True(t, errors.HasCode(err, errors.CodeInvalidState))
		assert.Contains(t, store.accounts, "acc-1")
	})

	t.Run("pending account", func(t *testing.T) {
		// Setup
		store := newMemStore()
		seedAccount(store, "acc-1", "acme", account.Pending)
		accounts, _, _ := newServices(store)

		// Act
		_, err := NewDeleteAccountTool(accounts).Execute(scopedTo("acme"), json.RawMessage(`{"accountId":"acc-1"}`))

		// Assert
		require.NoError(t, err)
		assert.Empty(t, store.accounts)
	})

	t.Run("owned ledger entry is kept", func(t *testing.T) {
		// Setup
		store := newMemStore()
		store.entries["e-1"] = &ledger.Entry{ID: "e-1", CompanyID: "acme", SourceAccountID: "acc-1"}
		_, entries, _ := newServices(store)

		// Act
		_, err := NewDeleteLedgerEntryTool(entries).Execute(scopedTo("acme"), json.RawMessage(`{"entryId":"e-1"}`))

		// Assert
		assert.True(t, errors.HasCode(err, errors.CodeInvalidState))
		assert.Contains(t, store.entries, "e-1")
	})

	t.Run("open debt", func(t *testing.T) {
		// Setup
		store := newMemStore()
		store.debts["d-1"] = &debt.Debt{ID: "d-1", CompanyID: "acme", Status: debt.Open}
		_, _, debts := newServices(store)

		// Act
		_, err := NewDeleteDebtTool(debts).Execute(scopedTo("acme"), json.RawMessage(`{"debtId":"d-1"}`))

		// Assert
		require.NoError(t, err)
		assert.Empty(t, store.debts)
	})
}

func TestCreateContactTool(t *testing.T) {
	// Setup
	store := &memContacts{contacts: make(map[string]*contact.Contact)}
	tool := NewCreateContactTool(contact.NewService(store, nil, discardLogger()))

	// Act
	_, err := tool.Execute(context.Background(),
		json.RawMessage(`{"name":"Carla","phone":"11977776666","tags":["vip","VIP","lead"]}`))

	// Assert
	require.NoError(t, err)
	require.Len(t, store.contacts, 1)
	for _, c := range store.contacts {
		assert.Equal(t, []string{"vip", "lead"}, c.Tags)
		assert.False(t, c.IsStudent())
	}
}
