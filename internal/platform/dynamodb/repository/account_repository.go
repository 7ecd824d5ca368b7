package repository

import (
	"context"
	"log/slog"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/hirosato/lidere-backoffice/internal/common/utils"
	"github.com/hirosato/lidere-backoffice/internal/domain/account"
	commonErrors "github.com/hirosato/lidere-backoffice/internal/domain/errors"
	"github.com/hirosato/lidere-backoffice/internal/domain/ledger"
	"github.com/hirosato/lidere-backoffice/internal/platform/dynamodb/client"
)

// AccountDDB is the stored form of an account
type AccountDDB struct {
	PK     string `dynamodbav:"PK"`
	SK     string `dynamodbav:"SK"`
	GSI1PK string `dynamodbav:"GSI1PK"`
	GSI1SK string `dynamodbav:"GSI1SK"`
	GSI2PK string `dynamodbav:"GSI2PK,omitempty"`
	GSI2SK string `dynamodbav:"GSI2SK,omitempty"`
	Type   string `dynamodbav:"Type"`

	ID                  string `dynamodbav:"id"`
	Kind                string `dynamodbav:"kind"`
	Description         string `dynamodbav:"description"`
	Amount              string `dynamodbav:"amount"`
	CompanyID           string `dynamodbav:"companyId"`
	CompanyName         string `dynamodbav:"companyName"`
	Status              string `dynamodbav:"status"`
	Category            string `dynamodbav:"category"`
	IsRecurring         bool   `dynamodbav:"isRecurring"`
	Notes               string `dynamodbav:"notes,omitempty"`
	DueDate             string `dynamodbav:"dueDate"`
	CreatedAt           string `dynamodbav:"createdAt"`
	PaidAt              string `dynamodbav:"paidAt,omitempty"`
	RecurrenceFrequency string `dynamodbav:"recurrenceFrequency,omitempty"`
	RecurrenceEndDate   string `dynamodbav:"recurrenceEndDate,omitempty"`
	DebtID              string `dynamodbav:"debtId,omitempty"`
	LedgerEntryID       string `dynamodbav:"ledgerEntryId,omitempty"`
}

func encodeAccount(a *account.Account) AccountDDB {
	due := utils.FormatDate(a.DueDate)
	item := AccountDDB{
		PK:            entityPK(typeAccount, a.ID),
		SK:            typeAccount,
		GSI1PK:        typeAccount,
		GSI1SK:        companySortKey(a.CompanyID, due, a.ID),
		Type:          typeAccount,
		ID:            a.ID,
		Kind:          string(a.Kind),
		Description:   a.Description,
		Amount:        a.Amount.String(),
		CompanyID:     a.CompanyID,
		CompanyName:   a.CompanyName,
		Status:        string(a.Status),
		Category:      a.Category,
		IsRecurring:   a.IsRecurring,
		Notes:         a.Notes,
		DueDate:       due,
		CreatedAt:     formatTimestamp(a.CreatedAt),
		PaidAt:        formatOptionalTimestamp(a.PaidAt),
		DebtID:        a.DebtID,
		LedgerEntryID: a.LedgerEntryID,
	}
	if a.Recurrence != nil {
		item.RecurrenceFrequency = string(a.Recurrence.Frequency)
		item.RecurrenceEndDate = formatOptionalDate(a.Recurrence.EndDate)
	}
	if a.DebtID != "" {
		item.GSI2PK = debtLookupKey(a.DebtID)
		item.GSI2SK = a.ID
	}
	return item
}

func decodeAccount(av map[string]types.AttributeValue) (*account.Account, error) {
	var item AccountDDB
	if err := attributevalue.UnmarshalMap(av, &item); err != nil {
		return nil, malformed("account: %v", err)
	}
	if item.Type != typeAccount {
		return nil, malformed("item type %q is not an account", item.Type)
	}
	if err := requireString("id", item.ID); err != nil {
		return nil, err
	}
	kind := account.Kind(item.Kind)
	if !kind.Valid() {
		return nil, malformed("account kind %q", item.Kind)
	}
	status := account.Status(item.Status)
	if status != account.Pending && status != account.Paid {
		return nil, malformed("account status %q", item.Status)
	}
	amount, err := parseAmount("amount", item.Amount)
	if err != nil {
		return nil, err
	}
	dueDate, err := parseDate("dueDate", item.DueDate)
	if err != nil {
		return nil, err
	}
	createdAt, err := parseTimestamp("createdAt", item.CreatedAt)
	if err != nil {
		return nil, err
	}
	paidAt, err := parseOptionalTimestamp("paidAt", item.PaidAt)
	if err != nil {
		return nil, err
	}
	if (status == account.Paid) != (paidAt != nil) {
		return nil, malformed("account status %q disagrees with paidAt", item.Status)
	}
	if item.LedgerEntryID != "" && status != account.Paid {
		return nil, malformed("pending account links ledger entry %q", item.LedgerEntryID)
	}

	a := &account.Account{
		ID:            item.ID,
		Kind:          kind,
		Description:   item.Description,
		Amount:        amount,
		CompanyID:     item.CompanyID,
		CompanyName:   item.CompanyName,
		Status:        status,
		Category:      item.Category,
		IsRecurring:   item.IsRecurring,
		Notes:         item.Notes,
		DueDate:       dueDate,
		CreatedAt:     createdAt,
		PaidAt:        paidAt,
		DebtID:        item.DebtID,
		LedgerEntryID: item.LedgerEntryID,
	}
	if item.RecurrenceFrequency != "" {
		end, err := parseOptionalDate("recurrenceEndDate", item.RecurrenceEndDate)
		if err != nil {
			return nil, err
		}
		a.Recurrence = &account.Recurrence{Frequency: account.Frequency(item.RecurrenceFrequency), EndDate: end}
	}
	return a, nil
}

// DynamoDBAccountRepository implements the account.Repository interface
type DynamoDBAccountRepository struct {
	table
}

// NewDynamoDBAccountRepository creates a new DynamoDBAccountRepository
func NewDynamoDBAccountRepository(client client.Client, tableName string, logger *slog.Logger) *DynamoDBAccountRepository {
	return &DynamoDBAccountRepository{table: table{client: client, name: tableName, logger: logger}}
}

// CreateAccount stores a new account
func (r *DynamoDBAccountRepository) CreateAccount(ctx context.Context, a *account.Account) error {
	return r.putNew(ctx, encodeAccount(a))
}

// GetAccount retrieves an account by ID
func (r *DynamoDBAccountRepository) GetAccount(ctx context.Context, accountID string) (*account.Account, error) {
	item, err := r.getItem(ctx, typeAccount, accountID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, commonErrors.NewNotFoundError("account not found")
	}
	a, err := decodeAccount(item)
	if err != nil {
		r.quarantine(ctx, item, err)
		return nil, commonErrors.NewExternalServiceError("stored account is malformed", err)
	}
	return a, nil
}

// ListAccounts retrieves accounts ordered by due date
func (r *DynamoDBAccountRepository) ListAccounts(ctx context.Context, filter *account.ListAccountsRequest) ([]*account.Account, error) {
	var keyCond expression.KeyConditionBuilder
	var index string
	var conds []expression.ConditionBuilder

	if filter.DebtID != "" {
		index = gsi2
		keyCond = expression.Key("GSI2PK").Equal(expression.Value(debtLookupKey(filter.DebtID)))
		if filter.CompanyID != "" {
			conds = append(conds, expression.Name("companyId").Equal(expression.Value(filter.CompanyID)))
		}
	} else {
		index = gsi1
		keyCond = expression.Key("GSI1PK").Equal(expression.Value(typeAccount))
		if filter.CompanyID != "" {
			keyCond = keyCond.And(expression.Key("GSI1SK").BeginsWith(companyPrefix(filter.CompanyID)))
		}
	}
	if filter.Kind != "" {
		conds = append(conds, expression.Name("kind").Equal(expression.Value(string(filter.Kind))))
	}
	if filter.Status != "" {
		conds = append(conds, expression.Name("status").Equal(expression.Value(string(filter.Status))))
	}

	items, err := r.queryIndex(ctx, index, keyCond, allOf(conds...))
	if err != nil {
		return nil, err
	}

	accounts := make([]*account.Account, 0, len(items))
	for _, item := range items {
		a, err := decodeAccount(item)
		if err != nil {
			r.quarantine(ctx, item, err)
			continue
		}
		accounts = append(accounts, a)
	}
	sort.SliceStable(accounts, func(i, j int) bool { return accounts[i].DueDate.Before(accounts[j].DueDate) })
	return accounts, nil
}

// DeleteAccount deletes a pending account
func (r *DynamoDBAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	cond := expression.Name("status").Equal(expression.Value(string(account.Pending)))
	return r.conditionalDelete(ctx, r.key(typeAccount, accountID), cond, "only pending accounts can be deleted")
}

// SettleAccount inserts the ledger entry and marks the account paid in one
// transaction, guarded by the stored status still being pending. The entry
// id is recorded on the account so it can be read back by key.
func (r *DynamoDBAccountRepository) SettleAccount(ctx context.Context, a *account.Account, entry *ledger.Entry) error {
	put, err := putItem(r.name, encodeLedgerEntry(entry), aws.String("attribute_not_exists(PK)"))
	if err != nil {
		return err
	}

	update := expression.Set(expression.Name("status"), expression.Value(string(account.Paid))).
		Set(expression.Name("paidAt"), expression.Value(formatOptionalTimestamp(a.PaidAt))).
		Set(expression.Name("ledgerEntryId"), expression.Value(entry.ID))
	cond := expression.Name("status").Equal(expression.Value(string(account.Pending)))
	upd, err := updateItem(r.name, r.key(typeAccount, a.ID), update, cond)
	if err != nil {
		return err
	}

	return r.transact(ctx, []types.TransactWriteItem{put, upd}, "account is no longer pending")
}

// ReopenAccount deletes the owned ledger entry and marks the account pending
// in one transaction, guarded by the stored status still being paid. An entry
// that is already gone does not block the reopen.
func (r *DynamoDBAccountRepository) ReopenAccount(ctx context.Context, a *account.Account, entry *ledger.Entry) error {
	var items []types.TransactWriteItem
	failures := map[int]error{}

	if entry != nil {
		cond := expression.AttributeNotExists(expression.Name("PK")).
			Or(expression.Name("sourceAccountId").Equal(expression.Value(a.ID)))
		del, err := deleteItem(r.name, r.key(typeLedger, entry.ID), cond)
		if err != nil {
			return err
		}
		failures[len(items)] = commonErrors.NewConflictError("linked ledger entry belongs to another account")
		items = append(items, del)
	}

	update := expression.Set(expression.Name("status"), expression.Value(string(account.Pending))).
		Remove(expression.Name("paidAt")).
		Remove(expression.Name("ledgerEntryId"))
	cond := expression.Name("status").Equal(expression.Value(string(account.Paid)))
	upd, err := updateItem(r.name, r.key(typeAccount, a.ID), update, cond)
	if err != nil {
		return err
	}
	items = append(items, upd)

	return r.transactEach(ctx, items, failures, "account is no longer paid")
}
