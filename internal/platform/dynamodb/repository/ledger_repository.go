package repository

import (
	"context"
	"log/slog"
	"sort"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/hirosato/lidere-backoffice/internal/common/utils"
	commonErrors "github.com/hirosato/lidere-backoffice/internal/domain/errors"
	"github.com/hirosato/lidere-backoffice/internal/domain/ledger"
	"github.com/hirosato/lidere-backoffice/internal/platform/dynamodb/client"
)

// LedgerEntryDDB is the stored form of a ledger entry
type LedgerEntryDDB struct {
	PK     string `dynamodbav:"PK"`
	SK     string `dynamodbav:"SK"`
	GSI1PK string `dynamodbav:"GSI1PK"`
	GSI1SK string `dynamodbav:"GSI1SK"`
	GSI2PK string `dynamodbav:"GSI2PK,omitempty"`
	GSI2SK string `dynamodbav:"GSI2SK,omitempty"`
	Type   string `dynamodbav:"Type"`

	ID              string `dynamodbav:"id"`
	Description     string `dynamodbav:"description"`
	Amount          string `dynamodbav:"amount"`
	EntryType       string `dynamodbav:"entryType"`
	Date            string `dynamodbav:"date"`
	Category        string `dynamodbav:"category"`
	CompanyID       string `dynamodbav:"companyId"`
	CompanyName     string `dynamodbav:"companyName"`
	CreatedAt       string `dynamodbav:"createdAt"`
	SourceAccountID string `dynamodbav:"sourceAccountId,omitempty"`
}

func encodeLedgerEntry(e *ledger.Entry) LedgerEntryDDB {
	date := utils.FormatDate(e.Date)
	item := LedgerEntryDDB{
		PK:              entityPK(typeLedger, e.ID),
		SK:              typeLedger,
		GSI1PK:          typeLedger,
		GSI1SK:          companySortKey(e.CompanyID, date, e.ID),
		Type:            typeLedger,
		ID:              e.ID,
		Description:     e.Description,
		Amount:          e.Amount.String(),
		EntryType:       string(e.Type),
		Date:            date,
		Category:        e.Category,
		CompanyID:       e.CompanyID,
		CompanyName:     e.CompanyName,
		CreatedAt:       formatTimestamp(e.CreatedAt),
		SourceAccountID: e.SourceAccountID,
	}
	if e.SourceAccountID != "" {
		item.GSI2PK = sourceAccountLookupKey(e.SourceAccountID)
		item.GSI2SK = e.ID
	}
	return item
}

func decodeLedgerEntry(av map[string]types.AttributeValue) (*ledger.Entry, error) {
	var item LedgerEntryDDB
	if err := attributevalue.UnmarshalMap(av, &item); err != nil {
		return nil, malformed("ledger entry: %v", err)
	}
	if item.Type != typeLedger {
		return nil, malformed("item type %q is not a ledger entry", item.Type)
	}
	if err := requireString("id", item.ID); err != nil {
		return nil, err
	}
	entryType := ledger.EntryType(item.EntryType)
	if !entryType.Valid() {
		return nil, malformed("ledger entry type %q", item.EntryType)
	}
	amount, err := parseAmount("amount", item.Amount)
	if err != nil {
		return nil, err
	}
	date, err := parseDate("date", item.Date)
	if err != nil {
		return nil, err
	}
	createdAt, err := parseTimestamp("createdAt", item.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &ledger.Entry{
		ID:              item.ID,
		Description:     item.Description,
		Amount:          amount,
		Type:            entryType,
		Date:            date,
		Category:        item.Category,
		CompanyID:       item.CompanyID,
		CompanyName:     item.CompanyName,
		CreatedAt:       createdAt,
		SourceAccountID: item.SourceAccountID,
	}, nil
}

// DynamoDBLedgerRepository implements the ledger.Repository interface
type DynamoDBLedgerRepository struct {
	table
}

// NewDynamoDBLedgerRepository creates a new DynamoDBLedgerRepository
func NewDynamoDBLedgerRepository(client client.Client, tableName string, logger *slog.Logger) *DynamoDBLedgerRepository {
	return &DynamoDBLedgerRepository{table: table{client: client, name: tableName, logger: logger}}
}

// CreateEntry stores an independent entry
func (r *DynamoDBLedgerRepository) CreateEntry(ctx context.Context, entry *ledger.Entry) error {
	return r.putNew(ctx, encodeLedgerEntry(entry))
}

// GetEntry retrieves an entry by ID
func (r *DynamoDBLedgerRepository) GetEntry(ctx context.Context, entryID string) (*ledger.Entry, error) {
	item, err := r.getItem(ctx, typeLedger, entryID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, commonErrors.NewNotFoundError("ledger entry not found")
	}
	entry, err := decodeLedgerEntry(item)
	if err != nil {
		r.quarantine(ctx, item, err)
		return nil, commonErrors.NewExternalServiceError("stored ledger entry is malformed", err)
	}
	return entry, nil
}

// ListEntries retrieves entries by company and type, newest first
func (r *DynamoDBLedgerRepository) ListEntries(ctx context.Context, filter *ledger.ListEntriesRequest) ([]*ledger.Entry, error) {
	keyCond := expression.Key("GSI1PK").Equal(expression.Value(typeLedger))
	if filter.CompanyID != "" {
		keyCond = keyCond.And(expression.Key("GSI1SK").BeginsWith(companyPrefix(filter.CompanyID)))
	}
	var cond *expression.ConditionBuilder
	if filter.Type != "" {
		c := expression.Name("entryType").Equal(expression.Value(string(filter.Type)))
		cond = &c
	}

	items, err := r.queryIndex(ctx, gsi1, keyCond, cond)
	if err != nil {
		return nil, err
	}
	entries := r.decodeAll(ctx, items)
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Date.After(entries[j].Date) })
	return entries, nil
}

// FindBySourceAccount retrieves the entries owned by an account
func (r *DynamoDBLedgerRepository) FindBySourceAccount(ctx context.Context, accountID string) ([]*ledger.Entry, error) {
	keyCond := expression.Key("GSI2PK").Equal(expression.Value(sourceAccountLookupKey(accountID)))
	items, err := r.queryIndex(ctx, gsi2, keyCond, nil)
	if err != nil {
		return nil, err
	}
	return r.decodeAll(ctx, items), nil
}

// DeleteEntry deletes an entry no account owns
func (r *DynamoDBLedgerRepository) DeleteEntry(ctx context.Context, entryID string) error {
	cond := expression.AttributeExists(expression.Name("PK")).
		And(expression.AttributeNotExists(expression.Name("sourceAccountId")))
	return r.conditionalDelete(ctx, r.key(typeLedger, entryID), cond, "ledger entry is owned by an account")
}

func (r *DynamoDBLedgerRepository) decodeAll(ctx context.Context, items []map[string]types.AttributeValue) []*ledger.Entry {
	entries := make([]*ledger.Entry, 0, len(items))
	for _, item := range items {
		entry, err := decodeLedgerEntry(item)
		if err != nil {
			r.quarantine(ctx, item, err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}
