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
	"github.com/hirosato/lidere-backoffice/internal/domain/debt"
	commonErrors "github.com/hirosato/lidere-backoffice/internal/domain/errors"
	"github.com/hirosato/lidere-backoffice/internal/platform/dynamodb/client"
)

// NegotiationDDB is the stored form of an installment plan
type NegotiationDDB struct {
	NumberOfInstallments int      `dynamodbav:"numberOfInstallments"`
	InstallmentAmount    string   `dynamodbav:"installmentAmount"`
	FirstInstallmentDate string   `dynamodbav:"firstInstallmentDate"`
	LinkedAccountIDs     []string `dynamodbav:"linkedAccountIds"`
}

// DebtDDB is the stored form of a debt
type DebtDDB struct {
	PK     string `dynamodbav:"PK"`
	SK     string `dynamodbav:"SK"`
	GSI1PK string `dynamodbav:"GSI1PK"`
	GSI1SK string `dynamodbav:"GSI1SK"`
	Type   string `dynamodbav:"Type"`

	ID                 string          `dynamodbav:"id"`
	Description        string          `dynamodbav:"description"`
	Creditor           string          `dynamodbav:"creditor"`
	OriginalAmount     string          `dynamodbav:"originalAmount"`
	InterestRate       string          `dynamodbav:"interestRate"`
	CompanyID          string          `dynamodbav:"companyId"`
	CompanyName        string          `dynamodbav:"companyName"`
	Status             string          `dynamodbav:"status"`
	CreatedAt          string          `dynamodbav:"createdAt"`
	NegotiationDetails *NegotiationDDB `dynamodbav:"negotiationDetails,omitempty"`
}

func encodeDebt(d *debt.Debt) DebtDDB {
	created := formatTimestamp(d.CreatedAt)
	return DebtDDB{
		PK:                 entityPK(typeDebt, d.ID),
		SK:                 typeDebt,
		GSI1PK:             typeDebt,
		GSI1SK:             companySortKey(d.CompanyID, created, d.ID),
		Type:               typeDebt,
		ID:                 d.ID,
		Description:        d.Description,
		Creditor:           d.Creditor,
		OriginalAmount:     d.OriginalAmount.String(),
		InterestRate:       d.InterestRate.String(),
		CompanyID:          d.CompanyID,
		CompanyName:        d.CompanyName,
		Status:             string(d.Status),
		CreatedAt:          created,
		NegotiationDetails: encodeNegotiation(d.NegotiationDetails),
	}
}

func encodeNegotiation(n *debt.NegotiationDetails) *NegotiationDDB {
	if n == nil {
		return nil
	}
	return &NegotiationDDB{
		NumberOfInstallments: n.NumberOfInstallments,
		InstallmentAmount:    n.InstallmentAmount.String(),
		FirstInstallmentDate: utils.FormatDate(n.FirstInstallmentDate),
		LinkedAccountIDs:     n.LinkedAccountIDs,
	}
}

func decodeDebt(av map[string]types.AttributeValue) (*debt.Debt, error) {
	var item DebtDDB
	if err := attributevalue.UnmarshalMap(av, &item); err != nil {
		return nil, malformed("debt: %v", err)
	}
	if item.Type != typeDebt {
		return nil, malformed("item type %q is not a debt", item.Type)
	}
	if err := requireString("id", item.ID); err != nil {
		return nil, err
	}
	status := debt.Status(item.Status)
	switch status {
	case debt.Open, debt.Negotiated, debt.Paid:
	default:
		return nil, malformed("debt status %q", item.Status)
	}
	original, err := parseAmount("originalAmount", item.OriginalAmount)
	if err != nil {
		return nil, err
	}
	rate, err := parseAmount("interestRate", item.InterestRate)
	if err != nil {
		return nil, err
	}
	createdAt, err := parseTimestamp("createdAt", item.CreatedAt)
	if err != nil {
		return nil, err
	}

	d := &debt.Debt{
		ID:             item.ID,
		Description:    item.Description,
		Creditor:       item.Creditor,
		OriginalAmount: original,
		InterestRate:   rate,
		CompanyID:      item.CompanyID,
		CompanyName:    item.CompanyName,
		Status:         status,
		CreatedAt:      createdAt,
	}
	if status != debt.Open && item.NegotiationDetails == nil {
		return nil, malformed("%s debt has no negotiation details", item.Status)
	}
	if n := item.NegotiationDetails; n != nil {
		amount, err := parseAmount("installmentAmount", n.InstallmentAmount)
		if err != nil {
			return nil, err
		}
		first, err := parseDate("firstInstallmentDate", n.FirstInstallmentDate)
		if err != nil {
			return nil, err
		}
		d.NegotiationDetails = &debt.NegotiationDetails{
			NumberOfInstallments: n.NumberOfInstallments,
			InstallmentAmount:    amount,
			FirstInstallmentDate: first,
			LinkedAccountIDs:     n.LinkedAccountIDs,
		}
	}
	return d, nil
}

// DynamoDBDebtRepository implements the debt.Repository interface
type DynamoDBDebtRepository struct {
	table
}

// NewDynamoDBDebtRepository creates a new DynamoDBDebtRepository
func NewDynamoDBDebtRepository(client client.Client, tableName string, logger *slog.Logger) *DynamoDBDebtRepository {
	return &DynamoDBDebtRepository{table: table{client: client, name: tableName, logger: logger}}
}

// CreateDebt stores a new debt
func (r *DynamoDBDebtRepository) CreateDebt(ctx context.Context, d *debt.Debt) error {
	return r.putNew(ctx, encodeDebt(d))
}

// GetDebt retrieves a debt by ID
func (r *DynamoDBDebtRepository) GetDebt(ctx context.Context, debtID string) (*debt.Debt, error) {
	item, err := r.getItem(ctx, typeDebt, debtID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, commonErrors.NewNotFoundError("debt not found")
	}
	d, err := decodeDebt(item)
	if err != nil {
		r.quarantine(ctx, item, err)
		return nil, commonErrors.NewExternalServiceError("stored debt is malformed", err)
	}
	return d, nil
}

// ListDebts retrieves debts, newest first
func (r *DynamoDBDebtRepository) ListDebts(ctx context.Context, filter *debt.ListDebtsRequest) ([]*debt.Debt, error) {
	keyCond := expression.Key("GSI1PK").Equal(expression.Value(typeDebt))
	if filter.CompanyID != "" {
		keyCond = keyCond.And(expression.Key("GSI1SK").BeginsWith(companyPrefix(filter.CompanyID)))
	}
	var conds []expression.ConditionBuilder
	if filter.Status != "" {
		conds = append(conds, expression.Name("status").Equal(expression.Value(string(filter.Status))))
	}

	items, err := r.queryIndex(ctx, gsi1, keyCond, allOf(conds...))
	if err != nil {
		return nil, err
	}

	debts := make([]*debt.Debt, 0, len(items))
	for _, item := range items {
		d, err := decodeDebt(item)
		if err != nil {
			r.quarantine(ctx, item, err)
			continue
		}
		debts = append(debts, d)
	}
	sort.SliceStable(debts, func(i, j int) bool { return debts[i].CreatedAt.After(debts[j].CreatedAt) })
	return debts, nil
}

// DeleteDebt deletes an open debt
func (r *DynamoDBDebtRepository) DeleteDebt(ctx context.Context, debtID string) error {
	cond := expression.Name("status").Equal(expression.Value(string(debt.Open)))
	return r.conditionalDelete(ctx, r.key(typeDebt, debtID), cond, "only open debts can be deleted")
}

// SaveNegotiation writes every installment and the negotiated debt in one
// transaction, guarded by the stored debt still being open
func (r *DynamoDBDebtRepository) SaveNegotiation(ctx context.Context, d *debt.Debt, installments []*account.Account) error {
	items := make([]types.TransactWriteItem, 0, len(installments)+1)
	for _, installment := range installments {
		put, err := putItem(r.name, encodeAccount(installment), aws.String("attribute_not_exists(PK)"))
		if err != nil {
			return err
		}
		items = append(items, put)
	}

	update := expression.Set(expression.Name("status"), expression.Value(string(debt.Negotiated))).
		Set(expression.Name("negotiationDetails"), expression.Value(encodeNegotiation(d.NegotiationDetails)))
	cond := expression.Name("status").Equal(expression.Value(string(debt.Open)))
	upd, err := updateItem(r.name, r.key(typeDebt, d.ID), update, cond)
	if err != nil {
		return err
	}
	items = append(items, upd)

	return r.transact(ctx, items, "debt is no longer open")
}

// MarkPaid stores the debt as paid, guarded by it being negotiated
func (r *DynamoDBDebtRepository) MarkPaid(ctx context.Context, d *debt.Debt) error {
	update := expression.Set(expression.Name("status"), expression.Value(string(debt.Paid)))
	cond := expression.Name("status").Equal(expression.Value(string(debt.Negotiated)))
	return r.conditionalUpdate(ctx, r.key(typeDebt, d.ID), update, cond, "debt is no longer negotiated")
}
