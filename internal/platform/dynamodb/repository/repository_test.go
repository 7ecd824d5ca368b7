package repository

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirosato/lidere-backoffice/internal/domain/account"
	"github.com/hirosato/lidere-backoffice/internal/domain/contact"
	"github.com/hirosato/lidere-backoffice/internal/domain/debt"
	commonErrors "github.com/hirosato/lidere-backoffice/internal/domain/errors"
	"github.com/hirosato/lidere-backoffice/internal/domain/ledger"
	"github.com/hirosato/lidere-backoffice/internal/platform/dynamodb/client"
)

const testTable = "lidere-test"

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func marshal(t *testing.T, item any) map[string]types.AttributeValue {
	t.Helper()
	av, err := attributevalue.MarshalMap(item)
	require.NoError(t, err)
	return av
}

func hasValue(values map[string]types.AttributeValue, want string) bool {
	for _, v := range values {
		if s, ok := v.(*types.AttributeValueMemberS); ok && s.Value == want {
			return true
		}
	}
	return false
}

func hasName(names map[string]string, want string) bool {
	for _, name := range names {
		if name == want {
			return true
		}
	}
	return false
}

func conditionFailed() error {
	return &types.TransactionCanceledException{
		Message: aws.String("Transaction cancelled"),
		CancellationReasons: []types.CancellationReason{
			{Code: aws.String("None")},
			{Code: aws.String("ConditionalCheckFailed")},
		},
	}
}

func pendingAccount() *account.Account {
	return &account.Account{
		ID:          "01J0ACCOUNT",
		Kind:        account.Payable,
		Description: "Aluguel",
		Amount:      decimal.RequireFromString("1500.00"),
		CompanyID:   "lidere",
		CompanyName: "Lidere",
		Status:      account.Pending,
		Category:    "Infra",
		DueDate:     time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		CreatedAt:   time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestAccountCodec(t *testing.T) {
	t.Run("round trip keeps recurrence and debt link", func(t *testing.T) {
		// Setup
		a := pendingAccount()
		end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
		a.IsRecurring = true
		a.Recurrence = &account.Recurrence{Frequency: account.Monthly, EndDate: &end}
		a.DebtID = "01J0DEBT"

		// Act
		item := encodeAccount(a)
		decoded, err := decodeAccount(marshal(t, item))

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "DEBT#01J0DEBT", item.GSI2PK)
		assert.Equal(t, "lidere#2024-03-10#01J0ACCOUNT", item.GSI1SK)
		assert.True(t, decoded.Amount.Equal(a.Amount))
		assert.Equal(t, account.Monthly, decoded.Recurrence.Frequency)
		assert.Equal(t, end, *decoded.Recurrence.EndDate)
	})

	t.Run("paid without paidAt is malformed", func(t *testing.T) {
		// Setup
		item := encodeAccount(pendingAccount())
		item.Status = string(account.Paid)

		// Act
		_, err := decodeAccount(marshal(t, item))

		// Assert
		assert.ErrorIs(t, err, errMalformed)
	})

	t.Run("pending with a linked entry is malformed", func(t *testing.T) {
		// Setup
		item := encodeAccount(pendingAccount())
		item.LedgerEntryID = "01J0ENTRY"

		// Act
		_, err := decodeAccount(marshal(t, item))

		// Assert
		assert.ErrorIs(t, err, errMalformed)
	})

	t.Run("bad amount is malformed", func(t *testing.T) {
		// Setup
		item := encodeAccount(pendingAccount())
		item.Amount = "R$ 10"

		// Act
		_, err := decodeAccount(marshal(t, item))

		// Assert
		assert.ErrorIs(t, err, errMalformed)
	})
}

func TestGetAccount(t *testing.T) {
	t.Run("missing item", func(t *testing.T) {
		// Setup
		repo := NewDynamoDBAccountRepository(client.NewMockDynamoDBClient(), testTable, discard)

		// Act
		_, err := repo.GetAccount(context.Background(), "nope")

		// Assert
		assert.True(t, commonErrors.HasCode(err, commonErrors.CodeNotFound))
	})

	t.Run("malformed item", func(t *testing.T) {
		// Setup
		mock := client.NewMockDynamoDBClient()
		item := encodeAccount(pendingAccount())
		item.DueDate = "10/03/2024"
		mock.GetItemFn = func(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
			return &dynamodb.GetItemOutput{Item: marshal(t, item)}, nil
		}
		repo := NewDynamoDBAccountRepository(mock, testTable, discard)

		// Act
		_, err := repo.GetAccount(context.Background(), "01J0ACCOUNT")

		// Assert
		assert.True(t, commonErrors.HasCode(err, commonErrors.CodeExternalServiceFailure))
	})
}

func TestListAccounts(t *testing.T) {
	t.Run("skips malformed items and orders by due date", func(t *testing.T) {
		// Setup
		mock := client.NewMockDynamoDBClient()
		later := pendingAccount()
		later.ID = "B"
		later.DueDate = later.DueDate.AddDate(0, 1, 0)
		earlier := pendingAccount()
		earlier.ID = "A"
		broken := encodeAccount(pendingAccount())
		broken.Kind = "loan"

		var input *dynamodb.QueryInput
		mock.QueryFn = func(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
			input = params
			return &dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{
				marshal(t, encodeAccount(later)),
				marshal(t, broken),
				marshal(t, encodeAccount(earlier)),
			}}, nil
		}
		repo := NewDynamoDBAccountRepository(mock, testTable, discard)

		// Act
		accounts, err := repo.ListAccounts(context.Background(), &account.ListAccountsRequest{CompanyID: "lidere", Status: account.Pending})

		// Assert
		require.NoError(t, err)
		require.Len(t, accounts, 2)
		assert.Equal(t, "A", accounts[0].ID)
		assert.Equal(t, gsi1, aws.ToString(input.IndexName))
		assert.True(t, hasValue(input.ExpressionAttributeValues, "lidere#"))
		assert.NotNil(t, input.FilterExpression)
	})

	t.Run("debt filter uses the lookup index", func(t *testing.T) {
		// Setup
		mock := client.NewMockDynamoDBClient()
		var input *dynamodb.QueryInput
		mock.QueryFn = func(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
			input = params
			return &dynamodb.QueryOutput{}, nil
		}
		repo := NewDynamoDBAccountRepository(mock, testTable, discard)

		// Act
		_, err := repo.ListAccounts(context.Background(), &account.ListAccountsRequest{DebtID: "01J0DEBT"})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, gsi2, aws.ToString(input.IndexName))
		assert.True(t, hasValue(input.ExpressionAttributeValues, "DEBT#01J0DEBT"))
	})

	t.Run("follows pagination", func(t *testing.T) {
		// Setup
		mock := client.NewMockDynamoDBClient()
		calls := 0
		mock.QueryFn = func(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
			calls++
			a := pendingAccount()
			if calls == 1 {
				a.ID = "first"
				return &dynamodb.QueryOutput{
					Items:            []map[string]types.AttributeValue{marshal(t, encodeAccount(a))},
					LastEvaluatedKey: map[string]types.AttributeValue{"PK": &types.AttributeValueMemberS{Value: "ACCOUNT#first"}},
				}, nil
			}
			assert.NotEmpty(t, params.ExclusiveStartKey)
			a.ID = "second"
			return &dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{marshal(t, encodeAccount(a))}}, nil
		}
		repo := NewDynamoDBAccountRepository(mock, testTable, discard)

		// Act
		accounts, err := repo.ListAccounts(context.Background(), &account.ListAccountsRequest{})

		// Assert
		require.NoError(t, err)
		assert.Len(t, accounts, 2)
		assert.Equal(t, 2, calls)
	})
}

func TestSettleAccount(t *testing.T) {
	paidAt := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	entry := &ledger.Entry{
		ID:              "01J0ENTRY",
		Description:     "Aluguel",
		Amount:          decimal.RequireFromString("1500.00"),
		Type:            ledger.Expense,
		Date:            time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		Category:        "Infra",
		CompanyID:       "lidere",
		CompanyName:     "Lidere",
		CreatedAt:       paidAt,
		SourceAccountID: "01J0ACCOUNT",
	}

	t.Run("writes entry and status in one transaction", func(t *testing.T) {
		// Setup
		mock := client.NewMockDynamoDBClient()
		var input *dynamodb.TransactWriteItemsInput
		mock.TransactWriteItemsFn = func(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
			input = params
			return &dynamodb.TransactWriteItemsOutput{}, nil
		}
		repo := NewDynamoDBAccountRepository(mock, testTable, discard)
		a := pendingAccount()
		a.Status = account.Paid
		a.PaidAt = &paidAt

		// Act
		err := repo.SettleAccount(context.Background(), a, entry)

		// Assert
		require.NoError(t, err)
		require.Len(t, input.TransactItems, 2)
		put := input.TransactItems[0].Put
		require.NotNil(t, put)
		assert.Equal(t, "attribute_not_exists(PK)", aws.ToString(put.ConditionExpression))
		assert.Equal(t, "SOURCE_ACCOUNT#01J0ACCOUNT", put.Item["GSI2PK"].(*types.AttributeValueMemberS).Value)
		update := input.TransactItems[1].Update
		require.NotNil(t, update)
		assert.True(t, hasValue(update.ExpressionAttributeValues, "paid"))
		assert.True(t, hasValue(update.ExpressionAttributeValues, "pending"))
		assert.True(t, hasValue(update.ExpressionAttributeValues, "01J0ENTRY"))
		assert.True(t, hasName(update.ExpressionAttributeNames, "ledgerEntryId"))
	})

	t.Run("lost race maps to invalid state", func(t *testing.T) {
		// Setup
		mock := client.NewMockDynamoDBClient()
		mock.TransactWriteItemsFn = func(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
			return nil, conditionFailed()
		}
		repo := NewDynamoDBAccountRepository(mock, testTable, discard)
		a := pendingAccount()
		a.PaidAt = &paidAt

		// Act
		err := repo.SettleAccount(context.Background(), a, entry)

		// Assert
		assert.True(t, commonErrors.HasCode(err, commonErrors.CodeInvalidState))
	})

	t.Run("store failure maps to external service failure", func(t *testing.T) {
		// Setup
		mock := client.NewMockDynamoDBClient()
		mock.TransactWriteItemsFn = func(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
			return nil, stderrors.New("throttled")
		}
		repo := NewDynamoDBAccountRepository(mock, testTable, discard)
		a := pendingAccount()
		a.PaidAt = &paidAt

		// Act
		err := repo.SettleAccount(context.Background(), a, entry)

		// Assert
		assert.True(t, commonErrors.HasCode(err, commonErrors.CodeExternalServiceFailure))
	})
}

func TestReopenAccount(t *testing.T) {
	t.Run("without an entry only the status changes", func(t *testing.T) {
		// Setup
		mock := client.NewMockDynamoDBClient()
		var input *dynamodb.TransactWriteItemsInput
		mock.TransactWriteItemsFn = func(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
			input = params
			return &dynamodb.TransactWriteItemsOutput{}, nil
		}
		repo := NewDynamoDBAccountRepository(mock, testTable, discard)

		// Act
		err := repo.ReopenAccount(context.Background(), pendingAccount(), nil)

		// Assert
		require.NoError(t, err)
		require.Len(t, input.TransactItems, 1)
		assert.Contains(t, aws.ToString(input.TransactItems[0].Update.UpdateExpression), "REMOVE")
	})

	t.Run("deletes the owned entry", func(t *testing.T) {
		// Setup
		mock := client.NewMockDynamoDBClient()
		var input *dynamodb.TransactWriteItemsInput
		mock.TransactWriteItemsFn = func(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
			input = params
			return &dynamodb.TransactWriteItemsOutput{}, nil
		}
		repo := NewDynamoDBAccountRepository(mock, testTable, discard)

		// Act
		err := repo.ReopenAccount(context.Background(), pendingAccount(), &ledger.Entry{ID: "01J0ENTRY"})

		// Assert
		require.NoError(t, err)
		require.Len(t, input.TransactItems, 2)
		del := input.TransactItems[0].Delete
		require.NotNil(t, del)
		assert.Equal(t, "LEDGER#01J0ENTRY", del.Key["PK"].(*types.AttributeValueMemberS).Value)
		assert.True(t, hasValue(del.ExpressionAttributeValues, "01J0ACCOUNT"))
		assert.Contains(t, aws.ToString(del.ConditionExpression), "attribute_not_exists")
		update := input.TransactItems[1].Update
		assert.Contains(t, aws.ToString(update.UpdateExpression), "REMOVE")
		assert.True(t, hasName(update.ExpressionAttributeNames, "ledgerEntryId"))
	})

	t.Run("account no longer paid maps to invalid state", func(t *testing.T) {
		// Setup
		mock := client.NewMockDynamoDBClient()
		mock.TransactWriteItemsFn = func(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
			return nil, conditionFailed()
		}
		repo := NewDynamoDBAccountRepository(mock, testTable, discard)

		// Act
		err := repo.ReopenAccount(context.Background(), pendingAccount(), &ledger.Entry{ID: "01J0ENTRY"})

		// Assert
		assert.True(t, commonErrors.HasCode(err, commonErrors.CodeInvalidState))
		assert.Equal(t, "account is no longer paid", commonErrors.AsAppError(err).Message)
	})

	t.Run("entry owned by another account maps to conflict", func(t *testing.T) {
		// Setup
		mock := client.NewMockDynamoDBClient()
		mock.TransactWriteItemsFn = func(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
			return nil, &types.TransactionCanceledException{
				Message: aws.String("Transaction cancelled"),
				CancellationReasons: []types.CancellationReason{
					{Code: aws.String("ConditionalCheckFailed")},
					{Code: aws.String("None")},
				},
			}
		}
		repo := NewDynamoDBAccountRepository(mock, testTable, discard)

		// Act
		err := repo.ReopenAccount(context.Background(), pendingAccount(), &ledger.Entry{ID: "01J0ENTRY"})

		// Assert
		assert.True(t, commonErrors.HasCode(err, commonErrors.CodeConflict))
	})
}

func TestDeleteEntry_Owned(t *testing.T) {
	// Setup
	mock := client.NewMockDynamoDBClient()
	mock.DeleteItemFn = func(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("owned")}
	}
	repo := NewDynamoDBLedgerRepository(mock, testTable, discard)

	// Act
	err := repo.DeleteEntry(context.Background(), "01J0ENTRY")

	// Assert
	assert.True(t, commonErrors.HasCode(err, commonErrors.CodeInvalidState))
}

func TestCreateEntry_Duplicate(t *testing.T) {
	// Setup
	mock := client.NewMockDynamoDBClient()
	mock.PutItemFn = func(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("exists")}
	}
	repo := NewDynamoDBLedgerRepository(mock, testTable, discard)

	// Act
	err := repo.CreateEntry(context.Background(), &ledger.Entry{ID: "dup", Type: ledger.Income})

	// Assert
	assert.True(t, commonErrors.HasCode(err, commonErrors.CodeConflict))
}

func TestSaveNegotiation(t *testing.T) {
	// Setup
	mock := client.NewMockDynamoDBClient()
	var input *dynamodb.TransactWriteItemsInput
	mock.TransactWriteItemsFn = func(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
		input = params
		return &dynamodb.TransactWriteItemsOutput{}, nil
	}
	repo := NewDynamoDBDebtRepository(mock, testTable, discard)

	first := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	d := &debt.Debt{
		ID:             "01J0DEBT",
		Description:    "Fornecedor",
		OriginalAmount: decimal.RequireFromString("3000"),
		CompanyID:      "lidere",
		Status:         debt.Negotiated,
		CreatedAt:      first,
		NegotiationDetails: &debt.NegotiationDetails{
			NumberOfInstallments: 3,
			InstallmentAmount:    decimal.RequireFromString("1000"),
			FirstInstallmentDate: first,
			LinkedAccountIDs:     []string{"a1", "a2", "a3"},
		},
	}
	installments := debt.BuildInstallments(d, 3, decimal.RequireFromString("1000"), first, first)

	// Act
	err := repo.SaveNegotiation(context.Background(), d, installments)

	// Assert
	require.NoError(t, err)
	require.Len(t, input.TransactItems, 4)
	for _, item := range input.TransactItems[:3] {
		require.NotNil(t, item.Put)
		assert.Equal(t, "DEBT#01J0DEBT", item.Put.Item["GSI2PK"].(*types.AttributeValueMemberS).Value)
	}
	update := input.TransactItems[3].Update
	require.NotNil(t, update)
	assert.True(t, hasValue(update.ExpressionAttributeValues, "open"))
	assert.True(t, hasValue(update.ExpressionAttributeValues, "negotiated"))
}

func TestDebtCodec_NegotiatedWithoutDetails(t *testing.T) {
	// Setup
	item := encodeDebt(&debt.Debt{
		ID:             "01J0DEBT",
		OriginalAmount: decimal.RequireFromString("10"),
		Status:         debt.Negotiated,
		CreatedAt:      time.Now(),
	})

	// Act
	_, err := decodeDebt(marshal(t, item))

	// Assert
	assert.ErrorIs(t, err, errMalformed)
}

func TestMarkDebtPaid_NotNegotiated(t *testing.T) {
	// Setup
	mock := client.NewMockDynamoDBClient()
	mock.UpdateItemFn = func(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("status")}
	}
	repo := NewDynamoDBDebtRepository(mock, testTable, discard)

	// Act
	err := repo.MarkPaid(context.Background(), &debt.Debt{ID: "01J0DEBT"})

	// Assert
	assert.True(t, commonErrors.HasCode(err, commonErrors.CodeInvalidState))
}

func TestContactRepository(t *testing.T) {
	t.Run("email lookup key is normalized", func(t *testing.T) {
		// Act
		item := encodeContact(&contact.Contact{ID: "c1", Name: "Ana", Email: " Ana@Lidere.com ", CreatedAt: time.Now()})

		// Assert
		assert.Equal(t, "EMAIL#ana@lidere.com", item.GSI2PK)
	})

	t.Run("no student with email", func(t *testing.T) {
		// Setup
		repo := NewDynamoDBContactRepository(client.NewMockDynamoDBClient(), testTable, discard)

		// Act
		found, err := repo.FindStudentByEmail(context.Background(), "ana@lidere.com")

		// Assert
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("finds student with email", func(t *testing.T) {
		// Setup
		mock := client.NewMockDynamoDBClient()
		student := &contact.Contact{
			ID:            "c1",
			Name:          "Ana",
			Email:         "ana@lidere.com",
			CreatedAt:     time.Now(),
			StudentAccess: &contact.StudentAccess{UserID: "user-1", GrantedAt: time.Now()},
		}
		var input *dynamodb.QueryInput
		mock.QueryFn = func(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
			input = params
			return &dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{marshal(t, encodeContact(student))}}, nil
		}
		repo := NewDynamoDBContactRepository(mock, testTable, discard)

		// Act
		found, err := repo.FindStudentByEmail(context.Background(), "ANA@lidere.com")

		// Assert
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "user-1", found.StudentAccess.UserID)
		assert.Equal(t, gsi2, aws.ToString(input.IndexName))
		assert.True(t, hasValue(input.ExpressionAttributeValues, "EMAIL#ana@lidere.com"))
	})

	t.Run("grant on missing contact", func(t *testing.T) {
		// Setup
		mock := client.NewMockDynamoDBClient()
		mock.UpdateItemFn = func(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
			return nil, &types.ConditionalCheckFailedException{Message: aws.String("missing")}
		}
		repo := NewDynamoDBContactRepository(mock, testTable, discard)

		// Act
		err := repo.GrantStudentAccess(context.Background(), "c1", &contact.StudentAccess{UserID: "u", GrantedAt: time.Now()}, nil)

		// Assert
		assert.True(t, commonErrors.HasCode(err, commonErrors.CodeNotFound))
	})
}

func TestListFormations_SkipsMalformed(t *testing.T) {
	// Setup
	mock := client.NewMockDynamoDBClient()
	mock.QueryFn = func(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
		return &dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{
			marshal(t, FormationDDB{PK: "FORMATION#f1", SK: typeFormation, Type: typeFormation, ID: "f1", Name: "Liderança"}),
			marshal(t, FormationDDB{PK: "FORMATION#f2", SK: typeFormation, Type: typeFormation, ID: "f2"}),
		}}, nil
	}
	repo := NewDynamoDBFormationRepository(mock, testTable, discard)

	// Act
	formations, err := repo.ListFormations(context.Background())

	// Assert
	require.NoError(t, err)
	require.Len(t, formations, 1)
	assert.Equal(t, "Liderança", formations[0].Name)
}
