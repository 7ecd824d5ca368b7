package repository

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	commonErrors "github.com/hirosato/lidere-backoffice/internal/domain/errors"
	"github.com/hirosato/lidere-backoffice/internal/platform/dynamodb/client"
)

// errMalformed marks a stored item that failed decoding
var errMalformed = stderrors.New("malformed item")

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errMalformed, fmt.Sprintf(format, args...))
}

// table bundles what every repository needs to reach the table
type table struct {
	client client.Client
	name   string
	logger *slog.Logger
}

func (t table) key(entityType, id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: entityPK(entityType, id)},
		"SK": &types.AttributeValueMemberS{Value: entityType},
	}
}

// getItem returns the stored item, or nil when it does not exist
func (t table) getItem(ctx context.Context, entityType, id string) (map[string]types.AttributeValue, error) {
	out, err := t.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(t.name),
		Key:            t.key(entityType, id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, commonErrors.NewExternalServiceError(fmt.Sprintf("failed to read %s", entityType), err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	return out.Item, nil
}

// putNew stores a new item, failing with CONFLICT when the key is taken
func (t table) putNew(ctx context.Context, item any) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return commonErrors.NewInternalError("failed to marshal item", err)
	}
	_, err = t.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(t.name),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		if isConditionFailure(err) {
			return commonErrors.NewConflictError("item already exists")
		}
		return commonErrors.NewExternalServiceError("failed to write item", err)
	}
	return nil
}

// queryIndex runs a query on index until every page is read
func (t table) queryIndex(ctx context.Context, index string, keyCond expression.KeyConditionBuilder, filter *expression.ConditionBuilder) ([]map[string]types.AttributeValue, error) {
	builder := expression.NewBuilder().WithKeyCondition(keyCond)
	if filter != nil {
		builder = builder.WithFilter(*filter)
	}
	expr, err := builder.Build()
	if err != nil {
		return nil, commonErrors.NewInternalError("failed to build expression", err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(t.name),
		IndexName:                 aws.String(index),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}

	var items []map[string]types.AttributeValue
	for {
		out, err := t.client.Query(ctx, input)
		if err != nil {
			return nil, commonErrors.NewExternalServiceError("failed to query table", err)
		}
		items = append(items, out.Items...)
		if len(out.LastEvaluatedKey) == 0 {
			return items, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

// transact commits items atomically. A failed condition maps to
// INVALID_STATE with message; any other failure to EXTERNAL_SERVICE_FAILURE.
func (t table) transact(ctx context.Context, items []types.TransactWriteItem, message string) error {
	return t.transactEach(ctx, items, nil, message)
}

// transactEach is transact with per-item errors. When only items listed in
// failures had their condition fail, the first one's error is returned.
func (t table) transactEach(ctx context.Context, items []types.TransactWriteItem, failures map[int]error, message string) error {
	_, err := t.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: items,
	})
	if err == nil {
		return nil
	}
	if !isConditionFailure(err) {
		return commonErrors.NewExternalServiceError("failed to commit batch", err)
	}
	var mapped error
	for _, i := range failedItems(err) {
		itemErr, ok := failures[i]
		if !ok {
			return commonErrors.NewInvalidStateError(message)
		}
		if mapped == nil {
			mapped = itemErr
		}
	}
	if mapped != nil {
		return mapped
	}
	return commonErrors.NewInvalidStateError(message)
}

// quarantine logs an item that could not be decoded
func (t table) quarantine(ctx context.Context, item map[string]types.AttributeValue, err error) {
	pk := ""
	if v, ok := item["PK"].(*types.AttributeValueMemberS); ok {
		pk = v.Value
	}
	t.logger.WarnContext(ctx, "skipping malformed item", "pk", pk, "error", err)
}

// isConditionFailure reports whether err is a failed condition expression,
// either on a single write or inside a transaction
func isConditionFailure(err error) bool {
	var condErr *types.ConditionalCheckFailedException
	if stderrors.As(err, &condErr) {
		return true
	}
	var txErr *types.TransactionCanceledException
	if stderrors.As(err, &txErr) {
		for _, reason := range txErr.CancellationReasons {
			if aws.ToString(reason.Code) == "ConditionalCheckFailed" {
				return true
			}
		}
	}
	return false
}

// failedItems lists the positions of the transaction items whose condition
// failed
func failedItems(err error) []int {
	var txErr *types.TransactionCanceledException
	if !stderrors.As(err, &txErr) {
		return nil
	}
	var failed []int
	for i, reason := range txErr.CancellationReasons {
		if aws.ToString(reason.Code) == "ConditionalCheckFailed" {
			failed = append(failed, i)
		}
	}
	return failed
}

func putItem(tableName string, item any, condition *string) (types.TransactWriteItem, error) {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return types.TransactWriteItem{}, commonErrors.NewInternalError("failed to marshal item", err)
	}
	return types.TransactWriteItem{
		Put: &types.Put{
			TableName:           aws.String(tableName),
			Item:                av,
			ConditionExpression: condition,
		},
	}, nil
}

func updateItem(tableName string, key map[string]types.AttributeValue, update expression.UpdateBuilder, cond expression.ConditionBuilder) (types.TransactWriteItem, error) {
	expr, err := expression.NewBuilder().WithUpdate(update).WithCondition(cond).Build()
	if err != nil {
		return types.TransactWriteItem{}, commonErrors.NewInternalError("failed to build expression", err)
	}
	return types.TransactWriteItem{
		Update: &types.Update{
			TableName:                 aws.String(tableName),
			Key:                       key,
			UpdateExpression:          expr.Update(),
			ConditionExpression:       expr.Condition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
		},
	}, nil
}

func deleteItem(tableName string, key map[string]types.AttributeValue, cond expression.ConditionBuilder) (types.TransactWriteItem, error) {
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return types.TransactWriteItem{}, commonErrors.NewInternalError("failed to build expression", err)
	}
	return types.TransactWriteItem{
		Delete: &types.Delete{
			TableName:                 aws.String(tableName),
			Key:                       key,
			ConditionExpression:       expr.Condition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
		},
	}, nil
}

// conditionalUpdate applies update when cond holds. A failed condition maps
// to INVALID_STATE with message.
func (t table) conditionalUpdate(ctx context.Context, key map[string]types.AttributeValue, update expression.UpdateBuilder, cond expression.ConditionBuilder, message string) error {
	expr, err := expression.NewBuilder().WithUpdate(update).WithCondition(cond).Build()
	if err != nil {
		return commonErrors.NewInternalError("failed to build expression", err)
	}
	_, err = t.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(t.name),
		Key:                       key,
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		if isConditionFailure(err) {
			return commonErrors.NewInvalidStateError(message)
		}
		return commonErrors.NewExternalServiceError("failed to update item", err)
	}
	return nil
}

// conditionalDelete removes the item when cond holds
func (t table) conditionalDelete(ctx context.Context, key map[string]types.AttributeValue, cond expression.ConditionBuilder, message string) error {
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return commonErrors.NewInternalError("failed to build expression", err)
	}
	_, err = t.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                 aws.String(t.name),
		Key:                       key,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		if isConditionFailure(err) {
			return commonErrors.NewInvalidStateError(message)
		}
		return commonErrors.NewExternalServiceError("failed to delete item", err)
	}
	return nil
}

// allOf joins conds with AND, returning nil when there are none
func allOf(conds ...expression.ConditionBuilder) *expression.ConditionBuilder {
	if len(conds) == 0 {
		return nil
	}
	c := conds[0]
	for _, other := range conds[1:] {
		c = c.And(other)
	}
	return &c
}
