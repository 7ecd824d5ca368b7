package repository

import (
	"context"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/hirosato/lidere-backoffice/internal/domain/formation"
	"github.com/hirosato/lidere-backoffice/internal/platform/dynamodb/client"
)

// FormationDDB is the stored form of a catalog formation
type FormationDDB struct {
	PK     string `dynamodbav:"PK"`
	SK     string `dynamodbav:"SK"`
	GSI1PK string `dynamodbav:"GSI1PK"`
	GSI1SK string `dynamodbav:"GSI1SK"`
	Type   string `dynamodbav:"Type"`

	ID   string `dynamodbav:"id"`
	Name string `dynamodbav:"name"`
}

func decodeFormation(av map[string]types.AttributeValue) (*formation.Formation, error) {
	var item FormationDDB
	if err := attributevalue.UnmarshalMap(av, &item); err != nil {
		return nil, malformed("formation: %v", err)
	}
	if err := requireString("id", item.ID); err != nil {
		return nil, err
	}
	if err := requireString("name", item.Name); err != nil {
		return nil, err
	}
	return &formation.Formation{ID: item.ID, Name: item.Name}, nil
}

// DynamoDBFormationRepository reads the formation catalog
type DynamoDBFormationRepository struct {
	table
}

// NewDynamoDBFormationRepository creates a new DynamoDBFormationRepository
func NewDynamoDBFormationRepository(client client.Client, tableName string, logger *slog.Logger) *DynamoDBFormationRepository {
	return &DynamoDBFormationRepository{table: table{client: client, name: tableName, logger: logger}}
}

// ListFormations returns the whole catalog ordered by name
func (r *DynamoDBFormationRepository) ListFormations(ctx context.Context) ([]*formation.Formation, error) {
	keyCond := expression.Key("GSI1PK").Equal(expression.Value(typeFormation))
	items, err := r.queryIndex(ctx, gsi1, keyCond, nil)
	if err != nil {
		return nil, err
	}

	formations := make([]*formation.Formation, 0, len(items))
	for _, item := range items {
		f, err := decodeFormation(item)
		if err != nil {
			r.quarantine(ctx, item, err)
			continue
		}
		formations = append(formations, f)
	}
	return formations, nil
}
