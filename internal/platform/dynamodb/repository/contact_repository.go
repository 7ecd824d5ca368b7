package repository

import (
	"context"
	"log/slog"
	"sort"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/hirosato/lidere-backoffice/internal/domain/contact"
	commonErrors "github.com/hirosato/lidere-backoffice/internal/domain/errors"
	"github.com/hirosato/lidere-backoffice/internal/platform/dynamodb/client"
)

// StudentAccessDDB is the stored form of a student identity binding
type StudentAccessDDB struct {
	UserID    string `dynamodbav:"userId"`
	GrantedAt string `dynamodbav:"grantedAt"`
}

// FormationAccessDDB is the stored form of a formation grant
type FormationAccessDDB struct {
	FormationID string `dynamodbav:"formationId"`
	ExpiresAt   string `dynamodbav:"expiresAt,omitempty"`
}

// ContactDDB is the stored form of a contact
type ContactDDB struct {
	PK     string `dynamodbav:"PK"`
	SK     string `dynamodbav:"SK"`
	GSI1PK string `dynamodbav:"GSI1PK"`
	GSI1SK string `dynamodbav:"GSI1SK"`
	GSI2PK string `dynamodbav:"GSI2PK,omitempty"`
	GSI2SK string `dynamodbav:"GSI2SK,omitempty"`
	Type   string `dynamodbav:"Type"`

	ID              string               `dynamodbav:"id"`
	Name            string               `dynamodbav:"name"`
	Phone           string               `dynamodbav:"phone"`
	Email           string               `dynamodbav:"email,omitempty"`
	Company         string               `dynamodbav:"company,omitempty"`
	Tags            []string             `dynamodbav:"tags,omitempty,stringset"`
	StudentAccess   *StudentAccessDDB    `dynamodbav:"studentAccess,omitempty"`
	FormationAccess []FormationAccessDDB `dynamodbav:"formationAccess,omitempty"`
	CreatedAt       string               `dynamodbav:"createdAt"`
}

func encodeStudentAccess(a *contact.StudentAccess) *StudentAccessDDB {
	if a == nil {
		return nil
	}
	return &StudentAccessDDB{UserID: a.UserID, GrantedAt: formatTimestamp(a.GrantedAt)}
}

func encodeFormationAccess(grants []contact.FormationAccess) []FormationAccessDDB {
	if len(grants) == 0 {
		return nil
	}
	out := make([]FormationAccessDDB, 0, len(grants))
	for _, g := range grants {
		out = append(out, FormationAccessDDB{FormationID: g.FormationID, ExpiresAt: formatOptionalDate(g.ExpiresAt)})
	}
	return out
}

func encodeContact(c *contact.Contact) ContactDDB {
	created := formatTimestamp(c.CreatedAt)
	item := ContactDDB{
		PK:              entityPK(typeContact, c.ID),
		SK:              typeContact,
		GSI1PK:          typeContact,
		GSI1SK:          created + "#" + c.ID,
		Type:            typeContact,
		ID:              c.ID,
		Name:            c.Name,
		Phone:           c.Phone,
		Email:           c.Email,
		Company:         c.Company,
		Tags:            c.Tags,
		StudentAccess:   encodeStudentAccess(c.StudentAccess),
		FormationAccess: encodeFormationAccess(c.FormationAccess),
		CreatedAt:       created,
	}
	if c.Email != "" {
		item.GSI2PK = emailLookupKey(contact.NormalizeEmail(c.Email))
		item.GSI2SK = c.ID
	}
	return item
}

func decodeContact(av map[string]types.AttributeValue) (*contact.Contact, error) {
	var item ContactDDB
	if err := attributevalue.UnmarshalMap(av, &item); err != nil {
		return nil, malformed("contact: %v", err)
	}
	if item.Type != typeContact {
		return nil, malformed("item type %q is not a contact", item.Type)
	}
	if err := requireString("id", item.ID); err != nil {
		return nil, err
	}
	createdAt, err := parseTimestamp("createdAt", item.CreatedAt)
	if err != nil {
		return nil, err
	}

	c := &contact.Contact{
		ID:        item.ID,
		Name:      item.Name,
		Phone:     item.Phone,
		Email:     item.Email,
		Company:   item.Company,
		Tags:      item.Tags,
		CreatedAt: createdAt,
	}
	if s := item.StudentAccess; s != nil {
		if err := requireString("studentAccess.userId", s.UserID); err != nil {
			return nil, err
		}
		granted, err := parseTimestamp("studentAccess.grantedAt", s.GrantedAt)
		if err != nil {
			return nil, err
		}
		c.StudentAccess = &contact.StudentAccess{UserID: s.UserID, GrantedAt: granted}
	}
	for _, g := range item.FormationAccess {
		expires, err := parseOptionalDate("formationAccess.expiresAt", g.ExpiresAt)
		if err != nil {
			return nil, err
		}
		c.FormationAccess = append(c.FormationAccess, contact.FormationAccess{FormationID: g.FormationID, ExpiresAt: expires})
	}
	return c, nil
}

// DynamoDBContactRepository implements the contact.Repository interface
type DynamoDBContactRepository struct {
	table
}

// NewDynamoDBContactRepository creates a new DynamoDBContactRepository
func NewDynamoDBContactRepository(client client.Client, tableName string, logger *slog.Logger) *DynamoDBContactRepository {
	return &DynamoDBContactRepository{table: table{client: client, name: tableName, logger: logger}}
}

// CreateContact stores a new contact
func (r *DynamoDBContactRepository) CreateContact(ctx context.Context, c *contact.Contact) error {
	return r.putNew(ctx, encodeContact(c))
}

// GetContact retrieves a contact by ID
func (r *DynamoDBContactRepository) GetContact(ctx context.Context, contactID string) (*contact.Contact, error) {
	item, err := r.getItem(ctx, typeContact, contactID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, commonErrors.NewNotFoundError("contact not found")
	}
	c, err := decodeContact(item)
	if err != nil {
		r.quarantine(ctx, item, err)
		return nil, commonErrors.NewExternalServiceError("stored contact is malformed", err)
	}
	return c, nil
}

// ListContacts retrieves contacts, newest first
func (r *DynamoDBContactRepository) ListContacts(ctx context.Context, filter *contact.ListContactsRequest) ([]*contact.Contact, error) {
	keyCond := expression.Key("GSI1PK").Equal(expression.Value(typeContact))
	var conds []expression.ConditionBuilder
	if filter.Tag != "" {
		conds = append(conds, expression.Name("tags").Contains(filter.Tag))
	}
	if filter.StudentsOnly {
		conds = append(conds, expression.Name("studentAccess").AttributeExists())
	}

	items, err := r.queryIndex(ctx, gsi1, keyCond, allOf(conds...))
	if err != nil {
		return nil, err
	}
	contacts := r.decodeAll(ctx, items)
	sort.SliceStable(contacts, func(i, j int) bool { return contacts[i].CreatedAt.After(contacts[j].CreatedAt) })
	return contacts, nil
}

// FindStudentByEmail returns the student contact with email, or nil
func (r *DynamoDBContactRepository) FindStudentByEmail(ctx context.Context, email string) (*contact.Contact, error) {
	keyCond := expression.Key("GSI2PK").Equal(expression.Value(emailLookupKey(contact.NormalizeEmail(email))))
	filter := expression.Name("studentAccess").AttributeExists()

	items, err := r.queryIndex(ctx, gsi2, keyCond, &filter)
	if err != nil {
		return nil, err
	}
	for _, c := range r.decodeAll(ctx, items) {
		if c.IsStudent() {
			return c, nil
		}
	}
	return nil, nil
}

// GrantStudentAccess stores the identity binding and formation grants
func (r *DynamoDBContactRepository) GrantStudentAccess(ctx context.Context, contactID string, access *contact.StudentAccess, formations []contact.FormationAccess) error {
	update := expression.Set(expression.Name("studentAccess"), expression.Value(encodeStudentAccess(access)))
	if grants := encodeFormationAccess(formations); grants != nil {
		update = update.Set(expression.Name("formationAccess"), expression.Value(grants))
	}
	cond := expression.Name("PK").AttributeExists()
	err := r.conditionalUpdate(ctx, r.key(typeContact, contactID), update, cond, "contact does not exist")
	if commonErrors.HasCode(err, commonErrors.CodeInvalidState) {
		return commonErrors.NewNotFoundError("contact not found")
	}
	return err
}

func (r *DynamoDBContactRepository) decodeAll(ctx context.Context, items []map[string]types.AttributeValue) []*contact.Contact {
	contacts := make([]*contact.Contact, 0, len(items))
	for _, item := range items {
		c, err := decodeContact(item)
		if err != nil {
			r.quarantine(ctx, item, err)
			continue
		}
		contacts = append(contacts, c)
	}
	return contacts
}
