package cognito

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"

	"github.com/hirosato/lidere-backoffice/internal/domain/auth"
)

// API is the subset of the Cognito client the provisioner calls
type API interface {
	AdminCreateUser(ctx context.Context, params *cognitoidentityprovider.AdminCreateUserInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.AdminCreateUserOutput, error)
	AdminAddUserToGroup(ctx context.Context, params *cognitoidentityprovider.AdminAddUserToGroupInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.AdminAddUserToGroupOutput, error)
	AdminDeleteUser(ctx context.Context, params *cognitoidentityprovider.AdminDeleteUserInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.AdminDeleteUserOutput, error)
}

// Provisioner creates student logins in a Cognito user pool
type Provisioner struct {
	client     API
	userPoolID string
	groupName  string
	log        *slog.Logger
}

// NewProvisioner creates a new Cognito provisioner. Users are added to
// groupName when it is not empty.
func NewProvisioner(client API, userPoolID, groupName string, log *slog.Logger) *Provisioner {
	return &Provisioner{
		client:     client,
		userPoolID: userPoolID,
		groupName:  groupName,
		log:        log,
	}
}

// CreateIdentity registers email with a temporary password. Cognito forces
// the change on first sign-in and mails the invitation.
func (p *Provisioner) CreateIdentity(ctx context.Context, email, name, temporaryPassword string) (*auth.Identity, error) {
	attributes := []types.AttributeType{
		{Name: aws.String("email"), Value: aws.String(email)},
		{Name: aws.String("email_verified"), Value: aws.String("true")},
	}
	if name != "" {
		attributes = append(attributes, types.AttributeType{Name: aws.String("name"), Value: aws.String(name)})
	}

	out, err := p.client.AdminCreateUser(ctx, &cognitoidentityprovider.AdminCreateUserInput{
		UserPoolId:             aws.String(p.userPoolID),
		Username:               aws.String(email),
		TemporaryPassword:      aws.String(temporaryPassword),
		UserAttributes:         attributes,
		DesiredDeliveryMediums: []types.DeliveryMediumType{types.DeliveryMediumTypeEmail},
	})
	if err != nil {
		return nil, translateError(email, err)
	}

	if p.groupName != "" {
		_, err := p.client.AdminAddUserToGroup(ctx, &cognitoidentityprovider.AdminAddUserToGroupInput{
			UserPoolId: aws.String(p.userPoolID),
			Username:   aws.String(email),
			GroupName:  aws.String(p.groupName),
		})
		if err != nil {
			p.rollback(ctx, email)
			return nil, fmt.Errorf("%w: add to group %s: %w", auth.ErrProviderFailure, p.groupName, err)
		}
	}

	identity := &auth.Identity{UserID: userSub(out.User), Email: email}
	if identity.UserID == "" {
		identity.UserID = email
	}

	p.log.InfoContext(ctx, "student identity created", "userId", identity.UserID)
	return identity, nil
}

// rollback deletes a user that could not be fully set up so that a retry is
// not rejected as a duplicate
func (p *Provisioner) rollback(ctx context.Context, email string) {
	_, err := p.client.AdminDeleteUser(ctx, &cognitoidentityprovider.AdminDeleteUserInput{
		UserPoolId: aws.String(p.userPoolID),
		Username:   aws.String(email),
	})
	if err != nil {
		p.log.WarnContext(ctx, "failed to remove partially created identity", "error", err)
	}
}

func userSub(user *types.UserType) string {
	if user == nil {
		return ""
	}
	for _, attr := range user.Attributes {
		if aws.ToString(attr.Name) == "sub" {
			return aws.ToString(attr.Value)
		}
	}
	return aws.ToString(user.Username)
}

func translateError(email string, err error) error {
	var exists *types.UsernameExistsException
	if stderrors.As(err, &exists) {
		return auth.EmailInUseError(email)
	}
	var weak *types.InvalidPasswordException
	if stderrors.As(err, &weak) {
		return fmt.Errorf("%w: %s", auth.ErrWeakPassword, aws.ToString(weak.Message))
	}
	var invalid *types.InvalidParameterException
	if stderrors.As(err, &invalid) {
		return auth.ValidationError(aws.ToString(invalid.Message))
	}
	return fmt.Errorf("%w: %w", auth.ErrProviderFailure, err)
}
