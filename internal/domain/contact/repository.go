package contact

import (
	"context"
)

// Repository defines the interface for contact data operations
type Repository interface {
	// Create a new contact
	CreateContact(ctx context.Context, contact *Contact) error

	// Get a contact by ID
	GetContact(ctx context.Context, contactID string) (*Contact, error)

	// Get contacts by criteria
	ListContacts(ctx context.Context, filter *ListContactsRequest) ([]*Contact, error)

	// FindStudentByEmail returns the contact with email that already has
	// student access, or nil when there is none
	FindStudentByEmail(ctx context.Context, email string) (*Contact, error)

	// GrantStudentAccess stores the identity and formation grants of a contact
	GrantStudentAccess(ctx context.Context, contactID string, access *StudentAccess, formations []FormationAccess) error
}
