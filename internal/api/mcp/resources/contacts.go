package resources

import (
	"context"
	"net/url"
	"strconv"

	"github.com/hirosato/lidere-backoffice/internal/domain/contact"
	"github.com/hirosato/lidere-backoffice/internal/domain/errors"
	"github.com/hirosato/lidere-backoffice/internal/domain/mcp"
)

// ContactsResource lists the address book. Contacts are shared by every
// company, so reads are not scoped.
type ContactsResource struct {
	contactService *contact.Service
}

func NewContactsResource(contactService *contact.Service) *ContactsResource {
	return &ContactsResource{contactService: contactService}
}

func (r *ContactsResource) GetURI() string {
	return scheme + "contacts"
}

func (r *ContactsResource) GetName() string {
	return "Contacts"
}

func (r *ContactsResource) GetDescription() string {
	return "Contacts, newest first. Query parameters: tag, students (true to list only students), or id for a single contact."
}

func (r *ContactsResource) GetMimeType() string {
	return mimeJSON
}

func (r *ContactsResource) Read(ctx context.Context, query url.Values) (*mcp.ReadResourceResult, error) {
	if id := query.Get("id"); id != "" {
		found, err := r.contactService.GetContact(ctx, id)
		if err != nil {
			return nil, err
		}
		return jsonContents(r.GetURI(), found)
	}

	req := &contact.ListContactsRequest{Tag: query.Get("tag")}
	if raw := query.Get("students"); raw != "" {
		studentsOnly, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, errors.NewValidationError("students must be true or false")
		}
		req.StudentsOnly = studentsOnly
	}

	contacts, err := r.contactService.ListContacts(ctx, req)
	if err != nil {
		return nil, err
	}
	return jsonContents(r.GetURI(), contacts)
}
