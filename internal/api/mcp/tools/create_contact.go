package tools

import (
	"context"
	"encoding/json"

	"github.com/hirosato/lidere-backoffice/internal/domain/contact"
	"github.com/hirosato/lidere-backoffice/internal/domain/mcp"
)

// CreateContactTool adds one contact to the address book
type CreateContactTool struct {
	contactService *contact.Service
}

func NewCreateContactTool(contactService *contact.Service) *CreateContactTool {
	return &CreateContactTool{contactService: contactService}
}

func (t *CreateContactTool) GetName() string {
	return "create-contact"
}

func (t *CreateContactTool) GetDescription() string {
	return "Adds a single contact without student access. Use import-contacts to provision students."
}

func (t *CreateContactTool) GetInputSchema() mcp.JSONSchema {
	return mcp.JSONSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"name":    stringProp("Full name"),
			"phone":   stringProp("Phone number"),
			"email":   stringProp("Email address"),
			"company": stringProp("Company the contact works for"),
			"tags": map[string]interface{}{
				"type":  "array",
				"items": map[string]interface{}{"type": "string"},
			},
		},
		Required:             []string{"name", "phone"},
		AdditionalProperties: &noExtraProperties,
	}
}

func (t *CreateContactTool) Execute(ctx context.Context, arguments json.RawMessage) (*mcp.CallToolResult, error) {
	var req contact.CreateContactRequest
	if err := decodeArguments(arguments, &req); err != nil {
		return nil, err
	}

	created, err := t.contactService.CreateContact(ctx, &req)
	if err != nil {
		return nil, err
	}
	return mcp.JSONResult("Contact created:", created)
}
