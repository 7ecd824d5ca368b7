package tools

import (
	"context"
	"encoding/json"

	"github.com/hirosato/lidere-backoffice/internal/domain/ledger"
	"github.com/hirosato/lidere-backoffice/internal/domain/mcp"
)

// CreateLedgerEntryTool records a manual income or expense
type CreateLedgerEntryTool struct {
	ledgerService *ledger.Service
}

func NewCreateLedgerEntryTool(ledgerService *ledger.Service) *CreateLedgerEntryTool {
	return &CreateLedgerEntryTool{ledgerService: ledgerService}
}

func (t *CreateLedgerEntryTool) GetName() string {
	return "create-ledger-entry"
}

func (t *CreateLedgerEntryTool) GetDescription() string {
	return "Records a manual income or expense in the ledger. Entries created by paying an account are managed through the account."
}

func (t *CreateLedgerEntryTool) GetInputSchema() mcp.JSONSchema {
	return mcp.JSONSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"description": stringProp("What the entry is for"),
			"amount":      amountProp("Entry amount"),
			"type":        enumProp("Direction of the money", string(ledger.Income), string(ledger.Expense)),
			"date":        dateProp("Date the money moved"),
			"category":    stringProp("Ledger category"),
			"companyId":   stringProp("Owning company. Defaults to X-Company-Id"),
			"companyName": stringProp("Display name of the owning company"),
		},
		Required:             []string{"description", "amount", "type", "date"},
		AdditionalProperties: &noExtraProperties,
	}
}

func (t *CreateLedgerEntryTool) Execute(ctx context.Context, arguments json.RawMessage) (*mcp.CallToolResult, error) {
	var req ledger.CreateEntryRequest
	if err := decodeArguments(arguments, &req); err != nil {
		return nil, err
	}

	companyID, companyName, err := scopedCompany(ctx, req.CompanyID, req.CompanyName)
	if err != nil {
		return nil, err
	}
	req.CompanyID = companyID
	req.CompanyName = companyName

	entry, err := t.ledgerService.CreateEntry(ctx, &req)
	if err != nil {
		return nil, err
	}
	return mcp.JSONResult("Ledger entry created:", entry)
}

// DeleteLedgerEntryTool removes a manual ledger entry
type DeleteLedgerEntryTool struct {
	ledgerService *ledger.Service
}

func NewDeleteLedgerEntryTool(ledgerService *ledger.Service) *DeleteLedgerEntryTool {
	return &DeleteLedgerEntryTool{ledgerService: ledgerService}
}

func (t *DeleteLedgerEntryTool) GetName() string {
	return "delete-ledger-entry"
}

func (t *DeleteLedgerEntryTool) GetDescription() string {
	return "Deletes a manual ledger entry. Entries created by paying an account are removed by marking the account pending."
}

func (t *DeleteLedgerEntryTool) GetInputSchema() mcp.JSONSchema {
	return mcp.JSONSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"entryId": idProp("ledger entry"),
		},
		Required:             []string{"entryId"},
		AdditionalProperties: &noExtraProperties,
	}
}

func (t *DeleteLedgerEntryTool) Execute(ctx context.Context, arguments json.RawMessage) (*mcp.CallToolResult, error) {
	var args struct {
		EntryID string `json:"entryId"`
	}
	if err := decodeArguments(arguments, &args); err != nil {
		return nil, err
	}
	entry, err := t.ledgerService.GetEntry(ctx, args.EntryID)
	if err != nil {
		return nil, err
	}
	if err := checkScope(ctx, entry.CompanyID, "ledger entry"); err != nil {
		return nil, err
	}
	if err := t.ledgerService.DeleteEntry(ctx, entry.ID); err != nil {
		return nil, err
	}
	return mcp.JSONResult("Ledger entry deleted:", map[string]string{"entryId": entry.ID})
}
