package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/hirosato/lidere-backoffice/internal/domain/account"
	"github.com/hirosato/lidere-backoffice/internal/domain/mcp"
)

// CreateAccountTool registers a payable or receivable account
type CreateAccountTool struct {
	accountService *account.Service
}

func NewCreateAccountTool(accountService *account.Service) *CreateAccountTool {
	return &CreateAccountTool{accountService: accountService}
}

func (t *CreateAccountTool) GetName() string {
	return "create-account"
}

func (t *CreateAccountTool) GetDescription() string {
	return "Registers a payable or receivable account. New accounts start pending."
}

func (t *CreateAccountTool) GetInputSchema() mcp.JSONSchema {
	return mcp.JSONSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"kind":        enumProp("Whether the company pays or receives", string(account.Payable), string(account.Receivable)),
			"description": stringProp("What the account is for"),
			"amount":      amountProp("Amount due"),
			"companyId":   stringProp("Owning company. Defaults to X-Company-Id"),
			"companyName": stringProp("Display name of the owning company"),
			"category":    stringProp("Category copied to the ledger entry on payment"),
			"dueDate":     dateProp("Due date"),
			"notes":       stringProp("Free text notes"),
			"isRecurring": map[string]interface{}{"type": "boolean"},
			"recurrence": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"frequency": enumProp("Recurrence frequency", string(account.Weekly), string(account.Monthly), string(account.Yearly)),
					"endDate":   dateProp("Last occurrence"),
				},
				"required": []string{"frequency"},
			},
		},
		Required:             []string{"kind", "description", "amount", "dueDate"},
		AdditionalProperties: &noExtraProperties,
	}
}

func (t *CreateAccountTool) Execute(ctx context.Context, arguments json.RawMessage) (*mcp.CallToolResult, error) {
	var args struct {
		Kind        string          `json:"kind"`
		Description string          `json:"description"`
		Amount      decimal.Decimal `json:"amount"`
		CompanyID   string          `json:"companyId"`
		CompanyName string          `json:"companyName"`
		Category    string          `json:"category"`
		DueDate     string          `json:"dueDate"`
		Notes       string          `json:"notes"`
		IsRecurring bool            `json:"isRecurring"`
		Recurrence  *struct {
			Frequency string `json:"frequency"`
			EndDate   string `json:"endDate"`
		} `json:"recurrence"`
	}
	if err := decodeArguments(arguments, &args); err != nil {
		return nil, err
	}

	companyID, companyName, err := scopedCompany(ctx, args.CompanyID, args.CompanyName)
	if err != nil {
		return nil, err
	}

	req := &account.CreateAccountRequest{
		Kind:        account.Kind(args.Kind),
		Description: args.Description,
		Amount:      args.Amount,
		CompanyID:   companyID,
		CompanyName: companyName,
		Category:    args.Category,
		DueDate:     args.DueDate,
		Notes:       args.Notes,
		IsRecurring: args.IsRecurring,
	}
	if args.Recurrence != nil {
		req.Recurrence = &account.RecurrenceRequest{
			Frequency: account.Frequency(args.Recurrence.Frequency),
			EndDate:   args.Recurrence.EndDate,
		}
	}

	created, err := t.accountService.CreateAccount(ctx, req)
	if err != nil {
		return nil, err
	}
	return mcp.JSONResult("Account created:", created)
}

// MarkAccountPaidTool settles an account and records its ledger entry
type MarkAccountPaidTool struct {
	accountService *account.Service
}

func NewMarkAccountPaidTool(accountService *account.Service) *MarkAccountPaidTool {
	return &MarkAccountPaidTool{accountService: accountService}
}

func (t *MarkAccountPaidTool) GetName() string {
	return "mark-account-paid"
}

func (t *MarkAccountPaidTool) GetDescription() string {
	return "Marks a pending account as paid and records the matching income or expense in the ledger, dated today."
}

func (t *MarkAccountPaidTool) GetInputSchema() mcp.JSONSchema {
	return accountIDSchema()
}

func (t *MarkAccountPaidTool) Execute(ctx context.Context, arguments json.RawMessage) (*mcp.CallToolResult, error) {
	accountID, err := scopedAccountID(ctx, t.accountService, arguments)
	if err != nil {
		return nil, err
	}

	result, err := t.accountService.MarkAsPaid(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return transitionResult(result)
}

// MarkAccountPendingTool reopens a paid account and removes its ledger entry
type MarkAccountPendingTool struct {
	accountService *account.Service
}

func NewMarkAccountPendingTool(accountService *account.Service) *MarkAccountPendingTool {
	return &MarkAccountPendingTool{accountService: accountService}
}

func (t *MarkAccountPendingTool) GetName() string {
	return "mark-account-pending"
}

func (t *MarkAccountPendingTool) GetDescription() string {
	return "Reopens a paid account as pending and deletes the ledger entry its payment created."
}

func (t *MarkAccountPendingTool) GetInputSchema() mcp.JSONSchema {
	return accountIDSchema()
}

func (t *MarkAccountPendingTool) Execute(ctx context.Context, arguments json.RawMessage) (*mcp.CallToolResult, error) {
	accountID, err := scopedAccountID(ctx, t.accountService, arguments)
	if err != nil {
		return nil, err
	}

	result, err := t.accountService.MarkAsPending(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return transitionResult(result)
}

func accountIDSchema() mcp.JSONSchema {
	return mcp.JSONSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"accountId": idProp("account"),
		},
		Required:             []string{"accountId"},
		AdditionalProperties: &noExtraProperties,
	}
}

// scopedAccountID reads accountId from arguments and checks that the account
// belongs to the request's company
func scopedAccountID(ctx context.Context, accountService *account.Service, arguments json.RawMessage) (string, error) {
	var args struct {
		AccountID string `json:"accountId"`
	}
	if err := decodeArguments(arguments, &args); err != nil {
		return "", err
	}
	existing, err := accountService.GetAccount(ctx, args.AccountID)
	if err != nil {
		return "", err
	}
	if err := checkScope(ctx, existing.CompanyID, "account"); err != nil {
		return "", err
	}
	return existing.ID, nil
}

func transitionResult(result *account.TransitionResult) (*mcp.CallToolResult, error) {
	var summary string
	switch result.Outcome {
	case account.AlreadyPaid:
		summary = "Account was already paid, nothing changed:"
	case account.AlreadyPending:
		summary = "Account was already pending, nothing changed:"
	default:
		summary = fmt.Sprintf("Account is now %s:", result.Account.Status)
	}
	return mcp.JSONResult(summary, result)
}

// DeleteAccountTool removes a pending account
type DeleteAccountTool struct {
	accountService *account.Service
}

func NewDeleteAccountTool(accountService *account.Service) *DeleteAccountTool {
	return &DeleteAccountTool{accountService: accountService}
}

func (t *DeleteAccountTool) GetName() string {
	return "delete-account"
}

func (t *DeleteAccountTool) GetDescription() string {
	return "Deletes a pending account. A paid account must be marked pending first."
}

func (t *DeleteAccountTool) GetInputSchema() mcp.JSONSchema {
	return accountIDSchema()
}

func (t *DeleteAccountTool) Execute(ctx context.Context, arguments json.RawMessage) (*mcp.CallToolResult, error) {
	accountID, err := scopedAccountID(ctx, t.accountService, arguments)
	if err != nil {
		return nil, err
	}
	if err := t.accountService.DeleteAccount(ctx, accountID); err != nil {
		return nil, err
	}
	return mcp.JSONResult("Account deleted:", map[string]string{"accountId": accountID})
}
