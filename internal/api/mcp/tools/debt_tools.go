package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/hirosato/lidere-backoffice/internal/domain/debt"
	"github.com/hirosato/lidere-backoffice/internal/domain/mcp"
)

// CreateDebtTool registers an open debt
type CreateDebtTool struct {
	debtService *debt.Service
}

func NewCreateDebtTool(debtService *debt.Service) *CreateDebtTool {
	return &CreateDebtTool{debtService: debtService}
}

func (t *CreateDebtTool) GetName() string {
	return "create-debt"
}

func (t *CreateDebtTool) GetDescription() string {
	return "Registers a debt owed to a creditor. The debt stays open until it is negotiated into installments."
}

func (t *CreateDebtTool) GetInputSchema() mcp.JSONSchema {
	return mcp.JSONSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"description":    stringProp("What the debt is for"),
			"creditor":       stringProp("Who the debt is owed to"),
			"originalAmount": amountProp("Amount originally owed"),
			"interestRate":   amountProp("Interest rate in percent"),
			"companyId":      stringProp("Owning company. Defaults to X-Company-Id"),
			"companyName":    stringProp("Display name of the owning company"),
		},
		Required:             []string{"description", "creditor", "originalAmount"},
		AdditionalProperties: &noExtraProperties,
	}
}

func (t *CreateDebtTool) Execute(ctx context.Context, arguments json.RawMessage) (*mcp.CallToolResult, error) {
	var req debt.CreateDebtRequest
	if err := decodeArguments(arguments, &req); err != nil {
		return nil, err
	}

	companyID, companyName, err := scopedCompany(ctx, req.CompanyID, req.CompanyName)
	if err != nil {
		return nil, err
	}
	req.CompanyID = companyID
	req.CompanyName = companyName

	created, err := t.debtService.CreateDebt(ctx, &req)
	if err != nil {
		return nil, err
	}
	return mcp.JSONResult("Debt created:", created)
}

// NegotiateDebtTool turns an open debt into payable installments
type NegotiateDebtTool struct {
	debtService *debt.Service
}

func NewNegotiateDebtTool(debtService *debt.Service) *NegotiateDebtTool {
	return &NegotiateDebtTool{debtService: debtService}
}

func (t *NegotiateDebtTool) GetName() string {
	return "negotiate-debt"
}

func (t *NegotiateDebtTool) GetDescription() string {
	return fmt.Sprintf("Negotiates an open debt into 1 to %d monthly payable installments, created as pending accounts linked to the debt.", debt.MaxInstallments)
}

func (t *NegotiateDebtTool) GetInputSchema() mcp.JSONSchema {
	return mcp.JSONSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"debtId": idProp("debt"),
			"numberOfInstallments": map[string]interface{}{
				"type":    "integer",
				"minimum": 1,
				"maximum": debt.MaxInstallments,
			},
			"installmentAmount":    amountProp("Amount of each installment"),
			"firstInstallmentDate": dateProp("Due date of the first installment"),
		},
		Required:             []string{"debtId", "numberOfInstallments", "installmentAmount", "firstInstallmentDate"},
		AdditionalProperties: &noExtraProperties,
	}
}

func (t *NegotiateDebtTool) Execute(ctx context.Context, arguments json.RawMessage) (*mcp.CallToolResult, error) {
	var args struct {
		DebtID               string          `json:"debtId"`
		NumberOfInstallments int             `json:"numberOfInstallments"`
		InstallmentAmount    decimal.Decimal `json:"installmentAmount"`
		FirstInstallmentDate string          `json:"firstInstallmentDate"`
	}
	if err := decodeArguments(arguments, &args); err != nil {
		return nil, err
	}

	if err := scopedDebt(ctx, t.debtService, args.DebtID); err != nil {
		return nil, err
	}

	result, err := t.debtService.Negotiate(ctx, args.DebtID, debt.NegotiateRequest{
		NumberOfInstallments: args.NumberOfInstallments,
		InstallmentAmount:    args.InstallmentAmount,
		FirstInstallmentDate: args.FirstInstallmentDate,
	})
	if err != nil {
		return nil, err
	}
	return mcp.JSONResult(fmt.Sprintf("Debt negotiated into %d installments:", len(result.Installments)), result)
}

// MarkDebtPaidTool closes a negotiated debt
type MarkDebtPaidTool struct {
	debtService *debt.Service
}

func NewMarkDebtPaidTool(debtService *debt.Service) *MarkDebtPaidTool {
	return &MarkDebtPaidTool{debtService: debtService}
}

func (t *MarkDebtPaidTool) GetName() string {
	return "mark-debt-paid"
}

func (t *MarkDebtPaidTool) GetDescription() string {
	return "Marks a negotiated debt as paid. Its installment accounts are left unchanged."
}

func (t *MarkDebtPaidTool) GetInputSchema() mcp.JSONSchema {
	return mcp.JSONSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"debtId": idProp("debt"),
		},
		Required:             []string{"debtId"},
		AdditionalProperties: &noExtraProperties,
	}
}

func (t *MarkDebtPaidTool) Execute(ctx context.Context, arguments json.RawMessage) (*mcp.CallToolResult, error) {
	var args struct {
		DebtID string `json:"debtId"`
	}
	if err := decodeArguments(arguments, &args); err != nil {
		return nil, err
	}

	if err := scopedDebt(ctx, t.debtService, args.DebtID); err != nil {
		return nil, err
	}

	paid, err := t.debtService.MarkAsPaid(ctx, args.DebtID)
	if err != nil {
		return nil, err
	}
	return mcp.JSONResult("Debt marked as paid:", paid)
}

func scopedDebt(ctx context.Context, debtService *debt.Service, debtID string) error {
	existing, err := debtService.GetDebt(ctx, debtID)
	if err != nil {
		return err
	}
	return checkScope(ctx, existing.CompanyID, "debt")
}

// DeleteDebtTool removes a debt that was never negotiated
type DeleteDebtTool struct {
	debtService *debt.Service
}

func NewDeleteDebtTool(debtService *debt.Service) *DeleteDebtTool {
	return &DeleteDebtTool{debtService: debtService}
}

func (t *DeleteDebtTool) GetName() string {
	return "delete-debt"
}

func (t *DeleteDebtTool) GetDescription() string {
	return "Deletes an open debt. Negotiated and paid debts are kept."
}

func (t *DeleteDebtTool) GetInputSchema() mcp.JSONSchema {
	return mcp.JSONSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"debtId": idProp("debt"),
		},
		Required:             []string{"debtId"},
		AdditionalProperties: &noExtraProperties,
	}
}

func (t *DeleteDebtTool) Execute(ctx context.Context, arguments json.RawMessage) (*mcp.CallToolResult, error) {
	var args struct {
		DebtID string `json:"debtId"`
	}
	if err := decodeArguments(arguments, &args); err != nil {
		return nil, err
	}
	if err := scopedDebt(ctx, t.debtService, args.DebtID); err != nil {
		return nil, err
	}
	if err := t.debtService.DeleteDebt(ctx, args.DebtID); err != nil {
		return nil, err
	}
	return mcp.JSONResult("Debt deleted:", map[string]string{"debtId": args.DebtID})
}
